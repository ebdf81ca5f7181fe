package host

import "errors"

// Sentinel errors surfaced by the host run-loop.
var (
	// ErrShutdownTimeout is returned by Shutdown if the run loop has not
	// observed cancellation and exited within the given timeout.
	ErrShutdownTimeout = errors.New("host: shutdown timed out waiting for run loop to exit")

	// ErrAlreadyRunning is returned by Run if called more than once on the
	// same Host; a Host's run loop is not reentrant.
	ErrAlreadyRunning = errors.New("host: Run already called on this host")
)

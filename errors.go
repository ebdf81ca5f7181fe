package ivr

import "errors"

// Sentinel errors surfaced by the core primitives.
var (
	// ErrNoReply reports a request that was dispatched without a reply.
	// Nothing in this module returns it: requests are only ever resolved
	// through a host's request handler or [Resolve], and a host shutdown
	// does not fail a pending [RequestValue] or [Send].
	ErrNoReply = errors.New("ivr: request dispatched without a reply")
)

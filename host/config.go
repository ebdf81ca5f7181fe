package host

import "time"

// Config configures a [Host]. Used only during [New]; after construction the
// Host holds its own derived state, matching the configuration pattern used
// throughout this module (see config.HubConfig in the hub package this one
// is grounded on).
type Config struct {
	// ChannelBufferSize sets the capacity of the event queue (§5's FIFO).
	// A Submit beyond this capacity blocks until the run loop drains one.
	ChannelBufferSize int `json:"channel_buffer_size"`

	// ShutdownTimeout bounds how long Shutdown waits for the run loop to
	// observe cancellation and exit, if no explicit timeout is passed.
	ShutdownTimeout time.Duration `json:"shutdown_timeout"`

	// Observer specifies which observer implementation to use ("noop", "slog", etc.)
	Observer string `json:"observer"`
}

// DefaultConfig returns sensible defaults for a Host.
func DefaultConfig() Config {
	return Config{
		ChannelBufferSize: 64,
		ShutdownTimeout:   5 * time.Second,
		Observer:          "slog",
	}
}

func (c *Config) Merge(source Config) {
	if source.ChannelBufferSize > 0 {
		c.ChannelBufferSize = source.ChannelBufferSize
	}
	if source.ShutdownTimeout > 0 {
		c.ShutdownTimeout = source.ShutdownTimeout
	}
	if source.Observer != "" {
		c.Observer = source.Observer
	}
}

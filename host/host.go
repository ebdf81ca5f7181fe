// Package host implements the run-loop that drives a root [ivr.Flux] to
// completion against a real event source: a thread-safe FIFO event queue,
// a request-handler callback resolved synchronously while draining
// Requesting nodes, and graceful shutdown via a distinguished cancellation
// event (§4.7). Of the runtime packages (ivr, par, sideshow, host) it is the
// only one that performs I/O or spawns goroutines — the others are pure
// state machines.
package host

import (
	"context"
	"fmt"
	"time"

	ivr "github.com/taucore/ivr"
	"github.com/taucore/ivr/observability"
)

// RequestHandler resolves a [ivr.Request] synchronously into a
// [ivr.Result]. Called from the run loop's goroutine only, while draining
// Requesting nodes — never concurrently with itself.
type RequestHandler func(ivr.Request) ivr.Result[any]

// Host owns the event queue and the request handler for one running IVR
// tree. A Host is single-use: construct one per [Run] call.
type Host struct {
	cfg   Config
	queue *queue
	reply RequestHandler

	observer observability.Observer
	ctx      context.Context

	done    chan struct{}
	started bool
}

// New constructs a Host. reply is the host's request-handler callback
// (§6); it is invoked synchronously from Run's goroutine whenever the IVR
// tree issues a request.
func New(ctx context.Context, cfg Config, reply RequestHandler) (*Host, error) {
	observer, err := observability.GetObserver(cfg.Observer)
	if err != nil {
		return nil, fmt.Errorf("host: resolve observer: %w", err)
	}
	return &Host{
		cfg:      cfg,
		queue:    newQueue(cfg.ChannelBufferSize),
		reply:    reply,
		observer: observer,
		ctx:      ctx,
		done:     make(chan struct{}),
	}, nil
}

// Submit enqueues an opaque event for the running IVR (§6). Safe to call
// from any goroutine, including while Run is draining requests.
func (h *Host) Submit(e ivr.Event) {
	h.queue.send(e)
}

// Shutdown enqueues the cancellation event and blocks until Run observes
// it and returns, or cfg.ShutdownTimeout elapses.
func (h *Host) Shutdown() error {
	return h.ShutdownTimeout(h.cfg.ShutdownTimeout)
}

// ShutdownTimeout is [Shutdown] with an explicit timeout, overriding the
// Host's configured default.
func (h *Host) ShutdownTimeout(timeout time.Duration) error {
	h.queue.send(ivr.CancelEvent)
	select {
	case <-h.done:
		return nil
	case <-time.After(timeout):
		return ErrShutdownTimeout
	}
}

func (h *Host) resolve(req ivr.Request) ivr.Result[any] {
	h.observer.OnEvent(h.ctx, observability.Event{
		Type:      EventRequest,
		Level:     observability.LevelVerbose,
		Timestamp: time.Now(),
		Source:    "host.Host",
		Data:      map[string]any{"request": fmt.Sprintf("%T", req)},
	})
	return h.reply(req)
}

// Run drives root to completion: start it, dispatch any immediate
// requests, and then alternate between dequeuing the next event and
// stepping the flux, dispatching requests after every step (§4.7). On the
// distinguished cancellation event it drives root to completion via
// [ivr.Cancel] instead of [ivr.Step], guaranteeing every scoped resource
// still open at that point is released before Run returns.
//
// Run blocks until root completes or [Host.Shutdown] is called. It must be
// called at most once per Host.
func Run[T any](h *Host, root ivr.Flux[T]) (ivr.Result[T], error) {
	if h.started {
		return ivr.Result[T]{}, ErrAlreadyRunning
	}
	h.started = true
	defer close(h.done)

	h.observer.OnEvent(h.ctx, observability.Event{
		Type:      EventRunStart,
		Level:     observability.LevelInfo,
		Timestamp: time.Now(),
		Source:    "host.Run",
	})

	f := ivr.DispatchRequests(ivr.Start(root), h.resolve)

	for {
		if res, done := f.Result(); done {
			h.observer.OnEvent(h.ctx, observability.Event{
				Type:      EventRunComplete,
				Level:     observability.LevelInfo,
				Timestamp: time.Now(),
				Source:    "host.Run",
				Data: map[string]any{
					"value":     res.IsValue(),
					"error":     res.IsError(),
					"cancelled": res.IsCancelled(),
				},
			})
			return res, nil
		}

		e := h.queue.receive()
		h.observer.OnEvent(h.ctx, observability.Event{
			Type:      EventTick,
			Level:     observability.LevelVerbose,
			Timestamp: time.Now(),
			Source:    "host.Run",
		})

		if e == ivr.CancelEvent {
			h.observer.OnEvent(h.ctx, observability.Event{
				Type:      EventCancel,
				Level:     observability.LevelInfo,
				Timestamp: time.Now(),
				Source:    "host.Run",
			})
			f = ivr.DispatchRequests(ivr.Cancel(f), h.resolve)
			continue
		}

		f = ivr.DispatchRequests(ivr.Step(f, e), h.resolve)
	}
}

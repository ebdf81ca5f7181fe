package host

import (
	"time"

	ivr "github.com/taucore/ivr"
	"github.com/taucore/ivr/observability"
)

// Timeout is the event a [Host.Delay] timer submits when it fires, tagged
// with the Id returned at acquisition so concurrent timers do not collide
// (§4.7).
type Timeout struct {
	ID ivr.Id
}

// Delay returns a flux that completes once d has elapsed. It is built
// entirely from the public [ivr.Use]/[ivr.WaitForPredicate] primitives, not
// from special-cased runtime support: the timer is a scoped resource whose
// release stops the underlying timer, so cancelling a flux waiting on Delay
// can never leak a pending callback.
func (h *Host) Delay(d time.Duration) ivr.Flux[struct{}] {
	return ivr.Use(
		func() ivr.Resource[ivr.Id] {
			id := ivr.NextId()
			timer := time.AfterFunc(d, func() {
				h.Submit(Timeout{ID: id})
			})
			h.observer.OnEvent(h.ctx, observability.Event{
				Type:      EventTimerStart,
				Level:     observability.LevelVerbose,
				Timestamp: time.Now(),
				Source:    "host.Delay",
				Data:      map[string]any{"id": id.String(), "duration": d.String()},
			})
			return ivr.Resource[ivr.Id]{
				Value: id,
				Release: func() ivr.Flux[struct{}] {
					timer.Stop()
					return ivr.Zero()
				},
			}
		},
		func(id ivr.Id) ivr.Flux[struct{}] {
			return ivr.WaitForPredicate(func(ev Timeout) bool { return ev.ID == id })
		},
	)
}

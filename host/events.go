package host

import "github.com/taucore/ivr/observability"

const (
	EventRunStart    observability.EventType = "host.run.start"
	EventRunComplete observability.EventType = "host.run.complete"
	EventTick        observability.EventType = "host.tick"
	EventRequest     observability.EventType = "host.request"
	EventCancel      observability.EventType = "host.cancel"
	EventTimerStart  observability.EventType = "host.timer.start"
	EventTimerFire   observability.EventType = "host.timer.fire"
)

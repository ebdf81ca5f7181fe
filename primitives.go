package ivr

import "fmt"

// Wait returns a flux paused until f matches an event. f is consulted on
// every event except [CancelEvent], which always completes the flux as
// Cancelled before f ever sees it — this is the mechanism by which every
// combinator built on Wait participates in cancellation without special
// casing (see the package doc).
func Wait[R any](f func(Event) (R, bool)) Flux[R] {
	return Waiting[R](func(e Event) Flux[R] {
		if isCancelEvent(e) {
			return Completed[R](Cancelled[R]())
		}
		if r, ok := f(e); ok {
			return Completed[R](ValueResult(r))
		}
		return Wait(f)
	})
}

// WaitFor is the typed form of [Wait]: events that are not an E are
// skipped, and f is only consulted for events of that type.
func WaitFor[E, R any](f func(E) (R, bool)) Flux[R] {
	return Wait(func(e Event) (R, bool) {
		typed, ok := e.(E)
		if !ok {
			var zero R
			return zero, false
		}
		return f(typed)
	})
}

// WaitForPredicate is sugar over [WaitFor] that yields () on the first
// event of type E matching pred (the "waitFor'" primitive of §4.4).
func WaitForPredicate[E any](pred func(E) bool) Flux[struct{}] {
	return WaitFor(func(e E) (struct{}, bool) {
		return struct{}{}, pred(e)
	})
}

// Send dispatches command to the host fire-and-forget, but still as a
// Requesting node so its ordering relative to other requests is preserved
// (§4.4, §4.7). The host's reply value is ignored; only a host-reported
// Error or Cancelled propagates.
func Send(command Request) Flux[struct{}] {
	return Requesting[struct{}](command, func(r Result[any]) Flux[struct{}] {
		if r.IsValue() {
			return Completed(ValueResult(struct{}{}))
		}
		return Completed(liftNonValue[any, struct{}](r))
	})
}

// RequestValue dispatches command to the host and awaits a typed reply.
// Error and Cancelled replies propagate as-is; a Value reply is type
// asserted to R. A reply of the wrong type panics inside the continuation,
// and [Resolve] recovers that panic into Completed(Error).
func RequestValue[R any](command Request) Flux[R] {
	return Requesting[R](command, func(r Result[any]) Flux[R] {
		if !r.IsValue() {
			return Completed(liftNonValue[any, R](r))
		}
		v, _ := r.Value()
		typed, ok := v.(R)
		if !ok {
			panic(fmt.Sprintf("ivr: host reply for request has type %T, want %T", v, typed))
		}
		return Completed(ValueResult(typed))
	})
}

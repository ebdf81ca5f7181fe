package ivr

import "fmt"

// Event is an opaque value supplied by the host. The core never inspects
// its contents; [Wait] and [WaitFor] apply a caller-supplied filter.
type Event any

// Request is an opaque value produced by a flux and delivered to the host.
// The host resolves it synchronously-from-the-flux's-view into a
// Result[any] before the flux advances further.
type Request any

// cancelEvent is the distinguished event delivered by [TryCancel]. It is
// unexported so user code cannot construct or compare against it directly;
// every primitive that pauses on [Wait] recognizes it automatically.
type cancelEvent struct{}

// CancelEvent is the event that [TryCancel] delivers to a [Waiting] flux.
// IVRs built from [Wait]/[WaitFor] never need to check for it explicitly —
// see the package doc — but it is exported so a host or combinator that
// hand-rolls a [Waiting] node can recognize it too.
var CancelEvent Event = cancelEvent{}

func isCancelEvent(e Event) bool {
	_, ok := e.(cancelEvent)
	return ok
}

type fluxKind int

const (
	kindDelay fluxKind = iota
	kindWaiting
	kindRequesting
	kindCompleted
)

// Flux is the runtime representation of a suspended IVR, in exactly one of
// four states: [Delay] (not yet started), [Waiting] (paused for an event),
// [Requesting] (paused for a host reply), or [Completed] (terminal). See
// the package doc for the overall model.
type Flux[T any] struct {
	kind fluxKind

	thunk func() Flux[T] // Delay

	waitCont func(Event) Flux[T] // Waiting

	request Request                   // Requesting
	reqCont func(Result[any]) Flux[T] // Requesting

	result Result[T] // Completed
}

// Delay defers thunk until [Start] time, so that side effects in the
// prologue of a composed IVR run at start rather than at construction.
func Delay[T any](thunk func() Flux[T]) Flux[T] {
	return Flux[T]{kind: kindDelay, thunk: thunk}
}

// Waiting constructs a flux paused awaiting the next event. cont is invoked
// at most once per delivered event via [Step].
func Waiting[T any](cont func(Event) Flux[T]) Flux[T] {
	return Flux[T]{kind: kindWaiting, waitCont: cont}
}

// Requesting constructs a flux paused awaiting the host's reply to req.
// cont is invoked exactly once with the host's Result[any] once resolved.
func Requesting[T any](req Request, cont func(Result[any]) Flux[T]) Flux[T] {
	return Flux[T]{kind: kindRequesting, request: req, reqCont: cont}
}

// Completed constructs a terminal flux.
func Completed[T any](result Result[T]) Flux[T] {
	return Flux[T]{kind: kindCompleted, result: result}
}

// IsWaiting reports whether f is paused awaiting an event.
func (f Flux[T]) IsWaiting() bool { return f.kind == kindWaiting }

// IsRequesting reports whether f is paused awaiting a host reply.
func (f Flux[T]) IsRequesting() bool { return f.kind == kindRequesting }

// IsCompleted reports whether f is terminal.
func (f Flux[T]) IsCompleted() bool { return f.kind == kindCompleted }

// Result returns the terminal result and true if f is Completed, otherwise
// the zero Result and false.
func (f Flux[T]) Result() (Result[T], bool) {
	if f.kind != kindCompleted {
		return Result[T]{}, false
	}
	return f.result, true
}

// PendingRequest returns the request a Requesting flux is waiting on, and
// true. Returns the zero Request and false otherwise.
func (f Flux[T]) PendingRequest() (Request, bool) {
	if f.kind != kindRequesting {
		return nil, false
	}
	return f.request, true
}

// Start unwraps any chain of [Delay] nodes, running each thunk in turn,
// until reaching Waiting, Requesting, or Completed. Idempotent on an
// already-started flux. If a thunk panics, Start recovers the panic into
// Completed(Error).
func Start[T any](f Flux[T]) (result Flux[T]) {
	for f.kind == kindDelay {
		f = runDelay(f)
	}
	return f
}

func runDelay[T any](f Flux[T]) (next Flux[T]) {
	defer func() {
		if r := recover(); r != nil {
			next = Completed[T](ErrorResult[T](panicToError(r)))
		}
	}()
	return f.thunk()
}

// Step advances a [Waiting] flux with event e. Panics if f is not Waiting —
// stepping a Completed, Requesting, or un-started flux is a programmer
// error (§4.1). The returned flux is never Delay: continuations are always
// forced through [Start] before being handed back.
func Step[T any](f Flux[T], e Event) (next Flux[T]) {
	if f.kind != kindWaiting {
		panic(fmt.Sprintf("ivr: Step called on a %s flux, want Waiting", f.kind))
	}
	defer func() {
		if r := recover(); r != nil {
			next = Completed[T](ErrorResult[T](panicToError(r)))
		}
	}()
	return Start(f.waitCont(e))
}

// TryCancel delivers [CancelEvent] to a Waiting flux, expecting its
// continuation to unwind via scoped-resource release and reach
// Completed(Cancelled). A Requesting flux is returned unchanged —
// cancellation is deferred until the host resolves the pending request,
// after which TryCancel should be called again. A Completed flux is
// returned unchanged; it is inert to cancellation.
func TryCancel[T any](f Flux[T]) Flux[T] {
	switch f.kind {
	case kindWaiting:
		return Step(f, CancelEvent)
	default:
		return f
	}
}

// Resolve advances a [Requesting] flux with the host's reply r. Panics if f
// is not Requesting — symmetric to [Step], which advances a Waiting flux
// with an event.
func Resolve[T any](f Flux[T], r Result[any]) (next Flux[T]) {
	if f.kind != kindRequesting {
		panic(fmt.Sprintf("ivr: Resolve called on a %s flux, want Requesting", f.kind))
	}
	defer func() {
		if rec := recover(); rec != nil {
			next = Completed[T](ErrorResult[T](panicToError(rec)))
		}
	}()
	return Start(f.reqCont(r))
}

// DispatchRequests drives f through every immediate [Requesting] node,
// resolving each via hostReply, until f reaches Waiting or Completed. The
// host run-loop calls this before delivering each new event (§4.7); it is
// exported so combinators and tests can replicate the same draining
// without a real host.
func DispatchRequests[T any](f Flux[T], hostReply func(Request) Result[any]) Flux[T] {
	for f.kind == kindRequesting {
		req, _ := f.PendingRequest()
		f = Resolve(f, hostReply(req))
	}
	return f
}

// Cancel fully cancels f, bubbling any Requesting node it encounters as the
// returned flux's own Requesting state (so an enclosing host or combinator
// resolves it against the real host) rather than resolving it inline. It
// keeps delivering [CancelEvent] to every Waiting node until f is
// Completed. Every combinator that must cancel a sibling or a loser
// synchronously (§4.5, §4.6) routes through this helper. [TryFinally] and
// [Use] do not call it: their finalizer runs when the body they wrap
// reaches Completed, whichever way it got there.
func Cancel[T any](f Flux[T]) Flux[T] {
	for {
		switch f.kind {
		case kindCompleted:
			return f
		case kindRequesting:
			req, cont := f.request, f.reqCont
			return Requesting[T](req, func(r Result[any]) Flux[T] {
				return Cancel(cont(r))
			})
		default: // kindWaiting
			f = TryCancel(f)
		}
	}
}

func (k fluxKind) String() string {
	switch k {
	case kindDelay:
		return "Delay"
	case kindWaiting:
		return "Waiting"
	case kindRequesting:
		return "Requesting"
	case kindCompleted:
		return "Completed"
	default:
		return "unknown"
	}
}

// panicToError normalizes a recovered panic value into an error, wrapping
// non-error payloads with their fmt.Sprintf("%v") text.
func panicToError(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("ivr: panic: %v", r)
}

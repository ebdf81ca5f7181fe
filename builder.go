package ivr

// Return lifts a pure value as an already-completed flux.
func Return[T any](v T) Flux[T] {
	return Completed(ValueResult(v))
}

// Zero is the empty-block value used when a composed IVR has no trailing
// expression.
func Zero() Flux[struct{}] {
	return Return(struct{}{})
}

// Bind starts src and, once it completes with a Value, continues with
// Start(k(v)). An Error or Cancelled result from src is returned as-is
// without invoking k (§4.3). While src is still suspended, Bind returns a
// flux that re-applies itself to the advanced src on each continuation.
func Bind[A, B any](src Flux[A], k func(A) Flux[B]) Flux[B] {
	return bindAdvance(Start(src), k)
}

func bindAdvance[A, B any](f Flux[A], k func(A) Flux[B]) Flux[B] {
	switch f.kind {
	case kindCompleted:
		if f.result.IsValue() {
			v, _ := f.result.Value()
			return Start(k(v))
		}
		return Completed[B](liftNonValue[A, B](f.result))
	case kindRequesting:
		req, cont := f.request, f.reqCont
		return Requesting[B](req, func(r Result[any]) Flux[B] {
			return bindAdvance(cont(r), k)
		})
	default: // kindWaiting
		return Waiting[B](func(e Event) Flux[B] {
			return bindAdvance(Step(f, e), k)
		})
	}
}

// TryFinally runs body and, once it reaches Completed(_) by any path
// (including cancellation), runs fin() exactly once before producing the
// final result. If fin() itself raises, its error replaces a successful
// result but never overrides an existing Error or Cancelled (§4.3).
//
// Cancellation reaches fin the same way any other completion does: no
// special casing is needed because the Waiting nodes inside body are built
// on [Wait], which always unwinds to Completed(Cancelled) on [CancelEvent].
func TryFinally[T any](body Flux[T], fin func() Flux[struct{}]) Flux[T] {
	return finallyAdvance(Start(body), fin)
}

func finallyAdvance[T any](f Flux[T], fin func() Flux[struct{}]) Flux[T] {
	switch f.kind {
	case kindCompleted:
		return runFinalizer(f.result, fin)
	case kindRequesting:
		req, cont := f.request, f.reqCont
		return Requesting[T](req, func(r Result[any]) Flux[T] {
			return finallyAdvance(cont(r), fin)
		})
	default: // kindWaiting
		return Waiting[T](func(e Event) Flux[T] {
			return finallyAdvance(Step(f, e), fin)
		})
	}
}

func runFinalizer[T any](primary Result[T], fin func() Flux[struct{}]) Flux[T] {
	return bindFinalizerResult(Start(fin()), primary)
}

func bindFinalizerResult[T any](f Flux[struct{}], primary Result[T]) Flux[T] {
	switch f.kind {
	case kindCompleted:
		if f.result.IsError() && primary.IsValue() {
			return Completed[T](ErrorResult[T](f.result.Err()))
		}
		return Completed[T](primary)
	case kindRequesting:
		req, cont := f.request, f.reqCont
		return Requesting[T](req, func(r Result[any]) Flux[T] {
			return bindFinalizerResult(cont(r), primary)
		})
	default: // kindWaiting
		return Waiting[T](func(e Event) Flux[T] {
			return bindFinalizerResult(Step(f, e), primary)
		})
	}
}

// TryWith runs body and, if it reaches Completed(Error e), continues with
// Start(handler(e)). Cancelled is not caught — only an explicit Error is
// recoverable, matching §4.3/§5's "tryWith cannot observe cancellation"
// invariant.
func TryWith[T any](body Flux[T], handler func(error) Flux[T]) Flux[T] {
	return withAdvance(Start(body), handler)
}

func withAdvance[T any](f Flux[T], handler func(error) Flux[T]) Flux[T] {
	switch f.kind {
	case kindCompleted:
		if f.result.IsError() {
			return Start(handler(f.result.Err()))
		}
		return f
	case kindRequesting:
		req, cont := f.request, f.reqCont
		return Requesting[T](req, func(r Result[any]) Flux[T] {
			return withAdvance(cont(r), handler)
		})
	default: // kindWaiting
		return Waiting[T](func(e Event) Flux[T] {
			return withAdvance(Step(f, e), handler)
		})
	}
}

// Resource is a scoped resource acquired with [Use]: Value is the acquired
// resource, Release is the disposal action guaranteed to run exactly once
// on every exit path of the flux that owns it.
type Resource[R any] struct {
	Value   R
	Release func() Flux[struct{}]
}

// Use acquires a [Resource] and runs body with it, guaranteeing Release
// runs exactly once regardless of whether body completes normally, errors,
// or is cancelled. acquire runs at Start time, not at construction time, so
// that building a Use-wrapped flux has no side effects until it is driven.
func Use[R, T any](acquire func() Resource[R], body func(R) Flux[T]) Flux[T] {
	return Delay(func() Flux[T] {
		res := acquire()
		return TryFinally(body(res.Value), res.Release)
	})
}

// For sequences body over items, stack-safely: consecutive synchronous
// completions are driven by an explicit loop rather than recursive Bind, so
// a for-loop over arbitrarily many items that never suspends cannot grow
// the call stack (§4.3, §9).
func For[T any](items []T, body func(T) Flux[struct{}]) Flux[struct{}] {
	return Delay(func() Flux[struct{}] {
		return forFrom(items, 0, body)
	})
}

func forFrom[T any](items []T, i int, body func(T) Flux[struct{}]) Flux[struct{}] {
	for i < len(items) {
		f := Start(body(items[i]))
		if f.kind == kindCompleted {
			if !f.result.IsValue() {
				return f
			}
			i++
			continue
		}
		return forContinue(f, items, i, body)
	}
	return Zero()
}

func forContinue[T any](f Flux[struct{}], items []T, i int, body func(T) Flux[struct{}]) Flux[struct{}] {
	switch f.kind {
	case kindCompleted:
		if !f.result.IsValue() {
			return f
		}
		return forFrom(items, i+1, body)
	case kindRequesting:
		req, cont := f.request, f.reqCont
		return Requesting[struct{}](req, func(r Result[any]) Flux[struct{}] {
			return forContinue(cont(r), items, i, body)
		})
	default: // kindWaiting
		return Waiting[struct{}](func(e Event) Flux[struct{}] {
			return forContinue(Step(f, e), items, i, body)
		})
	}
}

// While repeats body while cond holds, with the same stack-safe trampoline
// as [For]: any run of synchronous iterations is driven by an explicit loop.
func While(cond func() bool, body func() Flux[struct{}]) Flux[struct{}] {
	return Delay(func() Flux[struct{}] {
		return whileFrom(cond, body)
	})
}

func whileFrom(cond func() bool, body func() Flux[struct{}]) Flux[struct{}] {
	for cond() {
		f := Start(body())
		if f.kind == kindCompleted {
			if !f.result.IsValue() {
				return f
			}
			continue
		}
		return whileContinue(f, cond, body)
	}
	return Zero()
}

func whileContinue(f Flux[struct{}], cond func() bool, body func() Flux[struct{}]) Flux[struct{}] {
	switch f.kind {
	case kindCompleted:
		if !f.result.IsValue() {
			return f
		}
		return whileFrom(cond, body)
	case kindRequesting:
		req, cont := f.request, f.reqCont
		return Requesting[struct{}](req, func(r Result[any]) Flux[struct{}] {
			return whileContinue(cont(r), cond, body)
		})
	default: // kindWaiting
		return Waiting[struct{}](func(e Event) Flux[struct{}] {
			return whileContinue(Step(f, e), cond, body)
		})
	}
}

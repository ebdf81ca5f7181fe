package par

import ivr "github.com/taucore/ivr"

// All runs a and b concurrently (in the cooperative, single-threaded sense:
// interleaved tick by tick), completing once both have completed with a
// Value. If either fails (Error or Cancelled), the other is driven to
// completion via [ivr.Cancel] and its own result discarded; the composite
// fails with the first-observed failure.
func All[A, B any](a ivr.Flux[A], b ivr.Flux[B]) ivr.Flux[Pair[A, B]] {
	return ivr.Delay(func() ivr.Flux[Pair[A, B]] {
		return settle(ivr.Start(a), ivr.Start(b))
	})
}

func settle[A, B any](a ivr.Flux[A], b ivr.Flux[B]) ivr.Flux[Pair[A, B]] {
	if aRes, done := a.Result(); done && !aRes.IsValue() {
		return failLeft[A, B](aRes, b)
	}
	if bRes, done := b.Result(); done && !bRes.IsValue() {
		return failRight[A, B](bRes, a)
	}
	aRes, aDone := a.Result()
	bRes, bDone := b.Result()
	if aDone && bDone {
		av, _ := aRes.Value()
		bv, _ := bRes.Value()
		return ivr.Completed(ivr.ValueResult(Pair[A, B]{First: av, Second: bv}))
	}
	if a.IsRequesting() {
		req, _ := a.PendingRequest()
		return ivr.Requesting[Pair[A, B]](req, func(r ivr.Result[any]) ivr.Flux[Pair[A, B]] {
			return settle(ivr.Resolve(a, r), b)
		})
	}
	if b.IsRequesting() {
		req, _ := b.PendingRequest()
		return ivr.Requesting[Pair[A, B]](req, func(r ivr.Result[any]) ivr.Flux[Pair[A, B]] {
			return settle(a, ivr.Resolve(b, r))
		})
	}
	// Both Waiting (or one already Completed(Value), the other Waiting).
	return ivr.Waiting[Pair[A, B]](func(e ivr.Event) ivr.Flux[Pair[A, B]] {
		na, nb := a, b
		if a.IsWaiting() {
			na = ivr.Step(a, e)
		}
		if b.IsWaiting() {
			nb = ivr.Step(b, e)
		}
		return settle(na, nb)
	})
}

func failLeft[A, B any](aRes ivr.Result[A], b ivr.Flux[B]) ivr.Flux[Pair[A, B]] {
	cb := ivr.Cancel(b)
	if cb.IsRequesting() {
		req, _ := cb.PendingRequest()
		return ivr.Requesting[Pair[A, B]](req, func(r ivr.Result[any]) ivr.Flux[Pair[A, B]] {
			return failLeft[A, B](aRes, ivr.Resolve(cb, r))
		})
	}
	return ivr.Completed[Pair[A, B]](liftFailureResult[A, Pair[A, B]](aRes))
}

func failRight[A, B any](bRes ivr.Result[B], a ivr.Flux[A]) ivr.Flux[Pair[A, B]] {
	ca := ivr.Cancel(a)
	if ca.IsRequesting() {
		req, _ := ca.PendingRequest()
		return ivr.Requesting[Pair[A, B]](req, func(r ivr.Result[any]) ivr.Flux[Pair[A, B]] {
			return failRight[A, B](bRes, ivr.Resolve(ca, r))
		})
	}
	return ivr.Completed[Pair[A, B]](liftFailureResult[B, Pair[A, B]](bRes))
}

// liftFailureResult re-tags a known-non-Value Result[T] as a Result[U]. It
// panics if r is a Value; callers must only invoke it on a failed branch.
func liftFailureResult[T, U any](r ivr.Result[T]) ivr.Result[U] {
	if r.IsError() {
		return ivr.ErrorResult[U](r.Err())
	}
	if r.IsCancelled() {
		return ivr.Cancelled[U]()
	}
	panic("par: liftFailureResult called on a Value result")
}

// AllList generalizes [All] to a slice, completing once every element has
// completed with a Value and producing the results in input order. Failure
// and cancellation ordering is left-to-right, matching [All].
func AllList[T any](xs []ivr.Flux[T]) ivr.Flux[[]T] {
	return ivr.Delay(func() ivr.Flux[[]T] {
		started := make([]ivr.Flux[T], len(xs))
		for i, x := range xs {
			started[i] = ivr.Start(x)
		}
		return settleList(started)
	})
}

func settleList[T any](xs []ivr.Flux[T]) ivr.Flux[[]T] {
	for _, x := range xs {
		if r, done := x.Result(); done && !r.IsValue() {
			return failList(r, xs)
		}
	}
	allDone := true
	for _, x := range xs {
		if !x.IsCompleted() {
			allDone = false
			break
		}
	}
	if allDone {
		vals := make([]T, len(xs))
		for i, x := range xs {
			r, _ := x.Result()
			vals[i], _ = r.Value()
		}
		return ivr.Completed(ivr.ValueResult(vals))
	}
	for i, x := range xs {
		if x.IsRequesting() {
			req, _ := x.PendingRequest()
			return ivr.Requesting[[]T](req, func(r ivr.Result[any]) ivr.Flux[[]T] {
				next := append([]ivr.Flux[T]{}, xs...)
				next[i] = ivr.Resolve(x, r)
				return settleList(next)
			})
		}
	}
	return ivr.Waiting[[]T](func(e ivr.Event) ivr.Flux[[]T] {
		next := append([]ivr.Flux[T]{}, xs...)
		for i, x := range xs {
			if x.IsWaiting() {
				next[i] = ivr.Step(x, e)
			}
		}
		return settleList(next)
	})
}

func failList[T any](primary ivr.Result[T], xs []ivr.Flux[T]) ivr.Flux[[]T] {
	cancelled := make([]ivr.Flux[T], len(xs))
	for i, x := range xs {
		if r, done := x.Result(); done && !r.IsValue() {
			cancelled[i] = x
			continue
		}
		cancelled[i] = ivr.Cancel(x)
	}
	return finishCancelAll(primary, cancelled)
}

func finishCancelAll[T any](primary ivr.Result[T], xs []ivr.Flux[T]) ivr.Flux[[]T] {
	for i, x := range xs {
		if x.IsRequesting() {
			req, _ := x.PendingRequest()
			return ivr.Requesting[[]T](req, func(r ivr.Result[any]) ivr.Flux[[]T] {
				next := append([]ivr.Flux[T]{}, xs...)
				next[i] = ivr.Resolve(x, r)
				return finishCancelAll(primary, next)
			})
		}
	}
	return ivr.Completed[[]T](liftFailureResult[T, []T](primary))
}

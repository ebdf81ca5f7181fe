package par

import ivr "github.com/taucore/ivr"

// Race runs a and b concurrently and completes as soon as either reaches
// Completed, by any outcome (Value, Error, or Cancelled). The loser is
// driven to completion via [ivr.Cancel] and its own result discarded. Ties
// (both already Completed at the same check point) are broken in favor of
// a. Critically, once a winner is established at a tick, the loser never
// observes that tick's event.
func Race[A, B any](a ivr.Flux[A], b ivr.Flux[B]) ivr.Flux[Either[A, B]] {
	return ivr.Delay(func() ivr.Flux[Either[A, B]] {
		return raceSettle(ivr.Start(a), ivr.Start(b))
	})
}

func raceSettle[A, B any](a ivr.Flux[A], b ivr.Flux[B]) ivr.Flux[Either[A, B]] {
	if aRes, done := a.Result(); done {
		return raceFinishLeft[A, B](aRes, b)
	}
	if bRes, done := b.Result(); done {
		return raceFinishRight[A, B](bRes, a)
	}
	if a.IsRequesting() {
		req, _ := a.PendingRequest()
		return ivr.Requesting[Either[A, B]](req, func(r ivr.Result[any]) ivr.Flux[Either[A, B]] {
			return raceSettle(ivr.Resolve(a, r), b)
		})
	}
	if b.IsRequesting() {
		req, _ := b.PendingRequest()
		return ivr.Requesting[Either[A, B]](req, func(r ivr.Result[any]) ivr.Flux[Either[A, B]] {
			return raceSettle(a, ivr.Resolve(b, r))
		})
	}
	// Both Waiting: deliver to a first. If a completes this tick, b must
	// never see the event — it goes straight to cancellation instead.
	return ivr.Waiting[Either[A, B]](func(e ivr.Event) ivr.Flux[Either[A, B]] {
		na := ivr.Step(a, e)
		if naRes, done := na.Result(); done {
			return raceFinishLeft[A, B](naRes, b)
		}
		nb := ivr.Step(b, e)
		if nbRes, done := nb.Result(); done {
			return raceFinishRight[A, B](nbRes, na)
		}
		return raceSettle(na, nb)
	})
}

func raceFinishLeft[A, B any](aRes ivr.Result[A], b ivr.Flux[B]) ivr.Flux[Either[A, B]] {
	cb := ivr.Cancel(b)
	if cb.IsRequesting() {
		req, _ := cb.PendingRequest()
		return ivr.Requesting[Either[A, B]](req, func(r ivr.Result[any]) ivr.Flux[Either[A, B]] {
			return raceFinishLeft[A, B](aRes, ivr.Resolve(cb, r))
		})
	}
	return ivr.Completed[Either[A, B]](wrapLeft[A, B](aRes))
}

func raceFinishRight[A, B any](bRes ivr.Result[B], a ivr.Flux[A]) ivr.Flux[Either[A, B]] {
	ca := ivr.Cancel(a)
	if ca.IsRequesting() {
		req, _ := ca.PendingRequest()
		return ivr.Requesting[Either[A, B]](req, func(r ivr.Result[any]) ivr.Flux[Either[A, B]] {
			return raceFinishRight[A, B](bRes, ivr.Resolve(ca, r))
		})
	}
	return ivr.Completed[Either[A, B]](wrapRight[A, B](bRes))
}

func wrapLeft[A, B any](r ivr.Result[A]) ivr.Result[Either[A, B]] {
	if v, ok := r.Value(); ok {
		return ivr.ValueResult(Left[A, B](v))
	}
	if r.IsError() {
		return ivr.ErrorResult[Either[A, B]](r.Err())
	}
	return ivr.Cancelled[Either[A, B]]()
}

func wrapRight[A, B any](r ivr.Result[B]) ivr.Result[Either[A, B]] {
	if v, ok := r.Value(); ok {
		return ivr.ValueResult(Right[A, B](v))
	}
	if r.IsError() {
		return ivr.ErrorResult[Either[A, B]](r.Err())
	}
	return ivr.Cancelled[Either[A, B]]()
}

// RaceList generalizes [Race] to a slice, resolving ties by list order. The
// winner's index and result are reported in [Winner]; every other branch is
// cancelled.
func RaceList[T any](xs []ivr.Flux[T]) ivr.Flux[Winner[T]] {
	return ivr.Delay(func() ivr.Flux[Winner[T]] {
		started := make([]ivr.Flux[T], len(xs))
		for i, x := range xs {
			started[i] = ivr.Start(x)
		}
		return raceSettleList(started)
	})
}

func raceSettleList[T any](xs []ivr.Flux[T]) ivr.Flux[Winner[T]] {
	for i, x := range xs {
		if r, done := x.Result(); done {
			return finishRaceAt(i, r, len(xs), func(j int) ivr.Flux[T] { return xs[j] })
		}
	}
	for i, x := range xs {
		if x.IsRequesting() {
			req, _ := x.PendingRequest()
			return ivr.Requesting[Winner[T]](req, func(r ivr.Result[any]) ivr.Flux[Winner[T]] {
				next := append([]ivr.Flux[T]{}, xs...)
				next[i] = ivr.Resolve(x, r)
				return raceSettleList(next)
			})
		}
	}
	return ivr.Waiting[Winner[T]](func(e ivr.Event) ivr.Flux[Winner[T]] {
		next := make([]ivr.Flux[T], len(xs))
		for i, x := range xs {
			next[i] = ivr.Step(x, e)
			if r, done := next[i].Result(); done {
				winnerIdx, winnerRes, stepped := i, r, next
				return finishRaceAt(winnerIdx, winnerRes, len(xs), func(j int) ivr.Flux[T] {
					if j < winnerIdx {
						return stepped[j]
					}
					return xs[j]
				})
			}
		}
		return raceSettleList(next)
	})
}

type loser[T any] struct {
	idx int
	f   ivr.Flux[T]
}

func finishRaceAt[T any](winnerIdx int, winnerRes ivr.Result[T], n int, otherAt func(int) ivr.Flux[T]) ivr.Flux[Winner[T]] {
	losers := make([]loser[T], 0, n-1)
	for j := 0; j < n; j++ {
		if j == winnerIdx {
			continue
		}
		losers = append(losers, loser[T]{idx: j, f: ivr.Cancel(otherAt(j))})
	}
	return finishCancelList(winnerIdx, winnerRes, losers)
}

func finishCancelList[T any](winnerIdx int, winnerRes ivr.Result[T], losers []loser[T]) ivr.Flux[Winner[T]] {
	for k, l := range losers {
		if l.f.IsRequesting() {
			req, _ := l.f.PendingRequest()
			return ivr.Requesting[Winner[T]](req, func(r ivr.Result[any]) ivr.Flux[Winner[T]] {
				next := append([]loser[T]{}, losers...)
				next[k] = loser[T]{idx: l.idx, f: ivr.Resolve(l.f, r)}
				return finishCancelList(winnerIdx, winnerRes, next)
			})
		}
	}
	return ivr.Completed[Winner[T]](wrapWinner(winnerIdx, winnerRes))
}

func wrapWinner[T any](idx int, r ivr.Result[T]) ivr.Result[Winner[T]] {
	if v, ok := r.Value(); ok {
		return ivr.ValueResult(Winner[T]{Index: idx, Value: v})
	}
	if r.IsError() {
		return ivr.ErrorResult[Winner[T]](r.Err())
	}
	return ivr.Cancelled[Winner[T]]()
}

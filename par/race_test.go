package par_test

import (
	"errors"
	"testing"

	ivr "github.com/taucore/ivr"
	"github.com/taucore/ivr/par"
)

// S5: race'(return 1, waitFor(Event1)) -- immediate Left(1), right branch
// never even started past its suspension.
func TestRace_PreCompletedLeftWinsWithoutTouchingRight(t *testing.T) {
	left := ivr.Return(1)
	right := waitFor(func(tickEvent) bool { return true })

	f := ivr.Start(par.Race(left, right))
	r, done := f.Result()
	if !done {
		t.Fatalf("expected immediate completion, got %+v", f)
	}
	v, _ := r.Value()
	lv, ok := v.LeftValue()
	if !v.IsLeft() || !ok || lv != 1 {
		t.Fatalf("expected Left(1), got %+v", v)
	}
}

// S4: race'(waitFor(Event1), waitFor(Event2)) then step(Event1) -- Left(n),
// right loser never observes Event1 in its result (it is cancelled instead).
func TestRace_WinnerAtATickExcludesLoserFromThatEvent(t *testing.T) {
	observed := false
	left := waitFor(func(e tickEvent) bool { return e.n == 1 })
	right := ivr.Bind(
		ivr.WaitFor(func(e tickEvent) (tickEvent, bool) { return e, true }),
		func(tickEvent) ivr.Flux[int] {
			observed = true
			return ivr.Return(-1)
		},
	)

	f := ivr.Start(par.Race(left, right))
	final := ivr.Step(f, tickEvent{n: 1})
	r, done := final.Result()
	if !done {
		t.Fatalf("expected completion on the matching event, got %+v", final)
	}
	v, _ := r.Value()
	lv, ok := v.LeftValue()
	if !v.IsLeft() || !ok || lv != 1 {
		t.Fatalf("expected Left(1), got %+v", v)
	}
	if observed {
		t.Fatal("expected the loser never to observe the winning tick's event")
	}
}

func TestRace_RightWinsWhenLeftNeverMatches(t *testing.T) {
	left := waitFor(func(e tickEvent) bool { return e.n == 99 })
	right := waitFor(func(e tickEvent) bool { return e.n == 2 })

	f := ivr.Start(par.Race(left, right))
	final := ivr.Step(f, tickEvent{n: 2})
	r, done := final.Result()
	if !done {
		t.Fatalf("expected completion, got %+v", final)
	}
	v, _ := r.Value()
	rv, ok := v.RightValue()
	if !v.IsRight() || !ok || rv != 2 {
		t.Fatalf("expected Right(2), got %+v", v)
	}
}

func TestRace_ErrorOutcomeStillWinsAndCancelsLoser(t *testing.T) {
	sentinel := errors.New("boom")
	left := ivr.Completed[int](ivr.ErrorResult[int](sentinel))
	right := waitFor(func(tickEvent) bool { return true })

	f := ivr.Start(par.Race(left, right))
	r, done := f.Result()
	if !done || !r.IsError() || !errors.Is(r.Err(), sentinel) {
		t.Fatalf("expected the left error to win the race, got %+v", f)
	}
}

func TestRaceList_TieBreaksInListOrder(t *testing.T) {
	xs := []ivr.Flux[int]{ivr.Return(10), ivr.Return(20)}
	f := ivr.Start(par.RaceList(xs))
	r, done := f.Result()
	if !done {
		t.Fatalf("expected immediate completion, got %+v", f)
	}
	v, _ := r.Value()
	if v.Index != 0 || v.Value != 10 {
		t.Fatalf("expected Winner{0, 10}, got %+v", v)
	}
}

func TestRaceList_LaterWinnerCancelsAllOthers(t *testing.T) {
	xs := []ivr.Flux[int]{
		waitFor(func(e tickEvent) bool { return e.n == 99 }),
		waitFor(func(e tickEvent) bool { return e.n == 2 }),
		waitFor(func(e tickEvent) bool { return e.n == 99 }),
	}
	f := ivr.Start(par.RaceList(xs))
	final := ivr.Step(f, tickEvent{n: 2})
	r, done := final.Result()
	if !done {
		t.Fatalf("expected completion, got %+v", final)
	}
	v, _ := r.Value()
	if v.Index != 1 || v.Value != 2 {
		t.Fatalf("expected Winner{1, 2}, got %+v", v)
	}
}

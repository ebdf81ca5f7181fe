package sideshow

import ivr "github.com/taucore/ivr"

// state tracks the currently attached sideshow, if any, alongside the tag
// that scopes this attachment's in-band requests.
type state[S any] struct {
	tag    ivr.Id
	active bool
	value  S
	flux   ivr.Flux[struct{}]
}

// AttachTo wraps a control IVR (built from the [Control] handed to
// controlFn) with sideshow management. The returned flux's lifetime is the
// control IVR's lifetime: once the control completes, the sideshow is
// cancelled and discarded, and the control's own result is returned
// unchanged (§4.8's error-precedence rule reduces to this, since the
// composite result is always the control's).
func AttachTo[S, R any](controlFn func(Control[S]) ivr.Flux[R]) ivr.Flux[R] {
	return ivr.Delay(func() ivr.Flux[R] {
		tag := ivr.NextId()
		ctrl := &control[S]{tag: tag}
		return tick(ivr.Start(controlFn(ctrl)), state[S]{tag: tag})
	})
}

// tick advances the pair (control, sideshow) one step: drain the
// sideshow's own pending requests first, then advance the control flux,
// intercepting its tagged Replace/GetState requests locally and bubbling
// everything else to the real host.
func tick[S, R any](c ivr.Flux[R], ss state[S]) ivr.Flux[R] {
	if ss.active && ss.flux.IsRequesting() {
		req, _ := ss.flux.PendingRequest()
		return ivr.Requesting[R](req, func(r ivr.Result[any]) ivr.Flux[R] {
			next := ss
			next.flux = ivr.Resolve(ss.flux, r)
			return tick(c, next)
		})
	}

	if c.IsRequesting() {
		req, _ := c.PendingRequest()
		if rep, ok := req.(replaceRequest[S]); ok && rep.tag == ss.tag {
			return handleReplace(c, ss, rep)
		}
		if gs, ok := req.(getStateRequest); ok && gs.tag == ss.tag {
			return handleGetState(c, ss, gs)
		}
		return ivr.Requesting[R](req, func(r ivr.Result[any]) ivr.Flux[R] {
			return tick(ivr.Resolve(c, r), ss)
		})
	}

	if cRes, done := c.Result(); done {
		return finishControl(cRes, ss)
	}

	// c is Waiting; ss is Waiting or idle. A single event goes to both, the
	// sideshow first.
	return ivr.Waiting[R](func(e ivr.Event) ivr.Flux[R] {
		next := ss
		if ss.active && ss.flux.IsWaiting() {
			next.flux = ivr.Step(ss.flux, e)
		}
		return tick(ivr.Step(c, e), next)
	})
}

func handleGetState[S, R any](c ivr.Flux[R], ss state[S], _ getStateRequest) ivr.Flux[R] {
	var opt Option[S]
	if ss.active {
		opt = Some(ss.value)
	} else {
		opt = None[S]()
	}
	return tick(ivr.Resolve(c, ivr.ValueResult[any](opt)), ss)
}

func handleReplace[S, R any](c ivr.Flux[R], ss state[S], rep replaceRequest[S]) ivr.Flux[R] {
	if !ss.active {
		return driveNewSideshow(c, ivr.Start(rep.ivr), ss.tag, rep.state)
	}
	return cancelOldThenReplace(c, ivr.Cancel(ss.flux), rep, ss.tag)
}

func cancelOldThenReplace[S, R any](c ivr.Flux[R], cancelling ivr.Flux[struct{}], rep replaceRequest[S], tag ivr.Id) ivr.Flux[R] {
	if cancelling.IsRequesting() {
		req, _ := cancelling.PendingRequest()
		return ivr.Requesting[R](req, func(r ivr.Result[any]) ivr.Flux[R] {
			return cancelOldThenReplace(c, ivr.Resolve(cancelling, r), rep, tag)
		})
	}
	res, _ := cancelling.Result()
	if res.IsError() {
		nc := ivr.Resolve(c, ivr.ErrorResult[any](res.Err()))
		return tick(nc, state[S]{tag: tag})
	}
	return driveNewSideshow(c, ivr.Start(rep.ivr), tag, rep.state)
}

func driveNewSideshow[S, R any](c ivr.Flux[R], newFlux ivr.Flux[struct{}], tag ivr.Id, newState S) ivr.Flux[R] {
	if newFlux.IsRequesting() {
		req, _ := newFlux.PendingRequest()
		return ivr.Requesting[R](req, func(r ivr.Result[any]) ivr.Flux[R] {
			return driveNewSideshow(c, ivr.Resolve(newFlux, r), tag, newState)
		})
	}
	if res, done := newFlux.Result(); done && res.IsError() {
		nc := ivr.Resolve(c, ivr.ErrorResult[any](res.Err()))
		return tick(nc, state[S]{tag: tag})
	}
	nc := ivr.Resolve(c, ivr.ValueResult[any](struct{}{}))
	return tick(nc, state[S]{tag: tag, active: true, value: newState, flux: newFlux})
}

func finishControl[S, R any](cRes ivr.Result[R], ss state[S]) ivr.Flux[R] {
	if !ss.active {
		return ivr.Completed(cRes)
	}
	return finishControlDrain(cRes, ivr.Cancel(ss.flux))
}

func finishControlDrain[S, R any](cRes ivr.Result[R], sideshowFlux ivr.Flux[struct{}]) ivr.Flux[R] {
	if sideshowFlux.IsRequesting() {
		req, _ := sideshowFlux.PendingRequest()
		return ivr.Requesting[R](req, func(r ivr.Result[any]) ivr.Flux[R] {
			return finishControlDrain(cRes, ivr.Resolve(sideshowFlux, r))
		})
	}
	return ivr.Completed(cRes)
}

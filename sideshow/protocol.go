package sideshow

import (
	"fmt"

	ivr "github.com/taucore/ivr"
)

// replaceRequest and getStateRequest are the in-band protocol values of
// §4.8, tagged by a fresh [ivr.Id] per [AttachTo] invocation so a nested
// attachment's requests are never mistaken for an outer one's.
type replaceRequest[S any] struct {
	tag   ivr.Id
	state S
	ivr   ivr.Flux[struct{}]
}

type getStateRequest struct {
	tag ivr.Id
}

// control is the concrete [Control] handed to a control IVR: its methods
// issue tagged Requesting nodes that [tick] intercepts locally rather than
// passing to a real host.
type control[S any] struct {
	tag ivr.Id
}

func (c *control[S]) Begin(state S, sideshowIvr ivr.Flux[struct{}]) ivr.Flux[struct{}] {
	return ivr.Requesting[struct{}](
		replaceRequest[S]{tag: c.tag, state: state, ivr: sideshowIvr},
		func(r ivr.Result[any]) ivr.Flux[struct{}] {
			switch {
			case r.IsError():
				return ivr.Completed[struct{}](ivr.ErrorResult[struct{}](r.Err()))
			case r.IsCancelled():
				return ivr.Completed[struct{}](ivr.Cancelled[struct{}]())
			default:
				return ivr.Completed(ivr.ValueResult(struct{}{}))
			}
		},
	)
}

func (c *control[S]) GetState() ivr.Flux[Option[S]] {
	return ivr.Requesting[Option[S]](
		getStateRequest{tag: c.tag},
		func(r ivr.Result[any]) ivr.Flux[Option[S]] {
			if r.IsError() {
				return ivr.Completed[Option[S]](ivr.ErrorResult[Option[S]](r.Err()))
			}
			if r.IsCancelled() {
				return ivr.Completed[Option[S]](ivr.Cancelled[Option[S]]())
			}
			v, _ := r.Value()
			opt, ok := v.(Option[S])
			if !ok {
				panic(fmt.Sprintf("sideshow: GetState reply has type %T, want sideshow.Option", v))
			}
			return ivr.Completed(ivr.ValueResult(opt))
		},
	)
}

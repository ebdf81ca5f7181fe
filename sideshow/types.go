// Package sideshow implements nested control of a replaceable inner IVR
// (§4.8): an outer "control" IVR manages a "sideshow" IVR it can begin,
// replace, or query without routing through the host's event channel, so
// the coordination never pollutes the host-visible trace and works even
// without a host driving it.
package sideshow

import ivr "github.com/taucore/ivr"

// Option is the presence-or-absence result of [Control.GetState]: Some(tag)
// while a sideshow is installed, None while the attachment is idle (before
// the first Begin, or after a Begin that failed).
type Option[S any] struct {
	value S
	ok    bool
}

// Some constructs a present Option.
func Some[S any](v S) Option[S] { return Option[S]{value: v, ok: true} }

// None constructs an absent Option.
func None[S any]() Option[S] { return Option[S]{} }

// Get returns the wrapped value and true if present.
func (o Option[S]) Get() (S, bool) { return o.value, o.ok }

// Control is the interface an attached control IVR uses to manage its
// sideshow.
type Control[S any] interface {
	// Begin cancels the current sideshow (if any), installs ivr tagged with
	// state, and returns only once the new sideshow has advanced to
	// Waiting or Completed. An Error from the new sideshow's first step,
	// or from cancelling the old one, surfaces as this flux's Error; in
	// the latter case the new sideshow is discarded and the attachment is
	// left idle.
	Begin(state S, sideshow ivr.Flux[struct{}]) ivr.Flux[struct{}]

	// GetState returns the currently installed state tag, or None if no
	// sideshow is installed (none begun yet, or the last Begin failed).
	GetState() ivr.Flux[Option[S]]
}

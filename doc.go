// Package ivr implements a small, deterministic, single-threaded cooperative
// concurrency engine for interactive value routines (IVRs): long-running
// processes that respond to discrete external events, can be composed in
// parallel and sequentially (see the sibling [github.com/taucore/ivr/par]
// package), issue host-mediated requests, and can be cancelled at any point
// with guaranteed teardown of scoped resources.
//
// # Core model
//
// A [Flux] is the runtime representation of a suspended IVR. It is always
// exactly one of four states: not-yet-started ([Delay]), paused awaiting an
// event ([Waiting]), paused awaiting a host reply to a dispatched request
// ([Requesting]), or terminal ([Completed]). [Start] drives a flux through
// any [Delay] chain; [Step] advances a [Waiting] flux with an event;
// [DispatchRequests] drives a flux through any immediate chain of
// [Requesting] nodes by resolving each against a host callback.
//
// # Composition
//
// [Bind] sequences two fluxes; [TryFinally], [TryWith], and [Use] provide
// structured error handling and scoped-resource cleanup; [For] and [While]
// desugar to a stack-safe trampoline rather than recursive [Bind] chains.
// [Wait] and [Requesting] are the primitive building blocks every other
// combinator is built from.
//
// # Cancellation
//
// [TryCancel] delivers the distinguished [CancelEvent] to a waiting flux.
// Every combinator in this package and in [github.com/taucore/ivr/par] is
// built on top of [Wait], which recognizes [CancelEvent] before consulting
// the caller's filter — so cancellation always unwinds through [Use]'s and
// [TryFinally]'s scoped-resource release, without the host or any combinator
// needing special-case logic.
package ivr

package ivr

// resultKind tags the three-valued outcome a flux can terminate with.
type resultKind int

const (
	resultValue resultKind = iota
	resultError
	resultCancelled
)

// Result is the terminal, three-valued outcome of an IVR: a value, an
// error, or cancellation. Once a [Flux] reaches Completed(result), the
// result is immutable.
type Result[T any] struct {
	kind resultKind
	val  T
	err  error
}

// ValueResult wraps a successfully produced value.
func ValueResult[T any](v T) Result[T] {
	return Result[T]{kind: resultValue, val: v}
}

// ErrorResult wraps a failure. Panics if err is nil — a Result that carries
// no payload is a [ValueResult], not an [ErrorResult].
func ErrorResult[T any](err error) Result[T] {
	if err == nil {
		panic("ivr: ErrorResult requires a non-nil error")
	}
	return Result[T]{kind: resultError, err: err}
}

// Cancelled returns the Cancelled outcome for T.
func Cancelled[T any]() Result[T] {
	return Result[T]{kind: resultCancelled}
}

// IsValue reports whether the result completed with a value.
func (r Result[T]) IsValue() bool { return r.kind == resultValue }

// IsError reports whether the result completed with an error.
func (r Result[T]) IsError() bool { return r.kind == resultError }

// IsCancelled reports whether the result was cancelled.
func (r Result[T]) IsCancelled() bool { return r.kind == resultCancelled }

// Value returns the wrapped value and true if the result is a value,
// otherwise the zero value and false.
func (r Result[T]) Value() (T, bool) {
	return r.val, r.kind == resultValue
}

// Err returns the wrapped error, or nil if the result is not an error.
func (r Result[T]) Err() error {
	if r.kind == resultError {
		return r.err
	}
	return nil
}

// Map transforms a Value result with f, leaving Error and Cancelled
// untouched. Binding over a non-value short-circuits, matching the
// strict-propagation contract in §4.2.
func Map[T, U any](r Result[T], f func(T) U) Result[U] {
	switch r.kind {
	case resultValue:
		return ValueResult(f(r.val))
	case resultError:
		return ErrorResult[U](r.err)
	default:
		return Cancelled[U]()
	}
}

// BindResult sequences a Result-producing function over a Value result.
// Error and Cancelled propagate without invoking f. Named distinctly from
// the flux-level [Bind] builder operation, which this package also exports.
func BindResult[T, U any](r Result[T], f func(T) Result[U]) Result[U] {
	switch r.kind {
	case resultValue:
		return f(r.val)
	case resultError:
		return ErrorResult[U](r.err)
	default:
		return Cancelled[U]()
	}
}

// liftNonValue re-tags a non-Value result to a different payload type. It
// panics if r is a Value — callers must check IsValue first.
func liftNonValue[T, U any](r Result[T]) Result[U] {
	switch r.kind {
	case resultError:
		return ErrorResult[U](r.err)
	case resultCancelled:
		return Cancelled[U]()
	default:
		panic("ivr: liftNonValue called on a Value result")
	}
}

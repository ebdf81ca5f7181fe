// Package par implements the parallel-all (par/lpar) and parallel-race
// (par'/lpar') combinators over ivr.Flux, built entirely on the exported
// ivr API (Start/Step/Resolve/TryCancel/Cancel) so a composite flux is
// itself an ordinary ivr.Flux, nestable inside further par/race trees or a
// sequential Bind chain.
//
// All combinators in this package are pure: they never touch a host,
// context, or observer. Requests from either branch are hoisted as the
// composite's own Requesting state rather than resolved inline, so the
// enclosing host sees exactly the same requests the branches would have
// issued standalone, in left-to-right order.
package par

// Pair is the result type of the two-ary all-combinator [All].
type Pair[A, B any] struct {
	First  A
	Second B
}

// Either is the result type of the two-ary race-combinator [Race]: exactly
// one of Left/Right holds a value, depending on which child won.
type Either[A, B any] struct {
	left   A
	right  B
	isLeft bool
}

// Left constructs an Either holding the left branch's value.
func Left[A, B any](v A) Either[A, B] {
	return Either[A, B]{left: v, isLeft: true}
}

// Right constructs an Either holding the right branch's value.
func Right[A, B any](v B) Either[A, B] {
	return Either[A, B]{right: v}
}

// IsLeft reports whether the left branch won.
func (e Either[A, B]) IsLeft() bool { return e.isLeft }

// IsRight reports whether the right branch won.
func (e Either[A, B]) IsRight() bool { return !e.isLeft }

// LeftValue returns the left value and true if the left branch won.
func (e Either[A, B]) LeftValue() (A, bool) { return e.left, e.isLeft }

// RightValue returns the right value and true if the right branch won.
func (e Either[A, B]) RightValue() (B, bool) { return e.right, !e.isLeft }

// Winner is the result type of the list race-combinator [RaceList]: the
// index (in the original slice) of the branch that won, and its value.
type Winner[T any] struct {
	Index int
	Value T
}

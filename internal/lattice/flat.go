package lattice

import "fmt"

type flatKind uint8

const (
	flatTop flatKind = iota
	flatValue
	flatBottom
)

// Flat is the three-level lattice Top > Value(v) > Bottom. Top means
// unconstrained, Value means exactly one concrete value, Bottom means the
// facts contradict (the location is unreachable or over-constrained).
type Flat[T Equaler[T]] struct {
	kind flatKind
	val  T
}

// Top returns the unconstrained fact.
func Top[T Equaler[T]]() Flat[T] {
	return Flat[T]{kind: flatTop}
}

// Of returns the fact "exactly v".
func Of[T Equaler[T]](v T) Flat[T] {
	return Flat[T]{kind: flatValue, val: v}
}

// Bottom returns the contradictory fact.
func Bottom[T Equaler[T]]() Flat[T] {
	return Flat[T]{kind: flatBottom}
}

func (f Flat[T]) IsTop() bool    { return f.kind == flatTop }
func (f Flat[T]) IsBottom() bool { return f.kind == flatBottom }

// Value returns the concrete value when the fact is a single value.
func (f Flat[T]) Value() (T, bool) {
	return f.val, f.kind == flatValue
}

func (f Flat[T]) Equal(other Flat[T]) bool {
	if f.kind != other.kind {
		return false
	}
	if f.kind != flatValue {
		return true
	}
	return f.val.Equal(other.val)
}

// Meet joins two facts: Top is the identity, Bottom absorbs, and two
// distinct concrete values contradict down to Bottom.
func (f Flat[T]) Meet(other Flat[T]) Flat[T] {
	switch {
	case f.kind == flatTop:
		return other
	case other.kind == flatTop:
		return f
	case f.kind == flatBottom || other.kind == flatBottom:
		return Bottom[T]()
	case f.val.Equal(other.val):
		return f
	default:
		return Bottom[T]()
	}
}

// MeetWith folds other into f and reports whether f changed.
func (f *Flat[T]) MeetWith(other Flat[T]) bool {
	met := f.Meet(other)
	changed := !f.Equal(met)
	*f = met
	return changed
}

func (f Flat[T]) String() string {
	switch f.kind {
	case flatTop:
		return "⊤"
	case flatBottom:
		return "⊥"
	default:
		return fmt.Sprintf("%v", f.val)
	}
}

// Package lattice defines the meet algebra the dataflow engine runs on,
// together with the two concrete fact shapes the backend needs: a flat
// lattice for abstract single values and a bit-vector treated as a product
// of booleans.
package lattice

// SemiLattice is the capability contract the solver requires of a fact
// type. Meet is the pure join of two facts; MeetWith folds other into the
// receiver in place and reports whether the receiver changed, which is how
// the solver detects convergence without extra comparisons.
type SemiLattice[L any] interface {
	Meet(other L) L
	MeetWith(other L) bool
}

// Equaler is implemented by values that can report semantic equality.
type Equaler[T any] interface {
	Equal(other T) bool
}

// Product exposes per-index access to a fact that behaves as an indexable
// array of sub-lattice values.
type Product[E any] interface {
	At(i int) E
	Len() int
}

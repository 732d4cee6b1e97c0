package lattice

import (
	"fmt"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// BitVector is a fixed-width set of booleans used for bit-vector dataflow
// facts such as reaching definitions, where bit i means "declaration i may
// be live". Meet is set union. BitVector also acts as a product lattice of
// booleans through At and Len.
type BitVector struct {
	bits *bitset.BitSet
}

var (
	_ SemiLattice[*BitVector] = (*BitVector)(nil)
	_ Product[bool]           = (*BitVector)(nil)
)

// NewBitVector returns an all-zeros vector of the given width.
func NewBitVector(width int) *BitVector {
	return &BitVector{bits: bitset.New(uint(width))}
}

// At reports whether bit i is set.
func (v *BitVector) At(i int) bool {
	return v.bits.Test(uint(i))
}

// Len returns the vector width in bits.
func (v *BitVector) Len() int {
	return int(v.bits.Len())
}

// Insert sets bit i.
func (v *BitVector) Insert(i int) {
	v.bits.Set(uint(i))
}

// Remove clears bit i.
func (v *BitVector) Remove(i int) {
	v.bits.Clear(uint(i))
}

// Fill sets every bit.
func (v *BitVector) Fill() {
	v.bits.ClearAll()
	v.bits.FlipRange(0, v.bits.Len())
}

// Flip inverts every bit.
func (v *BitVector) Flip() {
	v.bits.FlipRange(0, v.bits.Len())
}

// Clone returns an independent copy.
func (v *BitVector) Clone() *BitVector {
	return &BitVector{bits: v.bits.Clone()}
}

// UnionWith folds other into v with bitwise or.
func (v *BitVector) UnionWith(other *BitVector) {
	v.bits.InPlaceUnion(other.bits)
}

// IntersectWith folds other into v with bitwise and.
func (v *BitVector) IntersectWith(other *BitVector) {
	v.bits.InPlaceIntersection(other.bits)
}

func (v *BitVector) Equal(other *BitVector) bool {
	return v.bits.Equal(other.bits)
}

// Count returns the number of set bits.
func (v *BitVector) Count() int {
	return int(v.bits.Count())
}

// Ones returns the indices of the set bits in increasing order.
func (v *BitVector) Ones() []int {
	ones := make([]int, 0, v.Count())
	for i, ok := v.bits.NextSet(0); ok; i, ok = v.bits.NextSet(i + 1) {
		ones = append(ones, int(i))
	}
	return ones
}

// Meet returns the union of the two vectors.
func (v *BitVector) Meet(other *BitVector) *BitVector {
	met := v.Clone()
	met.UnionWith(other)
	return met
}

// MeetWith unions other into v and reports whether v changed.
func (v *BitVector) MeetWith(other *BitVector) bool {
	before := v.bits.Count()
	v.bits.InPlaceUnion(other.bits)
	return v.bits.Count() != before
}

func (v *BitVector) String() string {
	var sb strings.Builder
	sb.WriteString("{")
	for i, one := range v.Ones() {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%d", one)
	}
	sb.WriteString("}")
	return sb.String()
}

package util

// Set is a map from elements to the empty struct.
type Set[E comparable] map[E]struct{}

func NewSet[E comparable](members ...E) Set[E] {
	set := Set[E]{}
	set.Add(members...)
	return set
}

func (s Set[E]) Add(members ...E) {
	for _, member := range members {
		s[member] = struct{}{}
	}
}

func (s Set[E]) Remove(member E) {
	delete(s, member)
}

func (s Set[E]) Contains(member E) bool {
	_, found := s[member]
	return found
}

func (s Set[E]) Len() int {
	return len(s)
}

// Members returns the elements in unspecified order. Sets are aliased maps,
// so callers that only need iteration can range over the set directly.
func (s Set[E]) Members() []E {
	result := make([]E, 0, len(s))
	for member := range s {
		result = append(result, member)
	}
	return result
}

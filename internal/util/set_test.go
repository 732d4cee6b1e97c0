package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetBasics(t *testing.T) {
	s := NewSet(1, 2, 3)

	assert.Equal(t, 3, s.Len())
	assert.True(t, s.Contains(2))
	assert.False(t, s.Contains(4))

	s.Add(4)
	assert.True(t, s.Contains(4))

	s.Remove(1)
	assert.False(t, s.Contains(1))
	assert.Equal(t, 3, s.Len())
}

func TestSetAddIsIdempotent(t *testing.T) {
	s := NewSet[string]()
	s.Add("x")
	s.Add("x")
	assert.Equal(t, 1, s.Len())
}

func TestSetMembers(t *testing.T) {
	s := NewSet("a", "b")
	members := s.Members()
	assert.Len(t, members, 2)
	assert.Contains(t, members, "a")
	assert.Contains(t, members, "b")
}

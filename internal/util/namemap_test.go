package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNameMapBindAndLookup(t *testing.T) {
	pool := NewPool[testID, string](0)
	m := NewNameMap[string](pool)

	id, _ := m.GetIDOrInsert("x", func(testID, Handle) string { return "value of x" })

	got, ok := m.GetNameID("x")
	assert.True(t, ok)
	assert.Equal(t, id, got)

	v, ok := m.Get("x")
	assert.True(t, ok)
	assert.Equal(t, "value of x", v)

	name, ok := m.NameOf(id)
	assert.True(t, ok)
	assert.Equal(t, "x", name)
}

func TestNameMapGetIDOrInsertIsIdempotent(t *testing.T) {
	pool := NewPool[testID, string](0)
	m := NewNameMap[string](pool)

	first, _ := m.GetIDOrInsert("x", func(testID, Handle) string { return "first" })
	second, _ := m.GetIDOrInsert("x", func(testID, Handle) string { return "second" })

	assert.Equal(t, first, second, "Repeated insert of one name should reuse the id")
	assert.Equal(t, 1, pool.Len())

	v, _ := m.Get("x")
	assert.Equal(t, "first", v, "The second constructor should never run")
}

func TestNameMapsShareOneIDSpace(t *testing.T) {
	pool := NewPool[testID, string](0)
	globals := NewNameMap[string](pool)
	locals := NewNameMap[string](pool)

	gID, _ := globals.GetIDOrInsert("g", func(testID, Handle) string { return "global" })
	lID, _ := locals.GetIDOrInsert("l", func(testID, Handle) string { return "local" })
	g2ID, _ := globals.GetIDOrInsert("g2", func(testID, Handle) string { return "global2" })

	assert.NotEqual(t, gID, lID, "Ids from maps over one pool must not collide")
	assert.Equal(t, testID(0), gID)
	assert.Equal(t, testID(1), lID)
	assert.Equal(t, testID(2), g2ID, "Ids interleave across maps in allocation order")
}

func TestNameMapVisibilityIsPerMap(t *testing.T) {
	pool := NewPool[testID, string](0)
	globals := NewNameMap[string](pool)
	locals := NewNameMap[string](pool)

	gID, _ := globals.GetIDOrInsert("g", func(testID, Handle) string { return "global" })
	lID, _ := locals.GetIDOrInsert("l", func(testID, Handle) string { return "local" })

	_, ok := locals.GetIDFromNameID(gID)
	assert.False(t, ok, "A global id should not be visible through the locals map")

	_, ok = locals.GetIDFromNameID(lID)
	assert.True(t, ok)

	_, ok = globals.GetIDFromNameID(lID)
	assert.False(t, ok, "A local id should not be visible through the globals map")
}

func TestNameMapRebindIsLastBindWins(t *testing.T) {
	pool := NewPool[testID, string](0)
	m := NewNameMap[string](pool)

	first, _ := pool.Insert("first")
	second, _ := pool.Insert("second")

	_, rebound := m.Bind("x", first)
	assert.False(t, rebound)

	prev, rebound := m.Bind("x", second)
	assert.True(t, rebound, "Second bind of one name should report the rebind")
	assert.Equal(t, first, prev)

	id, _ := m.GetNameID("x")
	assert.Equal(t, second, id, "The newest binding should win")
}

func TestNameMapInsertNameless(t *testing.T) {
	pool := NewPool[testID, string](0)
	m := NewNameMap[string](pool)

	id, _ := m.InsertNameless("synthesized")

	_, ok := m.NameOf(id)
	assert.False(t, ok, "Nameless entries carry no name")

	_, ok = m.GetIDFromNameID(id)
	assert.True(t, ok, "Nameless entries are still members of the map")

	assert.Equal(t, []testID{id}, m.IDs())
	assert.Equal(t, 0, m.Len(), "Len counts bound names only")
}

func TestNameMapIDsPreserveInsertionOrder(t *testing.T) {
	pool := NewPool[testID, string](0)
	m := NewNameMap[string](pool)

	a, _ := m.GetIDOrInsert("a", func(testID, Handle) string { return "a" })
	b, _ := m.InsertNameless("b")
	c, _ := m.GetIDOrInsert("c", func(testID, Handle) string { return "c" })

	assert.Equal(t, []testID{a, b, c}, m.IDs())
}

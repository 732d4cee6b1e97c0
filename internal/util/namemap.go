package util

// NameMap binds names to logical ids issued by a shared pool. The map
// remembers insertion order, which the IR layer relies on for fall-through
// block ordering and declaration numbering.
//
// Duplicate binds follow a last-bind-wins policy: Bind rebinds the name and
// reports the previous id, so layers that treat a rebind as an error can
// surface one without the map taking a position on it.
type NameMap[K comparable, ID ~int, V any] struct {
	pool    *Pool[ID, V]
	ids     map[K]ID
	nameOf  map[ID]K
	order   []ID
	members map[ID]struct{}
}

// NewNameMap creates a map over pool. All maps over one pool share its id
// space.
func NewNameMap[K comparable, ID ~int, V any](pool *Pool[ID, V]) *NameMap[K, ID, V] {
	return &NameMap[K, ID, V]{
		pool:    pool,
		ids:     make(map[K]ID),
		nameOf:  make(map[ID]K),
		members: make(map[ID]struct{}),
	}
}

// Bind associates name with an already-issued logical id. The previous
// binding, if any, is returned and overwritten.
func (m *NameMap[K, ID, V]) Bind(name K, id ID) (prev ID, rebound bool) {
	prev, rebound = m.ids[name]
	m.ids[name] = id
	m.nameOf[id] = name
	m.members[id] = struct{}{}
	return prev, rebound
}

// GetIDOrInsert returns the binding for name, or allocates a new entity via
// ctor and binds it. ctor receives the new logical id and arena handle.
func (m *NameMap[K, ID, V]) GetIDOrInsert(name K, ctor func(ID, Handle) V) (ID, Handle) {
	if id, ok := m.ids[name]; ok {
		handle, ok := m.pool.GetHandle(id)
		if !ok {
			panic("util: name bound to a logical id the pool never issued")
		}
		return id, handle
	}
	id, handle := m.pool.InsertWith(ctor)
	m.order = append(m.order, id)
	m.Bind(name, id)
	return id, handle
}

// InsertNameless allocates an id for v without binding any name. Used for
// compiler-synthesized entities such as aggregate member spaces.
func (m *NameMap[K, ID, V]) InsertNameless(v V) (ID, Handle) {
	id, handle := m.pool.Insert(v)
	m.order = append(m.order, id)
	m.members[id] = struct{}{}
	return id, handle
}

// GetNameID returns the logical id bound to name.
func (m *NameMap[K, ID, V]) GetNameID(name K) (ID, bool) {
	id, ok := m.ids[name]
	return id, ok
}

// GetIDFromNameID resolves a logical id to its arena handle, but only for
// ids that entered the pool through this map. Ids issued to other maps
// over the same pool are not visible here; scope resolution relies on
// that.
func (m *NameMap[K, ID, V]) GetIDFromNameID(id ID) (Handle, bool) {
	if _, ok := m.members[id]; !ok {
		return 0, false
	}
	return m.pool.GetHandle(id)
}

// GetNameIDAndID resolves name to both its logical id and arena handle.
func (m *NameMap[K, ID, V]) GetNameIDAndID(name K) (ID, Handle, bool) {
	id, ok := m.ids[name]
	if !ok {
		return id, 0, false
	}
	handle, ok := m.pool.GetHandle(id)
	return id, handle, ok
}

// Get resolves name straight to its entity.
func (m *NameMap[K, ID, V]) Get(name K) (V, bool) {
	id, ok := m.ids[name]
	if !ok {
		var zero V
		return zero, false
	}
	return m.pool.Get(id)
}

// NameOf reports the name bound to id, if any.
func (m *NameMap[K, ID, V]) NameOf(id ID) (K, bool) {
	name, ok := m.nameOf[id]
	return name, ok
}

// IDs returns the ids inserted through this map, in insertion order. Ids
// bound here but inserted elsewhere are not included.
func (m *NameMap[K, ID, V]) IDs() []ID {
	return m.order
}

// Pool exposes the shared pool backing this map.
func (m *NameMap[K, ID, V]) Pool() *Pool[ID, V] {
	return m.pool
}

// Len reports the number of bound names.
func (m *NameMap[K, ID, V]) Len() int {
	return len(m.ids)
}

// Package util provides the identifier and arena layer shared by the IR
// model: append-only pools issuing dense monotonic logical ids, and name
// maps that bind human-readable names to those ids.
//
// A logical id is the stable handle everything else in the backend uses:
// it is allocated once, never reused, and allocated in strictly increasing
// order, so it can double as an array or bit-vector index. The arena
// Handle is the underlying storage slot and may be treated as an internal
// detail by most callers.
//
// Several name maps may be created over one pool. They all draw ids from
// the same counter, so ids issued to different scopes (say, a function's
// locals and the program's globals) never collide.
package util

// Handle addresses an entry in a pool's backing arena.
type Handle int

// Pool is an append-only arena paired with a monotonic logical-id counter.
// Pools are not safe for concurrent use; the builder is single-threaded.
type Pool[ID ~int, V any] struct {
	origin  ID
	next    ID
	entries []V
	handles map[ID]Handle
}

// NewPool returns an empty pool whose first issued id is origin.
func NewPool[ID ~int, V any](origin ID) *Pool[ID, V] {
	return &Pool[ID, V]{
		origin:  origin,
		next:    origin,
		handles: make(map[ID]Handle),
	}
}

// Insert stores v under a freshly allocated logical id with no name
// attached.
func (p *Pool[ID, V]) Insert(v V) (ID, Handle) {
	return p.InsertWith(func(ID, Handle) V { return v })
}

// InsertWith allocates the next logical id and arena slot, then invokes
// ctor with both so the entity can record its own identity.
func (p *Pool[ID, V]) InsertWith(ctor func(ID, Handle) V) (ID, Handle) {
	id := p.next
	p.next++
	handle := Handle(len(p.entries))
	p.entries = append(p.entries, ctor(id, handle))
	p.handles[id] = handle
	return id, handle
}

// Get resolves a logical id to its entity.
func (p *Pool[ID, V]) Get(id ID) (V, bool) {
	handle, ok := p.handles[id]
	if !ok {
		var zero V
		return zero, false
	}
	return p.entries[handle], true
}

// MustGet is Get for ids the caller knows are live. Passing an id the pool
// never issued is a programming error, not a recoverable condition.
func (p *Pool[ID, V]) MustGet(id ID) V {
	v, ok := p.Get(id)
	if !ok {
		panic("util: lookup of logical id that was never issued")
	}
	return v
}

// GetHandle resolves a logical id to its current arena slot.
func (p *Pool[ID, V]) GetHandle(id ID) (Handle, bool) {
	handle, ok := p.handles[id]
	return handle, ok
}

// Origin returns the first id this pool issues.
func (p *Pool[ID, V]) Origin() ID {
	return p.origin
}

// Len reports how many entities the pool holds.
func (p *Pool[ID, V]) Len() int {
	return len(p.entries)
}

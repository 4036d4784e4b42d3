// Package keylock provides per-key mutual exclusion. Operations holding
// different keys run concurrently; operations on the same key are serialized.
// Entries are reference-counted and reclaimed as soon as the last holder or
// waiter releases, so idle keys do not accumulate memory.
package keylock

import "sync"

// entry pairs the per-key exclusion primitive with the count of goroutines
// currently holding or queued for the key.
type entry struct {
	mu      sync.Mutex
	waiters int
}

// Registry issues per-key exclusion handles. The zero value is not usable;
// construct with NewRegistry. The registry's own bookkeeping is guarded by a
// coordinating mutex held only for map mutation, never across a key wait.
type Registry struct {
	mu      sync.Mutex
	entries map[string]*entry
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*entry)}
}

// Acquire blocks until the caller holds exclusive access to key, then returns
// a Handle. The caller must release the handle on every exit path:
//
//	h := reg.Acquire(id.String())
//	defer h.Release()
//
// Two concurrent first acquisitions of an unseen key are guaranteed to share
// one exclusion primitive: get-or-create and the waiter increment happen under
// the registry mutex as one indivisible step.
func (r *Registry) Acquire(key string) *Handle {
	r.mu.Lock()
	e, ok := r.entries[key]
	if !ok {
		e = &entry{}
		r.entries[key] = e
	}
	e.waiters++
	r.mu.Unlock()

	e.mu.Lock()
	return &Handle{registry: r, key: key, entry: e}
}

// Len reports the number of live key entries.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Handle is a scoped exclusion token for one key.
type Handle struct {
	registry *Registry
	key      string
	entry    *entry
	released bool
}

// Release hands the key to the next waiter and decrements interest, deleting
// the entry when nobody else holds or awaits it. Releasing twice is a no-op.
func (h *Handle) Release() {
	if h.released {
		return
	}
	h.released = true

	h.entry.mu.Unlock()

	h.registry.mu.Lock()
	h.entry.waiters--
	if h.entry.waiters == 0 {
		delete(h.registry.entries, h.key)
	}
	h.registry.mu.Unlock()
}

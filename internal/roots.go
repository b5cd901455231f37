package internal

type rootEntry[K comparable] struct {
	key   K
	store Store
}

// Roots maps root handles to their stores, iterating in insertion order.
type Roots[K comparable] struct {
	order   *Registry[*rootEntry[K]]
	entries map[K]*rootEntry[K]
	removes map[K]func()
}

func NewRoots[K comparable]() *Roots[K] {
	return &Roots[K]{
		order:   NewRegistry[*rootEntry[K]](),
		entries: make(map[K]*rootEntry[K]),
		removes: make(map[K]func()),
	}
}

// Set registers store under key. Replacing a store keeps the key's position.
func (r *Roots[K]) Set(key K, store Store) {
	if entry, ok := r.entries[key]; ok {
		entry.store = store
		return
	}

	entry := &rootEntry[K]{key: key, store: store}
	r.entries[key] = entry
	r.removes[key] = r.order.Add(entry)
}

func (r *Roots[K]) Delete(key K) {
	remove, ok := r.removes[key]
	if !ok {
		return
	}

	delete(r.entries, key)
	delete(r.removes, key)
	remove()
}

func (r *Roots[K]) Get(key K) (Store, bool) {
	entry, ok := r.entries[key]
	if !ok {
		return nil, false
	}
	return entry.store, true
}

func (r *Roots[K]) Len() int {
	return r.order.Len()
}

// Each calls fn for every root registered when the iteration started.
func (r *Roots[K]) Each(fn func(key K, store Store)) {
	r.order.Each(func(entry *rootEntry[K]) {
		fn(entry.key, entry.store)
	})
}

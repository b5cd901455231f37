package internal

import "slices"

type registryEntry[T any] struct {
	value    T
	priority int
	removed  bool
}

// Registry is an insertion-ordered collection where removal only marks an entry
// as removed. Removed entries are skipped by any iteration still in progress and
// are compacted once no iteration is running.
type Registry[T any] struct {
	entries []*registryEntry[T]

	// number of entries not marked as removed
	live int

	// each nested Each call increases the depth by 1
	// the entries slice is never mutated in place while depth > 0
	depth int

	// set when a removal happened while iterating
	dirty bool
}

func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{}
}

// Add appends v and returns a function removing it. The returned function is idempotent.
func (r *Registry[T]) Add(v T) func() {
	entry := &registryEntry[T]{value: v}

	if r.depth > 0 {
		// copy so that running iterations keep their own view
		r.entries = append(slices.Clip(r.entries), entry)
	} else {
		r.entries = append(r.entries, entry)
	}
	r.live++

	return func() { r.remove(entry) }
}

// Insert adds v after every entry with a priority lower or equal to the given one.
func (r *Registry[T]) Insert(v T, priority int) func() {
	entry := &registryEntry[T]{value: v, priority: priority}

	at := len(r.entries)
	for i, e := range r.entries {
		if e.priority > priority {
			at = i
			break
		}
	}

	if r.depth > 0 {
		r.entries = slices.Insert(slices.Clone(r.entries), at, entry)
	} else {
		r.entries = slices.Insert(r.entries, at, entry)
	}
	r.live++

	return func() { r.remove(entry) }
}

func (r *Registry[T]) remove(entry *registryEntry[T]) {
	if entry.removed {
		return
	}
	entry.removed = true
	r.live--

	if r.depth > 0 {
		r.dirty = true
		return
	}
	r.compact()
}

func (r *Registry[T]) compact() {
	r.entries = slices.DeleteFunc(r.entries, func(e *registryEntry[T]) bool { return e.removed })
	r.dirty = false
}

// Len returns the number of live entries.
func (r *Registry[T]) Len() int {
	return r.live
}

// Each calls fn for every live entry present when the iteration started.
func (r *Registry[T]) Each(fn func(T)) {
	if r.live == 0 {
		return
	}

	entries := r.entries

	r.depth++
	defer func() {
		r.depth--
		if r.depth == 0 && r.dirty {
			r.compact()
		}
	}()

	for _, entry := range entries {
		if entry.removed {
			continue
		}
		fn(entry.value)
	}
}

// Values returns the live entries in order.
func (r *Registry[T]) Values() []T {
	values := make([]T, 0, r.live)
	for _, entry := range r.entries {
		if !entry.removed {
			values = append(values, entry.value)
		}
	}
	return values
}

package berth

// entry holds one service registration.
type entry struct {
	id      ID
	deps    []ID // Positional order handed to the factory
	factory Factory
}

// rejectedEdge is a declared dependency that would have closed a cycle.
type rejectedEdge struct {
	from ID
	to   ID
}

// registry is the registration table. It is guarded by the container lock.
type registry struct {
	entries  map[ID]*entry
	order    []ID // First registration order
	rejected []rejectedEdge
}

// newRegistry creates a new registration table
func newRegistry() *registry {
	return &registry{
		entries: make(map[ID]*entry),
	}
}

// put stores e, replacing any previous entry for the same identity
func (r *registry) put(e *entry) (replaced bool) {
	if _, replaced = r.entries[e.id]; !replaced {
		r.order = append(r.order, e.id)
	}

	r.entries[e.id] = e

	return replaced
}

// get retrieves an entry by identity
func (r *registry) get(id ID) (*entry, bool) {
	e, ok := r.entries[id]

	return e, ok
}

// has checks if an identity is registered
func (r *registry) has(id ID) bool {
	_, ok := r.entries[id]

	return ok
}

// ids returns registered identities in first registration order
func (r *registry) ids() []ID {
	ids := make([]ID, len(r.order))
	copy(ids, r.order)

	return ids
}

// reject records a rejected edge once
func (r *registry) reject(from, to ID) bool {
	for _, edge := range r.rejected {
		if edge.from == from && edge.to == to {
			return false
		}
	}

	r.rejected = append(r.rejected, rejectedEdge{from: from, to: to})

	return true
}

// forgetRejected drops every rejected edge declared by from
func (r *registry) forgetRejected(from ID) {
	kept := r.rejected[:0]

	for _, edge := range r.rejected {
		if edge.from != from {
			kept = append(kept, edge)
		}
	}

	r.rejected = kept
}

// isRejected reports whether from -> to is currently a rejected edge
func (r *registry) isRejected(from, to ID) bool {
	for _, edge := range r.rejected {
		if edge.from == from && edge.to == to {
			return true
		}
	}

	return false
}

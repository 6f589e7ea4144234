// Package crdt implements the conflict-resolving component state shared
// between a scene sandbox and the renderer: last-writer-wins registers with
// a deterministic tie-break, append-only event streams, and the
// multi-component store that routes decoded updates between them.
package crdt

import "slices"

// Store aggregates the per-component CRDT states of one scene. It is owned
// and mutated by exactly one synchronization pass per tick; there is no
// internal locking because there is no concurrent mutation.
type Store struct {
	lww  map[ComponentID]*LWWState
	grow map[ComponentID]*GrowOnlyState
}

func NewStore() *Store {
	return &Store{
		lww:  make(map[ComponentID]*LWWState),
		grow: make(map[ComponentID]*GrowOnlyState),
	}
}

func (st *Store) lwwState(c ComponentID) *LWWState {
	s, ok := st.lww[c]
	if !ok {
		s = NewLWWState()
		st.lww[c] = s
	}
	return s
}

func (st *Store) growState(c ComponentID) *GrowOnlyState {
	s, ok := st.grow[c]
	if !ok {
		s = NewGrowOnlyState()
		st.grow[c] = s
	}
	return s
}

// TryUpdate routes one decoded update to the component's store, creating it
// lazily. For LWW kinds it reports whether the merged value changed; an
// append is always a change. The kind carried on the wire must match the
// registered kind.
func (st *Store) TryUpdate(c ComponentID, kind Kind, e Entity, ts Timestamp, data []byte) (bool, error) {
	registered, ok := KindOf(c)
	if !ok {
		return false, ErrUnknownComponent
	}
	if registered != kind {
		return false, ErrKindMismatch
	}
	if kind.IsGlobal() {
		e = RootEntity
	}
	if kind.IsLww() {
		return st.lwwState(c).Update(e, ts, data), nil
	}
	st.growState(c).Append(e, ts, data)
	return true, nil
}

// ForceUpdate applies an always-wins write to an LWW component (see
// LWWState.ForceUpdate).
func (st *Store) ForceUpdate(c ComponentID, e Entity, data []byte) (Timestamp, error) {
	kind, ok := KindOf(c)
	if !ok {
		return 0, ErrUnknownComponent
	}
	if !kind.IsLww() {
		return 0, ErrKindMismatch
	}
	if kind.IsGlobal() {
		e = RootEntity
	}
	return st.lwwState(c).ForceUpdate(e, data), nil
}

// UpdateIfDifferent applies a suppress-no-op write to an LWW component (see
// LWWState.UpdateIfDifferent).
func (st *Store) UpdateIfDifferent(c ComponentID, e Entity, data []byte) (bool, error) {
	kind, ok := KindOf(c)
	if !ok {
		return false, ErrUnknownComponent
	}
	if !kind.IsLww() {
		return false, ErrKindMismatch
	}
	if kind.IsGlobal() {
		e = RootEntity
	}
	return st.lwwState(c).UpdateIfDifferent(e, data), nil
}

// Get returns the current entry of an LWW component for e.
func (st *Store) Get(c ComponentID, e Entity) (Entry, bool) {
	s, ok := st.lww[c]
	if !ok {
		return Entry{}, false
	}
	return s.Get(e)
}

// EntityUpdate pairs a drained entity with its current merged entry.
type EntityUpdate struct {
	Entity Entity
	Entry  Entry
}

// Updates is one tick's drain result.
type Updates struct {
	LWW      map[ComponentID][]EntityUpdate
	Appended map[ComponentID][]AppendedEvent
}

func (u Updates) Empty() bool {
	return len(u.LWW) == 0 && len(u.Appended) == 0
}

// TakeUpdates drains every component's dirty set and append queue. Exactly
// the entities whose merged value changed since the last drain are reported,
// each once, with their final entry; draining is destructive. LWW updates
// are ordered by entity id so consumers see a deterministic sequence.
// Drained entries own their Data and stay valid across later writes.
func (st *Store) TakeUpdates() Updates {
	out := Updates{
		LWW:      make(map[ComponentID][]EntityUpdate),
		Appended: make(map[ComponentID][]AppendedEvent),
	}
	for c, s := range st.lww {
		dirty := s.TakeDirty()
		if dirty.Size() == 0 {
			continue
		}
		ups := make([]EntityUpdate, 0, dirty.Size())
		for e := range dirty.All() {
			entry, ok := s.Get(e)
			if !ok {
				// purged after the write that marked it dirty
				continue
			}
			// snapshot: the store reuses its register buffers in place
			entry.Data = append([]byte(nil), entry.Data...)
			ups = append(ups, EntityUpdate{Entity: e, Entry: entry})
		}
		slices.SortFunc(ups, func(a, b EntityUpdate) int {
			return CompareOrdered(a.Entity, b.Entity)
		})
		out.LWW[c] = ups
	}
	for c, s := range st.grow {
		if events := s.Take(); len(events) != 0 {
			out.Appended[c] = events
		}
	}
	return out
}

// RemoveEntity purges e from every component store, so a late or duplicate
// message cannot observe leftovers of a deleted entity.
func (st *Store) RemoveEntity(e Entity) {
	for _, s := range st.lww {
		s.Remove(e)
	}
	for _, s := range st.grow {
		s.Remove(e)
	}
}

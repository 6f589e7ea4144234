package crdt

import (
	"bytes"

	"github.com/decentraland/bevy-explorer-sub002/pkg/structs"
)

// Entry is the current winning value for one (component, entity) pair.
// IsSome=false is a tombstone: a delete is itself a versioned value that a
// newer put can overwrite, not a removal from the mapping.
type Entry struct {
	Timestamp Timestamp
	IsSome    bool
	Data      []byte
}

// LWWState holds one last-writer-wins register per entity for a single
// component type, plus the set of entities whose register changed since the
// last drain.
type LWWState struct {
	entries map[Entity]*Entry
	dirty   structs.Set[Entity]
}

func NewLWWState() *LWWState {
	return &LWWState{
		entries: make(map[Entity]*Entry),
		dirty:   structs.NewSet[Entity](),
	}
}

// Update applies one write; data == nil is a tombstone. It reports whether
// the register changed: replaying the same or an older write is a no-op, so
// the outcome does not depend on delivery order.
func (s *LWWState) Update(e Entity, ts Timestamp, data []byte) bool {
	entry, ok := s.entries[e]
	if !ok {
		s.entries[e] = newEntry(ts, data)
		s.dirty.Add(e)
		return true
	}

	if !wins(entry, ts, data) {
		return false
	}

	entry.Timestamp = ts
	entry.IsSome = data != nil
	entry.Data = append(entry.Data[:0], data...)
	s.dirty.Add(e)
	return true
}

// wins reports whether (ts, data) replaces the current entry. Ties are
// broken deterministically; the byte comparison carries no meaning beyond
// making concurrent equal-timestamp writes order independent.
func wins(cur *Entry, ts Timestamp, data []byte) bool {
	switch Compare(cur.Timestamp, ts) {
	case Greater:
		return false
	case Lower:
		return true
	}

	newSome := data != nil
	if !cur.IsSome && newSome {
		// a concrete value beats a tombstone at equal time
		return true
	}
	if cur.IsSome && !newSome {
		// a tombstone never beats data at equal time
		return false
	}
	if len(data) != len(cur.Data) {
		return len(data) > len(cur.Data)
	}
	return bytes.Compare(data, cur.Data) > 0
}

// ForceUpdate skips the LWW comparison entirely: it bumps the stored
// timestamp strictly past the current one and stores data unconditionally.
// This is the escape hatch for engine-authoritative corrections, which must
// win over whatever the scene wrote last. Returns the timestamp assigned.
func (s *LWWState) ForceUpdate(e Entity, data []byte) Timestamp {
	entry, ok := s.entries[e]
	if !ok {
		s.entries[e] = newEntry(0, data)
		s.dirty.Add(e)
		return 0
	}
	entry.Timestamp++
	entry.IsSome = data != nil
	entry.Data = append(entry.Data[:0], data...)
	s.dirty.Add(e)
	return entry.Timestamp
}

// UpdateIfDifferent stores data with ForceUpdate semantics, but only when it
// differs from the current value. Used when re-deriving a value that usually
// does not change, to suppress churn.
func (s *LWWState) UpdateIfDifferent(e Entity, data []byte) bool {
	if entry, ok := s.entries[e]; ok {
		if entry.IsSome == (data != nil) && bytes.Equal(entry.Data, data) {
			return false
		}
	}
	s.ForceUpdate(e, data)
	return true
}

// Get returns a copy of the entry for e. The Data buffer stays owned by the
// store and must not be mutated by the caller.
func (s *LWWState) Get(e Entity) (Entry, bool) {
	entry, ok := s.entries[e]
	if !ok {
		return Entry{}, false
	}
	return *entry, true
}

// Remove purges the register and any pending dirty mark for e.
func (s *LWWState) Remove(e Entity) {
	delete(s.entries, e)
	s.dirty.Remove(e)
}

// TakeDirty moves the dirty set out, leaving it empty.
func (s *LWWState) TakeDirty() structs.Set[Entity] {
	return s.dirty.Drain()
}

func newEntry(ts Timestamp, data []byte) *Entry {
	return &Entry{
		Timestamp: ts,
		IsSome:    data != nil,
		Data:      append([]byte(nil), data...),
	}
}

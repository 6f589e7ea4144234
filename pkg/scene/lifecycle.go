package scene

import (
	"github.com/decentraland/bevy-explorer-sub002/pkg/crdt"
	"github.com/decentraland/bevy-explorer-sub002/pkg/structs"
)

type EventKind uint8

const (
	EntitySpawned EventKind = iota + 1
	EntityDespawned
)

func (k EventKind) String() string {
	switch k {
	case EntitySpawned:
		return "spawned"
	case EntityDespawned:
		return "despawned"
	}
	return "unknown"
}

// Event reports a lifecycle transition for the renderer to mirror with its
// own scene-graph nodes.
type Event struct {
	Entity crdt.Entity
	Kind   EventKind
}

// Lifecycle tracks which entity ids are live, nascent (referenced before
// their own defining update arrived) or dead (deleted; that generation never
// comes back). Sets are keyed by the full slot+generation id, so a reused
// slot is a distinct entity.
type Lifecycle struct {
	live    structs.Set[crdt.Entity]
	nascent structs.Set[crdt.Entity]
	dead    structs.Set[crdt.Entity]
	events  []Event
}

func NewLifecycle() *Lifecycle {
	return &Lifecycle{
		live:    structs.NewSet(crdt.RootEntity, crdt.PlayerEntity, crdt.CameraEntity),
		nascent: structs.NewSet[crdt.Entity](),
		dead:    structs.NewSet[crdt.Entity](),
	}
}

// Track makes e resolvable and reports whether it is. A direct update
// promotes e to live; a mere reference (a parent target seen before the
// entity's own data) materializes a nascent placeholder so dependent updates
// can still apply structurally. Dead ids stay dead: Track reports false and
// the caller redirects.
func (l *Lifecycle) Track(e crdt.Entity, direct bool) bool {
	if l.dead.Contains(e) {
		return false
	}
	if l.live.Contains(e) {
		return true
	}
	if direct {
		if !l.nascent.Contains(e) {
			l.events = append(l.events, Event{Entity: e, Kind: EntitySpawned})
		}
		l.nascent.Remove(e)
		l.live.Add(e)
		return true
	}
	if !l.nascent.Contains(e) {
		l.nascent.Add(e)
		l.events = append(l.events, Event{Entity: e, Kind: EntitySpawned})
	}
	return true
}

// Delete removes e for good: this generation of the slot is never revived by
// stale messages. Reserved entities cannot be deleted. Reports whether the
// delete took effect.
func (l *Lifecycle) Delete(e crdt.Entity) bool {
	if e.Number() < crdt.ReservedSlots && e.Generation() == 0 {
		return false
	}
	if l.dead.Contains(e) {
		return false
	}
	materialized := l.live.Contains(e) || l.nascent.Contains(e)
	l.live.Remove(e)
	l.nascent.Remove(e)
	l.dead.Add(e)
	if materialized {
		l.events = append(l.events, Event{Entity: e, Kind: EntityDespawned})
	}
	return true
}

func (l *Lifecycle) IsDead(e crdt.Entity) bool    { return l.dead.Contains(e) }
func (l *Lifecycle) IsNascent(e crdt.Entity) bool { return l.nascent.Contains(e) }
func (l *Lifecycle) IsLive(e crdt.Entity) bool    { return l.live.Contains(e) }

// Count returns how many entities are currently materialized (live plus
// nascent placeholders).
func (l *Lifecycle) Count() int {
	return l.live.Size() + l.nascent.Size()
}

// TakeEvents drains the pending lifecycle events in emission order.
func (l *Lifecycle) TakeEvents() []Event {
	events := l.events
	l.events = nil
	return events
}

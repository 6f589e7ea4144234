package scene

import (
	"slices"

	"github.com/decentraland/bevy-explorer-sub002/pkg/crdt"
	"github.com/decentraland/bevy-explorer-sub002/pkg/protocol"
	"github.com/decentraland/bevy-explorer-sub002/pkg/structs"
)

// Bridge reflects engine-computed values (a physics-resolved transform, for
// example) back into the store, so the scene observes the corrected state on
// its next tick instead of the engine's write being silently lost as stale.
//
// Corrections go through the force-update path: the stored timestamp is
// bumped strictly past the scene's last write, which makes the scene's next
// incremental update (built off its stale timestamp) lose the merge. The
// outbound dirty set is separate from the store's renderer-facing one.
type Bridge struct {
	store *crdt.Store
	dirty map[crdt.ComponentID]structs.Set[crdt.Entity]
}

func NewBridge(store *crdt.Store) *Bridge {
	return &Bridge{
		store: store,
		dirty: make(map[crdt.ComponentID]structs.Set[crdt.Entity]),
	}
}

// ApplyAuthoritative stores an always-wins engine value for (c, e) and marks
// it for the outbound direction.
func (b *Bridge) ApplyAuthoritative(c crdt.ComponentID, e crdt.Entity, data []byte) error {
	if _, err := b.store.ForceUpdate(c, e, data); err != nil {
		return err
	}
	b.markDirty(c, e)
	return nil
}

// ApplyDerived stores a re-derived engine value only when it differs from
// the current one, so values that settle produce no outbound traffic.
// Reports whether anything changed.
func (b *Bridge) ApplyDerived(c crdt.ComponentID, e crdt.Entity, data []byte) (bool, error) {
	changed, err := b.store.UpdateIfDifferent(c, e, data)
	if err != nil {
		return false, err
	}
	if changed {
		b.markDirty(c, e)
	}
	return changed, nil
}

func (b *Bridge) markDirty(c crdt.ComponentID, e crdt.Entity) {
	if kind, ok := crdt.KindOf(c); ok && kind.IsGlobal() {
		e = crdt.RootEntity
	}
	set, ok := b.dirty[c]
	if !ok {
		set = structs.NewSet[crdt.Entity]()
		b.dirty[c] = set
	}
	set.Add(e)
}

// TakeOutbound drains the corrections accumulated since the last call,
// re-serialized as wire frames carrying the bumped timestamps. Messages are
// ordered by (component, entity) for determinism.
func (b *Bridge) TakeOutbound() []protocol.Message {
	var msgs []protocol.Message
	for c, set := range b.dirty {
		kind, ok := crdt.KindOf(c)
		if !ok {
			continue
		}
		for e := range set.All() {
			entry, found := b.store.Get(c, e)
			if !found {
				continue
			}
			m := protocol.Message{
				Entity:    e,
				Component: c,
				Kind:      kind,
				Timestamp: entry.Timestamp,
			}
			if entry.IsSome {
				m.Type = protocol.PutComponent
				m.Payload = append([]byte(nil), entry.Data...)
			} else {
				m.Type = protocol.DeleteComponent
			}
			msgs = append(msgs, m)
		}
		delete(b.dirty, c)
	}
	slices.SortFunc(msgs, func(a, b protocol.Message) int {
		if c := crdt.CompareOrdered(a.Component, b.Component); c != crdt.Equal {
			return c
		}
		return crdt.CompareOrdered(a.Entity, b.Entity)
	})
	return msgs
}

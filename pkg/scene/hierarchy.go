package scene

import (
	"maps"

	"github.com/decentraland/bevy-explorer-sub002/pkg/crdt"
	"github.com/decentraland/bevy-explorer-sub002/pkg/structs"
)

// Hierarchy derives the renderer's parent tree from merged transform data.
// Scenes are untrusted, so the target-parent graph can contain cycles and
// dangling chains; resolution must terminate on any input and degrade to
// "parented to root" instead of producing an unrenderable tree.
type Hierarchy struct {
	// target is the logical parent requested by the scene; parent is the
	// structural parent actually assigned.
	target     map[crdt.Entity]crdt.Entity
	parent     map[crdt.Entity]crdt.Entity
	unparented structs.Set[crdt.Entity]
	changed    bool
}

func NewHierarchy() *Hierarchy {
	return &Hierarchy{
		target:     make(map[crdt.Entity]crdt.Entity),
		parent:     make(map[crdt.Entity]crdt.Entity),
		unparented: structs.NewSet[crdt.Entity](),
	}
}

// SetTarget records e's logical parent and schedules re-resolution. The
// root's parent cannot be reassigned.
func (h *Hierarchy) SetTarget(e, parent crdt.Entity) {
	if e == crdt.RootEntity {
		return
	}
	if current, ok := h.target[e]; ok && current == parent {
		return
	}
	h.target[e] = parent
	h.unparented.Add(e)
	h.changed = true
}

// Remove forgets a deleted entity. Children that targeted it are redirected
// to the root so no dangling reference survives.
func (h *Hierarchy) Remove(e crdt.Entity) {
	delete(h.target, e)
	delete(h.parent, e)
	h.unparented.Remove(e)
	for child, p := range h.target {
		if p == e {
			h.target[child] = crdt.RootEntity
			h.unparented.Add(child)
			h.changed = true
		}
	}
}

// Parent returns e's resolved structural parent.
func (h *Hierarchy) Parent(e crdt.Entity) crdt.Entity {
	if p, ok := h.parent[e]; ok {
		return p
	}
	return crdt.RootEntity
}

// Parents returns a snapshot of all resolved structural parents.
func (h *Hierarchy) Parents() map[crdt.Entity]crdt.Entity {
	return maps.Clone(h.parent)
}

func (h *Hierarchy) targetOf(e crdt.Entity) crdt.Entity {
	if t, ok := h.target[e]; ok {
		return t
	}
	// no transform target means the entity sits at the root
	return crdt.RootEntity
}

// Resolve re-derives structural parents for entities whose assignment does
// not yet match their logical target. It runs only when something changed
// since the last pass and is idempotent on settled state.
//
// For each unparented entity the chain of target parents is walked with a
// per-walk checklist. Reaching a node already proven valid (the root seeds
// the valid set) validates the whole checklist and assigns the entity its
// target parent. Reaching a proven-invalid node, or revisiting a node from
// the current checklist (a cycle), invalidates the checklist and forces the
// entity to the root; it stays unparented so a later fix of its target
// re-resolves it. Each walk visits every node at most once, so a pass
// terminates on arbitrary cyclic input.
func (h *Hierarchy) Resolve() {
	if !h.changed {
		return
	}
	h.changed = false

	valid := structs.NewSet(crdt.RootEntity)
	invalid := structs.NewSet[crdt.Entity]()

	for e := range h.unparented.Clone().All() {
		checklist := structs.NewSet(e)
		pointer := h.targetOf(e)
		for {
			if valid.Contains(pointer) {
				valid = valid.Union(checklist)
				h.parent[e] = h.targetOf(e)
				h.unparented.Remove(e)
				break
			}
			if invalid.Contains(pointer) || checklist.Contains(pointer) {
				invalid = invalid.Union(checklist)
				h.parent[e] = crdt.RootEntity
				break
			}
			checklist.Add(pointer)
			pointer = h.targetOf(pointer)
		}
	}
}

// Package scene ties one sandboxed scene's CRDT store to the renderer:
// entity lifecycle tracking, cycle-safe hierarchy resolution and the two-way
// bridge that feeds engine corrections back to the sandbox.
package scene

import (
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/decentraland/bevy-explorer-sub002/pkg/config"
	"github.com/decentraland/bevy-explorer-sub002/pkg/crdt"
	"github.com/decentraland/bevy-explorer-sub002/pkg/protocol"
)

var ErrInboxFull = errors.New("scene inbox full")

// Scene owns the synchronization state of one sandboxed scene. The sandbox
// is an isolated unit of computation; the bounded inbox and outbox channels
// are the only concurrent edges. Everything else is mutated by exactly one
// Tick caller per tick, so there is no locking. Teardown is dropping the
// value.
type Scene struct {
	ID uuid.UUID

	log    *slog.Logger
	cfg    config.SceneConfig
	store  *crdt.Store
	life   *Lifecycle
	tree   *Hierarchy
	bridge *Bridge
	inbox  chan protocol.Message
	outbox chan []byte
}

func New(cfg config.SceneConfig) *Scene {
	cfg.PopulateDefaults()
	id := uuid.New()
	store := crdt.NewStore()
	return &Scene{
		ID:     id,
		log:    slog.Default().With("scene_id", id.String()),
		cfg:    cfg,
		store:  store,
		life:   NewLifecycle(),
		tree:   NewHierarchy(),
		bridge: NewBridge(store),
		inbox:  make(chan protocol.Message, cfg.InboxCapacity),
		outbox: make(chan []byte, cfg.OutboxCapacity),
	}
}

// Enqueue hands a decoded sandbox message to the scene. It never blocks: a
// full inbox is reported to the transport, which owns backpressure.
func (s *Scene) Enqueue(m protocol.Message) error {
	select {
	case s.inbox <- m:
		return nil
	default:
		return ErrInboxFull
	}
}

// Outbox is the engine-to-scene correction stream: batches of encoded
// frames produced by the two-way bridge.
func (s *Scene) Outbox() <-chan []byte {
	return s.outbox
}

// Component reads the current merged entry of an LWW component, for the
// renderer side.
func (s *Scene) Component(c crdt.ComponentID, e crdt.Entity) (crdt.Entry, bool) {
	return s.store.Get(c, e)
}

// Parent returns e's resolved structural parent.
func (s *Scene) Parent(e crdt.Entity) crdt.Entity {
	return s.tree.Parent(e)
}

// ApplyAuthoritative feeds an engine-computed value for (c, e) back into the
// store with always-wins semantics; see Bridge.
func (s *Scene) ApplyAuthoritative(c crdt.ComponentID, e crdt.Entity, data []byte) error {
	return s.bridge.ApplyAuthoritative(c, e, data)
}

// ApplyDerived feeds a re-derived engine value with suppress-no-op
// semantics; see Bridge.
func (s *Scene) ApplyDerived(c crdt.ComponentID, e crdt.Entity, data []byte) (bool, error) {
	return s.bridge.ApplyDerived(c, e, data)
}

// TickResult is what one synchronization pass hands downstream.
type TickResult struct {
	// Updates reports exactly the entities whose merged component state
	// changed since the previous tick.
	Updates crdt.Updates
	// Events are entity spawn/despawn transitions in emission order.
	Events []Event
	// Parents is the resolved structural parent of every placed entity.
	Parents map[crdt.Entity]crdt.Entity
}

// Tick drains whatever the sandbox produced since the last pass, merges it
// in arrival order, re-resolves the hierarchy once, flushes pending engine
// corrections and reports the changes. One Tick caller owns the scene.
func (s *Scene) Tick() TickResult {
drain:
	for {
		select {
		case m := <-s.inbox:
			s.apply(m)
		default:
			break drain
		}
	}

	s.tree.Resolve()
	s.flushOutbound()

	return TickResult{
		Updates: s.store.TakeUpdates(),
		Events:  s.life.TakeEvents(),
		Parents: s.tree.Parents(),
	}
}

// apply merges one message. Malformed or out-of-contract input is dropped
// with a log line; scene input is untrusted and must never take the whole
// pass down.
func (s *Scene) apply(m protocol.Message) {
	if m.Type == protocol.DeleteEntity {
		s.deleteEntity(m.Entity)
		return
	}

	kind, ok := crdt.KindOf(m.Component)
	if !ok {
		s.log.Warn("rejecting unknown component", "component", uint32(m.Component))
		return
	}
	if s.cfg.MaxPayloadBytes > 0 && len(m.Payload) > s.cfg.MaxPayloadBytes {
		s.log.Warn("dropping oversized payload",
			"component", uint32(m.Component), "entity", m.Entity, "bytes", len(m.Payload))
		return
	}
	if s.life.IsDead(m.Entity) {
		s.log.Debug("dropping update for dead entity", "entity", m.Entity)
		return
	}

	msgKind := m.Kind
	switch m.Type {
	case protocol.PutComponent, protocol.AppendValue:
	case protocol.DeleteComponent:
		// delete frames carry no kind tag
		msgKind = kind
	default:
		s.log.Warn("dropping frame with unknown type", "type", uint8(m.Type))
		return
	}

	// Transform payloads are decoded before the merge so malformed bytes
	// cannot reach the hierarchy.
	var transform protocol.Transform
	if m.Component == crdt.ComponentTransform {
		if m.Payload == nil {
			transform = protocol.DefaultTransform()
		} else {
			t, err := protocol.DecodeTransform(m.Payload)
			if err != nil {
				s.log.Warn("dropping malformed transform", "entity", m.Entity, "err", err)
				return
			}
			transform = t
		}
	}

	if !s.admit(m.Entity) {
		return
	}

	changed, err := s.store.TryUpdate(m.Component, msgKind, m.Entity, m.Timestamp, m.Payload)
	if err != nil {
		s.log.Warn("rejecting update", "component", uint32(m.Component),
			"entity", m.Entity, "err", err)
		return
	}
	if !changed {
		// stale write; expected steady state, not an error
		return
	}

	if m.Component == crdt.ComponentTransform {
		s.applyParent(m.Entity, transform.Parent)
	}
}

// overBudget reports whether materializing e would exceed the configured
// entity budget. Already materialized ids never count twice.
func (s *Scene) overBudget(e crdt.Entity) bool {
	if s.life.IsLive(e) || s.life.IsNascent(e) {
		return false
	}
	return s.cfg.MaxEntities > 0 && s.life.Count() >= s.cfg.MaxEntities
}

// admit materializes the entity a direct update names, enforcing the
// entity budget for untrusted scenes.
func (s *Scene) admit(e crdt.Entity) bool {
	if s.overBudget(e) {
		s.log.Warn("dropping update over entity budget", "entity", e)
		return false
	}
	return s.life.Track(e, true)
}

// applyParent records the merged transform's target parent. A dead target
// redirects to the root instead of resurrecting the entity; a not yet
// materialized target becomes a nascent placeholder, which is a perfectly
// valid graph node. Placeholders count against the entity budget like
// direct updates do, otherwise a scene could grow state without bound by
// naming a fresh parent id on every update; an over-budget parent degrades
// to the root the same way a dead one does.
func (s *Scene) applyParent(e, parent crdt.Entity) {
	if s.overBudget(parent) {
		s.log.Warn("redirecting over-budget parent to root", "entity", e, "parent", parent)
		parent = crdt.RootEntity
	} else if !s.life.Track(parent, false) {
		s.log.Debug("redirecting dead parent to root", "entity", e, "parent", parent)
		parent = crdt.RootEntity
	}
	s.tree.SetTarget(e, parent)
}

func (s *Scene) deleteEntity(e crdt.Entity) {
	if !s.life.Delete(e) {
		return
	}
	s.store.RemoveEntity(e)
	s.tree.Remove(e)
}

// flushOutbound encodes pending engine corrections toward the sandbox. The
// outbox is bounded like the inbox; a full outbox drops the batch and the
// next correction re-derives from the store.
func (s *Scene) flushOutbound() {
	msgs := s.bridge.TakeOutbound()
	if len(msgs) == 0 {
		return
	}
	buf := protocol.EncodeBatch(msgs)
	select {
	case s.outbox <- buf:
	default:
		s.log.Warn("outbox full, dropping correction batch", "bytes", len(buf))
	}
}

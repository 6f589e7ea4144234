package crdt

import "fmt"

// Entity identifies a scene entity. The low 16 bits are the numeric slot,
// the high 16 bits the generation: a reused slot carries a bumped
// generation, so a stale reference never resolves to the slot's new
// occupant.
type Entity uint32

const (
	// RootEntity is the scene root. It has no parent and is always
	// resolvable.
	RootEntity   Entity = 0
	PlayerEntity Entity = 1
	CameraEntity Entity = 2

	// ReservedSlots is the first slot scenes allocate from; lower slots
	// belong to the runtime.
	ReservedSlots = 512
)

func NewEntity(number, generation uint16) Entity {
	return Entity(uint32(generation)<<16 | uint32(number))
}

func (e Entity) Number() uint16     { return uint16(e) }
func (e Entity) Generation() uint16 { return uint16(e >> 16) }

// Next returns the id occupying the same slot in the following generation.
func (e Entity) Next() Entity {
	return NewEntity(e.Number(), e.Generation()+1)
}

func (e Entity) String() string {
	return fmt.Sprintf("%d:%d", e.Number(), e.Generation())
}

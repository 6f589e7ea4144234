package crdt

// ComponentID identifies a component type. The id space is a closed
// enumeration; updates for ids outside the registry are rejected rather
// than stored.
type ComponentID uint32

const (
	ComponentTransform          ComponentID = 1
	ComponentMaterial           ComponentID = 1017
	ComponentMeshRenderer       ComponentID = 1018
	ComponentPointerResult      ComponentID = 1063
	ComponentAvatarEmoteCommand ComponentID = 1078
	ComponentVisibility         ComponentID = 1081
	ComponentBillboard          ComponentID = 1090
)

// Kind selects the merge semantics of a component's store.
type Kind uint8

const (
	KindLwwEntity Kind = iota // one LWW register per entity
	KindLwwAny                // scene-global LWW register, keyed by the root
	KindGoEntity              // append-only stream per entity
	KindGoAny                 // scene-global append-only stream
)

func (k Kind) IsLww() bool {
	return k == KindLwwEntity || k == KindLwwAny
}

func (k Kind) IsGlobal() bool {
	return k == KindLwwAny || k == KindGoAny
}

func (k Kind) String() string {
	switch k {
	case KindLwwEntity:
		return "lww-entity"
	case KindLwwAny:
		return "lww-any"
	case KindGoEntity:
		return "go-entity"
	case KindGoAny:
		return "go-any"
	}
	return "unknown"
}

var registry = map[ComponentID]Kind{
	ComponentTransform:          KindLwwEntity,
	ComponentMaterial:           KindLwwEntity,
	ComponentMeshRenderer:       KindLwwEntity,
	ComponentPointerResult:      KindGoEntity,
	ComponentAvatarEmoteCommand: KindGoAny,
	ComponentVisibility:         KindLwwEntity,
	ComponentBillboard:          KindLwwEntity,
}

// KindOf returns the registered kind for a component id.
func KindOf(c ComponentID) (Kind, bool) {
	k, ok := registry[c]
	return k, ok
}

package protocol

import (
	"encoding/binary"
	"math"

	"github.com/decentraland/bevy-explorer-sub002/pkg/crdt"
)

type Vector3 struct {
	X, Y, Z float32
}

type Quaternion struct {
	X, Y, Z, W float32
}

// Transform is the spatial component payload: position, rotation, scale and
// the logical parent. The wire form is fixed at 44 bytes: ten f32 followed
// by the parent id as u32, little-endian.
type Transform struct {
	Position Vector3
	Rotation Quaternion
	Scale    Vector3
	Parent   crdt.Entity
}

const TransformSize = 44

// DefaultTransform is the identity placement under the scene root.
func DefaultTransform() Transform {
	return Transform{
		Rotation: Quaternion{W: 1},
		Scale:    Vector3{X: 1, Y: 1, Z: 1},
		Parent:   crdt.RootEntity,
	}
}

func EncodeTransform(t Transform) []byte {
	buf := make([]byte, 0, TransformSize)
	for _, f := range [...]float32{
		t.Position.X, t.Position.Y, t.Position.Z,
		t.Rotation.X, t.Rotation.Y, t.Rotation.Z, t.Rotation.W,
		t.Scale.X, t.Scale.Y, t.Scale.Z,
	} {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(f))
	}
	return binary.LittleEndian.AppendUint32(buf, uint32(t.Parent))
}

// DecodeTransform decodes a transform payload. Any length other than
// TransformSize is a per-message decode error.
func DecodeTransform(data []byte) (Transform, error) {
	if len(data) != TransformSize {
		return Transform{}, ErrBadTransform
	}
	f := make([]float32, 10)
	for i := range f {
		f[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return Transform{
		Position: Vector3{X: f[0], Y: f[1], Z: f[2]},
		Rotation: Quaternion{X: f[3], Y: f[4], Z: f[5], W: f[6]},
		Scale:    Vector3{X: f[7], Y: f[8], Z: f[9]},
		Parent:   crdt.Entity(binary.LittleEndian.Uint32(data[40:])),
	}, nil
}

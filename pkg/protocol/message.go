// Package protocol implements the binary update protocol spoken between a
// scene sandbox and the synchronization layer. Frames are little-endian and
// length-prefixed; encoding and decoding round-trip byte-exactly.
package protocol

import (
	"github.com/decentraland/bevy-explorer-sub002/pkg/crdt"
)

// MessageType tags a wire frame.
type MessageType uint8

const (
	PutComponent MessageType = iota + 1
	DeleteComponent
	DeleteEntity
	AppendValue
)

func (t MessageType) String() string {
	switch t {
	case PutComponent:
		return "put-component"
	case DeleteComponent:
		return "delete-component"
	case DeleteEntity:
		return "delete-entity"
	case AppendValue:
		return "append-value"
	}
	return "unknown"
}

// Message is one decoded update frame.
//
// Payload is nil on DeleteComponent and DeleteEntity frames and non-nil
// (possibly empty) on PutComponent and AppendValue frames; the nil/non-nil
// distinction is what the store turns into tombstone versus put.
type Message struct {
	Type      MessageType
	Entity    crdt.Entity
	Component crdt.ComponentID
	Kind      crdt.Kind
	Timestamp crdt.Timestamp
	Payload   []byte
}

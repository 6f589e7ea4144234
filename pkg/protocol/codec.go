package protocol

import (
	"encoding/binary"
	"fmt"

	"github.com/decentraland/bevy-explorer-sub002/pkg/crdt"
)

// Frame layout, little-endian:
//
//	length    u32   bytes following this field
//	type      u8
//	entity    u32
//
// then, depending on type:
//
//	PutComponent / AppendValue:
//	  component u32, kind u8, timestamp u32, payload_len u32, payload
//	DeleteComponent:
//	  component u32, timestamp u32
//	DeleteEntity:
//	  nothing
const (
	frameHeaderSize  = 5  // type + entity
	updateHeaderSize = 13 // component + kind + timestamp + payload_len
	deleteHeaderSize = 8  // component + timestamp
)

// EncodeMessage appends the wire encoding of m to dst.
func EncodeMessage(dst []byte, m Message) []byte {
	start := len(dst)
	dst = append(dst, 0, 0, 0, 0) // length, patched below
	dst = append(dst, byte(m.Type))
	dst = binary.LittleEndian.AppendUint32(dst, uint32(m.Entity))

	switch m.Type {
	case PutComponent, AppendValue:
		dst = binary.LittleEndian.AppendUint32(dst, uint32(m.Component))
		dst = append(dst, byte(m.Kind))
		dst = binary.LittleEndian.AppendUint32(dst, uint32(m.Timestamp))
		dst = binary.LittleEndian.AppendUint32(dst, uint32(len(m.Payload)))
		dst = append(dst, m.Payload...)
	case DeleteComponent:
		dst = binary.LittleEndian.AppendUint32(dst, uint32(m.Component))
		dst = binary.LittleEndian.AppendUint32(dst, uint32(m.Timestamp))
	case DeleteEntity:
	}

	binary.LittleEndian.PutUint32(dst[start:], uint32(len(dst)-start-4))
	return dst
}

// DecodeMessage decodes one frame from the front of buf, returning the
// message and the number of bytes consumed.
func DecodeMessage(buf []byte) (Message, int, error) {
	if len(buf) < 4 {
		return Message{}, 0, ErrTruncatedFrame
	}
	length := binary.LittleEndian.Uint32(buf)
	if uint64(length)+4 > uint64(len(buf)) {
		return Message{}, 0, ErrTruncatedFrame
	}
	body := buf[4 : 4+length]
	consumed := 4 + int(length)

	if len(body) < frameHeaderSize {
		return Message{}, 0, ErrTruncatedFrame
	}
	m := Message{
		Type:   MessageType(body[0]),
		Entity: crdt.Entity(binary.LittleEndian.Uint32(body[1:])),
	}
	rest := body[frameHeaderSize:]

	switch m.Type {
	case PutComponent, AppendValue:
		if len(rest) < updateHeaderSize {
			return Message{}, 0, ErrTruncatedFrame
		}
		m.Component = crdt.ComponentID(binary.LittleEndian.Uint32(rest))
		m.Kind = crdt.Kind(rest[4])
		m.Timestamp = crdt.Timestamp(binary.LittleEndian.Uint32(rest[5:]))
		payloadLen := binary.LittleEndian.Uint32(rest[9:])
		if int(payloadLen) != len(rest)-updateHeaderSize {
			return Message{}, 0, fmt.Errorf("%w: payload %d bytes in %d-byte frame",
				ErrFrameLength, payloadLen, length)
		}
		m.Payload = make([]byte, payloadLen)
		copy(m.Payload, rest[updateHeaderSize:])
	case DeleteComponent:
		if len(rest) != deleteHeaderSize {
			return Message{}, 0, ErrFrameLength
		}
		m.Component = crdt.ComponentID(binary.LittleEndian.Uint32(rest))
		m.Timestamp = crdt.Timestamp(binary.LittleEndian.Uint32(rest[4:]))
	case DeleteEntity:
		if len(rest) != 0 {
			return Message{}, 0, ErrFrameLength
		}
	default:
		return Message{}, 0, fmt.Errorf("%w: %d", ErrUnknownFrameType, body[0])
	}

	return m, consumed, nil
}

// DecodeBatch decodes frames until buf is exhausted. On a framing error the
// messages decoded so far are returned together with the error; a bad frame
// never aborts updates that already decoded.
func DecodeBatch(buf []byte) ([]Message, error) {
	var msgs []Message
	for len(buf) > 0 {
		m, n, err := DecodeMessage(buf)
		if err != nil {
			return msgs, err
		}
		msgs = append(msgs, m)
		buf = buf[n:]
	}
	return msgs, nil
}

// EncodeBatch encodes msgs back to back into one buffer.
func EncodeBatch(msgs []Message) []byte {
	var buf []byte
	for _, m := range msgs {
		buf = EncodeMessage(buf, m)
	}
	return buf
}

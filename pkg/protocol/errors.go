package protocol

import "errors"

var (
	ErrTruncatedFrame   = errors.New("truncated frame")
	ErrFrameLength      = errors.New("frame length mismatch")
	ErrUnknownFrameType = errors.New("unknown frame type")
	ErrBadTransform     = errors.New("transform payload must be 44 bytes")
)

package config

import "errors"

var ErrNegativeCapacity = errors.New("channel capacity must not be negative")
var ErrInvalidLimit = errors.New("limit must be positive, zero or -1")
var ErrUnknownLogLevel = errors.New("unknown log level")

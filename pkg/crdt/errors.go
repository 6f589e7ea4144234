package crdt

import "fmt"

var ErrUnknownComponent = fmt.Errorf("unknown component id")
var ErrKindMismatch = fmt.Errorf("crdt kind mismatch")

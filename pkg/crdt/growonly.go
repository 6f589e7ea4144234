package crdt

// AppendedEvent is one element of an append-only component stream.
type AppendedEvent struct {
	Entity    Entity
	Timestamp Timestamp
	Data      []byte
}

// GrowOnlyState collects events for an append-only component. There is no
// merge: every received event is kept and forwarded exactly once.
type GrowOnlyState struct {
	queue []AppendedEvent
}

func NewGrowOnlyState() *GrowOnlyState {
	return &GrowOnlyState{}
}

func (s *GrowOnlyState) Append(e Entity, ts Timestamp, data []byte) {
	s.queue = append(s.queue, AppendedEvent{
		Entity:    e,
		Timestamp: ts,
		Data:      append([]byte(nil), data...),
	})
}

// Take returns the events appended since the last drain, in arrival order.
func (s *GrowOnlyState) Take() []AppendedEvent {
	q := s.queue
	s.queue = nil
	return q
}

// Remove drops pending events for a deleted entity.
func (s *GrowOnlyState) Remove(e Entity) {
	kept := s.queue[:0]
	for _, ev := range s.queue {
		if ev.Entity != e {
			kept = append(kept, ev)
		}
	}
	s.queue = kept
}

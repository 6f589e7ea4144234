package crdt

import "golang.org/x/exp/constraints"

// Результаты сравнения
const (
	Lower   = -1
	Equal   = 0
	Greater = 1
)

// Timestamp is a per-(entity, component) Lamport counter assigned by the
// writer. It is not wall-clock time. Comparison is plain integer ordering;
// wraparound of the u32 space is not handled (known limitation).
type Timestamp uint32

// Compare returns Lower, Equal or Greater.
func Compare(a, b Timestamp) int {
	return CompareOrdered(a, b)
}

// CompareOrdered сравнивает два значения: возвращает -1,0,1
func CompareOrdered[T constraints.Ordered](a, b T) int {
	if a < b {
		return Lower
	}
	if a > b {
		return Greater
	}
	return Equal
}

func (t Timestamp) Before(other Timestamp) bool { return Compare(t, other) == Lower }
func (t Timestamp) After(other Timestamp) bool  { return Compare(t, other) == Greater }

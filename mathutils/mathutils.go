package mathutils

import (
	"math"
	"sort"

	"golang.org/x/exp/constraints"
)

// FloatEquals compares two floats within an absolute tolerance (default 0.001).
func FloatEquals(a float64, b float64, args ...interface{}) bool {
	if len(args) >= 1 {
		return math.Abs(a-b) < args[0].(float64)
	}
	return math.Abs(a-b) < 0.001
}

func Max[T constraints.Ordered](x, y T) T {
	if x < y {
		return y
	}
	return x
}

func Min[T constraints.Ordered](x, y T) T {
	if y < x {
		return y
	}
	return x
}

func Median(n []int) int {
	sort.Ints(n) // sort numbers
	idx := len(n) / 2
	if len(n)%2 == 1 { // odd
		return n[idx]
	}
	return (n[idx-1] + n[idx]) / 2
}

func MedianFloat64(n []float64) float64 {
	sort.Float64s(n)
	idx := len(n) / 2
	if len(n)%2 == 1 {
		return n[idx]
	}
	return (n[idx-1] + n[idx]) / 2
}

// IndexedFloat64Slice sorts a copy of a float64 slice while tracking the
// original index of each element, so a caller can recover "which vertex had
// this x-value" after sorting. Used by the threshold sweep in graph/qp.go
// (roundContinuousPartition).
type IndexedFloat64Slice struct {
	sort.Float64Slice
	Idx []int
}

func (s IndexedFloat64Slice) Swap(i, j int) {
	s.Float64Slice.Swap(i, j)
	s.Idx[i], s.Idx[j] = s.Idx[j], s.Idx[i]
}

func NewIndexedFloat64Slice(n []float64) *IndexedFloat64Slice {
	cpy := make([]float64, len(n))
	copy(cpy, n)
	s := &IndexedFloat64Slice{Float64Slice: sort.Float64Slice(cpy), Idx: make([]int, len(n))}
	for i := range s.Idx {
		s.Idx[i] = i
	}
	return s
}

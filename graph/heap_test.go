package graph

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGainHeapPushPopOrder(t *testing.T) {
	key := []float64{5, 1, 9, 3, 7}
	idx := []int{-1, -1, -1, -1, -1}
	h := NewGainHeap(key, idx)

	for v := range key {
		h.Push(v)
	}
	require.Equal(t, 5, h.Len())

	var popped []int
	for h.Len() > 0 {
		popped = append(popped, h.PopMax())
	}
	require.Equal(t, []int{2, 4, 0, 3, 1}, popped)
	for _, v := range idx {
		require.Equal(t, -1, v)
	}
}

func TestGainHeapFixAfterKeyChange(t *testing.T) {
	key := []float64{1, 2, 3}
	idx := []int{-1, -1, -1}
	h := NewGainHeap(key, idx)
	h.Push(0)
	h.Push(1)
	h.Push(2)
	require.Equal(t, 2, h.Peek())

	key[0] = 10
	h.Fix(0)
	require.Equal(t, 0, h.Peek())
}

func TestGainHeapRemoveFromMiddle(t *testing.T) {
	key := []float64{9, 8, 7, 6, 5}
	idx := []int{-1, -1, -1, -1, -1}
	h := NewGainHeap(key, idx)
	for v := range key {
		h.Push(v)
	}

	h.Remove(2)
	require.False(t, h.Contains(2))
	require.Equal(t, 4, h.Len())

	var popped []int
	for h.Len() > 0 {
		popped = append(popped, h.PopMax())
	}
	require.Equal(t, []int{0, 1, 3, 4}, popped)
}

func TestGainHeapReset(t *testing.T) {
	key := []float64{1, 2}
	idx := []int{-1, -1}
	h := NewGainHeap(key, idx)
	h.Push(0)
	h.Push(1)
	h.Reset()
	require.Equal(t, 0, h.Len())
	require.False(t, h.Contains(0))
	require.False(t, h.Contains(1))
}

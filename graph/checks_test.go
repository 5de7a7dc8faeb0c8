package graph

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCheckWeightInvariantPassesOnExactMatch(t *testing.T) {
	g := newCSRGraph([][]testNeighbor{{{1, 1}}, {{0, 1}}})
	g.Finalize()
	c := &Graph{Parent: g, WTotal: g.WTotal}
	require.NotPanics(t, func() { c.CheckWeightInvariant(1e-9) })
}

func TestCheckWeightInvariantCatchesDrift(t *testing.T) {
	g := newCSRGraph([][]testNeighbor{{{1, 1}}, {{0, 1}}})
	g.Finalize()
	c := &Graph{Parent: g, WTotal: g.WTotal + 1}
	require.Panics(t, func() { c.CheckWeightInvariant(1e-9) })
}

func TestCheckPartitionInvariantCatchesMissingAssignment(t *testing.T) {
	g := newCSRGraph([][]testNeighbor{{{1, 1}}, {{0, 1}}})
	g.Partition = []int{0, 2}
	require.Panics(t, func() { g.CheckPartitionInvariant() })
}

func TestCheckCutCostInvariantCatchesStaleCutCost(t *testing.T) {
	g := newCSRGraph([][]testNeighbor{
		{{1, 1}, {2, 1}},
		{{0, 1}},
		{{0, 1}},
	})
	g.Finalize()
	g.Partition = []int{0, 1, 1}
	g.CutCost = 0 // wrong: both edges (0-1 and 0-2) cross, for a real cost of 2

	require.Panics(t, func() { g.CheckCutCostInvariant(1e-9) })

	g.CutCost = 2
	require.NotPanics(t, func() { g.CheckCutCostInvariant(1e-9) })
}

func TestGraphCheckInvariantsCatchesMissingMirror(t *testing.T) {
	g := NewGraph(2, 1)
	g.P = []int{0, 1, 1}
	g.I = []int{1}
	g.X = []float64{2}
	g.W = []float64{1, 1}

	require.Panics(t, func() { g.CheckInvariants(1e-9) })
}

func TestGraphCheckInvariantsPassesOnSymmetricGraph(t *testing.T) {
	g := newCSRGraph([][]testNeighbor{{{1, 1}}, {{0, 1}}})
	g.Finalize()
	require.NotPanics(t, func() { g.CheckInvariants(1e-9) })
}

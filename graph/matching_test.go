package graph

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// testNeighbor is one entry of a hand-specified adjacency list, given in the
// exact storage order the CSR arrays should carry it in.
type testNeighbor struct {
	to int
	w  float64
}

// newCSRGraph builds a Graph straight from an adjacency-list literal, bypassing
// condition.Condition. The caller is responsible for symmetry: every (k, to, w)
// must have a matching (to, k, w) somewhere in adj[to].
func newCSRGraph(adj [][]testNeighbor) *Graph {
	n := len(adj)
	nz := 0
	for _, ns := range adj {
		nz += len(ns)
	}
	g := NewGraph(n, nz)
	p := 0
	for k, ns := range adj {
		g.P[k] = p
		for _, nb := range ns {
			g.I[p] = nb.to
			g.X[p] = nb.w
			p++
		}
	}
	g.P[n] = p
	for k := range g.W {
		g.W[k] = 1
	}
	g.Finalize()
	return g
}

func TestMatchRandomFirstFit(t *testing.T) {
	g := newCSRGraph([][]testNeighbor{
		{{1, 1}},
		{{0, 1}, {2, 1}},
		{{1, 1}, {3, 1}},
		{{2, 1}},
	})
	g.Match(MatchOptions{Strategy: Random})
	require.NotPanics(t, g.CheckMatchingInvariant)

	require.Equal(t, 2, g.Matching[0]) // 0 <-> 1
	require.Equal(t, 1, g.Matching[1])
	require.Equal(t, 4, g.Matching[2]) // 2 <-> 3
	require.Equal(t, 3, g.Matching[3])
	require.Equal(t, 2, g.Cn)
}

func TestMatchHEMPicksHeaviestEdge(t *testing.T) {
	g := newCSRGraph([][]testNeighbor{
		{{1, 3}, {2, 5}},
		{{0, 3}, {2, 1}},
		{{0, 5}, {1, 1}},
		{},
	})
	g.Match(MatchOptions{Strategy: HEM})
	require.NotPanics(t, g.CheckMatchingInvariant)

	// 0 pairs with 2 (weight 5 beats weight 3); 1 and 3 fall to cleanup as
	// self-matched orphans.
	require.Equal(t, 3, g.Matching[0]) // 0 <-> 2
	require.Equal(t, 1, g.Matching[2])
	require.Equal(t, 2, g.Matching[1]) // self-matched
	require.Equal(t, 4, g.Matching[3]) // self-matched
	require.Equal(t, 3, g.Cn)
	require.Equal(t, []int{0, 1, 0, 2}, g.MatchMap)
}

func hubAndLeavesGraph() *Graph {
	return newCSRGraph([][]testNeighbor{
		{{1, 5}, {2, 2}, {3, 2}, {4, 2}},
		{{0, 5}},
		{{0, 2}},
		{{0, 2}},
		{{0, 2}},
	})
}

func TestMatchHEMPAPairsLeftoverLeaves(t *testing.T) {
	g := hubAndLeavesGraph()
	g.Match(MatchOptions{Strategy: HEMPA})
	require.NotPanics(t, g.CheckMatchingInvariant)

	// HEM pairs the hub with its heaviest neighbour (1); PA then walks the
	// hub's remaining adjacency (2, 3, 4) two at a time, pairing 2 with 3 and
	// leaving 4 as a self-matched orphan since DoCommunityMatching is off.
	require.Equal(t, 2, g.Matching[0])
	require.Equal(t, 1, g.Matching[1])
	require.Equal(t, 4, g.Matching[2]) // 2 <-> 3
	require.Equal(t, 3, g.Matching[3])
	require.Equal(t, 5, g.Matching[4]) // self-matched

	require.Equal(t, []int{0, 0, 1, 1, 2}, g.MatchMap)
	require.Equal(t, 3, g.Cn)
}

func TestMatchHEMDavisPAGatesOnDegree(t *testing.T) {
	g := hubAndLeavesGraph()
	// avgDegree = Nz/N = 8/5 = 1.6; threshold 1.0 makes the hub (degree 4)
	// qualify for a second pairing pass while the leaves (degree 1) don't.
	g.Match(MatchOptions{Strategy: HEMDavisPA, DavisBrotherlyThreshold: 1.0})
	require.NotPanics(t, g.CheckMatchingInvariant)

	require.Equal(t, 2, g.Matching[0])
	require.Equal(t, 1, g.Matching[1])
	require.Equal(t, 4, g.Matching[2]) // 2 <-> 3
	require.Equal(t, 3, g.Matching[3])
	require.Equal(t, 5, g.Matching[4]) // self-matched
	require.Equal(t, 3, g.Cn)
}

func TestMatchHEMDavisPABelowThresholdSkipsSecondPass(t *testing.T) {
	g := hubAndLeavesGraph()
	// A threshold no vertex can clear leaves matchDavisPA a no-op: the hub's
	// unmatched neighbours fall through to cleanup as individual orphans.
	g.Match(MatchOptions{Strategy: HEMDavisPA, DavisBrotherlyThreshold: 100})
	require.NotPanics(t, g.CheckMatchingInvariant)

	require.Equal(t, 2, g.Matching[0]) // 0 <-> 1
	require.Equal(t, 1, g.Matching[1])
	require.Equal(t, 3, g.Matching[2]) // self-matched
	require.Equal(t, 4, g.Matching[3]) // self-matched
	require.Equal(t, 5, g.Matching[4]) // self-matched
	require.Equal(t, 4, g.Cn)
}

func TestMatchCleanupPairsTwoOrphans(t *testing.T) {
	// Two isolated vertices (2 and 3) among two mutually-matched ones (0-1).
	g := newCSRGraph([][]testNeighbor{
		{{1, 1}},
		{{0, 1}},
		{},
		{},
	})
	g.Match(MatchOptions{Strategy: HEM})
	require.NotPanics(t, g.CheckMatchingInvariant)

	require.Equal(t, 2, g.Matching[0]) // 0 <-> 1
	require.Equal(t, 1, g.Matching[1])
	require.Equal(t, 4, g.Matching[2]) // 2 <-> 3, not two separate singletons
	require.Equal(t, 3, g.Matching[3])
	require.Equal(t, 2, g.Cn)
}

func TestMatchCleanupLoneOrphanSelfMatches(t *testing.T) {
	// A single isolated vertex with no other degree-0 vertex to pair with.
	g := newCSRGraph([][]testNeighbor{
		{{1, 1}},
		{{0, 1}},
		{},
	})
	g.Match(MatchOptions{Strategy: HEM})
	require.NotPanics(t, g.CheckMatchingInvariant)
	require.Equal(t, 3, g.Matching[2]) // self-matched
}

package graph

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
)

// fromGonum converts a gonum weighted undirected graph whose node ids form
// a dense 0..n-1 range into a CSR *Graph with unit vertex weights, sorting
// each row by column id for the same deterministic storage order
// condition.buildGraph produces from a Matrix Market read.
func fromGonum(g *simple.WeightedUndirectedGraph) *Graph {
	nodes := graph.NodesOf(g.Nodes())
	n := len(nodes)

	type colWeight struct {
		col int
		w   float64
	}
	byRow := make([][]colWeight, n)
	nz := 0
	for _, u := range nodes {
		uid := int(u.ID())
		for _, v := range graph.NodesOf(g.From(u.ID())) {
			vid := int(v.ID())
			w := g.WeightedEdge(u.ID(), v.ID()).Weight()
			byRow[uid] = append(byRow[uid], colWeight{vid, w})
			nz++
		}
	}
	for _, row := range byRow {
		sort.Slice(row, func(a, b int) bool { return row[a].col < row[b].col })
	}

	out := NewGraph(n, nz)
	cursor := 0
	for k := 0; k < n; k++ {
		out.P[k] = cursor
		for _, cw := range byRow[k] {
			out.I[cursor] = cw.col
			out.X[cursor] = cw.w
			cursor++
		}
	}
	out.P[n] = cursor
	for k := range out.W {
		out.W[k] = 1
	}
	out.Finalize()
	return out
}

// gonumK4 builds the complete graph on 4 vertices with unit edge weights,
// scenario A of the testable-properties section, via gonum's graph
// builder instead of a hand-written CSR literal.
func gonumK4() *simple.WeightedUndirectedGraph {
	g := simple.NewWeightedUndirectedGraph(0, 0)
	for i := int64(0); i < 4; i++ {
		for j := i + 1; j < 4; j++ {
			g.SetWeightedEdge(simple.WeightedEdge{F: simple.Node(i), T: simple.Node(j), W: 1})
		}
	}
	return g
}

// gonumPath builds a chain of n vertices with unit edge weights, scenario
// B's path graph.
func gonumPath(n int) *simple.WeightedUndirectedGraph {
	g := simple.NewWeightedUndirectedGraph(0, 0)
	for i := int64(0); i < int64(n)-1; i++ {
		g.SetWeightedEdge(simple.WeightedEdge{F: simple.Node(i), T: simple.Node(i + 1), W: 1})
	}
	return g
}

func TestFromGonumK4MatchesExpectedCSRShape(t *testing.T) {
	g := fromGonum(gonumK4())
	require.Equal(t, 4, g.N)
	require.Equal(t, 12, g.Nz)
	for k := 0; k < g.N; k++ {
		require.Equal(t, 3, g.P[k+1]-g.P[k])
	}
	require.InDelta(t, 4.0, g.WTotal, 1e-9)
	require.InDelta(t, 6.0, g.XTotal, 1e-9)
}

func TestFromGonumPathProducesChainAdjacency(t *testing.T) {
	g := fromGonum(gonumPath(5))
	require.Equal(t, 5, g.N)
	require.Equal(t, 8, g.Nz)
	require.Equal(t, []int{1}, g.I[g.P[0]:g.P[1]])
	require.Equal(t, []int{0, 2}, g.I[g.P[1]:g.P[2]])
	require.Equal(t, []int{3}, g.I[g.P[4]:g.P[5]])
}

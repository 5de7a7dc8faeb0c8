// Package condition prepares a raw, possibly ill-formed graph (as read
// from a Matrix-Market file) for ComputeEdgeSeparator: the core algorithm
// requires a symmetric, self-loop-free, positively-weighted, single
// connected component.
package condition

import (
	"math"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/nsep/mongoose/graph"
)

// Triplet is one (possibly duplicate, possibly asymmetric) edge read from
// an input file: vertex i to vertex j with weight w.
type Triplet struct {
	I, J int
	W    float64
}

type pair struct{ i, j int }

// Condition builds a conditioned *graph.Graph from n vertices, a list of
// edge triplets and optional vertex weights (nil means every vertex has
// weight 1). The returned graph is:
//   - symmetric: for every stored (i,j,w) there is a stored (j,i,w)
//   - self-loop free
//   - positively weighted (edge weights are taken in absolute value)
//   - restricted to its largest connected component
//
// Running Condition again on its own output is a no-op up to vertex
// relabelling: the result already satisfies all four properties.
func Condition(n int, triplets []Triplet, vertexWeights []float64) *graph.Graph {
	accum := symmetrize(n, triplets)
	members := largestComponent(n, accum)

	if len(members) < n {
		log.Debug().Int("total", n).Int("kept", len(members)).
			Msg("condition: restricting to largest connected component")
	}

	return buildGraph(members, accum, vertexWeights)
}

// symmetrize drops self-loops, sums duplicate entries for the same
// (i,j), and fills in or averages the mirror of every edge so that
// weight(i,j) == weight(j,i), then takes the absolute value.
func symmetrize(n int, triplets []Triplet) map[pair]float64 {
	raw := make(map[pair]float64, len(triplets))
	for _, t := range triplets {
		if t.I == t.J || t.I < 0 || t.J < 0 || t.I >= n || t.J >= n {
			continue
		}
		raw[pair{t.I, t.J}] += t.W
	}

	sym := make(map[pair]float64, len(raw)*2)
	seen := make(map[pair]bool, len(raw))
	for p, w := range raw {
		if seen[p] {
			continue
		}
		mirror := pair{p.j, p.i}
		mw, ok := raw[mirror]
		avg := w
		if ok {
			avg = (w + mw) / 2
			seen[mirror] = true
		}
		avg = math.Abs(avg)
		sym[p] = avg
		sym[mirror] = avg
		seen[p] = true
	}
	return sym
}

// largestComponent returns the vertex ids of the largest connected
// component of the n vertices implied by adj, by vertex count. An
// isolated vertex is its own component of size 1. The BFS visits each
// vertex's neighbours in increasing id order, so the returned order does
// not depend on map iteration.
func largestComponent(n int, adj map[pair]float64) []int {
	neighbors := make(map[int][]int, n)
	for p := range adj {
		neighbors[p.i] = append(neighbors[p.i], p.j)
	}
	for _, ns := range neighbors {
		sort.Ints(ns)
	}

	visited := make([]bool, n)
	var best []int
	for root := 0; root < n; root++ {
		if visited[root] {
			continue
		}
		component := []int{root}
		visited[root] = true
		queue := []int{root}
		for len(queue) > 0 {
			v := queue[0]
			queue = queue[1:]
			for _, u := range neighbors[v] {
				if !visited[u] {
					visited[u] = true
					component = append(component, u)
					queue = append(queue, u)
				}
			}
		}
		if len(component) > len(best) {
			best = component
		}
	}
	return best
}

type colWeight struct {
	col int
	w   float64
}

// buildGraph materializes a graph.Graph restricted to members, relabelled
// to 0..len(members)-1 in members' order, with each row's neighbours
// sorted by column id for deterministic storage order.
func buildGraph(members []int, adj map[pair]float64, vertexWeights []float64) *graph.Graph {
	newID := make(map[int]int, len(members))
	for i, v := range members {
		newID[v] = i
	}

	byRow := make([][]colWeight, len(members))
	nz := 0
	for p, w := range adj {
		ni, iok := newID[p.i]
		nj, jok := newID[p.j]
		if !iok || !jok {
			continue
		}
		byRow[ni] = append(byRow[ni], colWeight{nj, w})
		nz++
	}
	for _, row := range byRow {
		sort.Slice(row, func(a, b int) bool { return row[a].col < row[b].col })
	}

	g := graph.NewGraph(len(members), nz)
	cursor := 0
	for i, v := range members {
		g.P[i] = cursor
		for _, cw := range byRow[i] {
			g.I[cursor] = cw.col
			g.X[cursor] = cw.w
			cursor++
		}
		if vertexWeights == nil {
			g.W[i] = 1
		} else {
			g.W[i] = vertexWeights[v]
		}
	}
	g.P[len(members)] = cursor

	g.Finalize()
	return g
}

// Package graph implements the compressed-sparse-row vertex-weighted graph
// used by the edge-separator engine, plus the matching, coarsening, boundary
// FM, and QP-refinement passes that operate on it.
package graph

import (
	"fmt"

	"github.com/nsep/mongoose/enforce"
)

// Graph is a compressed-sparse adjacency of an undirected, weighted graph.
// Neighbours of vertex k are stored at I[P[k]:P[k+1]], with weights in the
// parallel array X. The graph is always stored symmetrically: for every
// stored (i,j,w) there is a stored (j,i,w). Self-loops are never stored.
//
// A Graph also carries the per-level scratch state needed by the uncoarsening
// passes (vertex gains, boundary heaps, matching bookkeeping) so that a level
// can be refined in place without separate allocation of "refinement state"
// objects. This mirrors the reference library, where Graph and its working
// arrays are a single allocation unit released together.
type Graph struct {
	N  int       // vertex count
	Nz int       // nonzero count (directed; each undirected edge counted twice)
	P  []int     // column pointer, length N+1
	I  []int     // neighbour ids, length Nz
	X  []float64 // edge weights, length Nz, strictly positive
	W  []float64 // vertex weights, length N, strictly positive

	WTotal float64 // sum of W; invariant across coarsening levels
	XTotal float64 // sum of edge weights at this level
	H      float64 // 2*XTotal, a heuristic upper bound on cut cost

	Parent *Graph // the finer graph this one was coarsened from; nil at the top

	// Matching bookkeeping, built lazily by Match (matching.go) and
	// consumed by Coarsen (coarsening.go).
	Matching    []int // Matching[a] = b+1 if a,b matched (a+1 if self-matched); 0 = unmatched
	MatchMap    []int // MatchMap[a] = coarse vertex id containing fine vertex a
	InvMatchMap []int // InvMatchMap[c] = one representative fine vertex of coarse vertex c
	Cn          int   // number of supernodes formed so far (== next coarse graph's N)
	Singleton   int   // pending isolated vertex awaiting pairing during Cleanup, or -1

	// Partition / refinement scratch, populated during uncoarsening.
	Partition       []int     // Partition[v] in {0,1}, nil until a guess has been made
	VertexGains     []float64 // gain for moving vertex across the cut
	ExternalDegree  []float64 // sum of edge weights to the opposite side
	BhIndex         []int     // index of vertex in its side's boundary heap, -1 if absent

	CutCost   float64
	W0, W1    float64
	Imbalance float64
}

// NewGraph allocates a Graph with n vertices and room for nz directed edges.
// Callers fill P, I, X, W after allocation (e.g. from a conditioned
// Matrix-Market read), then call Graph.Finalize.
func NewGraph(n, nz int) *Graph {
	return &Graph{
		N:  n,
		Nz: nz,
		P:  make([]int, n+1),
		I:  make([]int, nz),
		X:  make([]float64, nz),
		W:  make([]float64, n),
	}
}

// Finalize computes WTotal/XTotal/H from P/I/X/W. Call once after the CSR
// arrays are populated (by conditioning, by a test fixture, or by coarsening).
func (g *Graph) Finalize() {
	g.WTotal = 0
	for _, w := range g.W {
		g.WTotal += w
	}
	g.XTotal = 0
	for _, x := range g.X {
		g.XTotal += x
	}
	g.XTotal /= 2 // each undirected edge stored twice
	g.H = 2 * g.XTotal
}

// newLevel allocates an empty child Graph of n vertices with room for nz
// directed edges and Parent set to parent, used as the scaffold for the next
// coarser level. Only the CSR arrays are allocated (scratch fields stay nil),
// and their contents are not filled in; the caller (Coarsen) fills P/I/X/W.
func newLevel(n, nz int, parent *Graph) *Graph {
	c := NewGraph(n, nz)
	c.Parent = parent
	c.Singleton = -1
	return c
}

// degree returns the number of neighbours of vertex k.
func (g *Graph) degree(k int) int {
	return g.P[k+1] - g.P[k]
}

// IsMatched reports whether vertex k has already been assigned a supernode.
func (g *Graph) IsMatched(k int) bool {
	return g.Matching != nil && g.Matching[k] != 0
}

// ensureMatchingArrays lazily allocates the matching bookkeeping arrays the
// first time a matching strategy runs against this graph.
func (g *Graph) ensureMatchingArrays() {
	if g.Matching == nil {
		g.Matching = make([]int, g.N)
		g.MatchMap = make([]int, g.N)
		g.Singleton = -1
	}
}

// AllocatePartitionScratch allocates Partition/VertexGains/ExternalDegree/
// BhIndex, used right before the first refinement pass touches a level.
func (g *Graph) AllocatePartitionScratch() {
	if g.Partition == nil {
		g.Partition = make([]int, g.N)
	}
	g.VertexGains = make([]float64, g.N)
	g.ExternalDegree = make([]float64, g.N)
	g.BhIndex = make([]int, g.N)
	for i := range g.BhIndex {
		g.BhIndex[i] = -1
	}
}

// CheckInvariants asserts the CSR structural contract: no self-loops,
// positive edge weights, and a mirrored (j,i,w) for every (i,j,w). Only
// called when Options.DoExpensiveChecks is set; must never fire on
// well-formed input.
func (g *Graph) CheckInvariants(relTol float64) {
	// Symmetry: for every (i,j,w), there must be a mirrored (j,i,w).
	for k := 0; k < g.N; k++ {
		for p := g.P[k]; p < g.P[k+1]; p++ {
			j := g.I[p]
			enforce.ENFORCE(j != k, fmt.Sprintf("self-loop at vertex %d", k))
			w := g.X[p]
			enforce.ENFORCE(w > 0, fmt.Sprintf("non-positive edge weight at %d->%d", k, j))
			found := false
			for q := g.P[j]; q < g.P[j+1]; q++ {
				if g.I[q] == k {
					found = true
					diff := w - g.X[q]
					if diff < 0 {
						diff = -diff
					}
					enforce.ENFORCE(diff <= relTol*(1+w), fmt.Sprintf("asymmetric weight %d<->%d", k, j))
					break
				}
			}
			enforce.ENFORCE(found, fmt.Sprintf("missing mirror edge %d->%d", j, k))
		}
	}
	for k := 0; k < g.N; k++ {
		enforce.ENFORCE(g.W[k] > 0, fmt.Sprintf("non-positive vertex weight at %d", k))
	}
}

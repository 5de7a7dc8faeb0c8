package graph

import (
	"fmt"
	"math"

	"github.com/nsep/mongoose/enforce"
)

// CheckWeightInvariant asserts that a coarse graph's total vertex weight
// matches its parent's, within a relative tolerance rather than exact
// float equality: coarsening sums the same weights in a different grouping
// order, so bit-identical totals aren't guaranteed even though the sum is
// mathematically unchanged.
func (g *Graph) CheckWeightInvariant(relTol float64) {
	if g.Parent == nil {
		return
	}
	diff := math.Abs(g.WTotal - g.Parent.WTotal)
	enforce.ENFORCE(diff <= relTol*(1+g.Parent.WTotal),
		fmt.Sprintf("coarse WTotal %v diverged from parent %v", g.WTotal, g.Parent.WTotal))
}

// CheckMatchingInvariant asserts the postconditions of Match: every vertex
// is matched, every supernode has 1-3 members, and Cn matches the number
// of distinct coarse ids actually produced.
func (g *Graph) CheckMatchingInvariant() {
	enforce.ENFORCE(g.Matching != nil, "Match was never run")
	seen := make([]int, g.Cn)
	for v := 0; v < g.N; v++ {
		enforce.ENFORCE(g.IsMatched(v), fmt.Sprintf("vertex %d left unmatched", v))
		seen[g.MatchMap[v]]++
	}
	for c, count := range seen {
		enforce.ENFORCE(count >= 1 && count <= 3, fmt.Sprintf("supernode %d has %d members", c, count))
	}
}

// CheckPartitionInvariant asserts every vertex is assigned to side 0 or 1.
func (g *Graph) CheckPartitionInvariant() {
	enforce.ENFORCE(g.Partition != nil, "no partition computed")
	for v, side := range g.Partition {
		enforce.ENFORCE(side == 0 || side == 1, fmt.Sprintf("vertex %d has invalid side %d", v, side))
	}
}

// CheckCutCostInvariant asserts CutCost equals half the total weight of
// cross-partition edges, the testable property that ties FM's incremental
// bookkeeping back to a from-scratch definition.
func (g *Graph) CheckCutCostInvariant(relTol float64) {
	cross := 0.0
	for v := 0; v < g.N; v++ {
		for p := g.P[v]; p < g.P[v+1]; p++ {
			if g.Partition[v] != g.Partition[g.I[p]] {
				cross += g.X[p]
			}
		}
	}
	want := cross / 2
	diff := math.Abs(g.CutCost - want)
	enforce.ENFORCE(diff <= relTol*(1+want),
		fmt.Sprintf("CutCost %v disagrees with recomputed %v", g.CutCost, want))
}

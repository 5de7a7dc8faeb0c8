package graph

// Coarsen builds the next coarser graph from g's matching: every supernode
// of 1-3 fine vertices becomes one coarse vertex, its weight the sum of its
// members' weights, and its adjacency the union of its members' edges
// mapped through MatchMap, with duplicate targets merged by summing weight
// and self-edges dropped.
//
// g.Match must have been called first. The returned graph's Parent is g.
func (g *Graph) Coarsen() *Graph {
	cn := g.Cn
	c := newLevel(cn, g.Nz, g)

	htable := make([]int, cn)
	for i := range htable {
		htable[i] = -1
	}

	c.VertexGains = make([]float64, cn)

	munch := 0
	X := 0.0
	for k := 0; k < cn; k++ {
		members := g.supernodeMembers(k)

		columnStart := munch
		c.P[k] = munch

		nodeWeight := 0.0
		sumEdgeWeights := 0.0
		for i := 0; i < 3 && members[i] != -1; i++ {
			v := members[i]
			nodeWeight += g.W[v]
			for p := g.P[v]; p < g.P[v+1]; p++ {
				target := g.MatchMap[g.I[p]]
				if target == k {
					continue // self-edge, drop
				}
				edgeWeight := g.X[p]
				sumEdgeWeights += edgeWeight

				cp := htable[target]
				if cp < columnStart {
					htable[target] = munch
					c.I[munch] = target
					c.X[munch] = edgeWeight
					munch++
				} else {
					c.X[cp] += edgeWeight
				}
			}
		}

		c.W[k] = nodeWeight
		X += sumEdgeWeights
		c.VertexGains[k] = -sumEdgeWeights
	}

	c.P[cn] = munch
	c.Nz = munch
	c.I = c.I[:munch]
	c.X = c.X[:munch]

	c.XTotal = X
	c.H = 2 * X
	c.WTotal = g.WTotal

	return c
}

// supernodeMembers returns the 1-3 fine vertices that coarse vertex k
// represents (padded with -1), by walking the matching chain starting from
// InvMatchMap[k].
func (g *Graph) supernodeMembers(k int) [3]int {
	v := [3]int{-1, -1, -1}
	v[0] = g.InvMatchMap[k]
	partner := g.Matching[v[0]] - 1
	if partner == v[0] {
		return v
	}
	v[1] = partner
	third := g.Matching[v[1]] - 1
	if third == v[0] {
		return v
	}
	v[2] = third
	return v
}

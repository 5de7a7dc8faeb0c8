package graph

import "math"

// FMOptions carries the subset of separator.Options the boundary FM pass
// needs.
type FMOptions struct {
	TargetSplit       float64
	Tolerance         float64
	SearchDepth       int
	ConsiderCount     int
	MaxNumRefinements int
}

type fmMove struct {
	v    int
	from int
}

// RefineFM runs boundary FM passes against g's current Partition, stopping
// when a pass fails to strictly reduce CutCost or MaxNumRefinements is hit.
// It reports whether any pass made progress. Partition, W0/W1 and CutCost
// are left consistent with the best prefix found; VertexGains and
// ExternalDegree are left as of the last recomputeGains call and must not be
// relied on by the caller afterwards.
func (g *Graph) RefineFM(opts FMOptions) bool {
	improvedAny := false
	for pass := 0; pass < opts.MaxNumRefinements; pass++ {
		g.recomputeGains(opts.TargetSplit)
		startCut := g.CutCost

		heap0 := NewGainHeap(g.VertexGains, g.BhIndex)
		heap1 := NewGainHeap(g.VertexGains, g.BhIndex)
		for v := 0; v < g.N; v++ {
			if g.ExternalDegree[v] > 0 {
				if g.Partition[v] == 0 {
					heap0.Push(v)
				} else {
					heap1.Push(v)
				}
			}
		}

		history := make([]fmMove, 0, opts.SearchDepth)
		cum := 0.0
		bestCum := 0.0
		bestIdx := -1

		for step := 0; step < opts.SearchDepth; step++ {
			side := g.chooseFeasibleSide(heap0, heap1, opts)
			if side == -1 {
				break
			}
			h := heap0
			if side == 1 {
				h = heap1
			}
			v := g.pickBestCandidate(h, side, opts)
			if v == -1 {
				break
			}
			gain := g.VertexGains[v]
			g.moveVertex(v, side, heap0, heap1)
			cum += gain
			history = append(history, fmMove{v: v, from: side})
			if cum > bestCum {
				bestCum = cum
				bestIdx = len(history) - 1
			}
		}

		for i := len(history) - 1; i > bestIdx; i-- {
			v, from := history[i].v, history[i].from
			g.Partition[v] = from
			if from == 0 {
				g.W0 += g.W[v]
				g.W1 -= g.W[v]
			} else {
				g.W1 += g.W[v]
				g.W0 -= g.W[v]
			}
		}

		g.CutCost = startCut - bestCum
		if bestCum > 1e-9 {
			improvedAny = true
		} else {
			break
		}
	}
	return improvedAny
}

// ComputeCutStats recomputes CutCost, W0, W1 and Imbalance from the current
// Partition, without touching VertexGains/ExternalDegree/heaps. Callers
// that only need the summary numbers (the uncoarsening driver, after a
// guess or a projection) should prefer this name; RefineFM calls the same
// underlying work via recomputeGains because it also needs the heap inputs.
func (g *Graph) ComputeCutStats(targetSplit float64) {
	g.recomputeGains(targetSplit)
}

// recomputeGains rebuilds VertexGains and ExternalDegree from Partition, and
// refreshes W0, W1, CutCost and Imbalance. Called at the start of every FM
// pass and by ComputeCutStats.
func (g *Graph) recomputeGains(targetSplit float64) {
	w0, w1 := 0.0, 0.0
	for v := 0; v < g.N; v++ {
		if g.Partition[v] == 0 {
			w0 += g.W[v]
		} else {
			w1 += g.W[v]
		}
	}

	cut := 0.0
	for v := 0; v < g.N; v++ {
		external, internal := 0.0, 0.0
		for p := g.P[v]; p < g.P[v+1]; p++ {
			u := g.I[p]
			w := g.X[p]
			if g.Partition[u] == g.Partition[v] {
				internal += w
			} else {
				external += w
				cut += w
			}
		}
		g.ExternalDegree[v] = external
		g.VertexGains[v] = external - internal
	}

	g.W0, g.W1 = w0, w1
	g.CutCost = cut / 2
	g.Imbalance = math.Abs(w0/(w0+w1) - targetSplit)
}

// chooseFeasibleSide picks which side's boundary heap to draw from this
// step: the side whose top vertex can move without breaking the imbalance
// tolerance, preferring the heavier side when both are eligible.
func (g *Graph) chooseFeasibleSide(heap0, heap1 *GainHeap, opts FMOptions) int {
	feasible := func(h *GainHeap, side int) bool {
		if h.Len() == 0 {
			return false
		}
		return g.imbalanceOKAfterMove(h.Peek(), side, opts)
	}
	f0 := feasible(heap0, 0)
	f1 := feasible(heap1, 1)
	switch {
	case f0 && f1:
		if g.W0 >= g.W1 {
			return 0
		}
		return 1
	case f0:
		return 0
	case f1:
		return 1
	default:
		return -1
	}
}

// pickBestCandidate looks at up to opts.ConsiderCount top-gain vertices of
// side's heap and returns the best one that keeps the partition within
// tolerance, or -1 if none of those considered qualify. Candidates not
// chosen are pushed back.
func (g *Graph) pickBestCandidate(h *GainHeap, side int, opts FMOptions) int {
	considered := make([]int, 0, opts.ConsiderCount)
	for i := 0; i < opts.ConsiderCount && h.Len() > 0; i++ {
		considered = append(considered, h.PopMax())
	}

	chosen := -1
	for _, v := range considered {
		if chosen == -1 && g.imbalanceOKAfterMove(v, side, opts) {
			chosen = v
		}
	}
	for _, v := range considered {
		if v != chosen {
			h.Push(v)
		}
	}
	return chosen
}

func (g *Graph) imbalanceOKAfterMove(v, side int, opts FMOptions) bool {
	w0, w1 := g.W0, g.W1
	if side == 0 {
		w0 -= g.W[v]
		w1 += g.W[v]
	} else {
		w1 -= g.W[v]
		w0 += g.W[v]
	}
	return math.Abs(w0/(w0+w1)-opts.TargetSplit) <= opts.Tolerance
}

// moveVertex flips v from side to 1-side (side is v's current, pre-move
// side), updating W0/W1, gains and boundary membership of v and its
// neighbours. v must already have been removed from heap[side] by the
// caller.
func (g *Graph) moveVertex(v, side int, heap0, heap1 *GainHeap) {
	ns := 1 - side

	totalBefore := 0.0
	internalBefore := 0.0
	for p := g.P[v]; p < g.P[v+1]; p++ {
		u := g.I[p]
		w := g.X[p]
		totalBefore += w
		if g.Partition[u] == side {
			internalBefore += w
		}
	}

	if side == 0 {
		g.W0 -= g.W[v]
		g.W1 += g.W[v]
	} else {
		g.W1 -= g.W[v]
		g.W0 += g.W[v]
	}
	g.Partition[v] = ns
	g.VertexGains[v] = -g.VertexGains[v]
	g.ExternalDegree[v] = internalBefore

	for p := g.P[v]; p < g.P[v+1]; p++ {
		u := g.I[p]
		w := g.X[p]
		if g.Partition[u] == side {
			g.VertexGains[u] += 2 * w
			g.ExternalDegree[u] += w
		} else {
			g.VertexGains[u] -= 2 * w
			g.ExternalDegree[u] -= w
		}
		g.fixBoundary(u, heap0, heap1)
	}
	g.fixBoundary(v, heap0, heap1)
}

// fixBoundary reconciles u's presence (or absence) in the boundary heap of
// u's current side with u's current ExternalDegree.
func (g *Graph) fixBoundary(u int, heap0, heap1 *GainHeap) {
	h := heap0
	if g.Partition[u] == 1 {
		h = heap1
	}
	boundary := g.ExternalDegree[u] > 1e-12
	inHeap := g.BhIndex[u] >= 0
	switch {
	case boundary && inHeap:
		h.Fix(u)
	case boundary && !inHeap:
		h.Push(u)
	case !boundary && inHeap:
		h.Remove(u)
	}
}

package graph

import (
	"math"
	"sort"

	"github.com/nsep/mongoose/mathutils"
)

// QPOptions carries the subset of separator.Options the QP refinement pass
// needs.
type QPOptions struct {
	TargetSplit            float64
	Tolerance              float64
	GradProjTol            float64
	GradProjIterationLimit int
	UseQPBallOpt            bool
}

// QPDelta is the working state of one QP relaxation solve against a single
// level's graph, named after the reference library's struct of the same
// role: it bundles the relaxed partition x, the diagonal D of the
// Laplacian-like matrix Q=D-W, the gradient of the objective at x, and the
// active-set (FreeSet) bookkeeping the gradient-projection loop mutates as
// it runs.
type QPDelta struct {
	X        []float64
	D        []float64
	Gradient []float64

	FreeSetStatus []int // +1, -1, or 0 (free) per vertex
	FreeSetList   []int
	NFreeSet      int

	Lo, Hi float64 // bounds on a'x, a = vertex weights
	B      float64 // current a'x
	IB     int     // -1 if b<=lo, 0 if lo<b<hi, +1 if b>=hi
}

// NewQPDelta builds the working state for graph g with the box-constraint
// range implied by targetSplit/tolerance: lo/hi bracket the allowed total
// weight of side A.
func NewQPDelta(g *Graph, targetSplit, tolerance float64) *QPDelta {
	qp := &QPDelta{
		X:             make([]float64, g.N),
		D:             make([]float64, g.N),
		Gradient:      make([]float64, g.N),
		FreeSetStatus: make([]int, g.N),
		FreeSetList:   make([]int, 0, g.N),
	}
	for k := 0; k < g.N; k++ {
		d := 0.0
		for p := g.P[k]; p < g.P[k+1]; p++ {
			d += g.X[p]
		}
		qp.D[k] = d
	}
	qp.Lo = (targetSplit - tolerance) * g.WTotal
	qp.Hi = (targetSplit + tolerance) * g.WTotal
	return qp
}

// QPLinks computes the gradient of the QP objective from scratch at the
// current x, and buckets every vertex into the FreeSet. Returns false if x
// is not contained in [0,1]^n.
func (g *Graph) QPLinks(qp *QPDelta) bool {
	x := qp.X
	a := g.W

	for k := 0; k < g.N; k++ {
		qp.Gradient[k] = (0.5 - x[k]) * qp.D[k]
	}

	qp.FreeSetList = qp.FreeSetList[:0]
	s := 0.0
	for k := 0; k < g.N; k++ {
		xk := x[k]
		if xk < 0 || xk > 1 {
			return false
		}

		s += a[k] * xk
		r := 0.5 - xk
		for p := g.P[k]; p < g.P[k+1]; p++ {
			qp.Gradient[g.I[p]] += r * g.X[p]
		}

		switch {
		case xk >= 1:
			qp.FreeSetStatus[k] = 1
		case xk <= 0:
			qp.FreeSetStatus[k] = -1
		default:
			qp.FreeSetStatus[k] = 0
			qp.FreeSetList = append(qp.FreeSetList, k)
		}
	}
	qp.NFreeSet = len(qp.FreeSetList)
	qp.B = s

	switch {
	case s <= qp.Lo:
		qp.IB = -1
	case s < qp.Hi:
		qp.IB = 0
	default:
		qp.IB = 1
	}
	return true
}

// qpBoundary sweeps the FreeSet and pins any vertex whose gradient points
// further into a box face it already sits on, keeping a'x unchanged. This
// is the one QP sub-step the source leaves most implementation freedom in;
// here it runs as a cheap pre-pass before each gradient-projection step.
func (g *Graph) qpBoundary(qp *QPDelta) {
	const eps = 1e-12
	kept := qp.FreeSetList[:0]
	for _, k := range qp.FreeSetList {
		switch {
		case qp.X[k] <= eps && qp.Gradient[k] < 0:
			qp.X[k] = 0
			qp.FreeSetStatus[k] = -1
		case qp.X[k] >= 1-eps && qp.Gradient[k] > 0:
			qp.X[k] = 1
			qp.FreeSetStatus[k] = 1
			qp.B += 1 - qp.X[k]
		default:
			kept = append(kept, k)
		}
	}
	qp.FreeSetList = kept
	qp.NFreeSet = len(kept)
}

// RefineQP runs the gradient-projection outer loop against qp until the
// projected gradient norm on the FreeSet drops below GradProjTol or the
// iteration limit is hit, then rounds the resulting continuous x to a
// {0,1} partition via the same threshold sweep used for the QP initial
// guess. Returns whether the rounded partition differs from g.Partition's
// state at entry, and a non-nil error (ErrInfeasibleConstraint) if the
// ball-projection step couldn't bring a'x within tolerance of its bound.
func (g *Graph) RefineQP(qp *QPDelta, opts QPOptions) (bool, error) {
	a := g.W
	d := make([]float64, g.N)
	for iter := 0; iter < opts.GradProjIterationLimit; iter++ {
		g.qpBoundary(qp)
		if qp.NFreeSet == 0 {
			break
		}

		num, den := 0.0, 0.0
		for _, k := range qp.FreeSetList {
			num += a[k] * qp.Gradient[k]
			den += a[k] * a[k]
		}
		mu := 0.0
		if den > 0 {
			mu = num / den
		}

		gradNormSq := 0.0
		for _, k := range qp.FreeSetList {
			d[k] = -qp.Gradient[k] + mu*a[k]
			gradNormSq += d[k] * d[k]
		}
		if math.Sqrt(gradNormSq) <= opts.GradProjTol {
			break
		}

		alpha := math.Inf(1)
		hitIdx := -1
		for _, k := range qp.FreeSetList {
			if d[k] > 0 {
				if step := (1 - qp.X[k]) / d[k]; step < alpha {
					alpha, hitIdx = step, k
				}
			} else if d[k] < 0 {
				if step := (0 - qp.X[k]) / d[k]; step < alpha {
					alpha, hitIdx = step, k
				}
			}
		}
		if math.IsInf(alpha, 1) || alpha <= 0 {
			break
		}

		for _, k := range qp.FreeSetList {
			if d[k] == 0 {
				continue
			}
			delta := alpha * d[k]
			qp.X[k] += delta
			qp.B += a[k] * delta
			qp.Gradient[k] -= delta * qp.D[k]
			for p := g.P[k]; p < g.P[k+1]; p++ {
				qp.Gradient[g.I[p]] -= delta * g.X[p]
			}
		}

		if hitIdx != -1 {
			kept := qp.FreeSetList[:0]
			for _, k := range qp.FreeSetList {
				if k == hitIdx {
					continue
				}
				kept = append(kept, k)
			}
			qp.FreeSetList = kept
			qp.NFreeSet = len(kept)
			if qp.X[hitIdx] <= 1e-9 {
				qp.X[hitIdx] = 0
				qp.FreeSetStatus[hitIdx] = -1
			} else {
				qp.X[hitIdx] = 1
				qp.FreeSetStatus[hitIdx] = 1
			}
		}

		if opts.UseQPBallOpt && (qp.B < qp.Lo || qp.B > qp.Hi) {
			prev := append([]float64(nil), qp.X...)
			if _, err := QPNapsack(qp.X, qp.Lo, qp.Hi, a, qp.FreeSetStatus, 0, opts.GradProjTol); err != nil {
				return false, err
			}
			for k, old := range prev {
				if delta := qp.X[k] - old; delta != 0 {
					qp.Gradient[k] -= delta * qp.D[k]
					for p := g.P[k]; p < g.P[k+1]; p++ {
						qp.Gradient[g.I[p]] -= delta * g.X[p]
					}
				}
			}
			kept := qp.FreeSetList[:0]
			for _, k := range qp.FreeSetList {
				switch {
				case qp.X[k] <= 1e-9:
					qp.FreeSetStatus[k] = -1
				case qp.X[k] >= 1-1e-9:
					qp.FreeSetStatus[k] = 1
				default:
					kept = append(kept, k)
				}
			}
			qp.FreeSetList = kept
			qp.NFreeSet = len(kept)

			qp.B = 0
			for k := 0; k < g.N; k++ {
				qp.B += a[k] * qp.X[k]
			}
		}
	}

	return g.roundContinuousPartition(qp.X, opts.TargetSplit, opts.Tolerance), nil
}

// roundContinuousPartition thresholds x into a {0,1} partition by sweeping
// candidate cut points over x's sorted values and keeping the one that
// minimizes cut cost subject to the imbalance tolerance. Shared by the QP
// initial guess (guess.go) and QP rounding above.
func (g *Graph) roundContinuousPartition(x []float64, targetSplit, tolerance float64) bool {
	indexed := mathutils.NewIndexedFloat64Slice(x)
	sort.Sort(indexed)
	order := indexed.Idx

	pos := make([]int, g.N)
	for i, v := range order {
		pos[v] = i
	}

	bestCut := math.Inf(1)
	bestThreshold := -1
	bestDiff := math.Inf(1)
	fallbackThreshold := 0
	cut := 0.0
	runningW := 0.0
	for i, v := range order {
		for p := g.P[v]; p < g.P[v+1]; p++ {
			u := g.I[p]
			w := g.X[p]
			if pos[u] < i {
				cut -= w // edge to an already-placed side-0 neighbour: was cross, now internal
			} else {
				cut += w // edge to a still-unplaced side-1 neighbour: was internal, now cross
			}
		}
		runningW += g.W[v]
		diff := math.Abs(runningW/g.WTotal - targetSplit)
		if diff < bestDiff {
			bestDiff = diff
			fallbackThreshold = i
		}
		if diff <= tolerance && cut < bestCut {
			bestCut = cut
			bestThreshold = i
		}
	}
	if bestThreshold == -1 {
		// No candidate satisfied tolerance exactly; fall back to the split
		// closest to targetSplit regardless.
		bestThreshold = fallbackThreshold
	}

	changed := false
	for j := 0; j <= bestThreshold; j++ {
		if g.Partition[order[j]] != 0 {
			changed = true
		}
		g.Partition[order[j]] = 0
	}
	for j := bestThreshold + 1; j < g.N; j++ {
		if g.Partition[order[j]] != 1 {
			changed = true
		}
		g.Partition[order[j]] = 1
	}
	return changed
}


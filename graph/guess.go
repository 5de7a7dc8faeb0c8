package graph

import "math/rand"

// GuessCutType selects the strategy used to produce the first partition on
// the coarsest graph, before any refinement runs.
type GuessCutType int

const (
	GuessQP GuessCutType = iota
	GuessRandom
	GuessNaturalOrder
)

// GuessOptions carries the subset of separator.Options the initial-guess
// strategies need.
type GuessOptions struct {
	CutType      GuessCutType
	SearchDepth  int // BFS depth used to refine the pseudoperipheral root
	RandomSeed   int64
	TargetSplit  float64
	Tolerance    float64
	QP           QPOptions
}

// Guess populates g.Partition (allocating scratch if needed) with the
// initial two-way split chosen by opts.CutType. For GuessQP this already
// runs a full QP relaxation and rounding pass, and can fail with
// ErrInfeasibleConstraint; for the other two it leaves refinement to the
// caller's subsequent FM/QP passes and always succeeds.
func (g *Graph) Guess(opts GuessOptions) error {
	g.AllocatePartitionScratch()
	switch opts.CutType {
	case GuessRandom:
		g.guessRandom(opts.RandomSeed)
	case GuessNaturalOrder:
		g.guessNaturalOrder(opts.SearchDepth, opts.TargetSplit, opts.Tolerance)
	default:
		return g.guessQP(opts)
	}
	return nil
}

// guessRandom assigns each vertex to a side by an independent Bernoulli(1/2)
// draw, in vertex-id order, from a source seeded by seed. No balance
// guarantee is made; refinement is expected to fix the split.
func (g *Graph) guessRandom(seed int64) {
	rnd := rand.New(rand.NewSource(seed))
	for v := 0; v < g.N; v++ {
		if rnd.Float64() < 0.5 {
			g.Partition[v] = 0
		} else {
			g.Partition[v] = 1
		}
	}
}

// guessNaturalOrder finds a pseudoperipheral root by repeated BFS (up to
// searchDepth refinements), then assigns vertices to side A in increasing
// order of BFS distance from that root, via the same threshold sweep used
// to round the QP relaxation.
func (g *Graph) guessNaturalOrder(searchDepth int, targetSplit, tolerance float64) {
	root := g.pseudoperipheralRoot(searchDepth)
	dist := g.bfsDistances(root)
	x := make([]float64, g.N)
	for v, d := range dist {
		x[v] = float64(d)
	}
	g.roundContinuousPartition(x, targetSplit, tolerance)
}

// guessQP starts from x = 0.5*1 and runs the full QP relaxation, which
// rounds its own result into g.Partition.
func (g *Graph) guessQP(opts GuessOptions) error {
	qp := NewQPDelta(g, opts.TargetSplit, opts.Tolerance)
	for v := range qp.X {
		qp.X[v] = 0.5
	}
	g.QPLinks(qp)
	_, err := g.RefineQP(qp, opts.QP)
	return err
}

// pseudoperipheralRoot starts from vertex 0 and repeatedly jumps to the
// vertex farthest away in the current BFS tree, up to searchDepth times, a
// standard cheap approximation to a true peripheral vertex.
func (g *Graph) pseudoperipheralRoot(searchDepth int) int {
	root := 0
	for iter := 0; iter < searchDepth; iter++ {
		dist := g.bfsDistances(root)
		farthest := root
		maxDist := -1
		for v, d := range dist {
			if d > maxDist {
				maxDist = d
				farthest = v
			}
		}
		if farthest == root {
			break
		}
		root = farthest
	}
	return root
}

// bfsDistances returns, for every vertex, its hop distance from root.
// Unreachable vertices (none, since the input graph is a single connected
// component per the conditioning contract) would be left at -1.
func (g *Graph) bfsDistances(root int) []int {
	dist := make([]int, g.N)
	for i := range dist {
		dist[i] = -1
	}
	dist[root] = 0
	queue := make([]int, 0, g.N)
	queue = append(queue, root)
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		for p := g.P[v]; p < g.P[v+1]; p++ {
			u := g.I[p]
			if dist[u] == -1 {
				dist[u] = dist[v] + 1
				queue = append(queue, u)
			}
		}
	}
	return dist
}

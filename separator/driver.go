package separator

import (
	"github.com/rs/zerolog/log"

	"github.com/nsep/mongoose/enforce"
	"github.com/nsep/mongoose/graph"
	"github.com/nsep/mongoose/mathutils"
)

// ComputeEdgeSeparator computes a two-way edge separator of g in place:
// g.Partition, g.CutCost, g.W0, g.W1 and g.Imbalance are populated; g's CSR
// arrays are left untouched. opts may be nil, in which case DefaultOptions
// is used.
//
// g must already satisfy the conditioning contract (symmetric, no
// self-loops, positive weights, single connected component) — see package
// condition. Validation rejects a nil or empty graph and any non-positive
// vertex or edge weight with ErrInvalidInput, leaving g unmodified. On any
// error, g.Partition is restored to what it held on entry.
func ComputeEdgeSeparator(g *graph.Graph, opts *Options) (err error) {
	if g == nil || g.N == 0 {
		return ErrInvalidInput
	}
	for _, w := range g.W {
		if w <= 0 {
			return ErrInvalidInput
		}
	}
	for _, x := range g.X {
		if x <= 0 {
			return ErrInvalidInput
		}
	}
	entryPartition := g.Partition
	if entryPartition != nil {
		entryPartition = append([]int(nil), entryPartition...)
	}
	defer func() {
		if err != nil {
			g.Partition = entryPartition
		}
	}()
	o := DefaultOptions()
	if opts != nil {
		o = *opts
	}

	watch := mathutils.Watch{}
	watch.Start()
	defer func() {
		log.Debug().Dur("elapsed", watch.Elapsed()).Msg("ComputeEdgeSeparator")
	}()

	if o.DoExpensiveChecks {
		g.CheckInvariants(1e-6)
	}

	levels := buildHierarchy(g, o)
	log.Debug().Int("levels", len(levels)).Int("coarsestN", levels[len(levels)-1].N).Msg("coarsening done")

	coarsest := levels[len(levels)-1]
	if err := coarsest.Guess(o.guessOptions()); err != nil {
		return err
	}
	if o.DoExpensiveChecks {
		coarsest.CheckPartitionInvariant()
	}

	level := coarsest
	for level.Parent != nil {
		if err := refine(level, o); err != nil {
			return err
		}
		projectUp(level, level.Parent)
		level = level.Parent
	}
	if err := refine(level, o); err != nil {
		return err
	}

	if level != g {
		enforce.FAIL("uncoarsening did not terminate at the original graph")
	}
	if o.DoExpensiveChecks {
		g.CheckPartitionInvariant()
		g.CheckCutCostInvariant(1e-6)
	}
	return nil
}

// buildHierarchy repeatedly matches and coarsens g until the coarsening
// ratio stops paying for itself, per Options.CoarsenLimit. levels[0] == g;
// levels[len-1] is the coarsest graph refinement starts from.
func buildHierarchy(g *graph.Graph, o Options) []*graph.Graph {
	levels := []*graph.Graph{g}
	cur := g
	for cur.N > o.CoarsenLimit {
		cur.Match(o.matchOptions())
		if o.DoExpensiveChecks {
			cur.CheckMatchingInvariant()
		}
		coarse := cur.Coarsen()
		if o.DoExpensiveChecks {
			coarse.CheckWeightInvariant(1e-6)
		}
		ratio := float64(coarse.N) / float64(cur.N)
		levels = append(levels, coarse)
		cur = coarse
		if ratio >= 0.9 {
			break
		}
	}
	return levels
}

// refine alternates FM and QP refinement against level's current
// Partition, NumDances times, then refreshes its cut statistics. Returns
// ErrInfeasibleConstraint if a QP ball-projection step fails.
func refine(level *graph.Graph, o Options) error {
	level.AllocatePartitionScratch()
	for dance := 0; dance < o.NumDances; dance++ {
		if o.UseFM {
			level.RefineFM(o.fmOptions())
		}
		if o.UseQPGradProj {
			qp := graph.NewQPDelta(level, o.TargetSplit, o.Tolerance)
			for v := 0; v < level.N; v++ {
				qp.X[v] = float64(level.Partition[v])
			}
			if level.QPLinks(qp) {
				if _, err := level.RefineQP(qp, o.qpOptions()); err != nil {
					return err
				}
			}
		}
	}
	level.ComputeCutStats(o.TargetSplit)
	return nil
}

// projectUp lifts a coarse partition back onto its parent: every fine
// vertex inherits the side of the supernode it belongs to.
func projectUp(level, parent *graph.Graph) {
	parent.AllocatePartitionScratch()
	for v := 0; v < parent.N; v++ {
		parent.Partition[v] = level.Partition[parent.MatchMap[v]]
	}
}

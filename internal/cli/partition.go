package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/nsep/mongoose/condition"
	"github.com/nsep/mongoose/graph"
	"github.com/nsep/mongoose/mathutils"
	"github.com/nsep/mongoose/mtx"
	"github.com/nsep/mongoose/separator"
)

var matchingNames = map[string]graph.MatchingStrategy{
	"random":      graph.Random,
	"hem":         graph.HEM,
	"hem-pa":      graph.HEMPA,
	"hem-davispa": graph.HEMDavisPA,
}

var guessNames = map[string]graph.GuessCutType{
	"qp":            graph.GuessQP,
	"random":        graph.GuessRandom,
	"natural-order": graph.GuessNaturalOrder,
}

func newPartitionCmd() *cobra.Command {
	opts := separator.DefaultOptions()
	var matching, guess string
	var noFM, noQP, checks bool
	var out string

	cmd := &cobra.Command{
		Use:   "partition <file.mtx>",
		Short: "Compute a two-way edge separator of a Matrix Market graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			strategy, ok := matchingNames[matching]
			if !ok {
				return fmt.Errorf("unknown matching strategy %q", matching)
			}
			cutType, ok := guessNames[guess]
			if !ok {
				return fmt.Errorf("unknown guess strategy %q", guess)
			}
			opts.MatchingStrategy = strategy
			opts.GuessCutType = cutType
			opts.UseFM = !noFM
			opts.UseQPGradProj = !noQP
			opts.DoExpensiveChecks = checks

			return runPartition(args[0], out, opts)
		},
	}

	cmd.Flags().Int64Var(&opts.RandomSeed, "seed", opts.RandomSeed, "random seed")
	cmd.Flags().Float64Var(&opts.TargetSplit, "target-split", opts.TargetSplit, "target fraction of weight on side 0")
	cmd.Flags().Float64Var(&opts.Tolerance, "tolerance", opts.Tolerance, "allowed deviation from target-split")
	cmd.Flags().StringVar(&matching, "matching", "hem-davispa", "matching strategy: random|hem|hem-pa|hem-davispa")
	cmd.Flags().StringVar(&guess, "guess", "qp", "initial-guess strategy: qp|random|natural-order")
	cmd.Flags().BoolVar(&noFM, "no-fm", false, "disable boundary FM refinement")
	cmd.Flags().BoolVar(&noQP, "no-qp", false, "disable QP refinement")
	cmd.Flags().BoolVar(&checks, "checks", false, "run expensive invariant checks")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write persisted result to this path instead of stdout")

	return cmd
}

func runPartition(path string, out string, opts separator.Options) error {
	watch := mathutils.Watch{}
	watch.Start()

	raw, err := mtx.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	g := condition.Condition(raw.N, raw.Entries, nil)
	log.Info().Int("n", g.N).Int("nz", g.Nz).Msg("conditioned graph")

	if err := separator.ComputeEdgeSeparator(g, &opts); err != nil {
		return fmt.Errorf("compute separator: %w", err)
	}

	result := mtx.Result{
		InputFile: path,
		Elapsed:   watch.Elapsed(),
		CutCost:   g.CutCost,
		Imbalance: g.Imbalance,
		Partition: g.Partition,
	}

	log.Info().Float64("cutCost", g.CutCost).Float64("imbalance", g.Imbalance).
		Dur("elapsed", result.Elapsed).Msg("done")

	if out == "" {
		return mtx.WriteResult(os.Stdout, result)
	}
	return mtx.WriteResultFile(out, result)
}

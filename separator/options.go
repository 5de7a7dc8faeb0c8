// Package separator implements the multilevel two-way edge-separator
// engine: the matching/coarsening/refinement pipeline in package graph is
// orchestrated here into a single entry point, ComputeEdgeSeparator.
package separator

import "github.com/nsep/mongoose/graph"

// Options configures a ComputeEdgeSeparator run. DefaultOptions returns the
// reference configuration; callers typically start from it and override a
// handful of fields.
type Options struct {
	RandomSeed int64

	CoarsenLimit            int
	MatchingStrategy        graph.MatchingStrategy
	DoCommunityMatching     bool
	DavisBrotherlyThreshold float64

	GuessCutType    graph.GuessCutType
	GuessSearchDepth int

	NumDances int

	UseFM              bool
	FMSearchDepth      int
	FMConsiderCount    int
	FMMaxNumRefinements int

	UseQPGradProj          bool
	UseQPBallOpt           bool
	GradProjTol            float64
	GradProjIterationLimit int

	TargetSplit float64
	Tolerance   float64

	DoExpensiveChecks bool
}

// DefaultOptions returns the engine's reference configuration.
func DefaultOptions() Options {
	return Options{
		RandomSeed: 0,

		CoarsenLimit:            256,
		MatchingStrategy:        graph.HEMDavisPA,
		DoCommunityMatching:     false,
		DavisBrotherlyThreshold: 2.0,

		GuessCutType:     graph.GuessQP,
		GuessSearchDepth: 10,

		NumDances: 1,

		UseFM:               true,
		FMSearchDepth:       50,
		FMConsiderCount:     3,
		FMMaxNumRefinements: 20,

		UseQPGradProj:          true,
		UseQPBallOpt:           true,
		GradProjTol:            1e-3,
		GradProjIterationLimit: 50,

		TargetSplit: 0.5,
		Tolerance:   0.01,

		DoExpensiveChecks: false,
	}
}

func (o Options) matchOptions() graph.MatchOptions {
	return graph.MatchOptions{
		Strategy:                o.MatchingStrategy,
		DoCommunityMatching:     o.DoCommunityMatching,
		DavisBrotherlyThreshold: o.DavisBrotherlyThreshold,
	}
}

func (o Options) guessOptions() graph.GuessOptions {
	return graph.GuessOptions{
		CutType:     o.GuessCutType,
		SearchDepth: o.GuessSearchDepth,
		RandomSeed:  o.RandomSeed,
		TargetSplit: o.TargetSplit,
		Tolerance:   o.Tolerance,
		QP:          o.qpOptions(),
	}
}

func (o Options) fmOptions() graph.FMOptions {
	return graph.FMOptions{
		TargetSplit:       o.TargetSplit,
		Tolerance:         o.Tolerance,
		SearchDepth:       o.FMSearchDepth,
		ConsiderCount:     o.FMConsiderCount,
		MaxNumRefinements: o.FMMaxNumRefinements,
	}
}

func (o Options) qpOptions() graph.QPOptions {
	return graph.QPOptions{
		TargetSplit:            o.TargetSplit,
		Tolerance:               o.Tolerance,
		GradProjTol:             o.GradProjTol,
		GradProjIterationLimit:  o.GradProjIterationLimit,
		UseQPBallOpt:            o.UseQPBallOpt,
	}
}

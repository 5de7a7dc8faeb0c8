package graph

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func pathGraph5() *Graph {
	return newCSRGraph([][]testNeighbor{
		{{1, 1}},
		{{0, 1}, {2, 1}},
		{{1, 1}, {3, 1}},
		{{2, 1}, {4, 1}},
		{{3, 1}},
	})
}

func TestBFSDistancesAlongPath(t *testing.T) {
	g := pathGraph5()
	require.Equal(t, []int{0, 1, 2, 3, 4}, g.bfsDistances(0))
	require.Equal(t, []int{4, 3, 2, 1, 0}, g.bfsDistances(4))
}

func TestPseudoperipheralRootFindsFarEnd(t *testing.T) {
	g := pathGraph5()
	require.Equal(t, 4, g.pseudoperipheralRoot(1))
}

func TestGuessNaturalOrderSplitsPathByDistance(t *testing.T) {
	g := pathGraph5()
	g.Finalize()
	g.AllocatePartitionScratch()
	g.guessNaturalOrder(1, 0.5, 0.2)

	require.Equal(t, []int{1, 1, 1, 0, 0}, g.Partition)
}

func TestGuessRandomIsDeterministicGivenSeed(t *testing.T) {
	g1 := pathGraph5()
	g1.Finalize()
	require.NoError(t, g1.Guess(GuessOptions{CutType: GuessRandom, RandomSeed: 42}))

	g2 := pathGraph5()
	g2.Finalize()
	require.NoError(t, g2.Guess(GuessOptions{CutType: GuessRandom, RandomSeed: 42}))

	require.Equal(t, g1.Partition, g2.Partition)
	for _, side := range g1.Partition {
		require.True(t, side == 0 || side == 1)
	}
}

func TestGuessQPProducesFeasiblePartition(t *testing.T) {
	g := pathGraph5()
	g.Finalize()
	err := g.Guess(GuessOptions{
		CutType:     GuessQP,
		TargetSplit: 0.5,
		Tolerance:   0.5,
		QP: QPOptions{
			GradProjTol:            1e-9,
			GradProjIterationLimit: 20,
		},
	})

	require.NoError(t, err)
	require.NotPanics(t, g.CheckPartitionInvariant)
}

package mtx

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nsep/mongoose/condition"
	"github.com/nsep/mongoose/graph"
)

func TestReadSymmetricMatrixMirrorsEntries(t *testing.T) {
	src := "%%MatrixMarket matrix coordinate real symmetric\n" +
		"% a comment line\n" +
		"3 3 2\n" +
		"1 2 5\n" +
		"2 3 1.5\n"

	raw, err := Read(strings.NewReader(src))
	require.NoError(t, err)
	require.Equal(t, 3, raw.N)
	require.Equal(t, []condition.Triplet{
		{I: 0, J: 1, W: 5},
		{I: 1, J: 0, W: 5},
		{I: 1, J: 2, W: 1.5},
		{I: 2, J: 1, W: 1.5},
	}, raw.Entries)
}

func TestReadGeneralPatternMatrixDefaultsWeightToOne(t *testing.T) {
	src := "%%MatrixMarket matrix coordinate pattern general\n" +
		"2 2 1\n" +
		"1 2\n"

	raw, err := Read(strings.NewReader(src))
	require.NoError(t, err)
	require.Equal(t, 2, raw.N)
	require.Equal(t, []condition.Triplet{{I: 0, J: 1, W: 1}}, raw.Entries)
}

func TestReadRejectsMissingHeader(t *testing.T) {
	_, err := Read(strings.NewReader("2 2 1\n1 2\n"))
	require.Error(t, err)
}

func TestReadRejectsMissingSizeLine(t *testing.T) {
	_, err := Read(strings.NewReader("%%MatrixMarket matrix coordinate real general\n"))
	require.Error(t, err)
}

func TestReadRejectsBadWeight(t *testing.T) {
	src := "%%MatrixMarket matrix coordinate real general\n2 2 1\n1 2 notanumber\n"
	_, err := Read(strings.NewReader(src))
	require.Error(t, err)
}

func TestReadRejectsNonSquare(t *testing.T) {
	src := "%%MatrixMarket matrix coordinate real general\n2 3 0\n"
	_, err := Read(strings.NewReader(src))
	require.Error(t, err)
}

func TestWriteMatrixEmitsOneLinePerDirectedEntry(t *testing.T) {
	g := graph.NewGraph(2, 2)
	g.P = []int{0, 1, 2}
	g.I = []int{1, 0}
	g.X = []float64{3, 3}
	g.Finalize()

	var buf bytes.Buffer
	require.NoError(t, WriteMatrix(&buf, g))

	require.Equal(t,
		"%%MatrixMarket matrix coordinate real general\n"+
			"2 2 2\n"+
			"1 2 3\n"+
			"2 1 3\n",
		buf.String())
}

func TestWriteResultFormatsPersistedOutput(t *testing.T) {
	r := Result{
		InputFile: "foo.mtx",
		Elapsed:   2 * time.Second,
		CutCost:   1.5,
		Imbalance: 0.02,
		Partition: []int{0, 1, 0},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteResult(&buf, r))

	require.Equal(t,
		"foo.mtx\n2s\n1.5\n0.02\n0 A\n1 B\n2 A\n",
		buf.String())
}

func TestWriteThenReadRoundTripsEdgeWeights(t *testing.T) {
	g := graph.NewGraph(3, 4)
	g.P = []int{0, 1, 3, 4}
	g.I = []int{1, 0, 2, 1}
	g.X = []float64{2, 2, 3, 3}
	g.Finalize()

	var buf bytes.Buffer
	require.NoError(t, WriteMatrix(&buf, g))

	raw, err := Read(&buf)
	require.NoError(t, err)
	require.Equal(t, 3, raw.N)
	require.Len(t, raw.Entries, 4)
}

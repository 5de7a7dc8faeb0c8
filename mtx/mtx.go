// Package mtx reads and writes the Matrix Market coordinate format used to
// exchange graphs with the reference library's test corpus, and writes the
// demo/test harness's persisted result file. Neither format is part of the
// library's public contract (see separator.ComputeEdgeSeparator); both are
// collaborators a command-line driver wires in front of it.
package mtx

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/nsep/mongoose/condition"
	"github.com/nsep/mongoose/graph"
	"github.com/nsep/mongoose/utils"
)

// RawMatrix is the raw, unconditioned contents of a Matrix Market file: the
// dimension and every stored (possibly asymmetric, possibly self-looped,
// possibly duplicated) entry. Pass Entries/N into condition.Condition
// before handing the result to separator.ComputeEdgeSeparator.
type RawMatrix struct {
	N       int
	Entries []condition.Triplet
}

// ReadFile opens path and parses it as a Matrix Market coordinate file.
func ReadFile(path string) (*RawMatrix, error) {
	file := utils.OpenFile(path)
	defer file.Close()
	return Read(file)
}

// Read parses a Matrix Market coordinate stream from r. Pattern matrices
// (no value column) get unit weights. "symmetric"/"hermitian" matrices
// have each stored entry mirrored so downstream conditioning sees a
// complete adjacency rather than a triangle.
func Read(r io.Reader) (*RawMatrix, error) {
	scanner := &utils.FastFileLines{Buf: make([]byte, 1<<20)}
	fields := make([]string, 8)

	symmetric := false
	sawHeader := false
	sawSize := false
	raw := &RawMatrix{}

	for {
		line := scanner.Scan(r)
		if line == nil {
			break
		}
		if len(line) == 0 {
			continue
		}
		if line[0] == '%' {
			if len(line) >= 2 && line[1] == '%' {
				header := strings.ToLower(string(line))
				symmetric = strings.Contains(header, "symmetric") || strings.Contains(header, "hermitian")
				sawHeader = true
			}
			continue
		}

		n := countFields(fields, line)
		if n == 0 {
			continue
		}
		if !sawSize {
			if n < 3 {
				return nil, fmt.Errorf("mtx: malformed size line %q", string(line))
			}
			rows := int(utils.ToIntStr(fields[0]))
			cols := int(utils.ToIntStr(fields[1]))
			if rows != cols {
				return nil, fmt.Errorf("mtx: not square (%d x %d)", rows, cols)
			}
			raw.N = rows
			nnz := int(utils.ToIntStr(fields[2]))
			raw.Entries = make([]condition.Triplet, 0, nnz)
			sawSize = true
			continue
		}

		if n < 2 {
			continue
		}
		i := int(utils.ToIntStr(fields[0]))
		j := int(utils.ToIntStr(fields[1]))
		w := 1.0
		if n >= 3 {
			var err error
			w, err = strconv.ParseFloat(fields[2], 64)
			if err != nil {
				return nil, fmt.Errorf("mtx: bad weight: %w", err)
			}
		}
		// Matrix Market indices are 1-based.
		i--
		j--
		raw.Entries = append(raw.Entries, condition.Triplet{I: i, J: j, W: w})
		if symmetric && i != j {
			raw.Entries = append(raw.Entries, condition.Triplet{I: j, J: i, W: w})
		}
	}

	if !sawHeader {
		return nil, fmt.Errorf("mtx: missing %%%%MatrixMarket header")
	}
	if !sawSize {
		return nil, fmt.Errorf("mtx: missing size line")
	}
	return raw, nil
}

// countFields fills fieldBuf with the whitespace-separated fields of line
// using the zero-allocation tokenizer the rest of the codebase's file
// readers use, and reports how many were found.
func countFields(fieldBuf []string, line []byte) int {
	for i := range fieldBuf {
		fieldBuf[i] = ""
	}
	utils.FastFields(fieldBuf, line)
	n := 0
	for n < len(fieldBuf) && fieldBuf[n] != "" {
		n++
	}
	return n
}

// WriteMatrix emits g in Matrix Market coordinate format, one line per
// stored directed entry (so a symmetric graph.Graph round-trips through a
// "general" matrix, not a "symmetric" one — every mirror is already
// materialized in g.I/g.X).
func WriteMatrix(w io.Writer, g *graph.Graph) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "%%MatrixMarket matrix coordinate real general")
	fmt.Fprintf(bw, "%d %d %d\n", g.N, g.N, g.Nz)
	for v := 0; v < g.N; v++ {
		for p := g.P[v]; p < g.P[v+1]; p++ {
			fmt.Fprintf(bw, "%d %d %g\n", v+1, g.I[p]+1, g.X[p])
		}
	}
	return bw.Flush()
}

// Result is the demo/test harness's persisted-output record. Like the rest
// of this package, it sits outside the library contract proper of package
// separator.
type Result struct {
	InputFile string
	Elapsed   time.Duration
	CutCost   float64
	Imbalance float64
	Partition []int
}

// WriteResultFile creates path and writes r in the harness's plain-text
// format.
func WriteResultFile(path string, r Result) error {
	file := utils.CreateFile(path)
	defer file.Close()
	return WriteResult(file, r)
}

// WriteResult writes r in the harness's plain-text format: input file
// name, total time, cut cost, imbalance, then one "<id> A|B" line per
// vertex.
func WriteResult(w io.Writer, r Result) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s\n", r.InputFile)
	fmt.Fprintf(bw, "%s\n", r.Elapsed)
	fmt.Fprintf(bw, "%g\n", r.CutCost)
	fmt.Fprintf(bw, "%g\n", r.Imbalance)
	for v, side := range r.Partition {
		label := "A"
		if side == 1 {
			label = "B"
		}
		fmt.Fprintf(bw, "%d %s\n", v, label)
	}
	return bw.Flush()
}

package separator

import (
	"errors"

	"github.com/nsep/mongoose/graph"
)

// ErrOutOfMemory is the sentinel for an allocation failure. No function in
// this module returns it: Go's allocator panics rather than returning nil,
// and no explicit capacity checks are made, so an allocation failure during
// a run surfaces as a runtime panic, not as this error. It is kept as a
// distinct sentinel so callers have a name to match on.
var ErrOutOfMemory = errors.New("mongoose: out of memory")

// ErrInvalidInput is returned by ComputeEdgeSeparator for a nil graph, a
// graph with no vertices, or a graph with a vertex or edge weight that is
// not positive. Symmetry, self-loops and connectivity are not checked (with
// DoExpensiveChecks set, Graph.CheckInvariants panics on the first two), and
// a disconnected graph is partitioned like any other. QPLinks reports an x
// outside [0,1] by returning false, not with this error.
var ErrInvalidInput = errors.New("mongoose: invalid input")

// ErrInfeasibleConstraint is graph.ErrInfeasibleConstraint re-exported
// under this package: QPNapsack's break-point scan could not bring a'x
// within tolerance of its target bound before running out of break
// points. The projection is mathematically always feasible for
// well-formed input, so this indicates malformed vertex weights (e.g. not
// all positive). errors.Is matches either name.
var ErrInfeasibleConstraint = graph.ErrInfeasibleConstraint

package graph

import (
	"errors"
	"math"
)

// ErrInfeasibleConstraint is returned by QPNapsack when the break-point
// scan runs out of break points (every free index has entered or left)
// before a'x comes within tol of its target bound. The projection onto
// lo<=a'x<=hi, 0<=x<=1 is mathematically always feasible, so this can only
// happen on malformed input (e.g. vertex weights that are not all
// positive, so a'clip(y-lambda*a,0,1) is not monotone in lambda).
var ErrInfeasibleConstraint = errors.New("graph: napsack could not bring a'x within tolerance of its target")

// QPNapsack projects y onto the feasible face of the box-plus-equality
// constraint lo <= a'x <= hi, 0<=x<=1, for the entries marked free in
// status (status[k]==0). Entries with status[k]==+1/-1 are left at x=1/0
// and treated as already fixed. x holds y on input and the projected
// solution on output. lambdaGuess is not read: the scan always starts from
// lambda = 0. tol controls how close a'x must land to its target bound.
//
// Returns the final lambda such that x = clip(y - lambda*a, 0, 1) on the
// free set, and ErrInfeasibleConstraint if the scan exhausted its break
// points before reaching the target within tol.
func QPNapsack(x []float64, lo, hi float64, a []float64, status []int, lambdaGuess float64, tol float64) (float64, error) {
	n := len(x)
	y := make([]float64, n)
	copy(y, x)

	fixedSum := 0.0
	free := make([]int, 0, n)
	for k := 0; k < n; k++ {
		switch status[k] {
		case 1:
			x[k] = 1
			fixedSum += a[k]
		case -1:
			x[k] = 0
		default:
			free = append(free, k)
		}
	}

	b0 := fixedSum
	x0 := make([]float64, n)
	for _, k := range free {
		x0[k] = clip01(y[k])
		b0 += a[k] * x0[k]
	}

	var lambda float64
	feasible := true
	switch {
	case b0 > hi:
		lambda, feasible = qpNapsackScan(y, a, free, x0, b0, hi, tol, +1)
	case b0 < lo:
		lambda, feasible = qpNapsackScan(y, a, free, x0, b0, lo, tol, -1)
	default:
		lambda = 0
	}

	for _, k := range free {
		x[k] = clip01(y[k] - lambda*a[k])
	}
	if !feasible {
		return lambda, ErrInfeasibleConstraint
	}
	return lambda, nil
}

// qpNapsackScan runs the heap-based break-point walk shared by QPnapup
// (dir=+1, lambda increases from 0, a'x falls) and QPnapdown (dir=-1,
// lambda decreases from 0, a'x rises). One heap holds free indices
// currently inside (0,1) and about to exit toward the dir-ward bound; the
// other holds indices still sitting at the opposite bound, waiting for
// lambda to reach the point where they re-enter the free region.
//
// Returns the final lambda and whether a'x landed within tol of target; a
// false return means the break points ran out first (see
// ErrInfeasibleConstraint).
func qpNapsackScan(y, a []float64, free []int, x0 []float64, b0, target, tol float64, dir float64) (float64, bool) {
	n := len(y)
	leavingKey := make([]float64, n)
	enteringKey := make([]float64, n)
	leavingIdx := make([]int, n)
	enteringIdx := make([]int, n)
	for i := 0; i < n; i++ {
		leavingIdx[i], enteringIdx[i] = -1, -1
	}
	// Both heaps order by ascending |distance from lambda=0 along dir|, so
	// store the negated distance and use GainHeap's max-of-negated as a
	// min-heap over distance.
	leaving := NewGainHeap(leavingKey, leavingIdx)
	entering := NewGainHeap(enteringKey, enteringIdx)

	atOppositeBound := 0.0 // dir>0: value at x=1; dir<0: value at x=0
	if dir > 0 {
		atOppositeBound = 1
	}

	S := 0.0
	for _, k := range free {
		switch {
		case x0[k] == atOppositeBound:
			// sits at the bound dir moves away from; re-enters free region
			// at breakpoint (y_k - atOppositeBound)/a_k, scaled by dir.
			enteringKey[k] = -dir * (y[k] - atOppositeBound) / a[k]
			entering.Push(k)
		case (dir > 0 && x0[k] > 0) || (dir < 0 && x0[k] < 1):
			// free, will leave toward 0 (dir>0) or 1 (dir<0).
			leavingKey[k] = -dir * (y[k] - (1 - atOppositeBound)) / a[k]
			leaving.Push(k)
			S -= a[k] * a[k]
		}
		// the remaining case is already pinned at the bound dir moves
		// toward, and stays there: no slope contribution, ever.
	}

	pos := 0.0 // distance travelled from lambda=0 along dir
	B := b0
	for math.Abs(B-target) > tol {
		nextEnter := math.Inf(1)
		if entering.Len() > 0 {
			nextEnter = -enteringKey[entering.Peek()]
		}
		nextLeave := math.Inf(1)
		if leaving.Len() > 0 {
			nextLeave = -leavingKey[leaving.Peek()]
		}
		nextBreak := math.Min(nextEnter, nextLeave)
		if math.IsInf(nextBreak, 1) {
			break // feasible region exhausted; target reached within tol already, or input malformed
		}

		candidate := B + dir*S*(nextBreak-pos)
		if (dir > 0 && candidate <= target) || (dir < 0 && candidate >= target) {
			if S != 0 {
				pos += (target - B) / (dir * S)
			} else {
				pos = nextBreak
			}
			B = target
			break
		}

		B = candidate
		pos = nextBreak
		if nextEnter <= nextLeave {
			k := entering.PopMax()
			leavingKey[k] = -dir * (y[k] - (1 - atOppositeBound)) / a[k]
			leaving.Push(k)
			S -= a[k] * a[k]
		} else {
			k := leaving.PopMax()
			S += a[k] * a[k]
		}
	}

	return dir * pos, math.Abs(B-target) <= tol
}

func clip01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

package solver

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/selopt/selection"
)

// Bisection searches for a scaling of the multiplier vector at which
// the dual solution becomes primal-feasible: it doubles an upper bound
// until feasibility is reached, then bisects between zero and that
// bound, and finally re-solves at the best feasible scale.
//
// This is not a textbook method, but it is a simple and practically
// effective Lagrangian heuristic; see "The Lagrangian Relaxation Method
// for Solving Integer Programming Problems" (Fisher, 2004). The
// doubling-then-bisection structure is deliberate — downstream
// tolerances depend on the fixed iteration counts.
//
// Not safe for concurrent use of a single instance.
type Bisection struct {
	dual                  DualSolver
	iterationCount        int
	initializeMultipliers bool
	verbose               bool
	costCalc              *CostCalculator

	problem selection.Problem

	// Scratch vectors, cached across Solve calls.
	currentMultipliers []float64
	totalWeight        []float64
}

// NewBisection returns a Bisection solver evaluating duals with dual.
// If initializeMultipliers is true, Solve seeds multipliers[d] =
// 1/capacity[d] before searching; otherwise the caller's multipliers
// are used as the search direction.
func NewBisection(dual DualSolver, initializeMultipliers bool, opts Options) *Bisection {
	opts = opts.normalize()
	return &Bisection{
		dual:                  dual,
		iterationCount:        opts.BisectionIterations,
		initializeMultipliers: initializeMultipliers,
		verbose:               opts.Verbose,
		costCalc:              NewCostCalculator(opts.ThreadCount),
	}
}

// Init sets the problem on this solver and its dual delegate.
func (b *Bisection) Init(p selection.Problem) {
	b.problem = p
	b.dual.Init(p)
}

// Solve runs the doubling probe followed by bisection, leaving the
// feasible scaled multipliers in multipliers and the corresponding
// selection in selected.
//
// Returns false if the multipliers overflow to non-finite values while
// doubling, if no feasible bracket is found within the iteration
// budget, or if the dual solver itself fails.
func (b *Bisection) Solve(multipliers []float64, selected *[]int) bool {
	numWeights := len(b.problem.Capacity)
	*selected = (*selected)[:0]

	b.currentMultipliers = resize(b.currentMultipliers, numWeights)
	b.totalWeight = resize(b.totalWeight, numWeights)

	if b.initializeMultipliers {
		for d := 0; d < numWeights; d++ {
			multipliers[d] = 1.0 / b.problem.Capacity[d]
		}
	}

	lb := 0.0
	ub := 1.0

	// Double the upper bound until it yields a feasible solution.
	// Probing this way starts the bisection from a numerically stable
	// value, if one exists.
	for i := 0; i < b.iterationCount; i++ {
		floats.ScaleTo(b.currentMultipliers, ub, multipliers)
		for _, m := range b.currentMultipliers {
			if math.IsInf(m, 0) || math.IsNaN(m) {
				// Scaled so far that no feasible multipliers exist.
				return false
			}
		}
		if !b.dual.Solve(b.currentMultipliers, selected) {
			return false
		}
		_, _ = b.costCalc.SolutionCost(b.problem, b.currentMultipliers, *selected, b.totalWeight)
		if selection.IsFeasibleWeight(b.problem, b.totalWeight) {
			break
		}
		ub *= 2.0
	}

	if !selection.IsFeasibleWeight(b.problem, b.totalWeight) {
		return false
	}
	if b.verbose {
		fmt.Printf("Bisection: feasible bracket at scale %g\n", ub)
	}

	// Bisect down to the smallest feasible scale in the bracket.
	for i := 0; i < b.iterationCount; i++ {
		pivot := (lb + ub) / 2.0
		floats.ScaleTo(b.currentMultipliers, pivot, multipliers)
		if !b.dual.Solve(b.currentMultipliers, selected) {
			return false
		}
		_, _ = b.costCalc.SolutionCost(b.problem, b.currentMultipliers, *selected, b.totalWeight)
		if selection.IsFeasibleWeight(b.problem, b.totalWeight) {
			ub = pivot
		} else {
			lb = pivot
		}
	}

	// Re-solve at the feasible upper bound found.
	floats.Scale(ub, multipliers)
	return b.dual.Solve(multipliers, selected)
}

// resize returns s with length n, reallocating only when it must grow.
func resize(s []float64, n int) []float64 {
	if cap(s) < n {
		return make([]float64, n)
	}
	s = s[:n]
	for i := range s {
		s[i] = 0
	}
	return s
}

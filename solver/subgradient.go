package solver

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/selopt/selection"
)

// stallIterationsBeforeHalvingStep is how many iterations may pass
// without a dual improvement before the step-size scale is halved.
const stallIterationsBeforeHalvingStep = 5

// Subgradient improves the dual bound by projected subgradient ascent
// on the multipliers, following the classic adaptive scheme of
// Held et al. (1974); see also Fisher (1985, 2004).
//
// The final solution is evaluated at the best multipliers found across
// all iterations. Note that it is *not* guaranteed to fit within the
// problem's capacity — run a Bisection stage afterwards when primal
// feasibility is required.
//
// Not safe for concurrent use of a single instance.
type Subgradient struct {
	dual           DualSolver
	iterationCount int
	verbose        bool
	costCalc       *CostCalculator

	problem selection.Problem

	// Scratch vectors, cached across Solve calls.
	bestMultipliers    []float64
	currentMultipliers []float64
	currentWeight      []float64
	slack              []float64
}

// NewSubgradient returns a Subgradient solver evaluating duals with
// dual, running opts.SubgradientIterations steps per Solve.
func NewSubgradient(dual DualSolver, opts Options) *Subgradient {
	opts = opts.normalize()
	return &Subgradient{
		dual:           dual,
		iterationCount: opts.SubgradientIterations,
		verbose:        opts.Verbose,
		costCalc:       NewCostCalculator(opts.ThreadCount),
	}
}

// Init sets the problem on this solver and its dual delegate.
func (s *Subgradient) Init(p selection.Problem) {
	s.problem = p
	s.dual.Init(p)
}

// Solve ascends the dual from the given multipliers.
//
// Each iteration solves the dual, tracks the best feasible primal cost
// and the best dual cost seen, and takes a projected step
//
//	m[d] ← max(0, m[d] + step·(weight[d] − capacity[d]))
//
// with step = α·|bestFeasiblePrimal − currentDual| / Σ_d slack_d², α
// starting at 2.0 and halving after every stall of
// stallIterationsBeforeHalvingStep iterations. On return multipliers
// holds the best multipliers found and selected the dual solution at
// them.
func (s *Subgradient) Solve(multipliers []float64, selected *[]int) bool {
	numWeights := len(s.problem.Capacity)
	*selected = (*selected)[:0]

	s.bestMultipliers = resize(s.bestMultipliers, numWeights)
	s.currentMultipliers = resize(s.currentMultipliers, numWeights)
	s.currentWeight = resize(s.currentWeight, numWeights)
	s.slack = resize(s.slack, numWeights)

	// As better multipliers are found these two swap back and forth
	// rather than copying.
	current := &s.currentMultipliers
	best := &s.bestMultipliers

	copy(*current, multipliers)
	copy(*best, *current)

	// The best dual cost found so far; this is what subgradient ascent
	// improves.
	bestDualCost := math.Inf(-1)

	// Iteration that produced bestDualCost, for the adaptive step size.
	bestSolutionIteration := -1

	// Primal cost of the best feasible solution seen so far.
	bestFeasiblePrimalCost := -1.0

	// Step-size scale factor in (0, 2].
	alpha := 2.0

	for iter := 0; iter < s.iterationCount; iter++ {
		evaluated := *current
		*selected = (*selected)[:0]
		if !s.dual.Solve(evaluated, selected) {
			return false
		}

		primalCost, dualCost := s.costCalc.SolutionCost(s.problem, evaluated, *selected, s.currentWeight)

		if selection.IsFeasibleWeight(s.problem, s.currentWeight) {
			bestFeasiblePrimalCost = math.Min(bestFeasiblePrimalCost, primalCost)
		}

		if dualCost > bestDualCost {
			bestDualCost = dualCost
			best, current = current, best
			bestSolutionIteration = iter
		}

		if iter-bestSolutionIteration > stallIterationsBeforeHalvingStep {
			alpha /= 2.0
			// Restart the stall counter so a string of bad steps does
			// not keep halving.
			bestSolutionIteration = iter
		}

		floats.SubTo(s.slack, s.currentWeight, s.problem.Capacity)
		stepSize := alpha * math.Abs(bestFeasiblePrimalCost-dualCost) /
			floats.Dot(s.slack, s.slack)

		if s.verbose {
			fmt.Printf("Subgradient: iter %d dual %g best %g alpha %g\n",
				iter, dualCost, bestDualCost, alpha)
		}

		for d := 0; d < numWeights; d++ {
			(*current)[d] = math.Max(0.0, evaluated[d]+stepSize*s.slack[d])
		}
	}

	copy(multipliers, *best)
	return s.dual.Solve(multipliers, selected)
}

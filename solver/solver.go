package solver

import (
	"runtime"

	"github.com/katalvlaran/selopt/selection"
)

// Solver finds selections for a Problem, adjusting the multipliers as
// it goes.
//
// Init sets the problem to solve, possibly precomputing state for the
// subsequent Solve. A single Init may be followed by multiple Solves to
// iteratively improve upon a solution.
//
// Solve reads and updates multipliers in place (one entry per capacity
// dimension, ≥ 0), fills selected with the chosen item handles, and
// reports whether a usable solution was found.
type Solver interface {
	Init(p selection.Problem)
	Solve(multipliers []float64, selected *[]int) bool
}

// DualSolver evaluates the dual of a Problem at fixed multipliers: it
// finds the selection minimizing Σ(cost_i + Σ_d multipliers[d]·w_i[d])
// subject to the expression alone, ignoring capacity.
//
// It has the same method set as Solver but treats multipliers as
// read-only input rather than in-out state.
type DualSolver interface {
	Init(p selection.Problem)
	Solve(multipliers []float64, selected *[]int) bool
}

// DualSolverFactory constructs fresh DualSolver instances; Parallel
// uses one delegate per subexpression.
type DualSolverFactory func() DualSolver

// Options configures the solvers built by New and may be passed to the
// individual solver constructors.
//   - ThreadCount: max worker goroutines (default: runtime.NumCPU()).
//   - BisectionIterations: doubling probes and bisection steps per
//     Bisection solve (default 100).
//   - SubgradientIterations: subgradient-descent steps (default 400).
//   - Verbose: if true, logs solver progress.
type Options struct {
	ThreadCount           int
	BisectionIterations   int
	SubgradientIterations int
	Verbose               bool
}

// DefaultOptions returns production-safe defaults.
func DefaultOptions() Options {
	return Options{
		ThreadCount:           runtime.NumCPU(),
		BisectionIterations:   100,
		SubgradientIterations: 400,
	}
}

// normalize fills in defaults for zero-valued fields.
func (o Options) normalize() Options {
	def := DefaultOptions()
	if o.ThreadCount < 1 {
		o.ThreadCount = def.ThreadCount
	}
	if o.BisectionIterations <= 0 {
		o.BisectionIterations = def.BisectionIterations
	}
	if o.SubgradientIterations <= 0 {
		o.SubgradientIterations = def.SubgradientIterations
	}
	return o
}

// New builds the standard solver pipeline:
//
//	Bisection(initialize multipliers) → Subgradient → Bisection
//
// with every stage evaluating duals through a Parallel solver over
// Relaxed delegates. The first stage finds any feasible scaling, the
// second improves the dual bound (possibly losing feasibility), and
// the last re-tightens to a feasible solution.
func New(opts Options) Solver {
	opts = opts.normalize()
	makeDual := func() DualSolver {
		return NewParallel(func() DualSolver { return NewRelaxed() }, opts)
	}
	return NewSequential(
		NewBisection(makeDual(), true, opts),
		NewSubgradient(makeDual(), opts),
		NewBisection(makeDual(), false, opts),
	)
}

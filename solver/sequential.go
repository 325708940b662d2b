package solver

import (
	"github.com/katalvlaran/selopt/selection"
)

// Sequential runs a fixed list of solvers in order, feeding the same
// multipliers through each so later stages refine what earlier stages
// found.
//
// Early stages are allowed to fail — Subgradient, for instance, need
// not reach feasibility — as long as the chain drives the multipliers
// toward a working solution; only the final stage's result is
// returned.
type Sequential struct {
	stages []Solver
}

// NewSequential chains the given solvers.
func NewSequential(stages ...Solver) *Sequential {
	return &Sequential{stages: stages}
}

// Init initializes every stage on the problem.
func (s *Sequential) Init(p selection.Problem) {
	for _, stage := range s.stages {
		stage.Init(p)
	}
}

// Solve runs every stage in order and returns the last stage's result.
func (s *Sequential) Solve(multipliers []float64, selected *[]int) bool {
	last := false
	for _, stage := range s.stages {
		*selected = (*selected)[:0]
		last = stage.Solve(multipliers, selected)
	}
	return last
}

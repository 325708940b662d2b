package solver_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/selopt/selection"
	"github.com/katalvlaran/selopt/solver"
)

// TestSimplifyingMatchesBase verifies that wrapping a solver with
// Simplifying yields the same selection (as a set) as running the base
// solver on the untouched problem: Or(0, 1, And(2, 3, 4)) resolves to
// {2, 3, 4} both ways.
func TestSimplifyingMatchesBase(t *testing.T) {
	items := selection.NewItemSet(1)
	i0 := items.AppendItem(5.0, []selection.Weight{{Index: 0, Value: 1.0}})
	i1 := items.AppendItem(6.0, []selection.Weight{{Index: 0, Value: 1.0}})
	i2 := items.AppendItem(1.0, []selection.Weight{{Index: 0, Value: 1.0}})
	i3 := items.AppendItem(1.0, []selection.Weight{{Index: 0, Value: 1.0}})
	i4 := items.AppendItem(1.0, []selection.Weight{{Index: 0, Value: 1.0}})

	expression := []selection.Token{
		selection.Or(),
		selection.Item(i0),
		selection.Item(i1),
		selection.And(), selection.Item(i2), selection.Item(i3), selection.Item(i4), selection.End(),
		selection.End(),
	}
	problem := selection.Problem{Items: items, Expression: expression, Capacity: []float64{10.0}}

	base := solver.NewRelaxed()
	base.Init(problem)
	multipliers := []float64{0.0}
	var want []int
	require.True(t, base.Solve(multipliers, &want))
	require.ElementsMatch(t, []int{i2, i3, i4}, want)

	simplified := solver.NewSimplifying(solver.NewRelaxed())
	simplified.Init(problem)
	var got []int
	require.True(t, simplified.Solve(multipliers, &got))
	require.ElementsMatch(t, want, got)
}

// TestSimplifyingSuperItemWeights verifies that the merged super-item
// carries the summed weights: with a tight capacity the composed
// pipeline must reject the And branch.
func TestSimplifyingSuperItemWeights(t *testing.T) {
	items := selection.NewItemSet(1)
	single := items.AppendItem(50.0, []selection.Weight{{Index: 0, Value: 1.0}})
	pairA := items.AppendItem(1.0, []selection.Weight{{Index: 0, Value: 3.0}})
	pairB := items.AppendItem(1.0, []selection.Weight{{Index: 0, Value: 3.0}})

	// Or(single, And(pairA, pairB)); capacity admits only the single
	// item (pair weight 6 > 4).
	expression := []selection.Token{
		selection.Or(),
		selection.Item(single),
		selection.And(), selection.Item(pairA), selection.Item(pairB), selection.End(),
		selection.End(),
	}
	problem := selection.Problem{Items: items, Expression: expression, Capacity: []float64{4.0}}

	s := solver.NewSimplifying(solver.New(solver.Options{ThreadCount: 1}))
	s.Init(problem)
	multipliers := make([]float64, 1)
	var selected []int
	require.True(t, s.Solve(multipliers, &selected))
	require.Equal(t, []int{single}, selected)
}

// TestSimplifyingScenarios runs the shared scenarios through a
// Simplifying wrapper around the standard pipeline.
func TestSimplifyingScenarios(t *testing.T) {
	newSolver := func() solver.Solver {
		return solver.NewSimplifying(solver.New(solver.Options{ThreadCount: 2}))
	}
	requireReasonableSolution(t, newSolver())
	requireFailsWithoutItems(t, newSolver())
	requireSolvesSingleItem(t, newSolver())
}

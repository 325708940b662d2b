package solver_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/selopt/selection"
	"github.com/katalvlaran/selopt/solver"
)

// buildBranchingProblem constructs the shared test scenario
//
//	AND( OR(a, c, f), OR(b, AND( OR(d, g), OR(e, AND(h, i, j)) )) )
//
// over two weight dimensions, where a, b and i are prohibitively
// expensive and every other item has a small random cost. The capacity
// is generous enough never to constrain the solution.
type branchingProblem struct {
	items      *selection.ItemSet
	expression []selection.Token
	capacity   []float64

	a, b, c, d, e, f, g, h, i, j int
}

func buildBranchingProblem() branchingProblem {
	rng := rand.New(rand.NewSource(7))
	cost := func() float64 { return 0.1 + rng.Float64()*9.9 }

	items := selection.NewItemSet(2)
	appendItem := func(cost float64) int {
		return items.AppendItem(cost, []selection.Weight{
			{Index: 0, Value: 1.0 + rng.Float64()*9.0},
			{Index: 1, Value: 20.0 + rng.Float64()*30.0},
		})
	}

	const expensive = 1.0e5

	p := branchingProblem{items: items}
	p.a = appendItem(expensive)
	p.b = appendItem(expensive)
	p.c = appendItem(cost())
	p.d = appendItem(cost())
	p.e = appendItem(cost())
	p.f = appendItem(cost())
	p.g = appendItem(cost())
	p.h = appendItem(cost())
	p.i = appendItem(expensive)
	p.j = appendItem(cost())

	p.expression = []selection.Token{
		selection.And(),
		selection.Or(),
		selection.Item(p.a), selection.Item(p.c), selection.Item(p.f),
		selection.End(),
		selection.Or(),
		selection.Item(p.b),
		selection.And(),
		selection.Or(), selection.Item(p.d), selection.Item(p.g), selection.End(),
		selection.Or(),
		selection.Item(p.e),
		selection.And(),
		selection.Item(p.h), selection.Item(p.i), selection.Item(p.j),
		selection.End(),
		selection.End(),
		selection.End(),
		selection.End(),
		selection.End(),
	}
	p.capacity = []float64{10.0 * 10, 50.0 * 10}
	return p
}

func (p branchingProblem) problem() selection.Problem {
	return selection.Problem{Items: p.items, Expression: p.expression, Capacity: p.capacity}
}

// requireReasonableSolution runs s on the branching problem and checks
// that the solution is valid, feasible, and avoids the prohibitively
// expensive items (cheaper alternatives exist in every branch).
func requireReasonableSolution(t *testing.T, s solver.Solver) {
	t.Helper()
	p := buildBranchingProblem()

	s.Init(p.problem())
	multipliers := make([]float64, 2)
	var selected []int
	require.True(t, s.Solve(multipliers, &selected))

	require.True(t, selection.Validate(p.expression, selected))
	weight := make([]float64, 2)
	selection.TotalWeight(p.items, selected, weight)
	require.True(t, selection.IsFeasibleWeight(p.problem(), weight))

	require.NotContains(t, selected, p.a)
	require.NotContains(t, selected, p.b)
	require.NotContains(t, selected, p.i)
}

// requireFailsWithoutItems runs s on expressions containing no items at
// all; every such problem must fail even though the (trivial) capacity
// is satisfiable.
func requireFailsWithoutItems(t *testing.T, s solver.Solver) {
	t.Helper()
	items := selection.NewItemSet(1)
	capacity := []float64{1.0}

	expressions := [][]selection.Token{
		// And()
		{selection.And(), selection.End()},
		// Or()
		{selection.Or(), selection.End()},
		// And(And())
		{selection.And(), selection.And(), selection.End(), selection.End()},
		// And(And(), Or(), And(And(Or())))
		{
			selection.And(),
			selection.And(), selection.End(),
			selection.Or(), selection.End(),
			selection.And(), selection.And(), selection.Or(), selection.End(),
			selection.End(), selection.End(),
			selection.End(),
		},
	}
	for _, expression := range expressions {
		s.Init(selection.Problem{Items: items, Expression: expression, Capacity: capacity})
		multipliers := []float64{1.0}
		var selected []int
		require.False(t, s.Solve(multipliers, &selected),
			"expression %s must have no solution", selection.ExpressionString(expression))
	}
}

// requireSolvesSingleItem runs s on Or(Or(And(item)), And()): the only
// valid selection is {item}, regardless of solver composition or
// thread count.
func requireSolvesSingleItem(t *testing.T, s solver.Solver) {
	t.Helper()
	items := selection.NewItemSet(3)
	capacity := []float64{2.0, 10.0, 4.0}
	item := items.AppendItem(4.0, []selection.Weight{
		{Index: 0, Value: 2.0},
		{Index: 2, Value: 4.0},
	})

	expression := []selection.Token{
		selection.Or(),
		selection.Or(),
		selection.And(), selection.Item(item), selection.End(),
		selection.End(),
		selection.And(), selection.End(),
		selection.End(),
	}

	s.Init(selection.Problem{Items: items, Expression: expression, Capacity: capacity})
	multipliers := []float64{2.0, 100.0, 4.0}
	var selected []int
	require.True(t, s.Solve(multipliers, &selected))
	require.Equal(t, []int{item}, selected)
}

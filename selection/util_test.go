package selection_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/selopt/selection"
)

// TestSubexpressionSizes pins the documented example: AND(1,2,3,OR(4))
// encoded as AND,1,2,3,OR,4,END,END has sizes 8,1,1,1,3,1,3,8.
func TestSubexpressionSizes(t *testing.T) {
	expression := []selection.Token{
		selection.And(),
		selection.Item(1), selection.Item(2), selection.Item(3),
		selection.Or(), selection.Item(4), selection.End(),
		selection.End(),
	}
	sizes := make([]int, len(expression))
	selection.SubexpressionSizes(expression, sizes)
	require.Equal(t, []int{8, 1, 1, 1, 3, 1, 3, 8}, sizes)
}

// TestSubexpressionSizesUnbalanced verifies that malformed expressions
// panic rather than yielding garbage tables.
func TestSubexpressionSizesUnbalanced(t *testing.T) {
	missingEnd := []selection.Token{selection.And(), selection.Item(0)}
	require.Panics(t, func() {
		selection.SubexpressionSizes(missingEnd, make([]int, len(missingEnd)))
	})

	strayEnd := []selection.Token{selection.End()}
	require.Panics(t, func() {
		selection.SubexpressionSizes(strayEnd, make([]int, len(strayEnd)))
	})

	require.Panics(t, func() {
		selection.SubexpressionSizes([]selection.Token{selection.And(), selection.End()}, make([]int, 1))
	})
}

// TestValidate covers the boolean semantics of Validate: AND needs all
// children, OR needs at least one, and empty clauses never satisfy.
func TestValidate(t *testing.T) {
	// And(0, Or(1, 2))
	expression := []selection.Token{
		selection.And(),
		selection.Item(0),
		selection.Or(), selection.Item(1), selection.Item(2), selection.End(),
		selection.End(),
	}

	require.True(t, selection.Validate(expression, []int{0, 1}))
	require.True(t, selection.Validate(expression, []int{0, 2}))
	require.True(t, selection.Validate(expression, []int{2, 0}))
	require.False(t, selection.Validate(expression, []int{0}))
	require.False(t, selection.Validate(expression, []int{1, 2}))
	require.False(t, selection.Validate(expression, nil))

	// Empty clauses are never valid, even with items selected.
	require.False(t, selection.Validate(
		[]selection.Token{selection.And(), selection.End()}, []int{0}))
	require.False(t, selection.Validate(
		[]selection.Token{selection.Or(), selection.End()}, []int{0}))

	// And(0, Or()) — the empty Or poisons the And.
	require.False(t, selection.Validate([]selection.Token{
		selection.And(),
		selection.Item(0),
		selection.Or(), selection.End(),
		selection.End(),
	}, []int{0}))
}

// TestTotalCostAndWeight checks the plain aggregation helpers.
func TestTotalCostAndWeight(t *testing.T) {
	items := selection.NewItemSet(2)
	a := items.AppendItem(1.0, []selection.Weight{{Index: 0, Value: 2.0}})
	b := items.AppendItem(3.5, []selection.Weight{
		{Index: 0, Value: 1.0},
		{Index: 1, Value: 4.0},
	})

	require.Equal(t, 4.5, selection.TotalCost(items, []int{a, b}))
	require.Equal(t, 0.0, selection.TotalCost(items, nil))

	weight := []float64{99, 99} // must be zero-filled by TotalWeight
	selection.TotalWeight(items, []int{a, b}, weight)
	require.Equal(t, []float64{3.0, 4.0}, weight)

	selection.TotalWeight(items, nil, weight)
	require.Equal(t, []float64{0, 0}, weight)
}

// TestDualCost checks the Lagrangian identity
// dual = cost + Σ_d m[d]·(w[d] − capacity[d]) on hand-computed values.
func TestDualCost(t *testing.T) {
	items := selection.NewItemSet(2)
	p := selection.Problem{Items: items, Capacity: []float64{5.0, 2.0}}

	multipliers := []float64{0.5, 3.0}
	weight := []float64{7.0, 1.0}
	cost := 10.0

	// 10 + 0.5*(7-5) + 3*(1-2) = 10 + 1 - 3 = 8
	require.InDelta(t, 8.0, selection.DualCost(p, multipliers, weight, cost), 1e-12)

	// Zero multipliers reduce the dual to the primal cost.
	require.InDelta(t, cost, selection.DualCost(p, []float64{0, 0}, weight, cost), 1e-12)
}

// TestIsFeasibleWeight checks the elementwise capacity comparison and
// the dimension-mismatch panic.
func TestIsFeasibleWeight(t *testing.T) {
	items := selection.NewItemSet(2)
	p := selection.Problem{Items: items, Capacity: []float64{5.0, 2.0}}

	require.True(t, selection.IsFeasibleWeight(p, []float64{5.0, 2.0}))
	require.True(t, selection.IsFeasibleWeight(p, []float64{0.0, 0.0}))
	require.False(t, selection.IsFeasibleWeight(p, []float64{5.1, 0.0}))
	require.False(t, selection.IsFeasibleWeight(p, []float64{0.0, 2.5}))

	require.Panics(t, func() { selection.IsFeasibleWeight(p, []float64{1.0}) })
}

// TestExpressionString checks the human-readable rendering.
func TestExpressionString(t *testing.T) {
	expression := []selection.Token{
		selection.And(),
		selection.Or(), selection.Item(1), selection.Item(2), selection.End(),
		selection.Item(3),
		selection.End(),
	}
	require.Equal(t, "AND( OR( 1 2 ) 3 )", selection.ExpressionString(expression))
	require.Equal(t, "", selection.ExpressionString(nil))
}

package solver

import (
	"github.com/katalvlaran/selopt/selection"
)

// Simplifying wraps another Solver, rewriting the problem into an
// equivalent, smaller one before delegating and translating the
// answer back.
//
// The rewrite collapses the immediate item children of every And clause
// into a single "super-item" whose cost and weights are the elementwise
// sums of the originals; Or clauses and lone items pass through
// (renumbered into a fresh ItemSet). This pays off when many items are
// unconditionally co-selected: the delegate computes one partial dual
// cost instead of many, at the price of a linear preprocessing pass per
// Init.
type Simplifying struct {
	delegate Solver

	simplifiedExpression []selection.Token
	simplifiedItems      *selection.ItemSet

	// oldItems[newHandle] lists the original item handles a simplified
	// item stands for: a singleton for pass-through items, the merged
	// clause members for a super-item.
	oldItems [][]int

	// Scratch for translating the delegate's solution.
	simplifiedSelected []int
}

// NewSimplifying wraps delegate with expression simplification.
func NewSimplifying(delegate Solver) *Simplifying {
	return &Simplifying{delegate: delegate}
}

// Init builds the simplified problem and initializes the delegate on
// it.
func (s *Simplifying) Init(p selection.Problem) {
	s.simplifiedExpression = s.simplifiedExpression[:0]
	s.simplifiedItems = selection.NewItemSet(p.Items.NumWeights())
	s.oldItems = s.oldItems[:0]

	sizes := make([]int, len(p.Expression))
	selection.SubexpressionSizes(p.Expression, sizes)

	s.build(p.Expression, sizes, p.Items)

	s.delegate.Init(selection.Problem{
		Items:      s.simplifiedItems,
		Expression: s.simplifiedExpression,
		Capacity:   p.Capacity,
	})
}

// build recursively translates the subexpression at the front of
// expression into s.simplifiedExpression and s.simplifiedItems.
func (s *Simplifying) build(expression []selection.Token, sizes []int, items *selection.ItemSet) {
	if len(expression) == 0 {
		return
	}
	start := expression[0]
	switch {
	case start.IsOr():
		// Or clauses pass through; recurse into each child.
		s.simplifiedExpression = append(s.simplifiedExpression, selection.Or())
		offset := 1
		for offset < len(expression)-1 {
			size := sizes[offset]
			s.build(expression[offset:offset+size], sizes[offset:offset+size], items)
			offset += size
		}
		s.simplifiedExpression = append(s.simplifiedExpression, selection.End())

	case start.IsItem():
		// Pass through, renumbered into the fresh ItemSet.
		old := start.ItemIndex()
		renumbered := s.simplifiedItems.AppendItem(items.Cost(old), items.Weights(old))
		s.simplifiedExpression = append(s.simplifiedExpression, selection.Item(renumbered))
		s.oldItems = append(s.oldItems, []int{old})

	case start.IsAnd():
		s.simplifiedExpression = append(s.simplifiedExpression, selection.And())

		// Immediate item children merge into one super-item; all other
		// children recurse.
		var clauseItems []int
		offset := 1
		for offset < len(expression)-1 {
			if expression[offset].IsItem() {
				clauseItems = append(clauseItems, expression[offset].ItemIndex())
				offset++
				continue
			}
			size := sizes[offset]
			s.build(expression[offset:offset+size], sizes[offset:offset+size], items)
			offset += size
		}

		if len(clauseItems) > 0 {
			mergedCost := 0.0
			mergedWeights := make([]float64, items.NumWeights())
			for _, i := range clauseItems {
				mergedCost += items.Cost(i)
				for _, w := range items.Weights(i) {
					mergedWeights[w.Index] += w.Value
				}
			}
			var sparse []selection.Weight
			for d, v := range mergedWeights {
				if v > 0 {
					sparse = append(sparse, selection.Weight{Index: d, Value: v})
				}
			}
			super := s.simplifiedItems.AppendItem(mergedCost, sparse)
			s.oldItems = append(s.oldItems, clauseItems)
			s.simplifiedExpression = append(s.simplifiedExpression, selection.Item(super))
		}

		s.simplifiedExpression = append(s.simplifiedExpression, selection.End())
	}
}

// Solve delegates to the wrapped solver on the simplified problem and
// expands the result back into original item handles.
func (s *Simplifying) Solve(multipliers []float64, selected *[]int) bool {
	*selected = (*selected)[:0]
	s.simplifiedSelected = s.simplifiedSelected[:0]
	if !s.delegate.Solve(multipliers, &s.simplifiedSelected) {
		return false
	}
	for _, i := range s.simplifiedSelected {
		*selected = append(*selected, s.oldItems[i]...)
	}
	return true
}

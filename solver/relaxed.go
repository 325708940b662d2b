package solver

import (
	"math"

	"github.com/katalvlaran/selopt/selection"
)

// Relaxed is an optimized, single-threaded DualSolver.
//
// Given fixed multipliers it finds the exact minimizer of the dual in
// one left-to-right scan of the token expression, maintaining partial
// clause solutions on an explicit stack instead of recursing.
//
// Not safe for concurrent use; scratch buffers are reused across Solve
// calls.
type Relaxed struct {
	problem selection.Problem

	// Precomputed by Init for O(1) skip-ahead.
	sizes []int

	// Scan state, cached across Solve calls to avoid reallocation.
	path               []selection.Token
	pathEnd            []int
	maxPartialDualCost []float64
	partials           []partialSolution
}

// partialSolution is the in-progress solution of one open clause.
type partialSolution struct {
	itemCount       int
	partialDualCost float64
	success         bool
}

// NewRelaxed returns an uninitialized Relaxed solver.
func NewRelaxed() *Relaxed {
	return &Relaxed{}
}

// partialDualCost is the component of the dual contributed by selecting
// one item: cost_i + Σ_d multipliers[d]·w_i[d].
func partialDualCost(items *selection.ItemSet, multipliers []float64, item int) float64 {
	cost := items.Cost(item)
	for _, w := range items.Weights(item) {
		cost += multipliers[w.Index] * w.Value
	}
	return cost
}

// Init sets the problem and precomputes the subexpression size table.
func (r *Relaxed) Init(p selection.Problem) {
	r.problem = p
	if cap(r.sizes) < len(p.Expression) {
		r.sizes = make([]int, len(p.Expression))
	}
	r.sizes = r.sizes[:len(p.Expression)]
	selection.SubexpressionSizes(p.Expression, r.sizes)
}

// Solve evaluates the dual at the given multipliers.
//
// The scan keeps, per open clause, the count of items appended to
// selected so far, the accumulated partial dual cost, and a success
// flag. AND clauses sum their children; OR clauses keep only the
// cheapest child, splicing losers out of selected in place. Each clause
// also inherits an upper bound from its nearest ancestor OR's current
// best: once an AND's running cost exceeds that bound it can never win,
// so the scan jumps straight to the clause's matching End token.
func (r *Relaxed) Solve(multipliers []float64, selected *[]int) bool {
	*selected = (*selected)[:0]

	expression := r.problem.Expression
	sizes := r.sizes
	items := r.problem.Items

	if len(expression) == 0 {
		return false
	}

	path := r.path[:0]
	pathEnd := r.pathEnd[:0]
	maxPartialDualCost := append(r.maxPartialDualCost[:0], math.Inf(1))
	partials := r.partials[:0]

	// Scan up to, but not including, the final End token.
	for i := 0; i < len(expression)-1; i++ {
		token := expression[i]
		switch {
		case token.IsAnd() || token.IsOr():
			path = append(path, token)
			pathEnd = append(pathEnd, i+sizes[i]-1)
			maxPartialDualCost = append(maxPartialDualCost,
				maxPartialDualCost[len(maxPartialDualCost)-1])
			if token.IsAnd() {
				// And(a, b, c) sums the partial dual costs of its
				// children and is successful unless a child fails (or
				// the clause turns out to be empty, handled at End).
				partials = append(partials, partialSolution{0, 0.0, true})
			} else {
				// Or(a, b, c) keeps the minimum-cost child; start from
				// +Inf and failure.
				partials = append(partials, partialSolution{0, math.Inf(1), false})
			}

		case token.IsItem():
			item := token.ItemIndex()
			top := &partials[len(partials)-1]
			if path[len(path)-1].IsAnd() {
				*selected = append(*selected, item)
				top.itemCount++
				top.partialDualCost += partialDualCost(items, multipliers, item)
				if top.partialDualCost > maxPartialDualCost[len(maxPartialDualCost)-1] {
					// Already more expensive than the best alternative
					// of the nearest ancestor Or, so this clause can
					// never be chosen: jump to its End token.
					i = pathEnd[len(pathEnd)-1] - 1
					top.success = false
				}
			} else {
				itemCost := partialDualCost(items, multipliers, item)
				if itemCost <= top.partialDualCost {
					// Replace the current best branch with this item.
					// Note <=: a later equal-cost branch wins.
					*selected = (*selected)[:len(*selected)-top.itemCount]
					*selected = append(*selected, item)
					top.itemCount = 1
					top.partialDualCost = itemCost
					top.success = true
					if itemCost < maxPartialDualCost[len(maxPartialDualCost)-1] {
						maxPartialDualCost[len(maxPartialDualCost)-1] = itemCost
					}
				}
			}

		case token.IsEnd():
			closed := partials[len(partials)-1]
			if path[len(path)-1].IsAnd() && closed.itemCount == 0 {
				// Empty And() is never satisfiable.
				closed.success = false
			}
			parent := &partials[len(partials)-2]
			if path[len(path)-2].IsAnd() {
				parent.itemCount += closed.itemCount
				parent.partialDualCost += closed.partialDualCost
				parent.success = parent.success && closed.success

				path = path[:len(path)-1]
				pathEnd = pathEnd[:len(pathEnd)-1]
				partials = partials[:len(partials)-1]
				maxPartialDualCost = maxPartialDualCost[:len(maxPartialDualCost)-1]

				top := &partials[len(partials)-1]
				if top.partialDualCost > maxPartialDualCost[len(maxPartialDualCost)-1] {
					// Same pruning as above, applied after folding a
					// child clause into its And parent.
					i = pathEnd[len(pathEnd)-1] - 1
					top.success = false
				}
			} else {
				if closed.success &&
					(!parent.success || closed.partialDualCost < parent.partialDualCost) {
					// The closed child beats the Or's current best:
					// shift its items left over the old best's items.
					oldCount := parent.itemCount
					newCount := closed.itemCount
					begin := len(*selected) - (newCount + oldCount)
					copy((*selected)[begin:], (*selected)[begin+oldCount:])
					*selected = (*selected)[:len(*selected)-oldCount]

					parent.itemCount = newCount
					parent.partialDualCost = closed.partialDualCost
					parent.success = closed.success
				} else {
					// Discard the closed child's items.
					*selected = (*selected)[:len(*selected)-closed.itemCount]
				}
				path = path[:len(path)-1]
				pathEnd = pathEnd[:len(pathEnd)-1]
				partials = partials[:len(partials)-1]
				maxPartialDualCost = maxPartialDualCost[:len(maxPartialDualCost)-1]
			}
		}
	}

	root := partials[len(partials)-1]

	// Keep the grown buffers for the next call.
	r.path = path[:0]
	r.pathEnd = pathEnd[:0]
	r.maxPartialDualCost = maxPartialDualCost[:0]
	r.partials = partials[:0]

	return root.success && len(*selected) > 0
}

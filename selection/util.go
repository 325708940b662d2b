package selection

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// IsFeasibleWeight reports whether totalWeight fits within the
// problem's capacity in every dimension.
func IsFeasibleWeight(p Problem, totalWeight []float64) bool {
	if len(totalWeight) != len(p.Capacity) {
		panic(fmt.Sprintf("selection: weight dimension %d != capacity dimension %d",
			len(totalWeight), len(p.Capacity)))
	}
	for d, w := range totalWeight {
		if w > p.Capacity[d] {
			return false
		}
	}
	return true
}

// TotalCost returns the sum of the costs of the selected items.
func TotalCost(items *ItemSet, selected []int) float64 {
	total := 0.0
	for _, i := range selected {
		total += items.Cost(i)
	}
	return total
}

// TotalWeight accumulates the sparse weights of the selected items into
// the dense vector weight, which is zeroed first.
func TotalWeight(items *ItemSet, selected []int, weight []float64) {
	for d := range weight {
		weight[d] = 0
	}
	for _, i := range selected {
		for _, w := range items.Weights(i) {
			weight[w.Index] += w.Value
		}
	}
}

// DualCost evaluates the Lagrangian dual of the problem for a solution
// with the given total weight and primal cost:
//
//	cost + Σ_d multipliers[d] * (weight[d] − capacity[d])
func DualCost(p Problem, multipliers, weight []float64, cost float64) float64 {
	return cost + floats.Dot(multipliers, weight) - floats.Dot(multipliers, p.Capacity)
}

// SubexpressionSizes parses the expression and records, for every token
// index, the number of tokens spanned by the subexpression starting
// there. For an And/Or token the size is also stored at the matching
// End token; item tokens have size 1.
//
// For example, AND(1, 2, 3, OR(4)) — the token sequence
// AND, 1, 2, 3, OR, 4, END, END — yields sizes 8, 1, 1, 1, 3, 1, 3, 8.
//
// sizes must have the same length as expression. Panics if the
// expression is unbalanced.
func SubexpressionSizes(expression []Token, sizes []int) {
	if len(sizes) != len(expression) {
		panic(fmt.Sprintf("selection: sizes length %d != expression length %d",
			len(sizes), len(expression)))
	}
	var stack []int
	for i, token := range expression {
		switch {
		case token.IsAnd() || token.IsOr():
			stack = append(stack, i)
		case token.IsEnd():
			if len(stack) == 0 {
				panic("selection: unbalanced expression")
			}
			start := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			sizes[i] = (i - start) + 1
			sizes[start] = (i - start) + 1
		default:
			sizes[i] = 1
		}
	}
	if len(stack) != 0 {
		panic("selection: unbalanced expression")
	}
}

// Validate reports whether selected satisfies the constraint implied by
// the expression: an AND clause requires every child to be satisfied,
// an OR clause at least one, and an item leaf requires membership in
// selected. Empty clauses, AND() and OR(), are never satisfied.
func Validate(expression []Token, selected []int) bool {
	sorted := append([]int(nil), selected...)
	sort.Ints(sorted)
	ok, _ := validateAt(expression, sorted)
	return ok
}

// validateAt evaluates the subexpression at the front of expression
// against the sorted selection, returning its truth value and the
// number of tokens it spans.
func validateAt(expression []Token, sorted []int) (bool, int) {
	token := expression[0]
	switch {
	case token.IsAnd():
		offset := 1
		success := true
		for !expression[offset].IsEnd() {
			ok, size := validateAt(expression[offset:], sorted)
			if !ok {
				success = false
			}
			offset += size
		}
		if offset == 1 {
			// Empty And() always evaluates to false.
			success = false
		}
		return success, offset + 1
	case token.IsOr():
		offset := 1
		// Empty Or() always evaluates to false.
		success := false
		for !expression[offset].IsEnd() {
			ok, size := validateAt(expression[offset:], sorted)
			if ok {
				success = true
			}
			offset += size
		}
		return success, offset + 1
	default:
		i := sort.SearchInts(sorted, token.ItemIndex())
		return i < len(sorted) && sorted[i] == token.ItemIndex(), 1
	}
}

// ExpressionString renders the expression in a human-readable form,
// e.g. "AND( OR( 1 2 ) 3 )".
func ExpressionString(expression []Token) string {
	var b strings.Builder
	for _, token := range expression {
		switch {
		case token.IsAnd():
			b.WriteString("AND( ")
		case token.IsOr():
			b.WriteString("OR( ")
		case token.IsEnd():
			b.WriteString(") ")
		default:
			b.WriteString(strconv.Itoa(token.ItemIndex()))
			b.WriteString(" ")
		}
	}
	return strings.TrimSpace(b.String())
}

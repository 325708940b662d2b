// Package selection defines the data model for constrained selection
// problems and the pure helpers shared by every solver.
//
// # The model
//
// A Problem consists of:
//
//   - An ItemSet: candidate items, each with a non-negative scalar cost
//     and a sparse, non-negative, possibly multi-dimensional weight.
//   - An Expression: a boolean constraint over the items, built from
//     AND and OR clauses only (no negation), in which every item
//     appears at most once.
//   - A Capacity: the per-dimension bound on the total weight of all
//     selected items.
//
// The goal is to select the items minimizing total cost such that:
//  1. the expression is satisfied, and
//  2. the total weight stays within capacity in every dimension.
//
// The expression restriction (single occurrence, AND/OR only) is what
// keeps the problem tractable: without the capacity constraint it is
// solvable in linear time by a recursive traversal, which is exactly
// what the Lagrangian relaxation in package solver exploits. Folding
// the capacity constraint into the cost via multipliers λ ≥ 0 yields
// the dual
//
//	Zd(λ) = min over valid x of ( c·x + λ·(Wx − capacity) )
//
// and maximizing Zd(λ) over λ recovers a near-optimal primal solution.
// See "An Applications Oriented Guide to Lagrangian Relaxation"
// (Fisher, 1985) and "The Lagrangian Relaxation Method for Solving
// Integer Programming Problems" (Fisher, 2004).
//
// # Expressions
//
// Expressions are encoded as flat prefix-token sequences rather than
// heap-allocated trees. The expression
//
//	AND( OR(1, 2), AND(3) )
//
// is the token slice
//
//	{And(), Or(), Item(1), Item(2), End(), And(), Item(3), End(), End()}
//
// SubexpressionSizes precomputes, for every token index, the number of
// tokens spanned by the subexpression starting there, enabling O(1)
// skip-ahead during evaluation and splitting.
//
// Empty clauses are never satisfiable: AND() and OR() both evaluate to
// false under Validate.
//
// # Errors
//
// Malformed inputs — unbalanced expressions, weight indices outside
// the declared dimension count — are programmer errors and panic.
// All helper functions are pure and safe for concurrent use.
package selection

// Package selopt solves constrained combinatorial selection problems:
// given a set of items with costs and sparse resource weights, and a
// boolean AND/OR expression describing which combinations of items are
// admissible, find a minimum-cost selection that satisfies the
// expression and stays within per-dimension capacity limits.
//
// 🚀 What is selopt?
//
//	A pure-Go Lagrangian-relaxation toolkit that brings together:
//		• Data model: arena-backed item sets, prefix-token expressions
//		• Dual evaluation: an optimized single-pass relaxed solver
//		• Dual decomposition: parallel solving of disjoint subexpressions
//		• Problem rewriting: AND-clause "super-item" simplification
//		• Meta-solvers: bisection, subgradient descent, sequential chaining
//
// ✨ Why choose selopt?
//
//   - Near-optimal in practice – Lagrangian heuristics run 10-100x faster
//     than general ILP solvers on this class of problem
//   - Pure Go – no cgo, no external LP backend
//   - Deterministic – fixed tie-breaking and iteration counts, stable
//     results across runs and thread counts
//
// Everything is organized under two subpackages:
//
//	selection/ — ItemSet, Token expressions, Problem, pure helpers
//	solver/    — Relaxed, Parallel, Simplifying, Bisection, Subgradient,
//	             Sequential solvers and the composition factory
//
// Quick example:
//
//	items := selection.NewItemSet(1)
//	a := items.AppendItem(2.0, []selection.Weight{{Index: 0, Value: 1}})
//	b := items.AppendItem(5.0, []selection.Weight{{Index: 0, Value: 1}})
//	expr := []selection.Token{
//		selection.Or(), selection.Item(a), selection.Item(b), selection.End(),
//	}
//	s := solver.New(solver.DefaultOptions())
//	s.Init(selection.Problem{Items: items, Expression: expr, Capacity: []float64{10}})
//	multipliers := make([]float64, 1)
//	var selected []int
//	ok := s.Solve(multipliers, &selected) // ok == true, selected == [a]
//
// See docs of the selection and solver packages for the full model.
package selopt

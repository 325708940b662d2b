// Package solver implements a family of composable solvers for
// selection.Problem, built around Lagrangian relaxation.
//
// The solvers are layered:
//
//   - Relaxed
//
//   - Method: single left-to-right scan of the token expression with an
//     explicit clause stack; exact minimizer of the dual at fixed
//     multipliers.
//
//   - Time:   O(tokens), with an ancestor-OR pruning bound that skips
//     doomed AND clauses (~30% faster on real problems).
//
//   - Memory: O(depth) stack frames, reused across calls.
//
//   - Parallel
//
//   - Method: dual decomposition — splits the expression into disjoint
//     subexpressions (largest-first, via a max-heap), solves each with
//     a delegate dual solver concurrently, then merges through a
//     memoized recursive evaluation of the remaining expression top.
//
//   - Safe because subexpressions share no items and only read the
//     ItemSet and multipliers.
//
//   - Simplifying
//
//   - Method: rewrites the problem before delegating — immediate item
//     children of each AND clause collapse into one "super-item" whose
//     cost and weights are the sums of the originals; solutions are
//     translated back through the recorded mapping.
//
//   - Bisection
//
//   - Method: scales a multiplier direction by doubling until the dual
//     solution turns feasible, then binary-searches the scale; a
//     practical Lagrangian heuristic (Fisher, 2004).
//
//   - Subgradient
//
//   - Method: classic projected subgradient ascent on the dual
//     (Held et al., 1974 step-size schedule); improves dual quality
//     but does not guarantee a feasible final solution.
//
//   - Sequential
//
//   - Method: runs a fixed chain of solvers over the same evolving
//     multipliers, returning the last stage's outcome.
//
// New composes the standard pipeline:
//
//	Bisection(initialize) → Subgradient → Bisection
//
// each stage evaluating duals through Parallel over Relaxed delegates —
// first reach any feasible point, then tighten the dual, then restore
// feasibility.
//
// # API contract
//
// Every solver follows the same lifecycle: one Init with a Problem,
// then any number of Solve calls. Solve reports false when no usable
// solution exists — either combinatorial (the expression admits no
// valid selection) or numerical (multipliers overflowed during
// bisection). There is no error channel: infeasibility is an expected
// outcome, and malformed problems (unbalanced expressions, dimension
// mismatches) are programmer errors that panic.
//
// Solver instances are single-call-at-a-time: scratch buffers are
// reused across Solve calls, so concurrent use of one instance is not
// allowed. Parallelism comes from distinct delegate instances inside
// Parallel, never from sharing.
package solver

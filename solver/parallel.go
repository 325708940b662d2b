package solver

import (
	"sort"

	priorityqueue "gopkg.in/dnaeon/go-priorityqueue.v1"

	"github.com/katalvlaran/selopt/selection"
)

// subexpressionsPerThread oversubscribes the split so slow
// subexpressions don't leave workers idle.
const subexpressionsPerThread = 2

// Parallel is a DualSolver that decomposes the expression into disjoint
// subexpressions, solves each with its own delegate DualSolver
// concurrently, and merges the cached results through a recursive
// evaluation of the expression top.
//
// This is a dual-decomposition method: subexpressions share no items
// (each item occurs once in the whole expression), and delegates only
// read the shared ItemSet and multipliers, so no locking is needed.
//
// Not safe for concurrent use of a single instance.
type Parallel struct {
	threadCount int
	factory     DualSolverFactory

	// One delegate per subexpression; grown lazily and reused across
	// Inits.
	delegates []DualSolver

	problem selection.Problem
	sizes   []int

	// Cached per-subexpression solutions, sorted by token start index.
	subs []subSolution
}

// subSolution is one subexpression of the global expression together
// with its most recently computed solution.
type subSolution struct {
	// start is the index of the subexpression's opening token within
	// the global expression.
	start int
	size  int

	selected []int
	// partialDualCost is c·x + λ·(Wx) restricted to this
	// subexpression's selected items.
	partialDualCost float64
	success         bool
}

// NewParallel returns a Parallel solver running at most
// opts.ThreadCount delegates (built by factory) concurrently.
func NewParallel(factory DualSolverFactory, opts Options) *Parallel {
	opts = opts.normalize()
	return &Parallel{
		threadCount: opts.ThreadCount,
		factory:     factory,
	}
}

// Init precomputes the subexpression size table, splits the expression
// into at least threadCount*2 independent subexpressions (where
// possible) and initializes one delegate solver per subexpression.
//
// The split repeatedly replaces the largest remaining subexpression by
// its immediate And/Or children, driven by a max-heap keyed on token
// span length.
func (p *Parallel) Init(problem selection.Problem) {
	p.problem = problem

	if cap(p.sizes) < len(problem.Expression) {
		p.sizes = make([]int, len(problem.Expression))
	}
	p.sizes = p.sizes[:len(problem.Expression)]
	selection.SubexpressionSizes(problem.Expression, p.sizes)

	starts := p.splitIntoSubexpressions(p.threadCount * subexpressionsPerThread)

	for len(p.delegates) < len(starts) {
		p.delegates = append(p.delegates, p.factory())
	}

	p.subs = p.subs[:0]
	for _, start := range starts {
		p.subs = append(p.subs, subSolution{start: start, size: p.sizes[start]})
	}
	balancedParallelFor(p.threadCount, len(p.subs), func(s int) {
		sub := &p.subs[s]
		p.delegates[s].Init(selection.Problem{
			Items:      problem.Items,
			Expression: problem.Expression[sub.start : sub.start+sub.size],
			Capacity:   problem.Capacity,
		})
	})
}

// splitIntoSubexpressions returns the start indices of the chosen
// subexpressions in ascending order.
func (p *Parallel) splitIntoSubexpressions(minCount int) []int {
	expression := p.problem.Expression
	if len(expression) == 0 {
		return nil
	}

	pq := priorityqueue.New[int, int64](priorityqueue.MaxHeap)
	pq.Put(0, int64(len(expression)))
	for pq.Len() < minCount {
		top := pq.Get()
		start, size := top.Value, int(top.Priority)

		// Walk the immediate children, skipping over the opening
		// And/Or token and the closing End token.
		hasChildren := false
		offset := start + 1
		for offset < start+size-1 {
			childSize := p.sizes[offset]
			tok := expression[offset]
			if tok.IsAnd() || tok.IsOr() {
				hasChildren = true
				pq.Put(offset, int64(childSize))
			}
			offset += childSize
		}
		if !hasChildren {
			// Nothing left to split.
			pq.Put(start, int64(size))
			break
		}
	}

	starts := make([]int, 0, pq.Len())
	for pq.Len() > 0 {
		starts = append(starts, pq.Get().Value)
	}
	sort.Ints(starts)
	return starts
}

// Solve evaluates the dual at the given multipliers: all delegates run
// concurrently on their subexpressions, then the expression top is
// resolved recursively, short-circuiting to the cached results.
func (p *Parallel) Solve(multipliers []float64, selected *[]int) bool {
	*selected = (*selected)[:0]
	if len(p.problem.Expression) == 0 {
		return false
	}

	items := p.problem.Items
	balancedParallelFor(p.threadCount, len(p.subs), func(s int) {
		sub := &p.subs[s]
		sub.success = p.delegates[s].Solve(multipliers, &sub.selected)

		// The partial dual cost of this subexpression's solution.
		//
		// The Relaxed delegate has already accumulated this value
		// internally; recomputing it here keeps the DualSolver
		// interface narrow.
		sub.partialDualCost = 0.0
		for _, item := range sub.selected {
			sub.partialDualCost += partialDualCost(items, multipliers, item)
		}
	})

	_, ok := p.solveRecursive(0, len(p.problem.Expression), multipliers, selected)
	return ok
}

// solveRecursive evaluates the subexpression spanning
// expression[start:start+size], appending chosen items to selected and
// returning the partial dual cost. A subexpression with a cached
// solution is resolved by lookup instead of recursion; only the top of
// the expression tree is actually walked, so performance here is not
// critical.
func (p *Parallel) solveRecursive(start, size int, multipliers []float64, selected *[]int) (float64, bool) {
	expression := p.problem.Expression
	token := expression[start]

	if token.IsAnd() || token.IsOr() {
		if sub := p.lookup(start); sub != nil {
			*selected = append(*selected, sub.selected...)
			return sub.partialDualCost, sub.success
		}
	}

	switch {
	case token.IsAnd():
		cost := 0.0
		offset := start + 1
		for offset < start+size-1 {
			childSize := p.sizes[offset]
			childCost, ok := p.solveRecursive(offset, childSize, multipliers, selected)
			if !ok {
				return 0, false
			}
			cost += childCost
			offset += childSize
		}
		if offset == start+1 {
			// Empty And() clause.
			return 0, false
		}
		return cost, true

	case token.IsOr():
		anySuccess := false
		cost := 0.0
		begin := len(*selected)
		offset := start + 1
		for offset < start+size-1 {
			childSize := p.sizes[offset]
			head := len(*selected)
			childCost, ok := p.solveRecursive(offset, childSize, multipliers, selected)
			if ok && (!anySuccess || childCost < cost) {
				// Keep this child: shift its items left over the
				// previous best's items.
				cost = childCost
				copy((*selected)[begin:], (*selected)[head:])
				*selected = (*selected)[:len(*selected)-(head-begin)]
				anySuccess = true
			} else {
				*selected = (*selected)[:head]
			}
			offset += childSize
		}
		return cost, anySuccess

	default:
		item := token.ItemIndex()
		*selected = append(*selected, item)
		return partialDualCost(p.problem.Items, multipliers, item), true
	}
}

// lookup binary-searches the cached subexpression solutions by token
// start index.
func (p *Parallel) lookup(start int) *subSolution {
	i := sort.Search(len(p.subs), func(i int) bool { return p.subs[i].start >= start })
	if i < len(p.subs) && p.subs[i].start == start {
		return &p.subs[i]
	}
	return nil
}

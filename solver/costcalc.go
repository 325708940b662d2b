package solver

import (
	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/selopt/selection"
)

// CostCalculator aggregates the primal cost, dual cost and total weight
// of a candidate solution, processing chunks of items in parallel.
//
// Scratch allocations are cached across calls, so a CostCalculator is
// not safe for concurrent use; give each goroutine its own instance.
type CostCalculator struct {
	threadCount int

	// Per-chunk partial sums, reduced sequentially after the parallel
	// phase.
	partials []partialCost
}

// partialCost holds the sums for one chunk of the solution.
type partialCost struct {
	totalWeight []float64
	primalCost  float64
}

// NewCostCalculator returns a calculator using at most threadCount
// goroutines per call.
func NewCostCalculator(threadCount int) *CostCalculator {
	if threadCount < 1 {
		threadCount = 1
	}
	return &CostCalculator{threadCount: threadCount}
}

// SolutionCost computes the primal cost and dual cost of selecting
// items under the given multipliers, and fills totalWeight with the
// solution's dense weight vector.
//
// len(totalWeight) and len(multipliers) must equal the problem's
// capacity dimension.
func (c *CostCalculator) SolutionCost(p selection.Problem, multipliers []float64, items []int, totalWeight []float64) (primalCost, dualCost float64) {
	numItems := len(items)
	numWeights := p.Items.NumWeights()

	for d := range totalWeight {
		totalWeight[d] = 0
	}
	if numItems == 0 {
		return 0, selection.DualCost(p, multipliers, totalWeight, 0)
	}

	// Use more chunks than threads for load balancing, but never more
	// chunks than items.
	numChunks := min(c.threadCount*2, numItems)
	// Round the chunk size up. Neither the chunk count nor the chunk
	// size can be fixed independently: with 5 items and 4 desired
	// chunks, rounding the size up to 2 makes a fourth chunk overshoot
	// the item range, while rounding down to 1 drops the fifth item.
	// So the size rounds up and the chunk count is then recomputed from
	// it, which guarantees full coverage without overshoot.
	chunkSize := (numItems + numChunks - 1) / numChunks
	numChunks = (numItems + chunkSize - 1) / chunkSize

	if len(c.partials) < numChunks {
		c.partials = append(c.partials, make([]partialCost, numChunks-len(c.partials))...)
	}
	balancedParallelFor(c.threadCount, numChunks, func(chunk int) {
		start := chunkSize * chunk
		end := min(start+chunkSize, numItems)
		inChunk := items[start:end]

		partial := &c.partials[chunk]
		partial.primalCost = selection.TotalCost(p.Items, inChunk)
		partial.totalWeight = resize(partial.totalWeight, numWeights)
		selection.TotalWeight(p.Items, inChunk, partial.totalWeight)
	})

	for chunk := 0; chunk < numChunks; chunk++ {
		primalCost += c.partials[chunk].primalCost
		floats.Add(totalWeight, c.partials[chunk].totalWeight)
	}
	dualCost = selection.DualCost(p, multipliers, totalWeight, primalCost)
	return primalCost, dualCost
}

package selection

import "fmt"

// Weight is a single entry of an item's sparse weight vector.
type Weight struct {
	// Index is the capacity dimension this entry consumes.
	Index int
	// Value is the amount consumed; must be non-negative.
	Value float64
}

// item is the arena record for one item. Its weights live in the
// ItemSet's shared weight slice at [weightStart, weightStart+weightCount).
type item struct {
	cost        float64
	weightStart int
	weightCount int
}

// ItemSet owns all items of a selection problem.
//
// Items are append-only and identified by monotonically increasing
// integer handles starting at 0. All weight entries of all items are
// stored in a single contiguous slice, with each item holding a range
// into it, so iterating an item's weights is cache-friendly and
// allocation-free.
//
// An ItemSet is immutable once handed to a solver and may then be read
// concurrently from any number of goroutines.
type ItemSet struct {
	numWeights int
	items      []item
	weights    []Weight
}

// NewItemSet returns an empty ItemSet whose weight vectors have
// numWeights dimensions.
func NewItemSet(numWeights int) *ItemSet {
	return &ItemSet{numWeights: numWeights}
}

// NumWeights returns the dimension of the weight vectors.
func (s *ItemSet) NumWeights() int { return s.numWeights }

// NumItems returns the number of items appended so far.
func (s *ItemSet) NumItems() int { return len(s.items) }

// AppendItem adds an item with the given cost and sparse weights,
// returning its handle. Handles are assigned consecutively from 0.
//
// Panics if a weight index is outside [0, NumWeights).
func (s *ItemSet) AppendItem(cost float64, weights []Weight) int {
	for _, w := range weights {
		if w.Index < 0 || w.Index >= s.numWeights {
			panic(fmt.Sprintf("selection: weight index %d out of range [0,%d)",
				w.Index, s.numWeights))
		}
	}
	s.items = append(s.items, item{
		cost:        cost,
		weightStart: len(s.weights),
		weightCount: len(weights),
	})
	s.weights = append(s.weights, weights...)
	return len(s.items) - 1
}

// Cost returns the cost of the item with the given handle.
func (s *ItemSet) Cost(item int) float64 { return s.items[item].cost }

// Weights returns the sparse weights of the item with the given handle.
//
// The returned slice aliases the ItemSet's storage and must not be
// modified.
func (s *ItemSet) Weights(item int) []Weight {
	it := s.items[item]
	return s.weights[it.weightStart : it.weightStart+it.weightCount]
}

// Token value encoding: item tokens store the item handle (≥ 0),
// structural tokens use reserved negative values.
const (
	tokenInvalid = -1
	tokenAnd     = -2
	tokenOr      = -3
	tokenEnd     = -4
)

// Token is one element of a prefix-notation boolean expression.
//
// The zero Token is invalid; construct tokens with And, Or, Item and
// End. An And or Or token opens a clause which the next matching End
// token closes.
type Token struct {
	value int
}

// And returns a token opening an AND clause.
func And() Token { return Token{tokenAnd} }

// Or returns a token opening an OR clause.
func Or() Token { return Token{tokenOr} }

// End returns a token closing the innermost open clause.
func End() Token { return Token{tokenEnd} }

// Item returns a token referencing the item with the given handle.
// Panics if the handle is negative.
func Item(item int) Token {
	if item < 0 {
		panic(fmt.Sprintf("selection: negative item handle %d", item))
	}
	return Token{item}
}

// IsAnd reports whether the token opens an AND clause.
func (t Token) IsAnd() bool { return t.value == tokenAnd }

// IsOr reports whether the token opens an OR clause.
func (t Token) IsOr() bool { return t.value == tokenOr }

// IsEnd reports whether the token closes a clause.
func (t Token) IsEnd() bool { return t.value == tokenEnd }

// IsItem reports whether the token references an item.
func (t Token) IsItem() bool { return t.value >= 0 }

// ItemIndex returns the handle of the referenced item.
// Panics if the token is not an item token.
func (t Token) ItemIndex() int {
	if t.value < 0 {
		panic("selection: ItemIndex on non-item token")
	}
	return t.value
}

// Problem bundles the inputs of one selection problem.
//
// All three fields are borrowed: the caller retains ownership and must
// keep them alive and unmodified for as long as any solver initialized
// with the Problem is in use. Expression may be a sub-slice of a larger
// expression when solving a subproblem.
type Problem struct {
	// Items holds every item the expression may reference (possibly
	// more than actually appear in it).
	Items *ItemSet

	// Expression is the boolean constraint over item selection.
	Expression []Token

	// Capacity bounds the total weight of the selected items in each
	// dimension; len(Capacity) must equal Items.NumWeights().
	Capacity []float64
}

package ranksort

import "fmt"

// Weighted is implemented by anything that can be ranked.
type Weighted interface {
	// Weight returns the value ranked on. It must not change during a sort.
	Weight() int64
}

// Strategy selects how the partition steps are driven.
type Strategy string

const (
	// StrategyRecursive recurses into the higher and lower buckets.
	StrategyRecursive Strategy = "recursive"
	// StrategyStack drives the same partition steps from an explicit stack.
	StrategyStack Strategy = "stack"
)

// String returns the strategy name.
func (s Strategy) String() string {
	return string(s)
}

// ParseStrategy converts a config or flag value into a Strategy.
// An empty string selects StrategyRecursive.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case "", StrategyRecursive:
		return StrategyRecursive, nil
	case StrategyStack:
		return StrategyStack, nil
	default:
		return "", fmt.Errorf("unknown sort strategy %q (use: recursive, stack)", s)
	}
}

// SortDescending reorders items in place from highest to lowest weight.
func SortDescending[T Weighted](items []T) {
	SortDescendingFunc(items, weightOf[T])
}

// SortDescendingFunc is SortDescending with an explicit weight accessor.
func SortDescendingFunc[T any](items []T, weight func(T) int64) {
	Sort(items, weight, StrategyRecursive)
}

// Sort reorders items in place from highest to lowest weight using the given
// strategy. Both strategies produce identical output.
func Sort[T any](items []T, weight func(T) int64, strategy Strategy) {
	if len(items) == 0 {
		return
	}

	var sorted []T
	switch strategy {
	case StrategyStack:
		sorted = stackSort(items, weight)
	default:
		sorted = pivotSort(items, weight)
	}
	copy(items, sorted)
}

func weightOf[T Weighted](item T) int64 {
	return item.Weight()
}

// pivotSort returns a new slice holding items ordered high to low.
// items is only read.
func pivotSort[T any](items []T, weight func(T) int64) []T {
	if len(items) == 0 {
		return nil
	}

	higher, equal, lower := partition(items, weight)
	higher = pivotSort(higher, weight)
	lower = pivotSort(lower, weight)

	out := make([]T, 0, len(items))
	out = append(out, higher...)
	out = append(out, equal...)
	return append(out, lower...)
}

// partition splits items around its last element. Every bucket is freshly
// allocated; items is not modified.
func partition[T any](items []T, weight func(T) int64) (higher, equal, lower []T) {
	last := len(items) - 1
	pivot := items[last]
	threshold := weight(pivot)

	equal = append(equal, pivot)
	for i := last - 1; i >= 0; i-- {
		item := items[i]
		switch w := weight(item); {
		case w < threshold:
			lower = append(lower, item)
		case w == threshold:
			equal = append(equal, item)
		default:
			higher = append(higher, item)
		}
	}
	return higher, equal, lower
}

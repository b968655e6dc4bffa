// Package ranksort orders weighted values from highest to lowest weight using
// a recursive three-way partition ("pivot sort, high to low").
//
// The algorithm is deliberately not a library sort. Its tie order is part of
// its contract:
//
//   - The pivot is the last element of the input.
//   - The remaining elements are classified from the back of the input to the
//     front into lower, equal and higher buckets. The equal bucket starts with
//     the pivot.
//   - Each classified element is appended to the end of its bucket.
//   - Higher and lower are sorted recursively; equal is not.
//   - The result is higher, then equal, then lower.
//
// Because elements are visited back to front and appended, every partition
// step reverses the relative order of the elements it moves into a bucket.
// The order inside an equal-weight run therefore depends on how many steps
// the run passed through: all-equal input comes out reversed, while a run
// that was first pushed into a lower bucket is reversed twice. The order is
// deterministic, but re-sorting the output is only guaranteed to be a no-op
// when all weights are distinct.
//
// # Usage
//
//	type entry struct{ name string; hits int64 }
//	func (e entry) Weight() int64 { return e.hits }
//
//	ranksort.SortDescending(entries)
//
// Types that do not implement [Weighted] can be sorted with an accessor:
//
//	ranksort.SortDescendingFunc(rows, func(r row) int64 { return r.score })
//
// # Cost
//
// Pivot selection is always "last element", so already sorted or reverse
// sorted input costs O(n²) comparisons and O(n) recursion depth.
// [StrategyStack] replaces the recursion with an explicit work stack and
// produces exactly the same order.
//
// # Thread Safety
//
// Sorting does not retain the input after it returns and uses no package
// state. Concurrent calls on distinct slices are safe.
package ranksort

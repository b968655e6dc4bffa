package ranksort

// frame is one unit of pending work. A settled frame is an equal-weight run
// that is already in final order.
type frame[T any] struct {
	items   []T
	settled bool
}

// stackSort emits the same order as pivotSort without recursion. Frames are
// pushed lower, equal, higher so that higher is popped and fully resolved
// before equal and lower are emitted.
func stackSort[T any](items []T, weight func(T) int64) []T {
	out := make([]T, 0, len(items))
	stack := []frame[T]{{items: items}}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if top.settled {
			out = append(out, top.items...)
			continue
		}
		if len(top.items) == 0 {
			continue
		}

		higher, equal, lower := partition(top.items, weight)
		stack = append(stack,
			frame[T]{items: lower},
			frame[T]{items: equal, settled: true},
			frame[T]{items: higher},
		)
	}
	return out
}

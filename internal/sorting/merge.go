package sorting

import (
	"strconv"

	"github.com/Sumatoshi-tech/algotrace/internal/step"
)

// Merge sorts by recursive halving and ordered merging. A single scratch
// buffer the size of the input backs every merge; placements copy back into
// the slice one narrated element at a time.
func Merge(values []int64) []step.Step {
	length := len(values)
	if length <= 1 {
		return nil
	}

	steps := []step.Step{withState(step.New("Starting Merge Sort").
		WithMeta(step.MetaOp, step.KindMergeSort.String()), values)}

	scratch := make([]int64, length)
	mergeRange(values, scratch, 0, length-1, &steps)

	steps = append(steps, withState(step.New("Merge sort complete").
		WithActive(allIndices(length)...), values))

	return steps
}

func mergeRange(values, scratch []int64, low, high int, steps *[]step.Step) {
	if low >= high {
		return
	}

	mid := low + (high-low)/2

	*steps = append(*steps, withState(step.New("Splitting range [%d, %d] into [%d, %d] and [%d, %d]",
		low, high, low, mid, mid+1, high).
		WithHighlights(rangeIndices(low, high)...).
		WithMeta(step.MetaOp, "divide"), values))

	mergeRange(values, scratch, low, mid, steps)
	mergeRange(values, scratch, mid+1, high, steps)

	*steps = append(*steps, withState(step.New("Merging [%d, %d] and [%d, %d]", low, mid, mid+1, high).
		WithHighlights(rangeIndices(low, high)...).
		WithMeta(step.MetaOp, "merge"), values))

	copy(scratch[low:high+1], values[low:high+1])

	left, right := low, mid+1

	for at := low; at <= high; at++ {
		var value int64

		switch {
		case left > mid:
			value = scratch[right]
			right++
		case right > high:
			value = scratch[left]
			left++
		default:
			*steps = append(*steps, withState(step.New("Comparing %d and %d", scratch[left], scratch[right]).
				WithHighlights(at).
				WithMeta(step.MetaOp, "compare"), values))

			if scratch[left] <= scratch[right] {
				value = scratch[left]
				left++
			} else {
				value = scratch[right]
				right++
			}
		}

		values[at] = value

		*steps = append(*steps, withState(step.New("Placing %d at position %d", value, at).
			WithActive(at).
			WithMeta(step.MetaOp, "place").
			WithMeta(step.MetaIndex, strconv.Itoa(at)), values))
	}

	*steps = append(*steps, withState(step.New("Range [%d, %d] is now sorted", low, high).
		WithHighlights(rangeIndices(low, high)...).
		WithMeta(step.MetaOp, "sorted"), values))
}

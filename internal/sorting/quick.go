package sorting

import (
	"strconv"

	"github.com/Sumatoshi-tech/algotrace/internal/step"
)

// Quick sorts with Lomuto partitioning: the last element of each range is the
// pivot, smaller elements are swapped in front of it, and the pivot lands in
// its final position between the partitions.
func Quick(values []int64) []step.Step {
	length := len(values)
	if length <= 1 {
		return nil
	}

	steps := []step.Step{withState(step.New("Starting Quick Sort").
		WithMeta(step.MetaOp, step.KindQuickSort.String()), values)}

	quickRange(values, 0, length-1, &steps)

	steps = append(steps, withState(step.New("Quick sort complete").
		WithActive(allIndices(length)...), values))

	return steps
}

func quickRange(values []int64, low, high int, steps *[]step.Step) {
	if low >= high {
		return
	}

	pivotIndex := partition(values, low, high, steps)
	quickRange(values, low, pivotIndex-1, steps)
	quickRange(values, pivotIndex+1, high, steps)
}

func partition(values []int64, low, high int, steps *[]step.Step) int {
	pivot := values[high]

	*steps = append(*steps, withState(step.New("Choosing %d as pivot (index %d)", pivot, high).
		WithHighlights(high).
		WithMeta(step.MetaOp, "pivot").
		WithMeta(step.MetaValue, strconv.FormatInt(pivot, 10)).
		WithMeta(step.MetaIndex, strconv.Itoa(high)), values))

	at := low

	for j := low; j < high; j++ {
		*steps = append(*steps, withState(step.New("Comparing %d with pivot %d", values[j], pivot).
			WithHighlights(j, high).
			WithMeta(step.MetaOp, "compare"), values))

		if values[j] < pivot {
			if at != j {
				values[at], values[j] = values[j], values[at]

				*steps = append(*steps, withState(step.New("Swapping %d and %d", values[j], values[at]).
					WithActive(at, j).
					WithMeta(step.MetaOp, "swap"), values))
			}

			at++
		}
	}

	values[at], values[high] = values[high], values[at]

	*steps = append(*steps, withState(step.New("Placing pivot %d at final position %d", pivot, at).
		WithActive(at, high).
		WithMeta(step.MetaOp, "swap"), values))

	*steps = append(*steps, withState(step.New("Pivot %d is now in correct position", pivot).
		WithHighlights(at).
		WithMeta(step.MetaOp, "sorted").
		WithMeta(step.MetaIndex, strconv.Itoa(at)), values))

	return at
}

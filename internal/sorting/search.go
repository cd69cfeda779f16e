package sorting

import (
	"strconv"

	"github.com/Sumatoshi-tech/algotrace/internal/step"
)

// BinarySearch narrates the halving probes for target over values. The slice
// must already be sorted ascending for the result to be meaningful; the
// narration is honest either way.
func BinarySearch(values []int64, target int64) []step.Step {
	if len(values) == 0 {
		return []step.Step{step.New("Array is empty, cannot search").
			WithMeta(step.MetaFound, "false")}
	}

	steps := []step.Step{withState(step.New("Starting binary search for %d", target).
		WithMeta(step.MetaOp, step.KindBinarySearch.String()).
		WithMeta(step.MetaValue, strconv.FormatInt(target, 10)), values)}

	left, right := 0, len(values)-1

	for left <= right {
		mid := left + (right-left)/2

		steps = append(steps, withState(step.New("Checking middle element at index %d", mid).
			WithHighlights(left, mid, right).
			WithMeta(step.MetaIndex, strconv.Itoa(mid)), values))

		switch {
		case values[mid] == target:
			steps = append(steps, withState(step.New("Found %d at index %d", target, mid).
				WithActive(mid).
				WithMeta(step.MetaFound, "true").
				WithMeta(step.MetaIndex, strconv.Itoa(mid)), values))

			return steps
		case values[mid] < target:
			steps = append(steps, withState(step.New("%d < %d, searching right half", values[mid], target).
				WithHighlights(mid+1, right), values))

			left = mid + 1
		default:
			steps = append(steps, withState(step.New("%d > %d, searching left half", values[mid], target).
				WithHighlights(left, mid-1), values))

			right = mid - 1
		}
	}

	steps = append(steps, withState(step.New("Value %d not found in array", target).
		WithMeta(step.MetaFound, "false"), values))

	return steps
}

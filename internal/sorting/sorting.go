// Package sorting implements step-narrated sorting and searching over int64
// slices. Every algorithm mutates the slice in place and returns the trace of
// comparisons, swaps and placements it performed; empty and single-element
// inputs are already sorted and produce an empty trace.
//
// Each step carries an array snapshot in its metadata so a renderer can show
// the slice as it looked at that moment without replaying the mutations.
package sorting

import (
	"strconv"
	"strings"

	"github.com/Sumatoshi-tech/algotrace/internal/step"
)

// snapshot renders the slice contents for step metadata.
func snapshot(values []int64) string {
	var sb strings.Builder

	for idx, value := range values {
		if idx > 0 {
			sb.WriteByte(',')
		}

		sb.WriteString(strconv.FormatInt(value, 10))
	}

	return sb.String()
}

// allIndices lists every position, used by completion steps to mark the
// whole slice active.
func allIndices(length int) []int {
	indices := make([]int, length)
	for idx := range indices {
		indices[idx] = idx
	}

	return indices
}

// rangeIndices lists the positions from low to high inclusive.
func rangeIndices(low, high int) []int {
	indices := make([]int, 0, high-low+1)
	for idx := low; idx <= high; idx++ {
		indices = append(indices, idx)
	}

	return indices
}

func withState(st step.Step, values []int64) step.Step {
	return st.WithMeta(step.MetaArrayState, snapshot(values))
}

// Bubble sorts by repeatedly swapping adjacent out-of-order pairs. Each pass
// bubbles the largest remaining element into its final position; a pass with
// no swaps ends the sort early.
func Bubble(values []int64) []step.Step {
	length := len(values)
	if length <= 1 {
		return nil
	}

	steps := []step.Step{withState(step.New("Starting Bubble Sort").
		WithMeta(step.MetaOp, step.KindBubbleSort.String()), values)}

	for i := range length {
		swapped := false

		for j := 0; j < length-i-1; j++ {
			steps = append(steps, withState(step.New("Comparing %d and %d", values[j], values[j+1]).
				WithHighlights(j, j+1).
				WithMeta(step.MetaOp, "compare"), values))

			if values[j] > values[j+1] {
				values[j], values[j+1] = values[j+1], values[j]

				steps = append(steps, withState(step.New("Swapping %d and %d", values[j+1], values[j]).
					WithActive(j, j+1).
					WithMeta(step.MetaOp, "swap"), values))

				swapped = true
			}
		}

		steps = append(steps, withState(step.New("Element %d is now in final position", values[length-i-1]).
			WithHighlights(length-i-1).
			WithMeta(step.MetaOp, "sorted").
			WithMeta(step.MetaIndex, strconv.Itoa(length-i-1)), values))

		if !swapped {
			steps = append(steps, withState(step.New("Array is sorted, no more swaps needed"), values))

			break
		}
	}

	steps = append(steps, withState(step.New("Sorting complete").
		WithActive(allIndices(length)...), values))

	return steps
}

// Insertion sorts by growing a sorted prefix, shifting larger elements right
// to open the insertion position for each selected key.
func Insertion(values []int64) []step.Step {
	length := len(values)
	if length <= 1 {
		return nil
	}

	steps := []step.Step{withState(step.New("Starting Insertion Sort").
		WithMeta(step.MetaOp, step.KindInsertionSort.String()), values)}

	for i := 1; i < length; i++ {
		key := values[i]
		j := i

		steps = append(steps, withState(step.New("Selecting %d to insert into sorted portion", key).
			WithHighlights(i).
			WithMeta(step.MetaOp, "select").
			WithMeta(step.MetaValue, strconv.FormatInt(key, 10)).
			WithMeta(step.MetaIndex, strconv.Itoa(i)), values))

		for j > 0 && values[j-1] > key {
			steps = append(steps, withState(step.New("Comparing %d with %d", values[j-1], key).
				WithHighlights(j-1, j).
				WithMeta(step.MetaOp, "compare"), values))

			values[j] = values[j-1]
			j--

			steps = append(steps, withState(step.New("Shifting element to the right").
				WithActive(j, j+1).
				WithMeta(step.MetaOp, "shift"), values))
		}

		values[j] = key

		steps = append(steps, withState(step.New("Inserted %d at position %d", key, j).
			WithHighlights(j).
			WithMeta(step.MetaOp, "insert").
			WithMeta(step.MetaValue, strconv.FormatInt(key, 10)).
			WithMeta(step.MetaIndex, strconv.Itoa(j)), values))

		steps = append(steps, withState(step.New("Elements 0..=%d are now sorted", i).
			WithHighlights(rangeIndices(0, i)...), values))
	}

	steps = append(steps, withState(step.New("Insertion sort complete").
		WithActive(allIndices(length)...), values))

	return steps
}

// Selection sorts by scanning the unsorted suffix for its minimum and
// swapping it into place, one final position per pass.
func Selection(values []int64) []step.Step {
	length := len(values)
	if length <= 1 {
		return nil
	}

	steps := []step.Step{withState(step.New("Starting Selection Sort").
		WithMeta(step.MetaOp, step.KindSelectionSort.String()), values)}

	for i := 0; i < length-1; i++ {
		minIndex := i

		steps = append(steps, withState(step.New("Finding minimum in unsorted portion from index %d", i).
			WithHighlights(i).
			WithMeta(step.MetaOp, "select").
			WithMeta(step.MetaIndex, strconv.Itoa(i)), values))

		for j := i + 1; j < length; j++ {
			steps = append(steps, withState(step.New("Comparing %d and %d", values[j], values[minIndex]).
				WithHighlights(j, minIndex).
				WithMeta(step.MetaOp, "compare"), values))

			if values[j] < values[minIndex] {
				minIndex = j

				steps = append(steps, withState(step.New("New minimum %d at index %d", values[j], j).
					WithHighlights(j).
					WithMeta(step.MetaOp, "select").
					WithMeta(step.MetaValue, strconv.FormatInt(values[j], 10)).
					WithMeta(step.MetaIndex, strconv.Itoa(j)), values))
			}
		}

		if minIndex != i {
			values[i], values[minIndex] = values[minIndex], values[i]

			steps = append(steps, withState(step.New("Swapping %d and %d", values[i], values[minIndex]).
				WithActive(i, minIndex).
				WithMeta(step.MetaOp, "swap"), values))
		}

		steps = append(steps, withState(step.New("Element %d is now in final position", values[i]).
			WithHighlights(i).
			WithMeta(step.MetaOp, "sorted").
			WithMeta(step.MetaIndex, strconv.Itoa(i)), values))
	}

	steps = append(steps, withState(step.New("Selection sort complete").
		WithActive(allIndices(length)...), values))

	return steps
}

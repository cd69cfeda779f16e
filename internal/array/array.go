// Package array implements the step-traced bounded array: positional
// insert, delete and update with shift narration, linear probing search,
// and the sorting and binary-search algorithms from internal/sorting
// applied to the backing slice in place.
package array

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/Sumatoshi-tech/algotrace/internal/sorting"
	"github.com/Sumatoshi-tech/algotrace/internal/step"
	"github.com/Sumatoshi-tech/algotrace/internal/viz"
)

// DefaultCapacity bounds arrays constructed with a non-positive capacity.
const DefaultCapacity = 64

// Array is a step-traced sequence with a fixed capacity. Step and render
// position indices are plain slot indices.
type Array struct {
	elements []int64
	capacity int
}

// New creates an empty array bounded by capacity. Non-positive capacities
// fall back to DefaultCapacity.
func New(capacity int) *Array {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	return &Array{elements: make([]int64, 0, capacity), capacity: capacity}
}

// Size reports the number of stored elements.
func (arr *Array) Size() int {
	return len(arr.elements)
}

// Capacity reports the maximum number of elements.
func (arr *Array) Capacity() int {
	return arr.capacity
}

// Values returns a copy of the stored elements in slot order.
func (arr *Array) Values() []int64 {
	return slices.Clone(arr.elements)
}

// Clear removes all elements, keeping the capacity.
func (arr *Array) Clear() {
	arr.elements = arr.elements[:0]
}

// Execute implements the structure contract. Sorting kinds run the matching
// internal/sorting algorithm over the backing slice.
func (arr *Array) Execute(op step.Operation) ([]step.Step, error) {
	switch op.Kind {
	case step.KindInsertAt:
		return arr.InsertAt(op.Index, op.Value)
	case step.KindDeleteAt:
		return arr.DeleteAt(op.Index)
	case step.KindUpdate:
		return arr.Update(op.Index, op.Value)
	case step.KindSearch:
		return arr.Search(op.Value), nil
	case step.KindBinarySearch:
		return sorting.BinarySearch(arr.elements, op.Value), nil
	case step.KindBubbleSort:
		return sorting.Bubble(arr.elements), nil
	case step.KindInsertionSort:
		return sorting.Insertion(arr.elements), nil
	case step.KindSelectionSort:
		return sorting.Selection(arr.elements), nil
	case step.KindMergeSort:
		return sorting.Merge(arr.elements), nil
	case step.KindQuickSort:
		return sorting.Quick(arr.elements), nil
	default:
		return nil, viz.Unsupported("array", op.Kind.String())
	}
}

// InsertAt inserts value at index, shifting later elements right. The
// capacity check runs before the bounds check, so a full array rejects
// every insertion regardless of index.
func (arr *Array) InsertAt(index int, value int64) ([]step.Step, error) {
	if len(arr.elements) >= arr.capacity {
		return nil, viz.Full(arr.capacity)
	}

	if index < 0 || index > len(arr.elements) {
		return nil, viz.IndexOutOfBounds(index, len(arr.elements))
	}

	steps := []step.Step{step.New("Inserting %d at index %d", value, index).
		WithHighlights(index).
		WithMeta(step.MetaOp, step.KindInsertAt.String()).
		WithMeta(step.MetaValue, strconv.FormatInt(value, 10)).
		WithMeta(step.MetaIndex, strconv.Itoa(index))}

	if index < len(arr.elements) {
		steps = append(steps, step.New("Shifting elements to make room").
			WithHighlights(indexRange(index, len(arr.elements)-1)...))
	}

	arr.elements = slices.Insert(arr.elements, index, value)

	steps = append(steps, step.New("Insertion complete").WithActive(index))

	return steps, nil
}

// DeleteAt removes the element at index, shifting later elements left.
func (arr *Array) DeleteAt(index int) ([]step.Step, error) {
	if index < 0 || index >= len(arr.elements) {
		return nil, viz.IndexOutOfBounds(index, len(arr.elements))
	}

	value := arr.elements[index]

	steps := []step.Step{step.New("Deleting element %d at index %d", value, index).
		WithHighlights(index).
		WithMeta(step.MetaOp, step.KindDeleteAt.String()).
		WithMeta(step.MetaValue, strconv.FormatInt(value, 10)).
		WithMeta(step.MetaIndex, strconv.Itoa(index))}

	arr.elements = slices.Delete(arr.elements, index, index+1)

	if index < len(arr.elements) {
		steps = append(steps, step.New("Shifting elements to fill gap").
			WithHighlights(indexRange(index, len(arr.elements)-1)...))
	}

	steps = append(steps, step.New("Deletion complete"))

	return steps, nil
}

// Update replaces the element at index, narrating the old and new values.
func (arr *Array) Update(index int, value int64) ([]step.Step, error) {
	if index < 0 || index >= len(arr.elements) {
		return nil, viz.IndexOutOfBounds(index, len(arr.elements))
	}

	oldValue := arr.elements[index]

	steps := []step.Step{step.New("Updating index %d from %d to %d", index, oldValue, value).
		WithHighlights(index).
		WithMeta(step.MetaOp, step.KindUpdate.String()).
		WithMeta(step.MetaValue, strconv.FormatInt(value, 10)).
		WithMeta(step.MetaIndex, strconv.Itoa(index))}

	arr.elements[index] = value

	steps = append(steps, step.New("Updated index %d to %d", index, value).
		WithActive(index))

	return steps, nil
}

// Search probes the slots left to right until value is found.
func (arr *Array) Search(value int64) []step.Step {
	steps := make([]step.Step, 0, len(arr.elements)+1)

	for idx, element := range arr.elements {
		steps = append(steps, step.New("Checking index %d: %d", idx, element).
			WithHighlights(idx).
			WithMeta(step.MetaValue, strconv.FormatInt(element, 10)).
			WithMeta(step.MetaIndex, strconv.Itoa(idx)))

		if element == value {
			steps = append(steps, step.New("Found %d at index %d", value, idx).
				WithActive(idx).
				WithMeta(step.MetaFound, "true").
				WithMeta(step.MetaIndex, strconv.Itoa(idx)))

			return steps
		}
	}

	steps = append(steps, step.New("Value %d not found", value).
		WithMeta(step.MetaFound, "false"))

	return steps
}

// Render projects the elements with their slot indices as sublabels.
func (arr *Array) Render() viz.RenderState {
	elements := make([]viz.Element, len(arr.elements))
	for idx, value := range arr.elements {
		elements[idx] = viz.Element{
			Value:    value,
			Label:    strconv.FormatInt(value, 10),
			Sublabel: fmt.Sprintf("[%d]", idx),
			State:    viz.StateNormal,
		}
	}

	return viz.RenderState{Elements: elements}
}

// indexRange lists the positions from low to high inclusive.
func indexRange(low, high int) []int {
	indices := make([]int, 0, high-low+1)
	for idx := low; idx <= high; idx++ {
		indices = append(indices, idx)
	}

	return indices
}

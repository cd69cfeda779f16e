// Package queue implements the step-traced bounded FIFO queue. Dequeue
// narrates the forward shift of the remaining elements; render marks the
// front and back slots.
package queue

import (
	"slices"
	"strconv"

	"github.com/Sumatoshi-tech/algotrace/internal/step"
	"github.com/Sumatoshi-tech/algotrace/internal/viz"
)

// DefaultCapacity bounds queues constructed with a non-positive capacity.
const DefaultCapacity = 16

// Queue is a step-traced FIFO sequence with a fixed capacity. Step and
// render position indices are slot indices counted from the front.
type Queue struct {
	data     []int64
	capacity int
}

// New creates an empty queue bounded by capacity. Non-positive capacities
// fall back to DefaultCapacity.
func New(capacity int) *Queue {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	return &Queue{data: make([]int64, 0, capacity), capacity: capacity}
}

// Size reports the number of stored elements.
func (q *Queue) Size() int {
	return len(q.data)
}

// Capacity reports the maximum number of elements.
func (q *Queue) Capacity() int {
	return q.capacity
}

// IsEmpty reports whether the queue holds no elements.
func (q *Queue) IsEmpty() bool {
	return len(q.data) == 0
}

// Peek reports the front value without removing it.
func (q *Queue) Peek() (int64, error) {
	if len(q.data) == 0 {
		return 0, viz.ErrEmptyStructure
	}

	return q.data[0], nil
}

// Values returns a copy of the stored elements, front first.
func (q *Queue) Values() []int64 {
	return slices.Clone(q.data)
}

// Clear removes all elements, keeping the capacity.
func (q *Queue) Clear() {
	q.data = q.data[:0]
}

// Execute implements the structure contract.
func (q *Queue) Execute(op step.Operation) ([]step.Step, error) {
	switch op.Kind {
	case step.KindEnqueue:
		return q.Enqueue(op.Value)
	case step.KindDequeue:
		steps, _, err := q.Dequeue()

		return steps, err
	default:
		return nil, viz.Unsupported("queue", op.Kind.String())
	}
}

// Enqueue appends value to the back of the queue.
func (q *Queue) Enqueue(value int64) ([]step.Step, error) {
	if len(q.data) >= q.capacity {
		return nil, viz.Full(q.capacity)
	}

	steps := []step.Step{step.New("Enqueuing %d to back of queue", value).
		WithMeta(step.MetaOp, step.KindEnqueue.String()).
		WithMeta(step.MetaValue, strconv.FormatInt(value, 10))}

	q.data = append(q.data, value)

	backIndex := len(q.data) - 1
	steps = append(steps, step.New("%d added to back, queue size now %d", value, len(q.data)).
		WithActive(backIndex).
		WithMeta(step.MetaIndex, strconv.Itoa(backIndex)))

	return steps, nil
}

// Dequeue removes and returns the front value.
func (q *Queue) Dequeue() ([]step.Step, int64, error) {
	if len(q.data) == 0 {
		return nil, 0, viz.ErrEmptyStructure
	}

	value := q.data[0]

	steps := []step.Step{step.New("Dequeuing %d from front of queue", value).
		WithHighlights(0).
		WithMeta(step.MetaOp, step.KindDequeue.String()).
		WithMeta(step.MetaValue, strconv.FormatInt(value, 10))}

	q.data = slices.Delete(q.data, 0, 1)

	if len(q.data) > 0 {
		steps = append(steps, step.New("Shifting remaining elements forward").
			WithHighlights(indexRange(0, len(q.data)-1)...))
	}

	steps = append(steps, step.New("Removed %d, queue size now %d", value, len(q.data)))

	return steps, value, nil
}

// Render projects the slots front to back, marking the two end elements.
// A single stored element renders as the front.
func (q *Queue) Render() viz.RenderState {
	elements := make([]viz.Element, len(q.data))
	for idx, value := range q.data {
		element := viz.Element{
			Value: value,
			Label: strconv.FormatInt(value, 10),
			State: viz.StateNormal,
		}

		switch {
		case idx == 0:
			element.Sublabel = "FRONT"
			element.State = viz.StateHighlighted
		case idx == len(q.data)-1:
			element.Sublabel = "BACK"
			element.State = viz.StateActive
		}

		elements[idx] = element
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

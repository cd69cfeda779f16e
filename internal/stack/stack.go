// Package stack implements the step-traced bounded LIFO stack. Push and Pop
// narrate in two steps each; render marks the top slot.
package stack

import (
	"slices"
	"strconv"

	"github.com/Sumatoshi-tech/algotrace/internal/step"
	"github.com/Sumatoshi-tech/algotrace/internal/viz"
)

// DefaultCapacity bounds stacks constructed with a non-positive capacity.
const DefaultCapacity = 16

// Stack is a step-traced LIFO sequence with a fixed capacity. Step and
// render position indices are slot indices counted from the bottom.
type Stack struct {
	data     []int64
	capacity int
}

// New creates an empty stack bounded by capacity. Non-positive capacities
// fall back to DefaultCapacity.
func New(capacity int) *Stack {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	return &Stack{data: make([]int64, 0, capacity), capacity: capacity}
}

// Size reports the number of stored elements.
func (stk *Stack) Size() int {
	return len(stk.data)
}

// Capacity reports the maximum number of elements.
func (stk *Stack) Capacity() int {
	return stk.capacity
}

// IsEmpty reports whether the stack holds no elements.
func (stk *Stack) IsEmpty() bool {
	return len(stk.data) == 0
}

// Peek reports the top value without removing it.
func (stk *Stack) Peek() (int64, error) {
	if len(stk.data) == 0 {
		return 0, viz.ErrEmptyStructure
	}

	return stk.data[len(stk.data)-1], nil
}

// Values returns a copy of the stored elements, bottom first.
func (stk *Stack) Values() []int64 {
	return slices.Clone(stk.data)
}

// Clear removes all elements, keeping the capacity.
func (stk *Stack) Clear() {
	stk.data = stk.data[:0]
}

// Execute implements the structure contract.
func (stk *Stack) Execute(op step.Operation) ([]step.Step, error) {
	switch op.Kind {
	case step.KindPush:
		return stk.Push(op.Value)
	case step.KindPop:
		steps, _, err := stk.Pop()

		return steps, err
	default:
		return nil, viz.Unsupported("stack", op.Kind.String())
	}
}

// Push places value on top of the stack.
func (stk *Stack) Push(value int64) ([]step.Step, error) {
	if len(stk.data) >= stk.capacity {
		return nil, viz.Full(stk.capacity)
	}

	steps := []step.Step{step.New("Pushing %d onto stack", value).
		WithMeta(step.MetaOp, step.KindPush.String()).
		WithMeta(step.MetaValue, strconv.FormatInt(value, 10))}

	stk.data = append(stk.data, value)

	topIndex := len(stk.data) - 1
	steps = append(steps, step.New("%d is now on top of stack", value).
		WithActive(topIndex).
		WithMeta(step.MetaIndex, strconv.Itoa(topIndex)))

	return steps, nil
}

// Pop removes and returns the top value.
func (stk *Stack) Pop() ([]step.Step, int64, error) {
	if len(stk.data) == 0 {
		return nil, 0, viz.ErrEmptyStructure
	}

	topIndex := len(stk.data) - 1
	value := stk.data[topIndex]

	steps := []step.Step{step.New("Popping %d from stack", value).
		WithHighlights(topIndex).
		WithMeta(step.MetaOp, step.KindPop.String()).
		WithMeta(step.MetaValue, strconv.FormatInt(value, 10))}

	stk.data = stk.data[:topIndex]

	steps = append(steps, step.New("Removed %d, stack size now %d", value, len(stk.data)))

	return steps, value, nil
}

// Render projects the slots bottom to top, marking the top element.
func (stk *Stack) Render() viz.RenderState {
	elements := make([]viz.Element, len(stk.data))
	for idx, value := range stk.data {
		element := viz.Element{
			Value: value,
			Label: strconv.FormatInt(value, 10),
			State: viz.StateNormal,
		}

		if idx == len(stk.data)-1 {
			element.Sublabel = "TOP"
			element.State = viz.StateHighlighted
		}

		elements[idx] = element
	}

	return viz.RenderState{Elements: elements}
}

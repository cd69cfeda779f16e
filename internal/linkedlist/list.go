// Package linkedlist implements the step-traced singly linked list. Every
// positional operation narrates the node-by-node walk to its target; render
// connects each node to its successor.
package linkedlist

import (
	"fmt"
	"strconv"

	"github.com/Sumatoshi-tech/algotrace/internal/step"
	"github.com/Sumatoshi-tech/algotrace/internal/viz"
)

type node struct {
	value int64
	next  *node
}

// List is a step-traced singly linked list. Step and render position
// indices are node positions counted from the head.
type List struct {
	head   *node
	length int
}

// New creates an empty list.
func New() *List {
	return &List{}
}

// Size reports the number of stored nodes.
func (list *List) Size() int {
	return list.length
}

// IsEmpty reports whether the list holds no nodes.
func (list *List) IsEmpty() bool {
	return list.length == 0
}

// Get reports the value at index.
func (list *List) Get(index int) (int64, error) {
	if index < 0 || index >= list.length {
		return 0, viz.IndexOutOfBounds(index, list.length)
	}

	current := list.head
	for range index {
		current = current.next
	}

	return current.value, nil
}

// Values returns the stored values, head first.
func (list *List) Values() []int64 {
	values := make([]int64, 0, list.length)
	for current := list.head; current != nil; current = current.next {
		values = append(values, current.value)
	}

	return values
}

// Clear removes all nodes.
func (list *List) Clear() {
	list.head = nil
	list.length = 0
}

// Execute implements the structure contract. Traverse ignores the order
// argument; a list has a single natural order.
func (list *List) Execute(op step.Operation) ([]step.Step, error) {
	switch op.Kind {
	case step.KindInsertAt:
		return list.InsertAt(op.Index, op.Value)
	case step.KindDeleteAt:
		return list.DeleteAt(op.Index)
	case step.KindSearch:
		return list.Search(op.Value), nil
	case step.KindTraverse:
		return list.Traverse(), nil
	default:
		return nil, viz.Unsupported("linked list", op.Kind.String())
	}
}

// InsertAt links a new node at index, walking the list to the insertion
// point. Index may equal the current length to append.
func (list *List) InsertAt(index int, value int64) ([]step.Step, error) {
	if index < 0 || index > list.length {
		return nil, viz.IndexOutOfBounds(index, list.length)
	}

	steps := []step.Step{step.New("Inserting %d at position %d", value, index).
		WithMeta(step.MetaOp, step.KindInsertAt.String()).
		WithMeta(step.MetaValue, strconv.FormatInt(value, 10)).
		WithMeta(step.MetaIndex, strconv.Itoa(index))}

	if index == 0 {
		steps = append(steps, step.New("Inserting at head of list").WithHighlights(0))

		list.head = &node{value: value, next: list.head}
	} else {
		for position := range index {
			steps = append(steps, step.New("Traversing to position %d", position).
				WithHighlights(position))
		}

		current := list.head
		for range index - 1 {
			current = current.next
		}

		current.next = &node{value: value, next: current.next}
	}

	list.length++

	steps = append(steps, step.New("Successfully inserted %d at position %d", value, index).
		WithActive(index))

	return steps, nil
}

// DeleteAt unlinks the node at index, walking the list to its predecessor.
func (list *List) DeleteAt(index int) ([]step.Step, error) {
	if index < 0 || index >= list.length {
		return nil, viz.IndexOutOfBounds(index, list.length)
	}

	value, err := list.Get(index)
	if err != nil {
		return nil, err
	}

	steps := []step.Step{step.New("Deleting node at position %d", index).
		WithHighlights(index).
		WithMeta(step.MetaOp, step.KindDeleteAt.String()).
		WithMeta(step.MetaIndex, strconv.Itoa(index))}

	for position := range index {
		steps = append(steps, step.New("Traversing to position %d", position).
			WithHighlights(position))
	}

	if index == 0 {
		list.head = list.head.next
	} else {
		current := list.head
		for range index - 1 {
			current = current.next
		}

		current.next = current.next.next
	}

	list.length--

	steps = append(steps, step.New("Deleted node with value %d", value))

	return steps, nil
}

// Search walks the list from the head until value is found.
func (list *List) Search(value int64) []step.Step {
	steps := []step.Step{step.New("Searching for value %d", value).
		WithMeta(step.MetaOp, step.KindSearch.String()).
		WithMeta(step.MetaValue, strconv.FormatInt(value, 10))}

	index := 0
	for current := list.head; current != nil; current = current.next {
		steps = append(steps, step.New("Checking node at position %d (value: %d)", index, current.value).
			WithHighlights(index))

		if current.value == value {
			steps = append(steps, step.New("Found %d at position %d", value, index).
				WithActive(index).
				WithMeta(step.MetaFound, "true").
				WithMeta(step.MetaIndex, strconv.Itoa(index)))

			return steps
		}

		index++
	}

	steps = append(steps, step.New("Value %d not found in list", value).
		WithMeta(step.MetaFound, "false"))

	return steps
}

// Traverse visits every node head to tail.
func (list *List) Traverse() []step.Step {
	steps := []step.Step{step.New("Starting list traversal").
		WithMeta(step.MetaOp, step.KindTraverse.String())}

	index := 0
	for current := list.head; current != nil; current = current.next {
		steps = append(steps, step.New("Visiting node %d (value: %d)", index, current.value).
			WithHighlights(index).
			WithMeta(step.MetaIndex, strconv.Itoa(index)).
			WithMeta(step.MetaValue, strconv.FormatInt(current.value, 10)))

		index++
	}

	steps = append(steps, step.New("Traversal complete"))

	return steps
}

// Render projects the nodes head to tail with successor connections.
func (list *List) Render() viz.RenderState {
	elements := make([]viz.Element, 0, list.length)

	index := 0
	for current := list.head; current != nil; current = current.next {
		elements = append(elements, viz.Element{
			Value:    current.value,
			Sublabel: fmt.Sprintf("Node %d", index),
			State:    viz.StateNormal,
		})

		index++
	}

	connections := make([][2]int, 0, max(len(elements)-1, 0))
	for idx := 0; idx+1 < len(elements); idx++ {
		connections = append(connections, [2]int{idx, idx + 1})
	}

	return viz.RenderState{Elements: elements, Connections: connections}
}

// Package bst implements the step-traced binary search tree: unbalanced
// pointer-linked nodes with narrated insertion, search and four traversal
// orders. Deletion is not part of its operation set.
//
// Step position indices use the complete-binary-tree numbering (root 0,
// left child 2i+1, right child 2i+2), so a skewed tree produces sparse,
// fast-growing indices.
package bst

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/Sumatoshi-tech/algotrace/internal/step"
	"github.com/Sumatoshi-tech/algotrace/internal/viz"
)

// renderSlotLimit caps how deep the flat projection reaches. Nodes whose
// complete-binary-tree index falls beyond it are omitted from the drawing.
const renderSlotLimit = 128

type node struct {
	value int64
	left  *node
	right *node
}

// Tree is the step-traced binary search tree. The zero value is an empty
// tree ready for use.
type Tree struct {
	root *node
	size int
}

// New creates an empty tree.
func New() *Tree {
	return &Tree{}
}

// Size reports the number of stored values.
func (tree *Tree) Size() int {
	return tree.size
}

// IsEmpty reports whether the tree holds no values.
func (tree *Tree) IsEmpty() bool {
	return tree.size == 0
}

// Clear removes all values.
func (tree *Tree) Clear() {
	tree.root = nil
	tree.size = 0
}

// Values returns the stored values in ascending order.
func (tree *Tree) Values() []int64 {
	values := make([]int64, 0, tree.size)
	collectValues(tree.root, &values)

	return values
}

func collectValues(n *node, values *[]int64) {
	if n == nil {
		return
	}

	collectValues(n.left, values)
	*values = append(*values, n.value)
	collectValues(n.right, values)
}

// Contains reports whether value is stored, without producing steps.
func (tree *Tree) Contains(value int64) bool {
	current := tree.root
	for current != nil {
		switch {
		case value == current.value:
			return true
		case value < current.value:
			current = current.left
		default:
			current = current.right
		}
	}

	return false
}

// Execute implements the structure contract. Deletion is among the kinds
// the tree rejects.
func (tree *Tree) Execute(op step.Operation) ([]step.Step, error) {
	switch op.Kind {
	case step.KindInsert:
		return tree.Insert(op.Value), nil
	case step.KindSearch:
		steps, _ := tree.Search(op.Value)

		return steps, nil
	case step.KindTraverse:
		return tree.Traverse(op.Order), nil
	default:
		return nil, viz.Unsupported("bst", op.Kind.String())
	}
}

// Insert places value at its ordered position, narrating each comparison
// on the way down. The comparison path accumulates in the highlights so a
// renderer can show the whole probed branch. Duplicates are a traced no-op.
func (tree *Tree) Insert(value int64) []step.Step {
	steps := []step.Step{step.New("Inserting %d into BST", value).
		WithMeta(step.MetaOp, step.KindInsert.String()).
		WithMeta(step.MetaValue, strconv.FormatInt(value, 10))}

	if tree.root == nil {
		tree.root = &node{value: value}
		tree.size++

		steps = append(steps, step.New("Tree is empty, %d becomes root", value).
			WithActive(0))

		return steps
	}

	var path []int

	var parent *node

	index := 0
	current := tree.root
	attachLeft := false

	for current != nil {
		path = append(path, index)

		steps = append(steps, step.New("Comparing %d with %d", value, current.value).
			WithHighlights(slices.Clone(path)...))

		parent = current

		switch {
		case value < current.value:
			current = current.left
			attachLeft = true
			index = index*2 + 1
		case value > current.value:
			current = current.right
			attachLeft = false
			index = index*2 + 2
		default:
			steps = append(steps, step.New("%d already exists in tree", value).
				WithHighlights(slices.Clone(path)...))

			return steps
		}
	}

	if attachLeft {
		parent.left = &node{value: value}
	} else {
		parent.right = &node{value: value}
	}

	tree.size++

	steps = append(steps, step.New("Inserted %d successfully", value).
		WithActive(index))

	return steps
}

// Search walks from the root comparing value at every node. The boolean
// reports whether the value was found; misses are part of the trace, not
// errors.
func (tree *Tree) Search(value int64) ([]step.Step, bool) {
	steps := []step.Step{step.New("Searching for %d in BST", value).
		WithMeta(step.MetaOp, step.KindSearch.String()).
		WithMeta(step.MetaValue, strconv.FormatInt(value, 10))}

	index := 0
	current := tree.root

	for current != nil {
		steps = append(steps, step.New("Checking node with value %d", current.value).
			WithHighlights(index))

		switch {
		case value == current.value:
			steps = append(steps, step.New("Found %d at node", value).
				WithActive(index).
				WithMeta(step.MetaFound, "true").
				WithMeta(step.MetaIndex, strconv.Itoa(index)))

			return steps, true
		case value < current.value:
			current = current.left
			index = index*2 + 1
		default:
			current = current.right
			index = index*2 + 2
		}
	}

	steps = append(steps, step.New("Value %d not found in tree", value).
		WithMeta(step.MetaFound, "false"))

	return steps, false
}

// orderHints spell out the visit sequence in traversal start steps.
var orderHints = map[step.Order]string{
	step.InOrder:    "left, root, right",
	step.PreOrder:   "root, left, right",
	step.PostOrder:  "left, right, root",
	step.LevelOrder: "breadth-first",
}

// Traverse visits every node in the given order, one step per node.
func (tree *Tree) Traverse(order step.Order) []step.Step {
	steps := []step.Step{step.New("Starting %s traversal (%s)", order, orderHints[order]).
		WithMeta(step.MetaOp, step.KindTraverse.String()).
		WithMeta(step.MetaOrder, order.String())}

	switch order {
	case step.PreOrder:
		preorderVisit(tree.root, 0, &steps)
	case step.PostOrder:
		postorderVisit(tree.root, 0, &steps)
	case step.LevelOrder:
		levelorderVisit(tree.root, &steps)
	default:
		inorderVisit(tree.root, 0, &steps)
	}

	steps = append(steps, step.New("%s traversal complete", titleOrder(order)))

	return steps
}

func visitStep(n *node, index int) step.Step {
	return step.New("Visiting node %d", n.value).
		WithHighlights(index).
		WithMeta(step.MetaValue, strconv.FormatInt(n.value, 10)).
		WithMeta(step.MetaIndex, strconv.Itoa(index))
}

func inorderVisit(n *node, index int, steps *[]step.Step) {
	if n == nil {
		return
	}

	inorderVisit(n.left, index*2+1, steps)
	*steps = append(*steps, visitStep(n, index))
	inorderVisit(n.right, index*2+2, steps)
}

func preorderVisit(n *node, index int, steps *[]step.Step) {
	if n == nil {
		return
	}

	*steps = append(*steps, visitStep(n, index))
	preorderVisit(n.left, index*2+1, steps)
	preorderVisit(n.right, index*2+2, steps)
}

func postorderVisit(n *node, index int, steps *[]step.Step) {
	if n == nil {
		return
	}

	postorderVisit(n.left, index*2+1, steps)
	postorderVisit(n.right, index*2+2, steps)
	*steps = append(*steps, visitStep(n, index))
}

func levelorderVisit(root *node, steps *[]step.Step) {
	if root == nil {
		return
	}

	type queued struct {
		n     *node
		index int
	}

	pending := []queued{{n: root, index: 0}}

	for len(pending) > 0 {
		item := pending[0]
		pending = pending[1:]

		*steps = append(*steps, visitStep(item.n, item.index))

		if item.n.left != nil {
			pending = append(pending, queued{n: item.n.left, index: item.index*2 + 1})
		}

		if item.n.right != nil {
			pending = append(pending, queued{n: item.n.right, index: item.index*2 + 2})
		}
	}
}

// titleOrder capitalizes the order name for completion steps.
func titleOrder(order step.Order) string {
	name := order.String()

	return strings.ToUpper(name[:1]) + name[1:]
}

// Render projects the tree into a flat complete-binary-tree snapshot with
// vacant positions padded so indices line up, and parent-to-child edges.
func (tree *Tree) Render() viz.RenderState {
	type slot struct {
		value    int64
		occupied bool
	}

	slots := make([]slot, renderSlotLimit)
	fillSlots(tree.root, 0, func(index int, value int64) {
		slots[index] = slot{value: value, occupied: true}
	})

	var state viz.RenderState

	for index, sl := range slots {
		if !sl.occupied {
			continue
		}

		for len(state.Elements) <= index {
			state.Elements = append(state.Elements, viz.Element{})
		}

		state.Elements[index] = viz.Element{
			Value:    sl.value,
			Label:    strconv.FormatInt(sl.value, 10),
			Sublabel: fmt.Sprintf("Node %d", index),
			State:    viz.StateNormal,
		}

		left := index*2 + 1
		if left < renderSlotLimit && slots[left].occupied {
			state.Connections = append(state.Connections, [2]int{index, left})
		}

		right := index*2 + 2
		if right < renderSlotLimit && slots[right].occupied {
			state.Connections = append(state.Connections, [2]int{index, right})
		}
	}

	return state
}

func fillSlots(n *node, index int, visit func(int, int64)) {
	if n == nil || index >= renderSlotLimit {
		return
	}

	visit(index, n.value)
	fillSlots(n.left, index*2+1, visit)
	fillSlots(n.right, index*2+2, visit)
}

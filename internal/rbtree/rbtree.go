// Package rbtree implements the red-black tree trace engine: an arena-backed
// tree whose insert, delete, search and traversal operations narrate every
// comparison, recolor and rotation as discrete steps.
//
// Nodes live in an Arena owned exclusively by the tree and are addressed by
// uint32 handles; handle 0 is the nil sentinel. Step position indices use the
// complete-binary-tree numbering (root 0, left child 2i+1, right child 2i+2).
package rbtree

import (
	"strconv"

	"github.com/Sumatoshi-tech/algotrace/internal/step"
	"github.com/Sumatoshi-tech/algotrace/internal/viz"
)

// fixupIterationLimit bounds the insert and delete fixup loops. A correct
// tree restores its properties in O(log n) iterations; hitting the limit
// means corrupted state, not a long input.
const fixupIterationLimit = 100

// Tree is the step-traced red-black tree. The zero value is not usable;
// construct with New.
type Tree struct {
	arena *Arena
	root  uint32
	size  int
}

// New creates an empty tree backed by its own arena.
func New() *Tree {
	return &Tree{arena: NewArena(), root: nilHandle, size: 0}
}

// Size reports the number of stored values.
func (tree *Tree) Size() int {
	return tree.size
}

// IsEmpty reports whether the tree holds no values.
func (tree *Tree) IsEmpty() bool {
	return tree.size == 0
}

// Clear removes all values, returning every node slot to the arena.
func (tree *Tree) Clear() {
	handles := make([]uint32, 0, tree.size)
	tree.collectHandles(tree.root, &handles)

	for _, handle := range handles {
		tree.arena.free(handle)
	}

	tree.root = nilHandle
	tree.size = 0
}

// Hibernate parks the tree's arena in lz4-compressed form. Every operation
// except Boot errors until the tree is booted again.
func (tree *Tree) Hibernate() {
	tree.arena.Hibernate()
}

// Boot restores a hibernated tree.
func (tree *Tree) Boot() {
	tree.arena.Boot()
}

// Hibernated reports whether the tree is parked.
func (tree *Tree) Hibernated() bool {
	return tree.arena.Hibernated()
}

// Arena exposes the backing arena for memory accounting.
func (tree *Tree) Arena() *Arena {
	return tree.arena
}

// Values returns the stored values in ascending order.
func (tree *Tree) Values() []int64 {
	values := make([]int64, 0, tree.size)
	tree.collectValues(tree.root, &values)

	return values
}

// Execute implements the structure contract, dispatching generic operations
// onto the step-traced tree methods.
func (tree *Tree) Execute(op step.Operation) ([]step.Step, error) {
	if tree.Hibernated() {
		return nil, viz.InvalidState("tree is hibernated")
	}

	switch op.Kind {
	case step.KindInsert:
		return tree.Insert(op.Value)
	case step.KindDelete:
		steps, _, err := tree.Delete(op.Value)

		return steps, err
	case step.KindSearch:
		steps, _ := tree.Search(op.Value)

		return steps, nil
	case step.KindTraverse:
		return tree.Traverse(op.Order), nil
	default:
		return nil, viz.Unsupported("rbtree", op.Kind.String())
	}
}

func (tree *Tree) nodes() []node {
	return tree.arena.storage
}

// colorOf treats vacant subtrees as black.
func (tree *Tree) colorOf(handle uint32) bool {
	if handle == nilHandle {
		return black
	}

	return tree.nodes()[handle].color
}

func (tree *Tree) childOf(handle uint32, leftSide bool) uint32 {
	if leftSide {
		return tree.nodes()[handle].left
	}

	return tree.nodes()[handle].right
}

func (tree *Tree) setChild(handle uint32, leftSide bool, child uint32) {
	if handle == nilHandle {
		tree.root = child

		return
	}

	if leftSide {
		tree.nodes()[handle].left = child
	} else {
		tree.nodes()[handle].right = child
	}
}

func (tree *Tree) isLeftChild(handle uint32) bool {
	nodes := tree.nodes()

	return nodes[nodes[handle].parent].left == handle
}

// findHandle descends from the root to the node holding value.
func (tree *Tree) findHandle(value int64) uint32 {
	nodes := tree.nodes()
	cursor := tree.root

	for cursor != nilHandle {
		current := nodes[cursor]

		switch {
		case value == current.value:
			return cursor
		case value < current.value:
			cursor = current.left
		default:
			cursor = current.right
		}
	}

	return nilHandle
}

// minimum returns the leftmost handle of the subtree.
func (tree *Tree) minimum(handle uint32) uint32 {
	nodes := tree.nodes()

	for nodes[handle].left != nilHandle {
		handle = nodes[handle].left
	}

	return handle
}

// indexOf computes the complete-binary-tree position of a reachable node by
// walking from the root. Detached handles map to 0.
func (tree *Tree) indexOf(handle uint32) int {
	nodes := tree.nodes()
	target := nodes[handle].value
	cursor := tree.root
	index := 0

	for cursor != nilHandle {
		if cursor == handle {
			return index
		}

		if target < nodes[cursor].value {
			cursor = nodes[cursor].left
			index = index*2 + 1
		} else {
			cursor = nodes[cursor].right
			index = index*2 + 2
		}
	}

	return 0
}

func (tree *Tree) collectValues(handle uint32, values *[]int64) {
	if handle == nilHandle {
		return
	}

	nodes := tree.nodes()
	tree.collectValues(nodes[handle].left, values)
	*values = append(*values, nodes[handle].value)
	tree.collectValues(nodes[handle].right, values)
}

func (tree *Tree) collectHandles(handle uint32, handles *[]uint32) {
	if handle == nilHandle {
		return
	}

	nodes := tree.nodes()
	tree.collectHandles(nodes[handle].left, handles)
	*handles = append(*handles, handle)
	tree.collectHandles(nodes[handle].right, handles)
}

// colorWord renders a color for step narration.
func colorWord(color bool) string {
	if color == red {
		return "RED"
	}

	return "BLACK"
}

// colorTag renders a color for step metadata and render sublabels.
func colorTag(color bool) string {
	if color == red {
		return "red"
	}

	return "black"
}

func formatValue(value int64) string {
	return strconv.FormatInt(value, 10)
}

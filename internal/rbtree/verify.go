package rbtree

import (
	"fmt"

	"github.com/Sumatoshi-tech/algotrace/internal/viz"
)

// Verify checks the red-black properties, the arena back-references and the
// search-order property, returning an InvalidState error naming the first
// violation. It is the safety net behind the randomized tests and the replay
// verifier; a healthy tree always passes.
func (tree *Tree) Verify() error {
	if tree.Hibernated() {
		return viz.InvalidState("tree is hibernated")
	}

	if tree.root != nilHandle {
		if tree.nodes()[tree.root].color == red {
			return viz.InvalidState("root is red")
		}

		if tree.nodes()[tree.root].parent != nilHandle {
			return viz.InvalidState("root has a parent link")
		}
	}

	if _, err := tree.verifySubtree(tree.root); err != nil {
		return err
	}

	values := tree.Values()
	for i := 1; i < len(values); i++ {
		if values[i] <= values[i-1] {
			return viz.InvalidState(fmt.Sprintf("in-order values not strictly increasing at %d", values[i]))
		}
	}

	if len(values) != tree.size {
		return viz.InvalidState(fmt.Sprintf("size %d disagrees with %d reachable nodes", tree.size, len(values)))
	}

	return nil
}

// verifySubtree returns the black-height of the subtree, counting vacant
// positions as one black level.
func (tree *Tree) verifySubtree(handle uint32) (int, error) {
	if handle == nilHandle {
		return 1, nil
	}

	nodes := tree.nodes()
	current := nodes[handle]

	for _, child := range []uint32{current.left, current.right} {
		if child == nilHandle {
			continue
		}

		if nodes[child].parent != handle {
			return 0, viz.InvalidState(fmt.Sprintf("node %d has a stale parent link", nodes[child].value))
		}

		if current.color == red && nodes[child].color == red {
			return 0, viz.InvalidState(fmt.Sprintf("red node %d has red child %d", current.value, nodes[child].value))
		}
	}

	leftHeight, err := tree.verifySubtree(current.left)
	if err != nil {
		return 0, err
	}

	rightHeight, err := tree.verifySubtree(current.right)
	if err != nil {
		return 0, err
	}

	if leftHeight != rightHeight {
		return 0, viz.InvalidState(fmt.Sprintf("black-height mismatch under node %d", current.value))
	}

	height := leftHeight
	if current.color == black {
		height++
	}

	return height, nil
}

package rbtree

// rotate performs a tree rotation around pivot. leftward=true promotes the
// right child (left rotation), leftward=false the left child.
//
// Left rotation:
//
//	  X              Y
//	A   Y    =>    X   C
//	  B C        A B
//
// Right rotation:
//
//	    Y            X
//	  X   C  =>    A   Y
//	A B              B C
//
// Rotation only rewires handles; it carries no recoloring logic.
//
//nolint:dupword // ASCII art diagrams contain intentional repeated letters.
func (tree *Tree) rotate(pivot uint32, leftward bool) {
	nodes := tree.nodes()

	child := tree.childOf(pivot, !leftward)
	if child == nilHandle {
		return
	}

	// Move the inner subtree across the pivot.
	inner := tree.childOf(child, leftward)
	tree.setChild(pivot, !leftward, inner)

	if inner != nilHandle {
		nodes[inner].parent = pivot
	}

	// Promote the child into the pivot's place.
	nodes[child].parent = nodes[pivot].parent

	switch {
	case nodes[pivot].parent == nilHandle:
		tree.root = child
	case tree.isLeftChild(pivot):
		nodes[nodes[pivot].parent].left = child
	default:
		nodes[nodes[pivot].parent].right = child
	}

	// Complete the rotation.
	tree.setChild(child, leftward, pivot)
	nodes[pivot].parent = child
}

// transplant replaces oldNode's position under its parent (or the root slot)
// with newNode and fixes newNode's parent back-reference. Children are left
// untouched; callers rewire them.
func (tree *Tree) transplant(oldNode, newNode uint32) {
	nodes := tree.nodes()
	parent := nodes[oldNode].parent

	switch {
	case parent == nilHandle:
		tree.root = newNode
	case nodes[parent].left == oldNode:
		nodes[parent].left = newNode
	default:
		nodes[parent].right = newNode
	}

	if newNode != nilHandle {
		nodes[newNode].parent = parent
	}
}

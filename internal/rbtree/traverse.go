package rbtree

import (
	"strconv"
	"strings"

	"github.com/Sumatoshi-tech/algotrace/internal/step"
)

// Traverse visits every node in the requested order, one step per visit
// carrying the node's value, color and position index.
func (tree *Tree) Traverse(order step.Order) []step.Step {
	steps := []step.Step{
		step.New("Starting %s traversal of Red-Black Tree", order).
			WithMeta(step.MetaOp, "traverse").
			WithMeta(step.MetaOrder, order.String()),
	}

	switch order {
	case step.PreOrder:
		tree.preorderSteps(tree.root, 0, &steps)
	case step.PostOrder:
		tree.postorderSteps(tree.root, 0, &steps)
	case step.LevelOrder:
		tree.levelOrderSteps(&steps)
	default:
		tree.inorderSteps(tree.root, 0, &steps)
	}

	steps = append(steps, step.New("%s traversal complete", titleOrder(order)))

	return steps
}

func (tree *Tree) visitStep(handle uint32, index int) step.Step {
	current := tree.nodes()[handle]

	return step.New("Visiting %s node with value %d", colorWord(current.color), current.value).
		WithHighlights(index).
		WithMeta(step.MetaValue, formatValue(current.value)).
		WithMeta(step.MetaColor, colorTag(current.color)).
		WithMeta(step.MetaIndex, strconv.Itoa(index))
}

func (tree *Tree) inorderSteps(handle uint32, index int, steps *[]step.Step) {
	if handle == nilHandle {
		return
	}

	current := tree.nodes()[handle]
	tree.inorderSteps(current.left, index*2+1, steps)
	*steps = append(*steps, tree.visitStep(handle, index))
	tree.inorderSteps(current.right, index*2+2, steps)
}

func (tree *Tree) preorderSteps(handle uint32, index int, steps *[]step.Step) {
	if handle == nilHandle {
		return
	}

	current := tree.nodes()[handle]
	*steps = append(*steps, tree.visitStep(handle, index))
	tree.preorderSteps(current.left, index*2+1, steps)
	tree.preorderSteps(current.right, index*2+2, steps)
}

func (tree *Tree) postorderSteps(handle uint32, index int, steps *[]step.Step) {
	if handle == nilHandle {
		return
	}

	current := tree.nodes()[handle]
	tree.postorderSteps(current.left, index*2+1, steps)
	tree.postorderSteps(current.right, index*2+2, steps)
	*steps = append(*steps, tree.visitStep(handle, index))
}

func (tree *Tree) levelOrderSteps(steps *[]step.Step) {
	if tree.root == nilHandle {
		return
	}

	type queued struct {
		handle uint32
		index  int
	}

	nodes := tree.nodes()
	queue := []queued{{handle: tree.root, index: 0}}

	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]

		*steps = append(*steps, tree.visitStep(next.handle, next.index))

		if left := nodes[next.handle].left; left != nilHandle {
			queue = append(queue, queued{handle: left, index: next.index*2 + 1})
		}

		if right := nodes[next.handle].right; right != nilHandle {
			queue = append(queue, queued{handle: right, index: next.index*2 + 2})
		}
	}
}

// titleOrder capitalizes an order name for completion narration.
func titleOrder(order step.Order) string {
	name := order.String()

	return strings.ToUpper(name[:1]) + name[1:]
}

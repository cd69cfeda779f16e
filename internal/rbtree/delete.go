package rbtree

import (
	"strconv"

	"github.com/Sumatoshi-tech/algotrace/internal/step"
	"github.com/Sumatoshi-tech/algotrace/internal/viz"
)

// Delete removes value from the tree. The boolean reports whether the value
// was present; a miss is narrated in the trace, never an error.
func (tree *Tree) Delete(value int64) ([]step.Step, bool, error) {
	steps := []step.Step{
		step.New("Deleting %d from Red-Black Tree", value).
			WithMeta(step.MetaOp, "delete").
			WithMeta(step.MetaValue, formatValue(value)),
	}

	target := tree.findHandle(value)
	if target == nilHandle {
		steps = append(steps, step.New("Value %d not found in tree", value).
			WithMeta(step.MetaFound, "false"))

		return steps, false, nil
	}

	steps = append(steps, step.New("Found %d in the tree", value).
		WithHighlights(tree.indexOf(target)).
		WithMeta(step.MetaFound, "true").
		WithMeta(step.MetaIndex, strconv.Itoa(tree.indexOf(target))))

	removalSteps, err := tree.deleteNode(target)
	steps = append(steps, removalSteps...)
	tree.size--

	if err != nil {
		return steps, true, err
	}

	steps = append(steps, step.New("Deletion of %d complete", value))

	return steps, true, nil
}

// deleteNode splices target out of the tree. A node with two children is
// replaced by its in-order successor; the successor's original color decides
// whether the black-depth fixup runs afterwards.
func (tree *Tree) deleteNode(target uint32) ([]step.Step, error) {
	var steps []step.Step

	nodes := tree.nodes()
	targetIndex := tree.indexOf(target)
	targetValue := nodes[target].value

	splicedColor := nodes[target].color
	hasLeft := nodes[target].left != nilHandle
	hasRight := nodes[target].right != nilHandle

	var fixupAt, fixupParent uint32

	switch {
	case !hasLeft && !hasRight:
		steps = append(steps, step.New("Node %d is a leaf, removing it directly", targetValue).
			WithActive(targetIndex).
			WithMeta(step.MetaCase, "no_children"))

		fixupAt, fixupParent = nilHandle, nodes[target].parent
		tree.transplant(target, nilHandle)
	case !hasLeft:
		replacement := nodes[target].right

		steps = append(steps, step.New("Node %d has only right child %d, replacing with right child",
			targetValue, nodes[replacement].value).
			WithActive(targetIndex).
			WithMeta(step.MetaCase, "only_right_child"))

		fixupAt, fixupParent = replacement, nodes[target].parent
		tree.transplant(target, replacement)
	case !hasRight:
		replacement := nodes[target].left

		steps = append(steps, step.New("Node %d has only left child %d, replacing with left child",
			targetValue, nodes[replacement].value).
			WithActive(targetIndex).
			WithMeta(step.MetaCase, "only_left_child"))

		fixupAt, fixupParent = replacement, nodes[target].parent
		tree.transplant(target, replacement)
	default:
		successor := tree.minimum(nodes[target].right)
		successorValue := nodes[successor].value
		splicedColor = nodes[successor].color

		steps = append(steps, step.New("Node %d has two children, finding successor %d",
			targetValue, successorValue).
			WithHighlights(tree.indexOf(successor)).
			WithActive(targetIndex).
			WithMeta(step.MetaCase, "two_children").
			WithMeta(step.MetaSuccessor, formatValue(successorValue)))

		fixupAt = nodes[successor].right

		if nodes[successor].parent == target {
			// The successor is the target's direct right child; the fixup
			// position hangs off the successor itself.
			fixupParent = successor
		} else {
			fixupParent = nodes[successor].parent
			tree.transplant(successor, fixupAt)
			nodes[successor].right = nodes[target].right
			nodes[nodes[successor].right].parent = successor
		}

		tree.transplant(target, successor)
		nodes[successor].left = nodes[target].left
		nodes[nodes[successor].left].parent = successor
		nodes[successor].color = nodes[target].color

		steps = append(steps, step.New("Replaced %d with successor %d", targetValue, successorValue).
			WithActive(tree.indexOf(successor)).
			WithMeta(step.MetaSuccessor, formatValue(successorValue)))
	}

	tree.arena.free(target)

	if splicedColor == black {
		steps = append(steps, step.New("A BLACK node was removed, fixing Red-Black properties").
			WithMeta(step.MetaFixup, "needed").
			WithMeta(step.MetaColor, "black"))

		fixupSteps, err := tree.deleteFixup(fixupAt, fixupParent)
		steps = append(steps, fixupSteps...)

		if err != nil {
			return steps, err
		}
	} else {
		steps = append(steps, step.New("A RED node was removed, no fixup needed").
			WithMeta(step.MetaFixup, "skipped").
			WithMeta(step.MetaColor, "red"))
	}

	return steps, nil
}

// deleteFixup rebalances after a black node left the tree. The cursor starts
// at the spliced node's replacement, which may be the phantom nil position
// tracked through its would-be parent, and climbs until the missing black
// depth is absorbed.
func (tree *Tree) deleteFixup(cursor, parent uint32) ([]step.Step, error) {
	var steps []step.Step

	nodes := tree.nodes()

	for iteration := 1; ; iteration++ {
		if cursor == tree.root || tree.colorOf(cursor) == red {
			break
		}

		if parent == nilHandle {
			break
		}

		if iteration > fixupIterationLimit {
			return steps, viz.InvalidState("delete fixup exceeded the iteration limit")
		}

		cursorIsLeft := nodes[parent].left == cursor
		sibling := tree.childOf(parent, !cursorIsLeft)

		if sibling != nilHandle && nodes[sibling].color == red {
			steps = append(steps, step.New("Case 1: Sibling %d is RED, recoloring and rotating",
				nodes[sibling].value).
				WithHighlights(tree.indexOf(sibling)).
				WithMeta(step.MetaCase, "sibling_red"))

			nodes[sibling].color = black
			nodes[parent].color = red
			tree.rotate(parent, cursorIsLeft)
			sibling = tree.childOf(parent, !cursorIsLeft)
		}

		if sibling == nilHandle {
			break
		}

		nearChild := tree.childOf(sibling, cursorIsLeft)
		farChild := tree.childOf(sibling, !cursorIsLeft)

		if tree.colorOf(nearChild) == black && tree.colorOf(farChild) == black {
			steps = append(steps, step.New("Case 2: Sibling's children are BLACK, recoloring sibling to RED").
				WithHighlights(tree.indexOf(sibling)).
				WithMeta(step.MetaCase, "both_children_black"))

			nodes[sibling].color = red
			cursor = parent
			parent = nodes[cursor].parent

			continue
		}

		if tree.colorOf(farChild) == black {
			steps = append(steps, step.New("Case 3: Sibling's %s child BLACK, %s RED - rotating",
				sideWord(!cursorIsLeft), sideWord(cursorIsLeft)).
				WithHighlights(tree.indexOf(sibling)).
				WithMeta(step.MetaCase, "triangle"))

			nodes[nearChild].color = black
			nodes[sibling].color = red
			tree.rotate(sibling, !cursorIsLeft)
			sibling = tree.childOf(parent, !cursorIsLeft)
			farChild = tree.childOf(sibling, !cursorIsLeft)
		}

		steps = append(steps, step.New("Case 4: Sibling's %s child is RED, final rotation",
			sideWord(!cursorIsLeft)).
			WithMeta(step.MetaCase, "line"))

		if sibling != nilHandle {
			nodes[sibling].color = nodes[parent].color
			nodes[parent].color = black

			if farChild != nilHandle {
				nodes[farChild].color = black
			}

			tree.rotate(parent, cursorIsLeft)
		}

		cursor = tree.root

		break
	}

	if cursor != nilHandle {
		nodes[cursor].color = black
	}

	steps = append(steps, step.New("Delete fixup complete, Red-Black properties restored").
		WithMeta(step.MetaFixup, "complete"))

	return steps, nil
}

func sideWord(leftSide bool) string {
	if leftSide {
		return "left"
	}

	return "right"
}

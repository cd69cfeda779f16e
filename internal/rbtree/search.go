package rbtree

import (
	"strconv"

	"github.com/Sumatoshi-tech/algotrace/internal/step"
)

// Search walks from the root toward value, one step per visited node, and
// reports whether the value is present. A miss terminates on a vacant
// subtree and is narrated, never an error.
func (tree *Tree) Search(value int64) ([]step.Step, bool) {
	steps := []step.Step{
		step.New("Searching for %d in Red-Black Tree", value).
			WithMeta(step.MetaOp, "search").
			WithMeta(step.MetaValue, formatValue(value)),
	}

	nodes := tree.nodes()
	cursor := tree.root
	index := 0

	for cursor != nilHandle {
		current := nodes[cursor]

		steps = append(steps, step.New("Checking %s node with value %d",
			colorWord(current.color), current.value).
			WithHighlights(index).
			WithMeta(step.MetaColor, colorTag(current.color)))

		switch {
		case value == current.value:
			steps = append(steps, step.New("Found %d at node", value).
				WithActive(index).
				WithMeta(step.MetaFound, "true").
				WithMeta(step.MetaIndex, strconv.Itoa(index)))

			return steps, true
		case value < current.value:
			cursor = current.left
			index = index*2 + 1
		default:
			cursor = current.right
			index = index*2 + 2
		}
	}

	steps = append(steps, step.New("Value %d not found in tree", value).
		WithMeta(step.MetaFound, "false"))

	return steps, false
}

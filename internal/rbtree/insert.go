package rbtree

import (
	"slices"
	"strconv"

	"github.com/Sumatoshi-tech/algotrace/internal/step"
	"github.com/Sumatoshi-tech/algotrace/internal/viz"
)

// Insert adds value to the tree, narrating the descent, the attachment and
// every fixup case. Inserting a value that already exists is a no-op that
// still produces the comparison steps and a duplicate notice.
func (tree *Tree) Insert(value int64) ([]step.Step, error) {
	steps := []step.Step{
		step.New("Inserting %d into Red-Black Tree", value).
			WithMeta(step.MetaOp, "insert").
			WithMeta(step.MetaValue, formatValue(value)),
	}

	if tree.root == nilHandle {
		handle := tree.arena.malloc()
		nodes := tree.nodes()
		nodes[handle].value = value
		nodes[handle].color = black
		tree.root = handle
		tree.size++

		steps = append(steps, step.New("Tree is empty, %d becomes BLACK root", value).
			WithActive(0).
			WithMeta(step.MetaColor, "black"))

		return steps, nil
	}

	nodes := tree.nodes()
	cursor := tree.root
	parent := nilHandle
	index := 0
	path := []int{}

	for cursor != nilHandle {
		path = append(path, index)
		current := nodes[cursor]

		steps = append(steps, step.New("Comparing %d with %d (%s node)",
			value, current.value, colorWord(current.color)).
			WithHighlights(slices.Clone(path)...).
			WithMeta(step.MetaColor, colorTag(current.color)))

		parent = cursor

		switch {
		case value < current.value:
			cursor = current.left
			index = index*2 + 1
		case value > current.value:
			cursor = current.right
			index = index*2 + 2
		default:
			steps = append(steps, step.New("%d already exists in tree (no duplicates allowed)", value).
				WithHighlights(slices.Clone(path)...).
				WithMeta(step.MetaFound, "true"))

			return steps, nil
		}
	}

	handle := tree.arena.malloc()
	nodes = tree.nodes()
	nodes[handle].value = value
	nodes[handle].parent = parent
	tree.setChild(parent, value < nodes[parent].value, handle)
	tree.size++

	steps = append(steps, step.New("Inserted %d as RED node", value).
		WithActive(index).
		WithMeta(step.MetaColor, "red").
		WithMeta(step.MetaIndex, strconv.Itoa(index)))

	fixupSteps, err := tree.insertFixup(handle)
	steps = append(steps, fixupSteps...)

	if err != nil {
		return steps, err
	}

	steps = append(steps, step.New("Red-Black Tree properties restored").
		WithMeta(step.MetaFixup, "complete"))

	return steps, nil
}

// insertFixup restores the red-black properties after attaching a red leaf.
// The loop climbs while the parent is red, resolving one of three cases per
// iteration: a red uncle recolors and climbs, a triangle rotates the parent
// into a line, a line recolors and rotates the grandparent.
func (tree *Tree) insertFixup(handle uint32) ([]step.Step, error) {
	var steps []step.Step

	nodes := tree.nodes()
	cursor := handle

	for iteration := 1; ; iteration++ {
		parent := nodes[cursor].parent
		if parent == nilHandle || nodes[parent].color == black {
			steps = append(steps, step.New("Parent is BLACK or root reached - fixup complete"))

			break
		}

		grandparent := nodes[parent].parent
		if grandparent == nilHandle {
			break
		}

		if iteration > fixupIterationLimit {
			tree.forceRootBlack(&steps)

			return steps, viz.InvalidState("insert fixup exceeded the iteration limit")
		}

		parentIsLeft := nodes[grandparent].left == parent
		uncle := tree.childOf(grandparent, !parentIsLeft)

		steps = append(steps, tree.fixupContextStep(cursor, parent, grandparent, uncle))

		if tree.colorOf(uncle) == red {
			steps = append(steps, step.New("Case 1: Uncle is RED - recoloring parent and uncle to BLACK, grandparent to RED").
				WithHighlights(tree.indexOf(parent), tree.indexOf(grandparent), tree.indexOf(uncle)).
				WithMeta(step.MetaCase, "uncle_red"))

			nodes[parent].color = black
			nodes[uncle].color = black
			nodes[grandparent].color = red
			cursor = grandparent

			continue
		}

		if tree.childOf(parent, !parentIsLeft) == cursor {
			direction := "Right"
			if parentIsLeft {
				direction = "Left"
			}

			steps = append(steps, step.New("Case 2: Triangle configuration - %s rotate at parent (%d)",
				direction, nodes[parent].value).
				WithHighlights(tree.indexOf(cursor), tree.indexOf(parent)).
				WithMeta(step.MetaCase, "triangle"))

			cursor = parent
			tree.rotate(cursor, parentIsLeft)
		}

		parent = nodes[cursor].parent
		grandparent = nodes[parent].parent

		direction := "left"
		if parentIsLeft {
			direction = "right"
		}

		steps = append(steps, step.New("Case 3: Line configuration - recoloring parent to BLACK, grandparent to RED, then %s rotate at grandparent (%d)",
			direction, nodes[grandparent].value).
			WithHighlights(tree.indexOf(parent), tree.indexOf(grandparent)).
			WithMeta(step.MetaCase, "line"))

		nodes[parent].color = black
		nodes[grandparent].color = red
		tree.rotate(grandparent, !parentIsLeft)

		break
	}

	tree.forceRootBlack(&steps)

	return steps, nil
}

// fixupContextStep snapshots the family around the violating node before a
// fixup case is applied.
func (tree *Tree) fixupContextStep(cursor, parent, grandparent, uncle uint32) step.Step {
	nodes := tree.nodes()

	uncleValue := "NIL"
	highlights := []int{tree.indexOf(cursor), tree.indexOf(parent), tree.indexOf(grandparent)}

	if uncle != nilHandle {
		uncleValue = formatValue(nodes[uncle].value)
		highlights = append(highlights, tree.indexOf(uncle))
	}

	return step.New("Current node: %d (RED), Parent: %d (RED), Grandparent: %d (%s), Uncle: %s (%s)",
		nodes[cursor].value,
		nodes[parent].value,
		nodes[grandparent].value, colorWord(nodes[grandparent].color),
		uncleValue, colorWord(tree.colorOf(uncle))).
		WithHighlights(highlights...)
}

// forceRootBlack recolors a red root and narrates the recolor.
func (tree *Tree) forceRootBlack(steps *[]step.Step) {
	if tree.root == nilHandle || tree.nodes()[tree.root].color == black {
		return
	}

	*steps = append(*steps, step.New("Forcing root to BLACK (RB property)").
		WithHighlights(0).
		WithMeta(step.MetaColor, "black"))

	tree.nodes()[tree.root].color = black
}

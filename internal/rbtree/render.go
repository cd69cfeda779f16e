package rbtree

import (
	"github.com/Sumatoshi-tech/algotrace/internal/viz"
)

// renderSlotLimit caps how deep the flat projection reaches. Nodes whose
// complete-binary-tree index falls beyond it are omitted from the drawing.
const renderSlotLimit = 128

// Render projects the tree into a flat complete-binary-tree snapshot: one
// element per node with its color tag, vacant positions padded so indices
// line up, and parent-to-child edges. Red nodes project as Comparing so
// renderers can tint them without knowing tree rules.
func (tree *Tree) Render() viz.RenderState {
	type slot struct {
		value    int64
		color    bool
		occupied bool
	}

	slots := make([]slot, renderSlotLimit)
	tree.fillSlots(tree.root, 0, func(index int, value int64, color bool) {
		slots[index] = slot{value: value, color: color, occupied: true}
	})

	var state viz.RenderState

	for index, sl := range slots {
		if !sl.occupied {
			continue
		}

		for len(state.Elements) <= index {
			state.Elements = append(state.Elements, viz.Element{})
		}

		elementState := viz.StateNormal
		if sl.color == red {
			elementState = viz.StateComparing
		}

		state.Elements[index] = viz.Element{
			Value:    sl.value,
			Label:    formatValue(sl.value),
			Sublabel: colorMark(sl.color),
			State:    elementState,
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

func (tree *Tree) fillSlots(handle uint32, index int, visit func(int, int64, bool)) {
	if handle == nilHandle || index >= renderSlotLimit {
		return
	}

	current := tree.nodes()[handle]
	visit(index, current.value, current.color)
	tree.fillSlots(current.left, index*2+1, visit)
	tree.fillSlots(current.right, index*2+2, visit)
}

// colorMark is the single-letter color tag used in render sublabels.
func colorMark(color bool) string {
	if color == red {
		return "R"
	}

	return "B"
}

// Package catalog assembles the full set of instrumented structures into a
// registry and describes the operations each one supports.
package catalog

import (
	"slices"
	"sort"

	"github.com/Sumatoshi-tech/algotrace/internal/array"
	"github.com/Sumatoshi-tech/algotrace/internal/bst"
	"github.com/Sumatoshi-tech/algotrace/internal/linkedlist"
	"github.com/Sumatoshi-tech/algotrace/internal/queue"
	"github.com/Sumatoshi-tech/algotrace/internal/rbtree"
	"github.com/Sumatoshi-tech/algotrace/internal/stack"
	"github.com/Sumatoshi-tech/algotrace/internal/step"
	"github.com/Sumatoshi-tech/algotrace/internal/viz"
)

// Registered structure names.
const (
	Array      = "array"
	BST        = "bst"
	LinkedList = "linkedlist"
	Queue      = "queue"
	RBTree     = "rbtree"
	Stack      = "stack"
)

// operationsByName lists the operation kinds each structure accepts. Kinds
// outside a structure's list are rejected by its Execute with a
// visualization error.
var operationsByName = map[string][]step.Kind{
	Array: {
		step.KindInsertAt, step.KindDeleteAt, step.KindUpdate, step.KindSearch,
		step.KindBinarySearch, step.KindBubbleSort, step.KindInsertionSort,
		step.KindSelectionSort, step.KindMergeSort, step.KindQuickSort,
	},
	BST:        {step.KindInsert, step.KindSearch, step.KindTraverse},
	LinkedList: {step.KindInsertAt, step.KindDeleteAt, step.KindSearch, step.KindTraverse},
	Queue:      {step.KindEnqueue, step.KindDequeue},
	RBTree:     {step.KindInsert, step.KindDelete, step.KindSearch, step.KindTraverse},
	Stack:      {step.KindPush, step.KindPop},
}

// NewRegistry builds a registry containing every structure. Capacity bounds
// the array, stack and queue; the tree and list structures ignore it.
func NewRegistry(capacity int) *viz.Registry {
	registry := viz.NewRegistry()

	factories := map[string]viz.Factory{
		Array:      func() viz.Visualizable { return array.New(capacity) },
		BST:        func() viz.Visualizable { return bst.New() },
		LinkedList: func() viz.Visualizable { return linkedlist.New() },
		Queue:      func() viz.Visualizable { return queue.New(capacity) },
		RBTree:     func() viz.Visualizable { return rbtree.New() },
		Stack:      func() viz.Visualizable { return stack.New(capacity) },
	}

	for name, factory := range factories {
		if err := registry.Register(name, factory); err != nil {
			panic(err)
		}
	}

	return registry
}

// Names lists the structure names in sorted order.
func Names() []string {
	names := make([]string, 0, len(operationsByName))
	for name := range operationsByName {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Known reports whether name is a registered structure.
func Known(name string) bool {
	_, ok := operationsByName[name]

	return ok
}

// Operations lists the operation kinds a structure supports, nil for an
// unknown name.
func Operations(name string) []step.Kind {
	return slices.Clone(operationsByName[name])
}

package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/algotrace/internal/catalog"
	"github.com/Sumatoshi-tech/algotrace/internal/step"
	"github.com/Sumatoshi-tech/algotrace/internal/viz"
)

func TestNewRegistryBuildsEveryStructure(t *testing.T) {
	t.Parallel()

	registry := catalog.NewRegistry(8)

	for _, name := range catalog.Names() {
		structure, err := registry.New(name)
		require.NoError(t, err, name)
		require.NotNil(t, structure, name)
		assert.Equal(t, 0, structure.Size(), name)
	}

	assert.Equal(t, catalog.Names(), registry.Names())
}

func TestNewRegistryHonorsCapacity(t *testing.T) {
	t.Parallel()

	registry := catalog.NewRegistry(2)

	structure, err := registry.New(catalog.Stack)
	require.NoError(t, err)

	_, err = structure.Execute(step.Push(1))
	require.NoError(t, err)
	_, err = structure.Execute(step.Push(2))
	require.NoError(t, err)

	_, err = structure.Execute(step.Push(3))
	assert.ErrorIs(t, err, viz.ErrFull)
}

func TestNamesAreSorted(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"array", "bst", "linkedlist", "queue", "rbtree", "stack"}, catalog.Names())
}

func TestKnown(t *testing.T) {
	t.Parallel()

	assert.True(t, catalog.Known(catalog.RBTree))
	assert.False(t, catalog.Known("treap"))
}

func TestOperationsListsKinds(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []step.Kind{
		step.KindInsert, step.KindDelete, step.KindSearch, step.KindTraverse,
	}, catalog.Operations(catalog.RBTree))
	assert.Empty(t, catalog.Operations("treap"))
}

// sampleOperation builds a valid argument set for each kind so dispatch can
// be probed on an empty structure.
func sampleOperation(kind step.Kind) step.Operation {
	switch kind {
	case step.KindInsertAt, step.KindUpdate:
		return step.Operation{Kind: kind, Index: 0, Value: 5}
	case step.KindTraverse:
		return step.Traverse(step.InOrder)
	default:
		return step.Operation{Kind: kind, Value: 5}
	}
}

// TestEveryListedOperationIsWired executes one sample of every advertised
// kind against a fresh structure. Domain errors such as out-of-bounds are
// fine; a visualization error would mean the listing and the structure's
// dispatch disagree.
func TestEveryListedOperationIsWired(t *testing.T) {
	t.Parallel()

	for _, name := range catalog.Names() {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			registry := catalog.NewRegistry(4)

			for _, kind := range catalog.Operations(name) {
				structure, err := registry.New(name)
				require.NoError(t, err)

				_, err = structure.Execute(sampleOperation(kind))
				assert.NotErrorIs(t, err, viz.ErrVisualization, kind.String())
			}
		})
	}
}

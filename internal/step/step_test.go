package step_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/algotrace/internal/step"
)

func TestNewFormatsDescription(t *testing.T) {
	t.Parallel()

	s := step.New("Comparing %d with %d", 50, 25)

	assert.Equal(t, "Comparing 50 with 25", s.Description)
	assert.Empty(t, s.Highlights)
	assert.Empty(t, s.Active)
	assert.Empty(t, s.Meta)
}

func TestNewWithoutArgsKeepsVerbatim(t *testing.T) {
	t.Parallel()

	s := step.New("100% done")

	assert.Equal(t, "100% done", s.Description)
}

func TestWithHighlightsAndActive(t *testing.T) {
	t.Parallel()

	s := step.New("visit").WithHighlights(0, 1).WithActive(2)

	assert.Equal(t, []int{0, 1}, s.Highlights)
	assert.Equal(t, []int{2}, s.Active)
}

func TestWithMetaCopiesOnWrite(t *testing.T) {
	t.Parallel()

	base := step.New("base").WithMeta(step.MetaOp, "insert")
	derived := base.WithMeta(step.MetaCase, "uncle_red")

	assert.Equal(t, map[string]string{step.MetaOp: "insert"}, base.Meta)
	assert.Equal(t, map[string]string{
		step.MetaOp:   "insert",
		step.MetaCase: "uncle_red",
	}, derived.Meta)
}

func TestKindStringRoundTrip(t *testing.T) {
	t.Parallel()

	kinds := []step.Kind{
		step.KindInsert, step.KindInsertAt, step.KindDelete, step.KindDeleteAt,
		step.KindUpdate, step.KindSearch, step.KindBinarySearch, step.KindTraverse,
		step.KindPush, step.KindPop, step.KindEnqueue, step.KindDequeue,
		step.KindBubbleSort, step.KindInsertionSort, step.KindSelectionSort,
		step.KindMergeSort, step.KindQuickSort,
	}

	for _, kind := range kinds {
		parsed, err := step.ParseKind(kind.String())
		require.NoError(t, err)
		assert.Equal(t, kind, parsed)
	}
}

func TestParseKindUnknown(t *testing.T) {
	t.Parallel()

	_, err := step.ParseKind("frobnicate")

	require.ErrorIs(t, err, step.ErrUnknownOperation)
}

func TestOrderStringRoundTrip(t *testing.T) {
	t.Parallel()

	orders := []step.Order{step.InOrder, step.PreOrder, step.PostOrder, step.LevelOrder}

	for _, order := range orders {
		parsed, err := step.ParseOrder(order.String())
		require.NoError(t, err)
		assert.Equal(t, order, parsed)
	}
}

func TestParseOperation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		expr string
		want step.Operation
	}{
		{name: "insert", expr: "insert:50", want: step.Insert(50)},
		{name: "negative value", expr: "insert:-7", want: step.Insert(-7)},
		{name: "delete", expr: "delete:25", want: step.Delete(25)},
		{name: "search", expr: "search:10", want: step.Search(10)},
		{name: "binary search", expr: "binary-search:42", want: step.BinarySearch(42)},
		{name: "insert at", expr: "insert-at:2:50", want: step.InsertAt(2, 50)},
		{name: "update", expr: "update:3:99", want: step.Update(3, 99)},
		{name: "delete at", expr: "delete-at:1", want: step.DeleteAt(1)},
		{name: "traverse default", expr: "traverse", want: step.Traverse(step.InOrder)},
		{name: "traverse explicit", expr: "traverse:post-order", want: step.Traverse(step.PostOrder)},
		{name: "push", expr: "push:5", want: step.Push(5)},
		{name: "pop", expr: "pop", want: step.Pop()},
		{name: "enqueue", expr: "enqueue:8", want: step.Enqueue(8)},
		{name: "dequeue", expr: "dequeue", want: step.Dequeue()},
		{name: "bubble sort", expr: "bubble-sort", want: step.Sort(step.KindBubbleSort)},
		{name: "quick sort", expr: "quick-sort", want: step.Sort(step.KindQuickSort)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := step.ParseOperation(tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseOperationErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		expr string
		want error
	}{
		{name: "unknown kind", expr: "explode:1", want: step.ErrUnknownOperation},
		{name: "missing value", expr: "insert", want: step.ErrMissingArgument},
		{name: "missing second arg", expr: "update:2", want: step.ErrMissingArgument},
		{name: "non numeric", expr: "push:many", want: step.ErrBadArgument},
		{name: "bad order", expr: "traverse:sideways", want: step.ErrUnknownOperation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := step.ParseOperation(tt.expr)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestOperationStringRoundTrip(t *testing.T) {
	t.Parallel()

	ops := []step.Operation{
		step.Insert(50),
		step.Delete(-3),
		step.InsertAt(2, 7),
		step.Update(0, 11),
		step.DeleteAt(4),
		step.Traverse(step.LevelOrder),
		step.Pop(),
		step.Sort(step.KindMergeSort),
	}

	for _, op := range ops {
		parsed, err := step.ParseOperation(op.String())
		require.NoError(t, err)
		assert.Equal(t, op, parsed)
	}
}

package rbtree //nolint:testpackage // tests require access to unexported fields (storage, gaps, malloc, free)

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArenaMallocReservesSentinel(t *testing.T) {
	t.Parallel()

	arena := NewArena()
	assert.Equal(t, 0, arena.Size())

	handle := arena.malloc()
	assert.Equal(t, uint32(1), handle, "slot 0 is reserved, first handle is 1")
	assert.Equal(t, 2, arena.Size())
	assert.Equal(t, 2, arena.Used())
}

func TestArenaFreeRecyclesSlot(t *testing.T) {
	t.Parallel()

	arena := NewArena()
	first := arena.malloc()
	second := arena.malloc()

	arena.storage[first].value = 7
	arena.free(first)

	assert.Equal(t, 3, arena.Size())
	assert.Equal(t, 2, arena.Used())
	assert.Equal(t, node{}, arena.storage[first], "freed slot must be zeroed")

	reused := arena.malloc()
	assert.Equal(t, first, reused, "gap should be reused before growing")
	assert.Equal(t, 3, arena.Size())

	_ = second
}

func TestArenaFreeZero(t *testing.T) {
	t.Parallel()

	arena := NewArena()
	arena.malloc()

	assert.PanicsWithValue(t, "slot #0 is the nil sentinel and cannot be freed", func() { arena.free(0) })
}

func TestArenaDoubleFree(t *testing.T) {
	t.Parallel()

	arena := NewArena()
	handle := arena.malloc()
	arena.free(handle)

	assert.PanicsWithValue(t, "rbtree internal assertion failed", func() { arena.free(handle) })
}

func TestArenaClone(t *testing.T) {
	t.Parallel()

	arena := NewArena()
	arena.HibernationThreshold = 3

	handle := arena.malloc()
	arena.storage[handle].value = -42
	gap := arena.malloc()
	arena.free(gap)

	clone := arena.Clone()
	assert.Equal(t, 3, clone.HibernationThreshold)
	assert.Equal(t, arena.storage, clone.storage)
	assert.Equal(t, arena.gaps, clone.gaps)

	// Mutating the original must not leak into the clone.
	arena.storage[handle].value = 1
	delete(arena.gaps, gap)

	assert.Equal(t, int64(-42), clone.storage[handle].value)
	assert.True(t, clone.gaps[gap])
}

func TestArenaHibernateBoot(t *testing.T) {
	t.Parallel()

	const slotCount = 10000

	arena := NewArena()

	for idx := range slotCount {
		nd := arena.malloc()
		// Negative values exercise the high word of the split int64 column.
		arena.storage[nd].value = int64(idx) - slotCount/2
		arena.storage[nd].left = uint32(idx)
		arena.storage[nd].right = uint32(idx)
		arena.storage[nd].parent = uint32(idx)
		arena.storage[nd].color = idx%2 == 0
	}

	for idx := range slotCount {
		arena.gaps[uint32(idx)] = true // Makes no sense, only to test.
	}

	arena.Hibernate()
	assert.PanicsWithValue(t, "cannot hibernate an already hibernated arena", arena.Hibernate)
	assert.Nil(t, arena.storage)
	assert.Nil(t, arena.gaps)
	assert.Equal(t, 0, arena.Size())
	assert.True(t, arena.Hibernated())
	assert.Equal(t, slotCount+1, arena.hibernatedStorageLen)
	assert.Equal(t, slotCount, arena.hibernatedGapsLen)
	assert.PanicsWithValue(t, "hibernated arenas cannot be used", func() { arena.Used() })
	assert.PanicsWithValue(t, "hibernated arenas cannot be used", func() { arena.malloc() })
	assert.PanicsWithValue(t, "hibernated arenas cannot be used", func() { arena.free(1) })
	assert.PanicsWithValue(t, "cannot clone a hibernated arena", func() { arena.Clone() })

	arena.Boot()
	assert.False(t, arena.Hibernated())
	assert.Equal(t, 0, arena.hibernatedStorageLen)
	assert.Equal(t, 0, arena.hibernatedGapsLen)
	require.Len(t, arena.storage, slotCount+1)

	for nd := 1; nd <= slotCount; nd++ {
		idx := nd - 1

		assert.Equal(t, int64(idx)-slotCount/2, arena.storage[nd].value)
		assert.Equal(t, uint32(idx), arena.storage[nd].left)
		assert.Equal(t, uint32(idx), arena.storage[nd].right)
		assert.Equal(t, uint32(idx), arena.storage[nd].parent)
		assert.Equal(t, idx%2 == 0, arena.storage[nd].color)
		assert.True(t, arena.gaps[uint32(idx)])
	}
}

func TestArenaHibernateBootEmpty(t *testing.T) {
	t.Parallel()

	arena := NewArena()
	arena.Hibernate()
	arena.Boot()

	assert.NotNil(t, arena.gaps)
	assert.Equal(t, 0, arena.Size())
	assert.Equal(t, 0, arena.Used())
}

func TestArenaHibernateBootThreshold(t *testing.T) {
	t.Parallel()

	arena := NewArena()
	arena.malloc()
	arena.HibernationThreshold = 3

	assert.Equal(t, 3, arena.Clone().HibernationThreshold)

	arena.Hibernate()
	assert.Equal(t, 0, arena.hibernatedStorageLen, "below threshold, hibernation is a no-op")

	arena.Boot()
	arena.malloc()
	arena.Hibernate()
	assert.Equal(t, 0, arena.hibernatedGapsLen)
	assert.Equal(t, 3, arena.hibernatedStorageLen)

	arena.Boot()
	assert.Equal(t, 3, arena.Size())
	assert.Equal(t, 3, arena.Used())
	assert.NotNil(t, arena.gaps)
}

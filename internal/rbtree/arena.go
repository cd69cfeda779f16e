package rbtree

import (
	"maps"
	"math"
	"slices"
	"sync"

	"github.com/Sumatoshi-tech/algotrace/pkg/safeconv"
)

// growCapacityNumerator and growCapacityDenominator define the 3/2 growth factor for storage.
const (
	growCapacityNumerator   = 3
	growCapacityDenominator = 2
)

// Node colors. The zero value is red, so freshly allocated nodes come out
// red without an extra write.
const (
	red   = false
	black = true
)

// nilHandle is the reserved arena slot standing in for every vacant subtree.
// Slot 0 is allocated once, never handed out and never written.
const nilHandle uint32 = 0

// maxHandleCount caps the arena; math.MaxUint32 is reserved.
const maxHandleCount = math.MaxUint32

// node is one tree node. Links are arena handles; parent is a non-owning
// back-reference kept consistent with the owning child link.
type node struct {
	value               int64
	parent, left, right uint32
	color               bool
}

// hibernatedColumns counts the compressed planes: value low and high words,
// left, parent, right, color, and the gap set.
const hibernatedColumns = 7

// Arena owns the node storage for one tree. Handles are indices into the
// storage slice; freed slots are recycled through the gap set before the
// storage grows. Hibernate packs the storage into per-field lz4 blocks so an
// idle tree can be parked cheaply and restored with Boot.
type Arena struct {
	storage              []node
	gaps                 map[uint32]bool
	hibernatedData       [hibernatedColumns][]byte
	HibernationThreshold int
	hibernatedStorageLen int
	hibernatedGapsLen    int
}

// NewArena creates an empty arena.
func NewArena() *Arena {
	return &Arena{
		storage:              []node{},
		gaps:                 map[uint32]bool{},
		hibernatedData:       [hibernatedColumns][]byte{},
		HibernationThreshold: 0,
		hibernatedStorageLen: 0,
		hibernatedGapsLen:    0,
	}
}

// Size returns the currently allocated slot count, sentinel and gaps included.
func (arena *Arena) Size() int {
	return len(arena.storage)
}

// Used returns the number of live nodes in the arena.
func (arena *Arena) Used() int {
	if arena.storage == nil {
		panic("hibernated arenas cannot be used")
	}

	return len(arena.storage) - len(arena.gaps)
}

// Hibernated reports whether the arena is parked in compressed form.
func (arena *Arena) Hibernated() bool {
	return arena.storage == nil
}

// Clone copies a live arena.
func (arena *Arena) Clone() *Arena {
	if arena.storage == nil {
		panic("cannot clone a hibernated arena")
	}

	clone := &Arena{
		HibernationThreshold: arena.HibernationThreshold,
		storage:              make([]node, len(arena.storage), cap(arena.storage)),
		gaps:                 map[uint32]bool{},
		hibernatedData:       [hibernatedColumns][]byte{},
		hibernatedStorageLen: 0,
		hibernatedGapsLen:    0,
	}
	copy(clone.storage, arena.storage)
	maps.Copy(clone.gaps, arena.gaps)

	return clone
}

// Hibernate compresses the allocated memory. Node fields are deinterleaved
// into per-field uint32 planes before compression; the sorted gap set is
// delta-encoded so it collapses into near-constant bytes.
func (arena *Arena) Hibernate() {
	if arena.hibernatedStorageLen > 0 {
		panic("cannot hibernate an already hibernated arena")
	}

	if len(arena.storage) < arena.HibernationThreshold {
		return
	}

	arena.hibernatedStorageLen = len(arena.storage)
	if arena.hibernatedStorageLen == 0 {
		arena.storage = nil

		return
	}

	buffers := [hibernatedColumns - 1][]uint32{}

	for idx := range buffers {
		buffers[idx] = make([]uint32, len(arena.storage))
	}

	for idx, nd := range arena.storage {
		buffers[0][idx] = uint32(uint64(nd.value))
		buffers[1][idx] = uint32(uint64(nd.value) >> 32)
		buffers[2][idx] = nd.left
		buffers[3][idx] = nd.parent
		buffers[4][idx] = nd.right

		if nd.color {
			buffers[5][idx] = 1
		}
	}

	arena.storage = nil

	wg := &sync.WaitGroup{}
	wg.Add(len(buffers) + 1)

	for idx, buffer := range buffers {
		go func(bufIdx int, buf []uint32) {
			arena.hibernatedData[bufIdx] = CompressUInt32Slice(buf)
			buffers[bufIdx] = nil

			wg.Done()
		}(idx, buffer)
	}

	go func() {
		if len(arena.gaps) > 0 {
			arena.hibernatedGapsLen = len(arena.gaps)

			gapsBuffer := make([]uint32, 0, len(arena.gaps))
			for key := range arena.gaps {
				gapsBuffer = append(gapsBuffer, key)
			}

			slices.Sort(gapsBuffer)
			DeltaEncodeUInt32Slice(gapsBuffer)

			arena.hibernatedData[len(buffers)] = CompressUInt32Slice(gapsBuffer)
		}

		arena.gaps = nil

		wg.Done()
	}()

	wg.Wait()
}

// Boot performs the opposite of Hibernate() - decompresses and restores the
// allocated memory.
func (arena *Arena) Boot() {
	if arena.storage == nil && arena.hibernatedStorageLen == 0 {
		arena.storage = []node{}
		arena.gaps = map[uint32]bool{}

		return
	}

	if arena.hibernatedStorageLen == 0 {
		// Not hibernated.
		return
	}

	arena.gaps = map[uint32]bool{}
	buffers := [hibernatedColumns - 1][]uint32{}

	wg := &sync.WaitGroup{}
	wg.Add(len(buffers) + 1)

	for idx := range buffers {
		go func(bufIdx int) {
			buffers[bufIdx] = make([]uint32, arena.hibernatedStorageLen)
			DecompressUInt32Slice(arena.hibernatedData[bufIdx], buffers[bufIdx])
			arena.hibernatedData[bufIdx] = nil

			wg.Done()
		}(idx)
	}

	go func() {
		if arena.hibernatedGapsLen > 0 {
			gapData := arena.hibernatedData[len(buffers)]
			buffer := make([]uint32, arena.hibernatedGapsLen)
			DecompressUInt32Slice(gapData, buffer)
			DeltaDecodeUInt32Slice(buffer)

			for _, key := range buffer {
				arena.gaps[key] = true
			}

			arena.hibernatedData[len(buffers)] = nil
			arena.hibernatedGapsLen = 0
		}

		wg.Done()
	}()

	wg.Wait()

	capSize := (arena.hibernatedStorageLen * growCapacityNumerator) / growCapacityDenominator
	arena.storage = make([]node, arena.hibernatedStorageLen, capSize)

	for idx := range arena.storage {
		nd := &arena.storage[idx]
		nd.value = int64(uint64(buffers[0][idx]) | uint64(buffers[1][idx])<<32)
		nd.left = buffers[2][idx]
		nd.parent = buffers[3][idx]
		nd.right = buffers[4][idx]
		nd.color = buffers[5][idx] > 0
	}

	arena.hibernatedStorageLen = 0
}

func (arena *Arena) malloc() uint32 {
	if arena.storage == nil {
		panic("hibernated arenas cannot be used")
	}

	if len(arena.gaps) > 0 {
		var key uint32

		for key = range arena.gaps {
			break
		}

		delete(arena.gaps, key)

		return key
	}

	slotCount := len(arena.storage)
	if slotCount == 0 {
		// Zero is reserved.
		arena.storage = append(arena.storage, node{})
		slotCount = 1
	}

	if slotCount == maxHandleCount-1 {
		// [math.MaxUint32] is reserved.
		panic("the arena has exhausted the uint32 handle space")
	}

	doAssert(slotCount < maxHandleCount)

	arena.storage = append(arena.storage, node{})

	return safeconv.MustIntToUint32(slotCount)
}

func (arena *Arena) free(handle uint32) {
	if arena.storage == nil {
		panic("hibernated arenas cannot be used")
	}

	if handle == nilHandle {
		panic("slot #0 is the nil sentinel and cannot be freed")
	}

	_, exists := arena.gaps[handle]
	doAssert(!exists)

	arena.storage[handle] = node{}
	arena.gaps[handle] = true
}

func doAssert(condition bool) {
	if !condition {
		panic("rbtree internal assertion failed")
	}
}

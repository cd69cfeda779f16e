package sorting_test

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/algotrace/internal/sorting"
	"github.com/Sumatoshi-tech/algotrace/internal/step"
)

func testDescriptions(steps []step.Step) []string {
	result := make([]string, len(steps))
	for idx, st := range steps {
		result[idx] = st.Description
	}

	return result
}

func TestBubbleSortsCorrectly(t *testing.T) {
	t.Parallel()

	values := []int64{5, 2, 8, 1, 9}

	steps := sorting.Bubble(values)
	assert.Equal(t, []int64{1, 2, 5, 8, 9}, values)
	require.NotEmpty(t, steps)

	assert.Equal(t, "Starting Bubble Sort", steps[0].Description)
	assert.Equal(t, "5,2,8,1,9", steps[0].Meta[step.MetaArrayState])

	last := steps[len(steps)-1]
	assert.Equal(t, "Sorting complete", last.Description)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, last.Active)
	assert.Equal(t, "1,2,5,8,9", last.Meta[step.MetaArrayState])

	descriptions := testDescriptions(steps)
	assert.Contains(t, descriptions, "Comparing 5 and 2")
	assert.Contains(t, descriptions, "Swapping 5 and 2")
	assert.Contains(t, descriptions, "Element 9 is now in final position")
}

func TestBubbleAlreadySortedStopsEarly(t *testing.T) {
	t.Parallel()

	values := []int64{1, 2, 3, 4, 5}

	steps := sorting.Bubble(values)
	assert.Equal(t, []int64{1, 2, 3, 4, 5}, values)
	assert.Contains(t, testDescriptions(steps), "Array is sorted, no more swaps needed")
}

func TestSortsTrivialInputsSilently(t *testing.T) {
	t.Parallel()

	algorithms := map[string]func([]int64) []step.Step{
		"bubble":    sorting.Bubble,
		"insertion": sorting.Insertion,
		"selection": sorting.Selection,
		"merge":     sorting.Merge,
		"quick":     sorting.Quick,
	}

	for name, sort := range algorithms {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Empty(t, sort(nil))

			single := []int64{42}
			assert.Empty(t, sort(single))
			assert.Equal(t, []int64{42}, single)
		})
	}
}

func TestInsertionSortsCorrectly(t *testing.T) {
	t.Parallel()

	values := []int64{5, 2, 8, 1, 9}

	steps := sorting.Insertion(values)
	assert.Equal(t, []int64{1, 2, 5, 8, 9}, values)

	descriptions := testDescriptions(steps)
	assert.Equal(t, "Starting Insertion Sort", descriptions[0])
	assert.Contains(t, descriptions, "Selecting 2 to insert into sorted portion")
	assert.Contains(t, descriptions, "Shifting element to the right")
	assert.Contains(t, descriptions, "Inserted 1 at position 0")
	assert.Equal(t, "Insertion sort complete", descriptions[len(descriptions)-1])
}

func TestSelectionSortsCorrectly(t *testing.T) {
	t.Parallel()

	values := []int64{5, 2, 8, 1, 9}

	steps := sorting.Selection(values)
	assert.Equal(t, []int64{1, 2, 5, 8, 9}, values)

	descriptions := testDescriptions(steps)
	assert.Equal(t, "Starting Selection Sort", descriptions[0])
	assert.Contains(t, descriptions, "Finding minimum in unsorted portion from index 0")
	assert.Contains(t, descriptions, "New minimum 2 at index 1")
	assert.Contains(t, descriptions, "New minimum 1 at index 3")
	assert.Equal(t, "Selection sort complete", descriptions[len(descriptions)-1])
}

func TestMergeSortsCorrectly(t *testing.T) {
	t.Parallel()

	values := []int64{5, 2, 8, 1, 9, 3, 7}

	steps := sorting.Merge(values)
	assert.Equal(t, []int64{1, 2, 3, 5, 7, 8, 9}, values)

	descriptions := testDescriptions(steps)
	assert.Equal(t, "Starting Merge Sort", descriptions[0])
	assert.Contains(t, descriptions, "Splitting range [0, 6] into [0, 3] and [4, 6]")
	assert.Contains(t, descriptions, "Merging [0, 3] and [4, 6]")
	assert.Contains(t, descriptions, "Range [0, 6] is now sorted")
	assert.Equal(t, "Merge sort complete", descriptions[len(descriptions)-1])
}

func TestQuickSortsCorrectly(t *testing.T) {
	t.Parallel()

	values := []int64{5, 2, 8, 1, 9, 3, 7}

	steps := sorting.Quick(values)
	assert.Equal(t, []int64{1, 2, 3, 5, 7, 8, 9}, values)

	descriptions := testDescriptions(steps)
	assert.Equal(t, "Starting Quick Sort", descriptions[0])
	assert.Contains(t, descriptions, "Choosing 7 as pivot (index 6)")
	assert.Contains(t, descriptions, "Pivot 7 is now in correct position")
	assert.Equal(t, "Quick sort complete", descriptions[len(descriptions)-1])
}

func TestQuickSortHandlesDuplicates(t *testing.T) {
	t.Parallel()

	values := []int64{5, 2, 5, 1, 2}

	sorting.Quick(values)
	assert.Equal(t, []int64{1, 2, 2, 5, 5}, values)
}

// TestSortsAgainstStdlib drives every algorithm over random inputs and
// compares the outcome with slices.Sort.
func TestSortsAgainstStdlib(t *testing.T) {
	t.Parallel()

	algorithms := map[string]func([]int64) []step.Step{
		"bubble":    sorting.Bubble,
		"insertion": sorting.Insertion,
		"selection": sorting.Selection,
		"merge":     sorting.Merge,
		"quick":     sorting.Quick,
	}

	for name, sort := range algorithms {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			rng := rand.New(rand.NewSource(1))

			for range 50 {
				length := rng.Intn(33)

				values := make([]int64, length)
				for idx := range values {
					values[idx] = int64(rng.Intn(100) - 50)
				}

				expected := slices.Clone(values)
				slices.Sort(expected)

				sort(values)
				require.Equal(t, expected, values)
			}
		})
	}
}

func TestBinarySearchFound(t *testing.T) {
	t.Parallel()

	values := []int64{1, 3, 5, 7, 9, 11}

	steps := sorting.BinarySearch(values, 7)
	assert.Equal(t, []string{
		"Starting binary search for 7",
		"Checking middle element at index 2",
		"5 < 7, searching right half",
		"Checking middle element at index 4",
		"9 > 7, searching left half",
		"Checking middle element at index 3",
		"Found 7 at index 3",
	}, testDescriptions(steps))

	last := steps[len(steps)-1]
	assert.Equal(t, "true", last.Meta[step.MetaFound])
	assert.Equal(t, []int{3}, last.Active)
}

func TestBinarySearchMiss(t *testing.T) {
	t.Parallel()

	values := []int64{1, 3, 5}

	steps := sorting.BinarySearch(values, 4)

	last := steps[len(steps)-1]
	assert.Equal(t, "Value 4 not found in array", last.Description)
	assert.Equal(t, "false", last.Meta[step.MetaFound])
}

func TestBinarySearchBelowFirstElement(t *testing.T) {
	t.Parallel()

	values := []int64{5, 7}

	steps := sorting.BinarySearch(values, 1)

	descriptions := testDescriptions(steps)
	assert.Contains(t, descriptions, "5 > 1, searching left half")
	assert.Equal(t, "Value 1 not found in array", descriptions[len(descriptions)-1])
}

func TestBinarySearchEmpty(t *testing.T) {
	t.Parallel()

	steps := sorting.BinarySearch(nil, 9)
	require.Len(t, steps, 1)
	assert.Equal(t, "Array is empty, cannot search", steps[0].Description)
	assert.Equal(t, "false", steps[0].Meta[step.MetaFound])
}

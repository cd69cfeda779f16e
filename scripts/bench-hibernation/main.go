// bench-hibernation measures heap memory before and after Hibernate() calls
// while filling red-black trees with a random insert workload.
//
// Usage:
//
//	go run ./scripts/bench-hibernation --trees 4 --nodes 400000 \
//	  --chunk-size 100000 --profile-dir docs/profiles/rbtree-hibernation
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"strings"

	"github.com/Sumatoshi-tech/algotrace/internal/rbtree"
)

func main() {
	treeCount := flag.Int("trees", 4, "Number of trees to fill")
	nodes := flag.Int("nodes", 400000, "Total values to insert across all trees")
	chunkSize := flag.Int("chunk-size", 100000, "Values per chunk")
	profileDir := flag.String("profile-dir", "", "Directory to write heap profiles")
	seed := flag.Int64("seed", 1, "Random seed for the insert workload")
	cpuProfile := flag.Bool("cpu-profile", false, "Write CPU profile to profile-dir/cpu.prof")

	flag.Parse()

	if *treeCount <= 0 {
		log.Fatal("--trees must be positive")
	}

	if *profileDir == "" {
		log.Fatal("--profile-dir is required")
	}

	if err := os.MkdirAll(*profileDir, 0o755); err != nil {
		log.Fatalf("mkdir profile-dir: %v", err)
	}

	if *cpuProfile {
		cpuPath := filepath.Join(*profileDir, "cpu.prof")

		cpuFile, cpuErr := os.Create(cpuPath)
		if cpuErr != nil {
			log.Fatalf("create cpu profile: %v", cpuErr)
		}
		defer cpuFile.Close()

		if startErr := pprof.StartCPUProfile(cpuFile); startErr != nil {
			log.Fatalf("start cpu profile: %v", startErr)
		}

		defer pprof.StopCPUProfile()

		log.Printf("CPU profiling enabled -> %s", cpuPath)
	}

	values := randomValues(*nodes, *seed)
	log.Printf("generated %d random values", len(values))

	trees := make([]*rbtree.Tree, *treeCount)
	for i := range trees {
		trees[i] = rbtree.New()
	}

	// Plan chunks.
	chunks := planChunks(len(values), *chunkSize)
	log.Printf("inserting %d values into %d trees in %d chunks (chunk size %d)",
		len(values), len(trees), len(chunks), *chunkSize)

	// Process chunks with heap measurements at boundaries.
	type heapSnapshot struct {
		label     string
		heapInUse uint64
		heapSys   uint64
		heapIdle  uint64
		numGC     uint32
	}

	var snapshots []heapSnapshot

	takeSnapshot := func(label string) {
		runtime.GC()
		runtime.GC()

		var m runtime.MemStats
		runtime.ReadMemStats(&m)
		snapshots = append(snapshots, heapSnapshot{
			label:     label,
			heapInUse: m.HeapInuse,
			heapSys:   m.HeapSys,
			heapIdle:  m.HeapIdle,
			numGC:     m.NumGC,
		})
		log.Printf("  [heap] %-40s inuse=%6.1f MB  sys=%6.1f MB  idle=%6.1f MB",
			label, float64(m.HeapInuse)/1e6, float64(m.HeapSys)/1e6, float64(m.HeapIdle)/1e6)
	}

	writeHeapProfile := func(name string) {
		runtime.GC()
		runtime.GC()

		path := filepath.Join(*profileDir, name)

		f, ferr := os.Create(path)
		if ferr != nil {
			log.Printf("warning: create heap profile %s: %v", path, ferr)

			return
		}
		defer f.Close()

		if perr := pprof.WriteHeapProfile(f); perr != nil {
			log.Printf("warning: write heap profile %s: %v", path, perr)
		}
	}

	takeSnapshot("before_processing")
	writeHeapProfile("heap_before_processing.prof")

	for i, chunk := range chunks {
		if i > 0 {
			takeSnapshot(fmt.Sprintf("chunk_%d_end_before_hibernate", i))
			writeHeapProfile(fmt.Sprintf("heap_chunk_%d_before_hibernate.prof", i))

			// Hibernate all.
			for _, tree := range trees {
				tree.Hibernate()
			}

			takeSnapshot(fmt.Sprintf("chunk_%d_end_after_hibernate", i))
			writeHeapProfile(fmt.Sprintf("heap_chunk_%d_after_hibernate.prof", i))

			// Boot all.
			for _, tree := range trees {
				tree.Boot()
			}

			takeSnapshot(fmt.Sprintf("chunk_%d_end_after_boot", i))
		}

		log.Printf("inserting chunk %d/%d (values %d-%d)", i+1, len(chunks), chunk.start, chunk.end)

		if err := insertChunk(trees, values[chunk.start:chunk.end], chunk.start); err != nil {
			log.Fatalf("insert chunk %d: %v", i+1, err)
		}
	}

	// Final snapshot after last chunk.
	takeSnapshot("after_all_chunks")
	writeHeapProfile("heap_after_all_chunks.prof")

	// Verify every tree still satisfies the red-black properties.
	total := 0

	for i, tree := range trees {
		if err := tree.Verify(); err != nil {
			log.Fatalf("verify tree %d: %v", i, err)
		}

		total += tree.Size()
	}

	log.Printf("all trees verified, %d values stored", total)

	takeSnapshot("after_verify")
	writeHeapProfile("heap_after_verify.prof")

	// Print summary table.
	fmt.Println()
	fmt.Println("=== Heap Memory Timeline ===")
	fmt.Printf("%-45s %10s %10s %10s\n", "Phase", "InUse(MB)", "Sys(MB)", "Idle(MB)")
	fmt.Println("---------------------------------------------+----------+----------+----------")

	for _, s := range snapshots {
		fmt.Printf("%-45s %10.1f %10.1f %10.1f\n",
			s.label, float64(s.heapInUse)/1e6, float64(s.heapSys)/1e6, float64(s.heapIdle)/1e6)
	}

	// Compute hibernation deltas.
	fmt.Println()
	fmt.Println("=== Hibernation Memory Deltas ===")

	for i := 0; i+1 < len(snapshots); i++ {
		curr := snapshots[i]

		next := snapshots[i+1]
		if strings.Contains(curr.label, "before_hibernate") && strings.Contains(next.label, "after_hibernate") {
			delta := float64(curr.heapInUse) - float64(next.heapInUse)
			pct := (delta / float64(curr.heapInUse)) * 100
			fmt.Printf("  %s -> %s: %.1f MB freed (%.1f%%)\n",
				curr.label, next.label, delta/1e6, pct)
		}
	}
}

// insertChunk spreads a slice of values round-robin across the trees.
// Duplicate values are no-ops inside Insert, so the workload tolerates
// collisions in the random stream.
func insertChunk(trees []*rbtree.Tree, values []int64, offset int) error {
	for i, value := range values {
		tree := trees[(offset+i)%len(trees)]

		if _, err := tree.Insert(value); err != nil {
			return fmt.Errorf("insert %d: %w", value, err)
		}
	}

	return nil
}

func randomValues(count int, seed int64) []int64 {
	rng := rand.New(rand.NewSource(seed))

	values := make([]int64, count)
	for i := range values {
		values[i] = rng.Int63()
	}

	return values
}

type chunkBounds struct {
	start int
	end   int
}

func planChunks(total, chunkSize int) []chunkBounds {
	var chunks []chunkBounds

	for start := 0; start < total; start += chunkSize {
		end := min(start+chunkSize, total)
		chunks = append(chunks, chunkBounds{start: start, end: end})
	}

	return chunks
}

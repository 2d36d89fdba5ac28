package dag

import (
	"iter"
	"slices"
)

// ParallelBlocks yields the graph's layering: block k holds every node whose
// predecessors all sit in blocks 0..k-1. Nodes within a block touch disjoint
// resources or commute, so a backend may execute each block in parallel.
// Each yielded slice is sorted ascending and owned by the caller.
func (d *CircuitDag) ParallelBlocks() iter.Seq[[]int] {
	return func(yield func([]int) bool) {
		indeg := make([]int, len(d.ops))
		for n := range d.ops {
			indeg[n] = len(d.pred[n])
		}

		var block []int
		for n := range d.ops {
			if indeg[n] == 0 {
				block = append(block, n)
			}
		}

		for len(block) > 0 {
			slices.Sort(block)
			if !yield(block) {
				return
			}
			var next []int
			for _, n := range block {
				for _, s := range d.succ[n] {
					indeg[s]--
					if indeg[s] == 0 {
						next = append(next, s)
					}
				}
			}
			block = next
		}
	}
}

// FirstParallelBlock returns the nodes with no predecessors, sorted
// ascending: the operations executable immediately.
func (d *CircuitDag) FirstParallelBlock() []int {
	var block []int
	for n := range d.ops {
		if len(d.pred[n]) == 0 {
			block = append(block, n)
		}
	}
	return block
}

// LastParallelBlock returns the nodes with no successors, sorted ascending:
// the first block of the reverse layering, the operations nothing depends on.
func (d *CircuitDag) LastParallelBlock() []int {
	var block []int
	for n := range d.ops {
		if len(d.succ[n]) == 0 {
			block = append(block, n)
		}
	}
	return block
}

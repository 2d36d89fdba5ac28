package dag

import (
	"fmt"
	"slices"

	mapset "github.com/deckarep/golang-set/v2"

	"qcircdag/operations"
)

// FirstOperationInvolvingQubit maps each explicitly touched qubit to the
// chronologically first node involving it. All-qubit operations count for
// every mapped qubit but never introduce keys of their own.
func (d *CircuitDag) FirstOperationInvolvingQubit() map[int]int {
	out := make(map[int]int, len(d.qubitChains))
	for q, chain := range d.qubitChains {
		out[q] = d.earlier(chain[0], firstOf(d.allChain))
	}
	return out
}

// LastOperationInvolvingQubit is the mirror of FirstOperationInvolvingQubit.
func (d *CircuitDag) LastOperationInvolvingQubit() map[int]int {
	out := make(map[int]int, len(d.qubitChains))
	for q, chain := range d.qubitChains {
		out[q] = d.later(chain[len(chain)-1], lastOf(d.allChain))
	}
	return out
}

// FirstOperationInvolvingClassical maps each explicitly touched register
// cell to the chronologically first node involving it. Whole-register
// operations, definitions included, count for every cell of their register.
func (d *CircuitDag) FirstOperationInvolvingClassical() map[operations.ClassicalBit]int {
	out := make(map[operations.ClassicalBit]int)
	for _, chain := range d.regChains {
		for _, bit := range d.explicitBits(chain) {
			for _, n := range chain {
				if d.involvesBit(n, bit) {
					out[bit] = n
					break
				}
			}
		}
	}
	return out
}

// LastOperationInvolvingClassical is the mirror of
// FirstOperationInvolvingClassical.
func (d *CircuitDag) LastOperationInvolvingClassical() map[operations.ClassicalBit]int {
	out := make(map[operations.ClassicalBit]int)
	for _, chain := range d.regChains {
		for _, bit := range d.explicitBits(chain) {
			for i := len(chain) - 1; i >= 0; i-- {
				if d.involvesBit(chain[i], bit) {
					out[bit] = chain[i]
					break
				}
			}
		}
	}
	return out
}

func (d *CircuitDag) explicitBits(chain []int) []operations.ClassicalBit {
	bits := mapset.NewThreadUnsafeSet[operations.ClassicalBit]()
	for _, n := range chain {
		bits.Append(d.ops[n].InvolvedClassical().Bits()...)
	}
	out := bits.ToSlice()
	slices.SortFunc(out, func(a, b operations.ClassicalBit) int {
		if a.Register != b.Register {
			if a.Register < b.Register {
				return -1
			}
			return 1
		}
		return a.Index - b.Index
	})
	return out
}

func (d *CircuitDag) involvesBit(n int, bit operations.ClassicalBit) bool {
	return d.ops[n].InvolvedClassical().Overlaps(operations.ClassicalSet(bit))
}

// earlier picks the chronologically earlier of a and b; b may be -1.
func (d *CircuitDag) earlier(a, b int) int {
	if b >= 0 && d.order[b] < d.order[a] {
		return b
	}
	return a
}

// later picks the chronologically later of a and b; b may be -1.
func (d *CircuitDag) later(a, b int) int {
	if b >= 0 && d.order[b] > d.order[a] {
		return b
	}
	return a
}

func firstOf(chain []int) int {
	if len(chain) == 0 {
		return -1
	}
	return chain[0]
}

func lastOf(chain []int) int {
	if len(chain) == 0 {
		return -1
	}
	return chain[len(chain)-1]
}

// ExecutionBlocked returns every not-yet-executed transitive predecessor of
// target: the full set of operations that must run before target may. The
// walk descends through executed nodes too, so the answer stays sound even
// when the executed set is not closed under predecessors. Sorted ascending.
func (d *CircuitDag) ExecutionBlocked(executed []int, target int) ([]int, error) {
	done, err := d.executedSet(executed)
	if err != nil {
		return nil, err
	}
	if target < 0 || target >= len(d.ops) {
		return nil, fmt.Errorf("target %d: %w", target, ErrIndexOutOfRange)
	}

	visited := mapset.NewThreadUnsafeSet[int]()
	blocked := mapset.NewThreadUnsafeSet[int]()
	var visit func(node int)
	visit = func(node int) {
		for _, p := range d.pred[node] {
			if visited.Contains(p) {
				continue
			}
			visited.Add(p)
			if !done.Contains(p) {
				blocked.Add(p)
			}
			visit(p)
		}
	}
	visit(target)

	out := blocked.ToSlice()
	slices.Sort(out)
	return out, nil
}

// BlockingPredecessors returns the direct predecessors of target that have
// not executed yet, sorted ascending. Unlike ExecutionBlocked it does not
// look past an unexecuted predecessor, so an empty result only means target
// is ready when the executed list is itself closed under predecessors.
func (d *CircuitDag) BlockingPredecessors(executed []int, target int) ([]int, error) {
	done, err := d.executedSet(executed)
	if err != nil {
		return nil, err
	}
	if target < 0 || target >= len(d.ops) {
		return nil, fmt.Errorf("target %d: %w", target, ErrIndexOutOfRange)
	}

	var out []int
	for _, p := range d.pred[target] {
		if !done.Contains(p) {
			out = append(out, p)
		}
	}
	slices.Sort(out)
	return out, nil
}

// NewFrontLayer advances a front layer past one executed operation: target
// leaves the layer and each of its successors whose predecessors have all
// executed enters it. The result is sorted ascending.
func (d *CircuitDag) NewFrontLayer(executed, front []int, target int) ([]int, error) {
	done, err := d.executedSet(executed)
	if err != nil {
		return nil, err
	}
	if target < 0 || target >= len(d.ops) {
		return nil, fmt.Errorf("target %d: %w", target, ErrIndexOutOfRange)
	}
	if !slices.Contains(front, target) {
		return nil, fmt.Errorf("node %d: %w", target, ErrNotInFrontLayer)
	}
	for _, n := range front {
		if n < 0 || n >= len(d.ops) {
			return nil, fmt.Errorf("front node %d: %w", n, ErrIndexOutOfRange)
		}
	}

	done.Add(target)
	next := mapset.NewThreadUnsafeSet[int]()
	for _, n := range front {
		if n != target {
			next.Add(n)
		}
	}
	for _, s := range d.succ[target] {
		ready := true
		for _, p := range d.pred[s] {
			if !done.Contains(p) {
				ready = false
				break
			}
		}
		if ready {
			next.Add(s)
		}
	}

	out := next.ToSlice()
	slices.Sort(out)
	return out, nil
}

// CommutingOperations returns the nodes whose operation commutes with every
// neighbor it has in the graph, predecessors and successors alike:
// definitions, annotations, and operations whose resource overlaps turned
// out not to force true ordering. Such nodes are freely relocatable.
func (d *CircuitDag) CommutingOperations() []int {
	var out []int
	for n := range d.ops {
		if d.commutesWithNeighbors(n, d.pred[n]) && d.commutesWithNeighbors(n, d.succ[n]) {
			out = append(out, n)
		}
	}
	return out
}

func (d *CircuitDag) commutesWithNeighbors(n int, neighbors []int) bool {
	op := d.ops[n]
	for _, m := range neighbors {
		if !op.CommutesWith(d.ops[m]) || !d.ops[m].CommutesWith(op) {
			return false
		}
	}
	return true
}

func (d *CircuitDag) executedSet(executed []int) (mapset.Set[int], error) {
	done := mapset.NewThreadUnsafeSet[int]()
	for _, n := range executed {
		if n < 0 || n >= len(d.ops) {
			return nil, fmt.Errorf("executed node %d: %w", n, ErrIndexOutOfRange)
		}
		done.Add(n)
	}
	return done, nil
}

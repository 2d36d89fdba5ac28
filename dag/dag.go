// Package dag builds a dependency graph over circuit operations. Two
// operations are ordered by an edge only when they touch overlapping
// resources and do not commute, so everything left unordered may execute in
// parallel.
package dag

import (
	"errors"
	"fmt"
	"slices"

	mapset "github.com/deckarep/golang-set/v2"

	"qcircdag/circuit"
	"qcircdag/operations"
)

var (
	// ErrDuplicateDefinition is returned when a register is declared twice.
	ErrDuplicateDefinition = errors.New("register already defined")
	// ErrNotInFrontLayer is returned when a front-layer advance names an
	// operation outside the given layer.
	ErrNotInFrontLayer = errors.New("operation not in front layer")
	// ErrIndexOutOfRange is returned when a node index does not exist.
	ErrIndexOutOfRange = errors.New("node index out of range")
)

// CircuitDag is a directed acyclic graph of circuit operations. Node indices
// are assigned in insertion order and never change; the logical position of a
// node in the program comes from the edges, not the index.
type CircuitDag struct {
	ops  []operations.Operation
	pred [][]int
	succ [][]int

	// order assigns each node its chronological slot: back inserts count up
	// from 0, front inserts count down from -1. It sequences the resource
	// chains; it is not a topological order.
	order     []int
	nextBack  int
	nextFront int

	definitions map[string]int

	// Resource chains list, chronologically, every node touching a resource.
	// They bound the candidate set when a new node scans for conflicts.
	qubitChains map[int][]int
	allChain    []int
	regChains   map[string][]int
}

// New creates an empty graph.
func New() *CircuitDag {
	return &CircuitDag{
		nextFront:   -1,
		definitions: make(map[string]int),
		qubitChains: make(map[int][]int),
		regChains:   make(map[string][]int),
	}
}

// FromCircuit builds the graph of a whole circuit in program order.
func FromCircuit(c *circuit.Circuit) (*CircuitDag, error) {
	d := New()
	for i, op := range c.Operations() {
		if _, err := d.AddToBack(op); err != nil {
			return nil, fmt.Errorf("operation %d (%s): %w", i, op.Name(), err)
		}
	}
	return d, nil
}

// NodeCount returns the number of nodes.
func (d *CircuitDag) NodeCount() int { return len(d.ops) }

// EdgeCount returns the number of edges.
func (d *CircuitDag) EdgeCount() int {
	total := 0
	for _, succs := range d.succ {
		total += len(succs)
	}
	return total
}

// Operation returns a copy of the operation stored at the given node. The
// graph owns its operations; callers never get a view into them.
func (d *CircuitDag) Operation(node int) (operations.Operation, error) {
	if node < 0 || node >= len(d.ops) {
		return nil, fmt.Errorf("node %d: %w", node, ErrIndexOutOfRange)
	}
	return operations.Clone(d.ops[node]), nil
}

// Predecessors returns the direct predecessors of a node, ascending.
func (d *CircuitDag) Predecessors(node int) ([]int, error) {
	if node < 0 || node >= len(d.ops) {
		return nil, fmt.Errorf("node %d: %w", node, ErrIndexOutOfRange)
	}
	out := slices.Clone(d.pred[node])
	slices.Sort(out)
	return out, nil
}

// Successors returns the direct successors of a node, ascending.
func (d *CircuitDag) Successors(node int) ([]int, error) {
	if node < 0 || node >= len(d.ops) {
		return nil, fmt.Errorf("node %d: %w", node, ErrIndexOutOfRange)
	}
	out := slices.Clone(d.succ[node])
	slices.Sort(out)
	return out, nil
}

// AddToBack appends an operation as the chronologically last node and returns
// its index. On error the graph is unchanged.
func (d *CircuitDag) AddToBack(op operations.Operation) (int, error) {
	if err := d.checkDefinition(op); err != nil {
		return 0, err
	}

	n := d.newNode(op, d.nextBack)
	d.nextBack++

	anc := make([]bool, n)

	// Declaration-before-use edges. Definitions commute with everything, so
	// the conflict scan below would never order them.
	if !op.IsDefinition() {
		for _, register := range op.InvolvedClassical().Registers() {
			if def, ok := d.definitions[register]; ok {
				d.linkBefore(def, n, anc)
			}
		}
	}

	candidates := d.conflictCandidates(op)
	slices.SortFunc(candidates, func(a, b int) int { return d.order[b] - d.order[a] })
	for _, p := range candidates {
		if anc[p] {
			continue
		}
		if d.ops[p].CommutesWith(op) {
			continue
		}
		d.linkBefore(p, n, anc)
	}

	d.recordTouch(n, op, false)
	return n, nil
}

// AddToFront inserts an operation as the chronologically first node and
// returns its index. Edges mirror AddToBack: the new node scans forward and
// becomes a predecessor of every existing conflict. On error the graph is
// unchanged.
func (d *CircuitDag) AddToFront(op operations.Operation) (int, error) {
	if err := d.checkDefinition(op); err != nil {
		return 0, err
	}

	n := d.newNode(op, d.nextFront)
	d.nextFront--

	desc := make([]bool, n)

	if op.IsDefinition() {
		// A definition pushed to the front must still precede every
		// operation already referencing its register.
		register := op.InvolvedClassical().Registers()[0]
		for _, m := range d.regChains[register] {
			if !desc[m] {
				d.linkAfter(n, m, desc)
			}
		}
	} else {
		// The register's definition keeps precedence even over a
		// front-inserted operation. Definitions never gain predecessors, so
		// this cannot create a cycle.
		for _, register := range op.InvolvedClassical().Registers() {
			if def, ok := d.definitions[register]; ok && def != n {
				d.succ[def] = append(d.succ[def], n)
				d.pred[n] = append(d.pred[n], def)
			}
		}
	}

	candidates := d.conflictCandidates(op)
	slices.SortFunc(candidates, func(a, b int) int { return d.order[a] - d.order[b] })
	for _, m := range candidates {
		if desc[m] {
			continue
		}
		if op.CommutesWith(d.ops[m]) {
			continue
		}
		d.linkAfter(n, m, desc)
	}

	d.recordTouch(n, op, true)
	return n, nil
}

// checkDefinition rejects a second definition of an already-defined register.
func (d *CircuitDag) checkDefinition(op operations.Operation) error {
	if !op.IsDefinition() {
		return nil
	}
	register := op.InvolvedClassical().Registers()[0]
	if _, ok := d.definitions[register]; ok {
		return fmt.Errorf("register %q: %w", register, ErrDuplicateDefinition)
	}
	return nil
}

func (d *CircuitDag) newNode(op operations.Operation, order int) int {
	n := len(d.ops)
	d.ops = append(d.ops, op)
	d.pred = append(d.pred, nil)
	d.succ = append(d.succ, nil)
	d.order = append(d.order, order)
	return n
}

// conflictCandidates returns every existing node sharing a resource with op.
// Over-approximation is fine: the caller re-checks commutation per candidate.
func (d *CircuitDag) conflictCandidates(op operations.Operation) []int {
	seen := mapset.NewThreadUnsafeSet[int]()

	qubits := op.InvolvedQubits()
	switch {
	case qubits.IsAll():
		for _, chain := range d.qubitChains {
			seen.Append(chain...)
		}
		seen.Append(d.allChain...)
	case !qubits.IsNone():
		for _, q := range qubits.Qubits() {
			seen.Append(d.qubitChains[q]...)
		}
		seen.Append(d.allChain...)
	}

	for _, register := range op.InvolvedClassical().Registers() {
		seen.Append(d.regChains[register]...)
	}

	return seen.ToSlice()
}

// linkBefore adds the edge p -> n and marks p and its ancestors so the
// backward scan skips nodes already ordered transitively.
func (d *CircuitDag) linkBefore(p, n int, anc []bool) {
	d.succ[p] = append(d.succ[p], n)
	d.pred[n] = append(d.pred[n], p)
	d.markAncestors(p, anc)
}

func (d *CircuitDag) markAncestors(node int, anc []bool) {
	if anc[node] {
		return
	}
	anc[node] = true
	for _, p := range d.pred[node] {
		d.markAncestors(p, anc)
	}
}

// linkAfter adds the edge n -> m and marks m and its descendants, the mirror
// of linkBefore for front insertion.
func (d *CircuitDag) linkAfter(n, m int, desc []bool) {
	d.succ[n] = append(d.succ[n], m)
	d.pred[m] = append(d.pred[m], n)
	d.markDescendants(m, desc)
}

func (d *CircuitDag) markDescendants(node int, desc []bool) {
	if desc[node] {
		return
	}
	desc[node] = true
	for _, s := range d.succ[node] {
		d.markDescendants(s, desc)
	}
}

// recordTouch registers the node on every resource chain it touches. Front
// inserts prepend so chains stay chronological.
func (d *CircuitDag) recordTouch(n int, op operations.Operation, front bool) {
	add := func(chain []int) []int {
		if front {
			return slices.Insert(chain, 0, n)
		}
		return append(chain, n)
	}

	qubits := op.InvolvedQubits()
	switch {
	case qubits.IsAll():
		d.allChain = add(d.allChain)
	case !qubits.IsNone():
		for _, q := range qubits.Qubits() {
			d.qubitChains[q] = add(d.qubitChains[q])
		}
	}

	for _, register := range op.InvolvedClassical().Registers() {
		d.regChains[register] = add(d.regChains[register])
	}

	if op.IsDefinition() {
		d.definitions[op.InvolvedClassical().Registers()[0]] = n
	}
}

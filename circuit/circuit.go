// Package circuit holds the linear, human-authored representation of a
// quantum program: an ordered sequence of operations plus a qubit-count
// hint. The dependency graph in package dag consumes it read-only.
package circuit

import (
	"iter"

	"qcircdag/operations"
)

// Circuit is an ordered, mutable sequence of operations.
type Circuit struct {
	NumQubits int
	ops       []operations.Operation
}

// New creates an empty circuit sized for the given number of qubits.
func New(numQubits int) *Circuit {
	return &Circuit{NumQubits: numQubits}
}

// Add appends an operation and grows the qubit count to cover it.
func (c *Circuit) Add(op operations.Operation) {
	c.ops = append(c.ops, op)
	for _, q := range op.InvolvedQubits().Qubits() {
		if q+1 > c.NumQubits {
			c.NumQubits = q + 1
		}
	}
}

// Len returns the number of operations.
func (c *Circuit) Len() int { return len(c.ops) }

// Get returns the operation at position i.
func (c *Circuit) Get(i int) operations.Operation { return c.ops[i] }

// Operations iterates the circuit in program order.
func (c *Circuit) Operations() iter.Seq2[int, operations.Operation] {
	return func(yield func(int, operations.Operation) bool) {
		for i, op := range c.ops {
			if !yield(i, op) {
				return
			}
		}
	}
}

// Definitions returns the register definitions in program order.
func (c *Circuit) Definitions() []operations.Definition {
	var defs []operations.Definition
	for _, op := range c.ops {
		if def, ok := op.(operations.Definition); ok {
			defs = append(defs, def)
		}
	}
	return defs
}

// Package operations models the atomic instructions of a quantum program:
// gate applications, classical-register definitions, measurements and
// pragmas. Every kind reports the qubits and classical register cells it
// touches and whether it may be reordered past another operation, which is
// all the dependency graph needs to schedule it.
package operations

// Operation is the closed set of instruction kinds. The concrete types are
// Definition, GateOperation, Measurement and Pragma; scheduling code never
// needs to know more about an operation than this interface exposes.
type Operation interface {
	// Name returns a short identifier for the operation, e.g. "H", "CX",
	// "MeasureQubit", "Definition".
	Name() string
	// InvolvedQubits returns the qubits the operation acts on.
	InvolvedQubits() InvolvedQubits
	// InvolvedClassical returns the classical register cells the operation
	// reads or writes.
	InvolvedClassical() InvolvedClassical
	// CommutesWith reports whether swapping this operation with other
	// preserves program semantics. It is a pairwise oracle: callers must not
	// infer commutation through chains of intermediate operations.
	CommutesWith(other Operation) bool
	// IsDefinition reports whether the operation declares a classical
	// register. Definitions are unique per register name and are ordered
	// before every operation referencing their register.
	IsDefinition() bool
}

// Clone returns a deep copy of an operation, so that callers can hand
// operations to a graph (or receive them back) without sharing slices.
func Clone(op Operation) Operation {
	switch o := op.(type) {
	case GateOperation:
		o.Controls = append([]int(nil), o.Controls...)
		o.Params = append([]float64(nil), o.Params...)
		if o.Conditional != nil {
			bit := *o.Conditional
			o.Conditional = &bit
		}
		return o
	case Pragma:
		o.Params = append([]float64(nil), o.Params...)
		return o
	default:
		// Definition and Measurement are flat values.
		return op
	}
}

// DisjointResources reports whether two operations share no qubit and no
// classical register cell. Operations with disjoint resources always commute.
func DisjointResources(a, b Operation) bool {
	return !a.InvolvedQubits().Overlaps(b.InvolvedQubits()) &&
		!a.InvolvedClassical().Overlaps(b.InvolvedClassical())
}

package operations

import "slices"

// GateOperation is a unitary gate application. Target is always set; Control
// is -1 unless the gate is singly controlled; Controls carries the control
// qubits of multi-controlled gates such as CCX. Conditional, when non-nil,
// makes the gate classically controlled on one register cell.
type GateOperation struct {
	Type        string // "H", "X", "CX", "RX", ...
	Target      int
	Control     int
	Controls    []int
	Params      []float64
	IsDagger    bool
	Conditional *ClassicalBit
}

// NewGate builds a single-qubit gate, or a controlled gate when a control
// qubit is supplied.
func NewGate(gateType string, target int, control ...int) GateOperation {
	ctrl := -1
	if len(control) > 0 {
		ctrl = control[0]
	}
	return GateOperation{Type: gateType, Target: target, Control: ctrl}
}

// NewParameterizedGate builds a gate with rotation/phase parameters.
func NewParameterizedGate(gateType string, target int, params []float64, control ...int) GateOperation {
	g := NewGate(gateType, target, control...)
	g.Params = params
	return g
}

// NewMultiControlGate builds a gate with several control qubits (CCX etc.).
func NewMultiControlGate(gateType string, target int, controls []int) GateOperation {
	return GateOperation{Type: gateType, Target: target, Control: -1, Controls: controls}
}

// NewDaggerGate builds the adjoint of a named gate.
func NewDaggerGate(gateType string, target int) GateOperation {
	return GateOperation{Type: gateType, Target: target, Control: -1, IsDagger: true}
}

// WithCondition returns a copy of the gate conditioned on a classical bit.
func (g GateOperation) WithCondition(bit ClassicalBit) GateOperation {
	g.Conditional = &bit
	return g
}

func (g GateOperation) Name() string { return g.Type }

func (g GateOperation) InvolvedQubits() InvolvedQubits {
	qubits := []int{g.Target}
	if g.Control >= 0 {
		qubits = append(qubits, g.Control)
	}
	qubits = append(qubits, g.Controls...)
	return QubitSet(qubits...)
}

func (g GateOperation) InvolvedClassical() InvolvedClassical {
	if g.Conditional == nil {
		return NoClassical()
	}
	return ClassicalSet(*g.Conditional)
}

// CommutesWith reports whether the two operations may be swapped. Gates on
// disjoint resources always commute; gates sharing qubits commute when both
// are diagonal in the computational basis, or when they are the same gate.
func (g GateOperation) CommutesWith(other Operation) bool {
	if other.IsDefinition() {
		return true
	}
	if p, ok := other.(Pragma); ok && p.CommutesAll {
		return true
	}
	if DisjointResources(g, other) {
		return true
	}
	o, ok := other.(GateOperation)
	if !ok {
		return false
	}
	if zDiagonal[g.Type] && zDiagonal[o.Type] {
		return true
	}
	return g.sameUnitary(o)
}

func (g GateOperation) IsDefinition() bool { return false }

// sameUnitary reports whether two gate applications are the identical
// unitary on the identical qubits; an operation trivially commutes with
// itself.
func (g GateOperation) sameUnitary(o GateOperation) bool {
	if g.Conditional != nil || o.Conditional != nil {
		return false
	}
	return g.Type == o.Type &&
		g.Target == o.Target &&
		g.Control == o.Control &&
		g.IsDagger == o.IsDagger &&
		slices.Equal(g.Controls, o.Controls) &&
		slices.Equal(g.Params, o.Params)
}

package operations

// Measurement reads one qubit into one cell of a classical register.
type Measurement struct {
	Qubit    int
	Register string
	Index    int
}

// NewMeasurement measures the given qubit into register[index].
func NewMeasurement(qubit int, register string, index int) Measurement {
	return Measurement{Qubit: qubit, Register: register, Index: index}
}

func (m Measurement) Name() string { return "MeasureQubit" }

func (m Measurement) InvolvedQubits() InvolvedQubits { return QubitSet(m.Qubit) }

func (m Measurement) InvolvedClassical() InvolvedClassical {
	return ClassicalSet(ClassicalBit{Register: m.Register, Index: m.Index})
}

// CommutesWith is true only for definitions and operations on disjoint
// resources: a measurement collapses its qubit and overwrites its readout
// cell, so nothing overlapping may move past it.
func (m Measurement) CommutesWith(other Operation) bool {
	if other.IsDefinition() {
		return true
	}
	if p, ok := other.(Pragma); ok && p.CommutesAll {
		return true
	}
	return DisjointResources(m, other)
}

func (m Measurement) IsDefinition() bool { return false }

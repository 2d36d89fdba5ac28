package operations

// Pragma is a non-gate instruction: barriers, whole-register readout, noise
// insertions and annotations. Its resource footprint is data, not behavior,
// so one struct covers all pragma kinds.
type Pragma struct {
	Kind      string
	Qubits    InvolvedQubits
	Classical InvolvedClassical
	Params    []float64
	// CommutesAll declares the pragma reorderable past anything. Pure
	// annotations set it; execution-affecting pragmas must not.
	CommutesAll bool
}

// NewBarrier builds a scheduling barrier across all qubits.
func NewBarrier() Pragma {
	return Pragma{Kind: "Barrier", Qubits: AllQubits()}
}

// NewRepeatedMeasurement builds a whole-register readout of every qubit,
// the usual final instruction of a sampled circuit.
func NewRepeatedMeasurement(register string) Pragma {
	return Pragma{
		Kind:      "RepeatedMeasurement",
		Qubits:    AllQubits(),
		Classical: AllOfRegister(register),
	}
}

// NewNoisePragma builds a noise insertion on a single qubit, e.g.
// "Depolarizing" with a rate parameter. Simulation backends that do not
// model noise skip it, but it still orders against gates on its qubit.
func NewNoisePragma(noiseType string, qubit int, params ...float64) Pragma {
	return Pragma{Kind: noiseType, Qubits: QubitSet(qubit), Params: params}
}

// NewAnnotation builds a pragma with no resource footprint at all.
func NewAnnotation(kind string) Pragma {
	return Pragma{Kind: kind, CommutesAll: true}
}

func (p Pragma) Name() string { return p.Kind }

func (p Pragma) InvolvedQubits() InvolvedQubits { return p.Qubits }

func (p Pragma) InvolvedClassical() InvolvedClassical { return p.Classical }

func (p Pragma) CommutesWith(other Operation) bool {
	if p.CommutesAll {
		return true
	}
	if other.IsDefinition() {
		return true
	}
	if o, ok := other.(Pragma); ok && o.CommutesAll {
		return true
	}
	return DisjointResources(p, other)
}

func (p Pragma) IsDefinition() bool { return false }

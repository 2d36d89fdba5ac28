package operations

// RegisterKind distinguishes the value type of a classical register.
type RegisterKind string

const (
	BitRegister   RegisterKind = "bit"
	FloatRegister RegisterKind = "float"
)

// Definition declares a classical readout register. A register must be
// declared exactly once before any operation references it.
type Definition struct {
	Register string
	Length   int
	Kind     RegisterKind
	// IsOutput marks the register as part of the program's readout.
	IsOutput bool
}

// NewBitDefinition declares a bit register of the given length.
func NewBitDefinition(register string, length int, output bool) Definition {
	return Definition{Register: register, Length: length, Kind: BitRegister, IsOutput: output}
}

// NewFloatDefinition declares a float register of the given length.
func NewFloatDefinition(register string, length int, output bool) Definition {
	return Definition{Register: register, Length: length, Kind: FloatRegister, IsOutput: output}
}

func (d Definition) Name() string { return "Definition" }

func (d Definition) InvolvedQubits() InvolvedQubits { return NoQubits() }

func (d Definition) InvolvedClassical() InvolvedClassical {
	return AllOfRegister(d.Register)
}

// CommutesWith is always true: a definition carries no runtime effect, so it
// may sit anywhere as long as the structural declaration-before-use edges of
// the dependency graph hold. Maintaining those edges is the graph's job.
func (d Definition) CommutesWith(Operation) bool { return true }

func (d Definition) IsDefinition() bool { return true }

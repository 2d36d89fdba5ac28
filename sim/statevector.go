// Package sim is a small statevector simulator used to sanity-check
// schedules: executing a circuit block-by-block through its dependency graph
// must land in the same state as executing it linearly.
package sim

import (
	"math"
	"math/cmplx"

	"qcircdag/circuit"
	"qcircdag/dag"
	"qcircdag/operations"
)

type Complex = complex128

// StateVector holds 2^NumQubits amplitudes, qubit 0 being the lowest bit of
// the basis index.
type StateVector struct {
	Amplitudes []Complex
	NumQubits  int
}

// NewStateVector prepares |0...0>.
func NewStateVector(numQubits int) *StateVector {
	n := 1 << numQubits
	amps := make([]Complex, n)
	amps[0] = 1
	return &StateVector{Amplitudes: amps, NumQubits: numQubits}
}

func (s *StateVector) Clone() *StateVector {
	amps := make([]Complex, len(s.Amplitudes))
	copy(amps, s.Amplitudes)
	return &StateVector{Amplitudes: amps, NumQubits: s.NumQubits}
}

// Apply executes one operation on the state. Definitions, measurements,
// pragmas and classically conditioned gates are skipped: the simulator
// tracks pure unitary evolution only.
func (s *StateVector) Apply(op operations.Operation) {
	g, ok := op.(operations.GateOperation)
	if !ok || g.Conditional != nil {
		return
	}
	s.applyGate(g)
}

func (s *StateVector) applyGate(g operations.GateOperation) {
	switch g.Type {
	case "H":
		s.applyH(g.Target)
	case "X":
		s.applyX(g.Target)
	case "Y":
		s.applyY(g.Target)
	case "Z":
		s.applyZ(g.Target)
	case "S":
		s.applyS(g.Target, g.IsDagger)
	case "T":
		s.applyT(g.Target, g.IsDagger)
	case "RX":
		s.applyRX(g.Target, param(g))
	case "RY":
		s.applyRY(g.Target, param(g))
	case "RZ", "P", "U1":
		s.applyRZ(g.Target, param(g))
	case "CX":
		if g.Control >= 0 {
			s.applyCX(g.Control, g.Target)
		}
	case "CZ":
		if g.Control >= 0 {
			s.applyCZ(g.Control, g.Target)
		}
	case "SWAP":
		if g.Control >= 0 {
			s.applySWAP(g.Control, g.Target)
		}
	case "CCX":
		if len(g.Controls) == 2 {
			s.applyCCX(g.Controls[0], g.Controls[1], g.Target)
		}
	case "RESET":
		s.applyReset(g.Target)
	}
}

func param(g operations.GateOperation) float64 {
	if len(g.Params) > 0 {
		return g.Params[0]
	}
	return 0
}

func (s *StateVector) applyH(q int) {
	hFactor := complex(1.0/math.Sqrt2, 0)
	n := len(s.Amplitudes)
	bit := 1 << q
	newAmps := make([]Complex, n)
	for i := 0; i < n; i++ {
		if i&bit == 0 {
			j := i | bit
			newAmps[i] = hFactor * (s.Amplitudes[i] + s.Amplitudes[j])
			newAmps[j] = hFactor * (s.Amplitudes[i] - s.Amplitudes[j])
		}
	}
	s.Amplitudes = newAmps
}

func (s *StateVector) applyX(q int) {
	n := len(s.Amplitudes)
	bit := 1 << q
	for i := 0; i < n; i++ {
		if i&bit == 0 {
			j := i | bit
			s.Amplitudes[i], s.Amplitudes[j] = s.Amplitudes[j], s.Amplitudes[i]
		}
	}
}

func (s *StateVector) applyY(q int) {
	n := len(s.Amplitudes)
	bit := 1 << q
	for i := 0; i < n; i++ {
		if i&bit == 0 {
			j := i | bit
			s.Amplitudes[i], s.Amplitudes[j] = 1i*s.Amplitudes[j], -1i*s.Amplitudes[i]
		}
	}
}

func (s *StateVector) applyZ(q int) {
	n := len(s.Amplitudes)
	bit := 1 << q
	for i := 0; i < n; i++ {
		if i&bit != 0 {
			s.Amplitudes[i] *= -1
		}
	}
}

func (s *StateVector) applyS(q int, dagger bool) {
	n := len(s.Amplitudes)
	bit := 1 << q
	factor := 1i
	if dagger {
		factor = -1i
	}
	for i := 0; i < n; i++ {
		if i&bit != 0 {
			s.Amplitudes[i] *= factor
		}
	}
}

func (s *StateVector) applyT(q int, dagger bool) {
	n := len(s.Amplitudes)
	bit := 1 << q
	var factor Complex
	if dagger {
		factor = cmplx.Exp(complex(0, -math.Pi/4))
	} else {
		factor = cmplx.Exp(complex(0, math.Pi/4))
	}
	for i := 0; i < n; i++ {
		if i&bit != 0 {
			s.Amplitudes[i] *= factor
		}
	}
}

func (s *StateVector) applyRX(q int, theta float64) {
	n := len(s.Amplitudes)
	bit := 1 << q
	c := complex(math.Cos(theta/2), 0)
	js := complex(0, -math.Sin(theta/2))
	newAmps := make([]Complex, n)
	for i := 0; i < n; i++ {
		if i&bit == 0 {
			j := i | bit
			newAmps[i] = c*s.Amplitudes[i] + js*s.Amplitudes[j]
			newAmps[j] = js*s.Amplitudes[i] + c*s.Amplitudes[j]
		}
	}
	s.Amplitudes = newAmps
}

func (s *StateVector) applyRY(q int, theta float64) {
	n := len(s.Amplitudes)
	bit := 1 << q
	c := complex(math.Cos(theta/2), 0)
	s_ := complex(math.Sin(theta/2), 0)
	newAmps := make([]Complex, n)
	for i := 0; i < n; i++ {
		if i&bit == 0 {
			j := i | bit
			newAmps[i] = c*s.Amplitudes[i] - s_*s.Amplitudes[j]
			newAmps[j] = s_*s.Amplitudes[i] + c*s.Amplitudes[j]
		}
	}
	s.Amplitudes = newAmps
}

func (s *StateVector) applyRZ(q int, theta float64) {
	n := len(s.Amplitudes)
	bit := 1 << q
	phase := cmplx.Exp(complex(0, theta/2))
	for i := 0; i < n; i++ {
		if i&bit != 0 {
			s.Amplitudes[i] *= phase
		} else {
			s.Amplitudes[i] *= cmplx.Conj(phase)
		}
	}
}

func (s *StateVector) applyCX(control, target int) {
	n := len(s.Amplitudes)
	cBit := 1 << control
	tBit := 1 << target
	for i := 0; i < n; i++ {
		if i&cBit != 0 && i&tBit == 0 {
			j := i | tBit
			s.Amplitudes[i], s.Amplitudes[j] = s.Amplitudes[j], s.Amplitudes[i]
		}
	}
}

func (s *StateVector) applyCZ(control, target int) {
	n := len(s.Amplitudes)
	cBit := 1 << control
	tBit := 1 << target
	for i := 0; i < n; i++ {
		if i&cBit != 0 && i&tBit != 0 {
			s.Amplitudes[i] *= -1
		}
	}
}

func (s *StateVector) applySWAP(q1, q2 int) {
	n := len(s.Amplitudes)
	bit1 := 1 << q1
	bit2 := 1 << q2
	for i := 0; i < n; i++ {
		if i&bit1 != 0 && i&bit2 == 0 {
			j := (i & ^bit1) | bit2
			s.Amplitudes[i], s.Amplitudes[j] = s.Amplitudes[j], s.Amplitudes[i]
		}
	}
}

func (s *StateVector) applyCCX(ctrl1, ctrl2, target int) {
	n := len(s.Amplitudes)
	cBits := 1<<ctrl1 | 1<<ctrl2
	tBit := 1 << target
	for i := 0; i < n; i++ {
		if i&cBits == cBits && i&tBit == 0 {
			j := i | tBit
			s.Amplitudes[i], s.Amplitudes[j] = s.Amplitudes[j], s.Amplitudes[i]
		}
	}
}

func (s *StateVector) applyReset(q int) {
	n := len(s.Amplitudes)
	bit := 1 << q

	prob0 := 0.0
	for i := 0; i < n; i++ {
		if i&bit == 0 {
			prob0 += real(s.Amplitudes[i] * cmplx.Conj(s.Amplitudes[i]))
		}
	}

	norm := 1.0
	if prob0 > 0 {
		norm = math.Sqrt(prob0)
	}

	for i := 0; i < n; i++ {
		if i&bit == 0 {
			s.Amplitudes[i] = s.Amplitudes[i] / complex(norm, 0)
		} else {
			s.Amplitudes[i] = 0
		}
	}
}

// QubitProbability is the marginal of one qubit.
type QubitProbability struct {
	Prob0 float64
	Prob1 float64
}

func (s *StateVector) GetQubitProbabilities() []QubitProbability {
	probs := make([]QubitProbability, s.NumQubits)
	n := len(s.Amplitudes)

	for i := 0; i < n; i++ {
		prob := real(s.Amplitudes[i] * cmplx.Conj(s.Amplitudes[i]))
		for q := 0; q < s.NumQubits; q++ {
			if i&(1<<q) != 0 {
				probs[q].Prob1 += prob
			} else {
				probs[q].Prob0 += prob
			}
		}
	}

	return probs
}

// Run executes the circuit in program order.
func Run(c *circuit.Circuit) *StateVector {
	state := NewStateVector(max(c.NumQubits, 1))
	for _, op := range c.Operations() {
		state.Apply(op)
	}
	return state
}

// RunBlocks executes a dependency graph block by block. Operations inside a
// block touch disjoint qubits or commute, so any within-block order gives
// the same state; block order is the graph's layering.
func RunBlocks(d *dag.CircuitDag, numQubits int) *StateVector {
	state := NewStateVector(max(numQubits, 1))
	for block := range d.ParallelBlocks() {
		for _, n := range block {
			op, err := d.Operation(n)
			if err != nil {
				continue
			}
			state.Apply(op)
		}
	}
	return state
}

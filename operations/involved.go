package operations

import (
	"slices"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

// ClassicalBit addresses a single cell of a named classical register.
type ClassicalBit struct {
	Register string
	Index    int
}

// compareBits orders classical bits by register name, then index.
func compareBits(a, b ClassicalBit) int {
	if c := strings.Compare(a.Register, b.Register); c != 0 {
		return c
	}
	return a.Index - b.Index
}

// InvolvedQubits describes which qubits an operation acts on: a finite set,
// no qubits at all, or every qubit in the circuit (global pragmas).
type InvolvedQubits struct {
	all bool
	set mapset.Set[int]
}

// AllQubits marks an operation as acting on every qubit, however many exist.
func AllQubits() InvolvedQubits {
	return InvolvedQubits{all: true}
}

// NoQubits marks an operation as acting on no qubit (annotations, definitions).
func NoQubits() InvolvedQubits {
	return InvolvedQubits{}
}

// QubitSet marks an operation as acting on the given qubits.
func QubitSet(qubits ...int) InvolvedQubits {
	return InvolvedQubits{set: mapset.NewThreadUnsafeSet(qubits...)}
}

// IsAll reports whether the operation acts on every qubit.
func (iq InvolvedQubits) IsAll() bool { return iq.all }

// IsNone reports whether the operation acts on no qubit.
func (iq InvolvedQubits) IsNone() bool {
	return !iq.all && (iq.set == nil || iq.set.Cardinality() == 0)
}

// Contains reports whether qubit q is involved.
func (iq InvolvedQubits) Contains(q int) bool {
	if iq.all {
		return true
	}
	return iq.set != nil && iq.set.Contains(q)
}

// Qubits returns the involved qubits in ascending order. It returns nil for
// both the none and the all case; check IsAll before relying on the slice.
func (iq InvolvedQubits) Qubits() []int {
	if iq.all || iq.set == nil {
		return nil
	}
	qubits := iq.set.ToSlice()
	slices.Sort(qubits)
	return qubits
}

// Overlaps reports whether two involvement descriptions share a qubit. An
// all-qubits operation overlaps anything that touches at least one qubit.
func (iq InvolvedQubits) Overlaps(other InvolvedQubits) bool {
	if iq.IsNone() || other.IsNone() {
		return false
	}
	if iq.all || other.all {
		return true
	}
	return iq.set.Intersect(other.set).Cardinality() > 0
}

// InvolvedClassical describes which classical register cells an operation
// reads or writes: a finite set of (register, index) cells, a whole named
// register, or none.
type InvolvedClassical struct {
	allRegister string
	set         mapset.Set[ClassicalBit]
}

// NoClassical marks an operation as touching no classical register.
func NoClassical() InvolvedClassical {
	return InvolvedClassical{}
}

// AllOfRegister marks an operation as touching every cell of one register.
func AllOfRegister(register string) InvolvedClassical {
	return InvolvedClassical{allRegister: register}
}

// ClassicalSet marks an operation as touching the given register cells.
func ClassicalSet(bits ...ClassicalBit) InvolvedClassical {
	return InvolvedClassical{set: mapset.NewThreadUnsafeSet(bits...)}
}

// IsNone reports whether no classical register is involved.
func (ic InvolvedClassical) IsNone() bool {
	return ic.allRegister == "" && (ic.set == nil || ic.set.Cardinality() == 0)
}

// AllRegister returns the register name and true when the operation touches
// an entire register.
func (ic InvolvedClassical) AllRegister() (string, bool) {
	return ic.allRegister, ic.allRegister != ""
}

// Bits returns the involved register cells sorted by register name then
// index. It is nil for the none and whole-register cases.
func (ic InvolvedClassical) Bits() []ClassicalBit {
	if ic.allRegister != "" || ic.set == nil {
		return nil
	}
	bits := ic.set.ToSlice()
	slices.SortFunc(bits, compareBits)
	return bits
}

// Registers returns the names of every register the operation references,
// ascending and without duplicates.
func (ic InvolvedClassical) Registers() []string {
	if ic.allRegister != "" {
		return []string{ic.allRegister}
	}
	if ic.set == nil {
		return nil
	}
	names := mapset.NewThreadUnsafeSet[string]()
	for bit := range ic.set.Iter() {
		names.Add(bit.Register)
	}
	out := names.ToSlice()
	slices.Sort(out)
	return out
}

// Overlaps reports whether two involvement descriptions share a register
// cell. A whole-register operation overlaps anything touching that register.
func (ic InvolvedClassical) Overlaps(other InvolvedClassical) bool {
	if ic.IsNone() || other.IsNone() {
		return false
	}
	if ic.allRegister != "" {
		return other.touchesRegister(ic.allRegister)
	}
	if other.allRegister != "" {
		return ic.touchesRegister(other.allRegister)
	}
	return ic.set.Intersect(other.set).Cardinality() > 0
}

func (ic InvolvedClassical) touchesRegister(register string) bool {
	if ic.allRegister != "" {
		return ic.allRegister == register
	}
	if ic.set == nil {
		return false
	}
	for bit := range ic.set.Iter() {
		if bit.Register == register {
			return true
		}
	}
	return false
}

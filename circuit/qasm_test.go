package circuit

import (
	"math"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"

	"qcircdag/operations"
)

func TestParseNamedCregs(t *testing.T) {
	qasm := `OPENQASM 2.0;
include "qelib1.inc";

qreg q[3];
creg c0[1];
creg c1[1];

h q[1];
cx q[1], q[2];
cx q[0], q[1];
h q[0];
measure q[0] -> c0[0];
measure q[1] -> c1[0];

if(c1==1) x q[2];
if(c0==1) z q[2];`

	c, err := ParseQASM(qasm)
	assert.NoError(t, err)

	assert.Equal(t, 3, c.NumQubits)
	assert.Equal(t, 10, c.Len())

	defs := c.Definitions()
	assert.Equal(t, 2, len(defs))
	assert.Equal(t, "c0", defs[0].Register)
	assert.Equal(t, "c1", defs[1].Register)
	assert.Equal(t, 1, defs[1].Length)

	m, ok := c.Get(6).(operations.Measurement)
	assert.True(t, ok)
	assert.Equal(t, operations.NewMeasurement(0, "c0", 0), m)

	// Bare register in an if() guard addresses cell 0.
	g, ok := c.Get(8).(operations.GateOperation)
	assert.True(t, ok)
	assert.Equal(t, "X", g.Type)
	assert.Equal(t, 2, g.Target)
	assert.Equal(t, operations.ClassicalBit{Register: "c1", Index: 0}, *g.Conditional)
}

func TestParseRejectsGarbage(t *testing.T) {
	// Well-formed gate syntax with an unknown mnemonic must error too, not
	// turn into a phantom gate the simulator silently skips.
	lines := []string{
		"frobnicate q[0];",
		"frob(pi/2) q[0];",
		"frob q[0], q[1];",
		"frob(0.5) q[0], q[1];",
		"h q[0], q[1], q[2];",
		"total garbage",
	}
	for _, line := range lines {
		_, err := ParseQASM("qreg q[3];\n" + line)
		assert.Error(t, err, "%s", line)
		assert.Contains(t, err.Error(), "unrecognized")
	}
}

func TestConditionalGuardComparesToOne(t *testing.T) {
	header := "qreg q[2];\ncreg c[1];\n"

	c, err := ParseQASM(header + "if (c[0]==1) x q[1];")
	assert.NoError(t, err)
	g, ok := c.Get(1).(operations.GateOperation)
	assert.True(t, ok)
	assert.Equal(t, operations.ClassicalBit{Register: "c", Index: 0}, *g.Conditional)

	// Only ==1 guards exist in this dialect.
	_, err = ParseQASM(header + "if (c[0]==0) x q[1];")
	assert.Error(t, err)

	_, err = ParseQASM(header + "if (c[0]==1) frob q[1];")
	assert.Error(t, err)
}

func TestRoundTripConditional(t *testing.T) {
	c := New(3)
	c.Add(operations.NewBitDefinition("c", 1, true))
	c.Add(operations.NewGate("H", 0))
	c.Add(operations.NewMeasurement(0, "c", 0))
	c.Add(operations.NewGate("X", 2).WithCondition(operations.ClassicalBit{Register: "c", Index: 0}))

	qasm := c.ToQASM()
	assert.Contains(t, qasm, "creg c[1];")
	assert.Contains(t, qasm, "measure q[0] -> c[0];")
	assert.Contains(t, qasm, "if (c[0]==1) x q[2];")

	c2, err := ParseQASM(qasm)
	assert.NoError(t, err)
	assert.Equal(t, 4, c2.Len())

	g, ok := c2.Get(3).(operations.GateOperation)
	assert.True(t, ok)
	assert.Equal(t, "X", g.Type)
	assert.Equal(t, 0, g.Conditional.Index)
}

func TestPiParamRoundTrip(t *testing.T) {
	c := New(2)
	c.Add(operations.NewParameterizedGate("RX", 0, []float64{math.Pi / 2}))
	c.Add(operations.NewParameterizedGate("RY", 1, []float64{3 * math.Pi / 4}))
	c.Add(operations.NewParameterizedGate("CRZ", 1, []float64{-math.Pi}, 0))

	qasm := c.ToQASM()
	assert.Contains(t, qasm, "rx(pi/2) q[0];")
	assert.Contains(t, qasm, "ry(3*pi/4) q[1];")
	assert.Contains(t, qasm, "crz(-pi) q[0], q[1];")

	// The default creg in the header parses back as one extra definition.
	c2, err := ParseQASM(qasm)
	assert.NoError(t, err)
	assert.Equal(t, 4, c2.Len())

	crz, ok := c2.Get(3).(operations.GateOperation)
	assert.True(t, ok)
	assert.Equal(t, "CRZ", crz.Type)
	assert.Equal(t, 0, crz.Control)
	assert.True(t, math.Abs(crz.Params[0]+math.Pi) < 1e-10)
}

func TestDaggerAndMultiControlRoundTrip(t *testing.T) {
	c := New(3)
	c.Add(operations.NewDaggerGate("S", 0))
	c.Add(operations.NewMultiControlGate("CCX", 2, []int{0, 1}))

	qasm := c.ToQASM()
	assert.Contains(t, qasm, "sdg q[0];")
	assert.Contains(t, qasm, "ccx q[0], q[1], q[2];")

	c2, err := ParseQASM(qasm)
	assert.NoError(t, err)

	sdg, ok := c2.Get(1).(operations.GateOperation)
	assert.True(t, ok)
	assert.Equal(t, "S", sdg.Type)
	assert.True(t, sdg.IsDagger)

	ccx, ok := c2.Get(2).(operations.GateOperation)
	assert.True(t, ok)
	assert.Equal(t, []int{0, 1}, ccx.Controls)
	assert.Equal(t, 2, ccx.Target)
}

func TestNoiseCommentRoundTrip(t *testing.T) {
	c := New(2)
	c.Add(operations.NewGate("H", 0))
	c.Add(operations.NewNoisePragma("Depolarizing", 0, 0.01))

	qasm := c.ToQASM()
	assert.Contains(t, qasm, "// noise depolarizing q[0] param=0.01")

	c2, err := ParseQASM(qasm)
	assert.NoError(t, err)
	assert.Equal(t, 3, c2.Len())

	p, ok := c2.Get(2).(operations.Pragma)
	assert.True(t, ok)
	assert.Equal(t, "Depolarizing", p.Kind)
	assert.Equal(t, []float64{0.01}, p.Params)
	assert.True(t, p.Qubits.Contains(0))
}

func TestBarrierEmit(t *testing.T) {
	c := New(2)
	c.Add(operations.NewGate("H", 0))
	c.Add(operations.NewBarrier())
	c.Add(operations.NewGate("X", 1))

	qasm := c.ToQASM()
	assert.Contains(t, qasm, "barrier q[0], q[1];")

	// The barrier line sits between the gates.
	hPos := strings.Index(qasm, "h q[0];")
	bPos := strings.Index(qasm, "barrier")
	xPos := strings.Index(qasm, "x q[1];")
	assert.True(t, hPos < bPos && bPos < xPos)
}

func TestAddGrowsQubitCount(t *testing.T) {
	c := New(1)
	c.Add(operations.NewGate("CX", 4, 2))
	assert.Equal(t, 5, c.NumQubits)
}

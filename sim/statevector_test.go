package sim

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/alecthomas/assert/v2"

	"qcircdag/circuit"
	"qcircdag/dag"
	"qcircdag/operations"
)

func assertSameState(t *testing.T, want, got *StateVector) {
	t.Helper()
	assert.Equal(t, want.NumQubits, got.NumQubits)
	for i := range want.Amplitudes {
		diff := cmplx.Abs(want.Amplitudes[i] - got.Amplitudes[i])
		assert.True(t, diff < 1e-10,
			"amplitude %d: want %v, got %v", i, want.Amplitudes[i], got.Amplitudes[i])
	}
}

func TestBellState(t *testing.T) {
	c := circuit.New(2)
	c.Add(operations.NewGate("H", 0))
	c.Add(operations.NewGate("CX", 1, 0))

	state := Run(c)
	inv := 1 / math.Sqrt2
	assert.True(t, cmplx.Abs(state.Amplitudes[0]-complex(inv, 0)) < 1e-10)
	assert.True(t, cmplx.Abs(state.Amplitudes[3]-complex(inv, 0)) < 1e-10)
	assert.True(t, cmplx.Abs(state.Amplitudes[1]) < 1e-10)
	assert.True(t, cmplx.Abs(state.Amplitudes[2]) < 1e-10)

	probs := state.GetQubitProbabilities()
	for q := range 2 {
		assert.True(t, math.Abs(probs[q].Prob1-0.5) < 1e-10)
	}
}

func TestRunBlocksMatchesLinearExecution(t *testing.T) {
	circuits := map[string]*circuit.Circuit{}

	ghz := circuit.New(3)
	ghz.Add(operations.NewBitDefinition("ro", 3, true))
	ghz.Add(operations.NewGate("H", 0))
	ghz.Add(operations.NewGate("CX", 1, 0))
	ghz.Add(operations.NewGate("CX", 2, 1))
	ghz.Add(operations.NewMeasurement(0, "ro", 0))
	circuits["ghz"] = ghz

	// Diagonal gates interleaved with an X: block layering reorders them
	// relative to program order, the state must not care.
	diag := circuit.New(2)
	diag.Add(operations.NewParameterizedGate("RZ", 0, []float64{0.3}))
	diag.Add(operations.NewGate("H", 1))
	diag.Add(operations.NewGate("Z", 0))
	diag.Add(operations.NewGate("X", 0))
	diag.Add(operations.NewGate("CZ", 1, 0))
	circuits["diagonal chain"] = diag

	mixed := circuit.New(3)
	mixed.Add(operations.NewGate("H", 0))
	mixed.Add(operations.NewGate("H", 1))
	mixed.Add(operations.NewParameterizedGate("RX", 2, []float64{math.Pi / 3}))
	mixed.Add(operations.NewBarrier())
	mixed.Add(operations.NewGate("CX", 1, 0))
	mixed.Add(operations.NewDaggerGate("S", 2))
	mixed.Add(operations.NewMultiControlGate("CCX", 2, []int{0, 1}))
	circuits["mixed with barrier"] = mixed

	for name, c := range circuits {
		d, err := dag.FromCircuit(c)
		assert.NoError(t, err, "%s", name)
		assertSameState(t, Run(c), RunBlocks(d, c.NumQubits))
	}
}

func TestConditionalGatesAreSkipped(t *testing.T) {
	c := circuit.New(2)
	c.Add(operations.NewGate("H", 0))
	c.Add(operations.NewGate("X", 1).WithCondition(operations.ClassicalBit{Register: "ro", Index: 0}))

	state := Run(c)
	probs := state.GetQubitProbabilities()
	assert.True(t, math.Abs(probs[1].Prob1) < 1e-10)
}

func TestResetCollapsesQubit(t *testing.T) {
	c := circuit.New(1)
	c.Add(operations.NewGate("H", 0))
	c.Add(operations.NewGate("RESET", 0))

	probs := Run(c).GetQubitProbabilities()
	assert.True(t, math.Abs(probs[0].Prob0-1) < 1e-10)
}

func TestDaggerUndoesGate(t *testing.T) {
	c := circuit.New(1)
	c.Add(operations.NewGate("H", 0))
	c.Add(operations.NewGate("S", 0))
	c.Add(operations.NewDaggerGate("S", 0))
	c.Add(operations.NewGate("H", 0))

	state := Run(c)
	assert.True(t, cmplx.Abs(state.Amplitudes[0]-1) < 1e-10)
}

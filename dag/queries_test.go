package dag

import (
	"testing"

	"github.com/alecthomas/assert/v2"

	"qcircdag/operations"
)

func TestExecutionBlockedIsTransitive(t *testing.T) {
	d, _ := FromCircuit(bellCircuit())

	// Nothing executed: the CX waits on H alone (the definition does not
	// touch qubits), the measurement waits on its whole ancestry.
	blocked, err := d.ExecutionBlocked(nil, 2)
	assert.NoError(t, err)
	assert.Equal(t, []int{1}, blocked)

	blocked, err = d.ExecutionBlocked(nil, 3)
	assert.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, blocked)

	blocked, err = d.ExecutionBlocked([]int{0, 1}, 3)
	assert.NoError(t, err)
	assert.Equal(t, []int{2}, blocked)

	blocked, err = d.ExecutionBlocked([]int{0, 1, 2}, 3)
	assert.NoError(t, err)
	assert.Equal(t, 0, len(blocked))
}

func TestBlockingPredecessorsIsDirectOnly(t *testing.T) {
	d, _ := FromCircuit(bellCircuit())

	// Direct view: the measurement's own predecessors are the definition and
	// the CX. H blocks it too, but only transitively.
	direct, err := d.BlockingPredecessors(nil, 3)
	assert.NoError(t, err)
	assert.Equal(t, []int{0, 2}, direct)

	transitive, _ := d.ExecutionBlocked(nil, 3)
	assert.Equal(t, []int{0, 1, 2}, transitive)

	direct, err = d.BlockingPredecessors([]int{0}, 3)
	assert.NoError(t, err)
	assert.Equal(t, []int{2}, direct)
}

func TestBlockingPredecessorsTrustsInconsistentInput(t *testing.T) {
	// Marking the CX executed while H is not violates the consistent-prefix
	// assumption. The direct view then underreports: it no longer sees H.
	// Only the transitive view stays sound under such input.
	d, _ := FromCircuit(bellCircuit())

	direct, err := d.BlockingPredecessors([]int{2}, 3)
	assert.NoError(t, err)
	assert.Equal(t, []int{0}, direct)

	transitive, err := d.ExecutionBlocked([]int{2}, 3)
	assert.NoError(t, err)
	assert.Equal(t, []int{0, 1}, transitive)
}

func TestQueriesValidateIndices(t *testing.T) {
	d, _ := FromCircuit(bellCircuit())

	_, err := d.ExecutionBlocked(nil, 9)
	assert.IsError(t, err, ErrIndexOutOfRange)

	_, err = d.ExecutionBlocked([]int{-1}, 2)
	assert.IsError(t, err, ErrIndexOutOfRange)

	_, err = d.BlockingPredecessors([]int{9}, 2)
	assert.IsError(t, err, ErrIndexOutOfRange)

	_, err = d.NewFrontLayer(nil, []int{0, 9}, 0)
	assert.IsError(t, err, ErrIndexOutOfRange)
}

func TestNewFrontLayerWalk(t *testing.T) {
	d, _ := FromCircuit(bellCircuit())

	front := d.FirstParallelBlock()
	assert.Equal(t, []int{0, 1}, front)

	// Execute H: the CX becomes ready, the definition stays.
	front, err := d.NewFrontLayer(nil, front, 1)
	assert.NoError(t, err)
	assert.Equal(t, []int{0, 2}, front)

	// Execute the definition: the CX is still the only ready gate, the
	// measurements wait on it.
	front, err = d.NewFrontLayer([]int{1}, front, 0)
	assert.NoError(t, err)
	assert.Equal(t, []int{2}, front)

	// Execute the CX: both measurements become ready at once.
	front, err = d.NewFrontLayer([]int{0, 1}, front, 2)
	assert.NoError(t, err)
	assert.Equal(t, []int{3, 4}, front)

	front, err = d.NewFrontLayer([]int{0, 1, 2}, front, 3)
	assert.NoError(t, err)
	assert.Equal(t, []int{4}, front)

	front, err = d.NewFrontLayer([]int{0, 1, 2, 3}, front, 4)
	assert.NoError(t, err)
	assert.Equal(t, 0, len(front))
}

func TestNewFrontLayerRejectsNonFrontTarget(t *testing.T) {
	d, _ := FromCircuit(bellCircuit())

	_, err := d.NewFrontLayer(nil, []int{0, 1}, 3)
	assert.IsError(t, err, ErrNotInFrontLayer)

	_, err = d.NewFrontLayer(nil, nil, 1)
	assert.IsError(t, err, ErrNotInFrontLayer)
}

func TestCommutingOperations(t *testing.T) {
	d := New()
	def, _ := d.AddToBack(operations.NewBitDefinition("ro", 1, true))
	rz1, _ := d.AddToBack(operations.NewParameterizedGate("RZ", 0, []float64{0.1}))
	rz2, _ := d.AddToBack(operations.NewParameterizedGate("RZ", 0, []float64{0.2}))
	note, _ := d.AddToBack(operations.NewAnnotation("Variance"))

	// Diagonal gates reorder freely among themselves.
	assert.Equal(t, []int{def, rz1, rz2, note}, d.CommutingOperations())

	// One X pins the rotations in place; the definition and annotation stay
	// free.
	d.AddToBack(operations.NewGate("X", 0))
	assert.Equal(t, []int{def, note}, d.CommutingOperations())
}

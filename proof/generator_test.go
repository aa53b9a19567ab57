package proof

import (
	"testing"

	"github.com/bf-rollup/obf/state"
	"github.com/bf-rollup/obf/verify"
	"github.com/stretchr/testify/require"
)

func buildTrace(t *testing.T, src string, cells []byte, payload []byte) (*state.Tree, *Trace) {
	ops, err := state.ParseCode(src)
	require.NoError(t, err)
	var sender state.Address
	contract := state.ContractValue{Code: ops, Cells: cells, Ptr: 0}
	initial := state.ParseTx(sender, contract, payload)
	trace, err := Generate(initial)
	require.NoError(t, err)
	return initial, trace
}

func TestGenerateRecordsEveryStepRoot(t *testing.T) {
	_, trace := buildTrace(t, "+", []byte{0}, nil)
	// "+"  -> one execute step, one terminal step: 3 roots (initial, after +, after terminal).
	require.Len(t, trace.StepRoots, 3)
	require.Len(t, trace.Access, 2)
}

func TestGenerateStepRootsChainIntoEachOther(t *testing.T) {
	initial, trace := buildTrace(t, "+>+", []byte{0}, nil)
	require.Equal(t, initial.Root.Root(), trace.StepRoots[0])

	cur := initial
	for i := 1; i < len(trace.StepRoots); i++ {
		cur = state.NextStep(cur)
		require.Equal(t, trace.StepRoots[i], cur.Root.Root())
	}
}

func TestSliceStepIsSufficientToReplayThatStep(t *testing.T) {
	initial, trace := buildTrace(t, "+>+<-", []byte{0}, nil)

	for i := 0; i < len(trace.Access); i++ {
		w := BuildStepWitness(trace, i)
		pre := verify.Reconstruct(w)
		next := state.NextStep(state.New(pre))
		require.Equal(t, trace.StepRoots[i+1], next.Root.Root(), "step %d", i)
	}
	_ = initial
}

func TestSanityLimitIsFatalNotAFailure(t *testing.T) {
	// An infinite loop: "[" with a nonzero cell pushes, "]" jumps back to
	// re-execute "[" forever, never running out of the stack since it's
	// always popped then re-pushed the same depth.
	ops, err := state.ParseCode("[]")
	require.NoError(t, err)
	var sender state.Address
	contract := state.ContractValue{Code: ops, Cells: []byte{1}, Ptr: 0}
	initial := state.BuildStep(state.StepValue{
		Gas:        1 << 30,
		Contract:   contract,
		ResultCode: state.Running,
	})
	_ = sender

	_, err = Generate(initial)
	require.Error(t, err)
}

package jsonio_test

import (
	"testing"

	"github.com/bf-rollup/obf/jsonio"
	"github.com/bf-rollup/obf/proof"
	"github.com/bf-rollup/obf/state"
	"github.com/bf-rollup/obf/verify"
	"github.com/stretchr/testify/require"
)

func TestInitStateRoundTrip(t *testing.T) {
	contracts := map[uint8]state.ContractValue{
		0: {Code: mustParse(t, "+>+<-"), Cells: []byte{1, 2, 3}, Ptr: 1},
		7: {Code: []state.Opcode{}, Cells: []byte{0}, Ptr: 0},
	}
	data, err := jsonio.SaveInitState(contracts)
	require.NoError(t, err)

	got, err := jsonio.LoadInitState(data)
	require.NoError(t, err)
	require.Equal(t, contracts, got)
}

func TestProofRoundTripThroughJSON(t *testing.T) {
	ops := mustParse(t, "+>+<-")
	var sender state.Address
	contract := state.ContractValue{Code: ops, Cells: []byte{0}, Ptr: 0}
	initial := state.ParseTx(sender, contract, nil)
	trace, err := proof.Generate(initial)
	require.NoError(t, err)

	data, err := jsonio.MarshalTrace(trace)
	require.NoError(t, err)

	got, err := jsonio.UnmarshalTrace(data)
	require.NoError(t, err)
	require.Equal(t, trace.StepRoots, got.StepRoots)
	require.Equal(t, trace.Nodes, got.Nodes)
	require.Equal(t, trace.Access, got.Access)
}

func TestStepWitnessRoundTripAndVerifies(t *testing.T) {
	ops := mustParse(t, "+>+<-")
	var sender state.Address
	contract := state.ContractValue{Code: ops, Cells: []byte{0}, Ptr: 0}
	initial := state.ParseTx(sender, contract, nil)
	trace, err := proof.Generate(initial)
	require.NoError(t, err)

	for i := 0; i < len(trace.Access); i++ {
		data, err := jsonio.MarshalStepWitness(trace, i)
		require.NoError(t, err)

		doc, err := jsonio.UnmarshalStepWitness(data)
		require.NoError(t, err)

		frontier, preRoot, postRoot, err := doc.Decode()
		require.NoError(t, err)
		require.Equal(t, trace.StepRoots[i], preRoot)
		require.Equal(t, trace.StepRoots[i+1], postRoot)

		valid, err := verify.Verify(frontier, postRoot)
		require.NoError(t, err)
		require.True(t, valid, "step %d", i)
	}
}

func mustParse(t *testing.T, src string) []state.Opcode {
	ops, err := state.ParseCode(src)
	require.NoError(t, err)
	return ops
}

package state

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, src string) []Opcode {
	ops, err := ParseCode(src)
	require.NoError(t, err)
	return ops
}

// run drives NextStep to a fixpoint, capped well under the real sanity
// limit since these are small scripted programs.
func run(t *testing.T, tree *Tree) StepValue {
	for i := 0; i < 2000; i++ {
		sv := DecodeStep(tree)
		if sv.ResultCode != Running {
			return sv
		}
		tree = NextStep(tree)
	}
	t.Fatal("program did not terminate")
	return StepValue{}
}

func TestEmptyCodeTerminatesOK(t *testing.T) {
	var sender Address
	contract := ContractValue{Cells: []byte{0}, Ptr: 0}
	tree := ParseTx(sender, contract, nil)

	require.EqualValues(t, GasFreeStipend, DecodeStep(tree).Gas)

	next := NextStep(tree)
	sv := DecodeStep(next)
	require.Equal(t, OK, sv.ResultCode)
	require.Equal(t, []byte{0}, sv.Contract.Cells)
}

func TestIncrCellThenTerminate(t *testing.T) {
	var sender Address
	contract := ContractValue{Code: mustParse(t, "+"), Cells: []byte{0}, Ptr: 0}
	tree := ParseTx(sender, contract, nil)

	step1 := NextStep(tree)
	sv1 := DecodeStep(step1)
	require.Equal(t, Running, sv1.ResultCode)
	require.Equal(t, byte(1), sv1.Contract.Cells[0])
	require.EqualValues(t, 1, sv1.PC)

	step2 := NextStep(step1)
	sv2 := DecodeStep(step2)
	require.Equal(t, OK, sv2.ResultCode)
}

func TestReadAndOutputSenderByte(t *testing.T) {
	var sender Address
	sender[0] = 0x00
	contract := ContractValue{Code: mustParse(t, ",."), Cells: []byte{0}, Ptr: 0}
	tree := ParseTx(sender, contract, []byte{0x07})

	sv := run(t, tree)
	require.Equal(t, OK, sv.ResultCode)
}

func TestOutputOneIsRevertSignal(t *testing.T) {
	var sender Address
	sender[0] = 0x01
	contract := ContractValue{Code: mustParse(t, ",."), Cells: []byte{0}, Ptr: 0}
	tree := ParseTx(sender, contract, []byte{0x07})

	sv := run(t, tree)
	require.EqualValues(t, 1, sv.ResultCode)
}

func TestOutputOtherByteAdvancesPastGetCell(t *testing.T) {
	var sender Address
	sender[0] = 0x42
	contract := ContractValue{Code: mustParse(t, ",.+"), Cells: []byte{0}, Ptr: 0}
	tree := ParseTx(sender, contract, []byte{0x07})

	sv := run(t, tree)
	require.Equal(t, OK, sv.ResultCode)
	require.Equal(t, byte(0x43), sv.Contract.Cells[0])
}

func TestLoopZeroesOutCellViaSkip(t *testing.T) {
	var sender Address
	contract := ContractValue{Code: mustParse(t, "[-]"), Cells: []byte{3}, Ptr: 0}
	tree := ParseTx(sender, contract, nil)

	sv := run(t, tree)
	require.Equal(t, OK, sv.ResultCode)
	require.Equal(t, byte(0), sv.Contract.Cells[0])
}

func TestMoveLeftAtOriginIsNegativePtr(t *testing.T) {
	var sender Address
	contract := ContractValue{Code: mustParse(t, "<"), Cells: []byte{0}, Ptr: 0}
	tree := ParseTx(sender, contract, nil)

	sv := DecodeStep(NextStep(tree))
	require.Equal(t, NegativePtr, sv.ResultCode)
}

func TestSevenTimesMultiplyLoop(t *testing.T) {
	var sender Address
	code := mustParse(t, ",,,,,,,,,,,,,,,,,,,,,[>+++++++<-]")
	contract := ContractValue{Code: code, Cells: []byte{0}, Ptr: 0}
	tree := ParseTx(sender, contract, []byte{0x02})

	sv := run(t, tree)
	require.Equal(t, OK, sv.ResultCode)
	require.Equal(t, []byte{0, 14}, sv.Contract.Cells)
}

func TestGasBoundary(t *testing.T) {
	var sender Address
	code := mustParse(t, "+++")
	contract := ContractValue{Code: code, Cells: []byte{0}, Ptr: 0}

	tree := BuildStep(StepValue{Gas: 3, Contract: contract, ResultCode: Running})
	final := run(t, tree)
	require.Equal(t, OK, final.ResultCode)

	short := BuildStep(StepValue{Gas: 2, Contract: contract, ResultCode: Running})
	finalShort := run(t, short)
	require.Equal(t, OutOfGas, finalShort.ResultCode)
}

func TestStackOverflowOnDeepNesting(t *testing.T) {
	src := ""
	for i := 0; i < MaxStackDepth+1; i++ {
		src += "["
	}
	var sender Address
	contract := ContractValue{Code: mustParse(t, src), Cells: []byte{1}, Ptr: 0}
	tree := BuildStep(StepValue{Gas: 1 << 20, Contract: contract, ResultCode: Running})

	sv := run(t, tree)
	require.Equal(t, StackOverflow, sv.ResultCode)
}

func TestJumpBackUnderflow(t *testing.T) {
	contract := ContractValue{Code: mustParse(t, "]"), Cells: []byte{0}, Ptr: 0}
	tree := BuildStep(StepValue{Gas: 10, Contract: contract, ResultCode: Running})

	sv := DecodeStep(NextStep(tree))
	require.Equal(t, StackUnderflow, sv.ResultCode)
}

func TestDeterministicRootAcrossReruns(t *testing.T) {
	var sender Address
	contract := ContractValue{Code: mustParse(t, "+>+<"), Cells: []byte{0}, Ptr: 0}
	a := ParseTx(sender, contract, nil)
	b := ParseTx(sender, contract, nil)

	for i := 0; i < 4; i++ {
		a = NextStep(a)
		b = NextStep(b)
		require.Equal(t, a.Root.Root(), b.Root.Root())
	}
}

package state

import (
	"github.com/bf-rollup/obf/container"
	"github.com/bf-rollup/obf/merkle"
)

// StepValue is the plain Go mirror of a Step, used at the JSON
// encode/decode boundary (package jsonio) and in tests.
type StepValue struct {
	Gas        uint64
	PC         uint32
	Stack      []uint32
	Indent     uint32
	Contract   ContractValue
	InputRead  uint32
	InputData  []byte
	ResultCode ExitCode
}

// BuildStep constructs a Step's tree from its plain fields.
func BuildStep(sv StepValue) *Tree {
	fields := []merkle.Node{
		merkle.Leaf(encodeU64(sv.Gas)),
		merkle.Leaf(encodeU32(sv.PC)),
		container.BuildU32List(MaxStackDepth, sv.Stack),
		merkle.Leaf(encodeU32(sv.Indent)),
		BuildContract(sv.Contract),
		merkle.Leaf(encodeU32(sv.InputRead)),
		container.BuildByteList(MaxInputData, sv.InputData),
		merkle.Leaf(encodeU8(uint8(sv.ResultCode))),
	}
	return &Tree{Root: container.Build(fields)}
}

// DecodeStep reads a Step tree back into its plain fields.
func DecodeStep(t *Tree) StepValue {
	stackLen := t.StackLen()
	stackDataRoot := t.at(GindexStackData)
	stack := container.DecodeU32List(stackDataRoot, MaxStackDepth, stackLen)

	inputDataLen := t.InputDataLen()
	inputDataRoot := t.at(GindexInputDataData)
	inputData := container.DecodeByteList(inputDataRoot, MaxInputData, inputDataLen)

	return StepValue{
		Gas:        t.Gas(),
		PC:         t.PC(),
		Stack:      stack,
		Indent:     t.Indent(),
		Contract:   DecodeContract(t.at(GindexContract)),
		InputRead:  t.InputRead(),
		InputData:  inputData,
		ResultCode: t.ResultCode(),
	}
}

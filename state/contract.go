package state

import (
	"github.com/bf-rollup/obf/container"
	"github.com/bf-rollup/obf/merkle"
)

// ContractValue is the plain Go mirror of a Contract, used at the JSON
// encode/decode boundary and by tests; the tree itself is the only form
// NextStep ever operates on.
type ContractValue struct {
	Code  []Opcode
	Cells []byte
	Ptr   uint32
}

// BuildContract constructs a Contract's tree root from its plain fields.
func BuildContract(cv ContractValue) merkle.Node {
	fields := []merkle.Node{
		BuildCode(cv.Code),
		container.BuildByteList(MaxCellCount, cv.Cells),
		merkle.Leaf(encodeU32(cv.Ptr)),
	}
	return container.Build(fields)
}

// DecodeContract reads a Contract's tree root back into its plain fields.
func DecodeContract(root merkle.Node) ContractValue {
	codeLenRoot := merkle.Index(root, merkle.Concat(gindexContractCode, container.GindexLength))
	codeDataRoot := merkle.Index(root, merkle.Concat(gindexContractCode, container.GindexData))
	opCount := CodeOpCount(decodeU64(codeLenRoot.Root()))
	ops := make([]Opcode, opCount)
	for i := range ops {
		ops[i] = GetOp(codeDataRoot, i)
	}

	cellsLenRoot := merkle.Index(root, merkle.Concat(gindexContractCells, container.GindexLength))
	cellsDataRoot := merkle.Index(root, merkle.Concat(gindexContractCells, container.GindexData))
	cellsLen := decodeU64(cellsLenRoot.Root())
	cells := container.DecodeByteList(cellsDataRoot, MaxCellCount, cellsLen)

	ptrRoot := merkle.Index(root, gindexContractPtr)
	ptr := decodeU32(ptrRoot.Root())

	return ContractValue{Code: ops, Cells: cells, Ptr: ptr}
}

package state

import (
	"github.com/bf-rollup/obf/container"
	"github.com/bf-rollup/obf/merkle"
)

// Field order and arity are fixed by spec §3/§9: "Each field of Step/
// Contract occupies a fixed, documented generalized index; changing the
// schema changes every root." These are the canonical indices every
// conforming implementation must agree on.

// Step fields, in declared order (8 fields => depth 3).
const (
	stepFieldGas = iota
	stepFieldPC
	stepFieldStack
	stepFieldIndent
	stepFieldContract
	stepFieldInputRead
	stepFieldInputData
	stepFieldResultCode
	stepFieldCount
)

// Contract fields, in declared order (3 fields => depth 2, one field slot
// padded with zero).
const (
	contractFieldCode = iota
	contractFieldCells
	contractFieldPtr
	contractFieldCount
)

var (
	GindexGas        = container.FieldGindex(stepFieldCount, stepFieldGas)
	GindexPC         = container.FieldGindex(stepFieldCount, stepFieldPC)
	GindexStack      = container.FieldGindex(stepFieldCount, stepFieldStack)
	GindexIndent     = container.FieldGindex(stepFieldCount, stepFieldIndent)
	GindexContract   = container.FieldGindex(stepFieldCount, stepFieldContract)
	GindexInputRead  = container.FieldGindex(stepFieldCount, stepFieldInputRead)
	GindexInputData  = container.FieldGindex(stepFieldCount, stepFieldInputData)
	GindexResultCode = container.FieldGindex(stepFieldCount, stepFieldResultCode)

	gindexContractCode  = container.FieldGindex(contractFieldCount, contractFieldCode)
	gindexContractCells = container.FieldGindex(contractFieldCount, contractFieldCells)
	gindexContractPtr   = container.FieldGindex(contractFieldCount, contractFieldPtr)

	GindexContractCode  = merkle.Concat(GindexContract, gindexContractCode)
	GindexContractCells = merkle.Concat(GindexContract, gindexContractCells)
	GindexContractPtr   = merkle.Concat(GindexContract, gindexContractPtr)

	GindexStackData   = merkle.Concat(GindexStack, container.GindexData)
	GindexStackLength = merkle.Concat(GindexStack, container.GindexLength)

	GindexCodeData   = merkle.Concat(GindexContractCode, container.GindexData)
	GindexCodeLength = merkle.Concat(GindexContractCode, container.GindexLength)

	GindexCellsData   = merkle.Concat(GindexContractCells, container.GindexData)
	GindexCellsLength = merkle.Concat(GindexContractCells, container.GindexLength)

	GindexInputDataData   = merkle.Concat(GindexInputData, container.GindexData)
	GindexInputDataLength = merkle.Concat(GindexInputData, container.GindexLength)
)

// Package state implements the Step/Contract tree schema (spec §3) and the
// pure next_step transition function (spec §4): the deterministic core the
// rest of the engine proves and verifies one opcode at a time.
package state

import (
	"github.com/bf-rollup/obf/container"
	"github.com/bf-rollup/obf/merkle"
)

// Tree is a Step, backed by its Merkle tree root. All reads and writes go
// through merkle.Index/merkle.Rebind at a fixed, documented gindex, so that
// a shim-wrapped root (package witness) observes exactly the fields a step
// touches — there is no plain Go struct field access path that could
// silently bypass access tracking.
type Tree struct {
	Root merkle.Node
}

// New wraps an existing root as a Tree.
func New(root merkle.Node) *Tree { return &Tree{Root: root} }

func (t *Tree) at(g merkle.Gindex) merkle.Node { return merkle.Index(t.Root, g) }

func (t *Tree) set(g merkle.Gindex, n merkle.Node) *Tree {
	return &Tree{Root: merkle.Rebind(t.Root, g, n)}
}

// --- scalar chunk encoding: big-endian, value right-justified in the
// 32-byte chunk, matching container.lengthChunk's convention. ---

func encodeU64(v uint64) merkle.Root {
	var r merkle.Root
	for i := 0; i < 8; i++ {
		r[31-i] = byte(v >> uint(8*i))
	}
	return r
}

func decodeU64(r merkle.Root) uint64 {
	var v uint64
	for i := 0; i < 8; i++ {
		v |= uint64(r[31-i]) << uint(8*i)
	}
	return v
}

func encodeU32(v uint32) merkle.Root {
	var r merkle.Root
	r[28] = byte(v >> 24)
	r[29] = byte(v >> 16)
	r[30] = byte(v >> 8)
	r[31] = byte(v)
	return r
}

func decodeU32(r merkle.Root) uint32 {
	return uint32(r[28])<<24 | uint32(r[29])<<16 | uint32(r[30])<<8 | uint32(r[31])
}

func encodeU8(v uint8) merkle.Root {
	var r merkle.Root
	r[31] = v
	return r
}

func decodeU8(r merkle.Root) uint8 { return r[31] }

// --- Step scalar fields ---

func (t *Tree) Gas() uint64      { return decodeU64(t.at(GindexGas).Root()) }
func (t *Tree) SetGas(v uint64) *Tree { return t.set(GindexGas, merkle.Leaf(encodeU64(v))) }

func (t *Tree) PC() uint32      { return decodeU32(t.at(GindexPC).Root()) }
func (t *Tree) SetPC(v uint32) *Tree { return t.set(GindexPC, merkle.Leaf(encodeU32(v))) }

func (t *Tree) Indent() uint32      { return decodeU32(t.at(GindexIndent).Root()) }
func (t *Tree) SetIndent(v uint32) *Tree { return t.set(GindexIndent, merkle.Leaf(encodeU32(v))) }

func (t *Tree) InputRead() uint32      { return decodeU32(t.at(GindexInputRead).Root()) }
func (t *Tree) SetInputRead(v uint32) *Tree {
	return t.set(GindexInputRead, merkle.Leaf(encodeU32(v)))
}

func (t *Tree) ResultCode() ExitCode { return ExitCode(decodeU8(t.at(GindexResultCode).Root())) }
func (t *Tree) SetResultCode(v ExitCode) *Tree {
	return t.set(GindexResultCode, merkle.Leaf(encodeU8(uint8(v))))
}

// --- Contract scalar fields ---

func (t *Tree) Ptr() uint32      { return decodeU32(t.at(GindexContractPtr).Root()) }
func (t *Tree) SetPtr(v uint32) *Tree { return t.set(GindexContractPtr, merkle.Leaf(encodeU32(v))) }

// --- stack: List<uint32, MAX_STACK_DEPTH> ---

func (t *Tree) StackLen() uint64 { return decodeU64(t.at(GindexStackLength).Root()) }

// StackPeek returns the top of the stack. Panics if the stack is empty;
// callers must check StackLen first, as NextStep always does.
func (t *Tree) StackPeek() uint32 {
	n := t.StackLen()
	if n == 0 {
		panic("state: peek at an empty stack")
	}
	g := merkle.Concat(GindexStackData, container.U32Gindex(MaxStackDepth, int(n-1)))
	c := t.at(g).Root()
	off := ((n - 1) % 8) * 4
	return uint32(c[off])<<24 | uint32(c[off+1])<<16 | uint32(c[off+2])<<8 | uint32(c[off+3])
}

// PushStack appends v to the stack, growing its length by one. Panics if
// the stack is already at capacity; callers must check StackLen first.
func (t *Tree) PushStack(v uint32) *Tree {
	n := t.StackLen()
	if n >= MaxStackDepth {
		panic("state: push onto a full stack")
	}
	g := merkle.Concat(GindexStackData, container.U32Gindex(MaxStackDepth, int(n)))
	c := t.at(g).Root()
	off := (n % 8) * 4
	c[off], c[off+1], c[off+2], c[off+3] = byte(v>>24), byte(v>>16), byte(v>>8), byte(v)
	next := t.set(g, merkle.Leaf(c))
	return next.set(GindexStackLength, merkle.Leaf(encodeU64(n+1)))
}

// PopStack removes and returns the top of the stack. Panics if empty.
func (t *Tree) PopStack() (uint32, *Tree) {
	n := t.StackLen()
	v := t.StackPeek()
	next := t.set(GindexStackLength, merkle.Leaf(encodeU64(n-1)))
	return v, next
}

// --- cells: a plain byte-list, grown on demand ---

func (t *Tree) CellsLen() uint64 { return decodeU64(t.at(GindexCellsLength).Root()) }

func (t *Tree) CellByte(i uint32) byte {
	g := merkle.Concat(GindexCellsData, container.ByteGindex(MaxCellCount, int(i)))
	leaf := t.at(g)
	c := leaf.Root()
	return c[i%32]
}

func (t *Tree) SetCellByte(i uint32, v byte) *Tree {
	g := merkle.Concat(GindexCellsData, container.ByteGindex(MaxCellCount, int(i)))
	c := t.at(g).Root()
	c[i%32] = v
	return t.set(g, merkle.Leaf(c))
}

// GrowCells appends one zero byte to cells, growing its length by one.
func (t *Tree) GrowCells() *Tree {
	n := t.CellsLen()
	return t.set(GindexCellsLength, merkle.Leaf(encodeU64(n+1)))
}

// --- code: a bit-packed Bitlist of 3-bit opcodes, read-only after a
// contract is created ---

func (t *Tree) CodeOpCount() uint64 {
	return CodeOpCount(decodeU64(t.at(GindexCodeLength).Root()))
}

func (t *Tree) Op(pc uint32) Opcode {
	dataRoot := t.at(GindexCodeData)
	return GetOp(dataRoot, int(pc))
}

// --- input_data: the immutable byte-list of sender||payload ---

func (t *Tree) InputDataLen() uint64 { return decodeU64(t.at(GindexInputDataLength).Root()) }

func (t *Tree) InputDataByte(i uint32) byte {
	g := merkle.Concat(GindexInputDataData, container.ByteGindex(MaxInputData, int(i)))
	leaf := t.at(g)
	c := leaf.Root()
	return c[i%32]
}

package state

import (
	"github.com/bf-rollup/obf/container"
	"github.com/bf-rollup/obf/merkle"
)

// Code is a Bitlist<MAX_CODE_SIZE> whose bits pack 3-bit opcodes back to
// back, MSB first within each opcode. 256 does not divide evenly by 3, so
// a single opcode can straddle two 32-byte chunks; BuildCode/GetOp address
// bits individually rather than assuming opcode-aligned chunks.

// BuildCode packs ops into a Code bitlist's full root.
func BuildCode(ops []Opcode) merkle.Node {
	bits := make([]bool, len(ops)*3)
	for i, op := range ops {
		bits[i*3+0] = op&0b100 != 0
		bits[i*3+1] = op&0b010 != 0
		bits[i*3+2] = op&0b001 != 0
	}
	return container.BuildBitlist(MaxCodeSize, bits)
}

// CodeOpCount returns the number of opcodes packed into a code tree, given
// its length field (a bit count, always a multiple of 3).
func CodeOpCount(lengthBits uint64) uint64 {
	return lengthBits / 3
}

// GetOp reads the opcode at index i directly out of a code bitlist's
// data-root subtree.
func GetOp(codeDataRoot merkle.Node, i int) Opcode {
	b0 := container.BitAt(codeDataRoot, MaxCodeSize, i*3+0)
	b1 := container.BitAt(codeDataRoot, MaxCodeSize, i*3+1)
	b2 := container.BitAt(codeDataRoot, MaxCodeSize, i*3+2)
	var op Opcode
	if b0 {
		op |= 0b100
	}
	if b1 {
		op |= 0b010
	}
	if b2 {
		op |= 0b001
	}
	return op
}

// ParseCode decodes a pretty-printed Brainfuck source string into its
// opcode sequence. Whitespace is ignored; any other non-opcode byte is an
// error, since silently treating an unrecognized byte as a comment would
// make the mapping from source text to opcodes ambiguous.
func ParseCode(src string) ([]Opcode, error) {
	ops := make([]Opcode, 0, len(src))
	for i := 0; i < len(src); i++ {
		c := src[i]
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			continue
		}
		op, err := OpcodeFromChar(c)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	return ops, nil
}

// PrettyCode renders an opcode sequence back to its single-character
// source form.
func PrettyCode(ops []Opcode) string {
	buf := make([]byte, len(ops))
	for i, op := range ops {
		buf[i] = op.Character()
	}
	return string(buf)
}

// Package container implements the three Merkleized container shapes the
// state schema is built from: fixed-arity Container, variable-length
// homogeneous List, and bit-packed Bitlist. All three share the same
// zero-hash-padded chunk tree and length-mixin machinery from package
// merkle; this package only adds the SSZ-like shape conventions on top.
package container

import (
	"math/bits"

	"github.com/bf-rollup/obf/merkle"
)

// FieldDepth returns ceil(log2(numFields)), the tree depth of a fixed-arity
// container with that many fields.
func FieldDepth(numFields int) int {
	if numFields <= 0 {
		panic("container: a container needs at least one field")
	}
	if numFields == 1 {
		return 0
	}
	return bits.Len(uint(numFields - 1))
}

// FieldGindex returns the generalized index of field i (0-based) within a
// container of numFields fields, relative to that container's own root.
func FieldGindex(numFields, i int) merkle.Gindex {
	if i < 0 || i >= numFields {
		panic("container: field index out of range")
	}
	depth := FieldDepth(numFields)
	return (merkle.Gindex(1) << uint(depth)) | merkle.Gindex(i)
}

// Build constructs the Merkle tree for a fixed-arity container given its
// fields in declared order. Unused slots past numFields up to the next
// power of two are padded with zero subtrees of depth 0 (single zero
// chunks), matching an all-zero field of the same width.
func Build(fields []merkle.Node) merkle.Node {
	depth := FieldDepth(len(fields))
	width := 1 << uint(depth)
	padded := make([]merkle.Node, width)
	copy(padded, fields)
	for i := len(fields); i < width; i++ {
		padded[i] = merkle.Zero(0)
	}
	return buildBalanced(padded)
}

// buildBalanced merges a power-of-two-sized, left-to-right ordered slice
// of nodes into a single balanced binary tree.
func buildBalanced(nodes []merkle.Node) merkle.Node {
	if len(nodes) == 1 {
		return nodes[0]
	}
	half := len(nodes) / 2
	return merkle.Pair(buildBalanced(nodes[:half]), buildBalanced(nodes[half:]))
}

// ChunkTreeDepth returns ceil(log2(numChunks)), the depth of the balanced
// chunk tree needed to hold numChunks 32-byte chunks (a single chunk needs
// no split and has depth 0).
func ChunkTreeDepth(numChunks int) int {
	if numChunks <= 1 {
		return 0
	}
	return bits.Len(uint(numChunks - 1))
}

// BuildChunkTree builds the balanced, zero-padded chunk tree for a
// length-bounded list: chunks holds the populated leading chunks, capacity
// is the maximum number of chunks the list may ever hold (its tree shape
// is fixed by capacity, not by how many chunks are currently populated).
func BuildChunkTree(chunks []merkle.Node, capacity int) merkle.Node {
	depth := ChunkTreeDepth(capacity)
	width := 1 << uint(depth)
	if len(chunks) > width {
		panic("container: more chunks than the capacity tree can hold")
	}
	padded := make([]merkle.Node, width)
	for i := range padded {
		if i < len(chunks) {
			padded[i] = chunks[i]
		} else {
			padded[i] = merkle.Zero(0)
		}
	}
	return buildBalancedZeroAware(padded, depth)
}

// buildBalancedZeroAware is like buildBalanced but collapses runs of
// adjacent zero(0) leaves into a single merkle.Zero(d) subtree, so that
// appending one element to a near-empty, large-capacity list does not
// force materializing the whole padding region as real Pair nodes.
func buildBalancedZeroAware(nodes []merkle.Node, depth int) merkle.Node {
	if depth == 0 {
		return nodes[0]
	}
	half := len(nodes) / 2
	left := buildBalancedZeroAware(nodes[:half], depth-1)
	right := buildBalancedZeroAware(nodes[half:], depth-1)
	if isZero(left, depth-1) && isZero(right, depth-1) {
		return merkle.Zero(depth)
	}
	return merkle.Pair(left, right)
}

func isZero(n merkle.Node, depth int) bool {
	z, ok := n.(interface{ Root() merkle.Root })
	if !ok {
		return false
	}
	return z.Root() == merkle.ZeroHash(depth)
}

// MixInLength wraps a data-root subtree with its element count to produce
// the final root of a List/Bitlist: hash(data_root, length_chunk). This is
// structurally a depth-1, 2-field container: gindex 2 is the data root,
// gindex 3 is the length chunk.
func MixInLength(dataRoot merkle.Node, length uint64) merkle.Node {
	return merkle.Pair(dataRoot, merkle.Leaf(lengthChunk(length)))
}

// GindexData and GindexLength are the fixed local gindices of a List's two
// virtual fields under its own root, per MixInLength's container shape.
const (
	GindexData   merkle.Gindex = 2
	GindexLength merkle.Gindex = 3
)

func lengthChunk(length uint64) merkle.Root {
	var r merkle.Root
	// Big-endian per spec §3: all multi-byte scalars are big-endian, the
	// SSZ convention is explicitly inverted here.
	for i := 0; i < 8; i++ {
		r[31-i] = byte(length >> uint(8*i))
	}
	return r
}

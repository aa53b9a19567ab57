package container

import (
	"github.com/bf-rollup/obf/merkle"
)

// ChunkGindex returns the local generalized index of chunk i (0-based)
// within a chunk tree of the given depth, relative to that tree's own
// root — i.e. the "data" half of a List/Bitlist's MixInLength split.
func ChunkGindex(depth, chunkIndex int) merkle.Gindex {
	return (merkle.Gindex(1) << uint(depth)) | merkle.Gindex(chunkIndex)
}

// ElemToChunk splits an element index into its containing chunk index and
// its offset within that chunk, given how many elements of this type fit
// in one 32-byte chunk.
func ElemToChunk(elemIndex, elemsPerChunk int) (chunkIndex, offset int) {
	return elemIndex / elemsPerChunk, elemIndex % elemsPerChunk
}

// BuildByteList packs data (length <= capacityBytes) into a List<uint8,
// capacityBytes>'s full root: a zero-padded chunk tree of 32-byte chunks
// mixed in with the element count.
func BuildByteList(capacityBytes int, data []byte) merkle.Node {
	capacityChunks := (capacityBytes + 31) / 32
	numChunks := (len(data) + 31) / 32
	chunks := make([]merkle.Node, numChunks)
	for i := 0; i < numChunks; i++ {
		var c merkle.Root
		end := (i + 1) * 32
		if end > len(data) {
			end = len(data)
		}
		copy(c[:], data[i*32:end])
		chunks[i] = merkle.Leaf(c)
	}
	dataRoot := BuildChunkTree(chunks, capacityChunks)
	return MixInLength(dataRoot, uint64(len(data)))
}

// DecodeByteList reads length bytes back out of a byte-list's data-root
// subtree, given the tree's capacity (needed to know the chunk depth).
func DecodeByteList(dataRoot merkle.Node, capacityBytes int, length uint64) []byte {
	capacityChunks := (capacityBytes + 31) / 32
	depth := ChunkTreeDepth(capacityChunks)
	out := make([]byte, length)
	numChunks := (int(length) + 31) / 32
	for i := 0; i < numChunks; i++ {
		leaf := merkle.Index(dataRoot, ChunkGindex(depth, i))
		c := leaf.Root()
		end := (i + 1) * 32
		if end > int(length) {
			end = int(length)
		}
		copy(out[i*32:end], c[:end-i*32])
	}
	return out
}

// BuildU32List packs big-endian uint32 elements into a List<uint32,
// capacityElems>'s full root, 8 elements per 32-byte chunk.
func BuildU32List(capacityElems int, data []uint32) merkle.Node {
	const elemsPerChunk = 8
	capacityChunks := (capacityElems + elemsPerChunk - 1) / elemsPerChunk
	numChunks := (len(data) + elemsPerChunk - 1) / elemsPerChunk
	chunks := make([]merkle.Node, numChunks)
	for i := 0; i < numChunks; i++ {
		var c merkle.Root
		for j := 0; j < elemsPerChunk; j++ {
			idx := i*elemsPerChunk + j
			if idx >= len(data) {
				break
			}
			putU32BE(c[j*4:j*4+4], data[idx])
		}
		chunks[i] = merkle.Leaf(c)
	}
	dataRoot := BuildChunkTree(chunks, capacityChunks)
	return MixInLength(dataRoot, uint64(len(data)))
}

// DecodeU32List reads length uint32 elements back out of a packed
// data-root subtree.
func DecodeU32List(dataRoot merkle.Node, capacityElems int, length uint64) []uint32 {
	const elemsPerChunk = 8
	capacityChunks := (capacityElems + elemsPerChunk - 1) / elemsPerChunk
	depth := ChunkTreeDepth(capacityChunks)
	out := make([]uint32, length)
	for i := range out {
		chunkIdx, offset := ElemToChunk(i, elemsPerChunk)
		leaf := merkle.Index(dataRoot, ChunkGindex(depth, chunkIdx))
		c := leaf.Root()
		out[i] = getU32BE(c[offset*4 : offset*4+4])
	}
	return out
}

func putU32BE(b []byte, v uint32) {
	b[0] = byte(v >> 24)
	b[1] = byte(v >> 16)
	b[2] = byte(v >> 8)
	b[3] = byte(v)
}

func getU32BE(b []byte) uint32 {
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}

// BuildBitlist packs bits (length <= capacityBits) into a Bitlist<
// capacityBits>'s full root: 256-bit (32-byte) chunks, bit i living at
// byte i/8, LSB-first within the byte, mixed in with the bit length.
func BuildBitlist(capacityBits int, bits []bool) merkle.Node {
	const bitsPerChunk = 256
	capacityChunks := (capacityBits + bitsPerChunk - 1) / bitsPerChunk
	numChunks := (len(bits) + bitsPerChunk - 1) / bitsPerChunk
	chunks := make([]merkle.Node, numChunks)
	for i := 0; i < numChunks; i++ {
		var c merkle.Root
		for j := 0; j < bitsPerChunk; j++ {
			idx := i*bitsPerChunk + j
			if idx >= len(bits) {
				break
			}
			if bits[idx] {
				c[j/8] |= 1 << uint(j%8)
			}
		}
		chunks[i] = merkle.Leaf(c)
	}
	dataRoot := BuildChunkTree(chunks, capacityChunks)
	return MixInLength(dataRoot, uint64(len(bits)))
}

// DecodeBitlist reads length bits back out of a bitlist's data-root
// subtree.
func DecodeBitlist(dataRoot merkle.Node, capacityBits int, length uint64) []bool {
	const bitsPerChunk = 256
	capacityChunks := (capacityBits + bitsPerChunk - 1) / bitsPerChunk
	depth := ChunkTreeDepth(capacityChunks)
	out := make([]bool, length)
	for i := range out {
		chunkIdx, offset := ElemToChunk(i, bitsPerChunk)
		leaf := merkle.Index(dataRoot, ChunkGindex(depth, chunkIdx))
		c := leaf.Root()
		out[i] = c[offset/8]&(1<<uint(offset%8)) != 0
	}
	return out
}

// BitAt reads a single bit out of a bitlist's data-root subtree without
// decoding the whole list. Used where an element's natural width doesn't
// divide the 256-bit chunk size evenly (e.g. 3-bit opcodes), so a caller
// needs bit-level addressing directly.
func BitAt(dataRoot merkle.Node, capacityBits, bitIndex int) bool {
	const bitsPerChunk = 256
	capacityChunks := (capacityBits + bitsPerChunk - 1) / bitsPerChunk
	depth := ChunkTreeDepth(capacityChunks)
	chunkIdx, offset := ElemToChunk(bitIndex, bitsPerChunk)
	leaf := merkle.Index(dataRoot, ChunkGindex(depth, chunkIdx))
	c := leaf.Root()
	return c[offset/8]&(1<<uint(offset%8)) != 0
}

// BitGindex returns the chunk gindex (relative to a bitlist's own
// data-root) that holds bit index i, for use when a single bit needs to
// be read or rewritten without decoding the whole bitlist.
func BitGindex(capacityBits, bitIndex int) merkle.Gindex {
	const bitsPerChunk = 256
	capacityChunks := (capacityBits + bitsPerChunk - 1) / bitsPerChunk
	depth := ChunkTreeDepth(capacityChunks)
	chunkIdx, _ := ElemToChunk(bitIndex, bitsPerChunk)
	return ChunkGindex(depth, chunkIdx)
}

// ByteGindex returns the chunk gindex (relative to a byte-list's own
// data-root) that holds byte index i.
func ByteGindex(capacityBytes, byteIndex int) merkle.Gindex {
	capacityChunks := (capacityBytes + 31) / 32
	depth := ChunkTreeDepth(capacityChunks)
	chunkIdx, _ := ElemToChunk(byteIndex, 32)
	return ChunkGindex(depth, chunkIdx)
}

// U32Gindex returns the chunk gindex (relative to a uint32-list's own
// data-root) that holds element index i.
func U32Gindex(capacityElems, elemIndex int) merkle.Gindex {
	const elemsPerChunk = 8
	capacityChunks := (capacityElems + elemsPerChunk - 1) / elemsPerChunk
	depth := ChunkTreeDepth(capacityChunks)
	chunkIdx, _ := ElemToChunk(elemIndex, elemsPerChunk)
	return ChunkGindex(depth, chunkIdx)
}

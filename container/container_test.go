package container

import (
	"testing"

	"github.com/bf-rollup/obf/merkle"
	"github.com/stretchr/testify/require"
)

func TestFieldGindex(t *testing.T) {
	require.Equal(t, 0, FieldDepth(1))
	require.Equal(t, 2, FieldDepth(3))
	require.Equal(t, 3, FieldDepth(8))
	require.Equal(t, merkle.Gindex(12), FieldGindex(8, 4))
	require.Equal(t, merkle.Gindex(6), FieldGindex(4, 2))
}

func TestBuildContainerPadsWithZero(t *testing.T) {
	fields := []merkle.Node{merkle.Leaf(chunkOf(1)), merkle.Leaf(chunkOf(2)), merkle.Leaf(chunkOf(3))}
	root := Build(fields)
	require.Equal(t, fields[0].Root(), merkle.Index(root, FieldGindex(3, 0)).Root())
	require.Equal(t, fields[2].Root(), merkle.Index(root, FieldGindex(3, 2)).Root())
	// gindex 7: the padding slot after the three fields of a depth-2 container.
	require.Equal(t, merkle.ZeroHash(0), merkle.Index(root, merkle.Gindex(7)).Root())
}

func TestByteListRoundTrip(t *testing.T) {
	data := []byte{1, 2, 3, 4, 5}
	root := BuildByteList(128*1024, data)
	dataRoot := merkle.Index(root, GindexData)
	got := DecodeByteList(dataRoot, 128*1024, uint64(len(data)))
	require.Equal(t, data, got)
}

func TestU32ListRoundTrip(t *testing.T) {
	data := []uint32{10, 20, 30, 1024, 0xffffffff}
	root := BuildU32List(1024, data)
	dataRoot := merkle.Index(root, GindexData)
	got := DecodeU32List(dataRoot, 1024, uint64(len(data)))
	require.Equal(t, data, got)
}

func TestBitlistRoundTrip(t *testing.T) {
	bits := []bool{true, false, true, true, false, false, true}
	root := BuildBitlist(64*1024*8, bits)
	dataRoot := merkle.Index(root, GindexData)
	got := DecodeBitlist(dataRoot, 64*1024*8, uint64(len(bits)))
	require.Equal(t, bits, got)
}

func TestByteGindexMatchesDecode(t *testing.T) {
	data := make([]byte, 100)
	for i := range data {
		data[i] = byte(i)
	}
	root := BuildByteList(128*1024, data)
	dataRoot := merkle.Index(root, GindexData)
	g := ByteGindex(128*1024, 40)
	leaf := merkle.Index(dataRoot, g)
	c := leaf.Root()
	require.Equal(t, byte(32), c[0]) // chunk 1 starts at byte 32
}

func chunkOf(b byte) merkle.Root {
	var r merkle.Root
	r[31] = b
	return r
}

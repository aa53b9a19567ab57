package merkle

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func chunk(b byte) Root {
	var r Root
	r[31] = b
	return r
}

func TestZeroHashSequence(t *testing.T) {
	require.Equal(t, Root{}, ZeroHash(0))
	z1 := ZeroHash(1)
	require.Equal(t, HashPair(ZeroHash(0), ZeroHash(0)), z1)
	// Repeated calls must be stable (cache correctness).
	require.Equal(t, z1, ZeroHash(1))
}

func TestPairRootCaches(t *testing.T) {
	l := Leaf(chunk(1))
	r := Leaf(chunk(2))
	p := Pair(l, r)
	want := HashPair(l.Root(), r.Root())
	require.Equal(t, want, p.Root())
	require.Equal(t, want, p.Root()) // cached, not recomputed
}

func TestPathAndDepth(t *testing.T) {
	require.Equal(t, 0, Depth(1))
	require.Equal(t, []bool{}, Path(1))
	require.Equal(t, 1, Depth(2))
	require.Equal(t, []bool{false}, Path(2))
	require.Equal(t, []bool{true}, Path(3))
	require.Equal(t, 3, Depth(12))
	require.Equal(t, []bool{true, false, false}, Path(12))
}

func TestConcatMatchesManualDescent(t *testing.T) {
	// contract field gindex 12 (step depth 3, field index 4),
	// ptr field gindex 6 (contract depth 2, field index 2) => 50.
	require.Equal(t, Gindex(50), Concat(12, 6))
	require.Equal(t, Gindex(5), Concat(1, 5))
}

func TestIndexAndRebind(t *testing.T) {
	leaves := make([]Node, 4)
	for i := range leaves {
		leaves[i] = Leaf(chunk(byte(i + 1)))
	}
	left := Pair(leaves[0], leaves[1])
	right := Pair(leaves[2], leaves[3])
	root := Pair(left, right)

	require.Equal(t, leaves[0].Root(), Index(root, 4).Root())
	require.Equal(t, leaves[3].Root(), Index(root, 7).Root())
	require.Equal(t, left.Root(), Index(root, 2).Root())

	newLeaf := Leaf(chunk(99))
	newRoot := Rebind(root, 4, newLeaf)
	require.Equal(t, newLeaf.Root(), Index(newRoot, 4).Root())
	// Unaffected subtree is shared, identical root.
	require.Equal(t, right.Root(), Index(newRoot, 3).Root())
	require.NotEqual(t, root.Root(), newRoot.Root())
}

func TestDescendLocal(t *testing.T) {
	child, goRight := DescendLocal(2)
	require.Equal(t, Gindex(1), child)
	require.False(t, goRight)

	child, goRight = DescendLocal(3)
	require.Equal(t, Gindex(1), child)
	require.True(t, goRight)

	child, goRight = DescendLocal(4)
	require.Equal(t, Gindex(2), child)
	require.False(t, goRight)

	child, goRight = DescendLocal(50)
	require.Equal(t, Gindex(18), child)
	require.True(t, goRight)
}

func TestSiblingPathRoundTrip(t *testing.T) {
	leaves := make([]Node, 4)
	for i := range leaves {
		leaves[i] = Leaf(chunk(byte(i + 1)))
	}
	left := Pair(leaves[0], leaves[1])
	right := Pair(leaves[2], leaves[3])
	root := Pair(left, right)

	for g := Gindex(4); g <= 7; g++ {
		siblings := SiblingPath(root, g)
		leaf := Index(root, g)
		require.Equal(t, root.Root(), VerifySiblingPath(leaf.Root(), g, siblings))
	}
}

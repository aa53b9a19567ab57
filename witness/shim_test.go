package witness

import (
	"sort"
	"testing"

	"github.com/bf-rollup/obf/merkle"
	"github.com/stretchr/testify/require"
)

func leafChunk(b byte) merkle.Root {
	var r merkle.Root
	r[31] = b
	return r
}

func TestUntouchedSubtreeYieldsWholeGindex(t *testing.T) {
	// root
	//  /  \
	// A    B
	//     / \
	//    C   D
	a := merkle.Leaf(leafChunk(1))
	c := merkle.Leaf(leafChunk(2))
	d := merkle.Leaf(leafChunk(3))
	b := merkle.Pair(c, d)
	root := merkle.Pair(a, b)

	shimmed := Shim(root)
	// Only read the left child (A); never open B.
	_ = shimmed.Left()

	got := TouchedGindices(shimmed)
	sort.Slice(got, func(i, j int) bool { return got[i] < got[j] })
	require.Equal(t, []merkle.Gindex{2, 3}, got)
}

func TestOpeningBothChildrenYieldsGrandchildren(t *testing.T) {
	a := merkle.Leaf(leafChunk(1))
	c := merkle.Leaf(leafChunk(2))
	d := merkle.Leaf(leafChunk(3))
	b := merkle.Pair(c, d)
	root := merkle.Pair(a, b)

	shimmed := Shim(root)
	_ = shimmed.Left()
	inner := shimmed.Right()
	_ = inner.Left()
	_ = inner.Right()

	got := TouchedGindices(shimmed)
	sort.Slice(got, func(i, j int) bool { return got[i] < got[j] })
	require.Equal(t, []merkle.Gindex{2, 6, 7}, got)
}

func TestResetClearsTouchedFlags(t *testing.T) {
	a := merkle.Leaf(leafChunk(1))
	c := merkle.Leaf(leafChunk(2))
	d := merkle.Leaf(leafChunk(3))
	b := merkle.Pair(c, d)
	root := merkle.Pair(a, b)

	shimmed := Shim(root)
	_ = shimmed.Left()
	_ = shimmed.Right()

	Reset(shimmed)
	got := TouchedGindices(shimmed)
	sort.Slice(got, func(i, j int) bool { return got[i] < got[j] })
	require.Equal(t, []merkle.Gindex{2, 3}, got)
}

func TestShimPreservesRoot(t *testing.T) {
	a := merkle.Leaf(leafChunk(1))
	b := merkle.Leaf(leafChunk(2))
	root := merkle.Pair(a, b)

	shimmed := Shim(root)
	require.Equal(t, root.Root(), shimmed.Root())
}

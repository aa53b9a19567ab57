package bisection

import (
	"testing"

	"github.com/bf-rollup/obf/merkle"
	"github.com/stretchr/testify/require"
)

func fakeRoots(n int) []merkle.Root {
	out := make([]merkle.Root, n)
	for i := range out {
		var r merkle.Root
		r[31] = byte(i)
		out[i] = r
	}
	return out
}

func TestHistoryCommitmentDeterministic(t *testing.T) {
	roots := fakeRoots(5)
	a, err := NewHistoryCommitment(roots)
	require.NoError(t, err)
	b, err := NewHistoryCommitment(roots)
	require.NoError(t, err)
	require.Equal(t, a.Merkle, b.Merkle)
	require.EqualValues(t, 4, a.Height)
}

func TestPrefixProofVerifiesAgainstOwnTree(t *testing.T) {
	roots := fakeRoots(6)
	root, _ := historyTree(roots)

	for h := uint64(0); h < uint64(len(roots)); h++ {
		proof, err := GeneratePrefixProof(roots, h)
		require.NoError(t, err)
		ok := VerifyPrefixProof(root.Root(), uint64(len(roots)), roots[h], proof)
		require.True(t, ok, "height %d", h)
	}
}

func TestPrefixProofRejectsWrongLeaf(t *testing.T) {
	roots := fakeRoots(6)
	root, _ := historyTree(roots)

	proof, err := GeneratePrefixProof(roots, 2)
	require.NoError(t, err)
	ok := VerifyPrefixProof(root.Root(), uint64(len(roots)), roots[3], proof)
	require.False(t, ok)
}

func TestBisectNarrowsToMidpoint(t *testing.T) {
	mid, err := Bisect(0, 10)
	require.NoError(t, err)
	require.EqualValues(t, 5, mid)

	_, err = Bisect(4, 5)
	require.Error(t, err)

	_, err = Bisect(5, 5)
	require.Error(t, err)
}

// Package bisection implements the coarse half of the two-tier fraud
// proof the spec's Design Notes call for but leave as an external
// protocol concern: a BOLD/Nitro-style history-commitment bisection game
// that narrows a disputed execution down to one contested step before
// package verify settles it (grounded on state-manager/manager.go and
// protocol/sol-implementation/challenge.go).
package bisection

import (
	"github.com/pkg/errors"
	"github.com/wealdtech/go-merkletree"

	"github.com/bf-rollup/obf/container"
	"github.com/bf-rollup/obf/merkle"
)

// HistoryCommitment is a Merkle commitment to a prefix of a trace's
// step_roots, the unit two disputing parties exchange in a bisection
// round (mirrors util.HistoryCommitment in the teacher's challenge
// protocol, minus the on-chain proof types that belong to a deployed
// contract, not this engine).
type HistoryCommitment struct {
	Height uint64
	Merkle merkle.Root
}

// NewHistoryCommitment commits to stepRoots using an independent,
// off-the-shelf Merkle implementation rather than this engine's own
// gindex-addressed tree — exactly the posture a real rollup takes here,
// since the history commitment is exchanged with an on-chain verifier
// that has no notion of this engine's state schema.
func NewHistoryCommitment(stepRoots []merkle.Root) (*HistoryCommitment, error) {
	if len(stepRoots) == 0 {
		return nil, errors.New("bisection: cannot commit to an empty history")
	}
	data := make([][]byte, len(stepRoots))
	for i, r := range stepRoots {
		b := make([]byte, 32)
		copy(b, r[:])
		data[i] = b
	}
	tree, err := merkletree.New(data)
	if err != nil {
		return nil, errors.Wrap(err, "bisection: building history commitment")
	}
	var root merkle.Root
	copy(root[:], tree.Root())
	return &HistoryCommitment{Height: uint64(len(stepRoots) - 1), Merkle: root}, nil
}

// HistoryCommitmentUpTo commits to stepRoots[:height+1] (mirrors
// state-manager's Manager.HistoryCommitmentUpTo).
func HistoryCommitmentUpTo(stepRoots []merkle.Root, height uint64) (*HistoryCommitment, error) {
	if height+1 > uint64(len(stepRoots)) {
		return nil, errors.Errorf("bisection: height %d exceeds trace length %d", height, len(stepRoots))
	}
	return NewHistoryCommitment(stepRoots[:height+1])
}

// PrefixProof proves that one particular step root sits at a given
// height within the trace's step roots, using this engine's own
// gindex-addressed, zero-padded tree over them (mirrors
// Manager.PrefixProof / Challenge's
// FirstStateHistoryProof/LastStateHistoryProof). That tree is not the one
// behind HistoryCommitment.Merkle, so a PrefixProof does not verify
// against a HistoryCommitment's root.
type PrefixProof struct {
	Height   uint64
	Siblings []merkle.Root
}

// GeneratePrefixProof builds the inclusion proof for stepRoots[height]
// within the balanced, zero-padded tree over all of stepRoots.
func GeneratePrefixProof(stepRoots []merkle.Root, height uint64) (*PrefixProof, error) {
	if height >= uint64(len(stepRoots)) {
		return nil, errors.Errorf("bisection: height %d out of range for %d-step trace", height, len(stepRoots))
	}
	root, depth := historyTree(stepRoots)
	g := container.ChunkGindex(depth, int(height))
	return &PrefixProof{Height: height, Siblings: merkle.SiblingPath(root, g)}, nil
}

// VerifyPrefixProof checks that leaf is included at height in a trace of
// the given length under commitmentRoot.
func VerifyPrefixProof(commitmentRoot merkle.Root, traceLength uint64, leaf merkle.Root, proof *PrefixProof) bool {
	depth := container.ChunkTreeDepth(int(nextPow2(traceLength)))
	g := container.ChunkGindex(depth, int(proof.Height))
	return merkle.VerifySiblingPath(leaf, g, proof.Siblings) == commitmentRoot
}

func historyTree(stepRoots []merkle.Root) (merkle.Node, int) {
	leaves := make([]merkle.Node, len(stepRoots))
	for i, r := range stepRoots {
		leaves[i] = merkle.Leaf(r)
	}
	capacity := nextPow2(uint64(len(stepRoots)))
	return container.BuildChunkTree(leaves, int(capacity)), container.ChunkTreeDepth(int(capacity))
}

func nextPow2(n uint64) uint64 {
	if n <= 1 {
		return 1
	}
	p := uint64(1)
	for p < n {
		p <<= 1
	}
	return p
}

// Bisect returns the midpoint height of an open dispute window (lo, hi],
// the next point both sides must agree or diverge on (mirrors the
// challenge protocol's bisection move in validator/vertex_tracker.go).
// The window narrows to a single step, (hi - lo == 1), when bisection can
// no longer proceed — that step is what package verify settles.
func Bisect(lo, hi uint64) (uint64, error) {
	if hi <= lo {
		return 0, errors.Errorf("bisection: invalid window (lo=%d, hi=%d)", lo, hi)
	}
	if hi-lo == 1 {
		return 0, errors.New("bisection: window already narrowed to a single step, nothing left to bisect")
	}
	return lo + (hi-lo)/2, nil
}

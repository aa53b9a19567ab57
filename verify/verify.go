// Package verify reinflates a single-step witness into a partial tree and
// replays next_step over it, the second half of the fraud-proof engine
// (spec §4.G): bisection narrows a dispute down to one step; this package
// settles that one step.
package verify

import (
	"fmt"

	"github.com/bf-rollup/obf/merkle"
	"github.com/bf-rollup/obf/state"
)

// maxGindexDepth bounds the verifier's reconstruction recursion. A
// well-formed witness's node_by_gindex always covers every root-to-leaf
// path, so real reconstructions bottom out in a few dozen levels; this is
// only a backstop against a malformed witness that omits a whole subtree
// and would otherwise recurse forever doubling g.
const maxGindexDepth = 60

// Reconstruct rebuilds a partial tree from a node_by_gindex witness: for
// each gindex g starting at 1, a present entry becomes a leaf holding
// that hash; an absent one recurses into 2g and 2g+1. Panics (recovered
// by Verify) if recursion passes maxGindexDepth without bottoming out —
// the witness-missing condition.
func Reconstruct(nodeByGindex map[merkle.Gindex]merkle.Root) merkle.Node {
	return reconstruct(1, nodeByGindex)
}

func reconstruct(g merkle.Gindex, m map[merkle.Gindex]merkle.Root) merkle.Node {
	if h, ok := m[g]; ok {
		return merkle.Leaf(h)
	}
	if merkle.Depth(g) > maxGindexDepth {
		panic(fmt.Sprintf("verify: witness missing gindex %d (or an ancestor)", g))
	}
	return merkle.Pair(reconstruct(g*2, m), reconstruct(g*2+1, m))
}

// Verify reconstructs pre's partial tree from nodeByGindex, runs
// next_step over it, and reports whether the resulting root matches
// claimedPostRoot — i.e. whether the assertion being disputed holds for
// this one step. An error means the witness didn't cover everything
// next_step tried to read (either the depth backstop tripped, or
// next_step tried to descend into a leaf the witness declared opaque),
// which on a contested assertion should be treated as the claim failing
// to verify, not as "no fraud found".
func Verify(nodeByGindex map[merkle.Gindex]merkle.Root, claimedPostRoot merkle.Root) (valid bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("verify: witness incomplete: %v", r)
		}
	}()
	pre := Reconstruct(nodeByGindex)
	post := state.NextStep(state.New(pre))
	return post.Root.Root() == claimedPostRoot, nil
}

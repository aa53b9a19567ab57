// Package witness implements the access-tracking shim: a transparent
// merkle.Node wrapper that records which children of which nodes were
// actually read during a step, so the proof generator can later emit the
// minimal subtree a verifier needs (spec §4.E).
package witness

import "github.com/bf-rollup/obf/merkle"

// ShimNode wraps an internal tree node and records, per child, whether it
// was ever dereferenced via Left()/Right() since the last Reset. It never
// wraps a leaf: a leaf has no children to observe, so Shim returns leaves
// unchanged.
type ShimNode struct {
	left, right         merkle.Node
	root                merkle.Root
	touchedL, touchedR  bool
}

// Shim wraps node (and, eagerly, every non-leaf descendant) in ShimNodes.
// Re-wrapping an already-shimmed node returns it as is after clearing that
// node's own touched flags; its descendants' flags are left alone (Reset
// clears the whole tree).
func Shim(node merkle.Node) merkle.Node {
	if node.IsLeaf() {
		return node
	}
	if sn, ok := node.(*ShimNode); ok {
		sn.touchedL, sn.touchedR = false, false
		return sn
	}
	return &ShimNode{
		left:  Shim(node.Left()),
		right: Shim(node.Right()),
		root:  node.Root(),
	}
}

// Reset clears every touched flag in a shimmed tree, without discarding
// the wrapping. Call once per step, on the tree about to be read, so a
// prior step's access set never bleeds into the next one.
func Reset(node merkle.Node) {
	sn, ok := node.(*ShimNode)
	if !ok {
		return
	}
	sn.touchedL, sn.touchedR = false, false
	Reset(sn.left)
	Reset(sn.right)
}

func (s *ShimNode) Root() merkle.Root { return s.root }
func (s *ShimNode) IsLeaf() bool      { return false }

func (s *ShimNode) Left() merkle.Node {
	s.touchedL = true
	return s.left
}

func (s *ShimNode) Right() merkle.Node {
	s.touchedR = true
	return s.right
}

// TouchedGindices walks a shimmed tree depth-first from gindex g (1 for
// the tree's own root) and returns the frontier of generalized indices
// where reading stopped: either because that child was never touched this
// step (its subtree is opaque — only its hash matters to a verifier), or
// because it was touched but isn't itself a further-wrapped internal node
// (a leaf). A touched child that is a shim is always descended into, so a
// shim whose own children were never opened contributes both of its
// children's gindices.
func TouchedGindices(node merkle.Node) []merkle.Gindex {
	var out []merkle.Gindex
	collectTouched(node, 1, &out)
	return out
}

func collectTouched(node merkle.Node, g merkle.Gindex, out *[]merkle.Gindex) {
	sn, ok := node.(*ShimNode)
	if !ok {
		*out = append(*out, g)
		return
	}
	if sn.touchedL {
		if _, isShim := sn.left.(*ShimNode); isShim {
			collectTouched(sn.left, g*2, out)
		} else {
			*out = append(*out, g*2)
		}
	} else {
		*out = append(*out, g*2)
	}
	if sn.touchedR {
		if _, isShim := sn.right.(*ShimNode); isShim {
			collectTouched(sn.right, g*2+1, out)
		} else {
			*out = append(*out, g*2+1)
		}
	} else {
		*out = append(*out, g*2+1)
	}
}

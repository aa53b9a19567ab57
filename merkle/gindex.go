package merkle

import (
	"fmt"
	"math/bits"
)

// Gindex is a generalized index: a positive integer locating a node in a
// binary tree. The root is 1; the left child of g is 2g, the right is
// 2g+1. Reading the bits of g from high-order down, after skipping the
// leading 1, each subsequent bit selects right (1) or left (0).
type Gindex = uint64

// Depth returns the number of direction bits in g's path from the root,
// i.e. how many levels below the root g sits. Depth(1) == 0.
func Depth(g Gindex) int {
	if g < 1 {
		panic("merkle: gindex must be >= 1")
	}
	return bits.Len64(g) - 1
}

// Path decodes g into its root-to-node sequence of direction bits, true
// meaning "go right", in descent order.
func Path(g Gindex) []bool {
	d := Depth(g)
	path := make([]bool, d)
	for i := 0; i < d; i++ {
		shift := uint(d - 1 - i)
		path[i] = (g>>shift)&1 == 1
	}
	return path
}

// Concat composes two generalized indices: child is interpreted relative
// to the node that parent addresses, and the result is child's absolute
// gindex from the same root parent is relative to. This is how a nested
// field (e.g. a Contract's ptr field inside a Step) gets one fixed,
// documented gindex: Concat(stepFieldGindex("contract"), contractFieldGindex("ptr")).
func Concat(parent, child Gindex) Gindex {
	if child < 1 {
		panic("merkle: gindex must be >= 1")
	}
	childDepth := Depth(child)
	mask := Gindex(1) << uint(childDepth)
	return (parent << uint(childDepth)) | (child &^ mask)
}

// Index walks from root down to gindex g, following Left()/Right() at each
// step. When root is a witness.ShimNode (or wraps one), every call along
// the way is observed by the shim, which is exactly how access tracking
// works: the descent performed here IS the read.
func Index(root Node, g Gindex) Node {
	cur := root
	for _, right := range Path(g) {
		if right {
			cur = cur.Right()
		} else {
			cur = cur.Left()
		}
	}
	return cur
}

// Rebind returns a new tree identical to root except that the node at
// gindex g is replaced by newNode. Every subtree off the spine from root
// to g is shared, unchanged, with the original tree.
func Rebind(root Node, g Gindex, newNode Node) Node {
	return rebind(root, Path(g), newNode)
}

func rebind(node Node, path []bool, newNode Node) Node {
	if len(path) == 0 {
		return newNode
	}
	left, right := node.Left(), node.Right()
	if path[0] {
		right = rebind(right, path[1:], newNode)
	} else {
		left = rebind(left, path[1:], newNode)
	}
	return Pair(left, right)
}

// SiblingPath returns the ordered sibling root hashes along the descent
// from root to gindex g, the general-purpose Merkle inclusion proof every
// caller that needs to prove one leaf without shipping the whole tree
// wants (history commitments, any flat list of committed values).
func SiblingPath(root Node, g Gindex) []Root {
	path := Path(g)
	siblings := make([]Root, len(path))
	cur := root
	for i, goRight := range path {
		if goRight {
			siblings[i] = cur.Left().Root()
			cur = cur.Right()
		} else {
			siblings[i] = cur.Right().Root()
			cur = cur.Left()
		}
	}
	return siblings
}

// VerifySiblingPath recomputes the root implied by leaf sitting at gindex
// g with the given sibling path, without needing the tree itself.
func VerifySiblingPath(leaf Root, g Gindex, siblings []Root) Root {
	path := Path(g)
	if len(siblings) != len(path) {
		panic("merkle: sibling path length does not match gindex depth")
	}
	cur := leaf
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] {
			cur = HashPair(siblings[i], cur)
		} else {
			cur = HashPair(cur, siblings[i])
		}
	}
	return cur
}

// DescendLocal rebases an absolute gindex g (relative to some distant
// ancestor) into the single next step of descent from a node whose own
// root is "here": pivot = 1 << (bitlen(g)-2); goRight = g&pivot != 0;
// child = (g | pivot) - (pivot<<1). Recursing with the returned child
// gindex into whichever of (left, right) goRight selects walks g down one
// level at a time without needing the whole tree materialized — exactly
// what the witness slicer (proof.BuildStepWitness) does when all it has is
// a node-hash -> [left, right] map keyed by root hash.
func DescendLocal(g Gindex) (child Gindex, goRight bool) {
	if g == 1 {
		panic("merkle: DescendLocal(1) has no next step, g==1 is already here")
	}
	bl := bits.Len64(g)
	if bl < 2 {
		panic(fmt.Sprintf("merkle: invalid gindex %d", g))
	}
	pivot := Gindex(1) << uint(bl-2)
	goRight = g&pivot != 0
	child = (g | pivot) - (pivot << 1)
	return child, goRight
}

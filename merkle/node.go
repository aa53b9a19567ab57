package merkle

import "fmt"

// Node is an immutable binary Merkle tree node. Leaves hold a 32-byte chunk
// directly as their root; internal nodes cache their root once computed.
// Nodes form a DAG, never a cycle: subtrees shared between a pre-step and
// a post-step tree are the same Node values, not copies.
type Node interface {
	// Root returns the 32-byte Merkle root of this node, computing and
	// caching it on first use for internal nodes.
	Root() Root
	// IsLeaf reports whether this node is a leaf (holds a chunk directly,
	// real or zero) rather than having structural children.
	IsLeaf() bool
	// Left returns the left child. Panics if IsLeaf().
	Left() Node
	// Right returns the right child. Panics if IsLeaf().
	Right() Node
}

// leaf is a materialized 32-byte chunk with no children.
type leaf struct {
	chunk Root
}

// Leaf wraps a 32-byte chunk as a leaf node.
func Leaf(chunk Root) Node { return leaf{chunk: chunk} }

func (l leaf) Root() Root   { return l.chunk }
func (l leaf) IsLeaf() bool { return true }
func (l leaf) Left() Node   { panic("merkle: Left of a leaf node") }
func (l leaf) Right() Node  { panic("merkle: Right of a leaf node") }

// zero is a lazily expanded all-zero subtree of a given depth. Depth 0 is
// a leaf holding the all-zero chunk; depth>0 expands to two zero children
// of depth-1 on demand, so padding an arbitrarily deep list costs O(1)
// until the padded region is actually read.
type zero struct {
	depth int
}

// Zero returns the canonical zero-filled subtree of the given depth.
func Zero(depth int) Node { return zero{depth: depth} }

func (z zero) Root() Root   { return ZeroHash(z.depth) }
func (z zero) IsLeaf() bool { return z.depth == 0 }
func (z zero) Left() Node {
	if z.depth == 0 {
		panic("merkle: Left of a zero leaf")
	}
	return zero{depth: z.depth - 1}
}
func (z zero) Right() Node {
	if z.depth == 0 {
		panic("merkle: Right of a zero leaf")
	}
	return zero{depth: z.depth - 1}
}

// pair is an internal node with two children and a cached root.
type pair struct {
	left, right Node
	root        *Root
}

// Pair builds an internal node from two children, computing its root
// eagerly so the cache is always warm (the generator and the shim both
// need a stable identity even when an ancestor is never recomputed).
func Pair(left, right Node) Node {
	r := HashPair(left.Root(), right.Root())
	return &pair{left: left, right: right, root: &r}
}

func (p *pair) Root() Root   { return *p.root }
func (p *pair) IsLeaf() bool { return false }
func (p *pair) Left() Node   { return p.left }
func (p *pair) Right() Node  { return p.right }

// String renders a node's root as 0x-hex, useful in test failures.
func String(n Node) string {
	r := n.Root()
	return fmt.Sprintf("0x%x", r[:])
}

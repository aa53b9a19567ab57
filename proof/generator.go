// Package proof drives next_step to a fixpoint over a transaction and
// records everything a later single-step fraud proof needs to replay and
// verify any one step in isolation (spec §4.F, §6).
package proof

import (
	"fmt"

	"github.com/bf-rollup/obf/merkle"
	"github.com/bf-rollup/obf/state"
	"github.com/bf-rollup/obf/witness"
)

// Trace is the full proof for one transaction's execution: the node-child
// map for every tree that ever appeared, the ordered root of each step,
// and the generalized indices each step actually read from its pre-tree.
type Trace struct {
	Nodes     map[merkle.Root][2]merkle.Root
	StepRoots []merkle.Root
	Access    [][]merkle.Gindex
}

// Generate runs initial to termination, recording a Trace. It returns an
// error only on the sanity-limit fatal condition (spec §4.F); a
// transaction failing with a non-zero result_code is not an error, it is
// a normal, fully recorded trace.
func Generate(initial *state.Tree) (*Trace, error) {
	t := &Trace{Nodes: make(map[merkle.Root][2]merkle.Root)}

	cur := initial
	t.StepRoots = append(t.StepRoots, cur.Root.Root())
	recordNodes(t.Nodes, cur.Root)

	for i := 0; i < state.SanityStepLimit; i++ {
		if state.DecodeStep(cur).ResultCode != state.Running {
			return t, nil
		}

		shimmed := witness.Shim(cur.Root)
		witness.Reset(shimmed)

		next := state.NextStep(state.New(shimmed))
		t.Access = append(t.Access, witness.TouchedGindices(shimmed))

		t.StepRoots = append(t.StepRoots, next.Root.Root())
		recordNodes(t.Nodes, next.Root)
		cur = next
	}
	return nil, fmt.Errorf("proof: execution did not terminate within the %d-step sanity limit", state.SanityStepLimit)
}

// recordNodes walks node, recording every internal node's two children
// keyed by the node's own root hash. A hash already present in m means
// its subtree was already fully recorded by an earlier step — by
// structural sharing its content can't have changed, so recursion stops
// there rather than re-walking shared subtrees on every step.
func recordNodes(m map[merkle.Root][2]merkle.Root, n merkle.Node) {
	if n.IsLeaf() {
		return
	}
	r := n.Root()
	if _, ok := m[r]; ok {
		return
	}
	left, right := n.Left(), n.Right()
	m[r] = [2]merkle.Root{left.Root(), right.Root()}
	recordNodes(m, left)
	recordNodes(m, right)
}

package proof

import "github.com/bf-rollup/obf/merkle"

// BuildStepWitness is the witness slicer (spec §4.G): given the full
// trace and a step index, it walks nodes from that step's pre-root down
// to each gindex the step actually touched, and returns the resulting
// node_by_gindex frontier — everything a verifier needs to replay that
// one step, nothing more.
func BuildStepWitness(t *Trace, stepIndex int) map[merkle.Gindex]merkle.Root {
	out := make(map[merkle.Gindex]merkle.Root, len(t.Access[stepIndex]))
	rootHash := t.StepRoots[stepIndex]
	for _, g := range t.Access[stepIndex] {
		out[g] = hashAtGindex(rootHash, g, t.Nodes)
	}
	return out
}

// hashAtGindex descends from rootHash to gindex g one level at a time via
// merkle.DescendLocal, following whichever child nodes says to take at
// each step. It stops early, returning whatever hash it last reached, if
// it hits one nodes doesn't describe further — that hash is already the
// answer, since an un-recorded hash denotes a subtree nothing deeper ever
// read.
func hashAtGindex(rootHash merkle.Root, g merkle.Gindex, nodes map[merkle.Root][2]merkle.Root) merkle.Root {
	cur := rootHash
	rem := g
	for rem != 1 {
		children, ok := nodes[cur]
		if !ok {
			return cur
		}
		child, goRight := merkle.DescendLocal(rem)
		if goRight {
			cur = children[1]
		} else {
			cur = children[0]
		}
		rem = child
	}
	return cur
}

package jsonio

import (
	"encoding/json"
	"fmt"

	"github.com/bf-rollup/obf/merkle"
	"github.com/bf-rollup/obf/proof"
)

// ProofDoc is the full proof's wire shape (spec §6): the whole-trace
// node-child map keyed by node hash, the ordered per-step roots, and the
// ordered per-step access sets.
type ProofDoc struct {
	Nodes     map[string][2]string `json:"nodes"`
	StepRoots []string             `json:"step_roots"`
	Access    [][]string           `json:"access"`
}

// EncodeProof renders a Trace as its wire form.
func EncodeProof(t *proof.Trace) *ProofDoc {
	d := &ProofDoc{
		Nodes:     make(map[string][2]string, len(t.Nodes)),
		StepRoots: make([]string, len(t.StepRoots)),
		Access:    make([][]string, len(t.Access)),
	}
	for hash, children := range t.Nodes {
		d.Nodes[EncodeRoot(hash)] = [2]string{EncodeRoot(children[0]), EncodeRoot(children[1])}
	}
	for i, r := range t.StepRoots {
		d.StepRoots[i] = EncodeRoot(r)
	}
	for i, access := range t.Access {
		row := make([]string, len(access))
		for j, g := range access {
			row[j] = EncodeGindex(g)
		}
		d.Access[i] = row
	}
	return d
}

// MarshalTrace renders a Trace directly to indented JSON bytes.
func MarshalTrace(t *proof.Trace) ([]byte, error) {
	return json.MarshalIndent(EncodeProof(t), "", "  ")
}

// DecodeProof parses a wire proof document back into a Trace.
func DecodeProof(d *ProofDoc) (*proof.Trace, error) {
	t := &proof.Trace{
		Nodes:     make(map[merkle.Root][2]merkle.Root, len(d.Nodes)),
		StepRoots: make([]merkle.Root, len(d.StepRoots)),
		Access:    make([][]merkle.Gindex, len(d.Access)),
	}
	for hashHex, childrenHex := range d.Nodes {
		hash, err := DecodeRoot(hashHex)
		if err != nil {
			return nil, err
		}
		left, err := DecodeRoot(childrenHex[0])
		if err != nil {
			return nil, err
		}
		right, err := DecodeRoot(childrenHex[1])
		if err != nil {
			return nil, err
		}
		t.Nodes[hash] = [2]merkle.Root{left, right}
	}
	for i, rHex := range d.StepRoots {
		r, err := DecodeRoot(rHex)
		if err != nil {
			return nil, err
		}
		t.StepRoots[i] = r
	}
	for i, row := range d.Access {
		gs := make([]merkle.Gindex, len(row))
		for j, gHex := range row {
			g, err := DecodeGindex(gHex)
			if err != nil {
				return nil, err
			}
			gs[j] = g
		}
		t.Access[i] = gs
	}
	return t, nil
}

// UnmarshalTrace parses indented JSON bytes into a Trace.
func UnmarshalTrace(data []byte) (*proof.Trace, error) {
	var d ProofDoc
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("jsonio: parsing proof: %w", err)
	}
	return DecodeProof(&d)
}

// StepWitnessDoc is a per-step witness's wire shape (spec §6): enough to
// replay and verify exactly one contested step.
type StepWitnessDoc struct {
	PreRoot      string            `json:"pre_root"`
	PostRoot     string            `json:"post_root"`
	Step         int               `json:"step"`
	NodeByGindex map[string]string `json:"node_by_gindex"`
}

// EncodeStepWitness builds the wire-form witness for trace's step i.
func EncodeStepWitness(t *proof.Trace, i int) *StepWitnessDoc {
	frontier := proof.BuildStepWitness(t, i)
	d := &StepWitnessDoc{
		PreRoot:      EncodeRoot(t.StepRoots[i]),
		PostRoot:     EncodeRoot(t.StepRoots[i+1]),
		Step:         i,
		NodeByGindex: make(map[string]string, len(frontier)),
	}
	for g, hash := range frontier {
		d.NodeByGindex[EncodeGindex(g)] = EncodeRoot(hash)
	}
	return d
}

// MarshalStepWitness renders a per-step witness directly to indented
// JSON bytes.
func MarshalStepWitness(t *proof.Trace, i int) ([]byte, error) {
	return json.MarshalIndent(EncodeStepWitness(t, i), "", "  ")
}

// Decode parses a step-witness document into its gindex-keyed frontier
// plus the claimed pre/post roots.
func (d *StepWitnessDoc) Decode() (nodeByGindex map[merkle.Gindex]merkle.Root, preRoot, postRoot merkle.Root, err error) {
	preRoot, err = DecodeRoot(d.PreRoot)
	if err != nil {
		return nil, preRoot, postRoot, err
	}
	postRoot, err = DecodeRoot(d.PostRoot)
	if err != nil {
		return nil, preRoot, postRoot, err
	}
	nodeByGindex = make(map[merkle.Gindex]merkle.Root, len(d.NodeByGindex))
	for gHex, hashHex := range d.NodeByGindex {
		g, err := DecodeGindex(gHex)
		if err != nil {
			return nil, preRoot, postRoot, err
		}
		hash, err := DecodeRoot(hashHex)
		if err != nil {
			return nil, preRoot, postRoot, err
		}
		nodeByGindex[g] = hash
	}
	return nodeByGindex, preRoot, postRoot, nil
}

// UnmarshalStepWitness parses indented JSON bytes into a StepWitnessDoc.
func UnmarshalStepWitness(data []byte) (*StepWitnessDoc, error) {
	var d StepWitnessDoc
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("jsonio: parsing step witness: %w", err)
	}
	return &d, nil
}

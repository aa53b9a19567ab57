package main

import (
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/bf-rollup/obf/jsonio"
)

// runStepWitness slices one contested step's witness out of a full proof
// (spec §4.G, §6) — the payload a single-step fraud proof actually ships.
func runStepWitness(args []string) error {
	f := flag.NewFlagSet("step-witness", flag.ContinueOnError)
	proofFile := f.String("proof", "", "path to the full proof JSON file")
	step := f.Int("step", -1, "index of the contested step")
	out := f.String("out", "", "path to write the per-step witness JSON")
	if err := f.Parse(args); err != nil {
		return err
	}
	if *proofFile == "" || *step < 0 || *out == "" {
		return fmt.Errorf("step-witness: --proof, --step (>= 0) and --out are required")
	}

	data, err := os.ReadFile(*proofFile)
	if err != nil {
		return fmt.Errorf("step-witness: %w", err)
	}
	trace, err := jsonio.UnmarshalTrace(data)
	if err != nil {
		return err
	}
	if *step >= len(trace.Access) {
		return fmt.Errorf("step-witness: step %d out of range for a %d-step trace", *step, len(trace.Access))
	}

	witnessData, err := jsonio.MarshalStepWitness(trace, *step)
	if err != nil {
		return err
	}
	log.Infof("step-witness: sliced step %d", *step)
	return os.WriteFile(*out, witnessData, 0o644)
}

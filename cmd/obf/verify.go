package main

import (
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/bf-rollup/obf/jsonio"
	"github.com/bf-rollup/obf/verify"
)

// runVerify replays a single-step witness and reports whether the
// claimed post root holds (spec §6: exit 0 on root match, 1 on
// mismatch — "fraud detected").
func runVerify(args []string) error {
	f := flag.NewFlagSet("verify", flag.ContinueOnError)
	witnessFile := f.String("witness", "", "path to the per-step witness JSON file")
	if err := f.Parse(args); err != nil {
		return err
	}
	if *witnessFile == "" {
		return fmt.Errorf("verify: --witness is required")
	}

	data, err := os.ReadFile(*witnessFile)
	if err != nil {
		return fmt.Errorf("verify: %w", err)
	}
	doc, err := jsonio.UnmarshalStepWitness(data)
	if err != nil {
		return err
	}
	frontier, preRoot, postRoot, err := doc.Decode()
	if err != nil {
		return err
	}

	valid, err := verify.Verify(frontier, postRoot)
	if err != nil {
		return fmt.Errorf("verify: %w", err)
	}
	if !valid {
		return &fraudDetected{msg: fmt.Sprintf(
			"verify: step %d does not produce claimed post root (pre %s -> claimed %s)",
			doc.Step, jsonio.EncodeRoot(preRoot), jsonio.EncodeRoot(postRoot))}
	}
	log.Infof("verify: step %d confirmed, pre %s -> post %s", doc.Step, jsonio.EncodeRoot(preRoot), jsonio.EncodeRoot(postRoot))
	return nil
}

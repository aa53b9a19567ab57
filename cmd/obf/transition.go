package main

import (
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/bf-rollup/obf/jsonio"
	"github.com/bf-rollup/obf/state"
)

// runTransition builds the initial Step tree for one transaction (spec
// §6's transaction input schema) and drives next_step to termination —
// exactly the "apply all fraud proof steps" loop the world-state CLI
// runs before it ever asks for a proof, bounded by the same sanity limit
// package proof guards against. On a successful (result_code == OK)
// transaction, the terminal contract state is written back to --out,
// completing the spec §8 round trip; a failing transaction leaves the
// world state untouched.
func runTransition(args []string) error {
	f := flag.NewFlagSet("transition", flag.ContinueOnError)
	initStateFile := f.String("init-state", "", "path to the initial state JSON file")
	txFile := f.String("tx", "", "path to the transaction input JSON file")
	out := f.String("out", "", "path to write the updated world state JSON on success")
	if err := f.Parse(args); err != nil {
		return err
	}
	if *initStateFile == "" || *txFile == "" || *out == "" {
		return fmt.Errorf("transition: --init-state, --tx and --out are required")
	}

	initData, err := os.ReadFile(*initStateFile)
	if err != nil {
		return fmt.Errorf("transition: %w", err)
	}
	contracts, err := jsonio.LoadInitState(initData)
	if err != nil {
		return err
	}

	txData, err := os.ReadFile(*txFile)
	if err != nil {
		return fmt.Errorf("transition: %w", err)
	}
	sender, slot, payload, err := jsonio.ParseTxInput(txData)
	if err != nil {
		return err
	}
	contract, ok := contracts[slot]
	if !ok {
		return fmt.Errorf("transition: contract slot %d not present in init state", slot)
	}

	cur := state.ParseTx(sender, contract, payload)
	preRoot := cur.Root.Root()

	steps := 0
	for i := 0; i < state.SanityStepLimit; i++ {
		if state.DecodeStep(cur).ResultCode != state.Running {
			break
		}
		cur = state.NextStep(cur)
		steps++
	}
	final := state.DecodeStep(cur)
	if final.ResultCode == state.Running {
		return fmt.Errorf("transition: execution did not terminate within the %d-step sanity limit", state.SanityStepLimit)
	}

	log.Infof("transition: %s -> %s (%s) in %d step(s)",
		jsonio.EncodeRoot(preRoot), jsonio.EncodeRoot(cur.Root.Root()), final.ResultCode, steps)

	if final.ResultCode != state.OK {
		log.Warnf("transition: failed (%s), world state left unchanged", final.ResultCode)
		return nil
	}

	contracts[slot] = final.Contract
	data, err := jsonio.SaveInitState(contracts)
	if err != nil {
		return err
	}
	return os.WriteFile(*out, data, 0o644)
}

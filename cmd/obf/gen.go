package main

import (
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/bf-rollup/obf/jsonio"
	"github.com/bf-rollup/obf/proof"
	"github.com/bf-rollup/obf/state"
)

// runGen drives a transaction to termination and writes its full proof
// (spec §4.F, §6): every node the trace ever touched, every step root,
// and every step's access set.
func runGen(args []string) error {
	f := flag.NewFlagSet("gen", flag.ContinueOnError)
	initStateFile := f.String("init-state", "", "path to the initial state JSON file")
	txFile := f.String("tx", "", "path to the transaction input JSON file")
	out := f.String("out", "", "path to write the full proof JSON")
	if err := f.Parse(args); err != nil {
		return err
	}
	if *initStateFile == "" || *txFile == "" || *out == "" {
		return fmt.Errorf("gen: --init-state, --tx and --out are required")
	}

	initData, err := os.ReadFile(*initStateFile)
	if err != nil {
		return fmt.Errorf("gen: %w", err)
	}
	contracts, err := jsonio.LoadInitState(initData)
	if err != nil {
		return err
	}

	txData, err := os.ReadFile(*txFile)
	if err != nil {
		return fmt.Errorf("gen: %w", err)
	}
	sender, slot, payload, err := jsonio.ParseTxInput(txData)
	if err != nil {
		return err
	}
	contract, ok := contracts[slot]
	if !ok {
		return fmt.Errorf("gen: contract slot %d not present in init state", slot)
	}

	initial := state.ParseTx(sender, contract, payload)
	trace, err := proof.Generate(initial)
	if err != nil {
		return fmt.Errorf("gen: %w", err)
	}
	log.Infof("gen: produced a %d-step trace over %d recorded node(s)", len(trace.Access), len(trace.Nodes))

	data, err := jsonio.MarshalTrace(trace)
	if err != nil {
		return err
	}
	return os.WriteFile(*out, data, 0o644)
}

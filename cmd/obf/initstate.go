package main

import (
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/bf-rollup/obf/jsonio"
	"github.com/bf-rollup/obf/state"
)

func runInitState(args []string) error {
	f := flag.NewFlagSet("init-state", flag.ContinueOnError)
	file := f.String("file", "", "path to the initial state JSON file")
	if err := f.Parse(args); err != nil {
		return err
	}
	if *file == "" {
		return fmt.Errorf("init-state: --file is required")
	}
	data, err := os.ReadFile(*file)
	if err != nil {
		return fmt.Errorf("init-state: %w", err)
	}
	contracts, err := jsonio.LoadInitState(data)
	if err != nil {
		return err
	}
	log.Infof("loaded %d contract(s) from %s", len(contracts), *file)
	for slot := 0; slot < state.MaxContracts; slot++ {
		cv, ok := contracts[uint8(slot)]
		if !ok {
			continue
		}
		root := state.BuildContract(cv).Root()
		fmt.Printf("%d\t%s\t%d ops\t%d cells\n", slot, jsonio.EncodeRoot(root), len(cv.Code), len(cv.Cells))
	}
	return nil
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	flag "github.com/spf13/pflag"

	"github.com/bf-rollup/obf/web"
)

// runServe starts the trace visualizer (package web): an HTTP + websocket
// server over a loaded set of contracts, useful for watching a
// transaction's step_roots unfold live instead of reading a JSON proof.
func runServe(args []string) error {
	f := flag.NewFlagSet("serve", flag.ContinueOnError)
	port := f.Uint("port", 8000, "port to listen on")
	initStateFile := f.String("init-state", "", "path to the initial state JSON file")
	if err := f.Parse(args); err != nil {
		return err
	}
	if *initStateFile == "" {
		return fmt.Errorf("serve: --init-state is required")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		<-sigCh
		cancel()
	}()

	return web.Serve(ctx, web.Config{Port: *port, InitStatePath: *initStateFile})
}

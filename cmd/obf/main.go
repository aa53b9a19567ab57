// Command obf is the CLI surface around the fraud-proof engine (spec §6):
// init-state, transition, gen, step-witness, and verify, plus a serve
// subcommand that starts the trace visualizer (package web). Mirrors the
// teacher's one-binary-per-concern cmd/ layout, collapsed into a single
// git-style dispatcher since these five concerns share one data model.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("prefix", "obf")

type subcommand struct {
	name string
	desc string
	run  func(args []string) error
}

var subcommands = []subcommand{
	{"init-state", "validate an initial state file and print each contract's root", runInitState},
	{"transition", "run a transaction to termination and write the updated world state", runTransition},
	{"gen", "run a transaction to completion and emit its full proof", runGen},
	{"step-witness", "slice one step's witness out of a full proof", runStepWitness},
	{"verify", "replay and verify a single-step witness", runVerify},
	{"serve", "start the trace visualizer web server", runServe},
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: obf <subcommand> [flags]")
	fmt.Fprintln(os.Stderr, "\nsubcommands:")
	for _, sc := range subcommands {
		fmt.Fprintf(os.Stderr, "  %-14s %s\n", sc.name, sc.desc)
	}
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	name := os.Args[1]
	for _, sc := range subcommands {
		if sc.name != name {
			continue
		}
		if err := sc.run(os.Args[2:]); err != nil {
			if ec, ok := err.(exitCoder); ok {
				log.Error(err)
				os.Exit(ec.ExitCode())
			}
			log.WithError(err).Errorf("%s failed", name)
			os.Exit(2)
		}
		return
	}
	fmt.Fprintf(os.Stderr, "obf: unknown subcommand %q\n\n", name)
	usage()
	os.Exit(2)
}

// exitCoder lets a subcommand request a specific process exit code, used
// by verify to distinguish "fraud detected" (1) from a plain I/O error.
type exitCoder interface {
	error
	ExitCode() int
}

type fraudDetected struct{ msg string }

func (f *fraudDetected) Error() string { return f.msg }
func (f *fraudDetected) ExitCode() int { return 1 }

// Package main provides the entry point for vxlvm, the VXL bytecode
// virtual machine.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/kestrel-systems/vxlvm/emu"
	"github.com/kestrel-systems/vxlvm/host"
	"github.com/kestrel-systems/vxlvm/insts"
	"github.com/kestrel-systems/vxlvm/loader"
)

var (
	verbose  = flag.Bool("v", false, "Verbose output")
	maxInstr = flag.Uint64("max-instr", 0, "Abort after this many instructions (0 = unlimited)")
)

func main() {
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: vxlvm [options] <program.vxl>\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	programPath := flag.Arg(0)
	os.Exit(run(programPath))
}

func run(programPath string) int {
	data, err := os.ReadFile(programPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading program: %v\n", err)
		return 1
	}

	hdr, payload, err := loader.Load(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading program: %v\n", err)
		return 1
	}

	instructions, err := insts.DecodeAll(payload)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error decoding program: %v\n", err)
		return 1
	}

	if *verbose {
		fmt.Printf("Loaded: %s\n", programPath)
		fmt.Printf("Payload size: %d bytes\n", hdr.PayloadSize)
		fmt.Printf("Instructions: %d\n", len(instructions))
	}

	handler := host.New(os.Stdin, os.Stdout)
	m := emu.NewMachine(instructions)

	var executed uint64
	for !m.Halted() {
		if *maxInstr != 0 && executed >= *maxInstr {
			fmt.Fprintf(os.Stderr, "Aborted: exceeded %d instructions\n", *maxInstr)
			return 1
		}
		if err := m.RunNext(handler); err != nil {
			fmt.Fprintf(os.Stderr, "Runtime error: %v\n", err)
			return 1
		}
		executed++
	}

	if *verbose {
		fmt.Printf("Instructions executed: %d\n", executed)
	}

	if exited, code := handler.Exited(); exited {
		return int(code)
	}
	return 0
}

// Package main provides a pointer to the real entry point.
//
// For the full CLI, use: go run ./cmd/vxlvm
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("vxlvm - VXL bytecode virtual machine")
	fmt.Println("")
	fmt.Println("Usage: vxlvm [options] <program.vxl>")
	fmt.Println("")
	fmt.Println("Options:")
	fmt.Println("  -v           Verbose output")
	fmt.Println("  -max-instr   Abort after this many instructions (0 = unlimited)")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/vxlvm' for the full CLI.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/vxlvm' instead.")
	}
}

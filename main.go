// Package main provides the entry point for RV5Sim.
// RV5Sim is a five-phase multi-cycle RISC-V core simulator built on Akita.
//
// For the full CLI, use: go run ./cmd/rv5sim
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("RV5Sim - Multi-Cycle RISC-V Core Simulator")
	fmt.Println("Built on Akita simulation components")
	fmt.Println("")
	fmt.Println("Usage: rv5sim [options] [program]")
	fmt.Println("")
	fmt.Println("Options:")
	fmt.Println("  -steps         Number of phase steps to drive (default 50)")
	fmt.Println("  -xlen          Machine word width in bits (default 64)")
	fmt.Println("  -trace         Print one line per phase step")
	fmt.Println("  -cache         Model an instruction cache on the fetch path")
	fmt.Println("  -cache-config  Path to cache configuration JSON file")
	fmt.Println("  -v             Verbose output")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/rv5sim' for the full CLI.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/rv5sim' instead.")
	}
}

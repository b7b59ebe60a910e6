// Command benchmark runs the RV5Sim timing benchmark harness.
//
// Usage:
//
//	go run ./cmd/benchmark [flags]
//
// Flags:
//
//	-csv       Output results in CSV format (default: human-readable)
//	-json      Output results in JSON format
//	-no-cache  Disable the instruction fetch cache model
//
// Example:
//
//	# Run all benchmarks with human-readable output
//	go run ./cmd/benchmark
//
//	# Output CSV for spreadsheet comparison
//	go run ./cmd/benchmark -csv > results.csv
//
// Every benchmark carries the register value its program must produce, so a
// run doubles as a correctness check of the core model. The command exits
// nonzero when any result check fails.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sarchlab/rv5sim/benchmarks"
)

func main() {
	csvOutput := flag.Bool("csv", false, "Output results in CSV format")
	jsonOutput := flag.Bool("json", false, "Output results in JSON format")
	noCache := flag.Bool("no-cache", false, "Disable the fetch cache model")
	flag.Parse()

	config := benchmarks.DefaultConfig()
	config.EnableCache = !*noCache
	config.Output = os.Stdout

	harness := benchmarks.NewHarness(config)
	harness.AddBenchmarks(benchmarks.GetMicrobenchmarks())

	if !*csvOutput && !*jsonOutput {
		fmt.Println("RV5Sim Timing Benchmark Harness")
		fmt.Println("===============================")
		fmt.Printf("Fetch Cache: %v\n", config.EnableCache)
		fmt.Println("")
	}

	results := harness.RunAll()

	switch {
	case *jsonOutput:
		if err := harness.PrintJSON(results); err != nil {
			fmt.Fprintf(os.Stderr, "failed to encode report: %v\n", err)
			os.Exit(1)
		}
	case *csvOutput:
		harness.PrintCSV(results)
	default:
		harness.PrintResults(results)

		fmt.Println("=== Summary ===")
		fmt.Println("")
		fmt.Println("Expected characteristics:")
		fmt.Println("- arithmetic_sequential: straight-line code, five steps per pass")
		fmt.Println("- dependency_chain: identical cost, phases never overlap")
		fmt.Println("- accumulate_loop: steady state, exactly 5.000 steps per instruction")
		fmt.Println("- jump_chain: skipped words cost nothing, jumps cost a full pass")
		fmt.Println("- link_chain: ra tracks each landing address")
		fmt.Println("- mixed_workload: balanced blend of the three instructions")
	}

	failed := 0
	for _, r := range results {
		if !r.Passed {
			failed++
		}
	}
	if failed > 0 {
		fmt.Fprintf(os.Stderr, "%d benchmark(s) failed their result check\n", failed)
		os.Exit(1)
	}
}

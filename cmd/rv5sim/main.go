// Package main provides the entry point for RV5Sim.
// RV5Sim is a five-phase multi-cycle RISC-V core simulator.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sarchlab/rv5sim/emu"
	"github.com/sarchlab/rv5sim/loader"
	"github.com/sarchlab/rv5sim/timing/core"
	"github.com/sarchlab/rv5sim/timing/fetchcache"
)

var (
	steps     = flag.Uint64("steps", 10*core.NumStages, "Number of phase steps to drive")
	xlen      = flag.Int("xlen", emu.DefaultXLEN, "Machine word width in bits")
	trace     = flag.Bool("trace", false, "Print one line per phase step")
	useCache  = flag.Bool("cache", false, "Model an instruction cache on the fetch path")
	cachePath = flag.String("cache-config", "", "Path to cache configuration JSON file (implies -cache)")
	verbose   = flag.Bool("v", false, "Verbose output")
)

func main() {
	flag.Parse()

	if flag.NArg() > 1 {
		fmt.Fprintf(os.Stderr, "Usage: rv5sim [options] [program]\n")
		fmt.Fprintf(os.Stderr, "\nRuns the resident boot program when no program image is given.\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	rom, entry, err := buildRom()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading program: %v\n", err)
		os.Exit(1)
	}

	opts := []core.CoreOption{
		core.WithXLEN(*xlen),
		core.WithBootRom(rom),
	}

	if *useCache || *cachePath != "" {
		config, err := cacheConfig()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading cache config: %v\n", err)
			os.Exit(1)
		}
		opts = append(opts, core.WithFetchCache(config))
	}

	c := core.NewCore(opts...)
	c.SetPC(entry)

	run(c)
	report(c)
}

// buildRom assembles the boot ROM from the program image named on the
// command line, or falls back to the resident boot program.
func buildRom() (*emu.BootRom, uint64, error) {
	if flag.NArg() == 0 {
		return emu.NewBootRom(emu.BootProgram()), 0, nil
	}

	prog, err := loader.Load(flag.Arg(0))
	if err != nil {
		return nil, 0, err
	}

	if *verbose {
		fmt.Printf("Loaded: %s\n", flag.Arg(0))
		fmt.Printf("Entry point: 0x%X\n", prog.Entry)
		fmt.Printf("Words: %d at 0x%X\n", len(prog.Words), prog.Base)
	}

	return emu.NewBootRomAt(prog.Base, prog.Words), prog.Entry, nil
}

// cacheConfig resolves the fetch cache configuration from the command
// line.
func cacheConfig() (fetchcache.Config, error) {
	config := fetchcache.DefaultConfig()

	if *cachePath != "" {
		var err error
		config, err = fetchcache.LoadConfig(*cachePath)
		if err != nil {
			return fetchcache.Config{}, err
		}
	}

	if err := config.Validate(); err != nil {
		return fetchcache.Config{}, err
	}
	return config, nil
}

// run drives the core for the configured number of phase steps, stopping
// early once it halts.
func run(c *core.Core) {
	for i := uint64(0); i < *steps && !c.Halted(); i++ {
		stage := c.Stage()
		c.Step()

		if *trace {
			snap := c.Snapshot()
			fmt.Printf("%6d  %-9s  pc=0x%X  inst=0x%08X  retired=%d\n",
				i+1, stage, snap.PC, c.InstructionWord(), snap.Cycles)
		}
	}
}

// report prints the final architectural state and performance counters.
func report(c *core.Core) {
	snap := c.Snapshot()
	stats := c.Stats()

	fmt.Printf("\n")
	fmt.Printf("Halted: %v\n", snap.Halted)
	fmt.Printf("Stage: %s\n", snap.Stage)
	fmt.Printf("PC: 0x%X\n", snap.PC)
	fmt.Printf("Retired instructions: %d\n", snap.Cycles)
	fmt.Printf("Phase steps: %d\n", stats.Steps)
	if stats.Instructions > 0 {
		fmt.Printf("Steps per instruction: %.2f\n", stats.StepsPerInstruction())
	}

	fmt.Printf("\nRegisters (nonzero):\n")
	printed := false
	for i, v := range snap.Registers {
		if v != 0 {
			fmt.Printf("  x%-2d = 0x%X\n", i+1, v)
			printed = true
		}
	}
	if !printed {
		fmt.Printf("  (all zero)\n")
	}

	if cache := c.FetchCache(); cache != nil {
		cs := cache.Stats()
		fmt.Printf("\nFetch cache:\n")
		fmt.Printf("  Fetches:   %d\n", cs.Fetches)
		fmt.Printf("  Hits:      %d\n", cs.Hits)
		fmt.Printf("  Misses:    %d\n", cs.Misses)
		fmt.Printf("  Evictions: %d\n", cs.Evictions)
		fmt.Printf("  Hit rate:  %.1f%%\n", 100*cs.HitRate())
		fmt.Printf("  Modeled latency: %d cycles\n", cs.LatencyCycles)
	}
}

// Package main provides a profiling wrapper for RV5Sim to identify
// performance bottlenecks.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/pprof"
	"time"

	"github.com/sarchlab/rv5sim/emu"
	"github.com/sarchlab/rv5sim/loader"
	"github.com/sarchlab/rv5sim/timing/core"
	"github.com/sarchlab/rv5sim/timing/fetchcache"
)

var (
	cpuProfile  = flag.String("cpuprofile", "", "write cpu profile to file")
	memProfile  = flag.String("memprofile", "", "write memory profile to file")
	duration    = flag.Duration("duration", 30*time.Second, "max duration to run (for profiling)")
	instruction = flag.Uint64("max-instr", 1000000, "instructions to retire")
	useCache    = flag.Bool("cache", false, "attach the fetch cache model")
)

func main() {
	flag.Parse()

	if flag.NArg() > 1 {
		fmt.Fprintf(os.Stderr, "Usage: profile [options] [program]\n")
		fmt.Fprintf(os.Stderr, "\nWith no program argument the resident boot loop is profiled.\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	// Start CPU profiling if requested
	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = f.Close() }()

		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "Error starting CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer pprof.StopCPUProfile()
	}

	c, err := buildCore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading program: %v\n", err)
		os.Exit(1)
	}

	start := time.Now()

	// Set timeout
	go func() {
		time.Sleep(*duration)
		fmt.Printf("\nTimeout reached after %v - stopping execution\n", *duration)
		os.Exit(2)
	}()

	completed := c.RunInstructions(*instruction)
	elapsed := time.Since(start)
	stats := c.Stats()

	// Write memory profile if requested
	if *memProfile != "" {
		f, err := os.Create(*memProfile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating memory profile: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = f.Close() }()

		if err := pprof.WriteHeapProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing memory profile: %v\n", err)
		}
	}

	fmt.Printf("\nProfiling Results:\n")
	fmt.Printf("Halted early: %v\n", !completed)
	fmt.Printf("Steps driven: %d\n", stats.Steps)
	fmt.Printf("Instructions retired: %d\n", stats.Instructions)
	fmt.Printf("Elapsed time: %v\n", elapsed)
	if stats.Instructions > 0 {
		fmt.Printf("Instructions/second: %.0f\n",
			float64(stats.Instructions)/elapsed.Seconds())
		fmt.Printf("Steps/second: %.0f\n",
			float64(stats.Steps)/elapsed.Seconds())
	}

	if cache := c.FetchCache(); cache != nil {
		cacheStats := cache.Stats()
		fmt.Printf("Fetch cache hit rate: %.1f%%\n", cacheStats.HitRate()*100)
	}
}

// buildCore assembles the profiled core: the resident boot loop by default,
// or a program image named on the command line.
func buildCore() (*core.Core, error) {
	var opts []core.CoreOption
	if *useCache {
		opts = append(opts, core.WithFetchCache(fetchcache.DefaultConfig()))
	}

	if flag.NArg() == 0 {
		fmt.Println("Profiling the resident boot loop")
		return core.NewCore(opts...), nil
	}

	path := flag.Arg(0)
	prog, err := loader.Load(path)
	if err != nil {
		return nil, err
	}

	opts = append(opts, core.WithBootRom(emu.NewBootRomAt(prog.Base, prog.Words)))
	c := core.NewCore(opts...)
	c.SetPC(prog.Entry)

	fmt.Printf("Loaded: %s\n", path)
	fmt.Printf("Entry point: 0x%X\n", prog.Entry)
	return c, nil
}

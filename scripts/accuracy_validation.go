// Package main provides accuracy validation for performance optimizations.
// Ensures that the reusing decode path and the fetch cache model preserve
// simulation correctness.
package main

import (
	"fmt"
	"os"

	"github.com/sarchlab/rv5sim/emu"
	"github.com/sarchlab/rv5sim/insts"
	"github.com/sarchlab/rv5sim/timing/core"
	"github.com/sarchlab/rv5sim/timing/fetchcache"
)

// testInstructionDecoding validates that the allocation-free DecodeInto
// produces identical results to the allocating Decode.
func testInstructionDecoding() bool {
	decoder := insts.NewDecoder()

	// Test various instruction encodings
	testCases := []uint32{
		0x00B50533, // add  a0, a0, a1
		0x00000533, // add  a0, x0, x0
		0x04200593, // addi a1, x0, 0x42
		0xFFF50513, // addi a0, a0, 0xFFF
		0xFFDFF06F, // jal  x0, -4
		0xFFDFF0EF, // jal  ra, -4
		0x00008067, // jalr (illegal)
		0x00000000, // zero word (illegal)
	}

	fmt.Println("Testing instruction decoder accuracy...")

	for i, word := range testCases {
		inst1 := decoder.Decode(word)

		var inst2 insts.Instruction
		decoder.DecodeInto(word, &inst2)

		if *inst1 != inst2 {
			fmt.Printf("❌ Test case %d failed: Decode mismatch\n", i)
			fmt.Printf("  Decode():     %+v\n", *inst1)
			fmt.Printf("  DecodeInto(): %+v\n", inst2)
			return false
		}

		fmt.Printf("✅ Test case %d: Instruction 0x%08X decoded correctly\n", i, word)
	}

	return true
}

// testCoreExecution runs a small program over several initial register
// values and checks the architectural results.
func testCoreExecution() bool {
	fmt.Println("\nTesting core execution...")

	program := []uint32{
		0x00508113, // addi x2, x1, 5
		0x002101B3, // add  x3, x2, x2
		0x00100073, // ebreak, halts the core
	}

	initialValues := []uint64{0, 1, 7, 100, 0xFFF}

	for i, initialValue := range initialValues {
		c := core.NewCore(core.WithBootRom(emu.NewBootRom(program)))
		c.RegFile().WriteReg(1, initialValue)

		c.RunSteps(100)

		snap := c.Snapshot()
		if !snap.Halted {
			fmt.Printf("❌ Test case %d: core did not halt\n", i)
			return false
		}

		wantX2 := initialValue + 5
		wantX3 := 2 * wantX2
		if snap.Reg(2) != wantX2 || snap.Reg(3) != wantX3 {
			fmt.Printf("❌ Test case %d: x1=%d → x2=%d, x3=%d (want %d, %d)\n",
				i, initialValue, snap.Reg(2), snap.Reg(3), wantX2, wantX3)
			return false
		}

		fmt.Printf("✅ Test case %d: x1=%d → x2=%d, x3=%d (retired %d)\n",
			i, initialValue, snap.Reg(2), snap.Reg(3), snap.Cycles)
	}

	return true
}

// testFetchCacheConsistency validates that attaching the fetch cache model
// never changes architectural results.
func testFetchCacheConsistency() bool {
	fmt.Println("\nTesting fetch cache consistency...")

	plain := core.NewCore()
	cached := core.NewCore(core.WithFetchCache(fetchcache.DefaultConfig()))

	const steps = 200
	plain.RunSteps(steps)
	cached.RunSteps(steps)

	snapPlain := plain.Snapshot()
	snapCached := cached.Snapshot()

	if snapPlain != snapCached {
		fmt.Printf("❌ Snapshot mismatch after %d steps\n", steps)
		fmt.Printf("  plain:  %+v\n", snapPlain)
		fmt.Printf("  cached: %+v\n", snapCached)
		return false
	}
	fmt.Printf("✅ Architectural state matches after %d steps (pc=0x%X, a0=0x%X)\n",
		steps, snapCached.PC, snapCached.Reg(10))

	stats := cached.FetchCache().Stats()
	if stats.Fetches != 40 || stats.Misses != 1 {
		fmt.Printf("❌ Unexpected cache counters: %+v\n", stats)
		return false
	}
	fmt.Printf("✅ Cache counters: %d fetches, %d hits, %d misses\n",
		stats.Fetches, stats.Hits, stats.Misses)

	return true
}

func main() {
	fmt.Println("RV5Sim Accuracy Validation - Performance Optimization")
	fmt.Println("=======================================================")

	allPassed := true

	// Test instruction decoding accuracy
	if !testInstructionDecoding() {
		allPassed = false
	}

	// Test core execution accuracy
	if !testCoreExecution() {
		allPassed = false
	}

	// Test fetch cache transparency
	if !testFetchCacheConsistency() {
		allPassed = false
	}

	fmt.Println("\n=======================================================")
	if allPassed {
		fmt.Println("🎉 ALL ACCURACY TESTS PASSED")
		fmt.Println("✅ Performance optimizations preserve simulation correctness")
		os.Exit(0)
	} else {
		fmt.Println("❌ ACCURACY TESTS FAILED")
		fmt.Println("🚨 Performance optimizations may have introduced errors")
		os.Exit(1)
	}
}

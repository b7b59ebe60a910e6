// Validate decoder optimization - measures allocation behavior of the
// reusing decode path
package main

import (
	"fmt"
	"runtime"
	"time"

	"github.com/sarchlab/rv5sim/insts"
)

func main() {
	decoder := insts.NewDecoder()
	var inst insts.Instruction

	// Warm up
	for i := 0; i < 1000; i++ {
		decoder.DecodeInto(0x00B50533, &inst)
	}

	// Measure allocations on the reusing path
	runtime.GC()
	var m1, m2 runtime.MemStats
	runtime.ReadMemStats(&m1)

	start := time.Now()
	iterations := 100000

	// Decode the whole resident boot image per iteration
	for i := 0; i < iterations; i++ {
		decoder.DecodeInto(0x00000533, &inst) // add  a0, x0, x0
		decoder.DecodeInto(0x04200593, &inst) // addi a1, x0, 0x42
		decoder.DecodeInto(0x00B50533, &inst) // add  a0, a0, a1
		decoder.DecodeInto(0xFFDFF06F, &inst) // jal  x0, -4
	}

	elapsed := time.Since(start)
	runtime.ReadMemStats(&m2)

	totalDecodes := iterations * 4
	allocations := m2.Mallocs - m1.Mallocs
	allocatedBytes := m2.TotalAlloc - m1.TotalAlloc

	fmt.Printf("Decoder Validation Results:\n")
	fmt.Printf("===========================\n")
	fmt.Printf("Total decode operations: %d\n", totalDecodes)
	fmt.Printf("Time elapsed: %v\n", elapsed)
	fmt.Printf("Decodes per second: %.0f\n", float64(totalDecodes)/elapsed.Seconds())
	fmt.Printf("Allocations: %d\n", allocations)
	fmt.Printf("Allocated bytes: %d\n", allocatedBytes)
	fmt.Printf("Allocations per decode: %.3f\n", float64(allocations)/float64(totalDecodes))
	fmt.Printf("Bytes per decode: %.1f\n", float64(allocatedBytes)/float64(totalDecodes))

	if allocations == 0 {
		fmt.Printf("\n✅ SUCCESS: Zero allocations detected! DecodeInto stays on the stack.\n")
	} else if float64(allocations)/float64(totalDecodes) < 0.1 {
		fmt.Printf("\n✅ GOOD: Low allocation rate (< 0.1 per decode)\n")
	} else {
		fmt.Printf("\n⚠️  WARNING: High allocation rate detected\n")
	}
}

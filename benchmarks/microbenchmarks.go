// Package benchmarks provides the timing benchmark harness for RV5Sim
// calibration.
package benchmarks

// GetMicrobenchmarks returns the standard set of microbenchmarks. Each one
// targets a specific behavior of the five-phase core. Programs end on an
// EBREAK word, which the decoder rejects and thereby halts the core; the
// loop benchmark never halts and runs to its step bound instead.
func GetMicrobenchmarks() []Benchmark {
	return []Benchmark{
		arithmeticSequential(),
		dependencyChain(),
		accumulateLoop(),
		jumpChain(),
		linkChain(),
		mixedWorkload(),
	}
}

// GetCoreBenchmarks returns a minimal set of 3 benchmarks for quick
// validation: a loop, a dependent chain, and jump-heavy code.
func GetCoreBenchmarks() []Benchmark {
	return []Benchmark{
		accumulateLoop(),
		dependencyChain(),
		jumpChain(),
	}
}

// 1. Arithmetic Sequential - independent ADDIs across five registers
func arithmeticSequential() Benchmark {
	return Benchmark{
		Name:        "arithmetic_sequential",
		Description: "20 independent ADDI operations - measures the straight-line phase cost",
		Program: []uint32{
			// Four rounds over x1..x5, each +1
			EncodeADDI(1, 1, 1),
			EncodeADDI(2, 2, 1),
			EncodeADDI(3, 3, 1),
			EncodeADDI(4, 4, 1),
			EncodeADDI(5, 5, 1),
			EncodeADDI(1, 1, 1),
			EncodeADDI(2, 2, 1),
			EncodeADDI(3, 3, 1),
			EncodeADDI(4, 4, 1),
			EncodeADDI(5, 5, 1),
			EncodeADDI(1, 1, 1),
			EncodeADDI(2, 2, 1),
			EncodeADDI(3, 3, 1),
			EncodeADDI(4, 4, 1),
			EncodeADDI(5, 5, 1),
			EncodeADDI(1, 1, 1),
			EncodeADDI(2, 2, 1),
			EncodeADDI(3, 3, 1),
			EncodeADDI(4, 4, 1),
			EncodeADDI(5, 5, 1),
			EncodeEBREAK(),
		},
		ResultReg: 1,
		Expected:  4, // four rounds of +1
	}
}

// 2. Dependency Chain - every ADDI reads its own previous result
func dependencyChain() Benchmark {
	return Benchmark{
		Name:        "dependency_chain",
		Description: "20 dependent ADDIs (x10 = x10 + 1) - the phase walk serializes them anyway",
		Program:     buildDependencyChain(20),
		ResultReg:   10,
		Expected:    20,
	}
}

func buildDependencyChain(n int) []uint32 {
	program := make([]uint32, 0, n+1)
	for i := 0; i < n; i++ {
		program = append(program, EncodeADDI(10, 10, 1))
	}
	return append(program, EncodeEBREAK())
}

// 3. Accumulate Loop - the resident boot image rebuilt from the encoders
func accumulateLoop() Benchmark {
	return Benchmark{
		Name:        "accumulate_loop",
		Description: "Resident boot loop - folds 0x42 into a0 once per pass, never halts",
		Program: []uint32{
			EncodeADD(10, 0, 0),     // 0x0: a0 = 0
			EncodeADDI(11, 0, 0x42), // 0x4: a1 = 0x42
			EncodeADD(10, 10, 11),   // 0x8: a0 += a1
			EncodeJAL(0, -4),        // 0xc: back to 0x4
		},
		MaxSteps:  150, // 30 retirements: the first add plus ten loop passes
		ResultReg: 10,
		Expected:  0x294, // 10 * 0x42
	}
}

// 4. Jump Chain - forward jumps over poison words
func jumpChain() Benchmark {
	return Benchmark{
		Name:        "jump_chain",
		Description: "5 forward JALs skipping a poison word each - measures jump overhead",
		Program: []uint32{
			// Each jal lands 8 bytes ahead, over the poison ADDI.
			EncodeJAL(0, 12),
			EncodeADDI(6, 6, 99), // skipped
			EncodeADDI(5, 5, 1),

			EncodeJAL(0, 12),
			EncodeADDI(6, 6, 99), // skipped
			EncodeADDI(5, 5, 1),

			EncodeJAL(0, 12),
			EncodeADDI(6, 6, 99), // skipped
			EncodeADDI(5, 5, 1),

			EncodeJAL(0, 12),
			EncodeADDI(6, 6, 99), // skipped
			EncodeADDI(5, 5, 1),

			EncodeJAL(0, 12),
			EncodeADDI(6, 6, 99), // skipped
			EncodeADDI(5, 5, 1),

			EncodeEBREAK(),
		},
		ResultReg: 5,
		Expected:  5,
	}
}

// 5. Link Chain - consecutive JALs that each capture the link value
func linkChain() Benchmark {
	return Benchmark{
		Name:        "link_chain",
		Description: "5 chained JAL link captures - ra tracks the landing address",
		Program: []uint32{
			// Offset 8 lands on the very next word; each jal rewrites ra
			// with its own landing address.
			EncodeJAL(1, 8), // ra = 0x04
			EncodeJAL(1, 8), // ra = 0x08
			EncodeJAL(1, 8), // ra = 0x0c
			EncodeJAL(1, 8), // ra = 0x10
			EncodeJAL(1, 8), // ra = 0x14
			EncodeADD(5, 1, 0),
			EncodeEBREAK(),
		},
		ResultReg: 5,
		Expected:  0x14, // landing address of the last jal
	}
}

// 6. Mixed Workload - ADDI, ADD, and both JAL flavors together
func mixedWorkload() Benchmark {
	return Benchmark{
		Name:        "mixed_workload",
		Description: "Mix of ADDI, ADD, and JAL - realistic workload characteristics",
		Program: []uint32{
			EncodeADDI(11, 0, 10),  // 0x00: x11 = 10
			EncodeADD(10, 10, 11),  // 0x04: x10 = 10
			EncodeJAL(0, 12),       // 0x08: skip the poison word
			EncodeADDI(10, 10, 99), // 0x0c: skipped
			EncodeADDI(11, 11, 5),  // 0x10: x11 = 15
			EncodeADD(10, 10, 11),  // 0x14: x10 = 25
			EncodeJAL(1, 8),        // 0x18: ra = 0x1c
			EncodeADD(10, 10, 1),   // 0x1c: x10 = 25 + 0x1c = 53
			EncodeADDI(10, 10, 7),  // 0x20: x10 = 60
			EncodeEBREAK(),
		},
		ResultReg: 10,
		Expected:  60,
	}
}

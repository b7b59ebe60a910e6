// Package benchmarks provides the timing benchmark harness for RV5Sim
// calibration.
package benchmarks

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sarchlab/rv5sim/emu"
	"github.com/sarchlab/rv5sim/insts"
	"github.com/sarchlab/rv5sim/timing/core"
	"github.com/sarchlab/rv5sim/timing/fetchcache"
)

// BenchmarkResult holds the timing results for a single benchmark run.
type BenchmarkResult struct {
	// Name identifies the benchmark
	Name string `json:"name"`

	// Description explains what the benchmark measures
	Description string `json:"description"`

	// Steps is the number of phase edges driven
	Steps uint64 `json:"steps"`

	// InstructionsRetired is the number of completed instructions
	InstructionsRetired uint64 `json:"instructions_retired"`

	// StepsPerInstruction is the average phase cost per retired instruction
	StepsPerInstruction float64 `json:"steps_per_instruction"`

	// Halted reports whether the run ended on the halt latch rather than
	// the step bound
	Halted bool `json:"halted"`

	// ResultReg is the register checked after the run
	ResultReg uint8 `json:"result_reg"`

	// Result is the value ResultReg held after the run
	Result uint64 `json:"result"`

	// Expected is the value ResultReg should hold
	Expected uint64 `json:"expected"`

	// Passed reports whether Result matched Expected
	Passed bool `json:"passed"`

	// Fetch cache counters (if cache enabled)
	CacheFetches        uint64  `json:"cache_fetches,omitempty"`
	CacheHits           uint64  `json:"cache_hits,omitempty"`
	CacheMisses         uint64  `json:"cache_misses,omitempty"`
	CacheHitRatePercent float64 `json:"cache_hit_rate_percent,omitempty"`

	// WallTime is the actual time taken to run the simulation
	WallTime time.Duration `json:"wall_time_ns"`
}

// Benchmark defines a single benchmark program.
type Benchmark struct {
	// Name identifies the benchmark
	Name string

	// Description explains what the benchmark measures
	Description string

	// Setup seeds the register file before the run (optional)
	Setup func(regFile *emu.RegFile)

	// Program is the machine code placed in the boot ROM
	Program []uint32

	// Base is the load address of the program; the PC starts here
	Base uint64

	// MaxSteps bounds the run for programs that never halt; 0 uses the
	// harness default
	MaxSteps uint64

	// ResultReg is the register checked after the run
	ResultReg uint8

	// Expected is the value ResultReg must hold (for validation)
	Expected uint64
}

// HarnessConfig configures the benchmark harness.
type HarnessConfig struct {
	// EnableCache enables the instruction fetch cache model
	EnableCache bool

	// CacheConfig configures the fetch cache when enabled
	CacheConfig fetchcache.Config

	// MaxSteps is the default step bound for benchmarks that never halt
	MaxSteps uint64

	// XLEN is the machine word width in bits
	XLEN int

	// Output is where to write results (default: os.Stdout)
	Output io.Writer
}

// DefaultConfig returns a default harness configuration.
func DefaultConfig() HarnessConfig {
	return HarnessConfig{
		EnableCache: true,
		CacheConfig: fetchcache.DefaultConfig(),
		MaxSteps:    10000,
		XLEN:        emu.DefaultXLEN,
		Output:      os.Stdout,
	}
}

// Harness runs timing benchmarks and reports results.
type Harness struct {
	config     HarnessConfig
	benchmarks []Benchmark
}

// NewHarness creates a new benchmark harness.
func NewHarness(config HarnessConfig) *Harness {
	if config.Output == nil {
		config.Output = os.Stdout
	}
	return &Harness{
		config:     config,
		benchmarks: []Benchmark{},
	}
}

// AddBenchmark adds a benchmark to the harness.
func (h *Harness) AddBenchmark(b Benchmark) {
	h.benchmarks = append(h.benchmarks, b)
}

// AddBenchmarks adds multiple benchmarks to the harness.
func (h *Harness) AddBenchmarks(benchmarks []Benchmark) {
	h.benchmarks = append(h.benchmarks, benchmarks...)
}

// RunAll executes all benchmarks and returns results.
func (h *Harness) RunAll() []BenchmarkResult {
	results := make([]BenchmarkResult, 0, len(h.benchmarks))

	for _, bench := range h.benchmarks {
		result := h.runBenchmark(bench)
		results = append(results, result)
	}

	return results
}

// runBenchmark executes a single benchmark on a fresh core.
func (h *Harness) runBenchmark(bench Benchmark) BenchmarkResult {
	opts := []core.CoreOption{
		core.WithXLEN(h.config.XLEN),
		core.WithBootRom(emu.NewBootRomAt(bench.Base, bench.Program)),
	}
	if h.config.EnableCache {
		opts = append(opts, core.WithFetchCache(h.config.CacheConfig))
	}
	c := core.NewCore(opts...)

	if bench.Setup != nil {
		bench.Setup(c.RegFile())
	}

	limit := bench.MaxSteps
	if limit == 0 {
		limit = h.config.MaxSteps
	}

	start := time.Now()
	c.RunSteps(limit)
	wallTime := time.Since(start)

	stats := c.Stats()
	snap := c.Snapshot()
	result := BenchmarkResult{
		Name:                bench.Name,
		Description:         bench.Description,
		Steps:               stats.Steps,
		InstructionsRetired: stats.Instructions,
		StepsPerInstruction: stats.StepsPerInstruction(),
		Halted:              snap.Halted,
		ResultReg:           bench.ResultReg,
		Result:              snap.Reg(bench.ResultReg),
		Expected:            bench.Expected,
		WallTime:            wallTime,
	}
	result.Passed = result.Result == bench.Expected

	if cache := c.FetchCache(); cache != nil {
		cacheStats := cache.Stats()
		result.CacheFetches = cacheStats.Fetches
		result.CacheHits = cacheStats.Hits
		result.CacheMisses = cacheStats.Misses
		result.CacheHitRatePercent = cacheStats.HitRate() * 100
	}

	return result
}

// PrintResults outputs benchmark results in a human-readable format.
func (h *Harness) PrintResults(results []BenchmarkResult) {
	_, _ = fmt.Fprintln(h.config.Output, "=== RV5Sim Timing Benchmark Results ===")
	_, _ = fmt.Fprintln(h.config.Output, "")

	for _, r := range results {
		_, _ = fmt.Fprintf(h.config.Output, "Benchmark: %s\n", r.Name)
		_, _ = fmt.Fprintf(h.config.Output, "  Description: %s\n", r.Description)
		if r.Passed {
			_, _ = fmt.Fprintf(h.config.Output, "  Result: x%d = 0x%X (pass)\n",
				r.ResultReg, r.Result)
		} else {
			_, _ = fmt.Fprintf(h.config.Output, "  Result: x%d = 0x%X (FAIL: expected 0x%X)\n",
				r.ResultReg, r.Result, r.Expected)
		}
		_, _ = fmt.Fprintln(h.config.Output, "  --- Timing ---")
		_, _ = fmt.Fprintf(h.config.Output, "  Steps:                 %d\n", r.Steps)
		_, _ = fmt.Fprintf(h.config.Output, "  Instructions Retired:  %d\n", r.InstructionsRetired)
		_, _ = fmt.Fprintf(h.config.Output, "  Steps/Instruction:     %.3f\n", r.StepsPerInstruction)
		_, _ = fmt.Fprintf(h.config.Output, "  Halted:                %v\n", r.Halted)

		if r.CacheFetches > 0 {
			_, _ = fmt.Fprintln(h.config.Output, "  --- Fetch Cache ---")
			_, _ = fmt.Fprintf(h.config.Output, "  Fetches:  %d\n", r.CacheFetches)
			_, _ = fmt.Fprintf(h.config.Output, "  Hits:     %d\n", r.CacheHits)
			_, _ = fmt.Fprintf(h.config.Output, "  Misses:   %d\n", r.CacheMisses)
			_, _ = fmt.Fprintf(h.config.Output, "  Hit Rate: %.1f%%\n", r.CacheHitRatePercent)
		}

		_, _ = fmt.Fprintf(h.config.Output, "  Wall Time: %v\n", r.WallTime)
		_, _ = fmt.Fprintln(h.config.Output, "")
	}
}

// PrintCSV outputs benchmark results in CSV format for easy comparison.
func (h *Harness) PrintCSV(results []BenchmarkResult) {
	_, _ = fmt.Fprintln(h.config.Output,
		"name,steps,instructions,steps_per_instruction,halted,result,expected,passed,cache_fetches,cache_hits,cache_misses")

	for _, r := range results {
		_, _ = fmt.Fprintf(h.config.Output, "%s,%d,%d,%.3f,%v,%d,%d,%v,%d,%d,%d\n",
			r.Name,
			r.Steps,
			r.InstructionsRetired,
			r.StepsPerInstruction,
			r.Halted,
			r.Result,
			r.Expected,
			r.Passed,
			r.CacheFetches,
			r.CacheHits,
			r.CacheMisses,
		)
	}
}

// BenchmarkReport is the complete output format for benchmark results.
type BenchmarkReport struct {
	// Metadata about the benchmark run
	Metadata ReportMetadata `json:"metadata"`

	// Results is the list of individual benchmark results
	Results []BenchmarkResult `json:"results"`

	// Summary contains aggregate statistics
	Summary ReportSummary `json:"summary"`
}

// ReportMetadata contains information about the benchmark run.
type ReportMetadata struct {
	// Timestamp when the benchmark was run
	Timestamp string `json:"timestamp"`

	// Version of the simulator
	Version string `json:"version"`

	// Config describes the benchmark configuration
	Config BenchmarkConfig `json:"config"`
}

// BenchmarkConfig describes the harness configuration used.
type BenchmarkConfig struct {
	CacheEnabled bool   `json:"cache_enabled"`
	MaxSteps     uint64 `json:"max_steps"`
	XLEN         int    `json:"xlen"`
}

// ReportSummary contains aggregate statistics across all benchmarks.
type ReportSummary struct {
	// TotalBenchmarks is the number of benchmarks run
	TotalBenchmarks int `json:"total_benchmarks"`

	// Failures is the number of benchmarks whose result check failed
	Failures int `json:"failures"`

	// TotalSteps is the sum of all phase edges driven
	TotalSteps uint64 `json:"total_steps"`

	// TotalInstructions is the sum of all instructions retired
	TotalInstructions uint64 `json:"total_instructions"`

	// AverageStepsPerInstruction is the aggregate phase cost
	AverageStepsPerInstruction float64 `json:"average_steps_per_instruction"`

	// TotalWallTime is the total wall clock time for all benchmarks
	TotalWallTime time.Duration `json:"total_wall_time_ns"`
}

// PrintJSON outputs benchmark results in JSON format for automated comparison.
func (h *Harness) PrintJSON(results []BenchmarkResult) error {
	var totalSteps, totalInstructions uint64
	var totalWallTime time.Duration
	failures := 0
	for _, r := range results {
		totalSteps += r.Steps
		totalInstructions += r.InstructionsRetired
		totalWallTime += r.WallTime
		if !r.Passed {
			failures++
		}
	}

	avgSPI := float64(0)
	if totalInstructions > 0 {
		avgSPI = float64(totalSteps) / float64(totalInstructions)
	}

	report := BenchmarkReport{
		Metadata: ReportMetadata{
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Version:   "0.1.0",
			Config: BenchmarkConfig{
				CacheEnabled: h.config.EnableCache,
				MaxSteps:     h.config.MaxSteps,
				XLEN:         h.config.XLEN,
			},
		},
		Results: results,
		Summary: ReportSummary{
			TotalBenchmarks:            len(results),
			Failures:                   failures,
			TotalSteps:                 totalSteps,
			TotalInstructions:          totalInstructions,
			AverageStepsPerInstruction: avgSPI,
			TotalWallTime:              totalWallTime,
		},
	}

	encoder := json.NewEncoder(h.config.Output)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}

// Instruction encoding helpers for the supported subset

// EncodeADD encodes add rd, rs1, rs2.
func EncodeADD(rd, rs1, rs2 uint8) uint32 {
	var word uint32
	word |= uint32(rs2&0x1F) << 20
	word |= uint32(rs1&0x1F) << 15
	word |= uint32(rd&0x1F) << 7
	word |= insts.OpcodeReg
	return word
}

// EncodeADDI encodes addi rd, rs1, imm. The decoder zero-extends the
// immediate, so only values up to 0xFFF behave like their assembly
// counterparts.
func EncodeADDI(rd, rs1 uint8, imm uint16) uint32 {
	var word uint32
	word |= uint32(imm&0xFFF) << 20
	word |= uint32(rs1&0x1F) << 15
	word |= uint32(rd&0x1F) << 7
	word |= insts.OpcodeImm
	return word
}

// EncodeJAL encodes jal rd, offset with the standard J-format fields. The
// core lands at pc + offset - 4 because fetch has already advanced the PC
// when the jump applies; offset +4 decodes to no jump at all.
func EncodeJAL(rd uint8, offset int32) uint32 {
	imm := uint32(offset) & 0x1FFFFF // 21-bit two's complement

	var word uint32
	word |= ((imm >> 20) & 0x1) << 31  // imm[20]
	word |= ((imm >> 1) & 0x3FF) << 21 // imm[10:1]
	word |= ((imm >> 11) & 0x1) << 20  // imm[11]
	word |= ((imm >> 12) & 0xFF) << 12 // imm[19:12]
	word |= uint32(rd&0x1F) << 7
	word |= insts.OpcodeJal
	return word
}

// EncodeEBREAK returns the EBREAK encoding. EBREAK is outside the decoded
// subset, so fetching it latches the halt flag, which makes it a convenient
// program terminator.
func EncodeEBREAK() uint32 {
	return 0x00100073
}

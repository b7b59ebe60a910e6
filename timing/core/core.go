// Package core provides the multi-cycle CPU core model. One instruction at
// a time is stepped through five strict phases; adjacent instructions never
// overlap.
package core

import (
	"github.com/sarchlab/rv5sim/emu"
	"github.com/sarchlab/rv5sim/insts"
	"github.com/sarchlab/rv5sim/timing/fetchcache"
)

// Stats holds performance counters for the core.
type Stats struct {
	// Steps is the number of effective phase edges driven so far. Steps
	// taken after the core halts are not counted.
	Steps uint64
	// Instructions is the number of instructions retired.
	Instructions uint64
}

// StepsPerInstruction returns the average phase edges per retired
// instruction. A healthy run settles at exactly five.
func (s Stats) StepsPerInstruction() float64 {
	if s.Instructions == 0 {
		return 0
	}
	return float64(s.Steps) / float64(s.Instructions)
}

// Snapshot is a read-only copy of the architectural state, safe to inspect
// between steps.
type Snapshot struct {
	// PC is the program counter.
	PC uint64
	// Registers holds the stored registers; index i is x(i+1).
	Registers [30]uint64
	// Stage is the phase the sequencer will drive on the next step.
	Stage Stage
	// Halted reports the permanent illegal-instruction latch.
	Halted bool
	// Cycles counts retired instructions: it increments once per
	// completed five-phase pass, not once per step.
	Cycles uint64
}

// Reg reads a register from the snapshot with read-port semantics:
// selector 0 and selectors above 30 return 0.
func (s Snapshot) Reg(sel uint8) uint64 {
	if sel == 0 || sel > 30 {
		return 0
	}
	return s.Registers[sel-1]
}

// CoreOption configures a Core during construction.
type CoreOption func(*Core)

// WithXLEN sets the machine word width in bits. The default is
// emu.DefaultXLEN.
func WithXLEN(xlen int) CoreOption {
	return func(c *Core) {
		c.xlen = xlen
	}
}

// WithBootRom replaces the resident boot program with the given ROM. The
// PC starts at the ROM base.
func WithBootRom(rom *emu.BootRom) CoreOption {
	return func(c *Core) {
		c.rom = rom
	}
}

// WithFetchCache attaches an instruction cache model with the given
// configuration. Fetches then go through the cache, which records hit and
// miss statistics; architectural results and phase timing are unchanged.
func WithFetchCache(config fetchcache.Config) CoreOption {
	return func(c *Core) {
		cfg := config
		c.cacheConfig = &cfg
	}
}

// Core is the five-phase control sequencer. It owns every piece of mutable
// state in the model: the register file, the PC, the latched instruction,
// the halt latch, and the counters. Nothing else writes them.
type Core struct {
	regFile *emu.RegFile
	alu     *emu.ALU
	rom     *emu.BootRom
	decoder *insts.Decoder
	icache  *fetchcache.Cache

	// inst is the decoded control bundle for the in-flight instruction,
	// overwritten in place whenever a new word is latched at fetch.
	inst     insts.Instruction
	instWord uint32

	// aluEn is the ALU enable latch: set at execute, cleared at
	// writeback.
	aluEn bool

	stage   Stage
	halted  bool
	retired uint64
	steps   uint64

	xlen        int
	cacheConfig *fetchcache.Config
}

// NewCore creates a core holding the resident boot program, then applies
// the given options.
func NewCore(opts ...CoreOption) *Core {
	c := &Core{
		decoder: insts.NewDecoder(),
		xlen:    emu.DefaultXLEN,
	}

	for _, opt := range opts {
		opt(c)
	}

	c.regFile = emu.NewRegFile(c.xlen)
	c.alu = emu.NewALU(c.xlen)
	if c.rom == nil {
		c.rom = emu.NewBootRom(emu.BootProgram())
	}
	if c.cacheConfig != nil {
		c.icache = fetchcache.New(*c.cacheConfig, c.rom)
	}
	c.regFile.SetPC(c.rom.Base())

	return c
}

// SetPC points the core at the given address, typically a loaded program's
// entry point. Call before stepping.
func (c *Core) SetPC(pc uint64) {
	c.regFile.SetPC(pc)
}

// RegFile returns the architectural register file.
func (c *Core) RegFile() *emu.RegFile {
	return c.regFile
}

// FetchCache returns the attached instruction cache model, or nil when the
// core fetches straight from the ROM.
func (c *Core) FetchCache() *fetchcache.Cache {
	return c.icache
}

// Stage returns the phase the sequencer will drive on the next step.
func (c *Core) Stage() Stage {
	return c.stage
}

// Halted reports whether the core has hit the permanent halt latch.
func (c *Core) Halted() bool {
	return c.halted
}

// InstructionWord returns the currently latched instruction word.
func (c *Core) InstructionWord() uint32 {
	return c.instWord
}

// Step advances the machine by one phase edge. Once the core is halted,
// Step is a complete no-op and stays safe to call indefinitely.
func (c *Core) Step() {
	if c.halted {
		return
	}
	c.steps++

	switch c.stage {
	case StageFetch:
		c.fetch()
	case StageDecode:
		c.decode()
	case StageMemAccess:
		// Reserved for load/store traffic; nothing to do.
	case StageExecute:
		c.execute()
	case StageWriteback:
		c.writeback()
	}

	if c.stage == StageWriteback {
		c.stage = StageFetch
		c.retired++
	} else {
		c.stage++
	}
}

// fetch reads the word at the current PC, latches it together with its
// decoded control bundle, and advances the PC by 4.
func (c *Core) fetch() {
	pc := c.regFile.PC()

	var word uint32
	if c.icache != nil {
		word = c.icache.Fetch(pc).Word
	} else {
		word = c.rom.Fetch(pc)
	}

	c.instWord = word
	c.decoder.DecodeInto(word, &c.inst)
	c.regFile.SetPC(pc + 4)
}

// decode latches the halt flag when the in-flight instruction is illegal.
// The stage still advances on this edge, so a halted core freezes with
// MEMACCESS pending.
func (c *Core) decode() {
	if c.inst.Illegal {
		c.halted = true
	}
}

// execute latches the ALU enable and applies the jump displacement. The
// decoder pre-biases the displacement; together with the -4 here it
// compensates the PC increment already performed at fetch.
func (c *Core) execute() {
	c.aluEn = c.inst.ALUEnable

	if off := c.inst.PCOffset; off != 0 {
		c.regFile.SetPC(c.regFile.PC() + uint64(off) - 4)
	}
}

// writeback drives the guarded register write port from the ALU result,
// then clears the ALU enable latch for the next instruction.
func (c *Core) writeback() {
	if c.inst.RegWrite {
		c.regFile.WriteReg(c.inst.Rd, c.aluResult())
	}
	c.aluEn = false
}

// aluResult routes the decoded operand sources into the ALU. Op1PC reads
// the live PC, which at writeback already includes any jump applied at
// execute.
func (c *Core) aluResult() uint64 {
	var in1, in2 uint64

	switch c.inst.Op1 {
	case insts.Op1PC:
		in1 = c.regFile.PC()
	default:
		in1 = c.regFile.ReadReg(c.inst.Rs1)
	}

	switch c.inst.Op2 {
	case insts.Op2Imm:
		in2 = c.inst.Imm
	case insts.Op2Zero:
		in2 = 0
	default:
		in2 = c.regFile.ReadReg(c.inst.Rs2)
	}

	return c.alu.Execute(c.aluEn, c.inst.ALUOp, in1, in2)
}

// RunSteps drives up to n phase edges. It returns true if the core can
// still make progress, false once halted.
func (c *Core) RunSteps(n uint64) bool {
	for i := uint64(0); i < n; i++ {
		if c.halted {
			return false
		}
		c.Step()
	}
	return !c.halted
}

// RunInstructions steps until n more instructions retire or the core
// halts. It returns true if all n retired.
func (c *Core) RunInstructions(n uint64) bool {
	target := c.retired + n
	for c.retired < target {
		if c.halted {
			return false
		}
		c.Step()
	}
	return true
}

// Snapshot returns a copy of the architectural state.
func (c *Core) Snapshot() Snapshot {
	return Snapshot{
		PC:        c.regFile.PC(),
		Registers: c.regFile.Regs(),
		Stage:     c.stage,
		Halted:    c.halted,
		Cycles:    c.retired,
	}
}

// Stats returns the performance counters.
func (c *Core) Stats() Stats {
	return Stats{
		Steps:        c.steps,
		Instructions: c.retired,
	}
}

// Reset returns the core to its power-on state: registers and PC cleared,
// FETCH pending, halt latch released, counters zeroed. The ROM contents
// are untouched.
func (c *Core) Reset() {
	c.regFile.Reset()
	c.regFile.SetPC(c.rom.Base())
	c.inst = insts.Instruction{}
	c.instWord = 0
	c.aluEn = false
	c.stage = StageFetch
	c.halted = false
	c.retired = 0
	c.steps = 0

	if c.icache != nil {
		c.icache.Reset()
	}
}

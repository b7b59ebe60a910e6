// Package emu provides the core's architectural state and combinational
// datapath: the register file, the ALU, and the boot ROM. Nothing here
// sequences itself; the sequencer in timing/core drives these pieces one
// phase at a time and is the only writer of their state.
package emu

// DefaultXLEN is the default machine word width in bits.
const DefaultXLEN = 64

// wordMask returns the value mask for an xlen-bit machine word.
func wordMask(xlen int) uint64 {
	if xlen <= 0 || xlen >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << xlen) - 1
}

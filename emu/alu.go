// Package emu provides the core's architectural state and datapath.
package emu

import "github.com/sarchlab/rv5sim/insts"

// ALU implements the core's combinational integer unit. It is stateless:
// the result is recomputed from the inputs on every call.
type ALU struct {
	mask uint64
}

// NewALU creates an ALU for the given word width.
func NewALU(xlen int) *ALU {
	return &ALU{mask: wordMask(xlen)}
}

// Execute computes the result of one operation, truncated to the word
// width. When enable is false the output carries no meaning; this
// implementation returns 0, and unrecognized operations also produce 0
// rather than fault.
func (a *ALU) Execute(enable bool, op insts.AluOp, in1, in2 uint64) uint64 {
	if !enable {
		return 0
	}

	switch op {
	case insts.AluAdd:
		return (in1 + in2) & a.mask
	default:
		return 0
	}
}

// Package emu provides the core's architectural state and datapath.
package emu

// RegFile represents the core's register file: thirty stored
// general-purpose registers x1-x30 plus the program counter. x0 is the
// architectural zero register and is not backed by storage, so exactly
// thirty cells exist.
type RegFile struct {
	// regs holds x1-x30; regs[i] backs register i+1.
	regs [30]uint64

	// pc is the program counter.
	pc uint64

	mask uint64
}

// NewRegFile creates a register file for the given word width.
func NewRegFile(xlen int) *RegFile {
	return &RegFile{mask: wordMask(xlen)}
}

// ReadReg reads one register port. Selector 0 is the zero register and
// selectors >= 31 address cells that do not exist; both read as 0, so the
// read side is total over the 5-bit selector domain.
func (r *RegFile) ReadReg(sel uint8) uint64 {
	if sel == 0 || sel > 30 {
		return 0
	}
	return r.regs[sel-1]
}

// WriteReg drives the guarded write port. Only selectors 1-30 store a
// value; writes to 0 and to selectors >= 31 are silently discarded.
func (r *RegFile) WriteReg(sel uint8, value uint64) {
	if sel == 0 || sel > 30 {
		return
	}
	r.regs[sel-1] = value & r.mask
}

// PC returns the program counter.
func (r *RegFile) PC() uint64 {
	return r.pc
}

// SetPC sets the program counter, truncated to the word width.
func (r *RegFile) SetPC(pc uint64) {
	r.pc = pc & r.mask
}

// Regs returns a copy of the stored registers; index i holds x(i+1).
func (r *RegFile) Regs() [30]uint64 {
	return r.regs
}

// Reset clears every stored register and the program counter.
func (r *RegFile) Reset() {
	r.regs = [30]uint64{}
	r.pc = 0
}

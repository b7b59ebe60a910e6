// Package emu provides the core's architectural state and datapath.
package emu

// BootRom is the core's fixed, read-only instruction memory: an array of
// 32-bit words addressed by byte address. Address bits [1:0] are ignored,
// so misaligned fetches fold onto the containing word.
type BootRom struct {
	base  uint64
	words []uint32
}

// NewBootRom creates a ROM holding a copy of the given words, mapped at
// address 0.
func NewBootRom(words []uint32) *BootRom {
	return NewBootRomAt(0, words)
}

// NewBootRomAt creates a ROM mapped at the given base address.
func NewBootRomAt(base uint64, words []uint32) *BootRom {
	w := make([]uint32, len(words))
	copy(w, words)
	return &BootRom{base: base, words: w}
}

// Fetch returns the word at the given byte address. Addresses outside the
// resident image read as 0, which decodes as an illegal instruction.
func (b *BootRom) Fetch(addr uint64) uint32 {
	if addr < b.base {
		return 0
	}

	idx := (addr - b.base) >> 2
	if idx >= uint64(len(b.words)) {
		return 0
	}
	return b.words[idx]
}

// Len returns the number of resident words.
func (b *BootRom) Len() int {
	return len(b.words)
}

// Base returns the byte address of the first resident word.
func (b *BootRom) Base() uint64 {
	return b.base
}

// BootProgram returns the resident boot image: load 0x42 into a1, then
// fold it into a0 once per loop iteration, forever.
func BootProgram() []uint32 {
	return []uint32{
		0x00000533, // 0x0: add  a0, x0, x0
		0x04200593, // 0x4: addi a1, x0, 0x42
		0x00B50533, // 0x8: add  a0, a0, a1
		0xFFDFF06F, // 0xc: jal  x0, -4
	}
}

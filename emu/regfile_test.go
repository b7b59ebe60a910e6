package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/rv5sim/emu"
)

var _ = Describe("RegFile", func() {
	var regFile *emu.RegFile

	BeforeEach(func() {
		regFile = emu.NewRegFile(emu.DefaultXLEN)
	})

	It("should read 0 from the zero register", func() {
		Expect(regFile.ReadReg(0)).To(Equal(uint64(0)))
	})

	It("should discard writes to the zero register", func() {
		regFile.WriteReg(0, 0x42)

		Expect(regFile.ReadReg(0)).To(Equal(uint64(0)))
	})

	It("should round-trip every stored register", func() {
		for sel := uint8(1); sel <= 30; sel++ {
			regFile.WriteReg(sel, uint64(sel)*0x1111)
		}

		for sel := uint8(1); sel <= 30; sel++ {
			Expect(regFile.ReadReg(sel)).To(Equal(uint64(sel) * 0x1111))
		}
	})

	It("should discard writes to selectors above 30", func() {
		regFile.WriteReg(31, 0xDEAD)
		regFile.WriteReg(255, 0xDEAD)

		for sel := uint8(0); sel <= 30; sel++ {
			Expect(regFile.ReadReg(sel)).To(Equal(uint64(0)))
		}
	})

	It("should read 0 from selectors above 30", func() {
		Expect(regFile.ReadReg(31)).To(Equal(uint64(0)))
		Expect(regFile.ReadReg(200)).To(Equal(uint64(0)))
	})

	It("should hold the program counter", func() {
		Expect(regFile.PC()).To(Equal(uint64(0)))

		regFile.SetPC(0x42)

		Expect(regFile.PC()).To(Equal(uint64(0x42)))
	})

	It("should truncate values to a 32-bit word width", func() {
		rf := emu.NewRegFile(32)
		rf.WriteReg(1, 0x123456789)
		rf.SetPC(0xFFFFFFFF00000010)

		Expect(rf.ReadReg(1)).To(Equal(uint64(0x23456789)))
		Expect(rf.PC()).To(Equal(uint64(0x10)))
	})

	It("should expose a copy of the stored registers", func() {
		regFile.WriteReg(10, 0x42)

		regs := regFile.Regs()
		Expect(regs[9]).To(Equal(uint64(0x42)))

		regs[9] = 0
		Expect(regFile.ReadReg(10)).To(Equal(uint64(0x42)))
	})

	It("should clear everything on reset", func() {
		regFile.WriteReg(5, 99)
		regFile.SetPC(0x100)

		regFile.Reset()

		Expect(regFile.ReadReg(5)).To(Equal(uint64(0)))
		Expect(regFile.PC()).To(Equal(uint64(0)))
	})
})

package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/rv5sim/emu"
)

var _ = Describe("BootRom", func() {
	It("should fetch words by byte address", func() {
		rom := emu.NewBootRom([]uint32{0x11, 0x22, 0x33})

		Expect(rom.Len()).To(Equal(3))
		Expect(rom.Fetch(0)).To(Equal(uint32(0x11)))
		Expect(rom.Fetch(4)).To(Equal(uint32(0x22)))
		Expect(rom.Fetch(8)).To(Equal(uint32(0x33)))
	})

	It("should ignore address bits [1:0]", func() {
		rom := emu.NewBootRom([]uint32{0x11, 0x22})

		Expect(rom.Fetch(1)).To(Equal(uint32(0x11)))
		Expect(rom.Fetch(2)).To(Equal(uint32(0x11)))
		Expect(rom.Fetch(7)).To(Equal(uint32(0x22)))
	})

	It("should read 0 outside the resident image", func() {
		rom := emu.NewBootRom([]uint32{0x11})

		Expect(rom.Fetch(4)).To(Equal(uint32(0)))
		Expect(rom.Fetch(0xFFFFFFFFFFFFFFFF)).To(Equal(uint32(0)))
	})

	It("should honor a non-zero base address", func() {
		rom := emu.NewBootRomAt(0x1000, []uint32{0x11, 0x22})

		Expect(rom.Base()).To(Equal(uint64(0x1000)))
		Expect(rom.Fetch(0x1000)).To(Equal(uint32(0x11)))
		Expect(rom.Fetch(0x1004)).To(Equal(uint32(0x22)))
		Expect(rom.Fetch(0)).To(Equal(uint32(0)))
		Expect(rom.Fetch(0xFFC)).To(Equal(uint32(0)))
	})

	It("should copy the image at construction", func() {
		words := []uint32{0x11}
		rom := emu.NewBootRom(words)

		words[0] = 0x99

		Expect(rom.Fetch(0)).To(Equal(uint32(0x11)))
	})

	It("should carry the resident boot program", func() {
		words := emu.BootProgram()

		Expect(words).To(HaveLen(4))
		Expect(words[0]).To(Equal(uint32(0x00000533)))
		Expect(words[1]).To(Equal(uint32(0x04200593)))
		Expect(words[2]).To(Equal(uint32(0x00B50533)))
		Expect(words[3]).To(Equal(uint32(0xFFDFF06F)))
	})
})

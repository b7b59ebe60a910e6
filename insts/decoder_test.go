package insts_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/rv5sim/insts"
)

var _ = Describe("Decoder", func() {
	var decoder *insts.Decoder

	BeforeEach(func() {
		decoder = insts.NewDecoder()
	})

	Describe("Register-Register (REG)", func() {
		// ADD a0, a0, a1 -> 0x00B50533
		// Encoding: funct7=0000000, rs2=11, rs1=10, funct3=000, rd=10, opcode=0110011
		It("should decode ADD a0, a0, a1", func() {
			inst := decoder.Decode(0x00B50533)

			Expect(inst.Illegal).To(BeFalse())
			Expect(inst.Format).To(Equal(insts.FormatR))
			Expect(inst.Rd).To(Equal(uint8(10)))
			Expect(inst.Rs1).To(Equal(uint8(10)))
			Expect(inst.Rs2).To(Equal(uint8(11)))
			Expect(inst.ALUOp).To(Equal(insts.AluAdd))
			Expect(inst.ALUEnable).To(BeTrue())
			Expect(inst.RegWrite).To(BeTrue())
			Expect(inst.Op1).To(Equal(insts.Op1RS1))
			Expect(inst.Op2).To(Equal(insts.Op2RS2))
			Expect(inst.PCOffset).To(BeZero())
		})

		// ADD a0, x0, x0 -> 0x00000533
		// Encoding: funct7=0000000, rs2=0, rs1=0, funct3=000, rd=10, opcode=0110011
		It("should decode ADD a0, x0, x0", func() {
			inst := decoder.Decode(0x00000533)

			Expect(inst.Illegal).To(BeFalse())
			Expect(inst.Rd).To(Equal(uint8(10)))
			Expect(inst.Rs1).To(Equal(uint8(0)))
			Expect(inst.Rs2).To(Equal(uint8(0)))
			Expect(inst.ALUEnable).To(BeTrue())
		})

		// SUB a0, a0, a1 -> 0x40B50533 (funct7=0100000 has no decode rule)
		It("should mark non-zero funct7 values illegal", func() {
			inst := decoder.Decode(0x40B50533)

			Expect(inst.Illegal).To(BeTrue())
			Expect(inst.Funct7).To(Equal(uint8(0x20)))
			Expect(inst.ALUEnable).To(BeFalse())
		})

		It("should extract selectors for every register pair", func() {
			for rd := uint8(0); rd < 32; rd++ {
				word := encodeRType(0, rd, 31-rd, 0, rd)
				inst := decoder.Decode(word)

				Expect(inst.Rd).To(Equal(rd))
				Expect(inst.Rs1).To(Equal(31 - rd))
				Expect(inst.Rs2).To(Equal(rd))
			}
		})
	})

	Describe("Register-Immediate (IMM)", func() {
		// ADDI a1, x0, 0x42 -> 0x04200593
		// Encoding: imm=0x042, rs1=0, funct3=000, rd=11, opcode=0010011
		It("should decode ADDI a1, x0, 0x42", func() {
			inst := decoder.Decode(0x04200593)

			Expect(inst.Illegal).To(BeFalse())
			Expect(inst.Format).To(Equal(insts.FormatI))
			Expect(inst.Rd).To(Equal(uint8(11)))
			Expect(inst.Rs1).To(Equal(uint8(0)))
			Expect(inst.Imm).To(Equal(uint64(0x42)))
			Expect(inst.ALUOp).To(Equal(insts.AluAdd))
			Expect(inst.ALUEnable).To(BeTrue())
			Expect(inst.RegWrite).To(BeTrue())
			Expect(inst.Op2).To(Equal(insts.Op2Imm))
		})

		// ADDI a0, a0, -1 -> 0xFFF50513
		// The immediate field is zero-extended, not sign-extended, so the
		// all-ones pattern reads back as 0xFFF.
		It("should zero-extend the immediate", func() {
			inst := decoder.Decode(0xFFF50513)

			Expect(inst.Illegal).To(BeFalse())
			Expect(inst.Imm).To(Equal(uint64(0xFFF)))
		})

		// XORI a1, x0, 0x42 -> 0x04204593 (funct3=100 has no decode rule)
		It("should mark non-ADDI funct3 values illegal", func() {
			inst := decoder.Decode(0x04204593)

			Expect(inst.Illegal).To(BeTrue())
			Expect(inst.Funct3).To(Equal(uint8(0b100)))
			Expect(inst.ALUEnable).To(BeFalse())
		})
	})

	Describe("Jump-and-Link (JAL)", func() {
		// JAL x0, -4 -> 0xFFDFF06F
		// The imm[10:1] field is pre-biased by -2 at decode, so the
		// published displacement is the architectural offset minus 4.
		It("should decode JAL x0, -4", func() {
			inst := decoder.Decode(0xFFDFF06F)

			Expect(inst.Illegal).To(BeFalse())
			Expect(inst.Format).To(Equal(insts.FormatJ))
			Expect(inst.Rd).To(Equal(uint8(0)))
			Expect(inst.PCOffset).To(Equal(int64(-8)))
			Expect(inst.RegWrite).To(BeFalse())
			Expect(inst.ALUEnable).To(BeFalse())
		})

		// JAL ra, -4 -> 0xFFDFF0EF
		It("should route the PC to the ALU when rd is nonzero", func() {
			inst := decoder.Decode(0xFFDFF0EF)

			Expect(inst.Illegal).To(BeFalse())
			Expect(inst.Rd).To(Equal(uint8(1)))
			Expect(inst.RegWrite).To(BeTrue())
			Expect(inst.ALUEnable).To(BeTrue())
			Expect(inst.Op1).To(Equal(insts.Op1PC))
			Expect(inst.Op2).To(Equal(insts.Op2Zero))
			Expect(inst.PCOffset).To(Equal(int64(-8)))
		})

		It("should publish a zero displacement for offset +4", func() {
			inst := decoder.Decode(encodeJType(0, 4))

			Expect(inst.Illegal).To(BeFalse())
			Expect(inst.PCOffset).To(BeZero())
		})

		It("should bias the displacement by -4 within imm[10:1]", func() {
			for _, offset := range []int32{8, 12, 0x100, 0x7FC, -8, -0x100} {
				inst := decoder.Decode(encodeJType(0, offset))

				Expect(inst.PCOffset).To(Equal(int64(offset) - 4))
			}
		})

		// encodeJType(0, 2048) has imm[10:1]=0, so the -2 bias wraps to
		// 0x3FE inside the field without borrowing from imm[11].
		It("should wrap the bias inside imm[10:1]", func() {
			inst := decoder.Decode(encodeJType(0, 2048))

			Expect(inst.PCOffset).To(Equal(int64(2048 + 1022*2)))
		})
	})

	Describe("Unrecognized encodings", func() {
		// JALR x0, 0(ra) -> 0x00008067 (opcode known but not implemented)
		It("should mark JALR illegal", func() {
			inst := decoder.Decode(0x00008067)

			Expect(inst.Opcode).To(Equal(uint8(insts.OpcodeJalr)))
			Expect(inst.Illegal).To(BeTrue())
		})

		It("should mark every unknown opcode illegal", func() {
			for opcode := uint32(0); opcode < 128; opcode++ {
				if opcode == insts.OpcodeReg ||
					opcode == insts.OpcodeImm ||
					opcode == insts.OpcodeJal {
					continue
				}

				inst := decoder.Decode(opcode)

				Expect(inst.Illegal).To(BeTrue())
				Expect(inst.Format).To(Equal(insts.FormatUnknown))
				Expect(inst.RegWrite).To(BeFalse())
				Expect(inst.ALUEnable).To(BeFalse())
			}
		})

		It("should mark the zero word illegal", func() {
			Expect(decoder.Decode(0).Illegal).To(BeTrue())
		})

		It("should mark the all-ones word illegal", func() {
			Expect(decoder.Decode(0xFFFFFFFF).Illegal).To(BeTrue())
		})
	})

	Describe("DecodeInto", func() {
		It("should agree with Decode", func() {
			words := []uint32{
				0x00B50533, // add a0, a0, a1
				0x04200593, // addi a1, x0, 0x42
				0xFFDFF0EF, // jal ra, -4
				0x00008067, // jalr, illegal
				0x00000000,
			}

			for _, word := range words {
				var inst insts.Instruction
				decoder.DecodeInto(word, &inst)

				Expect(inst).To(Equal(*decoder.Decode(word)))
			}
		})

		It("should overwrite every field on reuse", func() {
			var inst insts.Instruction

			decoder.DecodeInto(0xFFDFF0EF, &inst) // jal ra, -4
			Expect(inst.PCOffset).To(Equal(int64(-8)))
			Expect(inst.Op1).To(Equal(insts.Op1PC))

			decoder.DecodeInto(0x00B50533, &inst) // add a0, a0, a1
			Expect(inst.PCOffset).To(BeZero())
			Expect(inst.Op1).To(Equal(insts.Op1RS1))
			Expect(inst.Op2).To(Equal(insts.Op2RS2))
			Expect(inst.Format).To(Equal(insts.FormatR))
		})
	})
})

// encodeRType builds a register-register instruction word.
func encodeRType(funct7, rs2, rs1, funct3, rd uint8) uint32 {
	var word uint32
	word |= uint32(funct7&0x7F) << 25
	word |= uint32(rs2&0x1F) << 20
	word |= uint32(rs1&0x1F) << 15
	word |= uint32(funct3&0x7) << 12
	word |= uint32(rd&0x1F) << 7
	word |= 0b0110011
	return word
}

// encodeJType builds a jump-and-link word from the architectural byte
// offset.
func encodeJType(rd uint8, offset int32) uint32 {
	imm := uint32(offset) & 0x1FFFFF // 21-bit two's complement

	var word uint32
	word |= ((imm >> 20) & 0x1) << 31  // imm[20]
	word |= ((imm >> 1) & 0x3FF) << 21 // imm[10:1]
	word |= ((imm >> 11) & 0x1) << 20  // imm[11]
	word |= ((imm >> 12) & 0xFF) << 12 // imm[19:12]
	word |= uint32(rd&0x1F) << 7
	word |= 0b1101111
	return word
}

// Package insts provides RISC-V instruction definitions and decoding.
package insts

// AluOp selects the operation the ALU performs.
type AluOp uint8

// ALU operations.
const (
	AluAdd AluOp = iota
)

// Major opcodes (instruction bits [6:0]).
const (
	OpcodeReg  = 0b0110011 // register-register
	OpcodeImm  = 0b0010011 // register-immediate
	OpcodeJal  = 0b1101111 // jump-and-link
	OpcodeJalr = 0b1100111 // jump-and-link register, no decode rule yet
)

// Sub-select fields for the recognized instructions.
const (
	Funct3Addi = 0b000
	Funct7Add  = 0b0000000
)

// Format represents an instruction encoding format.
type Format uint8

// Instruction formats.
const (
	FormatUnknown Format = iota
	FormatR              // register-register
	FormatI              // register-immediate
	FormatJ              // jump-and-link
)

// Op1Source selects the ALU's first operand.
type Op1Source uint8

// First-operand sources.
const (
	Op1RS1 Op1Source = iota // first register read port
	Op1PC                   // program counter, used for the JAL link value
)

// Op2Source selects the ALU's second operand.
type Op2Source uint8

// Second-operand sources.
const (
	Op2RS2 Op2Source = iota // second register read port
	Op2Imm                  // zero-extended immediate
	Op2Zero                 // constant zero
)

// Instruction is the decoded control bundle for one instruction word. It is
// a pure function of the word and holds no machine state.
type Instruction struct {
	Opcode uint8  // bits [6:0]
	Format Format // encoding format

	// Register selectors
	Rd  uint8 // destination register, bits [11:7]
	Rs1 uint8 // first source register, bits [19:15]
	Rs2 uint8 // second source register, bits [24:20] (R format)

	// Sub-select fields
	Funct3 uint8 // bits [14:12] (I format)
	Funct7 uint8 // bits [31:25] (R format)

	// Control outputs
	Illegal   bool  // no decode rule matched; latches the halt flag
	RegWrite  bool  // drive the register write port at writeback
	ALUEnable bool  // enable the ALU at execute
	ALUOp     AluOp // ALU operation

	// Operand routing
	Op1 Op1Source
	Op2 Op2Source

	// Imm is the 12-bit I-format immediate, zero-extended.
	Imm uint64

	// PCOffset is the biased jump displacement the execute phase applies
	// to the PC. Zero when the instruction does not jump.
	PCOffset int64
}

// Decoder decodes the core's machine code into control bundles.
type Decoder struct{}

// NewDecoder creates a new instruction decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode decodes a 32-bit instruction word into a fresh Instruction.
func (d *Decoder) Decode(word uint32) *Instruction {
	inst := &Instruction{}
	d.DecodeInto(word, inst)
	return inst
}

// DecodeInto decodes a 32-bit instruction word into inst, overwriting every
// field. It allocates nothing, so the fetch path can reuse one Instruction
// for the whole run.
func (d *Decoder) DecodeInto(word uint32, inst *Instruction) {
	*inst = Instruction{
		Opcode: uint8(word & 0x7F),         // bits [6:0]
		Rd:     uint8((word >> 7) & 0x1F),  // bits [11:7]
		Rs1:    uint8((word >> 15) & 0x1F), // bits [19:15]
	}

	switch inst.Opcode {
	case OpcodeReg:
		d.decodeReg(word, inst)
	case OpcodeImm:
		d.decodeImm(word, inst)
	case OpcodeJal:
		d.decodeJal(word, inst)
	default:
		inst.Illegal = true
	}
}

// decodeReg decodes register-register instructions.
// Format: funct7 | rs2 | rs1 | funct3 | rd | 0110011
func (d *Decoder) decodeReg(word uint32, inst *Instruction) {
	inst.Format = FormatR
	inst.Funct7 = uint8((word >> 25) & 0x7F) // bits [31:25]
	inst.Rs2 = uint8((word >> 20) & 0x1F)    // bits [24:20]
	inst.RegWrite = true

	switch inst.Funct7 {
	case Funct7Add: // add rd, rs1, rs2
		inst.ALUOp = AluAdd
		inst.ALUEnable = true
		inst.Op1 = Op1RS1
		inst.Op2 = Op2RS2
	default:
		inst.Illegal = true
	}
}

// decodeImm decodes register-immediate instructions.
// Format: imm[11:0] | rs1 | funct3 | rd | 0010011
func (d *Decoder) decodeImm(word uint32, inst *Instruction) {
	inst.Format = FormatI
	inst.Funct3 = uint8((word >> 12) & 0x7) // bits [14:12]
	inst.RegWrite = true

	switch inst.Funct3 {
	case Funct3Addi: // addi rd, rs1, imm
		inst.Imm = uint64((word >> 20) & 0xFFF) // bits [31:20], zero-extended
		inst.ALUOp = AluAdd
		inst.ALUEnable = true
		inst.Op1 = Op1RS1
		inst.Op2 = Op2Imm
	default:
		inst.Illegal = true
	}
}

// decodeJal decodes jump-and-link instructions.
// Format: imm[20|10:1|11|19:12] | rd | 1101111
func (d *Decoder) decodeJal(word uint32, inst *Instruction) {
	inst.Format = FormatJ

	if inst.Rd != 0 {
		// Route the PC through the ALU as a plain add so the writeback
		// phase can take the link value off the normal result path.
		inst.RegWrite = true
		inst.ALUOp = AluAdd
		inst.ALUEnable = true
		inst.Op1 = Op1PC
		inst.Op2 = Op2Zero
	}

	inst.PCOffset = jalOffset(word)
}

// jalOffset assembles the signed 21-bit J-format displacement. Bit 0 is
// always zero. The imm[10:1] field is decremented by 2 before placement,
// wrapping within the field, to counter the PC increment the fetch phase
// has already applied; the execute phase subtracts a further 4 at use.
func jalOffset(word uint32) int64 {
	imm101 := ((word >> 21) & 0x3FF) - 2 // bits [30:21], pre-biased
	imm101 &= 0x3FF

	offset := (word >> 31) << 20          // bit 31 -> imm[20]
	offset |= ((word >> 12) & 0xFF) << 12 // bits [19:12] -> imm[19:12]
	offset |= ((word >> 20) & 0x1) << 11  // bit 20 -> imm[11]
	offset |= imm101 << 1                 // bits [30:21] -> imm[10:1]

	// Sign-extend from bit 20.
	if offset&(1<<20) != 0 {
		return int64(offset) - (1 << 21)
	}
	return int64(offset)
}

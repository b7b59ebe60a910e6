// Package insts provides RISC-V instruction definitions and decoding.
//
// This package implements decoding of the core's RISC-V-derived machine
// code into structured control bundles. It supports:
//   - ADD (register-register: opcode REG, funct7 0000000)
//   - ADDI (register-immediate: opcode IMM, funct3 000)
//   - JAL (jump-and-link: opcode JAL)
//
// Every other encoding decodes as illegal, which permanently halts the
// core.
//
// Usage:
//
//	decoder := insts.NewDecoder()
//	inst := decoder.Decode(0x00b50533) // ADD a0, a0, a1
//	fmt.Printf("Rd: %d, Rs1: %d, Rs2: %d\n", inst.Rd, inst.Rs1, inst.Rs2)
package insts

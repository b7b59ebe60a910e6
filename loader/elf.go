// Package loader provides program image loading for the boot ROM. Images
// are either flat little-endian word dumps or linked RISC-V ELF
// executables; both reduce to the word array that seeds the ROM.
package loader

import (
	"bytes"
	"debug/elf"
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// elfMagic is the 4-byte ELF identification prefix.
var elfMagic = []byte{0x7F, 'E', 'L', 'F'}

// Program represents a loaded instruction image ready for the ROM.
type Program struct {
	// Entry is the virtual address where execution should begin.
	Entry uint64
	// Base is the virtual address of the first word.
	Base uint64
	// Words contains the instruction words in address order.
	Words []uint32
}

// Load reads a program image, dispatching on the ELF magic: ELF
// executables go through LoadELF, anything else is treated as a flat word
// dump.
func Load(path string) (*Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open program image: %w", err)
	}

	header := make([]byte, 4)
	n, err := f.Read(header)
	_ = f.Close()
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read program image: %w", err)
	}

	if n == 4 && bytes.Equal(header, elfMagic) {
		return LoadELF(path)
	}
	return LoadFlat(path)
}

// LoadFlat reads a flat image of little-endian 32-bit words, loaded at
// address 0.
func LoadFlat(path string) (*Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read program image: %w", err)
	}
	if len(data) == 0 || len(data)%4 != 0 {
		return nil, fmt.Errorf("flat image size %d is not a positive multiple of 4", len(data))
	}

	words := make([]uint32, len(data)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(data[i*4:])
	}

	return &Program{Words: words}, nil
}

// LoadELF parses a linked RISC-V ELF executable and extracts its
// executable segment as the ROM image.
func LoadELF(path string) (*Program, error) {
	f, err := elf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ELF file: %w", err)
	}
	defer func() { _ = f.Close() }()

	// Validate machine type (must be RISC-V)
	if f.Machine != elf.EM_RISCV {
		return nil, fmt.Errorf("not a RISC-V ELF file (machine type: %v)", f.Machine)
	}

	// Validate byte order (instruction words are little-endian)
	if f.Data != elf.ELFDATA2LSB {
		return nil, fmt.Errorf("not a little-endian ELF file")
	}

	// Extract the first executable PT_LOAD segment
	for _, phdr := range f.Progs {
		if phdr.Type != elf.PT_LOAD || phdr.Flags&elf.PF_X == 0 {
			continue
		}

		data := make([]byte, phdr.Filesz)
		if phdr.Filesz > 0 {
			n, err := phdr.ReadAt(data, 0)
			if err != nil && err != io.EOF {
				return nil, fmt.Errorf("failed to read segment at 0x%x: %w", phdr.Vaddr, err)
			}
			if uint64(n) != phdr.Filesz {
				return nil, fmt.Errorf("short read for segment at 0x%x: got %d bytes, expected %d",
					phdr.Vaddr, n, phdr.Filesz)
			}
		}

		// Pad a ragged tail out to a whole word
		if len(data)%4 != 0 {
			data = append(data, make([]byte, 4-len(data)%4)...)
		}

		words := make([]uint32, len(data)/4)
		for i := range words {
			words[i] = binary.LittleEndian.Uint32(data[i*4:])
		}

		return &Program{
			Entry: f.Entry,
			Base:  phdr.Vaddr,
			Words: words,
		}, nil
	}

	return nil, fmt.Errorf("no executable PT_LOAD segment found")
}

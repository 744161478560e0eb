package chip8

import "fmt"

const (
	MemorySize = 4096
	FontBase   = 0x000
	FontHeight = 5
)

// fontSprites holds the 4x5 hexadecimal digit sprites loaded at FontBase.
var fontSprites = [16 * FontHeight]uint8{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

type Memory [MemorySize]uint8

func (mem *Memory) clear() {
	for i := 0; i < len(mem); i++ {
		mem[i] = 0
	}
	copy(mem[FontBase:], fontSprites[:])
}

func (mem *Memory) loadROM(program []byte) error {
	if len(program) > MemorySize-StartAddress {
		return fmt.Errorf("chip8: program too large (%d bytes, %d available)",
			len(program), MemorySize-StartAddress)
	}
	copy(mem[StartAddress:], program)
	return nil
}

func (mem *Memory) fetchOpcode(pc uint16) uint16 {
	return uint16(mem[pc])<<8 | uint16(mem[pc+1])
}

package chip8

import (
	"fmt"
	"io"
)

const (
	StartAddress = 0x200
	RegCarry     = 0xF
)

type CPU struct {
	V     [16]uint8 // general-purpose registers
	I     uint16    // Index register
	PC    uint16    // program counter
	SP    uint16    // stack pointer
	Stack [16]uint16

	cycles int64
}

func (cpu *CPU) Print(w io.Writer) {
	fmt.Fprintf(w, "Cycles #%d\n", cpu.cycles)
	fmt.Fprintf(w, "PC = 0x%04x, SP = %d, I = 0x%04x\n", cpu.PC, cpu.SP, cpu.I)
	for i := 0; i < len(cpu.V); i += 4 {
		fmt.Fprintf(w, "V%X = 0x%02x, V%X = 0x%02x, V%X = 0x%02x, V%X = 0x%02x\n",
			i, cpu.V[i], i+1, cpu.V[i+1], i+2, cpu.V[i+2], i+3, cpu.V[i+3])
	}
}

func (cpu *CPU) reset() {
	cpu.PC = StartAddress
	cpu.I = 0
	cpu.SP = 0
	cpu.cycles = 0

	// clear stack
	for i := 0; i < len(cpu.Stack); i++ {
		cpu.Stack[i] = 0
	}

	// clear register V0-VF
	for i := 0; i < len(cpu.V); i++ {
		cpu.V[i] = 0
	}
}

func (cpu *CPU) Cycle(mem *Memory, gfx *Graphics, sys *System) {
	cpu.step(mem, gfx, sys)
	cpu.cycles++
}

// decode and step opcode
func (cpu *CPU) step(mem *Memory, gfx *Graphics, sys *System) {
	opc := mem.fetchOpcode(cpu.PC)
	newPC := cpu.PC + 2

	switch opc & 0xF000 {
	case 0x0000:
		switch opc {
		case 0x00E0: // 0x00E0: Clears the screen
			cpu.cls(gfx)
		case 0x00EE: // 0x00EE: Returns from subroutine
			newPC = cpu.ret()
		default:
			addr := opc & 0xFFF
			cpu.callRCA1802(addr)
		}

	case 0x1000: // 0x1NNN: Jumps to address NNN
		newPC = cpu.jpAddr(opc & 0xFFF)

	case 0x2000: // 0x2NNN: Calls subroutine at NNN.
		newPC = cpu.callAddr(opc & 0xFFF)

	case 0x3000: // 0x3XNN: Skips the next instruction if VX equals NN
		x := uint8((opc & 0x0F00) >> 8)
		val := uint8(opc & 0xFF)
		newPC = cpu.seVxByte(x, val)

	case 0x4000: // 0x4XNN: Skips the next instruction if VX doesn't equal NN
		x := uint8((opc & 0x0F00) >> 8)
		val := uint8(opc & 0xFF)
		newPC = cpu.sneVxByte(x, val)

	case 0x5000: // 0x5XY0: Skips the next instruction if VX equals VY.
		x := uint8((opc & 0x0F00) >> 8)
		y := uint8((opc & 0x00F0) >> 4)
		newPC = cpu.seVxVy(x, y)

	case 0x6000: // 0x6XNN: Sets VX to NN.
		x := uint8((opc & 0x0F00) >> 8)
		val := uint8(opc & 0x00FF)
		cpu.ldVxByte(x, val)

	case 0x7000: // 0x7XNN: Adds NN to VX.
		x := uint8((opc & 0x0F00) >> 8)
		val := uint8(opc & 0x00FF)
		cpu.addVxByte(x, val)

	case 0x8000:
		x := uint8((opc & 0x0F00) >> 8)
		y := uint8((opc & 0x00F0) >> 4)
		switch opc & 0x000F {
		case 0x0000: // 0x8XY0: Sets VX to the value of VY
			cpu.ldVxVy(x, y)
		case 0x0001: // 0x8XY1: Sets VX to "VX OR VY"
			cpu.orVxVy(x, y)
		case 0x0002: // 0x8XY2: Sets VX to "VX AND VY"
			cpu.andVxVy(x, y)
		case 0x0003: // 0x8XY3: Sets VX to "VX XOR VY"
			cpu.xorVxVy(x, y)
		case 0x0004: // 0x8XY4: Adds VY to VX. VF is set to 1 when there's a carry, and to 0 when there isn't
			cpu.addVxVy(x, y)
		case 0x0005: // 0x8XY5: VY is subtracted from VX. VF is set to 0 when there's a borrow, and 1 when there isn't
			cpu.subVxVy(x, y)
		case 0x0006: // 0x8XY6: Shifts right by one. VF is set to the least significant bit before the shift
			cpu.shrVxVy(x, y, sys.schip)
		case 0x0007: // 0x8XY7: Sets VX to VY minus VX. VF is set to 0 when there's a borrow, and 1 when there isn't
			cpu.subnVxVy(x, y)
		case 0x000E: // 0x8XYE: Shifts left by one. VF is set to the most significant bit before the shift
			cpu.shlVxVy(x, y, sys.schip)
		default:
			cpu.unknownOp(opc)
		}

	case 0x9000: // 0x9XY0: Skips the next instruction if VX doesn't equal VY
		x := uint8((opc & 0x0F00) >> 8)
		y := uint8((opc & 0x00F0) >> 4)
		newPC = cpu.sneVxVy(x, y)

	case 0xA000: // ANNN: Sets I to the address NNN
		cpu.ldIAddr(opc & 0xFFF)

	case 0xB000: // BNNN: Jumps to the address NNN plus V0
		newPC = cpu.jpV0Addr(opc & 0xFFF)

	case 0xC000: // CXNN: Sets VX to a random number and NN
		reg := uint8((opc & 0x0F00) >> 8)
		val := uint8(opc & 0x00FF)
		cpu.rndVxByte(sys, reg, val)

	case 0xD000: // DXYN: Draws a sprite at coordinate (VX, VY) that has a width of 8 pixels and a height of N pixels.
		x := uint8((opc & 0x0F00) >> 8)
		y := uint8((opc & 0x00F0) >> 4)
		n := uint8(opc & 0x000F)
		cpu.drwVxVyNibble(mem, gfx, sys, x, y, n)

	case 0xE000:
		x := uint8((opc & 0x0F00) >> 8)
		switch opc & 0x00FF {
		case 0x009E: // EX9E: Skips the next instruction if the key stored in VX is pressed
			newPC = cpu.skpVx(sys, x)
		case 0x00A1: // EXA1: Skips the next instruction if the key stored in VX isn't pressed
			newPC = cpu.sknpVx(sys, x)
		default:
			cpu.unknownOp(opc)
		}

	case 0xF000:
		x := uint8((opc & 0x0F00) >> 8)
		switch opc & 0x00FF {
		case 0x0007: // FX07: Sets VX to the value of the delay timer
			cpu.ldVxDT(sys, x)

		case 0x000A: // FX0A: A key press is awaited, and then stored in VX
			cpu.ldVxK(sys, x)

		case 0x0015: // FX15: Sets the delay timer to VX
			cpu.ldDTVx(sys, x)

		case 0x0018: // FX18: Sets the sound timer to VX
			cpu.ldSTVx(sys, x)

		case 0x001E: // FX1E: Adds VX to I
			cpu.addIVx(x)

		case 0x0029: // FX29: Sets I to the location of the sprite for the character in VX. Characters 0-F (in hexadecimal) are represented by a 4x5 font
			cpu.ldFVx(x)

		case 0x0033: // FX33: Stores the Binary-coded decimal representation of VX at the addresses I, I plus 1, and I plus 2
			cpu.ldBVx(mem, x)

		case 0x0055: // FX55: Stores V0 to VX in memory starting at address I
			cpu.ldIVx(mem, x, sys.schip)

		case 0x0065: // FX65: Fills V0 to VX with values from memory starting at address I
			cpu.ldVxI(mem, x, sys.schip)

		default:
			cpu.unknownOp(opc)
		}

	default:
		cpu.unknownOp(opc)
	}

	cpu.PC = newPC
}

func (cpu *CPU) jpAddr(addr uint16) uint16 {
	return addr
}

func (cpu *CPU) callAddr(addr uint16) uint16 {
	cpu.Stack[cpu.SP] = cpu.PC + 2
	cpu.SP++
	return addr
}

func (cpu *CPU) ret() uint16 {
	cpu.SP--
	return cpu.Stack[cpu.SP]
}

func (cpu *CPU) callRCA1802(addr uint16) {
	// machine code routines are not supported
}

func (cpu *CPU) cls(gfx *Graphics) {
	gfx.clear()
}

func (cpu *CPU) seVxByte(x, val uint8) uint16 {
	if cpu.V[x] == val {
		return cpu.PC + 4 // skip next
	}
	return cpu.PC + 2
}

func (cpu *CPU) sneVxByte(x, val uint8) uint16 {
	if cpu.V[x] != val {
		return cpu.PC + 4 // skip next
	}
	return cpu.PC + 2
}

func (cpu *CPU) seVxVy(x, y uint8) uint16 {
	if cpu.V[x] == cpu.V[y] {
		return cpu.PC + 4
	}
	return cpu.PC + 2
}

func (cpu *CPU) sneVxVy(x, y uint8) uint16 {
	if cpu.V[x] != cpu.V[y] {
		return cpu.PC + 4
	}
	return cpu.PC + 2
}

func (cpu *CPU) ldVxByte(x, val uint8) {
	cpu.V[x] = val
}

func (cpu *CPU) addVxByte(x, val uint8) {
	cpu.V[x] += val
}

func (cpu *CPU) ldVxVy(x, y uint8) {
	cpu.V[x] = cpu.V[y]
}

func (cpu *CPU) orVxVy(x, y uint8) {
	cpu.V[x] |= cpu.V[y]
}

func (cpu *CPU) andVxVy(x, y uint8) {
	cpu.V[x] &= cpu.V[y]
}

func (cpu *CPU) xorVxVy(x, y uint8) {
	cpu.V[x] ^= cpu.V[y]
}

func (cpu *CPU) addVxVy(x, y uint8) {
	sum := uint16(cpu.V[x]) + uint16(cpu.V[y])
	cpu.V[x] = uint8(sum)
	if sum > 0xFF {
		cpu.V[RegCarry] = 1
	} else {
		cpu.V[RegCarry] = 0
	}
}

func (cpu *CPU) subVxVy(x, y uint8) {
	noBorrow := cpu.V[x] >= cpu.V[y]
	cpu.V[x] -= cpu.V[y]
	if noBorrow {
		cpu.V[RegCarry] = 1
	} else {
		cpu.V[RegCarry] = 0
	}
}

func (cpu *CPU) subnVxVy(x, y uint8) {
	noBorrow := cpu.V[y] >= cpu.V[x]
	cpu.V[x] = cpu.V[y] - cpu.V[x]
	if noBorrow {
		cpu.V[RegCarry] = 1
	} else {
		cpu.V[RegCarry] = 0
	}
}

// shrVxVy: the original interpreter shifts VY into VX; S-CHIP shifts VX
// in place and ignores VY.
func (cpu *CPU) shrVxVy(x, y uint8, schip bool) {
	src := cpu.V[y]
	if schip {
		src = cpu.V[x]
	}
	lsb := src & 0x01
	cpu.V[x] = src >> 1
	cpu.V[RegCarry] = lsb
}

func (cpu *CPU) shlVxVy(x, y uint8, schip bool) {
	src := cpu.V[y]
	if schip {
		src = cpu.V[x]
	}
	msb := src >> 7
	cpu.V[x] = src << 1
	cpu.V[RegCarry] = msb
}

func (cpu *CPU) ldIAddr(addr uint16) {
	cpu.I = addr
}

func (cpu *CPU) jpV0Addr(addr uint16) uint16 {
	return addr + uint16(cpu.V[0])
}

func (cpu *CPU) rndVxByte(sys *System, x, val uint8) {
	cpu.V[x] = sys.cb.Rand() & val
}

func (cpu *CPU) drwVxVyNibble(mem *Memory, gfx *Graphics, sys *System, x, y, n uint8) {
	if gfx.draw(mem, cpu.I, cpu.V[x], cpu.V[y], n, sys.clipSprites) {
		cpu.V[RegCarry] = 1
	} else {
		cpu.V[RegCarry] = 0
	}
}

func (cpu *CPU) skpVx(sys *System, x uint8) uint16 {
	if sys.cb.IsPressed(cpu.V[x] & 0x0F) {
		return cpu.PC + 4
	}
	return cpu.PC + 2
}

func (cpu *CPU) sknpVx(sys *System, x uint8) uint16 {
	if !sys.cb.IsPressed(cpu.V[x] & 0x0F) {
		return cpu.PC + 4
	}
	return cpu.PC + 2
}

func (cpu *CPU) ldVxDT(sys *System, x uint8) {
	cpu.V[x] = sys.cb.TimeGetter()
}

// ldVxK blocks inside the WaitForKey callback until a key press arrives.
func (cpu *CPU) ldVxK(sys *System, x uint8) {
	cpu.V[x] = sys.cb.WaitForKey() & 0x0F
}

func (cpu *CPU) ldDTVx(sys *System, x uint8) {
	sys.cb.TimeSetter(cpu.V[x])
}

func (cpu *CPU) ldSTVx(sys *System, x uint8) {
	sys.cb.SoundSetter(cpu.V[x])
}

func (cpu *CPU) addIVx(x uint8) {
	cpu.I += uint16(cpu.V[x])
}

func (cpu *CPU) ldFVx(x uint8) {
	cpu.I = FontBase + uint16(cpu.V[x]&0x0F)*FontHeight
}

func (cpu *CPU) ldBVx(mem *Memory, x uint8) {
	v := cpu.V[x]
	mem[cpu.I] = v / 100
	mem[cpu.I+1] = (v / 10) % 10
	mem[cpu.I+2] = v % 10
}

// ldIVx: the original interpreter leaves I pointing past the stored
// registers; S-CHIP leaves I untouched.
func (cpu *CPU) ldIVx(mem *Memory, x uint8, schip bool) {
	for i := uint8(0); i <= x; i++ {
		mem[cpu.I+uint16(i)] = cpu.V[i]
	}
	if !schip {
		cpu.I += uint16(x) + 1
	}
}

func (cpu *CPU) ldVxI(mem *Memory, x uint8, schip bool) {
	for i := uint8(0); i <= x; i++ {
		cpu.V[i] = mem[cpu.I+uint16(i)]
	}
	if !schip {
		cpu.I += uint16(x) + 1
	}
}

func (cpu *CPU) unknownOp(opc uint16) {
	// invalid code in the ROM, not a condition worth crashing over
}

package cpu

import "fmt"

// InstructionSetCB holds the instructions prefixed by 0xCB. Their
// cycles include the prefix fetch.
var InstructionSetCB [256]Instruction

// cbOperations are the rotate and shift operations of 0xCB 0x00 - 0x3F,
// encoded in bits 3-5 of the opcode.
var cbOperations = [8]struct {
	name string
	fn   func(c *CPU, n uint8) uint8
}{
	{"RLC", (*CPU).rotateLeftCarry},
	{"RRC", (*CPU).rotateRightCarry},
	{"RL", (*CPU).rotateLeftThroughCarry},
	{"RR", (*CPU).rotateRightThroughCarry},
	{"SLA", (*CPU).shiftLeftArithmetic},
	{"SRA", (*CPU).shiftRightArithmetic},
	{"SWAP", (*CPU).swap},
	{"SRL", (*CPU).shiftRightLogical},
}

// cbCycles returns the cycles of a CB instruction operating on the
// register with the given index. (HL) takes an extra read, and an
// extra write for anything but BIT.
func cbCycles(index uint8, bit bool) uint8 {
	switch {
	case index != 6:
		return 2
	case bit:
		return 3
	default:
		return 4
	}
}

func init() {
	for opcode := 0; opcode < 0x100; opcode++ {
		reg, b := uint8(opcode&0x7), uint8(opcode>>3&0x7)
		bitOperand := Operand{Kind: OperandBit, Value: b}

		var instruction Instruction
		switch opcode >> 6 {
		case 0: // rotates, shifts and swap
			op := cbOperations[b]
			instruction = Instruction{
				name:     op.name + " " + registerNames[reg],
				operands: []Operand{registerOperand(reg)},
				fn: func(c *CPU) {
					c.writeRegister(reg, op.fn(c, c.readRegister(reg)))
				},
			}
		case 1: // BIT b, r
			instruction = Instruction{
				name:     fmt.Sprintf("BIT %d,%s", b, registerNames[reg]),
				operands: []Operand{bitOperand, registerOperand(reg)},
				fn: func(c *CPU) {
					c.testBit(c.readRegister(reg), b)
				},
			}
		case 2: // RES b, r
			instruction = Instruction{
				name:     fmt.Sprintf("RES %d,%s", b, registerNames[reg]),
				operands: []Operand{bitOperand, registerOperand(reg)},
				fn: func(c *CPU) {
					c.writeRegister(reg, c.readRegister(reg)&^(1<<b))
				},
			}
		case 3: // SET b, r
			instruction = Instruction{
				name:     fmt.Sprintf("SET %d,%s", b, registerNames[reg]),
				operands: []Operand{bitOperand, registerOperand(reg)},
				fn: func(c *CPU) {
					c.writeRegister(reg, c.readRegister(reg)|1<<b)
				},
			}
		}
		instruction.cycles = cbCycles(reg, opcode>>6 == 1)
		InstructionSetCB[opcode] = instruction
	}
}

package cpu

import "fmt"

// undefinedOpcodes lock up the CPU on hardware. They are executed as
// no-ops, and logged.
var undefinedOpcodes = []uint8{
	0xD3, 0xDB, 0xDD, 0xE3, 0xE4, 0xEB, 0xEC, 0xED, 0xF4, 0xFC, 0xFD,
}

// undefinedOpcode creates an instruction for an undefined opcode.
func undefinedOpcode(opcode uint8) Instruction {
	return Instruction{
		name:   fmt.Sprintf("undefined 0x%02X", opcode),
		cycles: 1,
		fn: func(c *CPU) {
			c.log.Debugf("cpu: undefined opcode 0x%02X at 0x%04X", opcode, c.PC-1)
		},
	}
}

// aluOperations are the 8 arithmetic/logic operations encoded in
// bits 3-5 of the 0x80 - 0xBF and 0xC6 - 0xFE opcodes.
var aluOperations = [8]struct {
	name string
	fn   func(c *CPU, n uint8)
}{
	{"ADD A,", func(c *CPU, n uint8) { c.add(n, false) }},
	{"ADC A,", func(c *CPU, n uint8) { c.add(n, true) }},
	{"SUB ", func(c *CPU, n uint8) { c.sub(n, false) }},
	{"SBC A,", func(c *CPU, n uint8) { c.sub(n, true) }},
	{"AND ", (*CPU).and},
	{"XOR ", (*CPU).xor},
	{"OR ", (*CPU).or},
	{"CP ", (*CPU).compare},
}

// InstructionSet holds the first 256 instructions. The regular
// LD r, r' (0x40 - 0x7F) and ALU A, r (0x80 - 0xBF) blocks are
// generated in init.
var InstructionSet = [256]Instruction{
	0x00: {"NOP", 1, nil, func(c *CPU) {}},
	0x01: {"LD BC,d16", 3, []Operand{opBC, opD16}, func(c *CPU) { c.loadRegister16(c.BC) }},
	0x02: {"LD (BC),A", 2, []Operand{opIBC, opA}, func(c *CPU) { c.writeByte(c.BC.Uint16(), c.A) }},
	0x03: {"INC BC", 2, []Operand{opBC}, func(c *CPU) { c.incrementNN(c.BC) }},
	0x04: {"INC B", 1, []Operand{registerOperand(0)}, func(c *CPU) { c.B = c.increment(c.B) }},
	0x05: {"DEC B", 1, []Operand{registerOperand(0)}, func(c *CPU) { c.B = c.decrement(c.B) }},
	0x06: {"LD B,d8", 2, []Operand{registerOperand(0), opD8}, func(c *CPU) { c.B = c.readOperand() }},
	0x07: {"RLCA", 1, nil, func(c *CPU) { c.rotateLeftCarryAccumulator() }},
	0x08: {"LD (a16),SP", 5, []Operand{opA16, opSP}, func(c *CPU) {
		address := c.readOperand16()
		c.writeByte(address, uint8(c.SP))
		c.writeByte(address+1, uint8(c.SP>>8))
	}},
	0x09: {"ADD HL,BC", 2, []Operand{opHL, opBC}, func(c *CPU) { c.addHL(c.BC.Uint16()) }},
	0x0A: {"LD A,(BC)", 2, []Operand{opA, opIBC}, func(c *CPU) { c.A = c.readByte(c.BC.Uint16()) }},
	0x0B: {"DEC BC", 2, []Operand{opBC}, func(c *CPU) { c.decrementNN(c.BC) }},
	0x0C: {"INC C", 1, []Operand{registerOperand(1)}, func(c *CPU) { c.C = c.increment(c.C) }},
	0x0D: {"DEC C", 1, []Operand{registerOperand(1)}, func(c *CPU) { c.C = c.decrement(c.C) }},
	0x0E: {"LD C,d8", 2, []Operand{registerOperand(1), opD8}, func(c *CPU) { c.C = c.readOperand() }},
	0x0F: {"RRCA", 1, nil, func(c *CPU) { c.rotateRightCarryAccumulator() }},

	0x10: {"STOP", 0, nil, func(c *CPU) { c.stop() }},
	0x11: {"LD DE,d16", 3, []Operand{opDE, opD16}, func(c *CPU) { c.loadRegister16(c.DE) }},
	0x12: {"LD (DE),A", 2, []Operand{opIDE, opA}, func(c *CPU) { c.writeByte(c.DE.Uint16(), c.A) }},
	0x13: {"INC DE", 2, []Operand{opDE}, func(c *CPU) { c.incrementNN(c.DE) }},
	0x14: {"INC D", 1, []Operand{registerOperand(2)}, func(c *CPU) { c.D = c.increment(c.D) }},
	0x15: {"DEC D", 1, []Operand{registerOperand(2)}, func(c *CPU) { c.D = c.decrement(c.D) }},
	0x16: {"LD D,d8", 2, []Operand{registerOperand(2), opD8}, func(c *CPU) { c.D = c.readOperand() }},
	0x17: {"RLA", 1, nil, func(c *CPU) { c.rotateLeftAccumulatorThroughCarry() }},
	0x18: {"JR r8", 3, []Operand{opJR}, func(c *CPU) { c.jumpRelative(true) }},
	0x19: {"ADD HL,DE", 2, []Operand{opHL, opDE}, func(c *CPU) { c.addHL(c.DE.Uint16()) }},
	0x1A: {"LD A,(DE)", 2, []Operand{opA, opIDE}, func(c *CPU) { c.A = c.readByte(c.DE.Uint16()) }},
	0x1B: {"DEC DE", 2, []Operand{opDE}, func(c *CPU) { c.decrementNN(c.DE) }},
	0x1C: {"INC E", 1, []Operand{registerOperand(3)}, func(c *CPU) { c.E = c.increment(c.E) }},
	0x1D: {"DEC E", 1, []Operand{registerOperand(3)}, func(c *CPU) { c.E = c.decrement(c.E) }},
	0x1E: {"LD E,d8", 2, []Operand{registerOperand(3), opD8}, func(c *CPU) { c.E = c.readOperand() }},
	0x1F: {"RRA", 1, nil, func(c *CPU) { c.rotateRightAccumulatorThroughCarry() }},

	0x20: {"JR NZ,r8", 0, []Operand{conditionOperand(0x20), opJR}, func(c *CPU) { c.jumpRelative(c.condition(0x20)) }},
	0x21: {"LD HL,d16", 3, []Operand{opHL, opD16}, func(c *CPU) { c.loadRegister16(c.HL) }},
	0x22: {"LD (HL+),A", 2, []Operand{opHLI, opA}, func(c *CPU) { c.writeByte(c.loadHLIncrement(), c.A) }},
	0x23: {"INC HL", 2, []Operand{opHL}, func(c *CPU) { c.incrementNN(c.HL) }},
	0x24: {"INC H", 1, []Operand{registerOperand(4)}, func(c *CPU) { c.H = c.increment(c.H) }},
	0x25: {"DEC H", 1, []Operand{registerOperand(4)}, func(c *CPU) { c.H = c.decrement(c.H) }},
	0x26: {"LD H,d8", 2, []Operand{registerOperand(4), opD8}, func(c *CPU) { c.H = c.readOperand() }},
	0x27: {"DAA", 1, nil, func(c *CPU) { c.daa() }},
	0x28: {"JR Z,r8", 0, []Operand{conditionOperand(0x28), opJR}, func(c *CPU) { c.jumpRelative(c.condition(0x28)) }},
	0x29: {"ADD HL,HL", 2, []Operand{opHL, opHL}, func(c *CPU) { c.addHL(c.HL.Uint16()) }},
	0x2A: {"LD A,(HL+)", 2, []Operand{opA, opHLI}, func(c *CPU) { c.A = c.readByte(c.loadHLIncrement()) }},
	0x2B: {"DEC HL", 2, []Operand{opHL}, func(c *CPU) { c.decrementNN(c.HL) }},
	0x2C: {"INC L", 1, []Operand{registerOperand(5)}, func(c *CPU) { c.L = c.increment(c.L) }},
	0x2D: {"DEC L", 1, []Operand{registerOperand(5)}, func(c *CPU) { c.L = c.decrement(c.L) }},
	0x2E: {"LD L,d8", 2, []Operand{registerOperand(5), opD8}, func(c *CPU) { c.L = c.readOperand() }},
	0x2F: {"CPL", 1, nil, func(c *CPU) {
		c.A = ^c.A
		c.setFlag(FlagSubtract | FlagHalfCarry)
	}},

	0x30: {"JR NC,r8", 0, []Operand{conditionOperand(0x30), opJR}, func(c *CPU) { c.jumpRelative(c.condition(0x30)) }},
	0x31: {"LD SP,d16", 3, []Operand{opSP, opD16}, func(c *CPU) { c.SP = c.readOperand16() }},
	0x32: {"LD (HL-),A", 2, []Operand{opHLD, opA}, func(c *CPU) { c.writeByte(c.loadHLDecrement(), c.A) }},
	0x33: {"INC SP", 2, []Operand{opSP}, func(c *CPU) {
		c.SP++
		c.tickCycle()
	}},
	0x34: {"INC (HL)", 3, []Operand{opIHL}, func(c *CPU) { c.writeByte(c.HL.Uint16(), c.increment(c.readByte(c.HL.Uint16()))) }},
	0x35: {"DEC (HL)", 3, []Operand{opIHL}, func(c *CPU) { c.writeByte(c.HL.Uint16(), c.decrement(c.readByte(c.HL.Uint16()))) }},
	0x36: {"LD (HL),d8", 3, []Operand{opIHL, opD8}, func(c *CPU) { c.writeByte(c.HL.Uint16(), c.readOperand()) }},
	0x37: {"SCF", 1, nil, func(c *CPU) {
		c.setFlag(FlagCarry)
		c.clearFlag(FlagSubtract | FlagHalfCarry)
	}},
	0x38: {"JR C,r8", 0, []Operand{conditionOperand(0x38), opJR}, func(c *CPU) { c.jumpRelative(c.condition(0x38)) }},
	0x39: {"ADD HL,SP", 2, []Operand{opHL, opSP}, func(c *CPU) { c.addHL(c.SP) }},
	0x3A: {"LD A,(HL-)", 2, []Operand{opA, opHLD}, func(c *CPU) { c.A = c.readByte(c.loadHLDecrement()) }},
	0x3B: {"DEC SP", 2, []Operand{opSP}, func(c *CPU) {
		c.SP--
		c.tickCycle()
	}},
	0x3C: {"INC A", 1, []Operand{opA}, func(c *CPU) { c.A = c.increment(c.A) }},
	0x3D: {"DEC A", 1, []Operand{opA}, func(c *CPU) { c.A = c.decrement(c.A) }},
	0x3E: {"LD A,d8", 2, []Operand{opA, opD8}, func(c *CPU) { c.A = c.readOperand() }},
	0x3F: {"CCF", 1, nil, func(c *CPU) {
		c.F ^= FlagCarry
		c.clearFlag(FlagSubtract | FlagHalfCarry)
	}},

	0x76: {"HALT", 1, nil, func(c *CPU) { c.halt() }},

	0xC0: {"RET NZ", 0, []Operand{conditionOperand(0xC0)}, func(c *CPU) { c.retConditional(c.condition(0xC0)) }},
	0xC1: {"POP BC", 3, []Operand{opBC}, func(c *CPU) { c.BC.SetUint16(c.pop()) }},
	0xC2: {"JP NZ,a16", 0, []Operand{conditionOperand(0xC2), opJP}, func(c *CPU) { c.jumpAbsolute(c.condition(0xC2)) }},
	0xC3: {"JP a16", 4, []Operand{opJP}, func(c *CPU) { c.jumpAbsolute(true) }},
	0xC4: {"CALL NZ,a16", 0, []Operand{conditionOperand(0xC4), opJP}, func(c *CPU) { c.call(c.condition(0xC4)) }},
	0xC5: {"PUSH BC", 4, []Operand{opBC}, func(c *CPU) { c.push(c.B, c.C) }},
	0xC6: {"ADD A,d8", 2, []Operand{opA, opD8}, func(c *CPU) { c.add(c.readOperand(), false) }},
	0xC8: {"RET Z", 0, []Operand{conditionOperand(0xC8)}, func(c *CPU) { c.retConditional(c.condition(0xC8)) }},
	0xC9: {"RET", 4, nil, func(c *CPU) { c.ret() }},
	0xCA: {"JP Z,a16", 0, []Operand{conditionOperand(0xCA), opJP}, func(c *CPU) { c.jumpAbsolute(c.condition(0xCA)) }},
	0xCB: {"PREFIX CB", 0, nil, func(c *CPU) {
		instruction := InstructionSetCB[c.readOperand()]
		instruction.fn(c)
	}},
	0xCC: {"CALL Z,a16", 0, []Operand{conditionOperand(0xCC), opJP}, func(c *CPU) { c.call(c.condition(0xCC)) }},
	0xCD: {"CALL a16", 6, []Operand{opJP}, func(c *CPU) { c.call(true) }},
	0xCE: {"ADC A,d8", 2, []Operand{opA, opD8}, func(c *CPU) { c.add(c.readOperand(), true) }},

	0xD0: {"RET NC", 0, []Operand{conditionOperand(0xD0)}, func(c *CPU) { c.retConditional(c.condition(0xD0)) }},
	0xD1: {"POP DE", 3, []Operand{opDE}, func(c *CPU) { c.DE.SetUint16(c.pop()) }},
	0xD2: {"JP NC,a16", 0, []Operand{conditionOperand(0xD2), opJP}, func(c *CPU) { c.jumpAbsolute(c.condition(0xD2)) }},
	0xD4: {"CALL NC,a16", 0, []Operand{conditionOperand(0xD4), opJP}, func(c *CPU) { c.call(c.condition(0xD4)) }},
	0xD5: {"PUSH DE", 4, []Operand{opDE}, func(c *CPU) { c.push(c.D, c.E) }},
	0xD6: {"SUB d8", 2, []Operand{opD8}, func(c *CPU) { c.sub(c.readOperand(), false) }},
	0xD8: {"RET C", 0, []Operand{conditionOperand(0xD8)}, func(c *CPU) { c.retConditional(c.condition(0xD8)) }},
	0xD9: {"RETI", 4, nil, func(c *CPU) {
		c.irq.IME = true
		c.ret()
	}},
	0xDA: {"JP C,a16", 0, []Operand{conditionOperand(0xDA), opJP}, func(c *CPU) { c.jumpAbsolute(c.condition(0xDA)) }},
	0xDC: {"CALL C,a16", 0, []Operand{conditionOperand(0xDC), opJP}, func(c *CPU) { c.call(c.condition(0xDC)) }},
	0xDE: {"SBC A,d8", 2, []Operand{opA, opD8}, func(c *CPU) { c.sub(c.readOperand(), true) }},

	0xE0: {"LDH (a8),A", 3, []Operand{opA8, opA}, func(c *CPU) { c.writeByte(0xFF00|uint16(c.readOperand()), c.A) }},
	0xE1: {"POP HL", 3, []Operand{opHL}, func(c *CPU) { c.HL.SetUint16(c.pop()) }},
	0xE2: {"LD (C),A", 2, []Operand{opIC, opA}, func(c *CPU) { c.writeByte(0xFF00|uint16(c.C), c.A) }},
	0xE5: {"PUSH HL", 4, []Operand{opHL}, func(c *CPU) { c.push(c.H, c.L) }},
	0xE6: {"AND d8", 2, []Operand{opD8}, func(c *CPU) { c.and(c.readOperand()) }},
	0xE8: {"ADD SP,r8", 4, []Operand{opSP, opR8}, func(c *CPU) {
		c.SP = c.addSPSigned()
		c.tickCycle()
	}},
	0xE9: {"JP HL", 1, []Operand{opHL}, func(c *CPU) { c.PC = c.HL.Uint16() }},
	0xEA: {"LD (a16),A", 4, []Operand{opA16, opA}, func(c *CPU) { c.writeByte(c.readOperand16(), c.A) }},
	0xEE: {"XOR d8", 2, []Operand{opD8}, func(c *CPU) { c.xor(c.readOperand()) }},

	0xF0: {"LDH A,(a8)", 3, []Operand{opA, opA8}, func(c *CPU) { c.A = c.readByte(0xFF00 | uint16(c.readOperand())) }},
	0xF1: {"POP AF", 3, []Operand{opAF}, func(c *CPU) { c.AF.SetUint16(c.pop()) }},
	0xF2: {"LD A,(C)", 2, []Operand{opA, opIC}, func(c *CPU) { c.A = c.readByte(0xFF00 | uint16(c.C)) }},
	0xF3: {"DI", 1, nil, func(c *CPU) {
		c.irq.IME = false
		c.imePending = false
	}},
	0xF5: {"PUSH AF", 4, []Operand{opAF}, func(c *CPU) { c.push(c.A, c.F) }},
	0xF6: {"OR d8", 2, []Operand{opD8}, func(c *CPU) { c.or(c.readOperand()) }},
	0xF8: {"LD HL,SP+r8", 3, []Operand{opHL, opSPR}, func(c *CPU) { c.HL.SetUint16(c.addSPSigned()) }},
	0xF9: {"LD SP,HL", 2, []Operand{opSP, opHL}, func(c *CPU) {
		c.SP = c.HL.Uint16()
		c.tickCycle()
	}},
	0xFA: {"LD A,(a16)", 4, []Operand{opA, opA16}, func(c *CPU) { c.A = c.readByte(c.readOperand16()) }},
	0xFB: {"EI", 1, nil, func(c *CPU) { c.imePending = true }},
	0xFE: {"CP d8", 2, []Operand{opD8}, func(c *CPU) { c.compare(c.readOperand()) }},
}

func init() {
	// 0x40 - 0x7F - LD r, r'
	for opcode := 0x40; opcode < 0x80; opcode++ {
		if opcode == 0x76 {
			continue // HALT
		}
		dst, src := uint8(opcode>>3&0x7), uint8(opcode&0x7)
		cycles := uint8(1)
		if dst == 6 || src == 6 {
			cycles = 2
		}
		InstructionSet[opcode] = Instruction{
			name:     "LD " + registerNames[dst] + "," + registerNames[src],
			cycles:   cycles,
			operands: []Operand{registerOperand(dst), registerOperand(src)},
			fn: func(c *CPU) {
				c.writeRegister(dst, c.readRegister(src))
			},
		}
	}
	// LD B, B is used as a software breakpoint
	InstructionSet[0x40].fn = func(c *CPU) {
		if c.Debug {
			c.DebugBreakpoint = true
		}
	}

	// 0x80 - 0xBF - ALU A, r
	for opcode := 0x80; opcode < 0xC0; opcode++ {
		op, src := aluOperations[opcode>>3&0x7], uint8(opcode&0x7)
		cycles := uint8(1)
		if src == 6 {
			cycles = 2
		}
		operands := []Operand{registerOperand(src)}
		if op.name[len(op.name)-1] == ',' {
			operands = []Operand{opA, registerOperand(src)}
		}
		InstructionSet[opcode] = Instruction{
			name:     op.name + registerNames[src],
			cycles:   cycles,
			operands: operands,
			fn: func(c *CPU) {
				op.fn(c, c.readRegister(src))
			},
		}
	}

	// RST n
	for opcode := 0xC7; opcode <= 0xFF; opcode += 8 {
		vector := uint16(opcode & 0x38)
		InstructionSet[opcode] = Instruction{
			name:     fmt.Sprintf("RST %02XH", vector),
			cycles:   4,
			operands: []Operand{{Kind: OperandVector, Value: uint8(vector)}},
			fn: func(c *CPU) {
				c.rst(vector)
			},
		}
	}

	for _, opcode := range undefinedOpcodes {
		InstructionSet[opcode] = undefinedOpcode(opcode)
	}
}

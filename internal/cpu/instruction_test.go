package cpu

import (
	"strings"
	"testing"
)

func TestDisassemble(t *testing.T) {
	for _, tt := range []struct {
		program []uint8
		want    string
		length  uint16
	}{
		{[]uint8{0x00}, "NOP", 1},
		{[]uint8{0x3E, 0x42}, "LD A,$42", 2},
		{[]uint8{0x21, 0x34, 0x12}, "LD HL,$1234", 3},
		{[]uint8{0x7E}, "LD A,(HL)", 1},
		{[]uint8{0x22}, "LD (HL+),A", 1},
		{[]uint8{0xE0, 0x40}, "LDH ($FF40),A", 2},
		{[]uint8{0xF2}, "LD A,($FF00+C)", 1},
		{[]uint8{0xEA, 0x00, 0xC0}, "LD ($C000),A", 3},
		{[]uint8{0x18, 0xFE}, "JR $0100", 2},
		{[]uint8{0x20, 0x05}, "JR NZ,$0107", 2},
		{[]uint8{0xC3, 0x50, 0x01}, "JP $0150", 3},
		{[]uint8{0xDC, 0x00, 0x40}, "CALL C,$4000", 3},
		{[]uint8{0xF8, 0xFE}, "LD HL,SP-2", 2},
		{[]uint8{0xE8, 0x05}, "ADD SP,5", 2},
		{[]uint8{0xFF}, "RST $38", 1},
		{[]uint8{0x96}, "SUB (HL)", 1},
		{[]uint8{0x8F}, "ADC A,A", 1},
		{[]uint8{0xCB, 0x7C}, "BIT 7,H", 2},
		{[]uint8{0xCB, 0x36}, "SWAP (HL)", 2},
		{[]uint8{0xD3}, "undefined", 1},
	} {
		t.Run(tt.want, func(t *testing.T) {
			read := func(addr uint16) uint8 {
				if i := int(addr) - 0x100; i >= 0 && i < len(tt.program) {
					return tt.program[i]
				}
				return 0
			}
			got, length := Disassemble(read, 0x100)
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
			if length != tt.length {
				t.Errorf("expected length %d, got %d", tt.length, length)
			}
			if op := tt.program[0]; op != 0xCB && InstructionSet[op].Length() != tt.length {
				t.Errorf("expected instruction length %d, got %d", tt.length, InstructionSet[op].Length())
			}
		})
	}
}

// opcodeNames are the canonical mnemonics of the unprefixed opcodes.
var opcodeNames = [256]string{
	"NOP", "LD BC,d16", "LD (BC),A", "INC BC", "INC B", "DEC B", "LD B,d8", "RLCA", // 0x00
	"LD (a16),SP", "ADD HL,BC", "LD A,(BC)", "DEC BC", "INC C", "DEC C", "LD C,d8", "RRCA", // 0x08
	"STOP", "LD DE,d16", "LD (DE),A", "INC DE", "INC D", "DEC D", "LD D,d8", "RLA", // 0x10
	"JR r8", "ADD HL,DE", "LD A,(DE)", "DEC DE", "INC E", "DEC E", "LD E,d8", "RRA", // 0x18
	"JR NZ,r8", "LD HL,d16", "LD (HL+),A", "INC HL", "INC H", "DEC H", "LD H,d8", "DAA", // 0x20
	"JR Z,r8", "ADD HL,HL", "LD A,(HL+)", "DEC HL", "INC L", "DEC L", "LD L,d8", "CPL", // 0x28
	"JR NC,r8", "LD SP,d16", "LD (HL-),A", "INC SP", "INC (HL)", "DEC (HL)", "LD (HL),d8", "SCF", // 0x30
	"JR C,r8", "ADD HL,SP", "LD A,(HL-)", "DEC SP", "INC A", "DEC A", "LD A,d8", "CCF", // 0x38
	"LD B,B", "LD B,C", "LD B,D", "LD B,E", "LD B,H", "LD B,L", "LD B,(HL)", "LD B,A", // 0x40
	"LD C,B", "LD C,C", "LD C,D", "LD C,E", "LD C,H", "LD C,L", "LD C,(HL)", "LD C,A", // 0x48
	"LD D,B", "LD D,C", "LD D,D", "LD D,E", "LD D,H", "LD D,L", "LD D,(HL)", "LD D,A", // 0x50
	"LD E,B", "LD E,C", "LD E,D", "LD E,E", "LD E,H", "LD E,L", "LD E,(HL)", "LD E,A", // 0x58
	"LD H,B", "LD H,C", "LD H,D", "LD H,E", "LD H,H", "LD H,L", "LD H,(HL)", "LD H,A", // 0x60
	"LD L,B", "LD L,C", "LD L,D", "LD L,E", "LD L,H", "LD L,L", "LD L,(HL)", "LD L,A", // 0x68
	"LD (HL),B", "LD (HL),C", "LD (HL),D", "LD (HL),E", "LD (HL),H", "LD (HL),L", "HALT", "LD (HL),A", // 0x70
	"LD A,B", "LD A,C", "LD A,D", "LD A,E", "LD A,H", "LD A,L", "LD A,(HL)", "LD A,A", // 0x78
	"ADD A,B", "ADD A,C", "ADD A,D", "ADD A,E", "ADD A,H", "ADD A,L", "ADD A,(HL)", "ADD A,A", // 0x80
	"ADC A,B", "ADC A,C", "ADC A,D", "ADC A,E", "ADC A,H", "ADC A,L", "ADC A,(HL)", "ADC A,A", // 0x88
	"SUB B", "SUB C", "SUB D", "SUB E", "SUB H", "SUB L", "SUB (HL)", "SUB A", // 0x90
	"SBC A,B", "SBC A,C", "SBC A,D", "SBC A,E", "SBC A,H", "SBC A,L", "SBC A,(HL)", "SBC A,A", // 0x98
	"AND B", "AND C", "AND D", "AND E", "AND H", "AND L", "AND (HL)", "AND A", // 0xA0
	"XOR B", "XOR C", "XOR D", "XOR E", "XOR H", "XOR L", "XOR (HL)", "XOR A", // 0xA8
	"OR B", "OR C", "OR D", "OR E", "OR H", "OR L", "OR (HL)", "OR A", // 0xB0
	"CP B", "CP C", "CP D", "CP E", "CP H", "CP L", "CP (HL)", "CP A", // 0xB8
	"RET NZ", "POP BC", "JP NZ,a16", "JP a16", "CALL NZ,a16", "PUSH BC", "ADD A,d8", "RST 00H", // 0xC0
	"RET Z", "RET", "JP Z,a16", "PREFIX CB", "CALL Z,a16", "CALL a16", "ADC A,d8", "RST 08H", // 0xC8
	"RET NC", "POP DE", "JP NC,a16", "undefined 0xD3", "CALL NC,a16", "PUSH DE", "SUB d8", "RST 10H", // 0xD0
	"RET C", "RETI", "JP C,a16", "undefined 0xDB", "CALL C,a16", "undefined 0xDD", "SBC A,d8", "RST 18H", // 0xD8
	"LDH (a8),A", "POP HL", "LD (C),A", "undefined 0xE3", "undefined 0xE4", "PUSH HL", "AND d8", "RST 20H", // 0xE0
	"ADD SP,r8", "JP HL", "LD (a16),A", "undefined 0xEB", "undefined 0xEC", "undefined 0xED", "XOR d8", "RST 28H", // 0xE8
	"LDH A,(a8)", "POP AF", "LD A,(C)", "DI", "undefined 0xF4", "PUSH AF", "OR d8", "RST 30H", // 0xF0
	"LD HL,SP+r8", "LD SP,HL", "LD A,(a16)", "EI", "undefined 0xFC", "undefined 0xFD", "CP d8", "RST 38H", // 0xF8
}

// opcodeNamesCB are the canonical mnemonics of the 0xCB prefixed opcodes.
var opcodeNamesCB = [256]string{
	"RLC B", "RLC C", "RLC D", "RLC E", "RLC H", "RLC L", "RLC (HL)", "RLC A", // 0x00
	"RRC B", "RRC C", "RRC D", "RRC E", "RRC H", "RRC L", "RRC (HL)", "RRC A", // 0x08
	"RL B", "RL C", "RL D", "RL E", "RL H", "RL L", "RL (HL)", "RL A", // 0x10
	"RR B", "RR C", "RR D", "RR E", "RR H", "RR L", "RR (HL)", "RR A", // 0x18
	"SLA B", "SLA C", "SLA D", "SLA E", "SLA H", "SLA L", "SLA (HL)", "SLA A", // 0x20
	"SRA B", "SRA C", "SRA D", "SRA E", "SRA H", "SRA L", "SRA (HL)", "SRA A", // 0x28
	"SWAP B", "SWAP C", "SWAP D", "SWAP E", "SWAP H", "SWAP L", "SWAP (HL)", "SWAP A", // 0x30
	"SRL B", "SRL C", "SRL D", "SRL E", "SRL H", "SRL L", "SRL (HL)", "SRL A", // 0x38
	"BIT 0,B", "BIT 0,C", "BIT 0,D", "BIT 0,E", "BIT 0,H", "BIT 0,L", "BIT 0,(HL)", "BIT 0,A", // 0x40
	"BIT 1,B", "BIT 1,C", "BIT 1,D", "BIT 1,E", "BIT 1,H", "BIT 1,L", "BIT 1,(HL)", "BIT 1,A", // 0x48
	"BIT 2,B", "BIT 2,C", "BIT 2,D", "BIT 2,E", "BIT 2,H", "BIT 2,L", "BIT 2,(HL)", "BIT 2,A", // 0x50
	"BIT 3,B", "BIT 3,C", "BIT 3,D", "BIT 3,E", "BIT 3,H", "BIT 3,L", "BIT 3,(HL)", "BIT 3,A", // 0x58
	"BIT 4,B", "BIT 4,C", "BIT 4,D", "BIT 4,E", "BIT 4,H", "BIT 4,L", "BIT 4,(HL)", "BIT 4,A", // 0x60
	"BIT 5,B", "BIT 5,C", "BIT 5,D", "BIT 5,E", "BIT 5,H", "BIT 5,L", "BIT 5,(HL)", "BIT 5,A", // 0x68
	"BIT 6,B", "BIT 6,C", "BIT 6,D", "BIT 6,E", "BIT 6,H", "BIT 6,L", "BIT 6,(HL)", "BIT 6,A", // 0x70
	"BIT 7,B", "BIT 7,C", "BIT 7,D", "BIT 7,E", "BIT 7,H", "BIT 7,L", "BIT 7,(HL)", "BIT 7,A", // 0x78
	"RES 0,B", "RES 0,C", "RES 0,D", "RES 0,E", "RES 0,H", "RES 0,L", "RES 0,(HL)", "RES 0,A", // 0x80
	"RES 1,B", "RES 1,C", "RES 1,D", "RES 1,E", "RES 1,H", "RES 1,L", "RES 1,(HL)", "RES 1,A", // 0x88
	"RES 2,B", "RES 2,C", "RES 2,D", "RES 2,E", "RES 2,H", "RES 2,L", "RES 2,(HL)", "RES 2,A", // 0x90
	"RES 3,B", "RES 3,C", "RES 3,D", "RES 3,E", "RES 3,H", "RES 3,L", "RES 3,(HL)", "RES 3,A", // 0x98
	"RES 4,B", "RES 4,C", "RES 4,D", "RES 4,E", "RES 4,H", "RES 4,L", "RES 4,(HL)", "RES 4,A", // 0xA0
	"RES 5,B", "RES 5,C", "RES 5,D", "RES 5,E", "RES 5,H", "RES 5,L", "RES 5,(HL)", "RES 5,A", // 0xA8
	"RES 6,B", "RES 6,C", "RES 6,D", "RES 6,E", "RES 6,H", "RES 6,L", "RES 6,(HL)", "RES 6,A", // 0xB0
	"RES 7,B", "RES 7,C", "RES 7,D", "RES 7,E", "RES 7,H", "RES 7,L", "RES 7,(HL)", "RES 7,A", // 0xB8
	"SET 0,B", "SET 0,C", "SET 0,D", "SET 0,E", "SET 0,H", "SET 0,L", "SET 0,(HL)", "SET 0,A", // 0xC0
	"SET 1,B", "SET 1,C", "SET 1,D", "SET 1,E", "SET 1,H", "SET 1,L", "SET 1,(HL)", "SET 1,A", // 0xC8
	"SET 2,B", "SET 2,C", "SET 2,D", "SET 2,E", "SET 2,H", "SET 2,L", "SET 2,(HL)", "SET 2,A", // 0xD0
	"SET 3,B", "SET 3,C", "SET 3,D", "SET 3,E", "SET 3,H", "SET 3,L", "SET 3,(HL)", "SET 3,A", // 0xD8
	"SET 4,B", "SET 4,C", "SET 4,D", "SET 4,E", "SET 4,H", "SET 4,L", "SET 4,(HL)", "SET 4,A", // 0xE0
	"SET 5,B", "SET 5,C", "SET 5,D", "SET 5,E", "SET 5,H", "SET 5,L", "SET 5,(HL)", "SET 5,A", // 0xE8
	"SET 6,B", "SET 6,C", "SET 6,D", "SET 6,E", "SET 6,H", "SET 6,L", "SET 6,(HL)", "SET 6,A", // 0xF0
	"SET 7,B", "SET 7,C", "SET 7,D", "SET 7,E", "SET 7,H", "SET 7,L", "SET 7,(HL)", "SET 7,A", // 0xF8
}

func TestInstructionSet_Names(t *testing.T) {
	seen := make(map[string]int)
	for opcode := 0; opcode < 0x100; opcode++ {
		if got := InstructionSet[opcode].Name(); got != opcodeNames[opcode] {
			t.Errorf("0x%02X: expected %q, got %q", opcode, opcodeNames[opcode], got)
		}
		if got := InstructionSetCB[opcode].Name(); got != opcodeNamesCB[opcode] {
			t.Errorf("0xCB 0x%02X: expected %q, got %q", opcode, opcodeNamesCB[opcode], got)
		}

		if name := InstructionSet[opcode].Name(); !strings.HasPrefix(name, "undefined") {
			if prev, ok := seen[name]; ok {
				t.Errorf("0x%02X: %q duplicates opcode 0x%02X", opcode, name, prev)
			}
			seen[name] = opcode
		}
		name := InstructionSetCB[opcode].Name()
		if prev, ok := seen[name]; ok {
			t.Errorf("0xCB 0x%02X: %q duplicates opcode 0x%02X", opcode, name, prev)
		}
		seen[name] = 0xCB00 | opcode
	}
	if len(seen) != 512-len(undefinedOpcodes) {
		t.Errorf("expected %d distinct mnemonics, got %d", 512-len(undefinedOpcodes), len(seen))
	}
}

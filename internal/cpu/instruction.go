package cpu

import (
	"fmt"
	"strings"
)

// OperandKind describes how an operand of an instruction is
// addressed.
type OperandKind uint8

const (
	OperandNone         OperandKind = iota
	OperandRegister                 // A, B, C, D, E, H, L
	OperandRegisterPair             // BC, DE, HL, SP, AF
	OperandImmediate8               // d8
	OperandImmediate16              // d16
	OperandSigned8                  // r8
	OperandIndirect                 // (BC), (DE), (HL)
	OperandHLIncrement              // (HL+)
	OperandHLDecrement              // (HL-)
	OperandZeroPage                 // (a8), 0xFF00 + a8
	OperandZeroPageC                // (C), 0xFF00 + C
	OperandAbsolute                 // (a16)
	OperandAddress                  // a16, a jump or call target
	OperandRelative                 // r8, a relative jump target
	OperandSPOffset                 // SP+r8
	OperandCondition                // NZ, Z, NC, C
	OperandBit                      // 0 - 7
	OperandVector                   // RST target
)

// Operand describes a single operand of an instruction.
type Operand struct {
	Kind  OperandKind
	Name  string // register, pair or condition name
	Value uint8  // bit index or RST vector
}

// size returns the number of immediate bytes the operand occupies.
func (o Operand) size() uint16 {
	switch o.Kind {
	case OperandImmediate8, OperandSigned8, OperandZeroPage, OperandRelative, OperandSPOffset:
		return 1
	case OperandImmediate16, OperandAbsolute, OperandAddress:
		return 2
	}
	return 0
}

// Instruction represents a single instruction of the CPU.
type Instruction struct {
	name     string     // name of the instruction
	cycles   uint8      // machine cycles, 0 if they depend on a condition
	operands []Operand  // up to 2 operands
	fn       func(*CPU) // fn called when executing the instruction
}

// Name returns the mnemonic of the instruction, e.g. "LD B,d8".
func (i Instruction) Name() string {
	return i.name
}

// Cycles returns the number of machine cycles the instruction takes,
// including the opcode fetch. Conditional instructions, and those
// whose timing depends on the state of the CPU, return 0.
func (i Instruction) Cycles() uint8 {
	return i.cycles
}

// Operands returns the operand descriptors of the instruction.
func (i Instruction) Operands() []Operand {
	return i.operands
}

// Length returns the length of the instruction in bytes.
func (i Instruction) Length() uint16 {
	length := uint16(1)
	for _, o := range i.operands {
		length += o.size()
	}
	return length
}

// Disassemble decodes the instruction at pc, returning its textual
// form along with its length in bytes. Memory is read through read,
// which must not have any side effects.
func Disassemble(read func(uint16) uint8, pc uint16) (string, uint16) {
	instruction := InstructionSet[read(pc)]
	offset := uint16(1)
	if read(pc) == 0xCB {
		instruction = InstructionSetCB[read(pc+1)]
		offset = 2
	}

	mnemonic := instruction.name
	if i := strings.IndexByte(mnemonic, ' '); i >= 0 {
		mnemonic = mnemonic[:i]
	}
	if len(instruction.operands) == 0 {
		return mnemonic, offset
	}

	operands := make([]string, 0, len(instruction.operands))
	for _, o := range instruction.operands {
		imm8 := read(pc + offset)
		imm16 := uint16(imm8) | uint16(read(pc+offset+1))<<8
		offset += o.size()

		switch o.Kind {
		case OperandImmediate8:
			operands = append(operands, fmt.Sprintf("$%02X", imm8))
		case OperandImmediate16, OperandAddress:
			operands = append(operands, fmt.Sprintf("$%04X", imm16))
		case OperandSigned8:
			operands = append(operands, fmt.Sprintf("%d", int8(imm8)))
		case OperandIndirect:
			operands = append(operands, "("+o.Name+")")
		case OperandHLIncrement:
			operands = append(operands, "(HL+)")
		case OperandHLDecrement:
			operands = append(operands, "(HL-)")
		case OperandZeroPage:
			operands = append(operands, fmt.Sprintf("($FF%02X)", imm8))
		case OperandZeroPageC:
			operands = append(operands, "($FF00+C)")
		case OperandAbsolute:
			operands = append(operands, fmt.Sprintf("($%04X)", imm16))
		case OperandRelative:
			// relative to the end of the instruction
			operands = append(operands, fmt.Sprintf("$%04X", uint16(int32(pc)+2+int32(int8(imm8)))))
		case OperandSPOffset:
			operands = append(operands, fmt.Sprintf("SP%+d", int8(imm8)))
		case OperandBit:
			operands = append(operands, fmt.Sprintf("%d", o.Value))
		case OperandVector:
			operands = append(operands, fmt.Sprintf("$%02X", o.Value))
		default:
			operands = append(operands, o.Name)
		}
	}

	return mnemonic + " " + strings.Join(operands, ","), offset
}

// operand descriptors shared by the instruction tables
var (
	opA   = Operand{Kind: OperandRegister, Name: "A"}
	opC   = Operand{Kind: OperandRegister, Name: "C"}
	opBC  = Operand{Kind: OperandRegisterPair, Name: "BC"}
	opDE  = Operand{Kind: OperandRegisterPair, Name: "DE"}
	opHL  = Operand{Kind: OperandRegisterPair, Name: "HL"}
	opSP  = Operand{Kind: OperandRegisterPair, Name: "SP"}
	opAF  = Operand{Kind: OperandRegisterPair, Name: "AF"}
	opD8  = Operand{Kind: OperandImmediate8}
	opD16 = Operand{Kind: OperandImmediate16}
	opR8  = Operand{Kind: OperandSigned8}
	opA8  = Operand{Kind: OperandZeroPage}
	opA16 = Operand{Kind: OperandAbsolute}
	opJP  = Operand{Kind: OperandAddress}
	opJR  = Operand{Kind: OperandRelative}
	opIBC = Operand{Kind: OperandIndirect, Name: "BC"}
	opIDE = Operand{Kind: OperandIndirect, Name: "DE"}
	opIHL = Operand{Kind: OperandIndirect, Name: "HL"}
	opHLI = Operand{Kind: OperandHLIncrement}
	opHLD = Operand{Kind: OperandHLDecrement}
	opIC  = Operand{Kind: OperandZeroPageC}
	opSPR = Operand{Kind: OperandSPOffset}
)

// registerOperand returns the operand for the register with the
// given opcode index.
func registerOperand(index uint8) Operand {
	if index == 6 {
		return opIHL
	}
	return Operand{Kind: OperandRegister, Name: registerNames[index]}
}

// conditionOperand returns the condition operand encoded in bits 3-4
// of the opcode.
func conditionOperand(opcode uint8) Operand {
	return Operand{Kind: OperandCondition, Name: [4]string{"NZ", "Z", "NC", "C"}[opcode>>3&0x3]}
}

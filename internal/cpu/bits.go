package cpu

import "github.com/thelolagemann/gbcore/internal/types"

// rotateLeftCarry rotates n left by 1 bit. Bit 7 is copied to
// both bit 0 and the carry flag.
//
//	RLC n
//	n = A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 7 data.
func (c *CPU) rotateLeftCarry(n uint8) uint8 {
	result := n<<1 | n>>7
	c.setFlags(result == 0, false, false, n&types.Bit7 != 0)
	return result
}

// rotateRightCarry rotates n right by 1 bit. Bit 0 is copied to
// both bit 7 and the carry flag.
//
//	RRC n
//	n = A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 0 data.
func (c *CPU) rotateRightCarry(n uint8) uint8 {
	result := n>>1 | n<<7
	c.setFlags(result == 0, false, false, n&types.Bit0 != 0)
	return result
}

// rotateLeftThroughCarry rotates n left through the carry flag.
//
//	RL n
//	n = A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 7 data.
func (c *CPU) rotateLeftThroughCarry(n uint8) uint8 {
	result := n << 1
	if c.isFlagSet(FlagCarry) {
		result |= types.Bit0
	}
	c.setFlags(result == 0, false, false, n&types.Bit7 != 0)
	return result
}

// rotateRightThroughCarry rotates n right through the carry flag.
//
//	RR n
//	n = A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 0 data.
func (c *CPU) rotateRightThroughCarry(n uint8) uint8 {
	result := n >> 1
	if c.isFlagSet(FlagCarry) {
		result |= types.Bit7
	}
	c.setFlags(result == 0, false, false, n&types.Bit0 != 0)
	return result
}

// shiftLeftArithmetic shifts n left into the carry flag. Bit 0 is reset.
//
//	SLA n
//	n = A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 7 data.
func (c *CPU) shiftLeftArithmetic(n uint8) uint8 {
	result := n << 1
	c.setFlags(result == 0, false, false, n&types.Bit7 != 0)
	return result
}

// shiftRightArithmetic shifts n right into the carry flag. Bit 7 is
// unchanged.
//
//	SRA n
//	n = A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 0 data.
func (c *CPU) shiftRightArithmetic(n uint8) uint8 {
	result := n&types.Bit7 | n>>1
	c.setFlags(result == 0, false, false, n&types.Bit0 != 0)
	return result
}

// shiftRightLogical shifts n right into the carry flag. Bit 7 is reset.
//
//	SRL n
//	n = A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 0 data.
func (c *CPU) shiftRightLogical(n uint8) uint8 {
	result := n >> 1
	c.setFlags(result == 0, false, false, n&types.Bit0 != 0)
	return result
}

// swap swaps the upper and lower nibbles of n.
//
//	SWAP n
//	n = A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Reset.
func (c *CPU) swap(n uint8) uint8 {
	result := n<<4 | n>>4
	c.setFlags(result == 0, false, false, false)
	return result
}

// testBit tests bit b of n.
//
//	BIT b, n
//	b = 0 - 7, n = A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if bit b of n is 0.
//	N - Reset.
//	H - Set.
//	C - Not affected.
func (c *CPU) testBit(n uint8, b uint8) {
	c.setFlags(n&(1<<b) == 0, false, true, c.isFlagSet(FlagCarry))
}

// The accumulator rotates behave as their CB counterparts, except
// that the zero flag is always reset.

func (c *CPU) rotateLeftCarryAccumulator() {
	c.A = c.rotateLeftCarry(c.A)
	c.clearFlag(FlagZero)
}

func (c *CPU) rotateRightCarryAccumulator() {
	c.A = c.rotateRightCarry(c.A)
	c.clearFlag(FlagZero)
}

func (c *CPU) rotateLeftAccumulatorThroughCarry() {
	c.A = c.rotateLeftThroughCarry(c.A)
	c.clearFlag(FlagZero)
}

func (c *CPU) rotateRightAccumulatorThroughCarry() {
	c.A = c.rotateRightThroughCarry(c.A)
	c.clearFlag(FlagZero)
}

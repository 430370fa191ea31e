package cpu

import "github.com/thelolagemann/gbcore/internal/types"

// Flag is a bit of the F register.
type Flag = uint8

const (
	// FlagZero is set when the result of an operation is zero.
	FlagZero Flag = types.Bit7
	// FlagSubtract is set when the last operation was a subtraction.
	FlagSubtract Flag = types.Bit6
	// FlagHalfCarry is set on a carry from bit 3 (bit 11 for 16-bit adds).
	FlagHalfCarry Flag = types.Bit5
	// FlagCarry is set on a carry from bit 7 (bit 15), or a borrow.
	FlagCarry Flag = types.Bit4
)

// setFlags sets all four flags at once.
func (c *CPU) setFlags(zero, subtract, halfCarry, carry bool) {
	c.F = 0
	if zero {
		c.F |= FlagZero
	}
	if subtract {
		c.F |= FlagSubtract
	}
	if halfCarry {
		c.F |= FlagHalfCarry
	}
	if carry {
		c.F |= FlagCarry
	}
}

// setFlag sets the given flag.
func (c *CPU) setFlag(flag Flag) {
	c.F |= flag
}

// clearFlag clears the given flag.
func (c *CPU) clearFlag(flag Flag) {
	c.F &^= flag
}

// isFlagSet returns true if the given flag is set.
func (c *CPU) isFlagSet(flag Flag) bool {
	return c.F&flag != 0
}

// shouldZeroFlag sets FlagZero if the given value is 0, and
// clears it otherwise.
func (c *CPU) shouldZeroFlag(value uint8) {
	if value == 0 {
		c.setFlag(FlagZero)
	} else {
		c.clearFlag(FlagZero)
	}
}

package cpu

// readRegister returns the value of the register with the given
// opcode index, reading memory at (HL) for index 6.
func (c *CPU) readRegister(index uint8) uint8 {
	if index == 6 {
		return c.readByte(c.HL.Uint16())
	}
	return *c.registerPointers[index]
}

// writeRegister sets the register with the given opcode index,
// writing memory at (HL) for index 6.
func (c *CPU) writeRegister(index uint8, value uint8) {
	if index == 6 {
		c.writeByte(c.HL.Uint16(), value)
		return
	}
	*c.registerPointers[index] = value
}

// loadRegister16 loads the 16-bit immediate value into the register pair.
//
//	LD nn, d16
//	nn = BC, DE, HL
func (c *CPU) loadRegister16(pair *RegisterPair) {
	pair.SetUint16(c.readOperand16())
}

// loadHLIncrement returns HL, and increments it.
func (c *CPU) loadHLIncrement() uint16 {
	hl := c.HL.Uint16()
	c.HL.SetUint16(hl + 1)
	return hl
}

// loadHLDecrement returns HL, and decrements it.
func (c *CPU) loadHLDecrement() uint16 {
	hl := c.HL.Uint16()
	c.HL.SetUint16(hl - 1)
	return hl
}

// incrementNN increments the register pair. The 16-bit increment
// takes an internal cycle and leaves the flags untouched.
//
//	INC nn
//	nn = BC, DE, HL
func (c *CPU) incrementNN(pair *RegisterPair) {
	pair.SetUint16(pair.Uint16() + 1)
	c.tickCycle()
}

// decrementNN decrements the register pair.
//
//	DEC nn
//	nn = BC, DE, HL
func (c *CPU) decrementNN(pair *RegisterPair) {
	pair.SetUint16(pair.Uint16() - 1)
	c.tickCycle()
}

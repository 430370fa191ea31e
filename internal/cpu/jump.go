package cpu

// push pushes a 16-bit value onto the stack, high byte first. Pushing
// takes an internal cycle before the two writes.
func (c *CPU) push(high, low uint8) {
	c.tickCycle()
	c.SP--
	c.writeByte(c.SP, high)
	c.SP--
	c.writeByte(c.SP, low)
}

// pop pops a 16-bit value off the stack.
func (c *CPU) pop() uint16 {
	low := c.readByte(c.SP)
	c.SP++
	high := c.readByte(c.SP)
	c.SP++
	return uint16(high)<<8 | uint16(low)
}

// condition returns the state of the condition encoded in bits 3-4 of
// a conditional jump, call or return opcode.
//
//	00 - NZ
//	01 - Z
//	10 - NC
//	11 - C
func (c *CPU) condition(opcode uint8) bool {
	var f bool
	if opcode&0x10 == 0 {
		f = c.isFlagSet(FlagZero)
	} else {
		f = c.isFlagSet(FlagCarry)
	}
	if opcode&0x08 == 0 {
		return !f
	}
	return f
}

// jumpAbsolute jumps to the 16-bit immediate address, if condition
// is true.
//
//	JP nn
//	JP cc, nn
//
// Not taken: 3 cycles, taken: 4 cycles.
func (c *CPU) jumpAbsolute(condition bool) {
	address := c.readOperand16()
	if condition {
		c.PC = address
		c.tickCycle()
	}
}

// jumpRelative adds the signed 8-bit immediate value to the PC, if
// condition is true.
//
//	JR e
//	JR cc, e
//
// Not taken: 2 cycles, taken: 3 cycles.
func (c *CPU) jumpRelative(condition bool) {
	offset := int8(c.readOperand())
	if condition {
		c.PC = uint16(int32(c.PC) + int32(offset))
		c.tickCycle()
	}
}

// call pushes the address of the next instruction onto the stack
// and jumps to the 16-bit immediate address, if condition is true.
//
//	CALL nn
//	CALL cc, nn
//
// Not taken: 3 cycles, taken: 6 cycles.
func (c *CPU) call(condition bool) {
	address := c.readOperand16()
	if condition {
		c.push(uint8(c.PC>>8), uint8(c.PC))
		c.PC = address
	}
}

// ret pops the return address off the stack, and jumps to it.
//
//	RET
//
// 4 cycles.
func (c *CPU) ret() {
	c.PC = c.pop()
	c.tickCycle()
}

// retConditional returns if condition is true. Evaluating the
// condition takes an internal cycle.
//
//	RET cc
//
// Not taken: 2 cycles, taken: 5 cycles.
func (c *CPU) retConditional(condition bool) {
	c.tickCycle()
	if condition {
		c.ret()
	}
}

// rst pushes the current PC onto the stack, and jumps to the
// given vector.
//
//	RST n
//	n = 0x00, 0x08, 0x10, 0x18, 0x20, 0x28, 0x30, 0x38
func (c *CPU) rst(vector uint16) {
	c.push(uint8(c.PC>>8), uint8(c.PC))
	c.PC = vector
}

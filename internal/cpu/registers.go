package cpu

// Register represents a single 8-bit register of the CPU.
type Register = uint8

// RegisterPair represents a pair of 8-bit registers, that can be
// accessed as a single 16-bit register. The pair aliases the two
// registers, so a write to either half is visible through the pair.
type RegisterPair struct {
	High *Register
	Low  *Register

	// lowMask is applied to the low register on 16-bit writes,
	// used by AF to keep the lower nibble of F clear.
	lowMask uint8
}

// Uint16 returns the value of the register pair.
func (r *RegisterPair) Uint16() uint16 {
	return uint16(*r.High)<<8 | uint16(*r.Low)
}

// SetUint16 sets the value of the register pair.
func (r *RegisterPair) SetUint16(value uint16) {
	*r.High = uint8(value >> 8)
	*r.Low = uint8(value) & r.lowMask
}

// Registers holds the 8-bit registers of the CPU, and the
// register pairs that alias them.
type Registers struct {
	A Register
	B Register
	C Register
	D Register
	E Register
	F Register
	H Register
	L Register

	BC *RegisterPair
	DE *RegisterPair
	HL *RegisterPair
	AF *RegisterPair

	// registerPointers maps the 3-bit register index of an
	// opcode to its register. Index 6 is (HL) and is nil.
	registerPointers [8]*Register
}

func (r *Registers) init() {
	r.BC = &RegisterPair{High: &r.B, Low: &r.C, lowMask: 0xFF}
	r.DE = &RegisterPair{High: &r.D, Low: &r.E, lowMask: 0xFF}
	r.HL = &RegisterPair{High: &r.H, Low: &r.L, lowMask: 0xFF}
	r.AF = &RegisterPair{High: &r.A, Low: &r.F, lowMask: 0xF0}

	r.registerPointers = [8]*Register{&r.B, &r.C, &r.D, &r.E, &r.H, &r.L, nil, &r.A}
}

// registerNames are the names of the registers, indexed as in
// an opcode.
var registerNames = [8]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}

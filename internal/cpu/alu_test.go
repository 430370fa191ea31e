package cpu

import (
	"testing"

	"github.com/thelolagemann/gbcore/internal/types"
)

// flagString formats the flags as in "Z-HC".
func flagString(f uint8) string {
	s := []byte("----")
	for i, c := range "ZNHC" {
		if f&(types.Bit7>>i) != 0 {
			s[i] = byte(c)
		}
	}
	return string(s)
}

func TestCPU_ALU(t *testing.T) {
	for _, tt := range []struct {
		name   string
		a, n   uint8
		flags  uint8 // flags before the operation
		fn     func(c *CPU, n uint8)
		result uint8
		want   uint8 // flags after the operation
	}{
		{"ADD", 0x3A, 0xC6, 0, func(c *CPU, n uint8) { c.add(n, false) }, 0x00, FlagZero | FlagHalfCarry | FlagCarry},
		{"ADD half carry", 0x0F, 0x01, 0, func(c *CPU, n uint8) { c.add(n, false) }, 0x10, FlagHalfCarry},
		{"ADC", 0xE1, 0x0F, FlagCarry, func(c *CPU, n uint8) { c.add(n, true) }, 0xF1, FlagHalfCarry},
		{"ADC carry in half carry", 0x0E, 0x01, FlagCarry, func(c *CPU, n uint8) { c.add(n, true) }, 0x10, FlagHalfCarry},
		{"SUB", 0x3E, 0x3E, 0, func(c *CPU, n uint8) { c.sub(n, false) }, 0x00, FlagZero | FlagSubtract},
		{"SUB borrow", 0x3E, 0x40, 0, func(c *CPU, n uint8) { c.sub(n, false) }, 0xFE, FlagSubtract | FlagCarry},
		{"SBC", 0x3B, 0x2A, FlagCarry, func(c *CPU, n uint8) { c.sub(n, true) }, 0x10, FlagSubtract},
		{"SBC half borrow", 0x3B, 0x4F, FlagCarry, func(c *CPU, n uint8) { c.sub(n, true) }, 0xEB, FlagSubtract | FlagHalfCarry | FlagCarry},
		{"AND", 0x5A, 0x3F, FlagCarry, (*CPU).and, 0x1A, FlagHalfCarry},
		{"OR", 0x00, 0x00, FlagCarry, (*CPU).or, 0x00, FlagZero},
		{"XOR", 0xFF, 0x0F, 0, (*CPU).xor, 0xF0, 0},
		{"CP", 0x3C, 0x40, 0, (*CPU).compare, 0x3C, FlagSubtract | FlagCarry},
		{"CP equal", 0x3C, 0x3C, 0, (*CPU).compare, 0x3C, FlagZero | FlagSubtract},
	} {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCPU(t, types.DMGABC)
			c.A, c.F = tt.a, tt.flags
			tt.fn(c, tt.n)
			if c.A != tt.result {
				t.Errorf("expected 0x%02X in A, got 0x%02X", tt.result, c.A)
			}
			if c.F != tt.want {
				t.Errorf("expected flags %s, got %s", flagString(tt.want), flagString(c.F))
			}
		})
	}
}

func TestCPU_IncrementDecrement(t *testing.T) {
	for _, tt := range []struct {
		name   string
		n      uint8
		flags  uint8
		inc    bool
		result uint8
		want   uint8
	}{
		{"INC", 0x01, 0, true, 0x02, 0},
		{"INC overflow", 0xFF, FlagCarry, true, 0x00, FlagZero | FlagHalfCarry | FlagCarry},
		{"INC half carry", 0x0F, 0, true, 0x10, FlagHalfCarry},
		{"DEC", 0x02, FlagCarry, false, 0x01, FlagSubtract | FlagCarry},
		{"DEC zero", 0x01, 0, false, 0x00, FlagZero | FlagSubtract},
		{"DEC half borrow", 0x10, 0, false, 0x0F, FlagSubtract | FlagHalfCarry},
		{"DEC underflow", 0x00, 0, false, 0xFF, FlagSubtract | FlagHalfCarry},
	} {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCPU(t, types.DMGABC)
			c.F = tt.flags
			var result uint8
			if tt.inc {
				result = c.increment(tt.n)
			} else {
				result = c.decrement(tt.n)
			}
			if result != tt.result {
				t.Errorf("expected 0x%02X, got 0x%02X", tt.result, result)
			}
			if c.F != tt.want {
				t.Errorf("expected flags %s, got %s", flagString(tt.want), flagString(c.F))
			}
		})
	}
}

func TestCPU_DAA(t *testing.T) {
	for _, tt := range []struct {
		name   string
		a, n   uint8
		add    bool
		result uint8
		want   uint8
	}{
		{"45+38", 0x45, 0x38, true, 0x83, 0},
		{"99+01", 0x99, 0x01, true, 0x00, FlagZero | FlagCarry},
		{"42-15", 0x42, 0x15, false, 0x27, FlagSubtract},
		{"10-20", 0x10, 0x20, false, 0x90, FlagSubtract | FlagCarry},
	} {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCPU(t, types.DMGABC)
			c.A, c.F = tt.a, 0
			if tt.add {
				c.add(tt.n, false)
			} else {
				c.sub(tt.n, false)
			}
			c.daa()
			if c.A != tt.result {
				t.Errorf("expected 0x%02X in A, got 0x%02X", tt.result, c.A)
			}
			if c.F != tt.want {
				t.Errorf("expected flags %s, got %s", flagString(tt.want), flagString(c.F))
			}
		})
	}
}

func TestCPU_Arithmetic16(t *testing.T) {
	t.Run("ADD HL", func(t *testing.T) {
		// ADD HL, BC; ADD HL, DE
		c := newTestCPU(t, types.DMGABC, 0x09, 0x19)
		c.F = FlagZero
		c.HL.SetUint16(0x0FFF)
		c.BC.SetUint16(0x0001)
		c.DE.SetUint16(0xF000)

		c.Step()
		if c.HL.Uint16() != 0x1000 || c.F != FlagZero|FlagHalfCarry {
			t.Errorf("expected 0x1000 Z-H-, got 0x%04X %s", c.HL.Uint16(), flagString(c.F))
		}
		c.Step()
		if c.HL.Uint16() != 0x0000 || c.F != FlagZero|FlagCarry {
			t.Errorf("expected 0x0000 Z--C, got 0x%04X %s", c.HL.Uint16(), flagString(c.F))
		}
	})
	t.Run("ADD SP", func(t *testing.T) {
		// ADD SP, 8; ADD SP, -1
		c := newTestCPU(t, types.DMGABC, 0xE8, 0x08, 0xE8, 0xFF)
		c.SP = 0xFFF8
		c.Step()
		if c.SP != 0x0000 || c.F != FlagHalfCarry|FlagCarry {
			t.Errorf("expected 0x0000 --HC, got 0x%04X %s", c.SP, flagString(c.F))
		}
		c.Step()
		if c.SP != 0xFFFF || c.F != 0 {
			t.Errorf("expected 0xFFFF ----, got 0x%04X %s", c.SP, flagString(c.F))
		}
	})
	t.Run("LD HL, SP+r8", func(t *testing.T) {
		c := newTestCPU(t, types.DMGABC, 0xF8, 0xFE)
		c.SP = 0x1002
		c.Step()
		if c.HL.Uint16() != 0x1000 {
			t.Errorf("expected 0x1000 in HL, got 0x%04X", c.HL.Uint16())
		}
		if c.F != FlagHalfCarry|FlagCarry {
			t.Errorf("expected flags --HC, got %s", flagString(c.F))
		}
	})
}

func TestCPU_Bits(t *testing.T) {
	for _, tt := range []struct {
		name    string
		program []uint8
		a       uint8
		flags   uint8
		result  uint8
		want    uint8
	}{
		{"RLCA", []uint8{0x07}, 0x85, 0, 0x0B, FlagCarry},
		{"RLCA zero", []uint8{0x07}, 0x00, FlagZero, 0x00, 0},
		{"RRCA", []uint8{0x0F}, 0x01, 0, 0x80, FlagCarry},
		{"RLA", []uint8{0x17}, 0x80, 0, 0x00, FlagCarry},
		{"RRA", []uint8{0x1F}, 0x01, FlagCarry, 0x80, FlagCarry},
		{"RLC A", []uint8{0xCB, 0x07}, 0x00, 0, 0x00, FlagZero},
		{"RL A", []uint8{0xCB, 0x17}, 0x80, 0, 0x00, FlagZero | FlagCarry},
		{"SLA A", []uint8{0xCB, 0x27}, 0xFF, 0, 0xFE, FlagCarry},
		{"SRA A", []uint8{0xCB, 0x2F}, 0x8A, 0, 0xC5, 0},
		{"SWAP A", []uint8{0xCB, 0x37}, 0xF0, FlagCarry, 0x0F, 0},
		{"SRL A", []uint8{0xCB, 0x3F}, 0x01, 0, 0x00, FlagZero | FlagCarry},
		{"BIT 7,A", []uint8{0xCB, 0x7F}, 0x7F, FlagCarry, 0x7F, FlagZero | FlagHalfCarry | FlagCarry},
		{"BIT 0,A", []uint8{0xCB, 0x47}, 0x01, 0, 0x01, FlagHalfCarry},
		{"RES 0,A", []uint8{0xCB, 0x87}, 0xFF, 0, 0xFE, 0},
		{"SET 7,A", []uint8{0xCB, 0xFF}, 0x00, 0, 0x80, 0},
		{"CPL", []uint8{0x2F}, 0x35, 0, 0xCA, FlagSubtract | FlagHalfCarry},
		{"SCF", []uint8{0x37}, 0x00, FlagZero | FlagHalfCarry, 0x00, FlagZero | FlagCarry},
		{"CCF", []uint8{0x3F}, 0x00, FlagCarry | FlagSubtract, 0x00, 0},
	} {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCPU(t, types.DMGABC, tt.program...)
			c.A, c.F = tt.a, tt.flags
			c.Step()
			if c.A != tt.result {
				t.Errorf("expected 0x%02X in A, got 0x%02X", tt.result, c.A)
			}
			if c.F != tt.want {
				t.Errorf("expected flags %s, got %s", flagString(tt.want), flagString(c.F))
			}
		})
	}

	t.Run("(HL)", func(t *testing.T) {
		// SET 3, (HL); RLC (HL)
		c := newTestCPU(t, types.DMGABC, 0xCB, 0xDE, 0xCB, 0x06)
		c.mmu.Write(0xC100, 0x80)
		c.Step()
		c.Step()
		if got := c.mmu.Read(0xC100); got != 0x11 {
			t.Errorf("expected 0x11 at (HL), got 0x%02X", got)
		}
		if c.F != FlagCarry {
			t.Errorf("expected flags ---C, got %s", flagString(c.F))
		}
	})
}

// Package interrupts holds the IF and IE registers and the master
// enable of the SM83. The CPU polls it between instructions.
package interrupts

import (
	"math/bits"

	"github.com/thelolagemann/gbcore/internal/types"
)

// The five interrupt sources, as bits of IF and IE. Lower bits have
// higher priority, and bit n dispatches to 0x0040 + 8n.
const (
	VBlankFlag = types.Bit0 // LY reached 144
	LCDFlag    = types.Bit1 // a STAT condition became true
	TimerFlag  = types.Bit2 // TIMA overflowed and was reloaded
	SerialFlag = types.Bit3 // 8 bits were shifted
	JoypadFlag = types.Bit4 // a selected P1 input line went low
)

// sources masks the bits of IF and IE that name an interrupt.
const sources = 0x1F

// Service is owned by a single machine. Flag and Enable mirror IF and
// IE as the CPU sees them; IME gates dispatch but not the wake up from
// HALT or STOP.
type Service struct {
	Flag   uint8
	Enable uint8
	IME    bool
}

// NewService maps IF and IE onto regs. IF starts with VBlank requested,
// matching the state left by the boot ROM.
func NewService(regs *types.HardwareRegisters) *Service {
	s := &Service{Flag: VBlankFlag}
	regs.RegisterHardware(types.IF, func(v uint8) {
		s.Flag = v & sources
	}, func() uint8 {
		return s.Flag | ^uint8(sources)
	})
	// all 8 bits of IE are read/write, the upper 3 just do nothing
	regs.RegisterHardware(types.IE, func(v uint8) {
		s.Enable = v
	}, func() uint8 {
		return s.Enable
	})
	return s
}

// HasInterrupts reports whether any source is both requested and
// enabled, regardless of IME.
func (s *Service) HasInterrupts() bool {
	return s.Enable&s.Flag&sources != 0
}

// Request raises the given sources in IF.
func (s *Service) Request(flag uint8) {
	s.Flag |= flag & sources
}

// Vector acknowledges the highest priority pending interrupt, clearing
// it from IF, and returns its handler address. 0 means none.
func (s *Service) Vector() uint16 {
	pending := s.Enable & s.Flag & sources
	if pending == 0 {
		return 0
	}
	n := bits.TrailingZeros8(pending)
	s.Flag &^= 1 << n
	return 0x0040 + uint16(n)*8
}

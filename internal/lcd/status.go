package lcd

import "github.com/thelolagemann/gbcore/internal/types"

// Status represents the LCD status register (types.STAT).
//
//	Bit 6 - LYC=LY Coincidence Interrupt (1=Enable) (Read/Write)
//	Bit 5 - Mode 2 OAM Interrupt         (1=Enable) (Read/Write)
//	Bit 4 - Mode 1 V-Blank Interrupt     (1=Enable) (Read/Write)
//	Bit 3 - Mode 0 H-Blank Interrupt     (1=Enable) (Read/Write)
//	Bit 2 - Coincidence Flag  (0:LYC<>LY, 1:LYC=LY) (Read Only)
//	Bit 1-0 - Mode Flag                             (Read Only)
type Status struct {
	CoincidenceInterrupt bool
	OAMInterrupt         bool
	VBlankInterrupt      bool
	HBlankInterrupt      bool
	Coincidence          bool
	Mode                 Mode
}

// Write writes the writable bits of the status register.
func (s *Status) Write(value uint8) {
	s.CoincidenceInterrupt = value&types.Bit6 != 0
	s.OAMInterrupt = value&types.Bit5 != 0
	s.VBlankInterrupt = value&types.Bit4 != 0
	s.HBlankInterrupt = value&types.Bit3 != 0
}

// Read returns the value of the status register. Bit 7 always reads 1.
func (s *Status) Read() uint8 {
	value := types.Bit7 | s.Mode
	if s.CoincidenceInterrupt {
		value |= types.Bit6
	}
	if s.OAMInterrupt {
		value |= types.Bit5
	}
	if s.VBlankInterrupt {
		value |= types.Bit4
	}
	if s.HBlankInterrupt {
		value |= types.Bit3
	}
	if s.Coincidence {
		value |= types.Bit2
	}
	return value
}

// line returns the state of the STAT interrupt line. The interrupt
// is requested on a rising edge of the line.
func (s *Status) line() bool {
	return s.CoincidenceInterrupt && s.Coincidence ||
		s.HBlankInterrupt && s.Mode == HBlank ||
		s.VBlankInterrupt && s.Mode == VBlank ||
		s.OAMInterrupt && s.Mode == OAM
}

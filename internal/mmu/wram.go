package mmu

import "github.com/thelolagemann/gbcore/internal/types"

// WRAM is the work RAM of the Game Boy. The CGB has 8 banks of
// 4kB, of which bank 0 is fixed at 0xC000 - 0xCFFF, and banks
// 1-7 are switchable at 0xD000 - 0xDFFF through types.SVBK.
type WRAM struct {
	bank uint8
	raw  [8][0x1000]uint8
}

// NewWRAM returns a new WRAM. The SVBK register is only
// registered on the CGB.
func NewWRAM(regs *types.HardwareRegisters, cgb bool) *WRAM {
	w := &WRAM{
		bank: 1, // bank 1 is the default as the first bank is fixed
	}
	if cgb {
		regs.RegisterHardware(
			types.SVBK,
			func(v uint8) {
				v &= 0x07 // only 3 bits are used
				if v == 0 {
					v = 1
				}
				w.bank = v
			}, func() uint8 {
				return w.bank | 0xF8
			},
		)
	}
	return w
}

// Read returns the value at the given address, in the range
// 0xC000 - 0xFDFF. Echo RAM (0xE000 - 0xFDFF) mirrors 0xC000 - 0xDDFF.
func (w *WRAM) Read(addr uint16) uint8 {
	if addr&0x1000 == 0 {
		return w.raw[0][addr&0xFFF]
	}
	return w.raw[w.bank][addr&0xFFF]
}

// Write writes the value to the given address, in the range
// 0xC000 - 0xFDFF.
func (w *WRAM) Write(addr uint16, v uint8) {
	if addr&0x1000 == 0 {
		w.raw[0][addr&0xFFF] = v
		return
	}
	w.raw[w.bank][addr&0xFFF] = v
}

// Bank returns the switchable bank mapped at 0xD000 - 0xDFFF.
func (w *WRAM) Bank() uint8 {
	return w.bank
}

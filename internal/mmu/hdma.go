package mmu

import "github.com/thelolagemann/gbcore/internal/types"

// HDMA is the CGB VRAM DMA controller. A transfer copies blocks of 16
// bytes from ROM or RAM into the current VRAM bank, either all at once
// (general purpose DMA), or a single block per horizontal blank.
type HDMA struct {
	source      uint16
	destination uint16

	blocks uint8 // remaining 16 byte blocks
	active bool  // an HBlank transfer is in progress

	mmu *MMU
}

// NewHDMA returns a new HDMA controller, registering the HDMA1-5
// registers.
func NewHDMA(m *MMU, regs *types.HardwareRegisters) *HDMA {
	h := &HDMA{mmu: m}

	regs.RegisterHardware(
		types.HDMA1,
		func(v uint8) {
			h.source = h.source&0x00FF | uint16(v)<<8
		},
		types.NoRead,
	)
	regs.RegisterHardware(
		types.HDMA2,
		func(v uint8) {
			h.source = h.source&0xFF00 | uint16(v&0xF0)
		},
		types.NoRead,
	)
	regs.RegisterHardware(
		types.HDMA3,
		func(v uint8) {
			h.destination = h.destination&0x00FF | uint16(v&0x1F)<<8
		},
		types.NoRead,
	)
	regs.RegisterHardware(
		types.HDMA4,
		func(v uint8) {
			h.destination = h.destination&0xFF00 | uint16(v&0xF0)
		},
		types.NoRead,
	)
	regs.RegisterHardware(
		types.HDMA5,
		func(v uint8) {
			// writing bit 7 clear during an HBlank transfer stops it
			if h.active && v&types.Bit7 == 0 {
				h.active = false
				return
			}

			h.blocks = v&0x7F + 1
			if v&types.Bit7 == 0 {
				// general purpose DMA copies everything at once
				for h.blocks > 0 {
					h.copyBlock()
				}
				return
			}
			h.active = true
		},
		func() uint8 {
			if h.active {
				return h.blocks - 1
			}
			// 0xFF once a transfer has completed
			return types.Bit7 | (h.blocks - 1)
		},
	)

	return h
}

// copyBlock copies 16 bytes from the source to VRAM.
func (h *HDMA) copyBlock() {
	for i := 0; i < 16; i++ {
		h.mmu.vRAM[h.mmu.vRAMBank][h.destination&0x1FFF] = h.mmu.Read(h.source)
		h.source++
		h.destination++
	}
	h.blocks--
	if h.blocks == 0 {
		h.active = false
	}
}

// HBlank copies a single block if an HBlank transfer is active.
func (h *HDMA) HBlank() {
	if h.active {
		h.copyBlock()
	}
}

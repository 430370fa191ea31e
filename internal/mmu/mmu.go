// Package mmu provides the memory management unit of the Game Boy. The
// MMU owns all the addressable storage, and resolves a 16-bit address
// into a byte through the current bank select state. I/O registers are
// dispatched through the types.HardwareRegisters table, which the other
// components register themselves on.
package mmu

import (
	"github.com/thelolagemann/gbcore/internal/boot"
	"github.com/thelolagemann/gbcore/internal/cartridge"
	"github.com/thelolagemann/gbcore/internal/types"
	"github.com/thelolagemann/gbcore/pkg/log"
)

// MMU is the memory management unit for the Game Boy. It handles all
// memory reads and writes to the Game Boy's 64kB of memory.
type MMU struct {
	// 0x0000 - 0x00FF/0x0900 - BOOT ROM (256B/2304B)
	bootROM     *boot.ROM
	bootROMDone bool

	// 0x0000 - 0x7FFF - ROM (16kB + 16kB switchable)
	// 0xA000 - 0xBFFF - External RAM (8kB switchable)
	Cart cartridge.Cartridge
	// Patch, when set, may replace values read from cartridge ROM.
	Patch func(address uint16, value uint8) uint8

	// 0x8000 - 0x9FFF - Video RAM (8kB, 2 banks on CGB)
	vRAM     [2][0x2000]uint8
	vRAMBank uint8

	// 0xC000 - 0xDFFF - Work RAM (8kB, 7 switchable banks on CGB)
	// 0xE000 - 0xFDFF - Echo RAM (7.5kB)
	wRAM *WRAM

	// 0xFE00 - 0xFE9F - Sprite Attribute Table (160B)
	oam [0xA0]uint8

	// 0xFF00 - 0xFF7F - I/O Registers
	// 0xFFFF - Interrupt Enable
	registers *types.HardwareRegisters

	// 0xFF80 - 0xFFFE - High RAM (127B)
	hRAM [0x7F]uint8

	dma  uint8
	hdma *HDMA

	key0  uint8
	key1  uint8
	isGBC bool

	log log.Logger
}

// NewMMU returns a new MMU for the given model, registering its I/O
// registers on regs. CGB features (VRAM/WRAM banking, HDMA and speed
// switching) are only available when running in CGB mode.
func NewMMU(cart cartridge.Cartridge, regs *types.HardwareRegisters, model types.Model, logger log.Logger) *MMU {
	if logger == nil {
		logger = log.NewNullLogger()
	}
	m := &MMU{
		Cart:        cart,
		bootROMDone: true,
		dma:         0xFF,
		registers:   regs,
		isGBC:       model == types.CGBABC,
		log:         logger,
	}
	m.wRAM = NewWRAM(regs, m.isGBC)
	m.init()

	return m
}

func (m *MMU) init() {
	m.registers.RegisterHardware(
		types.BDIS,
		func(v uint8) {
			// it's assumed any write to this register will disable the boot rom
			if !m.bootROMDone && m.bootROM != nil {
				m.log.Debugf("boot rom disabled")
			}
			m.bootROMDone = true
		}, types.NoRead)

	m.registers.RegisterHardware(
		types.DMA,
		func(v uint8) {
			m.dma = v
			m.oamDMA(v)
		}, func() uint8 {
			return m.dma
		})

	// sound registers and wave RAM are plain storage
	for address := types.NR10; address <= types.WaveRAMEnd; address++ {
		switch {
		case address == 0xFF15, address == 0xFF1F, address > types.NR52 && address < 0xFF30:
			continue
		}
		m.registers.RegisterLatch(address, 0x00, 0x00)
	}

	if !m.isGBC {
		return
	}

	// CGB registers
	m.registers.RegisterHardware(
		types.KEY0,
		func(v uint8) {
			m.key0 = v & 0xF // only lower nibble is writable
		}, func() uint8 {
			return m.key0
		})
	m.registers.RegisterHardware(
		types.KEY1,
		func(v uint8) {
			m.key1 = m.key1&types.Bit7 | v&types.Bit0 // only lower bit is writable
		}, func() uint8 {
			return m.key1 | 0x7E // unused bits are always set
		})
	m.registers.RegisterHardware(
		types.VBK,
		func(v uint8) {
			m.vRAMBank = v & types.Bit0
		}, func() uint8 {
			return m.vRAMBank | 0xFE
		})
	m.registers.RegisterLatch(types.RP, 0x00, 0x3C)
	m.registers.RegisterHardware(types.PCM12, nil, func() uint8 { return 0 })
	m.registers.RegisterHardware(types.PCM34, nil, func() uint8 { return 0 })

	m.hdma = NewHDMA(m, m.registers)
}

// SetBootROM maps the boot ROM over the cartridge, until it is
// disabled by a write to types.BDIS.
func (m *MMU) SetBootROM(rom *boot.ROM) {
	m.bootROM = rom
	m.bootROMDone = rom == nil
}

// BootROMDone reports whether the boot ROM has been unmapped.
func (m *MMU) BootROMDone() bool {
	return m.bootROMDone
}

// IsGBC reports whether the MMU is running in CGB mode.
func (m *MMU) IsGBC() bool {
	return m.isGBC
}

// SpeedSwitchArmed reports whether a speed switch has been requested
// through types.KEY1, to be performed by the next STOP.
func (m *MMU) SpeedSwitchArmed() bool {
	return m.isGBC && m.key1&types.Bit0 != 0
}

// SetDoubleSpeed completes a speed switch, reflecting the current speed
// in bit 7 of types.KEY1 and disarming the switch.
func (m *MMU) SetDoubleSpeed(double bool) {
	m.key1 = 0
	if double {
		m.key1 = types.Bit7
	}
}

// HBlank signals the start of a horizontal blank, during which
// an active HDMA transfer copies a single block.
func (m *MMU) HBlank() {
	if m.hdma != nil {
		m.hdma.HBlank()
	}
}

// Read returns the value at the given address. It handles all the memory
// banks, mirroring, I/O, etc.
func (m *MMU) Read(address uint16) uint8 {
	switch {
	case address < 0x8000:
		if !m.bootROMDone && m.bootROM.Maps(address) {
			return m.bootROM.Read(address)
		}
		if m.Patch != nil {
			return m.Patch(address, m.Cart.Read(address))
		}
		return m.Cart.Read(address)
	case address < 0xA000:
		return m.vRAM[m.vRAMBank][address&0x1FFF]
	case address < 0xC000:
		return m.Cart.Read(address)
	case address < 0xFE00:
		return m.wRAM.Read(address)
	case address < 0xFEA0:
		return m.oam[address-0xFE00]
	case address < 0xFF00:
		// unusable memory
		return 0xFF
	case address < 0xFF80, address == types.IE:
		return m.registers.Read(address)
	default:
		return m.hRAM[address-0xFF80]
	}
}

// Write writes the value to the given address. Writes to the
// cartridge ROM area are intercepted by the memory bank controller.
func (m *MMU) Write(address uint16, value uint8) {
	switch {
	case address < 0x8000:
		m.Cart.Write(address, value)
	case address < 0xA000:
		m.vRAM[m.vRAMBank][address&0x1FFF] = value
	case address < 0xC000:
		m.Cart.Write(address, value)
	case address < 0xFE00:
		m.wRAM.Write(address, value)
	case address < 0xFEA0:
		m.oam[address-0xFE00] = value
	case address < 0xFF00:
		// unusable memory
	case address < 0xFF80, address == types.IE:
		m.registers.Write(address, value)
	default:
		m.hRAM[address-0xFF80] = value
	}
}

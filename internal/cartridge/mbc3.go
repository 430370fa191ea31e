package cartridge

import (
	"fmt"
)

// MemoryBankedCartridge3 represents a MBC3 cartridge. This cartridge type
// supports up to 2MB of ROM (128 banks), 32kB of RAM (4 banks) and
// optionally a real time clock (RTC).
type MemoryBankedCartridge3 struct {
	banks

	romBank uint8
	ramBank uint8 // 0x00 - 0x03 selects RAM, 0x08 - 0x0C selects an RTC register

	ramEnabled bool
	hasRTC     bool
	rtc        *rtc
	latch      uint8
}

// NewMemoryBankedCartridge3 returns a new MemoryBankedCartridge3 cartridge.
func NewMemoryBankedCartridge3(rom []byte, header *Header) *MemoryBankedCartridge3 {
	m := &MemoryBankedCartridge3{
		banks:   newBanks(rom, header, header.RAMSize),
		romBank: 1,
		rtc:     newRTC(),
		latch:   0xFF,
	}
	m.hasRTC = header.CartridgeType == MBC3TIMERBATT || header.CartridgeType == MBC3TIMERRAMBATT

	return m
}

// Read returns the value from the cartridges ROM, RAM or RTC registers,
// depending on the bank selected.
func (m *MemoryBankedCartridge3) Read(address uint16) uint8 {
	switch {
	case address < 0x4000:
		return m.readROM(0, address)
	case address < 0x8000:
		return m.readROM(m.ROMBank(), address)
	case address >= 0xA000 && address < 0xC000:
		if !m.ramEnabled {
			return 0xFF
		}
		if m.ramBank >= 0x08 && m.ramBank <= 0x0C {
			if m.hasRTC {
				return m.rtc.read(m.ramBank)
			}
			return 0xFF
		}
		return m.readRAM(m.RAMBank(), address)
	}

	return 0xFF
}

// Write attempts to switch the ROM or RAM bank, latch the RTC, or
// write to RAM or an RTC register.
func (m *MemoryBankedCartridge3) Write(address uint16, value uint8) {
	switch {
	case address < 0x2000:
		m.ramEnabled = value&0x0F == 0x0A
	case address < 0x4000:
		m.romBank = value & 0x7F
		if m.romBank == 0 {
			m.romBank = 1
		}
	case address < 0x6000:
		m.ramBank = value & 0x0F
	case address < 0x8000:
		// writing 0x00 then 0x01 latches the current time
		if m.latch == 0x00 && value == 0x01 && m.hasRTC {
			m.rtc.latch()
		}
		m.latch = value
	case address >= 0xA000 && address < 0xC000:
		if !m.ramEnabled {
			return
		}
		if m.ramBank >= 0x08 && m.ramBank <= 0x0C {
			if m.hasRTC {
				m.rtc.write(m.ramBank, value)
			}
			return
		}
		m.writeRAM(m.RAMBank(), address, value)
	}
}

func (m *MemoryBankedCartridge3) ROMBank() int {
	return int(m.romBank) % m.romBanks()
}

func (m *MemoryBankedCartridge3) RAMBank() int {
	if m.ramBank > 0x03 || m.ramBanks() == 0 {
		return 0
	}
	return int(m.ramBank) % m.ramBanks()
}

// Tick advances the RTC by a single machine cycle.
func (m *MemoryBankedCartridge3) Tick() {
	if m.hasRTC {
		m.rtc.tick()
	}
}

// SaveRAM returns the external RAM, followed by the RTC state when
// the cartridge has a clock.
func (m *MemoryBankedCartridge3) SaveRAM() []byte {
	data := m.banks.SaveRAM()
	if m.hasRTC {
		data = append(data, m.rtc.marshal()...)
	}
	return data
}

// LoadRAM loads the external RAM, and the RTC state if present. Saves
// without an RTC block are accepted, leaving the clock untouched.
func (m *MemoryBankedCartridge3) LoadRAM(data []byte) error {
	if m.hasRTC && len(data) == len(m.ram)+rtcSaveSize {
		if err := m.rtc.unmarshal(data[len(m.ram):]); err != nil {
			return fmt.Errorf("cartridge: loading rtc: %w", err)
		}
		data = data[:len(m.ram)]
	}
	return m.banks.LoadRAM(data)
}

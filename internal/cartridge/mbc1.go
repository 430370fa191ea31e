package cartridge

// MemoryBankedCartridge1 represents a MBC1 cartridge. This cartridge type
// supports up to 2MB of ROM (125 banks) and 32kB of RAM (4 banks).
//
// The 2 bit secondary bank register either selects the upper bits of the
// ROM bank, or the RAM bank, depending on the banking mode.
type MemoryBankedCartridge1 struct {
	banks

	bank1      uint8 // 5 bit ROM bank number (0x2000 - 0x3FFF)
	bank2      uint8 // 2 bit upper ROM / RAM bank number (0x4000 - 0x5FFF)
	mode       bool  // banking mode (0x6000 - 0x7FFF), true selects mode 1
	ramEnabled bool
}

// NewMemoryBankedCartridge1 returns a new MemoryBankedCartridge1 cartridge.
func NewMemoryBankedCartridge1(rom []byte, header *Header) *MemoryBankedCartridge1 {
	return &MemoryBankedCartridge1{
		banks: newBanks(rom, header, header.RAMSize),
		bank1: 1,
	}
}

// Read returns the value from the cartridges ROM or RAM, depending on the bank
// selected.
func (m *MemoryBankedCartridge1) Read(address uint16) uint8 {
	switch {
	case address < 0x4000:
		// in mode 1, the secondary bank register also applies to the first bank
		if m.mode {
			return m.readROM(int(m.bank2)<<5, address)
		}
		return m.readROM(0, address)
	case address < 0x8000:
		return m.readROM(m.ROMBank(), address)
	case address >= 0xA000 && address < 0xC000:
		if m.ramEnabled {
			return m.readRAM(m.RAMBank(), address)
		}
	}

	return 0xFF
}

// Write attempts to switch the ROM or RAM bank.
func (m *MemoryBankedCartridge1) Write(address uint16, value uint8) {
	switch {
	case address < 0x2000:
		m.ramEnabled = value&0x0F == 0x0A
	case address < 0x4000:
		// ROM bank number (lower 5 bits), 0 is treated as 1
		m.bank1 = value & 0x1F
		if m.bank1 == 0 {
			m.bank1 = 1
		}
	case address < 0x6000:
		m.bank2 = value & 0x03
	case address < 0x8000:
		m.mode = value&0x01 == 0x01
	case address >= 0xA000 && address < 0xC000:
		if m.ramEnabled {
			m.writeRAM(m.RAMBank(), address, value)
		}
	}
}

// ROMBank returns the ROM bank mapped at 0x4000 - 0x7FFF.
func (m *MemoryBankedCartridge1) ROMBank() int {
	return (int(m.bank2)<<5 | int(m.bank1)) % m.romBanks()
}

// RAMBank returns the RAM bank mapped at 0xA000 - 0xBFFF.
func (m *MemoryBankedCartridge1) RAMBank() int {
	if m.mode && m.ramBanks() > 0 {
		return int(m.bank2) % m.ramBanks()
	}
	return 0
}

package cartridge

// MemoryBankedCartridge2 represents a MBC2 cartridge. This cartridge type
// supports up to 256kB of ROM (16 banks), and has 512 x 4 bits of RAM
// built into the MBC itself.
type MemoryBankedCartridge2 struct {
	banks

	romBank    uint8
	ramEnabled bool
}

// NewMemoryBankedCartridge2 returns a new MemoryBankedCartridge2 cartridge.
func NewMemoryBankedCartridge2(rom []byte, header *Header) *MemoryBankedCartridge2 {
	return &MemoryBankedCartridge2{
		banks:   newBanks(rom, header, 512),
		romBank: 1,
	}
}

// Read returns the value from the cartridges ROM or RAM. The RAM only
// stores the lower nibble, the upper nibble reads as 1s. The 512 bytes
// of RAM are mirrored throughout 0xA000 - 0xBFFF.
func (m *MemoryBankedCartridge2) Read(address uint16) uint8 {
	switch {
	case address < 0x4000:
		return m.readROM(0, address)
	case address < 0x8000:
		return m.readROM(m.ROMBank(), address)
	case address >= 0xA000 && address < 0xC000:
		if m.ramEnabled {
			return m.ram[address&0x01FF] | 0xF0
		}
	}

	return 0xFF
}

// Write attempts to switch the ROM bank, or enable RAM. Bit 8 of the
// address determines which of the two is controlled.
func (m *MemoryBankedCartridge2) Write(address uint16, value uint8) {
	switch {
	case address < 0x4000:
		if address&0x0100 == 0 {
			m.ramEnabled = value&0x0F == 0x0A
		} else {
			m.romBank = value & 0x0F
			if m.romBank == 0 {
				m.romBank = 1
			}
		}
	case address >= 0xA000 && address < 0xC000:
		if m.ramEnabled {
			m.ram[address&0x01FF] = value & 0x0F
		}
	}
}

func (m *MemoryBankedCartridge2) ROMBank() int {
	return int(m.romBank) % m.romBanks()
}

func (m *MemoryBankedCartridge2) RAMBank() int { return 0 }

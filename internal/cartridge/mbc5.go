package cartridge

// MemoryBankedCartridge5 represents a MBC5 cartridge. This cartridge type
// supports up to 8MB of ROM (512 banks) and 128kB of RAM (16 banks). Unlike
// the earlier controllers, bank 0 can be mapped into the switchable area.
type MemoryBankedCartridge5 struct {
	banks

	romBank    uint16 // 9 bit ROM bank number
	ramBank    uint8
	ramEnabled bool
	rumble     bool
}

// NewMemoryBankedCartridge5 returns a new MemoryBankedCartridge5 cartridge.
func NewMemoryBankedCartridge5(rom []byte, header *Header) *MemoryBankedCartridge5 {
	m := &MemoryBankedCartridge5{
		banks:   newBanks(rom, header, header.RAMSize),
		romBank: 1,
	}
	switch header.CartridgeType {
	case MBC5RUMBLE, MBC5RUMBLERAM, MBC5RUMBLERAMBATT:
		m.rumble = true
	}
	return m
}

// Read returns the value from the cartridges ROM or RAM, depending on the bank
// selected.
func (m *MemoryBankedCartridge5) Read(address uint16) uint8 {
	switch {
	case address < 0x4000:
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
func (m *MemoryBankedCartridge5) Write(address uint16, value uint8) {
	switch {
	case address < 0x2000:
		m.ramEnabled = value&0x0F == 0x0A
	case address < 0x3000:
		m.romBank = m.romBank&0x100 | uint16(value)
	case address < 0x4000:
		m.romBank = m.romBank&0xFF | uint16(value&0x01)<<8
	case address < 0x6000:
		// bit 3 drives the rumble motor on rumble carts
		if m.rumble {
			m.ramBank = value & 0x07
		} else {
			m.ramBank = value & 0x0F
		}
	case address >= 0xA000 && address < 0xC000:
		if m.ramEnabled {
			m.writeRAM(m.RAMBank(), address, value)
		}
	}
}

func (m *MemoryBankedCartridge5) ROMBank() int {
	return int(m.romBank) % m.romBanks()
}

func (m *MemoryBankedCartridge5) RAMBank() int {
	if m.ramBanks() == 0 {
		return 0
	}
	return int(m.ramBank) % m.ramBanks()
}

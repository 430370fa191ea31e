package cartridge

// ROMCartridge represents a ROM cartridge. This cartridge type is the simplest
// cartridge type and has no MBC, optionally with up to 8kB of external RAM.
type ROMCartridge struct {
	banks
}

// NewROMCartridge returns a new ROM cartridge.
func NewROMCartridge(rom []byte, header *Header) *ROMCartridge {
	return &ROMCartridge{
		banks: newBanks(rom, header, header.RAMSize),
	}
}

// Read returns the value at the given address.
func (r *ROMCartridge) Read(address uint16) uint8 {
	if address < 0x8000 {
		return r.readROM(int(address>>14), address)
	}
	return r.readRAM(0, address)
}

// Write writes the value to the given address. Without an MBC,
// writes to the ROM area have no effect.
func (r *ROMCartridge) Write(address uint16, value uint8) {
	if address >= 0xA000 && address < 0xC000 {
		r.writeRAM(0, address, value)
	}
}

func (r *ROMCartridge) ROMBank() int { return 1 }

func (r *ROMCartridge) RAMBank() int { return 0 }

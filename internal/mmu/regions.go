package mmu

// Region identifies a block of storage, for the memory inspector.
type Region int

const (
	ROM Region = iota
	VRAM
	ExternalRAM
	WorkRAM
	OAM
	IO
	HRAM
)

var regionNames = map[Region]string{
	ROM:         "ROM",
	VRAM:        "VRAM",
	ExternalRAM: "ERAM",
	WorkRAM:     "WRAM",
	OAM:         "OAM",
	IO:          "IO",
	HRAM:        "HRAM",
}

func (r Region) String() string {
	return regionNames[r]
}

// ParseRegion returns the Region with the given name.
func ParseRegion(name string) (Region, bool) {
	for r, n := range regionNames {
		if n == name {
			return r, true
		}
	}
	return 0, false
}

// MemoryRegion returns a copy of the given bank of a region. Banks
// beyond the number present wrap around. The returned slice never
// aliases the MMU's storage.
func (m *MMU) MemoryRegion(region Region, bank int) []byte {
	if bank < 0 {
		bank = 0
	}
	var data []byte
	switch region {
	case ROM:
		return m.Cart.ROMRegion(bank)
	case ExternalRAM:
		return m.Cart.RAMRegion(bank)
	case VRAM:
		data = append(data, m.vRAM[bank%2][:]...)
	case WorkRAM:
		data = append(data, m.wRAM.raw[bank%8][:]...)
	case OAM:
		data = append(data, m.oam[:]...)
	case IO:
		data = make([]byte, 0x80)
		for i := range data {
			data[i] = m.registers.Read(0xFF00 + uint16(i))
		}
	case HRAM:
		data = append(data, m.hRAM[:]...)
	}
	return data
}

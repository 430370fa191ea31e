package mmu

// oamDMA copies 0xA0 bytes from value << 8 into OAM. Sources above
// 0xDFFF read from work RAM, as on hardware. The copy is instant.
func (m *MMU) oamDMA(value uint8) {
	if value >= 0xE0 {
		value -= 0x20
	}
	source := uint16(value) << 8
	for i := uint16(0); i < 0xA0; i++ {
		m.oam[i] = m.Read(source + i)
	}
}

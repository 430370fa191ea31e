// Package boot provides the boot ROM overlay. The boot ROM is mapped
// over the start of the cartridge until it is unmapped by a write to
// the types.BDIS register.
package boot

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
)

const (
	// DMGSize is the size of the DMG/MGB/SGB boot ROMs.
	DMGSize = 0x100
	// CGBSize is the size of the CGB boot ROM, which is mapped
	// to 0x0000 - 0x00FF and 0x0200 - 0x08FF.
	CGBSize = 0x900
)

// ErrInvalidLength is returned when a boot ROM is neither 256 nor
// 2304 bytes long.
var ErrInvalidLength = errors.New("boot: invalid boot rom length")

// ROM is a boot ROM, along with its MD5 checksum.
type ROM struct {
	raw      []byte
	checksum string
}

// LoadBootROM copies b into a new ROM. The length of b must match
// either DMGSize or CGBSize.
func LoadBootROM(b []byte) (*ROM, error) {
	if len(b) != DMGSize && len(b) != CGBSize {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLength, len(b))
	}

	sum := md5.Sum(b)
	raw := make([]byte, len(b))
	copy(raw, b)

	return &ROM{
		raw:      raw,
		checksum: hex.EncodeToString(sum[:]),
	}, nil
}

// Read returns the byte at the given address.
func (b *ROM) Read(addr uint16) byte {
	return b.raw[addr]
}

// Maps reports whether the boot ROM overlays the given address. The
// cartridge header (0x0100 - 0x01FF) is always visible.
func (b *ROM) Maps(addr uint16) bool {
	if addr < 0x100 {
		return true
	}
	return b.IsCGB() && addr >= 0x200 && addr < CGBSize
}

// IsCGB reports whether the boot ROM is a CGB boot ROM.
func (b *ROM) IsCGB() bool {
	return len(b.raw) == CGBSize
}

// Checksum returns the MD5 checksum of the boot rom.
func (b *ROM) Checksum() string {
	if b == nil {
		return ""
	}
	return b.checksum
}

// Model returns the name of the hardware the boot ROM was dumped
// from, as identified by its checksum.
func (b *ROM) Model() string {
	if b == nil {
		return "none"
	}
	if model, ok := knownBootROMChecksums[b.checksum]; ok {
		return model
	}
	return "unknown"
}

var knownBootROMChecksums = map[string]string{
	DMG0:    "Game Boy (DMG-0)",
	DMG:     "Game Boy (DMG-01)",
	MGB:     "Game Boy Pocket",
	SGB:     "Super Game Boy",
	SGB2:    "Super Game Boy 2",
	CGB0:    "Game Boy Color (CGB-0)",
	CGB:     "Game Boy Color (CGB-A/B/C/D/E)",
	CGB_AGB: "Game Boy Advance (AGB-001)",
}

// MD5 checksums of known boot ROM dumps.
const (
	DMG0    = "a8f84a0ac44da5d3f0ee19f9cea80a8c"
	DMG     = "32fbbd84168d3482956eb3c5051637f5"
	MGB     = "71a378e71ff30b2d8a1f02bf5c7896aa" // loads 0xFF into A
	SGB     = "d574d4f9c12f305074798f54c091a8b4"
	SGB2    = "e0430bca9925fb9882148fd2dc2418c1"
	CGB0    = "7c773f3c0b01cb73bca8e83227287b7f"
	CGB     = "dbfce9db9deaa2567f6a84fde55f9680"
	CGB_AGB = "e6cefb5f7d352fab6681989763917c73"
)

package types

import "strings"

type Model int // The Model used in emulation.

const (
	Unset  Model = iota // Unset - Model hasn't been set, determined by the cartridge
	DMGABC              // DMGABC - Standard Game Boy
	CGBABC              // CGBABC - Standard Game Boy Colour
	CGBDMG              // CGBDMG - Game Boy Colour running a DMG only cartridge
)

var ModelNames = map[Model]string{
	Unset:  "AUTO",
	DMGABC: "DMG",
	CGBABC: "CGB",
	CGBDMG: "CGB-DMG",
}

// StringToModel converts a string to a Model.
func StringToModel(s string) Model {
	for m, n := range ModelNames {
		if n == strings.ToUpper(s) {
			return m
		}
	}

	return Unset
}

func (m Model) String() string {
	return ModelNames[m]
}

// IsCGB reports whether the model is colour hardware, regardless
// of whether it is running in compatibility mode.
func (m Model) IsCGB() bool {
	return m == CGBABC || m == CGBDMG
}

// ModelRegisters - model specific starting CPU registers,
// in the order A, F, B, C, D, E, H, L.
var ModelRegisters = map[Model][]uint8{
	Unset:  {0x01, 0xB0, 0x00, 0x13, 0x00, 0xD8, 0x01, 0x4D}, // default to DMG registers
	DMGABC: {0x01, 0xB0, 0x00, 0x13, 0x00, 0xD8, 0x01, 0x4D},
	CGBABC: {0x11, 0x80, 0x00, 0x00, 0xFF, 0x56, 0x00, 0x0D},
	CGBDMG: {0x11, 0x80, 0x00, 0x00, 0x00, 0x08, 0x00, 0x7C},
}

// ModelDIV - model specific starting value of the internal divider.
var ModelDIV = map[Model]uint16{
	Unset:  0xABC9,
	DMGABC: 0xABC9,
	CGBABC: 0x2675,
	CGBDMG: 0x2675,
}

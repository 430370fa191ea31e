package cheats

import (
	"fmt"
	"strconv"
)

// A GameSharkCode consists of eight hex digits, formatted as
// ABCDGHEF. AB is the external RAM bank, CD is the new data and
// EFGH is the address.
type GameSharkCode struct {
	ExternalRAMBank uint8
	Address         uint16
	NewData         uint8
}

// ParseGameShark parses a code of the form ABCDGHEF. Only codes that
// write work RAM or high RAM are supported.
func ParseGameShark(code string) (GameSharkCode, error) {
	var c GameSharkCode
	if len(code) != 8 {
		return c, fmt.Errorf("invalid gameshark code %q", code)
	}

	ab, err := strconv.ParseUint(code[0:2], 16, 8)
	if err != nil {
		return c, err
	}
	cd, err := strconv.ParseUint(code[2:4], 16, 8)
	if err != nil {
		return c, err
	}
	// GHEF -> EFGH
	efgh, err := strconv.ParseUint(code[6:8]+code[4:6], 16, 16)
	if err != nil {
		return c, err
	}

	c.ExternalRAMBank = uint8(ab)
	c.NewData = uint8(cd)
	c.Address = uint16(efgh)

	if c.Address < 0xC000 || (c.Address >= 0xFE00 && c.Address < 0xFF80) {
		return c, fmt.Errorf("unsupported gameshark address 0x%04X", c.Address)
	}
	return c, nil
}

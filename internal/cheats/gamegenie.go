package cheats

import (
	"fmt"
	"strconv"
	"strings"
)

// A GameGenieCode consists of nine hex digits, formatted as
// ABC-DEF-GHI. AB is the new data, FCDE is the ROM address XORed
// by 0xF000 and GI is the old data, rotated right by 2 and XORed
// by 0xBA. H is unused.
type GameGenieCode struct {
	NewData uint8
	Address uint16
	OldData uint8
}

// ParseGameGenie parses a code of the form ABC-DEF-GHI.
func ParseGameGenie(code string) (GameGenieCode, error) {
	var c GameGenieCode
	if len(code) != 11 || code[3] != '-' || code[7] != '-' {
		return c, fmt.Errorf("invalid game genie code %q", code)
	}
	digits := strings.ReplaceAll(code, "-", "")

	ab, err := strconv.ParseUint(digits[0:2], 16, 8)
	if err != nil {
		return c, err
	}
	// CDEF -> FCDE
	fcde, err := strconv.ParseUint(digits[5:6]+digits[2:5], 16, 16)
	if err != nil {
		return c, err
	}
	gi, err := strconv.ParseUint(digits[6:7]+digits[8:9], 16, 8)
	if err != nil {
		return c, err
	}

	c.NewData = uint8(ab)
	c.Address = uint16(fcde) ^ 0xF000
	c.OldData = (uint8(gi)>>2 | uint8(gi)<<6) ^ 0xBA
	return c, nil
}

func (c GameGenieCode) String() string {
	return fmt.Sprintf("%04X: %02X -> %02X", c.Address, c.OldData, c.NewData)
}

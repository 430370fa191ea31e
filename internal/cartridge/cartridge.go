// Package cartridge provides a Cartridge interface for the DMG and CGB.
// The cartridge holds the game ROM and any external RAM, along with the
// memory bank controller (mapper) that switches between them.
package cartridge

import (
	"errors"
	"fmt"
)

const (
	romBankSize = 0x4000
	ramBankSize = 0x2000
)

var (
	// ErrEmptyROM is returned when attempting to create a cartridge
	// without any ROM data.
	ErrEmptyROM = errors.New("cartridge: empty rom")
	// ErrUnsupported is returned when the cartridge uses a memory
	// bank controller that is not emulated.
	ErrUnsupported = errors.New("cartridge: unsupported cartridge type")
	// ErrRAMSize is returned when loading external RAM whose size
	// differs from the size of the cartridge RAM. The RAM that
	// fits is still loaded.
	ErrRAMSize = errors.New("cartridge: ram size mismatch")
)

// Cartridge represents a basic game cartridge.
type Cartridge interface {
	// Read returns the value at the given address, which is
	// in the range 0x0000 - 0x7FFF or 0xA000 - 0xBFFF.
	Read(address uint16) uint8
	// Write writes to the given address. Writes to the ROM
	// area are intercepted by the memory bank controller.
	Write(address uint16, value uint8)

	Header() *Header

	// ROMBank returns the ROM bank mapped at 0x4000 - 0x7FFF.
	ROMBank() int
	// RAMBank returns the RAM bank mapped at 0xA000 - 0xBFFF.
	RAMBank() int

	// ROMRegion returns a copy of the given ROM bank.
	ROMRegion(bank int) []byte
	// RAMRegion returns a copy of the given RAM bank, or nil
	// if the cartridge has no RAM.
	RAMRegion(bank int) []byte
}

// BatteryBacked is implemented by cartridges whose external RAM
// (and clock) survives power cycles.
type BatteryBacked interface {
	// SaveRAM returns a copy of the persistent data of the cartridge.
	SaveRAM() []byte
	// LoadRAM restores the persistent data of the cartridge.
	LoadRAM(data []byte) error
}

// Clocked is implemented by cartridges with hardware that runs
// in real time, such as the MBC3 RTC. Tick is called once every
// 4 oscillator ticks at normal speed.
type Clocked interface {
	Tick()
}

// NewCartridge creates a new cartridge from the given ROM. ROM data
// that is shorter than the header declares is padded, and bank
// indices are reduced modulo the number of banks actually present,
// so a malformed ROM never fails to load.
func NewCartridge(rom []byte) (Cartridge, error) {
	if len(rom) == 0 {
		return nil, ErrEmptyROM
	}

	// a cartridge is at least 2 banks, and is made up of whole banks
	size := len(rom)
	if size < 2*romBankSize {
		size = 2 * romBankSize
	}
	if size%romBankSize != 0 {
		size += romBankSize - size%romBankSize
	}
	if size != len(rom) {
		padded := make([]byte, size)
		copy(padded, rom)
		rom = padded
	}

	// parse the cartridge header (0x0100 - 0x014F)
	header := parseHeader(rom[0x100:0x150])

	switch header.CartridgeType {
	case ROM, ROMRAM, ROMRAMBATT:
		return NewROMCartridge(rom, header), nil
	case MBC1, MBC1RAM, MBC1RAMBATT:
		return NewMemoryBankedCartridge1(rom, header), nil
	case MBC2, MBC2BATT:
		return NewMemoryBankedCartridge2(rom, header), nil
	case MBC3, MBC3RAM, MBC3RAMBATT, MBC3TIMERBATT, MBC3TIMERRAMBATT:
		return NewMemoryBankedCartridge3(rom, header), nil
	case MBC5, MBC5RAM, MBC5RAMBATT, MBC5RUMBLE, MBC5RUMBLERAM, MBC5RUMBLERAMBATT:
		return NewMemoryBankedCartridge5(rom, header), nil
	}

	return nil, fmt.Errorf("%w: %s", ErrUnsupported, header.CartridgeType)
}

// banks holds the ROM and RAM of a cartridge, and resolves
// bank relative addresses into them.
type banks struct {
	rom []byte
	ram []byte

	header *Header
}

func newBanks(rom []byte, header *Header, ramSize uint) banks {
	return banks{
		rom:    rom,
		ram:    make([]byte, ramSize),
		header: header,
	}
}

func (b *banks) Header() *Header {
	return b.header
}

// romBanks returns the number of 16kB ROM banks.
func (b *banks) romBanks() int {
	return len(b.rom) / romBankSize
}

// ramBanks returns the number of 8kB RAM banks, with a partial
// bank (such as 2kB of RAM) counting as a bank.
func (b *banks) ramBanks() int {
	return (len(b.ram) + ramBankSize - 1) / ramBankSize
}

// readROM reads from the given ROM bank, wrapping the bank around
// the number of banks present.
func (b *banks) readROM(bank int, address uint16) uint8 {
	bank %= b.romBanks()
	return b.rom[bank*romBankSize+int(address&0x3FFF)]
}

// ramOffset returns the offset into RAM for the given bank and
// address, or -1 if the cartridge has no RAM.
func (b *banks) ramOffset(bank int, address uint16) int {
	if len(b.ram) == 0 {
		return -1
	}
	bank %= b.ramBanks()
	return (bank*ramBankSize + int(address&0x1FFF)) % len(b.ram)
}

func (b *banks) readRAM(bank int, address uint16) uint8 {
	if offset := b.ramOffset(bank, address); offset >= 0 {
		return b.ram[offset]
	}
	return 0xFF
}

func (b *banks) writeRAM(bank int, address uint16, value uint8) {
	if offset := b.ramOffset(bank, address); offset >= 0 {
		b.ram[offset] = value
	}
}

func (b *banks) ROMRegion(bank int) []byte {
	bank %= b.romBanks()
	data := make([]byte, romBankSize)
	copy(data, b.rom[bank*romBankSize:])
	return data
}

func (b *banks) RAMRegion(bank int) []byte {
	if len(b.ram) == 0 {
		return nil
	}
	start := bank % b.ramBanks() * ramBankSize
	end := start + ramBankSize
	if end > len(b.ram) {
		end = len(b.ram)
	}
	data := make([]byte, end-start)
	copy(data, b.ram[start:end])
	return data
}

// SaveRAM returns a copy of the external RAM.
func (b *banks) SaveRAM() []byte {
	data := make([]byte, len(b.ram))
	copy(data, b.ram)
	return data
}

// LoadRAM loads the external RAM from the given data.
func (b *banks) LoadRAM(data []byte) error {
	copy(b.ram, data)
	if len(data) != len(b.ram) {
		return fmt.Errorf("%w: expected %d bytes, got %d", ErrRAMSize, len(b.ram), len(data))
	}
	return nil
}

package gameboy

import (
	"strings"

	"github.com/thelolagemann/gbcore/internal/cheats"
	"github.com/thelolagemann/gbcore/internal/serial"
	"github.com/thelolagemann/gbcore/internal/types"
	"github.com/thelolagemann/gbcore/pkg/log"
)

// Opt is a function that modifies a GameBoy
// instance.
type Opt func(gb *GameBoy)

// Debug enables the LD B, B software breakpoint.
func Debug() Opt {
	return func(gb *GameBoy) {
		gb.debug = true
	}
}

// SerialDebugger captures every byte sent over the serial port into
// output, breaking once the output reports a test result.
func SerialDebugger(output *string) Opt {
	return func(gb *GameBoy) {
		gb.serialOutput = output
	}
}

// hasResult reports whether a test ROM has printed its result.
func hasResult(output string) bool {
	return strings.Contains(output, "Passed") || strings.Contains(output, "Failed")
}

// AsModel forces the model to emulate, instead of detecting it
// from the boot ROM or cartridge.
func AsModel(m types.Model) Opt {
	return func(gb *GameBoy) {
		gb.model = m
	}
}

// SerialConnection connects the Game Boy to gbFrom with a link
// cable. gbFrom drives the connection, stepping the new Game Boy
// in lockstep with itself.
func SerialConnection(gbFrom *GameBoy) Opt {
	return func(gbTo *GameBoy) {
		gbTo.serialPeer = gbFrom
	}
}

// WithSerialDevice attaches a device to the serial port.
func WithSerialDevice(d serial.Device) Opt {
	return func(gb *GameBoy) {
		gb.serialDevice = d
	}
}

// WithLogger sets the logger used by the Game Boy and its components.
func WithLogger(l log.Logger) Opt {
	return func(gb *GameBoy) {
		if l != nil {
			gb.log = l
		}
	}
}

// WithBootROM sets the boot ROM for the emulator. Execution will
// start at 0x0000 with the registers cleared, instead of at 0x0100
// with the registers set to the values upon completion of the
// boot ROM.
func WithBootROM(rom []byte) Opt {
	return func(gb *GameBoy) {
		gb.bootROM = rom
	}
}

// WithCheats applies the cheats of e. Game Genie codes patch ROM
// reads, GameShark codes are written at the start of every frame.
func WithCheats(e *cheats.Engine) Opt {
	return func(gb *GameBoy) {
		gb.cheats = e
	}
}

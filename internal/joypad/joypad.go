// Package joypad provides an implementation of the Game Boy
// joypad. The joypad is used to read the state of the buttons
// and the direction keys.
package joypad

import (
	"github.com/thelolagemann/gbcore/internal/interrupts"
	"github.com/thelolagemann/gbcore/internal/types"
)

// Button represents a physical button on the Game Boy.
type Button = uint8

const (
	ButtonA Button = iota
	ButtonB
	ButtonSelect
	ButtonStart
	ButtonRight
	ButtonLeft
	ButtonUp
	ButtonDown
)

// State represents the state of the joypad. Select either
// action or direction buttons by writing to the register,
// and then read out bits 0-3 to get the state of the buttons.
//
//	Bit 5 - P15 Select Button Keys      (0=Select)
//	Bit 4 - P14 Select Direction Keys   (0=Select)
//	Bit 3 - P13 Input Down  or Start    (0=Pressed) (Read Only)
//	Bit 2 - P12 Input Up    or Select   (0=Pressed) (Read Only)
//	Bit 1 - P11 Input Left  or Button B (0=Pressed) (Read Only)
//	Bit 0 - P10 Input Right or Button A (0=Pressed) (Read Only)
type State struct {
	// pressed holds a set bit for every pressed button, the lower
	// 4 bits are the action buttons, the upper 4 the directions.
	pressed uint8
	sel     uint8 // P14/P15 select lines

	irq *interrupts.Service
}

// New returns a new joypad state, registering the P1 register.
func New(regs *types.HardwareRegisters, irq *interrupts.Service) *State {
	s := &State{
		sel: 0x30,
		irq: irq,
	}
	regs.RegisterHardware(
		types.P1,
		func(v uint8) {
			s.sel = v & 0x30
		}, s.read,
	)

	return s
}

func (s *State) read() uint8 {
	d := uint8(0xC0) | s.sel
	var lines uint8
	if s.sel&types.Bit4 == 0 {
		lines |= s.pressed >> 4 & 0xF
	}
	if s.sel&types.Bit5 == 0 {
		lines |= s.pressed & 0xF
	}
	return d | ^lines&0xF
}

// Press presses a button, requesting the joypad interrupt. The
// interrupt also wakes the CPU from STOP.
func (s *State) Press(button Button) {
	if s.pressed&(1<<button) == 0 {
		s.pressed |= 1 << button
		s.irq.Request(interrupts.JoypadFlag)
	}
}

// Release releases a button.
func (s *State) Release(button Button) {
	s.pressed &^= 1 << button
}

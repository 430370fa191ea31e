// Package timer provides an implementation of the Game Boy
// timer. It is used to generate interrupts at a specific
// frequency. The frequency can be configured using the
// types.TAC register.
package timer

import (
	"github.com/thelolagemann/gbcore/internal/interrupts"
	"github.com/thelolagemann/gbcore/internal/types"
)

// bits maps TAC's input clock select to the bit of the
// internal divider that drives TIMA.
//
//	00 = bit 9 (4096 Hz)
//	01 = bit 3 (262144 Hz)
//	10 = bit 5 (65536 Hz)
//	11 = bit 7 (16384 Hz)
var bits = [4]uint16{512, 8, 32, 128}

// Controller is a timer controller. It is used to generate
// interrupts at a specific frequency. The frequency can be
// configured using the types.TAC register.
//
// The controller is driven, never drives: the CPU calls Tick
// once for every machine cycle it consumes, before performing
// the bus access of that cycle.
type Controller struct {
	div        uint16 // internal 16-bit divider, DIV is the upper byte
	currentBit uint16 // divider bit selected by TAC

	tima uint8
	tma  uint8
	tac  uint8

	Enabled bool
	lastBit bool // last sampled value of Enabled && div&currentBit

	// TIMA overflow is a two phase affair: the machine cycle in which
	// TIMA overflows only raises overflow (TIMA reads 0x00), the
	// following cycle reloads TIMA from TMA and requests the interrupt.
	overflow    bool
	reloading   bool // set for the cycle in which the reload happened
	timaWritten bool // TIMA was written while overflow was pending
	tmaWritten  bool // TMA was written while overflow was pending

	irq *interrupts.Service
}

// NewController returns a new timer controller, registering
// the DIV, TIMA, TMA and TAC registers.
func NewController(regs *types.HardwareRegisters, irq *interrupts.Service) *Controller {
	c := &Controller{
		irq:        irq,
		currentBit: bits[0],
	}
	regs.RegisterHardware(
		types.DIV,
		func(v uint8) {
			c.ResetDIV()
		}, func() uint8 {
			return uint8(c.div >> 8)
		},
	)
	regs.RegisterHardware(
		types.TIMA,
		func(v uint8) {
			// writes to TIMA are ignored if written the same cycle it is
			// reloading
			if c.reloading {
				return
			}
			c.tima = v
			if c.overflow {
				c.timaWritten = true
			}
		}, func() uint8 {
			return c.tima
		},
	)
	regs.RegisterHardware(
		types.TMA,
		func(v uint8) {
			c.tma = v
			// if you write to TMA the same cycle that TIMA is reloading,
			// TIMA will be set to the new value of TMA
			if c.reloading {
				c.tima = v
			}
			if c.overflow {
				c.tmaWritten = true
			}
		}, func() uint8 {
			return c.tma
		},
	)
	regs.RegisterHardware(
		types.TAC,
		func(v uint8) {
			c.tac = v & 0x07
			c.currentBit = bits[v&0b11]
			c.Enabled = v&types.Bit2 == types.Bit2

			// disabling the timer, or selecting a bit that is low, can
			// produce a falling edge
			c.sample()
		}, func() uint8 {
			return c.tac | 0b1111_1000
		},
	)

	return c
}

// Tick ticks the timer controller by 1 M-Cycle (4 T-Cycles).
func (c *Controller) Tick() {
	c.reloading = false
	if c.overflow {
		c.reload()
	}

	for i := 0; i < 4; i++ {
		c.div++
		c.sample()
	}
}

// reload finishes a pending overflow. A write to TIMA during the
// pending window suppresses the interrupt, and the reload only
// happens when TMA was rewritten in the same window.
func (c *Controller) reload() {
	switch {
	case !c.timaWritten:
		c.tima = c.tma
		c.irq.Request(interrupts.TimerFlag)
		c.reloading = true
	case c.tmaWritten:
		c.tima = c.tma
		c.reloading = true
	}

	c.overflow = false
	c.timaWritten = false
	c.tmaWritten = false
}

// sample samples the timer signal, incrementing TIMA on a
// falling edge.
func (c *Controller) sample() {
	newBit := c.Enabled && c.div&c.currentBit != 0

	// detect a falling edge
	if c.lastBit && !newBit {
		c.tima++

		// check for overflow
		if c.tima == 0 {
			c.overflow = true
		}
	}

	c.lastBit = newBit
}

// ResetDIV resets the internal divider to 0, as happens when
// DIV is written to, or when executing STOP.
func (c *Controller) ResetDIV() {
	c.div = 0
	c.sample()
}

// SetDIV sets the internal divider, used to set the post boot
// value of the divider for a given model.
func (c *Controller) SetDIV(div uint16) {
	c.div = div
	c.lastBit = c.Enabled && c.div&c.currentBit != 0
}

// Div returns the internal 16-bit divider.
func (c *Controller) Div() uint16 {
	return c.div
}

// OverflowPending reports whether TIMA has overflowed in the
// last machine cycle and is waiting to be reloaded.
func (c *Controller) OverflowPending() bool {
	return c.overflow
}

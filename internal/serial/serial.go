// Package serial provides the serial port of the Game Boy, used by
// the link cable and by test ROMs to report their results.
package serial

import (
	"github.com/thelolagemann/gbcore/internal/interrupts"
	"github.com/thelolagemann/gbcore/internal/types"
)

const (
	// normalClockBit is the bit of the internal divider whose falling
	// edge shifts a bit, every 128 machine cycles (8192 Hz).
	normalClockBit = 1 << 8
	// fastClockBit is used by the CGB fast clock, every 4 machine
	// cycles (262144 Hz).
	fastClockBit = 1 << 3
)

// Controller is the serial controller. It is responsible for sending and
// receiving data to and from devices.
//
// Before a transfer, data holds the next byte to be sent (types.SB).
// During a transfer, each bit clock shifts the leftmost bit of data out
// to the attached device, and shifts the incoming bit in from the right.
//
//	Before : data = o7 o6 o5 o4 o3 o2 o1 o0
//	Cycle 1: data = o6 o5 o4 o3 o2 o1 o0 i0
//	...
//	Cycle 8: data = i0 i1 i2 i3 i4 i5 i6 i7
type Controller struct {
	data    uint8
	count   uint8 // the number of bits that have been transferred.
	lastBit bool

	InternalClock   bool // if true, this controller is the master.
	TransferRequest bool // if true, a transfer has been requested.
	fastClock       bool

	AttachedDevice Device // the device that is attached to this controller.

	// OnTransfer, if set, is called with the outgoing byte whenever
	// an internally clocked transfer is started.
	OnTransfer func(b uint8)

	irq   *interrupts.Service
	clock func() uint16
	cgb   bool
}

// NewController creates a new Controller, registering the SB and SC
// registers. The bit clock is derived from the internal divider,
// which is read through clock.
//
// By default, the Controller is attached to a nullDevice, which acts as if
// there is no device attached. If you want to attach a device, use the
// Controller.Attach method.
func NewController(regs *types.HardwareRegisters, irq *interrupts.Service, clock func() uint16, cgb bool) *Controller {
	c := &Controller{
		AttachedDevice: nullDevice{},
		irq:            irq,
		clock:          clock,
		cgb:            cgb,
	}
	regs.RegisterHardware(
		types.SB,
		func(v uint8) {
			c.data = v
		}, func() uint8 {
			return c.data
		},
	)
	regs.RegisterHardware(
		types.SC,
		func(v uint8) {
			c.InternalClock = v&types.Bit0 == types.Bit0
			c.TransferRequest = v&types.Bit7 == types.Bit7
			c.fastClock = c.cgb && v&types.Bit1 == types.Bit1
			c.count = 0

			if c.TransferRequest && c.InternalClock && c.OnTransfer != nil {
				c.OnTransfer(c.data)
			}
		}, func() uint8 {
			v := uint8(0x7E) // bits 1-6 are unused
			if c.cgb {
				v = 0x7C
				if c.fastClock {
					v |= types.Bit1
				}
			}
			if c.TransferRequest {
				v |= types.Bit7
			}
			if c.InternalClock {
				v |= types.Bit0
			}
			return v
		},
	)

	return c
}

// Attach attaches a Device to the Controller.
func (c *Controller) Attach(d Device) {
	c.AttachedDevice = d
}

// Tick advances the controller by a single machine cycle. A bit is
// transferred on every falling edge of the selected divider bit,
// when this controller is driving the clock.
func (c *Controller) Tick() {
	bit := normalClockBit
	if c.fastClock {
		bit = fastClockBit
	}
	high := c.clock()&uint16(bit) != 0
	falling := c.lastBit && !high
	c.lastBit = high

	if !falling || !c.InternalClock || !c.TransferRequest {
		return
	}

	in := c.AttachedDevice.Send()
	c.AttachedDevice.Receive(c.data&types.Bit7 == types.Bit7)
	c.shift(in)
}

// shift shifts the incoming bit into the data register, completing
// the transfer after 8 bits.
func (c *Controller) shift(in bool) {
	c.data <<= 1
	if in {
		c.data |= 1
	}

	if c.count++; c.count == 8 {
		c.count = 0
		c.TransferRequest = false
		c.irq.Request(interrupts.SerialFlag)
	}
}

// Send returns the leftmost bit of the data register. This allows two
// controllers to be attached to each other with a link cable.
func (c *Controller) Send() bool {
	return c.data&types.Bit7 == types.Bit7
}

// Receive receives a bit from the device driving the clock. Only an
// externally clocked controller with a pending transfer shifts it in.
func (c *Controller) Receive(bit bool) {
	if !c.InternalClock && c.TransferRequest {
		c.shift(bit)
	}
}

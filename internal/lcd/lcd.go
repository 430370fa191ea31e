// Package lcd provides the timing of the LCD controller. It steps the
// scanline counter and the STAT mode through a frame, requesting the
// VBlank and STAT interrupts, without producing any pixels.
package lcd

import (
	"github.com/thelolagemann/gbcore/internal/interrupts"
	"github.com/thelolagemann/gbcore/internal/types"
)

// Controller is the LCD controller. It is ticked once for every machine
// cycle at normal speed, each of which is 4 dots.
type Controller struct {
	lcdc   uint8
	Status Status
	ly     uint8
	lyc    uint8
	dot    uint16

	statLine bool

	// palette RAM (CGB)
	bgPalette  palette
	objPalette palette

	// OnHBlank, if set, is called whenever the LCD enters
	// horizontal blank on a visible line.
	OnHBlank func()
	// OnVBlank, if set, is called at the start of every
	// vertical blank.
	OnVBlank func()

	irq *interrupts.Service
}

// NewController returns a new LCD controller, registering the LCD
// registers. The controller starts as the boot ROM leaves it, with
// the LCD enabled at the start of a frame.
func NewController(regs *types.HardwareRegisters, irq *interrupts.Service, cgb bool) *Controller {
	c := &Controller{
		lcdc: 0x91,
		irq:  irq,
	}
	c.Status.Mode = OAM
	c.Status.Coincidence = true

	regs.RegisterHardware(
		types.LCDC,
		func(v uint8) {
			wasEnabled := c.Enabled()
			c.lcdc = v
			if wasEnabled && !c.Enabled() {
				// turning the LCD off resets LY and the mode
				c.ly, c.dot = 0, 0
				c.Status.Mode = HBlank
			} else if !wasEnabled && c.Enabled() {
				c.Status.Mode = OAM
				c.compare()
			}
		}, func() uint8 {
			return c.lcdc
		},
	)
	regs.RegisterHardware(
		types.STAT,
		func(v uint8) {
			c.Status.Write(v)
			c.updateLine()
		}, c.Status.Read,
	)
	regs.RegisterHardware(
		types.LY,
		types.NoWrite,
		func() uint8 {
			return c.ly
		},
	)
	regs.RegisterHardware(
		types.LYC,
		func(v uint8) {
			c.lyc = v
			if c.Enabled() {
				c.compare()
			}
		}, func() uint8 {
			return c.lyc
		},
	)

	// scroll, window and DMG palette registers are plain storage
	for _, address := range []types.HardwareAddress{types.SCY, types.SCX, types.WY, types.WX, types.OBP0, types.OBP1} {
		regs.RegisterLatch(address, 0x00, 0x00)
	}
	regs.RegisterLatch(types.BGP, 0xFC, 0x00)

	if cgb {
		c.bgPalette.register(regs, types.BCPS, types.BCPD)
		c.objPalette.register(regs, types.OCPS, types.OCPD)
		regs.RegisterLatch(types.OPRI, 0x00, 0xFE)
	}

	return c
}

// Enabled reports whether the LCD is switched on (LCDC bit 7).
func (c *Controller) Enabled() bool {
	return c.lcdc&types.Bit7 != 0
}

// LY returns the current scanline.
func (c *Controller) LY() uint8 {
	return c.ly
}

// Tick advances the LCD by a single machine cycle (4 dots).
func (c *Controller) Tick() {
	if !c.Enabled() {
		return
	}

	for i := 0; i < 4; i++ {
		c.dot++
		switch {
		case c.dot == DotsPerLine:
			c.dot = 0
			c.nextLine()
		case c.ly < VisibleLines && c.dot == oamDots:
			c.setMode(VRAM)
		case c.ly < VisibleLines && c.dot == oamDots+transferDots:
			c.setMode(HBlank)
			if c.OnHBlank != nil {
				c.OnHBlank()
			}
		}
	}
}

func (c *Controller) nextLine() {
	c.ly++
	switch {
	case c.ly == Lines:
		c.ly = 0
		c.setMode(OAM)
	case c.ly == VisibleLines:
		c.setMode(VBlank)
		c.irq.Request(interrupts.VBlankFlag)
		if c.OnVBlank != nil {
			c.OnVBlank()
		}
	case c.ly < VisibleLines:
		c.setMode(OAM)
	}
	c.compare()
}

func (c *Controller) setMode(mode Mode) {
	c.Status.Mode = mode
	c.updateLine()
}

func (c *Controller) compare() {
	c.Status.Coincidence = c.ly == c.lyc
	c.updateLine()
}

// updateLine requests the STAT interrupt on a rising edge of
// the STAT interrupt line.
func (c *Controller) updateLine() {
	line := c.Enabled() && c.Status.line()
	if line && !c.statLine {
		c.irq.Request(interrupts.LCDFlag)
	}
	c.statLine = line
}

// palette is CGB palette RAM, accessed through an index register
// (BCPS/OCPS) and a data register (BCPD/OCPD).
type palette struct {
	index         uint8
	autoIncrement bool
	data          [64]uint8
}

func (p *palette) register(regs *types.HardwareRegisters, selector, data types.HardwareAddress) {
	regs.RegisterHardware(
		selector,
		func(v uint8) {
			p.index = v & 0x3F
			p.autoIncrement = v&types.Bit7 != 0
		}, func() uint8 {
			v := p.index | types.Bit6
			if p.autoIncrement {
				v |= types.Bit7
			}
			return v
		},
	)
	regs.RegisterHardware(
		data,
		func(v uint8) {
			p.data[p.index] = v
			if p.autoIncrement {
				p.index = (p.index + 1) & 0x3F
			}
		}, func() uint8 {
			return p.data[p.index]
		},
	)
}

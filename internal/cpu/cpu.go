// Package cpu provides an implementation of the Sharp SM83, the CPU
// of the Game Boy. The CPU drives the rest of the hardware: every
// machine cycle it consumes is forwarded to the timer and any attached
// tickers before the memory access of that cycle is performed.
package cpu

import (
	"github.com/thelolagemann/gbcore/internal/interrupts"
	"github.com/thelolagemann/gbcore/internal/mmu"
	"github.com/thelolagemann/gbcore/internal/timer"
	"github.com/thelolagemann/gbcore/internal/types"
	"github.com/thelolagemann/gbcore/pkg/log"
)

// State is the execution state of the CPU.
type State uint8

const (
	// Running executes an instruction every step.
	Running State = iota
	// Halted waits for an interrupt to be requested, whilst the
	// rest of the hardware keeps running.
	Halted
	// Stopped waits for a joypad interrupt, with the clock stopped.
	Stopped
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Halted:
		return "halted"
	case Stopped:
		return "stopped"
	}
	return "unknown"
}

// CPU represents the Sharp SM83 CPU.
type CPU struct {
	PC uint16
	SP uint16
	Registers

	mmu   *mmu.MMU
	irq   *interrupts.Service
	timer *timer.Controller

	// cycleTickers are ticked every machine cycle, realtimeTickers
	// every machine cycle in normal speed, and every other machine
	// cycle in double speed.
	cycleTickers    []func()
	realtimeTickers []func()

	doubleSpeed bool
	halfCycle   bool

	state      State
	imePending bool // EI was executed, IME is set after the next instruction
	haltBug    bool // the next opcode fetch doesn't increment PC

	currentTick int // machine cycles consumed by the current step

	// Debug enables the LD B, B software breakpoint, which sets
	// DebugBreakpoint when executed.
	Debug           bool
	DebugBreakpoint bool

	log log.Logger
}

// NewCPU creates a new CPU, wired to the given MMU, interrupt service
// and timer. The registers are left zeroed until Reset is called.
func NewCPU(m *mmu.MMU, irq *interrupts.Service, t *timer.Controller, logger log.Logger) *CPU {
	if logger == nil {
		logger = log.NewNullLogger()
	}
	c := &CPU{
		mmu:   m,
		irq:   irq,
		timer: t,
		log:   logger,
	}
	c.Registers.init()

	return c
}

// AttachTicker attaches fn to be called every machine cycle, such as
// the serial controller whose clock is derived from the divider.
func (c *CPU) AttachTicker(fn func()) {
	c.cycleTickers = append(c.cycleTickers, fn)
}

// AttachRealtimeTicker attaches fn to be called every machine cycle of
// normal speed, such as the LCD whose clock is unaffected by double speed.
func (c *CPU) AttachRealtimeTicker(fn func()) {
	c.realtimeTickers = append(c.realtimeTickers, fn)
}

// Reset puts the CPU into its power up state. Without a boot ROM the
// registers are set to the values the model's boot ROM leaves behind,
// and execution starts at 0x0100. With one, execution starts at 0x0000
// with the registers cleared.
func (c *CPU) Reset(model types.Model, bootROM bool) {
	c.state = Running
	c.imePending = false
	c.haltBug = false
	c.doubleSpeed = false
	c.halfCycle = false
	c.irq.IME = false

	if bootROM {
		c.A, c.F, c.B, c.C, c.D, c.E, c.H, c.L = 0, 0, 0, 0, 0, 0, 0, 0
		c.SP = 0
		c.PC = 0
		c.timer.SetDIV(0)
		return
	}

	regs := types.ModelRegisters[model]
	c.A, c.F, c.B, c.C, c.D, c.E, c.H, c.L = regs[0], regs[1], regs[2], regs[3], regs[4], regs[5], regs[6], regs[7]
	c.SP = 0xFFFE
	c.PC = 0x0100
	c.timer.SetDIV(types.ModelDIV[model])
}

// Step executes a single instruction, services a pending interrupt, or
// waits a single cycle when halted, returning the number of machine
// cycles consumed. A stopped CPU consumes no cycles until a joypad
// interrupt is requested.
func (c *CPU) Step() int {
	c.currentTick = 0

	switch c.state {
	case Stopped:
		if c.irq.Flag&interrupts.JoypadFlag == 0 {
			return 0
		}
		c.state = Running
		c.tickCycle()
		return c.currentTick
	case Halted:
		c.tickCycle()
		if c.irq.HasInterrupts() {
			c.state = Running
			if c.irq.IME {
				c.executeInterrupt()
			}
		}
		return c.currentTick
	}

	if c.irq.IME && c.irq.HasInterrupts() {
		c.executeInterrupt()
		return c.currentTick
	}

	ei := c.imePending
	InstructionSet[c.readInstruction()].fn(c)
	if ei && c.imePending {
		c.imePending = false
		c.irq.IME = true
	}

	return c.currentTick
}

// executeInterrupt dispatches the highest priority pending interrupt.
// Dispatch takes 5 cycles: 2 internal cycles, the 2 pushes of PC, and
// the jump. The vector is resolved between the pushes, so a push that
// overwrites IE can cancel the interrupt, in which case execution
// continues at 0x0000.
func (c *CPU) executeInterrupt() {
	c.irq.IME = false
	c.imePending = false
	c.tickCycle()
	c.tickCycle()

	c.SP--
	c.writeByte(c.SP, uint8(c.PC>>8))
	vector := c.irq.Vector()
	c.SP--
	c.writeByte(c.SP, uint8(c.PC))

	c.PC = vector
	c.tickCycle()
}

// halt enters low power mode until an interrupt is pending. When an
// interrupt is already pending with IME clear, the CPU doesn't halt
// and fails to increment PC on the next fetch instead.
func (c *CPU) halt() {
	pending := c.irq.HasInterrupts()
	switch {
	case c.irq.IME:
		c.state = Halted
	case c.imePending && pending:
		// EI; HALT - the interrupt returns to the HALT
		c.PC--
	case pending:
		c.haltBug = true
	default:
		c.state = Halted
	}
}

// stop executes STOP, which either performs a pending CGB speed switch,
// or stops the clock until a joypad interrupt. Whether STOP consumes the
// byte following it depends on the interrupts pending at the time. A
// non-zero byte there aborts the instruction before DIV is reset or the
// speed is switched.
func (c *CPU) stop() {
	pending := c.irq.HasInterrupts()
	twoByte, divReset := false, false

	switch {
	case c.irq.Flag&interrupts.JoypadFlag != 0:
		if pending {
			return
		}
		twoByte = true
		c.state = Halted
	case c.mmu.SpeedSwitchArmed():
		switch {
		case pending && c.irq.IME:
			c.log.Errorf("cpu: speed switch with pending interrupt at 0x%04X, CPU glitched", c.PC-1)
			c.state = Halted
			c.irq.Enable = 0
		case pending:
			divReset = true
		default:
			twoByte, divReset = true, true
		}
	default:
		twoByte = !pending
		divReset = true
		c.state = Stopped
	}

	if twoByte && !c.skipStopOperand() {
		return
	}
	if divReset {
		c.timer.ResetDIV()
	}
	if c.mmu.SpeedSwitchArmed() {
		c.doubleSpeed = !c.doubleSpeed
		c.halfCycle = false
		c.mmu.SetDoubleSpeed(c.doubleSpeed)
	}
}

// skipStopOperand consumes the byte following STOP, reporting whether
// it was the expected zero.
func (c *CPU) skipStopOperand() bool {
	if v := c.readOperand(); v != 0 {
		c.log.Debugf("cpu: STOP followed by 0x%02X at 0x%04X", v, c.PC-1)
		return false
	}
	return true
}

// tickCycle advances the rest of the hardware by a single machine cycle.
func (c *CPU) tickCycle() {
	c.currentTick++
	c.timer.Tick()
	for _, tick := range c.cycleTickers {
		tick()
	}

	if c.doubleSpeed {
		c.halfCycle = !c.halfCycle
		if c.halfCycle {
			return
		}
	}
	for _, tick := range c.realtimeTickers {
		tick()
	}
}

// readInstruction fetches the opcode at PC.
func (c *CPU) readInstruction() uint8 {
	opcode := c.readByte(c.PC)
	if c.haltBug {
		c.haltBug = false
	} else {
		c.PC++
	}
	return opcode
}

// readOperand reads the byte at PC, and increments PC.
func (c *CPU) readOperand() uint8 {
	value := c.readByte(c.PC)
	c.PC++
	return value
}

// readOperand16 reads the little endian 16-bit value at PC.
func (c *CPU) readOperand16() uint16 {
	low := c.readOperand()
	high := c.readOperand()
	return uint16(high)<<8 | uint16(low)
}

// readByte reads the byte at the given address, taking a cycle.
func (c *CPU) readByte(addr uint16) uint8 {
	c.tickCycle()
	return c.mmu.Read(addr)
}

// writeByte writes the value to the given address, taking a cycle.
func (c *CPU) writeByte(addr uint16, value uint8) {
	c.tickCycle()
	c.mmu.Write(addr, value)
}

// State returns the current execution state.
func (c *CPU) State() State {
	return c.state
}

// DoubleSpeed reports whether the CPU is running in CGB double speed.
func (c *CPU) DoubleSpeed() bool {
	return c.doubleSpeed
}

// Snapshot is a copy of the programmer visible state of the CPU.
type Snapshot struct {
	A, F, B, C, D, E, H, L uint8
	SP, PC                 uint16
	IME                    bool
	State                  State
}

// Snapshot returns a copy of the current registers.
func (c *CPU) Snapshot() Snapshot {
	return Snapshot{
		A: c.A, F: c.F, B: c.B, C: c.C, D: c.D, E: c.E, H: c.H, L: c.L,
		SP:    c.SP,
		PC:    c.PC,
		IME:   c.irq.IME,
		State: c.state,
	}
}

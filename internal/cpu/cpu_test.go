package cpu

import (
	"testing"

	"github.com/thelolagemann/gbcore/internal/cartridge"
	"github.com/thelolagemann/gbcore/internal/interrupts"
	"github.com/thelolagemann/gbcore/internal/mmu"
	"github.com/thelolagemann/gbcore/internal/timer"
	"github.com/thelolagemann/gbcore/internal/types"
)

// programStart is where test programs are placed, in WRAM so that
// they can be modified between steps.
const programStart = 0xC000

// newTestCPU creates a CPU for the given model with the program
// loaded at programStart, and no interrupts requested or enabled.
func newTestCPU(t *testing.T, model types.Model, program ...uint8) *CPU {
	t.Helper()
	rom := make([]byte, 0x8000)
	cart, err := cartridge.NewCartridge(rom)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	regs := &types.HardwareRegisters{}
	irq := interrupts.NewService(regs)
	irq.Flag = 0
	m := mmu.NewMMU(cart, regs, model, nil)
	c := NewCPU(m, irq, timer.NewController(regs, irq), nil)
	c.Reset(model, false)

	for i, b := range program {
		m.Write(programStart+uint16(i), b)
	}
	c.PC = programStart
	c.SP = 0xDFF0
	c.HL.SetUint16(0xC100)

	return c
}

// instructionTimings are the machine cycles of each instruction, 0
// for those that depend on a condition or the state of the CPU.
var instructionTimings = [256]uint8{
	1, 3, 2, 2, 1, 1, 2, 1, 5, 2, 2, 2, 1, 1, 2, 1, // 0x00
	0, 3, 2, 2, 1, 1, 2, 1, 3, 2, 2, 2, 1, 1, 2, 1, // 0x10
	0, 3, 2, 2, 1, 1, 2, 1, 0, 2, 2, 2, 1, 1, 2, 1, // 0x20
	0, 3, 2, 2, 3, 3, 3, 1, 0, 2, 2, 2, 1, 1, 2, 1, // 0x30
	1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1, // 0x40
	1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1, // 0x50
	1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1, // 0x60
	2, 2, 2, 2, 2, 2, 1, 2, 1, 1, 1, 1, 1, 1, 2, 1, // 0x70
	1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1, // 0x80
	1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1, // 0x90
	1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1, // 0xA0
	1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1, // 0xB0
	0, 3, 0, 4, 0, 4, 2, 4, 0, 4, 0, 0, 0, 6, 2, 4, // 0xC0
	0, 3, 0, 1, 0, 4, 2, 4, 0, 4, 0, 1, 0, 1, 2, 4, // 0xD0
	3, 3, 2, 1, 1, 4, 2, 4, 4, 1, 4, 1, 1, 1, 2, 4, // 0xE0
	3, 3, 2, 1, 1, 4, 2, 4, 3, 2, 4, 1, 1, 1, 2, 4, // 0xF0
}

func TestInstructionSet_Timing(t *testing.T) {
	for opcode, want := range instructionTimings {
		if got := InstructionSet[opcode].Cycles(); got != want {
			t.Errorf("0x%02X %s: expected %d cycles, got %d", opcode, InstructionSet[opcode].Name(), want, got)
		}
	}
	for opcode := 0; opcode < 0x100; opcode++ {
		want := uint8(2)
		if opcode&0x7 == 6 {
			want = 4
			if opcode>>6 == 1 {
				want = 3
			}
		}
		if got := InstructionSetCB[opcode].Cycles(); got != want {
			t.Errorf("0xCB 0x%02X %s: expected %d cycles, got %d", opcode, InstructionSetCB[opcode].Name(), want, got)
		}
	}
}

func TestInstructionSet_Complete(t *testing.T) {
	for opcode := 0; opcode < 0x100; opcode++ {
		if InstructionSet[opcode].fn == nil || InstructionSet[opcode].name == "" {
			t.Errorf("expected opcode 0x%02X to be decoded", opcode)
		}
		if InstructionSetCB[opcode].fn == nil || InstructionSetCB[opcode].name == "" {
			t.Errorf("expected opcode 0xCB 0x%02X to be decoded", opcode)
		}
	}
}

func TestCPU_MeasuredTiming(t *testing.T) {
	for opcode := 0; opcode < 0x100; opcode++ {
		want := InstructionSet[opcode].Cycles()
		if want == 0 {
			continue
		}
		c := newTestCPU(t, types.DMGABC, uint8(opcode), 0x00, 0x00)
		c.BC.SetUint16(0xC200)
		c.DE.SetUint16(0xC200)
		if got := c.Step(); got != int(want) {
			t.Errorf("0x%02X %s: expected %d cycles, took %d", opcode, InstructionSet[opcode].Name(), want, got)
		}
	}

	for opcode := 0; opcode < 0x100; opcode++ {
		c := newTestCPU(t, types.DMGABC, 0xCB, uint8(opcode))
		want := InstructionSetCB[opcode].Cycles()
		if got := c.Step(); got != int(want) {
			t.Errorf("0xCB 0x%02X %s: expected %d cycles, took %d", opcode, InstructionSetCB[opcode].Name(), want, got)
		}
	}
}

func TestCPU_ConditionalTiming(t *testing.T) {
	// taken, not taken
	timings := map[uint8][2]int{
		0x20: {3, 2}, 0x28: {3, 2}, 0x30: {3, 2}, 0x38: {3, 2}, // JR
		0xC2: {4, 3}, 0xCA: {4, 3}, 0xD2: {4, 3}, 0xDA: {4, 3}, // JP
		0xC4: {6, 3}, 0xCC: {6, 3}, 0xD4: {6, 3}, 0xDC: {6, 3}, // CALL
		0xC0: {5, 2}, 0xC8: {5, 2}, 0xD0: {5, 2}, 0xD8: {5, 2}, // RET
	}
	for opcode, cycles := range timings {
		for _, flags := range []uint8{0, FlagZero | FlagCarry} {
			c := newTestCPU(t, types.DMGABC, opcode, 0x00, 0x00)
			c.F = flags
			taken := c.condition(opcode)
			want := cycles[1]
			if taken {
				want = cycles[0]
			}
			if got := c.Step(); got != want {
				t.Errorf("0x%02X %s (taken: %t): expected %d cycles, took %d", opcode, InstructionSet[opcode].Name(), taken, want, got)
			}
		}
	}
}

func TestCPU_Program(t *testing.T) {
	// LD A, 0x05; INC A; HALT
	c := newTestCPU(t, types.DMGABC, 0x3E, 0x05, 0x3C, 0x76)
	for i := 0; i < 3; i++ {
		c.Step()
	}
	if c.A != 0x06 {
		t.Errorf("expected 0x06 in A, got 0x%02X", c.A)
	}
	if c.isFlagSet(FlagZero) {
		t.Errorf("expected zero flag to be reset")
	}
	if c.State() != Halted {
		t.Errorf("expected CPU to be halted, got %s", c.State())
	}
	if c.PC != programStart+4 {
		t.Errorf("expected PC 0x%04X, got 0x%04X", programStart+4, c.PC)
	}
}

func TestCPU_Stack(t *testing.T) {
	// LD BC, 0x1234; PUSH BC; POP DE; CALL 0xC010
	c := newTestCPU(t, types.DMGABC, 0x01, 0x34, 0x12, 0xC5, 0xD1, 0xCD, 0x10, 0xC0)
	for i := 0; i < 4; i++ {
		c.Step()
	}
	if c.DE.Uint16() != 0x1234 {
		t.Errorf("expected 0x1234 in DE, got 0x%04X", c.DE.Uint16())
	}
	if c.PC != 0xC010 {
		t.Errorf("expected PC 0xC010, got 0x%04X", c.PC)
	}
	if c.SP != 0xDFEE {
		t.Errorf("expected SP 0xDFEE, got 0x%04X", c.SP)
	}
	if ret := uint16(c.mmu.Read(c.SP+1))<<8 | uint16(c.mmu.Read(c.SP)); ret != 0xC008 {
		t.Errorf("expected return address 0xC008, got 0x%04X", ret)
	}

	// RET
	c.mmu.Write(0xC010, 0xC9)
	c.Step()
	if c.PC != 0xC008 || c.SP != 0xDFF0 {
		t.Errorf("expected PC 0xC008 and SP 0xDFF0, got 0x%04X and 0x%04X", c.PC, c.SP)
	}
}

func TestCPU_AFMask(t *testing.T) {
	// LD BC, 0x12FF; PUSH BC; POP AF
	c := newTestCPU(t, types.DMGABC, 0x01, 0xFF, 0x12, 0xC5, 0xF1)
	for i := 0; i < 3; i++ {
		c.Step()
	}
	if c.A != 0x12 {
		t.Errorf("expected 0x12 in A, got 0x%02X", c.A)
	}
	if c.F != 0xF0 {
		t.Errorf("expected 0xF0 in F, got 0x%02X", c.F)
	}
}

func TestCPU_Interrupts(t *testing.T) {
	t.Run("dispatch", func(t *testing.T) {
		c := newTestCPU(t, types.DMGABC, 0x00)
		c.irq.IME = true
		c.irq.Enable = interrupts.TimerFlag | interrupts.SerialFlag
		c.irq.Flag = interrupts.TimerFlag | interrupts.SerialFlag

		if cycles := c.Step(); cycles != 5 {
			t.Errorf("expected dispatch to take 5 cycles, took %d", cycles)
		}
		if c.PC != 0x0050 {
			t.Errorf("expected PC 0x0050, got 0x%04X", c.PC)
		}
		if c.irq.IME {
			t.Errorf("expected IME to be reset")
		}
		if c.irq.Flag != interrupts.SerialFlag {
			t.Errorf("expected only the serial interrupt to remain, got 0x%02X", c.irq.Flag)
		}
		if ret := uint16(c.mmu.Read(c.SP+1))<<8 | uint16(c.mmu.Read(c.SP)); ret != programStart {
			t.Errorf("expected return address 0x%04X, got 0x%04X", programStart, ret)
		}
	})
	t.Run("cancelled", func(t *testing.T) {
		c := newTestCPU(t, types.DMGABC, 0x00)
		c.irq.IME = true
		c.irq.Enable = interrupts.TimerFlag
		c.irq.Flag = interrupts.TimerFlag
		c.SP = 0x0000 // the push of PCh overwrites IE

		c.Step()
		if c.PC != 0x0000 {
			t.Errorf("expected PC 0x0000, got 0x%04X", c.PC)
		}
		if c.irq.Flag != interrupts.TimerFlag {
			t.Errorf("expected the timer interrupt to remain requested")
		}
	})
	t.Run("ei delay", func(t *testing.T) {
		// EI; NOP; NOP
		c := newTestCPU(t, types.DMGABC, 0xFB, 0x00, 0x00)
		c.irq.Enable = interrupts.TimerFlag
		c.irq.Flag = interrupts.TimerFlag

		c.Step()
		if c.irq.IME {
			t.Errorf("expected IME to be set after the next instruction")
		}
		c.Step()
		if !c.irq.IME {
			t.Errorf("expected IME to be set")
		}
		c.Step()
		if c.PC != 0x0050 {
			t.Errorf("expected PC 0x0050, got 0x%04X", c.PC)
		}
		if low := c.mmu.Read(c.SP); low != 0x02 {
			t.Errorf("expected to return to 0xC002, got 0xC0%02X", low)
		}
	})
	t.Run("ei di", func(t *testing.T) {
		// EI; DI; NOP
		c := newTestCPU(t, types.DMGABC, 0xFB, 0xF3, 0x00)
		for i := 0; i < 3; i++ {
			c.Step()
		}
		if c.irq.IME {
			t.Errorf("expected IME to remain reset")
		}
	})
	t.Run("reti", func(t *testing.T) {
		c := newTestCPU(t, types.DMGABC, 0xD9)
		c.Step()
		if !c.irq.IME {
			t.Errorf("expected RETI to set IME immediately")
		}
	})
}

func TestCPU_Halt(t *testing.T) {
	t.Run("wake", func(t *testing.T) {
		// HALT; INC A
		c := newTestCPU(t, types.DMGABC, 0x76, 0x3C)
		c.irq.Enable = interrupts.TimerFlag
		c.Step()
		if c.State() != Halted {
			t.Fatalf("expected CPU to be halted, got %s", c.State())
		}
		if cycles := c.Step(); cycles != 1 {
			t.Errorf("expected halted step to take 1 cycle, took %d", cycles)
		}

		c.irq.Request(interrupts.TimerFlag)
		c.Step()
		if c.State() != Running {
			t.Errorf("expected CPU to be running, got %s", c.State())
		}
		if c.PC != programStart+1 {
			t.Errorf("expected PC 0x%04X, got 0x%04X", programStart+1, c.PC)
		}
	})
	t.Run("wake with ime", func(t *testing.T) {
		c := newTestCPU(t, types.DMGABC, 0x76, 0x3C)
		c.irq.IME = true
		c.irq.Enable = interrupts.TimerFlag
		c.Step()

		c.irq.Request(interrupts.TimerFlag)
		if cycles := c.Step(); cycles != 6 {
			t.Errorf("expected 6 cycles, took %d", cycles)
		}
		if c.PC != 0x0050 {
			t.Errorf("expected PC 0x0050, got 0x%04X", c.PC)
		}
	})
	t.Run("halt bug", func(t *testing.T) {
		// HALT; INC A
		c := newTestCPU(t, types.DMGABC, 0x76, 0x3C)
		c.A = 0
		c.irq.Enable = interrupts.TimerFlag
		c.irq.Flag = interrupts.TimerFlag

		for i := 0; i < 3; i++ {
			c.Step()
		}
		if c.A != 0x02 {
			t.Errorf("expected 0x02 in A, got 0x%02X", c.A)
		}
		if c.PC != programStart+2 {
			t.Errorf("expected PC 0x%04X, got 0x%04X", programStart+2, c.PC)
		}
	})
	t.Run("ei halt", func(t *testing.T) {
		// EI; HALT
		c := newTestCPU(t, types.DMGABC, 0xFB, 0x76, 0x00)
		c.irq.Enable = interrupts.TimerFlag
		c.irq.Flag = interrupts.TimerFlag

		for i := 0; i < 3; i++ {
			c.Step()
		}
		if c.PC != 0x0050 {
			t.Errorf("expected PC 0x0050, got 0x%04X", c.PC)
		}
		if low := c.mmu.Read(c.SP); low != 0x01 {
			t.Errorf("expected to return to the HALT at 0xC001, got 0xC0%02X", low)
		}
	})
}

func TestCPU_Stop(t *testing.T) {
	t.Run("stop", func(t *testing.T) {
		c := newTestCPU(t, types.DMGABC, 0x10, 0x00)
		c.Step()
		if c.State() != Stopped {
			t.Fatalf("expected CPU to be stopped, got %s", c.State())
		}
		if c.PC != programStart+2 {
			t.Errorf("expected STOP to consume 2 bytes, PC 0x%04X", c.PC)
		}
		if c.timer.Div() != 0 {
			t.Errorf("expected DIV to be reset, got 0x%04X", c.timer.Div())
		}
		if cycles := c.Step(); cycles != 0 {
			t.Errorf("expected stopped CPU to take 0 cycles, took %d", cycles)
		}

		c.irq.Request(interrupts.JoypadFlag)
		c.Step()
		if c.State() != Running {
			t.Errorf("expected joypad to wake the CPU, got %s", c.State())
		}
	})
	t.Run("pending", func(t *testing.T) {
		c := newTestCPU(t, types.DMGABC, 0x10, 0x00)
		c.irq.Enable = interrupts.TimerFlag
		c.irq.Flag = interrupts.TimerFlag
		c.Step()
		if c.State() != Stopped {
			t.Errorf("expected CPU to be stopped, got %s", c.State())
		}
		if c.PC != programStart+1 {
			t.Errorf("expected STOP to consume 1 byte, PC 0x%04X", c.PC)
		}
	})
	t.Run("joypad", func(t *testing.T) {
		c := newTestCPU(t, types.DMGABC, 0x10, 0x00)
		c.irq.Flag = interrupts.JoypadFlag
		c.Step()
		if c.State() != Halted {
			t.Errorf("expected CPU to be halted, got %s", c.State())
		}
		if c.PC != programStart+2 {
			t.Errorf("expected STOP to consume 2 bytes, PC 0x%04X", c.PC)
		}
	})
	t.Run("speed switch", func(t *testing.T) {
		c := newTestCPU(t, types.CGBABC, 0x10, 0x00)
		c.mmu.Write(types.KEY1, 0x01)
		c.Step()
		if !c.DoubleSpeed() {
			t.Errorf("expected double speed")
		}
		if c.mmu.Read(types.KEY1)&types.Bit7 == 0 {
			t.Errorf("expected KEY1 to report double speed, got 0x%02X", c.mmu.Read(types.KEY1))
		}
		if c.State() != Running {
			t.Errorf("expected CPU to be running, got %s", c.State())
		}
		if c.PC != programStart+2 {
			t.Errorf("expected STOP to consume 2 bytes, PC 0x%04X", c.PC)
		}
	})
	t.Run("joypad speed switch", func(t *testing.T) {
		c := newTestCPU(t, types.CGBABC, 0x10, 0x00)
		c.mmu.Write(types.KEY1, 0x01)
		c.irq.Flag = interrupts.JoypadFlag
		div := c.timer.Div()
		c.Step()
		if c.State() != Halted {
			t.Errorf("expected CPU to be halted, got %s", c.State())
		}
		if c.PC != programStart+2 {
			t.Errorf("expected STOP to consume 2 bytes, PC 0x%04X", c.PC)
		}
		if !c.DoubleSpeed() {
			t.Errorf("expected the armed speed switch to complete")
		}
		if key1 := c.mmu.Read(types.KEY1); key1&types.Bit0 != 0 || key1&types.Bit7 == 0 {
			t.Errorf("expected KEY1 to be disarmed and report double speed, got 0x%02X", key1)
		}
		if c.timer.Div() < div {
			t.Errorf("expected DIV not to be reset, got 0x%04X", c.timer.Div())
		}
	})
	t.Run("non-zero operand", func(t *testing.T) {
		c := newTestCPU(t, types.DMGABC, 0x10, 0x42)
		c.Step()
		if c.State() != Stopped {
			t.Errorf("expected CPU to be stopped, got %s", c.State())
		}
		if c.PC != programStart+2 {
			t.Errorf("expected STOP to consume 2 bytes, PC 0x%04X", c.PC)
		}
		if c.timer.Div() == 0 {
			t.Errorf("expected DIV not to be reset")
		}
	})
	t.Run("non-zero operand speed switch", func(t *testing.T) {
		c := newTestCPU(t, types.CGBABC, 0x10, 0x42)
		c.mmu.Write(types.KEY1, 0x01)
		c.Step()
		if c.DoubleSpeed() {
			t.Errorf("expected the speed switch to be abandoned")
		}
		if key1 := c.mmu.Read(types.KEY1); key1&types.Bit0 == 0 {
			t.Errorf("expected KEY1 to stay armed, got 0x%02X", key1)
		}
		if c.timer.Div() == 0 {
			t.Errorf("expected DIV not to be reset")
		}
	})
	t.Run("speed switch glitch", func(t *testing.T) {
		c := newTestCPU(t, types.CGBABC, 0x10, 0x00)
		c.mmu.Write(types.KEY1, 0x01)
		c.irq.IME = true
		c.irq.Enable = interrupts.TimerFlag
		c.irq.Flag = interrupts.TimerFlag
		c.PC++
		c.stop()
		if c.State() != Halted {
			t.Errorf("expected CPU to be halted, got %s", c.State())
		}
		if c.irq.Enable != 0 {
			t.Errorf("expected IE to be cleared, got 0x%02X", c.irq.Enable)
		}
		if !c.DoubleSpeed() {
			t.Errorf("expected speed to switch")
		}
	})
	t.Run("double speed ticks", func(t *testing.T) {
		c := newTestCPU(t, types.CGBABC, 0x10, 0x00, 0x00, 0x00)
		c.mmu.Write(types.KEY1, 0x01)
		c.Step()

		var cycle, realtime int
		c.AttachTicker(func() { cycle++ })
		c.AttachRealtimeTicker(func() { realtime++ })
		c.Step()
		c.Step()
		if cycle != 2 || realtime != 1 {
			t.Errorf("expected 2 cycle ticks and 1 realtime tick, got %d and %d", cycle, realtime)
		}
	})
}

func TestCPU_Reset(t *testing.T) {
	for model, want := range map[types.Model]Snapshot{
		types.DMGABC: {A: 0x01, F: 0xB0, B: 0x00, C: 0x13, D: 0x00, E: 0xD8, H: 0x01, L: 0x4D, SP: 0xFFFE, PC: 0x0100},
		types.CGBABC: {A: 0x11, F: 0x80, B: 0x00, C: 0x00, D: 0xFF, E: 0x56, H: 0x00, L: 0x0D, SP: 0xFFFE, PC: 0x0100},
	} {
		t.Run(model.String(), func(t *testing.T) {
			c := newTestCPU(t, model)
			c.Reset(model, false)
			if got := c.Snapshot(); got != want {
				t.Errorf("expected %+v, got %+v", want, got)
			}
			if c.timer.Div() != types.ModelDIV[model] {
				t.Errorf("expected DIV 0x%04X, got 0x%04X", types.ModelDIV[model], c.timer.Div())
			}
		})
	}

	t.Run("boot rom", func(t *testing.T) {
		c := newTestCPU(t, types.DMGABC)
		c.Reset(types.DMGABC, true)
		if got := c.Snapshot(); got != (Snapshot{}) {
			t.Errorf("expected cleared registers, got %+v", got)
		}
	})
}

func TestCPU_DebugBreakpoint(t *testing.T) {
	c := newTestCPU(t, types.DMGABC, 0x40, 0x40)
	c.Step()
	if c.DebugBreakpoint {
		t.Errorf("expected no breakpoint without Debug")
	}
	c.Debug = true
	c.Step()
	if !c.DebugBreakpoint {
		t.Errorf("expected LD B, B to set the breakpoint")
	}
}

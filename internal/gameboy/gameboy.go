// Package gameboy provides an emulation of a Nintendo Game Boy.
//
// A GameBoy owns every component of the machine, and is driven by
// a single goroutine through RunCycles, RunSingleInstruction or Frame.
package gameboy

import (
	"github.com/thelolagemann/gbcore/internal/boot"
	"github.com/thelolagemann/gbcore/internal/cartridge"
	"github.com/thelolagemann/gbcore/internal/cheats"
	"github.com/thelolagemann/gbcore/internal/cpu"
	"github.com/thelolagemann/gbcore/internal/interrupts"
	"github.com/thelolagemann/gbcore/internal/joypad"
	"github.com/thelolagemann/gbcore/internal/lcd"
	"github.com/thelolagemann/gbcore/internal/mmu"
	"github.com/thelolagemann/gbcore/internal/serial"
	"github.com/thelolagemann/gbcore/internal/timer"
	"github.com/thelolagemann/gbcore/internal/types"
	"github.com/thelolagemann/gbcore/pkg/log"
)

const (
	// ClockSpeed is the clock speed of the Game Boy.
	ClockSpeed = 4194304 // 4.194304 MHz
	// CyclesPerFrame is the number of clock cycles per frame.
	CyclesPerFrame = 70224 // 4194304 / 59.7
	// MachineCyclesPerFrame is the number of machine cycles per frame
	// at normal speed.
	MachineCyclesPerFrame = CyclesPerFrame / 4
)

// GameBoy represents a Game Boy. It contains all the components of the Game Boy.
// It is the main entry point for the emulator.
type GameBoy struct {
	CPU        *cpu.CPU
	MMU        *mmu.MMU
	Cartridge  cartridge.Cartridge
	Interrupts *interrupts.Service
	Timer      *timer.Controller
	Serial     *serial.Controller
	Joypad     *joypad.State
	LCD        *lcd.Controller

	model     types.Model
	bootROM   []byte
	registers *types.HardwareRegisters

	// serial wiring requested by options, applied once the
	// serial controller exists
	serialDevice    serial.Device
	serialPeer      *GameBoy
	serialOutput    *string
	debug           bool
	cheats          *cheats.Engine
	attachedGameBoy *GameBoy
	owedCycles      int // cycles the attached Game Boy lags behind

	log log.Logger
}

// NewGameBoy creates a new GameBoy running the given ROM. Construction
// fails when the ROM is empty, uses an unsupported memory bank controller,
// or when the boot ROM supplied through WithBootROM has an invalid length.
func NewGameBoy(rom []byte, opts ...Opt) (*GameBoy, error) {
	g := &GameBoy{
		registers: &types.HardwareRegisters{},
		log:       log.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(g)
	}

	cart, err := cartridge.NewCartridge(rom)
	if err != nil {
		return nil, err
	}
	header := cart.Header()
	g.log.Infof("loaded cartridge: %s", header)
	if !header.ValidChecksum() {
		g.log.Warnf("cartridge: header checksum mismatch (0x%02X)", header.HeaderChecksum)
	}

	var bootROM *boot.ROM
	if g.bootROM != nil {
		if bootROM, err = boot.LoadBootROM(g.bootROM); err != nil {
			return nil, err
		}
		g.log.Infof("boot rom: %s (%s)", bootROM.Model(), bootROM.Checksum())
	}
	g.model = resolveModel(g.model, header, bootROM)

	g.Cartridge = cart
	g.Interrupts = interrupts.NewService(g.registers)
	g.Timer = timer.NewController(g.registers, g.Interrupts)
	g.Serial = serial.NewController(g.registers, g.Interrupts, g.Timer.Div, g.model.IsCGB())
	g.Joypad = joypad.New(g.registers, g.Interrupts)
	g.LCD = lcd.NewController(g.registers, g.Interrupts, g.model == types.CGBABC)
	g.MMU = mmu.NewMMU(cart, g.registers, g.model, g.log)
	g.CPU = cpu.NewCPU(g.MMU, g.Interrupts, g.Timer, g.log)
	g.CPU.Debug = g.debug

	if bootROM != nil {
		g.MMU.SetBootROM(bootROM)
	}
	g.CPU.Reset(g.model, bootROM != nil)

	g.CPU.AttachTicker(g.Serial.Tick)
	g.CPU.AttachRealtimeTicker(g.LCD.Tick)
	if clocked, ok := cart.(cartridge.Clocked); ok {
		g.CPU.AttachRealtimeTicker(clocked.Tick)
	}
	g.LCD.OnHBlank = g.MMU.HBlank
	if g.cheats != nil {
		g.MMU.Patch = g.cheats.Patch
	}

	g.wireSerial()

	return g, nil
}

// LoadCartridge creates a new GameBoy running the given ROM, restoring
// the battery backed RAM of the cartridge from ram when it is not empty.
// RAM of the wrong size is loaded as far as it fits, and logged.
func LoadCartridge(rom, ram []byte, opts ...Opt) (*GameBoy, error) {
	g, err := NewGameBoy(rom, opts...)
	if err != nil {
		return nil, err
	}
	if len(ram) > 0 {
		if err := g.LoadRAM(ram); err != nil {
			g.log.Warnf("cartridge: %v", err)
		}
	}

	return g, nil
}

// resolveModel decides the model to emulate. An explicit model wins,
// then the boot ROM, then the cartridge header. Colour hardware running
// a cartridge without colour support falls back to compatibility mode,
// unless a boot ROM is present to set that up.
func resolveModel(model types.Model, header *cartridge.Header, bootROM *boot.ROM) types.Model {
	if model == types.Unset {
		switch {
		case bootROM != nil && bootROM.IsCGB():
			model = types.CGBABC
		case bootROM != nil:
			model = types.DMGABC
		case header.GameboyColor():
			model = types.CGBABC
		default:
			model = types.DMGABC
		}
	}
	if model == types.CGBABC && !header.GameboyColor() && bootROM == nil {
		model = types.CGBDMG
	}
	return model
}

func (g *GameBoy) wireSerial() {
	if g.serialOutput != nil {
		output := g.serialOutput
		g.Serial.OnTransfer = func(b uint8) {
			*output += string(b)
			if hasResult(*output) {
				g.CPU.DebugBreakpoint = true
			}
		}
	}
	if g.serialDevice != nil {
		g.Serial.Attach(g.serialDevice)
	}
	if g.serialPeer != nil {
		g.Serial.Attach(g.serialPeer.Serial)
		g.serialPeer.Serial.Attach(g.Serial)
		g.serialPeer.attachedGameBoy = g
	}
}

// RunCycles runs the Game Boy for at least the given number of machine
// cycles, returning the number of cycles actually run. It returns early
// when the CPU is stopped, or hits a debug breakpoint.
func (g *GameBoy) RunCycles(budget int) int {
	cycles := 0
	for cycles < budget {
		n := g.step()
		if n == 0 || g.CPU.DebugBreakpoint {
			cycles += n
			break
		}
		cycles += n
	}
	return cycles
}

// RunSingleInstruction executes a single CPU step, returning the
// number of machine cycles it took.
func (g *GameBoy) RunSingleInstruction() int {
	return g.step()
}

// Frame runs the Game Boy for a single frame, which takes twice as
// many machine cycles in double speed.
func (g *GameBoy) Frame() int {
	if g.cheats != nil {
		g.cheats.Apply(g.MMU.Write)
	}
	budget := MachineCyclesPerFrame
	if g.CPU.DoubleSpeed() {
		budget *= 2
	}
	return g.RunCycles(budget)
}

// step runs a single CPU step, and keeps a linked Game Boy in lockstep.
func (g *GameBoy) step() int {
	n := g.CPU.Step()
	if g.attachedGameBoy != nil {
		peer := g.attachedGameBoy
		peer.owedCycles += n
		for peer.owedCycles > 0 {
			m := peer.CPU.Step()
			if m == 0 {
				peer.owedCycles = 0
				break
			}
			peer.owedCycles -= m
		}
	}
	return n
}

// RegisterSnapshot returns a copy of the CPU registers.
func (g *GameBoy) RegisterSnapshot() cpu.Snapshot {
	return g.CPU.Snapshot()
}

// MemoryRegion returns a copy of the given bank of a memory region.
func (g *GameBoy) MemoryRegion(region mmu.Region, bank int) []byte {
	return g.MMU.MemoryRegion(region, bank)
}

// RequestInterrupt requests the given interrupts, as bits of IF.
func (g *GameBoy) RequestInterrupt(bits uint8) {
	g.Interrupts.Request(bits)
}

// Read returns the byte at the given address, as seen by the CPU.
func (g *GameBoy) Read(address uint16) uint8 {
	return g.MMU.Read(address)
}

// Disassemble decodes the instruction at pc.
func (g *GameBoy) Disassemble(pc uint16) (string, uint16) {
	return cpu.Disassemble(g.MMU.Read, pc)
}

// SaveRAM returns a copy of the battery backed data of the cartridge,
// or nil if the cartridge doesn't have a battery.
func (g *GameBoy) SaveRAM() []byte {
	if !g.Cartridge.Header().CartridgeType.Battery() {
		return nil
	}
	if bb, ok := g.Cartridge.(cartridge.BatteryBacked); ok {
		return bb.SaveRAM()
	}
	return nil
}

// LoadRAM restores the battery backed data of the cartridge.
func (g *GameBoy) LoadRAM(data []byte) error {
	if bb, ok := g.Cartridge.(cartridge.BatteryBacked); ok {
		return bb.LoadRAM(data)
	}
	return nil
}

// Model returns the model being emulated.
func (g *GameBoy) Model() types.Model {
	return g.model
}

// Header returns the header of the loaded cartridge.
func (g *GameBoy) Header() *cartridge.Header {
	return g.Cartridge.Header()
}

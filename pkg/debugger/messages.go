package debugger

import "github.com/thelolagemann/gbcore/internal/cpu"

// Commands understood by the debugger.
const (
	CommandStep      = "step"
	CommandRun       = "run"
	CommandPause     = "pause"
	CommandRegisters = "regs"
	CommandMemory    = "mem"
)

// Request is a command sent by a client.
type Request struct {
	Command string `json:"command"`
	Count   int    `json:"count,omitempty"`  // instructions to execute (step)
	Region  string `json:"region,omitempty"` // region name (mem)
	Bank    int    `json:"bank,omitempty"`
}

// Response is sent in reply to every Request.
type Response struct {
	Command string `json:"command"`
	Error   string `json:"error,omitempty"`
	Running bool   `json:"running"`

	Registers   *Registers `json:"registers,omitempty"`
	Disassembly string     `json:"disassembly,omitempty"`
	Cycles      int        `json:"cycles,omitempty"`

	Region string `json:"region,omitempty"`
	Bank   int    `json:"bank,omitempty"`
	// Changed reports whether the region differs from the last copy
	// sent to this client. Data is only present when it has.
	Changed bool `json:"changed,omitempty"`
	// Data is the brotli compressed contents of the region.
	Data []byte `json:"data,omitempty"`
}

// Registers is the JSON form of a cpu.Snapshot.
type Registers struct {
	A   uint8  `json:"a"`
	F   uint8  `json:"f"`
	B   uint8  `json:"b"`
	C   uint8  `json:"c"`
	D   uint8  `json:"d"`
	E   uint8  `json:"e"`
	H   uint8  `json:"h"`
	L   uint8  `json:"l"`
	SP  uint16 `json:"sp"`
	PC  uint16 `json:"pc"`
	IME bool   `json:"ime"`

	State string `json:"state"`
}

func newRegisters(s cpu.Snapshot) *Registers {
	return &Registers{
		A: s.A, F: s.F, B: s.B, C: s.C, D: s.D, E: s.E, H: s.H, L: s.L,
		SP:    s.SP,
		PC:    s.PC,
		IME:   s.IME,
		State: s.State.String(),
	}
}

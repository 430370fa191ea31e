// Package cheats implements Game Genie and GameShark cheat codes.
//
// Game Genie codes patch the value read from cartridge ROM, while
// GameShark codes write to RAM once per frame.
package cheats

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/thelolagemann/gbcore/pkg/log"
)

// Cheat is a named group of codes that are enabled together.
type Cheat struct {
	Name    string
	Enabled bool

	genie []GameGenieCode
	shark []GameSharkCode
	codes []string // as provided by the user
}

// Engine holds the loaded cheats.
type Engine struct {
	Cheats []*Cheat

	log log.Logger
}

// NewEngine returns an Engine without any cheats.
func NewEngine(logger log.Logger) *Engine {
	if logger == nil {
		logger = log.NewNullLogger()
	}
	return &Engine{log: logger}
}

// Add parses the given codes as a single enabled cheat. Codes of 11
// characters (ABC-DEF-GHI) are Game Genie codes, codes of 8 characters
// are GameShark codes.
func (e *Engine) Add(name string, codes ...string) error {
	if e.find(name) != nil {
		return fmt.Errorf("cheats: %q already loaded", name)
	}

	c := &Cheat{Name: name, Enabled: true}
	for _, code := range codes {
		code = strings.TrimSpace(code)
		switch len(code) {
		case 11:
			g, err := ParseGameGenie(code)
			if err != nil {
				return fmt.Errorf("cheats: %q: %w", name, err)
			}
			c.genie = append(c.genie, g)
		case 8:
			s, err := ParseGameShark(code)
			if err != nil {
				return fmt.Errorf("cheats: %q: %w", name, err)
			}
			c.shark = append(c.shark, s)
		default:
			return fmt.Errorf("cheats: %q: invalid code %q", name, code)
		}
		c.codes = append(c.codes, code)
	}

	e.Cheats = append(e.Cheats, c)
	e.log.Debugf("cheats: loaded %q (%d codes)", name, len(c.codes))
	return nil
}

// Enable enables the named cheat.
func (e *Engine) Enable(name string) error {
	return e.set(name, true)
}

// Disable disables the named cheat.
func (e *Engine) Disable(name string) error {
	return e.set(name, false)
}

func (e *Engine) set(name string, enabled bool) error {
	c := e.find(name)
	if c == nil {
		return fmt.Errorf("cheats: %q not found", name)
	}
	c.Enabled = enabled
	return nil
}

func (e *Engine) find(name string) *Cheat {
	for _, c := range e.Cheats {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Patch returns the value the CPU sees when reading value from the
// given ROM address.
func (e *Engine) Patch(address uint16, value uint8) uint8 {
	for _, c := range e.Cheats {
		if !c.Enabled {
			continue
		}
		for _, g := range c.genie {
			if g.Address == address && g.OldData == value {
				return g.NewData
			}
		}
	}
	return value
}

// Apply performs the writes of every enabled GameShark code.
func (e *Engine) Apply(write func(address uint16, value uint8)) {
	for _, c := range e.Cheats {
		if !c.Enabled {
			continue
		}
		for _, s := range c.shark {
			write(s.Address, s.NewData)
		}
	}
}

// Load reads cheats in the following format:
//
//	# Infinite Lives
//	01099CC0
//	# Start on level 9
//	00A-17B-C49
//
// Blank lines are ignored.
func (e *Engine) Load(r io.Reader) error {
	scanner := bufio.NewScanner(r)

	var name string
	var codes []string
	flush := func() error {
		if name == "" {
			return nil
		}
		err := e.Add(name, codes...)
		name, codes = "", nil
		return err
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			continue
		case line[0] == '#':
			if err := flush(); err != nil {
				return err
			}
			name = strings.TrimSpace(line[1:])
		case name == "":
			return fmt.Errorf("cheats: code %q before a name", line)
		default:
			codes = append(codes, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	return flush()
}

// Save writes the cheats in the format read by Load.
func (e *Engine) Save(w io.Writer) error {
	for _, c := range e.Cheats {
		if _, err := fmt.Fprintf(w, "# %s\n", c.Name); err != nil {
			return err
		}
		for _, code := range c.codes {
			if _, err := fmt.Fprintln(w, code); err != nil {
				return err
			}
		}
	}
	return nil
}

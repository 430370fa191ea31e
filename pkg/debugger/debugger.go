// Package debugger serves a stepping debugger for a Game Boy over a
// websocket connection.
//
// Clients send JSON encoded Requests and receive a Response for each
// one. Memory regions are sent brotli compressed, and only when their
// contents changed since the client last received them.
package debugger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/cespare/xxhash"
	"github.com/gorilla/websocket"
	"github.com/thelolagemann/gbcore/internal/cpu"
	"github.com/thelolagemann/gbcore/internal/mmu"
	"github.com/thelolagemann/gbcore/pkg/log"
)

// FrameTime is the time between frames when the machine is running.
const FrameTime = time.Second * 70224 / 4194304

// Machine is the emulator being debugged. *gameboy.GameBoy
// satisfies it.
type Machine interface {
	RunSingleInstruction() int
	Frame() int
	RegisterSnapshot() cpu.Snapshot
	MemoryRegion(region mmu.Region, bank int) []byte
	Disassemble(pc uint16) (string, uint16)
}

// Server is an http.Handler that upgrades connections to websockets
// and serves debugger clients.
type Server struct {
	gb       Machine
	upgrader websocket.Upgrader

	// mu guards gb and running. Every access to the machine, from the
	// emulation loop or a client, holds it, so snapshots are only ever
	// taken between instructions.
	mu      sync.Mutex
	running bool
	wake    chan struct{}

	log log.Logger
}

// New returns a Server debugging gb. The machine starts paused.
func New(gb Machine, logger log.Logger) *Server {
	if logger == nil {
		logger = log.NewNullLogger()
	}
	return &Server{
		gb: gb,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		wake: make(chan struct{}, 1),
		log:  logger,
	}
}

// ServeHTTP upgrades the connection and serves the client until it
// disconnects.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Errorf("debugger: upgrading connection from %s: %v", r.RemoteAddr, err)
		return
	}
	s.log.Infof("debugger: client connected from %s", r.RemoteAddr)

	c := newClient(s, conn)
	go c.writePump()
	c.readPump()

	s.log.Infof("debugger: client %s disconnected", r.RemoteAddr)
}

// Run drives the machine while it is running, a frame at a time,
// until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ticker := time.NewTicker(FrameTime)
	defer ticker.Stop()

	for {
		if !s.Running() {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-s.wake:
			}
			continue
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.mu.Lock()
			if s.running {
				s.gb.Frame()
			}
			s.mu.Unlock()
		}
	}
}

// ListenAndServe serves the debugger on addr and runs the machine
// until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s}

	errs := make(chan error, 2)
	go func() {
		errs <- srv.ListenAndServe()
	}()
	go func() {
		errs <- s.Run(ctx)
	}()
	s.log.Infof("debugger: listening on %s", addr)

	select {
	case err := <-errs:
		srv.Close()
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// Running reports whether the machine is free running.
func (s *Server) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *Server) setRunning(running bool) {
	s.mu.Lock()
	s.running = running
	s.mu.Unlock()

	if running {
		select {
		case s.wake <- struct{}{}:
		default:
		}
	}
}

// handle executes a request on behalf of c.
func (s *Server) handle(c *client, req Request) Response {
	resp := Response{Command: req.Command}

	switch req.Command {
	case CommandStep:
		count := req.Count
		if count <= 0 {
			count = 1
		}
		s.mu.Lock()
		s.running = false
		for i := 0; i < count; i++ {
			resp.Cycles += s.gb.RunSingleInstruction()
		}
		s.registers(&resp)
		s.mu.Unlock()
	case CommandRun:
		s.setRunning(true)
	case CommandPause:
		s.setRunning(false)
		s.mu.Lock()
		s.registers(&resp)
		s.mu.Unlock()
	case CommandRegisters:
		s.mu.Lock()
		s.registers(&resp)
		s.mu.Unlock()
	case CommandMemory:
		region, ok := mmu.ParseRegion(req.Region)
		if !ok {
			resp.Error = "unknown region " + req.Region
			break
		}
		s.mu.Lock()
		data := s.gb.MemoryRegion(region, req.Bank)
		s.mu.Unlock()

		resp.Region, resp.Bank = region.String(), req.Bank
		if !c.changed(region, req.Bank, data) {
			break
		}
		compressed, err := compress(data)
		if err != nil {
			resp.Error = err.Error()
			break
		}
		resp.Changed = true
		resp.Data = compressed
	default:
		resp.Error = "unknown command " + req.Command
	}

	resp.Running = s.Running()
	return resp
}

// registers fills in the register snapshot. s.mu must be held.
func (s *Server) registers(resp *Response) {
	snapshot := s.gb.RegisterSnapshot()
	resp.Registers = newRegisters(snapshot)
	resp.Disassembly, _ = s.gb.Disassemble(snapshot.PC)
}

func compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := brotli.NewWriterLevel(&buf, brotli.DefaultCompression)
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decode(message []byte) (Request, error) {
	var req Request
	err := json.Unmarshal(message, &req)
	return req, err
}

type regionKey struct {
	region mmu.Region
	bank   int
}

// hashOf returns the fingerprint used to detect region changes.
func hashOf(data []byte) uint64 {
	return xxhash.Sum64(data)
}

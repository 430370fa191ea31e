package debugger

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"github.com/thelolagemann/gbcore/internal/mmu"
)

const writeWait = 10 * time.Second

type client struct {
	server *Server
	conn   *websocket.Conn
	send   chan []byte

	// last hash of each region sent to this client
	hashes map[regionKey]uint64
}

func newClient(s *Server, conn *websocket.Conn) *client {
	return &client{
		server: s,
		conn:   conn,
		send:   make(chan []byte, 16),
		hashes: make(map[regionKey]uint64),
	}
}

func (c *client) readPump() {
	defer func() {
		close(c.send)
		c.conn.Close()
	}()

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			return // connection closed
		}

		var resp Response
		if req, err := decode(message); err != nil {
			resp.Error = "malformed request: " + err.Error()
		} else {
			resp = c.server.handle(c, req)
		}

		b, err := json.Marshal(resp)
		if err != nil {
			c.server.log.Errorf("debugger: encoding response: %v", err)
			continue
		}
		c.send <- b
	}
}

func (c *client) writePump() {
	for message := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			c.conn.Close()
			// drain until the read pump notices the closed connection
			for range c.send {
			}
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}

// changed reports whether data differs from the copy of the region
// last sent to the client, and records its hash.
func (c *client) changed(region mmu.Region, bank int, data []byte) bool {
	key := regionKey{region, bank}
	hash := hashOf(data)
	if last, ok := c.hashes[key]; ok && last == hash {
		return false
	}
	c.hashes[key] = hash
	return true
}

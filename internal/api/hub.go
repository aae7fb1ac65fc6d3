/*
Package api
File: hub.go
Description:
    The WebSocket Hub pushes economy pulses to presentation clients.

    It keeps the registry of connected clients and fans every published
    message out to them. A client whose buffer is full is assumed gone and
    dropped. Presentation clients only listen: state changes travel the
    other way through the HTTP action endpoints.

    One Hub per server runs until its context ends; each Client is a
    browser tab or remote viewer with its own read and write loop.
*/

package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Socket timing.
const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
	sendBuffer = 256
)

// Message defines the JSON envelope for everything sent over the socket.
type Message struct {
	Type    string      `json:"type"`    // "state" or "ping"
	Payload interface{} `json:"payload"` // StateView pulse, scene frame attached when occupants moved
	Sender  string      `json:"sender"`  // Session ID or "system"
}

// Client is one connected viewer.
type Client struct {
	id     string
	hub    *Hub
	conn   *websocket.Conn
	outbox chan []byte
}

// Hub tracks connected viewers and fans pulses out to them.
type Hub struct {
	viewers map[*Client]struct{}

	pulses chan []byte
	joins  chan *Client
	leaves chan *Client
	done   chan struct{}

	greet func() (Message, error)
}

// NewHub creates a Hub. Start it with `go hub.Run(ctx)`.
func NewHub() *Hub {
	return &Hub{
		viewers: make(map[*Client]struct{}),
		pulses:  make(chan []byte, 16),
		joins:   make(chan *Client),
		leaves:  make(chan *Client),
		done:    make(chan struct{}),
	}
}

// OnJoin sets the message every new viewer receives before any pulse.
// Call it before Run. fn runs on the hub loop.
func (h *Hub) OnJoin(fn func() (Message, error)) {
	h.greet = fn
}

// welcome queues the join message for c.
func (h *Hub) welcome(c *Client) {
	if h.greet == nil {
		return
	}
	msg, err := h.greet()
	if err != nil {
		log.Printf("WS: greeting %s: %v", c.id, err)
		return
	}
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("WS: greeting %s: %v", c.id, err)
		return
	}
	c.outbox <- data // fresh outbox, never full
}

// drop forgets c and closes its outbox, which ends its write pump.
func (h *Hub) drop(c *Client) {
	if _, ok := h.viewers[c]; !ok {
		return
	}
	delete(h.viewers, c)
	close(c.outbox)
}

// Run is the hub's event loop. It returns when ctx is cancelled, after
// dropping every viewer.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for c := range h.viewers {
				h.drop(c)
			}
			log.Println("WS: Hub stopped")
			return

		case c := <-h.joins:
			h.viewers[c] = struct{}{}
			h.welcome(c)
			log.Printf("WS: Viewer %s joined (%d online)", c.id, len(h.viewers))

		case c := <-h.leaves:
			h.drop(c)
			log.Printf("WS: Viewer %s left (%d online)", c.id, len(h.viewers))

		case pulse := <-h.pulses:
			for c := range h.viewers {
				select {
				case c.outbox <- pulse:
				default:
					log.Printf("WS: Viewer %s too slow, dropped", c.id)
					h.drop(c)
				}
			}
		}
	}
}

// Publish marshals a message and queues it for every viewer. Once the hub
// has stopped it returns without queueing.
func (h *Hub) Publish(msgType, sender string, payload interface{}) error {
	data, err := json.Marshal(Message{Type: msgType, Payload: payload, Sender: sender})
	if err != nil {
		return fmt.Errorf("marshal %s message: %w", msgType, err)
	}
	select {
	case h.pulses <- data:
	case <-h.done:
	}
	return nil
}

// Any origin may connect, matching the permissive CORS policy.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// ServeWs upgrades the request and registers the new viewer.
func ServeWs(hub *Hub, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WS: upgrade: %v", err)
		return
	}

	c := &Client{id: uuid.NewString(), hub: hub, conn: conn, outbox: make(chan []byte, sendBuffer)}
	select {
	case hub.joins <- c:
	case <-hub.done:
		conn.Close()
		return
	}

	go c.writeLoop()
	go c.readLoop()
}

// readLoop discards inbound frames; viewers act through the HTTP API. It
// exists so pongs and close frames are processed.
func (c *Client) readLoop() {
	defer func() {
		select {
		case c.hub.leaves <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.NextReader(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WS: viewer %s: %v", c.id, err)
			}
			return
		}
	}
}

// writeLoop sends queued pulses and keeps the connection alive with pings.
func (c *Client) writeLoop() {
	ping := time.NewTicker(pingPeriod)
	defer func() {
		ping.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case pulse, ok := <-c.outbox:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// the hub dropped us
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, pulse); err != nil {
				return
			}

		case <-ping.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

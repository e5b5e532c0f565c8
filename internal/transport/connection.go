package transport

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/paschalwilson9-ops/mitsukis-room/internal/protocol"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// connection is one client's push channel plus its request/response
// round-trip path. A player may open more than one; each is independent
// and gets its own copy of every push event for the tables it watches.
type connection struct {
	ws     *websocket.Conn
	server *Server
	logger zerolog.Logger
	send   chan []byte
	token  string

	closeMu sync.Mutex
	closed  bool
}

func newConnection(ws *websocket.Conn, server *Server, logger zerolog.Logger) *connection {
	return &connection{ws: ws, server: server, logger: logger, send: make(chan []byte, 32)}
}

// markClosed and isClosed guard against sending on c.send after readPump
// has closed it; the hub can still hold a reference to c from a Publish
// call that started before unsubscribeAll ran.
func (c *connection) markClosed() {
	c.closeMu.Lock()
	c.closed = true
	c.closeMu.Unlock()
}

func (c *connection) isClosed() bool {
	c.closeMu.Lock()
	defer c.closeMu.Unlock()
	return c.closed
}

func (c *connection) sendEvent(ctx context.Context, event protocol.Event) error {
	if c.isClosed() {
		return nil
	}
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}
	c.closeMu.Lock()
	defer c.closeMu.Unlock()
	if c.closed {
		return nil
	}
	select {
	case c.send <- body:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *connection) sendResponse(resp protocol.Response) {
	if c.isClosed() {
		return
	}
	body, err := json.Marshal(resp)
	if err != nil {
		c.logger.Error().Err(err).Msg("marshaling response")
		return
	}
	c.closeMu.Lock()
	defer c.closeMu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.send <- body:
	default:
		c.logger.Warn().Str("op", resp.Op).Msg("dropping response, send buffer full")
	}
}

// readPump reads requests off the socket and dispatches them until the
// connection closes. It owns the only reader of c.ws, per gorilla's
// one-reader-one-writer contract.
func (c *connection) readPump() {
	defer func() {
		c.server.hub.unsubscribeAll(c)
		c.markClosed()
		c.ws.Close()
		close(c.send)
		if c.token != "" {
			c.server.registry.Disconnect(c.token)
		}
	}()
	c.ws.SetReadLimit(4096)
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, msg, err := c.ws.ReadMessage()
		if err != nil {
			return
		}
		var req protocol.Request
		if err := json.Unmarshal(msg, &req); err != nil {
			c.sendResponse(protocol.Response{Op: "error", Error: &protocol.ErrorBody{Kind: "validation", Code: "BadRequest", Message: err.Error()}})
			continue
		}
		c.server.handleRequest(c, req)
	}
}

// writePump owns the only writer of c.ws and multiplexes push events with
// response frames and the keepalive ping.
func (c *connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.ws.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				_ = c.ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Package transport is the websocket push channel described in the
// specification's external interfaces section: one connection per client
// socket, a join/state/action/leave/sit-out/return/rebuy/tables/history
// request-response path, and a fanned-out push event stream for everything
// a table does. It is the only piece of the system that knows about HTTP.
package transport

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/paschalwilson9-ops/mitsukis-room/internal/protocol"
)

// Registry is the subset of *registry.Registry the transport layer drives;
// declared as an interface so tests can substitute a fake.
type Registry interface {
	CreateTable() string
	Join(tableID, name string, buyIn int) (protocol.Welcome, *protocol.ErrorBody)
	State(token string) (protocol.PrivateView, *protocol.ErrorBody)
	Action(token, action string, amount int) (string, *protocol.ErrorBody)
	Leave(token string) (int, *protocol.ErrorBody)
	SitOut(token string) *protocol.ErrorBody
	Return(token string) *protocol.ErrorBody
	Rebuy(token string, amount int) (int, *protocol.ErrorBody)
	Tables() []protocol.PublicView
	History(tableID string, limit int) ([]protocol.HandRecord, *protocol.ErrorBody)
	Disconnect(token string)
}

// Server upgrades HTTP connections to websockets and routes each request
// frame to the registry. It also is the registry.Broadcaster every table
// actor publishes push events through.
type Server struct {
	registry Registry
	hub      *hub
	upgrader websocket.Upgrader
	logger   zerolog.Logger
}

// New wires a Server to reg. The Server itself (via Server.Publish) is the
// registry.Broadcaster the registry should be constructed with.
func New(reg Registry, logger zerolog.Logger) *Server {
	return &Server{
		registry: reg,
		hub:      newHub(),
		logger:   logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// SetRegistry finishes construction for the case where the registry itself
// needs this server as its Broadcaster: build the server with a nil
// registry, build the registry with the server, then call this once.
func (s *Server) SetRegistry(r Registry) {
	s.registry = r
}

// Publish implements registry.Broadcaster, fanning a push event out to
// every connection subscribed to event.TableID.
func (s *Server) Publish(event protocol.Event) {
	s.hub.Publish(event)
}

// ServeHTTP upgrades the request to a websocket and runs its pumps until
// the client disconnects.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	c := newConnection(ws, s, s.logger)
	go c.writePump()
	c.readPump()
}

func (s *Server) handleRequest(c *connection, req protocol.Request) {
	switch req.Op {
	case "join":
		tableID := req.TableID
		if tableID == "" {
			tableID = s.registry.CreateTable()
		}
		welcome, err := s.registry.Join(tableID, req.Name, req.BuyIn)
		if err == nil {
			c.token = welcome.Token
			s.hub.subscribe(tableID, c)
		}
		c.sendResponse(protocol.Response{Op: req.Op, Error: err, Welcome: &welcome})

	case "state":
		view, err := s.registry.State(req.Token)
		c.sendResponse(protocol.Response{Op: req.Op, Error: err, State: &view})

	case "action":
		tag, err := s.registry.Action(req.Token, req.Action, req.Amount)
		c.sendResponse(protocol.Response{Op: req.Op, Error: err, Ok: err == nil, Tag: tag})

	case "leave":
		stack, err := s.registry.Leave(req.Token)
		c.sendResponse(protocol.Response{Op: req.Op, Error: err, Ok: err == nil, Stack: stack})

	case "sit-out":
		err := s.registry.SitOut(req.Token)
		c.sendResponse(protocol.Response{Op: req.Op, Error: err, Ok: err == nil})

	case "return":
		err := s.registry.Return(req.Token)
		c.sendResponse(protocol.Response{Op: req.Op, Error: err, Ok: err == nil})

	case "rebuy":
		stack, err := s.registry.Rebuy(req.Token, req.Amount)
		c.sendResponse(protocol.Response{Op: req.Op, Error: err, Ok: err == nil, Stack: stack})

	case "tables":
		c.sendResponse(protocol.Response{Op: req.Op, Tables: s.registry.Tables()})

	case "history":
		records, err := s.registry.History(req.TableID, req.Limit)
		c.sendResponse(protocol.Response{Op: req.Op, Error: err, History: records})

	default:
		c.sendResponse(protocol.Response{Op: req.Op, Error: &protocol.ErrorBody{Kind: "validation", Code: "UnknownOp", Message: "unrecognized operation " + req.Op}})
	}
}

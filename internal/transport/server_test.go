package transport

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/paschalwilson9-ops/mitsukis-room/internal/game"
	"github.com/paschalwilson9-ops/mitsukis-room/internal/protocol"
	"github.com/paschalwilson9-ops/mitsukis-room/internal/registry"
)

func newTestServer(t *testing.T) (*httptest.Server, *Server, *quartz.Mock) {
	t.Helper()
	cfg := game.DefaultConfig()
	cfg.HandStartDelay = 0
	cfg.ShowdownDelay = 0
	cfg.SitOutAutoRemove = 0
	clock := quartz.NewMock(t)
	srv := New(nil, zerolog.Nop())
	reg := registry.New(cfg, clock, zerolog.Nop(), srv)
	srv.SetRegistry(reg)

	hs := httptest.NewServer(srv)
	t.Cleanup(hs.Close)
	return hs, srv, clock
}

func dial(t *testing.T, hs *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(hs.URL, "http") + "/"
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { ws.Close() })
	return ws
}

func roundTrip(t *testing.T, ws *websocket.Conn, req protocol.Request) protocol.Response {
	t.Helper()
	require.NoError(t, ws.WriteJSON(req))
	var resp protocol.Response
	require.NoError(t, ws.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, ws.ReadJSON(&resp))
	return resp
}

func TestJoinOverWebsocketReturnsAWelcome(t *testing.T) {
	t.Parallel()
	hs, _, _ := newTestServer(t)
	ws := dial(t, hs)

	resp := roundTrip(t, ws, protocol.Request{Op: "join", Name: "Alpha", BuyIn: 200})
	require.Nil(t, resp.Error)
	require.NotEmpty(t, resp.Welcome.Token)
	require.NotEmpty(t, resp.Welcome.TableID)
}

func TestFirstJoinerReceivesActionOnPushOnceSecondJoins(t *testing.T) {
	t.Parallel()
	hs, _, clock := newTestServer(t)
	ws1 := dial(t, hs)
	ws2 := dial(t, hs)

	first := roundTrip(t, ws1, protocol.Request{Op: "join", Name: "Alpha", BuyIn: 200})
	require.Nil(t, first.Error)

	second := roundTrip(t, ws2, protocol.Request{Op: "join", Name: "Beta", BuyIn: 200, TableID: first.Welcome.TableID})
	require.Nil(t, second.Error)

	clock.Advance(time.Millisecond).MustWait(t.Context())

	require.NoError(t, ws1.SetReadDeadline(time.Now().Add(2*time.Second)))
	var raw json.RawMessage
	sawActionOn := false
	for i := 0; i < 10; i++ {
		if err := ws1.ReadJSON(&raw); err != nil {
			break
		}
		var event protocol.Event
		if err := json.Unmarshal(raw, &event); err == nil && event.Type == protocol.EventActionOn {
			sawActionOn = true
			break
		}
	}
	require.True(t, sawActionOn, "expected the first connection to observe an action_on push once the hand starts")
}

func TestUnknownOpReturnsValidationError(t *testing.T) {
	t.Parallel()
	hs, _, _ := newTestServer(t)
	ws := dial(t, hs)

	resp := roundTrip(t, ws, protocol.Request{Op: "bogus"})
	require.NotNil(t, resp.Error)
	require.Equal(t, "UnknownOp", resp.Error.Code)
}

package transport

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/paschalwilson9-ops/mitsukis-room/internal/protocol"
)

// hub tracks which connections are watching which table and fans a push
// event out to all of them concurrently. Delivery is best-effort: a slow or
// dead connection's write times out and that event is lost for it, without
// blocking the other watchers; the connection stays in the table's watcher
// set until its read pump ends, matching the
// specification's "best-effort, idempotent" push-channel policy.
type hub struct {
	mu       sync.RWMutex
	watchers map[string]map[*connection]bool
}

func newHub() *hub {
	return &hub{watchers: make(map[string]map[*connection]bool)}
}

func (h *hub) subscribe(tableID string, c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.watchers[tableID]
	if !ok {
		set = make(map[*connection]bool)
		h.watchers[tableID] = set
	}
	set[c] = true
}

func (h *hub) unsubscribeAll(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, set := range h.watchers {
		delete(set, c)
	}
}

// Publish implements registry.Broadcaster.
func (h *hub) Publish(event protocol.Event) {
	h.mu.RLock()
	set := h.watchers[event.TableID]
	conns := make([]*connection, 0, len(set))
	for c := range set {
		conns = append(conns, c)
	}
	h.mu.RUnlock()
	if len(conns) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	g, _ := errgroup.WithContext(ctx)
	for _, c := range conns {
		c := c
		g.Go(func() error {
			return c.sendEvent(ctx, event)
		})
	}
	_ = g.Wait()
}

package registry

import "github.com/paschalwilson9-ops/mitsukis-room/internal/protocol"

// NoopBroadcaster discards every event; useful for tools that only need
// the request/response half of the registry (e.g. offline simulation).
type NoopBroadcaster struct{}

func (NoopBroadcaster) Publish(protocol.Event) {}

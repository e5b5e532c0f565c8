// Package registry is the cross-table shared structure described in the
// specification's concurrency model: a token→tableId map and a
// tableId→actor map, both touched only on join/leave/create/destroy. Each
// table actor serializes every action, timer fire, and disconnect event
// that touches its game.Table through a single inbox channel, so the table
// itself never needs its own lock.
package registry

import (
	"strings"
	"sync"
	"time"

	"github.com/coder/quartz"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/paschalwilson9-ops/mitsukis-room/internal/game"
	"github.com/paschalwilson9-ops/mitsukis-room/internal/protocol"
	"github.com/paschalwilson9-ops/mitsukis-room/internal/randutil"
	"github.com/paschalwilson9-ops/mitsukis-room/internal/scheduler"
)

// Registry owns every live table and the token→table routing map.
type Registry struct {
	mu      sync.RWMutex
	tables  map[string]*tableActor
	byToken map[string]string

	cfg         game.Config
	clock       quartz.Clock
	logger      zerolog.Logger
	broadcaster Broadcaster
}

// New creates an empty registry. broadcaster receives every push event from
// every table the registry creates.
func New(cfg game.Config, clock quartz.Clock, logger zerolog.Logger, broadcaster Broadcaster) *Registry {
	return &Registry{
		tables:      make(map[string]*tableActor),
		byToken:     make(map[string]string),
		cfg:         cfg,
		clock:       clock,
		logger:      logger,
		broadcaster: broadcaster,
	}
}

// tableActor wraps one game.Table with the single serialized inbox that
// makes it safe to drive from many client goroutines at once.
type tableActor struct {
	id          string
	cfg         game.Config
	table       *game.Table
	sched       *scheduler.TurnScheduler
	clock       quartz.Clock
	broadcaster Broadcaster
	inbox       chan func()

	tokMu  sync.RWMutex
	tokens map[string]bool

	sitOutTimers map[string]*quartz.Timer

	// forgetToken clears the registry-level token→table routing entry; the
	// actor cannot reach into Registry.byToken itself, so CreateTable wires
	// this closure in once the actor exists. Only the auto-removal timer
	// needs it, since every other removal path already goes through a
	// Registry method that cleans up byToken itself after a.submit returns.
	forgetToken func(token string)
}

func newTableActor(id string, cfg game.Config, clock quartz.Clock, logger zerolog.Logger, broadcaster Broadcaster) *tableActor {
	a := &tableActor{
		id: id, cfg: cfg, clock: clock, broadcaster: broadcaster,
		inbox: make(chan func(), 64), tokens: make(map[string]bool),
		sitOutTimers: make(map[string]*quartz.Timer),
	}
	a.sched = scheduler.New(clock, logger.With().Str("table", id).Logger(), a.onTurnExpire, a.onTurnTick)
	seed := time.Now().UnixNano()
	a.table = game.NewTable(id, cfg, randutil.New(seed), actorSink{actor: a})
	go a.loop()
	return a
}

// armSitOutTimer (re)starts the auto-removal timer for token, per the
// specification's "restarted on each sit-out entry" rule. It is a no-op
// when SitOutAutoRemove is disabled. Called only from the actor's own
// goroutine.
func (a *tableActor) armSitOutTimer(token string) {
	a.cancelSitOutTimer(token)
	if a.cfg.SitOutAutoRemove <= 0 {
		return
	}
	a.sitOutTimers[token] = a.clock.AfterFunc(a.cfg.SitOutAutoRemove, func() {
		a.submit(func() {
			delete(a.sitOutTimers, token)
			_ = a.table.RemovePlayer(token)
			a.removeToken(token)
		})
		if a.forgetToken != nil {
			a.forgetToken(token)
		}
	})
}

// cancelSitOutTimer stops token's auto-removal timer, if any: cancelled on
// return-from-sit-out or leave. Called only from the actor's own goroutine.
func (a *tableActor) cancelSitOutTimer(token string) {
	if timer, ok := a.sitOutTimers[token]; ok {
		timer.Stop()
		delete(a.sitOutTimers, token)
	}
}

func (a *tableActor) loop() {
	for fn := range a.inbox {
		fn()
	}
}

// submit enqueues fn to run on the actor's own goroutine and blocks until
// it has run, giving callers a synchronous call style over an actor.
func (a *tableActor) submit(fn func()) {
	done := make(chan struct{})
	a.inbox <- func() {
		fn()
		close(done)
	}
	<-done
}

func (a *tableActor) onTurnExpire(fp scheduler.Fingerprint) {
	a.submit(func() {
		pub := a.table.ToPublicJSON()
		if pub.HandNumber != fp.HandNumber || int(pub.Phase) != fp.Street || pub.CurrentActor != fp.Seat {
			return
		}
		seat := pub.Seats[fp.Seat]
		if seat == nil {
			return
		}
		_ = a.table.HandleAction(a.tokenAt(fp.Seat), game.Action{Kind: game.Fold})
	})
}

func (a *tableActor) onTurnTick(fp scheduler.Fingerprint, remaining int) {
	a.broadcaster.Publish(protocol.Event{
		Type: protocol.EventActionOn, TableID: a.id, Seat: fp.Seat, TimeBank: remaining,
	})
}

// tokenAt resolves a seat index back to its player's token; called only
// from within the actor's own goroutine.
func (a *tableActor) tokenAt(seat int) string {
	pub := a.table.ToPublicJSON()
	if seat < 0 || seat >= len(pub.Seats) || pub.Seats[seat] == nil {
		return ""
	}
	// the public view never carries tokens (they're private); resolve via
	// the private view of whichever seat is asking, which is always legal
	// for a table to compute about its own seat.
	for _, tok := range a.seatedTokens() {
		if v, err := a.table.GetStateForPlayer(tok); err == nil && v.YourSeat == seat {
			return tok
		}
	}
	return ""
}

// seatedTokens is tracked by the registry rather than the table (the table
// never exposes tokens in bulk); tableActor keeps its own shadow set.
func (a *tableActor) seatedTokens() []string {
	a.tokMu.RLock()
	defer a.tokMu.RUnlock()
	out := make([]string, 0, len(a.tokens))
	for t := range a.tokens {
		out = append(out, t)
	}
	return out
}

// CreateTable allocates a fresh table with a generated id.
func (r *Registry) CreateTable() string {
	id := uuid.NewString()
	a := newTableActor(id, r.cfg, r.clock, r.logger, r.broadcaster)
	a.forgetToken = func(token string) {
		r.mu.Lock()
		delete(r.byToken, token)
		r.mu.Unlock()
	}
	r.mu.Lock()
	r.tables[id] = a
	r.mu.Unlock()
	return id
}

func (r *Registry) lookup(tableID string) (*tableActor, *game.Error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.tables[tableID]
	if !ok {
		return nil, game.ErrUnknownTable
	}
	return a, nil
}

func (r *Registry) lookupByToken(token string) (*tableActor, *game.Error) {
	r.mu.RLock()
	tableID, ok := r.byToken[token]
	r.mu.RUnlock()
	if !ok {
		return nil, game.ErrUnknownPlayer
	}
	return r.lookup(tableID)
}

// Join seats a new player at tableID, generating an opaque session token.
func (r *Registry) Join(tableID, name string, buyIn int) (protocol.Welcome, *protocol.ErrorBody) {
	a, err := r.lookup(tableID)
	if err != nil {
		return protocol.Welcome{}, toErrorBody(err)
	}
	if strings.TrimSpace(name) == "" {
		return protocol.Welcome{}, toErrorBody(game.ErrInvalidName("name must not be blank"))
	}
	if buyIn < a.cfg.MinBuyIn || buyIn > a.cfg.MaxBuyIn {
		return protocol.Welcome{}, toErrorBody(game.ErrInvalidBuyIn(buyIn, a.cfg.MinBuyIn, a.cfg.MaxBuyIn))
	}

	token := uuid.NewString()
	var seat int
	var seatErr *game.Error
	a.submit(func() {
		p := game.NewPlayer(token, name, buyIn, a.cfg.TimeBankSeconds, a.cfg.DefaultElo)
		seat, seatErr = a.table.SeatPlayer(p)
		if seatErr == nil {
			a.addToken(token)
			a.scheduleHandStart(a.cfg.HandStartDelay)
		}
	})
	if seatErr != nil {
		return protocol.Welcome{}, toErrorBody(seatErr)
	}

	r.mu.Lock()
	r.byToken[token] = tableID
	r.mu.Unlock()

	return protocol.Welcome{Token: token, Seat: seat, TableID: tableID}, nil
}

// State returns the private view for token.
func (r *Registry) State(token string) (protocol.PrivateView, *protocol.ErrorBody) {
	a, err := r.lookupByToken(token)
	if err != nil {
		return protocol.PrivateView{}, toErrorBody(err)
	}
	var view game.PrivateView
	var gerr *game.Error
	a.submit(func() { view, gerr = a.table.GetStateForPlayer(token) })
	if gerr != nil {
		return protocol.PrivateView{}, toErrorBody(gerr)
	}
	return toPrivateView(view), nil
}

// Action applies a player's decision.
func (r *Registry) Action(token, action string, amount int) (string, *protocol.ErrorBody) {
	a, err := r.lookupByToken(token)
	if err != nil {
		return "", toErrorBody(err)
	}
	kind, ok := actionKindFromString(action)
	if !ok {
		return "", toErrorBody(game.ErrIllegalAction("unrecognized action"))
	}
	var gerr *game.Error
	a.submit(func() { gerr = a.table.HandleAction(token, game.Action{Kind: kind, Amount: amount}) })
	if gerr != nil {
		return "", toErrorBody(gerr)
	}
	return action, nil
}

// Leave removes a player from their table and returns their final stack.
func (r *Registry) Leave(token string) (int, *protocol.ErrorBody) {
	a, err := r.lookupByToken(token)
	if err != nil {
		return 0, toErrorBody(err)
	}
	var stack int
	var gerr *game.Error
	a.submit(func() {
		stack = a.stackOf(token)
		a.cancelSitOutTimer(token)
		gerr = a.table.RemovePlayer(token)
		if gerr == nil {
			a.removeToken(token)
		}
	})
	if gerr != nil {
		return 0, toErrorBody(gerr)
	}
	r.mu.Lock()
	delete(r.byToken, token)
	r.mu.Unlock()
	return stack, nil
}

// SitOut marks a player sitting out and starts their auto-removal timer,
// restarted on every sit-out entry per the specification.
func (r *Registry) SitOut(token string) *protocol.ErrorBody {
	return r.simpleOp(token, func(a *tableActor) *game.Error {
		err := a.table.SetSitOut(token)
		if err == nil {
			a.armSitOutTimer(token)
		}
		return err
	})
}

// Return clears a player's sit-out status and cancels their auto-removal
// timer.
func (r *Registry) Return(token string) *protocol.ErrorBody {
	return r.simpleOp(token, func(a *tableActor) *game.Error {
		a.cancelSitOutTimer(token)
		err := a.table.ReturnFromSitOut(token)
		if err == nil {
			_ = a.table.StartHand()
		}
		return err
	})
}

// Disconnect translates a lost transport connection into the same sit-out
// plus auto-fold-if-on-turn treatment a voluntary sit-out gets, arming the
// same auto-removal timer. Silently does nothing for a token the registry
// no longer knows about, since a socket can drop well after its player
// already left.
func (r *Registry) Disconnect(token string) {
	a, err := r.lookupByToken(token)
	if err != nil {
		return
	}
	a.submit(func() {
		if gerr := a.table.Disconnect(token); gerr == nil {
			a.armSitOutTimer(token)
		}
	})
}

func (r *Registry) simpleOp(token string, fn func(*tableActor) *game.Error) *protocol.ErrorBody {
	a, err := r.lookupByToken(token)
	if err != nil {
		return toErrorBody(err)
	}
	var gerr *game.Error
	a.submit(func() { gerr = fn(a) })
	return toErrorBody(gerr)
}

// Rebuy tops up a player's stack.
func (r *Registry) Rebuy(token string, amount int) (int, *protocol.ErrorBody) {
	a, err := r.lookupByToken(token)
	if err != nil {
		return 0, toErrorBody(err)
	}
	var stack int
	var gerr *game.Error
	a.submit(func() { stack, gerr = a.table.Rebuy(token, amount) })
	if gerr != nil {
		return 0, toErrorBody(gerr)
	}
	return stack, nil
}

// Tables returns the public view of every live table.
func (r *Registry) Tables() []protocol.PublicView {
	r.mu.RLock()
	actors := make([]*tableActor, 0, len(r.tables))
	for _, a := range r.tables {
		actors = append(actors, a)
	}
	r.mu.RUnlock()

	out := make([]protocol.PublicView, 0, len(actors))
	for _, a := range actors {
		var pub game.Public
		a.submit(func() { pub = a.table.ToPublicJSON() })
		out = append(out, toPublicView(pub))
	}
	return out
}

// History returns up to limit of tableID's most recent completed hands.
func (r *Registry) History(tableID string, limit int) ([]protocol.HandRecord, *protocol.ErrorBody) {
	a, err := r.lookup(tableID)
	if err != nil {
		return nil, toErrorBody(err)
	}
	var records []game.HandHistory
	a.submit(func() { records = a.table.History(limit) })
	return toHandRecords(records), nil
}

// addToken and removeToken run on the actor goroutine; tokMu exists only
// because seatedTokens is read from there too and Go's race detector can't
// otherwise see that both sides are serialized through the same inbox.
func (a *tableActor) addToken(token string) {
	a.tokMu.Lock()
	a.tokens[token] = true
	a.tokMu.Unlock()
}

func (a *tableActor) removeToken(token string) {
	a.tokMu.Lock()
	delete(a.tokens, token)
	a.tokMu.Unlock()
}

func (a *tableActor) stackOf(token string) int {
	view, err := a.table.GetStateForPlayer(token)
	if err != nil {
		return 0
	}
	seat := view.Seats[view.YourSeat]
	if seat == nil {
		return 0
	}
	return seat.Stack
}

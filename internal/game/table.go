package game

import (
	"math/rand"

	"github.com/paschalwilson9-ops/mitsukis-room/internal/deck"
)

// Table owns exactly one hand at a time: seating, button rotation, blinds,
// streets, action validation, and phase advance. A Table is not safe for
// concurrent use — the specification's per-table actor model means every
// call into a Table happens from a single goroutine that drains one
// serialized queue of actions, timer fires, and disconnect notifications.
// internal/registry supplies that queue; Table itself stays a plain,
// synchronous state machine so its invariants are easy to read straight off
// the code.
type Table struct {
	ID     string
	config Config

	seats [MaxSeats]*Player
	deck  *deck.Deck
	rng   *rand.Rand

	community []deck.Card
	pot       int
	pots      []Pot

	phase           Street
	dealerSeat      int
	currentBetLevel int
	minRaise        int
	currentActor    int // -1 means no actor has the turn

	handNumber int
	log        []string

	history *historyRing
	sink    EventSink

	lastAggressorSeat int // -1 when nobody has raised yet this street
}

// NewTable creates an empty table ready to seat players.
func NewTable(id string, config Config, rng *rand.Rand, sink EventSink) *Table {
	if sink == nil {
		sink = nopSink{}
	}
	return &Table{
		ID:                id,
		config:            config,
		deck:              deck.NewDeck(rng),
		rng:               rng,
		phase:             WaitingStreet,
		dealerSeat:        -1,
		currentActor:      -1,
		lastAggressorSeat: -1,
		history:           newHistoryRing(config.MaxHandHistory),
		sink:               sink,
	}
}

// seatedCount returns how many seats are occupied.
func (t *Table) seatedCount() int {
	n := 0
	for _, p := range t.seats {
		if p != nil {
			n++
		}
	}
	return n
}

// SeatPlayer seats a new player into the lowest empty seat.
func (t *Table) SeatPlayer(p *Player) (int, *Error) {
	if t.seatedCount() >= t.config.MaxPlayers {
		return 0, ErrTableFull
	}
	for _, existing := range t.seats {
		if existing != nil && existing.Name == p.Name {
			return 0, ErrDuplicateName(p.Name)
		}
	}
	for i, existing := range t.seats {
		if existing == nil {
			t.seats[i] = p
			t.sink.PlayerJoined(t.ID, i, p.Name)
			return i, nil
		}
	}
	return 0, ErrTableFull
}

// seatOf resolves a token to its seat index, or -1 if not seated.
func (t *Table) seatOf(token string) int {
	for i, p := range t.seats {
		if p != nil && p.Token == token {
			return i
		}
	}
	return -1
}

// RemovePlayer removes a seated player. If they held the current action and
// a hand is live, they are auto-folded first so the hand can proceed.
func (t *Table) RemovePlayer(token string) *Error {
	seat := t.seatOf(token)
	if seat < 0 {
		return ErrUnknownPlayer
	}
	if t.phase != WaitingStreet && t.phase != Showdown && t.currentActor == seat {
		t.applyAction(seat, Action{Kind: Fold})
	}
	finalStack := t.seats[seat].Stack
	t.seats[seat] = nil
	t.sink.PlayerLeft(t.ID, seat, token, finalStack)
	return nil
}

// SetSitOut marks a player sitting out. If it is currently their turn, they
// are auto-folded.
func (t *Table) SetSitOut(token string) *Error {
	seat := t.seatOf(token)
	if seat < 0 {
		return ErrUnknownPlayer
	}
	p := t.seats[seat]
	p.SitOut = true
	if t.currentActor == seat && t.phase != WaitingStreet && t.phase != Showdown {
		t.applyAction(seat, Action{Kind: Fold})
	} else if p.Status == Waiting || p.Status == Active {
		p.Status = SittingOut
	}
	return nil
}

// Disconnect marks a player's session as dropped by the transport layer. It
// behaves exactly like a voluntary sit-out (auto-folding the seat if it
// currently holds the action) but also flags Disconnected, so a client that
// reconnects with the same token can be told apart from one that chose to
// sit out.
func (t *Table) Disconnect(token string) *Error {
	seat := t.seatOf(token)
	if seat < 0 {
		return ErrUnknownPlayer
	}
	t.seats[seat].Disconnected = true
	return t.SetSitOut(token)
}

// ReturnFromSitOut clears sit-out status; the player rejoins the deal on the
// next hand.
func (t *Table) ReturnFromSitOut(token string) *Error {
	seat := t.seatOf(token)
	if seat < 0 {
		return ErrUnknownPlayer
	}
	p := t.seats[seat]
	p.SitOut = false
	p.Disconnected = false
	if p.Status == SittingOut {
		p.Status = Waiting
	}
	return nil
}

// Rebuy tops up a player's stack, bounded by MaxBuyIn against their current
// stack plus the top-up.
func (t *Table) Rebuy(token string, amount int) (int, *Error) {
	seat := t.seatOf(token)
	if seat < 0 {
		return 0, ErrUnknownPlayer
	}
	p := t.seats[seat]
	if p.Stack+amount > t.config.MaxBuyIn {
		return 0, ErrExceedsMaxBuyIn(p.Stack+amount, t.config.MaxBuyIn)
	}
	p.Stack += amount
	return p.Stack, nil
}

// SetTimeBankForSeat persists the time bank seconds left at the end of a
// turn back onto the seat's player, so the next time that seat is
// prompted it is charged against what is left rather than a fresh bank.
func (t *Table) SetTimeBankForSeat(seat int, seconds int) {
	if seat < 0 || seat >= MaxSeats || t.seats[seat] == nil {
		return
	}
	if seconds < 0 {
		seconds = 0
	}
	t.seats[seat].TimeBank = seconds
}

// HandleAction is the primary entry point for a client decision.
func (t *Table) HandleAction(token string, action Action) *Error {
	seat := t.seatOf(token)
	if seat < 0 {
		return ErrUnknownPlayer
	}
	if t.phase == WaitingStreet || t.phase == Showdown {
		return ErrNoActiveHand
	}
	if t.currentActor != seat {
		return ErrNotYourTurn
	}
	p := t.seats[seat]
	if err := t.validateAction(p, action); err != nil {
		return err
	}
	t.applyAction(seat, action)
	return nil
}

func (t *Table) validateAction(p *Player, action Action) *Error {
	switch action.Kind {
	case Fold:
		return nil
	case Check:
		if toCall(p, t.currentBetLevel) != 0 {
			return ErrIllegalAction("cannot check with a bet outstanding")
		}
		return nil
	case Call:
		if toCall(p, t.currentBetLevel) == 0 {
			return ErrIllegalAction("nothing to call")
		}
		return nil
	case Raise:
		return validateRaise(p, action.Amount, t.currentBetLevel, t.minRaise)
	default:
		return ErrIllegalAction("unrecognized action")
	}
}

// PrivateView is the state a specific player is entitled to see: their own
// hole cards plus the public view of every seat.
type PrivateView struct {
	Public
	YourSeat      int
	YourHoleCards []deck.Card
}

// GetStateForPlayer returns the private view for token.
func (t *Table) GetStateForPlayer(token string) (PrivateView, *Error) {
	seat := t.seatOf(token)
	if seat < 0 {
		return PrivateView{}, ErrUnknownPlayer
	}
	return PrivateView{
		Public:        t.publicView(),
		YourSeat:      seat,
		YourHoleCards: t.seats[seat].HoleCards,
	}, nil
}

// Public is the no-hole-cards view of the table, safe to broadcast to
// everyone.
type Public struct {
	ID              string
	HandNumber      int
	Phase           Street
	DealerSeat      int
	CurrentActor    int
	CurrentBetLevel int
	MinRaise        int
	Pot             int
	Community       []deck.Card
	Pots            []Pot
	Seats           [MaxSeats]*PublicSeat
}

// PublicSeat is one seat's publicly visible information.
type PublicSeat struct {
	Name             string
	Stack            int
	Status           Status
	CurrentBet       int
	TotalBetThisHand int
}

// ToPublicJSON returns the public, no-hole-cards view of the table.
func (t *Table) ToPublicJSON() Public {
	return t.publicView()
}

// History returns up to limit of the table's most recently completed
// hands, newest first. limit <= 0 returns every retained record.
func (t *Table) History(limit int) []HandHistory {
	return t.history.recent(limit)
}

func (t *Table) publicView() Public {
	v := Public{
		ID:              t.ID,
		HandNumber:      t.handNumber,
		Phase:           t.phase,
		DealerSeat:      t.dealerSeat,
		CurrentActor:    t.currentActor,
		CurrentBetLevel: t.currentBetLevel,
		MinRaise:        t.minRaise,
		Pot:             t.pot,
		Community:       t.community,
		Pots:            t.pots,
	}
	for i, p := range t.seats {
		if p == nil {
			continue
		}
		v.Seats[i] = &PublicSeat{
			Name:             p.Name,
			Stack:            p.Stack,
			Status:           p.Status,
			CurrentBet:       p.CurrentBet,
			TotalBetThisHand: p.TotalBetThisHand,
		}
	}
	return v
}

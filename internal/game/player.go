package game

import "github.com/paschalwilson9-ops/mitsukis-room/internal/deck"

// MaxSeats bounds how many seats a table offers.
const MaxSeats = 9

// Status is a player's standing within the hand currently in progress.
type Status int

const (
	Waiting Status = iota
	Active
	Folded
	AllIn
	SittingOut
)

func (s Status) String() string {
	switch s {
	case Waiting:
		return "waiting"
	case Active:
		return "active"
	case Folded:
		return "folded"
	case AllIn:
		return "all-in"
	case SittingOut:
		return "sitting-out"
	default:
		return "unknown"
	}
}

// Player is one seated session. Every field here is owned exclusively by the
// table that seats it; nothing outside the table actor mutates it.
type Player struct {
	Token string
	Name  string

	Stack     int
	HoleCards []deck.Card
	Status    Status

	CurrentBet       int
	TotalBetThisHand int

	// acted is cleared at the start of every betting round and set the
	// first time the player takes a voluntary action that round. Blinds do
	// not set it; see the round-completion rule.
	acted bool

	// canRaise is cleared when an incomplete all-in raise bumps the bet
	// level after this player has already closed their action at the
	// prior level. It is restored for everyone the moment a full raise
	// reopens action.
	canRaise bool

	TimeBank int

	SitOut       bool
	Disconnected bool

	HandsWon int
	Elo      float64
}

// NewPlayer seats a fresh session with the given buy-in and a starting ELO.
func NewPlayer(token, name string, buyIn int, timeBank int, startingElo float64) *Player {
	return &Player{
		Token:    token,
		Name:     name,
		Stack:    buyIn,
		Status:   Waiting,
		TimeBank: timeBank,
		Elo:      startingElo,
	}
}

// resetForHand clears every piece of per-hand state and recomputes status.
func (p *Player) resetForHand() {
	p.HoleCards = nil
	p.CurrentBet = 0
	p.TotalBetThisHand = 0
	p.acted = false
	p.canRaise = true
	if p.Stack > 0 && !p.SitOut {
		p.Status = Active
	} else {
		p.Status = SittingOut
	}
}

// resetForStreet clears the per-round fields at the start of each new street.
func (p *Player) resetForStreet() {
	p.CurrentBet = 0
	p.acted = false
	p.canRaise = true
}

// commit moves up to amount chips from the player's stack into the pot,
// going all-in if the stack can't cover it. It returns the amount actually
// committed.
func (p *Player) commit(amount int) int {
	if amount > p.Stack {
		amount = p.Stack
	}
	p.Stack -= amount
	p.CurrentBet += amount
	p.TotalBetThisHand += amount
	if p.Stack == 0 && p.Status != Folded {
		p.Status = AllIn
	}
	return amount
}

// eligibleForHand reports whether the player can be dealt into the next
// hand: seated, funded, and not sitting out.
func (p *Player) eligibleForHand() bool {
	return p != nil && p.Stack > 0 && !p.SitOut
}

// contending reports whether the player can still win a pot this hand.
func (p *Player) contending() bool {
	return p.Status == Active || p.Status == AllIn
}

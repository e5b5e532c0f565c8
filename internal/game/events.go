package game

import "github.com/paschalwilson9-ops/mitsukis-room/internal/deck"

// EventSink receives every push event a table produces. The table calls
// these synchronously, in commit order, from inside its own actor
// goroutine; the implementation (internal/registry's actorSink) turns each
// call into a push event for the transport layer to fan out to every
// connection subscribed to the table without blocking the table actor for
// long.
type EventSink interface {
	PlayerJoined(tableID string, seat int, name string)
	PlayerLeft(tableID string, seat int, token string, finalStack int)
	BlindsPosted(tableID string, handNumber int, sb, bb int, sbSeat, bbSeat int)
	CardsDealt(tableID string, handNumber int)
	ActionOn(tableID string, seat int, info ActionOnInfo)
	PlayerAction(tableID string, seat int, action Action)
	CommunityCards(tableID string, street Street, community []deck.Card)
	Showdown(tableID string, result HandHistory)
	HandComplete(tableID string, handNumber int)
	Mitsuki(tableID string, narration string)
}

// ActionOnInfo is the payload required on every action_on push event.
type ActionOnInfo struct {
	Pot             int
	CurrentBetLevel int
	PlayerBet       int
	ToCall          int
	MinRaise        int
	TimeBankSeconds int
	Valid           []ValidAction
}

// nopSink discards every event; used where a table is exercised without a
// transport layer attached, such as in tests.
type nopSink struct{}

func (nopSink) PlayerJoined(string, int, string)                     {}
func (nopSink) PlayerLeft(string, int, string, int)                  {}
func (nopSink) BlindsPosted(string, int, int, int, int, int)         {}
func (nopSink) CardsDealt(string, int)                               {}
func (nopSink) ActionOn(string, int, ActionOnInfo)                   {}
func (nopSink) PlayerAction(string, int, Action)                     {}
func (nopSink) CommunityCards(string, Street, []deck.Card)           {}
func (nopSink) Showdown(string, HandHistory)                         {}
func (nopSink) HandComplete(string, int)                             {}
func (nopSink) Mitsuki(string, string)                                {}

package registry

import (
	"time"

	"github.com/paschalwilson9-ops/mitsukis-room/internal/deck"
	"github.com/paschalwilson9-ops/mitsukis-room/internal/game"
	"github.com/paschalwilson9-ops/mitsukis-room/internal/protocol"
	"github.com/paschalwilson9-ops/mitsukis-room/internal/scheduler"
)

// Broadcaster fans a push event out to every connection watching a table.
// internal/transport implements this; tests use a recording stub.
type Broadcaster interface {
	Publish(event protocol.Event)
}

// actorSink adapts a tableActor into a game.EventSink: every table callback
// becomes a protocol.Event published to the broadcaster, and the
// timer-relevant callbacks (ActionOn, PlayerAction, PlayerLeft)
// additionally arm or release the turn scheduler.
type actorSink struct {
	actor *tableActor
}

func (s actorSink) PlayerJoined(tableID string, seat int, name string) {
	s.actor.broadcaster.Publish(protocol.Event{Type: protocol.EventPlayerJoined, TableID: tableID, Seat: seat, Name: name})
}

func (s actorSink) PlayerLeft(tableID string, seat int, token string, finalStack int) {
	_ = s.actor.sched.Cancel(s.actor.fingerprint(seat))
	s.actor.broadcaster.Publish(protocol.Event{Type: protocol.EventPlayerLeft, TableID: tableID, Seat: seat, Token: token, Stack: finalStack})
}

func (s actorSink) BlindsPosted(tableID string, handNumber int, sb, bb int, sbSeat, bbSeat int) {
	s.actor.broadcaster.Publish(protocol.Event{
		Type: protocol.EventBlindsPosted, TableID: tableID, HandNumber: handNumber,
		SmallBlind: sb, BigBlind: bb, SBSeat: sbSeat, BBSeat: bbSeat,
	})
}

func (s actorSink) CardsDealt(tableID string, handNumber int) {
	s.actor.broadcaster.Publish(protocol.Event{Type: protocol.EventCardsDealt, TableID: tableID, HandNumber: handNumber})
}

func (s actorSink) ActionOn(tableID string, seat int, info game.ActionOnInfo) {
	fp := s.actor.fingerprint(seat)
	s.actor.sched.Arm(fp, s.actor.cfg.TurnTimer, info.TimeBankSeconds)
	s.actor.broadcaster.Publish(protocol.Event{
		Type: protocol.EventActionOn, TableID: tableID, Seat: seat,
		Pot: info.Pot, CurrentBetLevel: info.CurrentBetLevel, PlayerBet: info.PlayerBet,
		ToCall: info.ToCall, MinRaise: info.MinRaise, TimeBank: info.TimeBankSeconds,
		Valid: toValidActions(info.Valid),
	})
}

func (s actorSink) PlayerAction(tableID string, seat int, action game.Action) {
	remaining := s.actor.sched.Cancel(s.actor.fingerprint(seat))
	s.actor.table.SetTimeBankForSeat(seat, remaining)
	s.actor.broadcaster.Publish(protocol.Event{
		Type: protocol.EventPlayerAction, TableID: tableID, Seat: seat,
		Action: action.Kind.String(), Amount: action.Amount,
	})
}

func (s actorSink) CommunityCards(tableID string, street game.Street, community []deck.Card) {
	s.actor.broadcaster.Publish(protocol.Event{Type: protocol.EventCommunityCards, TableID: tableID, Street: street.String(), Community: community})
}

func (s actorSink) Showdown(tableID string, result game.HandHistory) {
	rec := toHandRecord(result)
	s.actor.broadcaster.Publish(protocol.Event{Type: protocol.EventShowdown, TableID: tableID, HandNumber: result.HandNumber, Result: &rec})
}

func (s actorSink) HandComplete(tableID string, handNumber int) {
	s.actor.broadcaster.Publish(protocol.Event{Type: protocol.EventHandComplete, TableID: tableID, HandNumber: handNumber})
	s.actor.scheduleHandStart(s.actor.cfg.ShowdownDelay)
}

func (s actorSink) Mitsuki(tableID string, narration string) {
	s.actor.broadcaster.Publish(protocol.Event{Type: protocol.EventMitsuki, TableID: tableID, Narration: narration})
}

// fingerprint identifies the current hand/street/seat triple, for arming
// and cancelling the turn scheduler precisely.
func (a *tableActor) fingerprint(seat int) scheduler.Fingerprint {
	pub := a.table.ToPublicJSON()
	return scheduler.Fingerprint{TableID: a.id, HandNumber: pub.HandNumber, Street: int(pub.Phase), Seat: seat}
}

// scheduleHandStart arms delay, then asks the table to deal again once it
// elapses, ignoring the "not enough players" error if the table has since
// emptied out. Callers pick the delay that matches why a hand is starting:
// HandStartDelay for the waiting-room case (enough players just joined),
// ShowdownDelay for the pause after a hand completes.
func (a *tableActor) scheduleHandStart(delay time.Duration) {
	if delay <= 0 {
		delay = time.Millisecond
	}
	a.clock.AfterFunc(delay, func() {
		a.submit(func() { _ = a.table.StartHand() })
	})
}

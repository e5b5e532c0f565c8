package registry

import (
	"github.com/paschalwilson9-ops/mitsukis-room/internal/game"
	"github.com/paschalwilson9-ops/mitsukis-room/internal/protocol"
)

func toPublicView(p game.Public) protocol.PublicView {
	v := protocol.PublicView{
		ID:              p.ID,
		HandNumber:      p.HandNumber,
		Phase:           p.Phase.String(),
		DealerSeat:      p.DealerSeat,
		CurrentActor:    p.CurrentActor,
		CurrentBetLevel: p.CurrentBetLevel,
		MinRaise:        p.MinRaise,
		Pot:             p.Pot,
		Community:       p.Community,
	}
	for _, s := range p.Seats {
		if s == nil {
			v.Seats = append(v.Seats, nil)
			continue
		}
		v.Seats = append(v.Seats, &protocol.PublicSeat{
			Name:             s.Name,
			Stack:            s.Stack,
			Status:           s.Status.String(),
			CurrentBet:       s.CurrentBet,
			TotalBetThisHand: s.TotalBetThisHand,
		})
	}
	return v
}

func toPrivateView(p game.PrivateView) protocol.PrivateView {
	return protocol.PrivateView{
		PublicView:    toPublicView(p.Public),
		YourSeat:      p.YourSeat,
		YourHoleCards: p.YourHoleCards,
	}
}

func toValidActions(in []game.ValidAction) []protocol.ValidAction {
	out := make([]protocol.ValidAction, 0, len(in))
	for _, a := range in {
		out = append(out, protocol.ValidAction{Kind: a.Kind.String(), MinTotal: a.MinTotal, MaxTotal: a.MaxTotal})
	}
	return out
}

func toPotResults(in []game.PotResult) []protocol.PotResult {
	out := make([]protocol.PotResult, 0, len(in))
	for _, p := range in {
		out = append(out, protocol.PotResult{Label: p.Label, Amount: p.Amount, Eligible: p.Eligible, Winners: p.Winners, Payout: p.Payout})
	}
	return out
}

func toContenderResults(in []game.ContenderResult) []protocol.ContenderResult {
	out := make([]protocol.ContenderResult, 0, len(in))
	for _, c := range in {
		out = append(out, protocol.ContenderResult{Seat: c.Seat, HoleCard: c.HoleCard, Category: c.Category})
	}
	return out
}

func toHandRecord(h game.HandHistory) protocol.HandRecord {
	return protocol.HandRecord{
		HandNumber:  h.HandNumber,
		Community:   h.Community,
		Contenders:  toContenderResults(h.Contenders),
		Pots:        toPotResults(h.Pots),
		Uncontested: h.Uncontested,
	}
}

func toHandRecords(in []game.HandHistory) []protocol.HandRecord {
	out := make([]protocol.HandRecord, 0, len(in))
	for _, h := range in {
		out = append(out, toHandRecord(h))
	}
	return out
}

func toErrorBody(err *game.Error) *protocol.ErrorBody {
	if err == nil {
		return nil
	}
	return &protocol.ErrorBody{Kind: err.Kind.String(), Code: err.Code, Message: err.Message}
}

func actionKindFromString(s string) (game.ActionKind, bool) {
	switch s {
	case "fold":
		return game.Fold, true
	case "check":
		return game.Check, true
	case "call":
		return game.Call, true
	case "raise":
		return game.Raise, true
	default:
		return 0, false
	}
}

package game

import "github.com/paschalwilson9-ops/mitsukis-room/internal/deck"

// readyToStart reports whether enough funded, non-sitting-out players are
// seated to deal a hand.
func (t *Table) readyToStart() bool {
	n := 0
	for _, p := range t.seats {
		if p.eligibleForHand() {
			n++
		}
	}
	return n >= t.config.MinPlayers
}

// StartHand begins a new hand if enough players are eligible. Callers
// (internal/registry, via the hand-start delay) are expected to call this
// once the configured delay has elapsed.
func (t *Table) StartHand() *Error {
	if t.phase != WaitingStreet && t.phase != Showdown {
		return ErrIllegalStateTransition("a hand is already in progress")
	}
	if !t.readyToStart() {
		return ErrIllegalStateTransition("not enough eligible players to start a hand")
	}

	t.handNumber++
	t.community = nil
	t.pots = nil
	t.pot = 0
	t.log = nil

	for _, p := range t.seats {
		if p != nil {
			p.resetForHand()
		}
	}

	t.advanceButton()
	t.deck.Reset()

	t.postBlinds()

	for _, seat := range t.seatOrderFrom(t.dealerSeat + 1) {
		p := t.seats[seat]
		if p == nil || !p.contending() {
			continue
		}
		cards, err := t.deck.Deal(2)
		if err != nil {
			t.abortHand("deck exhausted dealing hole cards")
			return ErrDeckExhausted()
		}
		p.HoleCards = cards
	}
	t.sink.CardsDealt(t.ID, t.handNumber)

	t.phase = Preflop
	t.beginBettingRound()
	return nil
}

// advanceButton moves the dealer marker to the next funded, active seat.
func (t *Table) advanceButton() {
	start := t.dealerSeat
	if start < 0 {
		start = -1
	}
	for i := 1; i <= MaxSeats; i++ {
		seat := (start + i) % MaxSeats
		if t.seats[seat] != nil && t.seats[seat].contending() {
			t.dealerSeat = seat
			return
		}
	}
}

// seatOrderFrom returns occupied, contending seats starting at `from`,
// walking clockwise through all MaxSeats positions.
func (t *Table) seatOrderFrom(from int) []int {
	var order []int
	for i := 0; i < MaxSeats; i++ {
		seat := (from + i) % MaxSeats
		if t.seats[seat] != nil && t.seats[seat].contending() {
			order = append(order, seat)
		}
	}
	return order
}

func (t *Table) postBlinds() {
	contenders := t.seatOrderFrom(t.dealerSeat)
	var sbSeat, bbSeat int
	if len(contenders) == 2 {
		sbSeat, bbSeat = contenders[0], contenders[1]
	} else {
		sbSeat, bbSeat = contenders[1], contenders[2%len(contenders)]
	}

	sb := t.seats[sbSeat]
	bb := t.seats[bbSeat]
	sbAmt := sb.commit(t.config.SmallBlind)
	bbAmt := bb.commit(t.config.BigBlind)
	t.pot += sbAmt + bbAmt

	t.currentBetLevel = t.config.BigBlind
	t.minRaise = t.config.BigBlind
	t.sink.BlindsPosted(t.ID, t.handNumber, sbAmt, bbAmt, sbSeat, bbSeat)
}

// beginBettingRound arms the first actor for the street, short-circuiting
// straight to showdown prep if the round can't produce further action.
// Preflop's per-player bet state is seeded by postBlinds, not here — the
// blinds themselves stand as this street's opening currentBet.
func (t *Table) beginBettingRound() {
	if t.phase != Preflop {
		for _, p := range t.seats {
			if p != nil && p.Status == Active {
				p.resetForStreet()
			}
		}
	}
	t.lastAggressorSeat = -1

	var first int
	contenders := t.seatOrderFrom(t.dealerSeat + 1)
	if t.phase == Preflop {
		bbIdx := t.bigBlindSeat()
		first = t.nextSeatAfter(bbIdx, statusActive)
		if len(t.activeContenders()) == 2 {
			first = t.dealerSeat
			if t.seats[first] == nil || t.seats[first].Status != Active {
				first = t.nextSeatAfter(t.dealerSeat, statusActive)
			}
		}
	} else if len(contenders) > 0 {
		first = t.nextSeatAfter(t.dealerSeat, statusActive)
	}

	if t.resolveShortCircuit() {
		return
	}

	t.currentActor = first
	t.promptCurrentActor()
}

func (t *Table) bigBlindSeat() int {
	contenders := t.seatOrderFrom(t.dealerSeat)
	if len(contenders) == 2 {
		return contenders[1]
	}
	if len(contenders) >= 3 {
		return contenders[2]
	}
	return t.dealerSeat
}

type seatPredicate func(*Player) bool

func statusActive(p *Player) bool { return p != nil && p.Status == Active }

// nextSeatAfter returns the next seat clockwise from `from` matching pred.
func (t *Table) nextSeatAfter(from int, pred seatPredicate) int {
	for i := 1; i <= MaxSeats; i++ {
		seat := (from + i) % MaxSeats
		if pred(t.seats[seat]) {
			return seat
		}
	}
	return -1
}

func (t *Table) activeContenders() []int {
	var out []int
	for i, p := range t.seats {
		if p != nil && p.contending() {
			out = append(out, i)
		}
	}
	return out
}

// resolveShortCircuit checks the two early-termination cases: an uncontested
// pot, or a round where nobody can act further. It returns true if it
// handled the hand (either finishing it or running out the board).
func (t *Table) resolveShortCircuit() bool {
	contenders := t.activeContenders()
	if len(contenders) <= 1 {
		t.finishUncontested(contenders)
		return true
	}

	canAct := 0
	unmatched := false
	for _, seat := range contenders {
		if p := t.seats[seat]; p.Status == Active {
			canAct++
			if p.CurrentBet < t.currentBetLevel {
				unmatched = true
			}
		}
	}
	if canAct == 0 || (canAct == 1 && !unmatched) {
		t.runOutBoard()
		return true
	}
	return false
}

func (t *Table) promptCurrentActor() {
	p := t.seats[t.currentActor]
	info := ActionOnInfo{
		Pot:             t.pot,
		CurrentBetLevel: t.currentBetLevel,
		PlayerBet:       p.CurrentBet,
		ToCall:          toCall(p, t.currentBetLevel),
		MinRaise:        t.minRaise,
		TimeBankSeconds: p.TimeBank,
		Valid:           legalActions(p, t.currentBetLevel, t.minRaise),
	}
	t.sink.ActionOn(t.ID, t.currentActor, info)
}

// applyAction commits the effects of a validated action and advances the
// hand. It is also used to synthesize the timer-driven auto-fold.
func (t *Table) applyAction(seat int, action Action) {
	p := t.seats[seat]

	switch action.Kind {
	case Fold:
		p.Status = Folded
		p.acted = true

	case Check:
		p.acted = true

	case Call:
		amt := toCall(p, t.currentBetLevel)
		t.pot += p.commit(amt)
		p.acted = true

	case Raise:
		increment := action.Amount - t.currentBetLevel
		delta := action.Amount - p.CurrentBet
		t.pot += p.commit(delta)

		reopens := isFullRaise(increment, t.minRaise)
		t.currentBetLevel = p.CurrentBet
		t.lastAggressorSeat = seat
		if reopens {
			t.minRaise = increment
			for _, other := range t.seats {
				if other != nil && other != p && other.Status == Active {
					other.canRaise = true
				}
			}
		} else {
			for _, other := range t.seats {
				if other != nil && other != p && other.Status == Active && other.acted {
					other.canRaise = false
				}
			}
		}
		p.acted = true
	}

	t.sink.PlayerAction(t.ID, seat, action)
	t.advanceAfterAction(seat)
}

func (t *Table) advanceAfterAction(actedSeat int) {
	if t.resolveShortCircuit() {
		return
	}
	if t.isRoundComplete() {
		t.advanceStreet()
		return
	}

	next := t.nextSeatAfter(actedSeat, statusActive)
	t.currentActor = next
	t.promptCurrentActor()
}

func (t *Table) isRoundComplete() bool {
	for _, p := range t.seats {
		if p == nil || p.Status != Active {
			continue
		}
		if !p.acted || p.CurrentBet != t.currentBetLevel {
			return false
		}
	}
	return true
}

// advanceStreet closes out the current betting round and deals into the
// next street, or proceeds to showdown after the river.
func (t *Table) advanceStreet() {
	t.currentBetLevel = 0
	t.minRaise = t.config.BigBlind
	t.currentActor = -1

	var ok bool
	switch t.phase {
	case Preflop:
		ok = t.dealCommunity(3)
		t.phase = Flop
	case Flop:
		ok = t.dealCommunity(1)
		t.phase = Turn
	case Turn:
		ok = t.dealCommunity(1)
		t.phase = River
	case River:
		t.phase = Showdown
		t.resolveShowdown()
		return
	}
	if !ok {
		return
	}

	t.sink.CommunityCards(t.ID, t.phase, t.community)
	t.beginBettingRound()
}

// dealCommunity burns one card then deals n onto the board. It returns false
// if the deck was exhausted, in which case the hand has already been
// aborted and the caller must stop advancing the state machine.
func (t *Table) dealCommunity(n int) bool {
	if err := t.deck.Burn(); err != nil {
		t.abortHand("deck exhausted on burn")
		return false
	}
	cards, err := t.deck.Deal(n)
	if err != nil {
		t.abortHand("deck exhausted dealing community cards")
		return false
	}
	t.community = append(t.community, cards...)
	return true
}

// runOutBoard deals every remaining street with no further betting, then
// proceeds to showdown — the all-in-runout short circuit.
func (t *Table) runOutBoard() {
	for len(t.community) < 5 {
		n := 1
		if len(t.community) == 0 {
			n = 3
		}
		if !t.dealCommunity(n) {
			return
		}
		t.sink.CommunityCards(t.ID, t.phase, t.community)
	}
	t.phase = Showdown
	t.resolveShowdown()
}

// finishUncontested awards the whole pot to the single remaining contender
// without a showdown.
func (t *Table) finishUncontested(contenders []int) {
	t.phase = Showdown
	pots := calculatePots(t.seats)
	record := HandHistory{HandNumber: t.handNumber, Community: t.community, Uncontested: true, Log: t.log}

	if len(contenders) == 1 {
		winner := t.seats[contenders[0]]
		for _, pot := range pots {
			winner.Stack += pot.Amount
			record.Pots = append(record.Pots, PotResult{
				Label: pot.Label, Amount: pot.Amount,
				Eligible: seatList(pot.Eligible), Winners: []int{contenders[0]},
				Payout: map[int]int{contenders[0]: pot.Amount},
			})
		}
		winner.HandsWon++
	}
	t.clearCommitted()

	t.sink.Showdown(t.ID, record)
	t.history.push(record)
	t.sink.HandComplete(t.ID, t.handNumber)
	t.currentActor = -1
	t.phase = WaitingStreet
}

// resolveShowdown evaluates every contender's best hand and pays out every
// pot layer in order.
func (t *Table) resolveShowdown() {
	pots := calculatePots(t.seats)

	values := map[int]evalResult{}
	var contenderPlayers []*Player
	for i, p := range t.seats {
		if p == nil || !p.contending() {
			continue
		}
		hand := append(append([]deck.Card{}, p.HoleCards...), t.community...)
		v, _ := evaluateHand(hand)
		values[i] = v
		contenderPlayers = append(contenderPlayers, p)
	}

	record := HandHistory{HandNumber: t.handNumber, Community: t.community, Log: t.log}
	for seat, v := range values {
		record.Contenders = append(record.Contenders, ContenderResult{
			Seat: seat, Token: t.seats[seat].Token,
			HoleCard: [2]deck.Card{t.seats[seat].HoleCards[0], t.seats[seat].HoleCards[1]},
			Category: v.category,
		})
	}

	winnersByPlayer := map[*Player]bool{}
	for _, pot := range pots {
		winners := bestAmong(pot.Eligible, values)
		payout := splitPot(pot, winners, t.dealerSeat)
		for seat, amt := range payout {
			t.seats[seat].Stack += amt
		}
		for _, seat := range winners {
			t.seats[seat].HandsWon++
			winnersByPlayer[t.seats[seat]] = true
		}
		record.Pots = append(record.Pots, PotResult{
			Label: pot.Label, Amount: pot.Amount,
			Eligible: seatList(pot.Eligible), Winners: winners, Payout: payout,
		})
	}

	if t.config.EloKFactor > 0 {
		updateElo(contenderPlayers, winnersByPlayer, t.config.EloKFactor)
	}
	t.clearCommitted()

	t.sink.Showdown(t.ID, record)
	t.history.push(record)
	t.sink.HandComplete(t.ID, t.handNumber)
	t.currentActor = -1
	t.phase = WaitingStreet
}

// bestAmong returns every eligible seat whose evaluated hand ties for best.
func bestAmong(eligible map[int]bool, values map[int]evalResult) []int {
	var best []int
	var bestValue evalResult
	first := true
	for seat := range eligible {
		v, ok := values[seat]
		if !ok {
			continue
		}
		if first || compareEval(v, bestValue) > 0 {
			best = []int{seat}
			bestValue = v
			first = false
		} else if compareEval(v, bestValue) == 0 {
			best = append(best, seat)
		}
	}
	return best
}

func seatList(m map[int]bool) []int {
	out := make([]int, 0, len(m))
	for s := range m {
		out = append(out, s)
	}
	return out
}

// abortHand implements the §7 abort policy: refund every contribution, log
// a critical event, and return the table to waiting.
func (t *Table) abortHand(reason string) {
	for _, p := range t.seats {
		if p == nil {
			continue
		}
		p.Stack += p.TotalBetThisHand
		p.CurrentBet = 0
		p.TotalBetThisHand = 0
	}
	t.pot = 0
	t.pots = nil
	t.log = append(t.log, "hand aborted: "+reason)
	t.sink.Mitsuki(t.ID, "the hand was aborted: "+reason)
	t.currentActor = -1
	t.phase = WaitingStreet
}

// clearCommitted zeroes the pot and every seat's committed chips once the
// pots have been paid out, so between hands every chip sits in a stack.
func (t *Table) clearCommitted() {
	for _, p := range t.seats {
		if p != nil {
			p.CurrentBet = 0
			p.TotalBetThisHand = 0
		}
	}
	t.pot = 0
}

package game

import "testing"

func seatsWithTotals(totals map[int]int, allIn map[int]bool, folded map[int]bool) [MaxSeats]*Player {
	var seats [MaxSeats]*Player
	for seat, total := range totals {
		status := Active
		if allIn[seat] {
			status = AllIn
		}
		if folded[seat] {
			status = Folded
		}
		seats[seat] = &Player{TotalBetThisHand: total, Status: status}
	}
	return seats
}

func TestCalculatePotsThreeWayAllIn(t *testing.T) {
	t.Parallel()
	seats := seatsWithTotals(
		map[int]int{0: 50, 1: 100, 2: 200},
		map[int]bool{0: true, 1: true, 2: true},
		nil,
	)
	pots := calculatePots(seats)
	if len(pots) != 3 {
		t.Fatalf("expected 3 pots, got %d: %+v", len(pots), pots)
	}
	if pots[0].Amount != 150 || !pots[0].Eligible[0] || !pots[0].Eligible[1] || !pots[0].Eligible[2] {
		t.Fatalf("main pot wrong: %+v", pots[0])
	}
	if pots[1].Amount != 100 || pots[1].Eligible[0] || !pots[1].Eligible[1] || !pots[1].Eligible[2] {
		t.Fatalf("side pot 1 wrong: %+v", pots[1])
	}
	if pots[2].Amount != 100 || pots[2].Eligible[0] || pots[2].Eligible[1] || !pots[2].Eligible[2] {
		t.Fatalf("side pot 2 wrong: %+v", pots[2])
	}
	if totalPotAmount(pots) != 350 {
		t.Fatalf("expected chip conservation of 350, got %d", totalPotAmount(pots))
	}
}

func TestCalculatePotsNoAllInIsSinglePot(t *testing.T) {
	t.Parallel()
	seats := seatsWithTotals(map[int]int{0: 20, 1: 20}, nil, nil)
	pots := calculatePots(seats)
	if len(pots) != 1 {
		t.Fatalf("expected a single main pot, got %d", len(pots))
	}
	if pots[0].Amount != 40 || pots[0].Label != "Main Pot" {
		t.Fatalf("unexpected pot: %+v", pots[0])
	}
}

func TestCalculatePotsFoldedContributionStillCounted(t *testing.T) {
	t.Parallel()
	seats := seatsWithTotals(
		map[int]int{0: 30, 1: 30, 2: 10},
		nil,
		map[int]bool{2: true},
	)
	pots := calculatePots(seats)
	if len(pots) != 1 {
		t.Fatalf("expected a single pot, got %d", len(pots))
	}
	if pots[0].Amount != 70 {
		t.Fatalf("expected folded chips to remain in the pot, got %d", pots[0].Amount)
	}
	if pots[0].Eligible[2] {
		t.Fatalf("folded seat must not be eligible to win")
	}
}

func TestSplitPotOddChipGoesClosestToButton(t *testing.T) {
	t.Parallel()
	pot := Pot{Amount: 7}
	payout := splitPot(pot, []int{3, 6}, 1)
	if payout[3] != 4 || payout[6] != 3 {
		t.Fatalf("expected seat 3 to receive the odd chip, got %+v", payout)
	}
}

func TestSplitPotEvenDivision(t *testing.T) {
	t.Parallel()
	pot := Pot{Amount: 10}
	payout := splitPot(pot, []int{0, 1}, 5)
	if payout[0] != 5 || payout[1] != 5 {
		t.Fatalf("expected an even split, got %+v", payout)
	}
}

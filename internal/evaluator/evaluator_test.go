package evaluator

import (
	"math/rand"
	"testing"

	"github.com/paschalwilson9-ops/mitsukis-room/internal/deck"
)

func mustEval(t *testing.T, s string) Value {
	t.Helper()
	cards := deck.MustParseCards(s)
	v, err := Evaluate(cards)
	if err != nil {
		t.Fatalf("Evaluate(%q): %v", s, err)
	}
	return v
}

func TestCategoryOrdering(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		hand string
		want Category
	}{
		{"high card", "2c7dJhAs4h", HighCard},
		{"one pair", "2c2dJhAs4h", OnePair},
		{"two pair", "2c2dJhJsAh", TwoPair},
		{"trips", "2c2d2hJsAh", ThreeOfAKind},
		{"straight", "5c6d7h8s9h", Straight},
		{"flush", "2c7cJcAc4c", Flush},
		{"full house", "2c2d2hJsJh", FullHouse},
		{"quads", "2c2d2h2sJh", FourOfAKind},
		{"straight flush", "5c6c7c8cTc9c", StraightFlush},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := mustEval(t, tc.hand)
			if got.Category != tc.want {
				t.Fatalf("hand %s: got category %v, want %v", tc.hand, got.Category, tc.want)
			}
		})
	}
}

func TestWheelStraightIsFiveHigh(t *testing.T) {
	t.Parallel()
	got := mustEval(t, "AcKdQh5h2c3d4s")
	if got.Category != Straight {
		t.Fatalf("expected a straight in a 5-card wheel plus kickers, got %v", got.Category)
	}
	// Force just the wheel cards through Evaluate directly.
	wheel := deck.MustParseCards("Ac2d3h4s5c")
	v, err := Evaluate(wheel)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if v.Category != Straight {
		t.Fatalf("wheel: expected straight, got %v", v.Category)
	}
	if v.Key[1] != int(deck.Five) {
		t.Fatalf("wheel: expected high card Five, got %d", v.Key[1])
	}
}

func TestWheelLosesToSixHighStraight(t *testing.T) {
	t.Parallel()
	wheel := mustEval(t, "Ac2d3h4s5c")
	sixHigh := mustEval(t, "2c3d4h5s6c")
	if Compare(sixHigh, wheel) <= 0 {
		t.Fatalf("expected 6-high straight to beat the wheel")
	}
}

func TestBestFiveOfSevenChoosesOptimalSubset(t *testing.T) {
	t.Parallel()
	// Board pairs the board and a player holds trips available only using
	// hole cards plus 3 of the 5 board cards.
	sevenCards := deck.MustParseCards("2c2d2h9s9dKcQc")
	best, err := Evaluate(sevenCards)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if best.Category != FullHouse {
		t.Fatalf("expected full house from best-of-7, got %v", best.Category)
	}
}

func TestTieIsOrderIndependent(t *testing.T) {
	t.Parallel()
	a := mustEval(t, "AsKsQsJsTs")
	b, err := Evaluate(deck.MustParseCards("TsJsQsKsAs"))
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if Compare(a, b) != 0 {
		t.Fatalf("expected identical hands in different card order to tie")
	}
}

func TestMonotonicityHigherKickerWins(t *testing.T) {
	t.Parallel()
	low := mustEval(t, "2c2d3h4s5c")
	high := mustEval(t, "2c2d3h4sKc")
	if Compare(high, low) <= 0 {
		t.Fatalf("expected the hand with the better kicker to win")
	}
}

func TestFlushBeatsStraight(t *testing.T) {
	t.Parallel()
	flush := mustEval(t, "2c7cJc9c4c")
	straight := mustEval(t, "5d6h7s8c9d")
	if Compare(flush, straight) <= 0 {
		t.Fatalf("expected flush to beat straight")
	}
}

func TestFullHouseFromTwoTripsUsesHigherAsTrips(t *testing.T) {
	t.Parallel()
	// Best 5 of 7 with two sets of trips: higher set plays as trips, lower
	// as the pair.
	v, err := Evaluate(deck.MustParseCards("2c2d2h9s9d9cKc"))
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if v.Category != FullHouse {
		t.Fatalf("expected full house, got %v", v.Category)
	}
	if v.Key[1] != int(deck.Nine) || v.Key[2] != int(deck.Two) {
		t.Fatalf("expected nines full of twos, got trips=%d pair=%d", v.Key[1], v.Key[2])
	}
}

func TestEvaluateRejectsWrongCardCount(t *testing.T) {
	t.Parallel()
	if _, err := Evaluate(deck.MustParseCards("2c3d4h5s")); err == nil {
		t.Fatalf("expected error for a 4-card hand")
	}
}

func TestRandomHandsNeverPanic(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewSource(7))
	full := []deck.Card{}
	for s := deck.Clubs; s <= deck.Spades; s++ {
		for r := deck.Two; r <= deck.Ace; r++ {
			full = append(full, deck.NewCard(r, s))
		}
	}
	for i := 0; i < 200; i++ {
		rng.Shuffle(len(full), func(a, b int) { full[a], full[b] = full[b], full[a] })
		n := 5 + rng.Intn(3)
		if _, err := Evaluate(full[:n]); err != nil {
			t.Fatalf("Evaluate errored on a well-formed %d-card hand: %v", n, err)
		}
	}
}

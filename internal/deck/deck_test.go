package deck

import (
	"math/rand"
	"testing"
)

func TestDeckHas52DistinctCards(t *testing.T) {
	t.Parallel()
	d := NewDeck(rand.New(rand.NewSource(1)))

	seen := make(map[Card]bool)
	for d.Remaining() > 0 {
		c, err := d.DealOne()
		if err != nil {
			t.Fatalf("DealOne: %v", err)
		}
		if seen[c] {
			t.Fatalf("duplicate card dealt: %v", c)
		}
		seen[c] = true
	}
	if len(seen) != 52 {
		t.Fatalf("expected 52 distinct cards, got %d", len(seen))
	}
}

func TestDealFailsWhenExhausted(t *testing.T) {
	t.Parallel()
	d := NewDeck(rand.New(rand.NewSource(2)))
	if _, err := d.Deal(52); err != nil {
		t.Fatalf("expected full deal to succeed: %v", err)
	}
	if _, err := d.Deal(1); err == nil {
		t.Fatalf("expected deal from empty deck to fail")
	}
}

func TestBurnConsumesOneCardSilently(t *testing.T) {
	t.Parallel()
	d := NewDeck(rand.New(rand.NewSource(3)))
	before := d.Remaining()
	if err := d.Burn(); err != nil {
		t.Fatalf("Burn: %v", err)
	}
	if d.Remaining() != before-1 {
		t.Fatalf("expected remaining to drop by 1, got %d -> %d", before, d.Remaining())
	}
}

func TestResetReshufflesToFull52(t *testing.T) {
	t.Parallel()
	d := NewDeck(rand.New(rand.NewSource(4)))
	_, _ = d.Deal(10)
	d.Reset()
	if d.Remaining() != 52 {
		t.Fatalf("expected 52 cards after reset, got %d", d.Remaining())
	}
}

func TestShuffleIsDeterministicGivenSeed(t *testing.T) {
	t.Parallel()
	d1 := NewDeck(rand.New(rand.NewSource(42)))
	d2 := NewDeck(rand.New(rand.NewSource(42)))

	c1, _ := d1.Deal(52)
	c2, _ := d2.Deal(52)
	for i := range c1 {
		if c1[i] != c2[i] {
			t.Fatalf("expected identical shuffles from identical seeds, diverged at %d", i)
		}
	}
}

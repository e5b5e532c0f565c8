package deck

import (
	"fmt"
	"math/rand"
)

// Deck represents a deck of playing cards. Reset reconstructs the canonical
// 52-card order; Shuffle randomizes it uniformly with Fisher-Yates. Deal and
// Burn consume cards from the top, and every card dealt within a hand is
// distinct until the next Reset.
type Deck struct {
	cards []Card
	next  int
	rng   *rand.Rand
}

// NewDeck creates a new deck seeded with rng. A nil rng falls back to the
// package-level source, which is fine for casual use but not for
// reproducible tests — callers that need determinism should always pass an
// explicit *rand.Rand.
func NewDeck(rng *rand.Rand) *Deck {
	d := &Deck{
		cards: make([]Card, 0, 52),
		rng:   rng,
	}
	d.Reset()
	return d
}

// Reset restores the deck to the canonical 52-card order and shuffles it.
func (d *Deck) Reset() {
	d.cards = d.cards[:0]
	for suit := Clubs; suit <= Spades; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			d.cards = append(d.cards, NewCard(rank, suit))
		}
	}
	d.next = 0
	d.Shuffle()
}

// Shuffle randomizes the order of all 52 cards, dealt or not, using
// Fisher-Yates, then rewinds the deal cursor.
func (d *Deck) Shuffle() {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := d.intn(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
	d.next = 0
}

func (d *Deck) intn(n int) int {
	if d.rng != nil {
		return d.rng.Intn(n)
	}
	return rand.Intn(n)
}

// Deal removes and returns n cards from the top of the deck. It fails if
// fewer than n cards remain.
func (d *Deck) Deal(n int) ([]Card, error) {
	if n < 0 || d.next+n > len(d.cards) {
		return nil, fmt.Errorf("deck: cannot deal %d cards, %d remain", n, d.Remaining())
	}
	cards := make([]Card, n)
	copy(cards, d.cards[d.next:d.next+n])
	d.next += n
	return cards, nil
}

// DealOne deals a single card. It fails if the deck is empty.
func (d *Deck) DealOne() (Card, error) {
	cards, err := d.Deal(1)
	if err != nil {
		return Card{}, err
	}
	return cards[0], nil
}

// Burn removes exactly one card from the top with no observable output,
// the way a dealer discards before each street.
func (d *Deck) Burn() error {
	_, err := d.Deal(1)
	return err
}

// Remaining returns the number of undealt cards left in the deck.
func (d *Deck) Remaining() int {
	return len(d.cards) - d.next
}

package game

import (
	"strings"

	"github.com/lox/blackjack/internal/deck"
)

// Hand is the ordered set of cards dealt to one player or the dealer during
// a round. Cards are only ever added; the engine builds a fresh hand each
// round instead of clearing an old one.
type Hand struct {
	cards []deck.Card
}

// NewHand creates a hand holding the given cards
func NewHand(cards ...deck.Card) Hand {
	return Hand{cards: append([]deck.Card(nil), cards...)}
}

// Add appends a card to the hand
func (h *Hand) Add(card deck.Card) {
	h.cards = append(h.cards, card)
}

// Cards returns a copy of the cards in deal order
func (h Hand) Cards() []deck.Card {
	return append([]deck.Card(nil), h.cards...)
}

// Len returns the number of cards in the hand
func (h Hand) Len() int {
	return len(h.cards)
}

// Clone returns a copy with its own card storage, so snapshots stay fixed
// while the live hand keeps drawing.
func (h Hand) Clone() Hand {
	return NewHand(h.cards...)
}

// BestValue returns the highest total not exceeding 21, counting each ace
// as 11 or 1. If every choice busts it returns the minimal total, keeping
// the overshoot visible to callers.
func (h Hand) BestValue() int {
	total, aces := h.count()
	for aces > 0 && total > 21 {
		total -= 10
		aces--
	}
	return total
}

// IsSoft reports whether an ace counts as 11 in the best valuation
func (h Hand) IsSoft() bool {
	total, aces := h.count()
	for aces > 0 && total > 21 {
		total -= 10
		aces--
	}
	return aces > 0
}

// IsBust returns true when even the all-low-ace total exceeds 21
func (h Hand) IsBust() bool {
	return h.BestValue() > 21
}

// IsBlackjack returns true for a natural: exactly two cards totalling 21
func (h Hand) IsBlackjack() bool {
	return len(h.cards) == 2 && h.BestValue() == 21
}

// count sums the hand with every ace counted high
func (h Hand) count() (total, aces int) {
	for _, c := range h.cards {
		total += c.Value()
		if c.IsAce() {
			aces++
		}
	}
	return total, aces
}

// String renders the hand like "[A♠ K♥]"
func (h Hand) String() string {
	cards := make([]string, len(h.cards))
	for i, c := range h.cards {
		cards[i] = c.String()
	}
	return "[" + strings.Join(cards, " ") + "]"
}

package deck

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// ErrEmptyShoe is returned by Draw when no cards remain. The shoe never
// reshuffles itself mid-draw; deciding when to reshuffle belongs to the
// table running the rounds.
var ErrEmptyShoe = errors.New("deck: shoe is empty")

// Shoe holds one or more shuffled 52-card decks and deals from the top.
type Shoe struct {
	cards []Card
	decks int
	rng   *rand.Rand
}

// NewShoe creates a shuffled shoe of numDecks standard decks. The random
// source is required so simulations stay reproducible from a seed.
func NewShoe(numDecks int, rng *rand.Rand) (*Shoe, error) {
	if numDecks < 1 {
		return nil, fmt.Errorf("deck: shoe needs at least one deck, got %d", numDecks)
	}
	if rng == nil {
		panic("deck: rng is required")
	}

	s := &Shoe{
		cards: make([]Card, 0, numDecks*52),
		decks: numDecks,
		rng:   rng,
	}
	s.refill()
	s.shuffle()
	return s, nil
}

// Draw removes and returns the top card of the shoe
func (s *Shoe) Draw() (Card, error) {
	if len(s.cards) == 0 {
		return Card{}, ErrEmptyShoe
	}

	card := s.cards[0]
	s.cards = s.cards[1:]
	return card, nil
}

// Remaining returns the number of cards left in the shoe
func (s *Shoe) Remaining() int {
	return len(s.cards)
}

// Decks returns the number of decks the shoe was built from
func (s *Shoe) Decks() int {
	return s.decks
}

// Reshuffle restores the shoe to its full complement and shuffles
func (s *Shoe) Reshuffle() {
	s.cards = s.cards[:0]
	s.refill()
	s.shuffle()
}

func (s *Shoe) refill() {
	for d := 0; d < s.decks; d++ {
		for suit := Spades; suit <= Clubs; suit++ {
			for rank := Two; rank <= Ace; rank++ {
				s.cards = append(s.cards, NewCard(suit, rank))
			}
		}
	}
}

// shuffle performs a Fisher-Yates shuffle over the whole shoe
func (s *Shoe) shuffle() {
	for i := len(s.cards) - 1; i > 0; i-- {
		j := s.rng.IntN(i + 1)
		s.cards[i], s.cards[j] = s.cards[j], s.cards[i]
	}
}

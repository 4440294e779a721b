package anki

// Card represents a single flashcard.
//
// Cards are keyed by front text; back text is not part of identity. Two
// cards with the same front are the same card even when their backs differ.
type Card struct {
	Front string // Dictionary spelling of the word, e.g. 諦める
	Back  string // Reading and glosses, e.g. 【あきらめる】: to give up
}

// Key returns the identity of the card
func (c Card) Key() string {
	return c.Front
}

// Equal reports whether two cards share the same front
func (c Card) Equal(other Card) bool {
	return c.Key() == other.Key()
}

// CardSet is a set of cards keyed by front text.
// The first card added for a front wins.
type CardSet struct {
	cards map[string]Card
	order []string
}

// NewCardSet creates a set holding cards
func NewCardSet(cards ...Card) *CardSet {
	s := &CardSet{cards: make(map[string]Card)}
	for _, card := range cards {
		s.Add(card)
	}
	return s
}

// Add inserts card unless a card with the same front exists.
// It reports whether the card was inserted.
func (s *CardSet) Add(card Card) bool {
	if _, ok := s.cards[card.Key()]; ok {
		return false
	}
	s.cards[card.Key()] = card
	s.order = append(s.order, card.Key())
	return true
}

// Contains reports whether a card with the same front is in the set
func (s *CardSet) Contains(card Card) bool {
	_, ok := s.cards[card.Key()]
	return ok
}

// Len returns the number of distinct fronts
func (s *CardSet) Len() int {
	return len(s.cards)
}

// Equal reports whether both sets hold the same fronts
func (s *CardSet) Equal(other *CardSet) bool {
	if s.Len() != other.Len() {
		return false
	}
	for key := range s.cards {
		if _, ok := other.cards[key]; !ok {
			return false
		}
	}
	return true
}

// Cards returns the cards in insertion order
func (s *CardSet) Cards() []Card {
	cards := make([]Card, 0, len(s.order))
	for _, key := range s.order {
		cards = append(cards, s.cards[key])
	}
	return cards
}

// Dedupe drops cards whose front was already seen, keeping the first
func Dedupe(cards []Card) []Card {
	return NewCardSet(cards...).Cards()
}

package engine

import "fmt"

// DeckConfig generates the card set for a variant: one card per
// (suit, rank) pair plus any out-of-grid extras (wild cards, the tarot
// major arcana). DeckSize must equal the generated count exactly; a
// mismatch is rejected at construction, never merely warned about.
type DeckConfig struct {
	Suits []Suit
	Ranks []int // ordered, variant-defined range

	// Extras are cards outside the suit×rank grid. Wild jokers and the
	// tarot majors are configured here.
	Extras []Card

	DeckSize int
}

// Validate enforces the structural invariant
// DeckSize == len(Suits)*len(Ranks) + len(Extras).
func (d *DeckConfig) Validate() error {
	if len(d.Suits) == 0 || len(d.Ranks) == 0 {
		return fmt.Errorf("%w: deck needs at least one suit and one rank", ErrInvalidRules)
	}
	want := len(d.Suits)*len(d.Ranks) + len(d.Extras)
	if d.DeckSize != want {
		return fmt.Errorf("%w: deck size %d != %d suits × %d ranks + %d extras = %d",
			ErrInvalidRules, d.DeckSize, len(d.Suits), len(d.Ranks), len(d.Extras), want)
	}
	return nil
}

// BuildDeck produces the full card arena, face down and unplaced. Grid
// cards come first in suit-major order, extras after. Shuffling happens
// over the whole arena before any pile assignment.
func (d *DeckConfig) BuildDeck() []Card {
	cards := make([]Card, 0, d.DeckSize)
	for _, s := range d.Suits {
		for _, r := range d.Ranks {
			cards = append(cards, Card{Suit: s, Rank: r, Pos: Position{Slot: -1}})
		}
	}
	for _, extra := range d.Extras {
		c := extra
		c.FaceUp = false
		c.Pos = Position{Slot: -1}
		cards = append(cards, c)
	}
	return cards
}

// standardDeckConfig returns the 52-card French deck with ranks 1 (ace)
// through 13 (king), optionally extended with extras.
func standardDeckConfig(extras []Card) *DeckConfig {
	ranks := make([]int, 13)
	for i := range ranks {
		ranks[i] = i + 1
	}
	return &DeckConfig{
		Suits:    []Suit{SuitHearts, SuitDiamonds, SuitClubs, SuitSpades},
		Ranks:    ranks,
		Extras:   extras,
		DeckSize: 52 + len(extras),
	}
}

package engine

import "fmt"

// PileType classifies a pile's role in the layout.
type PileType uint8

const (
	Foundation PileType = iota
	Tableau
	Stock
	Waste
	FreeCell
)

// String returns the lowercase name of the pile type.
func (t PileType) String() string {
	switch t {
	case Foundation:
		return "foundation"
	case Tableau:
		return "tableau"
	case Stock:
		return "stock"
	case Waste:
		return "waste"
	case FreeCell:
		return "freecell"
	}
	return fmt.Sprintf("piletype(%d)", uint8(t))
}

// Pile is an ordered container of card handles. Cards are ordered bottom to
// top: the last handle is the top of the pile. A pile owns the handles it
// stores; the backing card values live in the game's arena.
type Pile struct {
	Type     PileType
	Index    int // ordinal within its type
	MaxCards int // 0 = unlimited

	cards []CardID
	arena []Card // the owning game's card arena
}

// NewPile constructs an empty pile over the given card arena.
func NewPile(t PileType, index, maxCards int, arena []Card) *Pile {
	return &Pile{Type: t, Index: index, MaxCards: maxCards, arena: arena}
}

// Size returns the number of cards in the pile.
func (p *Pile) Size() int { return len(p.cards) }

// IsEmpty reports whether the pile holds no cards.
func (p *Pile) IsEmpty() bool { return len(p.cards) == 0 }

// IsFull reports whether the pile is at capacity. Piles without a MaxCards
// limit are never full.
func (p *Pile) IsFull() bool { return p.MaxCards > 0 && len(p.cards) >= p.MaxCards }

// AddCard pushes a card handle onto the pile and re-derives its position.
func (p *Pile) AddCard(id CardID) error {
	if p.IsFull() {
		return fmt.Errorf("add to %s %d: %w", p.Type, p.Index, ErrCapacityExceeded)
	}
	p.cards = append(p.cards, id)
	p.arena[id].Pos = Position{Pile: p.Type, Index: p.Index, Slot: len(p.cards) - 1}
	return nil
}

// AddCards pushes card handles in order; ids[0] ends up lowest.
func (p *Pile) AddCards(ids []CardID) error {
	for _, id := range ids {
		if err := p.AddCard(id); err != nil {
			return err
		}
	}
	return nil
}

// RemoveTopCard pops and returns the top card handle.
func (p *Pile) RemoveTopCard() (CardID, error) {
	if len(p.cards) == 0 {
		return NoCard, fmt.Errorf("remove from empty %s %d: %w", p.Type, p.Index, ErrInvalidOperation)
	}
	id := p.cards[len(p.cards)-1]
	p.cards = p.cards[:len(p.cards)-1]
	p.arena[id].Pos.Slot = -1
	return id, nil
}

// RemoveTopCards pops the top n cards, returning them in their original
// bottom-to-top order.
func (p *Pile) RemoveTopCards(n int) ([]CardID, error) {
	if n < 0 || n > len(p.cards) {
		return nil, fmt.Errorf("remove %d from %s %d of size %d: %w",
			n, p.Type, p.Index, len(p.cards), ErrInvalidOperation)
	}
	ids := make([]CardID, n)
	copy(ids, p.cards[len(p.cards)-n:])
	p.cards = p.cards[:len(p.cards)-n]
	for _, id := range ids {
		p.arena[id].Pos.Slot = -1
	}
	return ids, nil
}

// TopCard returns the top card handle, or NoCard and false when empty.
func (p *Pile) TopCard() (CardID, bool) {
	if len(p.cards) == 0 {
		return NoCard, false
	}
	return p.cards[len(p.cards)-1], true
}

// CardAt returns the handle at slot i (0 = bottom), or NoCard and false
// when out of range.
func (p *Pile) CardAt(i int) (CardID, bool) {
	if i < 0 || i >= len(p.cards) {
		return NoCard, false
	}
	return p.cards[i], true
}

// Cards returns a copy of the pile's handles, bottom to top.
func (p *Pile) Cards() []CardID {
	out := make([]CardID, len(p.cards))
	copy(out, p.cards)
	return out
}

// Shuffle permutes the pile in place with Fisher-Yates and re-derives each
// card's position. randN must return a uniform value in [0, n).
func (p *Pile) Shuffle(randN func(n int) int) {
	for i := len(p.cards) - 1; i > 0; i-- {
		j := randN(i + 1)
		p.cards[i], p.cards[j] = p.cards[j], p.cards[i]
	}
	for slot, id := range p.cards {
		p.arena[id].Pos = Position{Pile: p.Type, Index: p.Index, Slot: slot}
	}
}

// CanAddCard reports whether the game's rules accept the card on this pile.
// The decision is entirely the rules'; the pile encodes none of it.
func (p *Pile) CanAddCard(g *Game, id CardID) (bool, error) {
	return g.IsValidMove(id, p)
}

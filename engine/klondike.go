package engine

// KlondikeRules implements the classic draw-pile variant: seven tableau
// piles built down in alternating colors, four foundations built up by
// suit from the ace, and a stock/waste draw cycle.
type KlondikeRules struct {
	deck  *DeckConfig
	stock StockRules
}

// NewKlondikeRules returns the classic rules. cardsPerDraw is typically 1
// or 3; values below 1 are treated as 1.
func NewKlondikeRules(cardsPerDraw int) *KlondikeRules {
	if cardsPerDraw < 1 {
		cardsPerDraw = 1
	}
	return &KlondikeRules{
		deck:  standardDeckConfig(nil),
		stock: StockRules{CardsPerDraw: cardsPerDraw, RedealWhenEmpty: true},
	}
}

func (r *KlondikeRules) Name() string      { return "klondike" }
func (r *KlondikeRules) Deck() *DeckConfig { return r.deck }

// IsValidFoundationMove accepts the ace of any suit on an empty foundation
// and the same-suit next rank otherwise.
func (r *KlondikeRules) IsValidFoundationMove(g *Game, id CardID, target *Pile) bool {
	c := g.Card(id)
	top, ok := target.TopCard()
	if !ok {
		return c.Rank == 1
	}
	tc := g.Card(top)
	return c.Suit == tc.Suit && c.Rank == tc.Rank+1
}

// IsValidTableauMove accepts only a king on an empty tableau pile, and an
// alternating-color next-lower rank on a face-up top otherwise.
func (r *KlondikeRules) IsValidTableauMove(g *Game, id CardID, target *Pile) bool {
	c := g.Card(id)
	top, ok := target.TopCard()
	if !ok {
		return c.Rank == 13
	}
	tc := g.Card(top)
	return tc.FaceUp && alternatingColor(c.Suit, tc.Suit) && c.Rank == tc.Rank-1
}

// IsValidFreeCellMove always rejects; the layout has no free cells.
func (r *KlondikeRules) IsValidFreeCellMove(g *Game, id CardID, target *Pile) bool {
	return false
}

// CanMoveFrom forbids foundations and the stock as move sources and
// requires the card to be face up.
func (r *KlondikeRules) CanMoveFrom(g *Game, id CardID, source *Pile) bool {
	if source.Type == Foundation || source.Type == Stock {
		return false
	}
	return g.Card(id).FaceUp
}

// CanMoveStack accepts a face-up alternating-color descending run whose
// bottom card fits the target tableau pile. No run-length limit applies.
func (r *KlondikeRules) CanMoveStack(g *Game, stack []CardID, target *Pile) bool {
	if target.Type != Tableau || len(stack) == 0 {
		return false
	}
	if !isAlternatingDescendingRun(g, stack) {
		return false
	}
	return r.IsValidTableauMove(g, stack[0], target)
}

func (r *KlondikeRules) PileConfiguration() []PileSpec {
	return []PileSpec{
		{Type: Foundation, Count: 4},
		{Type: Tableau, Count: 7},
		{Type: Stock, Count: 1},
		{Type: Waste, Count: 1},
	}
}

func (r *KlondikeRules) DealPattern() DealPattern {
	return DealPattern{
		Steps: []DealStep{
			{Pile: Tableau, Counts: []int{1, 2, 3, 4, 5, 6, 7}, Face: FaceUpLast},
			{Pile: Stock, Counts: []int{24}, Face: FaceDown},
		},
	}
}

func (r *KlondikeRules) BlockingConditions() map[PileType][]BlockingCondition { return nil }

func (r *KlondikeRules) WinConditions() []WinCondition {
	return []WinCondition{{Kind: WinFoundationComplete, Count: 13, All: true}}
}

func (r *KlondikeRules) ScoringRules() map[PileType]int {
	return map[PileType]int{Foundation: 10, Tableau: 5}
}

func (r *KlondikeRules) MaximumScore() int { return r.deck.DeckSize * 10 }

func (r *KlondikeRules) StockRules() StockRules { return r.stock }

func (r *KlondikeRules) FlipRules() map[PileType]FlipRule {
	return map[PileType]FlipRule{Tableau: {FlipExposed: true}}
}

// isAlternatingDescendingRun reports whether stack is a face-up run of
// strictly descending ranks with alternating colors, bottom to top.
func isAlternatingDescendingRun(g *Game, stack []CardID) bool {
	for i, id := range stack {
		c := g.Card(id)
		if !c.FaceUp {
			return false
		}
		if i == 0 {
			continue
		}
		prev := g.Card(stack[i-1])
		if !alternatingColor(c.Suit, prev.Suit) || c.Rank != prev.Rank-1 {
			return false
		}
	}
	return true
}

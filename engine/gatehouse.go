package engine

// SuitJoker is the pseudo-suit of the hybrid variant's two wild jokers.
const SuitJoker Suit = "joker"

// GatehouseRules implements the hybrid variant: a Klondike-style tableau
// and stock/waste cycle combined with two free cells that stay locked
// while the stock holds any card, plus two wild jokers that land on any
// face-up tableau card but never on a foundation.
type GatehouseRules struct {
	deck *DeckConfig
}

// NewGatehouseRules returns the hybrid rules over a 54-card deck
// (standard 52 plus two wild jokers).
func NewGatehouseRules() *GatehouseRules {
	extras := []Card{
		{Suit: SuitJoker, Rank: 0, Wild: true},
		{Suit: SuitJoker, Rank: 0, Wild: true},
	}
	return &GatehouseRules{deck: standardDeckConfig(extras)}
}

func (r *GatehouseRules) Name() string      { return "gatehouse" }
func (r *GatehouseRules) Deck() *DeckConfig { return r.deck }

// IsValidFoundationMove never accepts a wild card; otherwise foundations
// build up by suit from the ace.
func (r *GatehouseRules) IsValidFoundationMove(g *Game, id CardID, target *Pile) bool {
	c := g.Card(id)
	if c.Wild {
		return false
	}
	top, ok := target.TopCard()
	if !ok {
		return c.Rank == 1
	}
	tc := g.Card(top)
	return c.Suit == tc.Suit && c.Rank == tc.Rank+1
}

// IsValidTableauMove accepts any card on an empty pile. On a face-up top,
// a wild card always fits, anything fits on a wild top, and everything
// else follows alternating-color descending order.
func (r *GatehouseRules) IsValidTableauMove(g *Game, id CardID, target *Pile) bool {
	top, ok := target.TopCard()
	if !ok {
		return true
	}
	tc := g.Card(top)
	if !tc.FaceUp {
		return false
	}
	c := g.Card(id)
	if c.Wild || tc.Wild {
		return true
	}
	return alternatingColor(c.Suit, tc.Suit) && c.Rank == tc.Rank-1
}

// IsValidFreeCellMove accepts any single card; the blocking table keeps
// the cells closed while the stock is non-empty.
func (r *GatehouseRules) IsValidFreeCellMove(g *Game, id CardID, target *Pile) bool {
	return target.IsEmpty()
}

// CanMoveFrom forbids foundations and the stock as move sources and
// requires the card to be face up.
func (r *GatehouseRules) CanMoveFrom(g *Game, id CardID, source *Pile) bool {
	if source.Type == Foundation || source.Type == Stock {
		return false
	}
	return g.Card(id).FaceUp
}

// CanMoveStack accepts a face-up descending alternating-color run where a
// wild card matches anything, landing on a legal tableau top. No
// run-length limit applies.
func (r *GatehouseRules) CanMoveStack(g *Game, stack []CardID, target *Pile) bool {
	if target.Type != Tableau || len(stack) == 0 {
		return false
	}
	for i, id := range stack {
		c := g.Card(id)
		if !c.FaceUp {
			return false
		}
		if i == 0 {
			continue
		}
		prev := g.Card(stack[i-1])
		if c.Wild || prev.Wild {
			continue
		}
		if !alternatingColor(c.Suit, prev.Suit) || c.Rank != prev.Rank-1 {
			return false
		}
	}
	return r.IsValidTableauMove(g, stack[0], target)
}

func (r *GatehouseRules) PileConfiguration() []PileSpec {
	return []PileSpec{
		{Type: Foundation, Count: 4},
		{Type: Tableau, Count: 6},
		{Type: FreeCell, Count: 2, MaxCards: 1},
		{Type: Stock, Count: 1},
		{Type: Waste, Count: 1},
	}
}

func (r *GatehouseRules) DealPattern() DealPattern {
	return DealPattern{
		Steps: []DealStep{
			{Pile: Tableau, Counts: []int{4, 4, 4, 4, 4, 4}, Face: FaceUpLast},
			{Pile: Stock, Counts: []int{30}, Face: FaceDown},
		},
	}
}

// BlockingConditions keep the free cells unusable while the stock holds
// any card.
func (r *GatehouseRules) BlockingConditions() map[PileType][]BlockingCondition {
	return map[PileType][]BlockingCondition{
		FreeCell: {{Kind: BlockPileNotEmpty, Pile: Stock}},
	}
}

// WinConditions require the four foundations to hold their full suits;
// the two jokers stay behind.
func (r *GatehouseRules) WinConditions() []WinCondition {
	return []WinCondition{{Kind: WinFoundationComplete, Count: 13, All: true}}
}

func (r *GatehouseRules) ScoringRules() map[PileType]int {
	return map[PileType]int{Foundation: 10, Tableau: 5}
}

func (r *GatehouseRules) MaximumScore() int { return 52 * 10 }

func (r *GatehouseRules) StockRules() StockRules {
	return StockRules{CardsPerDraw: 3, RedealWhenEmpty: true}
}

func (r *GatehouseRules) FlipRules() map[PileType]FlipRule {
	return map[PileType]FlipRule{Tableau: {FlipExposed: true}}
}

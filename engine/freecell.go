package engine

// FreeCellRules implements the free-cell variant: the whole deck is dealt
// face up across eight tableau piles, four single-card free cells provide
// temporary storage, and run mobility is a dynamic capacity computed from
// the empty cells and columns.
type FreeCellRules struct {
	deck *DeckConfig
}

// NewFreeCellRules returns the free-cell rules over a standard 52-card deck.
func NewFreeCellRules() *FreeCellRules {
	return &FreeCellRules{deck: standardDeckConfig(nil)}
}

func (r *FreeCellRules) Name() string      { return "freecell" }
func (r *FreeCellRules) Deck() *DeckConfig { return r.deck }

func (r *FreeCellRules) IsValidFoundationMove(g *Game, id CardID, target *Pile) bool {
	c := g.Card(id)
	top, ok := target.TopCard()
	if !ok {
		return c.Rank == 1
	}
	tc := g.Card(top)
	return c.Suit == tc.Suit && c.Rank == tc.Rank+1
}

// IsValidTableauMove accepts any card on an empty column and an
// alternating-color next-lower rank otherwise.
func (r *FreeCellRules) IsValidTableauMove(g *Game, id CardID, target *Pile) bool {
	top, ok := target.TopCard()
	if !ok {
		return true
	}
	c := g.Card(id)
	tc := g.Card(top)
	return alternatingColor(c.Suit, tc.Suit) && c.Rank == tc.Rank-1
}

// IsValidFreeCellMove accepts any single card on an unoccupied cell.
func (r *FreeCellRules) IsValidFreeCellMove(g *Game, id CardID, target *Pile) bool {
	return target.IsEmpty()
}

// CanMoveFrom forbids foundations as move sources.
func (r *FreeCellRules) CanMoveFrom(g *Game, id CardID, source *Pile) bool {
	return source.Type != Foundation
}

// CanMoveStack accepts an alternating-color descending run of at most the
// current mobility capacity: (1 + empty free cells) doubled once per empty
// tableau column, an empty target column not counting toward its own
// capacity.
func (r *FreeCellRules) CanMoveStack(g *Game, stack []CardID, target *Pile) bool {
	if target.Type != Tableau || len(stack) == 0 {
		return false
	}
	if !isAlternatingDescendingRun(g, stack) {
		return false
	}
	if len(stack) > r.stackCapacity(g, target) {
		return false
	}
	return r.IsValidTableauMove(g, stack[0], target)
}

// stackCapacity computes the maximum simultaneously-moveable run length for
// a move onto target.
func (r *FreeCellRules) stackCapacity(g *Game, target *Pile) int {
	free := 0
	for _, p := range g.PilesOf(FreeCell) {
		if p.IsEmpty() {
			free++
		}
	}
	capacity := 1 + free
	for _, p := range g.PilesOf(Tableau) {
		if p != target && p.IsEmpty() {
			capacity *= 2
		}
	}
	return capacity
}

func (r *FreeCellRules) PileConfiguration() []PileSpec {
	return []PileSpec{
		{Type: Foundation, Count: 4},
		{Type: Tableau, Count: 8},
		{Type: FreeCell, Count: 4, MaxCards: 1},
	}
}

func (r *FreeCellRules) DealPattern() DealPattern {
	return DealPattern{
		Steps: []DealStep{
			{Pile: Tableau, Counts: []int{7, 7, 7, 7, 6, 6, 6, 6}, Face: FaceUp},
		},
	}
}

func (r *FreeCellRules) BlockingConditions() map[PileType][]BlockingCondition { return nil }

func (r *FreeCellRules) WinConditions() []WinCondition {
	return []WinCondition{{Kind: WinAllCardsInFoundation}}
}

func (r *FreeCellRules) ScoringRules() map[PileType]int {
	return map[PileType]int{Foundation: 10, Tableau: 5}
}

func (r *FreeCellRules) MaximumScore() int { return r.deck.DeckSize * 10 }

func (r *FreeCellRules) StockRules() StockRules { return StockRules{} }

func (r *FreeCellRules) FlipRules() map[PileType]FlipRule { return nil }

package engine

// Tarot suits. The major arcana use a pseudo-suit so the tableau's
// same-suit rule keeps majors in their own runs.
const (
	SuitWands  Suit = "wands"
	SuitCups   Suit = "cups"
	SuitSwords Suit = "swords"
	SuitCoins  Suit = "coins"
	SuitMajor  Suit = "major"
)

// Props key and value tagging the major arcana.
const (
	PropArcana  = "arcana"
	ArcanaMajor = "major"
)

// Foundation ordinals in the tarot layout. 0–3 are the minor-suit
// foundations; 4 builds the majors up from 0, 5 builds them down from 21.
const (
	tarotMajorAsc  = 4
	tarotMajorDesc = 5
)

const (
	tarotMinorRanks = 14
	tarotMajorTop   = 21
	tarotMajorCards = 22
)

// TarotRules implements the 78-card tarot variant: thirteen open tableau
// piles built by suit in either direction, four minor foundations gated by
// the single free cell, and two major foundations growing toward each
// other from the Fool and the World.
type TarotRules struct {
	deck *DeckConfig
}

// NewTarotRules returns the tarot rules.
func NewTarotRules() *TarotRules {
	ranks := make([]int, tarotMinorRanks)
	for i := range ranks {
		ranks[i] = i + 1
	}
	extras := make([]Card, 0, tarotMajorCards)
	for r := 0; r <= tarotMajorTop; r++ {
		extras = append(extras, Card{
			Suit:  SuitMajor,
			Rank:  r,
			Props: map[string]string{PropArcana: ArcanaMajor},
		})
	}
	return &TarotRules{deck: &DeckConfig{
		Suits:    []Suit{SuitWands, SuitCups, SuitSwords, SuitCoins},
		Ranks:    ranks,
		Extras:   extras,
		DeckSize: 4*tarotMinorRanks + tarotMajorCards,
	}}
}

func (r *TarotRules) Name() string      { return "tarot" }
func (r *TarotRules) Deck() *DeckConfig { return r.deck }

// IsValidFoundationMove judges by foundation ordinal: minors ascend by
// suit from 1, the two major foundations accept only rank 0 then strictly
// ascending and only rank 21 then strictly descending.
func (r *TarotRules) IsValidFoundationMove(g *Game, id CardID, target *Pile) bool {
	c := g.Card(id)
	switch target.Index {
	case tarotMajorAsc:
		if c.Suit != SuitMajor {
			return false
		}
		top, ok := target.TopCard()
		if !ok {
			return c.Rank == 0
		}
		return c.Rank == g.Card(top).Rank+1
	case tarotMajorDesc:
		if c.Suit != SuitMajor {
			return false
		}
		top, ok := target.TopCard()
		if !ok {
			return c.Rank == tarotMajorTop
		}
		return c.Rank == g.Card(top).Rank-1
	default:
		if c.Suit == SuitMajor {
			return false
		}
		top, ok := target.TopCard()
		if !ok {
			return c.Rank == 1
		}
		tc := g.Card(top)
		return c.Suit == tc.Suit && c.Rank == tc.Rank+1
	}
}

// IsValidTableauMove accepts any card on an empty pile, and a same-suit
// neighbor rank (one up or one down) otherwise.
func (r *TarotRules) IsValidTableauMove(g *Game, id CardID, target *Pile) bool {
	top, ok := target.TopCard()
	if !ok {
		return true
	}
	c := g.Card(id)
	tc := g.Card(top)
	if c.Suit != tc.Suit {
		return false
	}
	return c.Rank == tc.Rank+1 || c.Rank == tc.Rank-1
}

// IsValidFreeCellMove accepts any single card on the unoccupied cell.
func (r *TarotRules) IsValidFreeCellMove(g *Game, id CardID, target *Pile) bool {
	return target.IsEmpty()
}

// CanMoveFrom forbids foundations as move sources.
func (r *TarotRules) CanMoveFrom(g *Game, id CardID, source *Pile) bool {
	return source.Type != Foundation
}

// CanMoveStack accepts a same-suit run of consecutive ranks in one
// direction, either ascending or descending, whose bottom card fits the
// target. No run-length limit applies.
func (r *TarotRules) CanMoveStack(g *Game, stack []CardID, target *Pile) bool {
	if target.Type != Tableau || len(stack) == 0 {
		return false
	}
	if !isSameSuitConsecutiveRun(g, stack) {
		return false
	}
	return r.IsValidTableauMove(g, stack[0], target)
}

func (r *TarotRules) PileConfiguration() []PileSpec {
	return []PileSpec{
		{Type: Foundation, Count: 6},
		{Type: Tableau, Count: 13},
		{Type: FreeCell, Count: 1, MaxCards: 1},
	}
}

// DealPattern spreads the whole deck face up across the tableau, except
// that the Fool (major 0) and the World (major 21) are redirected straight
// onto their major foundations.
func (r *TarotRules) DealPattern() DealPattern {
	counts := make([]int, 13)
	for i := range counts {
		counts[i] = 6
	}
	return DealPattern{
		Steps: []DealStep{{Pile: Tableau, Counts: counts, Face: FaceUp}},
		Redirects: []DealRedirect{
			{
				Match:  func(c *Card) bool { return c.Suit == SuitMajor && c.Rank == 0 },
				Target: func(g *Game, c *Card) *Pile { return g.Pile(Foundation, tarotMajorAsc) },
			},
			{
				Match:  func(c *Card) bool { return c.Suit == SuitMajor && c.Rank == tarotMajorTop },
				Target: func(g *Game, c *Card) *Pile { return g.Pile(Foundation, tarotMajorDesc) },
			},
		},
	}
}

// BlockingConditions gate the minor foundations on the free cell: while
// the cell is occupied, only the major foundations accept cards.
func (r *TarotRules) BlockingConditions() map[PileType][]BlockingCondition {
	return map[PileType][]BlockingCondition{
		Foundation: {{
			Kind: BlockCustom,
			Check: func(g *Game, target *Pile) bool {
				if target == nil || target.Index >= tarotMajorAsc {
					return false
				}
				return g.cardCountOf(FreeCell) > 0
			},
		}},
	}
}

// WinConditions require the two major foundations to jointly hold all 22
// majors while each minor foundation holds its full 14-card suit.
func (r *TarotRules) WinConditions() []WinCondition {
	return []WinCondition{{
		Kind: WinCustom,
		Check: func(g *Game) bool {
			asc := g.Pile(Foundation, tarotMajorAsc)
			desc := g.Pile(Foundation, tarotMajorDesc)
			if asc.Size()+desc.Size() != tarotMajorCards {
				return false
			}
			for i := 0; i < tarotMajorAsc; i++ {
				if g.Pile(Foundation, i).Size() != tarotMinorRanks {
					return false
				}
			}
			return true
		},
	}}
}

func (r *TarotRules) ScoringRules() map[PileType]int {
	return map[PileType]int{Foundation: 15, Tableau: 5}
}

func (r *TarotRules) MaximumScore() int { return r.deck.DeckSize * 15 }

func (r *TarotRules) StockRules() StockRules { return StockRules{} }

func (r *TarotRules) FlipRules() map[PileType]FlipRule { return nil }

// isSameSuitConsecutiveRun reports whether stack is a single-suit run of
// consecutive ranks moving uniformly in one direction.
func isSameSuitConsecutiveRun(g *Game, stack []CardID) bool {
	if len(stack) == 1 {
		return true
	}
	first := g.Card(stack[0])
	dir := g.Card(stack[1]).Rank - first.Rank
	if dir != 1 && dir != -1 {
		return false
	}
	for i := 1; i < len(stack); i++ {
		c := g.Card(stack[i])
		prev := g.Card(stack[i-1])
		if c.Suit != first.Suit || c.Rank != prev.Rank+dir {
			return false
		}
	}
	return true
}

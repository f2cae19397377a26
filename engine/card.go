package engine

// Suit is a symbolic suit identifier. The domain is variant-defined: the
// standard variants use the four French suits, the tarot variant adds four
// minor suits and a "major" pseudo-suit for the arcana.
type Suit string

// Standard French suits shared by the draw-pile, free-cell and hybrid
// variants.
const (
	SuitHearts   Suit = "hearts"
	SuitDiamonds Suit = "diamonds"
	SuitClubs    Suit = "clubs"
	SuitSpades   Suit = "spades"
)

// CardID is a handle into a Game's card arena. A handle lives in exactly
// one pile at a time; moving a card transfers the handle, never the value.
type CardID int

// NoCard is the absent-card handle.
const NoCard CardID = -1

// Position records where a card currently sits: the owning pile's type and
// ordinal, and the slot within the pile (0 = bottom). Slot is -1 while the
// card is not in any pile.
type Position struct {
	Pile  PileType
	Index int
	Slot  int
}

// Card is identity plus display-agnostic state. Cards are created by a
// DeckConfig at deal time and mutated in place (FaceUp, Pos) for the life
// of a game.
type Card struct {
	Suit   Suit
	Rank   int
	Wild   bool
	FaceUp bool

	// Props is a free-form bag for variant metadata, e.g. the tarot
	// variant tags its major arcana with "arcana" = "major".
	Props map[string]string

	// Pos is derived state, maintained by the owning pile.
	Pos Position
}

// InPile reports whether the card currently belongs to a pile.
func (c *Card) InPile() bool { return c.Pos.Slot >= 0 }

// Prop returns the named property, or "" when unset.
func (c *Card) Prop(key string) string {
	if c.Props == nil {
		return ""
	}
	return c.Props[key]
}

// isRed reports whether s is one of the two red French suits.
func isRed(s Suit) bool { return s == SuitHearts || s == SuitDiamonds }

// alternatingColor reports whether two French suits have opposite colors.
func alternatingColor(a, b Suit) bool { return isRed(a) != isRed(b) }

package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKlondikeDealShape(t *testing.T) {
	g := dealtGame(t, NewKlondikeRules(1))

	// Seven tableau piles of sizes 1..7, only the topmost card face up.
	for i, p := range g.PilesOf(Tableau) {
		require.Equal(t, i+1, p.Size())
		for slot, id := range p.Cards() {
			wantFace := slot == p.Size()-1
			assert.Equal(t, wantFace, g.Card(id).FaceUp,
				"tableau %d slot %d", i, slot)
		}
	}

	// The remainder sits face down in the stock.
	stock := g.Pile(Stock, 0)
	require.Equal(t, 24, stock.Size())
	for _, id := range stock.Cards() {
		assert.False(t, g.Card(id).FaceUp)
	}
	assert.True(t, g.Pile(Waste, 0).IsEmpty())
	for _, p := range g.PilesOf(Foundation) {
		assert.True(t, p.IsEmpty())
	}
}

func TestKlondikeAceToEmptyFoundationScores(t *testing.T) {
	g := dealtGame(t, NewKlondikeRules(1))
	clearPiles(t, g)

	ace := mustFind(t, g, SuitDiamonds, 1)
	place(t, g, g.Pile(Tableau, 4), ace)

	moved, err := g.MakeMove(ace, g.Pile(Foundation, 2))
	require.NoError(t, err)
	require.True(t, moved)
	assert.Equal(t, 10, g.Score())
}

func TestKlondikeFoundationIsNeverASource(t *testing.T) {
	g := dealtGame(t, NewKlondikeRules(1))
	clearPiles(t, g)

	ace := mustFind(t, g, SuitSpades, 1)
	two := mustFind(t, g, SuitHearts, 2)
	foundation := g.Pile(Foundation, 0)
	tableau := g.Pile(Tableau, 0)
	place(t, g, foundation, ace)
	place(t, g, tableau, two)

	// The ace would fit under the red two, but the source gate rejects
	// foundations outright.
	assert.False(t, g.Rules().CanMoveFrom(g, ace, foundation))
	moved, err := g.MakeMove(ace, tableau)
	require.NoError(t, err)
	assert.False(t, moved)
}

func TestKlondikeFoundationBuildsUpBySuit(t *testing.T) {
	g := dealtGame(t, NewKlondikeRules(1))
	clearPiles(t, g)

	ace := mustFind(t, g, SuitClubs, 1)
	twoClubs := mustFind(t, g, SuitClubs, 2)
	twoSpades := mustFind(t, g, SuitSpades, 2)
	three := mustFind(t, g, SuitClubs, 3)
	f := g.Pile(Foundation, 0)
	place(t, g, f, ace)

	r := g.Rules()
	assert.True(t, r.IsValidFoundationMove(g, twoClubs, f))
	assert.False(t, r.IsValidFoundationMove(g, twoSpades, f), "wrong suit")
	assert.False(t, r.IsValidFoundationMove(g, three, f), "rank gap")
}

func TestKlondikeEmptyTableauAcceptsOnlyKing(t *testing.T) {
	g := dealtGame(t, NewKlondikeRules(1))
	clearPiles(t, g)

	king := mustFind(t, g, SuitHearts, 13)
	queen := mustFind(t, g, SuitHearts, 12)
	g.cards[king].FaceUp = true
	g.cards[queen].FaceUp = true
	tableau := g.Pile(Tableau, 6)

	r := g.Rules()
	assert.True(t, r.IsValidTableauMove(g, king, tableau))
	assert.False(t, r.IsValidTableauMove(g, queen, tableau))
}

func TestKlondikeTableauAlternatingDescending(t *testing.T) {
	g := dealtGame(t, NewKlondikeRules(1))
	clearPiles(t, g)

	nine := mustFind(t, g, SuitSpades, 9)
	redEight := mustFind(t, g, SuitHearts, 8)
	blackEight := mustFind(t, g, SuitClubs, 8)
	redSeven := mustFind(t, g, SuitDiamonds, 7)
	tableau := g.Pile(Tableau, 1)
	place(t, g, tableau, nine)
	for _, id := range []CardID{redEight, blackEight, redSeven} {
		g.cards[id].FaceUp = true
	}

	r := g.Rules()
	assert.True(t, r.IsValidTableauMove(g, redEight, tableau))
	assert.False(t, r.IsValidTableauMove(g, blackEight, tableau), "same color")
	assert.False(t, r.IsValidTableauMove(g, redSeven, tableau), "rank gap")
}

func TestKlondikeFaceDownTopRejectsMoves(t *testing.T) {
	g := dealtGame(t, NewKlondikeRules(1))
	clearPiles(t, g)

	nine := mustFind(t, g, SuitSpades, 9)
	redEight := mustFind(t, g, SuitHearts, 8)
	tableau := g.Pile(Tableau, 1)
	placeDown(t, g, tableau, nine)
	g.cards[redEight].FaceUp = true

	assert.False(t, g.Rules().IsValidTableauMove(g, redEight, tableau))
}

func TestKlondikeStackLegality(t *testing.T) {
	g := dealtGame(t, NewKlondikeRules(1))
	clearPiles(t, g)

	ten := mustFind(t, g, SuitHearts, 10)
	nine := mustFind(t, g, SuitSpades, 9)
	eight := mustFind(t, g, SuitDiamonds, 8)
	jack := mustFind(t, g, SuitClubs, 11)
	from := g.Pile(Tableau, 0)
	to := g.Pile(Tableau, 1)
	place(t, g, from, ten, nine, eight)
	place(t, g, to, jack)

	run := g.RunFrom(ten)
	assert.True(t, g.CanMoveStack(run, to))
	assert.False(t, g.CanMoveStack(run, g.Pile(Foundation, 0)), "runs never land on foundations")

	// A broken run is rejected even though the bottom card fits.
	assert.False(t, g.CanMoveStack([]CardID{ten, eight}, to))
}

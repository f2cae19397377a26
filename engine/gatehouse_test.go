package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGatehouseDealShape(t *testing.T) {
	g := dealtGame(t, NewGatehouseRules())

	for i, p := range g.PilesOf(Tableau) {
		require.Equal(t, 4, p.Size(), "tableau %d", i)
		for slot, id := range p.Cards() {
			assert.Equal(t, slot == 3, g.Card(id).FaceUp)
		}
	}
	assert.Equal(t, 30, g.Pile(Stock, 0).Size())
	assert.Equal(t, 54, totalCards(g))
	for _, p := range g.PilesOf(FreeCell) {
		assert.True(t, p.IsEmpty())
	}
}

func TestGatehouseFreeCellOpensWhenStockEmpties(t *testing.T) {
	g := dealtGame(t, NewGatehouseRules())
	cell := g.Pile(FreeCell, 0)

	top, ok := g.Pile(Tableau, 0).TopCard()
	require.True(t, ok)

	// While the draw pile holds any card, free-cell placement is illegal.
	moved, err := g.MakeMove(top, cell)
	require.NoError(t, err)
	assert.False(t, moved)

	// Drain the stock through the waste; the gate stays shut until the
	// very last card leaves.
	stock := g.Pile(Stock, 0)
	for !stock.IsEmpty() {
		ok, err := g.IsValidMove(top, cell)
		require.NoError(t, err)
		assert.False(t, ok)
		_, err = g.DrawFromStock()
		require.NoError(t, err)
	}

	// Empty draw pile: placement becomes legal exactly now.
	moved, err = g.MakeMove(top, cell)
	require.NoError(t, err)
	assert.True(t, moved)
}

func TestGatehouseWildOnTableauNotFoundation(t *testing.T) {
	g := dealtGame(t, NewGatehouseRules())
	clearPiles(t, g)
	r := g.Rules()

	wild, ok := g.FindCard(SuitJoker, 0)
	require.True(t, ok)
	require.True(t, g.Card(wild).Wild)
	g.cards[wild].FaceUp = true

	nine := mustFind(t, g, SuitSpades, 9)
	two := mustFind(t, g, SuitHearts, 2)
	tableau := g.Pile(Tableau, 0)
	place(t, g, tableau, nine)

	// A wild lands on any face-up tableau card, whatever the rank.
	assert.True(t, r.IsValidTableauMove(g, wild, tableau))

	// Foundations never take wilds.
	ace := mustFind(t, g, SuitSpades, 1)
	f := g.Pile(Foundation, 0)
	place(t, g, f, ace)
	assert.False(t, r.IsValidFoundationMove(g, wild, f))

	// Anything goes on top of a wild.
	place(t, g, tableau, wild)
	g.cards[two].FaceUp = true
	assert.True(t, r.IsValidTableauMove(g, two, tableau))
}

func TestGatehouseWildStacksBridgeRuns(t *testing.T) {
	g := dealtGame(t, NewGatehouseRules())
	clearPiles(t, g)

	nine := mustFind(t, g, SuitSpades, 9)
	eight := mustFind(t, g, SuitHearts, 8)
	wild, ok := g.FindCard(SuitJoker, 0)
	require.True(t, ok)
	six := mustFind(t, g, SuitDiamonds, 6)
	ten := mustFind(t, g, SuitDiamonds, 10)
	from := g.Pile(Tableau, 0)
	to := g.Pile(Tableau, 1)
	place(t, g, from, nine, eight, wild, six)
	place(t, g, to, ten)

	// The wild bridges the gap between the eight and the six.
	run := g.RunFrom(nine)
	assert.True(t, g.CanMoveStack(run, to))

	// Without the wild the same gap breaks the run.
	assert.False(t, g.CanMoveStack([]CardID{nine, eight, six}, to))
}

func TestGatehouseDrawsThreeWithRedeal(t *testing.T) {
	g := dealtGame(t, NewGatehouseRules())
	stock := g.Pile(Stock, 0)
	waste := g.Pile(Waste, 0)

	drew, err := g.DrawFromStock()
	require.NoError(t, err)
	require.True(t, drew)
	assert.Equal(t, 27, stock.Size())
	assert.Equal(t, 3, waste.Size())

	for !stock.IsEmpty() {
		_, err = g.DrawFromStock()
		require.NoError(t, err)
	}
	drew, err = g.DrawFromStock()
	require.NoError(t, err)
	require.True(t, drew, "redeal")
	assert.Equal(t, 30, stock.Size())
	assert.True(t, waste.IsEmpty())
}

func TestGatehouseWinLeavesJokersBehind(t *testing.T) {
	g := dealtGame(t, NewGatehouseRules())
	clearPiles(t, g)

	suits := []Suit{SuitHearts, SuitDiamonds, SuitClubs, SuitSpades}
	for i, s := range suits {
		top := 13
		if i == 0 {
			top = 12
		}
		for rank := 1; rank <= top; rank++ {
			place(t, g, g.Pile(Foundation, i), mustFind(t, g, s, rank))
		}
	}
	king := mustFind(t, g, SuitHearts, 13)
	place(t, g, g.Pile(Tableau, 0), king)

	moved, err := g.MakeMove(king, g.Pile(Foundation, 0))
	require.NoError(t, err)
	require.True(t, moved)
	assert.True(t, g.Won(), "the two jokers do not count against the win")
}

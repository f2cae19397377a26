package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// dealtGame constructs and deals a game, failing the test on any error.
func dealtGame(t *testing.T, rules Rules, opts ...Option) *Game {
	t.Helper()
	g, err := NewGame(rules, 42, opts...)
	require.NoError(t, err)
	require.NoError(t, g.Deal())
	return g
}

// clearPiles detaches every card from every pile, leaving an empty layout
// for hand-built scenarios.
func clearPiles(t *testing.T, g *Game) {
	t.Helper()
	for _, p := range g.piles {
		_, err := p.RemoveTopCards(p.Size())
		require.NoError(t, err)
	}
}

// place pushes cards onto a pile bottom to top, face up.
func place(t *testing.T, g *Game, p *Pile, ids ...CardID) {
	t.Helper()
	for _, id := range ids {
		g.cards[id].FaceUp = true
		require.NoError(t, p.AddCard(id))
	}
}

// placeDown pushes cards onto a pile bottom to top, face down.
func placeDown(t *testing.T, g *Game, p *Pile, ids ...CardID) {
	t.Helper()
	for _, id := range ids {
		g.cards[id].FaceUp = false
		require.NoError(t, p.AddCard(id))
	}
}

// mustFind locates a card by suit and rank.
func mustFind(t *testing.T, g *Game, suit Suit, rank int) CardID {
	t.Helper()
	id, ok := g.FindCard(suit, rank)
	require.True(t, ok, "no %s %d in deck", suit, rank)
	return id
}

// pileState is a comparable snapshot of one pile's contents and the face
// state of each card in it.
type pileState struct {
	cards []CardID
	faces []bool
}

// gameState is a full snapshot of pile membership, face states and score,
// used for exact-restoration and no-mutation assertions.
type gameState struct {
	piles []pileState
	score int
	moves int
}

func captureState(g *Game) gameState {
	st := gameState{score: g.Score(), moves: len(g.moves)}
	for _, p := range g.piles {
		ps := pileState{cards: p.Cards()}
		for _, id := range ps.cards {
			ps.faces = append(ps.faces, g.cards[id].FaceUp)
		}
		st.piles = append(st.piles, ps)
	}
	return st
}

// totalCards sums the card count across every pile.
func totalCards(g *Game) int {
	n := 0
	for _, p := range g.piles {
		n += p.Size()
	}
	return n
}

// recordingObserver captures engine notifications for assertions.
type recordingObserver struct {
	dealt   int
	applied []MoveRecord
	undone  []MoveRecord
	draws   int
	redeals int
	won     int
}

func (o *recordingObserver) GameDealt(*Game)                { o.dealt++ }
func (o *recordingObserver) MoveApplied(_ *Game, m MoveRecord) { o.applied = append(o.applied, m) }
func (o *recordingObserver) MoveUndone(_ *Game, m MoveRecord)  { o.undone = append(o.undone, m) }
func (o *recordingObserver) StockDrawn(_ *Game, n int, redeal bool) {
	if redeal {
		o.redeals++
	} else {
		o.draws++
	}
}
func (o *recordingObserver) GameWon(*Game) { o.won++ }

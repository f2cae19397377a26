package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeckValidateMismatch(t *testing.T) {
	d := standardDeckConfig(nil)
	d.DeckSize = 51
	assert.ErrorIs(t, d.Validate(), ErrInvalidRules)

	// A mismatched size is rejected at game construction, not warned about.
	r := NewKlondikeRules(1)
	r.deck.DeckSize = 53
	_, err := NewGame(r, 1)
	assert.ErrorIs(t, err, ErrInvalidRules)
}

func TestDeckValidateEmpty(t *testing.T) {
	d := &DeckConfig{DeckSize: 0}
	assert.ErrorIs(t, d.Validate(), ErrInvalidRules)
}

func TestStandardDeckBuild(t *testing.T) {
	d := standardDeckConfig(nil)
	require.NoError(t, d.Validate())
	cards := d.BuildDeck()
	require.Len(t, cards, 52)

	seen := map[Suit]map[int]bool{}
	for i := range cards {
		c := &cards[i]
		assert.False(t, c.FaceUp)
		assert.False(t, c.InPile())
		if seen[c.Suit] == nil {
			seen[c.Suit] = map[int]bool{}
		}
		assert.False(t, seen[c.Suit][c.Rank], "duplicate %s %d", c.Suit, c.Rank)
		seen[c.Suit][c.Rank] = true
	}
	assert.Len(t, seen, 4)
}

func TestGatehouseDeckExtras(t *testing.T) {
	d := NewGatehouseRules().Deck()
	require.NoError(t, d.Validate())
	cards := d.BuildDeck()
	require.Len(t, cards, 54)

	wilds := 0
	for i := range cards {
		if cards[i].Wild {
			wilds++
			assert.Equal(t, SuitJoker, cards[i].Suit)
		}
	}
	assert.Equal(t, 2, wilds)
}

func TestTarotDeckExtras(t *testing.T) {
	d := NewTarotRules().Deck()
	require.NoError(t, d.Validate())
	cards := d.BuildDeck()
	require.Len(t, cards, 78)

	majors := 0
	ranks := map[int]bool{}
	for i := range cards {
		c := &cards[i]
		if c.Suit == SuitMajor {
			majors++
			ranks[c.Rank] = true
			assert.Equal(t, ArcanaMajor, c.Prop(PropArcana))
			assert.False(t, c.Wild)
		}
	}
	assert.Equal(t, 22, majors)
	assert.Len(t, ranks, 22)
	assert.True(t, ranks[0])
	assert.True(t, ranks[21])
}

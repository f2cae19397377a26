package session

import (
	"encoding/json"
	"io"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"patience/engine"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestManagerCreateAndGet(t *testing.T) {
	m := NewManager(quietLogger())

	s, err := m.Create(VariantKlondike, 42)
	require.NoError(t, err)
	assert.Equal(t, 1, m.Len())

	got, ok := m.Get(s.ID)
	require.True(t, ok)
	assert.Same(t, s, got)

	err = s.Do(func(g *engine.Game) error {
		assert.True(t, g.Started())
		assert.Equal(t, 52, g.CardCount())
		return nil
	})
	require.NoError(t, err)

	m.Remove(s.ID)
	_, ok = m.Get(s.ID)
	assert.False(t, ok)
	assert.Zero(t, m.Len())
}

func TestManagerRejectsUnknownVariant(t *testing.T) {
	m := NewManager(quietLogger())
	_, err := m.Create("spider", 1)
	assert.Error(t, err)
}

func TestNewRulesCoversEveryVariant(t *testing.T) {
	for _, v := range []string{VariantKlondike, VariantFreeCell, VariantTarot, VariantGatehouse} {
		r, err := NewRules(v)
		require.NoError(t, err, v)
		assert.Equal(t, v, r.Name())
	}
}

func TestSessionDoSerializesAccess(t *testing.T) {
	m := NewManager(quietLogger())
	s, err := m.Create(VariantFreeCell, 7)
	require.NoError(t, err)

	// Concurrent draws and reads must not race; the session lock
	// serializes every callback.
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Do(func(g *engine.Game) error {
				_ = g.Score()
				_, err := g.DrawFromStock()
				return err
			})
		}()
	}
	wg.Wait()

	err = s.Do(func(g *engine.Game) error {
		assert.Equal(t, 52, g.CardCount())
		return nil
	})
	require.NoError(t, err)
}

func TestSnapshotCarriesFullState(t *testing.T) {
	m := NewManager(quietLogger())
	s, err := m.Create(VariantGatehouse, 11)
	require.NoError(t, err)

	// Put one move on the log so history serialization is exercised.
	err = s.Do(func(g *engine.Game) error {
		drew, err := g.DrawFromStock()
		require.NoError(t, err)
		require.True(t, drew)
		return nil
	})
	require.NoError(t, err)

	snap, err := s.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, VariantGatehouse, snap.Variant)
	assert.Len(t, snap.Cards, 54)
	require.Len(t, snap.Moves, 1)
	assert.Equal(t, "stock", snap.Moves[0].FromType)
	assert.Equal(t, "waste", snap.Moves[0].ToType)

	// Every in-pile card appears in exactly one pile.
	seen := map[int]int{}
	total := 0
	for _, p := range snap.Piles {
		for _, id := range p.Cards {
			seen[id]++
			total++
		}
	}
	assert.Equal(t, 54, total)
	for id, n := range seen {
		assert.Equal(t, 1, n, "card %d", id)
	}

	wilds := 0
	for _, c := range snap.Cards {
		if c.Wild {
			wilds++
		}
	}
	assert.Equal(t, 2, wilds)

	raw, err := s.Encode()
	require.NoError(t, err)
	var decoded Snapshot
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, snap.Score, decoded.Score)
	assert.Len(t, decoded.Piles, len(snap.Piles))
}

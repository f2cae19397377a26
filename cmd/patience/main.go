// Command patience deals a solitaire variant and auto-plays greedy
// foundation moves until the game is won or stuck, logging each step. It
// doubles as a smoke test for the engine and the session layer.
package main

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"patience/engine"
	"patience/internal/session"
)

func main() {
	// A .env file is optional; the environment wins either way.
	_ = godotenv.Load()

	log := logrus.New()
	if lvl, err := logrus.ParseLevel(envOr("PATIENCE_LOG_LEVEL", "info")); err == nil {
		log.SetLevel(lvl)
	}

	variant := envOr("PATIENCE_VARIANT", session.VariantKlondike)
	seed, err := strconv.ParseUint(envOr("PATIENCE_SEED", ""), 10, 64)
	if err != nil {
		seed = uint64(time.Now().UnixNano())
	}

	mgr := session.NewManager(log)
	s, err := mgr.Create(variant, seed)
	if err != nil {
		log.WithError(err).Fatal("create session")
	}

	var moves, draws int
	var won bool
	err = s.Do(func(g *engine.Game) error {
		moves, draws, won = autoplay(g)
		return nil
	})
	if err != nil {
		log.WithError(err).Fatal("autoplay")
	}

	var score int
	_ = s.Do(func(g *engine.Game) error {
		score = g.Score()
		return nil
	})
	log.WithFields(logrus.Fields{
		"variant": variant,
		"seed":    seed,
		"moves":   moves,
		"draws":   draws,
		"score":   score,
		"won":     won,
	}).Info("finished")
}

// autoplay repeatedly sends pile tops to any open foundation, drawing from
// the stock when nothing fits. It stops when the game is won or a full
// stock cycle produces no move.
func autoplay(g *engine.Game) (moves, draws int, won bool) {
	idle := 0
	for !g.Won() && idle <= stockCycle(g) {
		if id, target, ok := nextFoundationMove(g); ok {
			if moved, err := g.MakeMove(id, target); err == nil && moved {
				moves++
				idle = 0
				continue
			}
		}
		drew, err := g.DrawFromStock()
		if err != nil || !drew {
			break
		}
		draws++
		idle++
	}
	return moves, draws, g.Won()
}

// nextFoundationMove finds the first pile top with a legal foundation
// destination.
func nextFoundationMove(g *engine.Game) (engine.CardID, *engine.Pile, bool) {
	for _, p := range g.Piles() {
		top, ok := p.TopCard()
		if !ok {
			continue
		}
		targets, err := g.ValidTargets(top)
		if err != nil {
			continue
		}
		for _, t := range targets {
			if t.Type == engine.Foundation && g.Rules().CanMoveFrom(g, top, p) {
				return top, t, true
			}
		}
	}
	return engine.NoCard, nil, false
}

// stockCycle bounds the number of fruitless draws before giving up: one
// full pass through stock and waste, or a single probe for stockless
// variants.
func stockCycle(g *engine.Game) int {
	per := g.Rules().StockRules().CardsPerDraw
	if per <= 0 {
		return 1
	}
	return g.CardCount()/per + 2
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

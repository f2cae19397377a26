// Package session hosts solitaire games for multiple callers: one engine
// Game per session, with the session mutex serializing concurrent requests
// against it. The engine itself stays single-threaded and silent; this
// layer owns the locking and the logrus diagnostics.
package session

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"patience/engine"
)

// Variant names accepted by the selector.
const (
	VariantKlondike  = "klondike"
	VariantFreeCell  = "freecell"
	VariantTarot     = "tarot"
	VariantGatehouse = "gatehouse"
)

// NewRules constructs the (deck, rules) pair for a named variant. This is
// the variant selector; the engine never sees variant names.
func NewRules(variant string) (engine.Rules, error) {
	switch variant {
	case VariantKlondike:
		return engine.NewKlondikeRules(1), nil
	case VariantFreeCell:
		return engine.NewFreeCellRules(), nil
	case VariantTarot:
		return engine.NewTarotRules(), nil
	case VariantGatehouse:
		return engine.NewGatehouseRules(), nil
	}
	return nil, fmt.Errorf("unknown variant %q", variant)
}

// Session owns one live game. All access goes through Do, which holds the
// session lock for the duration of the callback.
type Session struct {
	ID      uuid.UUID
	Variant string

	mu   sync.Mutex
	game *engine.Game
	log  *logrus.Entry
}

// Do runs fn with exclusive access to the session's game.
func (s *Session) Do(fn func(g *engine.Game) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.game)
}

// Manager tracks live sessions by ID.
type Manager struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
	log      *logrus.Logger
}

// NewManager returns an empty session manager logging through log.
func NewManager(log *logrus.Logger) *Manager {
	if log == nil {
		log = logrus.New()
	}
	return &Manager{sessions: make(map[uuid.UUID]*Session), log: log}
}

// Create builds a game for the named variant, deals it and registers a
// session for it.
func (m *Manager) Create(variant string, seed uint64) (*Session, error) {
	rules, err := NewRules(variant)
	if err != nil {
		return nil, err
	}
	id := uuid.New()
	entry := m.log.WithFields(logrus.Fields{"session": id, "variant": variant})
	g, err := engine.NewGame(rules, seed, engine.WithObserver(&logObserver{log: entry}))
	if err != nil {
		return nil, err
	}
	if err := g.Deal(); err != nil {
		return nil, err
	}

	s := &Session{ID: id, Variant: variant, game: g, log: entry}
	m.mu.Lock()
	m.sessions[id] = s
	m.mu.Unlock()
	entry.Info("session created")
	return s, nil
}

// Get returns the session with the given ID.
func (m *Manager) Get(id uuid.UUID) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Remove drops a session from the manager.
func (m *Manager) Remove(id uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// logObserver routes engine notifications into structured logs. The engine
// core never logs on its own; this is the injected diagnostics sink.
type logObserver struct {
	log *logrus.Entry
}

func (o *logObserver) GameDealt(g *engine.Game) {
	o.log.WithField("cards", g.CardCount()).Debug("dealt")
}

func (o *logObserver) MoveApplied(g *engine.Game, m engine.MoveRecord) {
	o.log.WithFields(logrus.Fields{
		"cards":  len(m.Cards),
		"from":   fmt.Sprintf("%s/%d", m.From.Type, m.From.Index),
		"to":     fmt.Sprintf("%s/%d", m.To.Type, m.To.Index),
		"points": m.Points,
		"score":  g.Score(),
	}).Debug("move applied")
}

func (o *logObserver) MoveUndone(g *engine.Game, m engine.MoveRecord) {
	o.log.WithField("score", g.Score()).Debug("move undone")
}

func (o *logObserver) StockDrawn(g *engine.Game, drawn int, redeal bool) {
	o.log.WithFields(logrus.Fields{"drawn": drawn, "redeal": redeal}).Debug("stock drawn")
}

func (o *logObserver) GameWon(g *engine.Game) {
	o.log.WithField("score", g.Score()).Info("game won")
}

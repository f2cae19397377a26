// Package engine implements a generalized solitaire engine: a card/pile
// data model plus a polymorphic Rules abstraction that lets one generic
// orchestrator play materially different solitaire variants without
// per-variant branching.
//
// The engine is single-threaded and fully synchronous. One Game instance
// is owned by one caller at a time; Rules and DeckConfig values are
// read-only and safe to share across games of the same variant.
package engine

import (
	"fmt"
	"time"
)

// MoveRecord is the minimal information required to both replay a move for
// history and invert it for undo. Cards are ordered bottom to top as they
// sit on the destination pile.
type MoveRecord struct {
	Cards  []CardID
	From   *Pile
	To     *Pile
	Points int

	// Flipped lists cards whose face state toggled as a side effect of
	// the move (the exposed source top, or drawn/redealt cards).
	Flipped []CardID

	At time.Time
}

// Game owns the live card and pile state for one session and drives
// dealing, moves, undo and stock draws, delegating every variant-specific
// decision to its Rules.
type Game struct {
	rules Rules
	obs   Observer

	cards []Card  // arena: master card list, created once per deal
	piles []*Pile // recreated per deal from the pile configuration

	score   int
	moves   []MoveRecord
	started bool
	won     bool

	rng uint64
}

// Option configures a Game at construction.
type Option func(*Game)

// WithObserver injects a diagnostics observer. The engine never logs on
// its own.
func WithObserver(o Observer) Option {
	return func(g *Game) {
		if o != nil {
			g.obs = o
		}
	}
}

// NewGame constructs a game for the given variant rules and RNG seed. The
// rules bundle is validated in full here; a malformed variant never reaches
// first use.
func NewGame(rules Rules, seed uint64, opts ...Option) (*Game, error) {
	if err := validateRules(rules); err != nil {
		return nil, fmt.Errorf("variant %q: %w", rules.Name(), err)
	}
	g := &Game{rules: rules, obs: nopObserver{}, rng: seed}
	if g.rng == 0 {
		g.rng = 1 // xorshift can't start at 0
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// ---------------------------------------------------------------------------
// xorshift64 RNG
// ---------------------------------------------------------------------------

func (g *Game) nextRand() uint64 {
	x := g.rng
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	g.rng = x
	return x
}

// randIntn returns a random number in [0, n).
func (g *Game) randIntn(n int) int {
	return int(g.nextRand() % uint64(n))
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

// Rules returns the variant rules in play.
func (g *Game) Rules() Rules { return g.rules }

// Score returns the accumulated score.
func (g *Game) Score() int { return g.score }

// Started reports whether a deal has happened.
func (g *Game) Started() bool { return g.started }

// Won reports the stored result of the last win-condition check.
func (g *Game) Won() bool { return g.won }

// Moves returns a copy of the move log, oldest first.
func (g *Game) Moves() []MoveRecord {
	out := make([]MoveRecord, len(g.moves))
	copy(out, g.moves)
	return out
}

// Card returns the card behind a handle.
func (g *Game) Card(id CardID) *Card { return &g.cards[id] }

// CardCount returns the size of the card arena.
func (g *Game) CardCount() int { return len(g.cards) }

// Piles returns every pile in creation order.
func (g *Game) Piles() []*Pile {
	out := make([]*Pile, len(g.piles))
	copy(out, g.piles)
	return out
}

// PilesOf returns the piles of one type in index order.
func (g *Game) PilesOf(t PileType) []*Pile {
	var out []*Pile
	for _, p := range g.piles {
		if p.Type == t {
			out = append(out, p)
		}
	}
	return out
}

// Pile returns the pile of the given type and ordinal, or nil.
func (g *Game) Pile(t PileType, index int) *Pile {
	for _, p := range g.piles {
		if p.Type == t && p.Index == index {
			return p
		}
	}
	return nil
}

// PileOf returns the pile currently holding the card, or nil while the
// card is not in any pile.
func (g *Game) PileOf(id CardID) *Pile {
	c := &g.cards[id]
	if !c.InPile() {
		return nil
	}
	return g.Pile(c.Pos.Pile, c.Pos.Index)
}

// FindCard returns the handle of the first card matching suit and rank.
func (g *Game) FindCard(suit Suit, rank int) (CardID, bool) {
	for i := range g.cards {
		if g.cards[i].Suit == suit && g.cards[i].Rank == rank {
			return CardID(i), true
		}
	}
	return NoCard, false
}

// RunFrom returns the handles from the card's slot to the top of its pile,
// bottom to top. It slices blindly; run legality is the caller's to check
// via CanMoveStack.
func (g *Game) RunFrom(id CardID) []CardID {
	p := g.PileOf(id)
	if p == nil {
		return nil
	}
	slot := g.cards[id].Pos.Slot
	out := make([]CardID, 0, p.Size()-slot)
	for i := slot; i < p.Size(); i++ {
		cid, _ := p.CardAt(i)
		out = append(out, cid)
	}
	return out
}

// cardCountOf returns the total card count across piles of one type.
func (g *Game) cardCountOf(t PileType) int {
	n := 0
	for _, p := range g.piles {
		if p.Type == t {
			n += p.Size()
		}
	}
	return n
}

// ---------------------------------------------------------------------------
// Dealing
// ---------------------------------------------------------------------------

// Deal builds the card arena, shuffles it, recreates the piles from the
// declared configuration and distributes cards per the deal pattern. A
// prior game's state is discarded.
func (g *Game) Deal() error {
	deck := g.rules.Deck()
	g.cards = deck.BuildDeck()
	g.score = 0
	g.moves = nil
	g.won = false

	// Uniform permutation over the whole card list before any pile
	// assignment.
	order := make([]CardID, len(g.cards))
	for i := range order {
		order[i] = CardID(i)
	}
	for i := len(order) - 1; i > 0; i-- {
		j := g.randIntn(i + 1)
		order[i], order[j] = order[j], order[i]
	}

	g.piles = nil
	for _, spec := range g.rules.PileConfiguration() {
		for i := 0; i < spec.Count; i++ {
			g.piles = append(g.piles, NewPile(spec.Type, i, spec.MaxCards, g.cards))
		}
	}

	pattern := g.rules.DealPattern()
	next := 0
	for _, step := range pattern.Steps {
		for pileIdx, count := range step.Counts {
			pile := g.Pile(step.Pile, pileIdx)
			for k := 0; k < count; k++ {
				id := order[next]
				next++
				if target := g.redirectFor(pattern.Redirects, id); target != nil {
					g.cards[id].FaceUp = true
					if err := target.AddCard(id); err != nil {
						return err
					}
					continue
				}
				g.cards[id].FaceUp = step.Face == FaceUp
				if err := pile.AddCard(id); err != nil {
					return err
				}
			}
			if step.Face == FaceUpLast {
				if top, ok := pile.TopCard(); ok {
					g.cards[top].FaceUp = true
				}
			}
		}
	}
	if next != len(order) {
		return fmt.Errorf("deal pattern left %d cards unassigned: %w", len(order)-next, ErrInvalidRules)
	}

	g.started = true
	if err := g.recheckWin(); err != nil {
		return err
	}
	g.obs.GameDealt(g)
	return nil
}

// redirectFor returns the mapped foundation pile for a dealt card, or nil
// when no redirect matches.
func (g *Game) redirectFor(redirects []DealRedirect, id CardID) *Pile {
	for _, r := range redirects {
		if r.Match(&g.cards[id]) {
			return r.Target(g, &g.cards[id])
		}
	}
	return nil
}

// Reset clears the card, pile, score and move state. The rules and deck
// collaborators stay.
func (g *Game) Reset() {
	g.cards = nil
	g.piles = nil
	g.score = 0
	g.moves = nil
	g.started = false
	g.won = false
}

// ---------------------------------------------------------------------------
// Moves
// ---------------------------------------------------------------------------

// MakeMove moves a single card from the top of its pile onto target. It
// returns false with zero mutation when the source-eligibility gate or the
// move-legality check rejects the move. On acceptance every side effect
// happens atomically: transfer, score, move record, exposure flip, win
// recheck.
func (g *Game) MakeMove(id CardID, target *Pile) (bool, error) {
	if !g.started {
		return false, fmt.Errorf("move before deal: %w", ErrInvalidOperation)
	}
	source := g.PileOf(id)
	if source == nil || source == target {
		return false, nil
	}
	if top, ok := source.TopCard(); !ok || top != id {
		return false, nil
	}
	if !g.rules.CanMoveFrom(g, id, source) {
		return false, nil
	}
	ok, err := g.IsValidMove(id, target)
	if err != nil || !ok {
		return false, err
	}

	if _, err := source.RemoveTopCard(); err != nil {
		return false, err
	}
	if err := target.AddCard(id); err != nil {
		return false, err
	}
	pts := MoveScore(g.rules, id, target)
	g.score += pts
	rec := MoveRecord{Cards: []CardID{id}, From: source, To: target, Points: pts, At: time.Now()}
	g.applyFlipRule(source, &rec)
	g.moves = append(g.moves, rec)
	if err := g.recheckWin(); err != nil {
		return false, err
	}
	g.obs.MoveApplied(g, rec)
	return true, nil
}

// MakeStackMove transfers an ordered run as a unit. The caller is trusted
// to have validated run contiguity and CanMoveStack already; the engine
// does not re-derive the run. Gating and side effects otherwise match
// MakeMove, with the run's bottom card judged against the target.
func (g *Game) MakeStackMove(id CardID, target *Pile, stack []CardID) (bool, error) {
	if !g.started {
		return false, fmt.Errorf("move before deal: %w", ErrInvalidOperation)
	}
	if len(stack) == 0 || stack[0] != id {
		return false, fmt.Errorf("stack must start at the moved card: %w", ErrInvalidOperation)
	}
	source := g.PileOf(id)
	if source == nil || source == target {
		return false, nil
	}
	// The run must be exactly the top of the source pile.
	if g.cards[id].Pos.Slot != source.Size()-len(stack) {
		return false, fmt.Errorf("stack is not the top of its pile: %w", ErrInvalidOperation)
	}
	for i, cid := range stack {
		at, ok := source.CardAt(source.Size() - len(stack) + i)
		if !ok || at != cid {
			return false, fmt.Errorf("stack does not match pile contents: %w", ErrInvalidOperation)
		}
	}
	if !g.rules.CanMoveFrom(g, id, source) {
		return false, nil
	}
	ok, err := g.IsValidMove(id, target)
	if err != nil || !ok {
		return false, err
	}

	ids, err := source.RemoveTopCards(len(stack))
	if err != nil {
		return false, err
	}
	if err := target.AddCards(ids); err != nil {
		return false, err
	}
	pts := MoveScore(g.rules, id, target)
	g.score += pts
	rec := MoveRecord{Cards: ids, From: source, To: target, Points: pts, At: time.Now()}
	g.applyFlipRule(source, &rec)
	g.moves = append(g.moves, rec)
	if err := g.recheckWin(); err != nil {
		return false, err
	}
	g.obs.MoveApplied(g, rec)
	return true, nil
}

// applyFlipRule flips the newly exposed top of the source pile when the
// variant's flip table says so, recording the flip for undo.
func (g *Game) applyFlipRule(source *Pile, rec *MoveRecord) {
	if !g.rules.FlipRules()[source.Type].FlipExposed {
		return
	}
	top, ok := source.TopCard()
	if !ok || g.cards[top].FaceUp {
		return
	}
	g.cards[top].FaceUp = true
	rec.Flipped = append(rec.Flipped, top)
}

// recheckWin re-evaluates the declared win conditions and stores the
// result for cheap querying.
func (g *Game) recheckWin() error {
	won, err := g.CheckWinCondition()
	if err != nil {
		return err
	}
	newlyWon := won && !g.won
	g.won = won
	if newlyWon {
		g.obs.GameWon(g)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Undo
// ---------------------------------------------------------------------------

// Undo inverts the most recent move record: cards return from target to
// source in original order, the score contribution is subtracted and any
// recorded flips are flipped back. Repeated calls walk the log backwards.
func (g *Game) Undo() (bool, error) {
	if len(g.moves) == 0 {
		return false, nil
	}
	rec := g.moves[len(g.moves)-1]
	ids, err := rec.To.RemoveTopCards(len(rec.Cards))
	if err != nil {
		return false, err
	}
	for i := range ids {
		if ids[i] != rec.Cards[i] {
			return false, fmt.Errorf("move log out of sync with piles: %w", ErrInvalidOperation)
		}
	}
	if err := rec.From.AddCards(ids); err != nil {
		return false, err
	}
	for _, id := range rec.Flipped {
		g.cards[id].FaceUp = !g.cards[id].FaceUp
	}
	g.score -= rec.Points
	g.moves = g.moves[:len(g.moves)-1]
	if err := g.recheckWin(); err != nil {
		return false, err
	}
	g.obs.MoveUndone(g, rec)
	return true, nil
}

// ---------------------------------------------------------------------------
// Stock and waste
// ---------------------------------------------------------------------------

// DrawFromStock draws CardsPerDraw cards (or fewer if the stock runs
// short) from the stock to the waste, face up. When the stock is empty and
// the variant redeals, the entire waste moves back to the stock face down
// instead of drawing. Returns false when the variant has no stock or
// nothing can move.
func (g *Game) DrawFromStock() (bool, error) {
	if !g.started {
		return false, fmt.Errorf("draw before deal: %w", ErrInvalidOperation)
	}
	sr := g.rules.StockRules()
	if sr.CardsPerDraw <= 0 {
		return false, nil
	}
	stock := g.Pile(Stock, 0)
	waste := g.Pile(Waste, 0)
	if stock == nil || waste == nil {
		return false, fmt.Errorf("stock drawing without stock and waste piles: %w", ErrInvalidOperation)
	}

	if stock.IsEmpty() {
		if !sr.RedealWhenEmpty || waste.IsEmpty() {
			return false, nil
		}
		ids, err := waste.RemoveTopCards(waste.Size())
		if err != nil {
			return false, err
		}
		if err := stock.AddCards(ids); err != nil {
			return false, err
		}
		rec := MoveRecord{From: waste, To: stock, At: time.Now()}
		for _, id := range ids {
			if g.cards[id].FaceUp {
				g.cards[id].FaceUp = false
				rec.Flipped = append(rec.Flipped, id)
			}
		}
		if sr.ShuffleOnRedeal {
			stock.Shuffle(g.randIntn)
		}
		rec.Cards = stock.Cards()
		g.moves = append(g.moves, rec)
		g.obs.StockDrawn(g, 0, true)
		return true, nil
	}

	n := sr.CardsPerDraw
	if n > stock.Size() {
		n = stock.Size()
	}
	ids, err := stock.RemoveTopCards(n)
	if err != nil {
		return false, err
	}
	if err := waste.AddCards(ids); err != nil {
		return false, err
	}
	rec := MoveRecord{Cards: ids, From: stock, To: waste, At: time.Now()}
	for _, id := range ids {
		if !g.cards[id].FaceUp {
			g.cards[id].FaceUp = true
			rec.Flipped = append(rec.Flipped, id)
		}
	}
	g.moves = append(g.moves, rec)
	if err := g.recheckWin(); err != nil {
		return false, err
	}
	g.obs.StockDrawn(g, n, false)
	return true, nil
}

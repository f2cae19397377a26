package engine

import "fmt"

// ---------------------------------------------------------------------------
// Declarative tables
// ---------------------------------------------------------------------------

// PileSpec declares how many piles of a type exist and their capacity.
type PileSpec struct {
	Type     PileType
	Count    int
	MaxCards int // 0 = unlimited
}

// FacePolicy controls the face state of dealt cards.
type FacePolicy uint8

const (
	FaceDown   FacePolicy = iota
	FaceUp                // every dealt card face up
	FaceUpLast            // only the last card dealt to the pile face up
)

// DealStep deals cards to consecutive piles of one type. Counts[i] is the
// number of cards for pile i of that type.
type DealStep struct {
	Pile   PileType
	Counts []int
	Face   FacePolicy
}

// DealRedirect intercepts dealt cards matching a predicate and routes them
// into a mapped foundation pile instead of their nominal slot. The
// redirected card still consumes its slot's share of the shuffled deck.
type DealRedirect struct {
	Match  func(c *Card) bool
	Target func(g *Game, c *Card) *Pile
}

// DealPattern describes how a variant lays out the shuffled deck.
type DealPattern struct {
	Steps     []DealStep
	Redirects []DealRedirect
}

// CompareOp is a comparison operator for card-count conditions.
type CompareOp uint8

const (
	OpEQ CompareOp = iota
	OpNE
	OpLT
	OpLE
	OpGT
	OpGE
)

func (op CompareOp) compare(a, b int) (bool, error) {
	switch op {
	case OpEQ:
		return a == b, nil
	case OpNE:
		return a != b, nil
	case OpLT:
		return a < b, nil
	case OpLE:
		return a <= b, nil
	case OpGT:
		return a > b, nil
	case OpGE:
		return a >= b, nil
	}
	return false, fmt.Errorf("comparison operator %d: %w", uint8(op), ErrUnknownCondition)
}

// BlockKind tags a blocking condition.
type BlockKind uint8

const (
	BlockPileNotEmpty BlockKind = iota + 1 // blocks while any pile of Pile type holds a card
	BlockPileEmpty                         // blocks while every pile of Pile type is empty
	BlockCardCount                         // blocks while total card count of Pile type satisfies Op/Count
	BlockCustom                            // variant-supplied predicate
)

// BlockingCondition is a declarative predicate over game state. Conditions
// for a pile type combine with OR semantics: any true condition blocks.
type BlockingCondition struct {
	Kind  BlockKind
	Pile  PileType // referenced pile type for the non-custom kinds
	Op    CompareOp
	Count int

	// Check implements BlockCustom. It receives the candidate target pile
	// so a variant can block only a subset of a pile type.
	Check func(g *Game, target *Pile) bool
}

// WinKind tags a win condition.
type WinKind uint8

const (
	WinFoundationComplete   WinKind = iota + 1 // foundations hold exactly Count cards
	WinTableauEmpty                            // every tableau pile is empty
	WinAllCardsInFoundation                    // foundations jointly hold the whole deck
	WinCustom                                  // variant-supplied predicate
)

// WinCondition is one declarative win requirement. The game is won only
// when every declared condition holds.
type WinCondition struct {
	Kind  WinKind
	Count int  // WinFoundationComplete: required per-pile card count
	All   bool // WinFoundationComplete: all piles (true) or any pile (false)

	Check func(g *Game) bool // WinCustom
}

// StockRules describes draw-pile behavior.
type StockRules struct {
	CardsPerDraw    int  // 0 = variant has no stock
	RedealWhenEmpty bool // move the waste back into the stock when empty
	ShuffleOnRedeal bool
}

// FlipRule describes what happens to a pile's newly exposed top card after
// a removal above it.
type FlipRule struct {
	FlipExposed bool
}

// ---------------------------------------------------------------------------
// Rules — the per-variant capability set
// ---------------------------------------------------------------------------

// Rules is the complete capability set a variant must provide. A Rules
// value is a read-only configuration provider: it holds a DeckConfig and is
// otherwise stateless, so one instance is safe to share across games of the
// same variant.
//
// The orchestrator and the blocking/win interpreters are written once
// against this interface; a variant is a bundle of declarative tables plus
// a handful of predicates, never a branch in the engine.
type Rules interface {
	// Name identifies the variant.
	Name() string

	// Deck returns the variant's deck configuration.
	Deck() *DeckConfig

	// Per-pile-type move legality. Dispatch on the target's type is done
	// by the engine's ValidMove; these judge a single card against a
	// single pile of the matching type.
	IsValidFoundationMove(g *Game, id CardID, target *Pile) bool
	IsValidTableauMove(g *Game, id CardID, target *Pile) bool
	IsValidFreeCellMove(g *Game, id CardID, target *Pile) bool

	// CanMoveFrom is the source-eligibility gate, checked before target
	// legality. A variant may e.g. forbid foundations as move sources.
	CanMoveFrom(g *Game, id CardID, source *Pile) bool

	// CanMoveStack decides whether an already-contiguous run may land on
	// target as a unit. stack is ordered bottom to top.
	CanMoveStack(g *Game, stack []CardID, target *Pile) bool

	// Declarative tables.
	PileConfiguration() []PileSpec
	DealPattern() DealPattern
	BlockingConditions() map[PileType][]BlockingCondition
	WinConditions() []WinCondition

	// ScoringRules maps a move's target pile type to its point value.
	// MaximumScore is an advisory ceiling used as an anti-runaway
	// diagnostic, not a hard rule.
	ScoringRules() map[PileType]int
	MaximumScore() int

	// Stock and flip behavior.
	StockRules() StockRules
	FlipRules() map[PileType]FlipRule
}

// MoveScore returns the point value of moving a card onto target.
func MoveScore(r Rules, id CardID, target *Pile) int {
	return r.ScoringRules()[target.Type]
}

// ---------------------------------------------------------------------------
// Blocking-condition interpreter (shared, variant-agnostic)
// ---------------------------------------------------------------------------

// evalBlocking evaluates one condition against the current state. Unknown
// kinds are hard errors, never silently "not blocked".
func evalBlocking(g *Game, cond BlockingCondition, target *Pile) (bool, error) {
	switch cond.Kind {
	case BlockPileNotEmpty:
		return g.cardCountOf(cond.Pile) > 0, nil
	case BlockPileEmpty:
		return g.cardCountOf(cond.Pile) == 0, nil
	case BlockCardCount:
		return cond.Op.compare(g.cardCountOf(cond.Pile), cond.Count)
	case BlockCustom:
		if cond.Check == nil {
			return false, fmt.Errorf("custom blocking condition without predicate: %w", ErrUnknownCondition)
		}
		return cond.Check(g, target), nil
	}
	return false, fmt.Errorf("blocking condition kind %d: %w", uint8(cond.Kind), ErrUnknownCondition)
}

// PileTypeBlocked evaluates every blocking condition declared for t with OR
// semantics: any true condition blocks moves into target.
func (g *Game) PileTypeBlocked(t PileType, target *Pile) (bool, error) {
	for _, cond := range g.rules.BlockingConditions()[t] {
		blocked, err := evalBlocking(g, cond, target)
		if err != nil {
			return false, err
		}
		if blocked {
			return true, nil
		}
	}
	return false, nil
}

// ---------------------------------------------------------------------------
// Win-condition interpreter (shared, variant-agnostic)
// ---------------------------------------------------------------------------

// evalWin evaluates one win condition. Unknown kinds are hard errors.
func evalWin(g *Game, cond WinCondition) (bool, error) {
	switch cond.Kind {
	case WinFoundationComplete:
		any := false
		for _, p := range g.PilesOf(Foundation) {
			ok := p.Size() == cond.Count
			if cond.All && !ok {
				return false, nil
			}
			any = any || ok
		}
		if cond.All {
			return true, nil
		}
		return any, nil
	case WinTableauEmpty:
		for _, p := range g.PilesOf(Tableau) {
			if !p.IsEmpty() {
				return false, nil
			}
		}
		return true, nil
	case WinAllCardsInFoundation:
		return g.cardCountOf(Foundation) == len(g.cards), nil
	case WinCustom:
		if cond.Check == nil {
			return false, fmt.Errorf("custom win condition without predicate: %w", ErrUnknownCondition)
		}
		return cond.Check(g), nil
	}
	return false, fmt.Errorf("win condition kind %d: %w", uint8(cond.Kind), ErrUnknownCondition)
}

// CheckWinCondition reports whether every declared win condition holds.
func (g *Game) CheckWinCondition() (bool, error) {
	conds := g.rules.WinConditions()
	if len(conds) == 0 {
		return false, nil
	}
	for _, cond := range conds {
		ok, err := evalWin(g, cond)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

// ---------------------------------------------------------------------------
// Move dispatch (shared, variant-agnostic)
// ---------------------------------------------------------------------------

// IsValidMove aggregates the per-pile-type legality checks, dispatching on
// the target's type after the blocking interpreter has had its say. Stock
// and waste piles never accept player moves.
func (g *Game) IsValidMove(id CardID, target *Pile) (bool, error) {
	if target.IsFull() {
		return false, nil
	}
	blocked, err := g.PileTypeBlocked(target.Type, target)
	if err != nil || blocked {
		return false, err
	}
	switch target.Type {
	case Foundation:
		return g.rules.IsValidFoundationMove(g, id, target), nil
	case Tableau:
		return g.rules.IsValidTableauMove(g, id, target), nil
	case FreeCell:
		return g.rules.IsValidFreeCellMove(g, id, target), nil
	case Stock, Waste:
		return false, nil
	}
	return false, nil
}

// ValidTargets enumerates every currently-legal destination pile for a
// card, excluding the pile that holds it. The result agrees exactly with
// IsValidMove.
func (g *Game) ValidTargets(id CardID) ([]*Pile, error) {
	source := g.PileOf(id)
	var out []*Pile
	for _, p := range g.piles {
		if p == source {
			continue
		}
		ok, err := g.IsValidMove(id, p)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, p)
		}
	}
	return out, nil
}

// CanMoveStack forwards to the variant's stack-legality predicate.
func (g *Game) CanMoveStack(stack []CardID, target *Pile) bool {
	return g.rules.CanMoveStack(g, stack, target)
}

// ---------------------------------------------------------------------------
// Construction-time validation
// ---------------------------------------------------------------------------

// validateRules is the capability-set validation pass: every configuration
// error a variant could carry fails here, at construction, not at first use.
func validateRules(r Rules) error {
	deck := r.Deck()
	if deck == nil {
		return fmt.Errorf("%w: nil deck config", ErrInvalidRules)
	}
	if err := deck.Validate(); err != nil {
		return err
	}

	specs := r.PileConfiguration()
	if len(specs) == 0 {
		return fmt.Errorf("%w: empty pile configuration", ErrInvalidRules)
	}
	pileCount := map[PileType]int{}
	for _, spec := range specs {
		if spec.Count <= 0 {
			return fmt.Errorf("%w: %s pile count %d", ErrInvalidRules, spec.Type, spec.Count)
		}
		pileCount[spec.Type] += spec.Count
	}

	pattern := r.DealPattern()
	total := 0
	for _, step := range pattern.Steps {
		if len(step.Counts) > pileCount[step.Pile] {
			return fmt.Errorf("%w: deal step covers %d %s piles, layout has %d",
				ErrInvalidRules, len(step.Counts), step.Pile, pileCount[step.Pile])
		}
		if step.Face > FaceUpLast {
			return fmt.Errorf("%w: face policy %d", ErrInvalidRules, step.Face)
		}
		for _, n := range step.Counts {
			if n < 0 {
				return fmt.Errorf("%w: negative deal count", ErrInvalidRules)
			}
			total += n
		}
	}
	if total != deck.DeckSize {
		return fmt.Errorf("%w: deal pattern covers %d cards, deck has %d",
			ErrInvalidRules, total, deck.DeckSize)
	}
	for _, redir := range pattern.Redirects {
		if redir.Match == nil || redir.Target == nil {
			return fmt.Errorf("%w: deal redirect missing predicate or target", ErrInvalidRules)
		}
	}

	for t, conds := range r.BlockingConditions() {
		for _, cond := range conds {
			if cond.Kind < BlockPileNotEmpty || cond.Kind > BlockCustom {
				return fmt.Errorf("%w: %s blocking condition kind %d", ErrInvalidRules, t, cond.Kind)
			}
			if cond.Kind == BlockCustom && cond.Check == nil {
				return fmt.Errorf("%w: %s custom blocking condition without predicate", ErrInvalidRules, t)
			}
			if cond.Kind == BlockCardCount && cond.Op > OpGE {
				return fmt.Errorf("%w: %s blocking comparison operator %d", ErrInvalidRules, t, cond.Op)
			}
		}
	}

	wins := r.WinConditions()
	if len(wins) == 0 {
		return fmt.Errorf("%w: no win conditions", ErrInvalidRules)
	}
	for _, cond := range wins {
		if cond.Kind < WinFoundationComplete || cond.Kind > WinCustom {
			return fmt.Errorf("%w: win condition kind %d", ErrInvalidRules, cond.Kind)
		}
		if cond.Kind == WinCustom && cond.Check == nil {
			return fmt.Errorf("%w: custom win condition without predicate", ErrInvalidRules)
		}
		if cond.Kind == WinFoundationComplete && cond.Count <= 0 {
			return fmt.Errorf("%w: foundation win count %d", ErrInvalidRules, cond.Count)
		}
	}

	stock := r.StockRules()
	if stock.CardsPerDraw < 0 {
		return fmt.Errorf("%w: cards per draw %d", ErrInvalidRules, stock.CardsPerDraw)
	}
	if stock.CardsPerDraw > 0 && (pileCount[Stock] == 0 || pileCount[Waste] == 0) {
		return fmt.Errorf("%w: stock drawing declared without stock and waste piles", ErrInvalidRules)
	}

	return nil
}

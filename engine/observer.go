package engine

// Observer receives notifications after state-changing engine calls. Rule
// evaluation itself never logs or observes anything; diagnostics live
// entirely in whatever the caller injects here.
type Observer interface {
	GameDealt(g *Game)
	MoveApplied(g *Game, m MoveRecord)
	MoveUndone(g *Game, m MoveRecord)
	StockDrawn(g *Game, drawn int, redeal bool)
	GameWon(g *Game)
}

// nopObserver is installed when the caller injects nothing.
type nopObserver struct{}

func (nopObserver) GameDealt(*Game)              {}
func (nopObserver) MoveApplied(*Game, MoveRecord) {}
func (nopObserver) MoveUndone(*Game, MoveRecord)  {}
func (nopObserver) StockDrawn(*Game, int, bool)   {}
func (nopObserver) GameWon(*Game)                 {}

package session

import (
	"encoding/json"
	"time"

	"patience/engine"
)

// SnapshotCard is one card at the persistence boundary.
type SnapshotCard struct {
	ID     int               `json:"id"`
	Suit   string            `json:"suit"`
	Rank   int               `json:"rank"`
	Wild   bool              `json:"wild,omitempty"`
	FaceUp bool              `json:"faceUp"`
	Props  map[string]string `json:"props,omitempty"`
}

// SnapshotPile records pile membership and order, bottom to top.
type SnapshotPile struct {
	Type  string `json:"type"`
	Index int    `json:"index"`
	Cards []int  `json:"cards"`
}

// SnapshotMove is one entry of the move history.
type SnapshotMove struct {
	Cards     []int     `json:"cards"`
	FromType  string    `json:"fromType"`
	FromIndex int       `json:"fromIndex"`
	ToType    string    `json:"toType"`
	ToIndex   int       `json:"toIndex"`
	Points    int       `json:"points"`
	Flipped   []int     `json:"flipped,omitempty"`
	At        time.Time `json:"at"`
}

// Snapshot is the full serialized game state: every card with its face and
// wild state, pile membership and order, score and move history. No wire
// format beyond JSON is prescribed; this is the minimum a save/restore
// mechanism must carry.
type Snapshot struct {
	Variant string         `json:"variant"`
	Score   int            `json:"score"`
	Won     bool           `json:"won"`
	Cards   []SnapshotCard `json:"cards"`
	Piles   []SnapshotPile `json:"piles"`
	Moves   []SnapshotMove `json:"moves"`
}

// Snapshot captures the session's game as a read-only snapshot.
func (s *Session) Snapshot() (*Snapshot, error) {
	snap := &Snapshot{Variant: s.Variant}
	err := s.Do(func(g *engine.Game) error {
		snap.Score = g.Score()
		snap.Won = g.Won()
		for i := 0; i < g.CardCount(); i++ {
			c := g.Card(engine.CardID(i))
			snap.Cards = append(snap.Cards, SnapshotCard{
				ID:     i,
				Suit:   string(c.Suit),
				Rank:   c.Rank,
				Wild:   c.Wild,
				FaceUp: c.FaceUp,
				Props:  c.Props,
			})
		}
		for _, p := range g.Piles() {
			sp := SnapshotPile{Type: p.Type.String(), Index: p.Index, Cards: []int{}}
			for _, id := range p.Cards() {
				sp.Cards = append(sp.Cards, int(id))
			}
			snap.Piles = append(snap.Piles, sp)
		}
		for _, m := range g.Moves() {
			sm := SnapshotMove{
				FromType:  m.From.Type.String(),
				FromIndex: m.From.Index,
				ToType:    m.To.Type.String(),
				ToIndex:   m.To.Index,
				Points:    m.Points,
				At:        m.At,
			}
			for _, id := range m.Cards {
				sm.Cards = append(sm.Cards, int(id))
			}
			for _, id := range m.Flipped {
				sm.Flipped = append(sm.Flipped, int(id))
			}
			snap.Moves = append(snap.Moves, sm)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// Encode serializes the session snapshot as JSON.
func (s *Session) Encode() ([]byte, error) {
	snap, err := s.Snapshot()
	if err != nil {
		return nil, err
	}
	return json.Marshal(snap)
}

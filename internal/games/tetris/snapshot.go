package tetris

// Snapshot captures the complete game state for determinism testing and replay.
// Snapshots are comparable with ==.
type Snapshot struct {
	Frame    uint64
	Phase    Phase
	Score    int
	Lines    int
	Pieces   int
	ActiveID uint8
	NextID   uint8
	Active   Mask
	CursorX  int
	CursorY  int
	CanSwap  bool
	Interval float64
	Field    [Width * Height]uint8
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Frame:    g.frames,
		Phase:    g.phase,
		Score:    g.score,
		Lines:    g.lines,
		Pieces:   g.pieces,
		ActiveID: g.active.ID,
		NextID:   g.next.ID,
		Active:   g.active.Mask,
		CursorX:  g.cursor.X,
		CursorY:  g.cursor.Y,
		CanSwap:  g.canSwap,
		Interval: g.interval,
		Field:    g.field.Cells(),
	}
}

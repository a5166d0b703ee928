package game

import (
	"github.com/lgbarn/chessplay-go/internal/errors"
	"github.com/lgbarn/chessplay-go/internal/history"
)

// StepForward replays the entry at the cursor. It reports false at the end
// of the log or while a promotion choice is pending.
func (g *Game) StepForward() bool {
	if g.PromotingPawn || g.AtEnd() {
		return false
	}
	i := int(g.Cursor)
	mover := g.moverOf(i)
	errors.Assert(mover == g.ToMove, "entry %d belongs to %v but %v is to move", i, mover, g.ToMove)

	history.Forward(&g.Board, mover, history.Decode(g.History.At(i)))
	g.Cursor++
	g.finalize()
	return true
}

// StepBack undoes the entry before the cursor. It reports false at the
// start of the log or while a promotion choice is pending.
func (g *Game) StepBack() bool {
	if g.PromotingPawn || g.Cursor == 0 {
		return false
	}
	i := int(g.Cursor) - 1
	mover := g.moverOf(i)
	errors.Assert(mover != g.ToMove, "undoing entry %d of %v while %v is to move", i, mover, g.ToMove)

	history.Back(&g.Board, mover, history.Decode(g.History.At(i)))
	g.Cursor--
	g.finalize()
	return true
}

// Rewind steps back to the start of the log.
func (g *Game) Rewind() {
	for g.StepBack() {
	}
}

// FastForward replays every remaining entry.
func (g *Game) FastForward() {
	for g.StepForward() {
	}
}

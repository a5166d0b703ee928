// Package game provides the game state controller: it applies chosen moves,
// records them in the history log, classifies the running state and replays
// history forward and back.
//
// A Game holds only fixed-size values, so assigning it makes an independent
// deep copy. The search engine relies on this to simulate moves, and the
// session store relies on it to serialize games with encoding/binary.
package game

import (
	"github.com/lgbarn/chessplay-go/internal/chess"
	"github.com/lgbarn/chessplay-go/internal/engine"
	"github.com/lgbarn/chessplay-go/internal/history"
)

// Ref names a piece by side and slot instead of by address.
type Ref struct {
	Valid  bool
	Colour chess.Colour
	Index  uint8
}

// NoRef is the empty reference.
var NoRef = Ref{}

// RefTo returns a reference to slot index of colour c.
func RefTo(c chess.Colour, index int) Ref {
	chess.CheckIndex(index)
	return Ref{Valid: true, Colour: c, Index: uint8(index)}
}

// Game is the complete rules state of one game.
type Game struct {
	Board   chess.Board
	Dests   engine.Destinations
	History history.Log

	Running chess.RunningState
	ToMove  chess.Colour
	// StartColour moves first; it is Black only for positions set up from FEN.
	StartColour chess.Colour
	Cursor      uint16

	GameOver      bool
	PromotingPawn bool

	Selected  Ref
	Targeted  Ref
	CursorRow int8
	CursorCol int8
}

// New returns a game at the standard starting position.
func New() *Game {
	g := &Game{}
	g.Reset()
	return g
}

// Reset restores the standard starting position and clears the history.
func (g *Game) Reset() {
	*g = Game{ToMove: chess.White, StartColour: chess.White}
	g.Board.SetupInitialPosition()
	g.refresh()
}

// refresh recomputes destinations and classifies the side to move without
// flipping the turn. Used after a position is set up directly.
func (g *Game) refresh() {
	engine.Recompute(&g.Board, g.lastMove(), &g.Dests)
	g.Running = g.classify(g.ToMove)
	if g.Running.IsTerminal() {
		g.GameOver = true
	}
}

// moverOf returns the colour that made history entry i.
func (g *Game) moverOf(i int) chess.Colour {
	if g.StartColour == chess.White {
		return history.Mover(i)
	}
	return history.Mover(i).Opposite()
}

// lastMove describes the entry just before the cursor for en passant.
func (g *Game) lastMove() engine.LastMove {
	if g.Cursor == 0 {
		return engine.LastMove{}
	}
	i := int(g.Cursor) - 1
	m := history.Decode(g.History.At(i))
	mover := g.moverOf(i)
	p := &g.Board.Pieces[mover][m.Index]
	return engine.LastMove{
		PawnDoubleStep: p.Type == chess.Pawn && (m.RowDelta == 2 || m.RowDelta == -2),
		Colour:         mover,
		Index:          uint8(m.Index),
	}
}

// PieceAt returns a reference to the live piece on (row, col).
func (g *Game) PieceAt(row, col int) (Ref, chess.Piece, bool) {
	p, c, ok := g.Board.PieceAt(row, col)
	if !ok {
		return NoRef, chess.Piece{}, false
	}
	return RefTo(c, int(p.Index)), *p, true
}

// Piece returns the piece a reference names.
func (g *Game) Piece(r Ref) chess.Piece {
	return *g.Board.Piece(r.Colour, int(r.Index))
}

// DestinationsOf returns the legal destinations of a referenced piece.
func (g *Game) DestinationsOf(r Ref) []engine.Destination {
	if !r.Valid {
		return nil
	}
	return g.Dests.Of(r.Colour, int(r.Index))
}

// Ply returns the number of moves played up to the cursor.
func (g *Game) Ply() int {
	return int(g.Cursor)
}

// AtEnd reports whether the cursor is at the last recorded entry.
func (g *Game) AtEnd() bool {
	return int(g.Cursor) == g.History.Len()
}

// Winner returns the side that delivered checkmate.
func (g *Game) Winner() (chess.Colour, bool) {
	if g.Running != chess.Checkmate {
		return chess.White, false
	}
	return g.ToMove.Opposite(), true
}

package game

import (
	"github.com/lgbarn/chessplay-go/internal/chess"
	"github.com/lgbarn/chessplay-go/internal/engine"
	"github.com/lgbarn/chessplay-go/internal/errors"
	"github.com/lgbarn/chessplay-go/internal/history"
)

// TryMove moves the side-to-move's piece in slot index to (row, col).
// It reports false and changes nothing when the square is not one of the
// piece's legal destinations, when the game is over or when a promotion
// choice is pending. A pawn reaching the last rank leaves the game waiting
// for ChoosePromotion.
func (g *Game) TryMove(index, row, col int) bool {
	if g.GameOver || g.PromotingPawn {
		return false
	}
	mover := g.ToMove
	piece := g.Board.Piece(mover, index)
	dest, ok := g.Dests.Find(mover, index, row, col)
	if !ok || piece.Type == chess.Empty {
		return false
	}

	if !g.AtEnd() {
		g.History.Truncate(int(g.Cursor))
	}

	m := history.Move{
		RowDelta: row - int(piece.Row),
		ColDelta: col - int(piece.Column),
		Index:    index,
	}
	if dest.Capture {
		victim := g.captureVictim(mover, piece, row, col)
		m.Capture = true
		m.CapturedIndex = int(victim.Index)
		m.CapturedType = victim.Type
	}

	history.Forward(&g.Board, mover, m)
	g.History.Append(history.Encode(m))
	g.Cursor++

	if piece.Type == chess.Pawn && (row == 0 || row == chess.BoardSize-1) {
		g.PromotingPawn = true
		return true
	}
	g.finalize()
	return true
}

// captureVictim finds the piece taken by a capturing move, including the
// pawn bypassed by en passant.
func (g *Game) captureVictim(mover chess.Colour, piece *chess.Piece, row, col int) *chess.Piece {
	opp := mover.Opposite()
	victim := g.Board.PieceOf(opp, row, col)
	if victim == nil && piece.Type == chess.Pawn {
		victim = g.Board.PieceOf(opp, int(piece.Row), col)
	}
	if victim == nil {
		panic(errors.Invariantf("capture on %s finds nothing to take", chess.SquareName(row, col)))
	}
	if victim.Type == chess.King {
		panic(errors.Invariantf("attempt to capture the %v king", opp))
	}
	return victim
}

// ChoosePromotion completes a pending promotion with piece type t and
// finalizes the move. It reports false when no promotion is pending or t is
// not a promotion type.
func (g *Game) ChoosePromotion(t chess.PieceType) bool {
	if !g.PromotingPawn || !t.IsPromotionType() {
		return false
	}
	m := history.Decode(g.History.At(int(g.Cursor) - 1))
	g.Board.Piece(g.ToMove, m.Index).Type = t
	g.History.SetPromotion(t)
	g.PromotingPawn = false
	g.finalize()
	return true
}

// Play applies a move and, if it promotes, the given promotion type
// (queen when p is not a promotion type).
func (g *Game) Play(index, row, col int, p chess.PieceType) bool {
	if !g.TryMove(index, row, col) {
		return false
	}
	if g.PromotingPawn {
		if !p.IsPromotionType() {
			p = chess.Queen
		}
		g.ChoosePromotion(p)
	}
	return true
}

// finalize recomputes destinations, classifies the opponent of the side
// that just moved, latches game over and hands the turn over.
func (g *Game) finalize() {
	engine.Recompute(&g.Board, g.lastMove(), &g.Dests)
	next := g.ToMove.Opposite()
	g.Running = g.classify(next)

	if g.Running.IsTerminal() && !g.GameOver {
		g.GameOver = true
		g.Cursor = uint16(g.History.Len())
	}

	g.ToMove = next
	g.Selected = NoRef
}

// classify returns the running state seen by side c, who is about to move.
func (g *Game) classify(c chess.Colour) chess.RunningState {
	inCheck := engine.IsCheck(&g.Board, c)
	canMove := g.Dests.CanMove[c]

	state := chess.Normal
	switch {
	case inCheck && canMove:
		state = chess.Check
	case inCheck:
		state = chess.Checkmate
	case !canMove:
		state = chess.Stalemate
	case g.Board.OnlyKings():
		state = chess.Stalemate
	}

	if state != chess.Checkmate && int(g.Cursor) == history.MaxEntries {
		state = chess.Stalemate
	}
	return state
}

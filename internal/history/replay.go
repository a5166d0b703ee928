package history

import (
	"github.com/lgbarn/chessplay-go/internal/chess"
	"github.com/lgbarn/chessplay-go/internal/errors"
)

// Forward applies a recorded move of colour mover to the board.
func Forward(b *chess.Board, mover chess.Colour, m Move) {
	piece := b.Piece(mover, m.Index)
	errors.Assert(piece.Type != chess.Empty, "%v slot %d replayed while captured", mover, m.Index)

	if m.Capture {
		victim := b.Piece(mover.Opposite(), m.CapturedIndex)
		errors.Assert(victim.Type == m.CapturedType, "replayed capture of %v finds %v", m.CapturedType, victim.Type)
		victim.Type = chess.Empty
	}

	if m.Index == chess.KingIndex {
		if r := chess.CastleRook(m.ColDelta); r >= 0 {
			rook := b.Piece(mover, r)
			rook.Column = int8(chess.CastleRookColumn(r))
			rook.MoveCount++
		}
	}

	piece.Row += int8(m.RowDelta)
	piece.Column += int8(m.ColDelta)
	chess.CheckSquare(int(piece.Row), int(piece.Column))
	piece.MoveCount++

	if m.Promotion {
		piece.Type = m.PromotionType
	}
}

// Back undoes a recorded move of colour mover, the exact inverse of Forward.
func Back(b *chess.Board, mover chess.Colour, m Move) {
	piece := b.Piece(mover, m.Index)

	if m.Capture {
		victim := b.Piece(mover.Opposite(), m.CapturedIndex)
		errors.Assert(victim.Type == chess.Empty, "undo restores %v over a live %v", m.CapturedType, victim.Type)
		victim.Type = m.CapturedType
	}

	if m.Index == chess.KingIndex {
		if r := chess.CastleRook(m.ColDelta); r >= 0 {
			rook := b.Piece(mover, r)
			rook.Column = int8(chess.RookHomeColumn(r))
			rook.MoveCount--
		}
	}

	if m.Promotion {
		piece.Type = chess.Pawn
	}

	piece.Row -= int8(m.RowDelta)
	piece.Column -= int8(m.ColDelta)
	chess.CheckSquare(int(piece.Row), int(piece.Column))
	piece.MoveCount--
}

package engine

import "github.com/lgbarn/chessplay-go/internal/chess"

// IsCheck returns true if the given colour's king is attacked by any
// opposing piece.
func IsCheck(board *chess.Board, colour chess.Colour) bool {
	king := board.King(colour)
	occ := occupancyOf(board)
	attacker := colour.Opposite()

	for i := range board.Pieces[attacker] {
		p := &board.Pieces[attacker][i]
		if p.Type == chess.Empty {
			continue
		}
		if attacks(&occ, p, attacker, int(king.Row), int(king.Column)) {
			return true
		}
	}
	return false
}

// attacks reports whether piece p of colour c reaches (row, col) with its
// capture pattern.
func attacks(occ *occupancy, p *chess.Piece, c chess.Colour, row, col int) bool {
	fromRow, fromCol := int(p.Row), int(p.Column)
	rowDiff := row - fromRow
	colDiff := abs(col - fromCol)

	switch p.Type {
	case chess.Pawn:
		return rowDiff == c.Forward() && colDiff == 1

	case chess.Knight:
		return (abs(rowDiff) == 1 && colDiff == 2) || (abs(rowDiff) == 2 && colDiff == 1)

	case chess.King:
		return abs(rowDiff) <= 1 && colDiff <= 1 && (rowDiff != 0 || colDiff != 0)

	case chess.Rook:
		return occ.isStraightClear(fromRow, fromCol, row, col)

	case chess.Bishop:
		return occ.isDiagonalClear(fromRow, fromCol, row, col)

	case chess.Queen:
		return occ.isStraightClear(fromRow, fromCol, row, col) ||
			occ.isDiagonalClear(fromRow, fromCol, row, col)
	}

	return false
}

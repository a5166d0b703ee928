package engine

import "github.com/lgbarn/chessplay-go/internal/chess"

// occupancy is a square grid built from the side arrays: 0 for an empty
// square, otherwise the occupant's colour plus one.
type occupancy [chess.BoardSize][chess.BoardSize]uint8

// occupancyOf snapshots which squares hold live pieces.
func occupancyOf(b *chess.Board) occupancy {
	var occ occupancy
	for _, c := range colours {
		for i := range b.Pieces[c] {
			p := &b.Pieces[c][i]
			if p.Type != chess.Empty {
				chess.CheckSquare(int(p.Row), int(p.Column))
				occ[p.Row][p.Column] = uint8(c) + 1
			}
		}
	}
	return occ
}

// empty reports whether (row, col) is on the board and unoccupied.
func (o *occupancy) empty(row, col int) bool {
	return chess.InBounds(row, col) && o[row][col] == 0
}

// holds reports whether (row, col) is on the board and occupied by colour c.
func (o *occupancy) holds(row, col int, c chess.Colour) bool {
	return chess.InBounds(row, col) && o[row][col] == uint8(c)+1
}

// isStraightClear checks that every square strictly between the two
// endpoints of a rank or file is empty.
func (o *occupancy) isStraightClear(fromRow, fromCol, toRow, toCol int) bool {
	if fromRow != toRow && fromCol != toCol {
		return false
	}
	return o.isLineClear(fromRow, fromCol, toRow, toCol)
}

// isDiagonalClear checks that every square strictly between the two
// endpoints of a diagonal is empty.
func (o *occupancy) isDiagonalClear(fromRow, fromCol, toRow, toCol int) bool {
	if abs(toRow-fromRow) != abs(toCol-fromCol) {
		return false
	}
	return o.isLineClear(fromRow, fromCol, toRow, toCol)
}

func (o *occupancy) isLineClear(fromRow, fromCol, toRow, toCol int) bool {
	rowDir := sign(toRow - fromRow)
	colDir := sign(toCol - fromCol)
	if rowDir == 0 && colDir == 0 {
		return false
	}

	row, col := fromRow+rowDir, fromCol+colDir
	for row != toRow || col != toCol {
		if o[row][col] != 0 {
			return false
		}
		row += rowDir
		col += colDir
	}
	return true
}

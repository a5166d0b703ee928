package chess

// RookHomeColumn returns the starting column of a castling rook slot.
func RookHomeColumn(rookIndex int) int {
	if rookIndex == KingsideRook {
		return BoardSize - 1
	}
	return 0
}

// CastleRookColumn returns where a castling rook lands.
func CastleRookColumn(rookIndex int) int {
	if rookIndex == KingsideRook {
		return 5
	}
	return 3
}

// CastleRook returns the rook slot moved along with a king moving by colDelta,
// or -1 when the king move is not a castle.
func CastleRook(colDelta int) int {
	switch colDelta {
	case 2:
		return KingsideRook
	case -2:
		return QueensideRook
	}
	return -1
}

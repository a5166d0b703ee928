// Package chess provides the board and piece repository: colours, piece types,
// the 16-slot side arrays and square naming.
package chess

// Colour represents the colour of a piece or player.
type Colour uint8

const (
	Black Colour = iota
	White
)

// String returns the string representation of a colour.
func (c Colour) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// Opposite returns the opposite colour.
func (c Colour) Opposite() Colour {
	if c == White {
		return Black
	}
	return White
}

// Forward returns the row direction pawns of this colour advance in.
func (c Colour) Forward() int {
	if c == White {
		return 1
	}
	return -1
}

// HomeRow returns the back rank of this colour.
func (c Colour) HomeRow() int {
	if c == White {
		return 0
	}
	return BoardSize - 1
}

// PieceType identifies the kind of piece occupying a slot.
type PieceType uint8

const (
	Empty PieceType = iota // Captured or unused slot
	Pawn
	Rook
	Knight
	Bishop
	Queen
	King
)

// String returns the string representation of a piece type.
func (p PieceType) String() string {
	names := []string{"Empty", "Pawn", "Rook", "Knight", "Bishop", "Queen", "King"}
	if int(p) < len(names) {
		return names[p]
	}
	return "Unknown"
}

// Letter returns the single letter representation of a piece type (uppercase).
func (p PieceType) Letter() byte {
	letters := []byte{' ', 'P', 'R', 'N', 'B', 'Q', 'K'}
	if int(p) < len(letters) {
		return letters[p]
	}
	return '?'
}

// ColouredLetter returns the FEN letter of a piece type for the given colour.
func (p PieceType) ColouredLetter(c Colour) byte {
	l := p.Letter()
	if c == Black && l >= 'A' && l <= 'Z' {
		return l - 'A' + 'a'
	}
	return l
}

// PromotionTypes lists the piece types a pawn may promote to, in codec order.
var PromotionTypes = [4]PieceType{Rook, Knight, Bishop, Queen}

// IsPromotionType reports whether p is a legal promotion choice.
func (p PieceType) IsPromotionType() bool {
	return p == Rook || p == Knight || p == Bishop || p == Queen
}

// PieceTypeFromLetter parses a promotion letter such as 'q' or 'N'.
func PieceTypeFromLetter(l byte) (PieceType, bool) {
	switch l {
	case 'p', 'P':
		return Pawn, true
	case 'r', 'R':
		return Rook, true
	case 'n', 'N':
		return Knight, true
	case 'b', 'B':
		return Bishop, true
	case 'q', 'Q':
		return Queen, true
	case 'k', 'K':
		return King, true
	}
	return Empty, false
}

// RunningState is the classification recomputed after every move.
type RunningState uint8

const (
	Normal RunningState = iota
	Check
	Checkmate
	Stalemate
)

// String returns the string representation of a running state.
func (s RunningState) String() string {
	names := []string{"Normal", "Check", "Checkmate", "Stalemate"}
	if int(s) < len(names) {
		return names[s]
	}
	return "Unknown"
}

// IsTerminal reports whether the state ends the game.
func (s RunningState) IsTerminal() bool {
	return s == Checkmate || s == Stalemate
}

// Board dimensions and slot layout.
const (
	BoardSize     = 8
	PiecesPerSide = 16

	// Slot indices. 0-7 hold the pawns by file.
	QueensideRook   = 8
	QueensideKnight = 9
	QueensideBishop = 10
	QueenIndex      = 11
	KingIndex       = 12
	KingsideBishop  = 13
	KingsideKnight  = 14
	KingsideRook    = 15
)

// backRank gives the piece type of slots 8-15, which sit on columns 0-7.
var backRank = [BoardSize]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

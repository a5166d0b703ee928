package chess

import "github.com/lgbarn/chessplay-go/internal/errors"

// Piece is one of the 16 fixed slots of a side. A captured piece becomes
// Empty but keeps its slot so indices stay stable for the whole game.
type Piece struct {
	Type      PieceType
	Row       int8
	Column    int8
	MoveCount uint16
	Index     uint8
}

// At reports whether the piece is live and standing on (row, col).
func (p *Piece) At(row, col int) bool {
	return p.Type != Empty && int(p.Row) == row && int(p.Column) == col
}

// Board holds both side arrays, indexed by Colour.
type Board struct {
	Pieces [2][PiecesPerSide]Piece
}

// NewBoard creates a board with the standard starting position.
func NewBoard() *Board {
	b := &Board{}
	b.SetupInitialPosition()
	return b
}

// SetupInitialPosition sets up the standard chess starting position.
func (b *Board) SetupInitialPosition() {
	for _, c := range []Colour{White, Black} {
		home := c.HomeRow()
		pawnRow := home + c.Forward()
		for col := 0; col < BoardSize; col++ {
			b.Pieces[c][col] = Piece{Type: Pawn, Row: int8(pawnRow), Column: int8(col), Index: uint8(col)}
			b.Pieces[c][col+8] = Piece{Type: backRank[col], Row: int8(home), Column: int8(col), Index: uint8(col + 8)}
		}
	}
}

// Clear marks every slot Empty, keeping slot indices intact.
func (b *Board) Clear() {
	for c := range b.Pieces {
		for i := range b.Pieces[c] {
			b.Pieces[c][i] = Piece{Index: uint8(i)}
		}
	}
}

// Place puts a piece of the given type into a slot. Used to build positions
// in tests and from the CLI setup command.
func (b *Board) Place(c Colour, index int, t PieceType, row, col int) {
	CheckIndex(index)
	CheckSquare(row, col)
	b.Pieces[c][index] = Piece{Type: t, Row: int8(row), Column: int8(col), Index: uint8(index)}
}

// Side returns the slot array of a colour.
func (b *Board) Side(c Colour) *[PiecesPerSide]Piece {
	return &b.Pieces[c]
}

// Piece returns the slot of a colour by index.
func (b *Board) Piece(c Colour, index int) *Piece {
	CheckIndex(index)
	return &b.Pieces[c][index]
}

// King returns the king slot of a colour.
func (b *Board) King(c Colour) *Piece {
	k := &b.Pieces[c][KingIndex]
	if k.Type != King {
		panic(errors.Invariantf("%v slot %d holds %v, not the king", c, KingIndex, k.Type))
	}
	return k
}

// PieceOf returns the live piece of colour c on (row, col), or nil.
func (b *Board) PieceOf(c Colour, row, col int) *Piece {
	for i := range b.Pieces[c] {
		if b.Pieces[c][i].At(row, col) {
			return &b.Pieces[c][i]
		}
	}
	return nil
}

// PieceAt returns the live piece on (row, col) and its colour.
func (b *Board) PieceAt(row, col int) (*Piece, Colour, bool) {
	for _, c := range []Colour{White, Black} {
		if p := b.PieceOf(c, row, col); p != nil {
			return p, c, true
		}
	}
	return nil, White, false
}

// Occupied reports whether any live piece stands on (row, col).
func (b *Board) Occupied(row, col int) bool {
	_, _, ok := b.PieceAt(row, col)
	return ok
}

// OnlyKings reports whether both sides are reduced to a bare king.
func (b *Board) OnlyKings() bool {
	for c := range b.Pieces {
		for i := range b.Pieces[c] {
			if i != KingIndex && b.Pieces[c][i].Type != Empty {
				return false
			}
		}
	}
	return true
}

// Material returns the count of live pieces of each type for a colour.
func (b *Board) Material(c Colour) [King + 1]int {
	var counts [King + 1]int
	for i := range b.Pieces[c] {
		counts[b.Pieces[c][i].Type]++
	}
	return counts
}

// InBounds reports whether (row, col) lies on the board.
func InBounds(row, col int) bool {
	return row >= 0 && row < BoardSize && col >= 0 && col < BoardSize
}

// CheckSquare panics when (row, col) is off the board.
func CheckSquare(row, col int) {
	if !InBounds(row, col) {
		panic(errors.Invariantf("square (%d,%d) is off the board", row, col))
	}
}

// CheckIndex panics when index is not a valid slot.
func CheckIndex(index int) {
	if index < 0 || index >= PiecesPerSide {
		panic(errors.Invariantf("piece index %d out of range", index))
	}
}

package game

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/lgbarn/chessplay-go/internal/chess"
	"github.com/lgbarn/chessplay-go/internal/engine"
	"github.com/lgbarn/chessplay-go/internal/errors"
	"github.com/lgbarn/chessplay-go/internal/history"
)

// InitialFEN is the FEN string for the standard starting position.
const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// preferredSlots lists the slots a piece type occupies before it spills into
// free pawn slots, the way a promoted piece does.
var preferredSlots = map[chess.PieceType][]int{
	chess.Rook:   {chess.QueensideRook, chess.KingsideRook},
	chess.Knight: {chess.QueensideKnight, chess.KingsideKnight},
	chess.Bishop: {chess.QueensideBishop, chess.KingsideBishop},
	chess.Queen:  {chess.QueenIndex},
	chess.King:   {chess.KingIndex},
}

// NewFromFEN sets up a game from a FEN string. Castling rights become move
// counts on the king and rooks. En passant rights come from the move log,
// which starts empty, so a FEN naming an en passant target is rejected. The
// clocks are accepted but not used.
func NewFromFEN(fen string) (*Game, error) {
	parts := strings.Fields(fen)
	if len(parts) < 2 {
		return nil, fmt.Errorf("need placement and side to move: %w", errors.ErrInvalidFEN)
	}

	g := &Game{}
	g.Board.Clear()
	var used [2][chess.PiecesPerSide]bool

	if err := parsePiecePositions(&g.Board, &used, parts[0]); err != nil {
		return nil, err
	}
	if err := parseSideToMove(g, parts[1]); err != nil {
		return nil, err
	}
	castling := "-"
	if len(parts) > 2 {
		castling = parts[2]
	}
	if err := applyMoveCounts(&g.Board, castling); err != nil {
		return nil, err
	}
	if len(parts) > 3 && parts[3] != "-" {
		return nil, fmt.Errorf("en passant target %q: setups cannot carry en passant rights: %w", parts[3], errors.ErrInvalidFEN)
	}

	for _, c := range []chess.Colour{chess.White, chess.Black} {
		if !used[c][chess.KingIndex] {
			return nil, fmt.Errorf("%v has no king: %w", c, errors.ErrInvalidFEN)
		}
	}
	if engine.IsCheck(&g.Board, g.ToMove.Opposite()) {
		return nil, fmt.Errorf("%v is in check but not to move: %w", g.ToMove.Opposite(), errors.ErrInvalidFEN)
	}

	g.refresh()
	return g, nil
}

// parsePiecePositions parses the piece placement field of a FEN string.
func parsePiecePositions(b *chess.Board, used *[2][chess.PiecesPerSide]bool, positions string) error {
	row, col := chess.BoardSize-1, 0

	for _, c := range positions {
		switch {
		case c == '/':
			row--
			col = 0
		case c >= '1' && c <= '8':
			col += int(c - '0')
		default:
			piece, ok := chess.PieceTypeFromLetter(byte(c))
			if !ok {
				return fmt.Errorf("invalid piece character: %c: %w", c, errors.ErrInvalidFEN)
			}
			if !chess.InBounds(row, col) {
				return fmt.Errorf("position out of bounds: %w", errors.ErrInvalidFEN)
			}

			colour := chess.White
			if unicode.IsLower(c) {
				colour = chess.Black
			}

			slot, err := pickSlot(used[colour][:], piece, row, col)
			if err != nil {
				return fmt.Errorf("%v %v on %s: %w", colour, piece, chess.SquareName(row, col), err)
			}
			used[colour][slot] = true
			b.Place(colour, slot, piece, row, col)
			col++
		}
	}
	return nil
}

// pickSlot chooses a free slot for a piece found on (row, col).
func pickSlot(used []bool, piece chess.PieceType, row, col int) (int, error) {
	if piece == chess.Pawn {
		if row == 0 || row == chess.BoardSize-1 {
			return 0, fmt.Errorf("pawn on the last rank: %w", errors.ErrInvalidFEN)
		}
		if !used[col] {
			return col, nil
		}
	}

	slots := preferredSlots[piece]
	if piece == chess.Rook && col == chess.BoardSize-1 {
		slots = []int{chess.KingsideRook, chess.QueensideRook}
	}
	for _, s := range slots {
		if !used[s] {
			return s, nil
		}
	}
	if piece == chess.King {
		return 0, fmt.Errorf("second king: %w", errors.ErrInvalidFEN)
	}
	for s := 0; s < chess.BoardSize; s++ {
		if !used[s] {
			return s, nil
		}
	}
	return 0, fmt.Errorf("more than %d pieces: %w", chess.PiecesPerSide, errors.ErrInvalidFEN)
}

// parseSideToMove parses the side to move field.
func parseSideToMove(g *Game, side string) error {
	switch side {
	case "w":
		g.ToMove = chess.White
	case "b":
		g.ToMove = chess.Black
	default:
		return fmt.Errorf("invalid side to move: %s: %w", side, errors.ErrInvalidFEN)
	}
	g.StartColour = g.ToMove
	return nil
}

// applyMoveCounts marks every piece as moved except pawns on their start
// rank and the king and rooks that keep a castling right.
func applyMoveCounts(b *chess.Board, castling string) error {
	for c := range b.Pieces {
		colour := chess.Colour(c)
		for i := range b.Pieces[c] {
			p := &b.Pieces[c][i]
			if p.Type == chess.Empty {
				continue
			}
			p.MoveCount = 1
			if p.Type == chess.Pawn && int(p.Row) == colour.HomeRow()+colour.Forward() {
				p.MoveCount = 0
			}
		}
	}

	if castling == "-" {
		return nil
	}
	for _, r := range castling {
		colour := chess.White
		if unicode.IsLower(r) {
			colour = chess.Black
		}
		rookIndex := chess.KingsideRook
		switch unicode.ToUpper(r) {
		case 'K':
		case 'Q':
			rookIndex = chess.QueensideRook
		default:
			return fmt.Errorf("invalid castling right: %c: %w", r, errors.ErrInvalidFEN)
		}

		home := colour.HomeRow()
		king := &b.Pieces[colour][chess.KingIndex]
		rook := &b.Pieces[colour][rookIndex]
		if !king.At(home, 4) || !rook.At(home, chess.RookHomeColumn(rookIndex)) || rook.Type != chess.Rook {
			return fmt.Errorf("castling right %c without king and rook at home: %w", r, errors.ErrInvalidFEN)
		}
		king.MoveCount = 0
		rook.MoveCount = 0
	}
	return nil
}

// FEN returns the FEN string of the position at the cursor.
func (g *Game) FEN() string {
	var sb strings.Builder

	writePiecePositions(&sb, &g.Board)
	sb.WriteByte(' ')
	if g.ToMove == chess.White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
	sb.WriteByte(' ')
	writeCastlingRights(&sb, &g.Board)
	sb.WriteByte(' ')
	g.writeEnPassant(&sb)
	fmt.Fprintf(&sb, " %d %d", g.halfmoveClock(), g.fullmoveNumber())

	return sb.String()
}

// writePiecePositions writes the piece placement to the builder.
func writePiecePositions(sb *strings.Builder, b *chess.Board) {
	for row := chess.BoardSize - 1; row >= 0; row-- {
		emptyCount := 0
		for col := 0; col < chess.BoardSize; col++ {
			p, c, ok := b.PieceAt(row, col)
			if !ok {
				emptyCount++
				continue
			}
			if emptyCount > 0 {
				sb.WriteByte(byte('0' + emptyCount))
				emptyCount = 0
			}
			sb.WriteByte(p.Type.ColouredLetter(c))
		}
		if emptyCount > 0 {
			sb.WriteByte(byte('0' + emptyCount))
		}
		if row > 0 {
			sb.WriteByte('/')
		}
	}
}

// writeCastlingRights writes the castling availability derived from the
// move counts of the kings and rooks.
func writeCastlingRights(sb *strings.Builder, b *chess.Board) {
	hasCastling := false
	for _, c := range []chess.Colour{chess.White, chess.Black} {
		home := c.HomeRow()
		king := &b.Pieces[c][chess.KingIndex]
		if king.MoveCount != 0 || !king.At(home, 4) {
			continue
		}
		for _, r := range []int{chess.KingsideRook, chess.QueensideRook} {
			rook := &b.Pieces[c][r]
			if rook.Type != chess.Rook || rook.MoveCount != 0 || !rook.At(home, chess.RookHomeColumn(r)) {
				continue
			}
			letter := byte('K')
			if r == chess.QueensideRook {
				letter = 'Q'
			}
			if c == chess.Black {
				letter += 'a' - 'A'
			}
			sb.WriteByte(letter)
			hasCastling = true
		}
	}
	if !hasCastling {
		sb.WriteByte('-')
	}
}

// writeEnPassant writes the square behind a pawn that just advanced two.
func (g *Game) writeEnPassant(sb *strings.Builder) {
	last := g.lastMove()
	if !last.PawnDoubleStep {
		sb.WriteByte('-')
		return
	}
	p := &g.Board.Pieces[last.Colour][last.Index]
	sb.WriteString(chess.SquareName(int(p.Row)-last.Colour.Forward(), int(p.Column)))
}

// halfmoveClock counts plies since the last capture or pawn move by undoing
// the log on a scratch board.
func (g *Game) halfmoveClock() int {
	b := g.Board
	clock := 0
	for i := int(g.Cursor) - 1; i >= 0; i-- {
		m := history.Decode(g.History.At(i))
		mover := g.moverOf(i)
		history.Back(&b, mover, m)
		if m.Capture || b.Pieces[mover][m.Index].Type == chess.Pawn {
			break
		}
		clock++
	}
	return clock
}

func (g *Game) fullmoveNumber() int {
	plies := int(g.Cursor)
	if g.StartColour == chess.Black {
		plies++
	}
	return plies/2 + 1
}

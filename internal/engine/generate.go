package engine

import (
	"github.com/lgbarn/chessplay-go/internal/chess"
	"github.com/lgbarn/chessplay-go/internal/errors"
)

// generator carries the state of one Recompute call.
type generator struct {
	board *chess.Board
	dests *Destinations
	occ   occupancy
	last  LastMove
	mover chess.Colour
}

// Recompute regenerates the legal destinations of every piece of both sides
// and the per-side CanMove flags.
func Recompute(board *chess.Board, last LastMove, dests *Destinations) {
	dests.Reset()
	g := generator{
		board: board,
		dests: dests,
		occ:   occupancyOf(board),
		last:  last,
	}

	for _, c := range colours {
		g.mover = c
		for i := range board.Pieces[c] {
			start := dests.Count
			if p := &board.Pieces[c][i]; p.Type != chess.Empty {
				g.piece(p)
			}
			dests.Spans[c][i] = Span{Start: start, Count: dests.Count - start}
		}
		dests.CanMove[c] = dests.Total(c) > 0
	}
}

func (g *generator) piece(p *chess.Piece) {
	switch p.Type {
	case chess.Pawn:
		g.pawn(p)
	case chess.Knight:
		g.steps(p, knightSteps)
	case chess.Bishop:
		g.slide(p, diagonalDirs)
	case chess.Rook:
		g.slide(p, straightDirs)
	case chess.Queen:
		g.slide(p, straightDirs)
		g.slide(p, diagonalDirs)
	case chess.King:
		g.steps(p, kingSteps)
		g.castling(p)
	default:
		panic(errors.Invariantf("unknown piece type %d", p.Type))
	}
}

// enemyAt returns the opposing piece on (row, col), or nil.
func (g *generator) enemyAt(row, col int) *chess.Piece {
	if !g.occ.holds(row, col, g.mover.Opposite()) {
		return nil
	}
	return g.board.PieceOf(g.mover.Opposite(), row, col)
}

// target validates a single step onto (row, col): free squares and enemy
// squares are candidates, own pieces and kings are not.
func (g *generator) target(p *chess.Piece, row, col int) {
	if !chess.InBounds(row, col) || g.occ.holds(row, col, g.mover) {
		return
	}
	victim := g.enemyAt(row, col)
	if victim != nil && victim.Type == chess.King {
		return
	}
	g.keepIfSafe(p, row, col, victim)
}

func (g *generator) steps(p *chess.Piece, table [][2]int) {
	for _, s := range table {
		g.target(p, int(p.Row)+s[0], int(p.Column)+s[1])
	}
}

// slide extends each ray until it is blocked, emits every free square in the
// open range, then tests the square one past each bound as a capture.
func (g *generator) slide(p *chess.Piece, dirs [][2]int) {
	row, col := int(p.Row), int(p.Column)

	var reach [4]int
	for k, d := range dirs {
		n := 1
		for g.occ.empty(row+d[0]*n, col+d[1]*n) {
			n++
		}
		reach[k] = n
	}

	for k, d := range dirs {
		for n := 1; n < reach[k]; n++ {
			g.keepIfSafe(p, row+d[0]*n, col+d[1]*n, nil)
		}
	}

	for k, d := range dirs {
		r, c := row+d[0]*reach[k], col+d[1]*reach[k]
		if victim := g.enemyAt(r, c); victim != nil && victim.Type != chess.King {
			g.keepIfSafe(p, r, c, victim)
		}
	}
}

func (g *generator) pawn(p *chess.Piece) {
	row, col := int(p.Row), int(p.Column)
	if row < 1 || row >= chess.BoardSize-1 {
		panic(errors.Invariantf("%v pawn %d on row %d", g.mover, p.Index, row))
	}
	fwd := g.mover.Forward()

	if g.occ.empty(row+fwd, col) {
		g.keepIfSafe(p, row+fwd, col, nil)
		if row == g.mover.HomeRow()+fwd && g.occ.empty(row+2*fwd, col) {
			g.keepIfSafe(p, row+2*fwd, col, nil)
		}
	}

	for _, dc := range [2]int{-1, 1} {
		c := col + dc
		if c < 0 || c >= chess.BoardSize {
			continue
		}
		if victim := g.enemyAt(row+fwd, c); victim != nil {
			if victim.Type != chess.King {
				g.keepIfSafe(p, row+fwd, c, victim)
			}
			continue
		}
		if victim := g.enPassantVictim(p, c); victim != nil && g.occ.empty(row+fwd, c) {
			g.keepIfSafe(p, row+fwd, c, victim)
		}
	}
}

// enPassantVictim returns the enemy pawn beside p on column col that made a
// two-square advance on the previous move.
func (g *generator) enPassantVictim(p *chess.Piece, col int) *chess.Piece {
	if !g.last.PawnDoubleStep || g.last.Colour == g.mover {
		return nil
	}
	victim := &g.board.Pieces[g.last.Colour][g.last.Index]
	if victim.Type != chess.Pawn || victim.Row != p.Row || int(victim.Column) != col {
		return nil
	}
	return victim
}

func (g *generator) castling(king *chess.Piece) {
	home := g.mover.HomeRow()
	if king.MoveCount != 0 || int(king.Row) != home || king.Column != 4 {
		return
	}
	if IsCheck(g.board, g.mover) {
		return
	}
	g.castle(king, chess.KingsideRook, []int{5, 6}, []int{5, 6})
	g.castle(king, chess.QueensideRook, []int{3, 2, 1}, []int{3, 2})
}

// castle emits the castling destination for one rook when the rook is
// unmoved, the squares between are empty and the king is safe on every
// square it crosses and lands on.
func (g *generator) castle(king *chess.Piece, rookIndex int, between, path []int) {
	home := g.mover.HomeRow()
	rook := &g.board.Pieces[g.mover][rookIndex]
	if rook.Type != chess.Rook || rook.MoveCount != 0 || int(rook.Row) != home || int(rook.Column) != chess.RookHomeColumn(rookIndex) {
		return
	}
	for _, col := range between {
		if !g.occ.empty(home, col) {
			return
		}
	}
	for _, col := range path {
		if !g.leavesKingSafe(king, home, col, nil) {
			return
		}
	}
	g.dests.push(Destination{Row: int8(home), Column: int8(path[len(path)-1])})
}

// keepIfSafe pushes (row, col) when the move leaves the mover's king safe.
func (g *generator) keepIfSafe(p *chess.Piece, row, col int, victim *chess.Piece) {
	if g.leavesKingSafe(p, row, col, victim) {
		g.dests.push(Destination{Row: int8(row), Column: int8(col), Capture: victim != nil})
	}
}

// leavesKingSafe moves p to (row, col), removes victim if any, tests the
// mover's king and puts everything back on every path out.
func (g *generator) leavesKingSafe(p *chess.Piece, row, col int, victim *chess.Piece) bool {
	savedRow, savedCol := p.Row, p.Column
	var savedType chess.PieceType
	if victim != nil {
		savedType = victim.Type
		victim.Type = chess.Empty
	}
	p.Row, p.Column = int8(row), int8(col)

	defer func() {
		p.Row, p.Column = savedRow, savedCol
		if victim != nil {
			victim.Type = savedType
		}
	}()

	return !IsCheck(g.board, g.mover)
}

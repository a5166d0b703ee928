package game

import (
	"fmt"
	"strings"

	"github.com/lgbarn/chessplay-go/internal/chess"
	"github.com/lgbarn/chessplay-go/internal/engine"
	"github.com/lgbarn/chessplay-go/internal/errors"
	"github.com/lgbarn/chessplay-go/internal/history"
)

// UCIMove is a move in long algebraic form, e.g. e2e4 or e7e8q.
type UCIMove struct {
	FromRow, FromCol int
	ToRow, ToCol     int
	Promotion        chess.PieceType
}

// String returns the move in UCI notation.
func (m UCIMove) String() string {
	s := chess.SquareName(m.FromRow, m.FromCol) + chess.SquareName(m.ToRow, m.ToCol)
	if m.Promotion != chess.Empty {
		s += string(m.Promotion.ColouredLetter(chess.Black))
	}
	return s
}

// ParseUCI parses a move such as "g1f3" or "a7a8n".
func ParseUCI(s string) (UCIMove, error) {
	s = strings.TrimSpace(s)
	if len(s) != 4 && len(s) != 5 {
		return UCIMove{}, fmt.Errorf("bad move text %q: %w", s, errors.ErrIllegalMove)
	}
	var m UCIMove
	var err error
	if m.FromRow, m.FromCol, err = chess.ParseSquare(s[0:2]); err != nil {
		return UCIMove{}, fmt.Errorf("%v: %w", err, errors.ErrIllegalMove)
	}
	if m.ToRow, m.ToCol, err = chess.ParseSquare(s[2:4]); err != nil {
		return UCIMove{}, fmt.Errorf("%v: %w", err, errors.ErrIllegalMove)
	}
	if len(s) == 5 {
		p, ok := chess.PieceTypeFromLetter(s[4])
		if !ok || !p.IsPromotionType() {
			return UCIMove{}, fmt.Errorf("bad promotion in %q: %w", s, errors.ErrIllegalMove)
		}
		m.Promotion = p
	}
	return m, nil
}

// PlayUCI plays a move given in UCI notation for the side to move. A
// promotion without a suffix promotes to a queen.
func (g *Game) PlayUCI(s string) error {
	m, err := ParseUCI(s)
	if err != nil {
		return err
	}
	p := g.Board.PieceOf(g.ToMove, m.FromRow, m.FromCol)
	if p == nil || !g.Play(int(p.Index), m.ToRow, m.ToCol, m.Promotion) {
		return fmt.Errorf("%s: %w", s, errors.ErrIllegalMove)
	}
	return nil
}

// LegalMoves lists every legal move of the side to move, one per promotion
// choice.
func (g *Game) LegalMoves() []UCIMove {
	if g.GameOver || g.PromotingPawn {
		return nil
	}
	var moves []UCIMove
	for index := 0; index < chess.PiecesPerSide; index++ {
		p := &g.Board.Pieces[g.ToMove][index]
		for _, d := range g.Dests.Of(g.ToMove, index) {
			m := UCIMove{FromRow: int(p.Row), FromCol: int(p.Column), ToRow: int(d.Row), ToCol: int(d.Column)}
			if p.Type == chess.Pawn && (m.ToRow == 0 || m.ToRow == chess.BoardSize-1) {
				for _, promo := range chess.PromotionTypes {
					m.Promotion = promo
					moves = append(moves, m)
				}
				continue
			}
			moves = append(moves, m)
		}
	}
	return moves
}

// MovesUCI returns the log up to the cursor in UCI notation. A move still
// waiting for its promotion choice is left out.
func (g *Game) MovesUCI() []string {
	moves := make([]string, 0, g.Cursor)
	g.Plies(func(before, _ *Game, m history.Move) {
		moves = append(moves, before.UCIOf(m).String())
	})
	return moves
}

// Plies replays the log from its start up to the cursor on a copy of g and
// calls fn with the positions before and after every move. A move still
// waiting for its promotion choice is left out. fn must not keep the
// pointers.
func (g *Game) Plies(fn func(before, after *Game, m history.Move)) {
	end := int(g.Cursor)
	replay := *g
	if replay.PromotingPawn {
		replay.cancelPromotion()
		end--
	}
	replay.Rewind()

	for int(replay.Cursor) < end {
		before := replay
		m := history.Decode(replay.History.At(int(replay.Cursor)))
		replay.StepForward()
		fn(&before, &replay, m)
	}
}

// UCIOf returns m, a move of the side to move in g, in UCI form.
func (g *Game) UCIOf(m history.Move) UCIMove {
	p := g.Board.Pieces[g.ToMove][m.Index]
	u := UCIMove{
		FromRow: int(p.Row), FromCol: int(p.Column),
		ToRow: int(p.Row) + m.RowDelta, ToCol: int(p.Column) + m.ColDelta,
	}
	if m.Promotion {
		u.Promotion = m.PromotionType
	}
	return u
}

// cancelPromotion takes back a pawn move still waiting for its promotion
// choice. The turn never flipped, so only the board and cursor change.
func (g *Game) cancelPromotion() {
	i := int(g.Cursor) - 1
	history.Back(&g.Board, g.ToMove, history.Decode(g.History.At(i)))
	g.History.Truncate(i)
	g.Cursor--
	g.PromotingPawn = false
	engine.Recompute(&g.Board, g.lastMove(), &g.Dests)
}

// StartFEN returns the FEN of the position the log starts from.
func (g *Game) StartFEN() string {
	start := *g
	if start.PromotingPawn {
		start.cancelPromotion()
	}
	start.Rewind()
	return start.FEN()
}

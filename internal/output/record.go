package output

import (
	"fmt"
	"time"

	nchess "github.com/notnil/chess"

	"github.com/lgbarn/chessplay-go/internal/chess"
	"github.com/lgbarn/chessplay-go/internal/config"
	"github.com/lgbarn/chessplay-go/internal/errors"
	"github.com/lgbarn/chessplay-go/internal/game"
	"github.com/lgbarn/chessplay-go/internal/history"
	"github.com/lgbarn/chessplay-go/internal/session"
)

// Record is a game prepared for export: the whole log, whatever the
// cursor, plus the names that fill the tag roster.
type Record struct {
	Name  string
	Round int
	Date  time.Time
	White string
	Black string

	InitialFEN string
	FinalFEN   string
	Result     string
	State      chess.RunningState
	Over       bool
	Plies      []Ply
}

// Ply is one exported move.
type Ply struct {
	Number    int
	Colour    chess.Colour
	SAN       string
	UCI       string
	Piece     chess.PieceType
	Captured  chess.PieceType
	Promotion chess.PieceType
	FEN       string
}

// NewRecord builds the export record of a session slot. round is the
// slot's 1-based position in the session.
func NewRecord(slot *session.Slot, round int, date time.Time) (*Record, error) {
	rec, err := BuildRecord(&slot.Game, date)
	if err != nil {
		return nil, &errors.GameError{Err: err, GameNum: round, Name: slot.GameName()}
	}
	rec.Name = slot.GameName()
	rec.Round = round
	rec.White = PlayerName(slot.Player(chess.White))
	rec.Black = PlayerName(slot.Player(chess.Black))
	return rec, nil
}

// BuildRecord replays the full log of g and annotates every move with its
// SAN text. SAN comes from github.com/notnil/chess replaying the same
// moves, which also cross-checks that the log is a legal game.
func BuildRecord(g *game.Game, date time.Time) (*Record, error) {
	full := *g
	full.FastForward()

	rec := &Record{
		Round:      1,
		Date:       date,
		White:      "?",
		Black:      "?",
		InitialFEN: full.StartFEN(),
		FinalFEN:   full.FEN(),
		Result:     Result(&full),
		State:      full.Running,
		Over:       full.GameOver,
	}

	ref, err := referenceGame(rec.InitialFEN)
	if err != nil {
		return nil, err
	}

	number := 1
	full.Plies(func(before, after *game.Game, m history.Move) {
		if err != nil {
			return
		}
		u := before.UCIOf(m).String()
		pos := ref.Position()
		if err = ref.MoveStr(u); err != nil {
			err = fmt.Errorf("ply %d %s: %v: %w", len(rec.Plies)+1, u, err, errors.ErrIllegalMove)
			return
		}
		moves := ref.Moves()
		p := Ply{
			Number: number,
			Colour: before.ToMove,
			SAN:    nchess.AlgebraicNotation{}.Encode(pos, moves[len(moves)-1]),
			UCI:    u,
			Piece:  before.Board.Pieces[before.ToMove][m.Index].Type,
			FEN:    after.FEN(),
		}
		if m.Capture {
			p.Captured = m.CapturedType
		}
		if m.Promotion {
			p.Promotion = m.PromotionType
		}
		rec.Plies = append(rec.Plies, p)
		if before.ToMove == chess.Black {
			number++
		}
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// referenceGame starts a notnil game that reads UCI moves from fen.
func referenceGame(fen string) (*nchess.Game, error) {
	opts := []func(*nchess.Game){nchess.UseNotation(nchess.UCINotation{})}
	if fen != game.InitialFEN {
		setup, err := nchess.FEN(fen)
		if err != nil {
			return nil, fmt.Errorf("%s: %v: %w", fen, err, errors.ErrInvalidFEN)
		}
		opts = append(opts, setup)
	}
	return nchess.NewGame(opts...), nil
}

// Result returns the PGN result of g.
func Result(g *game.Game) string {
	if !g.GameOver {
		return "*"
	}
	if winner, ok := g.Winner(); ok {
		if winner == chess.White {
			return "1-0"
		}
		return "0-1"
	}
	return "1/2-1/2"
}

// PlayerName labels a player type in the White and Black tags.
func PlayerName(p config.PlayerType) string {
	if p.IsHuman() {
		return "Human"
	}
	return "chessplay (" + p.String() + ")"
}

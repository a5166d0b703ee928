package search

import (
	"github.com/lgbarn/chessplay-go/internal/chess"
	"github.com/lgbarn/chessplay-go/internal/errors"
	"github.com/lgbarn/chessplay-go/internal/game"
)

const (
	// MaxDepth is the deepest search a job accepts.
	MaxDepth = 8
	// MaxCandidates bounds one stage's move list. No chess position has more
	// than 218 legal moves.
	MaxCandidates = 256
)

// Candidate is one (piece, destination) pair of the side to move.
type Candidate struct {
	Index   uint8
	Row     int8
	Column  int8
	Capture bool
}

// collect appends the legal moves of the side to move in g to buf, captures
// first.
func collect(g *game.Game, buf []Candidate) []Candidate {
	if g.GameOver || g.PromotingPawn {
		return buf
	}
	side := g.ToMove
	for _, captures := range [2]bool{true, false} {
		for index := 0; index < chess.PiecesPerSide; index++ {
			for _, d := range g.Dests.Of(side, index) {
				if d.Capture != captures {
					continue
				}
				if len(buf) == cap(buf) {
					panic(errors.Invariantf("more than %d candidates", cap(buf)))
				}
				buf = append(buf, Candidate{Index: uint8(index), Row: d.Row, Column: d.Column, Capture: d.Capture})
			}
		}
	}
	return buf
}

// promotes reports whether playing c in g moves a pawn to its last rank.
func promotes(g *game.Game, c Candidate) bool {
	p := g.Board.Piece(g.ToMove, int(c.Index))
	return p.Type == chess.Pawn && (c.Row == 0 || c.Row == chess.BoardSize-1)
}

package search

import (
	"math/rand"

	"github.com/lgbarn/chessplay-go/internal/chess"
	"github.com/lgbarn/chessplay-go/internal/game"
)

// randomMove picks uniformly among every legal (piece, destination) pair,
// then uniformly among the promotion types when the move promotes.
func randomMove(g *game.Game, rng *rand.Rand) Decision {
	var buf [MaxCandidates]Candidate
	cands := collect(g, buf[:0])
	if len(cands) == 0 {
		return Decision{}
	}
	c := cands[rng.Intn(len(cands))]
	d := Decision{Valid: true, Index: int(c.Index), Row: int(c.Row), Column: int(c.Column)}
	if promotes(g, c) {
		d.Promotion = chess.PromotionTypes[rng.Intn(len(chess.PromotionTypes))]
	}
	return d
}

package game

import "github.com/lgbarn/chessplay-go/internal/chess"

// Perft counts the leaf nodes of the legal move tree to the given depth,
// expanding each promotion into its four choices. A finished game has no
// further nodes.
func Perft(g *Game, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	if g.GameOver {
		return 0
	}
	if depth == 1 {
		return uint64(len(g.LegalMoves()))
	}

	var nodes uint64
	for index := 0; index < chess.PiecesPerSide; index++ {
		for _, d := range g.Dests.Of(g.ToMove, index) {
			child := *g
			child.TryMove(index, int(d.Row), int(d.Column))
			if !child.PromotingPawn {
				nodes += Perft(&child, depth-1)
				continue
			}
			for _, p := range chess.PromotionTypes {
				promoted := child
				promoted.ChoosePromotion(p)
				nodes += Perft(&promoted, depth-1)
			}
		}
	}
	return nodes
}

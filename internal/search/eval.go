package search

import (
	"github.com/lgbarn/chessplay-go/internal/chess"
	"github.com/lgbarn/chessplay-go/internal/game"
)

const (
	// MateScore is the value of delivering checkmate.
	MateScore = 5000
	// Infinity bounds the root window.
	Infinity = 10000
)

var pieceValues = [chess.King + 1]int{
	chess.Pawn:   10,
	chess.Knight: 30,
	chess.Bishop: 30,
	chess.Rook:   50,
	chess.Queen:  90,
}

// Material returns the material balance of g, positive when White is ahead.
func Material(g *game.Game) int {
	score := 0
	for t, n := range g.Board.Material(chess.White) {
		score += n * pieceValues[t]
	}
	for t, n := range g.Board.Material(chess.Black) {
		score -= n * pieceValues[t]
	}
	return score
}

// perspective converts a White-positive score to the point of view of c.
func perspective(score int, c chess.Colour) int {
	if c == chess.Black {
		return -score
	}
	return score
}

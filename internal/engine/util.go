package engine

import "github.com/lgbarn/chessplay-go/internal/chess"

// abs returns the absolute value of x.
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// sign returns the sign of x: -1, 0, or 1.
func sign(x int) int {
	if x > 0 {
		return 1
	}
	if x < 0 {
		return -1
	}
	return 0
}

// Movement tables as {row, column} steps.
var (
	knightSteps  = [][2]int{{2, 1}, {2, -1}, {-2, 1}, {-2, -1}, {1, 2}, {1, -2}, {-1, 2}, {-1, -2}}
	kingSteps    = [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}, {1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	straightDirs = [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	diagonalDirs = [][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
)

var colours = [2]chess.Colour{chess.White, chess.Black}

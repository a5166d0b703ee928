package search

import (
	"github.com/lgbarn/chessplay-go/internal/errors"
	"github.com/lgbarn/chessplay-go/internal/game"
)

// Arena is the scoped allocator of one search: one position snapshot per
// stage plus one for the child being scored, and one candidate buffer per
// stage. Stages are taken and returned in stack order and the whole arena is
// dropped by Release.
type Arena struct {
	games []game.Game
	cands []Candidate
	top   int
}

// NewArena sizes an arena for a search of the given maximum depth.
func NewArena(depth int) *Arena {
	if depth < 1 || depth > MaxDepth {
		panic(errors.Invariantf("search depth %d outside 1..%d", depth, MaxDepth))
	}
	return &Arena{
		games: make([]game.Game, depth+1),
		cands: make([]Candidate, depth*MaxCandidates),
	}
}

// Stages returns how many stages are currently allocated.
func (a *Arena) Stages() int {
	return a.top
}

// Push allocates the next stage's snapshot and an empty candidate buffer.
// The snapshot is the slot Scratch returned before the push.
func (a *Arena) Push() (*game.Game, []Candidate) {
	if a.top+1 >= len(a.games) {
		panic(errors.Invariantf("stage cap %d exceeded", len(a.games)-1))
	}
	pos := &a.games[a.top]
	buf := a.cands[a.top*MaxCandidates : a.top*MaxCandidates : (a.top+1)*MaxCandidates]
	a.top++
	return pos, buf
}

// Scratch is the slot above the top stage, where the child position of the
// candidate under evaluation is built.
func (a *Arena) Scratch() *game.Game {
	return &a.games[a.top]
}

// Pop frees the top stage.
func (a *Arena) Pop() {
	if a.top == 0 {
		panic(errors.Invariantf("pop from an empty stage stack"))
	}
	a.top--
}

// Release drops every allocation at once.
func (a *Arena) Release() {
	a.games = nil
	a.cands = nil
	a.top = 0
}

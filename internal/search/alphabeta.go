package search

import (
	"math/rand"

	"github.com/lgbarn/chessplay-go/internal/chess"
	"github.com/lgbarn/chessplay-go/internal/game"
)

// stage is one ply's exploration frame. Scores are from the point of view
// of the side to move at pos.
type stage struct {
	pos   *game.Game
	cands []Candidate
	next  int
	alpha int
	beta  int
	best  int
}

func (s *stage) done() bool {
	return s.next == len(s.cands) || s.alpha >= s.beta
}

// alphaBeta runs a negamax alpha-beta search over an explicit stack of
// stages.
type alphaBeta struct {
	arena    *Arena
	depth    int
	rng      *rand.Rand
	jitter   bool
	stages   [MaxDepth]stage
	n        int
	decision Decision
	stats    Stats
}

// run searches root and reports false when cont returned false before the
// search completed.
func (s *alphaBeta) run(root *game.Game, cont func() bool) (Decision, bool) {
	*s.arena.Scratch() = *root
	s.push(-Infinity, Infinity)

	for s.n > 0 {
		st := &s.stages[s.n-1]

		// Finished: hand the stage's value to its parent as a leaf value.
		if st.done() {
			value := st.best
			if st.alpha >= st.beta {
				s.stats.Cutoffs++
			}
			s.pop()
			if s.n == 0 {
				if len(st.cands) == 0 {
					return Decision{}, true
				}
				s.decision.Score = value
				return s.decision, true
			}
			s.score(-value)
			continue
		}

		// Explore the next candidate.
		if !cont() {
			return Decision{}, false
		}
		c := st.cands[st.next]
		st.next++
		child := s.arena.Scratch()
		*child = *st.pos
		child.Play(int(c.Index), int(c.Row), int(c.Column), chess.Queen)
		s.stats.Nodes++

		// Descend or score.
		switch {
		case child.Running == chess.Checkmate:
			s.score(MateScore)
		case child.Running == chess.Stalemate:
			s.score(0)
		case s.n == s.depth:
			s.score(perspective(Material(child), st.pos.ToMove) + s.perturb())
		default:
			s.push(-st.beta, -st.alpha)
		}
	}
	return s.decision, true
}

// push opens a stage on the position already built in the arena's scratch
// slot.
func (s *alphaBeta) push(alpha, beta int) {
	pos, buf := s.arena.Push()
	s.stages[s.n] = stage{
		pos:   pos,
		cands: collect(pos, buf),
		alpha: alpha,
		beta:  beta,
		best:  -Infinity,
	}
	s.n++
}

func (s *alphaBeta) pop() {
	s.n--
	s.arena.Pop()
}

// score folds the value of the candidate just explored into the top stage.
// At the root it also records the best decision so far.
func (s *alphaBeta) score(value int) {
	st := &s.stages[s.n-1]
	if value > st.best {
		st.best = value
		if s.n == 1 {
			c := st.cands[st.next-1]
			s.decision = Decision{
				Valid:  true,
				Index:  int(c.Index),
				Row:    int(c.Row),
				Column: int(c.Column),
			}
			if promotes(st.pos, c) {
				s.decision.Promotion = chess.Queen
			}
		}
	}
	if value > st.alpha {
		st.alpha = value
	}
}

func (s *alphaBeta) perturb() int {
	if !s.jitter {
		return 0
	}
	return s.rng.Intn(3) - 1
}

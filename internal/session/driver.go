package session

import (
	"github.com/lgbarn/chessplay-go/internal/chess"
	"github.com/lgbarn/chessplay-go/internal/config"
	"github.com/lgbarn/chessplay-go/internal/search"
)

// Thinking reports whether a search is pending for the current game.
func (s *Session) Thinking() bool {
	return s.job != nil
}

// Tick advances the computer player of the current game by one step and
// never blocks: it queues a search when a computer side is to move, and
// applies the result once the search has finished. A computer side left
// with a pending promotion completes it directly. It reports whether a move
// was played.
func (s *Session) Tick() bool {
	slot := s.CurrentSlot()
	g := &slot.Game

	if s.cancelled != nil {
		if !s.cancelled.Exited() {
			return false
		}
		s.cancelled = nil
	}

	if s.job == nil {
		player := slot.Player(g.ToMove)
		if player.IsHuman() || g.GameOver || !g.AtEnd() {
			return false
		}
		if g.PromotingPawn {
			return s.promote(slot, player)
		}
		opts := search.Options{Strategy: search.Random}
		if depth := player.SearchDepth(); depth > 0 {
			opts = search.Options{Strategy: search.AlphaBeta, Depth: depth, Jitter: s.cfg.Search.Jitter}
		}
		s.job = search.NewJob(g, opts, s.rng.Int63())
		s.jobSlot = slot
		s.jobPly = g.Ply()
		s.jobQueued = false
		s.searches++
		s.logf(2, "game %d: %v thinking (%v)\n", s.current+1, g.ToMove, player)
	}

	if !s.jobQueued {
		if !s.job.TrySubmit(s.queue) {
			s.logf(2, "search queue full, retrying\n")
			return false
		}
		s.jobQueued = true
		return false
	}

	if !s.job.Finished() {
		return false
	}
	job := s.job
	s.job = nil
	if s.jobSlot != slot || s.jobPly != g.Ply() {
		return false
	}

	d, _ := job.Result()
	stats := job.Stats()
	s.logf(2, "game %d: %v after %d nodes, %d cutoffs\n", s.current+1, d, stats.Nodes, stats.Cutoffs)
	mover := g.ToMove
	if !d.Apply(g) {
		return false
	}
	s.logf(1, "game %d (%s): %v plays %v\n", s.current+1, slot.GameName(), mover, d)
	s.moved()
	return true
}

// promote completes a promotion left pending when the side was handed to
// the computer: a queen for the search, any promotion type for the random
// mover.
func (s *Session) promote(slot *Slot, player config.PlayerType) bool {
	g := &slot.Game
	t := chess.Queen
	if player.SearchDepth() == 0 {
		t = chess.PromotionTypes[s.rng.Intn(len(chess.PromotionTypes))]
	}
	mover := g.ToMove
	if !g.ChoosePromotion(t) {
		return false
	}
	s.logf(1, "game %d (%s): %v promotes to %v\n", s.current+1, slot.GameName(), mover, t)
	s.moved()
	return true
}

// Cancel abandons the pending search, if any. A queued search still running
// is remembered until it returns.
func (s *Session) Cancel() {
	if s.job == nil {
		return
	}
	s.job.Cancel()
	if s.jobQueued && !s.job.Exited() {
		s.cancelled = s.job
	}
	s.job = nil
	s.jobSlot = nil
	s.jobQueued = false
	s.logf(2, "search cancelled\n")
}

// Searches returns how many searches were started.
func (s *Session) Searches() int {
	return s.searches
}

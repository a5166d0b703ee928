// Package search chooses moves for computer players: a uniform random pick
// or a bounded-depth alpha-beta search. A search runs as a Job on a worker
// queue against a private copy of the game, and the game loop polls the job
// instead of waiting for it.
package search

import (
	"fmt"
	"math/rand"
	"sync/atomic"

	"github.com/lgbarn/chessplay-go/internal/chess"
	"github.com/lgbarn/chessplay-go/internal/errors"
	"github.com/lgbarn/chessplay-go/internal/game"
	"github.com/lgbarn/chessplay-go/internal/worker"
)

// Strategy selects how a job chooses its move.
type Strategy uint8

const (
	Random Strategy = iota
	AlphaBeta
)

func (s Strategy) String() string {
	if s == Random {
		return "random"
	}
	return "alpha-beta"
}

// Options configures a job.
type Options struct {
	Strategy Strategy
	// Depth is the alpha-beta horizon in plies, 1..MaxDepth.
	Depth int
	// Jitter adds a random -1, 0 or +1 to every heuristic leaf.
	Jitter bool
}

// Decision is the move a search settled on.
type Decision struct {
	Valid     bool
	Index     int
	Row       int
	Column    int
	Promotion chess.PieceType
	Score     int
}

// Apply plays the decision on g.
func (d Decision) Apply(g *game.Game) bool {
	return d.Valid && g.Play(d.Index, d.Row, d.Column, d.Promotion)
}

func (d Decision) String() string {
	if !d.Valid {
		return "none"
	}
	return fmt.Sprintf("slot %d to %s (score %d)", d.Index, chess.SquareName(d.Row, d.Column), d.Score)
}

// Stats counts the work done by a search.
type Stats struct {
	Nodes   uint64
	Cutoffs uint64
}

// Job is one search invocation. Run executes it; every other method may be
// called concurrently from the game loop.
type Job struct {
	pos   game.Game
	opts  Options
	rng   *rand.Rand
	arena *Arena

	shouldContinue atomic.Bool
	finished       atomic.Bool
	exited         atomic.Bool

	result Decision
	stats  Stats
}

// NewJob copies g and prepares a search of it.
func NewJob(g *game.Game, opts Options, seed int64) *Job {
	j := &Job{
		pos:  *g,
		opts: opts,
		rng:  rand.New(rand.NewSource(seed)),
	}
	if opts.Strategy == AlphaBeta {
		j.arena = NewArena(opts.Depth)
	}
	j.shouldContinue.Store(true)
	return j
}

// Run executes the search. When the job was cancelled before it completed,
// Run returns without marking it finished. Either way it marks the job
// exited.
func (j *Job) Run() {
	defer j.exited.Store(true)
	var (
		d  Decision
		ok bool
	)
	switch j.opts.Strategy {
	case Random:
		ok = j.shouldContinue.Load()
		if ok {
			d = randomMove(&j.pos, j.rng)
		}
	case AlphaBeta:
		s := &alphaBeta{arena: j.arena, depth: j.opts.Depth, rng: j.rng, jitter: j.opts.Jitter}
		d, ok = s.run(&j.pos, j.shouldContinue.Load)
		j.stats = s.stats
		j.arena.Release()
	default:
		panic(errors.Invariantf("unknown search strategy %d", j.opts.Strategy))
	}
	if !ok {
		return
	}
	j.result = d
	j.finished.Store(true)
}

// Cancel asks a running search to stop at its next candidate.
func (j *Job) Cancel() {
	j.shouldContinue.Store(false)
}

// Cancelled reports whether Cancel was called.
func (j *Job) Cancelled() bool {
	return !j.shouldContinue.Load()
}

// Exited reports whether Run has returned, finished or not. A cancelled job
// that was queued keeps its worker busy until then.
func (j *Job) Exited() bool {
	return j.exited.Load()
}

// Finished reports whether the result is complete and safe to read.
func (j *Job) Finished() bool {
	return j.finished.Load()
}

// Result returns the decision of a finished job.
func (j *Job) Result() (Decision, bool) {
	if !j.finished.Load() {
		return Decision{}, false
	}
	return j.result, true
}

// Stats returns the counters of a finished job.
func (j *Job) Stats() Stats {
	if !j.finished.Load() {
		return Stats{}
	}
	return j.stats
}

// Entry wraps the job as a work-queue entry.
func (j *Job) Entry() worker.Entry {
	return worker.Entry{Callback: runEntry, Data: j}
}

// TrySubmit hands the job to q without blocking. It reports false when q
// has no room; the caller retries later.
func (j *Job) TrySubmit(q worker.Queue) bool {
	return q.TrySubmit(j.Entry())
}

func runEntry(data any) {
	data.(*Job).Run()
}

// Package session keeps the games of one player: up to MaxGames slots, each
// with its own player types, the computer-player driver for the game on
// screen, and the fixed-size save file.
package session

import (
	"bytes"
	"fmt"
	"math/rand"
	"time"

	petname "github.com/dustinkirkland/golang-petname"

	"github.com/lgbarn/chessplay-go/internal/chess"
	"github.com/lgbarn/chessplay-go/internal/config"
	"github.com/lgbarn/chessplay-go/internal/errors"
	"github.com/lgbarn/chessplay-go/internal/game"
	"github.com/lgbarn/chessplay-go/internal/search"
	"github.com/lgbarn/chessplay-go/internal/worker"
)

const (
	// MaxGames is the number of game slots in a session.
	MaxGames = 100
	// NameSize is the stored length of a game name.
	NameSize = 32
)

// Slot is one game and who plays it.
type Slot struct {
	Name    [NameSize]byte
	Players [2]config.PlayerType
	Game    game.Game
}

// GameName returns the slot's name.
func (s *Slot) GameName() string {
	return string(bytes.TrimRight(s.Name[:], "\x00"))
}

// SetName stores name, truncated to NameSize bytes.
func (s *Slot) SetName(name string) {
	s.Name = [NameSize]byte{}
	copy(s.Name[:], name)
}

// Player returns the player type of side c.
func (s *Slot) Player(c chess.Colour) config.PlayerType {
	return s.Players[c]
}

// Session is the set of open games. It is not safe for concurrent use; the
// game loop owns it and searches only ever see copies of a game.
type Session struct {
	cfg     *config.Config
	queue   worker.Queue
	rng     *rand.Rand
	slots   []*Slot
	current int

	job       *search.Job
	jobSlot   *Slot
	jobPly    int
	jobQueued bool
	// cancelled is a queued job that was abandoned but has not returned
	// yet. No new search is queued until it has.
	cancelled *search.Job
	searches  int
}

// New returns a session holding one game at the starting position.
func New(cfg *config.Config, queue worker.Queue) *Session {
	seed := cfg.Search.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	s := &Session{
		cfg:   cfg,
		queue: queue,
		rng:   rand.New(rand.NewSource(seed)),
	}
	s.slots = append(s.slots, s.newSlot())
	return s
}

func (s *Session) newSlot() *Slot {
	slot := &Slot{}
	slot.SetName(petname.Generate(2, "-"))
	slot.Players[chess.White] = s.cfg.Player.White
	slot.Players[chess.Black] = s.cfg.Player.Black
	slot.Game.Reset()
	return slot
}

// Len returns the number of games.
func (s *Session) Len() int {
	return len(s.slots)
}

// Index returns the position of the current game.
func (s *Session) Index() int {
	return s.current
}

// Current returns the game on screen.
func (s *Session) Current() *game.Game {
	return &s.slots[s.current].Game
}

// CurrentSlot returns the slot of the game on screen.
func (s *Session) CurrentSlot() *Slot {
	return s.slots[s.current]
}

// Slot returns slot i.
func (s *Session) Slot(i int) (*Slot, error) {
	if i < 0 || i >= len(s.slots) {
		return nil, fmt.Errorf("game %d of %d: %w", i+1, len(s.slots), errors.ErrNoGame)
	}
	return s.slots[i], nil
}

// NewGame appends a fresh game and makes it current.
func (s *Session) NewGame() (int, error) {
	return s.add(s.newSlot())
}

// Duplicate copies the current game, history and players included, into a
// new slot and makes the copy current.
func (s *Session) Duplicate() (int, error) {
	dup := *s.slots[s.current]
	dup.SetName(petname.Generate(2, "-"))
	return s.add(&dup)
}

func (s *Session) add(slot *Slot) (int, error) {
	if len(s.slots) == MaxGames {
		return s.current, fmt.Errorf("%d games open: %w", MaxGames, errors.ErrSessionFull)
	}
	s.Cancel()
	s.slots = append(s.slots, slot)
	s.current = len(s.slots) - 1
	s.logf(1, "new game %d (%s)\n", s.current+1, slot.GameName())
	return s.current, nil
}

// Delete removes the current game. Deleting the only game replaces it with
// a fresh one.
func (s *Session) Delete() {
	s.Cancel()
	s.logf(1, "deleted game %d (%s)\n", s.current+1, s.slots[s.current].GameName())
	s.slots = append(s.slots[:s.current], s.slots[s.current+1:]...)
	if len(s.slots) == 0 {
		s.slots = append(s.slots, s.newSlot())
	}
	if s.current >= len(s.slots) {
		s.current = len(s.slots) - 1
	}
}

// Select makes game i current.
func (s *Session) Select(i int) error {
	if _, err := s.Slot(i); err != nil {
		return err
	}
	if i != s.current {
		s.Cancel()
		s.current = i
	}
	return nil
}

// SetPlayer changes who plays side c in the current game.
func (s *Session) SetPlayer(c chess.Colour, t config.PlayerType) error {
	if t > config.MaxPlayerType {
		return fmt.Errorf("player type %d: %w", t, errors.ErrInvalidConfig)
	}
	s.Cancel()
	s.slots[s.current].Players[c] = t
	return nil
}

// Handle applies a decoded input intent to the current game. Moves are only
// accepted from a human side; history stepping is always allowed and
// abandons a running search.
func (s *Session) Handle(in game.Intent) bool {
	g := s.Current()
	switch in.Kind {
	case game.StepForward, game.StepBack:
		s.Cancel()
	case game.Confirm, game.ChoosePromotion:
		if !s.CurrentSlot().Player(g.ToMove).IsHuman() {
			return false
		}
	}
	ok := g.Handle(in)
	if ok && (in.Kind == game.ChoosePromotion || (in.Kind == game.Confirm && !g.PromotingPawn)) {
		s.moved()
	}
	return ok
}

// PlayUCI plays a human move given in UCI notation on the current game.
func (s *Session) PlayUCI(move string) error {
	g := s.Current()
	slot := s.CurrentSlot()
	if !slot.Player(g.ToMove).IsHuman() {
		return fmt.Errorf("%v is played by the computer: %w", g.ToMove, errors.ErrSearchPending)
	}
	if err := g.PlayUCI(move); err != nil {
		return &errors.GameError{
			Err:      err,
			GameNum:  s.current + 1,
			Name:     slot.GameName(),
			PlyNum:   g.Ply() + 1,
			MoveText: move,
		}
	}
	s.moved()
	return nil
}

// moved runs after a move of the current game is finalized.
func (s *Session) moved() {
	g := s.Current()
	if g.GameOver {
		s.logf(1, "game %d (%s) over: %v\n", s.current+1, s.CurrentSlot().GameName(), g.Running)
	}
	if s.cfg.Session.Autosave {
		if err := s.Save(); err != nil {
			s.logf(1, "autosave: %v\n", err)
		}
	}
}

func (s *Session) logf(level int, format string, args ...interface{}) {
	if s.cfg.Verbosity >= level {
		fmt.Fprintf(s.cfg.LogFile, format, args...)
	}
}

package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lgbarn/chessplay-go/internal/chess"
	"github.com/lgbarn/chessplay-go/internal/errors"
)

// PlayerType says who moves for a side: a human, the random mover, or an
// alpha-beta search whose depth is the type minus one.
type PlayerType uint8

const (
	Human         PlayerType = 0
	RandomPlayer  PlayerType = 1
	MaxPlayerType PlayerType = 9
)

// IsHuman reports whether moves come from the user.
func (p PlayerType) IsHuman() bool {
	return p == Human
}

// SearchDepth returns the alpha-beta depth, or 0 for humans and the random
// mover.
func (p PlayerType) SearchDepth() int {
	if p <= RandomPlayer {
		return 0
	}
	return int(p) - 1
}

func (p PlayerType) String() string {
	switch p {
	case Human:
		return "human"
	case RandomPlayer:
		return "random"
	default:
		return fmt.Sprintf("depth %d", p.SearchDepth())
	}
}

// ParsePlayerType accepts "human", "random" or a type number 0-9.
func ParsePlayerType(s string) (PlayerType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "human", "h":
		return Human, nil
	case "random", "r":
		return RandomPlayer, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 || n > int(MaxPlayerType) {
		return Human, fmt.Errorf("player type %q: want human, random or 0-%d: %w", s, MaxPlayerType, errors.ErrInvalidConfig)
	}
	return PlayerType(n), nil
}

// PlayerConfig holds the player type of each side for new games.
type PlayerConfig struct {
	White PlayerType
	Black PlayerType
}

// NewPlayerConfig creates a PlayerConfig with default values: a human
// playing White against a depth 3 search.
func NewPlayerConfig() *PlayerConfig {
	return &PlayerConfig{
		White: Human,
		Black: 4,
	}
}

// For returns the player type of side c.
func (p *PlayerConfig) For(c chess.Colour) PlayerType {
	if c == chess.White {
		return p.White
	}
	return p.Black
}

// Set changes the player type of side c.
func (p *PlayerConfig) Set(c chess.Colour, t PlayerType) {
	if c == chess.White {
		p.White = t
	} else {
		p.Black = t
	}
}

// Validate checks that the player configuration is valid.
func (p *PlayerConfig) Validate() error {
	for _, t := range []PlayerType{p.White, p.Black} {
		if t > MaxPlayerType {
			return fmt.Errorf("player type %d > %d: %w", t, MaxPlayerType, errors.ErrInvalidConfig)
		}
	}
	return nil
}

// Package testutil provides shared test utilities for the chessplay-go project.
// These utilities reduce code duplication across test files and provide
// consistent test setup helpers.
package testutil

import (
	"bytes"
	"testing"

	"github.com/lgbarn/chessplay-go/internal/config"
	"github.com/lgbarn/chessplay-go/internal/game"
)

// MustPlay applies UCI moves to g and calls t.Fatal on the first illegal one.
func MustPlay(t *testing.T, g *game.Game, moves ...string) {
	t.Helper()
	for _, m := range moves {
		if err := g.PlayUCI(m); err != nil {
			t.Fatalf("PlayUCI(%s) after %v: %v", m, g.MovesUCI(), err)
		}
	}
}

// NewGameAfter returns a game from the standard start after the given moves.
func NewGameAfter(t *testing.T, moves ...string) *game.Game {
	t.Helper()
	g := game.New()
	MustPlay(t, g, moves...)
	return g
}

// MustFEN sets up a game from FEN and calls t.Fatal on error.
func MustFEN(t *testing.T, fen string) *game.Game {
	t.Helper()
	g, err := game.NewFromFEN(fen)
	if err != nil {
		t.Fatalf("NewFromFEN(%q): %v", fen, err)
	}
	return g
}

// QuietConfig returns a configuration that writes output and log lines to
// the returned buffers, never touches a save file and seeds searches
// deterministically.
func QuietConfig() (cfg *config.Config, out, log *bytes.Buffer) {
	out, log = &bytes.Buffer{}, &bytes.Buffer{}
	cfg = config.NewConfigBuilder().
		WithOutput(out).
		WithLog(log).
		WithSaveFile("", false).
		WithColour(config.ColourNever).
		WithSeed(1).
		WithVerbosity(0).
		Build()
	return cfg, out, log
}

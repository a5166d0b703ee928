package testutil

import (
	"testing"

	"github.com/lgbarn/chessplay-go/internal/chess"
	"github.com/lgbarn/chessplay-go/internal/config"
)

func TestNewGameAfter(t *testing.T) {
	tests := []struct {
		name   string
		moves  []string
		ply    int
		toMove chess.Colour
	}{
		{"no moves", nil, 0, chess.White},
		{"one move", []string{"e2e4"}, 1, chess.Black},
		{"castled", []string{"e2e4", "e7e5", "g1f3", "b8c6", "f1c4", "g8f6", "e1g1"}, 7, chess.Black},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGameAfter(t, tt.moves...)
			AssertEqual(t, g.Ply(), tt.ply)
			AssertEqual(t, g.ToMove, tt.toMove)
			AssertEqual(t, g.MovesUCI(), append([]string{}, tt.moves...))
		})
	}
}

func TestMustFEN(t *testing.T) {
	const fen = "4k3/8/8/8/8/8/4P3/4K3 w - - 0 1"
	g := MustFEN(t, fen)
	AssertEqual(t, g.FEN(), fen)
	MustPlay(t, g, "e2e4")
	AssertEqual(t, g.FEN(), "4k3/8/8/8/4P3/8/8/4K3 b - e3 0 1")
}

func TestQuietConfig(t *testing.T) {
	cfg, out, log := QuietConfig()
	AssertEqual(t, cfg.Verbosity, 0)
	AssertEqual(t, cfg.Session.SaveFile, "")
	AssertEqual(t, cfg.Output.Colour, config.ColourNever)
	AssertTrue(t, cfg.OutputFile == out && cfg.LogFile == log, "streams are the returned buffers")
	AssertNoError(t, cfg.Validate())
}

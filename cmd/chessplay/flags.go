// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"
	"time"

	"github.com/lgbarn/chessplay-go/internal/config"
)

var (
	// Players
	whitePlayer = flag.String("white", "human", "White player: human, random or 2-9 (search depth is type-1)")
	blackPlayer = flag.String("black", "4", "Black player: human, random or 2-9 (search depth is type-1)")

	// Search options
	seed         = flag.Int64("seed", 0, "Random seed for computer players (0 = from the clock)")
	noJitter     = flag.Bool("nojitter", false, "Don't perturb leaf scores")
	workers      = flag.Int("workers", 2, "Number of search goroutines")
	queueSize    = flag.Int("queue", 8, "Search queue buffer size")
	pollInterval = flag.Duration("poll", 20*time.Millisecond, "How often a running search is checked")

	// Session options
	saveFile   = flag.String("f", "chessplay.sav", "Session file (empty = never save)")
	noAutosave = flag.Bool("noautosave", false, "Save only on the save command and at exit")
	fresh      = flag.Bool("fresh", false, "Start a new session instead of loading the session file")

	// Output options
	lineLength   = flag.Int("w", 80, "Maximum PGN line length")
	uciMovetext  = flag.Bool("uci", false, "Write PGN movetext in UCI notation")
	sevenTagOnly = flag.Bool("7", false, "Output only the seven tag roster")
	noTags       = flag.Bool("notags", false, "Don't output any tags")
	fenPerMove   = flag.Bool("fenmoves", false, "Include the FEN after each move in JSON output")
	colourMode   = flag.String("colour", "auto", "Board colours: auto, always, never")

	// Logging
	logFile   = flag.String("l", "", "Write diagnostics to file instead of stderr")
	appendLog = flag.String("L", "", "Append diagnostics to file")
	verbosity = flag.Int("v", 1, "Verbosity: 0 silent, 1 game events, 2 search detail")
	quiet     = flag.Bool("s", false, "Silent mode (same as -v 0)")

	// Help
	help    = flag.Bool("h", false, "Show help")
	version = flag.Bool("version", false, "Show version")
)

// applyFlags applies command-line flags to the configuration.
func applyFlags(cfg *config.Config) error {
	if err := applyPlayerFlags(cfg); err != nil {
		return err
	}
	applySearchFlags(cfg)
	applySessionFlags(cfg)
	if err := applyOutputFlags(cfg); err != nil {
		return err
	}

	cfg.Verbosity = *verbosity
	if *quiet {
		cfg.Verbosity = 0
	}
	return nil
}

// applyPlayerFlags sets the player types of new games.
func applyPlayerFlags(cfg *config.Config) error {
	white, err := config.ParsePlayerType(*whitePlayer)
	if err != nil {
		return err
	}
	black, err := config.ParsePlayerType(*blackPlayer)
	if err != nil {
		return err
	}
	cfg.Player.White = white
	cfg.Player.Black = black
	return nil
}

// applySearchFlags configures the computer players.
func applySearchFlags(cfg *config.Config) {
	cfg.Search.Seed = *seed
	cfg.Search.Jitter = !*noJitter
	cfg.Search.Workers = *workers
	cfg.Search.QueueSize = *queueSize
	cfg.Search.PollInterval = *pollInterval
}

// applySessionFlags configures loading and saving.
func applySessionFlags(cfg *config.Config) {
	cfg.Session.SaveFile = *saveFile
	cfg.Session.Autosave = !*noAutosave
	cfg.Session.Resume = !*fresh
}

// applyOutputFlags configures export and board output.
func applyOutputFlags(cfg *config.Config) error {
	switch {
	case *noTags:
		cfg.Output.TagFormat = config.NoTags
	case *sevenTagOnly:
		cfg.Output.TagFormat = config.SevenTagRoster
	}
	if *lineLength > 0 {
		cfg.Output.MaxLineLength = uint(*lineLength)
	}
	if *uciMovetext {
		cfg.Output.Notation = config.UCI
	}
	cfg.Output.FENPerMove = *fenPerMove

	mode, err := config.ParseColourMode(*colourMode)
	if err != nil {
		return err
	}
	cfg.Output.Colour = mode
	return nil
}

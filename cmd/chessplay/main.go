// chessplay is an interactive chess program: play against the computer or
// another person, keep up to a hundred games in a saved session, and
// export them as PGN, JSON or FEN.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/lgbarn/chessplay-go/internal/config"
	"github.com/lgbarn/chessplay-go/internal/session"
	"github.com/lgbarn/chessplay-go/internal/worker"
)

const programVersion = "0.1.0"

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}

	if *version {
		fmt.Printf("chessplay-go version %s\n", programVersion)
		os.Exit(0)
	}

	cfg := config.NewConfig()
	if err := applyFlags(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	setupLogFile(cfg)

	pool := worker.NewPoolWithOptions(
		worker.WithWorkers(cfg.Search.Workers),
		worker.WithBufferSize(cfg.Search.QueueSize),
	)
	pool.Start()

	sess := openSession(cfg, pool)
	a := newApp(cfg, sess, useColour(cfg.Output.Colour))
	if err := a.run(os.Stdin); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
	}

	sess.Cancel()
	pool.Stop()
	pool.Close()

	if cfg.Session.SaveFile != "" {
		if err := sess.Save(); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving session: %v\n", err)
			os.Exit(1)
		}
	}
	if cfg.Verbosity > 0 {
		fmt.Fprintf(cfg.LogFile, "%d game(s) in session, %d search(es) started, %d run on %d worker(s).\n",
			sess.Len(), sess.Searches(), pool.Processed(), pool.NumWorkers())
	}
}

// openSession loads the session file, or starts a fresh session when
// resuming is off or there is nothing usable to load.
func openSession(cfg *config.Config, queue worker.Queue) *session.Session {
	if !cfg.Session.Resume || cfg.Session.SaveFile == "" {
		return session.New(cfg, queue)
	}
	sess, err := session.Load(cfg, queue)
	if err != nil && cfg.Verbosity > 0 {
		fmt.Fprintf(cfg.LogFile, "Starting a new session: %v\n", err)
	}
	return sess
}

// setupLogFile configures the log file based on command-line flags.
func setupLogFile(cfg *config.Config) {
	if *logFile != "" {
		file, err := os.Create(*logFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating log file %s: %v\n", *logFile, err)
			os.Exit(1)
		}
		cfg.LogFile = file
	}

	if *appendLog != "" {
		file, err := os.OpenFile(*appendLog, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) //nolint:gosec // G302: 0644 is appropriate for user-created log files
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening log file %s: %v\n", *appendLog, err)
			os.Exit(1)
		}
		cfg.LogFile = file
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: chessplay [options]\n\n")
	fmt.Fprintf(os.Stderr, "Play chess against the computer or another person.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nPlayer types (-white, -black):\n")
	fmt.Fprintf(os.Stderr, "  human   moves are typed in\n")
	fmt.Fprintf(os.Stderr, "  random  plays a random legal move\n")
	fmt.Fprintf(os.Stderr, "  2-9     alpha-beta search to depth type-1\n")
	fmt.Fprintf(os.Stderr, "\n%s", helpText)
}

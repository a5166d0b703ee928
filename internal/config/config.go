// Package config provides configuration for chessplay.
package config

import (
	"fmt"
	"io"
	"os"

	"github.com/lgbarn/chessplay-go/internal/errors"
)

// Config holds all program configuration.
type Config struct {
	Verbosity int // 0=nothing, 1=game events, 2=search detail

	Player  PlayerConfig
	Search  SearchConfig
	Output  OutputConfig
	Session SessionConfig

	// Output streams
	OutputFile io.Writer
	LogFile    io.Writer
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Verbosity:  1,
		Player:     *NewPlayerConfig(),
		Search:     *NewSearchConfig(),
		Output:     *NewOutputConfig(),
		Session:    *NewSessionConfig(),
		OutputFile: os.Stdout,
		LogFile:    os.Stderr,
	}
}

// SetOutput sets the stream games and boards are written to.
func (c *Config) SetOutput(w io.Writer) {
	c.OutputFile = w
}

// SetLog sets the stream diagnostics are written to.
func (c *Config) SetLog(w io.Writer) {
	c.LogFile = w
}

// Validate checks every sub-configuration.
func (c *Config) Validate() error {
	if c.Verbosity < 0 {
		return fmt.Errorf("verbosity %d is negative: %w", c.Verbosity, errors.ErrInvalidConfig)
	}
	if err := c.Player.Validate(); err != nil {
		return err
	}
	if err := c.Search.Validate(); err != nil {
		return err
	}
	return c.Output.Validate()
}

package config

import (
	"fmt"

	"github.com/lgbarn/chessplay-go/internal/errors"
)

// Notation selects how moves are written in PGN movetext.
type Notation int

const (
	SAN Notation = iota // Standard Algebraic Notation
	UCI                 // Long algebraic as used by UCI (e2e4)
)

// TagOutputForm specifies which tags to output.
type TagOutputForm int

const (
	AllTags        TagOutputForm = 0
	SevenTagRoster TagOutputForm = 1
	NoTags         TagOutputForm = 2
)

// ColourMode controls coloured board output.
type ColourMode int

const (
	ColourAuto ColourMode = iota // colour when writing to a terminal
	ColourAlways
	ColourNever
)

// OutputConfig holds settings related to output formatting.
type OutputConfig struct {
	// Notation is the movetext notation for PGN output
	Notation Notation

	// MaxLineLength is the maximum line length for PGN output
	MaxLineLength uint

	// KeepMoveNumbers controls whether move numbers are included
	KeepMoveNumbers bool

	// KeepResults controls whether the game result ends the movetext
	KeepResults bool

	// TagFormat specifies which tags to output (AllTags, SevenTagRoster, NoTags)
	TagFormat TagOutputForm

	// FENPerMove adds the resulting position to every JSON move
	FENPerMove bool

	// Colour controls coloured board rendering
	Colour ColourMode

	// Event and Site fill the matching PGN tags
	Event string
	Site  string
}

// NewOutputConfig creates an OutputConfig with default values.
func NewOutputConfig() *OutputConfig {
	return &OutputConfig{
		Notation:        SAN,
		MaxLineLength:   80,
		KeepMoveNumbers: true,
		KeepResults:     true,
		TagFormat:       AllTags,
		Colour:          ColourAuto,
		Event:           "Casual game",
		Site:            "chessplay",
	}
}

// ParseColourMode parses "auto", "always" or "never".
func ParseColourMode(s string) (ColourMode, error) {
	switch s {
	case "auto", "":
		return ColourAuto, nil
	case "always":
		return ColourAlways, nil
	case "never":
		return ColourNever, nil
	}
	return ColourAuto, fmt.Errorf("colour mode %q: %w", s, errors.ErrInvalidConfig)
}

// Validate checks that the output configuration is valid.
func (o *OutputConfig) Validate() error {
	if o.MaxLineLength < 20 {
		return fmt.Errorf("max line length (%d) < 20: %w", o.MaxLineLength, errors.ErrInvalidConfig)
	}
	return nil
}

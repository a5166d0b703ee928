package config

import "io"

// ConfigBuilder provides a fluent API for building Config instances.
type ConfigBuilder struct {
	cfg *Config
}

// NewConfigBuilder creates a new ConfigBuilder with default values.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		cfg: NewConfig(),
	}
}

// Build returns the built Config.
func (b *ConfigBuilder) Build() *Config {
	return b.cfg
}

// WithPlayers sets the player types of new games.
func (b *ConfigBuilder) WithPlayers(white, black PlayerType) *ConfigBuilder {
	b.cfg.Player.White = white
	b.cfg.Player.Black = black
	return b
}

// WithJitter enables the random leaf perturbation.
func (b *ConfigBuilder) WithJitter(enabled bool) *ConfigBuilder {
	b.cfg.Search.Jitter = enabled
	return b
}

// WithSeed fixes the search random seed.
func (b *ConfigBuilder) WithSeed(seed int64) *ConfigBuilder {
	b.cfg.Search.Seed = seed
	return b
}

// WithWorkers sets the number of search goroutines.
func (b *ConfigBuilder) WithWorkers(n int) *ConfigBuilder {
	b.cfg.Search.Workers = n
	return b
}

// WithNotation sets the PGN movetext notation.
func (b *ConfigBuilder) WithNotation(n Notation) *ConfigBuilder {
	b.cfg.Output.Notation = n
	return b
}

// WithMaxLineLength sets the maximum line length.
func (b *ConfigBuilder) WithMaxLineLength(length uint) *ConfigBuilder {
	b.cfg.Output.MaxLineLength = length
	return b
}

// WithTagFormat sets which PGN tags are written.
func (b *ConfigBuilder) WithTagFormat(f TagOutputForm) *ConfigBuilder {
	b.cfg.Output.TagFormat = f
	return b
}

// WithColour sets the board colour mode.
func (b *ConfigBuilder) WithColour(m ColourMode) *ConfigBuilder {
	b.cfg.Output.Colour = m
	return b
}

// WithSaveFile sets the session file and whether it is written after every move.
func (b *ConfigBuilder) WithSaveFile(path string, autosave bool) *ConfigBuilder {
	b.cfg.Session.SaveFile = path
	b.cfg.Session.Autosave = autosave
	return b
}

// WithOutput sets the output writer.
func (b *ConfigBuilder) WithOutput(w io.Writer) *ConfigBuilder {
	b.cfg.OutputFile = w
	return b
}

// WithLog sets the log writer.
func (b *ConfigBuilder) WithLog(w io.Writer) *ConfigBuilder {
	b.cfg.LogFile = w
	return b
}

// WithVerbosity sets the verbosity level.
func (b *ConfigBuilder) WithVerbosity(level int) *ConfigBuilder {
	b.cfg.Verbosity = level
	return b
}

package config

// SessionConfig holds settings for the saved session.
type SessionConfig struct {
	// SaveFile is where the session is loaded from and saved to
	SaveFile string

	// Autosave writes the session after every finished move
	Autosave bool

	// Resume loads SaveFile at startup
	Resume bool
}

// NewSessionConfig creates a SessionConfig with default values.
func NewSessionConfig() *SessionConfig {
	return &SessionConfig{
		SaveFile: "chessplay.sav",
		Autosave: true,
		Resume:   true,
	}
}

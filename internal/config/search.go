package config

import (
	"fmt"
	"time"

	"github.com/lgbarn/chessplay-go/internal/errors"
)

// SearchConfig holds settings for computer players.
type SearchConfig struct {
	// Jitter adds a random -1..+1 to heuristic leaf scores
	Jitter bool

	// Workers is the number of goroutines running searches
	Workers int

	// QueueSize is the work queue buffer size
	QueueSize int

	// Seed seeds the search random sources; 0 picks one from the clock
	Seed int64

	// PollInterval is how often the game loop checks a running search
	PollInterval time.Duration
}

// NewSearchConfig creates a SearchConfig with default values.
func NewSearchConfig() *SearchConfig {
	return &SearchConfig{
		Jitter:       true,
		Workers:      2,
		QueueSize:    8,
		PollInterval: 20 * time.Millisecond,
	}
}

// Validate checks that the search configuration is valid.
func (s *SearchConfig) Validate() error {
	if s.Workers < 1 {
		return fmt.Errorf("workers (%d) < 1: %w", s.Workers, errors.ErrInvalidConfig)
	}
	if s.QueueSize < 1 {
		return fmt.Errorf("queue size (%d) < 1: %w", s.QueueSize, errors.ErrInvalidConfig)
	}
	if s.PollInterval <= 0 {
		return fmt.Errorf("poll interval %v is not positive: %w", s.PollInterval, errors.ErrInvalidConfig)
	}
	return nil
}

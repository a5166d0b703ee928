// Package errors provides sentinel errors and error types for chessplay.
// Operational failures are returned as errors that can be inspected with
// errors.Is() and errors.As(); broken board invariants panic via Assert.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure conditions.
// Use these with errors.Is() to check for specific error types.
var (
	// ErrInvalidFEN indicates a malformed FEN string or an unplayable position.
	ErrInvalidFEN = errors.New("invalid FEN string")

	// ErrIllegalMove indicates a move that is not in the legal destination set.
	ErrIllegalMove = errors.New("illegal move")

	// ErrInvalidConfig indicates invalid configuration values.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrNoSave indicates a save file is missing or does not match the expected layout.
	ErrNoSave = errors.New("no save found")

	// ErrSessionFull indicates the session already holds the maximum number of games.
	ErrSessionFull = errors.New("session is full")

	// ErrNoGame indicates a game slot that does not exist.
	ErrNoGame = errors.New("no such game")

	// ErrSearchPending indicates an operation that needs the AI to be idle.
	ErrSearchPending = errors.New("search in progress")

	// ErrUnknownCommand indicates CLI input that names no command.
	ErrUnknownCommand = errors.New("unknown command")
)

// GameError wraps errors with game context: the session slot, the ply and
// the move text involved. It supports unwrapping via errors.Is() and errors.As().
type GameError struct {
	Err      error  // The underlying error
	GameNum  int    // 1-based game slot in the session
	Name     string // Game name (if known)
	PlyNum   int    // Ply number where error occurred (0 if not applicable)
	MoveText string // The move text that caused the error (if applicable)
}

// Error returns a formatted error message including all available context.
func (e *GameError) Error() string {
	var parts []string

	if e.Name != "" {
		parts = append(parts, fmt.Sprintf("game %d (%s)", e.GameNum, e.Name))
	} else {
		parts = append(parts, fmt.Sprintf("game %d", e.GameNum))
	}

	if e.PlyNum > 0 {
		parts = append(parts, fmt.Sprintf("ply %d", e.PlyNum))
	}

	if e.MoveText != "" {
		parts = append(parts, fmt.Sprintf("move %q", e.MoveText))
	}

	context := strings.Join(parts, ", ")

	if e.Err != nil {
		return fmt.Sprintf("%s: %v", context, e.Err)
	}
	return context
}

// Unwrap returns the underlying error.
func (e *GameError) Unwrap() error {
	return e.Err
}

// ParseError reports a command line that could not be understood.
type ParseError struct {
	Err      error  // The underlying error
	Input    string // The offending input line
	Column   int    // Column number (1-based)
	Expected string // What was expected
	Got      string // What was found instead
}

// Error returns a formatted error message with location and context.
func (e *ParseError) Error() string {
	var parts []string

	if e.Input != "" {
		loc := fmt.Sprintf("%q", e.Input)
		if e.Column > 0 {
			loc += fmt.Sprintf(":%d", e.Column)
		}
		parts = append(parts, loc)
	}

	if e.Expected != "" && e.Got != "" {
		parts = append(parts, fmt.Sprintf("expected %s, got %s", e.Expected, e.Got))
	} else if e.Expected != "" {
		parts = append(parts, fmt.Sprintf("expected %s", e.Expected))
	} else if e.Got != "" {
		parts = append(parts, fmt.Sprintf("unexpected %s", e.Got))
	}

	if e.Err != nil {
		if len(parts) > 0 {
			return fmt.Sprintf("%s: %v", strings.Join(parts, ": "), e.Err)
		}
		return e.Err.Error()
	}

	if len(parts) > 0 {
		return strings.Join(parts, ": ")
	}
	return "parse error"
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// InvariantError is the panic value raised when a board invariant breaks.
// A corrupted position is never recovered from.
type InvariantError struct {
	Msg string
}

// Error returns the violated invariant.
func (e *InvariantError) Error() string {
	return "invariant violated: " + e.Msg
}

// Invariantf builds the panic value for a broken invariant. Hot paths test
// the condition themselves and only format on failure.
func Invariantf(format string, args ...interface{}) *InvariantError {
	return &InvariantError{Msg: fmt.Sprintf(format, args...)}
}

// Assert panics with an *InvariantError when ok is false.
func Assert(ok bool, format string, args ...interface{}) {
	if !ok {
		panic(Invariantf(format, args...))
	}
}

// Wrap adds context to an error while preserving the underlying error
// for inspection with errors.Is() and errors.As().
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Wrapf adds formatted context to an error while preserving the underlying
// error for inspection with errors.Is() and errors.As().
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

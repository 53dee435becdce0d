package types

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrNoCredentials  = errors.New("no credentials found")
	ErrTokenExpired   = errors.New("token expired")
	ErrNoActiveWindow = errors.New("no active window")
	ErrInvalidConfig  = errors.New("invalid configuration")
)

// TimeoutError reports that a subprocess or request exceeded its deadline.
type TimeoutError struct {
	Command string
	Timeout time.Duration
}

func (e TimeoutError) Error() string {
	return fmt.Sprintf("%s timed out after %s", e.Command, e.Timeout)
}

// ProcessError reports a non-zero exit from an external command.
type ProcessError struct {
	Command string
	Stderr  string
	Err     error
}

func (e ProcessError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("%s failed: %v: %s", e.Command, e.Err, e.Stderr)
	}
	return fmt.Sprintf("%s failed: %v", e.Command, e.Err)
}

func (e ProcessError) Unwrap() error {
	return e.Err
}

// ParseError reports malformed JSON or a body missing the expected shape.
type ParseError struct {
	Source SourceTag
	Err    error
}

func (e ParseError) Error() string {
	return fmt.Sprintf("parse %s response: %v", e.Source, e.Err)
}

func (e ParseError) Unwrap() error {
	return e.Err
}

// TransportError reports a network-level failure on the remote call.
type TransportError struct {
	URL string
	Err error
}

func (e TransportError) Error() string {
	return fmt.Sprintf("request %s: %v", e.URL, e.Err)
}

func (e TransportError) Unwrap() error {
	return e.Err
}

// TerminalError is raised when every source in the ladder returned no
// data for one cycle. It is shown to the user and not retried until the
// next scheduled tick.
type TerminalError struct {
	Remote error
	Local  error
}

func (e TerminalError) Error() string {
	return "no usage data available from any source"
}

// IsTerminal reports whether err is a both-sources-exhausted failure.
func IsTerminal(err error) bool {
	var te *TerminalError
	return errors.As(err, &te)
}

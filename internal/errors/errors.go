// Package errors models the non-local failure states of a match
// distinctly from the ordinary Failure
// outcome a pattern is expected to produce.
package errors

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Kind classifies what went wrong building or running a match.
type Kind string

const (
	UninitialisedError Kind = "UninitialisedPattern"
	GetterPanic         Kind = "GetterPanic"
	StackExhausted      Kind = "StackExhausted"
	InternalError       Kind = "InternalError"
)

// Site locates the node and cursor position a match exception
// occurred at, analogous to a source location in a compiler
// diagnostic.
type Site struct {
	NodeIndex int
	Cursor    int
	Subject   string
}

// MatchError is the error value behind Outcome Exception: it never
// indicates an ordinary pattern failure, only a collaborator (a
// getter, setter or predicate) panicking, or the matcher hitting an
// internal consistency check, mid-match.
type MatchError struct {
	Kind    Kind
	Message string
	At      Site
	Cause   error
}

func (e *MatchError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s: %s", e.Kind, e.Message))
	if e.At.Subject != "" {
		sb.WriteString(fmt.Sprintf(" (node %d, cursor %d)", e.At.NodeIndex, e.At.Cursor))
	}
	if e.Cause != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Cause.Error())
	}
	return sb.String()
}

// Unwrap lets errors.Is/As reach the underlying cause.
func (e *MatchError) Unwrap() error { return e.Cause }

// NewUninitialised builds the error for matching an empty Pattern
// handle.
func NewUninitialised() *MatchError {
	return &MatchError{Kind: UninitialisedError, Message: "pattern has no graph"}
}

// NewStackExhausted builds the error the matcher raises when its
// history stack cannot grow further.
func NewStackExhausted(at Site) *MatchError {
	return &MatchError{Kind: StackExhausted, Message: "history stack exhausted", At: at}
}

// FromGetterPanic wraps a recovered getter/setter/predicate panic as
// a MatchError, preserving it as the cause via github.com/pkg/errors
// so callers can still walk the original stack with errors.Cause.
func FromGetterPanic(at Site, recovered interface{}) *MatchError {
	var cause error
	switch v := recovered.(type) {
	case error:
		cause = errors.WithStack(v)
	default:
		cause = errors.Errorf("%v", v)
	}
	return &MatchError{
		Kind:    GetterPanic,
		Message: "pattern collaborator panicked",
		At:      at,
		Cause:   cause,
	}
}

// NewInternal builds the error for a matcher-side consistency check
// failing (a miscounted stack index, an impossible tag in the
// dispatch switch) — a bug in this package, never in caller input.
func NewInternal(at Site, message string) *MatchError {
	return &MatchError{Kind: InternalError, Message: message, At: at}
}

package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound        = errors.New("not found")
	ErrAlreadyExists   = errors.New("already exists")
	ErrValidation      = errors.New("validation error")
	ErrParse           = errors.New("parse error")
	ErrConfiguration   = errors.New("configuration error")
	ErrVersionMismatch = errors.New("version mismatch")
)

// ParseError reports a malformed row in a snapshot file. Structural errors
// abort the run: downstream stages assume well-formed input.
type ParseError struct {
	File    string
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Message)
}

func (e *ParseError) Unwrap() error { return ErrParse }

// NewParseError creates a ParseError for the given file position.
func NewParseError(file string, line int, format string, args ...any) *ParseError {
	return &ParseError{File: file, Line: line, Message: fmt.Sprintf(format, args...)}
}

// VersionMismatchError reports that the national package's declared
// dependency does not match the loaded international release version.
// Fatal by default; the merge may proceed under an explicit override.
type VersionMismatchError struct {
	Expected string // dependency version declared for the national package
	Actual   string // version of the loaded international release
}

func (e *VersionMismatchError) Error() string {
	return fmt.Sprintf("national package depends on international release %s, loaded %s", e.Expected, e.Actual)
}

func (e *VersionMismatchError) Unwrap() error { return ErrVersionMismatch }

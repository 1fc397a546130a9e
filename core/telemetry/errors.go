package telemetry

import (
	"errors"
	"fmt"
)

// ErrNoCSVFiles is returned when a telemetry directory holds no CSV export.
var ErrNoCSVFiles = errors.New("no csv files found")

// ErrEmptyFile is returned for a CSV export without a header row.
var ErrEmptyFile = errors.New("empty file")

// MissingColumnError reports a required column absent from an export header.
type MissingColumnError struct {
	File   string
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("%s: missing required column %q", e.File, e.Column)
}

// ParseError reports a cell, line or timestamp that could not be decoded.
type ParseError struct {
	File   string
	Line   int
	Column string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("%s:%d: %v", e.File, e.Line, e.Err)
	}
	return fmt.Sprintf("%s:%d: column %s: parse %q: %v", e.File, e.Line, e.Column, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

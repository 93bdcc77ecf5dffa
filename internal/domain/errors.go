package domain

import (
	"errors"
	"fmt"
)

// Base errors for the transform. Every failure aborts the whole run; the
// export is presumed consistent, and silently patching an inconsistency
// would corrupt downstream competition records.
var (
	// ErrMissingField indicates a record lacks a field the mapping
	// assumes present, such as a judge with no name.
	ErrMissingField = errors.New("missing required field")

	// ErrUnknownScoreKind indicates a score-type name outside the closed
	// canonical set.
	ErrUnknownScoreKind = errors.New("unknown score kind")

	// ErrAmbiguousFormat indicates the input carries both round encodings,
	// or neither.
	ErrAmbiguousFormat = errors.New("ambiguous round encoding")

	// ErrMalformedTimestamp indicates a date/time string the parser
	// rejected.
	ErrMalformedTimestamp = errors.New("malformed timestamp")
)

// MissingFieldError reports a record that lacks a required field. It
// carries the source table and record ID so the offending row can be found
// in the export.
type MissingFieldError struct {
	Table    string
	RecordID string
	Field    string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s record %s: missing required field %s", e.Table, e.RecordID, e.Field)
}

func (e *MissingFieldError) Unwrap() error { return ErrMissingField }

// UnknownScoreKindError reports a score-type name outside the canonical
// set. Suggestion names the closest canonical kind when one is plausible.
type UnknownScoreKindError struct {
	Name       string
	Table      string
	RecordID   string
	Suggestion string
}

func (e *UnknownScoreKindError) Error() string {
	msg := fmt.Sprintf("%s record %s: unknown score kind %q", e.Table, e.RecordID, e.Name)
	if e.Suggestion != "" {
		msg += fmt.Sprintf(" (closest known kind: %q)", e.Suggestion)
	}
	return msg
}

func (e *UnknownScoreKindError) Unwrap() error { return ErrUnknownScoreKind }

// FormatError reports that the document-level round encoding could not be
// decided.
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("cannot determine round encoding: %s", e.Reason)
}

func (e *FormatError) Unwrap() error { return ErrAmbiguousFormat }

// TimestampError reports a date/time string the parser rejected, with the
// offending value and its source record attached for diagnosis.
type TimestampError struct {
	Table    string
	RecordID string
	Value    string
	Err      error
}

func (e *TimestampError) Error() string {
	return fmt.Sprintf("%s record %s: cannot parse timestamp %q: %v", e.Table, e.RecordID, e.Value, e.Err)
}

func (e *TimestampError) Unwrap() error { return ErrMalformedTimestamp }

package tabroom

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/debatekit/tabdml/internal/domain"
)

// Package-level validator instance for record validation.
// Uses go-playground/validator v10 for struct tag-based validation.
var validate = validator.New()

func init() {
	// Errors should name the source export's fields, not Go struct fields.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		tag := fld.Tag.Get("xml")
		if tag == "" {
			return fld.Name
		}
		return strings.Split(tag, ",")[0]
	})
}

// Decode reads one full export document and validates that every record
// carries the fields the mapping assumes present. The transform is a
// one-shot batch pass, so any malformed record is surfaced immediately as
// a fatal error instead of being silently patched.
func Decode(r io.Reader) (*Document, error) {
	var doc Document
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding export document: %w", err)
	}
	if doc.Tourn == nil {
		return nil, &domain.MissingFieldError{Table: "TOURN", RecordID: "(document)", Field: "TOURN"}
	}
	if err := validateRecords(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// validateRecords checks required fields table by table, converting the
// first failure into a MissingFieldError carrying the source table and
// record ID.
func validateRecords(doc *Document) error {
	for _, e := range doc.Events {
		if err := checkRecord("EVENT", e.ID, e); err != nil {
			return err
		}
	}
	for _, r := range doc.Rounds {
		if err := checkRecord("ROUND", r.ID, r); err != nil {
			return err
		}
	}
	for _, t := range doc.Timeslots {
		if err := checkRecord("TIMESLOT", t.ID, t); err != nil {
			return err
		}
	}
	for _, p := range doc.Panels {
		if err := checkRecord("PANEL", p.ID, p); err != nil {
			return err
		}
	}
	for _, b := range doc.Ballots {
		if err := checkRecord("BALLOT", b.ID, b); err != nil {
			return err
		}
	}
	for _, s := range doc.BallotScores {
		if err := checkRecord("BALLOT_SCORE", s.Ballot, s); err != nil {
			return err
		}
	}
	for _, s := range doc.ScoreTypes {
		if err := checkRecord("SCORES", s.ID, s); err != nil {
			return err
		}
	}
	for _, e := range doc.Entries {
		if err := checkRecord("ENTRY", e.ID, e); err != nil {
			return err
		}
	}
	for _, s := range doc.EntryStudents {
		if err := checkRecord("ENTRY_STUDENT", s.ID, s); err != nil {
			return err
		}
	}
	for _, j := range doc.Judges {
		if err := checkRecord("JUDGE", j.ID, j); err != nil {
			return err
		}
	}
	for _, s := range doc.Schools {
		if err := checkRecord("SCHOOL", s.ID, s); err != nil {
			return err
		}
	}
	for _, r := range doc.Rooms {
		if err := checkRecord("ROOM", r.ID, r); err != nil {
			return err
		}
	}
	return nil
}

func checkRecord(table, id string, rec any) error {
	err := validate.Struct(rec)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		if id == "" {
			id = "(no id)"
		}
		return &domain.MissingFieldError{Table: table, RecordID: id, Field: verrs[0].Field()}
	}
	return fmt.Errorf("validating %s record %s: %w", table, id, err)
}

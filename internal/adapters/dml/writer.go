// Package dml serializes the normalized competition record as a single
// markup document. The writer walks the tournament tree emitting tokens,
// which keeps debates and byes interleaved in panel order and the
// attribute order fixed, so identical trees produce byte-identical output.
package dml

import (
	"encoding/xml"
	"io"
	"strconv"
	"strings"

	"github.com/debatekit/tabdml/internal/domain"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02T15:04:05"
)

// Write encodes the tournament tree to w in the fixed document order:
// tournament attributes, rounds, participants, institutions, venues,
// divisions. A trailing newline terminates the document.
func Write(w io.Writer, t *domain.Tournament) error {
	enc := xml.NewEncoder(w)
	if err := writeTournament(enc, t); err != nil {
		return err
	}
	if err := enc.Flush(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func writeTournament(enc *xml.Encoder, t *domain.Tournament) error {
	attrs := []xml.Attr{attr("name", t.Name)}
	if !t.StartDate.IsZero() {
		attrs = append(attrs, attr("start-date", t.StartDate.Format(dateLayout)))
	}
	if !t.EndDate.IsZero() {
		attrs = append(attrs, attr("end-date", t.EndDate.Format(dateLayout)))
	}
	if t.Style != "" {
		attrs = append(attrs, attr("style", t.Style))
	}
	root := element("tournament", attrs...)
	if err := enc.EncodeToken(root); err != nil {
		return err
	}

	for i := range t.Rounds {
		if err := writeRound(enc, &t.Rounds[i]); err != nil {
			return err
		}
	}
	if err := writeParticipants(enc, t); err != nil {
		return err
	}
	for _, inst := range t.Institutions {
		attrs := []xml.Attr{attr("id", inst.ID)}
		if inst.Code != "" {
			attrs = append(attrs, attr("reference", inst.Code))
		}
		if inst.Region != "" {
			attrs = append(attrs, attr("region", inst.Region))
		}
		if err := writeTextElement(enc, "institution", inst.Name, attrs...); err != nil {
			return err
		}
	}
	for _, v := range t.Venues {
		if err := writeTextElement(enc, "venue", v.Name, attr("id", v.ID), attr("score", v.Score)); err != nil {
			return err
		}
	}
	for _, d := range t.Divisions {
		if err := writeTextElement(enc, "division", d.Name, attr("id", d.ID)); err != nil {
			return err
		}
	}

	return enc.EncodeToken(root.End())
}

func writeRound(enc *xml.Encoder, r *domain.Round) error {
	attrs := []xml.Attr{
		attr("name", r.Name),
		attr("elimination", strconv.FormatBool(r.Elimination)),
	}
	if r.Division != "" {
		attrs = append(attrs, attr("division", r.Division))
	}
	if !r.Start.IsZero() {
		attrs = append(attrs, attr("start", r.Start.Format(dateTimeLayout)))
	}
	round := element("round", attrs...)
	if err := enc.EncodeToken(round); err != nil {
		return err
	}
	for _, item := range r.Items {
		switch it := item.(type) {
		case *domain.Debate:
			if err := writeDebate(enc, it); err != nil {
				return err
			}
		case *domain.Bye:
			if err := writeTextElement(enc, "bye", it.Team); err != nil {
				return err
			}
		}
	}
	return enc.EncodeToken(round.End())
}

func writeDebate(enc *xml.Encoder, d *domain.Debate) error {
	attrs := []xml.Attr{attr("id", d.ID)}
	if d.Adjudicators != nil {
		attrs = append(attrs, attr("adjudicators", joinRefs(d.Adjudicators)))
	}
	if d.Venue != "" {
		attrs = append(attrs, attr("venue", d.Venue))
	}
	debate := element("debate", attrs...)
	if err := enc.EncodeToken(debate); err != nil {
		return err
	}
	for i := range d.Sides {
		if err := writeSide(enc, &d.Sides[i]); err != nil {
			return err
		}
	}
	return enc.EncodeToken(debate.End())
}

func writeSide(enc *xml.Encoder, s *domain.Side) error {
	side := element("side", attr("team", s.Team))
	if err := enc.EncodeToken(side); err != nil {
		return err
	}
	for i := range s.Ballots {
		if err := writeBallot(enc, &s.Ballots[i]); err != nil {
			return err
		}
	}
	for i := range s.Speeches {
		sp := &s.Speeches[i]
		speech := element("speech", attr("speaker", sp.Speaker))
		if err := enc.EncodeToken(speech); err != nil {
			return err
		}
		for j := range sp.Ballots {
			if err := writeBallot(enc, &sp.Ballots[j]); err != nil {
				return err
			}
		}
		if err := enc.EncodeToken(speech.End()); err != nil {
			return err
		}
	}
	return enc.EncodeToken(side.End())
}

func writeBallot(enc *xml.Encoder, b *domain.Ballot) error {
	var attrs []xml.Attr
	if b.Adjudicator != "" {
		attrs = append(attrs, attr("adjudicators", b.Adjudicator))
	}
	if b.Rank != "" {
		attrs = append(attrs, attr("rank", b.Rank))
	}
	return writeTextElement(enc, "ballot", b.Text, attrs...)
}

func writeParticipants(enc *xml.Encoder, t *domain.Tournament) error {
	participants := element("participants")
	if err := enc.EncodeToken(participants); err != nil {
		return err
	}
	for i := range t.Teams {
		if err := writeTeam(enc, &t.Teams[i]); err != nil {
			return err
		}
	}
	for _, adj := range t.Adjudicators {
		attrs := []xml.Attr{attr("id", adj.ID)}
		if adj.Rating != "" {
			attrs = append(attrs, attr("score", adj.Rating))
		}
		if adj.Institution != "" {
			attrs = append(attrs, attr("institutions", adj.Institution))
		}
		if err := writeTextElement(enc, "adjudicator", adj.Name, attrs...); err != nil {
			return err
		}
	}
	return enc.EncodeToken(participants.End())
}

func writeTeam(enc *xml.Encoder, team *domain.Team) error {
	attrs := []xml.Attr{
		attr("id", team.ID),
		attr("name", team.Name),
	}
	if team.Code != "" {
		attrs = append(attrs, attr("code", team.Code))
	}
	if team.Division != "" {
		attrs = append(attrs, attr("division", team.Division))
	}
	el := element("team", attrs...)
	if err := enc.EncodeToken(el); err != nil {
		return err
	}
	for _, sp := range team.Speakers {
		attrs := []xml.Attr{attr("id", sp.ID)}
		if len(sp.Institutions) > 0 {
			attrs = append(attrs, attr("institutions", joinRefs(sp.Institutions)))
		}
		if err := writeTextElement(enc, "speaker", sp.Name, attrs...); err != nil {
			return err
		}
	}
	return enc.EncodeToken(el.End())
}

// writeTextElement emits one element whose only content is character data.
// Empty text still produces the element, just without content.
func writeTextElement(enc *xml.Encoder, name, text string, attrs ...xml.Attr) error {
	el := element(name, attrs...)
	if err := enc.EncodeToken(el); err != nil {
		return err
	}
	if text != "" {
		if err := enc.EncodeToken(xml.CharData(text)); err != nil {
			return err
		}
	}
	return enc.EncodeToken(el.End())
}

func element(name string, attrs ...xml.Attr) xml.StartElement {
	return xml.StartElement{Name: xml.Name{Local: name}, Attr: attrs}
}

func attr(name, value string) xml.Attr {
	return xml.Attr{Name: xml.Name{Local: name}, Value: value}
}

func joinRefs(refs []string) string {
	return strings.Join(refs, " ")
}

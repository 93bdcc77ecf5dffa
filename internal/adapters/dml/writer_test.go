package dml

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/debatekit/tabdml/internal/domain"
)

func render(t *testing.T, tourn *domain.Tournament) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, tourn))
	return buf.String()
}

func TestWriteFullDocument(t *testing.T) {
	tourn := &domain.Tournament{
		Name:      "City Open",
		StartDate: time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		Style:     "ld",
		Rounds: []domain.Round{{
			Name:  "Round 1",
			Start: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC),
			Items: []domain.RoundItem{
				&domain.Debate{
					ID:           "D10",
					Adjudicators: []string{"A5"},
					Venue:        "V3",
					Sides: []domain.Side{
						{
							Team:    "T1",
							Ballots: []domain.Ballot{{Adjudicator: "A5", Rank: "2", Text: "55.5"}},
							Speeches: []domain.Speech{{
								Speaker: "S50",
								Ballots: []domain.Ballot{{Adjudicator: "A5", Rank: "1", Text: "28.5"}},
							}},
						},
						{
							Team:    "T2",
							Ballots: []domain.Ballot{{Adjudicator: "A5", Rank: "1"}},
						},
					},
				},
				&domain.Bye{Team: "T7"},
			},
		}},
		Teams: []domain.Team{{
			ID: "T1", Name: "Alpha", Code: "ALP", Division: "E1",
			Speakers: []domain.Speaker{{ID: "S50", Name: "Ada Lovelace", Institutions: []string{"I3"}}},
		}},
		Adjudicators: []domain.Adjudicator{{ID: "A5", Name: "Grace Hopper", Rating: "92", Institution: "I3"}},
		Institutions: []domain.Institution{{ID: "I3", Name: "North High", Code: "NH", Region: "West"}},
		Venues:       []domain.Venue{{ID: "V3", Name: "Library", Score: "80"}},
		Divisions:    []domain.Division{{ID: "E1", Name: "Open"}},
	}

	want := `<tournament name="City Open" start-date="2026-03-14" end-date="2026-03-15" style="ld">` +
		`<round name="Round 1" elimination="false" start="2026-03-14T09:00:00">` +
		`<debate id="D10" adjudicators="A5" venue="V3">` +
		`<side team="T1">` +
		`<ballot adjudicators="A5" rank="2">55.5</ballot>` +
		`<speech speaker="S50"><ballot adjudicators="A5" rank="1">28.5</ballot></speech>` +
		`</side>` +
		`<side team="T2"><ballot adjudicators="A5" rank="1"></ballot></side>` +
		`</debate>` +
		`<bye>T7</bye>` +
		`</round>` +
		`<participants>` +
		`<team id="T1" name="Alpha" code="ALP" division="E1">` +
		`<speaker id="S50" institutions="I3">Ada Lovelace</speaker>` +
		`</team>` +
		`<adjudicator id="A5" score="92" institutions="I3">Grace Hopper</adjudicator>` +
		`</participants>` +
		`<institution id="I3" reference="NH" region="West">North High</institution>` +
		`<venue id="V3" score="80">Library</venue>` +
		`<division id="E1">Open</division>` +
		`</tournament>` + "\n"

	assert.Equal(t, want, render(t, tourn))
}

func TestWriteMinimalDocument(t *testing.T) {
	out := render(t, &domain.Tournament{Name: "t"})
	assert.Equal(t, `<tournament name="t"><participants></participants></tournament>`+"\n", out,
		"participants is emitted even when empty")
	assert.True(t, strings.HasSuffix(out, "\n"))
}

func TestWriteAdjudicatorsNilVersusEmpty(t *testing.T) {
	suppressed := render(t, &domain.Tournament{
		Name:   "t",
		Rounds: []domain.Round{{Name: "R1", Items: []domain.RoundItem{&domain.Debate{ID: "D1"}}}},
	})
	assert.Contains(t, suppressed, `<debate id="D1"></debate>`,
		"nil slice suppresses the attribute")

	empty := render(t, &domain.Tournament{
		Name:   "t",
		Rounds: []domain.Round{{Name: "R1", Items: []domain.RoundItem{&domain.Debate{ID: "D1", Adjudicators: []string{}}}}},
	})
	assert.Contains(t, empty, `<debate id="D1" adjudicators="">`,
		"empty slice keeps the attribute, empty")
}

func TestWriteJoinsMultipleAdjudicators(t *testing.T) {
	out := render(t, &domain.Tournament{
		Name: "t",
		Rounds: []domain.Round{{Name: "R1", Items: []domain.RoundItem{
			&domain.Debate{ID: "D1", Adjudicators: []string{"A5", "A6", "A12"}},
		}}},
	})
	assert.Contains(t, out, `adjudicators="A5 A6 A12"`)
}

func TestWriteEliminationAndDivision(t *testing.T) {
	out := render(t, &domain.Tournament{
		Name:   "t",
		Rounds: []domain.Round{{Name: "Finals", Elimination: true, Division: "E2"}},
	})
	assert.Contains(t, out, `<round name="Finals" elimination="true" division="E2">`)
}

func TestWriteEscapesText(t *testing.T) {
	out := render(t, &domain.Tournament{
		Name:  `Smith & Jones "Memorial"`,
		Teams: []domain.Team{{ID: "T1", Name: "A < B"}},
	})
	assert.Contains(t, out, `name="Smith &amp; Jones &#34;Memorial&#34;"`)
	assert.Contains(t, out, `name="A &lt; B"`)
}

func TestWriteDeterministic(t *testing.T) {
	tourn := &domain.Tournament{
		Name: "t",
		Rounds: []domain.Round{{Name: "R1", Items: []domain.RoundItem{
			&domain.Debate{ID: "D1", Adjudicators: []string{"A5", "A6"}, Sides: []domain.Side{{Team: "T1"}}},
			&domain.Bye{Team: "T2"},
		}}},
		Teams: []domain.Team{{ID: "T1", Name: "Alpha"}},
	}
	assert.Equal(t, render(t, tourn), render(t, tourn))
}

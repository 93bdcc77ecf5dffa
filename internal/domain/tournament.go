package domain

import "time"

// Tournament is the root of the normalized competition record. It is a
// read-only projection of the flat export, constructed once by a single
// transform pass and never mutated afterwards.
type Tournament struct {
	// Name is the display name of the tournament.
	Name string

	// StartDate and EndDate are optional; the zero time means unset.
	StartDate time.Time
	EndDate   time.Time

	// Style is the canonical contest style, set only when every division
	// shares one style and that style maps to a known canonical value.
	Style string

	Rounds       []Round
	Teams        []Team
	Adjudicators []Adjudicator
	Institutions []Institution
	Venues       []Venue
	Divisions    []Division
}

// Round is one scheduled round of the tournament.
type Round struct {
	Name string

	// Elimination reports whether the round is past the preliminary stage.
	Elimination bool

	// Division is an optional division reference, attached only when the
	// tournament has more than one division.
	Division string

	// Start is the optional round start; the zero time means unset.
	Start time.Time

	// Items holds the round's debates and byes in panel order.
	Items []RoundItem
}

// RoundItem is either a *Debate or a *Bye. Byes and debates interleave in
// the order their panels appear.
type RoundItem interface {
	roundItem()
}

// Debate is one judged meeting of sides within a round.
type Debate struct {
	// ID is the prefixed panel source ID, kept for debugging.
	ID string

	// Adjudicators holds prefixed judge references. A nil slice means the
	// attribute is suppressed entirely (an incomplete panel); an empty
	// debate without judges still emits its sides.
	Adjudicators []string

	// Venue is an optional prefixed room reference.
	Venue string

	// Sides are ordered by the source side number, ties broken by
	// first appearance.
	Sides []Side
}

func (*Debate) roundItem() {}

// Bye is a scheduled round entry with no opposing side. It references
// exactly one team and no debate.
type Bye struct {
	// Team is the prefixed entry reference of the bye entrant.
	Team string
}

func (*Bye) roundItem() {}

// Side is one team's participation within a single debate.
type Side struct {
	// Team is the prefixed entry reference.
	Team string

	// Ballots holds one merged ballot per judge, in ballot-row order.
	Ballots []Ballot

	// Speeches are created per first-seen speaker recipient.
	Speeches []Speech
}

// Speech is one speaker's contribution on a side.
type Speech struct {
	// Speaker is the prefixed student reference.
	Speaker string

	Ballots []Ballot
}

// Ballot is a single judge's merged assessment of a side or speaker.
// Fields are mutually consistent with the score kinds they encode; an
// empty string means the attribute or text is absent.
type Ballot struct {
	// Adjudicator is the prefixed judge reference, empty when the judge is
	// unknown or the nonexistent sentinel.
	Adjudicator string

	// Rank is the value of the rank attribute. For decision scores it is
	// the computed max_rank minus raw value; for rank-named kinds it is
	// the raw value.
	Rank string

	// Text is the ballot's free-text score, such as summed speaker points.
	Text string
}

// Team is one entry in the participants registry.
type Team struct {
	// ID is the prefixed entry reference.
	ID string

	// Name falls back from the full name to the short code to "UNKNOWN".
	Name string

	// Code is the optional short code.
	Code string

	// Division is attached only when more than one division exists.
	Division string

	Speakers []Speaker
}

// Speaker is one student on a team.
type Speaker struct {
	// ID is the prefixed student reference.
	ID string

	// Name joins the student's first and last names with a space.
	Name string

	// Institutions lists up to two deduplicated prefixed school
	// references: the team's first, then the speaker's own.
	Institutions []string
}

// Adjudicator is one judge in the participants registry.
type Adjudicator struct {
	// ID is the prefixed judge reference.
	ID string

	Name string

	// Rating is the optional numeric tab rating, kept verbatim.
	Rating string

	// Institution is an optional prefixed school reference.
	Institution string
}

// Institution is one school. The unaffiliated sentinel is never emitted.
type Institution struct {
	// ID is the prefixed school reference.
	ID string

	Name string

	// Code is the optional reference code.
	Code string

	// Region is the optional region name.
	Region string
}

// Venue is one room.
type Venue struct {
	// ID is the prefixed room reference.
	ID string

	Name string

	// Score is the room's quality score, kept verbatim.
	Score string
}

// Division is one event, emitted only when more than one exists.
type Division struct {
	// ID is the prefixed event reference.
	ID string

	Name string
}

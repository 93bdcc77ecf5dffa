// Package tabroom decodes the flat, denormalized tournament-management
// export: one XML element type per logical table, records keyed by
// tournament-local integer IDs and cross-referenced by foreign-key text
// fields. The package also builds the hash indices the transform uses in
// place of repeated linear scans.
package tabroom

// Document holds every flat table of one export. The root element name is
// not significant; only the table elements below it are.
type Document struct {
	Tourn         *Tourn         `xml:"TOURN"`
	Events        []Event        `xml:"EVENT"`
	Rounds        []Round        `xml:"ROUND"`
	RoundResults  []RoundResult  `xml:"ROUNDRESULT"`
	Timeslots     []Timeslot     `xml:"TIMESLOT"`
	Panels        []Panel        `xml:"PANEL"`
	Ballots       []Ballot       `xml:"BALLOT"`
	BallotScores  []BallotScore  `xml:"BALLOT_SCORE"`
	ScoreTypes    []ScoreType    `xml:"SCORES"`
	Entries       []Entry        `xml:"ENTRY"`
	EntryStudents []EntryStudent `xml:"ENTRY_STUDENT"`
	Judges        []Judge        `xml:"JUDGE"`
	Schools       []School       `xml:"SCHOOL"`
	Rooms         []Room         `xml:"ROOM"`
}

// Tourn is the single tournament header record.
type Tourn struct {
	Name      string  `xml:"TOURNNAME,attr"`
	StartDate *string `xml:"STARTDATE"`
	EndDate   *string `xml:"ENDDATE"`
}

// Event is one division of the tournament.
type Event struct {
	ID    string  `xml:"ID" validate:"required"`
	Name  *string `xml:"EVENTNAME"`
	Style *string `xml:"STYLE"`
}

// Round is one round record under the detailed encoding.
type Round struct {
	ID       string  `xml:"ID" validate:"required"`
	Label    *string `xml:"LABEL" validate:"required"`
	Stage    *string `xml:"RD_NAME" validate:"required"`
	Event    *string `xml:"EVENT"`
	Timeslot *string `xml:"TIMESLOT"`
}

// Timeslot maps a timeslot ID to its start time string.
type Timeslot struct {
	ID    string  `xml:"ID" validate:"required"`
	Start *string `xml:"START"`
}

// Panel is one judged debate instance within a round.
type Panel struct {
	ID    string  `xml:"ID" validate:"required"`
	Round string  `xml:"ROUND" validate:"required"`
	Room  *string `xml:"ROOM"`
	Bye   *string `xml:"BYE"`
}

// Ballot is one judge's view of one side of a panel under the detailed
// encoding. Scores attach through BallotScore rows.
type Ballot struct {
	ID    string  `xml:"ID" validate:"required"`
	Panel string  `xml:"PANEL" validate:"required"`
	Judge *string `xml:"JUDGE" validate:"required"`
	Entry *string `xml:"ENTRY" validate:"required"`
	Side  *string `xml:"SIDE" validate:"required"`
}

// BallotScore is one score value attached to a detailed-encoding ballot.
type BallotScore struct {
	Ballot    string  `xml:"BALLOT" validate:"required"`
	ScoreID   string  `xml:"SCORE_ID" validate:"required"`
	Recipient *string `xml:"RECIPIENT" validate:"required"`
	Score     *string `xml:"SCORE" validate:"required"`
}

// ScoreType is one row of the tournament-local score-type table.
type ScoreType struct {
	ID   string  `xml:"ID" validate:"required"`
	Name *string `xml:"SCORE_NAME" validate:"required"`
}

// Entry is one registered team.
type Entry struct {
	ID       string  `xml:"ID" validate:"required"`
	FullName *string `xml:"FULLNAME"`
	Code     *string `xml:"CODE"`
	School   *string `xml:"SCHOOL"`
	Event    *string `xml:"EVENT"`
}

// EntryStudent is one student on an entry.
type EntryStudent struct {
	ID     string  `xml:"ID" validate:"required"`
	Entry  string  `xml:"ENTRY" validate:"required"`
	First  *string `xml:"FIRST" validate:"required"`
	Last   *string `xml:"LAST" validate:"required"`
	School *string `xml:"SCHOOL"`
}

// Judge is one registered judge.
type Judge struct {
	ID     string  `xml:"ID" validate:"required"`
	First  *string `xml:"FIRST" validate:"required"`
	Last   *string `xml:"LAST" validate:"required"`
	Rating *string `xml:"TABRATING"`
	School *string `xml:"SCHOOL"`
}

// School is one institution record.
type School struct {
	ID     string  `xml:"ID" validate:"required"`
	Name   *string `xml:"SCHOOLNAME" validate:"required"`
	Code   *string `xml:"CODE"`
	Region *string `xml:"REGION"`
}

// Room is one venue record.
type Room struct {
	ID      string  `xml:"ID" validate:"required"`
	Name    *string `xml:"ROOMNAME" validate:"required"`
	Quality *string `xml:"QUALITY" validate:"required"`
}

// RoundResult is one round under the summarized encoding. Its ballot rows
// carry fields as attributes and per-recipient scores as SCORE children.
type RoundResult struct {
	RoundName string         `xml:"RoundName,attr"`
	RoundType string         `xml:"RoundType,attr"`
	EventID   string         `xml:"EventID,attr"`
	Ballots   []ResultBallot `xml:"BALLOT"`
}

// ResultBallot is one judge's full scoresheet for a panel under the
// summarized encoding.
type ResultBallot struct {
	Panel   string        `xml:"Panel,attr"`
	JudgeID string        `xml:"JudgeID,attr"`
	RoomID  string        `xml:"RoomID,attr"`
	Scores  []ResultScore `xml:"SCORE"`
}

// ResultScore is one named score for one recipient on a summarized ballot.
type ResultScore struct {
	ScoreFor  string `xml:"ScoreFor,attr"`
	Recipient string `xml:"Recipient,attr"`
	Side      string `xml:"Side,attr"`
	Name      string `xml:"SCORE_NAME,attr"`
	Value     string `xml:",chardata"`
}

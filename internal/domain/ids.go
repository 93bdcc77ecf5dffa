package domain

// Source tables key every record with a tournament-local integer ID, so the
// same numeric ID can denote a judge in one table and a room in another.
// Output references disambiguate by prefixing the source ID with a
// single-letter entity tag.
const (
	PrefixAdjudicator = "A"
	PrefixDebate      = "D"
	PrefixDivision    = "E"
	PrefixInstitution = "I"
	PrefixSpeaker     = "S"
	PrefixTeam        = "T"
	PrefixVenue       = "V"
)

// Reserved source IDs that never denote a real entity.
const (
	// UnaffiliatedID marks people and teams without an institution.
	// It must never be emitted as an institution or referenced as one.
	UnaffiliatedID = "-1"

	// NonexistentID marks objects that do not exist, such as the opposing
	// team of a bye or the judge of a judge-less ballot.
	NonexistentID = "-99"
)

// IsSentinel reports whether a source ID is one of the reserved
// non-entity values.
func IsSentinel(id string) bool {
	return id == UnaffiliatedID || id == NonexistentID
}

// AdjudicatorRef returns the output reference for a judge source ID.
func AdjudicatorRef(id string) string { return PrefixAdjudicator + id }

// DebateRef returns the output reference for a panel source ID.
func DebateRef(id string) string { return PrefixDebate + id }

// DivisionRef returns the output reference for an event source ID.
func DivisionRef(id string) string { return PrefixDivision + id }

// InstitutionRef returns the output reference for a school source ID.
func InstitutionRef(id string) string { return PrefixInstitution + id }

// SpeakerRef returns the output reference for a student source ID.
func SpeakerRef(id string) string { return PrefixSpeaker + id }

// TeamRef returns the output reference for an entry source ID.
func TeamRef(id string) string { return PrefixTeam + id }

// VenueRef returns the output reference for a room source ID.
func VenueRef(id string) string { return PrefixVenue + id }

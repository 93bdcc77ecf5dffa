package domain

import "golang.org/x/text/cases"

// ScoreKind identifies one of the five canonical score types a tournament
// export can attach to a ballot. The set is closed: any other score-type
// name in the input is a fatal error.
type ScoreKind int

// Canonical score kinds, in the order the source enumerates them.
const (
	// KindBallot is a judge's decision on a team, encoded as a raw rank.
	KindBallot ScoreKind = iota

	// KindSpeakerPoints are per-speaker numeric points.
	KindSpeakerPoints

	// KindTeamPoints are per-team numeric points.
	KindTeamPoints

	// KindSpeakerRank is a judge's rank of a speaker.
	KindSpeakerRank

	// KindTeamRanks is a judge's rank of a team.
	KindTeamRanks

	numScoreKinds
)

// kindNames holds the score-type names as they appear in the source export.
var kindNames = [numScoreKinds]string{
	KindBallot:        "Ballot",
	KindSpeakerPoints: "Speaker Points",
	KindTeamPoints:    "Team Points",
	KindSpeakerRank:   "Speaker Rank",
	KindTeamRanks:     "Team Ranks",
}

// String returns the score-type name as it appears in the source export.
func (k ScoreKind) String() string {
	if k < 0 || k >= numScoreKinds {
		return "unknown"
	}
	return kindNames[k]
}

// foldCaser is a package-level Unicode case folder so name matching does
// not allocate a caser per lookup.
var foldCaser = cases.Fold()

// KindByName resolves a source score-type name to its canonical kind.
// Matching is case-folded; the reported name casing varies between the two
// round encodings.
func KindByName(name string) (ScoreKind, bool) {
	folded := foldCaser.String(name)
	for k, n := range kindNames {
		if foldCaser.String(n) == folded {
			return ScoreKind(k), true
		}
	}
	return 0, false
}

// KindNames returns the canonical score-type names in enumeration order.
func KindNames() []string {
	names := make([]string, numScoreKinds)
	copy(names, kindNames[:])
	return names
}

// RepKind tags how a score value is rendered on a ballot.
type RepKind int

const (
	// RepRank renders as the computed "rank" attribute. The raw value is a
	// judge's decision; the emitted rank is max_rank minus the raw value.
	RepRank RepKind = iota

	// RepNamedAttribute renders the raw value under a fixed attribute name.
	RepNamedAttribute

	// RepText renders the raw value as the ballot's element text.
	RepText
)

// Representation is the tagged variant deciding how one canonical score
// kind appears on an output ballot. It is fixed per kind and matched
// exhaustively wherever a score is rendered.
type Representation struct {
	Kind RepKind

	// Attribute is the target attribute name for RepNamedAttribute.
	Attribute string
}

// Representation returns the fixed rendering for a canonical score kind.
func (k ScoreKind) Representation() Representation {
	switch k {
	case KindBallot:
		return Representation{Kind: RepRank}
	case KindSpeakerRank, KindTeamRanks:
		return Representation{Kind: RepNamedAttribute, Attribute: "rank"}
	default:
		return Representation{Kind: RepText}
	}
}

// ScoreSchema maps a tournament's local score-type IDs to canonical kinds.
// It is built once by scanning the score-type table and is immutable
// afterwards; every component that resolves scores receives it as a
// parameter. Only the detailed round encoding materializes a schema; the
// summarized encoding names kinds literally.
type ScoreSchema struct {
	idToKind map[string]ScoreKind
	kindToID map[ScoreKind]string
	idToName map[string]string
}

// NewScoreSchema builds a schema from (name, id) score-type pairs.
// Non-canonical names are retained for diagnostics but resolve to an
// unknown kind when referenced.
func NewScoreSchema(pairs map[string]string) *ScoreSchema {
	s := &ScoreSchema{
		idToKind: make(map[string]ScoreKind, len(pairs)),
		kindToID: make(map[ScoreKind]string, numScoreKinds),
		idToName: make(map[string]string, len(pairs)),
	}
	for name, id := range pairs {
		s.idToName[id] = name
		if kind, ok := KindByName(name); ok {
			s.idToKind[id] = kind
			s.kindToID[kind] = id
		}
	}
	return s
}

// KindByID resolves a tournament-local score-type ID to its canonical kind.
func (s *ScoreSchema) KindByID(id string) (ScoreKind, bool) {
	kind, ok := s.idToKind[id]
	return kind, ok
}

// IDForKind returns the tournament-local ID a canonical kind was registered
// under. The second result is false when the tournament never defined the
// kind.
func (s *ScoreSchema) IDForKind(kind ScoreKind) (string, bool) {
	id, ok := s.kindToID[kind]
	return id, ok
}

// NameByID returns the source name of a score-type ID, canonical or not.
// Falls back to the raw ID when the type table never defined it.
func (s *ScoreSchema) NameByID(id string) string {
	if name, ok := s.idToName[id]; ok {
		return name
	}
	return id
}

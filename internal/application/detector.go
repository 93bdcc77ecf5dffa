package application

import (
	"github.com/debatekit/tabdml/internal/adapters/tabroom"
	"github.com/debatekit/tabdml/internal/domain"
)

// Encoding names the document-level round encoding of an export.
type Encoding int

const (
	// EncodingDetailed means the export carries ROUND records with
	// per-judge BALLOT and BALLOT_SCORE rows.
	EncodingDetailed Encoding = iota

	// EncodingSummarized means the export carries ROUNDRESULT records
	// with per-recipient named scores.
	EncodingSummarized
)

// String returns a short name for logging.
func (e Encoding) String() string {
	if e == EncodingSummarized {
		return "summarized"
	}
	return "detailed"
}

// Detection holds the document-wide facts decided once before any round is
// processed. It is read-only afterwards.
type Detection struct {
	Encoding Encoding

	// Style is the canonical contest style shared by every division, or
	// empty when styles are mixed, unknown, or absent.
	Style string

	// FourSides marks a tournament whose rounds involve four competing
	// sides, which changes rank arithmetic uniformly for all rounds.
	// Mixed-style tournaments are not supported; the flag is global.
	FourSides bool

	// MultiDivision reports whether more than one division exists.
	// Division references and division elements are emitted only then.
	MultiDivision bool
}

// Detect inspects the decoded export once and decides the round encoding,
// the uniform style, and the division arrangement. The two encodings are
// mutually exclusive at the document level; both or neither is fatal.
func Detect(doc *tabroom.Document, cfg Config) (Detection, error) {
	hasRounds := len(doc.Rounds) > 0
	hasResults := len(doc.RoundResults) > 0

	var det Detection
	switch {
	case hasRounds && hasResults:
		return det, &domain.FormatError{Reason: "document carries both ROUND and ROUNDRESULT tables"}
	case hasRounds:
		det.Encoding = EncodingDetailed
	case hasResults:
		det.Encoding = EncodingSummarized
	default:
		return det, &domain.FormatError{Reason: "document carries neither ROUND nor ROUNDRESULT tables"}
	}

	det.MultiDivision = len(doc.Events) > 1
	det.Style, det.FourSides = detectStyle(doc.Events, cfg)
	return det, nil
}

// detectStyle returns the canonical style only when every division names
// the same source style and that style maps to a canonical value. Mixed or
// unknown styles degrade to no style set rather than failing the run.
func detectStyle(events []tabroom.Event, cfg Config) (string, bool) {
	var uniform string
	for i := range events {
		if events[i].Style == nil {
			return "", false
		}
		s := *events[i].Style
		if i == 0 {
			uniform = s
			continue
		}
		if foldCaser.String(s) != foldCaser.String(uniform) {
			return "", false
		}
	}
	if uniform == "" {
		return "", false
	}
	mapping, ok := cfg.styleFor(uniform)
	if !ok || mapping.Canonical == "" {
		return "", false
	}
	return mapping.Canonical, mapping.FourSides
}

package application

import (
	"github.com/agnivade/levenshtein"

	"github.com/debatekit/tabdml/internal/adapters/tabroom"
	"github.com/debatekit/tabdml/internal/domain"
)

// ResolveScoreSchema scans the score-type table once and builds the
// bidirectional mapping between tournament-local score-type IDs and
// canonical kinds. Non-canonical rows are retained for diagnostics only;
// referencing one later is fatal. Only the detailed encoding materializes
// a schema.
func ResolveScoreSchema(types []tabroom.ScoreType) *domain.ScoreSchema {
	pairs := make(map[string]string, len(types))
	for i := range types {
		pairs[*types[i].Name] = types[i].ID
	}
	return domain.NewScoreSchema(pairs)
}

// unknownScoreKind builds the fatal error for a score-type name outside
// the canonical set, with the closest canonical kind attached as a
// suggestion.
func unknownScoreKind(name, table, recordID string) *domain.UnknownScoreKindError {
	return &domain.UnknownScoreKindError{
		Name:       name,
		Table:      table,
		RecordID:   recordID,
		Suggestion: closestKind(name),
	}
}

// closestKind picks the canonical kind name with the smallest Levenshtein
// distance to the offending name. Case differences are folded away before
// measuring.
func closestKind(name string) string {
	folded := foldCaser.String(name)
	best := ""
	bestDist := -1
	for _, candidate := range domain.KindNames() {
		d := levenshtein.ComputeDistance(folded, foldCaser.String(candidate))
		if bestDist < 0 || d < bestDist {
			best, bestDist = candidate, d
		}
	}
	return best
}

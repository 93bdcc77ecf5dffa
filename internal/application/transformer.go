package application

import (
	"go.uber.org/zap"

	"github.com/debatekit/tabdml/internal/adapters/tabroom"
	"github.com/debatekit/tabdml/internal/domain"
)

// fallbackTournamentName is used when the header record carries no name.
const fallbackTournamentName = "Tournament"

// Transformer performs the single transform pass from an indexed export to
// the hierarchical competition record. It holds no state across calls;
// the score schema and document-wide flags are computed per pass and
// threaded into the components that need them.
type Transformer struct {
	cfg Config
	log *zap.Logger
}

// New builds a Transformer. A nil logger disables logging.
func New(cfg Config, log *zap.Logger) *Transformer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Transformer{cfg: cfg, log: log}
}

// Transform converts one export into one tournament tree. The pass either
// succeeds completely or returns the first error; no partial tree is
// produced.
func (t *Transformer) Transform(src *tabroom.Source) (*domain.Tournament, error) {
	doc := src.Doc

	det, err := Detect(doc, t.cfg)
	if err != nil {
		return nil, err
	}
	t.log.Info("detected input format",
		zap.String("encoding", det.Encoding.String()),
		zap.String("style", det.Style),
		zap.Bool("four_sides", det.FourSides),
		zap.Bool("multi_division", det.MultiDivision),
	)

	tourn := &domain.Tournament{Style: det.Style}
	if err := t.fillHeader(tourn, doc.Tourn); err != nil {
		return nil, err
	}

	switch det.Encoding {
	case EncodingDetailed:
		schema := ResolveScoreSchema(doc.ScoreTypes)
		ra := &roundAssembler{src: src, schema: schema, cfg: t.cfg, det: det}
		if tourn.Rounds, err = ra.assemble(); err != nil {
			return nil, err
		}
	case EncodingSummarized:
		ra := &resultAssembler{cfg: t.cfg, det: det}
		if tourn.Rounds, err = ra.assemble(doc.RoundResults); err != nil {
			return nil, err
		}
	}

	if tourn.Teams, err = buildTeams(src, det, t.cfg); err != nil {
		return nil, err
	}
	tourn.Adjudicators = buildAdjudicators(src)
	tourn.Institutions = buildInstitutions(src)
	tourn.Venues = buildVenues(src)
	if tourn.Divisions, err = buildDivisions(src, det); err != nil {
		return nil, err
	}

	t.log.Info("assembled tournament",
		zap.String("name", tourn.Name),
		zap.Int("rounds", len(tourn.Rounds)),
		zap.Int("teams", len(tourn.Teams)),
		zap.Int("adjudicators", len(tourn.Adjudicators)),
		zap.Int("institutions", len(tourn.Institutions)),
		zap.Int("venues", len(tourn.Venues)),
		zap.Int("divisions", len(tourn.Divisions)),
	)
	return tourn, nil
}

// fillHeader sets the tournament attributes from the header record.
func (t *Transformer) fillHeader(tourn *domain.Tournament, header *tabroom.Tourn) error {
	tourn.Name = header.Name
	if tourn.Name == "" {
		tourn.Name = fallbackTournamentName
	}
	if header.StartDate != nil {
		start, err := tabroom.ParseDateTime(*header.StartDate, true, false)
		if err != nil {
			return &domain.TimestampError{Table: "TOURN", RecordID: tourn.Name, Value: *header.StartDate, Err: err}
		}
		tourn.StartDate = start
	}
	if header.EndDate != nil {
		end, err := tabroom.ParseDateTime(*header.EndDate, true, false)
		if err != nil {
			return &domain.TimestampError{Table: "TOURN", RecordID: tourn.Name, Value: *header.EndDate, Err: err}
		}
		tourn.EndDate = end
	}
	return nil
}

package application

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/debatekit/tabdml/internal/adapters/tabroom"
	"github.com/debatekit/tabdml/internal/domain"
)

// roundAssembler reconstructs rounds, debates, sides, byes, and per-judge
// ballots from the detailed encoding: ROUND records with PANEL, BALLOT,
// and BALLOT_SCORE rows.
type roundAssembler struct {
	src    *tabroom.Source
	schema *domain.ScoreSchema
	cfg    Config
	det    Detection
}

func (a *roundAssembler) assemble() ([]domain.Round, error) {
	source := a.src.Doc.Rounds
	rounds := make([]domain.Round, 0, len(source))
	for i := range source {
		round, err := a.assembleRound(&source[i])
		if err != nil {
			return nil, err
		}
		rounds = append(rounds, round)
	}
	return rounds, nil
}

func (a *roundAssembler) assembleRound(r *tabroom.Round) (domain.Round, error) {
	stage, err := strconv.Atoi(strings.TrimSpace(*r.Stage))
	if err != nil {
		return domain.Round{}, fmt.Errorf("ROUND record %s: RD_NAME %q is not numeric", r.ID, *r.Stage)
	}
	round := domain.Round{
		Name:        *r.Label,
		Elimination: stage > a.cfg.EliminationCutoff,
	}
	if a.det.MultiDivision && r.Event != nil {
		round.Division = domain.DivisionRef(*r.Event)
	}
	if r.Timeslot != nil {
		// A dangling timeslot reference is tolerated; a referenced slot
		// without a start time is not.
		if ts, ok := a.src.TimeslotByID(*r.Timeslot); ok {
			if ts.Start == nil {
				return domain.Round{}, &domain.MissingFieldError{Table: "TIMESLOT", RecordID: ts.ID, Field: "START"}
			}
			start, err := tabroom.ParseDateTime(*ts.Start, true, true)
			if err != nil {
				return domain.Round{}, &domain.TimestampError{Table: "TIMESLOT", RecordID: ts.ID, Value: *ts.Start, Err: err}
			}
			round.Start = start
		}
	}

	for _, panel := range a.src.PanelsForRound(r.ID) {
		items, err := a.assemblePanel(panel)
		if err != nil {
			return domain.Round{}, err
		}
		round.Items = append(round.Items, items...)
	}
	return round, nil
}

// assemblePanel turns one panel into either a debate or a set of byes.
// A panel is a bye when its bye flag is set or when any recorded opponent
// is the nonexistent sentinel.
func (a *roundAssembler) assemblePanel(p *tabroom.Panel) ([]domain.RoundItem, error) {
	rows := a.src.BallotsForPanel(p.ID)

	sentinelOpponent := false
	for _, row := range rows {
		if *row.Entry == domain.NonexistentID {
			sentinelOpponent = true
			break
		}
	}
	if (p.Bye != nil && *p.Bye != "0") || sentinelOpponent {
		return a.assembleByes(rows), nil
	}
	debate, err := a.assembleDebate(p, rows)
	if err != nil {
		return nil, err
	}
	return []domain.RoundItem{debate}, nil
}

// assembleByes emits one bye per distinct real team on the panel, in
// first-seen order.
func (a *roundAssembler) assembleByes(rows []*tabroom.Ballot) []domain.RoundItem {
	var items []domain.RoundItem
	seen := make(map[string]bool)
	for _, row := range rows {
		entry := *row.Entry
		if domain.IsSentinel(entry) || seen[entry] {
			continue
		}
		seen[entry] = true
		items = append(items, &domain.Bye{Team: domain.TeamRef(entry)})
	}
	return items
}

func (a *roundAssembler) assembleDebate(p *tabroom.Panel, rows []*tabroom.Ballot) (*domain.Debate, error) {
	debate := &domain.Debate{ID: domain.DebateRef(p.ID)}

	// Union of judges across the panel's ballot rows. A sentinel judge
	// signals an incomplete panel; the adjudicators attribute is then
	// suppressed entirely rather than partially reported.
	judges := make([]string, 0, len(rows))
	seenJudge := make(map[string]bool)
	sentinelJudge := false
	for _, row := range rows {
		j := *row.Judge
		if j == domain.NonexistentID {
			sentinelJudge = true
			continue
		}
		if !seenJudge[j] {
			seenJudge[j] = true
			judges = append(judges, domain.AdjudicatorRef(j))
		}
	}
	if !sentinelJudge {
		sortRefs(judges)
		debate.Adjudicators = judges
	}

	if p.Room == nil {
		return nil, &domain.MissingFieldError{Table: "PANEL", RecordID: p.ID, Field: "ROOM"}
	}
	if !domain.IsSentinel(*p.Room) {
		debate.Venue = domain.VenueRef(*p.Room)
	}

	ordered := make([]*tabroom.Ballot, len(rows))
	copy(ordered, rows)
	var sortErr error
	sort.SliceStable(ordered, func(i, j int) bool {
		si, err := strconv.Atoi(strings.TrimSpace(*ordered[i].Side))
		if err != nil && sortErr == nil {
			sortErr = fmt.Errorf("BALLOT record %s: SIDE %q is not numeric", ordered[i].ID, *ordered[i].Side)
		}
		sj, err := strconv.Atoi(strings.TrimSpace(*ordered[j].Side))
		if err != nil && sortErr == nil {
			sortErr = fmt.Errorf("BALLOT record %s: SIDE %q is not numeric", ordered[j].ID, *ordered[j].Side)
		}
		return si < sj
	})
	if sortErr != nil {
		return nil, sortErr
	}

	// A team appears once per judge across the ballot rows; only its first
	// occurrence creates the side. The remaining rows feed aggregation.
	seenEntry := make(map[string]bool)
	for _, row := range ordered {
		entry := *row.Entry
		if seenEntry[entry] {
			continue
		}
		seenEntry[entry] = true
		side, err := a.aggregateSide(rows, entry)
		if err != nil {
			return nil, err
		}
		debate.Sides = append(debate.Sides, side)
	}
	return debate, nil
}

// aggregateSide merges every judge's assessment of one side into one
// ballot per judge, and folds the judges' speaker-directed score rows into
// speeches with one ballot per (speech, judge) pair.
func (a *roundAssembler) aggregateSide(rows []*tabroom.Ballot, entryID string) (domain.Side, error) {
	side := domain.Side{Team: domain.TeamRef(entryID)}

	ballotKindID, hasBallotKind := a.schema.IDForKind(domain.KindBallot)
	pointsKindID, hasPointsKind := a.schema.IDForKind(domain.KindSpeakerPoints)

	speakers := newSpeakerAggregation()

	for _, row := range rows {
		if *row.Entry != entryID {
			continue
		}
		scores := a.src.ScoresForBallot(row.ID)

		var decision *tabroom.BallotScore
		total := 0.0
		for _, sc := range scores {
			if hasBallotKind && sc.ScoreID == ballotKindID && decision == nil {
				decision = sc
			}
			if hasPointsKind && sc.ScoreID == pointsKindID {
				v, err := strconv.ParseFloat(strings.TrimSpace(*sc.Score), 64)
				if err != nil {
					return side, fmt.Errorf("BALLOT_SCORE for ballot %s: SCORE %q is not numeric", row.ID, *sc.Score)
				}
				total += v
			}
		}

		ballot := domain.Ballot{}
		adjRef := ""
		if *row.Judge != domain.NonexistentID {
			adjRef = domain.AdjudicatorRef(*row.Judge)
			ballot.Adjudicator = adjRef
		}
		if decision != nil {
			raw, err := strconv.Atoi(strings.TrimSpace(*decision.Score))
			if err != nil {
				return side, fmt.Errorf("BALLOT_SCORE for ballot %s: decision SCORE %q is not numeric", row.ID, *decision.Score)
			}
			ballot.Rank = strconv.Itoa(a.maxRank() - raw)
		}
		if total > 0 {
			ballot.Text = strconv.FormatFloat(total, 'f', 1, 64)
		}
		side.Ballots = append(side.Ballots, ballot)

		// Score rows not aimed at the side's own team target individual
		// speakers; they group by (recipient, judge).
		for _, sc := range scores {
			recipient := *sc.Recipient
			if recipient == entryID {
				continue
			}
			speakers.add(recipient, adjRef, sc.ScoreID, *sc.Score)
		}
	}

	for _, recipient := range speakers.order {
		speech := domain.Speech{Speaker: domain.SpeakerRef(recipient)}
		byJudge := speakers.perRecipient[recipient]
		for _, adjRef := range byJudge.order {
			ballot := domain.Ballot{Adjudicator: adjRef}
			merged := byJudge.perJudge[adjRef]
			for _, scoreID := range merged.order {
				value := merged.values[scoreID]
				kind, ok := a.schema.KindByID(scoreID)
				if !ok {
					return side, unknownScoreKind(a.schema.NameByID(scoreID), "SCORES", scoreID)
				}
				applyRaw(&ballot, kind, value)
			}
			speech.Ballots = append(speech.Ballots, ballot)
		}
		side.Speeches = append(side.Speeches, speech)
	}
	return side, nil
}

// maxRank is the rank base for decision scores under the detailed
// encoding: four in parliamentary-format tournaments, two otherwise.
func (a *roundAssembler) maxRank() int {
	if a.det.FourSides {
		return 4
	}
	return 2
}

// applyRaw renders one raw score value onto a ballot according to the
// kind's fixed representation. Decision and rank kinds both target the
// rank attribute with the raw value here; decision arithmetic only applies
// where a side-level rank is computed.
func applyRaw(ballot *domain.Ballot, kind domain.ScoreKind, value string) {
	rep := kind.Representation()
	switch rep.Kind {
	case domain.RepRank:
		ballot.Rank = value
	case domain.RepNamedAttribute:
		if rep.Attribute == "rank" {
			ballot.Rank = value
		}
	case domain.RepText:
		ballot.Text = value
	}
}

// speakerAggregation groups speaker-directed score rows by recipient, then
// by judge, then by score type, preserving first-seen order at every level
// and letting later duplicates of a score type overwrite earlier ones.
type speakerAggregation struct {
	order        []string
	perRecipient map[string]*judgeAggregation
}

type judgeAggregation struct {
	order    []string
	perJudge map[string]*mergedScores
}

type mergedScores struct {
	order  []string
	values map[string]string
}

func newSpeakerAggregation() *speakerAggregation {
	return &speakerAggregation{perRecipient: make(map[string]*judgeAggregation)}
}

func (s *speakerAggregation) add(recipient, judge, scoreID, value string) {
	byJudge, ok := s.perRecipient[recipient]
	if !ok {
		byJudge = &judgeAggregation{perJudge: make(map[string]*mergedScores)}
		s.perRecipient[recipient] = byJudge
		s.order = append(s.order, recipient)
	}
	merged, ok := byJudge.perJudge[judge]
	if !ok {
		merged = &mergedScores{values: make(map[string]string)}
		byJudge.perJudge[judge] = merged
		byJudge.order = append(byJudge.order, judge)
	}
	if _, ok := merged.values[scoreID]; !ok {
		merged.order = append(merged.order, scoreID)
	}
	merged.values[scoreID] = value
}

// sortRefs orders prefixed references by their numeric source ID so joined
// reference lists are deterministic.
func sortRefs(refs []string) {
	sort.SliceStable(refs, func(i, j int) bool {
		ni, erri := strconv.Atoi(refs[i][1:])
		nj, errj := strconv.Atoi(refs[j][1:])
		if erri != nil || errj != nil {
			return refs[i] < refs[j]
		}
		return ni < nj
	})
}

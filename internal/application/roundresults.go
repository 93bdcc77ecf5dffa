package application

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/debatekit/tabdml/internal/adapters/tabroom"
	"github.com/debatekit/tabdml/internal/domain"
)

// resultAssembler reconstructs rounds from the summarized encoding:
// ROUNDRESULT records whose ballot rows carry one judge's full scoresheet
// with per-recipient named scores.
type resultAssembler struct {
	cfg Config
	det Detection
}

func (a *resultAssembler) assemble(results []tabroom.RoundResult) ([]domain.Round, error) {
	rounds := make([]domain.Round, 0, len(results))
	for i := range results {
		round, err := a.assembleRound(&results[i])
		if err != nil {
			return nil, err
		}
		rounds = append(rounds, round)
	}
	return rounds, nil
}

func (a *resultAssembler) assembleRound(rr *tabroom.RoundResult) (domain.Round, error) {
	if rr.RoundName == "" {
		return domain.Round{}, &domain.MissingFieldError{Table: "ROUNDRESULT", RecordID: "(unnamed)", Field: "RoundName"}
	}
	round := domain.Round{
		Name:        rr.RoundName,
		Elimination: rr.RoundType == "Elim",
	}
	if a.det.MultiDivision {
		if rr.EventID == "" {
			return domain.Round{}, &domain.MissingFieldError{Table: "ROUNDRESULT", RecordID: rr.RoundName, Field: "EventID"}
		}
		round.Division = domain.DivisionRef(rr.EventID)
	}

	// Group ballot rows by panel explicitly, in first-seen order. The
	// upstream format arranges rows contiguously by panel, but nothing
	// here relies on that.
	var panelOrder []string
	groups := make(map[string][]*tabroom.ResultBallot)
	for i := range rr.Ballots {
		b := &rr.Ballots[i]
		if b.Panel == "" {
			return domain.Round{}, &domain.MissingFieldError{Table: "ROUNDRESULT", RecordID: rr.RoundName, Field: "Panel"}
		}
		if _, ok := groups[b.Panel]; !ok {
			panelOrder = append(panelOrder, b.Panel)
		}
		groups[b.Panel] = append(groups[b.Panel], b)
	}

	for _, panelID := range panelOrder {
		items, err := a.assemblePanel(rr, panelID, groups[panelID])
		if err != nil {
			return domain.Round{}, err
		}
		round.Items = append(round.Items, items...)
	}
	return round, nil
}

// assemblePanel turns one panel's rows into a debate, or into byes when
// the leading row carries the sentinel judge. Every panel of the round is
// processed; a bye panel does not end the round.
func (a *resultAssembler) assemblePanel(rr *tabroom.RoundResult, panelID string, rows []*tabroom.ResultBallot) ([]domain.RoundItem, error) {
	first := rows[0]

	if first.JudgeID == domain.NonexistentID {
		var items []domain.RoundItem
		for _, sc := range first.Scores {
			if sc.ScoreFor != "Team" || domain.IsSentinel(sc.Recipient) {
				continue
			}
			items = append(items, &domain.Bye{Team: domain.TeamRef(sc.Recipient)})
		}
		return items, nil
	}

	debate := &domain.Debate{ID: domain.DebateRef(panelID), Adjudicators: []string{}}
	seenJudge := make(map[string]bool)
	for _, row := range rows {
		j := row.JudgeID
		if j == "" || j == domain.NonexistentID || seenJudge[j] {
			continue
		}
		seenJudge[j] = true
		debate.Adjudicators = append(debate.Adjudicators, domain.AdjudicatorRef(j))
	}
	sortRefs(debate.Adjudicators)
	if first.RoomID != "" && !domain.IsSentinel(first.RoomID) {
		debate.Venue = domain.VenueRef(first.RoomID)
	}

	// Sides come from the leading row's team scores, ordered by side
	// number.
	teamScores := make([]*tabroom.ResultScore, 0, len(first.Scores))
	for i := range first.Scores {
		if first.Scores[i].ScoreFor == "Team" {
			teamScores = append(teamScores, &first.Scores[i])
		}
	}
	var sortErr error
	sort.SliceStable(teamScores, func(i, j int) bool {
		si, err := sideNumber(teamScores[i].Side)
		if err != nil && sortErr == nil {
			sortErr = fmt.Errorf("ROUNDRESULT %s panel %s: Side %q is not numeric", rr.RoundName, panelID, teamScores[i].Side)
		}
		sj, err := sideNumber(teamScores[j].Side)
		if err != nil && sortErr == nil {
			sortErr = fmt.Errorf("ROUNDRESULT %s panel %s: Side %q is not numeric", rr.RoundName, panelID, teamScores[j].Side)
		}
		return si < sj
	})
	if sortErr != nil {
		return nil, sortErr
	}

	sideIdx := make(map[string]int, len(teamScores))
	var sideOrder []string
	for _, sc := range teamScores {
		debate.Sides = append(debate.Sides, domain.Side{Team: domain.TeamRef(sc.Recipient)})
		if _, ok := sideIdx[sc.Recipient]; !ok {
			sideOrder = append(sideOrder, sc.Recipient)
		}
		sideIdx[sc.Recipient] = len(debate.Sides) - 1
	}

	// Speeches come from scanning the leading row's full score list in
	// order, tracking the current team as team-scoped rows pass.
	var speakerOrder []string
	speechIdx := make(map[string][2]int)
	currentTeam := ""
	for i := range first.Scores {
		sc := &first.Scores[i]
		if sc.ScoreFor == "Team" {
			currentTeam = sc.Recipient
			continue
		}
		if _, ok := speechIdx[sc.Recipient]; ok {
			continue
		}
		idx, ok := sideIdx[currentTeam]
		if !ok {
			return nil, fmt.Errorf("ROUNDRESULT %s panel %s: speaker score for %s precedes any team score", rr.RoundName, panelID, sc.Recipient)
		}
		side := &debate.Sides[idx]
		side.Speeches = append(side.Speeches, domain.Speech{Speaker: domain.SpeakerRef(sc.Recipient)})
		speechIdx[sc.Recipient] = [2]int{idx, len(side.Speeches) - 1}
		speakerOrder = append(speakerOrder, sc.Recipient)
	}

	// One merged ballot per (entity, judge). The rank base for decision
	// scores is the number of sides in this debate.
	maxRank := len(sideIdx)
	for _, row := range rows {
		adjRef := ""
		if row.JudgeID != "" && row.JudgeID != domain.NonexistentID {
			adjRef = domain.AdjudicatorRef(row.JudgeID)
		}
		for _, recipient := range sideOrder {
			ballot, err := a.mergeBallot(rr, panelID, row, recipient, adjRef, maxRank)
			if err != nil {
				return nil, err
			}
			side := &debate.Sides[sideIdx[recipient]]
			side.Ballots = append(side.Ballots, ballot)
		}
		for _, speaker := range speakerOrder {
			ballot, err := a.mergeBallot(rr, panelID, row, speaker, adjRef, maxRank)
			if err != nil {
				return nil, err
			}
			pos := speechIdx[speaker]
			speech := &debate.Sides[pos[0]].Speeches[pos[1]]
			speech.Ballots = append(speech.Ballots, ballot)
		}
	}
	return []domain.RoundItem{debate}, nil
}

// mergeBallot folds every score a judge's row holds for one recipient into
// a single ballot.
func (a *resultAssembler) mergeBallot(rr *tabroom.RoundResult, panelID string, row *tabroom.ResultBallot, recipient, adjRef string, maxRank int) (domain.Ballot, error) {
	merged := mergedScores{values: make(map[string]string)}
	for i := range row.Scores {
		sc := &row.Scores[i]
		if sc.Recipient != recipient {
			continue
		}
		if _, ok := merged.values[sc.Name]; !ok {
			merged.order = append(merged.order, sc.Name)
		}
		merged.values[sc.Name] = sc.Value
	}

	ballot := domain.Ballot{Adjudicator: adjRef}
	for _, name := range merged.order {
		value := merged.values[name]
		kind, ok := domain.KindByName(name)
		if !ok {
			return ballot, unknownScoreKind(name, "ROUNDRESULT", rr.RoundName+"/"+panelID)
		}
		rep := kind.Representation()
		switch rep.Kind {
		case domain.RepRank:
			raw, err := strconv.Atoi(strings.TrimSpace(value))
			if err != nil {
				return ballot, fmt.Errorf("ROUNDRESULT %s panel %s: decision score %q is not numeric", rr.RoundName, panelID, value)
			}
			ballot.Rank = strconv.Itoa(maxRank - raw)
		case domain.RepNamedAttribute:
			if rep.Attribute == "rank" {
				ballot.Rank = value
			}
		case domain.RepText:
			ballot.Text = value
		}
	}
	return ballot, nil
}

// sideNumber parses a side attribute, defaulting to zero when absent.
func sideNumber(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(strings.TrimSpace(s))
}

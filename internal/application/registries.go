package application

import (
	"github.com/debatekit/tabdml/internal/adapters/tabroom"
	"github.com/debatekit/tabdml/internal/domain"
)

// buildTeams produces one team per entry record. Display names fall back
// from the full name to the short code to the configured placeholder.
func buildTeams(src *tabroom.Source, det Detection, cfg Config) ([]domain.Team, error) {
	entries := src.Doc.Entries
	teams := make([]domain.Team, 0, len(entries))
	for i := range entries {
		e := &entries[i]
		team := domain.Team{ID: domain.TeamRef(e.ID)}

		switch {
		case e.FullName != nil:
			team.Name = *e.FullName
		case e.Code != nil:
			team.Name = *e.Code
		default:
			team.Name = cfg.UnknownTeamName
		}
		if e.Code != nil {
			team.Code = *e.Code
		}
		if det.MultiDivision {
			if e.Event == nil {
				return nil, &domain.MissingFieldError{Table: "ENTRY", RecordID: e.ID, Field: "EVENT"}
			}
			team.Division = domain.DivisionRef(*e.Event)
		}

		teamInst := ""
		if e.School != nil && !domain.IsSentinel(*e.School) {
			teamInst = domain.InstitutionRef(*e.School)
		}
		for _, st := range src.StudentsForEntry(e.ID) {
			team.Speakers = append(team.Speakers, domain.Speaker{
				ID:           domain.SpeakerRef(st.ID),
				Name:         *st.First + " " + *st.Last,
				Institutions: mergeInstitutions(teamInst, st.School),
			})
		}
		teams = append(teams, team)
	}
	return teams, nil
}

// mergeInstitutions applies the affiliation-merge rule for one speaker:
// when the team's institution and the speaker's own both exist and differ,
// both are listed with the team's first; a single existing value is listed
// alone; equal or absent values collapse.
func mergeInstitutions(teamInst string, school *string) []string {
	ownInst := ""
	if school != nil && !domain.IsSentinel(*school) {
		ownInst = domain.InstitutionRef(*school)
	}
	switch {
	case ownInst != "" && teamInst == "":
		return []string{ownInst}
	case ownInst != "" && ownInst != teamInst:
		return []string{teamInst, ownInst}
	case ownInst != "":
		return []string{teamInst}
	case teamInst != "":
		return []string{teamInst}
	}
	return nil
}

// buildAdjudicators produces one adjudicator per judge record.
func buildAdjudicators(src *tabroom.Source) []domain.Adjudicator {
	judges := src.Doc.Judges
	adjs := make([]domain.Adjudicator, 0, len(judges))
	for i := range judges {
		j := &judges[i]
		adj := domain.Adjudicator{
			ID:   domain.AdjudicatorRef(j.ID),
			Name: *j.First + " " + *j.Last,
		}
		if j.Rating != nil && *j.Rating != "" {
			adj.Rating = *j.Rating
		}
		if j.School != nil && !domain.IsSentinel(*j.School) {
			adj.Institution = domain.InstitutionRef(*j.School)
		}
		adjs = append(adjs, adj)
	}
	return adjs
}

// buildInstitutions produces one institution per school record, filtering
// the unaffiliated sentinel.
func buildInstitutions(src *tabroom.Source) []domain.Institution {
	schools := src.Doc.Schools
	insts := make([]domain.Institution, 0, len(schools))
	for i := range schools {
		s := &schools[i]
		if domain.IsSentinel(s.ID) {
			continue
		}
		inst := domain.Institution{
			ID:   domain.InstitutionRef(s.ID),
			Name: *s.Name,
		}
		if s.Code != nil && *s.Code != "" {
			inst.Code = *s.Code
		}
		if s.Region != nil && *s.Region != "" {
			inst.Region = *s.Region
		}
		insts = append(insts, inst)
	}
	return insts
}

// buildVenues produces one venue per room record.
func buildVenues(src *tabroom.Source) []domain.Venue {
	rooms := src.Doc.Rooms
	venues := make([]domain.Venue, 0, len(rooms))
	for i := range rooms {
		r := &rooms[i]
		venues = append(venues, domain.Venue{
			ID:    domain.VenueRef(r.ID),
			Name:  *r.Name,
			Score: *r.Quality,
		})
	}
	return venues
}

// buildDivisions produces one division per event record, but only when the
// tournament has more than one division.
func buildDivisions(src *tabroom.Source, det Detection) ([]domain.Division, error) {
	if !det.MultiDivision {
		return nil, nil
	}
	events := src.Doc.Events
	divs := make([]domain.Division, 0, len(events))
	for i := range events {
		e := &events[i]
		if e.Name == nil {
			return nil, &domain.MissingFieldError{Table: "EVENT", RecordID: e.ID, Field: "EVENTNAME"}
		}
		divs = append(divs, domain.Division{
			ID:   domain.DivisionRef(e.ID),
			Name: *e.Name,
		})
	}
	return divs, nil
}

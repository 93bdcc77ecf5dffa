package tabroom

// Source wraps a decoded document with hash indices over every foreign-key
// relation the transform joins on. Each index is built once, giving the
// transform constant-time lookups and an overall linear pass instead of a
// table scan at every join point.
type Source struct {
	Doc *Document

	panelsByRound   map[string][]*Panel
	ballotsByPanel  map[string][]*Ballot
	scoresByBallot  map[string][]*BallotScore
	studentsByEntry map[string][]*EntryStudent
	timeslotByID    map[string]*Timeslot
}

// NewSource indexes a decoded document. The document is not copied and
// must not be mutated afterwards.
func NewSource(doc *Document) *Source {
	s := &Source{
		Doc:             doc,
		panelsByRound:   make(map[string][]*Panel),
		ballotsByPanel:  make(map[string][]*Ballot),
		scoresByBallot:  make(map[string][]*BallotScore),
		studentsByEntry: make(map[string][]*EntryStudent),
		timeslotByID:    make(map[string]*Timeslot, len(doc.Timeslots)),
	}
	for i := range doc.Panels {
		p := &doc.Panels[i]
		s.panelsByRound[p.Round] = append(s.panelsByRound[p.Round], p)
	}
	for i := range doc.Ballots {
		b := &doc.Ballots[i]
		s.ballotsByPanel[b.Panel] = append(s.ballotsByPanel[b.Panel], b)
	}
	for i := range doc.BallotScores {
		sc := &doc.BallotScores[i]
		s.scoresByBallot[sc.Ballot] = append(s.scoresByBallot[sc.Ballot], sc)
	}
	for i := range doc.EntryStudents {
		st := &doc.EntryStudents[i]
		s.studentsByEntry[st.Entry] = append(s.studentsByEntry[st.Entry], st)
	}
	for i := range doc.Timeslots {
		t := &doc.Timeslots[i]
		s.timeslotByID[t.ID] = t
	}
	return s
}

// PanelsForRound returns a round's panels in document order.
func (s *Source) PanelsForRound(roundID string) []*Panel {
	return s.panelsByRound[roundID]
}

// BallotsForPanel returns a panel's ballot rows in document order.
func (s *Source) BallotsForPanel(panelID string) []*Ballot {
	return s.ballotsByPanel[panelID]
}

// ScoresForBallot returns a ballot's score rows in document order.
func (s *Source) ScoresForBallot(ballotID string) []*BallotScore {
	return s.scoresByBallot[ballotID]
}

// StudentsForEntry returns an entry's students in document order.
func (s *Source) StudentsForEntry(entryID string) []*EntryStudent {
	return s.studentsByEntry[entryID]
}

// TimeslotByID looks up a timeslot record.
func (s *Source) TimeslotByID(id string) (*Timeslot, bool) {
	t, ok := s.timeslotByID[id]
	return t, ok
}

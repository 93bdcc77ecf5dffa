package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/debatekit/tabdml/internal/domain"
)

// assembleSummarized runs the summarized-encoding assembler over an export.
func assembleSummarized(t *testing.T, input string, cfg Config) ([]domain.Round, error) {
	t.Helper()
	src := mustSource(t, input)
	det, err := Detect(src.Doc, cfg)
	require.NoError(t, err)
	require.Equal(t, EncodingSummarized, det.Encoding)
	ra := &resultAssembler{cfg: cfg, det: det}
	return ra.assemble(src.Doc.RoundResults)
}

const summarizedTwoTeams = `<X><TOURN TOURNNAME="t"/>
<ROUNDRESULT RoundName="Round 1" RoundType="Prelim">
<BALLOT Panel="10" JudgeID="5" RoomID="3">
<SCORE ScoreFor="Team" Recipient="1" Side="1" SCORE_NAME="Ballot">1</SCORE>
<SCORE ScoreFor="Speaker" Recipient="50" SCORE_NAME="Speaker Points">27.5</SCORE>
<SCORE ScoreFor="Speaker" Recipient="50" SCORE_NAME="Speaker Rank">1</SCORE>
<SCORE ScoreFor="Team" Recipient="2" Side="2" SCORE_NAME="Ballot">0</SCORE>
<SCORE ScoreFor="Speaker" Recipient="51" SCORE_NAME="Speaker Points">26.0</SCORE>
</BALLOT>
</ROUNDRESULT>
</X>`

func TestSummarizedTwoTeamRound(t *testing.T) {
	rounds, err := assembleSummarized(t, summarizedTwoTeams, DefaultConfig())
	require.NoError(t, err)
	require.Len(t, rounds, 1)

	round := rounds[0]
	assert.Equal(t, "Round 1", round.Name)
	assert.False(t, round.Elimination)

	require.Len(t, round.Items, 1)
	debate, ok := round.Items[0].(*domain.Debate)
	require.True(t, ok)
	assert.Equal(t, "D10", debate.ID)
	assert.Equal(t, []string{"A5"}, debate.Adjudicators)
	assert.Equal(t, "V3", debate.Venue)

	require.Len(t, debate.Sides, 2)
	first, second := debate.Sides[0], debate.Sides[1]
	assert.Equal(t, "T1", first.Team)
	assert.Equal(t, "T2", second.Team)

	// Rank base is the number of sides.
	require.Len(t, first.Ballots, 1)
	assert.Equal(t, "1", first.Ballots[0].Rank, "rank = 2 - 1")
	assert.Equal(t, "A5", first.Ballots[0].Adjudicator)
	require.Len(t, second.Ballots, 1)
	assert.Equal(t, "2", second.Ballots[0].Rank, "rank = 2 - 0")

	// Speakers attach to the team whose score preceded them.
	require.Len(t, first.Speeches, 1)
	assert.Equal(t, "S50", first.Speeches[0].Speaker)
	require.Len(t, first.Speeches[0].Ballots, 1)
	assert.Equal(t, "27.5", first.Speeches[0].Ballots[0].Text)
	assert.Equal(t, "1", first.Speeches[0].Ballots[0].Rank)

	require.Len(t, second.Speeches, 1)
	assert.Equal(t, "S51", second.Speeches[0].Speaker)
	assert.Equal(t, "26.0", second.Speeches[0].Ballots[0].Text)
}

func TestSummarizedRankBaseIsSideCount(t *testing.T) {
	input := `<X><TOURN TOURNNAME="t"/>
<ROUNDRESULT RoundName="Round 1">
<BALLOT Panel="10" JudgeID="5" RoomID="3">
<SCORE ScoreFor="Team" Recipient="1" Side="1" SCORE_NAME="Ballot">3</SCORE>
<SCORE ScoreFor="Team" Recipient="2" Side="2" SCORE_NAME="Ballot">2</SCORE>
<SCORE ScoreFor="Team" Recipient="3" Side="3" SCORE_NAME="Ballot">1</SCORE>
<SCORE ScoreFor="Team" Recipient="4" Side="4" SCORE_NAME="Ballot">0</SCORE>
</BALLOT>
</ROUNDRESULT>
</X>`

	rounds, err := assembleSummarized(t, input, DefaultConfig())
	require.NoError(t, err)
	debate := rounds[0].Items[0].(*domain.Debate)
	require.Len(t, debate.Sides, 4)
	for i, want := range []string{"1", "2", "3", "4"} {
		assert.Equal(t, want, debate.Sides[i].Ballots[0].Rank)
	}
}

func TestSummarizedByePanelDoesNotEndRound(t *testing.T) {
	input := `<X><TOURN TOURNNAME="t"/>
<ROUNDRESULT RoundName="Round 1">
<BALLOT Panel="10" JudgeID="-99" RoomID="-99">
<SCORE ScoreFor="Team" Recipient="7" Side="1" SCORE_NAME="Ballot">1</SCORE>
<SCORE ScoreFor="Team" Recipient="-99" Side="2" SCORE_NAME="Ballot">0</SCORE>
<SCORE ScoreFor="Speaker" Recipient="50" SCORE_NAME="Speaker Points">0</SCORE>
</BALLOT>
<BALLOT Panel="11" JudgeID="5" RoomID="3">
<SCORE ScoreFor="Team" Recipient="1" Side="1" SCORE_NAME="Ballot">1</SCORE>
<SCORE ScoreFor="Team" Recipient="2" Side="2" SCORE_NAME="Ballot">0</SCORE>
</BALLOT>
</ROUNDRESULT>
</X>`

	rounds, err := assembleSummarized(t, input, DefaultConfig())
	require.NoError(t, err)
	round := rounds[0]
	require.Len(t, round.Items, 2)

	bye, ok := round.Items[0].(*domain.Bye)
	require.True(t, ok)
	assert.Equal(t, "T7", bye.Team, "sentinel recipients are not byes")

	debate, ok := round.Items[1].(*domain.Debate)
	require.True(t, ok, "panels after a bye are still processed")
	assert.Equal(t, "D11", debate.ID)
}

func TestSummarizedSentinelJudgeExcluded(t *testing.T) {
	input := `<X><TOURN TOURNNAME="t"/>
<ROUNDRESULT RoundName="Round 1">
<BALLOT Panel="10" JudgeID="6" RoomID="3">
<SCORE ScoreFor="Team" Recipient="1" Side="1" SCORE_NAME="Ballot">1</SCORE>
<SCORE ScoreFor="Team" Recipient="2" Side="2" SCORE_NAME="Ballot">0</SCORE>
</BALLOT>
<BALLOT Panel="10" JudgeID="-99" RoomID="3">
<SCORE ScoreFor="Team" Recipient="1" Side="1" SCORE_NAME="Ballot">0</SCORE>
<SCORE ScoreFor="Team" Recipient="2" Side="2" SCORE_NAME="Ballot">1</SCORE>
</BALLOT>
<BALLOT Panel="10" JudgeID="5" RoomID="3">
<SCORE ScoreFor="Team" Recipient="1" Side="1" SCORE_NAME="Ballot">1</SCORE>
<SCORE ScoreFor="Team" Recipient="2" Side="2" SCORE_NAME="Ballot">0</SCORE>
</BALLOT>
</ROUNDRESULT>
</X>`

	rounds, err := assembleSummarized(t, input, DefaultConfig())
	require.NoError(t, err)
	debate := rounds[0].Items[0].(*domain.Debate)

	assert.Equal(t, []string{"A5", "A6"}, debate.Adjudicators, "sentinel filtered, refs ordered by numeric ID")

	// The sentinel judge's row still yields side ballots, unattributed.
	require.Len(t, debate.Sides[0].Ballots, 3)
	assert.Equal(t, "A6", debate.Sides[0].Ballots[0].Adjudicator)
	assert.Empty(t, debate.Sides[0].Ballots[1].Adjudicator)
	assert.Equal(t, "A5", debate.Sides[0].Ballots[2].Adjudicator)
}

func TestSummarizedSpeakerBeforeTeamFatal(t *testing.T) {
	input := `<X><TOURN TOURNNAME="t"/>
<ROUNDRESULT RoundName="Round 1">
<BALLOT Panel="10" JudgeID="5" RoomID="3">
<SCORE ScoreFor="Speaker" Recipient="50" SCORE_NAME="Speaker Points">27.5</SCORE>
<SCORE ScoreFor="Team" Recipient="1" Side="1" SCORE_NAME="Ballot">1</SCORE>
</BALLOT>
</ROUNDRESULT>
</X>`

	_, err := assembleSummarized(t, input, DefaultConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "precedes any team score")
}

func TestSummarizedEliminationRound(t *testing.T) {
	input := `<X><TOURN TOURNNAME="t"/>
<ROUNDRESULT RoundName="Quarterfinals" RoundType="Elim"/>
<ROUNDRESULT RoundName="Round 1" RoundType="Prelim"/>
</X>`

	rounds, err := assembleSummarized(t, input, DefaultConfig())
	require.NoError(t, err)
	require.Len(t, rounds, 2)
	assert.True(t, rounds[0].Elimination)
	assert.False(t, rounds[1].Elimination)
}

func TestSummarizedDivisionAttachment(t *testing.T) {
	input := `<X><TOURN TOURNNAME="t"/>
<EVENT><ID>1</ID><EVENTNAME>Open</EVENTNAME></EVENT>
<EVENT><ID>2</ID><EVENTNAME>Novice</EVENTNAME></EVENT>
<ROUNDRESULT RoundName="Round 1" EventID="2"/>
</X>`

	rounds, err := assembleSummarized(t, input, DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, "E2", rounds[0].Division)
}

func TestSummarizedMissingEventIDFatal(t *testing.T) {
	input := `<X><TOURN TOURNNAME="t"/>
<EVENT><ID>1</ID><EVENTNAME>Open</EVENTNAME></EVENT>
<EVENT><ID>2</ID><EVENTNAME>Novice</EVENTNAME></EVENT>
<ROUNDRESULT RoundName="Round 1"/>
</X>`

	_, err := assembleSummarized(t, input, DefaultConfig())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMissingField)
}

func TestSummarizedUnknownScoreName(t *testing.T) {
	input := `<X><TOURN TOURNNAME="t"/>
<ROUNDRESULT RoundName="Round 1">
<BALLOT Panel="10" JudgeID="5" RoomID="3">
<SCORE ScoreFor="Team" Recipient="1" Side="1" SCORE_NAME="Low-Point Win">1</SCORE>
</BALLOT>
</ROUNDRESULT>
</X>`

	_, err := assembleSummarized(t, input, DefaultConfig())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnknownScoreKind)
}

package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

func newTestLeague() *League {
	l := NewLeague("Sunday Cup", "owner@x.com", testNow)
	l.ID = "league-1"
	l.PointSystem = PointSystem{"1": 25, "2": 18}
	l.FastestLapPoint = 1
	l.Calendar = []Race{
		{ID: "r1", Track: "Monza", Date: testNow.Add(24 * time.Hour), Status: RaceUpcoming},
		{ID: "r2", Track: "Spa", Date: testNow.Add(48 * time.Hour), Status: RaceUpcoming},
	}
	l.AddParticipant("a@x.com", "Alice", "")
	l.AddParticipant("b@x.com", "Bob", "")
	return l
}

func TestNewLeague_FreshContainers(t *testing.T) {
	a := NewLeague("a", "o", testNow)
	b := NewLeague("b", "o", testNow)

	a.AddParticipant("x@x.com", "", "")
	a.Teams["t"] = []string{"x@x.com"}

	assert.Empty(t, b.Participants)
	assert.Empty(t, b.Standings.Overall)
	assert.Empty(t, b.Teams)
	assert.Equal(t, DefaultMaxPlayers, b.MaxPlayers)
}

func TestAddRaceResult_EndToEnd(t *testing.T) {
	l := newTestLeague()

	standings, err := l.AddRaceResult("r1", map[string]ResultInput{
		"a@x.com": {Position: 1, FastestLap: true},
		"b@x.com": {Position: 2},
	})
	require.NoError(t, err)

	assert.Equal(t, Stats{Name: "Alice", Points: 26, Wins: 1, Podiums: 1, FastestLaps: 1}, standings.Overall["a@x.com"])
	assert.Equal(t, Stats{Name: "Bob", Points: 18, Podiums: 1}, standings.Overall["b@x.com"])
	assert.Equal(t, RaceCompleted, l.Calendar[0].Status)
	assert.Equal(t, RaceUpcoming, l.Calendar[1].Status)
}

func TestAddRaceResult_ResubmissionReplaces(t *testing.T) {
	l := newTestLeague()

	_, err := l.AddRaceResult("r1", map[string]ResultInput{"a@x.com": {Position: 1}})
	require.NoError(t, err)
	standings, err := l.AddRaceResult("r1", map[string]ResultInput{"b@x.com": {Position: 1}})
	require.NoError(t, err)

	assert.Len(t, standings.Races["r1"], 1)
	assert.Contains(t, standings.Races["r1"], "b@x.com")
	assert.Equal(t, 0, standings.Overall["a@x.com"].Points)
	assert.Equal(t, 25, standings.Overall["b@x.com"].Points)
}

func TestAddRaceResult_Validation(t *testing.T) {
	t.Run("unknown race", func(t *testing.T) {
		l := newTestLeague()
		_, err := l.AddRaceResult("nope", map[string]ResultInput{"a@x.com": {Position: 1}})
		assert.ErrorIs(t, err, ErrRaceNotFound)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("participant not in league", func(t *testing.T) {
		l := newTestLeague()
		_, err := l.AddRaceResult("r1", map[string]ResultInput{
			"a@x.com":        {Position: 1},
			"stranger@x.com": {Position: 2},
		})
		var notIn *ParticipantNotInLeagueError
		require.True(t, errors.As(err, &notIn))
		assert.Equal(t, "stranger@x.com", notIn.Email)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Empty(t, l.Standings.Races, "nothing is written on failure")
		assert.Equal(t, RaceUpcoming, l.Calendar[0].Status)
	})

	t.Run("bad position", func(t *testing.T) {
		l := newTestLeague()
		_, err := l.AddRaceResult("r1", map[string]ResultInput{"a@x.com": {Position: 0}})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("empty payload", func(t *testing.T) {
		l := newTestLeague()
		_, err := l.AddRaceResult("r1", map[string]ResultInput{})
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestMembershipKeepsStandings(t *testing.T) {
	l := newTestLeague()

	assert.False(t, l.AddParticipant("a@x.com", "Other", ""), "existing members are absorbed")
	assert.Len(t, l.Participants, 2)

	assert.True(t, l.AddParticipant("c@x.com", "Carol", "carol_racing"))
	p, ok := l.Participant("c@x.com")
	require.True(t, ok)
	assert.Equal(t, "carol_racing", p.LeagueUserName)
	assert.Equal(t, Stats{Name: "Carol"}, l.Standings.Overall["c@x.com"])

	_, err := l.AddRaceResult("r1", map[string]ResultInput{"c@x.com": {Position: 1}})
	require.NoError(t, err)

	assert.True(t, l.RemoveParticipant("c@x.com"))
	assert.False(t, l.HasParticipant("c@x.com"))
	assert.Equal(t, 25, l.Standings.Overall["c@x.com"].Points)
	assert.False(t, l.RemoveParticipant("c@x.com"))
}

func TestAddParticipant_RejoinKeepsLedger(t *testing.T) {
	l := newTestLeague()
	_, err := l.AddRaceResult("r1", map[string]ResultInput{"a@x.com": {Position: 1}})
	require.NoError(t, err)

	l.RemoveParticipant("a@x.com")
	l.AddParticipant("a@x.com", "Alice", "")

	assert.Equal(t, 25, l.Standings.Overall["a@x.com"].Points)
}

func TestParticipantStandings(t *testing.T) {
	l := newTestLeague()
	_, err := l.AddRaceResult("r1", map[string]ResultInput{"a@x.com": {Position: 2}, "b@x.com": {Position: 1}})
	require.NoError(t, err)
	_, err = l.AddRaceResult("r2", map[string]ResultInput{"b@x.com": {Position: 1}})
	require.NoError(t, err)

	got, err := l.ParticipantStandings("a@x.com")
	require.NoError(t, err)
	assert.Equal(t, 18, got.Overall.Points)
	assert.Len(t, got.Races, 1)
	assert.Equal(t, 2, got.Races["r1"].Position)

	_, err = l.ParticipantStandings("nobody@x.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPositionOf(t *testing.T) {
	l := newTestLeague()
	l.AddParticipant("c@x.com", "Carol", "")
	l.Standings.Overall["a@x.com"] = Stats{Points: 10}
	l.Standings.Overall["b@x.com"] = Stats{Points: 10}
	l.Standings.Overall["c@x.com"] = Stats{Points: 20}

	assert.Equal(t, 2, *l.PositionOf("a@x.com"))
	assert.Equal(t, 2, *l.PositionOf("b@x.com"))
	assert.Equal(t, 1, *l.PositionOf("c@x.com"))
	assert.Nil(t, l.PositionOf("nobody@x.com"))
}

func TestIsAdmin(t *testing.T) {
	l := newTestLeague()
	l.Admins = []string{"admin@x.com"}

	assert.True(t, l.IsAdmin("owner@x.com"))
	assert.True(t, l.IsAdmin("admin@x.com"))
	assert.False(t, l.IsAdmin("a@x.com"))
	assert.False(t, l.IsAdmin(""))
}

func TestClone(t *testing.T) {
	l := newTestLeague()
	c := l.Clone()

	c.AddParticipant("c@x.com", "", "")
	c.Calendar[0].Complete()
	c.PointSystem["1"] = 100

	assert.Len(t, l.Participants, 2)
	assert.Equal(t, RaceUpcoming, l.Calendar[0].Status)
	assert.Equal(t, 25, l.PointSystem["1"])
	assert.NotContains(t, l.Standings.Overall, "c@x.com")
}

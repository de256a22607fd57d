package render

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/racingleague/racing-league-app/domain"
)

func newLeague(t *testing.T) *domain.League {
	l := domain.NewLeague("Sunday Cup", "owner@x.com", time.Now())
	l.PointSystem = domain.PointSystem{"1": 25, "2": 18}
	l.Calendar = []domain.Race{{ID: "r1", Track: "Monza", Status: domain.RaceUpcoming}}
	l.AddParticipant("a@x.com", "Alice", "")
	l.AddParticipant("b@x.com", "Bob", "")
	_, err := l.AddRaceResult("r1", map[string]domain.ResultInput{
		"a@x.com": {Position: 2},
		"b@x.com": {Position: 1},
	})
	require.NoError(t, err)
	require.NoError(t, l.SetTeams(map[string][]string{"Red": {"a@x.com", "b@x.com"}}))
	return l
}

func TestOverallRows(t *testing.T) {
	rows := OverallRows(newLeague(t))
	require.Len(t, rows, 2)
	assert.Equal(t, "Bob", rows[0].Name)
	assert.Equal(t, 1, rows[0].Position)
	assert.Equal(t, "Alice", rows[1].Name)
}

func TestTables(t *testing.T) {
	l := newLeague(t)

	overall := OverallTable(l)
	assert.Contains(t, overall, "Sunday Cup")
	assert.Contains(t, overall, "Bob")
	assert.Contains(t, overall, "25")

	teams := TeamTable(l)
	assert.Contains(t, teams, "Red")
	assert.Contains(t, teams, "43")
	assert.Contains(t, teams, "Alice, Bob")
}

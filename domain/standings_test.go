package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreResult(t *testing.T) {
	points := PointSystem{"1": 25, "2": 18, "3": 15}

	cases := []struct {
		name       string
		in         ResultInput
		fastestLap int
		want       RaceEntry
	}{
		{
			name: "win",
			in:   ResultInput{Position: 1},
			want: RaceEntry{Position: 1, Points: 25, Wins: 1, Podiums: 1},
		},
		{
			name:       "fastest lap bonus is additive",
			in:         ResultInput{Position: 3, FastestLap: true},
			fastestLap: 1,
			want:       RaceEntry{Position: 3, Points: 16, FastestLap: true, Podiums: 1},
		},
		{
			name:       "fastest lap ignored without bonus value",
			in:         ResultInput{Position: 3, FastestLap: true},
			fastestLap: 0,
			want:       RaceEntry{Position: 3, Points: 15, FastestLap: true, Podiums: 1},
		},
		{
			name: "unknown position scores zero",
			in:   ResultInput{Position: 11},
			want: RaceEntry{Position: 11},
		},
		{
			name:       "unknown position still gets the bonus",
			in:         ResultInput{Position: 11, FastestLap: true},
			fastestLap: 2,
			want:       RaceEntry{Position: 11, Points: 2, FastestLap: true},
		},
		{
			name: "dnf zeroes position points",
			in:   ResultInput{Position: 1, DNF: true},
			want: RaceEntry{Position: 1, DNF: true, Wins: 1, Podiums: 1},
		},
		{
			name:       "dnf keeps the fastest lap bonus",
			in:         ResultInput{Position: 1, DNF: true, FastestLap: true},
			fastestLap: 1,
			want:       RaceEntry{Position: 1, Points: 1, DNF: true, FastestLap: true, Wins: 1, Podiums: 1},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, ScoreResult(c.in, points, c.fastestLap))
		})
	}
}

func TestComputeOverall(t *testing.T) {
	participants := []Participant{{Email: "a@x.com"}, {Email: "b@x.com"}}
	races := map[string]RaceResults{
		"r1": {
			"a@x.com": {Position: 1, Points: 26, FastestLap: true, Wins: 1, Podiums: 1},
			"b@x.com": {Position: 2, Points: 18, Podiums: 1},
		},
		"r2": {
			"a@x.com": {Position: 4, DNF: true},
			"c@x.com": {Position: 1, Points: 25, Wins: 1, Podiums: 1},
		},
	}
	previous := map[string]Stats{"a@x.com": {Name: "Alice", Points: 999}}

	overall := ComputeOverall(participants, races, previous)

	assert.Equal(t, Stats{Name: "Alice", Points: 26, Wins: 1, Podiums: 1, DNFs: 1, FastestLaps: 1}, overall["a@x.com"])
	assert.Equal(t, Stats{Points: 18, Podiums: 1}, overall["b@x.com"])
	assert.Equal(t, Stats{Points: 25, Wins: 1, Podiums: 1}, overall["c@x.com"], "former participants stay in the standings")

	assert.Equal(t, overall, ComputeOverall(participants, races, overall), "recomputing is idempotent")
}

func TestComputeOverall_SeedsCurrentParticipants(t *testing.T) {
	overall := ComputeOverall([]Participant{{Email: "a@x.com"}}, nil, nil)
	assert.Equal(t, map[string]Stats{"a@x.com": {}}, overall)
}

func TestStandingsClone(t *testing.T) {
	s := NewStandings()
	s.Races["r1"] = RaceResults{"a@x.com": {Position: 1}}
	s.Overall["a@x.com"] = Stats{Points: 1}

	c := s.Clone()
	c.Races["r1"]["a@x.com"] = RaceEntry{Position: 2}
	c.Overall["a@x.com"] = Stats{Points: 2}

	assert.Equal(t, 1, s.Races["r1"]["a@x.com"].Position)
	assert.Equal(t, 1, s.Overall["a@x.com"].Points)
}

package domain

import (
	"fmt"
	"sort"
	"strings"
)

const (
	MinTeamSize = 1
	MaxTeamSize = 3
)

// TeamMember is one member's contribution to a team.
type TeamMember struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Stats Stats  `json:"stats"`
}

// Team is the read-time view of a team and its totals.
type Team struct {
	Name             string       `json:"name"`
	Members          []TeamMember `json:"members"`
	TotalPoints      int          `json:"total_points"`
	TotalWins        int          `json:"total_wins"`
	TotalPodiums     int          `json:"total_podiums"`
	TotalDNFs        int          `json:"total_dnfs"`
	TotalFastestLaps int          `json:"total_fastestLaps"`
}

// TeamStanding is a team with its leaderboard position.
type TeamStanding struct {
	Position int `json:"position"`
	Team
}

// SetTeams validates the whole configuration and replaces the current one.
// Teams are checked in name order and the first violation is returned.
func (l *League) SetTeams(teams map[string][]string) error {
	names := make([]string, 0, len(teams))
	for name := range teams {
		names = append(names, name)
	}
	sort.Strings(names)

	assigned := map[string]string{}
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("team name must not be empty: %w", ErrInvalidTeamConfig)
		}
		members := teams[name]
		if len(members) < MinTeamSize || len(members) > MaxTeamSize {
			return fmt.Errorf("team %q must have between %d and %d members: %w", name, MinTeamSize, MaxTeamSize, ErrInvalidTeamConfig)
		}
		for _, email := range members {
			if !l.HasParticipant(email) {
				return fmt.Errorf("team %q: %s is not a participant: %w", name, email, ErrInvalidTeamConfig)
			}
		}
		for _, email := range members {
			if other, ok := assigned[email]; ok {
				return fmt.Errorf("%s is assigned to both %q and %q: %w", email, other, name, ErrInvalidTeamConfig)
			}
			assigned[email] = name
		}
	}

	replaced := make(map[string][]string, len(teams))
	for _, name := range names {
		replaced[name] = append([]string{}, teams[name]...)
	}
	l.Teams = replaced
	return nil
}

// GetTeams computes every team's totals from the overall standings, sorted by
// team name.
func (l *League) GetTeams() []Team {
	names := make([]string, 0, len(l.Teams))
	for name := range l.Teams {
		names = append(names, name)
	}
	sort.Strings(names)

	teams := make([]Team, 0, len(names))
	for _, name := range names {
		team := Team{Name: name, Members: []TeamMember{}}
		for _, email := range l.Teams[name] {
			stats := l.Standings.Overall[email]
			stats.Name = ""
			team.Members = append(team.Members, TeamMember{
				Email: email,
				Name:  l.DisplayName(email),
				Stats: stats,
			})
			team.TotalPoints += stats.Points
			team.TotalWins += stats.Wins
			team.TotalPodiums += stats.Podiums
			team.TotalDNFs += stats.DNFs
			team.TotalFastestLaps += stats.FastestLaps
		}
		teams = append(teams, team)
	}
	return teams
}

// TeamStandings ranks teams by points, then wins, then podiums. Every team
// gets its own position, ties included.
func (l *League) TeamStandings() []TeamStanding {
	teams := l.GetTeams()
	sort.SliceStable(teams, func(i, j int) bool {
		a, b := teams[i], teams[j]
		if a.TotalPoints != b.TotalPoints {
			return a.TotalPoints > b.TotalPoints
		}
		if a.TotalWins != b.TotalWins {
			return a.TotalWins > b.TotalWins
		}
		return a.TotalPodiums > b.TotalPodiums
	})

	standings := make([]TeamStanding, 0, len(teams))
	for i, team := range teams {
		standings = append(standings, TeamStanding{Position: i + 1, Team: team})
	}
	return standings
}

// RemoveTeam deletes a team. It reports whether the team existed.
func (l *League) RemoveTeam(name string) bool {
	if _, ok := l.Teams[name]; !ok {
		return false
	}
	delete(l.Teams, name)
	return true
}

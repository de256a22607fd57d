package domain

import (
	"fmt"
	"sort"
	"time"
)

const DefaultMaxPlayers = 20

// League is the aggregate root: it owns its calendar, participants,
// standings and team membership.
type League struct {
	ID              string              `json:"_id"`
	Name            string              `json:"name"`
	Owner           string              `json:"owner"`
	Public          bool                `json:"public"`
	Admins          []string            `json:"admins"`
	Participants    []Participant       `json:"participants"`
	Calendar        []Race              `json:"calendar"`
	PointSystem     PointSystem         `json:"pointSystem"`
	FastestLapPoint int                 `json:"fastestLapPoint"`
	MaxPlayers      int                 `json:"max_players"`
	Standings       Standings           `json:"standings"`
	Teams           map[string][]string `json:"teams"`
	Status          string              `json:"status"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       *time.Time          `json:"updated_at"`
	DeletedAt       *time.Time          `json:"deleted_at"`
}

// NewLeague returns a league with its own empty containers.
func NewLeague(name, owner string, now time.Time) *League {
	return &League{
		Name:         name,
		Owner:        owner,
		Admins:       []string{},
		Participants: []Participant{},
		Calendar:     []Race{},
		PointSystem:  PointSystem{},
		MaxPlayers:   DefaultMaxPlayers,
		Standings:    NewStandings(),
		Teams:        map[string][]string{},
		CreatedAt:    now.UTC(),
	}
}

// Clone returns a deep copy. Mutating operations work on a clone so a failed
// validation never leaves a half-applied change behind.
func (l *League) Clone() *League {
	out := *l
	out.Admins = append([]string{}, l.Admins...)
	out.Participants = append([]Participant{}, l.Participants...)
	out.Calendar = append([]Race{}, l.Calendar...)
	out.PointSystem = make(PointSystem, len(l.PointSystem))
	for k, v := range l.PointSystem {
		out.PointSystem[k] = v
	}
	out.Standings = l.Standings.Clone()
	out.Teams = make(map[string][]string, len(l.Teams))
	for name, members := range l.Teams {
		out.Teams[name] = append([]string{}, members...)
	}
	if l.UpdatedAt != nil {
		t := *l.UpdatedAt
		out.UpdatedAt = &t
	}
	if l.DeletedAt != nil {
		t := *l.DeletedAt
		out.DeletedAt = &t
	}
	return &out
}

func (l *League) IsDeleted() bool {
	return l.DeletedAt != nil
}

// IsAdmin reports whether email is the owner or one of the admins.
func (l *League) IsAdmin(email string) bool {
	if email == "" {
		return false
	}
	if l.Owner == email {
		return true
	}
	for _, a := range l.Admins {
		if a == email {
			return true
		}
	}
	return false
}

func (l *League) Participant(email string) (Participant, bool) {
	for _, p := range l.Participants {
		if p.Email == email {
			return p, true
		}
	}
	return Participant{}, false
}

func (l *League) HasParticipant(email string) bool {
	_, ok := l.Participant(email)
	return ok
}

func (l *League) ParticipantEmails() []string {
	emails := make([]string, 0, len(l.Participants))
	for _, p := range l.Participants {
		emails = append(emails, p.Email)
	}
	return emails
}

func (l *League) IsFull() bool {
	return l.MaxPlayers > 0 && len(l.Participants) >= l.MaxPlayers
}

// AddParticipant adds a member and seeds its overall entry. It returns false
// when the email is already a member.
func (l *League) AddParticipant(email, displayName, leagueUserName string) bool {
	if l.HasParticipant(email) {
		return false
	}
	p := NewParticipant(email, displayName, leagueUserName)
	l.Participants = append(l.Participants, p)

	name := displayName
	if name == "" {
		name = p.LeagueUserName
	}
	previous := l.Standings.Overall
	if previous == nil {
		previous = map[string]Stats{}
	}
	seed := previous[email]
	seed.Name = name
	previous[email] = seed

	l.Standings.Overall = ComputeOverall(l.Participants, l.Standings.Races, previous)
	return true
}

// RemoveParticipant drops the membership only. Race entries and overall
// stats stay in the ledger.
func (l *League) RemoveParticipant(email string) bool {
	for i, p := range l.Participants {
		if p.Email == email {
			l.Participants = append(l.Participants[:i], l.Participants[i+1:]...)
			return true
		}
	}
	return false
}

func (l *League) raceIndex(raceID string) int {
	for i, r := range l.Calendar {
		if r.ID == raceID {
			return i
		}
	}
	return -1
}

// AddRaceResult scores the submitted results, replaces the ledger entry for
// the race, recomputes the overall standings and completes the race.
// Nothing is changed if validation fails.
func (l *League) AddRaceResult(raceID string, results map[string]ResultInput) (Standings, error) {
	idx := l.raceIndex(raceID)
	if idx < 0 {
		return Standings{}, ErrRaceNotFound
	}
	if len(results) == 0 {
		return Standings{}, fmt.Errorf("no results submitted: %w", ErrInvalidResults)
	}

	emails := make([]string, 0, len(results))
	for email := range results {
		emails = append(emails, email)
	}
	sort.Strings(emails)

	for _, email := range emails {
		if !l.HasParticipant(email) {
			return Standings{}, &ParticipantNotInLeagueError{Email: email}
		}
	}
	for _, email := range emails {
		if results[email].Position < 1 {
			return Standings{}, fmt.Errorf("position for %s must be at least 1: %w", email, ErrInvalidResults)
		}
	}

	entries := make(RaceResults, len(results))
	for email, in := range results {
		entries[email] = ScoreResult(in, l.PointSystem, l.FastestLapPoint)
	}

	if l.Standings.Races == nil {
		l.Standings.Races = map[string]RaceResults{}
	}
	l.Standings.Races[raceID] = entries
	l.Standings.Overall = ComputeOverall(l.Participants, l.Standings.Races, l.Standings.Overall)
	l.Calendar[idx].Complete()

	return l.Standings.Clone(), nil
}

// ParticipantStandings returns the overall stats and every race entry of a
// current member.
func (l *League) ParticipantStandings(email string) (ParticipantStandings, error) {
	if !l.HasParticipant(email) {
		return ParticipantStandings{}, &ParticipantNotInLeagueError{Email: email}
	}

	out := ParticipantStandings{
		Overall: l.Standings.Overall[email],
		Races:   map[string]RaceEntry{},
	}
	for raceID, results := range l.Standings.Races {
		if entry, ok := results[email]; ok {
			out.Races[raceID] = entry
		}
	}
	return out, nil
}

// PositionOf ranks email by overall points. Tied participants share a
// position. It returns nil when email has no overall entry.
func (l *League) PositionOf(email string) *int {
	mine, ok := l.Standings.Overall[email]
	if !ok {
		return nil
	}
	position := 1
	for other, stats := range l.Standings.Overall {
		if other != email && stats.Points > mine.Points {
			position++
		}
	}
	return &position
}

// NextRace resolves the next upcoming race relative to now.
func (l *League) NextRace(now time.Time) *Race {
	return NextRace(l.Calendar, now)
}

// DisplayName returns the best known name for a member or former member.
func (l *League) DisplayName(email string) string {
	if stats, ok := l.Standings.Overall[email]; ok && stats.Name != "" {
		return stats.Name
	}
	if p, ok := l.Participant(email); ok && p.LeagueUserName != "" {
		return p.LeagueUserName
	}
	return email
}

package domain

import "strings"

// Participant is a league member. Email is the identity key.
type Participant struct {
	Email          string `json:"email"`
	LeagueUserName string `json:"league_user_name"`
}

// NewParticipant picks the league user name, falling back to the display
// name and finally to the email.
func NewParticipant(email, displayName, leagueUserName string) Participant {
	name := strings.TrimSpace(leagueUserName)
	if name == "" {
		name = strings.TrimSpace(displayName)
	}
	if name == "" {
		name = email
	}
	return Participant{Email: email, LeagueUserName: name}
}

// User is an account known to the user directory.
type User struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

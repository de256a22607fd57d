package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by the domain and the services wraps one
// of these so the transport can classify it with errors.Is.
var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("conflict")
)

var (
	ErrLeagueNotFound      = fmt.Errorf("league %w", ErrNotFound)
	ErrRaceNotFound        = fmt.Errorf("race not found in league calendar: %w", ErrNotFound)
	ErrInviteNotFound      = fmt.Errorf("invite %w", ErrNotFound)
	ErrNotLeagueAdmin      = fmt.Errorf("only the league owner or an admin can do this: %w", ErrUnauthorized)
	ErrPrivateLeague       = fmt.Errorf("league is private: %w", ErrUnauthorized)
	ErrLeagueFull          = fmt.Errorf("league is full: %w", ErrConflict)
	ErrInviteAlreadySent   = fmt.Errorf("invite already sent: %w", ErrConflict)
	ErrInviteNotPending    = fmt.Errorf("invite is not pending: %w", ErrConflict)
	ErrInvalidResults      = fmt.Errorf("malformed result payload: %w", ErrValidation)
	ErrInvalidTeamConfig   = fmt.Errorf("invalid team configuration: %w", ErrValidation)
	ErrParticipantNotFound = fmt.Errorf("participant %w", ErrNotFound)
)

// ParticipantNotInLeagueError names the offending participant.
type ParticipantNotInLeagueError struct {
	Email string
}

func (e *ParticipantNotInLeagueError) Error() string {
	return fmt.Sprintf("participant %s is not in the league", e.Email)
}

func (e *ParticipantNotInLeagueError) Unwrap() error {
	return ErrNotFound
}

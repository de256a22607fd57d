package domain

import (
	"fmt"
	"time"
)

type InviteStatus string

const (
	InvitePending  InviteStatus = "pending"
	InviteAccepted InviteStatus = "accepted"
	InviteDeclined InviteStatus = "declined"
	InviteDeleted  InviteStatus = "deleted"
)

// Invite asks InvitedUser to join a league on behalf of Inviter.
type Invite struct {
	ID          string       `json:"_id"`
	LeagueID    string       `json:"league_id"`
	LeagueName  string       `json:"league_name"`
	InvitedUser string       `json:"invited_user"`
	Inviter     string       `json:"inviter"`
	Status      InviteStatus `json:"status"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   *time.Time   `json:"updated_at"`
	DeletedAt   *time.Time   `json:"deleted_at"`
}

// Blocks reports whether the invite prevents sending another one for the
// same league and user.
func (i Invite) Blocks() bool {
	return i.Status == InvitePending || i.Status == InviteAccepted
}

func (i *Invite) answer(email string, status InviteStatus, now time.Time) error {
	if i.InvitedUser != email {
		return fmt.Errorf("only the invited user can answer an invite: %w", ErrUnauthorized)
	}
	if i.Status != InvitePending {
		return ErrInviteNotPending
	}
	i.Status = status
	at := now.UTC()
	i.UpdatedAt = &at
	return nil
}

func (i *Invite) Accept(email string, now time.Time) error {
	return i.answer(email, InviteAccepted, now)
}

func (i *Invite) Decline(email string, now time.Time) error {
	return i.answer(email, InviteDeclined, now)
}

// Delete withdraws the invite. Only the inviter may do that.
func (i *Invite) Delete(email string, now time.Time) error {
	if i.Inviter != email {
		return fmt.Errorf("only the inviter can delete an invite: %w", ErrUnauthorized)
	}
	if i.Status == InviteDeleted {
		return ErrInviteNotFound
	}
	at := now.UTC()
	i.Status = InviteDeleted
	i.UpdatedAt = &at
	i.DeletedAt = &at
	return nil
}

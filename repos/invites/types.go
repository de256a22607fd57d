package invites

import (
	"time"

	"github.com/racingleague/racing-league-app/domain"
)

type inviteDoc struct {
	League      string     `firestore:"league"`
	LeagueName  string     `firestore:"leagueName"`
	InvitedUser string     `firestore:"invited_user"`
	Inviter     string     `firestore:"inviter"`
	Status      string     `firestore:"status"`
	CreatedAt   time.Time  `firestore:"created_at"`
	UpdatedAt   *time.Time `firestore:"updated_at"`
	DeletedAt   *time.Time `firestore:"deleted_at"`
}

func toDoc(i domain.Invite) inviteDoc {
	return inviteDoc{
		League:      i.LeagueID,
		LeagueName:  i.LeagueName,
		InvitedUser: i.InvitedUser,
		Inviter:     i.Inviter,
		Status:      string(i.Status),
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
		DeletedAt:   i.DeletedAt,
	}
}

func fromDoc(id string, d inviteDoc) domain.Invite {
	status := domain.InviteStatus(d.Status)
	if status == "" {
		status = domain.InvitePending
	}
	return domain.Invite{
		ID:          id,
		LeagueID:    d.League,
		LeagueName:  d.LeagueName,
		InvitedUser: d.InvitedUser,
		Inviter:     d.Inviter,
		Status:      status,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
		DeletedAt:   d.DeletedAt,
	}
}

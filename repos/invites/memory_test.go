package invites

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/racingleague/racing-league-app/domain"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	now := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

	a, err := m.Create(ctx, domain.Invite{LeagueID: "l1", InvitedUser: "g@x.com", Inviter: "o@x.com", Status: domain.InvitePending, CreatedAt: now})
	require.NoError(t, err)
	assert.NotEmpty(t, a.ID)
	b, err := m.Create(ctx, domain.Invite{LeagueID: "l2", InvitedUser: "g@x.com", Inviter: "o@x.com", Status: domain.InvitePending, CreatedAt: now})
	require.NoError(t, err)

	got, err := m.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a, got)

	_, err = m.Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrInviteNotFound)

	_, err = m.Update(ctx, b.ID, func(inv *domain.Invite) error { return inv.Delete("o@x.com", now) })
	require.NoError(t, err)

	received, err := m.ListReceived(ctx, "g@x.com")
	require.NoError(t, err)
	assert.Len(t, received, 1)
	assert.Equal(t, a.ID, received[0].ID)

	sent, err := m.ListSent(ctx, "o@x.com")
	require.NoError(t, err)
	assert.Len(t, sent, 1)

	forLeague, err := m.ListForLeagueUser(ctx, "l2", "g@x.com")
	require.NoError(t, err)
	require.Len(t, forLeague, 1)
	assert.Equal(t, domain.InviteDeleted, forLeague[0].Status)

	boom := errors.New("boom")
	_, err = m.Update(ctx, a.ID, func(inv *domain.Invite) error {
		inv.Status = domain.InviteAccepted
		return boom
	})
	assert.ErrorIs(t, err, boom)
	got, err = m.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.InvitePending, got.Status)
}

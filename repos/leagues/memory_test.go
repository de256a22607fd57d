package leagues

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/racingleague/racing-league-app/domain"
)

func newMemoryStore() *MemoryStore {
	m := NewMemoryStore()
	m.now = func() time.Time { return testNow }
	return m
}

func seed(t *testing.T, m *MemoryStore, name, owner string, public bool, created time.Time, participants ...string) *domain.League {
	l := domain.NewLeague(name, owner, created)
	l.Public = public
	for _, p := range participants {
		l.AddParticipant(p, "", "")
	}
	out, err := m.Create(context.Background(), l)
	require.NoError(t, err)
	return out
}

func TestMemoryStore_CreateGet(t *testing.T) {
	ctx := context.Background()
	m := newMemoryStore()

	created := seed(t, m, "Sunday Cup", "owner@x.com", true, testNow, "a@x.com")
	assert.NotEmpty(t, created.ID)

	got, err := m.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	_, err = m.Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrLeagueNotFound)

	_, err = m.Create(ctx, created)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestMemoryStore_Update(t *testing.T) {
	ctx := context.Background()
	m := newMemoryStore()
	l := seed(t, m, "Sunday Cup", "owner@x.com", true, testNow)

	updated, err := m.Update(ctx, l.ID, func(l *domain.League) error {
		l.AddParticipant("a@x.com", "Alice", "")
		return nil
	})
	require.NoError(t, err)
	assert.True(t, updated.HasParticipant("a@x.com"))
	require.NotNil(t, updated.UpdatedAt)
	assert.Equal(t, testNow, *updated.UpdatedAt)

	boom := errors.New("boom")
	_, err = m.Update(ctx, l.ID, func(l *domain.League) error {
		l.AddParticipant("b@x.com", "", "")
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := m.Get(ctx, l.ID)
	require.NoError(t, err)
	assert.False(t, got.HasParticipant("b@x.com"), "failed updates are not written")

	_, err = m.Update(ctx, "missing", func(*domain.League) error { return nil })
	assert.ErrorIs(t, err, domain.ErrLeagueNotFound)
}

func TestMemoryStore_SoftDelete(t *testing.T) {
	ctx := context.Background()
	m := newMemoryStore()
	l := seed(t, m, "Sunday Cup", "owner@x.com", true, testNow)

	require.NoError(t, m.SoftDelete(ctx, l.ID, testNow))

	_, err := m.Get(ctx, l.ID)
	assert.ErrorIs(t, err, domain.ErrLeagueNotFound)

	public, err := m.ListPublic(ctx)
	require.NoError(t, err)
	assert.Empty(t, public)

	assert.ErrorIs(t, m.SoftDelete(ctx, l.ID, testNow), domain.ErrLeagueNotFound)
}

func TestMemoryStore_Lists(t *testing.T) {
	ctx := context.Background()
	m := newMemoryStore()
	a := seed(t, m, "A", "owner@x.com", true, testNow, "p@x.com")
	b := seed(t, m, "B", "other@x.com", false, testNow.Add(time.Minute), "p@x.com")
	c := seed(t, m, "C", "owner@x.com", false, testNow.Add(2*time.Minute))

	public, err := m.ListPublic(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{a.ID}, ids(public))

	owned, err := m.ListByOwner(ctx, "owner@x.com")
	require.NoError(t, err)
	assert.Equal(t, []string{a.ID, c.ID}, ids(owned))

	joined, err := m.ListByParticipant(ctx, "p@x.com")
	require.NoError(t, err)
	assert.Equal(t, []string{a.ID, b.ID}, ids(joined))

	page, err := m.ListPage(ctx, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{c.ID}, ids(page))

	page, err = m.ListPage(ctx, 3, 2)
	require.NoError(t, err)
	assert.Empty(t, page)

	_, err = m.ListPage(ctx, 0, 2)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func ids(leagues []*domain.League) []string {
	out := []string{}
	for _, l := range leagues {
		out = append(out, l.ID)
	}
	return out
}

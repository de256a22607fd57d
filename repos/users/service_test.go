package users

import (
	"context"
	"errors"
	"testing"

	"firebase.google.com/go/v4/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/racingleague/racing-league-app/domain"
)

type fakeRecords map[string]*auth.UserRecord

func (f fakeRecords) GetUserByEmail(_ context.Context, email string) (*auth.UserRecord, error) {
	if r, ok := f[email]; ok {
		return r, nil
	}
	return nil, errors.New("backend unavailable")
}

func record(email, name string) *auth.UserRecord {
	return &auth.UserRecord{UserInfo: &auth.UserInfo{Email: email, DisplayName: name}}
}

func TestService_Lookup(t *testing.T) {
	s := NewService(fakeRecords{
		"a@x.com": record("a@x.com", "Alice"),
		"n@x.com": record("n@x.com", ""),
	})

	u, err := s.Lookup(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, domain.User{Name: "Alice", Email: "a@x.com"}, u)

	u, err = s.Lookup(context.Background(), "n@x.com")
	require.NoError(t, err)
	assert.Equal(t, "n@x.com", u.Name, "missing display names fall back to the email")

	_, err = s.Lookup(context.Background(), "zzz@x.com")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}

func TestStatic_Lookup(t *testing.T) {
	s := Static{"a@x.com": "Alice"}

	u, err := s.Lookup(context.Background(), "A@x.com")
	require.NoError(t, err)
	assert.Equal(t, "Alice", u.Name)

	_, err = s.Lookup(context.Background(), "b@x.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

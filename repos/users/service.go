package users

import (
	"context"
	"strings"

	"firebase.google.com/go/v4/auth"
	"golang.org/x/xerrors"

	"github.com/racingleague/racing-league-app/domain"
)

// RecordGetter looks up Firebase user records. *auth.Client implements it.
type RecordGetter interface {
	GetUserByEmail(ctx context.Context, email string) (*auth.UserRecord, error)
}

// Service resolves users through Firebase Auth.
type Service struct {
	client RecordGetter
}

func NewService(client RecordGetter) *Service {
	return &Service{client: client}
}

func (s *Service) Lookup(ctx context.Context, email string) (domain.User, error) {
	record, err := s.client.GetUserByEmail(ctx, email)
	if err != nil {
		if auth.IsUserNotFound(err) {
			return domain.User{}, xerrors.Errorf("user %s: %w", email, domain.ErrNotFound)
		}
		return domain.User{}, xerrors.Errorf("failed to look up user %s: %w", email, err)
	}
	name := record.DisplayName
	if name == "" {
		name = email
	}
	return domain.User{Name: name, Email: record.Email}, nil
}

// Static is a fixed directory of email to display name.
type Static map[string]string

func (s Static) Lookup(_ context.Context, email string) (domain.User, error) {
	name, ok := s[strings.ToLower(email)]
	if !ok {
		return domain.User{}, xerrors.Errorf("user %s: %w", email, domain.ErrNotFound)
	}
	return domain.User{Name: name, Email: email}, nil
}

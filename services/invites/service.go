package invites

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/racingleague/racing-league-app/domain"
	access "github.com/racingleague/racing-league-app/pkg/accessCode"
)

// Store persists invites.
type Store interface {
	Create(ctx context.Context, inv domain.Invite) (domain.Invite, error)
	Get(ctx context.Context, id string) (domain.Invite, error)
	Update(ctx context.Context, id string, fn func(inv *domain.Invite) error) (domain.Invite, error)
	ListReceived(ctx context.Context, email string) ([]domain.Invite, error)
	ListSent(ctx context.Context, email string) ([]domain.Invite, error)
	ListForLeagueUser(ctx context.Context, leagueID, email string) ([]domain.Invite, error)
}

// LeagueReader reads leagues.
type LeagueReader interface {
	Get(ctx context.Context, id string) (*domain.League, error)
}

// Membership adds the invitee of an accepted invite to its league.
type Membership interface {
	AddInvitedParticipant(ctx context.Context, leagueID, email string) error
}

// Notifier mails invites. Delivery is best effort.
type Notifier interface {
	SendInvite(ctx context.Context, inv domain.Invite, accessCode string) error
}

type InvitesService struct {
	store    Store
	leagues  LeagueReader
	members  Membership
	notifier Notifier
	now      func() time.Time
}

func NewInvitesService(store Store, leagues LeagueReader, members Membership, notifier Notifier) *InvitesService {
	return &InvitesService{
		store:    store,
		leagues:  leagues,
		members:  members,
		notifier: notifier,
		now:      time.Now,
	}
}

// CreateInvites invites every email to the league. Nothing is created when
// any of the emails is already invited or already races in the league.
func (s *InvitesService) CreateInvites(ctx context.Context, caller string, req CreateInvitesRequest) ([]domain.Invite, error) {
	l, err := s.leagues.Get(ctx, req.LeagueID)
	if err != nil {
		return nil, err
	}
	if !l.IsAdmin(caller) && !l.HasParticipant(caller) {
		return nil, fmt.Errorf("only league members can invite: %w", domain.ErrUnauthorized)
	}

	emails := []string{}
	seen := map[string]bool{}
	for _, e := range req.Emails {
		email := strings.ToLower(strings.TrimSpace(e))
		if seen[email] {
			continue
		}
		seen[email] = true

		if l.HasParticipant(email) {
			return nil, fmt.Errorf("%s already races in the league: %w", email, domain.ErrConflict)
		}
		existing, err := s.store.ListForLeagueUser(ctx, l.ID, email)
		if err != nil {
			return nil, err
		}
		for _, inv := range existing {
			if inv.Blocks() {
				return nil, fmt.Errorf("%s: %w", email, domain.ErrInviteAlreadySent)
			}
		}
		emails = append(emails, email)
	}

	now := s.now().UTC()
	created := make([]domain.Invite, 0, len(emails))
	for _, email := range emails {
		inv, err := s.store.Create(ctx, domain.Invite{
			LeagueID:    l.ID,
			LeagueName:  l.Name,
			InvitedUser: email,
			Inviter:     caller,
			Status:      domain.InvitePending,
			CreatedAt:   now,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create invite for %s -> %w", email, err)
		}
		zap.L().Info("invite created",
			zap.String("invite_id", inv.ID),
			zap.String("league_id", l.ID),
			zap.String("invited_user", email),
		)
		s.notify(ctx, inv)
		created = append(created, inv)
	}
	return created, nil
}

func (s *InvitesService) notify(ctx context.Context, inv domain.Invite) {
	if s.notifier == nil {
		return
	}
	ctx = context.WithoutCancel(ctx)
	code := access.GenerateCode(inv.LeagueID, inv.ID)
	go func() {
		if err := s.notifier.SendInvite(ctx, inv, code); err != nil {
			zap.L().Warn("failed to send invite mail", zap.String("invite_id", inv.ID), zap.Error(err))
		}
	}()
}

func (s *InvitesService) MyInvites(ctx context.Context, caller string) ([]domain.Invite, error) {
	return s.store.ListReceived(ctx, caller)
}

func (s *InvitesService) SentInvites(ctx context.Context, caller string) ([]domain.Invite, error) {
	return s.store.ListSent(ctx, caller)
}

// Accept adds the caller to the league and marks the invite accepted.
func (s *InvitesService) Accept(ctx context.Context, caller, inviteID string) (domain.Invite, error) {
	inv, err := s.store.Get(ctx, inviteID)
	if err != nil {
		return domain.Invite{}, err
	}
	return s.accept(ctx, caller, inv)
}

// AcceptByCode accepts the invite named by the access code from an invite
// mail.
func (s *InvitesService) AcceptByCode(ctx context.Context, caller, code string) (domain.Invite, error) {
	leagueID, inviteID, err := access.Decode(code)
	if err != nil {
		return domain.Invite{}, fmt.Errorf("invalid access code: %w", domain.ErrValidation)
	}
	inv, err := s.store.Get(ctx, inviteID)
	if err != nil {
		return domain.Invite{}, err
	}
	if inv.LeagueID != leagueID {
		return domain.Invite{}, domain.ErrInviteNotFound
	}
	return s.accept(ctx, caller, inv)
}

func (s *InvitesService) accept(ctx context.Context, caller string, inv domain.Invite) (domain.Invite, error) {
	now := s.now()
	check := inv
	if err := check.Accept(caller, now); err != nil {
		return domain.Invite{}, err
	}
	// Membership is written first. If marking the invite fails the caller is
	// already in the league and a retry only marks the invite.
	if err := s.members.AddInvitedParticipant(ctx, inv.LeagueID, caller); err != nil {
		return domain.Invite{}, err
	}
	accepted, err := s.store.Update(ctx, inv.ID, func(i *domain.Invite) error {
		return i.Accept(caller, now)
	})
	if err != nil {
		zap.L().Error("participant added but invite still pending",
			zap.String("invite_id", inv.ID),
			zap.String("league_id", inv.LeagueID),
			zap.Error(err),
		)
		return domain.Invite{}, err
	}
	zap.L().Info("invite accepted", zap.String("invite_id", inv.ID), zap.String("league_id", inv.LeagueID))
	return accepted, nil
}

func (s *InvitesService) Decline(ctx context.Context, caller, inviteID string) (domain.Invite, error) {
	now := s.now()
	return s.store.Update(ctx, inviteID, func(i *domain.Invite) error {
		return i.Decline(caller, now)
	})
}

func (s *InvitesService) Delete(ctx context.Context, caller, inviteID string) error {
	now := s.now()
	_, err := s.store.Update(ctx, inviteID, func(i *domain.Invite) error {
		return i.Delete(caller, now)
	})
	return err
}

package invites

import (
	"context"
	"errors"

	"cloud.google.com/go/firestore"
	"github.com/samborkent/uuidv7"
	"golang.org/x/xerrors"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/racingleague/racing-league-app/domain"
)

const collection = "Invites"

// Service stores invites in Firestore.
type Service struct {
	client *firestore.Client
}

func NewService(client *firestore.Client) *Service {
	return &Service{client: client}
}

func (s *Service) Create(ctx context.Context, inv domain.Invite) (domain.Invite, error) {
	if inv.ID == "" {
		inv.ID = uuidv7.New().String()
	}
	if _, err := s.client.Collection(collection).Doc(inv.ID).Create(ctx, toDoc(inv)); err != nil {
		return domain.Invite{}, xerrors.Errorf("failed to create invite: %w", err)
	}
	return inv, nil
}

func (s *Service) Get(ctx context.Context, id string) (domain.Invite, error) {
	if id == "" {
		return domain.Invite{}, domain.ErrInviteNotFound
	}
	doc, err := s.client.Collection(collection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return domain.Invite{}, domain.ErrInviteNotFound
		}
		return domain.Invite{}, xerrors.Errorf("failed to get invite %s: %w", id, err)
	}
	return docToInvite(doc)
}

// Update applies fn to the invite inside a transaction.
func (s *Service) Update(ctx context.Context, id string, fn func(inv *domain.Invite) error) (domain.Invite, error) {
	if id == "" {
		return domain.Invite{}, domain.ErrInviteNotFound
	}
	docRef := s.client.Collection(collection).Doc(id)

	var updated domain.Invite
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return domain.ErrInviteNotFound
			}
			return err
		}
		inv, err := docToInvite(doc)
		if err != nil {
			return err
		}
		if err := fn(&inv); err != nil {
			return err
		}
		updated = inv
		return tx.Set(docRef, toDoc(inv))
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrUnauthorized) || errors.Is(err, domain.ErrConflict) {
			return domain.Invite{}, err
		}
		return domain.Invite{}, xerrors.Errorf("failed to update invite %s: %w", id, err)
	}
	return updated, nil
}

// ListReceived returns the invites sent to email that are not deleted.
func (s *Service) ListReceived(ctx context.Context, email string) ([]domain.Invite, error) {
	q := s.client.Collection(collection).Where("invited_user", "==", email)
	invites, err := s.query(ctx, q)
	if err != nil {
		return nil, err
	}
	out := invites[:0]
	for _, inv := range invites {
		if inv.Status != domain.InviteDeleted {
			out = append(out, inv)
		}
	}
	return out, nil
}

// ListSent returns the pending invites sent by email.
func (s *Service) ListSent(ctx context.Context, email string) ([]domain.Invite, error) {
	q := s.client.Collection(collection).
		Where("inviter", "==", email).
		Where("status", "==", string(domain.InvitePending))
	return s.query(ctx, q)
}

// ListForLeagueUser returns every invite of email to league.
func (s *Service) ListForLeagueUser(ctx context.Context, leagueID, email string) ([]domain.Invite, error) {
	q := s.client.Collection(collection).
		Where("league", "==", leagueID).
		Where("invited_user", "==", email)
	return s.query(ctx, q)
}

func (s *Service) query(ctx context.Context, q firestore.Query) ([]domain.Invite, error) {
	iter := q.Documents(ctx)
	defer iter.Stop()

	invites := []domain.Invite{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, xerrors.Errorf("failed to list invites: %w", err)
		}
		inv, err := docToInvite(doc)
		if err != nil {
			return nil, err
		}
		invites = append(invites, inv)
	}
	return invites, nil
}

func docToInvite(doc *firestore.DocumentSnapshot) (domain.Invite, error) {
	var data inviteDoc
	if err := doc.DataTo(&data); err != nil {
		return domain.Invite{}, xerrors.Errorf("consistency error. Converting invite %s failed: %w", doc.Ref.ID, err)
	}
	return fromDoc(doc.Ref.ID, data), nil
}

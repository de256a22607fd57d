package leagues

import (
	"context"
	"errors"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/samborkent/uuidv7"
	"github.com/xorcare/pointer"
	"go.uber.org/zap"
	"golang.org/x/xerrors"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/racingleague/racing-league-app/domain"
)

const collection = "Leagues"

// Service stores leagues in Firestore, one document per league.
type Service struct {
	client *firestore.Client
	now    func() time.Time
}

// NewService creates a new Firestore backed league store.
func NewService(client *firestore.Client) *Service {
	return &Service{
		client: client,
		now:    time.Now,
	}
}

func (s *Service) Create(ctx context.Context, l *domain.League) (*domain.League, error) {
	created := l.Clone()
	if created.ID == "" {
		created.ID = uuidv7.New().String()
	}
	if created.CreatedAt.IsZero() {
		created.CreatedAt = s.now().UTC()
	}

	_, err := s.client.Collection(collection).Doc(created.ID).Create(ctx, toDoc(created))
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return nil, xerrors.Errorf("league %s already exists: %w", created.ID, domain.ErrConflict)
		}
		return nil, xerrors.Errorf("failed to create league: %w", err)
	}
	return created, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.League, error) {
	if id == "" {
		return nil, domain.ErrLeagueNotFound
	}
	doc, err := s.client.Collection(collection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, domain.ErrLeagueNotFound
		}
		return nil, xerrors.Errorf("failed to get league %s: %w", id, err)
	}
	l, err := s.docToLeague(doc)
	if err != nil {
		return nil, err
	}
	if l.IsDeleted() {
		return nil, domain.ErrLeagueNotFound
	}
	return l, nil
}

// Update loads the league, applies fn and writes the whole document back in
// one transaction. Firestore retries the transaction when the document
// changed underneath it, so fn must not have side effects.
func (s *Service) Update(ctx context.Context, id string, fn func(l *domain.League) error) (*domain.League, error) {
	if id == "" {
		return nil, domain.ErrLeagueNotFound
	}
	docRef := s.client.Collection(collection).Doc(id)

	var updated *domain.League
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return domain.ErrLeagueNotFound
			}
			return err
		}
		l, err := s.docToLeague(doc)
		if err != nil {
			return err
		}
		if l.IsDeleted() {
			return domain.ErrLeagueNotFound
		}

		if err := fn(l); err != nil {
			return err
		}
		l.UpdatedAt = pointer.Time(s.now().UTC())

		updated = l
		return tx.Set(docRef, toDoc(l))
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrUnauthorized) ||
			errors.Is(err, domain.ErrValidation) || errors.Is(err, domain.ErrConflict) {
			return nil, err
		}
		return nil, xerrors.Errorf("failed to update league %s: %w", id, err)
	}
	return updated, nil
}

func (s *Service) SoftDelete(ctx context.Context, id string, at time.Time) error {
	_, err := s.Update(ctx, id, func(l *domain.League) error {
		l.DeletedAt = pointer.Time(at.UTC())
		return nil
	})
	return err
}

// ListPublic returns every public league that is not deleted.
func (s *Service) ListPublic(ctx context.Context) ([]*domain.League, error) {
	q := s.client.Collection(collection).Where("public", "==", true)
	return s.query(ctx, q)
}

// ListPage returns one page of leagues ordered by creation time. Pages
// start at 1.
func (s *Service) ListPage(ctx context.Context, page, pageSize int) ([]*domain.League, error) {
	if page < 1 || pageSize < 1 {
		return nil, xerrors.Errorf("page and page size must be positive: %w", domain.ErrValidation)
	}
	q := s.client.Collection(collection).
		Where("deleted_at", "==", nil).
		OrderBy("created_at", firestore.Asc).
		Offset((page - 1) * pageSize).
		Limit(pageSize)
	return s.query(ctx, q)
}

func (s *Service) ListByOwner(ctx context.Context, email string) ([]*domain.League, error) {
	q := s.client.Collection(collection).Where("owner", "==", email)
	return s.query(ctx, q)
}

func (s *Service) ListByParticipant(ctx context.Context, email string) ([]*domain.League, error) {
	q := s.client.Collection(collection).Where("participantEmails", "array-contains", email)
	return s.query(ctx, q)
}

func (s *Service) query(ctx context.Context, q firestore.Query) ([]*domain.League, error) {
	iter := q.Documents(ctx)
	defer iter.Stop()

	leagues := []*domain.League{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, xerrors.Errorf("failed to list leagues: %w", err)
		}
		l, err := s.docToLeague(doc)
		if err != nil {
			zap.L().Warn("skipping unreadable league", zap.String("league_id", doc.Ref.ID), zap.Error(err))
			continue
		}
		if l.IsDeleted() {
			continue
		}
		leagues = append(leagues, l)
	}
	return leagues, nil
}

func (s *Service) docToLeague(doc *firestore.DocumentSnapshot) (*domain.League, error) {
	var data leagueDoc
	if err := doc.DataTo(&data); err != nil {
		// If this fails, we have an inconsistency error as we control both the data written to
		// Firestore and the shape of our leagueDoc struct.
		return nil, xerrors.Errorf("consistency error. Converting league %s failed: %w", doc.Ref.ID, err)
	}
	l, err := fromDoc(doc.Ref.ID, data, s.now())
	if err != nil {
		return nil, xerrors.Errorf("consistency error. Decoding league %s failed: %w", doc.Ref.ID, err)
	}
	return l, nil
}

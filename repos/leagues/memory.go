package leagues

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/samborkent/uuidv7"
	"github.com/xorcare/pointer"
	"golang.org/x/xerrors"

	"github.com/racingleague/racing-league-app/domain"
)

// MemoryStore keeps leagues in process. It round-trips every league through
// the stored document shape so it behaves like the Firestore store.
type MemoryStore struct {
	mu    sync.Mutex
	docs  map[string]leagueDoc
	order []string
	now   func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		docs: map[string]leagueDoc{},
		now:  time.Now,
	}
}

func (m *MemoryStore) load(id string) (*domain.League, error) {
	doc, ok := m.docs[id]
	if !ok {
		return nil, domain.ErrLeagueNotFound
	}
	l, err := fromDoc(id, doc, m.now())
	if err != nil {
		return nil, xerrors.Errorf("consistency error. Decoding league %s failed: %w", id, err)
	}
	return l, nil
}

func (m *MemoryStore) Create(_ context.Context, l *domain.League) (*domain.League, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	created := l.Clone()
	if created.ID == "" {
		created.ID = uuidv7.New().String()
	}
	if _, ok := m.docs[created.ID]; ok {
		return nil, xerrors.Errorf("league %s already exists: %w", created.ID, domain.ErrConflict)
	}
	if created.CreatedAt.IsZero() {
		created.CreatedAt = m.now().UTC()
	}
	m.docs[created.ID] = toDoc(created)
	m.order = append(m.order, created.ID)
	return m.load(created.ID)
}

func (m *MemoryStore) Get(_ context.Context, id string) (*domain.League, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	l, err := m.load(id)
	if err != nil {
		return nil, err
	}
	if l.IsDeleted() {
		return nil, domain.ErrLeagueNotFound
	}
	return l, nil
}

// Update holds the store lock for the whole read-modify-write, so updates of
// the same league are serialized.
func (m *MemoryStore) Update(_ context.Context, id string, fn func(l *domain.League) error) (*domain.League, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	l, err := m.load(id)
	if err != nil {
		return nil, err
	}
	if l.IsDeleted() {
		return nil, domain.ErrLeagueNotFound
	}
	if err := fn(l); err != nil {
		return nil, err
	}
	l.UpdatedAt = pointer.Time(m.now().UTC())
	m.docs[id] = toDoc(l)
	return m.load(id)
}

func (m *MemoryStore) SoftDelete(ctx context.Context, id string, at time.Time) error {
	_, err := m.Update(ctx, id, func(l *domain.League) error {
		l.DeletedAt = pointer.Time(at.UTC())
		return nil
	})
	return err
}

func (m *MemoryStore) list(keep func(l *domain.League) bool) ([]*domain.League, error) {
	leagues := []*domain.League{}
	for _, id := range m.order {
		l, err := m.load(id)
		if err != nil {
			return nil, err
		}
		if l.IsDeleted() || !keep(l) {
			continue
		}
		leagues = append(leagues, l)
	}
	return leagues, nil
}

func (m *MemoryStore) ListPublic(_ context.Context) ([]*domain.League, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.list(func(l *domain.League) bool { return l.Public })
}

func (m *MemoryStore) ListPage(_ context.Context, page, pageSize int) ([]*domain.League, error) {
	if page < 1 || pageSize < 1 {
		return nil, xerrors.Errorf("page and page size must be positive: %w", domain.ErrValidation)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	all, err := m.list(func(*domain.League) bool { return true })
	if err != nil {
		return nil, err
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].CreatedAt.Before(all[j].CreatedAt) })

	start := (page - 1) * pageSize
	if start >= len(all) {
		return []*domain.League{}, nil
	}
	end := start + pageSize
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], nil
}

func (m *MemoryStore) ListByOwner(_ context.Context, email string) ([]*domain.League, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.list(func(l *domain.League) bool { return l.Owner == email })
}

func (m *MemoryStore) ListByParticipant(_ context.Context, email string) ([]*domain.League, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.list(func(l *domain.League) bool { return l.HasParticipant(email) })
}

package invites

import (
	"context"
	"sync"

	"github.com/samborkent/uuidv7"

	"github.com/racingleague/racing-league-app/domain"
)

// MemoryStore keeps invites in process.
type MemoryStore struct {
	mu    sync.Mutex
	docs  map[string]inviteDoc
	order []string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: map[string]inviteDoc{}}
}

func (m *MemoryStore) Create(_ context.Context, inv domain.Invite) (domain.Invite, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if inv.ID == "" {
		inv.ID = uuidv7.New().String()
	}
	m.docs[inv.ID] = toDoc(inv)
	m.order = append(m.order, inv.ID)
	return fromDoc(inv.ID, m.docs[inv.ID]), nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (domain.Invite, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, ok := m.docs[id]
	if !ok {
		return domain.Invite{}, domain.ErrInviteNotFound
	}
	return fromDoc(id, doc), nil
}

func (m *MemoryStore) Update(_ context.Context, id string, fn func(inv *domain.Invite) error) (domain.Invite, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, ok := m.docs[id]
	if !ok {
		return domain.Invite{}, domain.ErrInviteNotFound
	}
	inv := fromDoc(id, doc)
	if err := fn(&inv); err != nil {
		return domain.Invite{}, err
	}
	m.docs[id] = toDoc(inv)
	return inv, nil
}

func (m *MemoryStore) list(keep func(inv domain.Invite) bool) []domain.Invite {
	invites := []domain.Invite{}
	for _, id := range m.order {
		inv := fromDoc(id, m.docs[id])
		if keep(inv) {
			invites = append(invites, inv)
		}
	}
	return invites
}

func (m *MemoryStore) ListReceived(_ context.Context, email string) ([]domain.Invite, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.list(func(inv domain.Invite) bool {
		return inv.InvitedUser == email && inv.Status != domain.InviteDeleted
	}), nil
}

func (m *MemoryStore) ListSent(_ context.Context, email string) ([]domain.Invite, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.list(func(inv domain.Invite) bool {
		return inv.Inviter == email && inv.Status == domain.InvitePending
	}), nil
}

func (m *MemoryStore) ListForLeagueUser(_ context.Context, leagueID, email string) ([]domain.Invite, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.list(func(inv domain.Invite) bool {
		return inv.LeagueID == leagueID && inv.InvitedUser == email
	}), nil
}

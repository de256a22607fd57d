package leagues

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/racingleague/racing-league-app/domain"
)

// Store persists leagues.
type Store interface {
	Create(ctx context.Context, l *domain.League) (*domain.League, error)
	Get(ctx context.Context, id string) (*domain.League, error)
	Update(ctx context.Context, id string, fn func(l *domain.League) error) (*domain.League, error)
	SoftDelete(ctx context.Context, id string, at time.Time) error
	ListPublic(ctx context.Context) ([]*domain.League, error)
	ListPage(ctx context.Context, page, pageSize int) ([]*domain.League, error)
	ListByOwner(ctx context.Context, email string) ([]*domain.League, error)
	ListByParticipant(ctx context.Context, email string) ([]*domain.League, error)
}

// Directory resolves display names.
type Directory interface {
	Lookup(ctx context.Context, email string) (domain.User, error)
}

// Notifier is told about published results. Delivery is best effort.
type Notifier interface {
	SendResultsPublished(ctx context.Context, league *domain.League, raceID string) error
}

type LeaguesService struct {
	store     Store
	directory Directory
	notifier  Notifier
	now       func() time.Time
}

func NewLeaguesService(store Store, directory Directory, notifier Notifier) *LeaguesService {
	return &LeaguesService{
		store:     store,
		directory: directory,
		notifier:  notifier,
		now:       time.Now,
	}
}

func (s *LeaguesService) view(l *domain.League) *LeagueView {
	return &LeagueView{
		League:            l,
		ParticipantsCount: len(l.Participants),
		NextRace:          l.NextRace(s.now()),
	}
}

func (s *LeaguesService) views(leagues []*domain.League) []*LeagueView {
	out := make([]*LeagueView, 0, len(leagues))
	for _, l := range leagues {
		out = append(out, s.view(l))
	}
	return out
}

// displayName asks the directory for a name. Lookup failures are not fatal.
func (s *LeaguesService) displayName(ctx context.Context, email string) string {
	if s.directory == nil {
		return ""
	}
	u, err := s.directory.Lookup(ctx, email)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			zap.L().Warn("user lookup failed", zap.String("email", email), zap.Error(err))
		}
		return ""
	}
	return u.Name
}

func (s *LeaguesService) loadAdmin(ctx context.Context, leagueID, caller string) (*domain.League, error) {
	l, err := s.store.Get(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	if !l.IsAdmin(caller) {
		return nil, domain.ErrNotLeagueAdmin
	}
	return l, nil
}

// updateAsAdmin runs fn as an update that only the owner or an admin may do.
func (s *LeaguesService) updateAsAdmin(ctx context.Context, leagueID, caller string, fn func(l *domain.League) error) (*domain.League, error) {
	return s.store.Update(ctx, leagueID, func(l *domain.League) error {
		if !l.IsAdmin(caller) {
			return domain.ErrNotLeagueAdmin
		}
		return fn(l)
	})
}

func (s *LeaguesService) CreateLeague(ctx context.Context, caller string, req CreateLeagueRequest) (*LeagueView, error) {
	now := s.now()
	l := domain.NewLeague(req.Name, caller, now)
	l.Public = req.Public
	l.FastestLapPoint = req.FastestLapPoint
	l.Status = req.Status
	if req.MaxPlayers != nil {
		l.MaxPlayers = *req.MaxPlayers
	}
	for k, v := range req.PointSystem {
		l.PointSystem[k] = v
	}
	for _, a := range req.Admins {
		l.Admins = append(l.Admins, normalizeEmail(a))
	}
	for _, r := range req.Calendar {
		l.Calendar = append(l.Calendar, r.toRace(now))
	}

	created, err := s.store.Create(ctx, l)
	if err != nil {
		return nil, fmt.Errorf("failed to create league -> %w", err)
	}
	zap.L().Info("league created", zap.String("league_id", created.ID), zap.String("owner", caller))
	return s.view(created), nil
}

func (s *LeaguesService) GetLeague(ctx context.Context, leagueID string) (*LeagueView, error) {
	l, err := s.store.Get(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	for i, p := range l.Participants {
		if p.LeagueUserName == "" {
			l.Participants[i].LeagueUserName = s.displayName(ctx, p.Email)
			if l.Participants[i].LeagueUserName == "" {
				l.Participants[i].LeagueUserName = p.Email
			}
		}
	}
	return s.view(l), nil
}

// UpdateLeague changes league settings. Races keep their id and status when
// they are sent back with their id; new races start as upcoming.
func (s *LeaguesService) UpdateLeague(ctx context.Context, caller, leagueID string, req UpdateLeagueRequest) (*LeagueView, error) {
	now := s.now()
	updated, err := s.updateAsAdmin(ctx, leagueID, caller, func(l *domain.League) error {
		if req.Name != nil {
			l.Name = *req.Name
		}
		if req.Public != nil {
			l.Public = *req.Public
		}
		if req.FastestLapPoint != nil {
			l.FastestLapPoint = *req.FastestLapPoint
		}
		if req.MaxPlayers != nil {
			l.MaxPlayers = *req.MaxPlayers
		}
		if req.Status != nil {
			l.Status = *req.Status
		}
		if req.PointSystem != nil {
			l.PointSystem = domain.PointSystem{}
			for k, v := range req.PointSystem {
				l.PointSystem[k] = v
			}
		}
		if req.Admins != nil {
			l.Admins = []string{}
			for _, a := range req.Admins {
				l.Admins = append(l.Admins, normalizeEmail(a))
			}
		}
		if req.Calendar != nil {
			l.Calendar = mergeCalendar(l.Calendar, req.Calendar, now)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.view(updated), nil
}

func mergeCalendar(current []domain.Race, incoming []RaceRequest, now time.Time) []domain.Race {
	existing := make(map[string]domain.Race, len(current))
	for _, r := range current {
		existing[r.ID] = r
	}

	calendar := make([]domain.Race, 0, len(incoming))
	for _, in := range incoming {
		race := in.toRace(now)
		if old, ok := existing[in.ID]; ok && in.ID != "" {
			race.Status = old.Status
			if in.Date == "" {
				race.Date = old.Date
			}
		}
		calendar = append(calendar, race)
	}
	return calendar
}

func (s *LeaguesService) DeleteLeague(ctx context.Context, caller, leagueID string) error {
	if _, err := s.loadAdmin(ctx, leagueID, caller); err != nil {
		return err
	}
	if err := s.store.SoftDelete(ctx, leagueID, s.now()); err != nil {
		return err
	}
	zap.L().Info("league deleted", zap.String("league_id", leagueID), zap.String("by", caller))
	return nil
}

func (s *LeaguesService) PublicLeagues(ctx context.Context) ([]*LeagueView, error) {
	leagues, err := s.store.ListPublic(ctx)
	if err != nil {
		return nil, err
	}
	return s.views(leagues), nil
}

func (s *LeaguesService) LeaguesPage(ctx context.Context, page, pageSize int) (*PageResponse, error) {
	leagues, err := s.store.ListPage(ctx, page, pageSize)
	if err != nil {
		return nil, err
	}
	return &PageResponse{Page: page, PageSize: pageSize, Leagues: s.views(leagues)}, nil
}

// MyLeagues returns the leagues the caller owns or races in, each with the
// caller's position in the overall standings.
func (s *LeaguesService) MyLeagues(ctx context.Context, caller string) ([]*LeagueView, error) {
	owned, err := s.store.ListByOwner(ctx, caller)
	if err != nil {
		return nil, err
	}
	joined, err := s.store.ListByParticipant(ctx, caller)
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	views := []*LeagueView{}
	for _, l := range append(owned, joined...) {
		if seen[l.ID] {
			continue
		}
		seen[l.ID] = true
		v := s.view(l)
		v.Position = l.PositionOf(caller)
		views = append(views, v)
	}
	sort.SliceStable(views, func(i, j int) bool { return views[i].CreatedAt.After(views[j].CreatedAt) })
	return views, nil
}

// Join adds the caller to a public league that still has room.
func (s *LeaguesService) Join(ctx context.Context, caller, leagueID, leagueUserName string) (*LeagueView, error) {
	name := s.displayName(ctx, caller)
	updated, err := s.store.Update(ctx, leagueID, func(l *domain.League) error {
		if !l.Public {
			return domain.ErrPrivateLeague
		}
		if l.HasParticipant(caller) {
			return nil
		}
		if l.IsFull() {
			return domain.ErrLeagueFull
		}
		l.AddParticipant(caller, name, leagueUserName)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.view(updated), nil
}

func (s *LeaguesService) Leave(ctx context.Context, caller, leagueID string) error {
	_, err := s.store.Update(ctx, leagueID, func(l *domain.League) error {
		if !l.RemoveParticipant(caller) {
			return &domain.ParticipantNotInLeagueError{Email: caller}
		}
		return nil
	})
	return err
}

// AddParticipant adds someone else to the league. Adding an existing member
// is a no-op.
func (s *LeaguesService) AddParticipant(ctx context.Context, caller, leagueID string, req AddParticipantRequest) (*LeagueView, error) {
	email := normalizeEmail(req.Email)
	name := s.displayName(ctx, email)
	updated, err := s.updateAsAdmin(ctx, leagueID, caller, func(l *domain.League) error {
		l.AddParticipant(email, name, req.LeagueUserName)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.view(updated), nil
}

// AddInvitedParticipant adds the invitee of an accepted invite.
func (s *LeaguesService) AddInvitedParticipant(ctx context.Context, leagueID, email string) error {
	name := s.displayName(ctx, email)
	_, err := s.store.Update(ctx, leagueID, func(l *domain.League) error {
		l.AddParticipant(email, name, "")
		return nil
	})
	return err
}

func (s *LeaguesService) RemoveParticipant(ctx context.Context, caller, leagueID, email string) (*LeagueView, error) {
	email = normalizeEmail(email)
	updated, err := s.updateAsAdmin(ctx, leagueID, caller, func(l *domain.League) error {
		if !l.RemoveParticipant(email) {
			return &domain.ParticipantNotInLeagueError{Email: email}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.view(updated), nil
}

// SubmitResults records the results of a race and recomputes the standings.
// Participants are notified in the background.
func (s *LeaguesService) SubmitResults(ctx context.Context, caller, leagueID, raceID string, results map[string]domain.ResultInput) (domain.Standings, error) {
	normalized := make(map[string]domain.ResultInput, len(results))
	for email, r := range results {
		key := normalizeEmail(email)
		if _, dup := normalized[key]; dup {
			return domain.Standings{}, fmt.Errorf("%s listed more than once: %w", key, domain.ErrInvalidResults)
		}
		normalized[key] = r
	}

	var standings domain.Standings
	updated, err := s.updateAsAdmin(ctx, leagueID, caller, func(l *domain.League) error {
		var err error
		standings, err = l.AddRaceResult(raceID, normalized)
		return err
	})
	if err != nil {
		return domain.Standings{}, err
	}

	zap.L().Info("race results submitted",
		zap.String("league_id", leagueID),
		zap.String("race_id", raceID),
		zap.Int("results", len(normalized)),
	)
	s.notifyResults(ctx, updated, raceID)
	return standings, nil
}

func (s *LeaguesService) notifyResults(ctx context.Context, l *domain.League, raceID string) {
	if s.notifier == nil {
		return
	}
	ctx = context.WithoutCancel(ctx)
	go func() {
		if err := s.notifier.SendResultsPublished(ctx, l, raceID); err != nil {
			zap.L().Warn("failed to notify participants",
				zap.String("league_id", l.ID),
				zap.String("race_id", raceID),
				zap.Error(err),
			)
		}
	}()
}

func (s *LeaguesService) Standings(ctx context.Context, leagueID string) (domain.Standings, error) {
	l, err := s.store.Get(ctx, leagueID)
	if err != nil {
		return domain.Standings{}, err
	}
	return l.Standings, nil
}

func (s *LeaguesService) ParticipantStandings(ctx context.Context, leagueID, email string) (domain.ParticipantStandings, error) {
	l, err := s.store.Get(ctx, leagueID)
	if err != nil {
		return domain.ParticipantStandings{}, err
	}
	return l.ParticipantStandings(normalizeEmail(email))
}

func (s *LeaguesService) NextRace(ctx context.Context, leagueID string) (*domain.Race, error) {
	l, err := s.store.Get(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	return l.NextRace(s.now()), nil
}

func (s *LeaguesService) SetTeams(ctx context.Context, caller, leagueID string, teams map[string][]string) ([]domain.Team, error) {
	normalized := make(map[string][]string, len(teams))
	for name, members := range teams {
		list := make([]string, 0, len(members))
		for _, m := range members {
			list = append(list, normalizeEmail(m))
		}
		normalized[name] = list
	}

	updated, err := s.updateAsAdmin(ctx, leagueID, caller, func(l *domain.League) error {
		return l.SetTeams(normalized)
	})
	if err != nil {
		return nil, err
	}
	return updated.GetTeams(), nil
}

func (s *LeaguesService) Teams(ctx context.Context, leagueID string) ([]domain.Team, error) {
	l, err := s.store.Get(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	return l.GetTeams(), nil
}

func (s *LeaguesService) TeamStandings(ctx context.Context, leagueID string) ([]domain.TeamStanding, error) {
	l, err := s.store.Get(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	return l.TeamStandings(), nil
}

func (s *LeaguesService) RemoveTeam(ctx context.Context, caller, leagueID, name string) error {
	_, err := s.updateAsAdmin(ctx, leagueID, caller, func(l *domain.League) error {
		l.RemoveTeam(name)
		return nil
	})
	return err
}

// ParseResults turns extracted result text into a draft submission for the
// league. The draft is returned, never submitted.
func (s *LeaguesService) ParseResults(ctx context.Context, caller, leagueID, raw string) (*ResultDraft, error) {
	l, err := s.loadAdmin(ctx, leagueID, caller)
	if err != nil {
		return nil, err
	}
	rows, err := ParseExtractedRows(raw)
	if err != nil {
		return nil, err
	}
	return MatchRows(l, rows), nil
}

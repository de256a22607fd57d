package leagues

import (
	"fmt"
	"strings"
	"time"

	"github.com/samborkent/uuidv7"

	"github.com/racingleague/racing-league-app/domain"
	timehelper "github.com/racingleague/racing-league-app/pkg/timeHelper"
)

// leagueDoc is the stored shape of a league. Participants and calendar
// entries are kept untyped because older documents encode them differently.
type leagueDoc struct {
	Name              string              `firestore:"name"`
	Owner             string              `firestore:"owner"`
	Public            bool                `firestore:"public"`
	Admins            []string            `firestore:"admins"`
	Participants      []interface{}       `firestore:"participants"`
	ParticipantEmails []string            `firestore:"participantEmails"`
	Calendar          []interface{}       `firestore:"calendar"`
	PointSystem       map[string]int      `firestore:"pointSystem"`
	FastestLapPoint   int                 `firestore:"fastestLapPoint"`
	MaxPlayers        int                 `firestore:"max_players"`
	Standings         standingsDoc        `firestore:"standings"`
	Teams             map[string][]string `firestore:"teams"`
	Status            string              `firestore:"status"`
	CreatedAt         time.Time           `firestore:"created_at"`
	UpdatedAt         *time.Time          `firestore:"updated_at"`
	DeletedAt         *time.Time          `firestore:"deleted_at"`
}

type standingsDoc struct {
	Overall map[string]statsDoc            `firestore:"overall"`
	Races   map[string]map[string]entryDoc `firestore:"races"`
}

type statsDoc struct {
	Name        string `firestore:"name"`
	Points      int    `firestore:"points"`
	Wins        int    `firestore:"wins"`
	Podiums     int    `firestore:"podiums"`
	DNFs        int    `firestore:"dnfs"`
	FastestLaps int    `firestore:"fastestLaps"`
}

type entryDoc struct {
	Position   int  `firestore:"position"`
	Points     int  `firestore:"points"`
	FastestLap bool `firestore:"fastest_lap"`
	DNF        bool `firestore:"dnf"`
	Wins       int  `firestore:"wins"`
	Podiums    int  `firestore:"podiums"`
}

func toDoc(l *domain.League) leagueDoc {
	doc := leagueDoc{
		Name:              l.Name,
		Owner:             l.Owner,
		Public:            l.Public,
		Admins:            append([]string{}, l.Admins...),
		Participants:      make([]interface{}, 0, len(l.Participants)),
		ParticipantEmails: l.ParticipantEmails(),
		Calendar:          make([]interface{}, 0, len(l.Calendar)),
		PointSystem:       map[string]int{},
		FastestLapPoint:   l.FastestLapPoint,
		MaxPlayers:        l.MaxPlayers,
		Standings: standingsDoc{
			Overall: map[string]statsDoc{},
			Races:   map[string]map[string]entryDoc{},
		},
		Teams:     map[string][]string{},
		Status:    l.Status,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
		DeletedAt: l.DeletedAt,
	}

	for _, p := range l.Participants {
		doc.Participants = append(doc.Participants, map[string]interface{}{
			"email":            p.Email,
			"league_user_name": p.LeagueUserName,
		})
	}
	for _, r := range l.Calendar {
		doc.Calendar = append(doc.Calendar, map[string]interface{}{
			"_id":    r.ID,
			"track":  r.Track,
			"date":   timehelper.FormatRaceDate(r.Date),
			"status": string(r.Status),
		})
	}
	for k, v := range l.PointSystem {
		doc.PointSystem[k] = v
	}
	for email, s := range l.Standings.Overall {
		doc.Standings.Overall[email] = statsDoc(s)
	}
	for raceID, results := range l.Standings.Races {
		entries := make(map[string]entryDoc, len(results))
		for email, e := range results {
			entries[email] = entryDoc(e)
		}
		doc.Standings.Races[raceID] = entries
	}
	for name, members := range l.Teams {
		doc.Teams[name] = append([]string{}, members...)
	}
	return doc
}

// fromDoc normalizes a stored document into a league. now is used for race
// dates that are missing or cannot be parsed.
func fromDoc(id string, doc leagueDoc, now time.Time) (*domain.League, error) {
	l := domain.NewLeague(doc.Name, foldEmail(doc.Owner), doc.CreatedAt)
	l.ID = id
	l.Public = doc.Public
	l.FastestLapPoint = doc.FastestLapPoint
	if doc.MaxPlayers > 0 {
		l.MaxPlayers = doc.MaxPlayers
	}
	l.Status = doc.Status
	l.UpdatedAt = doc.UpdatedAt
	l.DeletedAt = doc.DeletedAt
	if doc.CreatedAt.IsZero() {
		l.CreatedAt = now.UTC()
	}
	for _, a := range doc.Admins {
		l.Admins = append(l.Admins, foldEmail(a))
	}

	for i, raw := range doc.Participants {
		p, err := decodeParticipant(raw)
		if err != nil {
			return nil, fmt.Errorf("participant %d -> %w", i, err)
		}
		if l.HasParticipant(p.Email) {
			continue
		}
		l.Participants = append(l.Participants, p)
	}

	for i, raw := range doc.Calendar {
		r, err := decodeRace(raw, now)
		if err != nil {
			return nil, fmt.Errorf("calendar entry %d -> %w", i, err)
		}
		l.Calendar = append(l.Calendar, r)
	}

	for k, v := range doc.PointSystem {
		l.PointSystem[k] = v
	}
	for email, s := range doc.Standings.Overall {
		l.Standings.Overall[foldEmail(email)] = domain.Stats(s)
	}
	for raceID, entries := range doc.Standings.Races {
		results := make(domain.RaceResults, len(entries))
		for email, e := range entries {
			results[foldEmail(email)] = domain.RaceEntry(e)
		}
		l.Standings.Races[raceID] = results
	}
	for name, members := range doc.Teams {
		folded := make([]string, 0, len(members))
		for _, m := range members {
			folded = append(folded, foldEmail(m))
		}
		l.Teams[name] = folded
	}
	return l, nil
}

// foldEmail lowercases stored emails to match the lowercased caller
// identities.
func foldEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// decodeParticipant accepts the legacy bare email and the current
// {email, league_user_name} object.
func decodeParticipant(raw interface{}) (domain.Participant, error) {
	switch v := raw.(type) {
	case string:
		email := foldEmail(v)
		if email == "" {
			return domain.Participant{}, fmt.Errorf("empty participant email")
		}
		return domain.Participant{Email: email}, nil
	case map[string]interface{}:
		email, _ := v["email"].(string)
		email = foldEmail(email)
		if email == "" {
			return domain.Participant{}, fmt.Errorf("participant object without email: %v", v)
		}
		name, _ := v["league_user_name"].(string)
		return domain.Participant{Email: email, LeagueUserName: strings.TrimSpace(name)}, nil
	default:
		return domain.Participant{}, fmt.Errorf("unsupported participant encoding %T", raw)
	}
}

// decodeRace accepts a legacy bare track name and the race object. Missing
// ids are generated, missing status is Upcoming.
func decodeRace(raw interface{}, now time.Time) (domain.Race, error) {
	switch v := raw.(type) {
	case string:
		return domain.NewRace(v, now), nil
	case map[string]interface{}:
		track, _ := v["track"].(string)
		id, _ := v["_id"].(string)
		if id == "" {
			id = uuidv7.New().String()
		}
		status := domain.RaceUpcoming
		if s, _ := v["status"].(string); s != "" {
			status = domain.RaceStatus(s)
		}
		return domain.Race{
			ID:     id,
			Track:  track,
			Date:   timehelper.NormalizeDate(v["date"], now),
			Status: status,
		}, nil
	default:
		return domain.Race{}, fmt.Errorf("unsupported race encoding %T", raw)
	}
}

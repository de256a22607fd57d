package leagues

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/racingleague/racing-league-app/domain"
	timehelper "github.com/racingleague/racing-league-app/pkg/timeHelper"
)

// LeagueView is a league as returned to clients.
type LeagueView struct {
	*domain.League
	ParticipantsCount int          `json:"participantsCount"`
	NextRace          *domain.Race `json:"next_race"`
	Position          *int         `json:"position,omitempty"`
}

type RaceRequest struct {
	ID    string `json:"_id"`
	Track string `json:"track"`
	Date  string `json:"date"`
}

func (r RaceRequest) Validate() error {
	return validation.ValidateStruct(
		&r,
		validation.Field(&r.Track, validation.Required, validation.Length(1, 100)),
	)
}

// toRace parses the date. A missing or unparseable date becomes now.
func (r RaceRequest) toRace(now time.Time) domain.Race {
	race := domain.NewRace(strings.TrimSpace(r.Track), timehelper.NormalizeDate(r.Date, now))
	if r.ID != "" {
		race.ID = r.ID
	}
	return race
}

type CreateLeagueRequest struct {
	Name            string             `json:"name"`
	Public          bool               `json:"public"`
	Calendar        []RaceRequest      `json:"calendar"`
	PointSystem     domain.PointSystem `json:"pointSystem"`
	FastestLapPoint int                `json:"fastestLapPoint"`
	MaxPlayers      *int               `json:"max_players"`
	Status          string             `json:"status"`
	Admins          []string           `json:"admins"`
}

func (req *CreateLeagueRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Calendar),
		validation.Field(&req.PointSystem, validation.By(validPointSystem)),
		validation.Field(&req.FastestLapPoint, validation.Min(0)),
		validation.Field(&req.MaxPlayers, validation.Min(1)),
		validation.Field(&req.Admins, validation.By(validEmails)),
	)
}

type UpdateLeagueRequest struct {
	Name            *string            `json:"name"`
	Public          *bool              `json:"public"`
	Calendar        []RaceRequest      `json:"calendar"`
	PointSystem     domain.PointSystem `json:"pointSystem"`
	FastestLapPoint *int               `json:"fastestLapPoint"`
	MaxPlayers      *int               `json:"max_players"`
	Status          *string            `json:"status"`
	Admins          []string           `json:"admins"`
}

func (req *UpdateLeagueRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.NilOrNotEmpty, validation.Length(1, 100)),
		validation.Field(&req.Calendar),
		validation.Field(&req.PointSystem, validation.By(validPointSystem)),
		validation.Field(&req.FastestLapPoint, validation.Min(0)),
		validation.Field(&req.MaxPlayers, validation.Min(1)),
		validation.Field(&req.Admins, validation.By(validEmails)),
	)
}

type AddParticipantRequest struct {
	Email          string `json:"email"`
	LeagueUserName string `json:"league_user_name"`
}

func (req *AddParticipantRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.LeagueUserName, validation.Length(0, 50)),
	)
}

type JoinRequest struct {
	LeagueUserName string `json:"league_user_name"`
}

type ParseResultsRequest struct {
	Raw string `json:"raw"`
}

func (req *ParseResultsRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Raw, validation.Required),
	)
}

type PageResponse struct {
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
	Leagues  []*LeagueView `json:"leagues"`
}

func validPointSystem(value interface{}) error {
	points, _ := value.(domain.PointSystem)
	for position, p := range points {
		n, err := strconv.Atoi(position)
		if err != nil || n < 1 {
			return fmt.Errorf("position %q is not a positive integer", position)
		}
		if p < 0 {
			return fmt.Errorf("points for position %s must not be negative", position)
		}
	}
	return nil
}

func validEmails(value interface{}) error {
	emails, _ := value.([]string)
	for _, e := range emails {
		if err := is.Email.Validate(e); err != nil {
			return fmt.Errorf("%q: %w", e, err)
		}
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

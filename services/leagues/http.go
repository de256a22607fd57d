package leagues

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/racingleague/racing-league-app/domain"
	"github.com/racingleague/racing-league-app/pkg/auth"
	"github.com/racingleague/racing-league-app/pkg/response"
)

// Router is the interface for a router.
type Router interface {
	GET(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	POST(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	PUT(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	DELETE(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	Use(middleware ...gin.HandlerFunc) gin.IRoutes
	Group(relativePath string, handlers ...gin.HandlerFunc) *gin.RouterGroup
}

// Leagues is the interface for the league service.
type Leagues interface {
	CreateLeague(ctx context.Context, caller string, req CreateLeagueRequest) (*LeagueView, error)
	GetLeague(ctx context.Context, leagueID string) (*LeagueView, error)
	UpdateLeague(ctx context.Context, caller, leagueID string, req UpdateLeagueRequest) (*LeagueView, error)
	DeleteLeague(ctx context.Context, caller, leagueID string) error
	PublicLeagues(ctx context.Context) ([]*LeagueView, error)
	LeaguesPage(ctx context.Context, page, pageSize int) (*PageResponse, error)
	MyLeagues(ctx context.Context, caller string) ([]*LeagueView, error)
	Join(ctx context.Context, caller, leagueID, leagueUserName string) (*LeagueView, error)
	Leave(ctx context.Context, caller, leagueID string) error
	AddParticipant(ctx context.Context, caller, leagueID string, req AddParticipantRequest) (*LeagueView, error)
	RemoveParticipant(ctx context.Context, caller, leagueID, email string) (*LeagueView, error)
	SubmitResults(ctx context.Context, caller, leagueID, raceID string, results map[string]domain.ResultInput) (domain.Standings, error)
	Standings(ctx context.Context, leagueID string) (domain.Standings, error)
	ParticipantStandings(ctx context.Context, leagueID, email string) (domain.ParticipantStandings, error)
	NextRace(ctx context.Context, leagueID string) (*domain.Race, error)
	SetTeams(ctx context.Context, caller, leagueID string, teams map[string][]string) ([]domain.Team, error)
	Teams(ctx context.Context, leagueID string) ([]domain.Team, error)
	TeamStandings(ctx context.Context, leagueID string) ([]domain.TeamStanding, error)
	RemoveTeam(ctx context.Context, caller, leagueID, name string) error
	ParseResults(ctx context.Context, caller, leagueID, raw string) (*ResultDraft, error)
}

// HTTPOptions contains all the options needed for the HTTP handler.
type HTTPOptions struct {

	// The service we provides the HTTP transport for.
	Service Leagues

	// The router for authenticated routes.
	Router Router

	// The router for routes open to anonymous callers. Router is used when
	// it is nil.
	PublicRouter Router
}

// NewHTTPHandler creates a new HTTP handler.
func NewHTTPHandler(opts HTTPOptions) {
	r := opts.Router
	public := opts.PublicRouter
	if public == nil {
		public = r
	}
	h := &httpHandler{opts}

	public.GET("/public", h.publicLeaguesHandler)

	r.GET("/all", h.publicLeaguesHandler)
	r.GET("/page/:page/:page_size", h.pageHandler)
	r.GET("/my", h.myLeaguesHandler)
	r.POST("", h.createLeagueHandler)
	r.GET("/:league_id", h.getLeagueHandler)
	r.PUT("/:league_id", h.updateLeagueHandler)
	r.DELETE("/:league_id", h.deleteLeagueHandler)
	r.POST("/:league_id/join", h.joinHandler)
	r.POST("/:league_id/leave", h.leaveHandler)
	r.POST("/:league_id/participants", h.addParticipantHandler)
	r.DELETE("/:league_id/participants/:email", h.removeParticipantHandler)
	r.POST("/:league_id/races/:race_id/results", h.submitResultsHandler)
	r.POST("/:league_id/results/parse", h.parseResultsHandler)
	r.GET("/:league_id/standings", h.standingsHandler)
	r.GET("/:league_id/standings/:participant_email", h.participantStandingsHandler)
	r.GET("/:league_id/next-race", h.nextRaceHandler)
	r.GET("/:league_id/teams", h.teamsHandler)
	r.PUT("/:league_id/teams", h.setTeamsHandler)
	r.GET("/:league_id/teams/standings", h.teamStandingsHandler)
	r.DELETE("/:league_id/teams/:team_name", h.removeTeamHandler)
}

type httpHandler struct {
	HTTPOptions
}

func (s *httpHandler) publicLeaguesHandler(c *gin.Context) {
	leagues, err := s.Service.PublicLeagues(c)
	if err != nil {
		response.RenderErr(c, err)
		return
	}
	c.JSON(http.StatusOK, leagues)
}

func (s *httpHandler) pageHandler(c *gin.Context) {
	page, err := strconv.Atoi(c.Param("page"))
	if err != nil {
		response.BadRequest(c, err)
		return
	}
	pageSize, err := strconv.Atoi(c.Param("page_size"))
	if err != nil {
		response.BadRequest(c, err)
		return
	}

	res, err := s.Service.LeaguesPage(c, page, pageSize)
	if err != nil {
		response.RenderErr(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *httpHandler) myLeaguesHandler(c *gin.Context) {
	leagues, err := s.Service.MyLeagues(c, auth.Email(c))
	if err != nil {
		response.RenderErr(c, err)
		return
	}
	c.JSON(http.StatusOK, leagues)
}

func (s *httpHandler) createLeagueHandler(c *gin.Context) {
	var request CreateLeagueRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BadRequest(c, err)
		return
	}
	if err := request.Validate(); err != nil {
		response.BadRequest(c, err)
		return
	}

	league, err := s.Service.CreateLeague(c, auth.Email(c), request)
	if err != nil {
		response.RenderErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, league)
}

func (s *httpHandler) getLeagueHandler(c *gin.Context) {
	league, err := s.Service.GetLeague(c, c.Param("league_id"))
	if err != nil {
		response.RenderErr(c, err)
		return
	}
	c.JSON(http.StatusOK, league)
}

func (s *httpHandler) updateLeagueHandler(c *gin.Context) {
	var request UpdateLeagueRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BadRequest(c, err)
		return
	}
	if err := request.Validate(); err != nil {
		response.BadRequest(c, err)
		return
	}

	league, err := s.Service.UpdateLeague(c, auth.Email(c), c.Param("league_id"), request)
	if err != nil {
		response.RenderErr(c, err)
		return
	}
	c.JSON(http.StatusOK, league)
}

func (s *httpHandler) deleteLeagueHandler(c *gin.Context) {
	if err := s.Service.DeleteLeague(c, auth.Email(c), c.Param("league_id")); err != nil {
		response.RenderErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "League deleted successfully!"})
}

func (s *httpHandler) joinHandler(c *gin.Context) {
	var request JoinRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&request); err != nil {
			response.BadRequest(c, err)
			return
		}
	}

	league, err := s.Service.Join(c, auth.Email(c), c.Param("league_id"), request.LeagueUserName)
	if err != nil {
		response.RenderErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "You have joined the league!", "league": league})
}

func (s *httpHandler) leaveHandler(c *gin.Context) {
	if err := s.Service.Leave(c, auth.Email(c), c.Param("league_id")); err != nil {
		response.RenderErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "You have left the league!"})
}

func (s *httpHandler) addParticipantHandler(c *gin.Context) {
	var request AddParticipantRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BadRequest(c, err)
		return
	}
	if err := request.Validate(); err != nil {
		response.BadRequest(c, err)
		return
	}

	league, err := s.Service.AddParticipant(c, auth.Email(c), c.Param("league_id"), request)
	if err != nil {
		response.RenderErr(c, err)
		return
	}
	c.JSON(http.StatusOK, league)
}

func (s *httpHandler) removeParticipantHandler(c *gin.Context) {
	league, err := s.Service.RemoveParticipant(c, auth.Email(c), c.Param("league_id"), c.Param("email"))
	if err != nil {
		response.RenderErr(c, err)
		return
	}
	c.JSON(http.StatusOK, league)
}

func (s *httpHandler) submitResultsHandler(c *gin.Context) {
	var results map[string]domain.ResultInput
	if err := c.ShouldBindJSON(&results); err != nil {
		c.JSON(http.StatusBadRequest, response.Err{Error: "Invalid race results format"})
		c.Abort()
		return
	}

	standings, err := s.Service.SubmitResults(c, auth.Email(c), c.Param("league_id"), c.Param("race_id"), results)
	if err != nil {
		response.RenderErr(c, err)
		return
	}
	c.JSON(http.StatusOK, standings)
}

func (s *httpHandler) parseResultsHandler(c *gin.Context) {
	var request ParseResultsRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BadRequest(c, err)
		return
	}
	if err := request.Validate(); err != nil {
		response.BadRequest(c, err)
		return
	}

	draft, err := s.Service.ParseResults(c, auth.Email(c), c.Param("league_id"), request.Raw)
	if err != nil {
		response.RenderErr(c, err)
		return
	}
	c.JSON(http.StatusOK, draft)
}

func (s *httpHandler) standingsHandler(c *gin.Context) {
	standings, err := s.Service.Standings(c, c.Param("league_id"))
	if err != nil {
		response.RenderErr(c, err)
		return
	}
	c.JSON(http.StatusOK, standings)
}

func (s *httpHandler) participantStandingsHandler(c *gin.Context) {
	standings, err := s.Service.ParticipantStandings(c, c.Param("league_id"), c.Param("participant_email"))
	if err != nil {
		response.RenderErr(c, err)
		return
	}
	c.JSON(http.StatusOK, standings)
}

func (s *httpHandler) nextRaceHandler(c *gin.Context) {
	race, err := s.Service.NextRace(c, c.Param("league_id"))
	if err != nil {
		response.RenderErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"next_race": race})
}

func (s *httpHandler) teamsHandler(c *gin.Context) {
	teams, err := s.Service.Teams(c, c.Param("league_id"))
	if err != nil {
		response.RenderErr(c, err)
		return
	}
	c.JSON(http.StatusOK, teams)
}

func (s *httpHandler) setTeamsHandler(c *gin.Context) {
	var teams map[string][]string
	if err := c.ShouldBindJSON(&teams); err != nil {
		response.BadRequest(c, err)
		return
	}

	result, err := s.Service.SetTeams(c, auth.Email(c), c.Param("league_id"), teams)
	if err != nil {
		response.RenderErr(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *httpHandler) teamStandingsHandler(c *gin.Context) {
	standings, err := s.Service.TeamStandings(c, c.Param("league_id"))
	if err != nil {
		response.RenderErr(c, err)
		return
	}
	c.JSON(http.StatusOK, standings)
}

func (s *httpHandler) removeTeamHandler(c *gin.Context) {
	if err := s.Service.RemoveTeam(c, auth.Email(c), c.Param("league_id"), c.Param("team_name")); err != nil {
		response.RenderErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

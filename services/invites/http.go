package invites

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/racingleague/racing-league-app/domain"
	"github.com/racingleague/racing-league-app/pkg/auth"
	"github.com/racingleague/racing-league-app/pkg/response"
)

// Router is the interface for a router.
type Router interface {
	GET(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	POST(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	DELETE(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	Use(middleware ...gin.HandlerFunc) gin.IRoutes
	Group(relativePath string, handlers ...gin.HandlerFunc) *gin.RouterGroup
}

// Invites is the interface for the invite service.
type Invites interface {
	CreateInvites(ctx context.Context, caller string, req CreateInvitesRequest) ([]domain.Invite, error)
	MyInvites(ctx context.Context, caller string) ([]domain.Invite, error)
	SentInvites(ctx context.Context, caller string) ([]domain.Invite, error)
	Accept(ctx context.Context, caller, inviteID string) (domain.Invite, error)
	AcceptByCode(ctx context.Context, caller, code string) (domain.Invite, error)
	Decline(ctx context.Context, caller, inviteID string) (domain.Invite, error)
	Delete(ctx context.Context, caller, inviteID string) error
}

// HTTPOptions contains all the options needed for the HTTP handler.
type HTTPOptions struct {

	// The service we provides the HTTP transport for.
	Service Invites

	// The router instance to configure the HTTP routes.
	Router Router
}

// NewHTTPHandler creates a new HTTP handler.
func NewHTTPHandler(opts HTTPOptions) {
	r := opts.Router
	h := &httpHandler{opts}
	r.GET("/my", h.myInvitesHandler)
	r.GET("/sent", h.sentInvitesHandler)
	r.POST("", h.createHandler)
	r.POST("/:invite_id/accept", h.acceptHandler)
	r.POST("/:invite_id/decline", h.declineHandler)
	r.DELETE("/:invite_id", h.deleteHandler)
	r.GET("/access/:access_code", h.accessHandler)
}

type httpHandler struct {
	HTTPOptions
}

func (s *httpHandler) myInvitesHandler(c *gin.Context) {
	invites, err := s.Service.MyInvites(c, auth.Email(c))
	if err != nil {
		response.RenderErr(c, err)
		return
	}
	c.JSON(http.StatusOK, invites)
}

func (s *httpHandler) sentInvitesHandler(c *gin.Context) {
	invites, err := s.Service.SentInvites(c, auth.Email(c))
	if err != nil {
		response.RenderErr(c, err)
		return
	}
	c.JSON(http.StatusOK, invites)
}

func (s *httpHandler) createHandler(c *gin.Context) {
	var request CreateInvitesRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BadRequest(c, err)
		return
	}
	if err := request.Validate(); err != nil {
		response.BadRequest(c, err)
		return
	}

	invites, err := s.Service.CreateInvites(c, auth.Email(c), request)
	if err != nil {
		response.RenderErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, invites)
}

func (s *httpHandler) acceptHandler(c *gin.Context) {
	invite, err := s.Service.Accept(c, auth.Email(c), c.Param("invite_id"))
	if err != nil {
		response.RenderErr(c, err)
		return
	}
	c.JSON(http.StatusOK, invite)
}

func (s *httpHandler) declineHandler(c *gin.Context) {
	invite, err := s.Service.Decline(c, auth.Email(c), c.Param("invite_id"))
	if err != nil {
		response.RenderErr(c, err)
		return
	}
	c.JSON(http.StatusOK, invite)
}

func (s *httpHandler) deleteHandler(c *gin.Context) {
	if err := s.Service.Delete(c, auth.Email(c), c.Param("invite_id")); err != nil {
		response.RenderErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Invite deleted"})
}

func (s *httpHandler) accessHandler(c *gin.Context) {
	invite, err := s.Service.AcceptByCode(c, auth.Email(c), c.Param("access_code"))
	if err != nil {
		response.RenderErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"result":    "Access granted",
		"league_id": invite.LeagueID,
		"invite":    invite,
	})
}

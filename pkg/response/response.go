package response

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/racingleague/racing-league-app/domain"
)

// Err is the body of every error response.
type Err struct {
	Error string `json:"error"`
}

// StatusFor maps an error to its HTTP status by kind.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// RenderErr writes err and aborts. Unclassified errors are logged and hidden
// behind a generic message.
func RenderErr(c *gin.Context, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		zap.L().Error("request failed",
			zap.String("request_id", requestid.Get(c)),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		c.JSON(status, Err{Error: "something went wrong"})
		c.Abort()
		return
	}
	c.JSON(status, Err{Error: err.Error()})
	c.Abort()
}

// BadRequest renders a request binding or validation failure.
func BadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, Err{Error: err.Error()})
	c.Abort()
}

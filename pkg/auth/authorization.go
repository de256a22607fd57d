package auth

import (
	"context"
	"net/http"
	"strings"

	firebaseauth "firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	tokenKey = "token"
	emailKey = "email"
)

// TokenVerifier verifies Firebase ID tokens. *auth.Client implements it.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*firebaseauth.Token, error)
}

func AuthMiddleware(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is missing"})
			c.Abort()
			return
		}
		idToken, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || strings.TrimSpace(idToken) == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header must be a Bearer token"})
			c.Abort()
			return
		}

		token, err := verifier.VerifyIDToken(c.Request.Context(), idToken)
		if err != nil {
			zap.L().Debug("rejected ID token", zap.Error(err))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid ID token"})
			c.Abort()
			return
		}

		email, _ := token.Claims["email"].(string)
		if email == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "token has no email"})
			c.Abort()
			return
		}

		// Attach token and caller identity to the context
		c.Set(tokenKey, token)
		c.Set(emailKey, strings.ToLower(email))

		c.Next()
	}
}

// Email returns the verified email of the caller, or "" outside the
// middleware.
func Email(c *gin.Context) string {
	return c.GetString(emailKey)
}

// Token returns the verified token of the caller.
func Token(c *gin.Context) (*firebaseauth.Token, bool) {
	v, ok := c.Get(tokenKey)
	if !ok {
		return nil, false
	}
	token, ok := v.(*firebaseauth.Token)
	return token, ok
}

// Unverified accepts any bearer token and treats it as the caller's email.
// It is only used with the in-memory store for local runs.
type Unverified struct{}

func (Unverified) VerifyIDToken(_ context.Context, idToken string) (*firebaseauth.Token, error) {
	return &firebaseauth.Token{
		UID:    idToken,
		Claims: map[string]interface{}{"email": idToken},
	}, nil
}

package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	firebaseauth "firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeVerifier struct {
	tokens map[string]*firebaseauth.Token
}

func (f fakeVerifier) VerifyIDToken(_ context.Context, idToken string) (*firebaseauth.Token, error) {
	token, ok := f.tokens[idToken]
	if !ok {
		return nil, errors.New("bad token")
	}
	return token, nil
}

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	verifier := fakeVerifier{tokens: map[string]*firebaseauth.Token{
		"good":    {UID: "u1", Claims: map[string]interface{}{"email": "Driver@X.com"}},
		"noemail": {UID: "u2", Claims: map[string]interface{}{}},
	}}

	r := gin.New()
	r.Use(AuthMiddleware(verifier))
	r.GET("/me", func(c *gin.Context) {
		token, ok := Token(c)
		c.JSON(http.StatusOK, gin.H{"email": Email(c), "uid": token.UID, "ok": ok})
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	cases := []struct {
		name   string
		header string
		status int
	}{
		{name: "missing header", header: "", status: http.StatusUnauthorized},
		{name: "not bearer", header: "Basic abc", status: http.StatusUnauthorized},
		{name: "empty bearer", header: "Bearer ", status: http.StatusUnauthorized},
		{name: "invalid token", header: "Bearer nope", status: http.StatusUnauthorized},
		{name: "token without email", header: "Bearer noemail", status: http.StatusUnauthorized},
		{name: "valid", header: "Bearer good", status: http.StatusOK},
	}

	r := newRouter()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if c.header != "" {
				req.Header.Set("Authorization", c.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, c.status, w.Code)
		})
	}
}

func TestAuthMiddleware_SetsIdentity(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer good")
	w := httptest.NewRecorder()

	newRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"email":"driver@x.com","uid":"u1","ok":true}`, w.Body.String())
}

func TestUnverified(t *testing.T) {
	token, err := Unverified{}.VerifyIDToken(context.Background(), "Racer@Example.com")
	assert.NoError(t, err)
	assert.Equal(t, "Racer@Example.com", token.Claims["email"])
}

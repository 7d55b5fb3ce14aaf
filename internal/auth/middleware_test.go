package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newAuthedApp builds a tiny echo app with one protected route that echoes
// the identity the middleware attached.
func newAuthedApp() *echo.Echo {
	e := echo.New()
	e.GET("/whoami", func(c echo.Context) error {
		ident, ok := IdentityFrom(c)
		if !ok {
			return echo.NewHTTPError(http.StatusInternalServerError, "identity missing")
		}
		return c.JSON(http.StatusOK, map[string]any{"id": ident.UserID, "email": ident.Email})
	}, Middleware(testSecret))
	return e
}

func doRequest(e *echo.Echo, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestMiddlewareMissingHeader(t *testing.T) {
	rec := doRequest(newAuthedApp(), "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMiddlewareMalformedHeader(t *testing.T) {
	rec := doRequest(newAuthedApp(), "Token abcdef")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMiddlewareInvalidToken(t *testing.T) {
	rec := doRequest(newAuthedApp(), "Bearer not-a-token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMiddlewareExpiredToken(t *testing.T) {
	token, err := IssueToken(testSecret, -time.Minute, 7, "x@y.com")
	require.NoError(t, err)

	rec := doRequest(newAuthedApp(), "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMiddlewareValidToken(t *testing.T) {
	token, err := IssueToken(testSecret, time.Hour, 7, "x@y.com")
	require.NoError(t, err)

	rec := doRequest(newAuthedApp(), "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":7`)
	assert.Contains(t, rec.Body.String(), `"email":"x@y.com"`)
}

package auth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// identityKey is where Middleware stores the decoded Identity on the request.
const identityKey = "auth.identity"

// Middleware authenticates requests carrying "Authorization: Bearer <token>".
// Missing, malformed, expired, or badly-signed tokens are rejected with 401
// before the handler runs. On success the decoded Identity is attached to the
// echo context for IdentityFrom.
func Middleware(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "authorization header format must be Bearer {token}")
			}

			ident, err := ParseToken(secret, parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			c.Set(identityKey, ident)
			return next(c)
		}
	}
}

// IdentityFrom returns the authenticated caller attached by Middleware.
func IdentityFrom(c echo.Context) (Identity, bool) {
	ident, ok := c.Get(identityKey).(Identity)
	return ident, ok
}

package matches

import (
	"github.com/labstack/echo/v4"

	"github.com/doggr/backend/internal/app"
	"github.com/doggr/backend/internal/auth"
)

// Registrar ties the matches service into the HTTP app
type Registrar struct {
	appCtx *app.AppContext
}

// NewRegistrar creates a new Registrar for the matches service
func NewRegistrar(appCtx *app.AppContext) *Registrar {
	return &Registrar{appCtx: appCtx}
}

// Register attaches the match routes; all of them require a bearer token.
func (r *Registrar) Register(e *echo.Echo) {
	service := NewService(r.appCtx)
	authed := auth.Middleware(r.appCtx.Config.Auth.JWTSecret)

	e.GET("/matches", service.ListMatches, authed)
	e.GET("/matches/count", service.CountMatches, authed)
	e.POST("/match", service.CreateMatch, authed)
	e.DELETE("/match", service.RemoveMatch, authed)
	e.DELETE("/matches", service.RemoveMatches, authed)
	e.GET("/match/:matcherId", service.ListByMatcher, authed)
	e.GET("/matchee/:matcheeId", service.ListByMatchee, authed)
}

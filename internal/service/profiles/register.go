package profiles

import (
	"github.com/labstack/echo/v4"

	"github.com/doggr/backend/internal/app"
	"github.com/doggr/backend/internal/auth"
)

// Registrar ties the profiles service into the HTTP app
type Registrar struct {
	appCtx *app.AppContext
}

// NewRegistrar creates a new Registrar for the profiles service
func NewRegistrar(appCtx *app.AppContext) *Registrar {
	return &Registrar{appCtx: appCtx}
}

// Register attaches the profile routes. Only creation needs a caller
// identity (the new profile's owner); the rest stay public.
func (r *Registrar) Register(e *echo.Echo) {
	service := NewService(r.appCtx)
	authed := auth.Middleware(r.appCtx.Config.Auth.JWTSecret)

	e.GET("/profiles", service.ListProfiles)
	e.POST("/profiles", service.CreateProfile, authed)
	e.PUT("/profiles/:id", service.UpdateProfile)
	e.DELETE("/profiles/:id", service.DeleteProfile)
}

package users

import (
	"github.com/labstack/echo/v4"

	"github.com/doggr/backend/internal/app"
)

// Registrar ties the users service into the HTTP app
type Registrar struct {
	appCtx *app.AppContext
}

// NewRegistrar creates a new Registrar for the users service
func NewRegistrar(appCtx *app.AppContext) *Registrar {
	return &Registrar{appCtx: appCtx}
}

// Register attaches the account routes. All three are public.
func (r *Registrar) Register(e *echo.Echo) {
	service := NewService(r.appCtx)

	e.GET("/users", service.ListUsers)
	e.POST("/users", service.RegisterUser)
	e.POST("/login", service.Login)
}

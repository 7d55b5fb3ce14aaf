package messages

import (
	"github.com/labstack/echo/v4"

	"github.com/doggr/backend/internal/app"
	"github.com/doggr/backend/internal/auth"
)

// Registrar ties the messages service into the HTTP app
type Registrar struct {
	appCtx *app.AppContext
}

// NewRegistrar creates a new Registrar for the messages service
func NewRegistrar(appCtx *app.AppContext) *Registrar {
	return &Registrar{appCtx: appCtx}
}

// Register attaches the message routes. Reads and sends need a bearer token;
// the DELETE routes additionally carry the admin password in the body, which
// the service checks itself.
func (r *Registrar) Register(e *echo.Echo) {
	service := NewService(r.appCtx)
	authed := auth.Middleware(r.appCtx.Config.Auth.JWTSecret)

	e.GET("/messages", service.ListMine, authed)
	e.GET("/message/:id", service.ListBySender, authed)
	e.GET("/recipient/:id", service.ListByRecipient, authed)
	e.POST("/message", service.Send, authed)
	e.DELETE("/message", service.RemovePair, authed)
	e.DELETE("/messages", service.RemoveBySender, authed)
}

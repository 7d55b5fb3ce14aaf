package server

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/doggr/backend/internal/config"
)

// New builds the Echo instance, wires base middleware and the static asset
// route, and lets every Registrar attach its routes.
func New(cfg *config.Config, registrars ...Registrar) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.GET("/test", func(c echo.Context) error {
		return c.String(http.StatusOK, "GET Test")
	})

	e.Static("/public", cfg.App.PublicDir)

	for _, r := range registrars {
		r.Register(e)
	}

	return e
}

// Start blocks serving HTTP until the listener fails or shuts down.
func Start(e *echo.Echo, cfg *config.Config) error {
	addr := fmt.Sprintf("%s:%s", cfg.HTTP.Host, cfg.HTTP.Port)
	return e.Start(addr)
}

package server

import "github.com/labstack/echo/v4"

// Registrar is a common interface for everything that attaches routes to the app
type Registrar interface {
	Register(e *echo.Echo)
}

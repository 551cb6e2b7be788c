package greetings

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes registers the greeting routes.
func RegisterRoutes(e *echo.Echo) {
	h := &handler{}

	e.GET("/hello", h.hello)
	e.GET("/hello/:name", h.greet)
}

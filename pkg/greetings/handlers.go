package greetings

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type handler struct{}

func (h *handler) hello(c echo.Context) error {
	return errors.WithStack(c.JSON(http.StatusOK, map[string]string{
		"message": "Hello World",
	}))
}

func (h *handler) greet(c echo.Context) error {
	params := GreetParams{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, map[string]string{
		"message": "Hello " + params.Name,
	}))
}

package respond

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// Payload is the uniform success envelope. The code mirrors the transport
// status code; the message is a human-readable diagnostic string and may
// carry interpolated counts or identifiers. It is not meant to be machine
// parsed.
type Payload[T any] struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

// OK writes a 200 envelope.
func OK[T any](c echo.Context, message string, data T) error {
	return write(c, http.StatusOK, message, data)
}

// Created writes a 201 envelope.
func Created[T any](c echo.Context, message string, data T) error {
	return write(c, http.StatusCreated, message, data)
}

func write[T any](c echo.Context, code int, message string, data T) error {
	return errors.WithStack(c.JSON(code, Payload[T]{
		Code:    code,
		Message: message,
		Data:    data,
	}))
}

// utils/http.go - HTTP utility functions for fiber
package utils

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"rcsinavim/services"
)

const genericServerError = "An error occurred. Please try again later."

// JSONError sends a JSON error response
func JSONError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}

// JSONSuccess sends a JSON success response with data merged into the envelope
func JSONSuccess(c *fiber.Ctx, status int, data fiber.Map) error {
	response := fiber.Map{"success": true}
	for k, v := range data {
		response[k] = v
	}
	return c.Status(status).JSON(response)
}

// StatusFor maps a service error onto an HTTP status code.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, services.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, services.ErrConflict):
		return fiber.StatusConflict
	case errors.Is(err, services.ErrUnauthorized):
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}

// Fail writes err as a JSON error. Storage failures are logged and handed to
// the app's ErrorHandler, which decides how much of the message to expose.
func Fail(c *fiber.Ctx, err error) error {
	status := StatusFor(err)
	if status == fiber.StatusInternalServerError {
		log.Printf("%s %s failed: %v", c.Method(), c.Path(), err)
		return fiber.NewError(status, err.Error())
	}
	return JSONError(c, status, services.Message(err))
}

// ErrorHandler renders errors that escape a handler. 500 messages are
// hidden in production.
func ErrorHandler(production bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal Server Error"

		var e *fiber.Error
		if errors.As(err, &e) {
			code = e.Code
			message = e.Message
		}

		if production && code == fiber.StatusInternalServerError {
			message = genericServerError
		}

		return JSONError(c, code, message)
	}
}

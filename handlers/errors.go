// handlers/errors.go - App-wide error to HTTP status mapping
package handlers

import (
	"errors"
	"os"

	"pickleball/apperr"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler is the Fiber error handler for the whole app.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		code = apperr.Status(appErr)
		message = appErr.Message
	} else if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Don't expose internal errors in production
	if os.Getenv("APP_ENV") == "production" && code == 500 {
		message = "An error occurred. Please try again later."
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}

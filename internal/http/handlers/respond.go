package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Thrisha-krishnamoorthy/bakesss/internal/domain"
	applog "github.com/Thrisha-krishnamoorthy/bakesss/internal/log"
)

// errStatus maps domain errors onto the error taxonomy: not-found 404,
// invalid-request 400, conflict 409, everything else 500.
func errStatus(err error) int {
	var notFound *domain.ProductNotFoundError
	var noStock *domain.InsufficientStockError
	switch {
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrOrderNotFound):
		return fiber.StatusNotFound
	case errors.As(err, &notFound):
		return fiber.StatusNotFound
	case errors.As(err, &noStock),
		errors.Is(err, domain.ErrDuplicateEmail),
		errors.Is(err, domain.ErrDuplicatePhone):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrInvalidCredentials):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrInvalidStatus):
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}

// fail writes the structured error body. Store internals never reach
// the caller; they are logged instead.
func fail(c *fiber.Ctx, action string, err error) error {
	code := errStatus(err)
	if code == fiber.StatusInternalServerError {
		applog.Error(c, action, err, nil)
		return c.Status(code).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}

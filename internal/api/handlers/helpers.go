package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/content-studio/internal/models"
)

// statusFor maps the domain error taxonomy onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrContentNotFound),
		errors.Is(err, models.ErrScheduledPostNotFound),
		errors.Is(err, models.ErrChatNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, models.ErrMissingCredential),
		errors.Is(err, models.ErrNotPublishReady),
		errors.Is(err, models.ErrNotConnected),
		errors.Is(err, models.ErrStepUnreachable):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, models.ErrPrecondition):
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}

func fail(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	if status == fiber.StatusInternalServerError {
		slog.Error(err.Error(), "path", c.Path())
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": msg,
	})
}

package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/content-studio/internal/models"
)

// AttemptLister reads the publish history of a draft, newest first.
type AttemptLister interface {
	ListByContentID(ctx context.Context, contentID string) ([]*models.PublishAttempt, error)
}

type ContentLookup interface {
	GetContent(id string) (*models.Content, error)
}

type HistoryHandler struct {
	attempts AttemptLister
	drafts   ContentLookup
}

func NewHistoryHandler(attempts AttemptLister, drafts ContentLookup) *HistoryHandler {
	return &HistoryHandler{attempts: attempts, drafts: drafts}
}

func (h *HistoryHandler) Routes(r fiber.Router) {
	r.Get("/content/:id/attempts", h.ListAttempts)
}

func (h *HistoryHandler) ListAttempts(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := h.drafts.GetContent(id); err != nil {
		return fail(c, err)
	}
	attempts, err := h.attempts.ListByContentID(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	if attempts == nil {
		attempts = []*models.PublishAttempt{}
	}
	return c.JSON(attempts)
}

package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/content-studio/internal/notify"
)

const defaultNotificationLimit = 20

type NotificationHandler struct {
	feed notify.Feed
}

func NewNotificationHandler(feed notify.Feed) *NotificationHandler {
	return &NotificationHandler{feed: feed}
}

func (h *NotificationHandler) Routes(r fiber.Router) {
	r.Get("/notifications", h.ListNotifications)
}

func (h *NotificationHandler) ListNotifications(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", defaultNotificationLimit)
	if limit <= 0 {
		limit = defaultNotificationLimit
	}
	items, err := h.feed.Recent(c.UserContext(), limit)
	if err != nil {
		return fail(c, err)
	}
	if items == nil {
		items = []notify.Notification{}
	}
	return c.JSON(items)
}

package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/content-studio/internal/models"
	"github.com/maheshrc27/content-studio/internal/service"
)

// Catalog is the read side of the store used by the template and schedule
// screens.
type Catalog interface {
	service.ScheduleReader
	Templates() []*models.Template
	Template(id string) (*models.Template, bool)
	ScheduledPostsFor(contentID string) []*models.ScheduledPost
}

type ScheduleHandler struct {
	store Catalog
}

func NewScheduleHandler(store Catalog) *ScheduleHandler {
	return &ScheduleHandler{store: store}
}

func (h *ScheduleHandler) Routes(r fiber.Router) {
	r.Get("/templates", h.ListTemplates)
	r.Get("/templates/:id", h.GetTemplate)
	r.Get("/scheduled-posts", h.ListScheduledPosts)
	r.Get("/calendar", h.Calendar)
}

func (h *ScheduleHandler) ListTemplates(c *fiber.Ctx) error {
	return c.JSON(h.store.Templates())
}

func (h *ScheduleHandler) GetTemplate(c *fiber.Ctx) error {
	t, ok := h.store.Template(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "template not found",
		})
	}
	return c.JSON(t)
}

// ListScheduledPosts filters by ?contentId= when given.
func (h *ScheduleHandler) ListScheduledPosts(c *fiber.Ctx) error {
	if id := c.Query("contentId"); id != "" {
		return c.JSON(h.store.ScheduledPostsFor(id))
	}
	return c.JSON(h.store.ScheduledPosts())
}

// Calendar takes ?month=YYYY-MM (default: current month) and an optional IANA
// ?tz= used to bucket posts by day.
func (h *ScheduleHandler) Calendar(c *fiber.Ctx) error {
	loc := time.UTC
	if tz := c.Query("tz"); tz != "" {
		l, err := time.LoadLocation(tz)
		if err != nil {
			return badRequest(c, "Unknown time zone")
		}
		loc = l
	}
	month := c.Query("month", time.Now().In(loc).Format("2006-01"))

	days, err := service.CalendarMonth(h.store, month, loc)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"month": month,
		"days":  days,
	})
}

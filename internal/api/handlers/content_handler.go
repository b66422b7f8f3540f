package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/content-studio/internal/lifecycle"
	"github.com/maheshrc27/content-studio/internal/models"
	"github.com/maheshrc27/content-studio/internal/publish"
	"github.com/maheshrc27/content-studio/internal/service"
	"github.com/maheshrc27/content-studio/internal/transfer"
)

// Publisher is the part of the publish orchestrator the editor calls.
type Publisher interface {
	Publish(ctx context.Context, contentID string, only ...models.Platform) (*publish.Report, error)
	Schedule(ctx context.Context, contentID string, at time.Time) ([]*models.ScheduledPost, error)
}

type ContentHandler struct {
	s   service.ContentService
	pub Publisher
}

func NewContentHandler(service service.ContentService, pub Publisher) *ContentHandler {
	return &ContentHandler{s: service, pub: pub}
}

func (h *ContentHandler) Routes(r fiber.Router) {
	r.Get("/content", h.ListContent)
	r.Post("/content", h.CreateContent)
	r.Post("/content/generate", h.Generate)
	r.Get("/content/:id", h.GetContent)
	r.Patch("/content/:id", h.UpdateContent)
	r.Delete("/content/:id", h.DeleteContent)
	r.Post("/content/:id/generate", h.Generate)
	r.Put("/content/:id/step", h.ChangeStep)
	r.Post("/content/:id/continue", h.Continue)
	r.Post("/content/:id/publish", h.Publish)
	r.Post("/content/:id/schedule", h.Schedule)

	r.Get("/active", h.GetActive)
	r.Put("/active", h.SetActive)
}

func (h *ContentHandler) ListContent(c *fiber.Ctx) error {
	return c.JSON(h.s.List(c.UserContext()))
}

func (h *ContentHandler) CreateContent(c *fiber.Ctx) error {
	var in transfer.ContentCreation
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Unable to parse json")
	}
	for _, p := range in.Platforms {
		if !p.Valid() {
			return fail(c, models.ErrInvalidPlatform)
		}
	}
	return c.Status(fiber.StatusCreated).JSON(h.s.Create(c.UserContext(), in.Draft()))
}

func (h *ContentHandler) GetContent(c *fiber.Ctx) error {
	v, err := h.s.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(v)
}

func (h *ContentHandler) UpdateContent(c *fiber.Ctx) error {
	var patch models.ContentPatch
	if err := c.BodyParser(&patch); err != nil {
		return badRequest(c, "Unable to parse json")
	}
	v, err := h.s.Update(c.UserContext(), c.Params("id"), patch)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(v)
}

func (h *ContentHandler) DeleteContent(c *fiber.Ctx) error {
	if err := h.s.Delete(c.UserContext(), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Generate serves both /content/generate (new draft) and
// /content/:id/generate (regenerate an existing one).
func (h *ContentHandler) Generate(c *fiber.Ctx) error {
	var in transfer.GenerateRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Unable to parse json")
	}
	id := c.Params("id")
	v, err := h.s.Generate(c.UserContext(), id, in)
	if err != nil {
		return fail(c, err)
	}
	status := fiber.StatusOK
	if id == "" {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(v)
}

func (h *ContentHandler) ChangeStep(c *fiber.Ctx) error {
	var in transfer.StepChange
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Unable to parse json")
	}
	v, err := h.s.GoTo(c.UserContext(), c.Params("id"), lifecycle.Step(in.Step))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(v)
}

func (h *ContentHandler) Continue(c *fiber.Ctx) error {
	v, err := h.s.Continue(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(v)
}

// Publish answers 207 when at least one platform failed. The report names
// each platform's own result so the client can retry just the failures.
func (h *ContentHandler) Publish(c *fiber.Ctx) error {
	var in transfer.PublishRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badRequest(c, "Unable to parse json")
		}
	}
	report, err := h.pub.Publish(c.UserContext(), c.Params("id"), in.Platforms...)
	if err != nil {
		return fail(c, err)
	}
	if !report.Success {
		return c.Status(fiber.StatusMultiStatus).JSON(fiber.Map{
			"report": report,
			"failed": report.Failed(),
		})
	}
	return c.JSON(fiber.Map{
		"report": report,
		"failed": report.Failed(),
	})
}

func (h *ContentHandler) Schedule(c *fiber.Ctx) error {
	var in transfer.ScheduleRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Unable to parse json")
	}
	if in.ScheduledFor.IsZero() {
		return badRequest(c, "scheduledFor is required")
	}
	posts, err := h.pub.Schedule(c.UserContext(), c.Params("id"), in.ScheduledFor)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":        "Post scheduled successfully",
		"scheduledPosts": posts,
	})
}

func (h *ContentHandler) GetActive(c *fiber.Ctx) error {
	v, ok := h.s.Active(c.UserContext())
	if !ok {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.JSON(v)
}

func (h *ContentHandler) SetActive(c *fiber.Ctx) error {
	var in transfer.ActiveRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Unable to parse json")
	}
	v, err := h.s.SetActive(c.UserContext(), in.ContentID)
	if err != nil {
		return fail(c, err)
	}
	if v == nil {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.JSON(v)
}

package handlers

import (
	"io"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/content-studio/internal/service"
)

const maxImageSize = 10 * 1024 * 1024

type MediaHandler struct {
	s service.MediaService
}

func NewMediaHandler(service service.MediaService) *MediaHandler {
	return &MediaHandler{s: service}
}

func (h *MediaHandler) Routes(r fiber.Router) {
	r.Post("/content/:id/media", h.UploadImage)
	r.Get("/content/:id/media", h.ListMedia)
}

// UploadImage takes a multipart form with a single "file" field.
func (h *MediaHandler) UploadImage(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		slog.Info(err.Error())
		return badRequest(c, "No file selected")
	}
	if fh.Size > maxImageSize {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{
			"error": "File is too large",
		})
	}

	f, err := fh.Open()
	if err != nil {
		return badRequest(c, "Unable to read file")
	}
	defer f.Close()

	buf, err := io.ReadAll(f)
	if err != nil {
		return badRequest(c, "Unable to read file")
	}

	asset, err := h.s.Upload(c.UserContext(), c.Params("id"), fh.Filename, buf)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(asset)
}

func (h *MediaHandler) ListMedia(c *fiber.Ctx) error {
	assets, err := h.s.List(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(assets)
}

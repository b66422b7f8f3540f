package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/content-studio/internal/models"
	"github.com/maheshrc27/content-studio/internal/service"
	"github.com/maheshrc27/content-studio/internal/transfer"
)

type SettingsHandler struct {
	s     service.SettingsService
	creds service.CredentialService
}

func NewSettingsHandler(service service.SettingsService, creds service.CredentialService) *SettingsHandler {
	return &SettingsHandler{s: service, creds: creds}
}

func (h *SettingsHandler) Routes(r fiber.Router) {
	r.Get("/settings", h.GetSettingsInfo)
	r.Put("/settings", h.UpdateSettings)

	r.Get("/credentials", h.CredentialStatus)
	r.Put("/credentials", h.SaveCredential)
	r.Delete("/credentials/:provider", h.RemoveCredential)
}

func (h *SettingsHandler) GetSettingsInfo(c *fiber.Ctx) error {
	settingsInfo, err := h.s.Get(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(settingsInfo)
}

func (h *SettingsHandler) UpdateSettings(c *fiber.Ctx) error {
	var settings models.Settings
	if err := c.BodyParser(&settings); err != nil {
		return badRequest(c, "Unable to parse json")
	}
	saved, err := h.s.Update(c.UserContext(), &settings)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(saved)
}

// CredentialStatus tells the client which providers still need a key.
func (h *SettingsHandler) CredentialStatus(c *fiber.Ctx) error {
	status, err := h.creds.Status(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(status)
}

func (h *SettingsHandler) SaveCredential(c *fiber.Ctx) error {
	var in transfer.SaveCredential
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Unable to parse json")
	}
	if err := h.creds.Save(c.UserContext(), in.Provider, in.APIKey); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}

func (h *SettingsHandler) RemoveCredential(c *fiber.Ctx) error {
	if err := h.creds.Remove(c.UserContext(), models.Provider(c.Params("provider"))); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}

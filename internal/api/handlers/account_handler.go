package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/content-studio/internal/models"
	"github.com/maheshrc27/content-studio/internal/service"
	"github.com/maheshrc27/content-studio/internal/transfer"
)

type AccountHandler struct {
	s service.AccountService
}

func NewAccountHandler(service service.AccountService) *AccountHandler {
	return &AccountHandler{s: service}
}

func (h *AccountHandler) Routes(r fiber.Router) {
	r.Get("/accounts", h.ListSocialAccounts)
	r.Post("/accounts/:platform/connect", h.ConnectSocialAccount)
	r.Post("/accounts/:platform/disconnect", h.DisconnectSocialAccount)
}

func (h *AccountHandler) ListSocialAccounts(c *fiber.Ctx) error {
	accounts, err := h.s.List(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch social accounts",
		})
	}
	return c.JSON(accounts)
}

func (h *AccountHandler) ConnectSocialAccount(c *fiber.Ctx) error {
	var in transfer.ConnectAccount
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Unable to parse json")
	}
	acc, err := h.s.Connect(c.UserContext(), models.Platform(c.Params("platform")), in.APIKey, in.Username)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(acc)
}

func (h *AccountHandler) DisconnectSocialAccount(c *fiber.Ctx) error {
	if err := h.s.Disconnect(c.UserContext(), models.Platform(c.Params("platform"))); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}

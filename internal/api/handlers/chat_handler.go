package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/content-studio/internal/service"
	"github.com/maheshrc27/content-studio/internal/transfer"
)

type ChatHandler struct {
	s service.ChatService
}

func NewChatHandler(service service.ChatService) *ChatHandler {
	return &ChatHandler{s: service}
}

func (h *ChatHandler) Routes(r fiber.Router) {
	r.Get("/chats", h.ListChats)
	r.Post("/chats", h.CreateChat)
	r.Patch("/chats/:id", h.RenameChat)
	r.Delete("/chats/:id", h.DeleteChat)
	r.Get("/chats/:id/messages", h.ListMessages)
	r.Post("/chats/:id/messages", h.SendMessage)
}

func (h *ChatHandler) ListChats(c *fiber.Ctx) error {
	sessions, err := h.s.List(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(sessions)
}

func (h *ChatHandler) CreateChat(c *fiber.Ctx) error {
	var in transfer.ChatCreation
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badRequest(c, "Unable to parse json")
		}
	}
	session, err := h.s.Create(c.UserContext(), in.Title)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(session)
}

func (h *ChatHandler) RenameChat(c *fiber.Ctx) error {
	var in transfer.ChatRename
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Unable to parse json")
	}
	if err := h.s.Rename(c.UserContext(), c.Params("id"), in.Title); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}

func (h *ChatHandler) DeleteChat(c *fiber.Ctx) error {
	if err := h.s.Delete(c.UserContext(), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *ChatHandler) ListMessages(c *fiber.Ctx) error {
	messages, err := h.s.Messages(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(messages)
}

func (h *ChatHandler) SendMessage(c *fiber.Ctx) error {
	var in transfer.ChatSend
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Unable to parse json")
	}
	reply, err := h.s.Send(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(reply)
}

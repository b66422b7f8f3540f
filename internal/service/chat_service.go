package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/maheshrc27/content-studio/internal/models"
	"github.com/maheshrc27/content-studio/internal/repository"
	"github.com/maheshrc27/content-studio/internal/transfer"
)

type ChatService interface {
	Create(ctx context.Context, title string) (*models.ChatSession, error)
	List(ctx context.Context) ([]*models.ChatSession, error)
	Rename(ctx context.Context, id, title string) error
	Delete(ctx context.Context, id string) error
	Messages(ctx context.Context, id string) ([]*models.ChatMessage, error)
	// Send stores the user's message and the assistant's reply.
	Send(ctx context.Context, id string, in transfer.ChatSend) (*transfer.ChatReply, error)
}

type chatService struct {
	cr repository.ChatRepository
	ai AIService
}

func NewChatService(cr repository.ChatRepository, ai AIService) ChatService {
	return &chatService{
		cr: cr,
		ai: ai,
	}
}

func (s *chatService) Create(ctx context.Context, title string) (*models.ChatSession, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		title = models.DefaultChatTitle
	}
	session, err := s.cr.CreateSession(ctx, title)
	if err != nil {
		return nil, fmt.Errorf("create chat: %w", err)
	}
	return session, nil
}

func (s *chatService) List(ctx context.Context) ([]*models.ChatSession, error) {
	sessions, err := s.cr.ListSessions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list chats: %w", err)
	}
	if sessions == nil {
		sessions = []*models.ChatSession{}
	}
	return sessions, nil
}

func (s *chatService) Rename(ctx context.Context, id, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return fmt.Errorf("%w: title cannot be empty", models.ErrPrecondition)
	}
	return s.cr.RenameSession(ctx, id, title)
}

func (s *chatService) Delete(ctx context.Context, id string) error {
	if _, err := s.cr.GetSession(ctx, id); err != nil {
		return err
	}
	return s.cr.RemoveSession(ctx, id)
}

func (s *chatService) Messages(ctx context.Context, id string) ([]*models.ChatMessage, error) {
	if _, err := s.cr.GetSession(ctx, id); err != nil {
		return nil, err
	}
	messages, err := s.cr.ListMessages(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	if messages == nil {
		messages = []*models.ChatMessage{}
	}
	return messages, nil
}

func (s *chatService) Send(ctx context.Context, id string, in transfer.ChatSend) (*transfer.ChatReply, error) {
	text := strings.TrimSpace(in.Message)
	if text == "" {
		return nil, models.ErrEmptyMessage
	}
	session, err := s.cr.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	userMsg, err := s.cr.CreateMessage(ctx, &models.ChatMessage{ChatID: id, Role: models.ChatRoleUser, Content: text})
	if err != nil {
		return nil, fmt.Errorf("save message: %w", err)
	}

	// the first prompt names an untitled chat
	if session.Title == models.DefaultChatTitle {
		if err := s.cr.RenameSession(ctx, id, TitleFromPrompt(text)); err != nil {
			slog.Warn("rename chat", "id", id, "error", err)
		}
	}

	reply, err := s.ai.Generate(ctx, text, GenerateOptions{
		Tone:     models.DefaultTone,
		Provider: in.Provider,
		Model:    in.Model,
	})
	if err != nil {
		return nil, err
	}

	assistantMsg, err := s.cr.CreateMessage(ctx, &models.ChatMessage{ChatID: id, Role: models.ChatRoleAssistant, Content: reply})
	if err != nil {
		return nil, fmt.Errorf("save reply: %w", err)
	}
	return &transfer.ChatReply{User: userMsg, Assistant: assistantMsg}, nil
}

package service

import (
	"context"
	"testing"

	"github.com/maheshrc27/content-studio/internal/models"
	"github.com/maheshrc27/content-studio/internal/transfer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatService_SendNamesNewChat(t *testing.T) {
	repo := newMemChats()
	ai := &stubAI{}
	svc := NewChatService(repo, ai)
	ctx := context.Background()

	session, err := svc.Create(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, models.DefaultChatTitle, session.Title)

	reply, err := svc.Send(ctx, session.ID, transfer.ChatSend{Message: " Ideas for a bakery launch "})
	require.NoError(t, err)
	assert.Equal(t, models.ChatRoleUser, reply.User.Role)
	assert.Equal(t, "Ideas for a bakery launch", reply.User.Content)
	assert.Equal(t, models.ChatRoleAssistant, reply.Assistant.Role)
	assert.Equal(t, "reply to Ideas for a bakery launch", reply.Assistant.Content)
	assert.Equal(t, models.DefaultTone, ai.calls[0].Tone)

	got, err := repo.GetSession(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ideas for a bakery launch", got.Title)

	msgs, err := svc.Messages(ctx, session.ID)
	require.NoError(t, err)
	assert.Len(t, msgs, 2)
}

func TestChatService_KeepsCustomTitle(t *testing.T) {
	repo := newMemChats()
	svc := NewChatService(repo, &stubAI{})
	ctx := context.Background()

	session, err := svc.Create(ctx, "Q3 campaign")
	require.NoError(t, err)
	_, err = svc.Send(ctx, session.ID, transfer.ChatSend{Message: "hello"})
	require.NoError(t, err)

	got, err := repo.GetSession(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, "Q3 campaign", got.Title)
}

func TestChatService_Errors(t *testing.T) {
	repo := newMemChats()
	ai := &stubAI{err: models.ErrMissingCredential}
	svc := NewChatService(repo, ai)
	ctx := context.Background()

	_, err := svc.Send(ctx, "nope", transfer.ChatSend{Message: "hi"})
	assert.ErrorIs(t, err, models.ErrChatNotFound)

	session, err := svc.Create(ctx, "")
	require.NoError(t, err)
	_, err = svc.Send(ctx, session.ID, transfer.ChatSend{Message: "  "})
	assert.ErrorIs(t, err, models.ErrEmptyMessage)

	_, err = svc.Send(ctx, session.ID, transfer.ChatSend{Message: "hi"})
	assert.ErrorIs(t, err, models.ErrMissingCredential)
	msgs, err := svc.Messages(ctx, session.ID)
	require.NoError(t, err)
	assert.Len(t, msgs, 1)

	assert.ErrorIs(t, svc.Rename(ctx, session.ID, " "), models.ErrPrecondition)
	require.NoError(t, svc.Delete(ctx, session.ID))
	assert.ErrorIs(t, svc.Delete(ctx, session.ID), models.ErrChatNotFound)

	sessions, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, sessions)
	assert.NotNil(t, sessions)
}

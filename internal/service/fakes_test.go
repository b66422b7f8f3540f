package service

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/maheshrc27/content-studio/internal/models"
	"github.com/maheshrc27/content-studio/pkg/utils"
	"github.com/stretchr/testify/require"
)

func testSealer(t *testing.T) *utils.Sealer {
	t.Helper()
	s, err := utils.NewSealer([]byte(strings.Repeat("s", 32)))
	require.NoError(t, err)
	return s
}

type memAccounts struct {
	mu    sync.Mutex
	items map[models.Platform]*models.SocialAccount
}

func newMemAccounts() *memAccounts {
	return &memAccounts{items: map[models.Platform]*models.SocialAccount{}}
}

func (m *memAccounts) List(context.Context) ([]*models.SocialAccount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.SocialAccount
	for _, a := range m.items {
		cp := *a
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memAccounts) GetByPlatform(_ context.Context, p models.Platform) (*models.SocialAccount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.items[p]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (m *memAccounts) Upsert(_ context.Context, sa *models.SocialAccount) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *sa
	m.items[sa.Platform] = &cp
	return nil
}

func (m *memAccounts) Disconnect(_ context.Context, p models.Platform) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.items[p]; ok {
		a.Connected, a.Username, a.APIKey, a.ProfileImage = false, "", "", ""
	}
	return nil
}

type memCredentials struct {
	mu    sync.Mutex
	items map[models.Provider]*models.Credential
}

func newMemCredentials() *memCredentials {
	return &memCredentials{items: map[models.Provider]*models.Credential{}}
}

func (m *memCredentials) GetByProvider(_ context.Context, p models.Provider) (*models.Credential, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.items[p]
	return c, ok, nil
}

func (m *memCredentials) List(context.Context) ([]*models.Credential, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.Credential
	for _, c := range m.items {
		out = append(out, c)
	}
	return out, nil
}

func (m *memCredentials) Upsert(_ context.Context, c *models.Credential) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[c.Provider] = c
	return nil
}

func (m *memCredentials) Remove(_ context.Context, p models.Provider) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, p)
	return nil
}

type memSettings struct {
	s   *models.Settings
	err error
}

func (m *memSettings) Get(context.Context) (*models.Settings, bool, error) {
	return m.s, m.s != nil, m.err
}

func (m *memSettings) Upsert(_ context.Context, s *models.Settings) error {
	m.s = s
	return nil
}

type memChats struct {
	mu       sync.Mutex
	seq      int
	sessions map[string]*models.ChatSession
	messages []*models.ChatMessage
}

func newMemChats() *memChats {
	return &memChats{sessions: map[string]*models.ChatSession{}}
}

func (m *memChats) nextID() string {
	m.seq++
	return "id-" + string(rune('a'+m.seq))
}

func (m *memChats) CreateSession(_ context.Context, title string) (*models.ChatSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := &models.ChatSession{ID: m.nextID(), Title: title, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	m.sessions[s.ID] = s
	cp := *s
	return &cp, nil
}

func (m *memChats) GetSession(_ context.Context, id string) (*models.ChatSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, models.ErrChatNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *memChats) ListSessions(context.Context) ([]*models.ChatSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.ChatSession
	for _, s := range m.sessions {
		out = append(out, s)
	}
	return out, nil
}

func (m *memChats) RenameSession(_ context.Context, id, title string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return models.ErrChatNotFound
	}
	s.Title = title
	return nil
}

func (m *memChats) RemoveSession(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	kept := m.messages[:0]
	for _, msg := range m.messages {
		if msg.ChatID != id {
			kept = append(kept, msg)
		}
	}
	m.messages = kept
	return nil
}

func (m *memChats) ListMessages(_ context.Context, chatID string) ([]*models.ChatMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.ChatMessage
	for _, msg := range m.messages {
		if msg.ChatID == chatID {
			out = append(out, msg)
		}
	}
	return out, nil
}

func (m *memChats) CreateMessage(_ context.Context, msg *models.ChatMessage) (*models.ChatMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *msg
	cp.ID = m.nextID()
	cp.CreatedAt = time.Now()
	m.messages = append(m.messages, &cp)
	return &cp, nil
}

type stubAI struct {
	text  string
	err   error
	calls []GenerateOptions
}

func (s *stubAI) Generate(_ context.Context, prompt string, opts GenerateOptions) (string, error) {
	s.calls = append(s.calls, opts)
	if s.err != nil {
		return "", s.err
	}
	if s.text != "" {
		return s.text, nil
	}
	return "reply to " + prompt, nil
}

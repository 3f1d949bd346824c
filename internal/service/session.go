package service

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/studybuddy/studybuddy-server/internal/logger"
	"github.com/studybuddy/studybuddy-server/internal/model"
)

const (
	sessionNamePrefix = "Chat: "
	sessionNameRunes  = 20
	recentSessions    = 5
)

// Session runs chat turns against a user's workspace and keeps the named
// chat history in the history store.
type Session struct {
	historyStore model.HistoryStore
	conversation *Conversation
	extractor    model.DocumentExtractor
	logger       *logger.Logger
}

func NewSession(
	historyStore model.HistoryStore,
	conversation *Conversation,
	extractor model.DocumentExtractor,
	logger *logger.Logger,
) *Session {
	return &Session{
		historyStore: historyStore,
		conversation: conversation,
		extractor:    extractor,
		logger:       logger,
	}
}

// SessionActivity is a session name with its message count.
type SessionActivity struct {
	Name     string `json:"name"`
	Messages int    `json:"messages"`
}

// Stats summarizes the stored history for the dashboard.
type Stats struct {
	TotalSessions int               `json:"total_sessions"`
	TotalQueries  int               `json:"total_queries"`
	Recent        []SessionActivity `json:"recent"`
}

// NewChat starts an unnamed chat. Nothing is persisted.
func (s *Session) NewChat(ctx context.Context, ws *model.Workspace) model.ChatSession {
	ws.Lock()
	defer ws.Unlock()

	ws.Reset()
	return ws.Snapshot()
}

// Active returns the workspace's current chat.
func (s *Session) Active(ctx context.Context, ws *model.Workspace) model.ChatSession {
	ws.Lock()
	defer ws.Unlock()

	return ws.Snapshot()
}

// LoadChat makes the stored session name active. An unknown name leaves the
// workspace untouched.
func (s *Session) LoadChat(ctx context.Context, ws *model.Workspace, name string) (model.ChatSession, error) {
	messages, ok := s.historyStore.Load(ctx).Get(name)
	if !ok {
		return model.ChatSession{}, model.ErrSessionNotFound
	}
	if messages == nil {
		messages = []model.ChatMessage{}
	}

	ws.Lock()
	defer ws.Unlock()

	ws.SessionName = name
	ws.Messages = messages

	s.logger.Debug("Session service: chat loaded",
		"username", ws.Username,
		"session", name,
		"messages", len(messages))

	return ws.Snapshot(), nil
}

// DeleteChat removes name from the history. If it is the active chat the
// workspace starts a new one.
func (s *Session) DeleteChat(ctx context.Context, ws *model.Workspace, name string) error {
	if err := s.historyStore.Delete(ctx, name); err != nil {
		s.logger.Error("Session service: failed to delete chat",
			"session", name,
			"error", err.Error())
		return fmt.Errorf("failed to delete chat: %w", err)
	}

	ws.Lock()
	defer ws.Unlock()

	if ws.SessionName == name {
		ws.Reset()
	}

	s.logger.Info("Session service: chat deleted",
		"username", ws.Username,
		"session", name)

	return nil
}

// Ask runs one chat turn. The reply is always returned; a failed save is
// reported as model.ErrPersistFailed with the in-memory chat kept.
func (s *Session) Ask(ctx context.Context, ws *model.Workspace, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", model.ErrMissingFields
	}

	ws.Lock()
	defer ws.Unlock()

	prior := slices.Clone(ws.Messages)
	ws.Messages = append(ws.Messages, model.ChatMessage{Role: model.RoleUser, Content: prompt})

	reply := s.conversation.Converse(ctx, prompt, ws.ContextText, prior)
	ws.Messages = append(ws.Messages, model.ChatMessage{Role: model.RoleAssistant, Content: reply})

	if ws.SessionName == model.UnnamedSession {
		ws.SessionName = SessionName(prompt)
	}

	if err := s.historyStore.SaveSession(ctx, ws.SessionName, ws.Messages); err != nil {
		s.logger.Error("Session service: failed to save chat",
			"username", ws.Username,
			"session", ws.SessionName,
			"error", err.Error())
		return reply, fmt.Errorf("%w: %w", model.ErrPersistFailed, err)
	}

	return reply, nil
}

// ListChats returns stored session names, most recent first.
func (s *Session) ListChats(ctx context.Context) []string {
	names := s.historyStore.Load(ctx).Names()
	slices.Reverse(names)
	return names
}

// Stats counts sessions and queries and lists the latest sessions.
func (s *Session) Stats(ctx context.Context) Stats {
	sessions := s.historyStore.Load(ctx).Sessions()

	stats := Stats{
		TotalSessions: len(sessions),
		Recent:        []SessionActivity{},
	}

	messages := 0
	for _, session := range sessions {
		messages += len(session.Messages)
	}
	stats.TotalQueries = messages / 2

	for _, session := range sessions[max(0, len(sessions)-recentSessions):] {
		stats.Recent = append(stats.Recent, SessionActivity{
			Name:     session.Name,
			Messages: len(session.Messages),
		})
	}

	return stats
}

// SetContext extracts the upload and makes its text the conversation
// context. Partial text from a failed extraction is kept; the failure is
// returned in the Extraction. A pending quiz is dropped.
func (s *Session) SetContext(ctx context.Context, ws *model.Workspace, upload model.Upload) model.Extraction {
	result := s.extractor.Extract(ctx, upload)

	ws.Lock()
	defer ws.Unlock()

	ws.ContextText = result.Text
	ws.ContextFile = upload.Name
	ws.Quiz = nil

	if result.Err != nil {
		s.logger.Warn("Session service: document read with errors",
			"username", ws.Username,
			"file", upload.Name,
			"error", result.Err.Error())
	} else {
		s.logger.Info("Session service: document context set",
			"username", ws.Username,
			"file", upload.Name,
			"format", result.Format)
	}

	return result
}

// SessionName derives a chat name from its first prompt.
func SessionName(prompt string) string {
	runes := []rune(prompt)
	if len(runes) > sessionNameRunes {
		runes = runes[:sessionNameRunes]
	}
	return sessionNamePrefix + string(runes) + "..."
}

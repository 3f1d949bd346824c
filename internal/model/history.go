package model

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
)

// HistoryStore persists every chat session as one snapshot.
type HistoryStore interface {
	// Load returns all sessions. An absent or unreadable snapshot yields an
	// empty history.
	Load(ctx context.Context) History
	// Save overwrites the snapshot with history.
	Save(ctx context.Context, history History) error
	// SaveSession stores messages under name, keeping other sessions.
	SaveSession(ctx context.Context, name string, messages []ChatMessage) error
	// Delete removes name. Deleting an absent session is a no-op.
	Delete(ctx context.Context, name string) error
}

// Role identifies the author of a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatMessage is one turn of a transcript.
type ChatMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// ChatSession is a named transcript.
type ChatSession struct {
	Name     string        `json:"name"`
	Messages []ChatMessage `json:"messages"`
}

// History is an insertion-ordered mapping of session name to transcript.
// It encodes to a JSON object whose key order follows insertion order.
type History struct {
	sessions []ChatSession
}

// NewHistory builds a History from sessions in the given order.
func NewHistory(sessions ...ChatSession) History {
	var h History
	for _, s := range sessions {
		h.Set(s.Name, s.Messages)
	}
	return h
}

// Len returns the number of sessions.
func (h History) Len() int {
	return len(h.sessions)
}

// Names returns the session names in insertion order.
func (h History) Names() []string {
	names := make([]string, len(h.sessions))
	for i, s := range h.sessions {
		names[i] = s.Name
	}
	return names
}

// Sessions returns a copy of all sessions in insertion order.
func (h History) Sessions() []ChatSession {
	out := make([]ChatSession, len(h.sessions))
	for i, s := range h.sessions {
		out[i] = ChatSession{Name: s.Name, Messages: cloneMessages(s.Messages)}
	}
	return out
}

// Get returns a copy of the messages stored under name.
func (h History) Get(name string) ([]ChatMessage, bool) {
	i := h.index(name)
	if i < 0 {
		return nil, false
	}
	return cloneMessages(h.sessions[i].Messages), true
}

// Set stores messages under name. An existing session keeps its position.
func (h *History) Set(name string, messages []ChatMessage) {
	msgs := cloneMessages(messages)
	if i := h.index(name); i >= 0 {
		h.sessions[i].Messages = msgs
		return
	}
	h.sessions = append(h.sessions, ChatSession{Name: name, Messages: msgs})
}

// Delete removes name and reports whether it was present.
func (h *History) Delete(name string) bool {
	i := h.index(name)
	if i < 0 {
		return false
	}
	h.sessions = append(h.sessions[:i:i], h.sessions[i+1:]...)
	return true
}

func (h History) index(name string) int {
	for i, s := range h.sessions {
		if s.Name == name {
			return i
		}
	}
	return -1
}

// MarshalJSON encodes the history as {"name": [messages...], ...}.
func (h History) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, s := range h.sessions {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(s.Name)
		if err != nil {
			return nil, err
		}
		msgs := s.Messages
		if msgs == nil {
			msgs = []ChatMessage{}
		}
		val, err := json.Marshal(msgs)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object keeping its key order.
func (h *History) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("decode history: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("decode history: expected object, got %v", tok)
	}

	var out History
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("decode history key: %w", err)
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("decode history: unexpected key %v", tok)
		}
		var msgs []ChatMessage
		if err := dec.Decode(&msgs); err != nil {
			return fmt.Errorf("decode session %q: %w", name, err)
		}
		out.Set(name, msgs)
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("decode history: %w", err)
	}

	*h = out
	return nil
}

func cloneMessages(msgs []ChatMessage) []ChatMessage {
	if msgs == nil {
		return nil
	}
	out := make([]ChatMessage, len(msgs))
	copy(out, msgs)
	return out
}

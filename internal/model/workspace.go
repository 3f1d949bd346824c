package model

import (
	"context"
	"sync"
)

// UnnamedSession is the name of a chat that has not been answered yet.
const UnnamedSession = "New Chat"

// WorkspaceStore holds the per-user conversation state between requests.
type WorkspaceStore interface {
	// Get returns the user's workspace, creating an empty one on first use.
	Get(ctx context.Context, username string) *Workspace
	// Delete forgets the user's workspace.
	Delete(ctx context.Context, username string)
}

// Workspace is the state of one user's study session: the active chat, the
// uploaded document text and the quiz in progress. Operations on it must
// hold its lock.
type Workspace struct {
	mu sync.Mutex

	Username    string
	SessionName string
	Messages    []ChatMessage
	ContextText string
	ContextFile string
	Quiz        *Quiz
}

// NewWorkspace returns a workspace with a fresh unnamed chat.
func NewWorkspace(username string) *Workspace {
	return &Workspace{
		Username:    username,
		SessionName: UnnamedSession,
		Messages:    []ChatMessage{},
	}
}

// Lock acquires the workspace for one user action.
func (w *Workspace) Lock() { w.mu.Lock() }

// Unlock releases the workspace.
func (w *Workspace) Unlock() { w.mu.Unlock() }

// Reset starts a new unnamed chat. Document context is kept.
func (w *Workspace) Reset() {
	w.SessionName = UnnamedSession
	w.Messages = []ChatMessage{}
}

// Snapshot returns a copy of the chat state.
func (w *Workspace) Snapshot() ChatSession {
	return ChatSession{Name: w.SessionName, Messages: cloneMessages(w.Messages)}
}

// Quiz is a single generated multiple-choice question.
type Quiz struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Answer      string   `json:"answer"`
	Explanation string   `json:"explanation"`
}

package handler

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/studybuddy/studybuddy-server/internal/logger"
	"github.com/studybuddy/studybuddy-server/internal/model"
)

// ChatService defines chat session operations.
type ChatService interface {
	NewChat(ctx context.Context, ws *model.Workspace) model.ChatSession
	Active(ctx context.Context, ws *model.Workspace) model.ChatSession
	LoadChat(ctx context.Context, ws *model.Workspace, name string) (model.ChatSession, error)
	DeleteChat(ctx context.Context, ws *model.Workspace, name string) error
	Ask(ctx context.Context, ws *model.Workspace, prompt string) (string, error)
	ListChats(ctx context.Context) []string
}

// Chat handles HTTP endpoints for chat sessions.
type Chat struct {
	chatService ChatService
	resolver    workspaceResolver
	logger      *logger.Logger
}

func NewChat(
	chatService ChatService,
	workspaces model.WorkspaceStore,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Chat {
	return &Chat{
		chatService: chatService,
		resolver:    workspaceResolver{workspaces: workspaces, contextManager: contextManager},
		logger:      logger,
	}
}

type chatListResponse struct {
	Chats []string `json:"chats"`
}

type loadChatRequest struct {
	Name string `json:"name"`
}

type askRequest struct {
	Prompt string `json:"prompt"`
}

type askResponse struct {
	Reply   string `json:"reply"`
	Session string `json:"session"`
	Warning string `json:"warning,omitempty"`
}

func (h *Chat) List(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.resolver.workspace(w, r); !ok {
		return
	}
	JSON(w, http.StatusOK, chatListResponse{Chats: h.chatService.ListChats(r.Context())})
}

func (h *Chat) New(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.resolver.workspace(w, r)
	if !ok {
		return
	}
	JSON(w, http.StatusOK, h.chatService.NewChat(r.Context(), ws))
}

func (h *Chat) Active(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.resolver.workspace(w, r)
	if !ok {
		return
	}
	JSON(w, http.StatusOK, h.chatService.Active(r.Context(), ws))
}

func (h *Chat) Load(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.resolver.workspace(w, r)
	if !ok {
		return
	}

	var req loadChatRequest
	if err := decode(r, &req); err != nil {
		handleError(w, err)
		return
	}

	session, err := h.chatService.LoadChat(r.Context(), ws, req.Name)
	if err != nil {
		handleError(w, err)
		return
	}

	JSON(w, http.StatusOK, session)
}

// Delete removes the chat named by the URL path segment.
func (h *Chat) Delete(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.resolver.workspace(w, r)
	if !ok {
		return
	}

	name, err := chatName(r)
	if err != nil || name == "" {
		Error(w, http.StatusBadRequest, "invalid chat name")
		return
	}

	if err := h.chatService.DeleteChat(r.Context(), ws, name); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// chatName reads the {name} segment. chi matches on the raw path only when
// the request path carries escapes that differ from the default encoding
// (an escaped "/"), so the segment is unescaped only in that case.
func chatName(r *http.Request) (string, error) {
	name := chi.URLParam(r, "name")
	if r.URL.RawPath == "" {
		return name, nil
	}
	return url.PathUnescape(name)
}

// Ask answers a prompt in the active chat. A reply that could not be saved
// is still returned with a warning.
func (h *Chat) Ask(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.resolver.workspace(w, r)
	if !ok {
		return
	}

	var req askRequest
	if err := decode(r, &req); err != nil {
		handleError(w, err)
		return
	}

	reply, err := h.chatService.Ask(r.Context(), ws, req.Prompt)
	resp := askResponse{Reply: reply}
	if err != nil {
		if !errors.Is(err, model.ErrPersistFailed) {
			handleError(w, err)
			return
		}
		resp.Warning = model.ErrPersistFailed.Error()
	}
	resp.Session = h.chatService.Active(r.Context(), ws).Name

	JSON(w, http.StatusOK, resp)
}

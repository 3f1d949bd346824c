package handler

import (
	"net/http"

	"github.com/studybuddy/studybuddy-server/internal/model"
)

// workspaceResolver finds the workspace of the authenticated user.
type workspaceResolver struct {
	workspaces     model.WorkspaceStore
	contextManager model.ContextManager
}

func (wr workspaceResolver) workspace(w http.ResponseWriter, r *http.Request) (*model.Workspace, bool) {
	username, ok := wr.contextManager.GetUsernameFromContext(r.Context())
	if !ok {
		Error(w, http.StatusUnauthorized, "authentication required")
		return nil, false
	}
	return wr.workspaces.Get(r.Context(), username), true
}

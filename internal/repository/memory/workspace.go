package memory

import (
	"context"
	"sync"

	"github.com/studybuddy/studybuddy-server/internal/model"
)

var _ model.WorkspaceStore = (*WorkspaceRepository)(nil)

type WorkspaceRepository struct {
	mu         sync.Mutex
	workspaces map[string]*model.Workspace
}

func NewWorkspaceRepository() *WorkspaceRepository {
	return &WorkspaceRepository{
		workspaces: make(map[string]*model.Workspace),
	}
}

// Get returns the same *Workspace for a username until it is deleted.
func (r *WorkspaceRepository) Get(ctx context.Context, username string) *model.Workspace {
	r.mu.Lock()
	defer r.mu.Unlock()

	ws, ok := r.workspaces[username]
	if !ok {
		ws = model.NewWorkspace(username)
		r.workspaces[username] = ws
	}
	return ws
}

func (r *WorkspaceRepository) Delete(ctx context.Context, username string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.workspaces, username)
}

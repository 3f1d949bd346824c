package handler

import (
	"context"
	"net/http"

	"github.com/studybuddy/studybuddy-server/internal/logger"
	"github.com/studybuddy/studybuddy-server/internal/model"
)

// AuthService defines signup and login operations.
type AuthService interface {
	Login(ctx context.Context, username, password string) (string, error)
	Signup(ctx context.Context, username, password, email string) (model.Account, error)
}

// Auth handles HTTP endpoints for authentication.
type Auth struct {
	authService AuthService
	resolver    workspaceResolver
	logger      *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(
	authService AuthService,
	workspaces model.WorkspaceStore,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		authService: authService,
		resolver:    workspaceResolver{workspaces: workspaces, contextManager: contextManager},
		logger:      logger,
	}
}

type signupRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

type signupResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Message  string `json:"message"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	Username    string `json:"username"`
}

// Signup creates an account. The client logs in separately.
func (h *Auth) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decode(r, &req); err != nil {
		handleError(w, err)
		return
	}

	account, err := h.authService.Signup(r.Context(), req.Username, req.Password, req.Email)
	if err != nil {
		h.logger.Debug("Auth handler: signup rejected",
			"username", req.Username,
			"error", err.Error())
		handleError(w, err)
		return
	}

	JSON(w, http.StatusCreated, signupResponse{
		Username: account.Username,
		Email:    account.Email,
		Message:  "Account created! Please log in.",
	})
}

func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decode(r, &req); err != nil {
		handleError(w, err)
		return
	}

	token, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		handleError(w, err)
		return
	}

	JSON(w, http.StatusOK, loginResponse{AccessToken: token, Username: req.Username})
}

// Logout forgets the caller's workspace. The access token stays valid until
// it expires.
func (h *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	username, ok := h.resolver.contextManager.GetUsernameFromContext(r.Context())
	if !ok {
		Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	h.resolver.workspaces.Delete(r.Context(), username)
	h.logger.Info("Auth handler: user logged out",
		"username", username)

	w.WriteHeader(http.StatusNoContent)
}

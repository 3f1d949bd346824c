package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/studybuddy/studybuddy-server/internal/api/http/handler"
	"github.com/studybuddy/studybuddy-server/internal/logger"
	"github.com/studybuddy/studybuddy-server/internal/model"
)

var (
	errMissingToken = errors.New("missing authorization token")
	errInvalidToken = errors.New("invalid authorization token")
)

// TokenService resolves the username from bearer tokens.
type TokenService interface {
	GetUsername(ctx context.Context, token string) (string, error)
}

// Authenticate validates bearer tokens and injects the username into context.
type Authenticate struct {
	tokenService   TokenService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(tokenService TokenService, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{tokenService: tokenService, contextManager: contextManager, logger: logger}
}

// Handler rejects requests without a valid token with 401.
func (m *Authenticate) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")

		username, err := m.authenticateUser(r.Context(), tokenString)
		if err != nil {
			m.logger.Debug("Authenticate middleware: request rejected",
				"path", r.URL.Path,
				"error", err.Error())
			handler.Error(w, http.StatusUnauthorized, err.Error())
			return
		}

		next.ServeHTTP(w, r.WithContext(m.contextManager.SetUsernameToContext(r.Context(), username)))
	})
}

func (m *Authenticate) authenticateUser(ctx context.Context, tokenString string) (string, error) {
	if tokenString == "" {
		return "", errMissingToken
	}

	username, err := m.tokenService.GetUsername(ctx, tokenString)
	if err != nil || username == "" {
		return "", errInvalidToken
	}

	return username, nil
}

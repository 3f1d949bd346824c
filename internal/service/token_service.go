package service

import (
	"context"
	"fmt"

	"github.com/studybuddy/studybuddy-server/internal/logger"
	"github.com/studybuddy/studybuddy-server/internal/model"
)

// TokenService issues and resolves access tokens on top of a TokenManager.
type TokenService struct {
	manager model.TokenManager
	logger  *logger.Logger
}

func NewTokenService(manager model.TokenManager, logger *logger.Logger) *TokenService {
	return &TokenService{manager: manager, logger: logger}
}

func (s *TokenService) Issue(ctx context.Context, username string) (string, error) {
	access, err := s.manager.GenerateAccessToken(username)
	if err != nil {
		return "", fmt.Errorf("issue access: %w", err)
	}
	return access, nil
}

func (s *TokenService) GetUsername(ctx context.Context, token string) (string, error) {
	return s.manager.ParseAccessToken(token)
}

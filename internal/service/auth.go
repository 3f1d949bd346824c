package service

import (
	"context"
	"fmt"

	"github.com/studybuddy/studybuddy-server/internal/logger"
	"github.com/studybuddy/studybuddy-server/internal/model"
)

type Auth struct {
	accountStore model.AccountStore
	tokenService *TokenService
	logger       *logger.Logger
}

func NewAuth(
	accountStore model.AccountStore,
	tokenManager model.TokenManager,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		accountStore: accountStore,
		tokenService: NewTokenService(tokenManager, logger),
		logger:       logger,
	}
}

// Login checks the password against the stored one, legacy accounts
// included, and issues an access token.
func (a *Auth) Login(ctx context.Context, username, password string) (string, error) {
	a.logger.Debug("Auth service: starting user login",
		"username", username)

	account, ok := a.accountStore.Load(ctx).Get(username)
	if !ok {
		a.logger.Info("Auth service: user not found",
			"username", username)
		return "", model.ErrUserNotFound
	}

	if account.Password != password {
		a.logger.Info("Auth service: invalid password",
			"username", username)
		return "", model.ErrInvalidCredentials
	}

	accessToken, err := a.tokenService.Issue(ctx, username)
	if err != nil {
		a.logger.Error("Auth service: failed to issue token",
			"username", username,
			"error", err.Error())
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	a.logger.Info("Auth service: user logged in",
		"username", username,
		"legacy", account.Legacy)

	return accessToken, nil
}

// Signup registers a new account. It does not log the user in.
func (a *Auth) Signup(ctx context.Context, username, password, email string) (model.Account, error) {
	a.logger.Debug("Auth service: starting user registration",
		"username", username)

	if username == "" || password == "" || email == "" {
		return model.Account{}, model.ErrMissingFields
	}

	accounts := a.accountStore.Load(ctx)
	if _, ok := accounts.Get(username); ok {
		a.logger.Info("Auth service: username already taken",
			"username", username)
		return model.Account{}, model.ErrUsernameTaken
	}

	if _, ok := accounts.FindByEmail(email); ok {
		a.logger.Info("Auth service: email already registered",
			"username", username)
		return model.Account{}, model.ErrEmailTaken
	}

	account := model.Account{Username: username, Password: password, Email: email}
	accounts = accounts.Clone()
	accounts[username] = account

	if err := a.accountStore.Save(ctx, accounts); err != nil {
		a.logger.Error("Auth service: failed to save accounts",
			"username", username,
			"error", err.Error())
		return model.Account{}, fmt.Errorf("failed to save accounts: %w", err)
	}

	a.logger.Info("Auth service: user registration completed successfully",
		"username", username)

	return account, nil
}

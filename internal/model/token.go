package model

// TokenManager generates and validates access tokens for usernames.
type TokenManager interface {
	GenerateAccessToken(username string) (string, error)
	ParseAccessToken(token string) (string, error)
}

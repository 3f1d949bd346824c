package model

import "errors"

// Identity and reset errors.
var (
	ErrInvalidCredentials = errors.New("invalid password")
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrEmailTaken         = errors.New("email already registered")
	ErrEmailNotFound      = errors.New("email not found")
	ErrInvalidOTP         = errors.New("invalid otp")
	ErrFeatureDisabled    = errors.New("email features are disabled")
	ErrDeliveryFailed     = errors.New("error sending email")
	ErrTicketNotFound     = errors.New("reset ticket not found or expired")
	ErrResetStage         = errors.New("reset ticket is not at the required stage")
	ErrMissingFields      = errors.New("please fill in all fields")
)

// Document and generation errors.
var (
	ErrUnsupportedFormat     = errors.New("unsupported document format")
	ErrExtractionFailed      = errors.New("error reading file")
	ErrGenerationUnavailable = errors.New("generation provider unavailable")
	ErrNoContext             = errors.New("no document uploaded")
	ErrQuizGeneration        = errors.New("quiz generation failed")
	ErrNoQuiz                = errors.New("no quiz in progress")
)

// Persistence and session errors.
var (
	ErrNotFound        = errors.New("not found")
	ErrSessionNotFound = errors.New("chat session not found")
	ErrPersistFailed   = errors.New("failed to persist chat history")
)

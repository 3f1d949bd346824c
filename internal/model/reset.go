package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ResetTicketDuration is a TTL for an unfinished password reset.
const ResetTicketDuration = time.Minute * 10

// ResetTicketStore keeps in-flight password reset attempts.
type ResetTicketStore interface {
	Create(ctx context.Context, ticket ResetTicket) error
	GetByID(ctx context.Context, id uuid.UUID) (ResetTicket, error)
	Update(ctx context.Context, ticket ResetTicket) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ResetStage is the position of a ticket in the reset state machine.
type ResetStage int

const (
	// ResetStageAwaitingEmail is the initial stage; no ticket is stored yet.
	ResetStageAwaitingEmail ResetStage = iota
	// ResetStageAwaitingOTP waits for the code that was mailed out.
	ResetStageAwaitingOTP
	// ResetStageAwaitingPassword waits for the new password.
	ResetStageAwaitingPassword
)

func (s ResetStage) String() string {
	switch s {
	case ResetStageAwaitingEmail:
		return "awaiting_email"
	case ResetStageAwaitingOTP:
		return "awaiting_otp"
	case ResetStageAwaitingPassword:
		return "awaiting_password"
	default:
		return "unknown"
	}
}

// ResetTicket describes one password reset attempt.
type ResetTicket struct {
	ID        uuid.UUID
	Email     string
	Username  string
	OTP       string
	Stage     ResetStage
	ExpiresAt time.Time
}

// Expired reports whether the ticket outlived its TTL at now.
func (t ResetTicket) Expired(now time.Time) bool {
	return !t.ExpiresAt.IsZero() && now.After(t.ExpiresAt)
}

package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"

	"github.com/studybuddy/studybuddy-server/internal/logger"
	"github.com/studybuddy/studybuddy-server/internal/mail"
	"github.com/studybuddy/studybuddy-server/internal/model"
)

var otpSpace = big.NewInt(1_000_000)

// Reset drives the three stage password reset: request a code by email,
// verify it, then set a new password.
type Reset struct {
	accountStore model.AccountStore
	ticketStore  model.ResetTicketStore
	mailer       model.Mailer
	logger       *logger.Logger

	now     func() time.Time
	makeOTP func() (string, error)
}

func NewReset(
	accountStore model.AccountStore,
	ticketStore model.ResetTicketStore,
	mailer model.Mailer,
	logger *logger.Logger,
) *Reset {
	return &Reset{
		accountStore: accountStore,
		ticketStore:  ticketStore,
		mailer:       mailer,
		logger:       logger,
		now:          time.Now,
		makeOTP:      generateOTP,
	}
}

// Enabled reports whether mail delivery is configured.
func (r *Reset) Enabled() bool {
	return r.mailer.Enabled()
}

// RequestOTP mails a code to the account registered under email and returns
// the ticket that tracks the attempt. No ticket exists if delivery fails.
func (r *Reset) RequestOTP(ctx context.Context, email string) (uuid.UUID, error) {
	if !r.Enabled() {
		return uuid.Nil, model.ErrFeatureDisabled
	}

	account, ok := r.accountStore.Load(ctx).FindByEmail(email)
	if !ok {
		r.logger.Info("Reset service: email not found")
		return uuid.Nil, model.ErrEmailNotFound
	}

	code, err := r.makeOTP()
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to generate otp: %w", err)
	}

	if err := r.mailer.Send(ctx, mail.OTPMessage(email, code)); err != nil {
		r.logger.Error("Reset service: failed to send otp",
			"username", account.Username,
			"error", err.Error())
		return uuid.Nil, fmt.Errorf("%w: %w", model.ErrDeliveryFailed, err)
	}

	ticket := model.ResetTicket{
		ID:        uuid.New(),
		Email:     email,
		Username:  account.Username,
		OTP:       code,
		Stage:     model.ResetStageAwaitingOTP,
		ExpiresAt: r.now().Add(model.ResetTicketDuration),
	}
	if err := r.ticketStore.Create(ctx, ticket); err != nil {
		return uuid.Nil, fmt.Errorf("failed to create reset ticket: %w", err)
	}

	r.logger.Info("Reset service: otp sent",
		"username", account.Username,
		"ticket_id", ticket.ID)

	return ticket.ID, nil
}

// VerifyOTP advances the ticket when code matches exactly. A mismatch keeps
// the ticket where it is.
func (r *Reset) VerifyOTP(ctx context.Context, ticketID uuid.UUID, code string) error {
	ticket, err := r.ticketAt(ctx, ticketID, model.ResetStageAwaitingOTP)
	if err != nil {
		return err
	}

	if code != ticket.OTP {
		r.logger.Info("Reset service: invalid otp",
			"ticket_id", ticketID)
		return model.ErrInvalidOTP
	}

	ticket.Stage = model.ResetStageAwaitingPassword
	if err := r.ticketStore.Update(ctx, ticket); err != nil {
		return fmt.Errorf("failed to update reset ticket: %w", err)
	}

	r.logger.Info("Reset service: identity verified",
		"username", ticket.Username,
		"ticket_id", ticketID)

	return nil
}

// CancelReset discards the ticket, returning the flow to its start.
func (r *Reset) CancelReset(ctx context.Context, ticketID uuid.UUID) error {
	if !r.Enabled() {
		return model.ErrFeatureDisabled
	}
	if err := r.ticketStore.Delete(ctx, ticketID); err != nil {
		return fmt.Errorf("failed to delete reset ticket: %w", err)
	}
	return nil
}

// SetNewPassword overwrites the password of the ticket's account and
// discards the ticket.
func (r *Reset) SetNewPassword(ctx context.Context, ticketID uuid.UUID, password string) error {
	ticket, err := r.ticketAt(ctx, ticketID, model.ResetStageAwaitingPassword)
	if err != nil {
		return err
	}
	if password == "" {
		return model.ErrMissingFields
	}

	accounts := r.accountStore.Load(ctx)
	account, ok := accounts.Get(ticket.Username)
	if !ok {
		r.logger.Warn("Reset service: account disappeared during reset",
			"username", ticket.Username)
		return model.ErrUserNotFound
	}

	account.Password = password
	accounts = accounts.Clone()
	accounts[ticket.Username] = account

	if err := r.accountStore.Save(ctx, accounts); err != nil {
		r.logger.Error("Reset service: failed to save accounts",
			"username", ticket.Username,
			"error", err.Error())
		return fmt.Errorf("failed to save accounts: %w", err)
	}

	if err := r.ticketStore.Delete(ctx, ticketID); err != nil {
		r.logger.Warn("Reset service: failed to discard ticket",
			"ticket_id", ticketID,
			"error", err.Error())
	}

	r.logger.Info("Reset service: password updated",
		"username", ticket.Username)

	return nil
}

func (r *Reset) ticketAt(ctx context.Context, ticketID uuid.UUID, stage model.ResetStage) (model.ResetTicket, error) {
	if !r.Enabled() {
		return model.ResetTicket{}, model.ErrFeatureDisabled
	}

	ticket, err := r.ticketStore.GetByID(ctx, ticketID)
	if err != nil {
		return model.ResetTicket{}, err
	}
	if ticket.Expired(r.now()) {
		return model.ResetTicket{}, model.ErrTicketNotFound
	}
	if ticket.Stage != stage {
		return model.ResetTicket{}, fmt.Errorf("%w: ticket is %s, want %s", model.ErrResetStage, ticket.Stage, stage)
	}
	return ticket, nil
}

// generateOTP returns six decimal digits, leading zeros included.
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, otpSpace)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

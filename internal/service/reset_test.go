package service

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	servermocks "github.com/studybuddy/studybuddy-server/internal/mocks"
	"github.com/studybuddy/studybuddy-server/internal/model"
	"github.com/studybuddy/studybuddy-server/internal/repository/memory"
	"github.com/studybuddy/studybuddy-server/internal/testutil"
)

type resetFixture struct {
	accounts *servermocks.AccountStore
	tickets  *servermocks.ResetTicketStore
	mailer   *servermocks.Mailer
	reset    *Reset
	now      time.Time
}

func newResetFixture(t *testing.T) *resetFixture {
	t.Helper()

	f := &resetFixture{
		accounts: servermocks.NewAccountStore(t),
		tickets:  servermocks.NewResetTicketStore(t),
		mailer:   servermocks.NewMailer(t),
		now:      time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
	}
	f.reset = NewReset(f.accounts, f.tickets, f.mailer, testutil.MakeNoopLogger())
	f.reset.now = func() time.Time { return f.now }
	f.reset.makeOTP = func() (string, error) { return "004217", nil }
	return f
}

func TestReset_Disabled(t *testing.T) {
	f := newResetFixture(t)
	f.mailer.On("Enabled").Return(false)

	ctx := context.Background()
	id := uuid.New()

	assert.False(t, f.reset.Enabled())
	_, err := f.reset.RequestOTP(ctx, "alice@example.com")
	assert.ErrorIs(t, err, model.ErrFeatureDisabled)
	assert.ErrorIs(t, f.reset.VerifyOTP(ctx, id, "1"), model.ErrFeatureDisabled)
	assert.ErrorIs(t, f.reset.CancelReset(ctx, id), model.ErrFeatureDisabled)
	assert.ErrorIs(t, f.reset.SetNewPassword(ctx, id, "pw"), model.ErrFeatureDisabled)
}

func TestReset_RequestOTP(t *testing.T) {
	f := newResetFixture(t)
	f.mailer.On("Enabled").Return(true)
	f.accounts.On("Load", mock.Anything).Return(existingAccounts())
	f.mailer.On("Send", mock.Anything, model.MailMessage{
		To:      "alice@example.com",
		Subject: "Study Buddy Password Reset",
		Body:    "Your Study Buddy Verification Code is: 004217",
	}).Return(nil).Once()
	f.tickets.On("Create", mock.Anything, mock.MatchedBy(func(ticket model.ResetTicket) bool {
		return ticket.Username == "alice" &&
			ticket.Email == "alice@example.com" &&
			ticket.OTP == "004217" &&
			ticket.Stage == model.ResetStageAwaitingOTP &&
			ticket.ExpiresAt.Equal(f.now.Add(model.ResetTicketDuration))
	})).Return(nil).Once()

	id, err := f.reset.RequestOTP(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)
}

func TestReset_RequestOTP_EmailNotFound(t *testing.T) {
	f := newResetFixture(t)
	f.mailer.On("Enabled").Return(true)
	f.accounts.On("Load", mock.Anything).Return(existingAccounts())

	_, err := f.reset.RequestOTP(context.Background(), "ALICE@example.com")
	require.ErrorIs(t, err, model.ErrEmailNotFound)
	f.mailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestReset_RequestOTP_DeliveryFailed(t *testing.T) {
	f := newResetFixture(t)
	f.mailer.On("Enabled").Return(true)
	f.accounts.On("Load", mock.Anything).Return(existingAccounts())
	f.mailer.On("Send", mock.Anything, mock.Anything).Return(assert.AnError)

	_, err := f.reset.RequestOTP(context.Background(), "alice@example.com")
	require.ErrorIs(t, err, model.ErrDeliveryFailed)
	require.ErrorIs(t, err, assert.AnError)
	f.tickets.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestReset_VerifyOTP(t *testing.T) {
	id := uuid.New()
	pending := func(f *resetFixture) model.ResetTicket {
		return model.ResetTicket{
			ID: id, Username: "alice", OTP: "004217",
			Stage:     model.ResetStageAwaitingOTP,
			ExpiresAt: f.now.Add(time.Minute),
		}
	}

	t.Run("match advances the ticket", func(t *testing.T) {
		f := newResetFixture(t)
		f.mailer.On("Enabled").Return(true)
		f.tickets.On("GetByID", mock.Anything, id).Return(pending(f), nil)
		f.tickets.On("Update", mock.Anything, mock.MatchedBy(func(ticket model.ResetTicket) bool {
			return ticket.Stage == model.ResetStageAwaitingPassword
		})).Return(nil).Once()

		require.NoError(t, f.reset.VerifyOTP(context.Background(), id, "004217"))
	})

	t.Run("mismatch keeps the stage", func(t *testing.T) {
		f := newResetFixture(t)
		f.mailer.On("Enabled").Return(true)
		f.tickets.On("GetByID", mock.Anything, id).Return(pending(f), nil)

		require.ErrorIs(t, f.reset.VerifyOTP(context.Background(), id, "4217"), model.ErrInvalidOTP)
		f.tickets.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("expired ticket", func(t *testing.T) {
		f := newResetFixture(t)
		f.mailer.On("Enabled").Return(true)
		ticket := pending(f)
		ticket.ExpiresAt = f.now.Add(-time.Second)
		f.tickets.On("GetByID", mock.Anything, id).Return(ticket, nil)

		require.ErrorIs(t, f.reset.VerifyOTP(context.Background(), id, "004217"), model.ErrTicketNotFound)
	})

	t.Run("wrong stage", func(t *testing.T) {
		f := newResetFixture(t)
		f.mailer.On("Enabled").Return(true)
		ticket := pending(f)
		ticket.Stage = model.ResetStageAwaitingPassword
		f.tickets.On("GetByID", mock.Anything, id).Return(ticket, nil)

		require.ErrorIs(t, f.reset.VerifyOTP(context.Background(), id, "004217"), model.ErrResetStage)
	})

	t.Run("unknown ticket", func(t *testing.T) {
		f := newResetFixture(t)
		f.mailer.On("Enabled").Return(true)
		f.tickets.On("GetByID", mock.Anything, id).Return(model.ResetTicket{}, model.ErrTicketNotFound)

		require.ErrorIs(t, f.reset.VerifyOTP(context.Background(), id, "004217"), model.ErrTicketNotFound)
	})
}

func TestReset_SetNewPassword(t *testing.T) {
	id := uuid.New()

	t.Run("updates only the ticket's account", func(t *testing.T) {
		f := newResetFixture(t)
		f.mailer.On("Enabled").Return(true)
		f.tickets.On("GetByID", mock.Anything, id).Return(model.ResetTicket{
			ID: id, Username: "alice", Stage: model.ResetStageAwaitingPassword, ExpiresAt: f.now.Add(time.Minute),
		}, nil)
		f.accounts.On("Load", mock.Anything).Return(existingAccounts())
		f.accounts.On("Save", mock.Anything, mock.MatchedBy(func(accounts model.Accounts) bool {
			return accounts["alice"].Password == "new-secret" &&
				accounts["alice"].Email == "alice@example.com" &&
				accounts["bob"].Password == "hunter2"
		})).Return(nil).Once()
		f.tickets.On("Delete", mock.Anything, id).Return(nil).Once()

		require.NoError(t, f.reset.SetNewPassword(context.Background(), id, "new-secret"))
	})

	t.Run("requires verified ticket", func(t *testing.T) {
		f := newResetFixture(t)
		f.mailer.On("Enabled").Return(true)
		f.tickets.On("GetByID", mock.Anything, id).Return(model.ResetTicket{
			ID: id, Username: "alice", Stage: model.ResetStageAwaitingOTP, ExpiresAt: f.now.Add(time.Minute),
		}, nil)

		require.ErrorIs(t, f.reset.SetNewPassword(context.Background(), id, "x"), model.ErrResetStage)
		f.accounts.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("save failure keeps the ticket", func(t *testing.T) {
		f := newResetFixture(t)
		f.mailer.On("Enabled").Return(true)
		f.tickets.On("GetByID", mock.Anything, id).Return(model.ResetTicket{
			ID: id, Username: "alice", Stage: model.ResetStageAwaitingPassword, ExpiresAt: f.now.Add(time.Minute),
		}, nil)
		f.accounts.On("Load", mock.Anything).Return(existingAccounts())
		f.accounts.On("Save", mock.Anything, mock.Anything).Return(assert.AnError)

		require.ErrorIs(t, f.reset.SetNewPassword(context.Background(), id, "new"), assert.AnError)
		f.tickets.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestReset_FullFlowWithMemoryTickets(t *testing.T) {
	ctx := context.Background()
	accounts := existingAccounts()

	accountStore := servermocks.NewAccountStore(t)
	accountStore.On("Load", mock.Anything).Return(func(context.Context) model.Accounts { return accounts })
	accountStore.On("Save", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		accounts = args.Get(1).(model.Accounts)
	}).Return(nil)

	mailer := servermocks.NewMailer(t)
	mailer.On("Enabled").Return(true)
	var sent model.MailMessage
	mailer.On("Send", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		sent = args.Get(1).(model.MailMessage)
	}).Return(nil)

	r := NewReset(accountStore, memory.NewResetTicketRepository(), mailer, testutil.MakeNoopLogger())

	id, err := r.RequestOTP(ctx, "alice@example.com")
	require.NoError(t, err)

	code := regexp.MustCompile(`\d{6}$`).FindString(sent.Body)
	require.Len(t, code, 6)

	require.ErrorIs(t, r.SetNewPassword(ctx, id, "early"), model.ErrResetStage)
	require.NoError(t, r.VerifyOTP(ctx, id, code))
	require.NoError(t, r.SetNewPassword(ctx, id, "brand-new"))

	assert.Equal(t, "brand-new", accounts["alice"].Password)
	require.ErrorIs(t, r.VerifyOTP(ctx, id, code), model.ErrTicketNotFound)
}

func TestReset_Cancel(t *testing.T) {
	f := newResetFixture(t)
	id := uuid.New()
	f.mailer.On("Enabled").Return(true)
	f.tickets.On("Delete", mock.Anything, id).Return(nil).Once()

	require.NoError(t, f.reset.CancelReset(context.Background(), id))
}

func TestGenerateOTP(t *testing.T) {
	pattern := regexp.MustCompile(`^\d{6}$`)
	for i := 0; i < 200; i++ {
		code, err := generateOTP()
		require.NoError(t, err)
		require.Regexp(t, pattern, code)
	}
}

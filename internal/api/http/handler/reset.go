package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/studybuddy/studybuddy-server/internal/logger"
)

// ResetService defines the password reset flow.
type ResetService interface {
	Enabled() bool
	RequestOTP(ctx context.Context, email string) (uuid.UUID, error)
	VerifyOTP(ctx context.Context, ticketID uuid.UUID, code string) error
	CancelReset(ctx context.Context, ticketID uuid.UUID) error
	SetNewPassword(ctx context.Context, ticketID uuid.UUID, password string) error
}

type Reset struct {
	resetService ResetService
	logger       *logger.Logger
}

func NewReset(resetService ResetService, logger *logger.Logger) *Reset {
	return &Reset{
		resetService: resetService,
		logger:       logger,
	}
}

type resetStatusResponse struct {
	Enabled bool `json:"enabled"`
}

type otpRequest struct {
	Email string `json:"email"`
}

type otpResponse struct {
	TicketID uuid.UUID `json:"ticket_id"`
	Message  string    `json:"message"`
}

type verifyRequest struct {
	TicketID uuid.UUID `json:"ticket_id"`
	Code     string    `json:"code"`
}

type ticketRequest struct {
	TicketID uuid.UUID `json:"ticket_id"`
}

type completeRequest struct {
	TicketID uuid.UUID `json:"ticket_id"`
	Password string    `json:"password"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func (h *Reset) Status(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, resetStatusResponse{Enabled: h.resetService.Enabled()})
}

func (h *Reset) Request(w http.ResponseWriter, r *http.Request) {
	var req otpRequest
	if err := decode(r, &req); err != nil {
		handleError(w, err)
		return
	}

	ticketID, err := h.resetService.RequestOTP(r.Context(), req.Email)
	if err != nil {
		handleError(w, err)
		return
	}

	JSON(w, http.StatusOK, otpResponse{TicketID: ticketID, Message: "OTP sent to " + req.Email})
}

func (h *Reset) Verify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := decode(r, &req); err != nil {
		handleError(w, err)
		return
	}

	if err := h.resetService.VerifyOTP(r.Context(), req.TicketID, req.Code); err != nil {
		handleError(w, err)
		return
	}

	JSON(w, http.StatusOK, messageResponse{Message: "Identity Verified!"})
}

func (h *Reset) Cancel(w http.ResponseWriter, r *http.Request) {
	var req ticketRequest
	if err := decode(r, &req); err != nil {
		handleError(w, err)
		return
	}

	if err := h.resetService.CancelReset(r.Context(), req.TicketID); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Reset) Complete(w http.ResponseWriter, r *http.Request) {
	var req completeRequest
	if err := decode(r, &req); err != nil {
		handleError(w, err)
		return
	}

	if err := h.resetService.SetNewPassword(r.Context(), req.TicketID, req.Password); err != nil {
		handleError(w, err)
		return
	}

	JSON(w, http.StatusOK, messageResponse{Message: "Password Updated! Please Login."})
}

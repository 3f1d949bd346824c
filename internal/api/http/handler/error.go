package handler

import (
	"errors"
	"net/http"

	"github.com/studybuddy/studybuddy-server/internal/model"
)

var errorStatuses = []struct {
	err    error
	status int
}{
	{errBadRequest, http.StatusBadRequest},
	{model.ErrMissingFields, http.StatusBadRequest},
	{model.ErrInvalidOTP, http.StatusBadRequest},
	{model.ErrInvalidCredentials, http.StatusUnauthorized},
	{model.ErrUserNotFound, http.StatusNotFound},
	{model.ErrEmailNotFound, http.StatusNotFound},
	{model.ErrTicketNotFound, http.StatusNotFound},
	{model.ErrSessionNotFound, http.StatusNotFound},
	{model.ErrUsernameTaken, http.StatusConflict},
	{model.ErrEmailTaken, http.StatusConflict},
	{model.ErrResetStage, http.StatusConflict},
	{model.ErrNoContext, http.StatusPreconditionFailed},
	{model.ErrNoQuiz, http.StatusPreconditionFailed},
	{model.ErrExtractionFailed, http.StatusUnprocessableEntity},
	{model.ErrDeliveryFailed, http.StatusBadGateway},
	{model.ErrQuizGeneration, http.StatusBadGateway},
	{model.ErrFeatureDisabled, http.StatusServiceUnavailable},
}

// handleError writes the status and message for a service error. Errors
// outside the known set are reported as internal without detail.
func handleError(w http.ResponseWriter, err error) {
	for _, e := range errorStatuses {
		if errors.Is(err, e.err) {
			Error(w, e.status, e.err.Error())
			return
		}
	}
	Error(w, http.StatusInternalServerError, "internal server error")
}

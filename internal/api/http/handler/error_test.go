package handler

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/studybuddy/studybuddy-server/internal/model"
)

func TestHandleError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"invalid credentials", model.ErrInvalidCredentials, http.StatusUnauthorized, model.ErrInvalidCredentials.Error()},
		{"wrapped stage error", fmt.Errorf("%w: ticket is new", model.ErrResetStage), http.StatusConflict, model.ErrResetStage.Error()},
		{"wrapped extraction error", fmt.Errorf("%w: bad zip", model.ErrExtractionFailed), http.StatusUnprocessableEntity, model.ErrExtractionFailed.Error()},
		{"delivery failed", fmt.Errorf("%w: dial", model.ErrDeliveryFailed), http.StatusBadGateway, model.ErrDeliveryFailed.Error()},
		{"feature disabled", model.ErrFeatureDisabled, http.StatusServiceUnavailable, model.ErrFeatureDisabled.Error()},
		{"unknown error hides detail", assert.AnError, http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			handleError(rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.Equal(t, tt.wantMsg, decodeBody[errorResponse](t, rec).Error)
		})
	}
}

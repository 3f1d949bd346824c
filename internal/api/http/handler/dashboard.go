package handler

import (
	"context"
	"net/http"

	"github.com/studybuddy/studybuddy-server/internal/service"
)

// StatsService summarizes stored chat activity.
type StatsService interface {
	Stats(ctx context.Context) service.Stats
}

type Dashboard struct {
	statsService StatsService
}

func NewDashboard(statsService StatsService) *Dashboard {
	return &Dashboard{statsService: statsService}
}

func (h *Dashboard) Stats(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, h.statsService.Stats(r.Context()))
}

package api

import (
	"net/http"

	serr "github.com/IvanChernomyrdin/go-yandex-accounts/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-yandex-accounts/internal/shared/models"
)

// Health проверяет доступность базы.
//
// @Summary      Health check
// @Tags         health
// @Produce      json
// @Success      200 {object} models.HealthResponse
// @Failure      503 {object} models.ErrorResponse "Database unavailable"
// @Router       /healthz [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.Health.Check(r.Context()); err != nil {
		h.Log.Logger.Sugar().Warnw("health check failed", "error", err)
		WriteError(w, http.StatusServiceUnavailable, serr.ErrUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, models.HealthResponse{Status: "ok"})
}

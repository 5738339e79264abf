package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rinkline/server/internal/api/problem"
	"github.com/rinkline/server/internal/domain/games"
	"github.com/rinkline/server/internal/domain/ids"
	"github.com/rinkline/server/internal/domain/schedule"
	"github.com/rinkline/server/internal/metrics"
)

// ScheduleHandler serves the advisory risk evaluation and the inline time
// check used by the game form.
type ScheduleHandler struct {
	Service *games.Service
	Env     string
}

func NewScheduleHandler(service *games.Service, env string) *ScheduleHandler {
	return &ScheduleHandler{Service: service, Env: env}
}

func (h *ScheduleHandler) TeamRisks(w http.ResponseWriter, r *http.Request) {
	teamULID := strings.TrimSpace(pathParam(r, "id"))
	if err := ids.ValidateULID(teamULID); err != nil {
		problem.Write(w, r, http.StatusBadRequest, typeValidation, "Invalid request", games.FilterError{Field: "id", Message: "invalid ULID"}, h.Env)
		return
	}

	evaluation, err := h.Service.EvaluateRisks(r.Context(), teamULID)
	if err != nil {
		problem.Write(w, r, http.StatusInternalServerError, typeServerError, "Server error", err, h.Env)
		return
	}

	metrics.RiskEvaluationsTotal.Inc()
	for _, risk := range evaluation.Risks {
		metrics.RisksDetected.WithLabelValues(string(risk.Type)).Inc()
	}

	writeJSON(w, http.StatusOK, evaluation)
}

type validateTimeRequest struct {
	TeamID string `json:"teamId"`
	Date   string `json:"date"`
	Time   string `json:"time"`
	GameID string `json:"gameId,omitempty"`
}

type validateTimeResponse struct {
	Valid    bool                   `json:"valid"`
	Conflict *schedule.TimeConflict `json:"conflict,omitempty"`
}

// ValidateTime runs the four-hour spacing rule for a candidate slot without
// writing anything. The form calls this on every time change.
func (h *ScheduleHandler) ValidateTime(w http.ResponseWriter, r *http.Request) {
	var req validateTimeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.Write(w, r, http.StatusBadRequest, typeValidation, "Invalid request", err, h.Env)
		return
	}

	if err := ids.ValidateULID(strings.TrimSpace(req.TeamID)); err != nil {
		problem.Write(w, r, http.StatusBadRequest, typeValidation, "Invalid request", games.FilterError{Field: "teamId", Message: "invalid ULID"}, h.Env)
		return
	}

	conflict, err := h.Service.CheckTime(r.Context(), req.TeamID, req.Date, req.Time, req.GameID)
	if err != nil {
		problem.Write(w, r, http.StatusInternalServerError, typeServerError, "Server error", err, h.Env)
		return
	}

	if conflict == nil {
		metrics.TimeChecksTotal.WithLabelValues("valid").Inc()
	} else {
		metrics.TimeChecksTotal.WithLabelValues("conflict").Inc()
	}

	writeJSON(w, http.StatusOK, validateTimeResponse{Valid: conflict == nil, Conflict: conflict})
}

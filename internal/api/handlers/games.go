package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/rinkline/server/internal/api/problem"
	"github.com/rinkline/server/internal/domain/games"
	"github.com/rinkline/server/internal/domain/ids"
)

type GamesHandler struct {
	Service *games.Service
	Env     string
}

func NewGamesHandler(service *games.Service, env string) *GamesHandler {
	return &GamesHandler{Service: service, Env: env}
}

type gameResponse struct {
	ID             string    `json:"id"`
	TeamID         string    `json:"teamId"`
	Type           string    `json:"type"`
	Date           string    `json:"date"`
	Time           string    `json:"time"`
	EndTime        string    `json:"endTime,omitempty"`
	OpponentID     string    `json:"opponentId,omitempty"`
	OpponentName   string    `json:"opponentName,omitempty"`
	OpponentLabel  string    `json:"opponentLabel,omitempty"`
	TournamentName string    `json:"tournamentName,omitempty"`
	Category       string    `json:"category,omitempty"`
	Rink           string    `json:"rink,omitempty"`
	City           string    `json:"city,omitempty"`
	State          string    `json:"state,omitempty"`
	Country        string    `json:"country,omitempty"`
	Status         string    `json:"status"`
	Notes          string    `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type gameListResponse struct {
	Items      []gameResponse `json:"items"`
	NextCursor string         `json:"next_cursor"`
}

func toGameResponse(game games.Game) gameResponse {
	return gameResponse{
		ID:             game.ULID,
		TeamID:         game.TeamID,
		Type:           game.Type,
		Date:           game.Date,
		Time:           game.Time,
		EndTime:        game.EndTime,
		OpponentID:     game.OpponentID,
		OpponentName:   game.OpponentName,
		OpponentLabel:  game.OpponentLabel,
		TournamentName: game.TournamentName,
		Category:       game.Category,
		Rink:           game.Rink,
		City:           game.City,
		State:          game.State,
		Country:        game.Country,
		Status:         game.Status,
		Notes:          game.Notes,
		CreatedAt:      game.CreatedAt,
		UpdatedAt:      game.UpdatedAt,
	}
}

func (h *GamesHandler) List(w http.ResponseWriter, r *http.Request) {
	filters, pagination, err := games.ParseFilters(r.URL.Query())
	if err != nil {
		problem.Write(w, r, http.StatusBadRequest, typeValidation, "Invalid request", err, h.Env)
		return
	}

	result, err := h.Service.List(r.Context(), filters, pagination)
	if err != nil {
		problem.Write(w, r, http.StatusInternalServerError, typeServerError, "Server error", err, h.Env)
		return
	}

	items := make([]gameResponse, 0, len(result.Games))
	for _, game := range result.Games {
		items = append(items, toGameResponse(game))
	}
	writeJSON(w, http.StatusOK, gameListResponse{Items: items, NextCursor: result.NextCursor})
}

func (h *GamesHandler) Get(w http.ResponseWriter, r *http.Request) {
	ulidValue := strings.TrimSpace(pathParam(r, "id"))
	if err := ids.ValidateULID(ulidValue); err != nil {
		problem.Write(w, r, http.StatusBadRequest, typeValidation, "Invalid request", games.FilterError{Field: "id", Message: "invalid ULID"}, h.Env)
		return
	}

	game, err := h.Service.GetByULID(r.Context(), ulidValue)
	if err != nil {
		if errors.Is(err, games.ErrNotFound) {
			problem.Write(w, r, http.StatusNotFound, typeNotFound, "Not found", err, h.Env)
			return
		}
		problem.Write(w, r, http.StatusInternalServerError, typeServerError, "Server error", err, h.Env)
		return
	}

	writeJSON(w, http.StatusOK, toGameResponse(*game))
}

func (h *GamesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input games.GameInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		problem.Write(w, r, http.StatusBadRequest, typeValidation, "Invalid request", err, h.Env)
		return
	}

	game, err := h.Service.Create(r.Context(), input)
	if err != nil {
		h.writeGameError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toGameResponse(*game))
}

func (h *GamesHandler) Update(w http.ResponseWriter, r *http.Request) {
	ulidValue := strings.TrimSpace(pathParam(r, "id"))
	if err := ids.ValidateULID(ulidValue); err != nil {
		problem.Write(w, r, http.StatusBadRequest, typeValidation, "Invalid request", games.FilterError{Field: "id", Message: "invalid ULID"}, h.Env)
		return
	}

	var input games.GameInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		problem.Write(w, r, http.StatusBadRequest, typeValidation, "Invalid request", err, h.Env)
		return
	}

	game, err := h.Service.Update(r.Context(), ulidValue, input)
	if err != nil {
		h.writeGameError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toGameResponse(*game))
}

func (h *GamesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ulidValue := strings.TrimSpace(pathParam(r, "id"))
	if err := ids.ValidateULID(ulidValue); err != nil {
		problem.Write(w, r, http.StatusBadRequest, typeValidation, "Invalid request", games.FilterError{Field: "id", Message: "invalid ULID"}, h.Env)
		return
	}

	if err := h.Service.Delete(r.Context(), ulidValue); err != nil {
		if errors.Is(err, games.ErrNotFound) {
			problem.Write(w, r, http.StatusNotFound, typeNotFound, "Not found", err, h.Env)
			return
		}
		problem.Write(w, r, http.StatusInternalServerError, typeServerError, "Server error", err, h.Env)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// writeGameError maps service errors from Create and Update onto problem
// responses. Spacing conflicts surface as 409 with the conflict attached so
// form clients can show the message next to the time field.
func (h *GamesHandler) writeGameError(w http.ResponseWriter, r *http.Request, err error) {
	var conflictErr games.TimeConflictError
	if errors.As(err, &conflictErr) {
		problem.Write(w, r, http.StatusConflict, typeConflict, "Time conflict", err, h.Env,
			problem.WithDetail(conflictErr.Conflict.Message),
			problem.WithErrors(map[string]any{"conflict": conflictErr.Conflict}))
		return
	}

	var validationErr games.ValidationError
	if errors.As(err, &validationErr) {
		problem.Write(w, r, http.StatusBadRequest, typeValidation, "Invalid request", err, h.Env,
			problem.WithErrors(map[string]any{validationErr.Field: validationErr.Message}))
		return
	}

	if errors.Is(err, games.ErrNotFound) {
		problem.Write(w, r, http.StatusNotFound, typeNotFound, "Not found", err, h.Env)
		return
	}

	problem.Write(w, r, http.StatusInternalServerError, typeServerError, "Server error", err, h.Env)
}

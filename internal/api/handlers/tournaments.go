package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/rinkline/server/internal/api/problem"
	"github.com/rinkline/server/internal/domain/ids"
	"github.com/rinkline/server/internal/domain/tournaments"
)

type TournamentsHandler struct {
	Service *tournaments.Service
	Env     string
}

func NewTournamentsHandler(service *tournaments.Service, env string) *TournamentsHandler {
	return &TournamentsHandler{Service: service, Env: env}
}

type tournamentResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	StartDate string    `json:"startDate"`
	EndDate   string    `json:"endDate,omitempty"`
	Rink      string    `json:"rink,omitempty"`
	City      string    `json:"city,omitempty"`
	State     string    `json:"state,omitempty"`
	Country   string    `json:"country,omitempty"`
	AgeLevels []string  `json:"ageLevels"`
	URL       string    `json:"url,omitempty"`
	Source    string    `json:"source,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type tournamentListResponse struct {
	Items      []tournamentResponse `json:"items"`
	NextCursor string               `json:"next_cursor"`
}

func toTournamentResponse(t tournaments.Tournament) tournamentResponse {
	return tournamentResponse{
		ID:        t.ULID,
		Name:      t.Name,
		StartDate: t.StartDate,
		EndDate:   t.EndDate,
		Rink:      t.Rink,
		City:      t.City,
		State:     t.State,
		Country:   t.Country,
		AgeLevels: t.AgeLevels,
		URL:       t.URL,
		Source:    t.Source,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func (h *TournamentsHandler) List(w http.ResponseWriter, r *http.Request) {
	filters, pagination, err := tournaments.ParseFilters(r.URL.Query())
	if err != nil {
		problem.Write(w, r, http.StatusBadRequest, typeValidation, "Invalid request", err, h.Env)
		return
	}

	result, err := h.Service.List(r.Context(), filters, pagination)
	if err != nil {
		problem.Write(w, r, http.StatusInternalServerError, typeServerError, "Server error", err, h.Env)
		return
	}

	items := make([]tournamentResponse, 0, len(result.Tournaments))
	for _, t := range result.Tournaments {
		items = append(items, toTournamentResponse(t))
	}
	writeJSON(w, http.StatusOK, tournamentListResponse{Items: items, NextCursor: result.NextCursor})
}

func (h *TournamentsHandler) Get(w http.ResponseWriter, r *http.Request) {
	ulidValue := strings.TrimSpace(pathParam(r, "id"))
	if err := ids.ValidateULID(ulidValue); err != nil {
		problem.Write(w, r, http.StatusBadRequest, typeValidation, "Invalid request", tournaments.FilterError{Field: "id", Message: "invalid ULID"}, h.Env)
		return
	}

	t, err := h.Service.GetByULID(r.Context(), ulidValue)
	if err != nil {
		if errors.Is(err, tournaments.ErrNotFound) {
			problem.Write(w, r, http.StatusNotFound, typeNotFound, "Not found", err, h.Env)
			return
		}
		problem.Write(w, r, http.StatusInternalServerError, typeServerError, "Server error", err, h.Env)
		return
	}

	writeJSON(w, http.StatusOK, toTournamentResponse(*t))
}

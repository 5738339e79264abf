package problem

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWrite_DevIncludesDetail(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "http://example.com/api/v1/games", nil)
	res := httptest.NewRecorder()

	Write(res, req, http.StatusBadRequest, "https://rinkline.app/problems/validation-error", "Validation failed", errors.New("boom"), "development")

	if got := res.Result().Header.Get("Content-Type"); got != "application/problem+json" {
		t.Fatalf("expected content type problem+json, got %s", got)
	}

	var body ProblemDetails
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Detail != "boom" {
		t.Fatalf("expected detail boom, got %s", body.Detail)
	}
	if body.Instance != "/api/v1/games" {
		t.Fatalf("expected instance /api/v1/games, got %s", body.Instance)
	}
}

func TestWrite_ProdSanitizesDetail(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "http://example.com/api/v1/games", nil)
	res := httptest.NewRecorder()

	Write(res, req, http.StatusBadRequest, "https://rinkline.app/problems/validation-error", "Validation failed", errors.New("boom"), "production")

	var body ProblemDetails
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Detail != http.StatusText(http.StatusBadRequest) {
		t.Fatalf("expected sanitized detail, got %s", body.Detail)
	}
}

func TestWrite_OptionsOverrideDetail(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "http://example.com/api/v1/games", nil)
	res := httptest.NewRecorder()

	Write(res, req, http.StatusConflict, "https://rinkline.app/problems/conflict", "Schedule conflict", errors.New("internal"), "production",
		WithDetail("Cannot schedule game within 4 hours of existing game at 2:00 PM"),
		WithErrors(map[string]any{"conflict": "details"}),
	)

	var body ProblemDetails
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Detail != "Cannot schedule game within 4 hours of existing game at 2:00 PM" {
		t.Fatalf("expected explicit detail to survive, got %s", body.Detail)
	}
	if body.Errors["conflict"] != "details" {
		t.Fatalf("expected errors map to be included, got %v", body.Errors)
	}
	if body.Status != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", body.Status)
	}
}

package handlers

import (
	"encoding/json"
	"net/http"
)

const (
	typeValidation  = "https://rinkline.app/problems/validation-error"
	typeNotFound    = "https://rinkline.app/problems/not-found"
	typeConflict    = "https://rinkline.app/problems/time-conflict"
	typeServerError = "https://rinkline.app/problems/server-error"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func pathParam(r *http.Request, key string) string {
	if r == nil {
		return ""
	}
	return r.PathValue(key)
}

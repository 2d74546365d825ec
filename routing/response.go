package routing

import (
	"encoding/json"
	"net/http"
)

// JSON writes v as a JSON response with the given status.
//
//	routing.JSON(w, http.StatusOK, map[string]any{"message": "ok"})
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes a JSON error body: {"error": message}.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

package devserver

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
)

// newID generates a prefixed unique identifier.
func newID(prefix string) string {
	return prefix + "_" + uuid.New().String()[:8]
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// respondError writes the API's error payload shape.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"message": message})
}

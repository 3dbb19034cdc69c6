// internal/pkg/response/utils.go
package response

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Универсальные ответы
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func RespondWithError(w http.ResponseWriter, code int, message string) {
	RespondWithJSON(w, code, map[string]string{"error": message})
}

// FormatWorked — человекочитаемая длительность для отчётов.
func FormatWorked(seconds int) string {
	if seconds <= 0 {
		return "0 мин"
	}
	hours := seconds / 3600
	mins := (seconds % 3600) / 60
	if hours > 0 {
		return fmt.Sprintf("%d ч %d мин", hours, mins)
	}
	return fmt.Sprintf("%d мин", mins)
}

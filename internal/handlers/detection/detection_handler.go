// internal/handlers/detection/detection_handler.go
package detection

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/evn/guard_backendl/internal/pkg/response"
	"github.com/evn/guard_backendl/internal/repositories"
	"github.com/go-chi/chi/v5"
)

// GetRecentDetectionsHandler — лента последних событий для консоли.
func GetRecentDetectionsHandler(repo *repositories.DetectionRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 50
		if v := r.URL.Query().Get("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				limit = n
			}
		}

		detections, err := repo.ListRecent(limit)
		if err != nil {
			log.Printf("DB query error (detections): %v", err)
			response.RespondWithError(w, http.StatusInternalServerError, "Database error")
			return
		}
		response.RespondWithJSON(w, http.StatusOK, detections)
	}
}

// AcknowledgeDetectionHandler гасит уведомление на консоли.
func AcknowledgeDetectionHandler(repo *repositories.DetectionRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			response.RespondWithError(w, http.StatusBadRequest, "Invalid detection ID")
			return
		}

		if err := repo.Acknowledge(id); err != nil {
			if errors.Is(err, repositories.ErrDetectionNotFound) {
				response.RespondWithError(w, http.StatusNotFound, "Detection not found")
			} else {
				response.RespondWithError(w, http.StatusInternalServerError, "Database error")
			}
			return
		}

		response.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// internal/handlers/admin/force_end_shift.go
package admin

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/evn/guard_backendl/internal/pkg/response"
	shiftService "github.com/evn/guard_backendl/internal/services/shift"
	"github.com/go-chi/chi/v5"
)

// ForceEndShiftHandler — принудительное завершение смены старшим.
func ForceEndShiftHandler(svc *shiftService.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		guardID, err := strconv.Atoi(chi.URLParam(r, "guardID"))
		if err != nil {
			response.RespondWithError(w, http.StatusBadRequest, "Invalid guard ID")
			return
		}

		worked, err := svc.End(r.Context(), guardID, time.Now())
		if errors.Is(err, shiftService.ErrNoActiveShift) {
			response.RespondWithError(w, http.StatusNotFound, "Guard has no active shift")
			return
		} else if err != nil {
			log.Printf("Failed to force-end shift for guard %d: %v", guardID, err)
			response.RespondWithError(w, http.StatusInternalServerError, "Failed to end shift")
			return
		}

		log.Printf("Shift of guard %d force-ended by supervisor", guardID)
		response.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
			"message":    "Shift force-ended",
			"worked_sec": worked,
		})
	}
}

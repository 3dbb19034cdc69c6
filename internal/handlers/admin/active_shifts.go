// internal/handlers/admin/active_shifts.go
package admin

import (
	"log"
	"net/http"
	"time"

	"github.com/evn/guard_backendl/internal/pkg/response"
	"github.com/evn/guard_backendl/internal/repositories"
	"github.com/evn/guard_backendl/internal/shifttimer"
)

// GetActiveShiftsForAllHandler — все живые смены с текущим остатком,
// как их видят консоли.
func GetActiveShiftsForAllHandler(repo *repositories.ShiftRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shifts, err := repo.ListActive()
		if err != nil {
			log.Printf("DB query error (active shifts): %v", err)
			response.RespondWithError(w, http.StatusInternalServerError, "Database error")
			return
		}

		now := time.Now()
		out := make([]map[string]interface{}, 0, len(shifts))
		for _, s := range shifts {
			state := shifttimer.ShiftState{
				StartTime: s.StartTime,
				Duration:  time.Duration(s.DurationSec) * time.Second,
			}
			res := state.Tick(now, true) // только отображение, без сигналов

			out = append(out, map[string]interface{}{
				"id":           s.ID,
				"guard_id":     s.GuardID,
				"username":     s.Username,
				"post":         s.Post,
				"start_time":   s.StartTime.Format(time.RFC3339),
				"overtime_sec": s.OvertimeSec,
				"countdown":    res.Countdown,
				"display":      res.Display,
			})
		}

		response.RespondWithJSON(w, http.StatusOK, out)
	}
}

// internal/handlers/shift/shift_handler.go
package shift

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/evn/guard_backendl/internal/middleware"
	"github.com/evn/guard_backendl/internal/pkg/response"
	"github.com/evn/guard_backendl/internal/repositories"
	shiftService "github.com/evn/guard_backendl/internal/services/shift"
)

// StartShiftHandler открывает смену или возобновляет прежнюю после
// перезагрузки консоли.
func StartShiftHandler(svc *shiftService.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		guardID, ok := middleware.GetUserIDFromContext(r.Context())
		if !ok {
			response.RespondWithError(w, http.StatusUnauthorized, "Не авторизован")
			return
		}

		var body struct {
			Post string `json:"post"`
		}
		// тело опционально: пост можно не указывать
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
			response.RespondWithError(w, http.StatusBadRequest, "Invalid request data")
			return
		}

		status, resumed, err := svc.Start(r.Context(), guardID, body.Post, time.Now())
		if err != nil {
			log.Printf("Failed to start shift for guard %d: %v", guardID, err)
			response.RespondWithError(w, http.StatusInternalServerError, "Failed to start shift")
			return
		}

		response.RespondWithJSON(w, http.StatusCreated, map[string]interface{}{
			"message": "Shift started",
			"resumed": resumed,
			"status":  status,
		})
	}
}

// ShiftStatusHandler — пересчёт по требованию; консоль дёргает его
// раз в секунду, если WebSocket недоступен.
func ShiftStatusHandler(svc *shiftService.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		guardID, ok := middleware.GetUserIDFromContext(r.Context())
		if !ok {
			response.RespondWithError(w, http.StatusUnauthorized, "Не авторизован")
			return
		}

		status, err := svc.Status(r.Context(), guardID, time.Now())
		if errors.Is(err, shiftService.ErrNoActiveShift) {
			response.RespondWithError(w, http.StatusNotFound, "No active shift")
			return
		} else if err != nil {
			response.RespondWithError(w, http.StatusInternalServerError, "Database error")
			return
		}

		response.RespondWithJSON(w, http.StatusOK, status)
	}
}

// OvertimeHandler — кнопка "остаться на сверхурочные" в модалке конца
// смены: фиксированные +2 часа и перевзвод сигнала.
func OvertimeHandler(svc *shiftService.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		guardID, ok := middleware.GetUserIDFromContext(r.Context())
		if !ok {
			response.RespondWithError(w, http.StatusUnauthorized, "Не авторизован")
			return
		}

		status, err := svc.Extend(r.Context(), guardID, time.Now())
		if errors.Is(err, shiftService.ErrNoActiveShift) {
			response.RespondWithError(w, http.StatusBadRequest, "No active shift to extend")
			return
		} else if err != nil {
			response.RespondWithError(w, http.StatusInternalServerError, "Failed to extend shift")
			return
		}

		response.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
			"message": "Overtime added",
			"status":  status,
		})
	}
}

// EndShiftHandler — кнопка подтверждения конца смены.
func EndShiftHandler(svc *shiftService.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		guardID, ok := middleware.GetUserIDFromContext(r.Context())
		if !ok {
			response.RespondWithError(w, http.StatusUnauthorized, "Не авторизован")
			return
		}

		worked, err := svc.End(r.Context(), guardID, time.Now())
		if errors.Is(err, shiftService.ErrNoActiveShift) {
			response.RespondWithError(w, http.StatusBadRequest, "No active shift")
			return
		} else if err != nil {
			response.RespondWithError(w, http.StatusInternalServerError, "Failed to end shift")
			return
		}

		response.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
			"message":    "Shift ended",
			"worked":     response.FormatWorked(worked),
			"worked_sec": worked,
		})
	}
}

// GetEndedShiftsHandler — журнал завершённых смен.
func GetEndedShiftsHandler(repo *repositories.ShiftRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shifts, err := repo.ListEnded()
		if err != nil {
			log.Printf("DB query error (ended shifts): %v", err)
			response.RespondWithError(w, http.StatusInternalServerError, "Database error")
			return
		}
		response.RespondWithJSON(w, http.StatusOK, shifts)
	}
}

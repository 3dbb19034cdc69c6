// internal/handlers/camera/camera_handler.go
package camera

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/evn/guard_backendl/internal/middleware"
	"github.com/evn/guard_backendl/internal/pkg/response"
	"github.com/evn/guard_backendl/internal/repositories"
	"github.com/evn/guard_backendl/internal/services/shiftstore"
	"github.com/evn/guard_backendl/internal/services/ws"
	"github.com/go-chi/chi/v5"
)

// GetCamerasHandler — реестр камер для селектора консоли.
func GetCamerasHandler(repo *repositories.CameraRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cameras, err := repo.List()
		if err != nil {
			log.Printf("DB query error (cameras): %v", err)
			response.RespondWithError(w, http.StatusInternalServerError, "Database error")
			return
		}
		response.RespondWithJSON(w, http.StatusOK, cameras)
	}
}

// SelectCameraHandler запоминает выбранную камеру охранника в redis и
// сообщает его консолям о переключении.
func SelectCameraHandler(repo *repositories.CameraRepository, store *shiftstore.Store, manager *ws.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		guardID, ok := middleware.GetUserIDFromContext(r.Context())
		if !ok {
			response.RespondWithError(w, http.StatusUnauthorized, "Не авторизован")
			return
		}

		cameraID, err := strconv.Atoi(chi.URLParam(r, "cameraID"))
		if err != nil {
			response.RespondWithError(w, http.StatusBadRequest, "Invalid camera ID")
			return
		}

		cam, err := repo.GetByID(cameraID)
		if errors.Is(err, repositories.ErrCameraNotFound) {
			response.RespondWithError(w, http.StatusNotFound, "Camera not found")
			return
		} else if err != nil {
			response.RespondWithError(w, http.StatusInternalServerError, "Database error")
			return
		}
		if !cam.Enabled {
			response.RespondWithError(w, http.StatusBadRequest, "Camera is disabled")
			return
		}

		if err := store.SaveActiveCamera(r.Context(), guardID, cam.ID); err != nil {
			log.Printf("Redis error saving active camera for guard %d: %v", guardID, err)
			response.RespondWithError(w, http.StatusInternalServerError, "Failed to save selection")
			return
		}

		manager.SendToGuard(guardID, "camera_selected", cam)
		response.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
			"message": "Camera selected",
			"camera":  cam,
			"at":      time.Now().Format(time.RFC3339),
		})
	}
}

// GetActiveCameraHandler — текущая камера охранника (после перезагрузки
// консоль восстанавливает выбор отсюда).
func GetActiveCameraHandler(repo *repositories.CameraRepository, store *shiftstore.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		guardID, ok := middleware.GetUserIDFromContext(r.Context())
		if !ok {
			response.RespondWithError(w, http.StatusUnauthorized, "Не авторизован")
			return
		}

		cameraID, err := store.GetActiveCamera(r.Context(), guardID)
		if err != nil {
			response.RespondWithError(w, http.StatusInternalServerError, "Redis error")
			return
		}
		if cameraID == 0 {
			response.RespondWithError(w, http.StatusNotFound, "No camera selected")
			return
		}

		cam, err := repo.GetByID(cameraID)
		if err != nil {
			response.RespondWithError(w, http.StatusNotFound, "Camera no longer exists")
			return
		}

		response.RespondWithJSON(w, http.StatusOK, cam)
	}
}

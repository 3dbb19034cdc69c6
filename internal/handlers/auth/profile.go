package auth

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/evn/guard_backendl/internal/middleware"
	"github.com/evn/guard_backendl/internal/pkg/response"
	"github.com/evn/guard_backendl/internal/repositories"
	authService "github.com/evn/guard_backendl/internal/services/auth"
	shiftService "github.com/evn/guard_backendl/internal/services/shift"
)

type ProfileHandler struct {
	guards *repositories.GuardRepository
}

func NewProfileHandler(guards *repositories.GuardRepository) *ProfileHandler {
	return &ProfileHandler{guards: guards}
}

func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	guardID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.RespondWithError(w, http.StatusUnauthorized, "Не авторизован")
		return
	}

	guard, err := h.guards.GetByID(guardID)
	if err != nil {
		response.RespondWithError(w, http.StatusInternalServerError, "Guard not found")
		return
	}

	response.RespondWithJSON(w, http.StatusOK, guard)
}

// LogoutHandler отзывает refresh-токен и сбрасывает состояние смены:
// по спецификации logout уничтожает сохранённую отметку старта.
func LogoutHandler(jwtSvc *authService.JWTService, shifts *shiftService.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		guardID, ok := middleware.GetUserIDFromContext(r.Context())
		if !ok {
			response.RespondWithError(w, http.StatusUnauthorized, "Не авторизован")
			return
		}

		var body struct {
			RefreshToken string `json:"refresh_token"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err == nil && body.RefreshToken != "" {
			jwtSvc.RevokeRefreshToken(r.Context(), body.RefreshToken)
		}

		// активной смены может не быть — это не ошибка
		shifts.End(r.Context(), guardID, time.Now())

		response.RespondWithJSON(w, http.StatusOK, map[string]string{
			"message": "Logged out successfully",
		})
	}
}

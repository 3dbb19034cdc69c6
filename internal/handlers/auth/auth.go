package auth

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/evn/guard_backendl/internal/pkg/response"
	"github.com/evn/guard_backendl/internal/repositories"
	authService "github.com/evn/guard_backendl/internal/services/auth"
)

type AuthHandler struct {
	guards          *repositories.GuardRepository
	jwtService      *authService.JWTService
	telegramService *authService.TelegramAuthService
}

func NewAuthHandler(guards *repositories.GuardRepository, jwtService *authService.JWTService,
	tgService *authService.TelegramAuthService) *AuthHandler {
	return &AuthHandler{
		guards:          guards,
		jwtService:      jwtService,
		telegramService: tgService,
	}
}

// RegisterHandler — регистрация нового охранника
func (h *AuthHandler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var regData struct {
		Username string `json:"username"`
		FullName string `json:"full_name"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&regData); err != nil {
		response.RespondWithError(w, http.StatusBadRequest, "Invalid request data")
		return
	}

	if regData.Username == "" || regData.Password == "" {
		response.RespondWithError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	exists, err := h.guards.Exists(regData.Username)
	if err != nil {
		response.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	if exists {
		response.RespondWithError(w, http.StatusBadRequest, "Username already exists")
		return
	}

	passwordHash, err := authService.HashPassword(regData.Password)
	if err != nil {
		response.RespondWithError(w, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	if _, err := h.guards.Create(regData.Username, passwordHash, regData.FullName, "guard"); err != nil {
		response.RespondWithError(w, http.StatusInternalServerError, "Failed to create guard")
		return
	}

	response.RespondWithJSON(w, http.StatusCreated, map[string]string{
		"message": "Guard registered successfully",
	})
}

// LoginHandler — вход охранника
func (h *AuthHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var loginData struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&loginData); err != nil {
		response.RespondWithError(w, http.StatusBadRequest, "Invalid request data")
		return
	}

	guard, passwordHash, err := h.guards.GetByUsername(loginData.Username)
	if err != nil {
		if errors.Is(err, repositories.ErrGuardNotFound) {
			response.RespondWithError(w, http.StatusUnauthorized, "Invalid credentials")
		} else {
			response.RespondWithError(w, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if !authService.CheckPasswordHash(loginData.Password, passwordHash) {
		response.RespondWithError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, refreshToken, err := h.jwtService.GenerateToken(r.Context(), guard.ID, guard.Username, guard.Role)
	if err != nil {
		response.RespondWithError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	response.RespondWithJSON(w, http.StatusOK, map[string]string{
		"token":         token,
		"refresh_token": refreshToken,
		"role":          guard.Role,
	})
}

// RefreshTokenHandler — обновление access_token с помощью refresh_token
func (h *AuthHandler) RefreshTokenHandler(w http.ResponseWriter, r *http.Request) {
	type RequestBody struct {
		RefreshToken string `json:"refresh_token"`
	}

	var body RequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.RespondWithError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	if body.RefreshToken == "" {
		response.RespondWithError(w, http.StatusUnauthorized, "Refresh token required")
		return
	}

	guardID, err := h.jwtService.ValidateRefreshToken(r.Context(), body.RefreshToken)
	if err != nil {
		response.RespondWithError(w, http.StatusUnauthorized, "Invalid or expired refresh token")
		return
	}

	guard, err := h.guards.GetByID(guardID)
	if err != nil {
		response.RespondWithError(w, http.StatusInternalServerError, "Guard not found")
		return
	}

	accessToken, refreshToken, err := h.jwtService.GenerateToken(r.Context(), guard.ID, guard.Username, guard.Role)
	if err != nil {
		response.RespondWithError(w, http.StatusInternalServerError, "Could not generate token")
		return
	}

	response.RespondWithJSON(w, http.StatusOK, map[string]string{
		"token":         accessToken,
		"refresh_token": refreshToken,
	})
}

// TelegramAuthHandler — аутентификация через Telegram Login Widget
func (h *AuthHandler) TelegramAuthHandler(w http.ResponseWriter, r *http.Request) {
	var tgData map[string]string
	if err := json.NewDecoder(r.Body).Decode(&tgData); err != nil {
		response.RespondWithError(w, http.StatusBadRequest, "Invalid request data")
		return
	}

	validatedData, err := h.telegramService.ValidateAndExtract(tgData)
	if err != nil {
		response.RespondWithError(w, http.StatusUnauthorized, "Telegram auth failed: "+err.Error())
		return
	}

	if _, err := strconv.Atoi(validatedData["id"]); err != nil {
		response.RespondWithError(w, http.StatusInternalServerError, "Invalid Telegram ID format")
		return
	}

	tgUsername := validatedData["username"]
	if tgUsername == "" {
		tgUsername = "tg_guard_" + validatedData["id"]
	}

	guard, _, err := h.guards.GetByUsername(tgUsername)
	if errors.Is(err, repositories.ErrGuardNotFound) {
		id, err := h.guards.Create(tgUsername, "", validatedData["first_name"], "guard")
		if err != nil {
			log.Printf("Failed to create guard for telegram user %s: %v", tgUsername, err)
			response.RespondWithError(w, http.StatusInternalServerError, "Failed to create guard")
			return
		}
		guard, err = h.guards.GetByID(id)
		if err != nil {
			response.RespondWithError(w, http.StatusInternalServerError, "Database error")
			return
		}
	} else if err != nil {
		response.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}

	token, refreshToken, err := h.jwtService.GenerateToken(r.Context(), guard.ID, guard.Username, guard.Role)
	if err != nil {
		response.RespondWithError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	response.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"token":         token,
		"refresh_token": refreshToken,
		"user_id":       guard.ID,
		"username":      guard.Username,
		"role":          guard.Role,
	})
}

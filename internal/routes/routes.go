package routes

import (
	"database/sql"
	"net/http"

	"github.com/evn/guard_backendl/config"
	"github.com/evn/guard_backendl/internal/handlers"
	adminHandlers "github.com/evn/guard_backendl/internal/handlers/admin"
	authHandlers "github.com/evn/guard_backendl/internal/handlers/auth"
	cameraHandlers "github.com/evn/guard_backendl/internal/handlers/camera"
	detectionHandlers "github.com/evn/guard_backendl/internal/handlers/detection"
	shiftHandlers "github.com/evn/guard_backendl/internal/handlers/shift"
	"github.com/evn/guard_backendl/internal/middleware"
	"github.com/evn/guard_backendl/internal/pkg/response"
	"github.com/evn/guard_backendl/internal/repositories"
	authService "github.com/evn/guard_backendl/internal/services/auth"
	shiftService "github.com/evn/guard_backendl/internal/services/shift"
	"github.com/evn/guard_backendl/internal/services/shiftstore"
	"github.com/evn/guard_backendl/internal/services/ws"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
	"github.com/redis/go-redis/v9"
)

// Setup инициализирует и возвращает настроенный маршрутизатор.
func Setup(cfg *config.Config, database *sql.DB, redisClient *redis.Client,
	manager *ws.Manager, shiftSvc *shiftService.Service) *chi.Mux {
	jwtAuth := jwtauth.New("HS256", []byte(cfg.JwtSecret), nil)
	jwtService := authService.NewJWTService(cfg.JwtSecret, redisClient)
	telegramAuthService := authService.NewTelegramAuthService(cfg.TelegramBotToken)
	store := shiftstore.NewStore(redisClient)

	guardRepo := repositories.NewGuardRepository(database)
	shiftRepo := repositories.NewShiftRepository(database)
	cameraRepo := repositories.NewCameraRepository(database)
	detectionRepo := repositories.NewDetectionRepository(database)

	authHandler := authHandlers.NewAuthHandler(guardRepo, jwtService, telegramAuthService)
	profileHandler := authHandlers.NewProfileHandler(guardRepo)

	router := chi.NewRouter()
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(jwtauth.Verifier(jwtAuth))
	router.Use(middleware.AddUserIDToContext())

	// Публичные маршруты
	router.Post("/api/auth/register", authHandler.RegisterHandler)
	router.Post("/api/auth/login", authHandler.LoginHandler)
	router.Post("/api/auth/telegram", authHandler.TelegramAuthHandler)
	router.Post("/api/auth/refresh", authHandler.RefreshTokenHandler)
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		response.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	router.Group(func(r chi.Router) {
		r.Use(jwtauth.Authenticator(jwtAuth))

		r.Get("/api/profile", profileHandler.GetProfile)
		r.Post("/api/logout", authHandlers.LogoutHandler(jwtService, shiftSvc))

		// Смена
		r.Post("/api/shift/start", shiftHandlers.StartShiftHandler(shiftSvc))
		r.Get("/api/shift/status", shiftHandlers.ShiftStatusHandler(shiftSvc))
		r.Post("/api/shift/overtime", shiftHandlers.OvertimeHandler(shiftSvc))
		r.Post("/api/shift/end", shiftHandlers.EndShiftHandler(shiftSvc))
		r.Get("/api/shifts/ended", shiftHandlers.GetEndedShiftsHandler(shiftRepo))

		// Камеры
		r.Get("/api/cameras", cameraHandlers.GetCamerasHandler(cameraRepo))
		r.Post("/api/cameras/{cameraID}/select", cameraHandlers.SelectCameraHandler(cameraRepo, store, manager))
		r.Get("/api/cameras/active", cameraHandlers.GetActiveCameraHandler(cameraRepo, store))

		// Детекция транспорта
		r.Get("/api/detections/recent", detectionHandlers.GetRecentDetectionsHandler(detectionRepo))
		r.Post("/api/detections/{id}/ack", detectionHandlers.AcknowledgeDetectionHandler(detectionRepo))

		r.Get("/ws/console", handlers.WebSocketHandler(manager))

		// Supervisor-only
		r.Group(func(sr chi.Router) {
			sr.Use(middleware.SupervisorOnly())
			sr.Get("/api/admin/active-shifts", adminHandlers.GetActiveShiftsForAllHandler(shiftRepo))
			sr.Post("/api/admin/guards/{guardID}/end-shift", adminHandlers.ForceEndShiftHandler(shiftSvc))
			sr.Post("/api/admin/cameras/import", cameraHandlers.ImportCamerasHandler(cameraRepo))
			sr.Get("/api/admin/shifts/report", adminHandlers.ShiftReportHandler(shiftRepo))
		})
	})

	return router
}

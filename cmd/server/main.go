package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/evn/guard_backendl/config"
	"github.com/evn/guard_backendl/db"
	shiftHandlers "github.com/evn/guard_backendl/internal/handlers/shift"
	"github.com/evn/guard_backendl/internal/models"
	"github.com/evn/guard_backendl/internal/repositories"
	"github.com/evn/guard_backendl/internal/routes"
	detectionService "github.com/evn/guard_backendl/internal/services/detection"
	"github.com/evn/guard_backendl/internal/services/notifier"
	shiftService "github.com/evn/guard_backendl/internal/services/shift"
	"github.com/evn/guard_backendl/internal/services/shiftstore"
	"github.com/evn/guard_backendl/internal/services/ws"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	cfg := config.NewConfig()
	database := db.InitDB(cfg.DatabaseDSN)
	defer database.Close()

	redisClient := config.NewRedisClient()
	defer redisClient.Close()

	store := shiftstore.NewStore(redisClient)
	shiftRepo := repositories.NewShiftRepository(database)
	cameraRepo := repositories.NewCameraRepository(database)
	detectionRepo := repositories.NewDetectionRepository(database)

	manager := ws.NewManager()

	shiftSvc := shiftService.NewService(shiftRepo, store, cfg.ShiftDuration, cfg.OvertimeIncrement)

	// Сигнал конца смены: модалка на консоли + сообщение дежурному чату.
	// Сервис гарантирует один вызов на каждый взвод защёлки.
	tgNotifier := notifier.NewTelegramNotifier(cfg.TelegramBotToken, cfg.TelegramChatID)
	shiftSvc.OnEndOfShift(func(sh models.ActiveShift) {
		manager.SendToGuard(sh.GuardID, "end_of_shift", map[string]interface{}{
			"shift_id": sh.ID,
			"post":     sh.Post,
		})
		go tgNotifier.NotifyEndOfShift(sh)
	})

	simulator := detectionService.NewSimulator(detectionRepo, cameraRepo, manager, cfg.DetectionInterval)

	router := routes.Setup(cfg, database, redisClient, manager, shiftSvc)

	go shiftHandlers.DutyLoop(shiftSvc, manager)
	go simulator.Run()

	serverAddress := fmt.Sprintf(":%s", cfg.ServerPort)
	log.Printf("🚀 Guard console server starting on %s", serverAddress)
	log.Fatal(http.ListenAndServe(serverAddress, router))
}

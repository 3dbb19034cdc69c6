// internal/handlers/shift/duty_loop.go
package shift

import (
	"context"
	"log"
	"time"

	shiftService "github.com/evn/guard_backendl/internal/services/shift"
	"github.com/evn/guard_backendl/internal/services/ws"
)

// DutyLoop — дежурный цикл: раз в секунду пересчитывает все живые
// смены от wall-clock и толкает тики консолям. Сигнал конца смены
// уходит через защёлку в сервисе, поэтому цикл может пропускать тики
// (пауза процесса, пересборка) без последствий.
func DutyLoop(svc *shiftService.Service, manager *ws.Manager) {
	log.Println("✅ Duty tick loop started")

	// стартовый проход: после рестарта сервера просроченные смены
	// должны получить сигнал сразу, не дожидаясь первого тика
	pushTicks(svc, manager)

	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()
	for range ticker.C {
		pushTicks(svc, manager)
	}
}

func pushTicks(svc *shiftService.Service, manager *ws.Manager) {
	ticks, err := svc.TickAll(context.Background(), time.Now())
	if err != nil {
		log.Printf("❌ Duty tick failed: %v", err)
		return
	}

	for _, t := range ticks {
		manager.SendToGuard(t.GuardID, "shift_tick", t.Status)
	}
}

// internal/services/shift/service.go
package shift

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/evn/guard_backendl/internal/models"
	"github.com/evn/guard_backendl/internal/repositories"
	"github.com/evn/guard_backendl/internal/services/shiftstore"
	"github.com/evn/guard_backendl/internal/shifttimer"
)

var ErrNoActiveShift = repositories.ErrNoActiveShift

// Service связывает чистый таймер с хранилищами: отметка старта в
// redis, строка смены в sqlite, защёлка сигнала — на строке смены,
// чтобы рестарт сервера не повторил сигнал.
type Service struct {
	repo     *repositories.ShiftRepository
	store    *shiftstore.Store
	duration time.Duration
	overtime time.Duration

	// onEnd вызывается ровно один раз на каждый взвод защёлки
	onEnd func(models.ActiveShift)
}

func NewService(repo *repositories.ShiftRepository, store *shiftstore.Store, duration, overtime time.Duration) *Service {
	return &Service{
		repo:     repo,
		store:    store,
		duration: duration,
		overtime: overtime,
	}
}

// OnEndOfShift регистрирует обработчик сигнала конца смены
// (рассылка по WebSocket, Telegram). Вызывается при сборке сервера.
func (s *Service) OnEndOfShift(fn func(models.ActiveShift)) {
	s.onEnd = fn
}

func stateOf(sh *models.ActiveShift) shifttimer.ShiftState {
	return shifttimer.ShiftState{
		StartTime: sh.StartTime,
		Duration:  time.Duration(sh.DurationSec) * time.Second,
	}
}

func statusOf(sh *models.ActiveShift, res shifttimer.TickResult) models.ShiftStatus {
	return models.ShiftStatus{
		ShiftID:      sh.ID,
		Countdown:    res.Countdown,
		Display:      string(res.Display),
		RemainingSec: int(res.Remaining / time.Second),
		EndOfShift:   res.EndOfShift,
	}
}

// Start открывает смену либо возобновляет прежнюю: если в redis лежит
// разбираемая отметка старта, траектория обратного отсчёта продолжается
// с того же места, как будто перезагрузки не было. Битая отметка
// молча трактуется как отсутствие прежней смены.
func (s *Service) Start(ctx context.Context, guardID int, post string, now time.Time) (models.ShiftStatus, bool, error) {
	active, err := s.repo.GetActiveByGuard(guardID)
	if err == nil {
		// строка смены пережила рестарт — она и есть истина
		res := s.tick(active, now)
		return statusOf(active, res), true, nil
	}
	if !errors.Is(err, repositories.ErrNoActiveShift) {
		return models.ShiftStatus{}, false, err
	}

	persisted, err := s.store.GetShiftStart(ctx, guardID)
	if err != nil {
		log.Printf("Redis error reading shift start for guard %d: %v", guardID, err)
		persisted = ""
	}

	state, resumed := shifttimer.Resume(now, persisted, s.duration)
	if !resumed {
		if err := s.store.SaveShiftStart(ctx, guardID, state.StartTime); err != nil {
			return models.ShiftStatus{}, false, err
		}
	}

	shiftID, err := s.repo.Create(guardID, post, state.StartTime, int(s.duration/time.Second))
	if err != nil {
		return models.ShiftStatus{}, false, err
	}

	sh := &models.ActiveShift{
		ID:          shiftID,
		GuardID:     guardID,
		Post:        post,
		StartTime:   state.StartTime,
		DurationSec: int(s.duration / time.Second),
	}
	res := s.tick(sh, now)
	return statusOf(sh, res), resumed, nil
}

// Status — чистый пересчёт по требованию (консоль опрашивает раз в
// секунду). Если именно этот пересчёт перевёл остаток через ноль,
// взводим защёлку и дёргаем onEnd.
func (s *Service) Status(ctx context.Context, guardID int, now time.Time) (models.ShiftStatus, error) {
	active, err := s.repo.GetActiveByGuard(guardID)
	if err != nil {
		return models.ShiftStatus{}, err
	}
	res := s.tick(active, now)
	return statusOf(active, res), nil
}

// tick пересчитывает смену и атомарно взводит защёлку при переходе
// через ноль. EndOfShift остаётся true только у победителя гонки.
func (s *Service) tick(sh *models.ActiveShift, now time.Time) shifttimer.TickResult {
	res := stateOf(sh).Tick(now, sh.EndNotified)
	if !res.EndOfShift {
		return res
	}

	won, err := s.repo.MarkEndNotified(sh.ID)
	if err != nil {
		log.Printf("Failed to latch end-of-shift for shift %d: %v", sh.ID, err)
		won = false
	}
	res.EndOfShift = won
	if won {
		sh.EndNotified = true
		if s.onEnd != nil {
			s.onEnd(*sh)
		}
	}
	return res
}

// Extend — сверхурочные фиксированным шагом. Защёлка сбрасывается в
// репозитории, так что следующий проход через ноль снова даст сигнал.
func (s *Service) Extend(ctx context.Context, guardID int, now time.Time) (models.ShiftStatus, error) {
	active, err := s.repo.GetActiveByGuard(guardID)
	if err != nil {
		return models.ShiftStatus{}, err
	}

	if err := s.repo.Extend(active.ID, int(s.overtime/time.Second)); err != nil {
		return models.ShiftStatus{}, err
	}

	active.DurationSec += int(s.overtime / time.Second)
	active.OvertimeSec += int(s.overtime / time.Second)
	active.EndNotified = false

	res := s.tick(active, now)
	return statusOf(active, res), nil
}

// End закрывает смену и чистит всё живое состояние консоли.
func (s *Service) End(ctx context.Context, guardID int, now time.Time) (int, error) {
	active, err := s.repo.GetActiveByGuard(guardID)
	if err != nil {
		return 0, err
	}

	if err := s.repo.End(active.ID, now); err != nil {
		return 0, err
	}
	if err := s.store.ClearShiftStart(ctx, guardID); err != nil {
		log.Printf("Redis error clearing shift start for guard %d: %v", guardID, err)
	}
	if err := s.store.ClearActiveCamera(ctx, guardID); err != nil {
		log.Printf("Redis error clearing active camera for guard %d: %v", guardID, err)
	}

	return int(now.Sub(active.StartTime).Seconds()), nil
}

// GuardTick — результат пересчёта одной смены в дежурном цикле.
type GuardTick struct {
	GuardID int
	Status  models.ShiftStatus
}

// TickAll пересчитывает все живые смены. Каждый вызов идемпотентен:
// пропущенные тики (пауза процесса, долгий GC) ничего не ломают,
// потому что счёт идёт от wall-clock, а не от накопленных дельт.
func (s *Service) TickAll(ctx context.Context, now time.Time) ([]GuardTick, error) {
	active, err := s.repo.ListActive()
	if err != nil {
		return nil, err
	}

	ticks := make([]GuardTick, 0, len(active))
	for i := range active {
		sh := &active[i]
		res := s.tick(sh, now)
		ticks = append(ticks, GuardTick{GuardID: sh.GuardID, Status: statusOf(sh, res)})
	}
	return ticks, nil
}

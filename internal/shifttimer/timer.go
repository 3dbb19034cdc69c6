// Package shifttimer содержит чистую логику обратного отсчёта смены.
// Никаких часов и ввода-вывода: все функции считают от переданного now,
// поэтому пропущенные тики ничего не стоят — каждый пересчёт идёт от
// настоящего wall-clock времени, а не от дельты.
package shifttimer

import (
	"fmt"
	"time"
)

// DisplayState — грубая классификация остатка времени для консоли.
type DisplayState string

const (
	DisplayNormal   DisplayState = "normal"
	DisplayWarning  DisplayState = "warning"
	DisplayCritical DisplayState = "critical"
)

// WarningThreshold — остаток, при котором консоль подсвечивает таймер.
const WarningThreshold = 30 * time.Minute

// ShiftState описывает одну идущую смену. StartTime неизменяем, пока
// смена жива; Duration растёт только через Extend (сверхурочные).
type ShiftState struct {
	StartTime time.Time
	Duration  time.Duration
}

// TickResult — результат одного пересчёта.
type TickResult struct {
	Remaining  time.Duration
	Countdown  string // HH:MM:SS
	Display    DisplayState
	EndOfShift bool // true ровно один раз на каждый "взвод" сигнала
}

// Resume восстанавливает смену из сохранённой отметки старта (RFC3339).
// Пустая или битая отметка трактуется как отсутствие прежней смены:
// возвращается свежее состояние от now и resumed=false.
func Resume(now time.Time, persisted string, duration time.Duration) (ShiftState, bool) {
	if persisted != "" {
		if start, err := time.Parse(time.RFC3339, persisted); err == nil && !start.After(now) {
			return ShiftState{StartTime: start, Duration: duration}, true
		}
	}
	return ShiftState{StartTime: now, Duration: duration}, false
}

// Remaining возвращает остаток смены; никогда не отрицателен.
func (s ShiftState) Remaining(now time.Time) time.Duration {
	rem := s.Duration - now.Sub(s.StartTime)
	if rem < 0 {
		return 0
	}
	return rem
}

// Tick пересчитывает состояние на момент now. endFired — защёлка
// "сигнал конца смены уже отправлен"; её хранит вызывающая сторона.
// EndOfShift взводится только при переходе остатка в ноль с ещё не
// сработавшей защёлкой, поэтому сигнал не повторяется каждый тик.
func (s ShiftState) Tick(now time.Time, endFired bool) TickResult {
	rem := s.Remaining(now)

	res := TickResult{
		Remaining: rem,
		Countdown: Countdown(rem),
		Display:   DisplayNormal,
	}

	switch {
	case rem == 0:
		res.Display = DisplayCritical
		res.EndOfShift = !endFired
	case rem <= WarningThreshold:
		res.Display = DisplayWarning
	}
	return res
}

// Extend возвращает состояние с удлинённой сменой. Остаток может снова
// стать положительным — тогда вызывающая сторона обязана сбросить
// защёлку endFired, чтобы сигнал конца смены сработал повторно.
func (s ShiftState) Extend(d time.Duration) ShiftState {
	s.Duration += d
	return s
}

// Countdown форматирует остаток как HH:MM:SS. Только целочисленное
// деление миллисекунд, без округления.
func Countdown(remaining time.Duration) string {
	ms := remaining.Milliseconds()
	if ms < 0 {
		ms = 0
	}
	hours := ms / 3_600_000
	minutes := (ms % 3_600_000) / 60_000
	seconds := (ms % 60_000) / 1_000
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}

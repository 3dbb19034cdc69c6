package repositories

import (
	"database/sql"
	"errors"
	"time"

	"github.com/evn/guard_backendl/internal/models"
)

type ShiftRepository struct {
	db *sql.DB
}

func NewShiftRepository(db *sql.DB) *ShiftRepository {
	return &ShiftRepository{db: db}
}

var ErrNoActiveShift = errors.New("no active shift")

// Create открывает смену. Активная смена у охранника может быть только одна.
func (r *ShiftRepository) Create(guardID int, post string, start time.Time, durationSec int) (int, error) {
	var activeCount int
	err := r.db.QueryRow("SELECT COUNT(*) FROM shifts WHERE guard_id = ? AND end_time IS NULL", guardID).Scan(&activeCount)
	if err != nil {
		return 0, err
	}
	if activeCount > 0 {
		return 0, errors.New("shift already active")
	}

	res, err := r.db.Exec(`
		INSERT INTO shifts (guard_id, post, start_time, duration_sec)
		VALUES (?, ?, ?, ?)`,
		guardID, post, start, durationSec,
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	return int(id), err
}

func (r *ShiftRepository) GetActiveByGuard(guardID int) (*models.ActiveShift, error) {
	var s models.ActiveShift
	var notified int

	err := r.db.QueryRow(`
		SELECT s.id, s.guard_id, g.username, s.post, s.start_time,
		       s.duration_sec, s.overtime_sec, s.end_notified
		FROM shifts s
		JOIN guards g ON s.guard_id = g.id
		WHERE s.guard_id = ? AND s.end_time IS NULL`,
		guardID,
	).Scan(&s.ID, &s.GuardID, &s.Username, &s.Post, &s.StartTime,
		&s.DurationSec, &s.OvertimeSec, &notified)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoActiveShift
	} else if err != nil {
		return nil, err
	}

	s.EndNotified = notified != 0
	return &s, nil
}

func (r *ShiftRepository) ListActive() ([]models.ActiveShift, error) {
	rows, err := r.db.Query(`
		SELECT s.id, s.guard_id, g.username, s.post, s.start_time,
		       s.duration_sec, s.overtime_sec, s.end_notified
		FROM shifts s
		JOIN guards g ON s.guard_id = g.id
		WHERE s.end_time IS NULL`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var shifts []models.ActiveShift
	for rows.Next() {
		var s models.ActiveShift
		var notified int
		if err := rows.Scan(&s.ID, &s.GuardID, &s.Username, &s.Post, &s.StartTime,
			&s.DurationSec, &s.OvertimeSec, &notified); err != nil {
			return nil, err
		}
		s.EndNotified = notified != 0
		shifts = append(shifts, s)
	}
	return shifts, rows.Err()
}

func (r *ShiftRepository) ListEnded() ([]models.EndedShift, error) {
	rows, err := r.db.Query(`
		SELECT s.id, s.guard_id, g.username, s.post, s.start_time, s.end_time,
		       s.overtime_sec, s.worked_sec
		FROM shifts s
		JOIN guards g ON s.guard_id = g.id
		WHERE s.end_time IS NOT NULL
		ORDER BY s.end_time DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var shifts []models.EndedShift
	for rows.Next() {
		var s models.EndedShift
		var worked sql.NullInt64
		if err := rows.Scan(&s.ID, &s.GuardID, &s.Username, &s.Post, &s.StartTime,
			&s.EndTime, &s.OvertimeSec, &worked); err != nil {
			return nil, err
		}
		s.WorkedSec = int(worked.Int64)
		shifts = append(shifts, s)
	}
	return shifts, rows.Err()
}

// Extend добавляет сверхурочные и сбрасывает защёлку сигнала конца
// смены: после продления он должен сработать заново.
func (r *ShiftRepository) Extend(shiftID, addSec int) error {
	res, err := r.db.Exec(`
		UPDATE shifts
		SET duration_sec = duration_sec + ?, overtime_sec = overtime_sec + ?, end_notified = 0
		WHERE id = ? AND end_time IS NULL`,
		addSec, addSec, shiftID,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNoActiveShift
	}
	return nil
}

// MarkEndNotified взводит защёлку. Возвращает true, если именно этот
// вызов её взвёл — гарантия одного сигнала на смену даже при гонке.
func (r *ShiftRepository) MarkEndNotified(shiftID int) (bool, error) {
	res, err := r.db.Exec(`
		UPDATE shifts SET end_notified = 1
		WHERE id = ? AND end_time IS NULL AND end_notified = 0`,
		shiftID,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// End закрывает смену и фиксирует отработанное время.
func (r *ShiftRepository) End(shiftID int, endTime time.Time) error {
	var startTime time.Time
	err := r.db.QueryRow("SELECT start_time FROM shifts WHERE id = ? AND end_time IS NULL", shiftID).Scan(&startTime)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNoActiveShift
	} else if err != nil {
		return err
	}

	worked := int(endTime.Sub(startTime).Seconds())
	_, err = r.db.Exec("UPDATE shifts SET end_time = ?, worked_sec = ? WHERE id = ?", endTime, worked, shiftID)
	return err
}

// internal/models/shift.go
package models

import "time"

// ActiveShift — идущая смена охранника. EndTime всегда nil, пока смена жива.
type ActiveShift struct {
	ID          int       `json:"id"`
	GuardID     int       `json:"guard_id"`
	Username    string    `json:"username"`
	Post        string    `json:"post"`
	StartTime   time.Time `json:"start_time"`
	DurationSec int       `json:"duration_sec"`
	OvertimeSec int       `json:"overtime_sec"`
	EndNotified bool      `json:"end_notified"`
}

type EndedShift struct {
	ID          int    `json:"id"`
	GuardID     int    `json:"guard_id"`
	Username    string `json:"username"`
	Post        string `json:"post"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	OvertimeSec int    `json:"overtime_sec"`
	WorkedSec   int    `json:"worked_sec"`
}

// ShiftStatus — то, что консоль рисует каждую секунду.
type ShiftStatus struct {
	ShiftID      int    `json:"shift_id"`
	Countdown    string `json:"countdown"` // HH:MM:SS
	Display      string `json:"display"`   // normal | warning | critical
	RemainingSec int    `json:"remaining_sec"`
	EndOfShift   bool   `json:"end_of_shift,omitempty"`
}

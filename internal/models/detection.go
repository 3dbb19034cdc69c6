// internal/models/detection.go
package models

import "time"

// Detection — событие распознавания номера на одной из камер.
type Detection struct {
	ID           int       `json:"id"`
	CameraID     int       `json:"camera_id"`
	CameraName   string    `json:"camera_name,omitempty"`
	Plate        string    `json:"plate"`
	Direction    string    `json:"direction"` // entry | exit
	Confidence   float64   `json:"confidence"`
	DetectedAt   time.Time `json:"detected_at"`
	Acknowledged bool      `json:"acknowledged"`
}

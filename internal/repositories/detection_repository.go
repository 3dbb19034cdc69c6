package repositories

import (
	"database/sql"
	"errors"

	"github.com/evn/guard_backendl/internal/models"
)

type DetectionRepository struct {
	db *sql.DB
}

func NewDetectionRepository(db *sql.DB) *DetectionRepository {
	return &DetectionRepository{db: db}
}

var ErrDetectionNotFound = errors.New("detection not found")

func (r *DetectionRepository) Create(d *models.Detection) (int, error) {
	res, err := r.db.Exec(`
		INSERT INTO detections (camera_id, plate, direction, confidence, detected_at)
		VALUES (?, ?, ?, ?, ?)`,
		d.CameraID, d.Plate, d.Direction, d.Confidence, d.DetectedAt,
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	return int(id), err
}

// ListRecent возвращает последние события, новые сверху.
func (r *DetectionRepository) ListRecent(limit int) ([]models.Detection, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	rows, err := r.db.Query(`
		SELECT d.id, d.camera_id, c.name, d.plate, d.direction, d.confidence,
		       d.detected_at, d.acknowledged
		FROM detections d
		JOIN cameras c ON d.camera_id = c.id
		ORDER BY d.detected_at DESC
		LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var detections []models.Detection
	for rows.Next() {
		var d models.Detection
		var acked int
		if err := rows.Scan(&d.ID, &d.CameraID, &d.CameraName, &d.Plate, &d.Direction,
			&d.Confidence, &d.DetectedAt, &acked); err != nil {
			return nil, err
		}
		d.Acknowledged = acked != 0
		detections = append(detections, d)
	}
	return detections, rows.Err()
}

func (r *DetectionRepository) Acknowledge(id int) error {
	res, err := r.db.Exec("UPDATE detections SET acknowledged = 1 WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrDetectionNotFound
	}
	return nil
}

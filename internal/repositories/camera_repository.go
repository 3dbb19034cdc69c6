package repositories

import (
	"database/sql"
	"errors"

	"github.com/evn/guard_backendl/internal/models"
)

type CameraRepository struct {
	db *sql.DB
}

func NewCameraRepository(db *sql.DB) *CameraRepository {
	return &CameraRepository{db: db}
}

var ErrCameraNotFound = errors.New("camera not found")

func (r *CameraRepository) List() ([]models.Camera, error) {
	rows, err := r.db.Query(`
		SELECT id, code, name, zone, snapshot_url, enabled
		FROM cameras
		ORDER BY code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cameras []models.Camera
	for rows.Next() {
		var c models.Camera
		var enabled int
		if err := rows.Scan(&c.ID, &c.Code, &c.Name, &c.Zone, &c.SnapshotURL, &enabled); err != nil {
			return nil, err
		}
		c.Enabled = enabled != 0
		cameras = append(cameras, c)
	}
	return cameras, rows.Err()
}

func (r *CameraRepository) GetByID(id int) (*models.Camera, error) {
	var c models.Camera
	var enabled int
	err := r.db.QueryRow(`
		SELECT id, code, name, zone, snapshot_url, enabled
		FROM cameras
		WHERE id = ?`,
		id,
	).Scan(&c.ID, &c.Code, &c.Name, &c.Zone, &c.SnapshotURL, &enabled)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCameraNotFound
	} else if err != nil {
		return nil, err
	}
	c.Enabled = enabled != 0
	return &c, nil
}

// ListEnabledIDs — для симулятора детекции: случайная камера из живых.
func (r *CameraRepository) ListEnabledIDs() ([]int, error) {
	rows, err := r.db.Query("SELECT id FROM cameras WHERE enabled = 1")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Upsert обновляет камеру по code либо создаёт новую. Используется
// импортом реестра из таблиц.
func (r *CameraRepository) Upsert(c models.Camera) error {
	enabled := 0
	if c.Enabled {
		enabled = 1
	}
	_, err := r.db.Exec(`
		INSERT INTO cameras (code, name, zone, snapshot_url, enabled)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(code) DO UPDATE SET
			name = excluded.name,
			zone = excluded.zone,
			snapshot_url = excluded.snapshot_url,
			enabled = excluded.enabled`,
		c.Code, c.Name, c.Zone, c.SnapshotURL, enabled,
	)
	return err
}

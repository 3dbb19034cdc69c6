// internal/models/camera.go
package models

type Camera struct {
	ID          int    `json:"id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	Zone        string `json:"zone"`
	SnapshotURL string `json:"snapshot_url"`
	Enabled     bool   `json:"enabled"`
}

// internal/models/guard.go
package models

type Guard struct {
	ID         int    `json:"id"`
	Username   string `json:"username"`
	FullName   string `json:"full_name"`
	Role       string `json:"role"`
	TelegramID string `json:"telegram_id,omitempty"`
}

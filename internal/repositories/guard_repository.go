package repositories

import (
	"database/sql"
	"errors"

	"github.com/evn/guard_backendl/internal/models"
)

type GuardRepository struct {
	db *sql.DB
}

func NewGuardRepository(db *sql.DB) *GuardRepository {
	return &GuardRepository{db: db}
}

// ErrGuardNotFound возвращается, когда охранника нет в базе.
var ErrGuardNotFound = errors.New("guard not found")

func (r *GuardRepository) GetByUsername(username string) (*models.Guard, string, error) {
	var g models.Guard
	var passwordHash string
	var telegramID sql.NullString

	err := r.db.QueryRow(`
		SELECT id, username, full_name, role, password_hash, telegram_id
		FROM guards
		WHERE username = ? COLLATE NOCASE`,
		username,
	).Scan(&g.ID, &g.Username, &g.FullName, &g.Role, &passwordHash, &telegramID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, "", ErrGuardNotFound
	} else if err != nil {
		return nil, "", err
	}

	g.TelegramID = telegramID.String
	return &g, passwordHash, nil
}

func (r *GuardRepository) GetByID(id int) (*models.Guard, error) {
	var g models.Guard
	var telegramID sql.NullString

	err := r.db.QueryRow(`
		SELECT id, username, full_name, role, telegram_id
		FROM guards
		WHERE id = ?`,
		id,
	).Scan(&g.ID, &g.Username, &g.FullName, &g.Role, &telegramID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGuardNotFound
	} else if err != nil {
		return nil, err
	}

	g.TelegramID = telegramID.String
	return &g, nil
}

func (r *GuardRepository) Create(username, passwordHash, fullName, role string) (int, error) {
	res, err := r.db.Exec(`
		INSERT INTO guards (username, password_hash, full_name, role)
		VALUES (?, ?, ?, ?)`,
		username, passwordHash, fullName, role,
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	return int(id), err
}

func (r *GuardRepository) Exists(username string) (bool, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM guards WHERE username = ? COLLATE NOCASE", username).Scan(&count)
	return count > 0, err
}

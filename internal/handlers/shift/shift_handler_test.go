package shift

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/evn/guard_backendl/config"
	"github.com/evn/guard_backendl/internal/repositories"
	shiftService "github.com/evn/guard_backendl/internal/services/shift"
	"github.com/evn/guard_backendl/internal/services/shiftstore"
	_ "github.com/mattn/go-sqlite3"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestEnv(t *testing.T) (*shiftService.Service, *repositories.ShiftRepository, int) {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	_, file, _, _ := runtime.Caller(0)
	schemaPath := filepath.Join(filepath.Dir(file), "..", "..", "..", "db", "schema.sql")
	schema, err := os.ReadFile(schemaPath)
	require.NoError(t, err)
	_, err = db.Exec(string(schema))
	require.NoError(t, err)

	res, err := db.Exec(`INSERT INTO guards (username, password_hash) VALUES ('petrov', '')`)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)

	store := shiftstore.NewStore(redis.NewClient(&redis.Options{
		Addr:        "localhost:63790",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	}))
	repo := repositories.NewShiftRepository(db)
	svc := shiftService.NewService(repo, store, 8*time.Hour, 2*time.Hour)
	return svc, repo, int(id)
}

func authedRequest(method, target string, guardID int) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	ctx := context.WithValue(req.Context(), config.UserIDKey, guardID)
	return req.WithContext(ctx)
}

func TestShiftStatusHandler(t *testing.T) {
	svc, repo, guardID := newTestEnv(t)
	_, err := repo.Create(guardID, "КПП-1", time.Now().Add(-7*time.Hour-45*time.Minute), 8*3600)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	ShiftStatusHandler(svc)(rr, authedRequest(http.MethodGet, "/api/shift/status", guardID))
	require.Equal(t, http.StatusOK, rr.Code)

	var status struct {
		Display      string `json:"display"`
		Countdown    string `json:"countdown"`
		RemainingSec int    `json:"remaining_sec"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &status))
	require.Equal(t, "warning", status.Display)
	require.Regexp(t, `^\d{2}:\d{2}:\d{2}$`, status.Countdown)
	require.InDelta(t, 15*60, status.RemainingSec, 5)
}

func TestShiftStatusHandler_NoShift(t *testing.T) {
	svc, _, guardID := newTestEnv(t)

	rr := httptest.NewRecorder()
	ShiftStatusHandler(svc)(rr, authedRequest(http.MethodGet, "/api/shift/status", guardID))
	require.Equal(t, http.StatusNotFound, rr.Code)
}

func TestShiftStatusHandler_Unauthorized(t *testing.T) {
	svc, _, _ := newTestEnv(t)

	rr := httptest.NewRecorder()
	ShiftStatusHandler(svc)(rr, httptest.NewRequest(http.MethodGet, "/api/shift/status", nil))
	require.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestOvertimeHandler(t *testing.T) {
	svc, repo, guardID := newTestEnv(t)
	_, err := repo.Create(guardID, "КПП-1", time.Now().Add(-9*time.Hour), 8*3600)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	OvertimeHandler(svc)(rr, authedRequest(http.MethodPost, "/api/shift/overtime", guardID))
	require.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		Status struct {
			Display      string `json:"display"`
			RemainingSec int    `json:"remaining_sec"`
		} `json:"status"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	// было час переработки, +2ч сверхурочных — остался примерно час
	require.Equal(t, "normal", body.Status.Display)
	require.InDelta(t, 3600, body.Status.RemainingSec, 5)
}

func TestOvertimeHandler_NoShift(t *testing.T) {
	svc, _, guardID := newTestEnv(t)

	rr := httptest.NewRecorder()
	OvertimeHandler(svc)(rr, authedRequest(http.MethodPost, "/api/shift/overtime", guardID))
	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestEndShiftHandler(t *testing.T) {
	svc, repo, guardID := newTestEnv(t)
	_, err := repo.Create(guardID, "КПП-1", time.Now().Add(-8*time.Hour), 8*3600)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	EndShiftHandler(svc)(rr, authedRequest(http.MethodPost, "/api/shift/end", guardID))
	require.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		WorkedSec int `json:"worked_sec"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.InDelta(t, 8*3600, body.WorkedSec, 5)

	// смены больше нет
	rr = httptest.NewRecorder()
	EndShiftHandler(svc)(rr, authedRequest(http.MethodPost, "/api/shift/end", guardID))
	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGetEndedShiftsHandler(t *testing.T) {
	svc, repo, guardID := newTestEnv(t)
	_, err := repo.Create(guardID, "КПП-1", time.Now().Add(-8*time.Hour), 8*3600)
	require.NoError(t, err)
	_, err = svc.End(context.Background(), guardID, time.Now())
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	GetEndedShiftsHandler(repo)(rr, authedRequest(http.MethodGet, "/api/shifts/ended", guardID))
	require.Equal(t, http.StatusOK, rr.Code)

	var shifts []map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &shifts))
	require.Len(t, shifts, 1)
	require.Equal(t, "petrov", shifts[0]["username"])
}

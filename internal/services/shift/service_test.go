package shift

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/evn/guard_backendl/internal/models"
	"github.com/evn/guard_backendl/internal/repositories"
	"github.com/evn/guard_backendl/internal/services/shiftstore"
	_ "github.com/mattn/go-sqlite3"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*Service, *repositories.ShiftRepository, *sql.DB) {
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

	// redis в этих сценариях не трогается (смена восстанавливается из
	// строки в sqlite), клиент нужен только для wiring
	store := shiftstore.NewStore(redis.NewClient(&redis.Options{
		Addr:        "localhost:63790",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	}))
	repo := repositories.NewShiftRepository(db)
	return NewService(repo, store, 8*time.Hour, 2*time.Hour), repo, db
}

func addGuard(t *testing.T, db *sql.DB, username string) int {
	t.Helper()
	res, err := db.Exec(`INSERT INTO guards (username, password_hash) VALUES (?, '')`, username)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return int(id)
}

var dutyStart = time.Date(2025, 3, 10, 7, 0, 0, 0, time.UTC)

func TestServiceStatusThresholds(t *testing.T) {
	svc, repo, db := newTestService(t)
	guardID := addGuard(t, db, "petrov")
	_, err := repo.Create(guardID, "КПП-1", dutyStart, 8*3600)
	require.NoError(t, err)

	ctx := context.Background()

	st, err := svc.Status(ctx, guardID, dutyStart.Add(30*time.Minute))
	require.NoError(t, err)
	require.Equal(t, "normal", st.Display)
	require.Equal(t, "07:30:00", st.Countdown)

	st, err = svc.Status(ctx, guardID, dutyStart.Add(7*time.Hour+31*time.Minute))
	require.NoError(t, err)
	require.Equal(t, "warning", st.Display)
	require.Equal(t, "00:29:00", st.Countdown)
	require.Equal(t, 29*60, st.RemainingSec)
}

func TestServiceEndOfShiftFiresExactlyOnce(t *testing.T) {
	svc, repo, db := newTestService(t)
	guardID := addGuard(t, db, "petrov")
	_, err := repo.Create(guardID, "КПП-1", dutyStart, 8*3600)
	require.NoError(t, err)

	fired := 0
	svc.OnEndOfShift(func(sh models.ActiveShift) { fired++ })

	ctx := context.Background()
	after := dutyStart.Add(8*time.Hour + time.Second)

	st, err := svc.Status(ctx, guardID, after)
	require.NoError(t, err)
	require.Equal(t, "critical", st.Display)
	require.Equal(t, "00:00:00", st.Countdown)
	require.True(t, st.EndOfShift)
	require.Equal(t, 1, fired)

	// каждый следующий тик молчит: защёлка на строке смены
	for i := 0; i < 5; i++ {
		st, err = svc.Status(ctx, guardID, after.Add(time.Duration(i)*time.Second))
		require.NoError(t, err)
		require.Equal(t, "critical", st.Display)
		require.False(t, st.EndOfShift)
	}
	require.Equal(t, 1, fired)
}

func TestServiceOvertimeRearmsSignal(t *testing.T) {
	svc, repo, db := newTestService(t)
	guardID := addGuard(t, db, "petrov")
	_, err := repo.Create(guardID, "КПП-1", dutyStart, 8*3600)
	require.NoError(t, err)

	fired := 0
	svc.OnEndOfShift(func(sh models.ActiveShift) { fired++ })

	ctx := context.Background()
	endMoment := dutyStart.Add(8*time.Hour + 5*time.Minute)

	st, err := svc.Status(ctx, guardID, endMoment)
	require.NoError(t, err)
	require.True(t, st.EndOfShift)

	// +2 часа: остаток ровно на 2 часа больше нуля, дисплей снова normal
	st, err = svc.Extend(ctx, guardID, endMoment)
	require.NoError(t, err)
	require.Equal(t, "normal", st.Display)
	require.Equal(t, "01:55:00", st.Countdown)
	require.False(t, st.EndOfShift)

	// вторая граница — сигнал стреляет второй раз
	st, err = svc.Status(ctx, guardID, dutyStart.Add(10*time.Hour))
	require.NoError(t, err)
	require.True(t, st.EndOfShift)
	require.Equal(t, 2, fired)
}

func TestServiceTickAll(t *testing.T) {
	svc, repo, db := newTestService(t)
	first := addGuard(t, db, "petrov")
	second := addGuard(t, db, "sidorov")
	_, err := repo.Create(first, "КПП-1", dutyStart, 8*3600)
	require.NoError(t, err)
	_, err = repo.Create(second, "обход", dutyStart.Add(-9*time.Hour), 8*3600)
	require.NoError(t, err)

	ticks, err := svc.TickAll(context.Background(), dutyStart.Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, ticks, 2)

	byGuard := map[int]models.ShiftStatus{}
	for _, tick := range ticks {
		byGuard[tick.GuardID] = tick.Status
	}
	require.Equal(t, "normal", byGuard[first].Display)
	require.Equal(t, "critical", byGuard[second].Display)
	require.True(t, byGuard[second].EndOfShift)

	// повторный проход идемпотентен
	ticks, err = svc.TickAll(context.Background(), dutyStart.Add(time.Hour+time.Second))
	require.NoError(t, err)
	for _, tick := range ticks {
		require.False(t, tick.Status.EndOfShift)
	}
}

func TestServiceStartResumesFromShiftRow(t *testing.T) {
	svc, repo, db := newTestService(t)
	guardID := addGuard(t, db, "petrov")
	_, err := repo.Create(guardID, "КПП-1", dutyStart, 8*3600)
	require.NoError(t, err)

	// рестарт консоли: Start видит живую строку смены и продолжает
	// её траекторию, как будто перерыва не было
	st, resumed, err := svc.Start(context.Background(), guardID, "КПП-1", dutyStart.Add(3*time.Hour))
	require.NoError(t, err)
	require.True(t, resumed)
	require.Equal(t, "05:00:00", st.Countdown)
	require.Equal(t, "normal", st.Display)
}

func TestServiceEnd(t *testing.T) {
	svc, repo, db := newTestService(t)
	guardID := addGuard(t, db, "petrov")
	_, err := repo.Create(guardID, "КПП-1", dutyStart, 8*3600)
	require.NoError(t, err)

	worked, err := svc.End(context.Background(), guardID, dutyStart.Add(8*time.Hour))
	require.NoError(t, err)
	require.Equal(t, 8*3600, worked)

	_, err = svc.Status(context.Background(), guardID, dutyStart.Add(8*time.Hour))
	require.ErrorIs(t, err, ErrNoActiveShift)

	_, err = svc.End(context.Background(), guardID, dutyStart.Add(9*time.Hour))
	require.ErrorIs(t, err, ErrNoActiveShift)
}

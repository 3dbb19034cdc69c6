package camera

import (
	"database/sql"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/evn/guard_backendl/internal/repositories"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
)

func newCameraRepo(t *testing.T) *repositories.CameraRepository {
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

	return repositories.NewCameraRepository(db)
}

func TestSaveCameraRows(t *testing.T) {
	repo := newCameraRepo(t)

	rows := [][]string{
		{"code", "name", "zone", "snapshot_url", "enabled"},
		{"cam-01", "Главные ворота", "КПП", "http://example/cam01.jpg", "1"},
		{"cam-02", "Парковка", "двор", "", "нет"},
		{"", "без кода — пропускается"},
		{"cam-03", "Периметр"},
	}

	imported, err := saveCameraRows(repo, rows)
	require.NoError(t, err)
	require.Equal(t, 3, imported)

	cameras, err := repo.List()
	require.NoError(t, err)
	require.Len(t, cameras, 3)

	byCode := map[string]bool{}
	for _, c := range cameras {
		byCode[c.Code] = c.Enabled
	}
	require.True(t, byCode["cam-01"])
	require.False(t, byCode["cam-02"])
	require.True(t, byCode["cam-03"]) // enabled по умолчанию
}

func TestSaveCameraRows_Empty(t *testing.T) {
	repo := newCameraRepo(t)

	_, err := saveCameraRows(repo, [][]string{
		{"code", "name"},
		{"", ""},
	})
	require.Error(t, err)
}

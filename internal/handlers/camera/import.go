// internal/handlers/camera/import.go
package camera

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/evn/guard_backendl/internal/models"
	"github.com/evn/guard_backendl/internal/pkg/response"
	"github.com/evn/guard_backendl/internal/repositories"
	"github.com/xuri/excelize/v2"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

type ImportCamerasRequest struct {
	GoogleSheetURL string `json:"google_sheet_url,omitempty"`
}

// ImportCamerasHandler загружает реестр камер из Excel-файла или
// Google Sheets. Колонки: code, name, zone, snapshot_url, enabled.
func ImportCamerasHandler(repo *repositories.CameraRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var rows [][]string
		var err error

		contentType := r.Header.Get("Content-Type")
		if strings.Contains(contentType, "application/json") {
			var req ImportCamerasRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				response.RespondWithError(w, http.StatusBadRequest, "Неверный JSON")
				return
			}
			if req.GoogleSheetURL == "" {
				response.RespondWithError(w, http.StatusBadRequest, "google_sheet_url обязателен")
				return
			}
			rows, err = readFromGoogleSheet(req.GoogleSheetURL)
			if err != nil {
				response.RespondWithError(w, http.StatusInternalServerError, "Ошибка чтения Google Sheets: "+err.Error())
				return
			}
		} else {
			file, _, err := r.FormFile("file")
			if err != nil {
				response.RespondWithError(w, http.StatusBadRequest, "Файл не найден")
				return
			}
			defer file.Close()

			xlsx, err := excelize.OpenReader(file)
			if err != nil {
				response.RespondWithError(w, http.StatusBadRequest, "Неверный формат Excel")
				return
			}
			rows, err = xlsx.GetRows("Sheet1")
			if err != nil {
				sheetList := xlsx.GetSheetList()
				if len(sheetList) == 0 {
					response.RespondWithError(w, http.StatusBadRequest, "Пустой Excel")
					return
				}
				rows, err = xlsx.GetRows(sheetList[0])
				if err != nil {
					response.RespondWithError(w, http.StatusInternalServerError, "Ошибка чтения листа")
					return
				}
			}
		}

		if len(rows) < 2 {
			response.RespondWithError(w, http.StatusBadRequest, "Файл должен содержать заголовок и хотя бы одну строку")
			return
		}

		imported, err := saveCameraRows(repo, rows)
		if err != nil {
			response.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		response.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
			"status":   "ok",
			"imported": imported,
		})
	}
}

// saveCameraRows валидирует строки (без заголовка) и сохраняет камеры.
func saveCameraRows(repo *repositories.CameraRepository, rows [][]string) (int, error) {
	imported := 0
	for i, row := range rows[1:] {
		if len(row) < 2 || strings.TrimSpace(row[0]) == "" {
			continue
		}

		cam := models.Camera{
			Code:    strings.TrimSpace(row[0]),
			Name:    strings.TrimSpace(row[1]),
			Enabled: true,
		}
		if len(row) > 2 {
			cam.Zone = strings.TrimSpace(row[2])
		}
		if len(row) > 3 {
			cam.SnapshotURL = strings.TrimSpace(row[3])
		}
		if len(row) > 4 {
			v := strings.ToLower(strings.TrimSpace(row[4]))
			cam.Enabled = v != "0" && v != "false" && v != "нет"
		}

		if err := repo.Upsert(cam); err != nil {
			return imported, fmt.Errorf("строка %d: %v", i+2, err)
		}
		imported++
	}

	if imported == 0 {
		return 0, fmt.Errorf("ни одной корректной строки с камерой")
	}
	return imported, nil
}

func readFromGoogleSheet(url string) ([][]string, error) {
	re := regexp.MustCompile(`\/d\/([a-zA-Z0-9-_]+)`)
	matches := re.FindStringSubmatch(url)
	if len(matches) < 2 {
		return nil, fmt.Errorf("неверный URL Google Sheets")
	}
	spreadsheetID := matches[1]

	ctx := context.Background()
	srv, err := sheets.NewService(ctx, option.WithCredentialsFile("credentials.json"))
	if err != nil {
		return nil, fmt.Errorf("ошибка инициализации Google API: %w", err)
	}

	resp, err := srv.Spreadsheets.Values.Get(spreadsheetID, "A1:E1000").Do()
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения таблицы: %w", err)
	}

	var rows [][]string
	for _, row := range resp.Values {
		var cells []string
		for _, cell := range row {
			cells = append(cells, fmt.Sprintf("%v", cell))
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

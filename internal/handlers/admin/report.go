// internal/handlers/admin/report.go
package admin

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/evn/guard_backendl/internal/pkg/response"
	"github.com/evn/guard_backendl/internal/repositories"
	"github.com/xuri/excelize/v2"
)

// ShiftReportHandler выгружает журнал завершённых смен в Excel.
func ShiftReportHandler(repo *repositories.ShiftRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shifts, err := repo.ListEnded()
		if err != nil {
			log.Printf("DB query error (shift report): %v", err)
			response.RespondWithError(w, http.StatusInternalServerError, "Database error")
			return
		}

		f := excelize.NewFile()
		defer f.Close()

		sheet := f.GetSheetName(0)
		headers := []string{"ID", "Охранник", "Пост", "Начало", "Конец", "Сверхурочные", "Отработано"}
		for i, h := range headers {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			f.SetCellValue(sheet, cell, h)
		}

		for rowIdx, s := range shifts {
			values := []interface{}{
				s.ID,
				s.Username,
				s.Post,
				s.StartTime,
				s.EndTime,
				response.FormatWorked(s.OvertimeSec),
				response.FormatWorked(s.WorkedSec),
			}
			for colIdx, v := range values {
				cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
				f.SetCellValue(sheet, cell, v)
			}
		}

		filename := fmt.Sprintf("shift_report_%s.xlsx", time.Now().Format("2006-01-02"))
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

		if err := f.Write(w); err != nil {
			log.Printf("Failed to write xlsx report: %v", err)
		}
	}
}

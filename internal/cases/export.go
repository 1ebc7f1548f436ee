package cases

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"

	"github.com/aldoetobex/legal-practice-backend/pkg/models"
)

const exportSheet = "Cases"

var exportHeaders = []string{
	"ID", "Case Number", "Title", "Type", "Jurisdiction", "Priority", "Status",
	"Filing Date", "Client ID", "Client Name", "Client Email", "Estimated Value", "Created At",
}

// BuildWorkbook renders one row per case under a bold header row.
func BuildWorkbook(rows []models.Case) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	for i, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(exportSheet, cell, header)
	}
	headerStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	last, _ := excelize.CoordinatesToCellName(len(exportHeaders), 1)
	f.SetCellStyle(exportSheet, "A1", last, headerStyle)
	f.SetColWidth(exportSheet, "A", "M", 18)

	for r, cs := range rows {
		values := []any{
			cs.ID,
			cs.CaseNumber,
			cs.CaseTitle,
			cs.CaseType,
			cs.Jurisdiction,
			cs.Priority,
			string(cs.Status),
			time.Time(cs.FillingDate).Format("2006-01-02"),
			deref(cs.ClientID),
			deref(cs.ClientName),
			deref(cs.ClientEmail),
			deref(cs.EstimatedCaseValue),
			cs.CreatedAt.UTC().Format(time.RFC3339),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, r+2)
			if err := f.SetCellValue(exportSheet, cell, v); err != nil {
				return nil, fmt.Errorf("write cell %s: %w", cell, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf, nil
}

// deref returns the pointed-to value, or an empty cell for nil.
func deref[T any](p *T) any {
	if p == nil {
		return ""
	}
	return *p
}

// Export Cases godoc
// @Summary      Export cases to Excel
// @Description  Same filter as the list endpoint, without pagination
// @Tags         cases
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        caseTitle  query  string  false  "title substring, case-insensitive"
// @Success      200  {file}    file
// @Failure      500  {object}  models.ErrorResponse
// @Router       /cases/export [get]
func (h *Handler) Export(c *fiber.Ctx) error {
	rows, err := h.repo.GetAllCases(c.UserContext(),
		Filters{CaseTitle: strings.TrimSpace(c.Query("caseTitle"))}, Pagination{})
	if err != nil {
		return fmt.Errorf("export cases: %w", err)
	}
	buf, err := BuildWorkbook(rows)
	if err != nil {
		return fmt.Errorf("export cases: %w", err)
	}

	filename := fmt.Sprintf("cases_%s.xlsx", time.Now().UTC().Format("20060102_150405"))
	c.Set(fiber.HeaderContentDisposition, "attachment; filename="+filename)
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	return c.Send(buf.Bytes())
}

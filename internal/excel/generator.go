package excel

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/poisebuild/poise-pms/internal/model"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate renders a project listing as a workbook with a summary sheet and
// one row per project.
func (g *Generator) Generate(report model.ProjectReport) ([]byte, error) {
	file := excelize.NewFile()

	sheet := "Projects"
	file.SetSheetName("Sheet1", sheet)

	var setErr error
	set := func(cell string, value interface{}) {
		if err := file.SetCellValue(sheet, cell, value); err != nil && setErr == nil {
			setErr = fmt.Errorf("set cell %s: %w", cell, err)
		}
	}

	set("A1", "Report")
	set("B1", report.Kind.Title())
	set("A2", "Generated")
	set("B2", formatDate(report.GeneratedAt))
	set("A3", "Projects")
	set("B3", len(report.Projects))

	tableRow := 5
	headers := []string{
		"No.",
		"Name",
		"Building type",
		"Address",
		"ERF no.",
		"Total fee",
		"Amount paid",
		"Deadline",
	}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, tableRow)
		set(cell, header)
	}

	for i, project := range report.Projects {
		row := tableRow + 1 + i
		set(fmt.Sprintf("A%d", row), project.ID)
		set(fmt.Sprintf("B%d", row), project.Name)
		set(fmt.Sprintf("C%d", row), project.BuildingType)
		set(fmt.Sprintf("D%d", row), project.Address)
		set(fmt.Sprintf("E%d", row), project.ErfNum)
		set(fmt.Sprintf("F%d", row), fmt.Sprintf("%.2f", project.TotalFee))
		set(fmt.Sprintf("G%d", row), fmt.Sprintf("%.2f", project.AmountPaid))
		set(fmt.Sprintf("H%d", row), formatDate(project.Deadline))
	}

	if setErr != nil {
		return nil, setErr
	}

	_ = file.SetColWidth(sheet, "B", "B", 28)
	_ = file.SetColWidth(sheet, "C", "E", 20)
	_ = file.SetColWidth(sheet, "D", "D", 36)
	_ = file.SetColWidth(sheet, "F", "H", 14)

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

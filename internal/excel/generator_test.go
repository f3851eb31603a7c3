package excel

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/poisebuild/poise-pms/internal/model"
)

func TestGenerateWritesListing(t *testing.T) {
	report := model.ProjectReport{
		Kind:        model.ReportKindOverdue,
		GeneratedAt: time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC),
		Projects: []model.Project{
			{
				ID:           7,
				Name:         "Tower B",
				BuildingType: "Apartment",
				Address:      "12 Main Rd",
				ErfNum:       "ERF-1001",
				TotalFee:     5000,
				AmountPaid:   2000,
				Deadline:     time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			},
		},
	}

	content, err := NewGenerator().Generate(report)
	require.NoError(t, err)

	file, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer file.Close()

	cell := func(ref string) string {
		value, err := file.GetCellValue("Projects", ref)
		require.NoError(t, err)
		return value
	}

	assert.Equal(t, "Projects past deadline", cell("B1"))
	assert.Equal(t, "2026-08-29", cell("B2"))
	assert.Equal(t, "1", cell("B3"))

	assert.Equal(t, "No.", cell("A5"))
	assert.Equal(t, "Deadline", cell("H5"))

	assert.Equal(t, "7", cell("A6"))
	assert.Equal(t, "Tower B", cell("B6"))
	assert.Equal(t, "5000.00", cell("F6"))
	assert.Equal(t, "2026-01-01", cell("H6"))
}

func TestGenerateEmptyListing(t *testing.T) {
	content, err := NewGenerator().Generate(model.ProjectReport{
		Kind:        model.ReportKindIncomplete,
		GeneratedAt: time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	file, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer file.Close()

	value, err := file.GetCellValue("Projects", "B3")
	require.NoError(t, err)
	assert.Equal(t, "0", value)
}

package export

import (
	"path/filepath"
	"testing"

	"github.com/jgoulah/seoulenergy/pkg/models"
	"github.com/xuri/excelize/v2"
)

func TestWriteWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "report.xlsx")
	yearly := []models.YearlyTotal{
		{Year: 2015, EUS: 1, GUS: 2, WUS: 3, HUS: 4, Total: 10},
		{Year: 2016, EUS: 10, GUS: 20, WUS: 30, HUS: 40, Total: 100},
	}
	seasonal := []models.SeasonAverage{
		{Season: models.Spring, AvgGUS: 12.5, Count: 2},
		{Season: models.Winter, AvgGUS: 300, Count: 4},
	}

	if err := WriteWorkbook(path, yearly, seasonal); err != nil {
		t.Fatalf("WriteWorkbook() error = %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("opening workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(YearlySheet)
	if err != nil {
		t.Fatalf("GetRows(%s): %v", YearlySheet, err)
	}
	if len(rows) != 3 {
		t.Fatalf("yearly sheet has %d rows, want 3", len(rows))
	}
	if rows[0][0] != "Year" || rows[0][5] != "Total" {
		t.Errorf("yearly header = %v", rows[0])
	}
	if rows[2][0] != "2016" || rows[2][5] != "100" {
		t.Errorf("yearly row = %v", rows[2])
	}

	rows, err = f.GetRows(SeasonalSheet)
	if err != nil {
		t.Fatalf("GetRows(%s): %v", SeasonalSheet, err)
	}
	if len(rows) != 3 {
		t.Fatalf("seasonal sheet has %d rows, want 3", len(rows))
	}
	if rows[1][0] != "Spring" || rows[1][1] != "12.5" || rows[1][2] != "2" {
		t.Errorf("seasonal row = %v", rows[1])
	}
	if rows[2][0] != "Winter" {
		t.Errorf("seasonal order = %v", rows)
	}
}

package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jgoulah/seoulenergy/pkg/models"
	"github.com/xuri/excelize/v2"
)

// Sheet names in the exported workbook
const (
	YearlySheet   = "Yearly"
	SeasonalSheet = "Seasonal"
)

var (
	yearlyHeaders   = []string{"Year", "EUS", "GUS", "WUS", "HUS", "Total"}
	seasonalHeaders = []string{"Season", "Average GUS", "Rows"}
)

// WriteWorkbook writes the yearly and seasonal aggregates to an xlsx file
func WriteWorkbook(path string, yearly []models.YearlyTotal, seasonal []models.SeasonAverage) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", YearlySheet); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}
	if _, err := f.NewSheet(SeasonalSheet); err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}

	if err := writeHeader(f, YearlySheet, yearlyHeaders); err != nil {
		return err
	}
	for i, y := range yearly {
		row := []any{y.Year, y.EUS, y.GUS, y.WUS, y.HUS, y.Total}
		if err := writeRow(f, YearlySheet, i+2, row); err != nil {
			return err
		}
	}

	if err := writeHeader(f, SeasonalSheet, seasonalHeaders); err != nil {
		return err
	}
	for i, s := range seasonal {
		row := []any{s.Season.English(), s.AvgGUS, s.Count}
		if err := writeRow(f, SeasonalSheet, i+2, row); err != nil {
			return err
		}
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating export directory: %w", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}

func writeHeader(f *excelize.File, sheet string, headers []string) error {
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return fmt.Errorf("writing header %s: %w", header, err)
		}
		if err := f.SetColWidth(sheet, cell[:1], cell[:1], 16); err != nil {
			return fmt.Errorf("setting column width: %w", err)
		}
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, rowNum int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("writing %s row %d: %w", sheet, rowNum, err)
	}
	return nil
}

package main

import (
	"testing"

	"github.com/google/uuid"
	"github.com/jgoulah/seoulenergy/internal/collector"
	"github.com/jgoulah/seoulenergy/pkg/models"
)

func TestBuildReport(t *testing.T) {
	raw := []models.RawRecord{
		{"MON": "1", "YEAR": "2020", "GUS": "100", "MM_TYPE": "개인"},
		{"MON": "7", "YEAR": "2020", "GUS": "300", "MM_TYPE": "개인"},
		{"MON": "7", "YEAR": "2020", "GUS": "50", "MM_TYPE": "법인"},
	}
	start := models.YearMonth{Year: 2020, Month: 1}
	end := models.YearMonth{Year: 2020, Month: 12}

	report := buildReport(collector.FilterPersonal(raw), start, end)

	if _, err := uuid.Parse(report.ID); err != nil {
		t.Errorf("report ID %q is not a UUID: %v", report.ID, err)
	}
	if report.CreatedAt.IsZero() || report.CreatedAt.Location().String() != "UTC" {
		t.Errorf("CreatedAt = %v, want UTC timestamp", report.CreatedAt)
	}
	if report.Start != start || report.End != end {
		t.Errorf("range = %v-%v", report.Start, report.End)
	}
	if report.RowCount != 2 {
		t.Errorf("RowCount = %d, want 2", report.RowCount)
	}
	if report.Published {
		t.Error("new report should not be published")
	}

	if len(report.Yearly) != 1 || report.Yearly[0].Year != 2020 || report.Yearly[0].GUS != 400 || report.Yearly[0].Total != 400 {
		t.Errorf("Yearly = %+v", report.Yearly)
	}

	want := []models.SeasonAverage{
		{Season: models.Summer, AvgGUS: 300, Count: 1},
		{Season: models.Winter, AvgGUS: 100, Count: 1},
	}
	if len(report.Seasonal) != len(want) {
		t.Fatalf("Seasonal = %+v", report.Seasonal)
	}
	for i := range want {
		if report.Seasonal[i] != want[i] {
			t.Errorf("Seasonal[%d] = %+v, want %+v", i, report.Seasonal[i], want[i])
		}
	}

	if other := buildReport(nil, start, end); other.ID == report.ID {
		t.Error("report IDs should be unique")
	}
}

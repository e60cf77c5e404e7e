package models

import (
	"fmt"
	"testing"
)

func intPtr(v int) *int { return &v }

func TestSeasonForMonth(t *testing.T) {
	tests := []struct {
		month *int
		want  Season
	}{
		{intPtr(1), " 겨울"},
		{intPtr(2), " 겨울"},
		{intPtr(3), Spring},
		{intPtr(5), Spring},
		{intPtr(6), Summer},
		{intPtr(8), Summer},
		{intPtr(9), Autumn},
		{intPtr(11), Autumn},
		{intPtr(12), " 겨울"},
		{intPtr(0), " 겨울"},
		{intPtr(13), " 겨울"},
		{intPtr(-4), " 겨울"},
		{nil, " 겨울"},
	}

	for _, tt := range tests {
		got := SeasonForMonth(tt.month)
		if got != tt.want {
			m := "nil"
			if tt.month != nil {
				m = fmt.Sprint(*tt.month)
			}
			t.Errorf("SeasonForMonth(%s) = %q, want %q", m, got, tt.want)
		}
	}
}

func TestSeasonRank(t *testing.T) {
	for i, s := range Seasons {
		if s.Rank() != i {
			t.Errorf("%s.Rank() = %d, want %d", s.English(), s.Rank(), i)
		}
	}
	if Season(" 겨울").Rank() != -1 {
		t.Error("untrimmed winter label should not rank")
	}
}

func TestYearMonth(t *testing.T) {
	ym, err := ParseYearMonth("2015/01")
	if err != nil {
		t.Fatalf("ParseYearMonth: %v", err)
	}
	if ym != (YearMonth{2015, 1}) {
		t.Fatalf("got %+v", ym)
	}
	if ym.String() != "2015/01" {
		t.Errorf("String() = %q", ym.String())
	}

	if got := (YearMonth{2019, 12}).Next(); got != (YearMonth{2020, 1}) {
		t.Errorf("Next() across year = %v", got)
	}
	if !(YearMonth{2019, 12}).Before(YearMonth{2020, 1}) {
		t.Error("2019/12 should be before 2020/01")
	}
	if (YearMonth{2020, 1}).Before(YearMonth{2020, 1}) {
		t.Error("Before must be strict")
	}

	if _, err := ParseYearMonth("201501"); err == nil {
		t.Error("expected error for missing separator")
	}
	if _, err := ParseYearMonth("2015/xx"); err == nil {
		t.Error("expected error for non-numeric month")
	}
}

func TestRawRecordString(t *testing.T) {
	r := RawRecord{"YEAR": "2020", "GUS": 150.5, "MON": float64(7), "NIL": nil}
	if r.String("YEAR") != "2020" {
		t.Errorf("YEAR = %q", r.String("YEAR"))
	}
	if r.String("GUS") != "150.5" {
		t.Errorf("GUS = %q", r.String("GUS"))
	}
	if r.String("MON") != "7" {
		t.Errorf("MON = %q", r.String("MON"))
	}
	if r.String("NIL") != "" || r.String("MISSING") != "" {
		t.Error("missing and null fields should be empty")
	}
}

package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Field names exposed by the energyUseDataSummaryInfo API
const (
	FieldYear     = "YEAR"
	FieldMonth    = "MON"
	FieldCategory = "MM_TYPE"
	FieldEUS      = "EUS" // electricity
	FieldGUS      = "GUS" // gas
	FieldWUS      = "WUS" // water
	FieldHUS      = "HUS" // district heating
)

// CategoryPersonal is the only MM_TYPE value kept by the collector
const CategoryPersonal = "개인"

// RawRecord is a single API row: field name to string or number
type RawRecord map[string]any

// String returns the field as a string, or "" if it is missing or null
func (r RawRecord) String(field string) string {
	v, ok := r[field]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

// YearMonth identifies one month of the collection window
type YearMonth struct {
	Year  int
	Month int
}

// ParseYearMonth parses "YYYY/MM" (or "YYYY-MM")
func ParseYearMonth(s string) (YearMonth, error) {
	s = strings.TrimSpace(s)
	sep := strings.IndexAny(s, "/-")
	if sep < 0 {
		return YearMonth{}, fmt.Errorf("invalid year/month %q (use YYYY/MM)", s)
	}
	year, err := strconv.Atoi(s[:sep])
	if err != nil {
		return YearMonth{}, fmt.Errorf("invalid year in %q: %w", s, err)
	}
	month, err := strconv.Atoi(s[sep+1:])
	if err != nil {
		return YearMonth{}, fmt.Errorf("invalid month in %q: %w", s, err)
	}
	return YearMonth{Year: year, Month: month}, nil
}

// Next returns the following month
func (ym YearMonth) Next() YearMonth {
	if ym.Month >= 12 {
		return YearMonth{Year: ym.Year + 1, Month: 1}
	}
	return YearMonth{Year: ym.Year, Month: ym.Month + 1}
}

// Before reports whether ym comes strictly before other
func (ym YearMonth) Before(other YearMonth) bool {
	if ym.Year != other.Year {
		return ym.Year < other.Year
	}
	return ym.Month < other.Month
}

func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d/%02d", ym.Year, ym.Month)
}

// UnmarshalYAML reads "YYYY/MM"
func (ym *YearMonth) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := ParseYearMonth(s)
	if err != nil {
		return err
	}
	*ym = parsed
	return nil
}

// YearlyTotal is one row of the yearly aggregate
type YearlyTotal struct {
	Year  int     `json:"year"`
	EUS   float64 `json:"eus"`
	GUS   float64 `json:"gus"`
	WUS   float64 `json:"wus"`
	HUS   float64 `json:"hus"`
	Total float64 `json:"total"`
}

// SeasonAverage is one row of the seasonal aggregate
type SeasonAverage struct {
	Season Season  `json:"season"`
	AvgGUS float64 `json:"avg_gus"`
	Count  int     `json:"count"`
}

// Report is the archived product of one pipeline run
type Report struct {
	ID        string          `json:"id"`
	CreatedAt time.Time       `json:"created_at"`
	Start     YearMonth       `json:"start"`
	End       YearMonth       `json:"end"`
	RowCount  int             `json:"row_count"`
	Published bool            `json:"published"`
	Yearly    []YearlyTotal   `json:"yearly"`
	Seasonal  []SeasonAverage `json:"seasonal"`
}

package analysis

import (
	"github.com/jgoulah/seoulenergy/pkg/models"
)

// Row is one record of the normalized table
type Row struct {
	Year     *int
	Month    *int
	EUS      *float64
	GUS      *float64
	WUS      *float64
	HUS      *float64
	Category string
	Season   models.Season // raw derived label; winter carries a leading space
}

// Table is the ordered, typed view of the collected records
type Table []Row

// Normalize converts raw records into a Table, preserving order, and derives
// the season of each row from its month.
func Normalize(records []models.RawRecord) Table {
	table := make(Table, 0, len(records))
	for _, r := range records {
		month := ParseInt(r.String(models.FieldMonth))
		table = append(table, Row{
			Year:     ParseInt(r.String(models.FieldYear)),
			Month:    month,
			EUS:      ParseFloat(r.String(models.FieldEUS)),
			GUS:      ParseFloat(r.String(models.FieldGUS)),
			WUS:      ParseFloat(r.String(models.FieldWUS)),
			HUS:      ParseFloat(r.String(models.FieldHUS)),
			Category: r.String(models.FieldCategory),
			Season:   models.SeasonForMonth(month),
		})
	}
	return table
}

package analysis

import (
	"sort"

	"github.com/jgoulah/seoulenergy/pkg/models"
)

// Yearly sums the four usage columns per year. Rows without a valid year are
// dropped; unparseable usage values count as zero. Output is ascending by year.
func Yearly(table Table) []models.YearlyTotal {
	byYear := make(map[int]*models.YearlyTotal)

	for _, row := range table {
		if row.Year == nil {
			continue
		}
		agg, ok := byYear[*row.Year]
		if !ok {
			agg = &models.YearlyTotal{Year: *row.Year}
			byYear[*row.Year] = agg
		}
		agg.EUS += valueOrZero(row.EUS)
		agg.GUS += valueOrZero(row.GUS)
		agg.WUS += valueOrZero(row.WUS)
		agg.HUS += valueOrZero(row.HUS)
	}

	results := make([]models.YearlyTotal, 0, len(byYear))
	for _, agg := range byYear {
		agg.Total = agg.EUS + agg.GUS + agg.WUS + agg.HUS
		results = append(results, *agg)
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Year < results[j].Year
	})

	return results
}

package analysis

import (
	"strings"

	"github.com/jgoulah/seoulenergy/pkg/models"
)

// Seasonal averages gas usage per season. Labels are trimmed before
// grouping; rows with no season or non-numeric gas usage are excluded.
// Output follows spring, summer, autumn, winter and omits empty seasons.
func Seasonal(table Table) []models.SeasonAverage {
	sums := make([]float64, len(models.Seasons))
	counts := make([]int, len(models.Seasons))

	for _, row := range table {
		if row.GUS == nil {
			continue
		}
		season := models.Season(strings.TrimSpace(string(row.Season)))
		rank := season.Rank()
		if rank < 0 {
			continue
		}
		sums[rank] += *row.GUS
		counts[rank]++
	}

	var results []models.SeasonAverage
	for i, season := range models.Seasons {
		if counts[i] == 0 {
			continue
		}
		results = append(results, models.SeasonAverage{
			Season: season,
			AvgGUS: sums[i] / float64(counts[i]),
			Count:  counts[i],
		})
	}

	return results
}

package models

// Season is a calendar bucket derived from the month
type Season string

const (
	Spring Season = "봄"
	Summer Season = "여름"
	Autumn Season = "가을"
	Winter Season = "겨울"
)

// winterLabel is the raw label assigned to the default bucket. It carries a
// leading space; consumers that group by season trim it first.
const winterLabel Season = " 겨울"

// Seasons lists the seasons in canonical order
var Seasons = []Season{Spring, Summer, Autumn, Winter}

// SeasonForMonth maps a month to its season. Anything outside 3-11,
// including a missing month, falls into winter.
func SeasonForMonth(month *int) Season {
	if month == nil {
		return winterLabel
	}
	switch *month {
	case 3, 4, 5:
		return Spring
	case 6, 7, 8:
		return Summer
	case 9, 10, 11:
		return Autumn
	default:
		return winterLabel
	}
}

// Rank returns the canonical position of s, or -1 if s is not a season
func (s Season) Rank() int {
	for i, known := range Seasons {
		if s == known {
			return i
		}
	}
	return -1
}

// English returns the display name used on chart axes and topics
func (s Season) English() string {
	switch s {
	case Spring:
		return "Spring"
	case Summer:
		return "Summer"
	case Autumn:
		return "Autumn"
	case Winter:
		return "Winter"
	default:
		return string(s)
	}
}

package chart

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/jgoulah/seoulenergy/pkg/models"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Chart titles and axis labels
const (
	YearlyTitle    = "Total Energy Usage by Year"
	YearlyXLabel   = "Year"
	YearlyYLabel   = "Total Usage"
	SeasonalTitle  = "Seasonal gas usage"
	SeasonalXLabel = "Season"
	SeasonalYLabel = "Average gas usage"
)

// ErrNoData is returned when there is nothing to plot
var ErrNoData = errors.New("no data to plot")

var (
	lineColor = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	barColor  = color.RGBA{R: 31, G: 119, B: 180, A: 255}
)

// YearlyChart builds the total-usage line chart with a marker per year
func YearlyChart(yearly []models.YearlyTotal) (*plot.Plot, error) {
	if len(yearly) == 0 {
		return nil, ErrNoData
	}

	p := plot.New()
	p.Title.Text = YearlyTitle
	p.X.Label.Text = YearlyXLabel
	p.Y.Label.Text = YearlyYLabel

	points := make(plotter.XYs, len(yearly))
	for i, y := range yearly {
		points[i].X = float64(y.Year)
		points[i].Y = y.Total
	}

	line, markers, err := plotter.NewLinePoints(points)
	if err != nil {
		return nil, fmt.Errorf("creating line: %w", err)
	}
	line.Color = lineColor
	line.Width = vg.Points(2)
	markers.GlyphStyle.Color = lineColor
	markers.GlyphStyle.Shape = draw.CircleGlyph{}
	markers.GlyphStyle.Radius = vg.Points(3)

	p.Add(plotter.NewGrid(), line, markers)
	p.X.Tick.Marker = yearTicks{}

	// Keep a single year from collapsing the axis
	if len(yearly) == 1 {
		p.X.Min = points[0].X - 1
		p.X.Max = points[0].X + 1
	}

	return p, nil
}

// SeasonalChart builds the average gas usage bar chart with a value label
// centered above each bar
func SeasonalChart(seasonal []models.SeasonAverage) (*plot.Plot, error) {
	if len(seasonal) == 0 {
		return nil, ErrNoData
	}

	p := plot.New()
	p.Title.Text = SeasonalTitle
	p.X.Label.Text = SeasonalXLabel
	p.Y.Label.Text = SeasonalYLabel

	values := make(plotter.Values, len(seasonal))
	names := make([]string, len(seasonal))
	maxValue := 0.0
	for i, s := range seasonal {
		values[i] = s.AvgGUS
		names[i] = s.Season.English()
		maxValue = math.Max(maxValue, s.AvgGUS)
	}

	bars, err := plotter.NewBarChart(values, vg.Points(40))
	if err != nil {
		return nil, fmt.Errorf("creating bar chart: %w", err)
	}
	bars.Color = barColor
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	p.NominalX(names...)

	labels, err := barLabels(seasonal)
	if err != nil {
		return nil, err
	}
	p.Add(labels)

	// Headroom for the labels
	if maxValue > 0 {
		p.Y.Max = maxValue * 1.1
	}

	return p, nil
}

// barLabels places each formatted value at its bar's height, centered on
// the bar. Bars sit at x = 0..n-1 under NominalX.
func barLabels(seasonal []models.SeasonAverage) (*plotter.Labels, error) {
	xys := make([]plotter.XY, len(seasonal))
	text := make([]string, len(seasonal))
	for i, s := range seasonal {
		xys[i] = plotter.XY{X: float64(i), Y: s.AvgGUS}
		text[i] = FormatLabel(s.AvgGUS)
	}

	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: text})
	if err != nil {
		return nil, fmt.Errorf("creating labels: %w", err)
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].XAlign = draw.XCenter
		labels.TextStyle[i].YAlign = draw.YBottom
	}
	return labels, nil
}

// FormatLabel renders a bar value with thousands separators and no decimals
func FormatLabel(v float64) string {
	return humanize.Comma(int64(math.RoundToEven(v)))
}

// maxYearTicks bounds the axis when an outlier year stretches the range
const maxYearTicks = 20

// yearTicks places a major tick on whole years, every year when the
// range is short and at a wider whole-year step otherwise
type yearTicks struct{}

func (yearTicks) Ticks(min, max float64) []plot.Tick {
	step := math.Max(1, math.Ceil((max-min)/maxYearTicks))
	var ticks []plot.Tick
	for y := math.Ceil(min/step) * step; y <= max; y += step {
		ticks = append(ticks, plot.Tick{Value: y, Label: strconv.Itoa(int(y))})
	}
	return ticks
}

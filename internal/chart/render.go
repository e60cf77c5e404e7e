package chart

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jgoulah/seoulenergy/internal/log"
	"github.com/jgoulah/seoulenergy/pkg/models"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
)

// Chart names, also used as file names when saving
const (
	YearlyFile   = "yearly_total_usage.png"
	SeasonalFile = "seasonal_gas_usage.png"
)

// Displayer shows an encoded PNG chart and returns once the viewer is dismissed
type Displayer interface {
	Display(ctx context.Context, name string, png []byte) error
}

// Renderer encodes both charts in memory and displays them in order
type Renderer struct {
	OutputDir string    // empty keeps charts off disk
	Display   Displayer // nil renders without displaying
	logger    *log.Logger
}

// NewRenderer creates a renderer. Charts are also saved when outputDir is set.
func NewRenderer(outputDir string, display Displayer, logger *log.Logger) *Renderer {
	if logger == nil {
		logger = log.Discard()
	}
	return &Renderer{
		OutputDir: outputDir,
		Display:   display,
		logger:    logger.WithComponent(log.ComponentChart),
	}
}

// Render builds the yearly chart then the seasonal chart, displaying each
// one before moving on. A chart with no data is skipped. It returns the
// paths saved, if any.
func (r *Renderer) Render(ctx context.Context, yearly []models.YearlyTotal, seasonal []models.SeasonAverage) ([]string, error) {
	if r.OutputDir != "" {
		if err := os.MkdirAll(r.OutputDir, 0755); err != nil {
			return nil, fmt.Errorf("creating output directory: %w", err)
		}
	}

	charts := []struct {
		build  func() (*plot.Plot, error)
		name   string
		width  vg.Length
		height vg.Length
	}{
		{func() (*plot.Plot, error) { return YearlyChart(yearly) }, YearlyFile, 12 * vg.Inch, 6 * vg.Inch},
		{func() (*plot.Plot, error) { return SeasonalChart(seasonal) }, SeasonalFile, 6.4 * vg.Inch, 4.8 * vg.Inch},
	}

	var paths []string
	for _, c := range charts {
		p, err := c.build()
		if errors.Is(err, ErrNoData) {
			r.logger.Warn("nothing to plot, skipping chart", log.FieldChart, c.name)
			continue
		}
		if err != nil {
			return paths, fmt.Errorf("building %s: %w", c.name, err)
		}

		img, err := encodePNG(p, c.width, c.height)
		if err != nil {
			return paths, fmt.Errorf("encoding %s: %w", c.name, err)
		}
		r.logger.Debug("chart rendered", log.FieldChart, c.name, "bytes", len(img))

		if r.OutputDir != "" {
			path := filepath.Join(r.OutputDir, c.name)
			if err := os.WriteFile(path, img, 0644); err != nil {
				return paths, fmt.Errorf("saving %s: %w", c.name, err)
			}
			r.logger.Info("chart saved", log.FieldPath, path)
			paths = append(paths, path)
		}

		if r.Display == nil {
			continue
		}
		if err := r.Display.Display(ctx, c.name, img); err != nil {
			return paths, fmt.Errorf("displaying %s: %w", c.name, err)
		}
	}

	return paths, nil
}

func encodePNG(p *plot.Plot, width, height vg.Length) ([]byte, error) {
	w, err := p.WriterTo(width, height, "png")
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

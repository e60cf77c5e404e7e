package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jgoulah/seoulenergy/internal/analysis"
	"github.com/jgoulah/seoulenergy/internal/chart"
	"github.com/jgoulah/seoulenergy/internal/collector"
	"github.com/jgoulah/seoulenergy/internal/config"
	"github.com/jgoulah/seoulenergy/internal/export"
	"github.com/jgoulah/seoulenergy/pkg/models"
	"github.com/spf13/cobra"
)

var (
	runNoDisplay bool
	runArchive   bool
	runXLSX      string
	runOutDir    string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Fetch, aggregate and chart energy usage",
	Long: `Requests one month at a time from the Seoul Open Data API over the configured
range (default 2015/01 through 2024/12), keeps personal-category rows, then
charts yearly total usage and seasonal average gas usage.

Each chart opens in a browser window; close it to continue to the next one.
Nothing is written to disk unless --out, --archive or --xlsx is given.`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	runCmd.Flags().BoolVar(&runNoDisplay, "no-display", false, "Do not open chart windows")
	runCmd.Flags().BoolVar(&runArchive, "archive", false, "Store the aggregates in the report archive")
	runCmd.Flags().StringVar(&runXLSX, "xlsx", "", "Also export the aggregates to this .xlsx file")
	runCmd.Flags().StringVar(&runOutDir, "out", "", "Also save chart PNGs to this directory (default from config, else not saved)")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	fmt.Printf("=== Run started at %s ===\n", time.Now().Format("2006-01-02 15:04:05 MST"))

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger := newLogger()
	ctx := cmd.Context()

	if cfg.GetAPIKey() == config.PlaceholderAPIKey {
		fmt.Printf("⚠ No API key configured (set api_key in %s or %s)\n", getConfigPath(), config.APIKeyEnv)
	}

	start, end := cfg.GetStart(), cfg.GetEnd()
	fmt.Printf("Fetching energy usage %s through %s...\n", start, end)

	coll := collector.New(cfg.GetAPIKey(), logger)
	result, err := coll.Collect(ctx, start, end)
	if err != nil {
		return fmt.Errorf("collecting usage data: %w", err)
	}

	if result.Failed > 0 {
		fmt.Printf("⚠ %d of %d months failed and were skipped\n", result.Failed, result.Months)
	}
	if len(result.Rows) == 0 {
		fmt.Println("No data found")
		return nil
	}
	fmt.Printf("✓ Collected %d personal-category rows\n", len(result.Rows))

	report := buildReport(result.Rows, start, end)
	printReport(report)

	if runArchive {
		if err := archiveReport(report); err != nil {
			fmt.Printf("Warning: Could not archive report: %v\n", err)
		} else {
			fmt.Printf("✓ Report %s archived to %s\n", report.ID, getDBPath())
		}
	}

	if runXLSX != "" {
		if err := export.WriteWorkbook(runXLSX, report.Yearly, report.Seasonal); err != nil {
			fmt.Printf("Warning: Could not export workbook: %v\n", err)
		} else {
			fmt.Printf("✓ Exported %s\n", runXLSX)
		}
	}

	outDir := runOutDir
	if outDir == "" {
		outDir = cfg.GetOutputDir()
	}

	var display chart.Displayer
	if !runNoDisplay {
		display = chart.BrowserDisplay{}
	}

	renderer := chart.NewRenderer(outDir, display, logger)
	paths, err := renderer.Render(ctx, report.Yearly, report.Seasonal)
	if err != nil {
		return fmt.Errorf("rendering charts: %w", err)
	}
	for _, p := range paths {
		fmt.Printf("✓ Chart written to %s\n", p)
	}

	return nil
}

// buildReport runs the normalize and aggregate stages over the collected rows
func buildReport(rows []models.RawRecord, start, end models.YearMonth) *models.Report {
	table := analysis.Normalize(rows)
	return &models.Report{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Start:     start,
		End:       end,
		RowCount:  len(table),
		Yearly:    analysis.Yearly(table),
		Seasonal:  analysis.Seasonal(table),
	}
}

func archiveReport(report *models.Report) error {
	db, err := openDB()
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	return db.SaveReport(report)
}

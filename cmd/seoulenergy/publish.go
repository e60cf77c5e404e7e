package main

import (
	"fmt"
	"time"

	"github.com/jgoulah/seoulenergy/internal/publisher"
	"github.com/jgoulah/seoulenergy/pkg/models"
	"github.com/spf13/cobra"
)

var (
	publishReport string
	publishForce  bool
)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Publish a report to Home Assistant and/or MQTT",
	Long:  `Reads an archived report (the latest by default) and publishes its yearly totals and seasonal averages to the configured targets.`,
	Args:  cobra.NoArgs,
	RunE:  runPublish,
}

func init() {
	publishCmd.Flags().StringVar(&publishReport, "report", "", "Report ID to publish (default: latest)")
	publishCmd.Flags().BoolVar(&publishForce, "force", false, "Republish even if the report was already published")
	rootCmd.AddCommand(publishCmd)
}

func runPublish(cmd *cobra.Command, args []string) error {
	fmt.Printf("=== Publish started at %s ===\n", time.Now().Format("2006-01-02 15:04:05 MST"))

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger := newLogger()

	db, err := openDB()
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	var report *models.Report
	if publishReport != "" {
		report, err = db.GetReport(publishReport)
	} else {
		report, err = db.LatestReport()
	}
	if err != nil {
		return fmt.Errorf("loading report: %w", err)
	}
	if report == nil {
		fmt.Println("No report to publish")
		return nil
	}

	if report.Published && !publishForce {
		fmt.Printf("Report %s already published (use --force to republish)\n", report.ID)
		return nil
	}

	pub, err := publisher.New(cfg.MQTT, cfg.HomeAssistant, logger)
	if err != nil {
		return fmt.Errorf("creating publisher: %w", err)
	}
	defer pub.Close()

	fmt.Printf("Publishing report %s (%d years, %d seasons)...\n", report.ID, len(report.Yearly), len(report.Seasonal))

	sent, err := pub.PublishReport(report)
	if err != nil {
		fmt.Printf("⚠ Published %d messages with errors\n", sent)
		return fmt.Errorf("publishing report: %w", err)
	}

	if err := db.MarkPublished(report.ID); err != nil {
		fmt.Printf("Warning: Failed to mark report as published: %v\n", err)
	}

	fmt.Printf("✓ Published %d messages\n", sent)
	return nil
}

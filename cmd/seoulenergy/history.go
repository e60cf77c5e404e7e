package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/jgoulah/seoulenergy/pkg/models"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List archived reports",
	Long:  `Displays every report stored in the archive, newest first.`,
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

var showCmd = &cobra.Command{
	Use:   "show [report-id]",
	Short: "Show an archived report",
	Long:  `Prints the yearly and seasonal aggregates of a report (the latest one if no ID is given).`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(showCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	reports, err := db.ListReports()
	if err != nil {
		return fmt.Errorf("listing reports: %w", err)
	}

	if len(reports) == 0 {
		fmt.Println("No reports found")
		return nil
	}

	fmt.Println("------------------------------------------------------------------------------")
	fmt.Printf("%-36s  %-20s  %-17s  %6s  %s\n", "ID", "Created", "Range", "Rows", "Published")
	fmt.Println("------------------------------------------------------------------------------")
	for _, r := range reports {
		published := ""
		if r.Published {
			published = "✓"
		}
		fmt.Printf("%-36s  %-20s  %-17s  %6d  %s\n",
			r.ID, r.CreatedAt.Local().Format("2006-01-02 15:04:05"), r.Start.String()+"-"+r.End.String(), r.RowCount, published)
	}
	fmt.Println("------------------------------------------------------------------------------")
	fmt.Printf("Total: %d reports\n", len(reports))

	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	var report *models.Report
	if len(args) == 1 {
		report, err = db.GetReport(args[0])
	} else {
		report, err = db.LatestReport()
	}
	if err != nil {
		return fmt.Errorf("loading report: %w", err)
	}
	if report == nil {
		return fmt.Errorf("report not found")
	}

	fmt.Printf("Report %s (%s through %s, %d rows)\n", report.ID, report.Start, report.End, report.RowCount)
	printReport(report)
	return nil
}

// printReport writes both aggregates as plain tables
func printReport(r *models.Report) {
	fmt.Println("\nYearly Usage:")
	fmt.Println("----------------------------------------------------------------------------")
	fmt.Printf("%-6s  %13s  %13s  %13s  %13s  %15s\n", "Year", "EUS", "GUS", "WUS", "HUS", "Total")
	fmt.Println("----------------------------------------------------------------------------")
	for _, y := range r.Yearly {
		fmt.Printf("%-6d  %13s  %13s  %13s  %13s  %15s\n", y.Year,
			usage(y.EUS), usage(y.GUS), usage(y.WUS), usage(y.HUS), usage(y.Total))
	}

	fmt.Println("\nSeasonal Average Gas Usage:")
	fmt.Println("----------------------------------------")
	fmt.Printf("%-8s  %15s  %6s\n", "Season", "Average GUS", "Rows")
	fmt.Println("----------------------------------------")
	for _, s := range r.Seasonal {
		fmt.Printf("%-8s  %15s  %6d\n", s.Season.English(), usage(s.AvgGUS), s.Count)
	}
	fmt.Println()
}

func usage(v float64) string {
	return humanize.CommafWithDigits(v, 2)
}

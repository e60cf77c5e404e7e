package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jgoulah/seoulenergy/internal/config"
	"github.com/jgoulah/seoulenergy/internal/database"
	"github.com/jgoulah/seoulenergy/internal/log"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	dbPath  string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "seoulenergy",
	Short: "Collect and chart Seoul public energy usage statistics",
	Long: `SeoulEnergy pulls monthly energy usage summaries from the Seoul Open Data API,
keeps the personal (개인) category, and charts yearly total usage and
seasonal average gas usage. Results can be archived to a local SQLite
database, exported to Excel, and published to Home Assistant or MQTT.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "report archive file (default is ./reports.db)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log every request")
}

// getConfigPath returns the config file path
func getConfigPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return config.DefaultConfigPath()
}

// getDBPath returns the database file path (local directory)
func getDBPath() string {
	if dbPath != "" {
		return dbPath
	}
	return "reports.db"
}

// loadConfig loads and validates the configuration file
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(getConfigPath())
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// openDB opens the report archive
func openDB() (*database.DB, error) {
	path := getDBPath()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	return database.New(path)
}

// newLogger builds the process logger; --verbose enables debug output
func newLogger() *log.Logger {
	cfg := log.DefaultConfig()
	if verbose {
		cfg.Level = slog.LevelDebug
	}
	logger := log.New(cfg)
	log.SetDefault(logger)
	return logger
}

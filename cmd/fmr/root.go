package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"fmrdata/config"
)

const defaultSnapshotPath = "fmr_data.json"

var rootCmd = &cobra.Command{
	Use:   "fmr",
	Short: "Fetch, load and analyze HUD Fair Market Rent data",
	Long: `fmr is a pipeline for HUD Fair Market Rent data. It downloads FMR records
from the published spreadsheet or the HUD API, normalizes them into a flat
schema, exports a JSON snapshot, loads the snapshot into PostgreSQL, and
produces descriptive statistics with chart images.`,
	SilenceUsage: true,
}

// newLogger builds the process logger: JSON to stdout, matching how the rest
// of the output is consumed from cron runs.
func newLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)
	return logger
}

func loadConfig() (*config.Config, error) {
	return config.LoadConfig()
}

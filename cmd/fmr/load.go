package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"fmrdata/internal/database"
	"fmrdata/internal/exporter"
)

var loadInput string

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load a JSON snapshot into PostgreSQL",
	Long: `Reads the snapshot written by a fetch command and inserts its records into
the areas and rents tables inside a single transaction. On any failure the
whole batch is rolled back. After a successful commit the command verifies
row counts and prints the two-bedroom rent statistics recomputed in SQL;
these must match the statistics embedded in the snapshot.`,
	RunE: runLoad,
}

func init() {
	loadCmd.Flags().StringVar(&loadInput, "input", defaultSnapshotPath, "snapshot to load")
	rootCmd.AddCommand(loadCmd)
}

func runLoad(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	snapshot, err := exporter.Read(loadInput)
	if err != nil {
		return err
	}
	logger.WithField("areas", len(snapshot.Areas)).
		WithField("path", loadInput).Info("Snapshot read")

	db, err := database.Open(cfg.DatabaseDSN(), logger)
	if err != nil {
		return err
	}
	defer db.Close()

	result, err := db.LoadSnapshot(snapshot)
	if err != nil {
		return err
	}

	if err := db.Verify(snapshot); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Inserted %d areas and %d rent rows\n", result.AreasInserted, result.RentsInserted)

	summary, err := db.TwoBedroomSummary()
	if err != nil {
		return err
	}
	if summary.Min == nil {
		fmt.Fprintln(out, "No positive two-bedroom rents stored.")
		return nil
	}
	fmt.Fprintf(out, "2-bedroom rent (stored): min $%d, max $%d, mean $%.2f\n",
		*summary.Min, *summary.Max, *summary.Avg)

	if embedded := snapshot.Metadata.TwoBedroomStats; embedded != nil {
		fmt.Fprintf(out, "2-bedroom rent (snapshot): min $%d, max $%d, mean $%.2f\n",
			embedded.Min, embedded.Max, embedded.Mean)
	}
	return nil
}

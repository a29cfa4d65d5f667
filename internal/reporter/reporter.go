// Package reporter prints the descriptive statistics report and renders the
// chart artifacts. It consumes the canonical record sequence and writes only
// to the terminal and to image files; nothing downstream depends on it.
package reporter

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"fmrdata/internal/models"
	"fmrdata/internal/stats"
)

// PrintReport writes the full statistics report for a record sequence:
// two-bedroom summary, the most and least expensive areas, and the top ten
// studio to three-bedroom rent spreads.
func PrintReport(w io.Writer, records []models.AreaRecord) {
	fmt.Fprintf(w, "Total areas: %d\n", len(records))

	summary := stats.Summarize(stats.TwoBedroomRents(records))
	if summary == nil {
		fmt.Fprintln(w, "No positive two-bedroom rents reported.")
		return
	}

	fmt.Fprintln(w, "\n2-Bedroom Rent Statistics:")
	fmt.Fprintf(w, "  Minimum: $%d\n", summary.Min)
	fmt.Fprintf(w, "  Maximum: $%d\n", summary.Max)
	fmt.Fprintf(w, "  Average: $%.0f\n", summary.Mean)
	fmt.Fprintf(w, "  Median:  $%.0f\n", summary.Median)

	if most := stats.MostExpensive(records); most != nil {
		fmt.Fprintf(w, "\nMost expensive 2-bedroom area:\n  %s (%s): $%d\n",
			most.Name, most.State, *most.TwoBedroomRent)
	}
	if least := stats.LeastExpensive(records); least != nil {
		fmt.Fprintf(w, "\nLeast expensive 2-bedroom area:\n  %s (%s): $%d\n",
			least.Name, least.State, *least.TwoBedroomRent)
	}

	printTopDifferences(w, records)
}

// printTopDifferences renders the ten largest studio to three-bedroom rent
// spreads, then the spread summary lines.
func printTopDifferences(w io.Writer, records []models.AreaRecord) {
	diffs := stats.AllDifferences(records)
	if len(diffs) == 0 {
		return
	}

	fmt.Fprintln(w, "\nTop 10 largest studio to 3-bedroom rent differences:")

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"#", "Area", "State", "Studio", "3-BR", "Difference", "Ratio"})

	top := diffs
	if len(top) > 10 {
		top = top[:10]
	}
	for i, d := range top {
		t.AppendRow(table.Row{
			i + 1,
			d.Record.Name,
			d.Record.State,
			fmt.Sprintf("$%d", d.Studio),
			fmt.Sprintf("$%d", d.ThreeBR),
			fmt.Sprintf("$%d", d.Difference),
			fmt.Sprintf("%.1fx", d.Ratio),
		})
	}
	t.Render()

	var sumDiff int
	var sumRatio float64
	for _, d := range diffs {
		sumDiff += d.Difference
		sumRatio += d.Ratio
	}
	n := float64(len(diffs))
	fmt.Fprintf(w, "\nAverage difference: $%.0f\n", float64(sumDiff)/n)
	fmt.Fprintf(w, "Median difference:  $%.0f\n", medianDifference(diffs))
	fmt.Fprintf(w, "Average ratio (3-BR/studio): %.1fx\n", sumRatio/n)
}

// medianDifference works on the already-sorted (descending) difference list.
func medianDifference(diffs []stats.Difference) float64 {
	n := len(diffs)
	if n%2 == 1 {
		return float64(diffs[n/2].Difference)
	}
	return float64(diffs[n/2-1].Difference+diffs[n/2].Difference) / 2
}

package reporter

import (
	"fmt"
	"os"

	"github.com/wcharczuk/go-chart/v2"

	"fmrdata/internal/models"
	"fmrdata/internal/stats"
)

const histogramBins = 50

// RenderHistogram writes the two-bedroom rent distribution as a PNG bar
// chart. Absent and non-positive values are excluded, matching the report
// statistics.
func RenderHistogram(records []models.AreaRecord, path string) error {
	values := stats.Positive(stats.TwoBedroomRents(records))
	if len(values) == 0 {
		return fmt.Errorf("no positive two-bedroom rents to chart")
	}

	summary := stats.Summarize(stats.TwoBedroomRents(records))

	min, max := values[0], values[0]
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	bins := histogramBins
	if max == min {
		bins = 1
	}
	width := float64(max-min) / float64(bins)
	if width == 0 {
		width = 1
	}

	counts := make([]int, bins)
	for _, v := range values {
		idx := int(float64(v-min) / width)
		if idx >= bins {
			idx = bins - 1
		}
		counts[idx]++
	}

	bars := make([]chart.Value, bins)
	for i, c := range counts {
		label := ""
		// Label every tenth bin with its lower bound to keep the axis legible.
		if i%10 == 0 {
			label = fmt.Sprintf("$%.0f", float64(min)+float64(i)*width)
		}
		bars[i] = chart.Value{Value: float64(c), Label: label}
	}

	graph := chart.BarChart{
		Title: fmt.Sprintf("Distribution of 2-Bedroom Fair Market Rents (mean $%.0f, median $%.0f)",
			summary.Mean, summary.Median),
		Width:    1200,
		Height:   600,
		BarWidth: 14,
		Bars:     bars,
	}

	return renderPNG(path, func(f *os.File) error {
		return graph.Render(chart.PNG, f)
	})
}

// RenderScatter writes the studio vs two-bedroom rent scatter PNG with an
// equal-rent reference line. The Pearson correlation over the plotted points
// is annotated in the title.
func RenderScatter(records []models.AreaRecord, path string) error {
	var xs, ys []float64
	for _, r := range records {
		if r.StudioRent == nil || *r.StudioRent <= 0 {
			continue
		}
		if r.TwoBedroomRent == nil || *r.TwoBedroomRent <= 0 {
			continue
		}
		xs = append(xs, float64(*r.StudioRent))
		ys = append(ys, float64(*r.TwoBedroomRent))
	}
	if len(xs) == 0 {
		return fmt.Errorf("no rows with positive studio and two-bedroom rents to chart")
	}

	lo, hi := xs[0], xs[0]
	for i := range xs {
		for _, v := range []float64{xs[i], ys[i]} {
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
	}

	graph := chart.Chart{
		Title:  fmt.Sprintf("Studio vs 2-Bedroom Fair Market Rents (correlation %.3f)", stats.Pearson(xs, ys)),
		Width:  1000,
		Height: 800,
		XAxis:  chart.XAxis{Name: "Studio Rent ($)"},
		YAxis:  chart.YAxis{Name: "2-Bedroom Rent ($)"},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name: "Areas",
				Style: chart.Style{
					StrokeWidth: chart.Disabled,
					DotWidth:    3,
					DotColor:    chart.ColorAlternateBlue,
				},
				XValues: xs,
				YValues: ys,
			},
			chart.ContinuousSeries{
				Name: "Equal Rent Line",
				Style: chart.Style{
					StrokeWidth:     1,
					StrokeColor:     chart.ColorBlack,
					StrokeDashArray: []float64{5, 5},
				},
				XValues: []float64{lo, hi},
				YValues: []float64{lo, hi},
			},
		},
	}

	return renderPNG(path, func(f *os.File) error {
		return graph.Render(chart.PNG, f)
	})
}

func renderPNG(path string, render func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := render(f); err != nil {
		return fmt.Errorf("rendering %s: %w", path, err)
	}
	return nil
}

// Package stats holds the descriptive statistics shared by the exporter and
// the reporter. Every function applies the same exclusion rule: a value
// participates only when it is present (non-nil) AND strictly positive, so a
// reported zero and a missing value are both left out.
package stats

import (
	"math"
	"sort"

	"fmrdata/internal/models"
)

// Summary is min/max/mean/median over the qualifying values.
type Summary struct {
	Count  int
	Min    int
	Max    int
	Mean   float64
	Median float64
}

// Positive filters a column of optional rents down to the values that are
// present and strictly positive.
func Positive(values []*int) []int {
	out := make([]int, 0, len(values))
	for _, v := range values {
		if v != nil && *v > 0 {
			out = append(out, *v)
		}
	}
	return out
}

// Summarize computes a Summary over the present-and-positive subset of
// values. Returns nil when no value qualifies.
func Summarize(values []*int) *Summary {
	qualifying := Positive(values)
	if len(qualifying) == 0 {
		return nil
	}

	sort.Ints(qualifying)
	sum := 0
	for _, v := range qualifying {
		sum += v
	}

	return &Summary{
		Count:  len(qualifying),
		Min:    qualifying[0],
		Max:    qualifying[len(qualifying)-1],
		Mean:   float64(sum) / float64(len(qualifying)),
		Median: medianSorted(qualifying),
	}
}

func medianSorted(sorted []int) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return float64(sorted[n/2])
	}
	return float64(sorted[n/2-1]+sorted[n/2]) / 2
}

// TwoBedroomRents extracts the two-bedroom column from a record sequence.
func TwoBedroomRents(records []models.AreaRecord) []*int {
	values := make([]*int, len(records))
	for i := range records {
		values[i] = records[i].TwoBedroomRent
	}
	return values
}

// MostExpensive returns the record with the highest two-bedroom rent.
// Unlike the positive-only statistics, zero values are eligible here; only
// records with no reported two-bedroom rent are skipped. Returns nil when no
// record reports one.
func MostExpensive(records []models.AreaRecord) *models.AreaRecord {
	var best *models.AreaRecord
	for i := range records {
		r := &records[i]
		if r.TwoBedroomRent == nil {
			continue
		}
		if best == nil || *r.TwoBedroomRent > *best.TwoBedroomRent {
			best = r
		}
	}
	return best
}

// LeastExpensive returns the record with the lowest strictly positive
// two-bedroom rent, or nil when none qualifies.
func LeastExpensive(records []models.AreaRecord) *models.AreaRecord {
	var best *models.AreaRecord
	for i := range records {
		r := &records[i]
		if r.TwoBedroomRent == nil || *r.TwoBedroomRent <= 0 {
			continue
		}
		if best == nil || *r.TwoBedroomRent < *best.TwoBedroomRent {
			best = r
		}
	}
	return best
}

// Difference is one area's studio to three-bedroom rent spread.
type Difference struct {
	Record     models.AreaRecord
	Studio     int
	ThreeBR    int
	Difference int
	Ratio      float64
}

// TopDifferences ranks areas by (three-bedroom - studio) rent difference,
// largest first, over records where both values are present and strictly
// positive. At most n entries are returned.
func TopDifferences(records []models.AreaRecord, n int) []Difference {
	diffs := AllDifferences(records)
	if len(diffs) > n {
		diffs = diffs[:n]
	}
	return diffs
}

// AllDifferences returns every qualifying studio/three-bedroom spread sorted
// by absolute difference, largest first.
func AllDifferences(records []models.AreaRecord) []Difference {
	diffs := make([]Difference, 0, len(records))
	for _, r := range records {
		if r.StudioRent == nil || *r.StudioRent <= 0 {
			continue
		}
		if r.ThreeBedroomRent == nil || *r.ThreeBedroomRent <= 0 {
			continue
		}
		diffs = append(diffs, Difference{
			Record:     r,
			Studio:     *r.StudioRent,
			ThreeBR:    *r.ThreeBedroomRent,
			Difference: *r.ThreeBedroomRent - *r.StudioRent,
			Ratio:      float64(*r.ThreeBedroomRent) / float64(*r.StudioRent),
		})
	}
	sort.SliceStable(diffs, func(i, j int) bool {
		return diffs[i].Difference > diffs[j].Difference
	})
	return diffs
}

// Pearson computes the Pearson correlation coefficient between two columns of
// equal length. Returns 0 when either column has no variance or fewer than
// two points.
func Pearson(xs, ys []float64) float64 {
	n := len(xs)
	if n < 2 || n != len(ys) {
		return 0
	}

	var sumX, sumY float64
	for i := 0; i < n; i++ {
		sumX += xs[i]
		sumY += ys[i]
	}
	meanX := sumX / float64(n)
	meanY := sumY / float64(n)

	var cov, varX, varY float64
	for i := 0; i < n; i++ {
		dx := xs[i] - meanX
		dy := ys[i] - meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 || varY == 0 {
		return 0
	}
	return cov / math.Sqrt(varX*varY)
}

package hud

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"fmrdata/internal/models"
)

// DownloadError reports a failed bulk spreadsheet fetch: a non-2xx response
// or a payload that does not parse as a workbook. The bulk variant is
// all-or-nothing, so a DownloadError means no records at all.
type DownloadError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *DownloadError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("downloading %s: HTTP %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("downloading %s: %v", e.URL, e.Err)
}

func (e *DownloadError) Unwrap() error {
	return e.Err
}

// SpreadsheetURL returns the published spreadsheet location for a fiscal
// year, e.g. .../fmr2024/FY24_FMRs.xlsx for 2024.
func SpreadsheetURL(year int) string {
	return fmt.Sprintf("https://www.huduser.gov/portal/datasets/fmr/fmr%d/FY%02d_FMRs.xlsx", year, year%100)
}

// FetchSpreadsheet downloads the bulk FMR workbook and parses its first sheet
// into raw records keyed by the lowercased header row. The request carries no
// client timeout; the file is large and the call either completes or the run
// is killed externally.
func FetchSpreadsheet(url string, logger *logrus.Logger) ([]models.RawRecord, error) {
	logger.WithField("url", url).Info("Downloading FMR spreadsheet")

	resp, err := http.Get(url)
	if err != nil {
		return nil, &DownloadError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &DownloadError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &DownloadError{URL: url, Err: err}
	}

	records, err := parseWorkbook(body)
	if err != nil {
		return nil, &DownloadError{URL: url, Err: err}
	}

	logger.WithField("records", len(records)).Info("Parsed spreadsheet records")
	return records, nil
}

func parseWorkbook(payload []byte) ([]models.RawRecord, error) {
	book, err := excelize.OpenReader(bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("parsing workbook: %w", err)
	}
	defer book.Close()

	sheets := book.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := book.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheets[0], err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("sheet %q has no data rows", sheets[0])
	}

	header := make([]string, len(rows[0]))
	for i, cell := range rows[0] {
		header[i] = strings.ToLower(strings.TrimSpace(cell))
	}

	records := make([]models.RawRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(models.RawRecord, len(header))
		for i, cell := range row {
			if i >= len(header) || header[i] == "" {
				continue
			}
			if cell == "" {
				continue
			}
			rec[header[i]] = cell
		}
		if len(rec) == 0 {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

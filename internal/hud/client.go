// Package hud fetches Fair Market Rent data from HUD, either through the
// paginated REST API or the published spreadsheet.
package hud

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"

	"fmrdata/internal/models"
)

// DefaultBaseURL is the public HUD FMR API root.
const DefaultBaseURL = "https://www.huduser.gov/hudapi/public/fmr"

// ClientConfig carries the settings for the paginated API client. It is
// constructed at startup and passed in explicitly; the package keeps no
// process-wide state.
type ClientConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Client talks to the HUD FMR API with bearer-token authentication and a
// per-call timeout.
type Client struct {
	rest   *resty.Client
	logger *logrus.Logger
}

// NewClient builds an API client from an explicit configuration.
func NewClient(cfg ClientConfig, logger *logrus.Logger) *Client {
	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	rest := resty.New().
		SetBaseURL(base).
		SetTimeout(timeout).
		SetAuthToken(cfg.APIKey).
		SetHeader("Accept", "application/json")

	return &Client{rest: rest, logger: logger}
}

// State is one jurisdiction entry from the listStates endpoint.
type State struct {
	StateName string `json:"state_name"`
	StateCode string `json:"state_code"`
	StateNum  string `json:"state_num"`
}

// ListStates enumerates every jurisdiction known to the API.
func (c *Client) ListStates(ctx context.Context) ([]State, error) {
	var states []State
	resp, err := c.rest.R().
		SetContext(ctx).
		SetResult(&states).
		Get("/listStates")
	if err != nil {
		return nil, fmt.Errorf("listing states: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("listing states: HTTP %d: %s", resp.StatusCode(), resp.String())
	}
	return states, nil
}

// stateDataResponse mirrors the statedata payload: two nested groups of
// loosely-typed records. json.RawMessage defers decoding so each entry can be
// flattened with numbers kept as strings.
type stateDataResponse struct {
	Data struct {
		MetroAreas []json.RawMessage `json:"metroareas"`
		Counties   []json.RawMessage `json:"counties"`
	} `json:"data"`
}

// FetchYear pulls FMR records for every state for the given year. A failed
// state is logged and skipped so a single flaky jurisdiction does not lose
// the whole run; partial results are acceptable for this variant.
func (c *Client) FetchYear(ctx context.Context, year int) ([]models.RawRecord, error) {
	states, err := c.ListStates(ctx)
	if err != nil {
		return nil, err
	}
	c.logger.WithField("states", len(states)).Info("Enumerated jurisdictions")

	var records []models.RawRecord
	for _, state := range states {
		stateRecords, err := c.fetchState(ctx, state.StateCode, year)
		if err != nil {
			c.logger.WithError(err).WithField("state", state.StateCode).
				Warn("Skipping state after fetch failure")
			continue
		}
		records = append(records, stateRecords...)
	}

	c.logger.WithFields(logrus.Fields{
		"records": len(records),
		"year":    year,
	}).Info("Fetched FMR records from API")
	return records, nil
}

func (c *Client) fetchState(ctx context.Context, code string, year int) ([]models.RawRecord, error) {
	var payload stateDataResponse
	resp, err := c.rest.R().
		SetContext(ctx).
		SetQueryParam("year", fmt.Sprintf("%d", year)).
		SetResult(&payload).
		Get(fmt.Sprintf("/statedata/%s", code))
	if err != nil {
		return nil, fmt.Errorf("fetching state %s: %w", code, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetching state %s: HTTP %d", code, resp.StatusCode())
	}

	records := make([]models.RawRecord, 0, len(payload.Data.MetroAreas)+len(payload.Data.Counties))
	for _, group := range [][]json.RawMessage{payload.Data.MetroAreas, payload.Data.Counties} {
		for _, entry := range group {
			rec, err := flattenEntry(entry)
			if err != nil {
				return nil, fmt.Errorf("decoding record for state %s: %w", code, err)
			}
			records = append(records, rec)
		}
	}
	return records, nil
}

// flattenEntry turns one API object into a RawRecord, keeping numbers in
// their string form so the normalizer owns all coercion.
func flattenEntry(entry json.RawMessage) (models.RawRecord, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(entry, &fields); err != nil {
		return nil, err
	}

	rec := make(models.RawRecord, len(fields))
	for name, raw := range fields {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			rec[name] = s
			continue
		}
		var n json.Number
		if err := json.Unmarshal(raw, &n); err == nil {
			rec[name] = n.String()
			continue
		}
		// Nested values (small-area FMR breakdowns) are not part of the
		// canonical schema; leave them out of the flat record.
	}
	return rec, nil
}

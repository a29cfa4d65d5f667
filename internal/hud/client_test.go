package hud

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/listStates", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[
			{"state_name":"California","state_code":"CA","state_num":"6"},
			{"state_name":"Kansas","state_code":"KS","state_num":"20"},
			{"state_name":"Texas","state_code":"TX","state_num":"48"}
		]`)
	})
	mux.HandleFunc("/statedata/CA", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "2024", r.URL.Query().Get("year"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"data":{
			"metroareas":[
				{"metro_name":"Los Angeles-Long Beach","code":"METRO31080","statecode":"CA","statename":"California",
				 "Efficiency":1534,"One-Bedroom":1747,"Two-Bedroom":2222,"Three-Bedroom":2924,"Four-Bedroom":3153}
			],
			"counties":[
				{"county_name":"Modoc County","town_name":"","statecode":"CA","statename":"California",
				 "Efficiency":700,"One-Bedroom":704,"Two-Bedroom":927,"Three-Bedroom":1316,"Four-Bedroom":1585}
			]
		}}`)
	})
	// Kansas is down; the fetch must log and move on.
	mux.HandleFunc("/statedata/KS", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream error", http.StatusInternalServerError)
	})
	mux.HandleFunc("/statedata/TX", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"data":{
			"metroareas":[],
			"counties":[
				{"county_name":"Loving County","statecode":"TX","statename":"Texas",
				 "Efficiency":600,"One-Bedroom":650,"Two-Bedroom":800,"Three-Bedroom":1100,"Four-Bedroom":1200}
			]
		}}`)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestListStates(t *testing.T) {
	server := newTestServer(t)
	client := NewClient(ClientConfig{BaseURL: server.URL, APIKey: "test-key"}, testLogger())

	states, err := client.ListStates(context.Background())
	require.NoError(t, err)
	require.Len(t, states, 3)
	assert.Equal(t, "CA", states[0].StateCode)
	assert.Equal(t, "California", states[0].StateName)
}

func TestFetchYear_FlattensGroupsAndSkipsFailedStates(t *testing.T) {
	server := newTestServer(t)
	client := NewClient(ClientConfig{BaseURL: server.URL, APIKey: "test-key"}, testLogger())

	records, err := client.FetchYear(context.Background(), 2024)
	require.NoError(t, err)

	// CA contributes 2 records (one metro, one county), KS fails and is
	// skipped, TX contributes 1. Partial results are the contract here.
	require.Len(t, records, 3)

	metro := records[0]
	assert.Equal(t, "Los Angeles-Long Beach", metro["metro_name"])
	// Numbers arrive as strings; coercion belongs to the normalizer.
	assert.Equal(t, "2222", metro["Two-Bedroom"])

	county := records[1]
	assert.Equal(t, "Modoc County", county["county_name"])
	assert.Equal(t, "927", county["Two-Bedroom"])

	tx := records[2]
	assert.Equal(t, "Loving County", tx["county_name"])
}

func TestFetchYear_ListStatesFailureIsFatal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, APIKey: "test-key"}, testLogger())

	// Unlike a single state, failing to enumerate jurisdictions means there
	// is nothing to iterate; the run fails outright.
	_, err := client.FetchYear(context.Background(), 2024)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listing states")
}

func TestClient_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[]`)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		BaseURL: server.URL,
		APIKey:  "test-key",
		Timeout: 20 * time.Millisecond,
	}, testLogger())

	_, err := client.ListStates(context.Background())
	assert.Error(t, err)
}

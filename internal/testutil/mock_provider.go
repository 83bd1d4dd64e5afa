// Package testutil provides testing utilities for the flight proxy.
package testutil

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"time"
)

// MockResponse defines the behavior of the mock provider for one flight
// identifier.
type MockResponse struct {
	StatusCode int
	Body       string
	Delay      time.Duration
}

// MockProvider is a configurable fake of the flight-data provider for
// tests. By default it answers every query with an empty data list.
type MockProvider struct {
	server    *httptest.Server
	mu        sync.RWMutex
	responses map[string]MockResponse

	// Tracking
	RequestCount int
	LastQuery    url.Values
}

// NewMockProvider creates a mock provider server.
func NewMockProvider() *MockProvider {
	mock := &MockProvider{
		responses: make(map[string]MockResponse),
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mock.mu.Lock()
		mock.RequestCount++
		mock.LastQuery = r.URL.Query()
		resp, ok := mock.responses[r.URL.Query().Get("flight_icao")]
		mock.mu.Unlock()

		if !ok {
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"data": []}`)
			return
		}

		if resp.Delay > 0 {
			time.Sleep(resp.Delay)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(resp.StatusCode)
		fmt.Fprint(w, resp.Body)
	}))

	return mock
}

// Respond configures the response for one flight identifier.
func (m *MockProvider) Respond(identifier string, resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[identifier] = resp
}

// URL returns the mock server URL.
func (m *MockProvider) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockProvider) Close() {
	m.server.Close()
}

// Requests returns how many queries the provider has received.
func (m *MockProvider) Requests() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.RequestCount
}

// SampleRecord is a well-formed provider record usable across tests.
const SampleRecord = `{
	"flight": {"number": "AA123"},
	"airline": {"name": "American Airlines"},
	"departure": {
		"airport": "JFK",
		"scheduled": "2025-01-04T10:00:00Z",
		"gate": "A1",
		"terminal": "T1",
		"delay": 15
	},
	"arrival": {
		"airport": "LAX",
		"scheduled": "2025-01-04T13:00:00Z"
	},
	"flight_status": "active",
	"live": {
		"updated": "2025-01-04T11:00:00Z",
		"latitude": 40.7128,
		"longitude": -74.0060,
		"altitude": 35000,
		"direction": 270,
		"speed_horizontal": 500,
		"speed_vertical": 0
	}
}`

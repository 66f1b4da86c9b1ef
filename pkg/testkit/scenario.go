// Package testkit runs JSON-described HTTP scenarios against a handler and
// provides testify-backed doubles for copshop's outbound collaborators.
//
// A scenario file describes one request and what must come back:
//
//	{
//	  "name": "unknown user gets an empty token",
//	  "requestMethod": "GET",
//	  "requestUrl": "/jwt?email=ghost@shop.test",
//	  "expectedCode": 403,
//	  "expectedBody": {"accessToken": ""}
//	}
//
// Bodies may be inline (requestBody, expectedBody) or live in sibling files
// (requestFileName, responseFileName):
//
//	func TestAPI(t *testing.T) {
//	    testkit.RunDir(t, app.New(gw, nil, signer, proc).Handler(), "testdata")
//	}
package testkit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Scenario is a single HTTP test case loaded from a JSON file.
type Scenario struct {
	Name        string `json:"name"`
	Description string `json:"description"`

	RequestMethod   string            `json:"requestMethod"`
	RequestURL      string            `json:"requestUrl"`
	RequestBody     json.RawMessage   `json:"requestBody"`
	RequestFileName string            `json:"requestFileName"`
	Headers         map[string]string `json:"headers"`

	ExpectedCode     int             `json:"expectedCode"`
	ExpectedBody     json.RawMessage `json:"expectedBody"`
	ResponseFileName string          `json:"responseFileName"`

	dir string
}

// LoadScenario reads and validates a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("testkit: resolve path %q: %w", path, err)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("testkit: read %q: %w", abs, err)
	}

	var s Scenario
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("testkit: parse %q: %w", abs, err)
	}
	if s.Name == "" {
		s.Name = filepath.Base(abs)
	}
	if s.RequestURL == "" {
		return nil, fmt.Errorf("testkit: %q: requestUrl is required", abs)
	}
	if s.ExpectedCode == 0 {
		return nil, fmt.Errorf("testkit: %q: expectedCode is required", abs)
	}
	s.dir = filepath.Dir(abs)
	return &s, nil
}

// RequestPayload returns the request body, reading requestFileName when no
// inline body is given. It returns nil for body-less requests.
func (s *Scenario) RequestPayload() ([]byte, error) {
	return s.payload(s.RequestBody, s.RequestFileName)
}

// ExpectedPayload returns the expected response body, or nil when the
// scenario only checks the status.
func (s *Scenario) ExpectedPayload() ([]byte, error) {
	return s.payload(s.ExpectedBody, s.ResponseFileName)
}

func (s *Scenario) payload(inline json.RawMessage, file string) ([]byte, error) {
	if len(inline) > 0 {
		return inline, nil
	}
	if file == "" {
		return nil, nil
	}
	if !filepath.IsAbs(file) {
		file = filepath.Join(s.dir, file)
	}
	return os.ReadFile(file)
}

package testkit

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
)

// Run executes the scenario at path against handler as a subtest.
func Run(t *testing.T, handler http.Handler, path string) {
	t.Helper()

	s, err := LoadScenario(path)
	if err != nil {
		t.Fatalf("testkit: load scenario %q: %v", path, err)
	}
	t.Run(s.Name, func(t *testing.T) {
		RunScenario(t, handler, s)
	})
}

// RunDir runs every *.json scenario in dir. Files named *_req.json or
// *_res.json are bodies, not scenarios.
func RunDir(t *testing.T, handler http.Handler, dir string) {
	t.Helper()

	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		t.Fatalf("testkit: glob %q: %v", dir, err)
	}

	ran := 0
	for _, path := range paths {
		if isBodyFile(path) {
			continue
		}
		s, err := LoadScenario(path)
		if err != nil {
			t.Errorf("testkit: load %q: %v", path, err)
			continue
		}
		ran++
		t.Run(s.Name, func(t *testing.T) {
			RunScenario(t, handler, s)
		})
	}
	if ran == 0 {
		t.Fatalf("testkit: no scenario files found in %q", dir)
	}
}

// RunScenario fires s at handler and asserts the status and, when given,
// the JSON body.
func RunScenario(t *testing.T, handler http.Handler, s *Scenario) {
	t.Helper()

	payload, err := s.RequestPayload()
	if err != nil {
		t.Fatalf("[%s] read request body: %v", s.Name, err)
	}
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	method := strings.ToUpper(s.RequestMethod)
	if method == "" {
		method = http.MethodGet
	}
	req := httptest.NewRequest(method, s.RequestURL, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range s.Headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	AssertStatusCode(t, s, rec.Code)

	expected, err := s.ExpectedPayload()
	if err != nil {
		t.Errorf("[%s] read expected body: %v", s.Name, err)
		return
	}
	AssertJSONBody(t, s, expected, rec.Body.Bytes())
}

func isBodyFile(path string) bool {
	base := strings.TrimSuffix(filepath.Base(path), ".json")
	return strings.HasSuffix(base, "_req") || strings.HasSuffix(base, "_res")
}

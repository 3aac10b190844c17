// Package testutil provides shared test helpers for isolated workspaces, config files and a fake dictionary server.
package testutil

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// EnvKeys are the environment variables read by the config loader.
var EnvKeys = []string{
	"TERMWORDS_API_BASE_URL",
	"TERMWORDS_API_TIMEOUT",
	"TERMWORDS_DETAIL",
	"TERMWORDS_LIMIT",
	"TERMWORDS_COLOR",
}

// SetupTestWorkspace changes into a fresh directory, points HOME at it and unsets EnvKeys,
// so that no config file, .env file or variable of the developer leaks into a test.
// Returns the directory.
func SetupTestWorkspace(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()
	origDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tmpDir))
	t.Cleanup(func() { _ = os.Chdir(origDir) })
	t.Setenv("HOME", tmpDir)
	for _, key := range EnvKeys {
		// Setenv registers the restore, Unsetenv makes the variable absent rather than empty.
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	return tmpDir
}

// ConfigOption configures optional fields when creating a config file.
type ConfigOption func(*testConfig)

type testConfig struct {
	timeout string
	limit   int
	detail  bool
}

// WithTimeout sets api.timeout, e.g. "5s".
func WithTimeout(timeout string) ConfigOption {
	return func(cfg *testConfig) {
		cfg.timeout = timeout
	}
}

// WithLimit sets display.limit.
func WithLimit(limit int) ConfigOption {
	return func(cfg *testConfig) {
		cfg.limit = limit
	}
}

// WithDetail sets display.detail.
func WithDetail(detail bool) ConfigOption {
	return func(cfg *testConfig) {
		cfg.detail = detail
	}
}

// SetupTestConfig writes termwords.yml under tmpDir with api.base_url set to baseURL.
// Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string, baseURL string, opts ...ConfigOption) string {
	t.Helper()

	cfg := testConfig{
		timeout: "5s",
		limit:   3,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	configContent := fmt.Sprintf(`api:
  base_url: %s
  timeout: %s
display:
  limit: %d
  detail: %t
`, baseURL, cfg.timeout, cfg.limit, cfg.detail)

	cfgPath := filepath.Join(tmpDir, "termwords.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// DictionaryPath is the path prefix the fake server serves entries under.
const DictionaryPath = "/api/v2/entries/en"

// DictionaryServer is a fake Free Dictionary API.
// Words missing from its responses are answered with 404, as the real API does.
type DictionaryServer struct {
	*httptest.Server

	mu       sync.Mutex
	requests []string
}

// NewDictionaryServer serves each body of responses under DictionaryPath/<word>.
// The server is closed when the test finishes.
func NewDictionaryServer(t *testing.T, responses map[string]string) *DictionaryServer {
	t.Helper()

	s := &DictionaryServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, r.URL.EscapedPath())
		s.mu.Unlock()

		dir, word := path.Split(r.URL.Path)
		if body, ok := responses[word]; ok && dir == DictionaryPath+"/" {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(body))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"title":"No Definitions Found","message":"Sorry pal, we couldn't find definitions for the word you were looking for."}`))
	}))
	t.Cleanup(s.Close)
	return s
}

// BaseURL returns the value to configure as api.base_url.
func (s *DictionaryServer) BaseURL() string {
	return s.URL + DictionaryPath
}

// Requests returns the escaped request paths received so far.
func (s *DictionaryServer) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requests...)
}

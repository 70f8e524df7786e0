package web

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sant0-9/cvgen/internal/llm"
	"github.com/sant0-9/cvgen/internal/profile"
)

var testDefaults = Defaults{Model: "jumbo", Temperature: 0.5}

// upstream is a fake completion API recording what it receives
type upstream struct {
	status int
	body   string
	hits   int
	path   string
	req    map[string]any
}

func (u *upstream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	u.hits++
	u.path = r.URL.Path
	raw, _ := io.ReadAll(r.Body)
	_ = json.Unmarshal(raw, &u.req)
	if u.status != 0 && u.status != http.StatusOK {
		w.WriteHeader(u.status)
		return
	}
	_, _ = w.Write([]byte(u.body))
}

func newTestGenerator(t *testing.T, u *upstream) *profile.Generator {
	t.Helper()
	srv := httptest.NewServer(u)
	t.Cleanup(srv.Close)

	provider := llm.NewJ1Provider("test-key", testDefaults.Model).WithBaseURL(srv.URL)
	return profile.NewGenerator(provider, testDefaults.Model)
}

func newTestHandler(t *testing.T, u *upstream) http.Handler {
	t.Helper()
	h, _, err := NewHandler(newTestGenerator(t, u), testDefaults)
	require.NoError(t, err)
	return h
}

package selfupdate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func releaseServer(t *testing.T, tag string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/anirudh/quizdeck/releases/latest" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"tag_name":"` + tag + `","html_url":"https://example.com/` + tag + `"}`))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name          string
		current       string
		latest        string
		wantAvailable bool
	}{
		{"newer release", "v1.0.0", "v2.0.0", true},
		{"same version", "v1.0.0", "v1.0.0", false},
		{"older release", "v2.0.0", "v1.0.0", false},
		{"patch bump", "v1.2.3", "v1.2.4", true},
		{"missing v prefix", "1.0.0", "v1.1.0", true},
		{"dev build", "(devel)", "v2.0.0", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := releaseServer(t, tt.latest)
			checker := NewChecker(WithBaseURL(server.URL))

			result, err := checker.Check(context.Background(), &CheckInput{Version: tt.current})
			require.NoError(t, err)
			assert.Equal(t, tt.current, result.CurrentVersion)
			assert.Equal(t, tt.latest, result.LatestVersion)
			assert.Equal(t, tt.wantAvailable, result.UpdateAvailable)
		})
	}
}

func TestCheckReleaseURL(t *testing.T) {
	server := releaseServer(t, "v3.1.0")
	checker := NewChecker(WithBaseURL(server.URL))

	result, err := checker.Check(context.Background(), &CheckInput{Version: "v3.0.0"})
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/v3.1.0", result.ReleaseURL)
}

func TestCheckAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	checker := NewChecker(WithBaseURL(server.URL))
	_, err := checker.Check(context.Background(), &CheckInput{Version: "v1.0.0"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 403")
}

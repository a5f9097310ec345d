package prereq

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestChecker(targetURL string, lookPathErr error) *Checker {
	c := NewChecker(Config{
		RunnerBin: "npx",
		TargetURL: targetURL,
	})
	c.lookPath = func(bin string) (string, error) {
		if lookPathErr != nil {
			return "", lookPathErr
		}
		return "/usr/bin/" + bin, nil
	}
	return c
}

func TestCheck_AllGood(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := newTestChecker(srv.URL, nil)
	assert.NoError(t, c.Check(context.Background()))
}

func TestCheck_ToolMissing(t *testing.T) {
	c := newTestChecker("http://localhost:1", errors.New("executable file not found"))

	err := c.Check(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found in PATH")
}

func TestCheck_TargetUnreachable(t *testing.T) {
	// Grab a port that nothing listens on.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := newTestChecker(url, nil)
	err := c.Check(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not reachable")
}

func TestCheck_TargetServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := newTestChecker(srv.URL, nil)
	err := c.Check(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestCheck_ClientErrorStatusStillReachable(t *testing.T) {
	// A 404 from the target still proves the environment answers HTTP.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := newTestChecker(srv.URL, nil)
	assert.NoError(t, c.Check(context.Background()))
}

func TestCheck_EmptyTargetURL(t *testing.T) {
	c := newTestChecker("", nil)
	err := c.Check(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/matzehuels/forcefield/pkg/errors"
)

func TestIsURL(t *testing.T) {
	tests := []struct {
		source string
		want   bool
	}{
		{"http://example.com/graph.json", true},
		{"https://example.com/graph.json", true},
		{"graph.json", false},
		{"/tmp/graph.json", false},
		{"ftp://example.com/graph.json", false},
	}
	for _, tt := range tests {
		if got := IsURL(tt.source); got != tt.want {
			t.Errorf("IsURL(%q) = %v, want %v", tt.source, got, tt.want)
		}
	}
}

func TestClientGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != userAgent {
			t.Errorf("User-Agent = %q, want %q", got, userAgent)
		}
		w.Write([]byte(`{"nodes":[],"links":[]}`))
	}))
	defer srv.Close()

	data, err := NewClient().Get(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if len(data) == 0 {
		t.Error("Get() returned empty body")
	}
}

func TestClientGetNotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := NewClient().Get(context.Background(), srv.URL)
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("expected not-found error, got %v", err)
	}
}

func TestClientGetClientError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := NewClient().Get(context.Background(), srv.URL)
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("expected invalid-input error, got %v", err)
	}
}

func TestRetryRecoversFromTransientFailure(t *testing.T) {
	calls := 0
	err := retry(context.Background(), 3, time.Millisecond, func() error {
		calls++
		if calls < 3 {
			return &retryableError{err: errors.New(errors.ErrCodeInternal, "flaky")}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("retry() error: %v", err)
	}
	if calls != 3 {
		t.Errorf("fn called %d times, want 3", calls)
	}
}

func TestRetryStopsOnPermanentError(t *testing.T) {
	calls := 0
	err := retry(context.Background(), 3, time.Millisecond, func() error {
		calls++
		return errors.New(errors.ErrCodeInvalidInput, "bad request")
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Errorf("fn called %d times, want 1", calls)
	}
}

func TestRetryHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := retry(ctx, 3, time.Minute, func() error {
		return &retryableError{err: errors.New(errors.ErrCodeInternal, "flaky")}
	})
	if err != context.Canceled {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

// Package fetch retrieves graph documents from remote HTTP sources.
//
// The render pipeline accepts URLs as well as local file paths. This package
// provides the HTTP side: a client with a request timeout, retry with
// exponential backoff on transient failures, and a response size cap matching
// the server's upload limit.
package fetch

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/matzehuels/forcefield/pkg/errors"
	"github.com/matzehuels/forcefield/pkg/httputil"
)

const (
	httpTimeout  = 10 * time.Second
	maxAttempts  = 3
	initialDelay = time.Second
	userAgent    = "forcefield"
)

// retryableError marks an error as transient so the retry loop attempts
// the request again.
type retryableError struct{ err error }

func (e *retryableError) Error() string { return e.err.Error() }
func (e *retryableError) Unwrap() error { return e.err }

// Client fetches remote documents with retries.
type Client struct {
	http *http.Client
}

// NewClient creates a Client with the standard request timeout.
func NewClient() *Client {
	return &Client{http: &http.Client{Timeout: httpTimeout}}
}

// IsURL reports whether source should be fetched over HTTP rather than read
// from the local filesystem.
func IsURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// Get retrieves the document at url. Network failures and 5xx responses are
// retried with exponential backoff; 404 maps to a not-found error and other
// statuses fail immediately.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	var data []byte
	err := retry(ctx, maxAttempts, initialDelay, func() error {
		var err error
		data, err = c.get(ctx, url)
		return err
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid source URL %q", url)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &retryableError{err: errors.Wrap(errors.ErrCodeInternal, err, "fetch %s", url)}
	}
	defer resp.Body.Close()

	if err := checkStatus(url, resp.StatusCode); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, httputil.MaxBodySize+1))
	if err != nil {
		return nil, &retryableError{err: errors.Wrap(errors.ErrCodeInternal, err, "read response from %s", url)}
	}
	if len(data) > httputil.MaxBodySize {
		return nil, errors.New(errors.ErrCodeInvalidInput, "response from %s exceeds %d bytes", url, httputil.MaxBodySize)
	}
	return data, nil
}

func checkStatus(url string, code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return errors.New(errors.ErrCodeNotFound, "no document at %s", url)
	case code >= 500:
		return &retryableError{err: errors.New(errors.ErrCodeInternal, "fetch %s: status %d", url, code)}
	default:
		return errors.New(errors.ErrCodeInvalidInput, "fetch %s: status %d", url, code)
	}
}

// retry executes fn up to attempts times with exponential backoff. Only
// errors wrapped in retryableError are retried; anything else is returned
// immediately. The delay doubles after each failed attempt.
func retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	attempts = max(attempts, 1)
	var lastErr error

	for i := range attempts {
		if err := fn(); err == nil {
			return nil
		} else if lastErr = err; !isRetryable(err) {
			return err
		}

		if i < attempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay *= 2
			}
		}
	}
	return fmt.Errorf("after %d attempts: %w", attempts, unwrapRetryable(lastErr))
}

func isRetryable(err error) bool {
	var re *retryableError
	return stderrors.As(err, &re)
}

func unwrapRetryable(err error) error {
	var re *retryableError
	if stderrors.As(err, &re) {
		return re.err
	}
	return err
}

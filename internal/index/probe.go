package index

import (
	"context"
	"io"
	"net/http"
	"time"
)

// DefaultFormURL is where the authoring server listens by default.
const DefaultFormURL = "http://127.0.0.1:8000/"

// DefaultProbeTimeout bounds the reachability check.
const DefaultProbeTimeout = time.Second

// Probe reports whether anything answers a GET at url within timeout.
// Any HTTP response counts as reachable, whatever its status; every error
// (refused, timeout, bad URL) means absent. Probe never fails.
func Probe(ctx context.Context, url string, timeout time.Duration) bool {
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false
	}

	client := &http.Client{
		Timeout: timeout,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	resp, err := client.Do(req)
	if err != nil {
		return false
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	_ = resp.Body.Close()
	return true
}

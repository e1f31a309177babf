package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// NewClient builds the http client shared by the adapters. A zero
// timeout means no per-request deadline, which is what the primary
// catalog fetch uses.
func NewClient(timeout time.Duration) *http.Client {
	tr := &http.Transport{
		IdleConnTimeout:    60 * time.Second,
		DisableCompression: true,
	}

	return &http.Client{
		Transport: tr,
		Timeout:   timeout,
	}
}

func get(ctx context.Context, cli *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	res, err := cli.Do(req)
	if err != nil {
		return nil, err
	}

	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, &StatusError{URL: url, Code: res.StatusCode}
	}

	return io.ReadAll(res.Body)
}

// StatusError reports a non-2xx response from a feed endpoint.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.Code, e.URL)
}

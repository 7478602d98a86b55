package registry

import (
	"context"
	"net/http"
	"time"
)

const userAgent = "nameclaim/0.1.0 (package-name-checker)"

// httpDoer is the slice of *http.Client the probes need.
type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

func getJSON(ctx context.Context, client httpDoer, url string, headers map[string]string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return client.Do(req)
}

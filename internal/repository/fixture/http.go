package fixture

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Getter issues GET requests. Both httpclient.Client and
// httpclient.CircuitBreakerClient satisfy it, so the HTTP source gets retries
// and circuit breaking from the caller's choice of client.
type Getter interface {
	Get(ctx context.Context, url string) (*http.Response, error)
}

// NewHTTPSource creates a catalog source fetching fixture files from a static
// HTTP host rooted at baseURL.
func NewHTTPSource(client Getter, baseURL string) *Source {
	return &Source{f: &httpFetcher{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
	}}
}

type httpFetcher struct {
	client  Getter
	baseURL string
}

func (h *httpFetcher) fetch(ctx context.Context, name string) ([]byte, error) {
	url := h.baseURL + "/" + name

	resp, err := h.client.Get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch fixture %s: %w", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch fixture %s: unexpected status %d", name, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", name, err)
	}
	return data, nil
}

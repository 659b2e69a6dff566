package assets

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"
)

// Loader reads the full asset collection once.
type Loader interface {
	LoadAssets(ctx context.Context) ([]Asset, error)
}

// LoaderFunc adapts a function to a Loader.
type LoaderFunc func(ctx context.Context) ([]Asset, error)

func (f LoaderFunc) LoadAssets(ctx context.Context) ([]Asset, error) { return f(ctx) }

// LoadError is the only error surfaced to the dashboard. Message is safe to
// show to a user; Err carries the underlying cause.
type LoadError struct {
	Message string
	Status  int // HTTP status when the source answered, else 0
	Err     error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *LoadError) Unwrap() error { return e.Err }

// Client fetches the asset collection from a static JSON endpoint.
// It holds no cache: every LoadAssets call is a fresh read.
type Client struct {
	URL    string // e.g. "http://127.0.0.1:8403/data/assets.json"
	client *http.Client
}

// NewClient creates a repository client for the given endpoint.
func NewClient(url string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		URL:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// LoadAssets performs a single GET against the source. Any transport,
// status or parse failure is returned as a *LoadError; there is no retry.
func (c *Client) LoadAssets(ctx context.Context) ([]Asset, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return nil, &LoadError{Message: "Invalid asset source", Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &LoadError{Message: "Asset source unreachable", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &LoadError{
			Message: "Failed to load assets",
			Status:  resp.StatusCode,
			Err:     fmt.Errorf("HTTP %d", resp.StatusCode),
		}
	}

	list, err := Decode(resp.Body)
	if err != nil {
		return nil, &LoadError{Message: "Asset payload could not be parsed", Status: resp.StatusCode, Err: err}
	}

	log.Printf("[assets] Loaded %d assets from %s", len(list), c.URL)
	return list, nil
}

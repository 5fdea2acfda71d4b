package photosource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// FeedPhoto is one entry of a JSON photo feed.
type FeedPhoto struct {
	URL string `json:"url"`
}

// Feed fetches photo URLs from an HTTP endpoint serving a JSON array of FeedPhoto.
type Feed struct {
	client *http.Client
	url    string
}

// NewFeed creates a feed reader. A nil client gets a 30 second timeout.
func NewFeed(client *http.Client, url string) *Feed {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Feed{client: client, url: url}
}

// URLs downloads and decodes the feed.
func (f *Feed) URLs(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed returned status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read feed body: %w", err)
	}

	var photos []FeedPhoto
	if err := json.Unmarshal(body, &photos); err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	urls := make([]string, 0, len(photos))
	for _, p := range photos {
		urls = append(urls, p.URL)
	}
	return urls, nil
}

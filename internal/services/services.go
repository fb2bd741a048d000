package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/desertthunder/moodboard/internal/models"
	"github.com/desertthunder/moodboard/internal/shared"
)

// DefaultTimeout bounds a single lookup when the caller does not supply a client.
const DefaultTimeout = 10 * time.Second

// Service fetches metadata for the providers it supports.
type Service interface {
	// Name returns the name of the source (e.g., "oEmbed")
	Name() string

	// Supports reports whether Lookup can handle URLs of provider p.
	Supports(p models.Provider) bool

	// Lookup fetches metadata for rawURL.
	Lookup(ctx context.Context, rawURL string) (*Metadata, error)
}

// Metadata is what a lookup learned about a link.
type Metadata struct {
	Title     string
	Author    string
	Thumbnail string
	Source    string // name of the service that answered
}

// Lookup asks the first service supporting p.
func Lookup(ctx context.Context, svcs []Service, p models.Provider, rawURL string) (*Metadata, error) {
	for _, svc := range svcs {
		if !svc.Supports(p) {
			continue
		}
		meta, err := svc.Lookup(ctx, rawURL)
		if err != nil {
			return nil, fmt.Errorf("%s lookup failed: %w", svc.Name(), err)
		}
		meta.Title = strings.TrimSpace(meta.Title)
		meta.Source = svc.Name()
		return meta, nil
	}
	return nil, fmt.Errorf("%w: no metadata source for %s", shared.ErrNotImplemented, p.Label())
}

// Defaults returns the oEmbed and page services sharing client.
func Defaults(client *http.Client) []Service {
	return []Service{NewOEmbedService(nil, client), NewPageService(client)}
}

func defaultClient(client *http.Client) *http.Client {
	if client == nil {
		return &http.Client{Timeout: DefaultTimeout}
	}
	return client
}

func get(ctx context.Context, client *http.Client, rawURL, accept string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", accept)
	req.Header.Set("User-Agent", "moodboard/0.1")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		resp.Body.Close()
		return nil, fmt.Errorf("%w: status %d", shared.ErrAPIUnavailable, resp.StatusCode)
	}
	return resp, nil
}

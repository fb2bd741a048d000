package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/desertthunder/moodboard/internal/models"
)

// DefaultOEmbedEndpoints are the public oEmbed endpoints per provider.
var DefaultOEmbedEndpoints = map[models.Provider]string{
	models.ProviderYouTube: "https://www.youtube.com/oembed",
	models.ProviderVimeo:   "https://vimeo.com/api/oembed.json",
	models.ProviderTikTok:  "https://www.tiktok.com/oembed",
}

type oembedResponse struct {
	Title        string `json:"title"`
	AuthorName   string `json:"author_name"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// OEmbedService implements [Service] against provider oEmbed endpoints.
type OEmbedService struct {
	endpoints  map[models.Provider]string
	httpClient *http.Client
}

// NewOEmbedService creates an oEmbed lookup. Nil endpoints means [DefaultOEmbedEndpoints].
func NewOEmbedService(endpoints map[models.Provider]string, client *http.Client) *OEmbedService {
	if endpoints == nil {
		endpoints = DefaultOEmbedEndpoints
	}
	return &OEmbedService{endpoints: endpoints, httpClient: defaultClient(client)}
}

// Name returns the service name.
func (o *OEmbedService) Name() string { return "oEmbed" }

// Supports reports whether an endpoint is configured for p.
func (o *OEmbedService) Supports(p models.Provider) bool {
	_, ok := o.endpoints[p]
	return ok
}

// Lookup resolves rawURL through the endpoint of its provider.
func (o *OEmbedService) Lookup(ctx context.Context, rawURL string) (*Metadata, error) {
	p := providerOf(rawURL)
	endpoint, ok := o.endpoints[p]
	if !ok {
		return nil, fmt.Errorf("no oEmbed endpoint for %s", p.Label())
	}

	q := url.Values{}
	q.Set("url", rawURL)
	q.Set("format", "json")

	resp, err := get(ctx, o.httpClient, endpoint+"?"+q.Encode(), "application/json")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var body oembedResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &Metadata{
		Title:     body.Title,
		Author:    body.AuthorName,
		Thumbnail: body.ThumbnailURL,
	}, nil
}

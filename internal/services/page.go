package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/desertthunder/moodboard/internal/classify"
	"github.com/desertthunder/moodboard/internal/models"
)

// maxPageBytes caps how much of a page is read looking for its title.
const maxPageBytes = 1 << 20

// PageService implements [Service] by scraping the title of plain links.
type PageService struct {
	httpClient *http.Client
}

// NewPageService creates a page title lookup.
func NewPageService(client *http.Client) *PageService {
	return &PageService{httpClient: defaultClient(client)}
}

// Name returns the service name.
func (s *PageService) Name() string { return "page" }

// Supports reports true for plain links only.
func (s *PageService) Supports(p models.Provider) bool { return p == models.ProviderLink }

// Lookup fetches rawURL and reads og:title, then <title>.
func (s *PageService) Lookup(ctx context.Context, rawURL string) (*Metadata, error) {
	resp, err := get(ctx, s.httpClient, rawURL, "text/html")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}

	meta := &Metadata{}
	if v, ok := doc.Find(`meta[property="og:title"]`).First().Attr("content"); ok {
		meta.Title = v
	}
	if strings.TrimSpace(meta.Title) == "" {
		meta.Title = doc.Find("head title").First().Text()
	}
	meta.Title = strings.Join(strings.Fields(meta.Title), " ")
	if v, ok := doc.Find(`meta[property="og:image"]`).First().Attr("content"); ok {
		meta.Thumbnail = v
	}
	return meta, nil
}

func providerOf(rawURL string) models.Provider {
	return classify.Classify(rawURL).Provider
}

package service

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"activitymagic/internal/config"
	"activitymagic/internal/domain"
)

// PageService fetches a web page and reduces it to the readable text and
// meta tags an extraction prompt can use.
type PageService interface {
	FetchPage(ctx context.Context, rawURL string) (*domain.PageContent, error)
}

type pageService struct {
	client        *http.Client
	userAgent     string
	maxContentLen int
}

// NewPageService creates a PageService from fetch config.
func NewPageService(cfg *config.FetchConfig) PageService {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &pageService{
		client:        &http.Client{Timeout: timeout},
		userAgent:     cfg.UserAgent,
		maxContentLen: cfg.MaxContentLen,
	}
}

func (s *pageService) FetchPage(ctx context.Context, rawURL string) (*domain.PageContent, error) {
	if strings.TrimSpace(rawURL) == "" {
		return nil, domain.ErrMissingURL
	}
	u, err := url.ParseRequestURI(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, domain.ErrInvalidURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching page: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing page: %w", err)
	}

	doc.Find("script, style, noscript").Remove()

	content := strings.Join(strings.Fields(doc.Find("body").Text()), " ")
	if len(content) > s.maxContentLen {
		content = content[:s.maxContentLen]
	}

	page := &domain.PageContent{
		URL:     rawURL,
		Content: content,
		StructuredData: domain.StructuredData{
			Title:       metaContent(doc, `meta[property="og:title"]`, doc.Find("title").First().Text()),
			Description: metaContent(doc, `meta[property="og:description"]`, metaContent(doc, `meta[name="description"]`, "")),
			Image:       metaContent(doc, `meta[property="og:image"]`, ""),
		},
	}
	return page, nil
}

func metaContent(doc *goquery.Document, selector, fallback string) string {
	if v, ok := doc.Find(selector).First().Attr("content"); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return strings.TrimSpace(fallback)
}

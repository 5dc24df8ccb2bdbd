// Package external provides clients for third-party content APIs (news).
package external

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/stadiumstories/cricket-gateway/internal/metrics"
)

const (
	newsArticleLimit = 6
	newsAPITimeout   = 15 * time.Second

	// Shown when the provider has no image for an article.
	placeholderImageURL = "https://www.royalchallengers.com/themes/custom/rcb/assets/images/rcb-placeholder.jpg"
)

// Article is a normalized news article in the shape the frontend renders.
type Article struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Date        string `json:"date"`
	URL         string `json:"url"`
}

// NewsService fetches cricket headlines from NewsAPI.
type NewsService struct {
	apiKey     string // empty = not configured
	baseURL    string
	httpClient *http.Client
}

// NewNewsService creates a news service. apiKey may be empty.
func NewNewsService(baseURL, apiKey string) *NewsService {
	return &NewsService{
		apiKey:  apiKey,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: newsAPITimeout,
		},
	}
}

// Configured reports whether a NewsAPI key is set.
func (s *NewsService) Configured() bool { return s.apiKey != "" }

// newsAPIResponse mirrors the NewsAPI /v2/everything envelope.
type newsAPIResponse struct {
	Status       string `json:"status"`
	TotalResults int    `json:"totalResults"`
	Articles     []struct {
		Source struct {
			Name string `json:"name"`
		} `json:"source"`
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		URLToImage  string `json:"urlToImage"`
		PublishedAt string `json:"publishedAt"`
	} `json:"articles"`
	Message string `json:"message"` // on error
}

// CricketNews returns up to 6 normalized cricket headlines, newest first.
func (s *NewsService) CricketNews(ctx context.Context) ([]Article, error) {
	if !s.Configured() {
		return nil, fmt.Errorf("NewsAPI not configured")
	}

	params := url.Values{}
	params.Set("q", "cricket")
	params.Set("sortBy", "publishedAt")

	u := s.baseURL + "/everything?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Api-Key", s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues("newsapi", "everything", metrics.OutcomeNetwork).Inc()
		return nil, fmt.Errorf("NewsAPI request error: %w", err)
	}
	defer resp.Body.Close()

	var apiResp newsAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues("newsapi", "everything", metrics.OutcomeUpstream).Inc()
		return nil, fmt.Errorf("NewsAPI decode error: %w", err)
	}

	if apiResp.Status != "ok" {
		metrics.UpstreamRequestsTotal.WithLabelValues("newsapi", "everything", metrics.OutcomeUpstream).Inc()
		return nil, fmt.Errorf("NewsAPI error: %s", apiResp.Message)
	}
	metrics.UpstreamRequestsTotal.WithLabelValues("newsapi", "everything", metrics.OutcomeSuccess).Inc()

	items := apiResp.Articles
	if len(items) > newsArticleLimit {
		items = items[:newsArticleLimit]
	}

	articles := make([]Article, 0, len(items))
	for _, a := range items {
		image := a.URLToImage
		if image == "" {
			image = placeholderImageURL
		}
		articles = append(articles, Article{
			Title:       a.Title,
			Description: a.Description,
			Image:       image,
			Date:        formatArticleDate(a.PublishedAt),
			URL:         a.URL,
		})
	}

	return articles, nil
}

// formatArticleDate reformats the provider timestamp to a date-only string.
// Unparsable timestamps are passed through untouched so the frontend can
// still show something.
func formatArticleDate(published string) string {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05Z"} {
		if t, err := time.Parse(layout, published); err == nil {
			return t.Format("1/2/2006")
		}
	}
	return published
}

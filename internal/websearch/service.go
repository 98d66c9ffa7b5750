// Package websearch queries a general web-search provider, scores the
// hits for agricultural relevance and returns them ranked.
//
// The provider is the DuckDuckGo HTML endpoint: a plain GET returning a
// server-rendered result page, parsed here with goquery. Provider errors
// and empty result pages surface as a soft-failure Result, never as a
// partial list.
package websearch

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/haritlabs/agrod/internal/logging"
)

// Hit is one scored search result.
type Hit struct {
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	URL            string  `json:"url"`
	RelevanceScore float64 `json:"relevance_score"`
}

// Result is the outcome of one search call.
type Result struct {
	Success   bool      `json:"success"`
	Hits      []Hit     `json:"results,omitempty"`
	Query     string    `json:"query"`
	Timestamp time.Time `json:"timestamp"`
	Error     string    `json:"error,omitempty"`
}

// Config holds web search settings.
type Config struct {
	// BaseURL is the search provider endpoint.
	BaseURL string

	// MaxResults caps hits fetched per provider call.
	MaxResults int

	// Timeout bounds a single provider call.
	Timeout time.Duration

	// RatePerMinute limits provider calls. Zero disables limiting.
	RatePerMinute int
}

// Service performs relevance-scored agricultural web search.
type Service struct {
	baseURL    string
	maxResults int
	client     *http.Client
	limiter    *rate.Limiter
	logger     *logging.Logger
}

// NewService creates a web search service.
func NewService(cfg Config, logger *logging.Logger) *Service {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://html.duckduckgo.com/html/"
	}
	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 10
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}

	var limiter *rate.Limiter
	if cfg.RatePerMinute > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RatePerMinute)), cfg.RatePerMinute)
	}

	return &Service{
		baseURL:    baseURL,
		maxResults: maxResults,
		client:     &http.Client{Timeout: timeout},
		limiter:    limiter,
		logger:     logger.Named("websearch"),
	}
}

// Search runs the query against the provider with the domain suffix
// appended, scores each hit and returns all hits ranked by descending
// relevance. The caller truncates to the count it wants.
func (s *Service) Search(ctx context.Context, query string, maxResults int) Result {
	start := time.Now()
	if maxResults <= 0 || maxResults > s.maxResults {
		maxResults = s.maxResults
	}

	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			searchTotal.WithLabelValues("error").Inc()
			return failResult(query, fmt.Errorf("rate limit wait: %w", err))
		}
	}

	hits, err := s.fetch(ctx, query+" "+domainSuffix, maxResults)
	searchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		s.logger.Error(ctx, "web search failed", zap.Error(err))
		searchTotal.WithLabelValues("error").Inc()
		return failResult(query, err)
	}
	if len(hits) == 0 {
		searchTotal.WithLabelValues("empty").Inc()
		return failResult(query, fmt.Errorf("no search results found"))
	}

	for i := range hits {
		hits[i].RelevanceScore = RelevanceScore(hits[i].Description, query)
	}
	sort.SliceStable(hits, func(a, b int) bool {
		return hits[a].RelevanceScore > hits[b].RelevanceScore
	})

	searchTotal.WithLabelValues("success").Inc()
	return Result{
		Success:   true,
		Hits:      hits,
		Query:     query,
		Timestamp: time.Now().UTC(),
	}
}

// fetch retrieves and parses one provider result page.
func (s *Service) fetch(ctx context.Context, query string, maxResults int) ([]Hit, error) {
	endpoint := s.baseURL + "?" + url.Values{"q": {query}}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", "agrod/1.0 (+https://github.com/haritlabs/agrod)")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search provider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search provider returned %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing result page: %w", err)
	}

	var hits []Hit
	doc.Find(".result").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		anchor := sel.Find("a.result__a").First()
		title := strings.TrimSpace(anchor.Text())
		if title == "" {
			return true
		}

		href, _ := anchor.Attr("href")
		description := strings.TrimSpace(sel.Find(".result__snippet").First().Text())

		hits = append(hits, Hit{
			Title:       title,
			Description: description,
			URL:         resolveRedirect(href),
		})
		return len(hits) < maxResults
	})

	return hits, nil
}

// resolveRedirect unwraps the provider's redirect links, which carry the
// destination in a uddg query parameter.
func resolveRedirect(href string) string {
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}
	parsed, err := url.Parse(href)
	if err != nil {
		return href
	}
	if target := parsed.Query().Get("uddg"); target != "" {
		return target
	}
	return href
}

func failResult(query string, err error) Result {
	return Result{
		Success:   false,
		Query:     query,
		Error:     err.Error(),
		Timestamp: time.Now().UTC(),
	}
}

// Package orchestrator coordinates the knowledge base, website data and
// web search into composite answers.
//
// The orchestrator owns no persistent state: it seeds the knowledge base
// once at startup, and per query it searches locally first, escalates to
// the web only when local retrieval is weak, refreshes market data only
// when the query asks about commerce, and synthesizes a short
// recommendation list from a keyword table.
package orchestrator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/haritlabs/agrod/internal/knowledge"
	"github.com/haritlabs/agrod/internal/logging"
	"github.com/haritlabs/agrod/internal/website"
	"github.com/haritlabs/agrod/internal/websearch"
)

const (
	// kbSearchK is how many local documents a query retrieves.
	kbSearchK = 5

	// webEscalationThreshold: fewer local hits than this triggers web
	// search. Web search is a fallback, never the default first step.
	webEscalationThreshold = 3

	// webTopHits caps web results attached to a response.
	webTopHits = 3

	// maxSectionDocuments bounds ingestion per website section.
	maxSectionDocuments = 10
)

// marketKeywords trigger a fresh market-data pull when present in a query.
var marketKeywords = []string{"price", "market", "cost", "sell", "buy", "commodity"}

// KnowledgeBase is the local retrieval surface the orchestrator composes.
type KnowledgeBase interface {
	AddDocument(ctx context.Context, doc knowledge.Document) bool
	SearchSimilar(ctx context.Context, query string, k int) []knowledge.SearchResult
	GetDocumentContent(ctx context.Context, id string) (string, bool)
	Count() int
}

// WebSearcher escalates queries to the web.
type WebSearcher interface {
	Search(ctx context.Context, query string, maxResults int) websearch.Result
}

// WebsiteData supplies structured section snapshots.
type WebsiteData interface {
	GetMarketPrices(ctx context.Context, scrapeLive bool) website.Result[[]website.MarketPrice]
	ScrapeMarketPricesLive(ctx context.Context) website.Result[website.LiveScrape]
	GetTasks(ctx context.Context) website.Result[website.TasksData]
	GetCropRecommendations(ctx context.Context) website.Result[website.CropData]
	GetCommunity(ctx context.Context) website.Result[website.CommunityData]
	GetFarmProfile(ctx context.Context) website.Result[website.FarmData]
	GetGovernmentSchemes(ctx context.Context) website.Result[website.SchemesData]
}

// QueryResponse is the composite answer for one query. It is constructed
// fresh per call and never persisted.
type QueryResponse struct {
	Query                string                   `json:"query"`
	KnowledgeBaseResults []knowledge.SearchResult `json:"knowledge_base_results"`
	WebSearchResults     []websearch.Hit          `json:"web_search_results"`
	MarketData           []website.MarketPrice    `json:"market_data,omitempty"`
	Recommendations      []string                 `json:"recommendations"`
	Timestamp            time.Time                `json:"timestamp"`
	Error                string                   `json:"error,omitempty"`
}

// UpdateResult reports the outcome of a live market refresh.
type UpdateResult struct {
	Success      bool     `json:"success"`
	TotalRecords int      `json:"total_records,omitempty"`
	Sources      []string `json:"sources,omitempty"`
	ScrapingTime float64  `json:"scraping_time,omitempty"`
	Message      string   `json:"message,omitempty"`
	Error        string   `json:"error,omitempty"`
}

// Orchestrator is the top-level retrieval coordinator.
type Orchestrator struct {
	kb     KnowledgeBase
	site   WebsiteData
	search WebSearcher
	logger *logging.Logger
}

// New creates an orchestrator over the given collaborators.
func New(kb KnowledgeBase, site WebsiteData, search WebSearcher, logger *logging.Logger) *Orchestrator {
	return &Orchestrator{
		kb:     kb,
		site:   site,
		search: search,
		logger: logger.Named("orchestrator"),
	}
}

// Initialize seeds the knowledge base from every website section and the
// static technique documents. Document ids are deterministic and adds are
// insert-or-replace, so re-running after a partial failure replaces
// rather than duplicates.
func (o *Orchestrator) Initialize(ctx context.Context) {
	o.logger.Info(ctx, "initializing knowledge base with website data")

	added := 0
	if res := o.site.GetMarketPrices(ctx, false); res.Success {
		added += o.ingest(ctx, marketDocuments(res.Data, res.Source))
	}
	if res := o.site.GetTasks(ctx); res.Success {
		added += o.ingest(ctx, taskDocuments(res.Data, res.Source))
	}
	if res := o.site.GetCropRecommendations(ctx); res.Success {
		added += o.ingest(ctx, cropDocuments(res.Data, res.Source))
	}
	if res := o.site.GetCommunity(ctx); res.Success {
		added += o.ingest(ctx, communityDocuments(res.Data, res.Source))
	}
	if res := o.site.GetFarmProfile(ctx); res.Success {
		added += o.ingest(ctx, farmDocuments(res.Data, res.Source))
	}
	if res := o.site.GetGovernmentSchemes(ctx); res.Success {
		added += o.ingest(ctx, schemeDocuments(res.Data, res.Source))
	}

	added += o.ingest(ctx, staticKnowledgeDocuments())

	o.logger.Info(ctx, "knowledge base initialization completed",
		zap.Int("documents_added", added), zap.Int("total", o.kb.Count()))
}

// ingest adds documents, bounded per section, counting successes.
func (o *Orchestrator) ingest(ctx context.Context, docs []knowledge.Document) int {
	if len(docs) > maxSectionDocuments {
		docs = docs[:maxSectionDocuments]
	}
	added := 0
	for _, doc := range docs {
		if o.kb.AddDocument(ctx, doc) {
			added++
		}
	}
	return added
}

// QueryComprehensive answers a query from the knowledge base, escalating
// to web search when local retrieval is weak and refreshing market data
// when the query is commerce-related. It never returns an error: any
// internal failure resolves to a response carrying the failure text.
func (o *Orchestrator) QueryComprehensive(ctx context.Context, query string, includeWebSearch bool) (resp QueryResponse) {
	start := time.Now()
	resp = QueryResponse{
		Query:     query,
		Timestamp: time.Now().UTC(),
	}
	defer func() {
		if r := recover(); r != nil {
			o.logger.Error(ctx, "comprehensive query panicked", zap.Any("panic", r))
			resp = QueryResponse{
				Query:     query,
				Error:     fmt.Sprintf("internal failure: %v", r),
				Timestamp: time.Now().UTC(),
			}
		}
		queryDuration.Observe(time.Since(start).Seconds())
	}()

	resp.KnowledgeBaseResults = o.kb.SearchSimilar(ctx, query, kbSearchK)

	// Local retrieval was weak: pay for a web call.
	if includeWebSearch && len(resp.KnowledgeBaseResults) < webEscalationThreshold {
		webEscalations.Inc()
		if webResult := o.search.Search(ctx, query, 0); webResult.Success {
			hits := webResult.Hits
			if len(hits) > webTopHits {
				hits = hits[:webTopHits]
			}
			resp.WebSearchResults = hits
		}
	}

	if containsAny(query, marketKeywords) {
		if market := o.site.GetMarketPrices(ctx, false); market.Success {
			resp.MarketData = market.Data
		}
	}

	resp.Recommendations = recommendationsFor(query)
	return resp
}

// UpdateMarketDataLive triggers a live scrape and re-ingests the scraped
// rows, each superseding any prior document sharing its derived id.
func (o *Orchestrator) UpdateMarketDataLive(ctx context.Context) UpdateResult {
	scrape := o.site.ScrapeMarketPricesLive(ctx)
	if !scrape.Success {
		return UpdateResult{Success: false, Error: scrape.Error}
	}

	o.ingest(ctx, marketDocuments(scrape.Data.Prices, "market_prices"))

	return UpdateResult{
		Success:      true,
		TotalRecords: scrape.Data.TotalRecords,
		Sources:      scrape.Data.Sources,
		ScrapingTime: scrape.Data.ScrapingTime,
		Message:      "Market data updated successfully",
	}
}

// GetDocumentContent returns the stored text of a document by ID.
func (o *Orchestrator) GetDocumentContent(ctx context.Context, id string) (string, bool) {
	return o.kb.GetDocumentContent(ctx, id)
}

// containsAny reports whether the text contains any keyword,
// case-insensitively.
func containsAny(text string, keywords []string) bool {
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

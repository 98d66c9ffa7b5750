// Package enhance is the context-enhancement policy layer over the
// retrieval orchestrator.
//
// Per query it resolves the user's location from the farm profile,
// classifies what kind of context the query is missing, expands the query
// into location- and season-aware variants, and decides from a confidence
// signal whether the existing retrieval is enough or a forced web
// enhancement pass is needed. It always returns coherent text: every
// failure path degrades to a present answer, never an error or an empty
// string.
package enhance

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/haritlabs/agrod/internal/logging"
	"github.com/haritlabs/agrod/internal/orchestrator"
	"github.com/haritlabs/agrod/internal/websearch"
)

const (
	// defaultLocation is the fallback when no farm profile exists.
	defaultLocation = "India"

	// defaultState is the fallback region label.
	defaultState = "General"

	// maxSearchVariants bounds the expansion pass for cost control.
	maxSearchVariants = 3

	// hitsPerVariant caps hits collected from each variant.
	hitsPerVariant = 2

	// maxEnhancedHits caps the merged enhancement result list.
	maxEnhancedHits = 5
)

// ContextType labels what kind of context a query is missing. It only
// selects a query-expansion template; it never skips retrieval.
type ContextType string

const (
	ContextTechnical ContextType = "technical"
	ContextMarket    ContextType = "market"
	ContextSeasonal  ContextType = "seasonal"
	ContextGeneral   ContextType = "general"
)

// Confidence is the caller-supplied trust in existing knowledge.
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// LocationContext is the per-call resolved user location.
type LocationContext struct {
	HasFarmProfile bool   `json:"has_farm_profile"`
	Location       string `json:"location"`
	State          string `json:"state"`
	Message        string `json:"message,omitempty"`
}

// ProfileSource supplies the user's farm profile as plain text. A
// response containing a recognizable "Location:" line yields city/state;
// anything else means "no profile".
type ProfileSource interface {
	FarmProfileText(ctx context.Context) (string, error)
}

// Querier is the orchestrator surface this layer wraps.
type Querier interface {
	QueryComprehensive(ctx context.Context, query string, includeWebSearch bool) orchestrator.QueryResponse
	GetDocumentContent(ctx context.Context, id string) (string, bool)
}

// WebSearcher runs expanded query variants.
type WebSearcher interface {
	Search(ctx context.Context, query string, maxResults int) websearch.Result
}

// Layer is the context enhancement policy.
type Layer struct {
	querier  Querier
	search   WebSearcher
	profiles ProfileSource
	logger   *logging.Logger

	// now is injectable for deterministic seasonal tests.
	now func() time.Time
}

// New creates the enhancement layer.
func New(querier Querier, search WebSearcher, profiles ProfileSource, logger *logging.Logger) *Layer {
	return &Layer{
		querier:  querier,
		search:   search,
		profiles: profiles,
		logger:   logger.Named("enhance"),
		now:      time.Now,
	}
}

// ResolveLocation derives the user's location from the farm profile,
// defaulting to the generic fallback when no profile is recognizable.
func (l *Layer) ResolveLocation(ctx context.Context) LocationContext {
	noProfile := LocationContext{
		HasFarmProfile: false,
		Location:       defaultLocation,
		State:          defaultState,
		Message:        "No farm profile found. Providing general guidance for India.",
	}

	if l.profiles == nil {
		return noProfile
	}

	text, err := l.profiles.FarmProfileText(ctx)
	if err != nil {
		l.logger.Warn(ctx, "farm profile unavailable", zap.Error(err))
		return noProfile
	}

	location, state, found := parseLocationLine(text)
	if !found {
		return noProfile
	}

	return LocationContext{
		HasFarmProfile: true,
		Location:       location,
		State:          state,
	}
}

// parseLocationLine extracts "city, state" from the first "Location:"
// line in profile text.
func parseLocationLine(text string) (location, state string, found bool) {
	for _, line := range strings.Split(text, "\n") {
		if !strings.Contains(line, "Location:") {
			continue
		}
		location = strings.TrimSpace(strings.SplitN(line, "Location:", 2)[1])
		if location == "" {
			return "", "", false
		}
		state = defaultState
		if idx := strings.LastIndex(location, ","); idx >= 0 {
			state = strings.TrimSpace(location[idx+1:])
		}
		return location, state, true
	}
	return "", "", false
}

// ClassifyContext derives the missing-context type from the query via the
// fixed keyword table.
func ClassifyContext(query string) ContextType {
	lower := strings.ToLower(query)
	for _, row := range contextTable {
		for _, kw := range row.keywords {
			if strings.Contains(lower, kw) {
				return row.contextType
			}
		}
	}
	return ContextGeneral
}

// contextTable is the ordered keyword -> context-type mapping.
var contextTable = []struct {
	keywords    []string
	contextType ContextType
}{
	{[]string{"price", "market", "sell", "cost"}, ContextMarket},
	{[]string{"when", "time", "season", "month"}, ContextSeasonal},
	{[]string{"how", "method", "technique", "process"}, ContextTechnical},
}

// ComprehensiveAnswer is the layer's main entry point. It runs the
// comprehensive query first, then decides whether existing retrieval is
// enough or the full enhancement path must be forced.
func (l *Layer) ComprehensiveAnswer(ctx context.Context, query string, confidence Confidence) (answer string) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error(ctx, "comprehensive answer panicked", zap.Any("panic", r))
			answer = degradedAnswer(query)
		}
	}()

	location := l.ResolveLocation(ctx)
	result := l.querier.QueryComprehensive(ctx, query, true)

	forced := confidence == ConfidenceLow ||
		len(result.KnowledgeBaseResults) < 2 ||
		len(result.WebSearchResults) < 2
	if forced {
		return l.EnhanceWithWebSearch(ctx, query, ClassifyContext(query), location)
	}

	return l.composeDirectAnswer(ctx, query, location, result)
}

// EnhanceWithWebSearch runs the full enhancement pass: knowledge-base
// context, expanded web search variants, location and seasonal guidance,
// action steps and trust indicators.
func (l *Layer) EnhanceWithWebSearch(ctx context.Context, query string, contextType ContextType, location LocationContext) (answer string) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error(ctx, "enhancement pass panicked", zap.Any("panic", r))
			answer = degradedAnswer(query)
		}
	}()

	kbResult := l.querier.QueryComprehensive(ctx, query, false)

	variants := ExpandQueries(query, location.Location, contextType, l.now())
	if len(variants) > maxSearchVariants {
		variants = variants[:maxSearchVariants]
	}

	var hits []websearch.Hit
	for _, variant := range variants {
		result := l.search.Search(ctx, variant, maxEnhancedHits)
		if !result.Success {
			l.logger.Warn(ctx, "variant search failed",
				zap.String("variant", variant), zap.String("cause", result.Error))
			continue
		}
		take := result.Hits
		if len(take) > hitsPerVariant {
			take = take[:hitsPerVariant]
		}
		hits = append(hits, take...)
		if len(hits) >= maxEnhancedHits {
			hits = hits[:maxEnhancedHits]
			break
		}
	}

	return l.composeEnhancedAnswer(ctx, query, location, kbResult, hits)
}

// degradedAnswer is the last-resort fallback text; never empty.
func degradedAnswer(query string) string {
	return fmt.Sprintf(
		"I could not gather comprehensive information for %q right now. "+
			"Please try asking again, or consult your local agricultural extension officer for immediate help.",
		query,
	)
}

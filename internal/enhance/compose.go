package enhance

import (
	"context"
	"fmt"
	"strings"

	"github.com/haritlabs/agrod/internal/knowledge"
	"github.com/haritlabs/agrod/internal/orchestrator"
	"github.com/haritlabs/agrod/internal/websearch"
)

const (
	maxComposedKBSnippets  = 3
	maxComposedWebSnippets = 3
	snippetRunes           = 200
)

// composeDirectAnswer renders an answer from an already-sufficient
// comprehensive query result.
func (l *Layer) composeDirectAnswer(ctx context.Context, query string, location LocationContext, result orchestrator.QueryResponse) string {
	var b strings.Builder

	writeLocationBlock(&b, location)
	writeSeasonalBlock(&b, season(l.now().Month()))

	if snippets := l.kbSnippets(ctx, result.KnowledgeBaseResults); len(snippets) > 0 {
		b.WriteString("Based on available farming knowledge:\n")
		for _, s := range snippets {
			fmt.Fprintf(&b, "- %s\n", s)
		}
		b.WriteString("\n")
	}

	writeWebBlock(&b, result.WebSearchResults)
	writeRecommendations(&b, result.Recommendations)
	writeRegionGuidance(&b, location.State)
	writeTrustIndicators(&b, len(result.KnowledgeBaseResults), len(result.WebSearchResults))

	return strings.TrimSpace(b.String())
}

// composeEnhancedAnswer renders the forced-enhancement answer from the
// knowledge-base pass plus the expanded web hits.
func (l *Layer) composeEnhancedAnswer(ctx context.Context, query string, location LocationContext, kb orchestrator.QueryResponse, hits []websearch.Hit) string {
	var b strings.Builder

	writeLocationBlock(&b, location)
	writeSeasonalBlock(&b, season(l.now().Month()))

	if snippets := l.kbSnippets(ctx, kb.KnowledgeBaseResults); len(snippets) > 0 {
		b.WriteString("From your farming knowledge base:\n")
		for _, s := range snippets {
			fmt.Fprintf(&b, "- %s\n", s)
		}
		b.WriteString("\n")
	}

	writeWebBlock(&b, hits)
	writeActionSteps(&b, query, location.Location)
	writeRegionGuidance(&b, location.State)
	writeTrustIndicators(&b, len(kb.KnowledgeBaseResults), len(hits))

	return strings.TrimSpace(b.String())
}

// kbSnippets resolves search results to truncated content lines, skipping
// documents whose content is no longer retrievable.
func (l *Layer) kbSnippets(ctx context.Context, results []knowledge.SearchResult) []string {
	var snippets []string
	for _, res := range results {
		if len(snippets) >= maxComposedKBSnippets {
			break
		}
		content, ok := l.querier.GetDocumentContent(ctx, res.DocumentID)
		if !ok || content == "" {
			continue
		}
		snippets = append(snippets, truncate(content, snippetRunes))
	}
	return snippets
}

func writeLocationBlock(b *strings.Builder, location LocationContext) {
	if location.HasFarmProfile {
		fmt.Fprintf(b, "Guidance for your farm in %s:\n\n", location.Location)
		return
	}
	if location.Message != "" {
		fmt.Fprintf(b, "%s\n\n", location.Message)
	}
}

func writeSeasonalBlock(b *strings.Builder, seasonLabel string) {
	fmt.Fprintf(b, "Current period: %s.\n\n", seasonLabel)
}

func writeWebBlock(b *strings.Builder, hits []websearch.Hit) {
	if len(hits) == 0 {
		return
	}
	b.WriteString("Latest information from the web:\n")
	for i, hit := range hits {
		if i >= maxComposedWebSnippets {
			break
		}
		fmt.Fprintf(b, "- %s: %s\n", hit.Title, truncate(hit.Description, snippetRunes))
	}
	b.WriteString("\n")
}

func writeRecommendations(b *strings.Builder, recs []string) {
	if len(recs) == 0 {
		return
	}
	b.WriteString("Suggestions:\n")
	for _, rec := range recs {
		fmt.Fprintf(b, "- %s\n", rec)
	}
	b.WriteString("\n")
}

// actionStepRules maps query keywords to concrete next steps.
var actionStepRules = []struct {
	keywords []string
	steps    []string
}{
	{[]string{"price", "market", "sell"}, []string{
		"Check today's rates at your nearest mandi before selling",
		"Compare prices across 2-3 markets for the best rate",
		"Consider the eNAM portal for wider market access",
	}},
	{[]string{"pest", "disease", "insect"}, []string{
		"Inspect affected plants early morning for accurate identification",
		"Start with neem-based or biological controls before chemicals",
		"Consult your Krishi Vigyan Kendra if the problem spreads",
	}},
	{[]string{"sow", "plant", "seed"}, []string{
		"Verify soil moisture and temperature before sowing",
		"Use certified seeds from an authorized dealer",
		"Follow the recommended spacing for your chosen variety",
	}},
}

func writeActionSteps(b *strings.Builder, query, location string) {
	lower := strings.ToLower(query)
	for _, rule := range actionStepRules {
		if !containsAnyKeyword(lower, rule.keywords) {
			continue
		}
		b.WriteString("Recommended next steps:\n")
		for _, step := range rule.steps {
			fmt.Fprintf(b, "- %s\n", step)
		}
		b.WriteString("\n")
		return
	}
	fmt.Fprintf(b, "Recommended next steps:\n- Discuss this with your local agricultural extension officer in %s\n\n", location)
}

// regionGuidance carries brief state-specific notes for the major
// agricultural states; everything else gets the generic line.
var regionGuidance = map[string]string{
	"Punjab":      "Punjab note: wheat-rice rotation dominates here; watch groundwater depth and consider direct-seeded rice to save water.",
	"Maharashtra": "Maharashtra note: rainfall varies sharply by district; drip irrigation pays off for sugarcane and horticulture.",
	"Kerala":      "Kerala note: high humidity favors fungal disease; prioritize drainage and spacing in plantation crops.",
	"Rajasthan":   "Rajasthan note: moisture conservation is critical; mulching and drought-tolerant varieties perform best.",
}

func writeRegionGuidance(b *strings.Builder, state string) {
	if note, ok := regionGuidance[state]; ok {
		fmt.Fprintf(b, "%s\n\n", note)
		return
	}
	b.WriteString("Regional note: verify recommendations against your state agricultural university's advisories.\n\n")
}

func writeTrustIndicators(b *strings.Builder, kbCount, webCount int) {
	switch {
	case kbCount > 0 && webCount > 0:
		fmt.Fprintf(b, "(Based on %d knowledge base entries and %d recent web sources.)\n", kbCount, webCount)
	case kbCount > 0:
		fmt.Fprintf(b, "(Based on %d knowledge base entries; no recent web sources were available.)\n", kbCount)
	case webCount > 0:
		fmt.Fprintf(b, "(Based on %d recent web sources only; verify with local experts.)\n", webCount)
	default:
		b.WriteString("(Limited information was available; verify with local experts.)\n")
	}
}

func containsAnyKeyword(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// truncate cuts text at a rune boundary with an ellipsis.
func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}

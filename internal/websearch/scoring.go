package websearch

import "strings"

// agriculturalTerms is the fixed domain vocabulary used to bias relevance
// toward farming content.
var agriculturalTerms = []string{
	"farming", "agriculture", "crop", "soil",
	"irrigation", "fertilizer", "pest", "yield",
}

// domainSuffix is appended to every outgoing query to bias the provider
// toward the target subject area.
const domainSuffix = "farming agriculture india"

// RelevanceScore scores a result body against the original query.
//
// The score is a weighted sum in [0, 1]:
//
//	0.7 * (fraction of query terms present in the body)
//	0.3 * min(1, domain-term-hits / 5)
//
// where domain-term-hits counts how many agricultural vocabulary terms
// appear in the body. Matching is case-insensitive substring containment.
func RelevanceScore(body, query string) float64 {
	bodyLower := strings.ToLower(body)
	queryWords := strings.Fields(strings.ToLower(query))

	var keywordScore float64
	if len(queryWords) > 0 {
		matches := 0
		for _, word := range queryWords {
			if strings.Contains(bodyLower, word) {
				matches++
			}
		}
		keywordScore = float64(matches) / float64(len(queryWords))
	}

	agMatches := 0
	for _, term := range agriculturalTerms {
		if strings.Contains(bodyLower, term) {
			agMatches++
		}
	}
	agScore := float64(agMatches) / 5.0
	if agScore > 1.0 {
		agScore = 1.0
	}

	return keywordScore*0.7 + agScore*0.3
}

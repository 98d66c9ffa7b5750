package orchestrator

// recommendationRule maps a keyword group to its canned tips. The rules
// form an ordered table: a query matching several groups concatenates
// their tips in table order before the cap is applied.
type recommendationRule struct {
	keywords []string
	tips     []string
}

// maxRecommendations caps the tips attached to a response.
const maxRecommendations = 3

var recommendationRules = []recommendationRule{
	{
		keywords: []string{"price", "market"},
		tips: []string{
			"Check the market prices tab for live commodity rates",
			"Use the web scraper to get fresh market data",
			"Compare prices across different markets and states",
		},
	},
	{
		keywords: []string{"crop", "plant"},
		tips: []string{
			"Visit the crop recommendations page for personalized suggestions",
			"Check current season suitability for your location",
			"Review soil conditions before planting",
		},
	},
	{
		keywords: []string{"task", "schedule"},
		tips: []string{
			"Check your tasks page for current farming activities",
			"Set reminders for time-sensitive activities",
			"Prioritize tasks based on weather conditions",
		},
	},
	{
		keywords: []string{"scheme", "government", "subsidy"},
		tips: []string{
			"Visit the government schemes page for available programs",
			"Check eligibility criteria for each scheme",
			"Apply online through official portals",
		},
	},
}

// genericRecommendations is the fallback when no group matches.
var genericRecommendations = []string{
	"Explore different tabs on the website for comprehensive information",
	"Use the community feature to connect with other farmers",
	"Keep your farm profile updated for better recommendations",
}

// recommendationsFor collects the tips of every matching keyword group,
// capped at maxRecommendations, falling back to the generic triple.
func recommendationsFor(query string) []string {
	var tips []string
	for _, rule := range recommendationRules {
		if containsAny(query, rule.keywords) {
			tips = append(tips, rule.tips...)
		}
	}
	if len(tips) == 0 {
		tips = append(tips, genericRecommendations...)
	}
	if len(tips) > maxRecommendations {
		tips = tips[:maxRecommendations]
	}
	return tips
}

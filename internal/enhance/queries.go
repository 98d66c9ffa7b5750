package enhance

import (
	"fmt"
	"time"
)

// maxQueryVariants bounds the expansion output.
const maxQueryVariants = 4

// ExpandQueries turns a query into location- and context-aware search
// variants. The first variants anchor the query to the user's location;
// later ones add context-type phrasing. Output is capped and always
// starts with location-anchored forms so truncation keeps the most
// specific variants.
func ExpandQueries(query, location string, contextType ContextType, now time.Time) []string {
	variants := []string{
		fmt.Sprintf("%s %s", query, location),
		fmt.Sprintf("%s farming %s", query, location),
	}

	switch contextType {
	case ContextMarket:
		variants = append(variants,
			fmt.Sprintf("%s current market price India", query),
			fmt.Sprintf("%s mandi rates today", query),
		)
	case ContextSeasonal:
		month := now.Month().String()
		variants = append(variants,
			fmt.Sprintf("%s %s season India", query, month),
			fmt.Sprintf("%s best time %s", query, location),
		)
	case ContextTechnical:
		variants = append(variants,
			fmt.Sprintf("%s step by step guide", query),
			fmt.Sprintf("%s best practices India", query),
		)
	default:
		variants = append(variants,
			fmt.Sprintf("%s guide for farmers", query),
		)
	}

	if len(variants) > maxQueryVariants {
		variants = variants[:maxQueryVariants]
	}
	return variants
}

// season labels the broad Indian cropping calendar for a month.
func season(m time.Month) string {
	switch {
	case m >= time.October && m <= time.November:
		return "Rabi sowing season"
	case m == time.December || m <= time.February:
		return "Rabi growing season (winter)"
	case m >= time.March && m <= time.April:
		return "Rabi harvest season"
	case m >= time.May && m <= time.June:
		return "pre-monsoon preparation season"
	default:
		return "Kharif season (monsoon crops)"
	}
}

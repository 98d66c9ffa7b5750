package orchestrator

import (
	"fmt"
	"strings"
	"time"

	"github.com/haritlabs/agrod/internal/knowledge"
	"github.com/haritlabs/agrod/internal/website"
)

// Converters from structured section records to prose documents. Every id
// is deterministic, so re-ingesting a section replaces rather than
// duplicates.

func marketDocuments(prices []website.MarketPrice, source string) []knowledge.Document {
	docs := make([]knowledge.Document, 0, len(prices))
	for _, row := range prices {
		content := fmt.Sprintf(
			"Commodity: %s\nPrice: ₹%.2f per %s\nMarket: %s\nState: %s\nQuality: %s\nTrend: %s\nLast Updated: %s",
			row.Commodity, row.CurrentPrice, row.Unit, row.Market, row.State, row.Quality, row.Trend, row.LastUpdated,
		)
		docs = append(docs, knowledge.Document{
			ID:      "market_" + row.ID,
			Content: content,
			Metadata: map[string]any{
				"id": row.ID, "commodity": row.Commodity, "currentPrice": row.CurrentPrice,
				"unit": row.Unit, "market": row.Market, "state": row.State,
				"quality": row.Quality, "trend": row.Trend, "lastUpdated": row.LastUpdated,
			},
			Timestamp: time.Now().UTC(),
			Source:    source,
			Category:  knowledge.CategoryMarketData,
		})
	}
	return docs
}

func taskDocuments(data website.TasksData, source string) []knowledge.Document {
	docs := make([]knowledge.Document, 0, len(data.ActiveTasks))
	for _, task := range data.ActiveTasks {
		status := task.Status
		if status == "" {
			status = "active"
		}
		content := fmt.Sprintf(
			"Task: %s\nPriority: %s\nDue: %s\nStatus: %s",
			task.Title, task.Priority, task.Due, status,
		)
		docs = append(docs, knowledge.Document{
			ID:      fmt.Sprintf("task_%d", task.ID),
			Content: content,
			Metadata: map[string]any{
				"id": task.ID, "title": task.Title, "priority": task.Priority,
				"due": task.Due, "status": status,
			},
			Timestamp: time.Now().UTC(),
			Source:    source,
			Category:  knowledge.CategoryFarmingTasks,
		})
	}
	return docs
}

func cropDocuments(data website.CropData, source string) []knowledge.Document {
	docs := make([]knowledge.Document, 0, len(data.RecommendedCrops))
	for _, crop := range data.RecommendedCrops {
		content := fmt.Sprintf(
			"Crop: %s\nSeason: %s\nSuitability: %d%%\nExpected Yield: %s",
			crop.Name, crop.Season, crop.Suitability, crop.ExpectedYield,
		)
		docs = append(docs, knowledge.Document{
			ID:      "crop_" + slug(crop.Name),
			Content: content,
			Metadata: map[string]any{
				"name": crop.Name, "season": crop.Season,
				"suitability": crop.Suitability, "expected_yield": crop.ExpectedYield,
			},
			Timestamp: time.Now().UTC(),
			Source:    source,
			Category:  knowledge.CategoryCropInfo,
		})
	}
	return docs
}

func communityDocuments(data website.CommunityData, source string) []knowledge.Document {
	docs := make([]knowledge.Document, 0, len(data.RecentPosts))
	for _, post := range data.RecentPosts {
		content := fmt.Sprintf(
			"Community post by %s: %s\nLikes: %d, Comments: %d",
			post.User, post.Content, post.Likes, post.Comments,
		)
		docs = append(docs, knowledge.Document{
			ID:      "community_" + slug(post.User),
			Content: content,
			Metadata: map[string]any{
				"user": post.User, "content": post.Content,
				"likes": post.Likes, "comments": post.Comments,
			},
			Timestamp: time.Now().UTC(),
			Source:    source,
			Category:  knowledge.CategoryCommunity,
		})
	}
	return docs
}

func farmDocuments(data website.FarmData, source string) []knowledge.Document {
	info := data.FarmInfo
	crops := make([]string, 0, len(data.CurrentCrops))
	for _, crop := range data.CurrentCrops {
		crops = append(crops, fmt.Sprintf("%s (%s, %s)", crop.Name, crop.Area, crop.Stage))
	}
	content := fmt.Sprintf(
		"Farm: %s\nSize: %s\nLocation: %s\nSoil Type: %s\nWater Source: %s\nCurrent Crops: %s",
		info.Name, info.Size, info.Location, info.SoilType, info.WaterSource, strings.Join(crops, "; "),
	)
	return []knowledge.Document{{
		ID:      "farm_profile",
		Content: content,
		Metadata: map[string]any{
			"name": info.Name, "size": info.Size, "location": info.Location,
			"soil_type": info.SoilType, "water_source": info.WaterSource,
		},
		Timestamp: time.Now().UTC(),
		Source:    source,
		Category:  knowledge.CategoryCropInfo,
	}}
}

func schemeDocuments(data website.SchemesData, source string) []knowledge.Document {
	docs := make([]knowledge.Document, 0, len(data.AvailableSchemes))
	for _, scheme := range data.AvailableSchemes {
		content := fmt.Sprintf(
			"Government Scheme: %s\nDescription: %s\nBenefit: %s\nEligibility: %s\nApply at: %s",
			scheme.Name, scheme.Description, scheme.Benefit, scheme.Eligibility, scheme.ApplicationURL,
		)
		docs = append(docs, knowledge.Document{
			ID:      "scheme_" + slug(scheme.Name),
			Content: content,
			Metadata: map[string]any{
				"name": scheme.Name, "description": scheme.Description,
				"benefit": scheme.Benefit, "eligibility": scheme.Eligibility,
				"application_url": scheme.ApplicationURL,
			},
			Timestamp: time.Now().UTC(),
			Source:    source,
			Category:  knowledge.CategoryGovernment,
		})
	}
	return docs
}

// staticKnowledgeDocuments returns the fixed technique documents every
// deployment starts with.
func staticKnowledgeDocuments() []knowledge.Document {
	static := []struct {
		id      string
		content string
	}{
		{
			id: "irrigation_best_practices",
			content: "Irrigation Best Practices:\n" +
				"- Water early morning or late evening to reduce evaporation\n" +
				"- Check soil moisture before irrigating\n" +
				"- Use drip irrigation for water conservation\n" +
				"- Avoid overwatering which can cause root rot\n" +
				"- Consider crop water requirements and growth stage",
		},
		{
			id: "pest_control_organic",
			content: "Organic Pest Control Methods:\n" +
				"- Use neem oil as natural pesticide\n" +
				"- Introduce beneficial insects like ladybugs\n" +
				"- Plant companion crops that repel pests\n" +
				"- Regular field inspection for early detection\n" +
				"- Use pheromone traps for monitoring",
		},
		{
			id: "soil_health_indicators",
			content: "Soil Health Indicators:\n" +
				"- pH level should be 6.0-7.5 for most crops\n" +
				"- Organic matter content above 3%\n" +
				"- Good soil structure and drainage\n" +
				"- Presence of earthworms indicates healthy soil\n" +
				"- Regular soil testing recommended",
		},
	}

	docs := make([]knowledge.Document, 0, len(static))
	for _, s := range static {
		docs = append(docs, knowledge.Document{
			ID:        s.id,
			Content:   s.content,
			Metadata:  map[string]any{"type": "static_knowledge"},
			Timestamp: time.Now().UTC(),
			Source:    "static",
			Category:  knowledge.CategoryTechniques,
		})
	}
	return docs
}

// slug lowercases a name and replaces spaces for use in document ids.
func slug(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
}

package knowledge

import (
	"context"
	"time"
)

// Category labels a document for filtering and response composition.
type Category string

// The fixed category taxonomy.
const (
	CategoryMarketData   Category = "market_data"
	CategoryFarmingTasks Category = "farming_tasks"
	CategoryCropInfo     Category = "crop_info"
	CategoryCommunity    Category = "community"
	CategoryGovernment   Category = "government"
	CategoryWeather      Category = "weather"
	CategoryTechniques   Category = "techniques"
)

// Categories maps each category to a human-readable description.
var Categories = map[Category]string{
	CategoryMarketData:   "Market prices and trading information",
	CategoryFarmingTasks: "Agricultural tasks and scheduling",
	CategoryCropInfo:     "Crop recommendations and guidance",
	CategoryCommunity:    "Community discussions and tips",
	CategoryGovernment:   "Government schemes and policies",
	CategoryWeather:      "Weather and environmental data",
	CategoryTechniques:   "Farming techniques and best practices",
}

// Document is a unit of retrievable knowledge.
type Document struct {
	// ID is unique and stable across restarts. Re-adding an id replaces
	// the previous document (insert-or-replace).
	ID string

	// Content is the plain text searched against, already rendered from
	// structured data into prose by the producer.
	Content string

	// Metadata carries the original structured record.
	Metadata map[string]any

	// Embedding is optional; when empty the base encodes Content itself.
	// An externally supplied embedding must match the encoder dimension.
	Embedding []float32

	// Timestamp is the creation/refresh time. Zero means "now".
	Timestamp time.Time

	// Source is the provenance tag (e.g. "market_prices", "static").
	Source string

	// Category is one of the fixed taxonomy values.
	Category Category
}

// SearchResult is one similarity match, produced per query.
type SearchResult struct {
	DocumentID      string         `json:"document_id"`
	SimilarityScore float32        `json:"similarity_score"`
	Metadata        map[string]any `json:"metadata"`
	Source          string         `json:"source"`
	Category        Category       `json:"category"`
	Timestamp       time.Time      `json:"timestamp"`
}

// Embedder generates vector embeddings from text.
//
// Embeddings are dense numerical representations that capture semantic
// meaning, enabling similarity search. Implementations can use local
// models (FastEmbed) or remote inference (TEI).
type Embedder interface {
	// EmbedDocuments generates embeddings for multiple texts.
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)

	// EmbedQuery generates an embedding for a single query.
	EmbedQuery(ctx context.Context, text string) ([]float32, error)

	// Dimension returns the fixed output dimension of the model.
	Dimension() int
}

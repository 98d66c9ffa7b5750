package website

import "time"

// Result is the envelope every section fetch resolves to. A failed fetch
// carries Error and Success=false; callers never see a partial payload.
type Result[T any] struct {
	Success   bool      `json:"success"`
	Data      T         `json:"data,omitempty"`
	Source    string    `json:"source,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Error     string    `json:"error,omitempty"`
}

func ok[T any](data T, source string) Result[T] {
	return Result[T]{Success: true, Data: data, Source: source, Timestamp: time.Now().UTC()}
}

func fail[T any](err error) Result[T] {
	return Result[T]{Success: false, Error: err.Error(), Timestamp: time.Now().UTC()}
}

// MarketPrice is one commodity price row from the market-prices section.
type MarketPrice struct {
	ID           string  `json:"id"`
	Commodity    string  `json:"commodity"`
	CurrentPrice float64 `json:"currentPrice"`
	Unit         string  `json:"unit"`
	Market       string  `json:"market"`
	State        string  `json:"state"`
	Quality      string  `json:"quality"`
	Trend        string  `json:"trend"`
	LastUpdated  string  `json:"lastUpdated"`
}

// LiveScrape is the payload of a forced live market scrape.
type LiveScrape struct {
	Prices       []MarketPrice `json:"data"`
	Sources      []string      `json:"scrapedFrom"`
	TotalRecords int           `json:"totalRecordsScraped"`
	ScrapingTime float64       `json:"scrapingTime"`
}

// FarmTask is one scheduled farming activity.
type FarmTask struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Priority string `json:"priority"`
	Due      string `json:"due"`
	Status   string `json:"status,omitempty"`
}

// TasksData is the tasks section snapshot.
type TasksData struct {
	ActiveTasks    []FarmTask `json:"active_tasks"`
	CompletedTasks int        `json:"completed_tasks"`
	PendingTasks   int        `json:"pending_tasks"`
	Categories     []string   `json:"categories"`
}

// CropRecommendation is one recommended crop with suitability data.
type CropRecommendation struct {
	Name          string `json:"name"`
	Season        string `json:"season"`
	Suitability   int    `json:"suitability"`
	ExpectedYield string `json:"expected_yield"`
}

// CropData is the crop-recommendations section snapshot.
type CropData struct {
	RecommendedCrops []CropRecommendation `json:"recommended_crops"`
	SoilConditions   map[string]any       `json:"soil_conditions"`
	WeatherFactors   map[string]string    `json:"weather_factors"`
}

// CommunityPost is one community feed entry.
type CommunityPost struct {
	User     string `json:"user"`
	Content  string `json:"content"`
	Likes    int    `json:"likes"`
	Comments int    `json:"comments"`
}

// CommunityData is the community section snapshot.
type CommunityData struct {
	RecentPosts    []CommunityPost `json:"recent_posts"`
	ActiveGroups   []string        `json:"active_groups"`
	TrendingTopics []string        `json:"trending_topics"`
}

// FarmInfo describes the user's farm.
type FarmInfo struct {
	Name        string `json:"name"`
	Size        string `json:"size"`
	Location    string `json:"location"`
	SoilType    string `json:"soil_type"`
	WaterSource string `json:"water_source"`
}

// FarmCrop is one crop currently on the farm.
type FarmCrop struct {
	Name   string `json:"name"`
	Area   string `json:"area"`
	Stage  string `json:"stage"`
	Health string `json:"health"`
}

// FarmData is the farm-profile section snapshot.
type FarmData struct {
	FarmInfo         FarmInfo   `json:"farm_info"`
	CurrentCrops     []FarmCrop `json:"current_crops"`
	Equipment        []string   `json:"equipment"`
	RecentActivities []string   `json:"recent_activities"`
}

// GovernmentScheme is one support program available to farmers.
type GovernmentScheme struct {
	Name           string `json:"name"`
	Description    string `json:"description"`
	Benefit        string `json:"benefit"`
	Eligibility    string `json:"eligibility"`
	ApplicationURL string `json:"application_url"`
}

// SchemesData is the government-schemes section snapshot.
type SchemesData struct {
	AvailableSchemes  []GovernmentScheme `json:"available_schemes"`
	RecentUpdates     []string           `json:"recent_updates"`
	ApplicationStatus map[string]string  `json:"application_status"`
}

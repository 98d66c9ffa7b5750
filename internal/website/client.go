// Package website provides read-only adapters over the farm application
// backend: structured snapshots of market prices, tasks, crop
// recommendations, community activity, the farm profile and government
// schemes.
//
// Only the market-prices section is wired to a live backend endpoint
// (with an optional forced scrape). The remaining sections return fixed
// illustrative snapshots standing in for backends that are not part of
// this deployment; callers depend only on the Result envelope, not on the
// snapshot content being live.
package website

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/haritlabs/agrod/internal/logging"
)

// Config holds website backend settings.
type Config struct {
	// BaseURL is the farm application backend, e.g. http://localhost:3001.
	BaseURL string

	// Timeout bounds a single backend call.
	Timeout time.Duration
}

// Client fetches section snapshots from the website backend.
type Client struct {
	baseURL string
	client  *http.Client
	logger  *logging.Logger
}

// NewClient creates a website data client.
func NewClient(cfg Config, logger *logging.Logger) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		logger:  logger.Named("website"),
	}
}

// marketResponse is the backend's market-prices body.
type marketResponse struct {
	Data                []MarketPrice `json:"data"`
	ScrapedFrom         []string      `json:"scrapedFrom"`
	TotalRecordsScraped int           `json:"totalRecordsScraped"`
	ScrapingTime        float64       `json:"scrapingTime"`
}

// getMarket fetches the market-prices endpoint, optionally forcing a
// live scrape.
func (c *Client) getMarket(ctx context.Context, scrapeLive bool) (*marketResponse, error) {
	endpoint := c.baseURL + "/api/market-prices"
	if scrapeLive {
		endpoint += "?" + url.Values{"scrape": {"true"}}.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching market prices: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("market prices API returned %d", resp.StatusCode)
	}

	var body marketResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding market prices: %w", err)
	}

	// Validate rows at the boundary so malformed records never reach the
	// vector index.
	valid := body.Data[:0]
	for _, row := range body.Data {
		if row.Commodity == "" {
			c.logger.Warn(ctx, "dropping market row without commodity", zap.String("id", row.ID))
			continue
		}
		valid = append(valid, row)
	}
	body.Data = valid

	return &body, nil
}

// GetMarketPrices returns the market-prices section, optionally forcing
// the backend to scrape fresh data first.
func (c *Client) GetMarketPrices(ctx context.Context, scrapeLive bool) Result[[]MarketPrice] {
	body, err := c.getMarket(ctx, scrapeLive)
	if err != nil {
		c.logger.Error(ctx, "failed to fetch market prices", zap.Error(err))
		return fail[[]MarketPrice](err)
	}
	return ok(body.Data, "market_prices_api")
}

// ScrapeMarketPricesLive triggers a live scrape and returns the scraped
// rows together with scrape provenance.
func (c *Client) ScrapeMarketPricesLive(ctx context.Context) Result[LiveScrape] {
	body, err := c.getMarket(ctx, true)
	if err != nil {
		c.logger.Error(ctx, "live market scrape failed", zap.Error(err))
		return fail[LiveScrape](err)
	}
	return ok(LiveScrape{
		Prices:       body.Data,
		Sources:      body.ScrapedFrom,
		TotalRecords: body.TotalRecordsScraped,
		ScrapingTime: body.ScrapingTime,
	}, "market_prices_api")
}

// GetTasks returns the farming tasks section.
func (c *Client) GetTasks(ctx context.Context) Result[TasksData] {
	return ok(tasksSnapshot(), "tasks_data")
}

// GetCropRecommendations returns the crop recommendations section.
func (c *Client) GetCropRecommendations(ctx context.Context) Result[CropData] {
	return ok(cropSnapshot(), "crop_recommendations")
}

// GetCommunity returns the community feed section.
func (c *Client) GetCommunity(ctx context.Context) Result[CommunityData] {
	return ok(communitySnapshot(), "community_data")
}

// GetFarmProfile returns the user's farm section.
func (c *Client) GetFarmProfile(ctx context.Context) Result[FarmData] {
	return ok(farmSnapshot(), "farm_data")
}

// GetGovernmentSchemes returns the government schemes section.
func (c *Client) GetGovernmentSchemes(ctx context.Context) Result[SchemesData] {
	return ok(schemesSnapshot(), "government_schemes")
}

// FarmProfileText renders the farm profile as the plain-text form the
// context enhancement layer parses for a "Location:" line.
func (c *Client) FarmProfileText(ctx context.Context) (string, error) {
	res := c.GetFarmProfile(ctx)
	if !res.Success {
		return "", fmt.Errorf("farm profile unavailable: %s", res.Error)
	}

	info := res.Data.FarmInfo
	var sb strings.Builder
	fmt.Fprintf(&sb, "Farm: %s\n", info.Name)
	fmt.Fprintf(&sb, "Size: %s\n", info.Size)
	fmt.Fprintf(&sb, "Location: %s\n", info.Location)
	fmt.Fprintf(&sb, "Soil Type: %s\n", info.SoilType)
	fmt.Fprintf(&sb, "Water Source: %s\n", info.WaterSource)
	for _, crop := range res.Data.CurrentCrops {
		fmt.Fprintf(&sb, "Crop: %s (%s, %s, health %s)\n", crop.Name, crop.Area, crop.Stage, crop.Health)
	}
	return sb.String(), nil
}

package website

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haritlabs/agrod/internal/logging"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{BaseURL: srv.URL}, logging.NewTestLogger().Logger)
}

func TestGetMarketPrices(t *testing.T) {
	ctx := context.Background()

	t.Run("returns rows from the backend", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/market-prices", r.URL.Path)
			assert.Empty(t, r.URL.Query().Get("scrape"))
			w.Write([]byte(`{"data":[
				{"id":"1","commodity":"Wheat","currentPrice":2100,"unit":"quintal","market":"Ludhiana Mandi","state":"Punjab"},
				{"id":"2","commodity":"Rice","currentPrice":2800,"unit":"quintal","market":"Karnal Mandi","state":"Haryana"}
			]}`))
		})

		res := client.GetMarketPrices(ctx, false)
		require.True(t, res.Success)
		require.Len(t, res.Data, 2)
		assert.Equal(t, "Wheat", res.Data[0].Commodity)
		assert.Equal(t, 2100.0, res.Data[0].CurrentPrice)
		assert.Equal(t, "market_prices_api", res.Source)
		assert.False(t, res.Timestamp.IsZero())
	})

	t.Run("passes scrape=true when forcing a live scrape", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "true", r.URL.Query().Get("scrape"))
			w.Write([]byte(`{"data":[]}`))
		})

		res := client.GetMarketPrices(ctx, true)
		assert.True(t, res.Success)
	})

	t.Run("drops rows without a commodity", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"data":[
				{"id":"1","commodity":"Wheat","currentPrice":2100},
				{"id":"2","currentPrice":999}
			]}`))
		})

		res := client.GetMarketPrices(ctx, false)
		require.True(t, res.Success)
		require.Len(t, res.Data, 1)
		assert.Equal(t, "Wheat", res.Data[0].Commodity)
	})

	t.Run("fails on backend error status", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})

		res := client.GetMarketPrices(ctx, false)
		assert.False(t, res.Success)
		assert.NotEmpty(t, res.Error)
		assert.Empty(t, res.Data)
	})

	t.Run("fails on unreachable backend", func(t *testing.T) {
		client := NewClient(Config{BaseURL: "http://127.0.0.1:1"}, logging.NewTestLogger().Logger)
		res := client.GetMarketPrices(ctx, false)
		assert.False(t, res.Success)
		assert.NotEmpty(t, res.Error)
	})

	t.Run("fails on malformed body", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{not json`))
		})

		res := client.GetMarketPrices(ctx, false)
		assert.False(t, res.Success)
	})
}

func TestScrapeMarketPricesLive(t *testing.T) {
	ctx := context.Background()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "true", r.URL.Query().Get("scrape"))
		w.Write([]byte(`{
			"data":[{"id":"1","commodity":"Onion","currentPrice":1500}],
			"scrapedFrom":["agmarknet"],
			"totalRecordsScraped":1,
			"scrapingTime":2.5
		}`))
	})

	res := client.ScrapeMarketPricesLive(ctx)
	require.True(t, res.Success)
	require.Len(t, res.Data.Prices, 1)
	assert.Equal(t, "Onion", res.Data.Prices[0].Commodity)
	assert.Equal(t, []string{"agmarknet"}, res.Data.Sources)
	assert.Equal(t, 1, res.Data.TotalRecords)
	assert.Equal(t, 2.5, res.Data.ScrapingTime)
}

func TestSnapshotSections(t *testing.T) {
	ctx := context.Background()
	client := NewClient(Config{BaseURL: "http://localhost:3001"}, logging.NewTestLogger().Logger)

	t.Run("tasks", func(t *testing.T) {
		res := client.GetTasks(ctx)
		require.True(t, res.Success)
		assert.NotEmpty(t, res.Data.ActiveTasks)
		assert.Equal(t, "tasks_data", res.Source)
	})

	t.Run("crop recommendations", func(t *testing.T) {
		res := client.GetCropRecommendations(ctx)
		require.True(t, res.Success)
		assert.NotEmpty(t, res.Data.RecommendedCrops)
	})

	t.Run("community", func(t *testing.T) {
		res := client.GetCommunity(ctx)
		require.True(t, res.Success)
		assert.NotEmpty(t, res.Data.RecentPosts)
	})

	t.Run("farm profile", func(t *testing.T) {
		res := client.GetFarmProfile(ctx)
		require.True(t, res.Success)
		assert.NotEmpty(t, res.Data.FarmInfo.Location)
	})

	t.Run("government schemes", func(t *testing.T) {
		res := client.GetGovernmentSchemes(ctx)
		require.True(t, res.Success)
		assert.NotEmpty(t, res.Data.AvailableSchemes)
	})
}

func TestFarmProfileText(t *testing.T) {
	client := NewClient(Config{BaseURL: "http://localhost:3001"}, logging.NewTestLogger().Logger)

	text, err := client.FarmProfileText(context.Background())
	require.NoError(t, err)
	assert.Contains(t, text, "Location:")
	assert.Contains(t, text, "Farm:")
	assert.Contains(t, text, "Crop:")
}

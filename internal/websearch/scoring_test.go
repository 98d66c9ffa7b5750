package websearch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRelevanceScore(t *testing.T) {
	t.Run("full match with saturated domain terms scores 1.0", func(t *testing.T) {
		body := "wheat price trends: farming agriculture crop soil irrigation advice"
		score := RelevanceScore(body, "wheat price trends")
		assert.InDelta(t, 1.0, score, 1e-9)
	})

	t.Run("no match scores 0.0", func(t *testing.T) {
		score := RelevanceScore("completely unrelated text about astronomy", "wheat price")
		assert.InDelta(t, 0.0, score, 1e-9)
	})

	t.Run("partial query match scales the keyword component", func(t *testing.T) {
		// One of two query words present, no domain terms.
		score := RelevanceScore("the wheat report", "wheat price")
		assert.InDelta(t, 0.35, score, 1e-9)
	})

	t.Run("domain component saturates at five terms", func(t *testing.T) {
		five := RelevanceScore("farming agriculture crop soil irrigation", "zzz")
		eight := RelevanceScore("farming agriculture crop soil irrigation fertilizer pest yield", "zzz")
		assert.InDelta(t, 0.3, five, 1e-9)
		assert.InDelta(t, 0.3, eight, 1e-9)
	})

	t.Run("matching is case-insensitive", func(t *testing.T) {
		score := RelevanceScore("WHEAT Farming In Punjab", "wheat")
		assert.Greater(t, score, 0.7)
	})

	t.Run("empty query yields only the domain component", func(t *testing.T) {
		score := RelevanceScore("crop rotation basics", "")
		assert.InDelta(t, 0.06, score, 1e-9)
	})

	t.Run("score stays within bounds", func(t *testing.T) {
		for _, body := range []string{"", "wheat", "farming agriculture crop soil irrigation fertilizer pest yield wheat rice"} {
			score := RelevanceScore(body, "wheat rice")
			assert.GreaterOrEqual(t, score, 0.0)
			assert.LessOrEqual(t, score, 1.0)
		}
	})
}

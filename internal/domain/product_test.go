package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeRaw(t *testing.T, s string) map[string]interface{} {
	t.Helper()
	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(s), &raw))
	return raw
}

func TestParseProduct(t *testing.T) {
	t.Run("full record", func(t *testing.T) {
		p, err := ParseProduct(decodeRaw(t, `{
			"product_id": "p1", "product_name": "Milk", "category": "Dairy",
			"current_price": 10.5, "demand_score": 80, "stock_level": 20,
			"days_left": 3, "weekday": "Sunday", "season": "Winter"
		}`))
		require.NoError(t, err)

		assert.Equal(t, "p1", *p.ProductID)
		assert.Equal(t, "Milk", *p.ProductName)
		assert.Equal(t, "Dairy", p.CategoryValue())
		assert.Equal(t, 10.5, p.CurrentPriceValue())
		assert.Equal(t, 80, p.DemandScoreValue())
		assert.Equal(t, 20, p.StockLevelValue())
		assert.Equal(t, 3, p.DaysLeftValue())
		assert.Equal(t, "Sunday", p.WeekdayValue())
		assert.Equal(t, "Winter", p.SeasonValue())
	})

	t.Run("empty record uses defaults", func(t *testing.T) {
		p, err := ParseProduct(map[string]interface{}{})
		require.NoError(t, err)

		assert.Nil(t, p.ProductID)
		assert.Nil(t, p.Category)
		assert.Equal(t, DefaultCategory, p.CategoryValue())
		assert.Equal(t, DefaultSeason, p.SeasonValue())
		assert.Equal(t, DefaultWeekday, p.WeekdayValue())
		assert.Equal(t, DefaultCurrentPrice, p.CurrentPriceValue())
		assert.Equal(t, DefaultDemandScore, p.DemandScoreValue())
		assert.Equal(t, DefaultStockLevel, p.StockLevelValue())
		assert.Equal(t, DefaultDaysLeft, p.DaysLeftValue())
	})

	t.Run("explicit zero is not a default", func(t *testing.T) {
		p, err := ParseProduct(decodeRaw(t, `{"current_price": 0, "days_left": 0, "stock_level": 0}`))
		require.NoError(t, err)

		assert.Equal(t, 0.0, p.CurrentPriceValue())
		assert.Equal(t, 0, p.DaysLeftValue())
		assert.Equal(t, 0, p.StockLevelValue())
	})

	t.Run("null number takes the default", func(t *testing.T) {
		p, err := ParseProduct(decodeRaw(t, `{"demand_score": null}`))
		require.NoError(t, err)

		assert.Equal(t, DefaultDemandScore, p.DemandScoreValue())
	})

	t.Run("null label takes no default", func(t *testing.T) {
		p, err := ParseProduct(decodeRaw(t, `{"category": null, "season": null, "weekday": null}`))
		require.NoError(t, err)

		assert.Nil(t, p.Category)
		assert.True(t, p.CategoryNull)
		assert.Equal(t, "", p.CategoryValue())
		assert.Equal(t, "", p.SeasonValue())
		assert.Equal(t, "", p.WeekdayValue())
	})

	t.Run("loosely typed values", func(t *testing.T) {
		p, err := ParseProduct(decodeRaw(t, `{"product_id": 42, "demand_score": "80", "current_price": "12.5", "stock_level": 30.0}`))
		require.NoError(t, err)

		assert.Equal(t, "42", *p.ProductID)
		assert.Equal(t, 80, p.DemandScoreValue())
		assert.Equal(t, 12.5, p.CurrentPriceValue())
		assert.Equal(t, 30, p.StockLevelValue())
	})

	t.Run("unconvertible value", func(t *testing.T) {
		_, err := ParseProduct(decodeRaw(t, `{"demand_score": "very high"}`))
		assert.ErrorContains(t, err, "demand_score")

		_, err = ParseProduct(decodeRaw(t, `{"category": {"name": "Dairy"}}`))
		assert.ErrorContains(t, err, "category")
	})
}

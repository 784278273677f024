package analytics

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"julianmorley.ca/con-plar/retail-assistant/pkg/models"
)

func TestSalesTrend(t *testing.T) {
	sales := AggregateSales([]models.OrderLine{
		line("high", 101, "1"),
		line("moderate", 51, "1"),
		line("edge", 100, "1"),
		line("low", 50, "1"),
		line("zero", 0, "1"),
	})
	assert.Equal(t, TrendHigh, SalesTrend("high", sales))
	assert.Equal(t, TrendModerate, SalesTrend("moderate", sales))
	assert.Equal(t, TrendModerate, SalesTrend("edge", sales))
	assert.Equal(t, TrendLow, SalesTrend("low", sales))
	assert.Equal(t, TrendNoSales, SalesTrend("zero", sales))
	assert.Equal(t, TrendNoData, SalesTrend("missing", sales))
}

func TestSuggestPromotions(t *testing.T) {
	health := InventoryHealth{Overstock: []StockItem{
		{ID: "a", Stock: 60, Price: decimal.NewFromInt(100)},
		{ID: "b", Stock: 70, Price: decimal.NewFromInt(300)},
		{ID: "c", Stock: 80, Price: decimal.RequireFromString("9.99")},
		{ID: "d", Stock: 90, Price: decimal.NewFromInt(50)},
	}}
	got := SuggestPromotions(health)
	require.Len(t, got, 3)
	assert.Equal(t, 15, got[0].SuggestedPercent)
	assert.Equal(t, 30, got[1].SuggestedPercent)
	assert.Equal(t, 1, got[2].SuggestedPercent)
}

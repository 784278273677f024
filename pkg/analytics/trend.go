package analytics

const (
	TrendNoData   = "No sales data"
	TrendNoSales  = "No recent sales"
	TrendHigh     = "High demand"
	TrendModerate = "Moderate demand"
	TrendLow      = "Low demand"
)

// SalesTrend labels a product's demand from its units sold in the window.
func SalesTrend(productID string, sales *SalesSummary) string {
	ps, ok := sales.For(productID)
	switch {
	case !ok:
		return TrendNoData
	case ps.QuantitySold == 0:
		return TrendNoSales
	case ps.QuantitySold > 100:
		return TrendHigh
	case ps.QuantitySold > 50:
		return TrendModerate
	default:
		return TrendLow
	}
}

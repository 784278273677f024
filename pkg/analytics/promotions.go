package analytics

import "math"

const (
	promotionDiscountCap  = 30
	promotionDiscountRate = 0.15
)

type PromotionSuggestion struct {
	Item             StockItem `json:"item"`
	SuggestedPercent int       `json:"suggested_discount_percent"`
}

// SuggestPromotions proposes a discount for the first overstocked items:
// 15% of the unit price, truncated, never above 30.
func SuggestPromotions(health InventoryHealth) []PromotionSuggestion {
	items := Top(health.Overstock, TopN)
	out := make([]PromotionSuggestion, 0, len(items))
	for _, item := range items {
		pct := int(math.Trunc(item.Price.InexactFloat64() * promotionDiscountRate))
		out = append(out, PromotionSuggestion{Item: item, SuggestedPercent: min(promotionDiscountCap, pct)})
	}
	return out
}

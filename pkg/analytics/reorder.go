package analytics

import (
	"encoding/json"
	"fmt"
	"math"

	"julianmorley.ca/con-plar/retail-assistant/pkg/models"
)

type Urgency string

const (
	UrgencyNone   Urgency = "NONE"
	UrgencySoon   Urgency = "SOON"
	UrgencyUrgent Urgency = "URGENT"
)

// approachingFactor bounds the SOON tier: min_stock < stock <= 1.5*min_stock.
const approachingFactor = 1.5

// Days is a stock cover in days; +Inf (no sales) encodes as JSON null.
type Days float64

func (d Days) IsInf() bool {
	return math.IsInf(float64(d), 1)
}

func (d Days) MarshalJSON() ([]byte, error) {
	if math.IsInf(float64(d), 0) || math.IsNaN(float64(d)) {
		return []byte("null"), nil
	}
	return json.Marshal(float64(d))
}

// ReorderRecommendation is the restocking verdict for one product.
type ReorderRecommendation struct {
	ProductID     string  `json:"id"`
	Name          string  `json:"name"`
	Category      string  `json:"category"`
	CurrentStock  int     `json:"current_stock"`
	MinStock      int     `json:"min_stock"`
	AvgDailySales float64 `json:"avg_daily_sales"`
	DaysRemaining Days    `json:"days_remaining"`
	Urgency       Urgency `json:"urgency"`
	// SuggestedQty is RawQty floored per tier: min_stock when URGENT, 0 when SOON.
	SuggestedQty int `json:"reorder_quantity"`
	// RawQty is round(demand over lead time + safety stock - current stock).
	RawQty    int    `json:"raw_quantity"`
	Rationale string `json:"rationale,omitempty"`
}

type ReorderSuggestion struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Reason    string `json:"reason"`
}

type ReorderPlan struct {
	Urgent      []ReorderRecommendation `json:"urgent_reorder"`
	Approaching []ReorderRecommendation `json:"approaching_reorder"`
	Suggestions []ReorderSuggestion     `json:"reorder_suggestions"`
}

// Recommend computes the reorder verdict for p given its sales history.
func Recommend(p models.Product, sales *SalesSummary) ReorderRecommendation {
	ps, _ := sales.For(p.ID)

	avgDaily := 0.0
	if ps.QuantitySold > 0 {
		avgDaily = float64(ps.QuantitySold) / ObservationWindowDays
	}
	days := Days(math.Inf(1))
	if avgDaily > 0 {
		days = Days(float64(p.Stock) / avgDaily)
	}

	safetyStock := float64(p.MinStock) * SafetyStockRatio
	raw := int(math.Round(avgDaily*LeadTimeDays + safetyStock - float64(p.Stock)))

	rec := ReorderRecommendation{
		ProductID:     p.ID,
		Name:          p.Name,
		Category:      p.Category,
		CurrentStock:  p.Stock,
		MinStock:      p.MinStock,
		AvgDailySales: avgDaily,
		DaysRemaining: days,
		Urgency:       UrgencyNone,
		RawQty:        raw,
	}
	switch {
	case p.Stock <= p.MinStock:
		rec.Urgency = UrgencyUrgent
		rec.SuggestedQty = max(raw, p.MinStock)
	case float64(p.Stock) <= float64(p.MinStock)*approachingFactor:
		rec.Urgency = UrgencySoon
		rec.SuggestedQty = max(raw, 0)
	}
	if raw > 0 {
		rec.Rationale = fmt.Sprintf("Based on %.1f units/day average sales and %d days lead time", avgDaily, LeadTimeDays)
	}
	return rec
}

// PlanReorders groups recommendations by urgency and lists a suggestion for
// every product whose raw quantity is positive, whatever its tier.
func PlanReorders(products []models.Product, sales *SalesSummary) ReorderPlan {
	plan := ReorderPlan{
		Urgent:      []ReorderRecommendation{},
		Approaching: []ReorderRecommendation{},
		Suggestions: []ReorderSuggestion{},
	}
	for _, p := range products {
		rec := Recommend(p, sales)
		switch rec.Urgency {
		case UrgencyUrgent:
			plan.Urgent = append(plan.Urgent, rec)
		case UrgencySoon:
			plan.Approaching = append(plan.Approaching, rec)
		}
		if rec.RawQty > 0 {
			plan.Suggestions = append(plan.Suggestions, ReorderSuggestion{
				ProductID: rec.ProductID,
				Quantity:  rec.RawQty,
				Reason:    rec.Rationale,
			})
		}
	}
	return plan
}

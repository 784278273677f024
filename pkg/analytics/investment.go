package analytics

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"julianmorley.ca/con-plar/retail-assistant/pkg/models"
)

// Strategy names one of the two investment scoring schemes.
type Strategy string

const (
	// StrategyComposite is the capped 100-point composite behind the
	// "best investment" and top-pick views.
	StrategyComposite Strategy = "composite"
	// StrategyPotential is the weighted average behind the detailed
	// "investment potential" view.
	StrategyPotential Strategy = "potential"
)

const (
	velocityCap   = 30.0
	marginCap     = 25.0
	efficiencyCap = 25.0
	revenueCap    = 20.0
	coverageDays  = 14.0

	weightVelocity   = 0.35
	weightMargin     = 0.25
	weightEfficiency = 0.20
	weightRevenue    = 0.20
)

const (
	FactorHighVelocity   = "High sales velocity"
	FactorStrongMargin   = "Strong profit margin"
	FactorRevenueLeader  = "Significant revenue contributor"
	factorVelocityCutoff = 1.0
	factorMarginCutoff   = 30.0
	factorRevenueCutoff  = 10.0
)

// CompositeScore is the 100-point breakdown for one product.
type CompositeScore struct {
	Product         models.Product `json:"product"`
	SalesVelocity   float64        `json:"sales_velocity"`
	VelocityScore   float64        `json:"velocity_score"`
	MarginScore     float64        `json:"margin_score"`
	EfficiencyScore float64        `json:"efficiency_score"`
	RevenueScore    float64        `json:"revenue_score"`
	Total           float64        `json:"total"`
	Trend           string         `json:"trend"`
}

// PotentialMetrics are the raw inputs of the weighted potential score.
type PotentialMetrics struct {
	SalesVelocity       float64 `json:"sales_velocity"`
	ProfitMargin        float64 `json:"profit_margin"`
	StockEfficiency     float64 `json:"stock_efficiency"`
	RevenueContribution float64 `json:"revenue_contribution"`
}

type PotentialScore struct {
	Product models.Product   `json:"product"`
	Metrics PotentialMetrics `json:"metrics"`
	Total   float64          `json:"total_score"`
	Factors []string         `json:"recommendation_factors"`
}

func salesVelocity(quantity int) float64 {
	return float64(quantity) / ObservationWindowDays
}

// marginPercent is (price-cost)/price*100, or 0 for a zero price.
func marginPercent(p models.Product) float64 {
	price := p.UnitPrice.InexactFloat64()
	if price == 0 {
		return 0
	}
	return (price - p.CostPrice.InexactFloat64()) / price * 100
}

// ScoreComposite scores every product on the 100-point scheme, in input order.
//
// The four sub-scores are capped independently (velocity 30, margin 25,
// efficiency 25, revenue 20) and summed without renormalisation; the revenue
// share is doubled before its cap.
func ScoreComposite(products []models.Product, sales *SalesSummary) []CompositeScore {
	totalRevenue := sales.TotalRevenue().InexactFloat64()
	scores := make([]CompositeScore, 0, len(products))
	for _, p := range products {
		ps, _ := sales.For(p.ID)
		velocity := salesVelocity(ps.QuantitySold)

		score := CompositeScore{
			Product:       p,
			SalesVelocity: velocity,
			VelocityScore: math.Min(velocity*10, velocityCap),
			MarginScore:   math.Max(0, math.Min(marginPercent(p), marginCap)),
			Trend:         SalesTrend(p.ID, sales),
		}

		ideal := velocity * coverageDays
		if ideal > 0 {
			stock := float64(p.Stock)
			score.EfficiencyScore = math.Max(0, efficiencyCap*(1-math.Abs(stock-ideal)/ideal))
		}
		if totalRevenue > 0 {
			share := ps.Revenue.InexactFloat64() / totalRevenue * 100
			score.RevenueScore = math.Min(share*2, revenueCap)
		}
		score.Total = score.VelocityScore + score.MarginScore + score.EfficiencyScore + score.RevenueScore
		scores = append(scores, score)
	}
	return scores
}

// RankComposite orders scores by total, highest first, keeping input order on ties.
func RankComposite(scores []CompositeScore) []CompositeScore {
	ranked := append([]CompositeScore(nil), scores...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Total > ranked[j].Total
	})
	return ranked
}

// ScorePotential scores every product on the weighted scheme, in input order.
//
// Velocity (units/day) and stock efficiency (0..1) are weighted in their raw
// units next to two percentage metrics, so the total is dominated by margin
// and revenue share. That mix is kept deliberately; see DESIGN.md.
func ScorePotential(products []models.Product, sales *SalesSummary) []PotentialScore {
	totalRevenue := decimal.Max(sales.TotalRevenue(), decimal.NewFromInt(1)).InexactFloat64()
	scores := make([]PotentialScore, 0, len(products))
	for _, p := range products {
		ps, _ := sales.For(p.ID)
		metrics := PotentialMetrics{
			SalesVelocity:       salesVelocity(ps.QuantitySold),
			ProfitMargin:        marginPercent(p),
			StockEfficiency:     math.Min(float64(p.Stock)/float64(max(ps.QuantitySold, 1)), 1),
			RevenueContribution: ps.Revenue.InexactFloat64() / totalRevenue * 100,
		}
		score := PotentialScore{
			Product: p,
			Metrics: metrics,
			Total: metrics.SalesVelocity*weightVelocity +
				metrics.ProfitMargin*weightMargin +
				metrics.StockEfficiency*weightEfficiency +
				metrics.RevenueContribution*weightRevenue,
			Factors: []string{},
		}
		if metrics.SalesVelocity > factorVelocityCutoff {
			score.Factors = append(score.Factors, FactorHighVelocity)
		}
		if metrics.ProfitMargin > factorMarginCutoff {
			score.Factors = append(score.Factors, FactorStrongMargin)
		}
		if metrics.RevenueContribution > factorRevenueCutoff {
			score.Factors = append(score.Factors, FactorRevenueLeader)
		}
		scores = append(scores, score)
	}
	return scores
}

func RankPotential(scores []PotentialScore) []PotentialScore {
	ranked := append([]PotentialScore(nil), scores...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Total > ranked[j].Total
	})
	return ranked
}

// Top returns at most n leading elements of ranked.
func Top[T any](ranked []T, n int) []T {
	if len(ranked) > n {
		return ranked[:n]
	}
	return ranked
}

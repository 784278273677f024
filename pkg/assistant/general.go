package assistant

import (
	"strings"
	"time"

	"julianmorley.ca/con-plar/retail-assistant/pkg/analytics"
)

// Topic is the sub-branch the general responder answered with.
type Topic string

const (
	TopicTopPick        Topic = "top_pick"
	TopicLowStock       Topic = "low_stock"
	TopicExpiredCoupons Topic = "expired_coupons"
	TopicActiveCoupons  Topic = "active_coupons"
	TopicPromotions     Topic = "promotions"
	TopicSales          Topic = "sales"
	TopicGreeting       Topic = "greeting"
)

// respondGeneral answers queries that matched neither keyword list. Topics are
// tried in a fixed order and a topic with nothing to say falls through to the
// next one. Coupons are classified only when the query mentions them.
func respondGeneral(report *Report, d *dataset, today time.Time) error {
	q := strings.ToLower(report.Query)

	if strings.Contains(q, "investment") {
		if top := d.bestInvestments(); len(top) > 0 {
			report.Topic = TopicTopPick
			report.Strategy = analytics.StrategyComposite
			report.Composite = top[:1]
			report.Text = renderTopPick(top[0].Product)
			return nil
		}
	}

	var health *analytics.InventoryHealth
	inventory := func() *analytics.InventoryHealth {
		if health == nil {
			h := d.inventory()
			health = &h
			report.Inventory = health
		}
		return health
	}

	if containsAny(q, []string{"stock", "inventory", "reorder"}) {
		if low := inventory().LowStock; len(low) > 0 {
			report.Topic = TopicLowStock
			report.Text = renderLowStockAlert(low)
			return nil
		}
	}

	if strings.Contains(q, "coupon") {
		coupons, err := analytics.ClassifyCoupons(d.records.Coupons, today)
		if err != nil {
			return err
		}
		report.Coupons = &coupons

		switch {
		case strings.Contains(q, "expired"):
			report.Topic = TopicExpiredCoupons
			report.Text = renderExpiredCouponList(coupons.Expired)
			return nil
		case strings.Contains(q, "active"):
			report.Topic = TopicActiveCoupons
			report.Text = renderActiveCouponList(coupons.Active)
			return nil
		case strings.Contains(q, "suggest") || strings.Contains(q, "recommend"):
			if promos := analytics.SuggestPromotions(*inventory()); len(promos) > 0 {
				report.Topic = TopicPromotions
				report.Promotions = promos
				report.Text = renderPromotions(promos)
				return nil
			}
		}
	}

	if strings.Contains(q, "sales") {
		report.Topic = TopicSales
		report.Sales = d.sales
		report.Text = renderSalesSummary(d.sales)
		return nil
	}

	report.Topic = TopicGreeting
	report.Text = greetingText
	return nil
}

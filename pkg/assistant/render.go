package assistant

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"julianmorley.ca/con-plar/retail-assistant/pkg/analytics"
	"julianmorley.ca/con-plar/retail-assistant/pkg/models"
)

const greetingText = "👋 Hello! I'm your retail assistant. I can help you with:\n\n" +
	"📈 Product investment recommendations\n" +
	"📦 Inventory management\n" +
	"🏷️ Coupon analysis\n" +
	"📊 Sales insights\n\n" +
	"What would you like to know? 😊"

var printer = message.NewPrinter(language.English)

// revenue formats an amount with thousands separators and two decimals.
func revenue(d decimal.Decimal) string {
	return printer.Sprintf("$%.2f", d.InexactFloat64())
}

func days(d analytics.Days) string {
	if d.IsInf() {
		return "∞"
	}
	return fmt.Sprintf("%.1f", float64(d))
}

func renderBestInvestments(top []analytics.CompositeScore) string {
	var b strings.Builder
	b.WriteString("🎯 Top Investment Recommendations:\n\n")
	for i, s := range top {
		fmt.Fprintf(&b, "#%d %s\n", i+1, s.Product.Name)
		fmt.Fprintf(&b, "📊 Investment Score: %.1f/100\n", s.Total)
		fmt.Fprintf(&b, "💰 Current Price: $%.2f\n", s.Product.UnitPrice.InexactFloat64())
		fmt.Fprintf(&b, "📦 Stock Level: %d\n", s.Product.Stock)
		fmt.Fprintf(&b, "📈 Sales Trend: %s\n\n", s.Trend)
	}
	return b.String()
}

func renderInvestmentPotential(top []analytics.PotentialScore) string {
	var b strings.Builder
	b.WriteString("🎯 Investment Recommendations:\n\n")
	for i, s := range top {
		fmt.Fprintf(&b, "#%d - %s\n", i+1, s.Product.Name)
		fmt.Fprintf(&b, "📊 Investment Score: %.1f/100\n", s.Total)
		fmt.Fprintf(&b, "💰 Price: $%.2f\n", s.Product.UnitPrice.InexactFloat64())
		fmt.Fprintf(&b, "📈 Sales Velocity: %.1f units/day\n", s.Metrics.SalesVelocity)
		fmt.Fprintf(&b, "✨ Profit Margin: %.1f%%\n", s.Metrics.ProfitMargin)
		if len(s.Factors) > 0 {
			b.WriteString("🌟 Key Strengths:\n")
			for _, f := range s.Factors {
				fmt.Fprintf(&b, "   • %s\n", f)
			}
		}
		b.WriteString("\n")
	}
	b.WriteString("Would you like detailed analytics for any of these products? 📊")
	return b.String()
}

func renderInventoryStatus(h analytics.InventoryHealth) string {
	var b strings.Builder
	b.WriteString("📦 Current Inventory Status:\n\n")
	if len(h.LowStock) > 0 {
		b.WriteString("⚠️ Low Stock Items:\n")
		for _, item := range h.LowStock {
			fmt.Fprintf(&b, "• %s: %d units remaining\n", item.Name, item.Stock)
		}
		b.WriteString("\n")
	}
	if len(h.Overstock) > 0 {
		b.WriteString("📈 Overstocked Items:\n")
		for _, item := range h.Overstock {
			fmt.Fprintf(&b, "• %s: %d units (high inventory)\n", item.Name, item.Stock)
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "✅ %d items at healthy stock levels\n", len(h.HealthyStock))
	return b.String()
}

func renderReorderPlan(plan analytics.ReorderPlan) string {
	var b strings.Builder
	b.WriteString("📦 Inventory Reorder Analysis:\n\n")
	if len(plan.Urgent) > 0 {
		b.WriteString("🚨 URGENT REORDER REQUIRED:\n")
		writeReorderItems(&b, plan.Urgent)
	}
	if len(plan.Approaching) > 0 {
		b.WriteString("⚠️ APPROACHING REORDER LEVEL:\n")
		writeReorderItems(&b, plan.Approaching)
	}
	if len(plan.Urgent) == 0 && len(plan.Approaching) == 0 {
		b.WriteString("✅ All products are above minimum reorder levels.\n\n")
	}
	fmt.Fprintf(&b, "📝 Note: Reorder quantities are calculated based on:\n"+
		"• Average daily sales\n"+
		"• Lead time (%d days)\n"+
		"• Safety stock (%.0f%% of minimum stock)\n\n"+
		"Would you like detailed analytics for any specific product? 🔍",
		analytics.LeadTimeDays, analytics.SafetyStockRatio*100)
	return b.String()
}

func writeReorderItems(b *strings.Builder, recs []analytics.ReorderRecommendation) {
	for _, r := range recs {
		fmt.Fprintf(b, "• %s\n", r.Name)
		fmt.Fprintf(b, "  📊 Current Stock: %d units\n", r.CurrentStock)
		fmt.Fprintf(b, "  ⚠️ Minimum Level: %d units\n", r.MinStock)
		fmt.Fprintf(b, "  📈 Avg Daily Sales: %.1f units\n", r.AvgDailySales)
		fmt.Fprintf(b, "  ⏳ Days of Stock Left: %s days\n", days(r.DaysRemaining))
		fmt.Fprintf(b, "  🎯 Suggested Reorder: %d units\n\n", r.SuggestedQty)
	}
}

func renderSalesPerformance(s *analytics.SalesSummary) string {
	var b strings.Builder
	b.WriteString("📊 Sales Performance Analysis:\n\n")
	fmt.Fprintf(&b, "📈 Total Orders: %d\n\n", s.TotalOrders)
	b.WriteString("🏆 Top Selling Products:\n")
	for _, p := range s.Popular {
		fmt.Fprintf(&b, "• %s\n", p.ProductName)
		fmt.Fprintf(&b, "  📦 Units Sold: %d\n", p.QuantitySold)
		fmt.Fprintf(&b, "  💰 Revenue: %s\n\n", revenue(p.Revenue))
	}
	return b.String()
}

func renderCouponAnalysis(r analytics.CouponReport, kind CouponKind) string {
	var b strings.Builder
	switch kind {
	case CouponsActive:
		b.WriteString("🎟️ Active Coupons:\n\n")
		for _, c := range r.Active {
			fmt.Fprintf(&b, "🏷️ %s\n   • Discount: %s%% off\n   • Campaign: %s\n   • Valid until: %s\n\n",
				c.Code, c.DiscountPercent, c.Campaign, c.EndDate)
		}
		if len(r.Active) == 0 {
			b.WriteString("No active coupons found.\n")
		}
	case CouponsExpired:
		b.WriteString("⏰ Expired Coupons:\n\n")
		for _, c := range r.Expired {
			fmt.Fprintf(&b, "🏷️ %s\n   • Was: %s%% off\n   • Campaign: %s\n   • Expired: %s\n\n",
				c.Code, c.DiscountPercent, c.Campaign, c.EndDate)
		}
		if len(r.Expired) == 0 {
			b.WriteString("No expired coupons found.\n")
		}
	case CouponsHighValue:
		fmt.Fprintf(&b, "💎 High-Value Coupons (>%d%% off):\n\n", analytics.HighValueThreshold)
		for i, c := range r.HighValue {
			status := "Expired"
			if i < len(r.HighValueActive) && r.HighValueActive[i] {
				status = "Active"
			}
			fmt.Fprintf(&b, "🏷️ %s\n   • Discount: %s%% off\n   • Campaign: %s\n   • Status: %s\n   • Valid until: %s\n\n",
				c.Code, c.DiscountPercent, c.Campaign, status, c.EndDate)
		}
		if len(r.HighValue) == 0 {
			b.WriteString("No high-value coupons found.\n")
		}
	default:
		b.WriteString("🎫 Coupon Overview:\n\n")
		fmt.Fprintf(&b, "✅ Active Coupons: %d\n", len(r.Active))
		fmt.Fprintf(&b, "⏰ Expired Coupons: %d\n", len(r.Expired))
		fmt.Fprintf(&b, "💎 High-Value Coupons: %d\n", len(r.HighValue))
	}
	return b.String()
}

func renderTopPick(p models.Product) string {
	return fmt.Sprintf("💡 Investment Recommendation:\n\n"+
		"🏆 Top Pick: %s\n"+
		"📊 Analysis:\n"+
		"- 📦 Current stock: %d units\n"+
		"- 💰 Price point: $%s\n"+
		"- 🏷️ Category: %s\n"+
		"- ✨ Features: %s\n\n"+
		"Would you like to see detailed sales analytics for this product? 📈",
		p.Name, p.Stock, p.UnitPrice, p.Category, p.Description)
}

func renderLowStockAlert(low []analytics.StockItem) string {
	var b strings.Builder
	b.WriteString("🚨 Low Stock Alert!\n\n")
	for _, item := range low {
		fmt.Fprintf(&b, "📉 %s\n   • Current stock: %d units\n   • Threshold: %d units\n",
			item.Name, item.Stock, analytics.ReorderThreshold)
	}
	b.WriteString("\n⚡ Recommendation: Place reorder requests for these items soon.\n")
	b.WriteString("Need help calculating optimal reorder quantities? 🤔")
	return b.String()
}

func renderExpiredCouponList(expired []models.Coupon) string {
	if len(expired) == 0 {
		return "✨ No expired coupons found in the system."
	}
	var b strings.Builder
	b.WriteString("⏰ Expired Coupons:\n\n")
	for _, c := range expired {
		fmt.Fprintf(&b, "🏷️ %s: %s%% off (Expired: %s)\n", c.Code, c.DiscountPercent, c.EndDate)
	}
	return b.String()
}

func renderActiveCouponList(active []models.Coupon) string {
	if len(active) == 0 {
		return "😔 No active coupons found in the system."
	}
	var b strings.Builder
	b.WriteString("✨ Active Coupon Codes:\n\n")
	for _, c := range active {
		fmt.Fprintf(&b, "🎟️ %s: %s%% off (Expires: %s)\n", c.Code, c.DiscountPercent, c.EndDate)
	}
	return b.String()
}

func renderPromotions(promos []analytics.PromotionSuggestion) string {
	var b strings.Builder
	b.WriteString("🎯 Recommended Promotions:\n\n")
	for _, p := range promos {
		fmt.Fprintf(&b, "📦 %s\n", p.Item.Name)
		fmt.Fprintf(&b, "   • Suggested discount: %d%%\n", p.SuggestedPercent)
		fmt.Fprintf(&b, "   • Current price: $%s\n", p.Item.Price)
	}
	return b.String()
}

func renderSalesSummary(s *analytics.SalesSummary) string {
	var b strings.Builder
	b.WriteString("📊 Sales Performance Summary:\n\n")
	fmt.Fprintf(&b, "📈 Total orders: %d\n\n", s.TotalOrders)
	if len(s.Popular) > 0 {
		b.WriteString("🏆 Top Selling Products:\n")
		for _, p := range s.Popular {
			fmt.Fprintf(&b, "✨ %s\n   • Units sold: %d\n   • Revenue: %s\n", p.ProductName, p.QuantitySold, revenue(p.Revenue))
		}
	}
	return b.String()
}

package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"julianmorley.ca/con-plar/retail-assistant/pkg/models"
)

// ProductSales is the per-product fold of order lines.
type ProductSales struct {
	ProductID    string          `json:"product_id"`
	ProductName  string          `json:"product_name"`
	QuantitySold int             `json:"quantity_sold"`
	Revenue      decimal.Decimal `json:"revenue"`
}

// SalesSummary aggregates an order history.
type SalesSummary struct {
	TotalOrders int                      `json:"total_orders"`
	Products    map[string]*ProductSales `json:"products"`
	// Order lists product ids in first-encounter order.
	Order   []string       `json:"-"`
	Popular []ProductSales `json:"popular_products"`
}

// AggregateSales folds order lines into per-product totals. Lines without a
// product id are kept under the empty id.
func AggregateSales(lines []models.OrderLine) *SalesSummary {
	summary := &SalesSummary{
		TotalOrders: len(lines),
		Products:    make(map[string]*ProductSales),
	}
	for _, line := range lines {
		ps, ok := summary.Products[line.ProductID]
		if !ok {
			ps = &ProductSales{ProductID: line.ProductID, ProductName: line.ProductName, Revenue: decimal.Zero}
			summary.Products[line.ProductID] = ps
			summary.Order = append(summary.Order, line.ProductID)
		}
		ps.QuantitySold += line.Quantity
		ps.Revenue = ps.Revenue.Add(line.Subtotal())
	}

	ranked := summary.Ranked()
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].QuantitySold > ranked[j].QuantitySold
	})
	if len(ranked) > TopN {
		ranked = ranked[:TopN]
	}
	summary.Popular = ranked
	return summary
}

// Ranked returns a copy of every product total in encounter order.
func (s *SalesSummary) Ranked() []ProductSales {
	out := make([]ProductSales, 0, len(s.Order))
	for _, id := range s.Order {
		out = append(out, *s.Products[id])
	}
	return out
}

// For returns the totals for productID, or zero totals when it never sold.
func (s *SalesSummary) For(productID string) (ProductSales, bool) {
	if s == nil {
		return ProductSales{ProductID: productID, Revenue: decimal.Zero}, false
	}
	ps, ok := s.Products[productID]
	if !ok {
		return ProductSales{ProductID: productID, Revenue: decimal.Zero}, false
	}
	return *ps, true
}

// TotalRevenue sums revenue across every aggregated product.
func (s *SalesSummary) TotalRevenue() decimal.Decimal {
	total := decimal.Zero
	if s == nil {
		return total
	}
	for _, ps := range s.Products {
		total = total.Add(ps.Revenue)
	}
	return total
}

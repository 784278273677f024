// Package analytics holds the pure computations behind the assistant's reports:
// sales aggregation, stock and coupon classification, investment scoring and
// reorder planning. Every function works on an in-memory snapshot and has no
// side effects.
package analytics

import "julianmorley.ca/con-plar/retail-assistant/pkg/models"

const (
	// ReorderThreshold is the inclusive upper bound for low stock.
	ReorderThreshold = models.DefaultMinStock
	// OverstockThreshold is the exclusive lower bound for overstock.
	OverstockThreshold = 50
	// HighValueThreshold is the exclusive lower bound, in percent, for a high-value coupon.
	HighValueThreshold = 20

	// ObservationWindowDays is the trailing window order history is assumed to cover.
	ObservationWindowDays = 30
	LeadTimeDays          = 7
	SafetyStockRatio      = 0.5

	// TopN is how many entries the ranked views report.
	TopN = 3
)

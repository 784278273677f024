package models

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

// Row is one raw record as decoded from an upstream payload.
type Row = map[string]any

var (
	inventoryPath = []string{"PMAI006OperationResponse", "ws_invent_recout", "ws_invent_res"}
	ordersPath    = []string{"PMAI009OperationResponse", "ws_order_recout", "ws_order_res"}
	couponsPath   = []string{"PMAI016OperationResponse", "ws_coupon_recout", "ws_coupon_res"}
)

// InventoryRows extracts the inventory records from a PMAI006 response envelope.
func InventoryRows(payload map[string]any) []Row {
	return rowsAt(payload, inventoryPath)
}

// OrderRows extracts the order records from a PMAI009 response envelope.
func OrderRows(payload map[string]any) []Row {
	return rowsAt(payload, ordersPath)
}

// CouponRows extracts the coupon records from a PMAI016 response envelope.
func CouponRows(payload map[string]any) []Row {
	return rowsAt(payload, couponsPath)
}

func rowsAt(payload map[string]any, path []string) []Row {
	var node any = payload
	for _, key := range path {
		m, ok := node.(map[string]any)
		if !ok {
			return nil
		}
		node = m[key]
	}
	switch list := node.(type) {
	case []Row:
		return list
	case []any:
		rows := make([]Row, 0, len(list))
		for _, item := range list {
			if row, ok := item.(map[string]any); ok {
				rows = append(rows, row)
			}
		}
		return rows
	default:
		return nil
	}
}

func NormalizeProducts(rows []Row) []Product {
	products := make([]Product, 0, len(rows))
	for _, row := range rows {
		minStock, ok := intField(row, "ws_min_stock")
		if !ok {
			minStock = DefaultMinStock
		}
		products = append(products, Product{
			ID:          stringField(row, "ws_item_id"),
			Name:        stringField(row, "ws_item_name"),
			Description: stringField(row, "ws_description"),
			Category:    stringField(row, "ws_category"),
			Stock:       intOrZero(row, "ws_stock"),
			UnitPrice:   decimalField(row, "ws_unit_price"),
			CostPrice:   decimalField(row, "ws_cost_price"),
			MinStock:    minStock,
		})
	}
	return products
}

func NormalizeOrderLines(rows []Row) []OrderLine {
	lines := make([]OrderLine, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, OrderLine{
			ProductID:   stringField(row, "ws_item_id"),
			ProductName: stringField(row, "ws_item_name"),
			Quantity:    intOrZero(row, "ws_quantity"),
			UnitPrice:   decimalField(row, "ws_unit_price"),
		})
	}
	return lines
}

// NormalizeCoupons keeps dates verbatim; they are validated when classified.
func NormalizeCoupons(rows []Row) []Coupon {
	coupons := make([]Coupon, 0, len(rows))
	for _, row := range rows {
		coupons = append(coupons, Coupon{
			Code:            stringField(row, "ws_coupon_code"),
			DiscountPercent: decimalField(row, "ws_offer_percent"),
			Campaign:        stringField(row, "ws_campaigns_name"),
			StartDate:       dateField(row, "ws_start_date"),
			EndDate:         dateField(row, "ws_end_date"),
		})
	}
	return coupons
}

func stringField(row Row, key string) string {
	v, ok := row[key]
	if !ok || v == nil {
		return ""
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(s)
}

func dateField(row Row, key string) string {
	if t, ok := row[key].(time.Time); ok {
		return t.UTC().Format(time.DateOnly)
	}
	return stringField(row, key)
}

func intOrZero(row Row, key string) int {
	n, _ := intField(row, key)
	return n
}

// intField returns the non-negative integer at key and whether one was present and parseable.
// Floats are truncated; fractional strings and values beyond int range count as malformed.
func intField(row Row, key string) (int, bool) {
	v, ok := row[key]
	if !ok || v == nil {
		return 0, false
	}
	d, ok := toDecimal(v)
	if !ok {
		return 0, false
	}
	switch v.(type) {
	case float64, float32:
		d = d.Truncate(0)
	default:
		if !d.IsInteger() {
			return 0, false
		}
	}
	if d.IsNegative() {
		return 0, true
	}
	if d.GreaterThan(maxIntDecimal) {
		return 0, false
	}
	return int(d.IntPart()), true
}

var maxIntDecimal = decimal.NewFromInt(int64(math.MaxInt))

func decimalField(row Row, key string) decimal.Decimal {
	d, ok := toDecimal(row[key])
	if !ok || d.IsNegative() {
		return decimal.Zero
	}
	return d
}

func toDecimal(v any) (decimal.Decimal, bool) {
	switch val := v.(type) {
	case nil:
		return decimal.Zero, false
	case decimal.Decimal:
		return val, true
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return decimal.Zero, false
		}
		return decimal.NewFromFloat(val), true
	case float32:
		if math.IsNaN(float64(val)) || math.IsInf(float64(val), 0) {
			return decimal.Zero, false
		}
		return decimal.NewFromFloat32(val), true
	case json.Number:
		d, err := decimal.NewFromString(val.String())
		return d, err == nil
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(val))
		return d, err == nil
	case fmt.Stringer:
		d, err := decimal.NewFromString(val.String())
		return d, err == nil
	}
	n, err := cast.ToInt64E(v)
	if err != nil {
		return decimal.Zero, false
	}
	return decimal.NewFromInt(n), true
}

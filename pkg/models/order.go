package models

import "github.com/shopspring/decimal"

// OrderLine is a single historical sale event.
type OrderLine struct {
	ProductID   string          `json:"product_id" bson:"ws_item_id"`
	ProductName string          `json:"product_name" bson:"ws_item_name"`
	Quantity    int             `json:"quantity" bson:"ws_quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price" bson:"ws_unit_price"`
}

// Subtotal returns quantity * unit price.
func (ol OrderLine) Subtotal() decimal.Decimal {
	return ol.UnitPrice.Mul(decimal.NewFromInt(int64(ol.Quantity)))
}

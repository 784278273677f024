package analytics

import (
	"github.com/shopspring/decimal"

	"julianmorley.ca/con-plar/retail-assistant/pkg/models"
)

func product(id string, stock int, price, cost string, minStock int) models.Product {
	return models.Product{
		ID:        id,
		Name:      "Product " + id,
		Category:  "General",
		Stock:     stock,
		UnitPrice: decimal.RequireFromString(price),
		CostPrice: decimal.RequireFromString(cost),
		MinStock:  minStock,
	}
}

func line(id string, qty int, price string) models.OrderLine {
	return models.OrderLine{
		ProductID:   id,
		ProductName: "Product " + id,
		Quantity:    qty,
		UnitPrice:   decimal.RequireFromString(price),
	}
}

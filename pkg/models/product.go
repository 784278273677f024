package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// DefaultMinStock is applied when the inventory feed carries no minimum stock level.
const DefaultMinStock = 20

// Product is one inventory line as published by the upstream inventory feed.
type Product struct {
	ID          string          `json:"id" bson:"ws_item_id"`
	Name        string          `json:"name" bson:"ws_item_name"`
	Description string          `json:"description" bson:"ws_description"`
	Category    string          `json:"category" bson:"ws_category"`
	Stock       int             `json:"stock" bson:"ws_stock"`
	UnitPrice   decimal.Decimal `json:"unit_price" bson:"ws_unit_price"`
	CostPrice   decimal.Decimal `json:"cost_price" bson:"ws_cost_price"`
	MinStock    int             `json:"min_stock" bson:"ws_min_stock"`
}

// EmbeddingText is the string handed to the vectorization service for this product.
func (p Product) EmbeddingText() string {
	return fmt.Sprintf("%s - %s - Category: %s", p.Name, p.Description, p.Category)
}

// EmbeddingTexts returns EmbeddingText for every product, preserving order.
func EmbeddingTexts(products []Product) []string {
	texts := make([]string, len(products))
	for i, p := range products {
		texts[i] = p.EmbeddingText()
	}
	return texts
}

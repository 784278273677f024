package analytics

import (
	"github.com/shopspring/decimal"

	"julianmorley.ca/con-plar/retail-assistant/pkg/models"
)

type StockItem struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Stock int             `json:"stock"`
	Price decimal.Decimal `json:"price"`
}

// InventoryHealth partitions products by stock level.
type InventoryHealth struct {
	LowStock     []StockItem `json:"low_stock"`
	HealthyStock []StockItem `json:"healthy_stock"`
	Overstock    []StockItem `json:"overstock"`
}

type StockLevel string

const (
	StockLow     StockLevel = "low_stock"
	StockHealthy StockLevel = "healthy_stock"
	StockOver    StockLevel = "overstock"
)

// ClassifyStock buckets a single stock count.
func ClassifyStock(stock int) StockLevel {
	switch {
	case stock <= ReorderThreshold:
		return StockLow
	case stock > OverstockThreshold:
		return StockOver
	default:
		return StockHealthy
	}
}

func ClassifyInventory(products []models.Product) InventoryHealth {
	health := InventoryHealth{
		LowStock:     []StockItem{},
		HealthyStock: []StockItem{},
		Overstock:    []StockItem{},
	}
	for _, p := range products {
		item := StockItem{ID: p.ID, Name: p.Name, Stock: p.Stock, Price: p.UnitPrice}
		switch ClassifyStock(p.Stock) {
		case StockLow:
			health.LowStock = append(health.LowStock, item)
		case StockOver:
			health.Overstock = append(health.Overstock, item)
		default:
			health.HealthyStock = append(health.HealthyStock, item)
		}
	}
	return health
}

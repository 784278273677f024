// Package source fetches the raw inventory, order and coupon records the
// assistant analyses.
package source

import (
	"context"

	"julianmorley.ca/con-plar/retail-assistant/pkg/models"
)

// Snapshot is one fetch of the three upstream collections, as raw rows.
type Snapshot struct {
	Inventory []models.Row
	Orders    []models.Row
	Coupons   []models.Row
}

// Source fetches a fresh Snapshot. Implementations must not reuse results
// between calls.
type Source interface {
	Fetch(ctx context.Context) (*Snapshot, error)
}

// Records is a Snapshot after normalization.
type Records struct {
	Products []models.Product
	Orders   []models.OrderLine
	Coupons  []models.Coupon
}

// Normalize turns raw rows into typed records.
func (s *Snapshot) Normalize() Records {
	if s == nil {
		return Records{}
	}
	return Records{
		Products: models.NormalizeProducts(s.Inventory),
		Orders:   models.NormalizeOrderLines(s.Orders),
		Coupons:  models.NormalizeCoupons(s.Coupons),
	}
}

// Static serves a fixed snapshot. Useful for tests and offline demos.
type Static struct {
	Snapshot Snapshot
	Err      error
}

func (s Static) Fetch(context.Context) (*Snapshot, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	snap := s.Snapshot
	return &snap, nil
}

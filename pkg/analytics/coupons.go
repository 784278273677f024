package analytics

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"julianmorley.ca/con-plar/retail-assistant/pkg/models"
)

var highValueThreshold = decimal.NewFromInt(HighValueThreshold)

// CouponReport partitions coupons into active and expired; HighValue overlaps both.
// HighValueActive is index-aligned with HighValue and records the status each
// entry was classified with, so duplicate codes keep their own status.
type CouponReport struct {
	Active          []models.Coupon `json:"active_coupons"`
	Expired         []models.Coupon `json:"expired_coupons"`
	HighValue       []models.Coupon `json:"high_value_coupons"`
	HighValueActive []bool          `json:"high_value_active"`
}

// ClassifyCoupons buckets coupons relative to today's calendar date. A coupon
// is active through its end date inclusive. Any malformed date fails the whole
// classification; the returned error joins every *models.InvalidDateError.
func ClassifyCoupons(coupons []models.Coupon, today time.Time) (CouponReport, error) {
	y, m, d := today.Date()
	current := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	report := CouponReport{
		Active:          []models.Coupon{},
		Expired:         []models.Coupon{},
		HighValue:       []models.Coupon{},
		HighValueActive: []bool{},
	}
	var errs []error
	for _, c := range coupons {
		_, end, err := c.Dates()
		if err != nil {
			errs = append(errs, err)
			continue
		}
		active := !end.Before(current)
		if active {
			report.Active = append(report.Active, c)
		} else {
			report.Expired = append(report.Expired, c)
		}
		if c.DiscountPercent.GreaterThan(highValueThreshold) {
			report.HighValue = append(report.HighValue, c)
			report.HighValueActive = append(report.HighValueActive, active)
		}
	}
	if len(errs) > 0 {
		return CouponReport{}, errors.Join(errs...)
	}
	return report, nil
}

package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Coupon is a promotional code with a validity window. Dates stay in their
// YYYY-MM-DD wire form until Dates is called.
type Coupon struct {
	Code            string          `json:"code" bson:"ws_coupon_code"`
	DiscountPercent decimal.Decimal `json:"discount_percent" bson:"ws_offer_percent"`
	Campaign        string          `json:"campaign" bson:"ws_campaigns_name"`
	StartDate       string          `json:"start_date" bson:"ws_start_date"`
	EndDate         string          `json:"end_date" bson:"ws_end_date"`
}

// CouponDateLayout accepts calendar dates with or without zero padding.
const CouponDateLayout = "2006-1-2"

// InvalidDateError is returned when a coupon date is not a valid calendar date.
type InvalidDateError struct {
	Code  string
	Field string
	Value string
	Cause error
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("coupon %q: invalid %s %q", e.Code, e.Field, e.Value)
}

func (e *InvalidDateError) Unwrap() error {
	return e.Cause
}

// Dates parses the start and end dates.
func (c Coupon) Dates() (start, end time.Time, err error) {
	start, err = time.Parse(CouponDateLayout, c.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, &InvalidDateError{Code: c.Code, Field: "start_date", Value: c.StartDate, Cause: err}
	}
	end, err = time.Parse(CouponDateLayout, c.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, &InvalidDateError{Code: c.Code, Field: "end_date", Value: c.EndDate, Cause: err}
	}
	return start, end, nil
}

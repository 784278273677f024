package assistant

import (
	"context"
	"errors"
	"time"

	"julianmorley.ca/con-plar/retail-assistant/pkg/analytics"
)

// View names accepted by Assistant.View.
const (
	ViewInvestments = "investments"
	ViewPotential   = "potential"
	ViewInventory   = "inventory"
	ViewReorder     = "reorder"
	ViewSales       = "sales"
	ViewCoupons     = "coupons"
)

var ErrUnknownView = errors.New("unknown report view")

// CouponKind selects the slice of the coupon analysis to render.
type CouponKind string

const (
	CouponsAll       CouponKind = "all"
	CouponsActive    CouponKind = "active"
	CouponsExpired   CouponKind = "expired"
	CouponsHighValue CouponKind = "high_value"
)

// ParseCouponKind maps a request parameter to a CouponKind; empty means all.
func ParseCouponKind(s string) (CouponKind, bool) {
	switch k := CouponKind(s); k {
	case "":
		return CouponsAll, true
	case CouponsAll, CouponsActive, CouponsExpired, CouponsHighValue:
		return k, true
	default:
		return "", false
	}
}

// View is one named report: its rendered text and the structured values behind it.
type View struct {
	Name        string    `json:"view"`
	Text        string    `json:"text"`
	Data        any       `json:"data"`
	GeneratedAt time.Time `json:"generated_at"`
}

type ViewOptions struct {
	CouponKind CouponKind
	Today      time.Time
}

// View builds the named report from a fresh snapshot.
func (a *Assistant) View(ctx context.Context, name string, opts ViewOptions) (*View, error) {
	switch name {
	case ViewInvestments:
		return a.BestInvestments(ctx)
	case ViewPotential:
		return a.InvestmentPotential(ctx)
	case ViewInventory:
		return a.InventoryStatus(ctx)
	case ViewReorder:
		return a.ReorderLevels(ctx)
	case ViewSales:
		return a.SalesPerformance(ctx)
	case ViewCoupons:
		kind := opts.CouponKind
		if kind == "" {
			kind = CouponsAll
		}
		return a.CouponAnalysis(ctx, kind, opts.Today)
	default:
		return nil, ErrUnknownView
	}
}

// BestInvestments ranks products on the composite score and keeps the top three.
func (a *Assistant) BestInvestments(ctx context.Context) (*View, error) {
	d, err := a.load(ctx)
	if err != nil {
		return nil, err
	}
	top := d.bestInvestments()
	return a.view(ViewInvestments, renderBestInvestments(top), top), nil
}

// InvestmentPotential ranks products on the weighted potential score.
func (a *Assistant) InvestmentPotential(ctx context.Context) (*View, error) {
	d, err := a.load(ctx)
	if err != nil {
		return nil, err
	}
	top := d.investmentPotential()
	return a.view(ViewPotential, renderInvestmentPotential(top), top), nil
}

func (a *Assistant) InventoryStatus(ctx context.Context) (*View, error) {
	d, err := a.load(ctx)
	if err != nil {
		return nil, err
	}
	health := d.inventory()
	return a.view(ViewInventory, renderInventoryStatus(health), health), nil
}

func (a *Assistant) ReorderLevels(ctx context.Context) (*View, error) {
	d, err := a.load(ctx)
	if err != nil {
		return nil, err
	}
	plan := d.reorderPlan()
	return a.view(ViewReorder, renderReorderPlan(plan), plan), nil
}

func (a *Assistant) SalesPerformance(ctx context.Context) (*View, error) {
	d, err := a.load(ctx)
	if err != nil {
		return nil, err
	}
	return a.view(ViewSales, renderSalesPerformance(d.sales), d.sales), nil
}

// CouponAnalysis classifies coupons against today. A malformed coupon date
// fails the whole view.
func (a *Assistant) CouponAnalysis(ctx context.Context, kind CouponKind, today time.Time) (*View, error) {
	d, err := a.load(ctx)
	if err != nil {
		return nil, err
	}
	report, err := analytics.ClassifyCoupons(d.records.Coupons, today)
	if err != nil {
		return nil, err
	}
	return a.view(ViewCoupons, renderCouponAnalysis(report, kind), report), nil
}

func (a *Assistant) view(name, text string, data any) *View {
	return &View{Name: name, Text: text, Data: data, GeneratedAt: a.now()}
}

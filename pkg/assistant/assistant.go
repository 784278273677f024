// Package assistant answers free-text retail questions by fetching a fresh
// snapshot, running the analytics the query needs and rendering the result.
package assistant

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"julianmorley.ca/con-plar/retail-assistant/pkg/ai"
	"julianmorley.ca/con-plar/retail-assistant/pkg/analytics"
	"julianmorley.ca/con-plar/retail-assistant/pkg/models"
	"julianmorley.ca/con-plar/retail-assistant/pkg/source"
)

// ApologyText replaces the answer whenever a query cannot be processed.
const ApologyText = "😔 I apologize, but I encountered an error while processing your request. " +
	"Could you please rephrase your question? 🤔"

// Report is the answer to one query: the rendered text plus whichever
// structured results the routed branch computed.
type Report struct {
	Query       string                          `json:"query"`
	Intent      Intent                          `json:"intent"`
	Topic       Topic                           `json:"topic,omitempty"`
	Text        string                          `json:"response"`
	Sales       *analytics.SalesSummary         `json:"sales,omitempty"`
	Inventory   *analytics.InventoryHealth      `json:"inventory,omitempty"`
	Coupons     *analytics.CouponReport         `json:"coupons,omitempty"`
	Strategy    analytics.Strategy              `json:"strategy,omitempty"`
	Composite   []analytics.CompositeScore      `json:"composite_scores,omitempty"`
	Potential   []analytics.PotentialScore      `json:"potential_scores,omitempty"`
	Reorder     *analytics.ReorderPlan          `json:"reorder,omitempty"`
	Promotions  []analytics.PromotionSuggestion `json:"promotions,omitempty"`
	Failed      bool                            `json:"-"`
	GeneratedAt time.Time                       `json:"generated_at"`
}

type Assistant struct {
	source   source.Source
	embedder ai.Embedder
	logger   *slog.Logger
	now      func() time.Time
}

type Option func(*Assistant)

// WithEmbedder sets the service that vectorizes product descriptions on every load.
func WithEmbedder(e ai.Embedder) Option {
	return func(a *Assistant) { a.embedder = e }
}

func WithLogger(l *slog.Logger) Option {
	return func(a *Assistant) { a.logger = l }
}

// WithClock overrides the timestamp source used for GeneratedAt.
func WithClock(now func() time.Time) Option {
	return func(a *Assistant) { a.now = now }
}

func New(src source.Source, opts ...Option) *Assistant {
	a := &Assistant{
		source:   src,
		embedder: ai.DisabledEmbedder{},
		logger:   slog.Default(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// ProcessQuery routes query, computes the views its branch needs against a
// fresh snapshot and renders the answer. It never returns an error: failures
// are logged and answered with ApologyText.
func (a *Assistant) ProcessQuery(ctx context.Context, query string, today time.Time) Report {
	report := Report{Query: query, Intent: Route(query), GeneratedAt: a.now()}

	if err := a.answer(ctx, &report, today); err != nil {
		a.logger.Error("query processing failed",
			slog.String("query", query),
			slog.String("intent", string(report.Intent)),
			slog.Any("error", err))
		return Report{
			Query:       query,
			Intent:      report.Intent,
			Text:        ApologyText,
			Failed:      true,
			GeneratedAt: report.GeneratedAt,
		}
	}
	return report
}

func (a *Assistant) answer(ctx context.Context, report *Report, today time.Time) error {
	d, err := a.load(ctx)
	if err != nil {
		return err
	}

	switch report.Intent {
	case IntentReorder:
		plan := d.reorderPlan()
		report.Reorder = &plan
		report.Text = renderReorderPlan(plan)
	case IntentInvestment:
		report.Strategy = analytics.StrategyPotential
		report.Potential = d.investmentPotential()
		report.Text = renderInvestmentPotential(report.Potential)
	default:
		return respondGeneral(report, d, today)
	}
	return nil
}

// dataset is the request-local state one query computes over.
type dataset struct {
	records source.Records
	sales   *analytics.SalesSummary
}

func (a *Assistant) load(ctx context.Context) (*dataset, error) {
	snap, err := a.source.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	records := snap.Normalize()
	a.embedProducts(ctx, records.Products)

	return &dataset{
		records: records,
		sales:   analytics.AggregateSales(records.Orders),
	}, nil
}

// embedProducts vectorizes product descriptions. The vectors are not used by
// any analysis, so failures only get logged.
func (a *Assistant) embedProducts(ctx context.Context, products []models.Product) {
	if a.embedder == nil || len(products) == 0 {
		return
	}
	vectors, err := a.embedder.Embed(ctx, models.EmbeddingTexts(products))
	switch {
	case errors.Is(err, ai.ErrDisabled):
		return
	case err != nil:
		a.logger.Warn("product embedding failed", slog.Any("error", err))
	default:
		a.logger.Debug("product embeddings generated", slog.Int("count", len(vectors)))
	}
}

func (d *dataset) inventory() analytics.InventoryHealth {
	return analytics.ClassifyInventory(d.records.Products)
}

func (d *dataset) reorderPlan() analytics.ReorderPlan {
	return analytics.PlanReorders(d.records.Products, d.sales)
}

func (d *dataset) bestInvestments() []analytics.CompositeScore {
	ranked := analytics.RankComposite(analytics.ScoreComposite(d.records.Products, d.sales))
	return analytics.Top(ranked, analytics.TopN)
}

func (d *dataset) investmentPotential() []analytics.PotentialScore {
	ranked := analytics.RankPotential(analytics.ScorePotential(d.records.Products, d.sales))
	return analytics.Top(ranked, analytics.TopN)
}

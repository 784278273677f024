package assistant

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"julianmorley.ca/con-plar/retail-assistant/pkg/analytics"
	"julianmorley.ca/con-plar/retail-assistant/pkg/models"
	"julianmorley.ca/con-plar/retail-assistant/pkg/source"
)

var today = time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)

func fixtureSnapshot() source.Snapshot {
	return source.Snapshot{
		Inventory: []models.Row{
			{"ws_item_id": "P1", "ws_item_name": "Rice", "ws_description": "Long grain", "ws_category": "Grains",
				"ws_stock": 5.0, "ws_unit_price": 10.0, "ws_cost_price": 6.0, "ws_min_stock": 20.0},
			{"ws_item_id": "P2", "ws_item_name": "Olive Oil", "ws_description": "Extra virgin", "ws_category": "Pantry",
				"ws_stock": 100.0, "ws_unit_price": 20.0, "ws_cost_price": 19.0},
			{"ws_item_id": "P3", "ws_item_name": "Salt", "ws_description": "Sea salt", "ws_category": "Pantry",
				"ws_stock": 30.0, "ws_unit_price": 2.0, "ws_cost_price": 1.0},
		},
		Orders: []models.Row{
			{"ws_item_id": "P1", "ws_item_name": "Rice", "ws_quantity": 40.0, "ws_unit_price": 10.0},
			{"ws_item_id": "P2", "ws_item_name": "Olive Oil", "ws_quantity": 30.0, "ws_unit_price": 20.0},
			{"ws_item_id": "P1", "ws_item_name": "Rice", "ws_quantity": 20.0, "ws_unit_price": 10.0},
		},
		Coupons: []models.Row{
			{"ws_coupon_code": "SAVE25", "ws_offer_percent": 25.0, "ws_campaigns_name": "Summer",
				"ws_start_date": "2026-06-01", "ws_end_date": "2026-10-15"},
			{"ws_coupon_code": "FALL10", "ws_offer_percent": 10.0, "ws_campaigns_name": "Autumn",
				"ws_start_date": "2026-09-01", "ws_end_date": "2026-12-31"},
		},
	}
}

type recordingEmbedder struct {
	texts [][]string
	err   error
}

func (e *recordingEmbedder) Embed(_ context.Context, texts []string) ([][]float64, error) {
	e.texts = append(e.texts, texts)
	if e.err != nil {
		return nil, e.err
	}
	return make([][]float64, len(texts)), nil
}

func newTestAssistant(src source.Source, opts ...Option) *Assistant {
	clock := func() time.Time { return today.Add(9 * time.Hour) }
	return New(src, append([]Option{WithClock(clock)}, opts...)...)
}

func TestRoutePrecedence(t *testing.T) {
	tests := []struct {
		query string
		want  Intent
	}{
		{"What's my stock level?", IntentReorder},
		{"Should I invest in stock?", IntentReorder},
		{"SHOW INVENTORY", IntentReorder},
		{"time to replenish?", IntentReorder},
		{"What should I buy next?", IntentInvestment},
		{"which is the best product", IntentInvestment},
		{"Recommend a coupon", IntentInvestment},
		{"show expired coupons", IntentGeneral},
		{"hi", IntentGeneral},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, Route(tt.query))
		})
	}
}

func TestProcessQueryReorder(t *testing.T) {
	a := newTestAssistant(source.Static{Snapshot: fixtureSnapshot()})

	report := a.ProcessQuery(context.Background(), "What's my stock level?", today)
	require.False(t, report.Failed)
	assert.Equal(t, IntentReorder, report.Intent)
	require.NotNil(t, report.Reorder)

	require.Len(t, report.Reorder.Urgent, 1)
	rice := report.Reorder.Urgent[0]
	assert.Equal(t, "Rice", rice.Name)
	assert.InDelta(t, 2.0, rice.AvgDailySales, 1e-9)
	assert.InDelta(t, 2.5, float64(rice.DaysRemaining), 1e-9)
	assert.Equal(t, 20, rice.SuggestedQty)

	require.Len(t, report.Reorder.Approaching, 1)
	assert.Equal(t, "Salt", report.Reorder.Approaching[0].Name)
	assert.True(t, report.Reorder.Approaching[0].DaysRemaining.IsInf())

	require.Len(t, report.Reorder.Suggestions, 1)
	assert.Equal(t, 19, report.Reorder.Suggestions[0].Quantity)

	assert.Contains(t, report.Text, "🚨 URGENT REORDER REQUIRED:\n• Rice\n")
	assert.Contains(t, report.Text, "🎯 Suggested Reorder: 20 units")
	assert.Contains(t, report.Text, "⏳ Days of Stock Left: ∞ days")
	assert.Contains(t, report.Text, "• Lead time (7 days)\n• Safety stock (50% of minimum stock)")
	assert.Equal(t, today.Add(9*time.Hour), report.GeneratedAt)
}

func TestProcessQueryInvestmentPotential(t *testing.T) {
	a := newTestAssistant(source.Static{Snapshot: fixtureSnapshot()})

	report := a.ProcessQuery(context.Background(), "What should I buy?", today)
	require.False(t, report.Failed)
	assert.Equal(t, IntentInvestment, report.Intent)
	assert.Equal(t, analytics.StrategyPotential, report.Strategy)
	require.Len(t, report.Potential, 3)

	names := []string{report.Potential[0].Product.Name, report.Potential[1].Product.Name, report.Potential[2].Product.Name}
	assert.Equal(t, []string{"Rice", "Salt", "Olive Oil"}, names)
	assert.InDelta(t, 0.7+10+0.2*(5.0/60)+10, report.Potential[0].Total, 1e-9)
	assert.Equal(t, []string{
		analytics.FactorHighVelocity, analytics.FactorStrongMargin, analytics.FactorRevenueLeader,
	}, report.Potential[0].Factors)

	assert.Contains(t, report.Text, "#1 - Rice\n📊 Investment Score: 20.7/100\n💰 Price: $10.00\n")
	assert.Contains(t, report.Text, "🌟 Key Strengths:\n   • High sales velocity\n")
}

func TestProcessQueryGeneralTopics(t *testing.T) {
	a := newTestAssistant(source.Static{Snapshot: fixtureSnapshot()})

	tests := []struct {
		query    string
		topic    Topic
		contains string
	}{
		{"show expired coupons", TopicExpiredCoupons, "🏷️ SAVE25: 25% off (Expired: 2026-10-15)"},
		{"any active coupon?", TopicActiveCoupons, "🎟️ FALL10: 10% off (Expires: 2026-12-31)"},
		{"suggest coupon promotions", TopicPromotions, "📦 Olive Oil\n   • Suggested discount: 3%\n   • Current price: $20\n"},
		{"coupon?", TopicGreeting, "👋 Hello!"},
		{"how are sales?", TopicSales, "✨ Rice\n   • Units sold: 60\n   • Revenue: $600.00\n"},
		{"hello", TopicGreeting, "What would you like to know? 😊"},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			report := a.ProcessQuery(context.Background(), tt.query, today)
			require.False(t, report.Failed)
			assert.Equal(t, IntentGeneral, report.Intent)
			assert.Equal(t, tt.topic, report.Topic)
			assert.Contains(t, report.Text, tt.contains)
		})
	}
}

func TestGeneralSalesLeavesCouponsUnclassified(t *testing.T) {
	snap := fixtureSnapshot()
	snap.Coupons = append(snap.Coupons, models.Row{"ws_coupon_code": "BAD", "ws_end_date": "31/12/2026"})
	a := newTestAssistant(source.Static{Snapshot: snap})

	report := a.ProcessQuery(context.Background(), "sales please", today)
	require.False(t, report.Failed)
	assert.Equal(t, TopicSales, report.Topic)
	assert.Nil(t, report.Coupons)
	assert.Equal(t, 3, report.Sales.TotalOrders)
}

func TestProcessQueryFailuresBecomeApology(t *testing.T) {
	badCoupons := fixtureSnapshot()
	badCoupons.Coupons = []models.Row{{"ws_coupon_code": "BAD", "ws_end_date": "not-a-date"}}

	tests := []struct {
		name  string
		src   source.Source
		query string
	}{
		{"fetch error", source.Static{Err: errors.New("connection refused")}, "What's my stock level?"},
		{"malformed coupon date", source.Static{Snapshot: badCoupons}, "active coupon"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := newTestAssistant(tt.src).ProcessQuery(context.Background(), tt.query, today)
			assert.True(t, report.Failed)
			assert.Equal(t, ApologyText, report.Text)
			assert.Nil(t, report.Reorder)
			assert.Nil(t, report.Coupons)
		})
	}
}

func TestProcessQueryEmbedsProductDescriptions(t *testing.T) {
	embedder := &recordingEmbedder{}
	a := newTestAssistant(source.Static{Snapshot: fixtureSnapshot()}, WithEmbedder(embedder))

	a.ProcessQuery(context.Background(), "hello", today)
	require.Len(t, embedder.texts, 1)
	assert.Equal(t, "Rice - Long grain - Category: Grains", embedder.texts[0][0])
	assert.Len(t, embedder.texts[0], 3)
}

func TestEmbeddingFailureDoesNotFailQuery(t *testing.T) {
	embedder := &recordingEmbedder{err: errors.New("quota exceeded")}
	a := newTestAssistant(source.Static{Snapshot: fixtureSnapshot()}, WithEmbedder(embedder))

	report := a.ProcessQuery(context.Background(), "What's my stock level?", today)
	assert.False(t, report.Failed)
	assert.NotNil(t, report.Reorder)
}

func TestEveryQueryFetchesFreshData(t *testing.T) {
	src := &countingSource{snap: fixtureSnapshot()}
	a := newTestAssistant(src)

	a.ProcessQuery(context.Background(), "hello", today)
	a.ProcessQuery(context.Background(), "hello", today)
	assert.Equal(t, 2, src.calls)
}

type countingSource struct {
	snap  source.Snapshot
	calls int
}

func (s *countingSource) Fetch(context.Context) (*source.Snapshot, error) {
	s.calls++
	snap := s.snap
	return &snap, nil
}

func TestRespondGeneralTopPickAndLowStock(t *testing.T) {
	a := newTestAssistant(source.Static{Snapshot: fixtureSnapshot()})
	d, err := a.load(context.Background())
	require.NoError(t, err)

	report := &Report{Query: "investment ideas"}
	require.NoError(t, respondGeneral(report, d, today))
	assert.Equal(t, TopicTopPick, report.Topic)
	assert.Equal(t, analytics.StrategyComposite, report.Strategy)
	require.Len(t, report.Composite, 1)
	assert.Contains(t, report.Text, "🏆 Top Pick: Rice\n")
	assert.Contains(t, report.Text, "- 💰 Price point: $10\n")

	report = &Report{Query: "low stock?"}
	require.NoError(t, respondGeneral(report, d, today))
	assert.Equal(t, TopicLowStock, report.Topic)
	assert.Contains(t, report.Text, "📉 Rice\n   • Current stock: 5 units\n   • Threshold: 20 units\n")
	require.NotNil(t, report.Inventory)
	assert.Len(t, report.Inventory.LowStock, 1)
}

func TestEmptyOrderHistory(t *testing.T) {
	snap := fixtureSnapshot()
	snap.Orders = nil
	a := newTestAssistant(source.Static{Snapshot: snap})

	report := a.ProcessQuery(context.Background(), "sales", today)
	require.False(t, report.Failed)
	assert.Equal(t, 0, report.Sales.TotalOrders)
	assert.Empty(t, report.Sales.Popular)
	assert.NotContains(t, report.Text, "Top Selling Products")
}

func TestRevenueFormatting(t *testing.T) {
	assert.Equal(t, "$1,234.50", revenue(decimal.RequireFromString("1234.5")))
	assert.Equal(t, "$0.00", revenue(decimal.Zero))
}

package router

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"julianmorley.ca/con-plar/retail-assistant/pkg/assistant"
	"julianmorley.ca/con-plar/retail-assistant/pkg/global"
	"julianmorley.ca/con-plar/retail-assistant/pkg/models"
	"julianmorley.ca/con-plar/retail-assistant/pkg/source"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

var fixedNow = time.Date(2026, 10, 16, 14, 30, 0, 0, time.UTC)

type fakeService struct {
	report    assistant.Report
	view      *assistant.View
	viewErr   error
	gotQuery  string
	gotToday  time.Time
	gotView   string
	gotOpts   assistant.ViewOptions
	viewCalls int
}

func (f *fakeService) ProcessQuery(_ context.Context, query string, today time.Time) assistant.Report {
	f.gotQuery, f.gotToday = query, today
	r := f.report
	r.Query = query
	return r
}

func (f *fakeService) View(_ context.Context, name string, opts assistant.ViewOptions) (*assistant.View, error) {
	f.viewCalls++
	f.gotView, f.gotOpts = name, opts
	return f.view, f.viewErr
}

type fakeNarrator struct {
	enabled bool
	text    string
	err     error
}

func (n fakeNarrator) Enabled() bool { return n.enabled }

func (n fakeNarrator) Narrate(context.Context, string, any) (string, error) {
	return n.text, n.err
}

type testServer struct {
	engine  *gin.Engine
	service *fakeService
	metrics *Metrics
}

func newTestServer(t *testing.T, apiKeyHash string, narrator Narrator) *testServer {
	t.Helper()
	svc := &fakeService{
		report: assistant.Report{Intent: assistant.IntentReorder, Text: "📦 Inventory Reorder Analysis:"},
		view:   &assistant.View{Name: assistant.ViewSales, Text: "📊 Sales Performance Analysis:", Data: map[string]int{"total_orders": 3}},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	metrics := NewMetrics()
	h := NewHandler(svc, narrator, metrics, logger)
	h.now = func() time.Time { return fixedNow }

	cfg := &global.Config{CORSOrigins: []string{"http://localhost:3000"}, APIKeyHash: apiKeyHash}
	return &testServer{engine: NewEngine(cfg, h, metrics, logger), service: svc, metrics: metrics}
}

func (s *testServer) do(method, path string, body string, headers map[string]string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestHealthCheck(t *testing.T) {
	s := newTestServer(t, "", nil)

	w := s.do(http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "healthy", body["data"].(map[string]any)["status"])
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))
}

func TestProcessQueryRequiresQuery(t *testing.T) {
	s := newTestServer(t, "", nil)

	for _, body := range []string{`{}`, `{"question":"hi"}`, `not json`} {
		w := s.do(http.MethodPost, "/api/query", body, nil)
		require.Equal(t, http.StatusBadRequest, w.Code, body)
		resp := decode(t, w)
		example := resp["data"].(map[string]any)["example"].(map[string]any)
		assert.Equal(t, "Show me inventory status", example["query"])
	}
	assert.Empty(t, s.service.gotQuery)
}

func TestProcessQuery(t *testing.T) {
	s := newTestServer(t, "", nil)

	w := s.do(http.MethodPost, "/api/query", `{"query":"What's my stock level?"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode(t, w)
	assert.Equal(t, "success", resp["status"])
	assert.Equal(t, "What's my stock level?", resp["query"])
	assert.Equal(t, "📦 Inventory Reorder Analysis:", resp["response"])
	assert.Equal(t, "reorder", resp["intent"])
	assert.NotNil(t, resp["details"])

	assert.Equal(t, time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC), s.service.gotToday)
	assert.Equal(t, 1.0, testutil.ToFloat64(s.metrics.queriesTotal.WithLabelValues("reorder")))
}

func TestProcessQueryFailureStillSucceeds(t *testing.T) {
	s := newTestServer(t, "", nil)
	s.service.report = assistant.Report{Intent: assistant.IntentGeneral, Text: assistant.ApologyText, Failed: true}

	w := s.do(http.MethodPost, "/api/query", `{"query":"sales"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.Equal(t, assistant.ApologyText, resp["response"])
	assert.NotContains(t, resp, "details")
	assert.Equal(t, 1.0, testutil.ToFloat64(s.metrics.queriesTotal.WithLabelValues("error")))
}

func TestAPIKey(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	s := newTestServer(t, string(hash), nil)
	body := `{"query":"hi"}`

	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodPost, "/api/query", body, nil).Code)
	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodPost, "/api/query", body, map[string]string{apiKeyHeader: "wrong"}).Code)
	assert.Equal(t, http.StatusOK, s.do(http.MethodPost, "/api/query", body, map[string]string{apiKeyHeader: "s3cret"}).Code)
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/reports/sales", "", map[string]string{"Authorization": "Bearer s3cret"}).Code)
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/health", "", nil).Code)
}

func TestGetReport(t *testing.T) {
	s := newTestServer(t, "", nil)

	w := s.do(http.MethodGet, "/api/reports/coupons?type=high_value&as_of=2026-01-31", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "coupons", s.service.gotView)
	assert.Equal(t, assistant.CouponsHighValue, s.service.gotOpts.CouponKind)
	assert.Equal(t, time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC), s.service.gotOpts.Today)

	data := decode(t, w)["data"].(map[string]any)
	assert.Equal(t, "📊 Sales Performance Analysis:", data["text"])
	assert.Equal(t, false, data["ai_enabled"])
}

func TestGetReportValidation(t *testing.T) {
	s := newTestServer(t, "", nil)

	for _, path := range []string{
		"/api/reports/coupons?type=bogus",
		"/api/reports/coupons?as_of=31-01-2026",
		"/api/reports/sales?insights=maybe",
	} {
		assert.Equal(t, http.StatusBadRequest, s.do(http.MethodGet, path, "", nil).Code, path)
	}
	assert.Zero(t, s.service.viewCalls)
}

func TestGetReportErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"unknown view", assistant.ErrUnknownView, http.StatusNotFound},
		{"bad coupon date", errors.Join(&models.InvalidDateError{Code: "X", Field: "end_date", Value: "?"}), http.StatusUnprocessableEntity},
		{"upstream down", &source.UpstreamError{Feed: "orders", Status: 503}, http.StatusBadGateway},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, "", nil)
			s.service.view, s.service.viewErr = nil, tt.err
			w := s.do(http.MethodGet, "/api/reports/whatever", "", nil)
			assert.Equal(t, tt.want, w.Code)
			assert.Equal(t, false, decode(t, w)["success"])
		})
	}
}

func TestGetReportInsights(t *testing.T) {
	s := newTestServer(t, "", fakeNarrator{enabled: true, text: "Rice is your best seller."})

	w := s.do(http.MethodGet, "/api/reports/sales?insights=true", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w)["data"].(map[string]any)
	assert.Equal(t, true, data["ai_enabled"])
	assert.Equal(t, "Rice is your best seller.", data["ai_insights"])

	s = newTestServer(t, "", fakeNarrator{enabled: true, err: errors.New("rate limited")})
	data = decode(t, s.do(http.MethodGet, "/api/reports/sales?insights=true", "", nil))["data"].(map[string]any)
	assert.Equal(t, "AI analysis failed", data["ai_error"])
	assert.NotContains(t, data, "ai_insights")
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t, "", nil)
	s.do(http.MethodGet, "/api/health", "", nil)

	w := s.do(http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `retail_assistant_http_requests_total{code="200",route="/api/health"} 1`)
}

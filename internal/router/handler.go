package router

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"julianmorley.ca/con-plar/retail-assistant/pkg/assistant"
	"julianmorley.ca/con-plar/retail-assistant/pkg/global"
	"julianmorley.ca/con-plar/retail-assistant/pkg/models"
	"julianmorley.ca/con-plar/retail-assistant/pkg/source"
)

// QueryService is the assistant surface the handlers depend on.
type QueryService interface {
	ProcessQuery(ctx context.Context, query string, today time.Time) assistant.Report
	View(ctx context.Context, name string, opts assistant.ViewOptions) (*assistant.View, error)
}

// Narrator adds optional AI commentary to a report.
type Narrator interface {
	Enabled() bool
	Narrate(ctx context.Context, view string, data any) (string, error)
}

type Handler struct {
	service  QueryService
	narrator Narrator
	metrics  *Metrics
	logger   *slog.Logger
	now      func() time.Time
}

func NewHandler(service QueryService, narrator Narrator, metrics *Metrics, logger *slog.Logger) *Handler {
	return &Handler{service: service, narrator: narrator, metrics: metrics, logger: logger, now: time.Now}
}

type QueryRequest struct {
	Query *string `json:"query"`
}

type QueryResponse struct {
	Status    string            `json:"status"`
	Query     string            `json:"query"`
	Response  string            `json:"response"`
	Intent    assistant.Intent  `json:"intent"`
	Details   *assistant.Report `json:"details,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}

type ReportResponse struct {
	*assistant.View
	AIEnabled  bool   `json:"ai_enabled"`
	AIInsights string `json:"ai_insights,omitempty"`
	AIError    string `json:"ai_error,omitempty"`
}

func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, global.SuccessResponse(gin.H{
		"status":    "healthy",
		"timestamp": h.now(),
	}))
}

// ProcessQuery answers a free-text question. Processing failures still
// return 200 with the apology text; only a malformed request is rejected.
func (h *Handler) ProcessQuery(c *gin.Context) {
	var req QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Query == nil {
		c.JSON(http.StatusBadRequest, global.APIResponse{
			Success: false,
			Message: "Invalid request. Please provide a query field.",
			Data:    gin.H{"example": gin.H{"query": "Show me inventory status"}},
			Errors: []global.ValidationError{
				{Field: "query", Message: "query is required", Code: "required"},
			},
		})
		return
	}

	now := h.now()
	report := h.service.ProcessQuery(c.Request.Context(), *req.Query, global.DateOnly(now))

	intent := string(report.Intent)
	resp := QueryResponse{
		Status:    "success",
		Query:     report.Query,
		Response:  report.Text,
		Intent:    report.Intent,
		Timestamp: now,
	}
	if report.Failed {
		intent = "error"
	} else {
		resp.Details = &report
	}
	h.metrics.ObserveQuery(intent)

	c.JSON(http.StatusOK, resp)
}

// GetReport serves one named view. Query parameters: type (coupon kind),
// as_of (YYYY-MM-DD) and insights (bool).
func (h *Handler) GetReport(c *gin.Context) {
	view := c.Param("view")

	kind, ok := assistant.ParseCouponKind(c.Query("type"))
	if !ok {
		c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid coupon type", []global.ValidationError{
			{Field: "type", Message: "type must be one of all, active, expired, high_value", Code: "invalid_value"},
		}))
		return
	}

	today := global.DateOnly(h.now())
	if asOf := c.Query("as_of"); asOf != "" {
		parsed, err := global.ParseDate(asOf)
		if err != nil {
			c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid as_of date", []global.ValidationError{
				{Field: "as_of", Message: "as_of must be formatted YYYY-MM-DD", Code: "invalid_format"},
			}))
			return
		}
		today = parsed
	}

	withInsights := false
	if raw := c.Query("insights"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, global.ErrorResponse("Invalid insights flag", []global.ValidationError{
				{Field: "insights", Message: "insights must be true or false", Code: "invalid_format"},
			}))
			return
		}
		withInsights = parsed
	}

	ctx := c.Request.Context()
	result, err := h.service.View(ctx, view, assistant.ViewOptions{CouponKind: kind, Today: today})
	if err != nil {
		h.writeViewError(c, view, err)
		return
	}

	resp := ReportResponse{View: result, AIEnabled: h.narrator != nil && h.narrator.Enabled()}
	if withInsights && resp.AIEnabled {
		insights, err := h.narrator.Narrate(ctx, view, result.Data)
		if err != nil {
			h.logger.Warn("report narration failed", slog.String("view", view), slog.Any("error", err))
			resp.AIError = "AI analysis failed"
		} else {
			resp.AIInsights = insights
		}
	}
	c.JSON(http.StatusOK, global.SuccessResponse(resp))
}

func (h *Handler) writeViewError(c *gin.Context, view string, err error) {
	var dateErr *models.InvalidDateError
	var upstreamErr *source.UpstreamError
	switch {
	case errors.Is(err, assistant.ErrUnknownView):
		c.JSON(http.StatusNotFound, global.ErrorResponse("Report not found", []global.ValidationError{
			{Field: "view", Message: "view must be one of investments, potential, inventory, reorder, sales, coupons", Code: "not_found"},
		}))
	case errors.As(err, &dateErr):
		c.JSON(http.StatusUnprocessableEntity, global.ErrorResponse("Coupon data contains an invalid date", []global.ValidationError{
			{Field: dateErr.Field, Message: dateErr.Error(), Code: "invalid_date"},
		}))
	case errors.As(err, &upstreamErr):
		h.logger.Error("upstream feed failed", slog.String("view", view), slog.Any("error", err))
		c.JSON(http.StatusBadGateway, global.ErrorResponse("Upstream data source unavailable", nil))
	default:
		h.logger.Error("report failed", slog.String("view", view), slog.Any("error", err))
		c.JSON(http.StatusInternalServerError, global.ErrorResponse("Failed to build report", nil))
	}
}

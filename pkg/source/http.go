package source

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"julianmorley.ca/con-plar/retail-assistant/pkg/models"
)

// Feed describes one upstream operation endpoint.
type Feed struct {
	Name      string
	URL       string
	Operation string
	extract   func(map[string]any) []models.Row
}

func InventoryFeed(url string) Feed {
	return Feed{Name: "inventory", URL: url, Operation: "PMAI006Operation", extract: models.InventoryRows}
}

func OrdersFeed(url string) Feed {
	return Feed{Name: "orders", URL: url, Operation: "PMAI009Operation", extract: models.OrderRows}
}

func CouponsFeed(url string) Feed {
	return Feed{Name: "coupons", URL: url, Operation: "PMAI016Operation", extract: models.CouponRows}
}

// UpstreamError reports a non-2xx answer from a feed.
type UpstreamError struct {
	Feed   string
	Status int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s feed returned HTTP %d", e.Feed, e.Status)
}

type HTTPConfig struct {
	InventoryURL string
	OrdersURL    string
	CouponsURL   string
	Timeout      time.Duration
	// InsecureSkipVerify disables TLS verification; the legacy feeds use self-signed certificates.
	InsecureSkipVerify bool
}

// HTTPSource posts an empty operation request to each feed and decodes the
// JSON envelope it returns.
type HTTPSource struct {
	client    *http.Client
	inventory Feed
	orders    Feed
	coupons   Feed
}

func NewHTTPSource(cfg HTTPConfig) *HTTPSource {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.InsecureSkipVerify {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec
	}
	return &HTTPSource{
		client:    &http.Client{Timeout: cfg.Timeout, Transport: transport},
		inventory: InventoryFeed(cfg.InventoryURL),
		orders:    OrdersFeed(cfg.OrdersURL),
		coupons:   CouponsFeed(cfg.CouponsURL),
	}
}

// Fetch retrieves the three feeds concurrently; the first failure cancels the rest.
func (s *HTTPSource) Fetch(ctx context.Context) (*Snapshot, error) {
	snap := &Snapshot{}
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		snap.Inventory, err = s.fetchFeed(ctx, s.inventory)
		return err
	})
	g.Go(func() (err error) {
		snap.Orders, err = s.fetchFeed(ctx, s.orders)
		return err
	})
	g.Go(func() (err error) {
		snap.Coupons, err = s.fetchFeed(ctx, s.coupons)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snap, nil
}

func (s *HTTPSource) fetchFeed(ctx context.Context, feed Feed) ([]models.Row, error) {
	body, err := json.Marshal(map[string]any{feed.Operation: map[string]any{}})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, feed.URL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", feed.Name, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", feed.Name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &UpstreamError{Feed: feed.Name, Status: resp.StatusCode}
	}

	var payload map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode %s: %w", feed.Name, err)
	}
	return feed.extract(payload), nil
}

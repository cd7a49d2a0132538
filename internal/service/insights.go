package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	jmespath "github.com/jmespath-community/go-jmespath"
	"golang.org/x/sync/errgroup"

	"github.com/bookstand/store-ui-api/internal/domain/model"
	"github.com/bookstand/store-ui-api/internal/ports"
)

// JMESPathEvaluator abstracts JMESPath operations for testability.
type JMESPathEvaluator interface {
	Validate(expr string) error
	Evaluate(expr string, data any) (any, error)
}

// jmespathLibEvaluator implements JMESPathEvaluator using go-jmespath.
type jmespathLibEvaluator struct{}

func (j jmespathLibEvaluator) Validate(expr string) error {
	if strings.TrimSpace(expr) == "" {
		return nil
	}
	_, err := jmespath.Compile(expr)
	return err
}

func (j jmespathLibEvaluator) Evaluate(expr string, data any) (any, error) {
	return jmespath.Search(expr, data)
}

// DefaultTrendProjections shape the store API's raw trends payload into the
// named series the admin dashboard charts.
var DefaultTrendProjections = map[string]string{
	"labels":       "daily[].date",
	"totals":       "daily[].total",
	"top_products": "top_products",
}

// InsightsServiceOptions groups dependencies for InsightsService.
type InsightsServiceOptions struct {
	Catalog ports.Catalog
	Orders  ports.Orders
	Stock   ports.Stock
	// Projections maps series names to JMESPath expressions applied to the
	// raw trends payload. Defaults to DefaultTrendProjections when nil.
	Projections map[string]string
	Evaluator   JMESPathEvaluator // Optional, defaults to go-jmespath
	Logger      *slog.Logger      // Optional: structured logger
}

// InsightsService assembles the admin dashboard's aggregate view from
// several store API collections.
type InsightsService struct {
	catalog     ports.Catalog
	orders      ports.Orders
	stock       ports.Stock
	projections map[string]string
	jems        JMESPathEvaluator
	logger      *slog.Logger
}

// LowStockThreshold is the stock level at or below which a product is
// surfaced on the dashboard.
const LowStockThreshold = 5

// NewInsightsService constructs a new service. Every configured projection
// is compiled once up front so a bad expression fails at startup, not per
// request.
func NewInsightsService(opts InsightsServiceOptions) (*InsightsService, error) {
	jems := opts.Evaluator
	if jems == nil {
		jems = jmespathLibEvaluator{}
	}
	projections := opts.Projections
	if projections == nil {
		projections = DefaultTrendProjections
	}
	for name, expr := range projections {
		if err := jems.Validate(expr); err != nil {
			return nil, fmt.Errorf("invalid trend projection %q: %w", name, err)
		}
	}

	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "insights_service")
	}

	return &InsightsService{
		catalog:     opts.Catalog,
		orders:      opts.Orders,
		stock:       opts.Stock,
		projections: projections,
		jems:        jems,
		logger:      logger,
	}, nil
}

// DashboardSummary is the aggregate the admin dashboard renders.
type DashboardSummary struct {
	ProductCount int             `json:"product_count"`
	OrderCount   int             `json:"order_count"`
	Revenue      float64         `json:"revenue"`
	LowStock     []model.Product `json:"low_stock"`
	Trends       map[string]any  `json:"trends"`
}

// Summary fetches products, orders, and trends concurrently and folds them
// into one dashboard payload. Any single fetch failing fails the summary.
func (s *InsightsService) Summary(ctx context.Context, bearer string) (*DashboardSummary, error) {
	var (
		products []model.Product
		orders   []model.Order
		trends   map[string]any
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		products, err = s.catalog.ListProducts(gctx, bearer)
		if err != nil {
			return fmt.Errorf("list products: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		orders, err = s.orders.ListOrders(gctx, bearer)
		if err != nil {
			return fmt.Errorf("list orders: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		trends, err = s.Trends(gctx, bearer)
		if err != nil {
			return fmt.Errorf("order trends: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := &DashboardSummary{
		ProductCount: len(products),
		OrderCount:   len(orders),
		LowStock:     []model.Product{},
		Trends:       trends,
	}
	for _, p := range products {
		if p.Stock <= LowStockThreshold {
			summary.LowStock = append(summary.LowStock, p)
		}
	}
	for _, o := range orders {
		summary.Revenue += o.Total
	}

	if s.logger != nil {
		s.logger.DebugContext(ctx, "dashboard summary assembled",
			"products", summary.ProductCount, "orders", summary.OrderCount)
	}
	return summary, nil
}

// Trends fetches the raw trends payload and applies the configured JMESPath
// projections. Projections that match nothing yield null series rather than
// errors; the dashboard renders what it gets.
func (s *InsightsService) Trends(ctx context.Context, bearer string) (map[string]any, error) {
	raw, err := s.orders.OrderTrends(ctx, bearer)
	if err != nil {
		return nil, err
	}

	var data any
	if unmarshalErr := json.Unmarshal(raw, &data); unmarshalErr != nil {
		return nil, fmt.Errorf("invalid trends payload: %w", unmarshalErr)
	}

	series := make(map[string]any, len(s.projections))
	for name, expr := range s.projections {
		if strings.TrimSpace(expr) == "" {
			series[name] = data
			continue
		}
		res, evalErr := s.jems.Evaluate(expr, data)
		if evalErr != nil {
			return nil, fmt.Errorf("evaluate trend projection %q: %w", name, evalErr)
		}
		series[name] = res
	}
	return series, nil
}

// StockHistory returns the historical stock observations unshaped; the
// chart on the admin side consumes them directly.
func (s *InsightsService) StockHistory(ctx context.Context, bearer string) ([]model.StockSnapshot, error) {
	snapshots, err := s.stock.StockHistory(ctx, bearer)
	if err != nil {
		return nil, fmt.Errorf("stock history: %w", err)
	}
	return snapshots, nil
}

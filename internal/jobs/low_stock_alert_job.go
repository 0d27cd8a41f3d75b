package jobs

import (
	"context"
	"log/slog"

	"pos/internal/core/application/usecases/queries"
	"pos/internal/core/domain/model/catalog"

	"github.com/robfig/cron/v3"
)

type LowStockFinder interface {
	Handle(ctx context.Context, q queries.GetLowStockProductsQuery) ([]*catalog.Product, error)
}

// LowStockAlertJob logs a warning per product at or under the threshold.
type LowStockAlertJob struct {
	finder    LowStockFinder
	threshold int
	schedule  string
	cron      *cron.Cron
	logger    *slog.Logger
}

func NewLowStockAlertJob(finder LowStockFinder, threshold int, schedule string, logger *slog.Logger) *LowStockAlertJob {
	return &LowStockAlertJob{
		finder:    finder,
		threshold: threshold,
		schedule:  schedule,
		cron:      cron.New(),
		logger:    logger.With("component", "low_stock_alert_job"),
	}
}

// Run checks the catalog once and returns how many products are low.
func (j *LowStockAlertJob) Run(ctx context.Context) int {
	products, err := j.finder.Handle(ctx, queries.NewGetLowStockProductsQuery(j.threshold))
	if err != nil {
		j.logger.ErrorContext(ctx, "Low stock check failed", "error", err)
		return 0
	}
	for _, p := range products {
		j.logger.WarnContext(ctx, "Product stock is low",
			"product_id", p.ID().String(),
			"name", p.Name(),
			"stock", p.Stock(),
			"threshold", j.threshold,
		)
	}
	return len(products)
}

func (j *LowStockAlertJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.Run(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Low stock alert job started", "schedule", j.schedule)
	return nil
}

func (j *LowStockAlertJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Low stock alert job stopped")
}

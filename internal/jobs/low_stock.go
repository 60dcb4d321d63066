package jobs

import (
	"context"
	"log"

	"shopmart/internal/metrics"
	"shopmart/internal/repositories"
)

// LowStockSweep periodically scans for products at or below the
// threshold so operators see replenishment pressure before checkouts
// start failing on the stock guard.
type LowStockSweep struct {
	productRepo repositories.ProductRepository
	metrics     *metrics.Metrics
	threshold   int
}

func NewLowStockSweep(productRepo repositories.ProductRepository, m *metrics.Metrics, threshold int) *LowStockSweep {
	return &LowStockSweep{productRepo: productRepo, metrics: m, threshold: threshold}
}

func (j *LowStockSweep) Run(ctx context.Context) {
	products, err := j.productRepo.ListLowStock(ctx, j.threshold)
	if err != nil {
		log.Printf("low stock sweep: %v", err)
		return
	}

	j.metrics.LowStockGauge.Set(float64(len(products)))
	for _, product := range products {
		log.Printf("low stock: product %s (%q) at %d units", product.ID, product.Name, product.StockQuantity)
	}
}

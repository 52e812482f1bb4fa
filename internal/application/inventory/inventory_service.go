package inventory

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/pharmalink/backend/internal/domain/catalog"
	"github.com/pharmalink/backend/internal/domain/inventory"
	"go.uber.org/zap"
)

// Cache is the advisory read cache for dashboard views. Lookups that
// fail or miss fall through to the database; values may be slightly
// stale within the TTL.
type Cache interface {
	// Get returns the cached value and whether it was present
	Get(ctx context.Context, key string) (string, bool, error)
	// Set stores a value with a TTL
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

const (
	overviewCacheKey   = "inventory:overview"
	overviewCacheTTL   = time.Minute
	expiryWindowDays   = 90
	defaultQueueLimit  = 100
	defaultRecentLimit = 20
)

// InventoryService serves the stock dashboard: overview, expiring-stock
// alerts and the FIFO queue views. All reads, no mutation.
type InventoryService struct {
	batchRepo    inventory.ShipmentBatchRepository
	medicineRepo catalog.MedicineRepository
	cache        Cache
	logger       *zap.Logger
}

// NewInventoryService creates a new InventoryService
func NewInventoryService(
	batchRepo inventory.ShipmentBatchRepository,
	medicineRepo catalog.MedicineRepository,
	cache Cache,
	logger *zap.Logger,
) *InventoryService {
	return &InventoryService{
		batchRepo:    batchRepo,
		medicineRepo: medicineRepo,
		cache:        cache,
		logger:       logger,
	}
}

// Overview returns the dashboard headline numbers, cached for a minute
func (s *InventoryService) Overview(ctx context.Context) (*StockOverview, error) {
	if s.cache != nil {
		if cached, ok, err := s.cache.Get(ctx, overviewCacheKey); err == nil && ok {
			var overview StockOverview
			if err := json.Unmarshal([]byte(cached), &overview); err == nil {
				return &overview, nil
			}
		}
	}

	value, err := s.batchRepo.TotalStockValue(ctx)
	if err != nil {
		return nil, err
	}
	expiring, err := s.batchRepo.CountExpiring(ctx, time.Now().AddDate(0, 0, expiryWindowDays))
	if err != nil {
		return nil, err
	}
	active, err := s.medicineRepo.CountActive(ctx)
	if err != nil {
		return nil, err
	}

	overview := &StockOverview{
		TotalStockValue: value.String(),
		ExpiringBatches: expiring,
		ActiveMedicines: active,
		GeneratedAt:     time.Now(),
	}

	if s.cache != nil {
		if data, err := json.Marshal(overview); err == nil {
			if err := s.cache.Set(ctx, overviewCacheKey, string(data), overviewCacheTTL); err != nil {
				s.logger.Warn("overview cache write failed", zap.Error(err))
			}
		}
	}
	return overview, nil
}

// ExpiringBatches returns batches with stock expiring within the given
// number of days, soonest first. FEFO ordering here is an alerting view
// only and does not influence sale allocation.
func (s *InventoryService) ExpiringBatches(ctx context.Context, days, limit int) ([]ExpiringBatchView, error) {
	if days <= 0 {
		days = expiryWindowDays
	}
	if limit <= 0 {
		limit = defaultQueueLimit
	}

	now := time.Now()
	batches, err := s.batchRepo.FindExpiring(ctx, now.AddDate(0, 0, days), limit)
	if err != nil {
		return nil, err
	}

	views := make([]ExpiringBatchView, 0, len(batches))
	for i := range batches {
		b := &batches[i]
		if b.ExpiryDate == nil {
			continue
		}
		views = append(views, ExpiringBatchView{
			BatchID:      b.ID,
			MedicineID:   b.MedicineID,
			BatchNumber:  b.BatchNumber,
			ExpiryDate:   *b.ExpiryDate,
			Quantity:     b.Quantity,
			DaysToExpiry: int(time.Until(*b.ExpiryDate).Hours() / 24),
		})
	}
	return views, nil
}

// AllocationQueue returns a medicine's batches with stock in the order
// allocation will consume them
func (s *InventoryService) AllocationQueue(ctx context.Context, medicineID uuid.UUID) ([]ShipmentBatchResponse, error) {
	batches, err := s.batchRepo.FindAllocatable(ctx, medicineID)
	if err != nil {
		return nil, err
	}
	inventory.SortBatchesFIFO(batches)

	views := make([]ShipmentBatchResponse, 0, len(batches))
	for _, b := range batches {
		views = append(views, ToShipmentBatchResponse(b))
	}
	return views, nil
}

// RecentBatches returns the most recently received batches
func (s *InventoryService) RecentBatches(ctx context.Context, limit int) ([]ShipmentBatchResponse, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	batches, err := s.batchRepo.FindRecent(ctx, limit)
	if err != nil {
		return nil, err
	}
	views := make([]ShipmentBatchResponse, 0, len(batches))
	for i := range batches {
		views = append(views, ToShipmentBatchResponse(&batches[i]))
	}
	return views, nil
}

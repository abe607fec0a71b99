package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/brewpoint-tech/promo-backend/internal/domain"
	"github.com/brewpoint-tech/promo-backend/pkg/e"
)

type noopLogger struct{}

func (noopLogger) Debugf(format string, args ...any)            {}
func (noopLogger) Infof(format string, args ...any)             {}
func (noopLogger) Warnf(format string, args ...any)             {}
func (noopLogger) Errorf(err error, format string, args ...any) {}

// fakePromotionRepo хранит промоакции в памяти и воспроизводит выборки
// PostgreSQL-репозитория.
type fakePromotionRepo struct {
	promotions []domain.Promotion
}

func (f *fakePromotionRepo) Create(ctx context.Context, promotion *domain.Promotion) (*domain.Promotion, error) {
	created := *promotion
	created.ID = int64(len(f.promotions) + 1)
	created.CreatedAt = time.Now()
	f.promotions = append(f.promotions, created)
	return &created, nil
}

func (f *fakePromotionRepo) Update(ctx context.Context, promotion *domain.Promotion) (*domain.Promotion, error) {
	for i := range f.promotions {
		if f.promotions[i].ID == promotion.ID {
			f.promotions[i] = *promotion
			return promotion, nil
		}
	}
	return nil, e.ErrPromotionNotFound
}

func (f *fakePromotionRepo) Delete(ctx context.Context, id int64) error {
	for i := range f.promotions {
		if f.promotions[i].ID == id {
			f.promotions = append(f.promotions[:i], f.promotions[i+1:]...)
			return nil
		}
	}
	return e.ErrPromotionNotFound
}

func (f *fakePromotionRepo) GetByID(ctx context.Context, id int64) (*domain.Promotion, error) {
	for i := range f.promotions {
		if f.promotions[i].ID == id {
			promo := f.promotions[i]
			return &promo, nil
		}
	}
	return nil, e.ErrPromotionNotFound
}

func (f *fakePromotionRepo) List(ctx context.Context, filter *PromotionFilter) ([]domain.Promotion, error) {
	result := make([]domain.Promotion, 0)
	for _, promo := range f.promotions {
		if filter != nil {
			if filter.IsActive != nil && promo.IsActive != *filter.IsActive {
				continue
			}
			if filter.Scope != "" && promo.Scope != filter.Scope {
				continue
			}
			if filter.Type != "" && promo.Type != filter.Type {
				continue
			}
		}
		result = append(result, promo)
	}
	return result, nil
}

func (f *fakePromotionRepo) FindActive(ctx context.Context, now time.Time) ([]domain.Promotion, error) {
	result := make([]domain.Promotion, 0)
	for _, promo := range f.promotions {
		if promo.ActiveAt(now) {
			result = append(result, promo)
		}
	}
	return result, nil
}

func (f *fakePromotionRepo) FindByScopeWithAnyProduct(ctx context.Context, productIDs []int64, excludeID int64) ([]domain.Promotion, error) {
	result := make([]domain.Promotion, 0)
	for _, promo := range f.promotions {
		if promo.Scope != domain.ScopeProduct || (excludeID != 0 && promo.ID == excludeID) {
			continue
		}
		for _, id := range productIDs {
			if containsInt64(promo.ProductIDs, id) {
				result = append(result, promo)
				break
			}
		}
	}
	return result, nil
}

func (f *fakePromotionRepo) FindByScopeWithAnyCategory(ctx context.Context, categories []string, excludeID int64) ([]domain.Promotion, error) {
	result := make([]domain.Promotion, 0)
	for _, promo := range f.promotions {
		if promo.Scope != domain.ScopeCategory || (excludeID != 0 && promo.ID == excludeID) {
			continue
		}
		for _, category := range categories {
			if containsString(promo.Categories, category) {
				result = append(result, promo)
				break
			}
		}
	}
	return result, nil
}

func (f *fakePromotionRepo) FindAllByScope(ctx context.Context, scope domain.PromotionScope, excludeID int64) ([]domain.Promotion, error) {
	result := make([]domain.Promotion, 0)
	for _, promo := range f.promotions {
		if promo.Scope != scope || (excludeID != 0 && promo.ID == excludeID) {
			continue
		}
		result = append(result, promo)
	}
	return result, nil
}

type fakeProductRepo struct {
	products map[int64]ProductInfo
}

func (f *fakeProductRepo) GetProductsInfo(ctx context.Context, ids []int64) ([]ProductInfo, error) {
	result := make([]ProductInfo, 0, len(ids))
	for _, id := range ids {
		if product, ok := f.products[id]; ok {
			result = append(result, product)
		}
	}
	return result, nil
}

// fakeCacheRepo всегда промахивается; SetProducts учитывает фоновые вызовы.
type fakeCacheRepo struct {
	mu       sync.Mutex
	setCalls int
}

func (f *fakeCacheRepo) GetProducts(ctx context.Context, ids []int64) (map[int64]ProductInfo, error) {
	return map[int64]ProductInfo{}, nil
}

func (f *fakeCacheRepo) SetProducts(ctx context.Context, products []ProductInfo) error {
	f.mu.Lock()
	f.setCalls++
	f.mu.Unlock()
	return nil
}

type fakeOutboxRepo struct {
	events []*OutboxEvent
}

func (f *fakeOutboxRepo) Create(ctx context.Context, event *OutboxEvent) (*OutboxEvent, error) {
	created := *event
	created.ID = int64(len(f.events) + 1)
	f.events = append(f.events, &created)
	return &created, nil
}

func (f *fakeOutboxRepo) GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error) {
	result := make([]*OutboxEvent, 0)
	for _, event := range f.events {
		if event.Status == Pending && len(result) < limit {
			event.Status = Processing
			result = append(result, event)
		}
	}
	return result, nil
}

func (f *fakeOutboxRepo) MarkAsProcessed(ctx context.Context, id int64) error {
	for _, event := range f.events {
		if event.ID == id {
			event.Status = Processed
			return nil
		}
	}
	return nil
}

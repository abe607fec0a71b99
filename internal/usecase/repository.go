package usecase

import (
	"context"
	"time"

	"github.com/brewpoint-tech/promo-backend/internal/domain"
)

type PromotionRepository interface {
	Create(ctx context.Context, promotion *domain.Promotion) (*domain.Promotion, error)
	Update(ctx context.Context, promotion *domain.Promotion) (*domain.Promotion, error)
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Promotion, error)
	List(ctx context.Context, filter *PromotionFilter) ([]domain.Promotion, error)
	FindActive(ctx context.Context, now time.Time) ([]domain.Promotion, error)

	// Выборки валидатора уникальности. excludeID == 0 означает "без исключений".
	FindByScopeWithAnyProduct(ctx context.Context, productIDs []int64, excludeID int64) ([]domain.Promotion, error)
	FindByScopeWithAnyCategory(ctx context.Context, categories []string, excludeID int64) ([]domain.Promotion, error)
	FindAllByScope(ctx context.Context, scope domain.PromotionScope, excludeID int64) ([]domain.Promotion, error)
}

type ProductRepository interface {
	GetProductsInfo(ctx context.Context, ids []int64) ([]ProductInfo, error)
}

type OutboxRepository interface {
	Create(ctx context.Context, event *OutboxEvent) (*OutboxEvent, error)
	GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error)
	MarkAsProcessed(ctx context.Context, id int64) error
}

type CacheRepository interface {
	GetProducts(ctx context.Context, ids []int64) (map[int64]ProductInfo, error)
	SetProducts(ctx context.Context, products []ProductInfo) error
}

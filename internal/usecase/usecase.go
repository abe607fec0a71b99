package usecase

import (
	"context"

	"github.com/brewpoint-tech/promo-backend/internal/domain"
)

type PromotionUC interface {
	CreatePromotion(ctx context.Context, req *CreatePromotionReq) (*domain.Promotion, error)
	UpdatePromotion(ctx context.Context, req *UpdatePromotionReq) (*domain.Promotion, error)
	DeletePromotion(ctx context.Context, id int64) error
	GetPromotion(ctx context.Context, id int64) (*domain.Promotion, error)
	ListPromotions(ctx context.Context, req *ListPromotionsReq) ([]domain.Promotion, error)
	ListActivePromotions(ctx context.Context) ([]domain.Promotion, error)
	ValidatePromotion(ctx context.Context, candidate *domain.Promotion, excludeID int64) ([]Conflict, error)
}

type PricingUC interface {
	CalculateDiscounts(ctx context.Context, req *CalculateDiscountsReq) (*CalculateDiscountsRes, error)
}

//go:generate goverter gen github.com/brewpoint-tech/promo-backend/internal/repository/pgdb/converter
package converter

import (
	"time"

	"github.com/brewpoint-tech/promo-backend/internal/domain"
	"github.com/brewpoint-tech/promo-backend/internal/usecase"
)

// PromotionConverter преобразует сущности Promotion между domain и моделью PostgreSQL.
// goverter:converter
// goverter:extend ConvertTime
// goverter:extend ConvertPointerTime
type PromotionConverter interface {
	ToModel(entity *domain.Promotion) *PromotionModel
	ToEntity(model *PromotionModel) *domain.Promotion
	ToArrEntity(models []*PromotionModel) []*domain.Promotion
}

// OutboxEventConverter преобразует сущности OutboxEvent между usecase и моделью PostgreSQL.
// goverter:converter
// goverter:extend ConvertTime
// goverter:extend ConvertPointerTime
// goverter:extend ConvertOutboxStatus
// goverter:extend ConvertOutboxEventType
type OutboxEventConverter interface {
	ToModel(entity *usecase.OutboxEvent) *OutboxEventModel
	ToEntity(model *OutboxEventModel) *usecase.OutboxEvent
	ToArrEntity(models []*OutboxEventModel) []*usecase.OutboxEvent
}

func ConvertPointerTime(t *time.Time) *time.Time {
	return t
}

func ConvertTime(t time.Time) time.Time {
	return t
}

func ConvertOutboxStatus(s usecase.OutboxStatus) usecase.OutboxStatus {
	return s
}

func ConvertOutboxEventType(t usecase.OutboxEventType) usecase.OutboxEventType {
	return t
}

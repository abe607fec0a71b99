//go:generate goverter gen github.com/brewpoint-tech/promo-backend/internal/repository/redis/converter

package converter

import (
	"github.com/brewpoint-tech/promo-backend/internal/usecase"
)

// goverter:converter
type ProductInfoConverter interface {
	ToRedisModel(entity *usecase.ProductInfo) *ProductInfoRedisModel
	ToUseCase(model *ProductInfoRedisModel) *usecase.ProductInfo
	ToArrRedisModel(entities []usecase.ProductInfo) []ProductInfoRedisModel
	ToArrUseCase(models []ProductInfoRedisModel) []usecase.ProductInfo
}

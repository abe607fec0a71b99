package usecase

import (
	"context"
	"time"

	"github.com/brewpoint-tech/promo-backend/internal/domain"
	"github.com/brewpoint-tech/promo-backend/pkg/e"
	"github.com/brewpoint-tech/promo-backend/pkg/logger"
	"github.com/shopspring/decimal"
)

// PricingUseCase вычисляет применимые скидки к корзине. Только чтение:
// промоакции перечитываются из хранилища на каждый запрос, карта продуктов
// собирается локально на время вызова.
type PricingUseCase struct {
	promotionRepo PromotionRepository
	productRepo   ProductRepository
	cacheRepo     CacheRepository
	logger        logger.Logger
}

func NewPricingUC(
	promotionRepo PromotionRepository,
	productRepo ProductRepository,
	cacheRepo CacheRepository,
	logger logger.Logger,
) *PricingUseCase {
	return &PricingUseCase{
		promotionRepo: promotionRepo,
		productRepo:   productRepo,
		cacheRepo:     cacheRepo,
		logger:        logger,
	}
}

// CalculateDiscounts определяет, какие действующие промоакции применимы к
// корзине, и считает итог. Промоакция попадает в результат, только если
// применима и её скидка строго больше нуля; скидки складываются без ограничений,
// итог не опускается ниже нуля.
func (p *PricingUseCase) CalculateDiscounts(ctx context.Context, req *CalculateDiscountsReq) (*CalculateDiscountsRes, error) {
	const op = "PricingUseCase.CalculateDiscounts"

	promotions, err := p.promotionRepo.FindActive(ctx, time.Now())
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	productMap, err := p.resolveProducts(ctx, req.Items)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	itemCounts := domain.TallyQuantities(req.Items)

	applicable := make([]AppliedPromotion, 0)
	var totalDiscount int64

	for _, promo := range promotions {
		discount, applies := p.evaluate(&promo, req.Items, itemCounts, productMap, req.Subtotal)
		// Нулевые и отрицательные скидки молча отбрасываются: комбо с целевой
		// ценой выше натуральной никогда не попадает в результат.
		if !applies || discount <= 0 {
			continue
		}

		applicable = append(applicable, NewAppliedPromotion(promo.ID, promo.Name, discount))
		totalDiscount += discount
	}

	finalTotal := req.Subtotal - totalDiscount
	if finalTotal < 0 {
		finalTotal = 0
	}

	return &CalculateDiscountsRes{
		ApplicablePromotions: applicable,
		TotalDiscount:        totalDiscount,
		FinalTotal:           finalTotal,
	}, nil
}

// evaluate проверяет применимость одной промоакции и считает её скидку.
// Продукты, отсутствующие в каталоге, дают нулевой вклад в ограниченные
// подытоги, но учитываются при подсчёте количеств для комбо.
func (p *PricingUseCase) evaluate(
	promo *domain.Promotion,
	items []domain.CartItem,
	itemCounts map[int64]int32,
	productMap map[int64]ProductInfo,
	subtotal int64,
) (int64, bool) {
	switch promo.Scope {
	case domain.ScopeOrder:
		if subtotal < promo.MinOrderTotal {
			return 0, false
		}

		switch promo.Type {
		case domain.TypePercent:
			return percentOf(subtotal, promo.Value), true
		case domain.TypeFixedAmount:
			return promo.Value, true
		}
		// FIXED_PRICE_COMBO не имеет смысла для ORDER scope
		return 0, true

	case domain.ScopeCategory:
		var restricted int64
		matched := false
		for _, item := range items {
			product, ok := productMap[item.ProductID]
			if !ok || !containsString(promo.Categories, product.Category) {
				continue
			}
			matched = true
			restricted += product.BasePrice * int64(item.Quantity)
		}
		if !matched {
			return 0, false
		}

		return scopedDiscount(promo, restricted), true

	case domain.ScopeProduct:
		var restricted int64
		matched := false
		for _, item := range items {
			if !containsInt64(promo.ProductIDs, item.ProductID) {
				continue
			}
			matched = true
			if product, ok := productMap[item.ProductID]; ok {
				restricted += product.BasePrice * int64(item.Quantity)
			}
		}
		if !matched {
			return 0, false
		}

		return scopedDiscount(promo, restricted), true

	case domain.ScopeCombo:
		// Пустой payload никогда не срабатывает
		if len(promo.ComboItems) == 0 {
			return 0, false
		}

		// Всё или ничего: каждая позиция комбо должна быть покрыта суммарным
		// количеством по корзине
		for _, comboItem := range promo.ComboItems {
			if itemCounts[comboItem.ProductID] < comboItem.RequiredQty {
				return 0, false
			}
		}

		var naturalPrice int64
		for _, comboItem := range promo.ComboItems {
			if product, ok := productMap[comboItem.ProductID]; ok {
				naturalPrice += product.BasePrice * int64(comboItem.RequiredQty)
			}
		}

		switch promo.Type {
		case domain.TypeFixedPriceCombo:
			// Может быть отрицательной, если целевая цена выше натуральной;
			// здесь не ограничивается, фильтр по discount > 0 отработает выше
			return naturalPrice - promo.Value, true
		case domain.TypePercent:
			return percentOf(naturalPrice, promo.Value), true
		case domain.TypeFixedAmount:
			return promo.Value, true
		}
		return 0, true
	}

	return 0, false
}

// resolveProducts собирает карту продуктов корзины: сначала кэш, промахи
// дочитываются из БД и фоном докладываются в кэш. Неизвестные продукты в карту
// не попадают.
func (p *PricingUseCase) resolveProducts(ctx context.Context, items []domain.CartItem) (map[int64]ProductInfo, error) {
	ids := distinctProductIDs(items)

	productMap := make(map[int64]ProductInfo, len(ids))

	cached, err := p.cacheRepo.GetProducts(ctx, ids)
	if err != nil {
		// Кэш недоступен: работаем напрямую с БД
		cached = nil
	}

	var missed []int64
	for _, id := range ids {
		if product, ok := cached[id]; ok {
			productMap[id] = product
		} else {
			missed = append(missed, id)
		}
	}

	if len(missed) == 0 {
		return productMap, nil
	}

	fromDB, err := p.productRepo.GetProductsInfo(ctx, missed)
	if err != nil {
		return nil, err
	}

	for _, product := range fromDB {
		productMap[product.ID] = product
	}

	// Фоновое добавление продуктов в кэш
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
		defer cancel()

		if err := p.cacheRepo.SetProducts(bgCtx, fromDB); err != nil {
			p.logger.Warnf("Failed to cache products in background: %v", err)
		}
	}()

	return productMap, nil
}

// scopedDiscount — арифметика PERCENT/FIXED_AMOUNT над ограниченным подытогом.
func scopedDiscount(promo *domain.Promotion, restricted int64) int64 {
	switch promo.Type {
	case domain.TypePercent:
		return percentOf(restricted, promo.Value)
	case domain.TypeFixedAmount:
		return promo.Value
	}

	return 0
}

// percentOf возвращает value процентов от amount, округляя до копейки.
func percentOf(amount int64, value int64) int64 {
	return decimal.NewFromInt(amount).
		Mul(decimal.NewFromInt(value)).
		Div(decimal.NewFromInt(100)).
		Round(0).
		IntPart()
}

func distinctProductIDs(items []domain.CartItem) []int64 {
	seen := make(map[int64]struct{}, len(items))
	ids := make([]int64, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.ProductID]; ok {
			continue
		}
		seen[item.ProductID] = struct{}{}
		ids = append(ids, item.ProductID)
	}

	return ids
}

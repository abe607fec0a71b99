package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/brewpoint-tech/promo-backend/internal/domain"
)

func activeWindow() (time.Time, time.Time) {
	now := time.Now()
	return now.Add(-time.Hour), now.Add(time.Hour)
}

func newPricingFixture(promotions []domain.Promotion, products map[int64]ProductInfo) *PricingUseCase {
	return NewPricingUC(
		&fakePromotionRepo{promotions: promotions},
		&fakeProductRepo{products: products},
		&fakeCacheRepo{},
		noopLogger{},
	)
}

func TestCalculateDiscounts_OrderPercent(t *testing.T) {
	start, end := activeWindow()
	uc := newPricingFixture([]domain.Promotion{
		{
			ID: 1, Name: "10% off", Type: domain.TypePercent, Scope: domain.ScopeOrder,
			Value: 10, StartDate: start, EndDate: end, IsActive: true,
		},
	}, nil)

	res, err := uc.CalculateDiscounts(context.Background(), &CalculateDiscountsReq{
		Items:    []domain.CartItem{{ProductID: 1, Quantity: 1}},
		Subtotal: 100000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(res.ApplicablePromotions) != 1 {
		t.Fatalf("expected 1 applicable promotion, got %d", len(res.ApplicablePromotions))
	}
	if res.ApplicablePromotions[0].DiscountAmount != 10000 {
		t.Errorf("expected discount 10000, got %d", res.ApplicablePromotions[0].DiscountAmount)
	}
	if res.TotalDiscount != 10000 {
		t.Errorf("expected total discount 10000, got %d", res.TotalDiscount)
	}
	if res.FinalTotal != 90000 {
		t.Errorf("expected final total 90000, got %d", res.FinalTotal)
	}
}

func TestCalculateDiscounts_OrderMinTotalNotMet(t *testing.T) {
	start, end := activeWindow()
	uc := newPricingFixture([]domain.Promotion{
		{
			ID: 1, Name: "big order", Type: domain.TypeFixedAmount, Scope: domain.ScopeOrder,
			Value: 5000, MinOrderTotal: 50000, StartDate: start, EndDate: end, IsActive: true,
		},
	}, nil)

	res, err := uc.CalculateDiscounts(context.Background(), &CalculateDiscountsReq{
		Items:    []domain.CartItem{{ProductID: 1, Quantity: 1}},
		Subtotal: 30000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(res.ApplicablePromotions) != 0 {
		t.Errorf("expected no applicable promotions, got %d", len(res.ApplicablePromotions))
	}
	if res.FinalTotal != 30000 {
		t.Errorf("expected final total 30000, got %d", res.FinalTotal)
	}
}

func TestCalculateDiscounts_FixedPriceComboAtOrderScopeIsFiltered(t *testing.T) {
	start, end := activeWindow()
	uc := newPricingFixture([]domain.Promotion{
		{
			ID: 1, Name: "misconfigured", Type: domain.TypeFixedPriceCombo, Scope: domain.ScopeOrder,
			Value: 50000, StartDate: start, EndDate: end, IsActive: true,
		},
	}, nil)

	res, err := uc.CalculateDiscounts(context.Background(), &CalculateDiscountsReq{
		Items:    []domain.CartItem{{ProductID: 1, Quantity: 1}},
		Subtotal: 100000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(res.ApplicablePromotions) != 0 {
		t.Errorf("expected zero-discount promotion to be filtered, got %d", len(res.ApplicablePromotions))
	}
}

func TestCalculateDiscounts_ComboFixedPrice(t *testing.T) {
	start, end := activeWindow()
	uc := newPricingFixture([]domain.Promotion{
		{
			ID: 1, Name: "breakfast combo", Type: domain.TypeFixedPriceCombo, Scope: domain.ScopeCombo,
			Value: 50000, StartDate: start, EndDate: end, IsActive: true,
			ComboItems: []domain.ComboItem{
				{ProductID: 1, RequiredQty: 2},
				{ProductID: 2, RequiredQty: 1},
			},
		},
	}, map[int64]ProductInfo{
		1: {ID: 1, Name: "latte", Category: "drinks", BasePrice: 20000},
		2: {ID: 2, Name: "croissant", Category: "bakery", BasePrice: 15000},
	})

	res, err := uc.CalculateDiscounts(context.Background(), &CalculateDiscountsReq{
		Items: []domain.CartItem{
			{ProductID: 1, Quantity: 2},
			{ProductID: 2, Quantity: 1},
		},
		Subtotal: 55000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Натуральная цена 2*20000 + 15000 = 55000, целевая 50000
	if res.TotalDiscount != 5000 {
		t.Errorf("expected discount 5000, got %d", res.TotalDiscount)
	}
	if res.FinalTotal != 50000 {
		t.Errorf("expected final total 50000, got %d", res.FinalTotal)
	}
}

func TestCalculateDiscounts_ComboNotMet(t *testing.T) {
	start, end := activeWindow()
	uc := newPricingFixture([]domain.Promotion{
		{
			ID: 1, Name: "breakfast combo", Type: domain.TypeFixedPriceCombo, Scope: domain.ScopeCombo,
			Value: 50000, StartDate: start, EndDate: end, IsActive: true,
			ComboItems: []domain.ComboItem{
				{ProductID: 1, RequiredQty: 2},
				{ProductID: 2, RequiredQty: 1},
			},
		},
	}, map[int64]ProductInfo{
		1: {ID: 1, BasePrice: 20000},
		2: {ID: 2, BasePrice: 15000},
	})

	// Только одна позиция первого продукта вместо двух
	res, err := uc.CalculateDiscounts(context.Background(), &CalculateDiscountsReq{
		Items: []domain.CartItem{
			{ProductID: 1, Quantity: 1},
			{ProductID: 2, Quantity: 1},
		},
		Subtotal: 35000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(res.ApplicablePromotions) != 0 {
		t.Errorf("expected combo not to apply, got %d promotions", len(res.ApplicablePromotions))
	}
}

func TestCalculateDiscounts_ComboTalliesAcrossLineItems(t *testing.T) {
	start, end := activeWindow()
	uc := newPricingFixture([]domain.Promotion{
		{
			ID: 1, Name: "double shot", Type: domain.TypeFixedAmount, Scope: domain.ScopeCombo,
			Value: 3000, StartDate: start, EndDate: end, IsActive: true,
			ComboItems: []domain.ComboItem{{ProductID: 1, RequiredQty: 2}},
		},
	}, map[int64]ProductInfo{
		1: {ID: 1, BasePrice: 20000},
	})

	// Количество суммируется по всем строкам одного продукта
	res, err := uc.CalculateDiscounts(context.Background(), &CalculateDiscountsReq{
		Items: []domain.CartItem{
			{ProductID: 1, Quantity: 1},
			{ProductID: 1, Quantity: 1},
		},
		Subtotal: 40000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.TotalDiscount != 3000 {
		t.Errorf("expected discount 3000, got %d", res.TotalDiscount)
	}
}

func TestCalculateDiscounts_ComboTargetAboveNaturalPriceIsFiltered(t *testing.T) {
	start, end := activeWindow()
	uc := newPricingFixture([]domain.Promotion{
		{
			ID: 1, Name: "bad deal", Type: domain.TypeFixedPriceCombo, Scope: domain.ScopeCombo,
			Value: 60000, StartDate: start, EndDate: end, IsActive: true,
			ComboItems: []domain.ComboItem{{ProductID: 1, RequiredQty: 1}},
		},
	}, map[int64]ProductInfo{
		1: {ID: 1, BasePrice: 40000},
	})

	res, err := uc.CalculateDiscounts(context.Background(), &CalculateDiscountsReq{
		Items:    []domain.CartItem{{ProductID: 1, Quantity: 1}},
		Subtotal: 40000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Отрицательная скидка не должна увеличивать итог
	if len(res.ApplicablePromotions) != 0 {
		t.Errorf("expected negative-discount combo to be filtered")
	}
	if res.FinalTotal != 40000 {
		t.Errorf("expected final total 40000, got %d", res.FinalTotal)
	}
}

func TestCalculateDiscounts_CategoryRestrictedSubtotal(t *testing.T) {
	start, end := activeWindow()
	uc := newPricingFixture([]domain.Promotion{
		{
			ID: 1, Name: "drinks 20%", Type: domain.TypePercent, Scope: domain.ScopeCategory,
			Value: 20, StartDate: start, EndDate: end, IsActive: true,
			Categories: []string{"drinks"},
		},
	}, map[int64]ProductInfo{
		1: {ID: 1, Category: "drinks", BasePrice: 20000},
		2: {ID: 2, Category: "bakery", BasePrice: 15000},
	})

	res, err := uc.CalculateDiscounts(context.Background(), &CalculateDiscountsReq{
		Items: []domain.CartItem{
			{ProductID: 1, Quantity: 2},
			{ProductID: 2, Quantity: 1},
		},
		Subtotal: 55000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 20% только от позиций категории drinks: 2*20000 = 40000
	if res.TotalDiscount != 8000 {
		t.Errorf("expected discount 8000, got %d", res.TotalDiscount)
	}
}

func TestCalculateDiscounts_CategoryWithoutMatchesDoesNotApply(t *testing.T) {
	start, end := activeWindow()
	uc := newPricingFixture([]domain.Promotion{
		{
			ID: 1, Name: "desserts", Type: domain.TypePercent, Scope: domain.ScopeCategory,
			Value: 50, StartDate: start, EndDate: end, IsActive: true,
			Categories: []string{"desserts"},
		},
	}, map[int64]ProductInfo{
		1: {ID: 1, Category: "drinks", BasePrice: 20000},
	})

	res, err := uc.CalculateDiscounts(context.Background(), &CalculateDiscountsReq{
		Items:    []domain.CartItem{{ProductID: 1, Quantity: 1}},
		Subtotal: 20000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(res.ApplicablePromotions) != 0 {
		t.Errorf("expected no applicable promotions, got %d", len(res.ApplicablePromotions))
	}
}

func TestCalculateDiscounts_UnknownProductContributesZero(t *testing.T) {
	start, end := activeWindow()
	uc := newPricingFixture([]domain.Promotion{
		{
			ID: 1, Name: "product 50%", Type: domain.TypePercent, Scope: domain.ScopeProduct,
			Value: 50, StartDate: start, EndDate: end, IsActive: true,
			ProductIDs: []int64{99},
		},
	}, map[int64]ProductInfo{})

	// Продукт 99 отсутствует в каталоге: акция совпадает по ID, но подытог нулевой
	res, err := uc.CalculateDiscounts(context.Background(), &CalculateDiscountsReq{
		Items:    []domain.CartItem{{ProductID: 99, Quantity: 3}},
		Subtotal: 60000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(res.ApplicablePromotions) != 0 {
		t.Errorf("expected zero-discount promotion to be filtered")
	}
}

func TestCalculateDiscounts_UnknownProductStillCountsForCombo(t *testing.T) {
	start, end := activeWindow()
	uc := newPricingFixture([]domain.Promotion{
		{
			ID: 1, Name: "combo with ghost", Type: domain.TypeFixedAmount, Scope: domain.ScopeCombo,
			Value: 2000, StartDate: start, EndDate: end, IsActive: true,
			ComboItems: []domain.ComboItem{
				{ProductID: 1, RequiredQty: 1},
				{ProductID: 99, RequiredQty: 1},
			},
		},
	}, map[int64]ProductInfo{
		1: {ID: 1, BasePrice: 20000},
	})

	res, err := uc.CalculateDiscounts(context.Background(), &CalculateDiscountsReq{
		Items: []domain.CartItem{
			{ProductID: 1, Quantity: 1},
			{ProductID: 99, Quantity: 1},
		},
		Subtotal: 20000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.TotalDiscount != 2000 {
		t.Errorf("expected discount 2000, got %d", res.TotalDiscount)
	}
}

func TestCalculateDiscounts_StackingAndClamp(t *testing.T) {
	start, end := activeWindow()
	uc := newPricingFixture([]domain.Promotion{
		{
			ID: 1, Name: "flat 30000", Type: domain.TypeFixedAmount, Scope: domain.ScopeOrder,
			Value: 30000, StartDate: start, EndDate: end, IsActive: true,
		},
		{
			ID: 2, Name: "flat 20000", Type: domain.TypeFixedAmount, Scope: domain.ScopeOrder,
			Value: 20000, StartDate: start, EndDate: end, IsActive: true,
		},
	}, nil)

	res, err := uc.CalculateDiscounts(context.Background(), &CalculateDiscountsReq{
		Items:    []domain.CartItem{{ProductID: 1, Quantity: 1}},
		Subtotal: 10000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.TotalDiscount != 50000 {
		t.Errorf("expected total discount 50000, got %d", res.TotalDiscount)
	}
	if res.FinalTotal != 0 {
		t.Errorf("expected final total clamped to 0, got %d", res.FinalTotal)
	}
}

func TestCalculateDiscounts_InactiveAndExpiredExcluded(t *testing.T) {
	now := time.Now()
	uc := newPricingFixture([]domain.Promotion{
		{
			ID: 1, Name: "disabled", Type: domain.TypePercent, Scope: domain.ScopeOrder,
			Value: 10, StartDate: now.Add(-time.Hour), EndDate: now.Add(time.Hour), IsActive: false,
		},
		{
			ID: 2, Name: "expired", Type: domain.TypePercent, Scope: domain.ScopeOrder,
			Value: 10, StartDate: now.Add(-48 * time.Hour), EndDate: now.Add(-24 * time.Hour), IsActive: true,
		},
		{
			ID: 3, Name: "upcoming", Type: domain.TypePercent, Scope: domain.ScopeOrder,
			Value: 10, StartDate: now.Add(24 * time.Hour), EndDate: now.Add(48 * time.Hour), IsActive: true,
		},
	}, nil)

	res, err := uc.CalculateDiscounts(context.Background(), &CalculateDiscountsReq{
		Items:    []domain.CartItem{{ProductID: 1, Quantity: 1}},
		Subtotal: 100000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(res.ApplicablePromotions) != 0 {
		t.Errorf("expected no applicable promotions, got %d", len(res.ApplicablePromotions))
	}
	if res.FinalTotal != 100000 {
		t.Errorf("expected final total 100000, got %d", res.FinalTotal)
	}
}

func TestPercentOf_RoundsToMinorUnit(t *testing.T) {
	// 3% от 33333 копеек = 999.99, округляется до 1000
	if got := percentOf(33333, 3); got != 1000 {
		t.Errorf("expected 1000, got %d", got)
	}
	if got := percentOf(100000, 10); got != 10000 {
		t.Errorf("expected 10000, got %d", got)
	}
}

package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/brewpoint-tech/promo-backend/pkg/e"
)

func validPromotion() *Promotion {
	now := time.Now()
	return &Promotion{
		Name: "promo", Type: TypePercent, Scope: ScopeOrder, Value: 10,
		StartDate: now, EndDate: now.Add(24 * time.Hour), IsActive: true,
	}
}

func TestValidateShape(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Promotion)
		wantErr error
	}{
		{"valid order promotion", func(p *Promotion) {}, nil},
		{"empty name", func(p *Promotion) { p.Name = "  " }, e.ErrPromotionNameRequired},
		{"unknown type", func(p *Promotion) { p.Type = "BOGOF" }, e.ErrInvalidPromotionType},
		{"unknown scope", func(p *Promotion) { p.Scope = "STORE" }, e.ErrInvalidPromotionScope},
		{"zero value", func(p *Promotion) { p.Value = 0 }, e.ErrValueMustBePositive},
		{"negative value", func(p *Promotion) { p.Value = -5 }, e.ErrValueMustBePositive},
		{"inverted date window", func(p *Promotion) {
			p.EndDate = p.StartDate.Add(-time.Hour)
		}, e.ErrInvalidDateWindow},
		{"product scope without products", func(p *Promotion) {
			p.Scope = ScopeProduct
		}, e.ErrProductIDsRequired},
		{"category scope without categories", func(p *Promotion) {
			p.Scope = ScopeCategory
		}, e.ErrCategoriesRequired},
		{"combo scope without items", func(p *Promotion) {
			p.Scope = ScopeCombo
		}, e.ErrComboItemsRequired},
		{"order scope with payload", func(p *Promotion) {
			p.ProductIDs = []int64{1}
		}, e.ErrScopePayloadMismatch},
		{"product scope with categories", func(p *Promotion) {
			p.Scope = ScopeProduct
			p.ProductIDs = []int64{1}
			p.Categories = []string{"drinks"}
		}, e.ErrScopePayloadMismatch},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			promo := validPromotion()
			tc.mutate(promo)

			err := promo.ValidateShape()
			if tc.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestActiveAt_WindowInclusive(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	promo := &Promotion{IsActive: true, StartDate: start, EndDate: end}

	if !promo.ActiveAt(start) {
		t.Error("expected promotion active at start date")
	}
	if !promo.ActiveAt(end) {
		t.Error("expected promotion active at end date")
	}
	if promo.ActiveAt(start.Add(-time.Second)) {
		t.Error("expected promotion inactive before start date")
	}
	if promo.ActiveAt(end.Add(time.Second)) {
		t.Error("expected promotion inactive after end date")
	}

	promo.IsActive = false
	if promo.ActiveAt(start.Add(time.Hour)) {
		t.Error("expected disabled promotion to be inactive inside window")
	}
}

func TestComboSignature_SortsWithoutMutating(t *testing.T) {
	promo := &Promotion{
		ComboItems: []ComboItem{
			{ProductID: 3, RequiredQty: 1},
			{ProductID: 1, RequiredQty: 2},
			{ProductID: 2, RequiredQty: 1},
		},
	}

	signature := promo.ComboSignature()

	for i := 1; i < len(signature); i++ {
		if signature[i-1].ProductID > signature[i].ProductID {
			t.Fatalf("signature not sorted: %v", signature)
		}
	}
	if promo.ComboItems[0].ProductID != 3 {
		t.Error("original combo items must not be reordered")
	}
}

func TestSameComboSignature(t *testing.T) {
	a := []ComboItem{{ProductID: 1, RequiredQty: 2}, {ProductID: 2, RequiredQty: 1}}
	b := []ComboItem{{ProductID: 1, RequiredQty: 2}, {ProductID: 2, RequiredQty: 1}}
	if !SameComboSignature(a, b) {
		t.Error("expected identical signatures to match")
	}

	differentQty := []ComboItem{{ProductID: 1, RequiredQty: 3}, {ProductID: 2, RequiredQty: 1}}
	if SameComboSignature(a, differentQty) {
		t.Error("expected differing quantities not to match")
	}

	shorter := []ComboItem{{ProductID: 1, RequiredQty: 2}}
	if SameComboSignature(a, shorter) {
		t.Error("expected different lengths not to match")
	}
}

func TestTallyQuantities_AggregatesAcrossLines(t *testing.T) {
	counts := TallyQuantities([]CartItem{
		{ProductID: 1, Quantity: 1},
		{ProductID: 2, Quantity: 3},
		{ProductID: 1, Quantity: 2},
	})

	if counts[1] != 3 {
		t.Errorf("expected product 1 count 3, got %d", counts[1])
	}
	if counts[2] != 3 {
		t.Errorf("expected product 2 count 3, got %d", counts[2])
	}
	if len(counts) != 2 {
		t.Errorf("expected 2 distinct products, got %d", len(counts))
	}
}

package domain

import (
	"sort"
	"strings"
	"time"

	"github.com/brewpoint-tech/promo-backend/pkg/e"
)

// PromotionType определяет арифметику расчёта скидки.
type PromotionType string

const (
	TypePercent         PromotionType = "PERCENT"
	TypeFixedAmount     PromotionType = "FIXED_AMOUNT"
	TypeFixedPriceCombo PromotionType = "FIXED_PRICE_COMBO"
)

// PromotionScope определяет, к чему применяется правило.
type PromotionScope string

const (
	ScopeOrder    PromotionScope = "ORDER"
	ScopeProduct  PromotionScope = "PRODUCT"
	ScopeCategory PromotionScope = "CATEGORY"
	ScopeCombo    PromotionScope = "COMBO"
)

func (t PromotionType) Valid() bool {
	switch t {
	case TypePercent, TypeFixedAmount, TypeFixedPriceCombo:
		return true
	}
	return false
}

func (s PromotionScope) Valid() bool {
	switch s {
	case ScopeOrder, ScopeProduct, ScopeCategory, ScopeCombo:
		return true
	}
	return false
}

// ComboItem — обязательная позиция комбо-акции.
type ComboItem struct {
	ProductID   int64
	RequiredQty int32
}

// Promotion описывает промоакцию.
// Смысл Value зависит от Type: проценты (PERCENT), сумма в копейках (FIXED_AMOUNT)
// или целевая цена комбо в копейках (FIXED_PRICE_COMBO).
// Заполнен ровно один scope-специфичный payload, соответствующий Scope.
type Promotion struct {
	ID            int64
	Name          string
	Description   string
	Type          PromotionType
	Scope         PromotionScope
	Value         int64
	StartDate     time.Time
	EndDate       time.Time
	MinOrderTotal int64
	IsActive      bool
	ProductIDs    []int64
	Categories    []string
	ComboItems    []ComboItem
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}

func NewPromotion(
	name string,
	description string,
	promoType PromotionType,
	scope PromotionScope,
	value int64,
	startDate time.Time,
	endDate time.Time,
	minOrderTotal int64,
	isActive bool,
) *Promotion {
	return &Promotion{
		Name:          name,
		Description:   description,
		Type:          promoType,
		Scope:         scope,
		Value:         value,
		StartDate:     startDate,
		EndDate:       endDate,
		MinOrderTotal: minOrderTotal,
		IsActive:      isActive,
	}
}

// ValidateShape проверяет структурную корректность промоакции до проверки
// уникальности: допустимые enum-значения, положительный Value, корректное окно
// дат и ровно один payload, соответствующий объявленному Scope.
func (p *Promotion) ValidateShape() error {
	if strings.TrimSpace(p.Name) == "" {
		return e.ErrPromotionNameRequired
	}

	if !p.Type.Valid() {
		return e.ErrInvalidPromotionType
	}

	if !p.Scope.Valid() {
		return e.ErrInvalidPromotionScope
	}

	if p.Value <= 0 {
		return e.ErrValueMustBePositive
	}

	if p.EndDate.Before(p.StartDate) {
		return e.ErrInvalidDateWindow
	}

	switch p.Scope {
	case ScopeProduct:
		if len(p.ProductIDs) == 0 {
			return e.ErrProductIDsRequired
		}
		if len(p.Categories) > 0 || len(p.ComboItems) > 0 {
			return e.ErrScopePayloadMismatch
		}
	case ScopeCategory:
		if len(p.Categories) == 0 {
			return e.ErrCategoriesRequired
		}
		if len(p.ProductIDs) > 0 || len(p.ComboItems) > 0 {
			return e.ErrScopePayloadMismatch
		}
	case ScopeCombo:
		if len(p.ComboItems) == 0 {
			return e.ErrComboItemsRequired
		}
		if len(p.ProductIDs) > 0 || len(p.Categories) > 0 {
			return e.ErrScopePayloadMismatch
		}
	case ScopeOrder:
		if len(p.ProductIDs) > 0 || len(p.Categories) > 0 || len(p.ComboItems) > 0 {
			return e.ErrScopePayloadMismatch
		}
	}

	return nil
}

// ActiveAt сообщает, действует ли промоакция в указанный момент:
// включена и момент попадает в окно [StartDate, EndDate] включительно.
func (p *Promotion) ActiveAt(now time.Time) bool {
	return p.IsActive && !now.Before(p.StartDate) && !now.After(p.EndDate)
}

// ComboSignature — отсортированная по ProductID копия комбо-позиций.
// Сигнатура идентифицирует условие срабатывания комбо независимо от порядка.
func (p *Promotion) ComboSignature() []ComboItem {
	signature := make([]ComboItem, len(p.ComboItems))
	copy(signature, p.ComboItems)
	sort.Slice(signature, func(i, j int) bool {
		return signature[i].ProductID < signature[j].ProductID
	})

	return signature
}

// SameComboSignature сравнивает комбо-сигнатуры поэлементно после сортировки.
// Совпадение требует одинаковой длины, одинаковых ProductID и точного равенства
// RequiredQty; различие количества для того же набора продуктов конфликтом не является.
func SameComboSignature(a, b []ComboItem) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i].ProductID != b[i].ProductID || a[i].RequiredQty != b[i].RequiredQty {
			return false
		}
	}

	return true
}

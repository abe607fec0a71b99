package usecase

import (
	"fmt"
	"time"

	"github.com/brewpoint-tech/promo-backend/internal/domain"
)

// PROMOTION USECASE

// CreatePromotionReq — запрос на создание промоакции.
type CreatePromotionReq struct {
	Name          string
	Description   string
	Type          domain.PromotionType
	Scope         domain.PromotionScope
	Value         int64
	StartDate     time.Time
	EndDate       time.Time
	MinOrderTotal int64
	IsActive      bool
	ProductIDs    []int64
	Categories    []string
	ComboItems    []domain.ComboItem
}

// UpdatePromotionReq — запрос на частичное обновление промоакции.
// nil-поле означает "оставить как было". При смене Scope старый payload очищается.
type UpdatePromotionReq struct {
	ID            int64
	Name          *string
	Description   *string
	Type          *domain.PromotionType
	Scope         *domain.PromotionScope
	Value         *int64
	StartDate     *time.Time
	EndDate       *time.Time
	MinOrderTotal *int64
	IsActive      *bool
	ProductIDs    []int64
	Categories    []string
	ComboItems    []domain.ComboItem
}

// PromotionFilter — фильтр списка промоакций.
type PromotionFilter struct {
	IsActive *bool
	Scope    domain.PromotionScope
	Type     domain.PromotionType
}

// ListPromotionsReq — запрос списка промоакций с фильтрами.
type ListPromotionsReq struct {
	IsActive *bool
	Scope    domain.PromotionScope
	Type     domain.PromotionType
}

// Conflict описывает один конфликт уникальности, найденный валидатором.
type Conflict struct {
	Scope       domain.PromotionScope
	Target      string
	PromotionID int64
	Message     string
}

// PRICING USECASE

// CalculateDiscountsReq — корзина и доверенный подытог из запроса расчёта.
type CalculateDiscountsReq struct {
	Items    []domain.CartItem
	Subtotal int64
}

// AppliedPromotion — вклад одной сработавшей промоакции.
type AppliedPromotion struct {
	PromotionID    int64
	Name           string
	DiscountAmount int64
}

// CalculateDiscountsRes — итог расчёта скидок по корзине.
type CalculateDiscountsRes struct {
	ApplicablePromotions []AppliedPromotion
	TotalDiscount        int64
	FinalTotal           int64
}

// ProductInfo — DTO с данными продукта для расчёта и кэша.
type ProductInfo struct {
	ID        int64
	Name      string
	Category  string
	BasePrice int64
}

// OUTBOX

type OutboxStatus string

const (
	Pending    OutboxStatus = "PENDING"
	Processing OutboxStatus = "PROCESSING"
	Processed  OutboxStatus = "PROCESSED"
)

type OutboxEventType string

const (
	PromotionCreated OutboxEventType = "PROMOTION_CREATED"
	PromotionUpdated OutboxEventType = "PROMOTION_UPDATED"
	PromotionDeleted OutboxEventType = "PROMOTION_DELETED"
)

// OutboxEvent — запись transactional outbox для событий изменения промоакций.
type OutboxEvent struct {
	ID          int64
	EventID     string
	EventType   OutboxEventType
	PromotionID int64
	Payload     []byte
	Status      OutboxStatus
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

// PromotionChangeEvent — JSON-payload события для Kafka.
type PromotionChangeEvent struct {
	EventID     string                `json:"event_id"`
	EventType   OutboxEventType       `json:"event_type"`
	PromotionID int64                 `json:"promotion_id"`
	Scope       domain.PromotionScope `json:"scope"`
	OccurredAt  int64                 `json:"occurred_at"`
}

// INFRASTRUCTURE

type WriteRawMessageReq struct {
	PromotionID int64
	Payload     []byte
}

// MAPPERS

func NewProductConflict(productID int64, existingID int64) Conflict {
	return Conflict{
		Scope:       domain.ScopeProduct,
		Target:      fmt.Sprintf("%d", productID),
		PromotionID: existingID,
		Message:     fmt.Sprintf("Product %d already has an active promotion (ID: %d). Please update the existing promotion instead.", productID, existingID),
	}
}

func NewCategoryConflict(category string, existingID int64) Conflict {
	return Conflict{
		Scope:       domain.ScopeCategory,
		Target:      category,
		PromotionID: existingID,
		Message:     fmt.Sprintf("Category %q already has an active promotion (ID: %d). Please update the existing promotion instead.", category, existingID),
	}
}

func NewComboConflict(existingID int64) Conflict {
	return Conflict{
		Scope:       domain.ScopeCombo,
		PromotionID: existingID,
		Message:     fmt.Sprintf("This combo already exists in promotion (ID: %d). Please update the existing promotion instead.", existingID),
	}
}

func ConflictDetails(conflicts []Conflict) []string {
	details := make([]string, len(conflicts))
	for i, conflict := range conflicts {
		details[i] = conflict.Message
	}

	return details
}

func NewAppliedPromotion(promotionID int64, name string, discountAmount int64) AppliedPromotion {
	return AppliedPromotion{
		PromotionID:    promotionID,
		Name:           name,
		DiscountAmount: discountAmount,
	}
}

func NewCalculateDiscountsReq(items []domain.CartItem, subtotal int64) *CalculateDiscountsReq {
	return &CalculateDiscountsReq{
		Items:    items,
		Subtotal: subtotal,
	}
}

func NewProductInfo(id int64, name string, category string, basePrice int64) ProductInfo {
	return ProductInfo{
		ID:        id,
		Name:      name,
		Category:  category,
		BasePrice: basePrice,
	}
}

func NewOutboxEvent(eventID string, eventType OutboxEventType, promotionID int64, payload []byte) *OutboxEvent {
	return &OutboxEvent{
		EventID:     eventID,
		EventType:   eventType,
		PromotionID: promotionID,
		Payload:     payload,
		Status:      Pending,
		CreatedAt:   time.Now(),
	}
}

func NewWriteRawMessageReq(promotionID int64, payload []byte) *WriteRawMessageReq {
	return &WriteRawMessageReq{
		PromotionID: promotionID,
		Payload:     payload,
	}
}

package converter

import "time"

// PromotionModel представляет запись таблицы promotions в PostgreSQL.
type PromotionModel struct {
	ID            int64            `db:"id"`
	Name          string           `db:"name"`
	Description   string           `db:"description"`
	Type          string           `db:"type"`
	Scope         string           `db:"scope"`
	Value         int64            `db:"value"`
	StartDate     time.Time        `db:"start_date"`
	EndDate       time.Time        `db:"end_date"`
	MinOrderTotal int64            `db:"min_order_total"`
	IsActive      bool             `db:"is_active"`
	ProductIDs    []int64          `db:"product_ids"`
	Categories    []string         `db:"categories"`
	ComboItems    []ComboItemModel `db:"combo_items"`
	CreatedAt     time.Time        `db:"created_at"`
	UpdatedAt     *time.Time       `db:"updated_at"`
}

// ComboItemModel — элемент jsonb-колонки combo_items.
type ComboItemModel struct {
	ProductID   int64 `json:"product_id"`
	RequiredQty int32 `json:"required_qty"`
}

// OutboxEventModel представляет запись таблицы promotion_events в PostgreSQL.
type OutboxEventModel struct {
	ID          int64      `db:"id"`
	EventID     string     `db:"event_id"`
	EventType   string     `db:"event_type"`
	PromotionID int64      `db:"promotion_id"`
	Payload     []byte     `db:"payload"`
	Status      string     `db:"status"`
	CreatedAt   time.Time  `db:"created_at"`
	ProcessedAt *time.Time `db:"processed_at"`
}

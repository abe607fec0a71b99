package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/brewpoint-tech/promo-backend/internal/domain"
	"github.com/brewpoint-tech/promo-backend/pkg/e"
	"github.com/brewpoint-tech/promo-backend/pkg/logger"
	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// PromotionUseCase реализует write-путь промоакций: структурная проверка,
// валидация уникальности и запись в хранилище под одной транзакцией.
type PromotionUseCase struct {
	promotionRepo PromotionRepository
	outboxRepo    OutboxRepository
	dbPool        transaction.Transactional
	logger        logger.Logger
}

func NewPromotionUC(
	promotionRepo PromotionRepository,
	outboxRepo OutboxRepository,
	dbPool transaction.Transactional,
	logger logger.Logger,
) *PromotionUseCase {
	return &PromotionUseCase{
		promotionRepo: promotionRepo,
		outboxRepo:    outboxRepo,
		dbPool:        dbPool,
		logger:        logger,
	}
}

// CreatePromotion создаёт промоакцию. Кандидат сначала проходит структурную
// проверку, затем валидацию уникальности; непустой список конфликтов
// возвращается как *e.ConflictError со всеми описаниями дословно.
func (u *PromotionUseCase) CreatePromotion(ctx context.Context, req *CreatePromotionReq) (*domain.Promotion, error) {
	const op = "PromotionUseCase.CreatePromotion"

	promotion := buildPromotion(req)

	var err error
	if err = promotion.ValidateShape(); err != nil {
		return nil, e.Wrap(op, err)
	}

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, u.dbPool)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	conflicts, err := u.validate(ctx, promotion, 0)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if len(conflicts) > 0 {
		err = e.NewConflictError(ConflictDetails(conflicts))
		return nil, err
	}

	created, err := u.promotionRepo.Create(ctx, promotion)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	err = u.writeChangeEvent(ctx, PromotionCreated, created)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	err = tx.Commit(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return created, nil
}

// UpdatePromotion частично обновляет промоакцию. Валидация уникальности
// выполняется над слитым состоянием с исключением самой промоакции,
// чтобы она не конфликтовала сама с собой.
func (u *PromotionUseCase) UpdatePromotion(ctx context.Context, req *UpdatePromotionReq) (*domain.Promotion, error) {
	const op = "PromotionUseCase.UpdatePromotion"

	existing, err := u.promotionRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	merged := mergePromotion(existing, req)
	if err = merged.ValidateShape(); err != nil {
		return nil, e.Wrap(op, err)
	}

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, u.dbPool)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	conflicts, err := u.validate(ctx, merged, req.ID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if len(conflicts) > 0 {
		err = e.NewConflictError(ConflictDetails(conflicts))
		return nil, err
	}

	updated, err := u.promotionRepo.Update(ctx, merged)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	err = u.writeChangeEvent(ctx, PromotionUpdated, updated)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	err = tx.Commit(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return updated, nil
}

// DeletePromotion удаляет промоакцию и пишет событие удаления в outbox.
func (u *PromotionUseCase) DeletePromotion(ctx context.Context, id int64) error {
	const op = "PromotionUseCase.DeletePromotion"

	existing, err := u.promotionRepo.GetByID(ctx, id)
	if err != nil {
		return e.Wrap(op, err)
	}

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, u.dbPool)
	if err != nil {
		return e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	if err = u.promotionRepo.Delete(ctx, id); err != nil {
		return e.Wrap(op, err)
	}

	if err = u.writeChangeEvent(ctx, PromotionDeleted, existing); err != nil {
		return e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

// GetPromotion возвращает промоакцию по идентификатору.
func (u *PromotionUseCase) GetPromotion(ctx context.Context, id int64) (*domain.Promotion, error) {
	const op = "PromotionUseCase.GetPromotion"

	promotion, err := u.promotionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return promotion, nil
}

// ListPromotions возвращает промоакции по фильтру.
func (u *PromotionUseCase) ListPromotions(ctx context.Context, req *ListPromotionsReq) ([]domain.Promotion, error) {
	const op = "PromotionUseCase.ListPromotions"

	promotions, err := u.promotionRepo.List(ctx, &PromotionFilter{
		IsActive: req.IsActive,
		Scope:    req.Scope,
		Type:     req.Type,
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return promotions, nil
}

// ListActivePromotions возвращает промоакции, действующие в данный момент.
func (u *PromotionUseCase) ListActivePromotions(ctx context.Context) ([]domain.Promotion, error) {
	const op = "PromotionUseCase.ListActivePromotions"

	promotions, err := u.promotionRepo.FindActive(ctx, time.Now())
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return promotions, nil
}

// ValidatePromotion проверяет кандидата на конфликты уникальности, ничего не
// записывая. Пустой список означает, что запись допустима.
func (u *PromotionUseCase) ValidatePromotion(ctx context.Context, candidate *domain.Promotion, excludeID int64) ([]Conflict, error) {
	const op = "PromotionUseCase.ValidatePromotion"

	conflicts, err := u.validate(ctx, candidate, excludeID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return conflicts, nil
}

// validate — правила уникальности по scope. Проверка структурная: окна дат не
// учитываются, две акции на один продукт с непересекающимися периодами всё
// равно конфликтуют. Цели проверяются независимо, по одному конфликту на цель.
func (u *PromotionUseCase) validate(ctx context.Context, candidate *domain.Promotion, excludeID int64) ([]Conflict, error) {
	var conflicts []Conflict

	switch candidate.Scope {
	case domain.ScopeProduct:
		if len(candidate.ProductIDs) == 0 {
			return nil, nil
		}

		existing, err := u.promotionRepo.FindByScopeWithAnyProduct(ctx, candidate.ProductIDs, excludeID)
		if err != nil {
			return nil, err
		}

		for _, productID := range candidate.ProductIDs {
			for _, promo := range existing {
				if containsInt64(promo.ProductIDs, productID) {
					conflicts = append(conflicts, NewProductConflict(productID, promo.ID))
					break
				}
			}
		}

	case domain.ScopeCategory:
		if len(candidate.Categories) == 0 {
			return nil, nil
		}

		existing, err := u.promotionRepo.FindByScopeWithAnyCategory(ctx, candidate.Categories, excludeID)
		if err != nil {
			return nil, err
		}

		for _, category := range candidate.Categories {
			for _, promo := range existing {
				if containsString(promo.Categories, category) {
					conflicts = append(conflicts, NewCategoryConflict(category, promo.ID))
					break
				}
			}
		}

	case domain.ScopeCombo:
		if len(candidate.ComboItems) == 0 {
			return nil, nil
		}

		existing, err := u.promotionRepo.FindAllByScope(ctx, domain.ScopeCombo, excludeID)
		if err != nil {
			return nil, err
		}

		signature := candidate.ComboSignature()
		for _, promo := range existing {
			if domain.SameComboSignature(signature, promo.ComboSignature()) {
				conflicts = append(conflicts, NewComboConflict(promo.ID))
				break
			}
		}

	case domain.ScopeOrder:
		// Для ORDER ограничений нет: акции на весь заказ сосуществуют и суммируются.
	}

	return conflicts, nil
}

// writeChangeEvent пишет событие изменения промоакции в outbox в рамках
// текущей транзакции.
func (u *PromotionUseCase) writeChangeEvent(ctx context.Context, eventType OutboxEventType, promotion *domain.Promotion) error {
	event := PromotionChangeEvent{
		EventID:     uuid.NewString(),
		EventType:   eventType,
		PromotionID: promotion.ID,
		Scope:       promotion.Scope,
		OccurredAt:  time.Now().UnixNano(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	_, err = u.outboxRepo.Create(ctx, NewOutboxEvent(event.EventID, eventType, promotion.ID, payload))
	return err
}

// buildPromotion собирает доменную сущность из запроса на создание.
func buildPromotion(req *CreatePromotionReq) *domain.Promotion {
	promotion := domain.NewPromotion(
		req.Name,
		req.Description,
		req.Type,
		req.Scope,
		req.Value,
		req.StartDate,
		req.EndDate,
		req.MinOrderTotal,
		req.IsActive,
	)
	promotion.ProductIDs = req.ProductIDs
	promotion.Categories = req.Categories
	promotion.ComboItems = req.ComboItems

	return promotion
}

// mergePromotion накладывает частичное обновление на существующее состояние.
// При смене Scope старые payload-поля очищаются; payload применяется, только
// если соответствует итоговому scope.
func mergePromotion(existing *domain.Promotion, req *UpdatePromotionReq) *domain.Promotion {
	merged := *existing
	merged.ProductIDs = append([]int64(nil), existing.ProductIDs...)
	merged.Categories = append([]string(nil), existing.Categories...)
	merged.ComboItems = append([]domain.ComboItem(nil), existing.ComboItems...)

	if req.Name != nil {
		merged.Name = *req.Name
	}
	if req.Description != nil {
		merged.Description = *req.Description
	}
	if req.Type != nil {
		merged.Type = *req.Type
	}
	if req.Value != nil {
		merged.Value = *req.Value
	}
	if req.StartDate != nil {
		merged.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		merged.EndDate = *req.EndDate
	}
	if req.MinOrderTotal != nil {
		merged.MinOrderTotal = *req.MinOrderTotal
	}
	if req.IsActive != nil {
		merged.IsActive = *req.IsActive
	}

	if req.Scope != nil {
		merged.Scope = *req.Scope
		merged.ProductIDs = nil
		merged.Categories = nil
		merged.ComboItems = nil
	}

	if req.ProductIDs != nil && merged.Scope == domain.ScopeProduct {
		merged.ProductIDs = req.ProductIDs
	}
	if req.Categories != nil && merged.Scope == domain.ScopeCategory {
		merged.Categories = req.Categories
	}
	if req.ComboItems != nil && merged.Scope == domain.ScopeCombo {
		merged.ComboItems = req.ComboItems
	}

	return &merged
}

func containsInt64(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}

	return false
}

func containsString(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}

	return false
}

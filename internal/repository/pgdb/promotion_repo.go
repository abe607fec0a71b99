package pgdb

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/brewpoint-tech/promo-backend/internal/domain"
	"github.com/brewpoint-tech/promo-backend/internal/repository/pgdb/converter"
	"github.com/brewpoint-tech/promo-backend/internal/usecase"
	"github.com/brewpoint-tech/promo-backend/pkg/e"
	"github.com/brewpoint-tech/promo-backend/pkg/tr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

const promotionColumns = `id, name, description, type, scope, value, start_date, end_date,
		min_order_total, is_active, product_ids, categories, combo_items, created_at, updated_at`

// PromotionRepo реализует репозиторий промоакций поверх PostgreSQL.
type PromotionRepo struct {
	pool *pgxpool.Pool
	conv converter.PromotionConverter
}

func NewPromotionRepo(pool *pgxpool.Pool, conv converter.PromotionConverter) *PromotionRepo {
	return &PromotionRepo{
		pool: pool,
		conv: conv,
	}
}

// Create вставляет новую промоакцию в рамках текущей транзакции.
func (p *PromotionRepo) Create(ctx context.Context, promotion *domain.Promotion) (*domain.Promotion, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	model := p.conv.ToModel(promotion)
	normalizePayloads(model)

	query := `
		INSERT INTO promotions (
			name, description, type, scope, value, start_date, end_date,
			min_order_total, is_active, product_ids, categories, combo_items
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + promotionColumns + `;
	`

	row := tx.QueryRow(ctx, query,
		model.Name, model.Description, model.Type, model.Scope, model.Value,
		model.StartDate, model.EndDate, model.MinOrderTotal, model.IsActive,
		model.ProductIDs, model.Categories, model.ComboItems,
	)

	created, err := scanPromotion(row)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(created), nil
}

// Update полностью перезаписывает промоакцию в рамках текущей транзакции.
func (p *PromotionRepo) Update(ctx context.Context, promotion *domain.Promotion) (*domain.Promotion, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	model := p.conv.ToModel(promotion)
	normalizePayloads(model)

	query := `
		UPDATE promotions SET
			name = $2, description = $3, type = $4, scope = $5, value = $6,
			start_date = $7, end_date = $8, min_order_total = $9, is_active = $10,
			product_ids = $11, categories = $12, combo_items = $13, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + promotionColumns + `;
	`

	row := tx.QueryRow(ctx, query,
		model.ID, model.Name, model.Description, model.Type, model.Scope, model.Value,
		model.StartDate, model.EndDate, model.MinOrderTotal, model.IsActive,
		model.ProductIDs, model.Categories, model.ComboItems,
	)

	updated, err := scanPromotion(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.ErrPromotionNotFound
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(updated), nil
}

// Delete удаляет промоакцию в рамках текущей транзакции.
func (p *PromotionRepo) Delete(ctx context.Context, id int64) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	result, err := tx.Exec(ctx, `DELETE FROM promotions WHERE id = $1`, id)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if result.RowsAffected() == 0 {
		return e.ErrPromotionNotFound
	}

	return nil
}

// GetByID возвращает промоакцию по идентификатору.
func (p *PromotionRepo) GetByID(ctx context.Context, id int64) (*domain.Promotion, error) {
	query := `SELECT ` + promotionColumns + ` FROM promotions WHERE id = $1`

	model, err := scanPromotion(p.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.ErrPromotionNotFound
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(model), nil
}

// List возвращает промоакции по фильтру, новые первыми.
func (p *PromotionRepo) List(ctx context.Context, filter *usecase.PromotionFilter) ([]domain.Promotion, error) {
	query := `SELECT ` + promotionColumns + ` FROM promotions`

	var (
		conds []string
		args  []any
	)
	if filter != nil {
		if filter.IsActive != nil {
			args = append(args, *filter.IsActive)
			conds = append(conds, fmt.Sprintf("is_active = $%d", len(args)))
		}
		if filter.Scope != "" {
			args = append(args, string(filter.Scope))
			conds = append(conds, fmt.Sprintf("scope = $%d", len(args)))
		}
		if filter.Type != "" {
			args = append(args, string(filter.Type))
			conds = append(conds, fmt.Sprintf("type = $%d", len(args)))
		}
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC"

	return p.queryPromotions(ctx, query, args...)
}

// FindActive возвращает промоакции, действующие в момент now:
// is_active и now внутри окна [start_date, end_date] включительно.
func (p *PromotionRepo) FindActive(ctx context.Context, now time.Time) ([]domain.Promotion, error) {
	query := `
		SELECT ` + promotionColumns + `
		FROM promotions
		WHERE is_active AND start_date <= $1 AND end_date >= $1
		ORDER BY start_date DESC
	`

	return p.queryPromotions(ctx, query, now)
}

// FindByScopeWithAnyProduct возвращает PRODUCT-промоакции, пересекающиеся с
// заданным набором продуктов. Один батч-запрос вместо поиска по каждой цели.
func (p *PromotionRepo) FindByScopeWithAnyProduct(ctx context.Context, productIDs []int64, excludeID int64) ([]domain.Promotion, error) {
	query := `
		SELECT ` + promotionColumns + `
		FROM promotions
		WHERE scope = $1 AND product_ids && $2 AND ($3 = 0 OR id <> $3)
		ORDER BY id
	`

	return p.queryPromotions(ctx, query, string(domain.ScopeProduct), productIDs, excludeID)
}

// FindByScopeWithAnyCategory возвращает CATEGORY-промоакции, пересекающиеся с
// заданным набором категорий.
func (p *PromotionRepo) FindByScopeWithAnyCategory(ctx context.Context, categories []string, excludeID int64) ([]domain.Promotion, error) {
	query := `
		SELECT ` + promotionColumns + `
		FROM promotions
		WHERE scope = $1 AND categories && $2 AND ($3 = 0 OR id <> $3)
		ORDER BY id
	`

	return p.queryPromotions(ctx, query, string(domain.ScopeCategory), categories, excludeID)
}

// FindAllByScope возвращает все промоакции заданного scope.
func (p *PromotionRepo) FindAllByScope(ctx context.Context, scope domain.PromotionScope, excludeID int64) ([]domain.Promotion, error) {
	query := `
		SELECT ` + promotionColumns + `
		FROM promotions
		WHERE scope = $1 AND ($2 = 0 OR id <> $2)
		ORDER BY id
	`

	return p.queryPromotions(ctx, query, string(scope), excludeID)
}

func (p *PromotionRepo) queryPromotions(ctx context.Context, query string, args ...any) ([]domain.Promotion, error) {
	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	result := make([]domain.Promotion, 0)
	for rows.Next() {
		model, err := scanPromotion(rows)
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		result = append(result, *p.conv.ToEntity(model))
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return result, nil
}

func scanPromotion(row pgx.Row) (*converter.PromotionModel, error) {
	var model converter.PromotionModel
	err := row.Scan(
		&model.ID, &model.Name, &model.Description, &model.Type, &model.Scope,
		&model.Value, &model.StartDate, &model.EndDate, &model.MinOrderTotal,
		&model.IsActive, &model.ProductIDs, &model.Categories, &model.ComboItems,
		&model.CreatedAt, &model.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &model, nil
}

// normalizePayloads заменяет nil-срезы пустыми, чтобы NOT NULL колонки
// массивов и jsonb не получали NULL.
func normalizePayloads(model *converter.PromotionModel) {
	if model.ProductIDs == nil {
		model.ProductIDs = []int64{}
	}
	if model.Categories == nil {
		model.Categories = []string{}
	}
	if model.ComboItems == nil {
		model.ComboItems = []converter.ComboItemModel{}
	}
}
